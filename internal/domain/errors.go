package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmbeddingFailed signals that the embedding provider could not produce a vector.
	ErrEmbeddingFailed = errors.New("embedding generation failed")
	// ErrRetrievalFailed signals that the vector index could not be queried.
	ErrRetrievalFailed = errors.New("vector index query failed")
	// ErrVectorDimMismatch signals a vector of unexpected dimensionality.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
)

// EmbeddingFailure classifies err as an embedding failure.
// Errors already carrying ErrEmbeddingFailed are returned unchanged.
func EmbeddingFailure(err error) error {
	if err == nil || errors.Is(err, ErrEmbeddingFailed) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrEmbeddingFailed, err)
}

// RetrievalFailure classifies err as a retrieval failure.
// Errors already carrying ErrRetrievalFailed are returned unchanged.
func RetrievalFailure(err error) error {
	if err == nil || errors.Is(err, ErrRetrievalFailed) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrRetrievalFailed, err)
}
