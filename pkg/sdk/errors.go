package addictiontube

import "github.com/mjmj007a/addictiontube/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrEmbeddingFailed   = domain.ErrEmbeddingFailed
	ErrRetrievalFailed   = domain.ErrRetrievalFailed
	ErrVectorDimMismatch = domain.ErrVectorDimMismatch
)
