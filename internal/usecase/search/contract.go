package search

import (
	"context"

	"github.com/mjmj007a/addictiontube/internal/domain"
	"github.com/mjmj007a/addictiontube/internal/domain/search/result"
)

// Retriever finds the stories of a category nearest to a vector.
type Retriever interface {
	Search(ctx context.Context, vector []float32, category string, limit int) ([]result.Story, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
