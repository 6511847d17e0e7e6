package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mjmj007a/addictiontube/internal/domain"
	"github.com/mjmj007a/addictiontube/internal/domain/search/request"
	"github.com/mjmj007a/addictiontube/internal/domain/search/result"
	"github.com/mjmj007a/addictiontube/internal/logger"
)

// Service runs the story search pipeline: embed the query, then retrieve.
type Service struct {
	embed     Embedder
	retriever Retriever
}

// New creates a search service.
func New(embed Embedder, retriever Retriever) *Service {
	return &Service{embed: embed, retriever: retriever}
}

// Search embeds the query text and returns the nearest stories of the
// requested category, at most req.Limit() of them, in index order.
// Errors wrap domain.ErrEmbeddingFailed or domain.ErrRetrievalFailed.
func (s *Service) Search(ctx context.Context, req request.Request) ([]result.Story, error) {
	log := logger.FromContext(ctx)
	log.Debug("search request",
		zap.String("query", req.Query()),
		zap.String("category", req.Category()),
	)

	embResult, err := s.embed.Embed(ctx, req.Query())
	if err != nil {
		return nil, domain.EmbeddingFailure(fmt.Errorf("vectorize query: %w", err))
	}

	domain.UsageFromContext(ctx).AddTokens(embResult.TotalTokens)

	stories, err := s.retriever.Search(ctx, embResult.Embedding, req.Category(), req.Limit())
	if err != nil {
		return nil, domain.RetrievalFailure(fmt.Errorf("search stories: %w", err))
	}

	if len(stories) > req.Limit() {
		stories = stories[:req.Limit()]
	}
	if stories == nil {
		stories = []result.Story{}
	}

	log.Debug("search completed", zap.Int("matches", len(stories)))
	return stories, nil
}
