package embedding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mjmj007a/addictiontube/internal/domain"
	"github.com/mjmj007a/addictiontube/internal/metrics"
)

// Guard wraps an Embedder with a dimensionality check and logging.
// Transport metrics (requests, duration, tokens) are recorded by the provider adapters.
type Guard struct {
	inner      domain.Embedder
	provider   string
	model      string
	dimensions int
	logger     *zap.Logger
}

// NewGuard wraps inner. A non-positive dimensions disables the length check.
func NewGuard(inner domain.Embedder, provider, model string, dimensions int, logger *zap.Logger) *Guard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Guard{
		inner:      inner,
		provider:   provider,
		model:      model,
		dimensions: dimensions,
		logger:     logger,
	}
}

// Embed delegates to the inner embedder and rejects vectors of the wrong length.
// Every returned error wraps domain.ErrEmbeddingFailed.
func (g *Guard) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	start := time.Now()

	result, err := g.inner.Embed(ctx, text)

	duration := time.Since(start)

	if err != nil {
		g.logger.Error("Embedding request failed",
			zap.String("provider", g.provider),
			zap.String("model", g.model),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return domain.EmbeddingResult{}, domain.EmbeddingFailure(fmt.Errorf("embed: %w", err))
	}

	if g.dimensions > 0 && result.Dimensions() != g.dimensions {
		metrics.EmbeddingErrorsTotal.WithLabelValues(g.provider, g.model, "dimension_mismatch").Inc()
		g.logger.Error("Embedding has unexpected dimensionality",
			zap.String("provider", g.provider),
			zap.String("model", g.model),
			zap.Int("expected", g.dimensions),
			zap.Int("actual", result.Dimensions()),
		)
		return domain.EmbeddingResult{}, fmt.Errorf("%w: %w: expected %d, got %d",
			domain.ErrEmbeddingFailed, domain.ErrVectorDimMismatch, g.dimensions, result.Dimensions())
	}

	g.logger.Debug("Embedding request completed",
		zap.String("provider", g.provider),
		zap.String("model", g.model),
		zap.Duration("duration", duration),
		zap.Int("dimensions", result.Dimensions()),
		zap.Int("prompt_tokens", result.PromptTokens),
		zap.Int("total_tokens", result.TotalTokens),
	)

	return result, nil
}

// HealthCheck delegates to the inner embedder when it supports health checks.
func (g *Guard) HealthCheck(ctx context.Context) error {
	hc, ok := g.inner.(domain.HealthChecker)
	if !ok {
		return nil
	}
	if err := hc.HealthCheck(ctx); err != nil {
		return fmt.Errorf("%s health: %w", g.provider, err)
	}
	return nil
}

// IsDimensionMismatch reports whether err came from the dimensionality check.
func IsDimensionMismatch(err error) bool {
	return errors.Is(err, domain.ErrVectorDimMismatch)
}
