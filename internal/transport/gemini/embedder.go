package gemini

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/mjmj007a/addictiontube/internal/domain"
	"github.com/mjmj007a/addictiontube/internal/metrics"
)

const provider = "gemini"

// Config holds the Gemini embedding settings.
type Config struct {
	APIKey  string
	BaseURL string
	// Backend is "gemini" (Gemini Developer API) or "vertex" (Vertex AI).
	Backend  string
	Project  string
	Location string
	Model    string
	// RequestDimensions is sent as OutputDimensionality when positive.
	RequestDimensions int
	Timeout           time.Duration
	Logger            *zap.Logger
}

// Embedder wraps a genai.Client to implement domain.Embedder.
type Embedder struct {
	client            *genai.Client
	model             string
	requestDimensions int
	logger            *zap.Logger
}

// NewEmbedder creates the genai client and the embedder around it.
func NewEmbedder(ctx context.Context, cfg *Config) (*Embedder, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.Backend == "vertex" {
		cc.Backend = genai.BackendVertexAI
		cc.Project = cfg.Project
		cc.Location = cfg.Location
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	if cfg.Timeout > 0 {
		cc.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return NewEmbedderWithClient(client, cfg.Model, cfg.RequestDimensions, cfg.Logger), nil
}

// NewEmbedderWithClient builds an embedder over an existing genai client.
func NewEmbedderWithClient(client *genai.Client, model string, requestDimensions int, logger *zap.Logger) *Embedder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Embedder{
		client:            client,
		model:             model,
		requestDimensions: requestDimensions,
		logger:            logger,
	}
}

// Embed implements domain.Embedder. Every failure wraps domain.ErrEmbeddingFailed.
func (e *Embedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	contents := []*genai.Content{
		{Parts: []*genai.Part{{Text: text}}},
	}

	cfg := &genai.EmbedContentConfig{}
	if e.requestDimensions > 0 {
		dims := int32(e.requestDimensions) //nolint:gosec // bounded by config validation
		cfg.OutputDimensionality = &dims
	}

	start := time.Now()
	resp, err := e.client.Models.EmbedContent(ctx, e.model, contents, cfg)
	duration := time.Since(start)

	if err != nil {
		metrics.EmbeddingRequestsTotal.WithLabelValues(provider, e.model, "error").Inc()
		metrics.EmbeddingErrorsTotal.WithLabelValues(provider, e.model, "api_error").Inc()
		e.logger.Debug("embedding request failed", zap.String("model", e.model), zap.Error(err))
		return domain.EmbeddingResult{}, fmt.Errorf("%w: %w", domain.ErrEmbeddingFailed, err)
	}

	if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil || len(resp.Embeddings[0].Values) == 0 {
		metrics.EmbeddingRequestsTotal.WithLabelValues(provider, e.model, "error").Inc()
		metrics.EmbeddingErrorsTotal.WithLabelValues(provider, e.model, "empty_response").Inc()
		return domain.EmbeddingResult{}, fmt.Errorf("empty embedding response: %w", domain.ErrEmbeddingFailed)
	}

	metrics.EmbeddingRequestsTotal.WithLabelValues(provider, e.model, "success").Inc()
	metrics.EmbeddingRequestDuration.WithLabelValues(provider, e.model).Observe(duration.Seconds())

	// The Gemini API does not report token usage for embeddings.
	return domain.EmbeddingResult{Embedding: resp.Embeddings[0].Values}, nil
}

// HealthCheck verifies the configured model is reachable.
func (e *Embedder) HealthCheck(ctx context.Context) error {
	if _, err := e.client.Models.Get(ctx, e.model, nil); err != nil {
		return fmt.Errorf("get model %s: %w", e.model, err)
	}
	return nil
}
