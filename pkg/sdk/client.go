package addictiontube

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mjmj007a/addictiontube/internal/db"
	dbPinecone "github.com/mjmj007a/addictiontube/internal/db/pinecone"
	dbValkey "github.com/mjmj007a/addictiontube/internal/db/valkey"
	"github.com/mjmj007a/addictiontube/internal/domain"
	"github.com/mjmj007a/addictiontube/internal/domain/search/request"
	"github.com/mjmj007a/addictiontube/internal/domain/search/result"
	storyrepo "github.com/mjmj007a/addictiontube/internal/repository/story"
	geminiEmb "github.com/mjmj007a/addictiontube/internal/transport/gemini"
	openaiEmb "github.com/mjmj007a/addictiontube/internal/transport/openai"
	embeddinguc "github.com/mjmj007a/addictiontube/internal/usecase/embedding"
	healthuc "github.com/mjmj007a/addictiontube/internal/usecase/health"
	searchuc "github.com/mjmj007a/addictiontube/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultIndexName        = "addictiontube-index"
)

// Internal interfaces, swapped out in tests.
type searchUseCase interface {
	Search(ctx context.Context, req request.Request) ([]result.Story, error)
}

// Client is the addictiontube SDK entry point.
type Client struct {
	index     db.Index
	searchSvc searchUseCase
	healthSvc healthUseCase
	defaults  request.Defaults
	obs       *observer
}

// New creates a Client and waits for the vector index to respond.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New("addictiontube: vector index required (use WithPinecone, WithValkey or WithRedis)")
	}
	if cfg.embedder == nil && cfg.provider == "" {
		return nil, errors.New("addictiontube: embedder required (use WithOpenAI, WithGemini or WithEmbedder)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	embedder, err := createEmbedder(ctx, cfg)
	if err != nil {
		return nil, err
	}

	index, err := createIndex(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := index.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		index.Close()
		return nil, fmt.Errorf("addictiontube: vector index not ready: %w", err)
	}

	return wireClient(index, embedder, cfg, obs), nil
}

func createIndex(ctx context.Context, cfg *clientConfig) (db.Index, error) {
	switch cfg.driver {
	case "pinecone":
		pc := dbPinecone.Config{
			APIKey:    cfg.apiKey,
			IndexName: indexName(cfg),
			Host:      cfg.host,
			Namespace: cfg.namespace,
			Timeout:   cfg.timeout,
		}
		s, err := dbPinecone.NewStore(ctx, pc)
		if err != nil {
			return nil, fmt.Errorf("addictiontube: create pinecone store: %w", err)
		}
		return s, nil
	case "valkey", "redis":
		s, err := dbValkey.NewStore(dbValkey.Config{
			Addrs:      cfg.addrs,
			Password:   cfg.password,
			KeyPrefix:  cfg.keyPrefix,
			Standalone: cfg.standalone,
			RESP2:      cfg.driver == "redis",
			Timeout:    cfg.timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("addictiontube: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("addictiontube: unknown driver %q", cfg.driver)
	}
}

func createEmbedder(ctx context.Context, cfg *clientConfig) (domain.Embedder, error) {
	if cfg.embedder != nil {
		return embeddinguc.NewGuard(&embedderAdapter{inner: cfg.embedder}, "custom", "custom", cfg.dimensions, nil), nil
	}

	switch cfg.provider {
	case "openai":
		model := cfg.providerModel
		if model == "" {
			model = "text-embedding-ada-002"
		}
		dims := cfg.dimensions
		if dims == 0 {
			dims = domain.DefaultVectorConfig().Dimensions
		}
		base := openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:   cfg.providerKey,
			BaseURL:  cfg.providerBaseURL,
			Model:    model,
			Timeout:  cfg.timeout,
			Provider: "openai",
		})
		return embeddinguc.NewGuard(base, "openai", model, dims, nil), nil
	case "gemini":
		model := cfg.providerModel
		if model == "" {
			model = "text-embedding-004"
		}
		base, err := geminiEmb.NewEmbedder(ctx, &geminiEmb.Config{
			APIKey:  cfg.providerKey,
			BaseURL: cfg.providerBaseURL,
			Model:   model,
			Timeout: cfg.timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("addictiontube: create gemini embedder: %w", err)
		}
		return embeddinguc.NewGuard(base, "gemini", model, cfg.dimensions, nil), nil
	default:
		return nil, fmt.Errorf("addictiontube: unknown embedding provider %q", cfg.provider)
	}
}

func wireClient(index db.Index, embedder domain.Embedder, cfg *clientConfig, obs *observer) *Client {
	stories := storyrepo.New(index, storyrepo.Config{
		IndexName:     indexName(cfg),
		Namespace:     cfg.namespace,
		CategoryField: cfg.categoryField,
		Driver:        cfg.driver,
	})

	var checker healthuc.EmbeddingChecker
	if hc, ok := embedder.(domain.HealthChecker); ok {
		checker = hc
	}

	return &Client{
		index:     index,
		searchSvc: searchuc.New(embedder, stories),
		healthSvc: healthuc.New(index, checker),
		defaults:  defaultsFrom(cfg),
		obs:       obs,
	}
}

func defaultsFrom(cfg *clientConfig) request.Defaults {
	d := request.DefaultValues()
	if cfg.defaultQuery != "" {
		d.Query = cfg.defaultQuery
	}
	if cfg.defaultCategory != "" {
		d.Category = cfg.defaultCategory
	}
	if cfg.limit > 0 {
		d.Limit = cfg.limit
	}
	return d
}

func indexName(cfg *clientConfig) string {
	if cfg.indexName == "" {
		return defaultIndexName
	}
	return cfg.indexName
}

// Close releases all resources.
func (c *Client) Close() {
	if c.index != nil {
		c.index.Close()
	}
}

// Ping checks vector index connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.index.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// SearchStories returns the stories of category most similar to query.
// Empty arguments fall back to the client defaults. Errors wrap
// ErrEmbeddingFailed or ErrRetrievalFailed.
func (c *Client) SearchStories(ctx context.Context, query, category string) (_ []Story, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search_stories", start, err) }()

	found, err := c.searchSvc.Search(ctx, request.New(query, category, c.defaults))
	if err != nil {
		return nil, fmt.Errorf("search stories: %w", err)
	}

	out := make([]Story, len(found))
	for i := range found {
		out[i] = Story{
			ID:          found[i].ID(),
			Score:       found[i].Score(),
			Title:       found[i].Title(),
			Description: found[i].Description(),
		}
	}
	c.obs.observeResults(len(out))
	return out, nil
}
