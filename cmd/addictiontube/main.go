package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mjmj007a/addictiontube/internal/config"
	"github.com/mjmj007a/addictiontube/internal/db"
	dbPinecone "github.com/mjmj007a/addictiontube/internal/db/pinecone"
	dbValkey "github.com/mjmj007a/addictiontube/internal/db/valkey"
	"github.com/mjmj007a/addictiontube/internal/domain"
	"github.com/mjmj007a/addictiontube/internal/domain/search/request"
	logpkg "github.com/mjmj007a/addictiontube/internal/logger"
	"github.com/mjmj007a/addictiontube/internal/metrics"
	storyrepo "github.com/mjmj007a/addictiontube/internal/repository/story"
	chiTransport "github.com/mjmj007a/addictiontube/internal/transport/chi"
	geminiEmb "github.com/mjmj007a/addictiontube/internal/transport/gemini"
	openaiEmb "github.com/mjmj007a/addictiontube/internal/transport/openai"
	embeddinguc "github.com/mjmj007a/addictiontube/internal/usecase/embedding"
	healthuc "github.com/mjmj007a/addictiontube/internal/usecase/health"
	searchuc "github.com/mjmj007a/addictiontube/internal/usecase/search"
	"github.com/mjmj007a/addictiontube/internal/version"
)

func main() {
	// ENV may itself come from .env
	if err := config.LoadDotEnv(); err != nil {
		panic("failed to load .env: " + err.Error())
	}
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting addictiontube search server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("build_date", version.Date),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("index_driver", cfg.Index.Driver),
		zap.String("index_name", cfg.Index.Name),
		zap.String("embedding_provider", cfg.Embedding.Provider),
	)

	ctx := context.Background()

	index, err := buildIndex(ctx, &cfg)
	if err != nil {
		logger.Fatal("Failed to create vector index client", zap.Error(err))
	}
	defer index.Close()

	if err := index.WaitForReady(ctx, time.Duration(cfg.Index.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Vector index not ready", zap.Error(err))
	}
	logger.Info("Connected to vector index")

	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterIndexMetrics()

	embedder, err := buildEmbedder(ctx, &cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create embedder", zap.Error(err))
	}
	logger.Info("Embedder created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	stories := storyrepo.New(index, storyrepo.Config{
		IndexName:     cfg.Index.Name,
		Namespace:     cfg.Index.Namespace,
		CategoryField: cfg.Index.CategoryField,
		Driver:        cfg.Index.Driver,
	})

	searchSvc := searchuc.New(embedder, stories)
	healthSvc := healthuc.New(index, embedder)

	server := chiTransport.NewServer(searchSvc, healthSvc, request.Defaults{
		Query:    cfg.Search.DefaultQuery,
		Category: cfg.Search.DefaultCategory,
		Limit:    cfg.Search.Limit,
	}, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      chiTransport.NewRouter(server, logger),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildIndex opens the configured vector index driver.
func buildIndex(ctx context.Context, cfg *config.Config) (db.Index, error) {
	timeout := time.Duration(cfg.Index.TimeoutSec) * time.Second

	switch cfg.Index.Driver {
	case config.DriverPinecone:
		s, err := dbPinecone.NewStore(ctx, dbPinecone.Config{
			APIKey:    cfg.Index.APIKey,
			IndexName: cfg.Index.Name,
			Host:      cfg.Index.Host,
			Namespace: cfg.Index.Namespace,
			Timeout:   timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("create pinecone store: %w", err)
		}
		return s, nil
	case config.DriverValkey, config.DriverRedis:
		s, err := dbValkey.NewStore(dbValkey.Config{
			Addrs:     cfg.Index.Addrs,
			Username:  cfg.Index.Username,
			Password:  cfg.Index.Password,
			KeyPrefix: cfg.Index.KeyPrefix,
			RESP2:     cfg.Index.Driver == config.DriverRedis,
			Timeout:   timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("create %s store: %w", cfg.Index.Driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown index driver %q", cfg.Index.Driver)
	}
}

// buildEmbedder assembles the decorator chain: provider -> Guard.
func buildEmbedder(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*embeddinguc.Guard, error) {
	ec := cfg.Embedding
	timeout := time.Duration(ec.TimeoutSec) * time.Second

	var base domain.Embedder
	switch ec.Provider {
	case config.ProviderOpenAI:
		base = openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:            ec.APIKey,
			BaseURL:           ec.BaseURL,
			Model:             ec.Model,
			RequestDimensions: ec.RequestDimensions,
			Timeout:           timeout,
			Provider:          ec.Provider,
			Logger:            logger,
		})
	case config.ProviderGemini:
		g, err := geminiEmb.NewEmbedder(ctx, &geminiEmb.Config{
			APIKey:            ec.APIKey,
			BaseURL:           ec.BaseURL,
			Backend:           ec.Gemini.Backend,
			Project:           ec.Gemini.Project,
			Location:          ec.Gemini.Location,
			Model:             ec.Model,
			RequestDimensions: ec.RequestDimensions,
			Timeout:           timeout,
			Logger:            logger,
		})
		if err != nil {
			return nil, fmt.Errorf("create gemini embedder: %w", err)
		}
		base = g
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", ec.Provider)
	}

	return embeddinguc.NewGuard(base, ec.Provider, ec.Model, ec.Dimensions, logger), nil
}
