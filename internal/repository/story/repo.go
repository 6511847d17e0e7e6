package story

import (
	"context"
	"fmt"
	"time"

	"github.com/mjmj007a/addictiontube/internal/db"
	"github.com/mjmj007a/addictiontube/internal/domain"
	"github.com/mjmj007a/addictiontube/internal/domain/search/filter"
	"github.com/mjmj007a/addictiontube/internal/domain/search/result"
	"github.com/mjmj007a/addictiontube/internal/metrics"
)

// DefaultCategoryField is the metadata field holding a story's category.
const DefaultCategoryField = "category"

// store is the consumer interface for retrieval (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Config binds the repository to one index.
type Config struct {
	IndexName     string
	Namespace     string
	CategoryField string
	// Driver labels index metrics (pinecone, valkey, redis).
	Driver string
}

// Repo implements usecase/search.Retriever over a vector index.
type Repo struct {
	store         store
	indexName     string
	namespace     string
	categoryField string
	driver        string
}

// New creates a story repository.
func New(s store, cfg Config) *Repo {
	field := cfg.CategoryField
	if field == "" {
		field = DefaultCategoryField
	}
	driver := cfg.Driver
	if driver == "" {
		driver = "unknown"
	}
	return &Repo{
		store:         s,
		indexName:     cfg.IndexName,
		namespace:     cfg.Namespace,
		categoryField: field,
		driver:        driver,
	}
}

// Search returns at most limit stories of the given category nearest to vector,
// in the order reported by the index. Every returned error wraps domain.ErrRetrievalFailed.
func (r *Repo) Search(ctx context.Context, vector []float32, category string, limit int) ([]result.Story, error) {
	cond, err := filter.NewMatch(r.categoryField, category)
	if err != nil {
		return nil, domain.RetrievalFailure(fmt.Errorf("category filter: %w", err))
	}
	filters, err := filter.NewExpression(cond)
	if err != nil {
		return nil, domain.RetrievalFailure(fmt.Errorf("category filter: %w", err))
	}

	q := &db.KNNQuery{
		IndexName:       r.indexName,
		Namespace:       r.namespace,
		Filters:         filters,
		Vector:          vector,
		K:               limit,
		IncludeMetadata: true,
		ReturnFields:    []string{titleField, descriptionField},
	}

	start := time.Now()
	sr, err := r.store.SearchKNN(ctx, q)
	metrics.IndexRequestDuration.WithLabelValues(r.driver).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.IndexRequestsTotal.WithLabelValues(r.driver, "error").Inc()
		return nil, domain.RetrievalFailure(fmt.Errorf("search knn %s: %w", r.indexName, err))
	}
	metrics.IndexRequestsTotal.WithLabelValues(r.driver, "success").Inc()

	stories := toStories(sr, limit)
	metrics.IndexMatchesReturned.WithLabelValues(r.driver).Observe(float64(len(stories)))
	return stories, nil
}

// toStories maps raw matches to stories, keeping index order.
func toStories(sr *db.SearchResult, limit int) []result.Story {
	if sr == nil || len(sr.Matches) == 0 {
		return []result.Story{}
	}

	matches := sr.Matches
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	stories := make([]result.Story, 0, len(matches))
	for _, m := range matches {
		md := decodeMetadata(m.Metadata)
		stories = append(stories, result.New(m.ID, m.Score, md.title(), md.description()))
	}
	return stories
}
