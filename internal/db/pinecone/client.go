// Package pinecone implements db.Index on top of a managed Pinecone index.
package pinecone

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pinecone-io/go-pinecone/v3/pinecone"

	"github.com/mjmj007a/addictiontube/internal/db"
)

// Compile-time check: Store implements db.Index.
var _ db.Index = (*Store)(nil)

// indexConn is the subset of *pinecone.IndexConnection used by the store.
type indexConn interface {
	QueryByVectorValues(
		ctx context.Context, in *pinecone.QueryByVectorValuesRequest,
	) (*pinecone.QueryVectorsResponse, error)
	DescribeIndexStats(ctx context.Context) (*pinecone.DescribeIndexStatsResponse, error)
	Close() error
}

// Config holds connection parameters for a Pinecone index.
type Config struct {
	APIKey    string
	IndexName string
	// Host skips the DescribeIndex lookup when set.
	Host      string
	Namespace string
	// Timeout bounds each query and stats call on the gRPC data plane and,
	// unless HTTPClient is set, each control-plane REST call.
	Timeout time.Duration
	// HTTPClient is used for control-plane calls such as DescribeIndex only.
	HTTPClient *http.Client
}

// Store implements db.Index for one Pinecone index.
type Store struct {
	conn      indexConn
	indexName string
	timeout   time.Duration
}

// NewStore resolves the index host and opens a data-plane connection.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if cfg.IndexName == "" && cfg.Host == "" {
		return nil, fmt.Errorf("index name or host is required")
	}

	rest := cfg.HTTPClient
	if rest == nil && cfg.Timeout > 0 {
		rest = &http.Client{Timeout: cfg.Timeout}
	}
	pc, err := pinecone.NewClient(pinecone.NewClientParams{
		ApiKey:     cfg.APIKey,
		RestClient: rest,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	host := cfg.Host
	if host == "" {
		idx, err := pc.DescribeIndex(ctx, cfg.IndexName)
		if err != nil {
			return nil, &db.Error{Op: db.OpDescribe, Err: fmt.Errorf("%s: %w", cfg.IndexName, err)}
		}
		host = idx.Host
	}

	conn, err := pc.Index(pinecone.NewIndexConnParams{
		Host:      host,
		Namespace: cfg.Namespace,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to index %s: %w", cfg.IndexName, err)
	}

	return &Store{conn: conn, indexName: cfg.IndexName, timeout: cfg.Timeout}, nil
}

// Ping checks the index is reachable via DescribeIndexStats.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := s.callContext(ctx)
	defer cancel()

	if _, err := s.conn.DescribeIndexStats(ctx); err != nil {
		return &db.Error{Op: db.OpIndexStats, Err: err}
	}
	return nil
}

// callContext bounds a data-plane call by the configured timeout.
func (s *Store) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Close releases the data-plane connection.
func (s *Store) Close() {
	_ = s.conn.Close()
}

// WaitForReady polls Ping until the index responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	return db.WaitForReady(ctx, s, timeout)
}
