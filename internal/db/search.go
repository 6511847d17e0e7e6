package db

import "github.com/mjmj007a/addictiontube/internal/domain/search/filter"

// KNNQuery is the input for vector similarity search.
type KNNQuery struct {
	IndexName       string
	Namespace       string
	Filters         filter.Expression
	Vector          []float32
	K               int
	IncludeMetadata bool
	ReturnFields    []string // metadata fields to fetch; empty means all
}

// SearchResult is the output of a search operation.
// Matches are ordered by non-increasing similarity as reported by the index.
type SearchResult struct {
	Matches []Match
}

// Match is a single raw hit from the index.
type Match struct {
	ID       string
	Score    float64
	Metadata map[string]any
}
