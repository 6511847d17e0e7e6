package pinecone

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pinecone-io/go-pinecone/v3/pinecone"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mjmj007a/addictiontube/internal/db"
	"github.com/mjmj007a/addictiontube/internal/domain/search/filter"
)

// SearchKNN queries the index for the K nearest neighbours of q.Vector among
// records matching q.Filters. IndexName on the query is ignored: a Store is
// bound to one index at construction.
func (s *Store) SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	if len(q.Vector) == 0 {
		return nil, fmt.Errorf("vector is required: %w", db.ErrInvalidQuery)
	}
	if q.K <= 0 {
		return nil, fmt.Errorf("k must be positive: %w", db.ErrInvalidQuery)
	}

	metadataFilter, err := buildFilter(q.Filters)
	if err != nil {
		return nil, fmt.Errorf("build filter: %w", err)
	}

	ctx, cancel := s.callContext(ctx)
	defer cancel()

	resp, err := s.conn.QueryByVectorValues(ctx, &pinecone.QueryByVectorValuesRequest{
		Vector:          q.Vector,
		TopK:            uint32(q.K),
		MetadataFilter:  metadataFilter,
		IncludeValues:   false,
		IncludeMetadata: q.IncludeMetadata,
	})
	if err != nil {
		return nil, &db.Error{Op: db.OpQuery, Err: fmt.Errorf("%s: %w", s.indexName, err)}
	}
	if resp == nil {
		return nil, &db.Error{Op: db.OpQuery, Err: fmt.Errorf("%s: empty response", s.indexName)}
	}

	matches := make([]db.Match, 0, len(resp.Matches))
	for i, m := range resp.Matches {
		if m == nil || m.Vector == nil {
			return nil, fmt.Errorf("match %d has no vector record", i)
		}
		if m.Vector.Id == "" {
			return nil, fmt.Errorf("match %d has no id", i)
		}
		matches = append(matches, db.Match{
			ID:       m.Vector.Id,
			Score:    widenScore(m.Score),
			Metadata: metadataToMap(m.Vector.Metadata, q.ReturnFields),
		})
	}

	return &db.SearchResult{Matches: matches}, nil
}

// buildFilter translates filter.Expression into Pinecone's metadata filter
// language: {"field": {"$eq": "value"}}, combined with $and.
func buildFilter(expr filter.Expression) (*pinecone.MetadataFilter, error) {
	if expr.IsEmpty() {
		return nil, nil
	}

	clauses := make([]any, 0, len(expr.Must()))
	for _, cond := range expr.Must() {
		clauses = append(clauses, map[string]any{
			cond.Key(): map[string]any{"$eq": cond.Value()},
		})
	}

	var raw map[string]any
	if len(clauses) == 1 {
		raw = clauses[0].(map[string]any)
	} else {
		raw = map[string]any{"$and": clauses}
	}

	f, err := structpb.NewStruct(raw)
	if err != nil {
		return nil, fmt.Errorf("encode filter: %w", err)
	}
	return f, nil
}

func metadataToMap(md *pinecone.Metadata, fields []string) map[string]any {
	if md == nil {
		return map[string]any{}
	}
	all := md.AsMap()
	if len(fields) == 0 {
		return all
	}
	picked := make(map[string]any, len(fields))
	for _, f := range fields {
		if v, ok := all[f]; ok {
			picked[f] = v
		}
	}
	return picked
}

// widenScore converts the float32 wire score to float64 without picking up
// binary noise (0.91 stays 0.91 rather than 0.9100000262260437).
func widenScore(f float32) float64 {
	v, err := strconv.ParseFloat(strconv.FormatFloat(float64(f), 'g', -1, 32), 64)
	if err != nil {
		return float64(f)
	}
	return v
}
