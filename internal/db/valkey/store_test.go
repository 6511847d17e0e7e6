package valkey

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/mjmj007a/addictiontube/internal/db"
	"github.com/mjmj007a/addictiontube/internal/domain/search/filter"
)

func categoryFilter(t *testing.T, value string) filter.Expression {
	t.Helper()
	c, err := filter.NewMatch("category", value)
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}
	e, err := filter.NewExpression(c)
	if err != nil {
		t.Fatalf("NewExpression: %v", err)
	}
	return e
}

// --- client.go tests ---

func TestPing_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.Result(mock.RedisString("PONG")))

	s := NewStoreForTest(c, "")
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPing_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c, "")
	err := s.Ping(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpPing {
		t.Errorf("expected db.Error with op PING, got %v", err)
	}
}

func TestNewStore_RequiresAddrs(t *testing.T) {
	if _, err := NewStore(Config{}); err == nil {
		t.Fatal("expected error for empty addrs")
	}
}

func TestContainsIgnoreCase(t *testing.T) {
	tests := []struct {
		s, sub string
		want   bool
	}{
		{"Unknown Index name", "unknown index name", true},
		{"NO SUCH INDEX", "no such index", true},
		{"short", "longer than input", false},
		{"", "", true},
	}
	for _, tc := range tests {
		got := containsIgnoreCase(tc.s, tc.sub)
		if got != tc.want {
			t.Errorf("containsIgnoreCase(%q, %q) = %v, want %v", tc.s, tc.sub, got, tc.want)
		}
	}
}

// --- search.go tests ---

func TestSearchKNN_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	var got []string
	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			got = cmd
			return cmd[0] == "FT.SEARCH"
		})).
		Return(mock.Result(mock.RedisArray(
			mock.RedisInt64(2),
			mock.RedisString("story:a1"),
			mock.RedisArray(
				mock.RedisString("__vector_score"),
				mock.RedisString("0.09"),
				mock.RedisString("title"),
				mock.RedisString("Hope Story"),
				mock.RedisString("category"),
				mock.RedisString("1028"),
			),
			mock.RedisString("story:a2"),
			mock.RedisArray(
				mock.RedisString("__vector_score"),
				mock.RedisString("0.13"),
				mock.RedisString("title"),
				mock.RedisString("Recovery Tale"),
			),
		)))

	s := NewStoreForTest(c, "story:")
	res, err := s.SearchKNN(context.Background(), &db.KNNQuery{
		IndexName:       "stories:idx",
		Vector:          []float32{0.1, 0.2},
		K:               5,
		Filters:         categoryFilter(t, "1028"),
		IncludeMetadata: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got[1] != "stories:idx" {
		t.Errorf("index = %q", got[1])
	}
	if got[2] != "(@category:{1028})=>[KNN 5 @vector $BLOB]" {
		t.Errorf("query = %q", got[2])
	}

	if len(res.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(res.Matches))
	}
	first := res.Matches[0]
	if first.ID != "a1" {
		t.Errorf("ID = %q, want key prefix stripped", first.ID)
	}
	// cosine distance 0.09 maps to similarity 0.91
	if first.Score < 0.909 || first.Score > 0.911 {
		t.Errorf("expected score ~0.91, got %f", first.Score)
	}
	if first.Metadata["title"] != "Hope Story" {
		t.Errorf("title = %v", first.Metadata["title"])
	}
	if _, ok := first.Metadata["__vector_score"]; ok {
		t.Error("__vector_score must not leak into metadata")
	}
	if res.Matches[1].ID != "a2" {
		t.Errorf("order not preserved: second ID = %q", res.Matches[1].ID)
	}
}

func TestSearchKNN_ReturnFieldsAndLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	var got []string
	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			got = cmd
			return true
		})).
		Return(mock.Result(mock.RedisArray(mock.RedisInt64(0))))

	s := NewStoreForTest(c, "")
	_, err := s.SearchKNN(context.Background(), &db.KNNQuery{
		IndexName:       "idx",
		Vector:          []float32{0.1},
		K:               3,
		IncludeMetadata: true,
		ReturnFields:    []string{"title", "description"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	joined := strings.Join(got, " ")
	if !strings.Contains(joined, "*=>[KNN 3 @vector $BLOB]") {
		t.Errorf("expected unfiltered KNN query, got %q", joined)
	}
	if !strings.Contains(joined, "RETURN 3 __vector_score title description") {
		t.Errorf("expected RETURN clause, got %q", joined)
	}
	if !strings.Contains(joined, "LIMIT 0 3") {
		t.Errorf("expected LIMIT clause, got %q", joined)
	}
	if !strings.Contains(joined, "DIALECT 2") {
		t.Errorf("expected DIALECT 2, got %q", joined)
	}
}

func TestSearchKNN_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		Return(mock.Result(mock.RedisArray(mock.RedisInt64(0))))

	s := NewStoreForTest(c, "")
	res, err := s.SearchKNN(context.Background(), &db.KNNQuery{
		IndexName: "idx", Vector: []float32{0.1}, K: 5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Matches) != 0 {
		t.Errorf("expected no matches, got %d", len(res.Matches))
	}
}

func TestSearchKNN_EmptyCategoryMatchesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)
	// no EXPECT: the store must not send FT.SEARCH

	s := NewStoreForTest(c, "")
	res, err := s.SearchKNN(context.Background(), &db.KNNQuery{
		IndexName: "idx",
		Vector:    []float32{0.1},
		K:         5,
		Filters:   categoryFilter(t, ""),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Matches) != 0 {
		t.Errorf("expected no matches, got %d", len(res.Matches))
	}
}

func TestSearchKNN_UnknownIndex(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		Return(mock.Result(mock.RedisError("Unknown Index name")))

	s := NewStoreForTest(c, "")
	_, err := s.SearchKNN(context.Background(), &db.KNNQuery{
		IndexName: "missing", Vector: []float32{0.1}, K: 5,
	})
	if !errors.Is(err, db.ErrIndexNotFound) {
		t.Errorf("expected ErrIndexNotFound, got %v", err)
	}
}

func TestSearchKNN_TransportError(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c, "")
	_, err := s.SearchKNN(context.Background(), &db.KNNQuery{
		IndexName: "idx", Vector: []float32{0.1}, K: 5,
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected wrapped DeadlineExceeded, got %v", err)
	}
}

func TestSearchKNN_MalformedScore(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		Return(mock.Result(mock.RedisArray(
			mock.RedisInt64(1),
			mock.RedisString("doc:1"),
			mock.RedisArray(
				mock.RedisString("__vector_score"),
				mock.RedisString("not-a-number"),
			),
		)))

	s := NewStoreForTest(c, "")
	_, err := s.SearchKNN(context.Background(), &db.KNNQuery{
		IndexName: "idx", Vector: []float32{0.1}, K: 5,
	})
	if err == nil {
		t.Fatal("expected error for malformed score")
	}
}

func TestSearchKNN_Validation(t *testing.T) {
	s := &Store{}
	ctx := context.Background()

	_, err := s.SearchKNN(ctx, &db.KNNQuery{Vector: []float32{0.1}, K: 10})
	if !errors.Is(err, db.ErrInvalidQuery) {
		t.Errorf("expected ErrInvalidQuery for empty index name, got %v", err)
	}

	_, err = s.SearchKNN(ctx, &db.KNNQuery{IndexName: "idx", K: 10})
	if !errors.Is(err, db.ErrInvalidQuery) {
		t.Errorf("expected ErrInvalidQuery for empty vector, got %v", err)
	}

	_, err = s.SearchKNN(ctx, &db.KNNQuery{IndexName: "idx", Vector: []float32{0.1}, K: 0})
	if !errors.Is(err, db.ErrInvalidQuery) {
		t.Errorf("expected ErrInvalidQuery for k=0, got %v", err)
	}
}

// --- filter building ---

func TestBuildFilter(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"plain", "1028", "@category:{1028}"},
		{"spaces", "hope story", `@category:{hope\ story}`},
		{"punctuation", "a-b.c", `@category:{a\-b\.c}`},
		{"braces", "x}y", `@category:{x\}y}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildFilter(categoryFilter(t, tt.value))
			if got != tt.want {
				t.Errorf("buildFilter() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildFilter_Empty(t *testing.T) {
	if got := buildFilter(filter.Expression{}); got != "" {
		t.Errorf("expected empty filter, got %q", got)
	}
}

func TestVectorToBytes(t *testing.T) {
	b := vectorToBytes([]float32{1, 2})
	if len(b) != 8 {
		t.Fatalf("expected 8 bytes, got %d", len(b))
	}
}
