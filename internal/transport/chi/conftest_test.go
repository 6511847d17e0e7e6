package chi

import (
	"context"
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/mjmj007a/addictiontube/internal/domain"
	"github.com/mjmj007a/addictiontube/internal/domain/search/request"
	"github.com/mjmj007a/addictiontube/internal/domain/search/result"
	healthuc "github.com/mjmj007a/addictiontube/internal/usecase/health"
	searchuc "github.com/mjmj007a/addictiontube/internal/usecase/search"
)

type fakeEmbedder struct {
	tokens    int
	err       error
	calls     int
	lastQuery string
	healthErr error
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	f.calls++
	f.lastQuery = text
	if f.err != nil {
		return domain.EmbeddingResult{}, f.err
	}
	return domain.EmbeddingResult{Embedding: []float32{0.1, 0.2, 0.3}, TotalTokens: f.tokens}, nil
}

func (f *fakeEmbedder) HealthCheck(context.Context) error { return f.healthErr }

type fakeRetriever struct {
	stories      []result.Story
	err          error
	calls        int
	lastCategory string
	pingErr      error
}

func (f *fakeRetriever) Search(_ context.Context, _ []float32, category string, _ int) ([]result.Story, error) {
	f.calls++
	f.lastCategory = category
	return f.stories, f.err
}

func (f *fakeRetriever) Ping(context.Context) error { return f.pingErr }

type testEnv struct {
	emb     *fakeEmbedder
	ret     *fakeRetriever
	handler http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	emb := &fakeEmbedder{}
	ret := &fakeRetriever{}
	server := NewServer(
		searchuc.New(emb, ret),
		healthuc.New(ret, emb),
		request.DefaultValues(),
		zap.NewNop(),
	)
	return &testEnv{emb: emb, ret: ret, handler: NewRouter(server, zap.NewNop())}
}
