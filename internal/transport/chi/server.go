package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mjmj007a/addictiontube/internal/domain"
	"github.com/mjmj007a/addictiontube/internal/domain/search/request"
	"github.com/mjmj007a/addictiontube/internal/domain/search/result"
	"github.com/mjmj007a/addictiontube/internal/logger"
	healthuc "github.com/mjmj007a/addictiontube/internal/usecase/health"
	searchuc "github.com/mjmj007a/addictiontube/internal/usecase/search"
)

// Client-facing failure messages. Causes are logged, never returned.
const (
	msgEmbeddingFailed = "Embedding generation failed"
	msgRetrievalFailed = "Vector index query failed"
	msgInternal        = "internal error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server implements ServerInterface.
type Server struct {
	search        *searchuc.Service
	health        *healthuc.Service
	defaults      request.Defaults
	logger        *zap.Logger
	errorHandlers []errorHandler
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	health *healthuc.Service,
	defaults request.Defaults,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		search:   search,
		health:   health,
		defaults: defaults,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEmbeddingFailed, http.StatusInternalServerError, msgEmbeddingFailed),
		sentinelHandler(domain.ErrRetrievalFailed, http.StatusInternalServerError, msgRetrievalFailed),
	}
	return s
}

// SearchStories handles GET /search_stories.
func (s *Server) SearchStories(w http.ResponseWriter, r *http.Request, params SearchStoriesParams) {
	req := request.FromParams(params.Q, params.Category, s.defaults)

	ctx, usage := domain.NewContextWithUsage(r.Context())
	stories, err := s.search.Search(ctx, req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]StoryItem, len(stories))
	for i := range stories {
		items[i] = storyToItem(&stories[i])
	}

	setEmbeddingHeaders(w, usage)
	writeJSON(w, http.StatusOK, items)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func setEmbeddingHeaders(w http.ResponseWriter, usage *domain.EmbeddingUsage) {
	if usage != nil && usage.Used {
		w.Header().Set("X-Embedding-Tokens", strconv.Itoa(usage.TotalTokens))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, msg string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContextOr(r.Context(), s.logger)
	log.Error("search failed", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	writeError(w, http.StatusInternalServerError, msgInternal)
}

func storyToItem(st *result.Story) StoryItem {
	return StoryItem{
		Id:          st.ID(),
		Score:       st.Score(),
		Title:       st.Title(),
		Description: st.Description(),
	}
}
