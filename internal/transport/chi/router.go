package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/mjmj007a/addictiontube/internal/metrics"
)

// NewRouter mounts the server's routes behind the standard middleware stack.
func NewRouter(server ServerInterface, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(WideEvent(logger))
	r.Use(metrics.Middleware())

	HandlerWithOptions(server, ChiServerOptions{
		BaseRouter: r,
		ErrorHandlerFunc: func(w http.ResponseWriter, _ *http.Request, err error) {
			logger.Warn("invalid request", zap.Error(err))
			writeError(w, http.StatusBadRequest, "invalid request")
		},
	})
	return r
}
