package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"authgw/internal/platform/metrics"
	"authgw/internal/platform/middleware"
	"authgw/internal/txlog"
)

// NewRouter assembles the full middleware chain and mounts every endpoint.
// Recovery sits outermost so a panic already recorded by the transaction
// middleware still produces a well-formed 500 envelope.
func NewRouter(logger *slog.Logger, authHandler *AuthHandler, tx *txlog.Interceptor, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()

	r.Use(Recovery(logger))
	r.Use(middleware.RequestTime)
	r.Use(middleware.ClientMetadata)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(txlog.Middleware(tx))
	if m != nil {
		r.Use(middleware.Latency(m))
	}

	authHandler.Register(r)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}
