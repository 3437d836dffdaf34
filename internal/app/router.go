package app

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/paradict-backend/internal/config"
	"github.com/heartmarshall/paradict-backend/internal/transport/middleware"
	"github.com/heartmarshall/paradict-backend/internal/transport/rest"
)

// NewRouter mounts the API and health endpoints behind the middleware chain.
// Health probes bypass rate limiting so orchestrators are never throttled.
func NewRouter(cfg *config.Config, svcs *Services, limiter *middleware.RateLimiter, logger *slog.Logger) http.Handler {
	api := http.NewServeMux()
	rest.NewDictionaryHandler(svcs.Lookup, cfg.Cache.HeaderValue(), logger).Register(api)

	var limit middleware.Middleware
	if limiter != nil {
		limit = limiter.Middleware()
	}

	mux := http.NewServeMux()
	rest.NewHealthHandler(svcs.Provider, BuildVersion()).Register(mux)
	mux.Handle("/api/", middleware.Chain(middleware.CORS(cfg.CORS), limit)(api))

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.Logger(logger),
	)(mux)
}
