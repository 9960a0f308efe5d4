package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/rydeebs/cleanupIPP/internal/config"
	apierrors "github.com/rydeebs/cleanupIPP/internal/errors"
	"github.com/rydeebs/cleanupIPP/internal/infrastructure"
	custommw "github.com/rydeebs/cleanupIPP/internal/middleware"
	"github.com/rydeebs/cleanupIPP/internal/services"
	"github.com/rydeebs/cleanupIPP/pkg/contracts"
)

// NewRouter assembles the HTTP surface: middleware chain, the clean
// endpoints, health, and Prometheus metrics.
func NewRouter(cfg *config.Config, logger *slog.Logger, service *services.CleanService, metrics *infrastructure.Metrics) http.Handler {
	errorHandler := apierrors.NewErrorHandler(logger)

	r := chi.NewRouter()
	r.Use(custommw.RequestID)
	r.Use(custommw.StructuredLogger(logger))
	r.Use(custommw.Recoverer(logger, errorHandler))

	cleanHandler := NewCleanHandler(service, logger, errorHandler, cfg.Server.MaxUploadBytes)
	healthHandler := NewHealthHandler(contracts.Version)

	r.Route("/api", func(r chi.Router) {
		r.Get("/healthz", healthHandler.Healthz)

		r.Group(func(r chi.Router) {
			if cfg.Server.RateLimit.Enabled {
				limiter := custommw.NewRateLimiter(cfg.Server.RateLimit.RPS, cfg.Server.RateLimit.Burst, errorHandler)
				r.Use(limiter.Limit)
			}
			r.Mount("/clean", cleanHandler.Routes())
		})
	})

	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		render.Status(req, http.StatusNotFound)
		render.JSON(w, req, apierrors.NewErrorResponse(
			apierrors.New(http.StatusNotFound, "NOT_FOUND", "Resource not found")))
	})

	return r
}
