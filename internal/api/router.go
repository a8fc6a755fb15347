package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/api/handler"
	apimw "github.com/TABARC-Code/wp-scheduled-content-auditor/internal/api/middleware"
	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/service"
)

// NewRouter wires the chi router, attaches all middleware, and registers
// every route. It is the single source of truth for the HTTP surface area.
func NewRouter(
	auditSvc *service.AuditService,
	transitionSvc *service.TransitionService,
	reg prometheus.Gatherer,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// --- global middleware (applied to every route) ---
	r.Use(chimw.Recoverer)          // recover panics, return 500
	r.Use(chimw.RealIP)             // trust X-Forwarded-For / X-Real-IP
	r.Use(chimw.RequestSize(1<<20)) // 1 MB max request body
	r.Use(apimw.CorrelationID)      // X-Correlation-ID inject / echo
	r.Use(apimw.RequestLogger(logger))

	// --- handler instances ---
	ah := handler.NewAuditHandler(auditSvc, logger)
	th := handler.NewTransitionHandler(transitionSvc, logger)
	hh := handler.NewHealthHandler()

	// --- routes ---
	r.Get("/health", hh.Health)

	// Raw Prometheus scrape endpoint (for Prometheus server / Grafana)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		// Read-only audit surface
		r.Get("/audit", ah.RunAudit)
		r.Get("/cron", ah.CronHealth)
		r.Get("/items/{id}", ah.GetItem)

		// The single mutating endpoint
		r.Post("/items/{id}/transition", th.Apply)
	})

	return r
}
