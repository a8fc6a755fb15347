package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apimw "github.com/TABARC-Code/wp-scheduled-content-auditor/internal/api/middleware"
	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/service"
)

// AuditHandler serves the read-only audit endpoints.
type AuditHandler struct {
	svc    *service.AuditService
	logger *zap.Logger
}

func NewAuditHandler(svc *service.AuditService, logger *zap.Logger) *AuditHandler {
	return &AuditHandler{svc: svc, logger: logger}
}

// RunAudit handles GET /api/v1/audit
//
// @Summary     Audit scheduled content
// @Tags        audit
// @Produce     json
// @Success     200  {object}  service.AuditReport
// @Failure     500  {object}  map[string]string
// @Router      /api/v1/audit [get]
func (h *AuditHandler) RunAudit(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.RunAudit(r.Context())
	if err != nil {
		h.logger.Error("audit failed",
			zap.String("correlation_id", apimw.GetCorrelationID(r.Context())),
			zap.Error(err),
		)
		respondError(w, http.StatusInternalServerError, "audit failed")
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// CronHealth handles GET /api/v1/cron
//
// @Summary  Deferred-queue health snapshot
// @Tags     audit
// @Produce  json
// @Success  200  {object}  domain.CronHealth
// @Router   /api/v1/cron [get]
func (h *AuditHandler) CronHealth(w http.ResponseWriter, r *http.Request) {
	health, err := h.svc.CronHealth(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "cron snapshot failed")
		return
	}
	respondJSON(w, http.StatusOK, health)
}

// GetItem handles GET /api/v1/items/{id}
//
// @Summary  Get a content item by ID
// @Tags     items
// @Produce  json
// @Param    id   path      string  true  "Item UUID"
// @Success  200  {object}  domain.Item
// @Failure  404  {object}  map[string]string
// @Router   /api/v1/items/{id} [get]
func (h *AuditHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	item, err := h.svc.GetItem(r.Context(), id)
	if err != nil {
		mapError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}
