package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apimw "github.com/TABARC-Code/wp-scheduled-content-auditor/internal/api/middleware"
	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/domain"
	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/service"
)

// TransitionHandler handles the single mutating endpoint.
type TransitionHandler struct {
	svc    *service.TransitionService
	logger *zap.Logger
}

func NewTransitionHandler(svc *service.TransitionService, logger *zap.Logger) *TransitionHandler {
	return &TransitionHandler{svc: svc, logger: logger}
}

// transitionBody is the inbound payload. BumpMinutes mirrors the admin
// form field; zero or negative values are normalized downstream.
type transitionBody struct {
	Kind        domain.TransitionKind `json:"kind"`
	BumpMinutes int                   `json:"bump_minutes,omitempty"`
	Token       string                `json:"token"`
}

// Apply handles POST /api/v1/items/{id}/transition
//
// @Summary     Publish a scheduled item now, or bump its schedule
// @Tags        items
// @Accept      json
// @Produce     json
// @Param       id    path      string          true  "Item UUID"
// @Param       body  body      transitionBody  true  "Transition payload"
// @Success     200   {object}  map[string]string
// @Failure     403   {object}  map[string]string
// @Failure     422   {object}  map[string]string
// @Router      /api/v1/items/{id}/transition [post]
func (h *TransitionHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var body transitionBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req := domain.TransitionRequest{
		ItemID:       chi.URLParam(r, "id"),
		Kind:         body.Kind,
		BumpDuration: time.Duration(body.BumpMinutes) * time.Minute,
		Token:        body.Token,
	}

	result, err := h.svc.Apply(r.Context(), req)
	if err != nil {
		h.logger.Warn("transition failed",
			zap.String("correlation_id", apimw.GetCorrelationID(r.Context())),
			zap.String("item_id", req.ItemID),
			zap.String("kind", string(req.Kind)),
			zap.Error(err),
		)
		mapError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"result": string(result)})
}
