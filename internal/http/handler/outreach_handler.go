package handler

import (
	"net/http"

	"github.com/outreach-crm/outreach-api/internal/service"
	"go.uber.org/zap"
)

type OutreachHandler struct {
	outreachService *service.OutreachService
	logger          *zap.Logger
}

func NewOutreachHandler(outreachService *service.OutreachService, logger *zap.Logger) *OutreachHandler {
	return &OutreachHandler{
		outreachService: outreachService,
		logger:          logger,
	}
}

// Delete godoc
// @Summary Delete outreach event
// @Tags Outreach
// @Param id path string true "Outreach event ID"
// @Success 204
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security ApiKeyAuth
// @Router /outreach/{id} [delete]
func (h *OutreachHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id", "outreach event")
	if !ok {
		return
	}

	if err := h.outreachService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "Failed to delete outreach event")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
