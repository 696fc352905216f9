package handler

import (
	"net/http"

	"github.com/outreach-crm/outreach-api/internal/domain"
	"github.com/outreach-crm/outreach-api/internal/service"
	"go.uber.org/zap"
)

// AssignmentHandler links contacts to opportunities with a follow-up cadence
type AssignmentHandler struct {
	assignmentService *service.AssignmentService
	logger            *zap.Logger
}

func NewAssignmentHandler(assignmentService *service.AssignmentService, logger *zap.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
		logger:            logger,
	}
}

// Create godoc
// @Summary Assign contact to opportunity
// @Description cadenceDays is clamped to 1..90 and defaults to 10
// @Tags Assignments
// @Accept json
// @Produce json
// @Param request body domain.CreateAssignmentRequest true "Assignment"
// @Success 201 {object} domain.AssignmentDTO
// @Failure 400 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security CookieAuth
// @Security ApiKeyAuth
// @Router /assignments [post]
func (h *AssignmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateAssignmentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	assignment, err := h.assignmentService.Assign(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to create assignment")
		return
	}

	respondJSON(w, http.StatusCreated, assignment)
}

// UpdateCadence godoc
// @Summary Change follow-up cadence
// @Tags Assignments
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Param request body domain.UpdateAssignmentRequest true "Cadence"
// @Success 200 {object} domain.AssignmentDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security ApiKeyAuth
// @Router /assignments/{id} [put]
func (h *AssignmentHandler) UpdateCadence(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id", "assignment")
	if !ok {
		return
	}

	var req domain.UpdateAssignmentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	assignment, err := h.assignmentService.UpdateCadence(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to update assignment")
		return
	}

	respondJSON(w, http.StatusOK, assignment)
}

// Delete godoc
// @Summary Unassign contact
// @Tags Assignments
// @Param id path string true "Assignment ID"
// @Success 204
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security ApiKeyAuth
// @Router /assignments/{id} [delete]
func (h *AssignmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id", "assignment")
	if !ok {
		return
	}

	if err := h.assignmentService.Unassign(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "Failed to delete assignment")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
