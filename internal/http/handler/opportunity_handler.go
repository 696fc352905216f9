package handler

import (
	"net/http"

	"github.com/outreach-crm/outreach-api/internal/domain"
	"github.com/outreach-crm/outreach-api/internal/repository"
	"github.com/outreach-crm/outreach-api/internal/service"
	"go.uber.org/zap"
)

// OpportunityHandler handles HTTP requests for product opportunities
type OpportunityHandler struct {
	opportunityService *service.OpportunityService
	contactService     *service.ContactService
	logger             *zap.Logger
}

func NewOpportunityHandler(opportunityService *service.OpportunityService, contactService *service.ContactService, logger *zap.Logger) *OpportunityHandler {
	return &OpportunityHandler{
		opportunityService: opportunityService,
		contactService:     contactService,
		logger:             logger,
	}
}

// List godoc
// @Summary List opportunities
// @Tags Opportunities
// @Produce json
// @Param healthSystemId query string false "Filter by health system"
// @Param status query string false "Filter by status" Enums(prospect, active, won)
// @Success 200 {array} domain.OpportunityDTO
// @Failure 400 {object} domain.APIError
// @Security CookieAuth
// @Security ApiKeyAuth
// @Router /opportunities [get]
func (h *OpportunityHandler) List(w http.ResponseWriter, r *http.Request) {
	var filters repository.OpportunityFilters

	hsID, err := parseOptionalUUID(r, "healthSystemId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	filters.HealthSystemID = hsID

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := domain.OpportunityStatus(raw)
		filters.Status = &status
	}

	opps, err := h.opportunityService.List(r.Context(), filters)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list opportunities")
		return
	}

	respondJSON(w, http.StatusOK, opps)
}

// Create godoc
// @Summary Create opportunity
// @Description Status defaults to prospect
// @Tags Opportunities
// @Accept json
// @Produce json
// @Param request body domain.CreateOpportunityRequest true "Opportunity data"
// @Success 201 {object} domain.OpportunityDTO
// @Failure 400 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security CookieAuth
// @Security ApiKeyAuth
// @Router /opportunities [post]
func (h *OpportunityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOpportunityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	opp, err := h.opportunityService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to create opportunity")
		return
	}

	w.Header().Set("Location", "/api/v1/opportunities/"+opp.ID.String())
	respondJSON(w, http.StatusCreated, opp)
}

// GetByID godoc
// @Summary Get opportunity
// @Tags Opportunities
// @Produce json
// @Param id path string true "Opportunity ID"
// @Success 200 {object} domain.OpportunityDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security ApiKeyAuth
// @Router /opportunities/{id} [get]
func (h *OpportunityHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id", "opportunity")
	if !ok {
		return
	}

	opp, err := h.opportunityService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to get opportunity")
		return
	}

	respondJSON(w, http.StatusOK, opp)
}

// Update godoc
// @Summary Update opportunity
// @Description Moving an opportunity out of prospect removes its contacts from the to-do list
// @Tags Opportunities
// @Accept json
// @Produce json
// @Param id path string true "Opportunity ID"
// @Param request body domain.UpdateOpportunityRequest true "Opportunity data"
// @Success 200 {object} domain.OpportunityDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security CookieAuth
// @Security ApiKeyAuth
// @Router /opportunities/{id} [put]
func (h *OpportunityHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id", "opportunity")
	if !ok {
		return
	}

	var req domain.UpdateOpportunityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	opp, err := h.opportunityService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to update opportunity")
		return
	}

	respondJSON(w, http.StatusOK, opp)
}

// Delete godoc
// @Summary Delete opportunity
// @Description Removes assignments; outreach history is kept without the opportunity link
// @Tags Opportunities
// @Param id path string true "Opportunity ID"
// @Success 204
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security ApiKeyAuth
// @Router /opportunities/{id} [delete]
func (h *OpportunityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id", "opportunity")
	if !ok {
		return
	}

	if err := h.opportunityService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "Failed to delete opportunity")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListContacts godoc
// @Summary List contacts assigned to an opportunity
// @Tags Opportunities
// @Produce json
// @Param id path string true "Opportunity ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.ContactDTO}
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security ApiKeyAuth
// @Router /opportunities/{id}/contacts [get]
func (h *OpportunityHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id", "opportunity")
	if !ok {
		return
	}

	if _, err := h.opportunityService.GetByID(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "Failed to get opportunity")
		return
	}

	page, pageSize := parsePaging(r)
	result, err := h.contactService.List(r.Context(), repository.ContactFilters{OpportunityID: &id}, page, pageSize)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list contacts")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
