package handler

import (
	"net/http"

	"github.com/outreach-crm/outreach-api/internal/domain"
	"github.com/outreach-crm/outreach-api/internal/repository"
	"github.com/outreach-crm/outreach-api/internal/service"
	"go.uber.org/zap"
)

// HealthSystemHandler handles HTTP requests for health systems (accounts)
type HealthSystemHandler struct {
	healthSystemService *service.HealthSystemService
	opportunityService  *service.OpportunityService
	contactService      *service.ContactService
	logger              *zap.Logger
}

func NewHealthSystemHandler(
	healthSystemService *service.HealthSystemService,
	opportunityService *service.OpportunityService,
	contactService *service.ContactService,
	logger *zap.Logger,
) *HealthSystemHandler {
	return &HealthSystemHandler{
		healthSystemService: healthSystemService,
		opportunityService:  opportunityService,
		contactService:      contactService,
		logger:              logger,
	}
}

// List godoc
// @Summary List health systems
// @Description Paginated list of health systems with opportunity and contact counts
// @Tags HealthSystems
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param search query string false "Search by name"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.HealthSystemDTO}
// @Failure 500 {object} domain.APIError
// @Security CookieAuth
// @Security ApiKeyAuth
// @Router /health-systems [get]
func (h *HealthSystemHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePaging(r)

	result, err := h.healthSystemService.List(r.Context(), page, pageSize, r.URL.Query().Get("search"))
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list health systems")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Create godoc
// @Summary Create health system
// @Tags HealthSystems
// @Accept json
// @Produce json
// @Param request body domain.CreateHealthSystemRequest true "Health system data"
// @Success 201 {object} domain.HealthSystemDTO
// @Failure 400 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security CookieAuth
// @Security ApiKeyAuth
// @Router /health-systems [post]
func (h *HealthSystemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateHealthSystemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	hs, err := h.healthSystemService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to create health system")
		return
	}

	w.Header().Set("Location", "/api/v1/health-systems/"+hs.ID.String())
	respondJSON(w, http.StatusCreated, hs)
}

// GetByID godoc
// @Summary Get health system
// @Tags HealthSystems
// @Produce json
// @Param id path string true "Health system ID"
// @Success 200 {object} domain.HealthSystemDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security ApiKeyAuth
// @Router /health-systems/{id} [get]
func (h *HealthSystemHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id", "health system")
	if !ok {
		return
	}

	hs, err := h.healthSystemService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to get health system")
		return
	}

	respondJSON(w, http.StatusOK, hs)
}

// Update godoc
// @Summary Update health system
// @Tags HealthSystems
// @Accept json
// @Produce json
// @Param id path string true "Health system ID"
// @Param request body domain.UpdateHealthSystemRequest true "Health system data"
// @Success 200 {object} domain.HealthSystemDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security CookieAuth
// @Security ApiKeyAuth
// @Router /health-systems/{id} [put]
func (h *HealthSystemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id", "health system")
	if !ok {
		return
	}

	var req domain.UpdateHealthSystemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	hs, err := h.healthSystemService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to update health system")
		return
	}

	respondJSON(w, http.StatusOK, hs)
}

// Delete godoc
// @Summary Delete health system
// @Description Deletes the health system with its opportunities, contacts, assignments and outreach history
// @Tags HealthSystems
// @Param id path string true "Health system ID"
// @Success 204
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security ApiKeyAuth
// @Router /health-systems/{id} [delete]
func (h *HealthSystemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id", "health system")
	if !ok {
		return
	}

	if err := h.healthSystemService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "Failed to delete health system")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListOpportunities godoc
// @Summary List a health system's opportunities
// @Tags HealthSystems
// @Produce json
// @Param id path string true "Health system ID"
// @Success 200 {array} domain.OpportunityDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security ApiKeyAuth
// @Router /health-systems/{id}/opportunities [get]
func (h *HealthSystemHandler) ListOpportunities(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id", "health system")
	if !ok {
		return
	}

	if _, err := h.healthSystemService.GetByID(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "Failed to get health system")
		return
	}

	opps, err := h.opportunityService.List(r.Context(), repository.OpportunityFilters{HealthSystemID: &id})
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list opportunities")
		return
	}

	respondJSON(w, http.StatusOK, opps)
}

// ListContacts godoc
// @Summary List a health system's contacts
// @Tags HealthSystems
// @Produce json
// @Param id path string true "Health system ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.ContactDTO}
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security ApiKeyAuth
// @Router /health-systems/{id}/contacts [get]
func (h *HealthSystemHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id", "health system")
	if !ok {
		return
	}

	if _, err := h.healthSystemService.GetByID(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "Failed to get health system")
		return
	}

	page, pageSize := parsePaging(r)
	result, err := h.contactService.List(r.Context(), repository.ContactFilters{HealthSystemID: &id}, page, pageSize)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list contacts")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
