package handler

import (
	"net/http"

	"github.com/outreach-crm/outreach-api/internal/domain"
	"github.com/outreach-crm/outreach-api/internal/repository"
	"github.com/outreach-crm/outreach-api/internal/service"
	"go.uber.org/zap"
)

// ContactHandler handles HTTP requests for contacts, their outreach history and email prompts
type ContactHandler struct {
	contactService  *service.ContactService
	outreachService *service.OutreachService
	promptService   *service.PromptService
	logger          *zap.Logger
}

func NewContactHandler(
	contactService *service.ContactService,
	outreachService *service.OutreachService,
	promptService *service.PromptService,
	logger *zap.Logger,
) *ContactHandler {
	return &ContactHandler{
		contactService:  contactService,
		outreachService: outreachService,
		promptService:   promptService,
		logger:          logger,
	}
}

// List godoc
// @Summary List contacts
// @Tags Contacts
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param healthSystemId query string false "Filter by health system"
// @Param opportunityId query string false "Filter by assigned opportunity"
// @Param search query string false "Search by name, email or title"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.ContactDTO}
// @Failure 400 {object} domain.APIError
// @Security CookieAuth
// @Security ApiKeyAuth
// @Router /contacts [get]
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := repository.ContactFilters{Search: r.URL.Query().Get("search")}

	hsID, err := parseOptionalUUID(r, "healthSystemId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	filters.HealthSystemID = hsID

	oppID, err := parseOptionalUUID(r, "opportunityId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	filters.OpportunityID = oppID

	page, pageSize := parsePaging(r)
	result, err := h.contactService.List(r.Context(), filters, page, pageSize)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list contacts")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Create godoc
// @Summary Create contact
// @Tags Contacts
// @Accept json
// @Produce json
// @Param request body domain.CreateContactRequest true "Contact data"
// @Success 201 {object} domain.ContactDTO
// @Failure 400 {object} domain.APIError
// @Security CookieAuth
// @Security ApiKeyAuth
// @Router /contacts [post]
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateContactRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	contact, err := h.contactService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to create contact")
		return
	}

	w.Header().Set("Location", "/api/v1/contacts/"+contact.ID.String())
	respondJSON(w, http.StatusCreated, contact)
}

// GetByID godoc
// @Summary Get contact
// @Description Get a contact with its opportunity assignments
// @Tags Contacts
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} domain.ContactDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security ApiKeyAuth
// @Router /contacts/{id} [get]
func (h *ContactHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id", "contact")
	if !ok {
		return
	}

	contact, err := h.contactService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to get contact")
		return
	}

	respondJSON(w, http.StatusOK, contact)
}

// Update godoc
// @Summary Update contact
// @Tags Contacts
// @Accept json
// @Produce json
// @Param id path string true "Contact ID"
// @Param request body domain.UpdateContactRequest true "Contact data"
// @Success 200 {object} domain.ContactDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security ApiKeyAuth
// @Router /contacts/{id} [put]
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id", "contact")
	if !ok {
		return
	}

	var req domain.UpdateContactRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	contact, err := h.contactService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to update contact")
		return
	}

	respondJSON(w, http.StatusOK, contact)
}

// Delete godoc
// @Summary Delete contact
// @Description Deletes the contact with its assignments and outreach history
// @Tags Contacts
// @Param id path string true "Contact ID"
// @Success 204
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security ApiKeyAuth
// @Router /contacts/{id} [delete]
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id", "contact")
	if !ok {
		return
	}

	if err := h.contactService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "Failed to delete contact")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListOutreach godoc
// @Summary Outreach history
// @Description A contact's outreach events, newest first
// @Tags Outreach
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {array} domain.OutreachLogDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security ApiKeyAuth
// @Router /contacts/{id}/outreach [get]
func (h *ContactHandler) ListOutreach(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id", "contact")
	if !ok {
		return
	}

	history, err := h.outreachService.ListByContact(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list outreach")
		return
	}

	respondJSON(w, http.StatusOK, history)
}

// LogOutreach godoc
// @Summary Log outreach
// @Description Record a call, email or meeting. contactDate defaults to today.
// @Tags Outreach
// @Accept json
// @Produce json
// @Param id path string true "Contact ID"
// @Param request body domain.CreateOutreachRequest true "Outreach event"
// @Success 201 {object} domain.OutreachLogDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security ApiKeyAuth
// @Router /contacts/{id}/outreach [post]
func (h *ContactHandler) LogOutreach(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id", "contact")
	if !ok {
		return
	}

	var req domain.CreateOutreachRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	entry, err := h.outreachService.Log(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to log outreach")
		return
	}

	respondJSON(w, http.StatusCreated, entry)
}

// GetEmailPrompt godoc
// @Summary Email drafting prompt
// @Description Prompt for drafting an outreach email, keyed by the opportunity's product
// @Tags Contacts
// @Produce json
// @Param id path string true "Contact ID"
// @Param opportunityId query string false "Opportunity to write about"
// @Success 200 {object} domain.EmailPromptDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security CookieAuth
// @Security ApiKeyAuth
// @Router /contacts/{id}/email-prompt [get]
func (h *ContactHandler) GetEmailPrompt(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id", "contact")
	if !ok {
		return
	}

	oppID, err := parseOptionalUUID(r, "opportunityId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	prompt, err := h.promptService.GetEmailPrompt(r.Context(), id, oppID)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to build email prompt")
		return
	}

	respondJSON(w, http.StatusOK, prompt)
}
