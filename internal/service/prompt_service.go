package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/outreach-crm/outreach-api/internal/domain"
	"github.com/outreach-crm/outreach-api/internal/mapper"
	"github.com/outreach-crm/outreach-api/internal/prompt"
	"github.com/outreach-crm/outreach-api/internal/repository"
	"go.uber.org/zap"
)

// PromptService drafts outreach email prompts for a contact
type PromptService struct {
	contactRepo     *repository.ContactRepository
	opportunityRepo *repository.OpportunityRepository
	assignmentRepo  *repository.AssignmentRepository
	outreachRepo    *repository.OutreachRepository
	generator       *prompt.Generator
	logger          *zap.Logger
}

func NewPromptService(
	contactRepo *repository.ContactRepository,
	opportunityRepo *repository.OpportunityRepository,
	assignmentRepo *repository.AssignmentRepository,
	outreachRepo *repository.OutreachRepository,
	generator *prompt.Generator,
	logger *zap.Logger,
) *PromptService {
	return &PromptService{
		contactRepo:     contactRepo,
		opportunityRepo: opportunityRepo,
		assignmentRepo:  assignmentRepo,
		outreachRepo:    outreachRepo,
		generator:       generator,
		logger:          logger,
	}
}

// GetEmailPrompt renders a prompt for the contact. Without an opportunity id the contact's
// first prospect assignment is used, and with none the generic template applies.
func (s *PromptService) GetEmailPrompt(ctx context.Context, contactID uuid.UUID, opportunityID *uuid.UUID) (*domain.EmailPromptDTO, error) {
	contact, err := s.contactRepo.GetByID(ctx, contactID)
	if err != nil {
		return nil, wrapRepoError(err, ErrContactNotFound, "get contact")
	}

	opp, err := s.pickOpportunity(ctx, contact, opportunityID)
	if err != nil {
		return nil, err
	}

	data := prompt.Data{
		FirstName:      contact.FirstName,
		Title:          contact.Title,
		NeverContacted: true,
	}
	if contact.HealthSystem != nil {
		data.AccountName = contact.HealthSystem.Name
	}
	if opp != nil {
		data.Product = opp.Product
	}

	history, err := s.outreachRepo.ListByContact(ctx, contact.ID, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to load outreach history: %w", err)
	}
	if len(history) > 0 {
		data.NeverContacted = false
		data.LastMethod = string(history[0].ContactMethod)
		data.LastDate = mapper.FormatDate(history[0].ContactDate)
	}

	rendered, err := s.generator.Generate(data)
	if err != nil {
		return nil, fmt.Errorf("failed to render email prompt: %w", err)
	}

	dto := &domain.EmailPromptDTO{
		ContactID: contact.ID,
		Product:   data.Product,
		Template:  rendered.Template,
		Subject:   rendered.Subject,
		Prompt:    rendered.Body,
	}
	if opp != nil {
		dto.OpportunityID = &opp.ID
	}
	return dto, nil
}

func (s *PromptService) pickOpportunity(ctx context.Context, contact *domain.Contact, opportunityID *uuid.UUID) (*domain.Opportunity, error) {
	if opportunityID != nil {
		opp, err := s.opportunityRepo.GetByID(ctx, *opportunityID)
		if err != nil {
			return nil, wrapRepoError(err, ErrOpportunityNotFound, "get opportunity")
		}
		if opp.HealthSystemID != contact.HealthSystemID {
			return nil, ErrHealthSystemMismatch
		}
		return opp, nil
	}

	assignments, err := s.assignmentRepo.ListByContact(ctx, contact.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	for i := range assignments {
		if opp := assignments[i].Opportunity; opp != nil && opp.IsProspect() {
			return opp, nil
		}
	}
	if len(assignments) > 0 && assignments[0].Opportunity != nil {
		return assignments[0].Opportunity, nil
	}
	return nil, nil
}
