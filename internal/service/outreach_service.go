package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/outreach-crm/outreach-api/internal/cadence"
	"github.com/outreach-crm/outreach-api/internal/domain"
	"github.com/outreach-crm/outreach-api/internal/mapper"
	"github.com/outreach-crm/outreach-api/internal/metrics"
	"github.com/outreach-crm/outreach-api/internal/repository"
	"go.uber.org/zap"
)

// OutreachService records calls, emails and meetings with contacts
type OutreachService struct {
	outreachRepo    *repository.OutreachRepository
	contactRepo     *repository.ContactRepository
	opportunityRepo *repository.OpportunityRepository
	metrics         *metrics.Metrics
	clock           Clock
	location        *time.Location
	logger          *zap.Logger
}

func NewOutreachService(
	outreachRepo *repository.OutreachRepository,
	contactRepo *repository.ContactRepository,
	opportunityRepo *repository.OpportunityRepository,
	m *metrics.Metrics,
	clock Clock,
	location *time.Location,
	logger *zap.Logger,
) *OutreachService {
	return &OutreachService{
		outreachRepo:    outreachRepo,
		contactRepo:     contactRepo,
		opportunityRepo: opportunityRepo,
		metrics:         m,
		clock:           clock,
		location:        location,
		logger:          logger,
	}
}

// Log records an outreach event. An empty contact date means today; a linked
// opportunity must belong to the contact's health system.
func (s *OutreachService) Log(ctx context.Context, contactID uuid.UUID, req *domain.CreateOutreachRequest) (*domain.OutreachLogDTO, error) {
	contact, err := s.contactRepo.GetByID(ctx, contactID)
	if err != nil {
		return nil, wrapRepoError(err, ErrContactNotFound, "get contact")
	}

	if !req.ContactMethod.IsValid() {
		return nil, ErrInvalidContactMethod
	}

	contactDate := today(s.clock, s.location)
	if req.ContactDate != "" {
		parsed, err := time.Parse(domain.DateFormat, req.ContactDate)
		if err != nil {
			return nil, ErrInvalidContactDate
		}
		contactDate = cadence.DateOf(parsed)
	}

	entry := &domain.OutreachLog{
		ContactID:     contact.ID,
		ContactMethod: req.ContactMethod,
		ContactDate:   contactDate,
		Notes:         req.Notes,
	}

	if req.OpportunityID != nil {
		opp, err := s.opportunityRepo.GetByID(ctx, *req.OpportunityID)
		if err != nil {
			return nil, wrapRepoError(err, fmt.Errorf("%w: opportunity %s does not exist", ErrInvalidInput, *req.OpportunityID), "get opportunity")
		}
		if opp.HealthSystemID != contact.HealthSystemID {
			return nil, ErrHealthSystemMismatch
		}
		entry.OpportunityID = &opp.ID
		entry.Opportunity = opp
	}

	if err := s.outreachRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to log outreach: %w", err)
	}

	s.metrics.RecordOutreach(string(entry.ContactMethod))
	s.logger.Info("outreach logged",
		zap.String("contact_id", contact.ID.String()),
		zap.String("method", string(entry.ContactMethod)),
		zap.String("contact_date", mapper.FormatDate(entry.ContactDate)),
	)

	dto := mapper.ToOutreachLogDTO(entry)
	return &dto, nil
}

// ListByContact returns the contact's outreach history, newest first
func (s *OutreachService) ListByContact(ctx context.Context, contactID uuid.UUID) ([]domain.OutreachLogDTO, error) {
	if _, err := s.contactRepo.GetByID(ctx, contactID); err != nil {
		return nil, wrapRepoError(err, ErrContactNotFound, "get contact")
	}

	entries, err := s.outreachRepo.ListByContact(ctx, contactID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list outreach: %w", err)
	}

	dtos := make([]domain.OutreachLogDTO, len(entries))
	for i := range entries {
		dtos[i] = mapper.ToOutreachLogDTO(&entries[i])
	}
	return dtos, nil
}

// Delete removes a mistakenly logged event
func (s *OutreachService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.outreachRepo.Delete(ctx, id); err != nil {
		return wrapRepoError(err, ErrOutreachNotFound, "delete outreach")
	}
	s.logger.Info("outreach deleted", zap.String("outreach_id", id.String()))
	return nil
}
