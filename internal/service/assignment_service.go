package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/outreach-crm/outreach-api/internal/cadence"
	"github.com/outreach-crm/outreach-api/internal/domain"
	"github.com/outreach-crm/outreach-api/internal/mapper"
	"github.com/outreach-crm/outreach-api/internal/repository"
	"go.uber.org/zap"
)

// AssignmentService links contacts to opportunities and owns their cadence
type AssignmentService struct {
	assignmentRepo  *repository.AssignmentRepository
	contactRepo     *repository.ContactRepository
	opportunityRepo *repository.OpportunityRepository
	logger          *zap.Logger
}

func NewAssignmentService(
	assignmentRepo *repository.AssignmentRepository,
	contactRepo *repository.ContactRepository,
	opportunityRepo *repository.OpportunityRepository,
	logger *zap.Logger,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo:  assignmentRepo,
		contactRepo:     contactRepo,
		opportunityRepo: opportunityRepo,
		logger:          logger,
	}
}

// Assign links a contact to an opportunity. The cadence is clamped to the allowed
// range and defaults when omitted.
func (s *AssignmentService) Assign(ctx context.Context, req *domain.CreateAssignmentRequest) (*domain.AssignmentDTO, error) {
	contact, err := s.contactRepo.GetByID(ctx, req.ContactID)
	if err != nil {
		return nil, wrapRepoError(err, fmt.Errorf("%w: contact %s does not exist", ErrInvalidInput, req.ContactID), "get contact")
	}

	opp, err := s.opportunityRepo.GetByID(ctx, req.OpportunityID)
	if err != nil {
		return nil, wrapRepoError(err, fmt.Errorf("%w: opportunity %s does not exist", ErrInvalidInput, req.OpportunityID), "get opportunity")
	}

	if contact.HealthSystemID != opp.HealthSystemID {
		return nil, ErrHealthSystemMismatch
	}

	exists, err := s.assignmentRepo.Exists(ctx, contact.ID, opp.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check assignment: %w", err)
	}
	if exists {
		return nil, ErrDuplicateAssignment
	}

	assignment := &domain.ContactOpportunity{
		ContactID:     contact.ID,
		OpportunityID: opp.ID,
		CadenceDays:   cadence.ClampCadence(req.CadenceDays),
	}

	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}
	assignment.Opportunity = opp

	s.logger.Info("contact assigned to opportunity",
		zap.String("contact_id", contact.ID.String()),
		zap.String("opportunity_id", opp.ID.String()),
		zap.Int("cadence_days", assignment.CadenceDays),
	)

	dto := mapper.ToAssignmentDTO(assignment)
	return &dto, nil
}

// UpdateCadence changes how often the contact should be reached for the opportunity
func (s *AssignmentService) UpdateCadence(ctx context.Context, id uuid.UUID, req *domain.UpdateAssignmentRequest) (*domain.AssignmentDTO, error) {
	days := cadence.ClampCadence(req.CadenceDays)

	if err := s.assignmentRepo.UpdateCadence(ctx, id, days); err != nil {
		return nil, wrapRepoError(err, ErrAssignmentNotFound, "update cadence")
	}

	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapRepoError(err, ErrAssignmentNotFound, "get assignment")
	}

	dto := mapper.ToAssignmentDTO(assignment)
	return &dto, nil
}

func (s *AssignmentService) Unassign(ctx context.Context, id uuid.UUID) error {
	if err := s.assignmentRepo.Delete(ctx, id); err != nil {
		return wrapRepoError(err, ErrAssignmentNotFound, "delete assignment")
	}
	s.logger.Info("assignment removed", zap.String("assignment_id", id.String()))
	return nil
}

func (s *AssignmentService) ListByContact(ctx context.Context, contactID uuid.UUID) ([]domain.AssignmentDTO, error) {
	if _, err := s.contactRepo.GetByID(ctx, contactID); err != nil {
		return nil, wrapRepoError(err, ErrContactNotFound, "get contact")
	}

	assignments, err := s.assignmentRepo.ListByContact(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	dtos := make([]domain.AssignmentDTO, len(assignments))
	for i := range assignments {
		dtos[i] = mapper.ToAssignmentDTO(&assignments[i])
	}
	return dtos, nil
}
