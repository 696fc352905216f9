package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/outreach-crm/outreach-api/internal/domain"
	"github.com/outreach-crm/outreach-api/internal/mapper"
	"github.com/outreach-crm/outreach-api/internal/repository"
	"go.uber.org/zap"
)

type ContactService struct {
	contactRepo      *repository.ContactRepository
	healthSystemRepo *repository.HealthSystemRepository
	logger           *zap.Logger
}

func NewContactService(
	contactRepo *repository.ContactRepository,
	healthSystemRepo *repository.HealthSystemRepository,
	logger *zap.Logger,
) *ContactService {
	return &ContactService{
		contactRepo:      contactRepo,
		healthSystemRepo: healthSystemRepo,
		logger:           logger,
	}
}

func (s *ContactService) Create(ctx context.Context, req *domain.CreateContactRequest) (*domain.ContactDTO, error) {
	hs, err := s.healthSystemRepo.GetByID(ctx, req.HealthSystemID)
	if err != nil {
		return nil, wrapRepoError(err, fmt.Errorf("%w: health system %s does not exist", ErrInvalidInput, req.HealthSystemID), "get health system")
	}

	contact := &domain.Contact{
		HealthSystemID: hs.ID,
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Title:          strings.TrimSpace(req.Title),
		Email:          strings.TrimSpace(req.Email),
		Phone:          strings.TrimSpace(req.Phone),
		Role:           strings.TrimSpace(req.Role),
		Notes:          req.Notes,
	}
	if contact.FirstName == "" || contact.LastName == "" {
		return nil, fmt.Errorf("%w: first and last name are required", ErrInvalidInput)
	}

	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}
	contact.HealthSystem = hs

	s.logger.Info("contact created",
		zap.String("contact_id", contact.ID.String()),
		zap.String("health_system", hs.Name),
	)

	dto := mapper.ToContactDTO(contact)
	return &dto, nil
}

// GetByID returns the contact with its opportunity assignments
func (s *ContactService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ContactDTO, error) {
	contact, err := s.contactRepo.GetByIDWithAssignments(ctx, id)
	if err != nil {
		return nil, wrapRepoError(err, ErrContactNotFound, "get contact")
	}

	dto := mapper.ToContactDTO(contact)
	return &dto, nil
}

func (s *ContactService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateContactRequest) (*domain.ContactDTO, error) {
	contact, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapRepoError(err, ErrContactNotFound, "get contact")
	}

	contact.FirstName = strings.TrimSpace(req.FirstName)
	contact.LastName = strings.TrimSpace(req.LastName)
	contact.Title = strings.TrimSpace(req.Title)
	contact.Email = strings.TrimSpace(req.Email)
	contact.Phone = strings.TrimSpace(req.Phone)
	contact.Role = strings.TrimSpace(req.Role)
	contact.Notes = req.Notes
	if contact.FirstName == "" || contact.LastName == "" {
		return nil, fmt.Errorf("%w: first and last name are required", ErrInvalidInput)
	}

	if err := s.contactRepo.Update(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	dto := mapper.ToContactDTO(contact)
	return &dto, nil
}

// Delete removes the contact with its assignments and outreach history
func (s *ContactService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.contactRepo.Delete(ctx, id); err != nil {
		return wrapRepoError(err, ErrContactNotFound, "delete contact")
	}
	s.logger.Info("contact deleted", zap.String("contact_id", id.String()))
	return nil
}

func (s *ContactService) List(ctx context.Context, filters repository.ContactFilters, page, pageSize int) (*domain.PaginatedResponse, error) {
	page, pageSize = normalizePaging(page, pageSize)

	contacts, total, err := s.contactRepo.List(ctx, filters, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	dtos := make([]domain.ContactDTO, len(contacts))
	for i := range contacts {
		dtos[i] = mapper.ToContactDTO(&contacts[i])
	}

	return paginated(dtos, total, page, pageSize), nil
}
