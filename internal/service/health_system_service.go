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

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

type HealthSystemService struct {
	healthSystemRepo *repository.HealthSystemRepository
	logger           *zap.Logger
}

func NewHealthSystemService(healthSystemRepo *repository.HealthSystemRepository, logger *zap.Logger) *HealthSystemService {
	return &HealthSystemService{
		healthSystemRepo: healthSystemRepo,
		logger:           logger,
	}
}

func (s *HealthSystemService) Create(ctx context.Context, req *domain.CreateHealthSystemRequest) (*domain.HealthSystemDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	exists, err := s.healthSystemRepo.ExistsByName(ctx, name, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check health system name: %w", err)
	}
	if exists {
		return nil, ErrDuplicateHealthSystem
	}

	hs := &domain.HealthSystem{
		Name:  name,
		City:  strings.TrimSpace(req.City),
		State: strings.TrimSpace(req.State),
		Notes: req.Notes,
	}

	if err := s.healthSystemRepo.Create(ctx, hs); err != nil {
		return nil, fmt.Errorf("failed to create health system: %w", err)
	}

	s.logger.Info("health system created", zap.String("health_system_id", hs.ID.String()), zap.String("name", hs.Name))

	dto := mapper.ToHealthSystemDTO(hs, 0, 0)
	return &dto, nil
}

func (s *HealthSystemService) GetByID(ctx context.Context, id uuid.UUID) (*domain.HealthSystemDTO, error) {
	hs, err := s.healthSystemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapRepoError(err, ErrHealthSystemNotFound, "get health system")
	}

	opps, contacts, err := s.childCounts(ctx, []uuid.UUID{hs.ID})
	if err != nil {
		return nil, err
	}

	dto := mapper.ToHealthSystemDTO(hs, opps[hs.ID], contacts[hs.ID])
	return &dto, nil
}

func (s *HealthSystemService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateHealthSystemRequest) (*domain.HealthSystemDTO, error) {
	hs, err := s.healthSystemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapRepoError(err, ErrHealthSystemNotFound, "get health system")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	exists, err := s.healthSystemRepo.ExistsByName(ctx, name, &hs.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check health system name: %w", err)
	}
	if exists {
		return nil, ErrDuplicateHealthSystem
	}

	hs.Name = name
	hs.City = strings.TrimSpace(req.City)
	hs.State = strings.TrimSpace(req.State)
	hs.Notes = req.Notes

	if err := s.healthSystemRepo.Update(ctx, hs); err != nil {
		return nil, fmt.Errorf("failed to update health system: %w", err)
	}

	opps, contacts, err := s.childCounts(ctx, []uuid.UUID{hs.ID})
	if err != nil {
		return nil, err
	}

	dto := mapper.ToHealthSystemDTO(hs, opps[hs.ID], contacts[hs.ID])
	return &dto, nil
}

// Delete removes the health system and everything recorded under it
func (s *HealthSystemService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.healthSystemRepo.Delete(ctx, id); err != nil {
		return wrapRepoError(err, ErrHealthSystemNotFound, "delete health system")
	}

	s.logger.Info("health system deleted", zap.String("health_system_id", id.String()))
	return nil
}

func (s *HealthSystemService) List(ctx context.Context, page, pageSize int, search string) (*domain.PaginatedResponse, error) {
	page, pageSize = normalizePaging(page, pageSize)

	systems, total, err := s.healthSystemRepo.List(ctx, page, pageSize, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list health systems: %w", err)
	}

	ids := make([]uuid.UUID, len(systems))
	for i := range systems {
		ids[i] = systems[i].ID
	}

	opps, contacts, err := s.childCounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	dtos := make([]domain.HealthSystemDTO, len(systems))
	for i := range systems {
		dtos[i] = mapper.ToHealthSystemDTO(&systems[i], opps[systems[i].ID], contacts[systems[i].ID])
	}

	return paginated(dtos, total, page, pageSize), nil
}

func (s *HealthSystemService) childCounts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, map[uuid.UUID]int64, error) {
	opps, err := s.healthSystemRepo.CountOpportunities(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count opportunities: %w", err)
	}
	contacts, err := s.healthSystemRepo.CountContacts(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count contacts: %w", err)
	}
	return opps, contacts, nil
}

func normalizePaging(page, pageSize int) (int, int) {
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if page < 1 {
		page = 1
	}
	return page, pageSize
}

func paginated(data interface{}, total int64, page, pageSize int) *domain.PaginatedResponse {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &domain.PaginatedResponse{
		Data:       data,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
