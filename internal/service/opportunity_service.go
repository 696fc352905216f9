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

type OpportunityService struct {
	opportunityRepo  *repository.OpportunityRepository
	healthSystemRepo *repository.HealthSystemRepository
	logger           *zap.Logger
}

func NewOpportunityService(
	opportunityRepo *repository.OpportunityRepository,
	healthSystemRepo *repository.HealthSystemRepository,
	logger *zap.Logger,
) *OpportunityService {
	return &OpportunityService{
		opportunityRepo:  opportunityRepo,
		healthSystemRepo: healthSystemRepo,
		logger:           logger,
	}
}

// Create adds an opportunity. A missing status is stored as prospect.
func (s *OpportunityService) Create(ctx context.Context, req *domain.CreateOpportunityRequest) (*domain.OpportunityDTO, error) {
	hs, err := s.healthSystemRepo.GetByID(ctx, req.HealthSystemID)
	if err != nil {
		return nil, wrapRepoError(err, fmt.Errorf("%w: health system %s does not exist", ErrInvalidInput, req.HealthSystemID), "get health system")
	}

	product := strings.TrimSpace(req.Product)
	if product == "" {
		return nil, fmt.Errorf("%w: product is required", ErrInvalidInput)
	}

	status, err := resolveStatus(req.Status)
	if err != nil {
		return nil, err
	}

	exists, err := s.opportunityRepo.ExistsForProduct(ctx, hs.ID, product, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check product: %w", err)
	}
	if exists {
		return nil, ErrDuplicateProduct
	}

	opp := &domain.Opportunity{
		HealthSystemID: hs.ID,
		Product:        product,
		Status:         &status,
		Notes:          req.Notes,
	}

	if err := s.opportunityRepo.Create(ctx, opp); err != nil {
		return nil, fmt.Errorf("failed to create opportunity: %w", err)
	}
	opp.HealthSystem = hs

	s.logger.Info("opportunity created",
		zap.String("opportunity_id", opp.ID.String()),
		zap.String("health_system", hs.Name),
		zap.String("product", opp.Product),
	)

	dto := mapper.ToOpportunityDTO(opp)
	return &dto, nil
}

func (s *OpportunityService) GetByID(ctx context.Context, id uuid.UUID) (*domain.OpportunityDTO, error) {
	opp, err := s.opportunityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapRepoError(err, ErrOpportunityNotFound, "get opportunity")
	}

	dto := mapper.ToOpportunityDTO(opp)
	return &dto, nil
}

// Update changes product, status and notes. Moving an opportunity out of prospect removes
// its contacts from the to-do list without touching their assignments.
func (s *OpportunityService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateOpportunityRequest) (*domain.OpportunityDTO, error) {
	opp, err := s.opportunityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, wrapRepoError(err, ErrOpportunityNotFound, "get opportunity")
	}

	product := strings.TrimSpace(req.Product)
	if product == "" {
		return nil, fmt.Errorf("%w: product is required", ErrInvalidInput)
	}

	exists, err := s.opportunityRepo.ExistsForProduct(ctx, opp.HealthSystemID, product, &opp.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check product: %w", err)
	}
	if exists {
		return nil, ErrDuplicateProduct
	}

	if req.Status != nil {
		status, err := resolveStatus(req.Status)
		if err != nil {
			return nil, err
		}
		if status != opp.EffectiveStatus() {
			s.logger.Info("opportunity status changed",
				zap.String("opportunity_id", opp.ID.String()),
				zap.String("from", string(opp.EffectiveStatus())),
				zap.String("to", string(status)),
			)
		}
		opp.Status = &status
	}

	opp.Product = product
	opp.Notes = req.Notes

	if err := s.opportunityRepo.Update(ctx, opp); err != nil {
		return nil, fmt.Errorf("failed to update opportunity: %w", err)
	}

	dto := mapper.ToOpportunityDTO(opp)
	return &dto, nil
}

func (s *OpportunityService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.opportunityRepo.Delete(ctx, id); err != nil {
		return wrapRepoError(err, ErrOpportunityNotFound, "delete opportunity")
	}
	s.logger.Info("opportunity deleted", zap.String("opportunity_id", id.String()))
	return nil
}

func (s *OpportunityService) List(ctx context.Context, filters repository.OpportunityFilters) ([]domain.OpportunityDTO, error) {
	if filters.Status != nil && !filters.Status.IsValid() {
		return nil, ErrInvalidStatus
	}

	opps, err := s.opportunityRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list opportunities: %w", err)
	}

	dtos := make([]domain.OpportunityDTO, len(opps))
	for i := range opps {
		dtos[i] = mapper.ToOpportunityDTO(&opps[i])
	}
	return dtos, nil
}

func resolveStatus(status *domain.OpportunityStatus) (domain.OpportunityStatus, error) {
	if status == nil || *status == "" {
		return domain.OpportunityStatusProspect, nil
	}
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return *status, nil
}
