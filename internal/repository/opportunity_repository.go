package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/outreach-crm/outreach-api/internal/domain"
	"gorm.io/gorm"
)

// prospectCondition matches opportunities that feed the to-do list; an unset status counts as prospect
const prospectCondition = "(opportunities.status IS NULL OR opportunities.status = '' OR opportunities.status = ?)"

// OpportunityFilters narrows an opportunity listing
type OpportunityFilters struct {
	HealthSystemID *uuid.UUID
	Status         *domain.OpportunityStatus
}

type OpportunityRepository struct {
	db *gorm.DB
}

func NewOpportunityRepository(db *gorm.DB) *OpportunityRepository {
	return &OpportunityRepository{db: db}
}

func (r *OpportunityRepository) Create(ctx context.Context, opp *domain.Opportunity) error {
	return r.db.WithContext(ctx).Omit("HealthSystem").Create(opp).Error
}

func (r *OpportunityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Opportunity, error) {
	var opp domain.Opportunity
	err := r.db.WithContext(ctx).Preload("HealthSystem").Where("id = ?", id).First(&opp).Error
	if err != nil {
		return nil, err
	}
	return &opp, nil
}

// ExistsForProduct reports whether the health system already has an opportunity for product, ignoring case
func (r *OpportunityRepository) ExistsForProduct(ctx context.Context, healthSystemID uuid.UUID, product string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&domain.Opportunity{}).
		Where("health_system_id = ? AND LOWER(product) = ?", healthSystemID, strings.ToLower(strings.TrimSpace(product)))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *OpportunityRepository) Update(ctx context.Context, opp *domain.Opportunity) error {
	return r.db.WithContext(ctx).Omit("HealthSystem").Save(opp).Error
}

// Delete removes the opportunity and its assignments; outreach history keeps the event but drops the link
func (r *OpportunityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("opportunity_id = ?", id).Delete(&domain.ContactOpportunity{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.OutreachLog{}).Where("opportunity_id = ?", id).
			Update("opportunity_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&domain.Opportunity{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *OpportunityRepository) List(ctx context.Context, filters OpportunityFilters) ([]domain.Opportunity, error) {
	var opps []domain.Opportunity

	query := r.db.WithContext(ctx).Model(&domain.Opportunity{}).Preload("HealthSystem")

	if filters.HealthSystemID != nil {
		query = query.Where("opportunities.health_system_id = ?", *filters.HealthSystemID)
	}
	if filters.Status != nil {
		if *filters.Status == domain.OpportunityStatusProspect {
			query = query.Where(prospectCondition, domain.OpportunityStatusProspect)
		} else {
			query = query.Where("opportunities.status = ?", *filters.Status)
		}
	}

	err := query.Order("LOWER(opportunities.product) ASC").Order("opportunities.created_at ASC").Find(&opps).Error
	return opps, err
}

type statusCount struct {
	Status string
	Total  int64
}

// CountByStatus counts opportunities per effective status
func (r *OpportunityRepository) CountByStatus(ctx context.Context) (domain.OpportunityStatusCounts, error) {
	var rows []statusCount
	var counts domain.OpportunityStatusCounts

	err := r.db.WithContext(ctx).Model(&domain.Opportunity{}).
		Select("COALESCE(NULLIF(status, ''), 'prospect') AS status, COUNT(*) AS total").
		Group("COALESCE(NULLIF(status, ''), 'prospect')").
		Scan(&rows).Error
	if err != nil {
		return counts, err
	}

	for _, row := range rows {
		switch domain.OpportunityStatus(row.Status) {
		case domain.OpportunityStatusProspect:
			counts.Prospect += row.Total
		case domain.OpportunityStatusActive:
			counts.Active += row.Total
		case domain.OpportunityStatusWon:
			counts.Won += row.Total
		}
	}
	return counts, nil
}
