package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/outreach-crm/outreach-api/internal/domain"
	"gorm.io/gorm"
)

type HealthSystemRepository struct {
	db *gorm.DB
}

func NewHealthSystemRepository(db *gorm.DB) *HealthSystemRepository {
	return &HealthSystemRepository{db: db}
}

func (r *HealthSystemRepository) Create(ctx context.Context, hs *domain.HealthSystem) error {
	return r.db.WithContext(ctx).Omit("Opportunities", "Contacts").Create(hs).Error
}

func (r *HealthSystemRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.HealthSystem, error) {
	var hs domain.HealthSystem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&hs).Error
	if err != nil {
		return nil, err
	}
	return &hs, nil
}

// ExistsByName reports whether another health system already uses name, ignoring case
func (r *HealthSystemRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&domain.HealthSystem{}).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *HealthSystemRepository) Update(ctx context.Context, hs *domain.HealthSystem) error {
	return r.db.WithContext(ctx).Omit("Opportunities", "Contacts").Save(hs).Error
}

// Delete removes the health system together with its opportunities, contacts,
// assignments and outreach history
func (r *HealthSystemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contactIDs := tx.Model(&domain.Contact{}).Select("id").Where("health_system_id = ?", id)
		opportunityIDs := tx.Model(&domain.Opportunity{}).Select("id").Where("health_system_id = ?", id)

		if err := tx.Where("contact_id IN (?)", contactIDs).Delete(&domain.OutreachLog{}).Error; err != nil {
			return err
		}
		if err := tx.Where("contact_id IN (?) OR opportunity_id IN (?)", contactIDs, opportunityIDs).
			Delete(&domain.ContactOpportunity{}).Error; err != nil {
			return err
		}
		if err := tx.Where("health_system_id = ?", id).Delete(&domain.Contact{}).Error; err != nil {
			return err
		}
		if err := tx.Where("health_system_id = ?", id).Delete(&domain.Opportunity{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&domain.HealthSystem{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *HealthSystemRepository) List(ctx context.Context, page, pageSize int, search string) ([]domain.HealthSystem, int64, error) {
	var systems []domain.HealthSystem
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.HealthSystem{})

	if search != "" {
		searchPattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(city) LIKE ?", searchPattern, searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("LOWER(name) ASC").Find(&systems).Error

	return systems, total, err
}

func (r *HealthSystemRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.HealthSystem{}).Count(&count).Error
	return count, err
}

type healthSystemCount struct {
	HealthSystemID uuid.UUID
	Total          int64
}

// CountOpportunities returns the number of opportunities per health system
func (r *HealthSystemRepository) CountOpportunities(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	return r.countBySystem(ctx, &domain.Opportunity{}, ids)
}

// CountContacts returns the number of contacts per health system
func (r *HealthSystemRepository) CountContacts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	return r.countBySystem(ctx, &domain.Contact{}, ids)
}

func (r *HealthSystemRepository) countBySystem(ctx context.Context, model interface{}, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	var rows []healthSystemCount
	err := r.db.WithContext(ctx).Model(model).
		Select("health_system_id, COUNT(*) AS total").
		Where("health_system_id IN ?", ids).
		Group("health_system_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.HealthSystemID] = row.Total
	}
	return counts, nil
}
