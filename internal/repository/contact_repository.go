package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/outreach-crm/outreach-api/internal/domain"
	"gorm.io/gorm"
)

// ContactFilters narrows a contact listing
type ContactFilters struct {
	HealthSystemID *uuid.UUID
	OpportunityID  *uuid.UUID
	Search         string
}

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	return r.db.WithContext(ctx).Omit("HealthSystem", "Assignments").Create(contact).Error
}

func (r *ContactRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	var contact domain.Contact
	err := r.db.WithContext(ctx).Preload("HealthSystem").Where("id = ?", id).First(&contact).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// GetByIDWithAssignments loads the contact with its opportunity assignments
func (r *ContactRepository) GetByIDWithAssignments(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	var contact domain.Contact
	err := r.db.WithContext(ctx).
		Preload("HealthSystem").
		Preload("Assignments", func(db *gorm.DB) *gorm.DB {
			return db.Order("contact_opportunities.created_at ASC")
		}).
		Preload("Assignments.Opportunity").
		Where("id = ?", id).
		First(&contact).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *ContactRepository) Update(ctx context.Context, contact *domain.Contact) error {
	return r.db.WithContext(ctx).Omit("HealthSystem", "Assignments").Save(contact).Error
}

// Delete removes the contact with its assignments and outreach history
func (r *ContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contact_id = ?", id).Delete(&domain.OutreachLog{}).Error; err != nil {
			return err
		}
		if err := tx.Where("contact_id = ?", id).Delete(&domain.ContactOpportunity{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&domain.Contact{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *ContactRepository) List(ctx context.Context, filters ContactFilters, page, pageSize int) ([]domain.Contact, int64, error) {
	var contacts []domain.Contact
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Contact{})

	if filters.HealthSystemID != nil {
		query = query.Where("contacts.health_system_id = ?", *filters.HealthSystemID)
	}
	if filters.OpportunityID != nil {
		query = query.Where("contacts.id IN (?)",
			r.db.Model(&domain.ContactOpportunity{}).Select("contact_id").Where("opportunity_id = ?", *filters.OpportunityID))
	}
	if filters.Search != "" {
		searchPattern := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where(
			"LOWER(contacts.first_name) LIKE ? OR LOWER(contacts.last_name) LIKE ? OR LOWER(contacts.email) LIKE ? OR LOWER(contacts.title) LIKE ?",
			searchPattern, searchPattern, searchPattern, searchPattern,
		)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Preload("HealthSystem").
		Offset(offset).Limit(pageSize).
		Order("LOWER(contacts.last_name) ASC").Order("LOWER(contacts.first_name) ASC").
		Find(&contacts).Error

	return contacts, total, err
}

func (r *ContactRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Contact{}).Count(&count).Error
	return count, err
}
