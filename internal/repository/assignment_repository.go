package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/outreach-crm/outreach-api/internal/domain"
	"gorm.io/gorm"
)

// AssignmentRepository stores contact-to-opportunity links and their cadence
type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) Create(ctx context.Context, assignment *domain.ContactOpportunity) error {
	return r.db.WithContext(ctx).Omit("Contact", "Opportunity").Create(assignment).Error
}

func (r *AssignmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ContactOpportunity, error) {
	var assignment domain.ContactOpportunity
	err := r.db.WithContext(ctx).Preload("Opportunity").Where("id = ?", id).First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// Exists reports whether the contact is already assigned to the opportunity
func (r *AssignmentRepository) Exists(ctx context.Context, contactID, opportunityID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.ContactOpportunity{}).
		Where("contact_id = ? AND opportunity_id = ?", contactID, opportunityID).
		Count(&count).Error
	return count > 0, err
}

// UpdateCadence sets the cadence of an assignment
func (r *AssignmentRepository) UpdateCadence(ctx context.Context, id uuid.UUID, cadenceDays int) error {
	result := r.db.WithContext(ctx).Model(&domain.ContactOpportunity{}).
		Where("id = ?", id).
		Update("cadence_days", cadenceDays)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AssignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.ContactOpportunity{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByContact returns the contact's assignments with their opportunities
func (r *AssignmentRepository) ListByContact(ctx context.Context, contactID uuid.UUID) ([]domain.ContactOpportunity, error) {
	var assignments []domain.ContactOpportunity
	err := r.db.WithContext(ctx).
		Preload("Opportunity").
		Where("contact_id = ?", contactID).
		Order("created_at ASC").
		Find(&assignments).Error
	return assignments, err
}

// ListProspectAssignments returns every assignment whose opportunity is a prospect,
// with the contact, its health system and the opportunity loaded
func (r *AssignmentRepository) ListProspectAssignments(ctx context.Context) ([]domain.ContactOpportunity, error) {
	var assignments []domain.ContactOpportunity
	err := r.db.WithContext(ctx).
		Joins("JOIN opportunities ON opportunities.id = contact_opportunities.opportunity_id").
		Where(prospectCondition, domain.OpportunityStatusProspect).
		Preload("Contact.HealthSystem").
		Preload("Opportunity").
		Order("contact_opportunities.created_at ASC").
		Find(&assignments).Error
	return assignments, err
}
