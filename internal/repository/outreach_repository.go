package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/outreach-crm/outreach-api/internal/domain"
	"gorm.io/gorm"
)

// latestBatchSize bounds the IN list when looking up the latest outreach of many contacts
const latestBatchSize = 500

// OutreachRepository stores the append-only outreach log
type OutreachRepository struct {
	db *gorm.DB
}

func NewOutreachRepository(db *gorm.DB) *OutreachRepository {
	return &OutreachRepository{db: db}
}

func (r *OutreachRepository) Create(ctx context.Context, entry *domain.OutreachLog) error {
	return r.db.WithContext(ctx).Omit("Contact", "Opportunity").Create(entry).Error
}

func (r *OutreachRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.OutreachLog, error) {
	var entry domain.OutreachLog
	err := r.db.WithContext(ctx).Preload("Opportunity").Where("id = ?", id).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *OutreachRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.OutreachLog{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByContact returns the contact's outreach history, newest first. A limit of 0 returns everything.
func (r *OutreachRepository) ListByContact(ctx context.Context, contactID uuid.UUID, limit int) ([]domain.OutreachLog, error) {
	var entries []domain.OutreachLog
	query := r.db.WithContext(ctx).
		Preload("Opportunity").
		Where("contact_id = ?", contactID).
		Order("contact_date DESC").
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&entries).Error
	return entries, err
}

// LatestByContacts returns the most recent outreach for each contact that has one.
// Recency is contact_date, then created_at for events logged on the same day.
func (r *OutreachRepository) LatestByContacts(ctx context.Context, contactIDs []uuid.UUID) (map[uuid.UUID]domain.OutreachLog, error) {
	latest := make(map[uuid.UUID]domain.OutreachLog, len(contactIDs))

	for start := 0; start < len(contactIDs); start += latestBatchSize {
		end := start + latestBatchSize
		if end > len(contactIDs) {
			end = len(contactIDs)
		}

		var entries []domain.OutreachLog
		err := r.db.WithContext(ctx).
			Where("contact_id IN ?", contactIDs[start:end]).
			Order("contact_id").
			Order("contact_date DESC").
			Order("created_at DESC").
			Find(&entries).Error
		if err != nil {
			return nil, err
		}

		for _, entry := range entries {
			if _, seen := latest[entry.ContactID]; !seen {
				latest[entry.ContactID] = entry
			}
		}
	}

	return latest, nil
}

// CountSince counts outreach events dated on or after since
func (r *OutreachRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.OutreachLog{}).
		Where("contact_date >= ?", since).
		Count(&count).Error
	return count, err
}

type methodCount struct {
	ContactMethod string
	Total         int64
}

// CountByMethodSince counts outreach events per method dated on or after since
func (r *OutreachRepository) CountByMethodSince(ctx context.Context, since time.Time) (map[domain.ContactMethod]int64, error) {
	var rows []methodCount
	err := r.db.WithContext(ctx).Model(&domain.OutreachLog{}).
		Select("contact_method, COUNT(*) AS total").
		Where("contact_date >= ?", since).
		Group("contact_method").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[domain.ContactMethod]int64{
		domain.ContactMethodCall:    0,
		domain.ContactMethodEmail:   0,
		domain.ContactMethodMeeting: 0,
	}
	for _, row := range rows {
		counts[domain.ContactMethod(row.ContactMethod)] = row.Total
	}
	return counts, nil
}
