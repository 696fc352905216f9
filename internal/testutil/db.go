package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/outreach-crm/outreach-api/internal/database"
	"github.com/outreach-crm/outreach-api/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens a private in-memory sqlite database with the CRM schema migrated.
// Each call gets its own database, so tests may run in parallel.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err, "failed to open sqlite test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

// CreateTestHealthSystem inserts a health system with the given name
func CreateTestHealthSystem(t *testing.T, db *gorm.DB, name string) *domain.HealthSystem {
	t.Helper()
	hs := &domain.HealthSystem{Name: name, City: "Nashville", State: "TN"}
	require.NoError(t, db.Omit(clause.Associations).Create(hs).Error)
	return hs
}

// CreateTestOpportunity inserts an opportunity; a nil status is stored as NULL
func CreateTestOpportunity(t *testing.T, db *gorm.DB, hs *domain.HealthSystem, product string, status *domain.OpportunityStatus) *domain.Opportunity {
	t.Helper()
	opp := &domain.Opportunity{HealthSystemID: hs.ID, Product: product, Status: status}
	require.NoError(t, db.Omit(clause.Associations).Create(opp).Error)
	return opp
}

// CreateTestContact inserts a contact at the health system
func CreateTestContact(t *testing.T, db *gorm.DB, hs *domain.HealthSystem, firstName, lastName string) *domain.Contact {
	t.Helper()
	contact := &domain.Contact{
		HealthSystemID: hs.ID,
		FirstName:      firstName,
		LastName:       lastName,
		Title:          "Director of Nursing",
		Email:          fmt.Sprintf("%s.%s@example.com", firstName, lastName),
	}
	require.NoError(t, db.Omit(clause.Associations).Create(contact).Error)
	return contact
}

// CreateTestAssignment links a contact to an opportunity with the given cadence
func CreateTestAssignment(t *testing.T, db *gorm.DB, contact *domain.Contact, opp *domain.Opportunity, cadenceDays int) *domain.ContactOpportunity {
	t.Helper()
	assignment := &domain.ContactOpportunity{ContactID: contact.ID, OpportunityID: opp.ID, CadenceDays: cadenceDays}
	require.NoError(t, db.Omit(clause.Associations).Create(assignment).Error)
	return assignment
}

// CreateTestOutreach logs an outreach event on the given date
func CreateTestOutreach(t *testing.T, db *gorm.DB, contact *domain.Contact, method domain.ContactMethod, date time.Time) *domain.OutreachLog {
	t.Helper()
	entry := &domain.OutreachLog{ContactID: contact.ID, ContactMethod: method, ContactDate: date}
	require.NoError(t, db.Omit(clause.Associations).Create(entry).Error)
	return entry
}

// StatusPtr returns a pointer to the given opportunity status
func StatusPtr(s domain.OpportunityStatus) *domain.OpportunityStatus {
	return &s
}

// Date builds a UTC calendar date
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
