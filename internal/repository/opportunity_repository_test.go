package repository_test

import (
	"context"
	"testing"

	"github.com/outreach-crm/outreach-api/internal/domain"
	"github.com/outreach-crm/outreach-api/internal/repository"
	"github.com/outreach-crm/outreach-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpportunityRepository_ListFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewOpportunityRepository(db)
	ctx := context.Background()

	hs := testutil.CreateTestHealthSystem(t, db, "Prisma")
	other := testutil.CreateTestHealthSystem(t, db, "Piedmont")
	testutil.CreateTestOpportunity(t, db, hs, "Telemetry", nil)
	testutil.CreateTestOpportunity(t, db, hs, "RTLS", testutil.StatusPtr(domain.OpportunityStatusActive))
	testutil.CreateTestOpportunity(t, db, other, "Nurse Call", testutil.StatusPtr(domain.OpportunityStatusProspect))

	byHS, err := repo.List(ctx, repository.OpportunityFilters{HealthSystemID: &hs.ID})
	require.NoError(t, err)
	require.Len(t, byHS, 2)
	assert.Equal(t, "RTLS", byHS[0].Product)
	require.NotNil(t, byHS[0].HealthSystem)
	assert.Equal(t, "Prisma", byHS[0].HealthSystem.Name)

	prospect := domain.OpportunityStatusProspect
	prospects, err := repo.List(ctx, repository.OpportunityFilters{Status: &prospect})
	require.NoError(t, err)
	require.Len(t, prospects, 2, "unset status counts as prospect")

	active := domain.OpportunityStatusActive
	actives, err := repo.List(ctx, repository.OpportunityFilters{Status: &active})
	require.NoError(t, err)
	require.Len(t, actives, 1)
	assert.Equal(t, "RTLS", actives[0].Product)
}

func TestOpportunityRepository_ExistsForProductIgnoresCase(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewOpportunityRepository(db)
	ctx := context.Background()

	hs := testutil.CreateTestHealthSystem(t, db, "Prisma")
	other := testutil.CreateTestHealthSystem(t, db, "Piedmont")
	opp := testutil.CreateTestOpportunity(t, db, hs, "Telemetry", nil)

	exists, err := repo.ExistsForProduct(ctx, hs.ID, "TELEMETRY", nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsForProduct(ctx, other.ID, "Telemetry", nil)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsForProduct(ctx, hs.ID, "Telemetry", &opp.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestOpportunityRepository_CountByStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewOpportunityRepository(db)
	ctx := context.Background()

	hs := testutil.CreateTestHealthSystem(t, db, "Prisma")
	testutil.CreateTestOpportunity(t, db, hs, "Telemetry", nil)
	testutil.CreateTestOpportunity(t, db, hs, "Nurse Call", testutil.StatusPtr(domain.OpportunityStatusProspect))
	testutil.CreateTestOpportunity(t, db, hs, "RTLS", testutil.StatusPtr(domain.OpportunityStatusActive))
	testutil.CreateTestOpportunity(t, db, hs, "Bed Management", testutil.StatusPtr(domain.OpportunityStatusWon))

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.OpportunityStatusCounts{Prospect: 2, Active: 1, Won: 1}, counts)
}

func TestOpportunityRepository_DeleteUnlinksOutreach(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewOpportunityRepository(db)
	ctx := context.Background()

	hs := testutil.CreateTestHealthSystem(t, db, "Prisma")
	opp := testutil.CreateTestOpportunity(t, db, hs, "Telemetry", nil)
	contact := testutil.CreateTestContact(t, db, hs, "Ada", "Lane")
	testutil.CreateTestAssignment(t, db, contact, opp, 10)

	entry := &domain.OutreachLog{ContactID: contact.ID, OpportunityID: &opp.ID, ContactMethod: domain.ContactMethodEmail, ContactDate: testutil.Date(2024, 1, 3)}
	require.NoError(t, repository.NewOutreachRepository(db).Create(ctx, entry))

	require.NoError(t, repo.Delete(ctx, opp.ID))

	got, err := repository.NewOutreachRepository(db).GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Nil(t, got.OpportunityID)

	var count int64
	require.NoError(t, db.Model(&domain.ContactOpportunity{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
