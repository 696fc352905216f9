package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/outreach-crm/outreach-api/internal/domain"
	"github.com/outreach-crm/outreach-api/internal/repository"
	"github.com/outreach-crm/outreach-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAssignmentRepository_ListProspectAssignmentsFiltersByStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewAssignmentRepository(db)
	ctx := context.Background()

	hs := testutil.CreateTestHealthSystem(t, db, "Baptist Health")
	unset := testutil.CreateTestOpportunity(t, db, hs, "Telemetry", nil)
	prospect := testutil.CreateTestOpportunity(t, db, hs, "Nurse Call", testutil.StatusPtr(domain.OpportunityStatusProspect))
	active := testutil.CreateTestOpportunity(t, db, hs, "RTLS", testutil.StatusPtr(domain.OpportunityStatusActive))
	won := testutil.CreateTestOpportunity(t, db, hs, "Bed Management", testutil.StatusPtr(domain.OpportunityStatusWon))

	contact := testutil.CreateTestContact(t, db, hs, "Ada", "Lane")
	testutil.CreateTestAssignment(t, db, contact, unset, 10)
	testutil.CreateTestAssignment(t, db, contact, prospect, 5)
	testutil.CreateTestAssignment(t, db, contact, active, 3)
	testutil.CreateTestAssignment(t, db, contact, won, 3)

	assignments, err := repo.ListProspectAssignments(ctx)
	require.NoError(t, err)
	require.Len(t, assignments, 2)

	products := []string{}
	for _, a := range assignments {
		require.NotNil(t, a.Contact)
		require.NotNil(t, a.Contact.HealthSystem)
		require.NotNil(t, a.Opportunity)
		assert.Equal(t, "Baptist Health", a.Contact.HealthSystem.Name)
		products = append(products, a.Opportunity.Product)
	}
	assert.ElementsMatch(t, []string{"Telemetry", "Nurse Call"}, products)
}

func TestAssignmentRepository_UniquePair(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewAssignmentRepository(db)
	ctx := context.Background()

	hs := testutil.CreateTestHealthSystem(t, db, "Atrium")
	opp := testutil.CreateTestOpportunity(t, db, hs, "Telemetry", nil)
	contact := testutil.CreateTestContact(t, db, hs, "Ada", "Lane")

	require.NoError(t, repo.Create(ctx, &domain.ContactOpportunity{ContactID: contact.ID, OpportunityID: opp.ID, CadenceDays: 10}))

	exists, err := repo.Exists(ctx, contact.ID, opp.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	err = repo.Create(ctx, &domain.ContactOpportunity{ContactID: contact.ID, OpportunityID: opp.ID, CadenceDays: 5})
	assert.Error(t, err)
}

func TestAssignmentRepository_UpdateCadenceAndDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewAssignmentRepository(db)
	ctx := context.Background()

	hs := testutil.CreateTestHealthSystem(t, db, "Novant")
	opp := testutil.CreateTestOpportunity(t, db, hs, "Telemetry", nil)
	contact := testutil.CreateTestContact(t, db, hs, "Ada", "Lane")
	assignment := testutil.CreateTestAssignment(t, db, contact, opp, 10)

	require.NoError(t, repo.UpdateCadence(ctx, assignment.ID, 20))

	got, err := repo.GetByID(ctx, assignment.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, got.CadenceDays)
	require.NotNil(t, got.Opportunity)
	assert.Equal(t, "Telemetry", got.Opportunity.Product)

	require.NoError(t, repo.Delete(ctx, assignment.ID))
	assert.ErrorIs(t, repo.Delete(ctx, assignment.ID), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, repo.UpdateCadence(ctx, uuid.New(), 5), gorm.ErrRecordNotFound)
}
