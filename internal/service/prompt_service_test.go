package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/outreach-crm/outreach-api/internal/domain"
	"github.com/outreach-crm/outreach-api/internal/prompt"
	"github.com/outreach-crm/outreach-api/internal/repository"
	"github.com/outreach-crm/outreach-api/internal/service"
	"github.com/outreach-crm/outreach-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newPromptService(t *testing.T, db *gorm.DB) *service.PromptService {
	t.Helper()
	generator, err := prompt.NewGenerator()
	require.NoError(t, err)
	return service.NewPromptService(
		repository.NewContactRepository(db),
		repository.NewOpportunityRepository(db),
		repository.NewAssignmentRepository(db),
		repository.NewOutreachRepository(db),
		generator,
		zap.NewNop(),
	)
}

func TestPromptService_UsesProspectAssignment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newPromptService(t, db)

	hs := testutil.CreateTestHealthSystem(t, db, "Mercy")
	won := testutil.CreateTestOpportunity(t, db, hs, "Nurse Call", testutil.StatusPtr(domain.OpportunityStatusWon))
	telemetry := testutil.CreateTestOpportunity(t, db, hs, "Telemetry", nil)
	contact := testutil.CreateTestContact(t, db, hs, "Ada", "Lane")
	testutil.CreateTestAssignment(t, db, contact, won, 10)
	testutil.CreateTestAssignment(t, db, contact, telemetry, 10)
	testutil.CreateTestOutreach(t, db, contact, domain.ContactMethodCall, testutil.Date(2024, 1, 10))

	dto, err := svc.GetEmailPrompt(context.Background(), contact.ID, nil)
	require.NoError(t, err)

	require.NotNil(t, dto.OpportunityID)
	assert.Equal(t, telemetry.ID, *dto.OpportunityID)
	assert.Equal(t, "telemetry", dto.Template)
	assert.Equal(t, "Remote telemetry capacity at Mercy", dto.Subject)
	assert.True(t, strings.Contains(dto.Prompt, "call on 2024-01-10"), dto.Prompt)
}

func TestPromptService_GenericWithoutAssignments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newPromptService(t, db)

	hs := testutil.CreateTestHealthSystem(t, db, "Mercy")
	contact := testutil.CreateTestContact(t, db, hs, "Ada", "Lane")

	dto, err := svc.GetEmailPrompt(context.Background(), contact.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, dto.OpportunityID)
	assert.Equal(t, prompt.GenericKey, dto.Template)
	assert.Contains(t, dto.Prompt, "first touch")
	assert.Contains(t, dto.Prompt, "our solutions")
}

func TestPromptService_ExplicitOpportunity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newPromptService(t, db)
	ctx := context.Background()

	mercy := testutil.CreateTestHealthSystem(t, db, "Mercy")
	banner := testutil.CreateTestHealthSystem(t, db, "Banner")
	rtls := testutil.CreateTestOpportunity(t, db, mercy, "RTLS", nil)
	foreign := testutil.CreateTestOpportunity(t, db, banner, "RTLS", nil)
	contact := testutil.CreateTestContact(t, db, mercy, "Ada", "Lane")

	dto, err := svc.GetEmailPrompt(ctx, contact.ID, &rtls.ID)
	require.NoError(t, err)
	assert.Equal(t, "rtls", dto.Template)
	assert.Equal(t, "RTLS", dto.Product)

	_, err = svc.GetEmailPrompt(ctx, contact.ID, &foreign.ID)
	assert.ErrorIs(t, err, service.ErrHealthSystemMismatch)

	missing := uuid.New()
	_, err = svc.GetEmailPrompt(ctx, contact.ID, &missing)
	assert.ErrorIs(t, err, service.ErrOpportunityNotFound)

	_, err = svc.GetEmailPrompt(ctx, uuid.New(), nil)
	assert.ErrorIs(t, err, service.ErrContactNotFound)
}
