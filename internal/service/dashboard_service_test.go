package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/outreach-crm/outreach-api/internal/domain"
	"github.com/outreach-crm/outreach-api/internal/repository"
	"github.com/outreach-crm/outreach-api/internal/service"
	"github.com/outreach-crm/outreach-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDashboardService_GetDashboard(t *testing.T) {
	db := testutil.SetupTestDB(t)
	outreachRepo := repository.NewOutreachRepository(db)
	todo := service.NewTodoService(repository.NewAssignmentRepository(db), outreachRepo, nil, wednesday, time.UTC, zap.NewNop())
	svc := service.NewDashboardService(
		repository.NewHealthSystemRepository(db),
		repository.NewOpportunityRepository(db),
		repository.NewContactRepository(db),
		outreachRepo,
		todo,
		zap.NewNop(),
	)

	mercy := testutil.CreateTestHealthSystem(t, db, "Mercy")
	banner := testutil.CreateTestHealthSystem(t, db, "Banner")
	telemetry := testutil.CreateTestOpportunity(t, db, mercy, "Telemetry", nil)
	testutil.CreateTestOpportunity(t, db, mercy, "RTLS", testutil.StatusPtr(domain.OpportunityStatusActive))
	testutil.CreateTestOpportunity(t, db, banner, "Telemetry", testutil.StatusPtr(domain.OpportunityStatusWon))

	ada := testutil.CreateTestContact(t, db, mercy, "Ada", "Lane")
	ben := testutil.CreateTestContact(t, db, mercy, "Ben", "Ortiz")
	testutil.CreateTestContact(t, db, banner, "Cy", "Moss")
	testutil.CreateTestAssignment(t, db, ada, telemetry, 10)
	testutil.CreateTestAssignment(t, db, ben, telemetry, 2)

	// week of Monday 2024-01-15
	testutil.CreateTestOutreach(t, db, ben, domain.ContactMethodCall, testutil.Date(2024, 1, 12))
	testutil.CreateTestOutreach(t, db, ben, domain.ContactMethodEmail, testutil.Date(2024, 1, 15))
	testutil.CreateTestOutreach(t, db, ben, domain.ContactMethodEmail, testutil.Date(2024, 1, 15))

	dash, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), dash.HealthSystems)
	assert.Equal(t, int64(3), dash.Contacts)
	assert.Equal(t, domain.OpportunityStatusCounts{Prospect: 1, Active: 1, Won: 1}, dash.Opportunities)
	assert.Equal(t, int64(2), dash.OutreachThisWeek)
	assert.Equal(t, int64(2), dash.OutreachByMethod[domain.ContactMethodEmail])
	assert.Equal(t, int64(0), dash.OutreachByMethod[domain.ContactMethodCall])

	// ada was never contacted, ben's 2-day cadence from Monday lands today
	assert.Equal(t, 2, dash.DueToday)
	assert.Equal(t, 0, dash.Rollovers)
	assert.Equal(t, 0, dash.DueNextDay)
}
