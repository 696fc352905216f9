package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/outreach-crm/outreach-api/internal/domain"
	"github.com/outreach-crm/outreach-api/internal/metrics"
	"github.com/outreach-crm/outreach-api/internal/repository"
	"github.com/outreach-crm/outreach-api/internal/service"
	"github.com/outreach-crm/outreach-api/internal/testutil"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// wednesday is 2024-01-17 in the afternoon
func wednesday() time.Time {
	return time.Date(2024, 1, 17, 15, 30, 0, 0, time.UTC)
}

func newTodoService(db *gorm.DB, m *metrics.Metrics) *service.TodoService {
	return service.NewTodoService(
		repository.NewAssignmentRepository(db),
		repository.NewOutreachRepository(db),
		m,
		wednesday,
		time.UTC,
		zap.NewNop(),
	)
}

func TestTodoService_GetTodo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	m := metrics.New(prometheus.NewRegistry())
	svc := newTodoService(db, m)

	mercy := testutil.CreateTestHealthSystem(t, db, "Mercy")
	telemetry := testutil.CreateTestOpportunity(t, db, mercy, "Telemetry", nil)
	nurseCall := testutil.CreateTestOpportunity(t, db, mercy, "Nurse Call", testutil.StatusPtr(domain.OpportunityStatusProspect))
	rtls := testutil.CreateTestOpportunity(t, db, mercy, "RTLS", testutil.StatusPtr(domain.OpportunityStatusActive))

	// Two prospect assignments: the shorter cadence (5) wins, due 01-17
	ada := testutil.CreateTestContact(t, db, mercy, "Ada", "Lane")
	testutil.CreateTestAssignment(t, db, ada, telemetry, 10)
	testutil.CreateTestAssignment(t, db, ada, nurseCall, 5)
	testutil.CreateTestOutreach(t, db, ada, domain.ContactMethodEmail, testutil.Date(2024, 1, 10))

	// Only on an active opportunity: excluded even though never contacted
	ben := testutil.CreateTestContact(t, db, mercy, "Ben", "Ortiz")
	testutil.CreateTestAssignment(t, db, ben, rtls, 1)

	// Latest of two events is used: 01-03 + 10 business days = 01-17
	cy := testutil.CreateTestContact(t, db, mercy, "Cy", "Moss")
	testutil.CreateTestAssignment(t, db, cy, telemetry, 10)
	testutil.CreateTestOutreach(t, db, cy, domain.ContactMethodCall, testutil.Date(2023, 12, 20))
	testutil.CreateTestOutreach(t, db, cy, domain.ContactMethodMeeting, testutil.Date(2024, 1, 3))

	// Due Friday 01-12, three business days overdue
	dee := testutil.CreateTestContact(t, db, mercy, "Dee", "Park")
	testutil.CreateTestAssignment(t, db, dee, telemetry, 2)
	testutil.CreateTestOutreach(t, db, dee, domain.ContactMethodCall, testutil.Date(2024, 1, 10))

	// Never contacted on a business day: due today
	eve := testutil.CreateTestContact(t, db, mercy, "Eve", "Quinn")
	testutil.CreateTestAssignment(t, db, eve, nurseCall, 10)

	// Due Thursday 01-18: next-business-day preview
	fay := testutil.CreateTestContact(t, db, mercy, "Fay", "Reed")
	testutil.CreateTestAssignment(t, db, fay, telemetry, 10)
	testutil.CreateTestOutreach(t, db, fay, domain.ContactMethodEmail, testutil.Date(2024, 1, 4))

	todo, err := svc.GetTodo(context.Background(), svc.Today())
	require.NoError(t, err)

	assert.Equal(t, "2024-01-17", todo.Date)
	assert.True(t, todo.IsBusinessDay)
	assert.Equal(t, "2024-01-18", todo.NextBusinessDay)
	assert.Equal(t, 1, todo.RolloverCount)

	require.Len(t, todo.DueToday, 4)
	first := todo.DueToday[0]
	assert.Equal(t, dee.ID, first.ContactID)
	assert.True(t, first.IsRollover)
	assert.Equal(t, 3, first.DaysOverdue)
	assert.Equal(t, "2024-01-12", first.DueDate)

	ids := []uuid.UUID{}
	byID := map[uuid.UUID]domain.TodoItemDTO{}
	for _, item := range todo.DueToday[1:] {
		assert.False(t, item.IsRollover)
		ids = append(ids, item.ContactID)
		byID[item.ContactID] = item
	}
	assert.ElementsMatch(t, []uuid.UUID{ada.ID, cy.ID, eve.ID}, ids)

	adaItem := byID[ada.ID]
	assert.Equal(t, 5, adaItem.CadenceDays)
	assert.Equal(t, "Ada Lane", adaItem.ContactName)
	assert.Equal(t, "Mercy", adaItem.AccountName)
	require.Len(t, adaItem.Opportunities, 2)
	assert.Equal(t, "Nurse Call", adaItem.Opportunities[0].Product)
	assert.Equal(t, "Telemetry", adaItem.Opportunities[1].Product)
	require.NotNil(t, adaItem.LastOutreachMethod)
	assert.Equal(t, domain.ContactMethodEmail, *adaItem.LastOutreachMethod)
	require.NotNil(t, adaItem.DaysSinceContact)
	assert.Equal(t, 7, *adaItem.DaysSinceContact)

	cyItem := byID[cy.ID]
	require.NotNil(t, cyItem.LastOutreachDate)
	assert.Equal(t, "2024-01-03", *cyItem.LastOutreachDate)
	assert.Equal(t, domain.ContactMethodMeeting, *cyItem.LastOutreachMethod)

	eveItem := byID[eve.ID]
	assert.True(t, eveItem.NeverContacted)
	assert.Nil(t, eveItem.LastOutreachDate)
	assert.Nil(t, eveItem.DaysSinceContact)

	require.Len(t, todo.DueNextBusinessDay, 1)
	assert.Equal(t, fay.ID, todo.DueNextBusinessDay[0].ContactID)

	for _, item := range append(todo.DueToday, todo.DueNextBusinessDay...) {
		assert.NotEqual(t, ben.ID, item.ContactID)
	}

	assert.Equal(t, 1.0, promtest.ToFloat64(m.TodoComputations.WithLabelValues("success")))
	assert.Equal(t, 4.0, promtest.ToFloat64(m.TodoContacts.WithLabelValues("due_today")))
}

func TestTodoService_StatusChangeRemovesContact(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newTodoService(db, nil)
	ctx := context.Background()

	hs := testutil.CreateTestHealthSystem(t, db, "Mercy")
	opp := testutil.CreateTestOpportunity(t, db, hs, "Telemetry", nil)
	contact := testutil.CreateTestContact(t, db, hs, "Ada", "Lane")
	testutil.CreateTestAssignment(t, db, contact, opp, 10)

	todo, err := svc.GetTodo(ctx, svc.Today())
	require.NoError(t, err)
	require.Len(t, todo.DueToday, 1)

	require.NoError(t, db.Model(&domain.Opportunity{}).Where("id = ?", opp.ID).
		Update("status", domain.OpportunityStatusWon).Error)

	todo, err = svc.GetTodo(ctx, svc.Today())
	require.NoError(t, err)
	assert.Empty(t, todo.DueToday)
	assert.Empty(t, todo.DueNextBusinessDay)
}

func TestTodoService_WeekendHasNoRollovers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newTodoService(db, nil)

	hs := testutil.CreateTestHealthSystem(t, db, "Mercy")
	opp := testutil.CreateTestOpportunity(t, db, hs, "Telemetry", nil)
	contact := testutil.CreateTestContact(t, db, hs, "Ada", "Lane")
	testutil.CreateTestAssignment(t, db, contact, opp, 10)
	testutil.CreateTestOutreach(t, db, contact, domain.ContactMethodCall, testutil.Date(2024, 1, 3))

	todo, err := svc.GetTodo(context.Background(), testutil.Date(2024, 1, 20))
	require.NoError(t, err)

	assert.False(t, todo.IsBusinessDay)
	assert.Equal(t, "2024-01-22", todo.NextBusinessDay)
	require.Len(t, todo.DueToday, 1)
	assert.False(t, todo.DueToday[0].IsRollover)
	assert.Equal(t, 2, todo.DueToday[0].DaysOverdue)
	assert.Equal(t, 0, todo.RolloverCount)
}

func TestTodoService_EmptyStore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newTodoService(db, nil)

	todo, err := svc.GetTodoForToday(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, todo.DueToday)
	assert.NotNil(t, todo.DueNextBusinessDay)
	assert.Empty(t, todo.DueToday)
}

func TestTodoService_StorageFailureReturnsError(t *testing.T) {
	db := testutil.SetupTestDB(t)
	m := metrics.New(prometheus.NewRegistry())
	svc := newTodoService(db, m)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	todo, err := svc.GetTodo(context.Background(), svc.Today())
	assert.Error(t, err)
	assert.Nil(t, todo)
	assert.Equal(t, 1.0, promtest.ToFloat64(m.TodoComputations.WithLabelValues("error")))
}

func TestTodoService_TodayUsesConfiguredTimezone(t *testing.T) {
	db := testutil.SetupTestDB(t)

	// 02:00 UTC on Thursday is still Wednesday evening five hours west
	clock := func() time.Time { return time.Date(2024, 1, 18, 2, 0, 0, 0, time.UTC) }
	west := time.FixedZone("UTC-5", -5*60*60)

	svc := service.NewTodoService(repository.NewAssignmentRepository(db), repository.NewOutreachRepository(db), nil, clock, west, zap.NewNop())
	assert.Equal(t, testutil.Date(2024, 1, 17), svc.Today())

	utc := service.NewTodoService(repository.NewAssignmentRepository(db), repository.NewOutreachRepository(db), nil, clock, time.UTC, zap.NewNop())
	assert.Equal(t, testutil.Date(2024, 1, 18), utc.Today())
}
