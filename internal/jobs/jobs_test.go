package jobs_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/outreach-crm/outreach-api/internal/cadence"
	"github.com/outreach-crm/outreach-api/internal/config"
	"github.com/outreach-crm/outreach-api/internal/domain"
	"github.com/outreach-crm/outreach-api/internal/jobs"
	"github.com/outreach-crm/outreach-api/internal/metrics"
	"github.com/outreach-crm/outreach-api/internal/notify"
	"github.com/outreach-crm/outreach-api/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type stubTodo struct {
	resp *domain.TodoResponse
	err  error
}

func (s stubTodo) GetTodoForToday(context.Context) (*domain.TodoResponse, error) {
	return s.resp, s.err
}

type recordingNotifier struct {
	sent []*notify.Message
	err  error
}

func (n *recordingNotifier) Send(_ context.Context, msg *notify.Message) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, msg)
	return nil
}

func strPtr(s string) *string { return &s }

func methodPtr(m domain.ContactMethod) *domain.ContactMethod { return &m }

func sampleTodo() *domain.TodoResponse {
	return &domain.TodoResponse{
		Date:            "2024-01-17",
		IsBusinessDay:   true,
		NextBusinessDay: "2024-01-18",
		RolloverCount:   1,
		DueToday: []domain.TodoItemDTO{
			{
				ContactID:          uuid.New(),
				ContactName:        "Ada Lane",
				AccountName:        "Mercy",
				Opportunities:      []domain.TodoOpportunityDTO{{Product: "Telemetry"}, {Product: "Nurse Call"}},
				CadenceDays:        5,
				LastOutreachDate:   strPtr("2024-01-10"),
				LastOutreachMethod: methodPtr(domain.ContactMethodEmail),
				DueDate:            "2024-01-17",
			},
			{
				ContactID:          uuid.New(),
				ContactName:        "Dee Park",
				AccountName:        "Mercy",
				Opportunities:      []domain.TodoOpportunityDTO{{Product: "Telemetry"}},
				CadenceDays:        2,
				LastOutreachDate:   strPtr("2024-01-10"),
				LastOutreachMethod: methodPtr(domain.ContactMethodCall),
				DueDate:            "2024-01-12",
				DaysOverdue:        3,
				IsRollover:         true,
			},
			{
				ContactID:      uuid.New(),
				ContactName:    "Eve Quinn",
				AccountName:    "Mercy",
				Opportunities:  []domain.TodoOpportunityDTO{{Product: "Nurse Call"}},
				CadenceDays:    10,
				DueDate:        "2024-01-17",
				NeverContacted: true,
			},
		},
		DueNextBusinessDay: []domain.TodoItemDTO{
			{
				ContactID:     uuid.New(),
				ContactName:   "Fay Reed",
				AccountName:   "Mercy",
				Opportunities: []domain.TodoOpportunityDTO{{Product: "Telemetry"}},
				CadenceDays:   10,
				DueDate:       "2024-01-18",
			},
		},
	}
}

func digestConfig() *config.DigestConfig {
	return &config.DigestConfig{Recipients: []string{"rep@example.com"}, TimeoutSeconds: 5}
}

func TestRenderDigestText(t *testing.T) {
	text := jobs.RenderDigestText(sampleTodo())

	assert.Contains(t, text, "Outreach to-do for 2024-01-17")
	assert.Contains(t, text, "Due today: 3 (1 rolled over)")
	assert.Contains(t, text, "Ada Lane (Mercy) - Telemetry, Nurse Call - last email on 2024-01-10")
	assert.Contains(t, text, "Dee Park (Mercy) - Telemetry - last call on 2024-01-10 - due 2024-01-12, 3 business days overdue")
	assert.Contains(t, text, "Eve Quinn (Mercy) - Nurse Call - never contacted")
	assert.Contains(t, text, "Due next business day (2024-01-18): 1")
	assert.Contains(t, text, "Fay Reed (Mercy) - Telemetry\n")

	empty := jobs.RenderDigestText(&domain.TodoResponse{Date: "2024-01-17", IsBusinessDay: true, NextBusinessDay: "2024-01-18"})
	assert.Contains(t, empty, "Nobody is due")
	assert.Equal(t, "Outreach to-do for 2024-01-17: 0 due", jobs.RenderDigestSubject(&domain.TodoResponse{Date: "2024-01-17"}))
}

func TestRenderDigestCSV(t *testing.T) {
	data, err := jobs.RenderDigestCSV(sampleTodo())
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)

	assert.Equal(t, "list", rows[0][0])
	assert.Equal(t, []string{"due_today", "Ada Lane"}, rows[1][:2])
	assert.Equal(t, "Telemetry, Nurse Call", rows[1][6])
	assert.Equal(t, "true", rows[2][12])
	assert.Equal(t, "", rows[3][8], "never contacted has no last outreach date")
	assert.Equal(t, "next_business_day", rows[4][0])
}

func TestRenderDigestWorkbook(t *testing.T) {
	data, err := jobs.RenderDigestWorkbook(sampleTodo())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("To-do")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "contact", rows[0][1])
	assert.Equal(t, "Dee Park", rows[2][1])
}

func TestDigestJob_SendsAndArchives(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	notifier := &recordingNotifier{}
	m := metrics.New(prometheus.NewRegistry())

	job := jobs.NewDigestJob(stubTodo{resp: sampleTodo()}, notifier, store, digestConfig(), m, zap.NewNop())

	result, err := job.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, jobs.DigestSent, result)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, []string{"rep@example.com"}, notifier.sent[0].To)
	assert.Equal(t, "Outreach to-do for 2024-01-17: 3 due", notifier.sent[0].Subject)

	for _, ext := range []string{"csv", "xlsx"} {
		rc, err := store.Open(context.Background(), jobs.ArchiveKey("2024-01-17", ext))
		require.NoError(t, err, ext)
		body, err := io.ReadAll(rc)
		require.NoError(t, rc.Close())
		require.NoError(t, err)
		assert.NotEmpty(t, body)
	}
	assert.Equal(t, "digests/2024-01/todo-2024-01-17.csv", jobs.ArchiveKey("2024-01-17", "csv"))

	assert.Equal(t, 1.0, promtest.ToFloat64(m.DigestRuns.WithLabelValues(jobs.DigestSent)))
}

func TestDigestJob_SkipsAndFailures(t *testing.T) {
	ctx := context.Background()
	m := metrics.New(prometheus.NewRegistry())

	saturday := &domain.TodoResponse{Date: "2024-01-20", NextBusinessDay: "2024-01-22"}
	notifier := &recordingNotifier{}
	result, err := jobs.NewDigestJob(stubTodo{resp: saturday}, notifier, nil, digestConfig(), m, zap.NewNop()).RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, jobs.DigestSkipped, result)
	assert.Empty(t, notifier.sent)

	result, err = jobs.NewDigestJob(stubTodo{resp: sampleTodo()}, notifier, nil, &config.DigestConfig{}, m, zap.NewNop()).RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, jobs.DigestSkipped, result)
	assert.Empty(t, notifier.sent)

	result, err = jobs.NewDigestJob(stubTodo{err: errors.New("db down")}, notifier, nil, digestConfig(), m, zap.NewNop()).RunOnce(ctx)
	assert.ErrorContains(t, err, "db down")
	assert.Equal(t, jobs.DigestFailed, result)

	failing := &recordingNotifier{err: errors.New("sendgrid returned error status: 401")}
	result, err = jobs.NewDigestJob(stubTodo{resp: sampleTodo()}, failing, nil, digestConfig(), m, zap.NewNop()).RunOnce(ctx)
	assert.ErrorContains(t, err, "failed to send digest")
	assert.Equal(t, jobs.DigestFailed, result)

	assert.Equal(t, 2.0, promtest.ToFloat64(m.DigestRuns.WithLabelValues(jobs.DigestSkipped)))
	assert.Equal(t, 2.0, promtest.ToFloat64(m.DigestRuns.WithLabelValues(jobs.DigestFailed)))
}

func TestScheduler_Jobs(t *testing.T) {
	s := jobs.NewScheduler(nil, zap.NewNop())

	require.NoError(t, s.AddJob("b", "0 0 7 * * 1-5", func() {}))
	require.NoError(t, s.AddJob("a", "@every 1h", func() {}))
	assert.Error(t, s.AddJob("a", "@every 1h", func() {}), "duplicate name")
	assert.Error(t, s.AddJob("c", "not a cron", func() {}))

	assert.Equal(t, []string{"a", "b"}, s.GetJobNames())

	require.NoError(t, s.RemoveJob("a"))
	assert.Error(t, s.RemoveJob("a"))
	assert.Equal(t, []string{"b"}, s.GetJobNames())

	s.Start()
	<-s.Stop().Done()
}

func TestScheduler_FiresInConfiguredLocation(t *testing.T) {
	honolulu := time.FixedZone("HST", -10*60*60)
	s := jobs.NewScheduler(honolulu, zap.NewNop())
	require.NoError(t, s.AddJob(jobs.DigestJobName, "0 0 7 * * 1-5", func() {}))

	// Monday 00:00 UTC is still Sunday afternoon in Honolulu.
	next := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	var weekdays []time.Weekday
	for i := 0; i < 5; i++ {
		var err error
		next, err = s.NextRun(jobs.DigestJobName, next)
		require.NoError(t, err)

		local := next.In(honolulu)
		assert.Equal(t, 7, local.Hour())
		assert.True(t, cadence.IsBusinessDay(cadence.DateOf(local)))
		weekdays = append(weekdays, local.Weekday())
	}

	assert.Equal(t, []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}, weekdays)
	assert.True(t, time.Date(2024, 6, 7, 17, 0, 0, 0, time.UTC).Equal(next))

	_, err := s.NextRun("missing", next)
	assert.Error(t, err)
}

func TestRegisterDigestJob(t *testing.T) {
	s := jobs.NewScheduler(nil, zap.NewNop())
	job := jobs.NewDigestJob(stubTodo{resp: sampleTodo()}, &recordingNotifier{}, nil, digestConfig(), nil, zap.NewNop())

	require.NoError(t, jobs.RegisterDigestJob(s, job, "0 0 7 * * 1-5"))
	assert.Equal(t, []string{jobs.DigestJobName}, s.GetJobNames())
}
