package jobs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/outreach-crm/outreach-api/internal/config"
	"github.com/outreach-crm/outreach-api/internal/domain"
	"github.com/outreach-crm/outreach-api/internal/logger"
	"github.com/outreach-crm/outreach-api/internal/metrics"
	"github.com/outreach-crm/outreach-api/internal/notify"
	"github.com/outreach-crm/outreach-api/internal/storage"
	"go.uber.org/zap"
)

// DigestJobName is the scheduler name of the daily to-do digest
const DigestJobName = "daily_digest"

// Digest run results, used as the metrics label
const (
	DigestSent    = "sent"
	DigestSkipped = "skipped"
	DigestFailed  = "failed"
)

// TodoSource computes the to-do list for the current date.
// Satisfied by *service.TodoService.
type TodoSource interface {
	GetTodoForToday(ctx context.Context) (*domain.TodoResponse, error)
}

// DigestJob emails the day's to-do list and archives it as CSV and xlsx
type DigestJob struct {
	todo       TodoSource
	notifier   notify.Notifier
	archive    storage.Storage
	recipients []string
	timeout    time.Duration
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewDigestJob creates the digest job. archive may be nil to skip archiving.
func NewDigestJob(
	todo TodoSource,
	notifier notify.Notifier,
	archive storage.Storage,
	cfg *config.DigestConfig,
	m *metrics.Metrics,
	logger *zap.Logger,
) *DigestJob {
	timeout := cfg.TimeoutDuration()
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &DigestJob{
		todo:       todo,
		notifier:   notifier,
		archive:    archive,
		recipients: cfg.Recipients,
		timeout:    timeout,
		metrics:    m,
		logger:     logger.With(zap.String("job_name", DigestJobName)),
	}
}

// Run is the scheduler entry point
func (j *DigestJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	if _, err := j.RunOnce(ctx); err != nil {
		j.logger.Error("digest run failed", zap.Error(err))
	}
}

// RunOnce computes, archives and sends one digest and reports the result.
// Weekends are skipped. An archive failure is logged and does not stop delivery.
func (j *DigestJob) RunOnce(ctx context.Context) (string, error) {
	start := time.Now()

	if len(j.recipients) == 0 {
		j.logger.Warn("digest has no recipients configured")
		j.metrics.RecordDigest(DigestSkipped)
		return DigestSkipped, nil
	}

	todo, err := j.todo.GetTodoForToday(ctx)
	if err != nil {
		j.metrics.RecordDigest(DigestFailed)
		return DigestFailed, fmt.Errorf("failed to compute to-do list: %w", err)
	}

	if !todo.IsBusinessDay {
		j.logger.Info("skipping digest on non-business day", zap.String("date", todo.Date))
		j.metrics.RecordDigest(DigestSkipped)
		return DigestSkipped, nil
	}

	for _, item := range todo.DueToday {
		if item.IsRollover {
			logger.WithContact(j.logger, item.ContactID.String(), item.AccountName).Debug("contact rolled over",
				zap.String("due_date", item.DueDate),
				zap.Int("days_overdue", item.DaysOverdue),
			)
		}
	}

	if j.archive != nil {
		if err := j.archiveDigest(ctx, todo); err != nil {
			j.logger.Warn("failed to archive digest", zap.Error(err))
		}
	}

	msg := &notify.Message{
		To:        j.recipients,
		Subject:   RenderDigestSubject(todo),
		PlainText: RenderDigestText(todo),
	}
	if err := j.notifier.Send(ctx, msg); err != nil {
		j.metrics.RecordDigest(DigestFailed)
		return DigestFailed, fmt.Errorf("failed to send digest: %w", err)
	}

	j.metrics.RecordDigest(DigestSent)
	j.logger.Info("digest sent",
		zap.String("date", todo.Date),
		zap.Int("due_today", len(todo.DueToday)),
		zap.Int("rollovers", todo.RolloverCount),
		zap.Int("due_next_business_day", len(todo.DueNextBusinessDay)),
		zap.Int("recipients", len(j.recipients)),
		zap.Duration("duration", time.Since(start)),
	)
	return DigestSent, nil
}

// ArchiveKey returns the storage key of a digest archive; ext is "csv" or "xlsx"
func ArchiveKey(date, ext string) string {
	month := date
	if len(date) >= 7 {
		month = date[:7]
	}
	return fmt.Sprintf("digests/%s/todo-%s.%s", month, date, ext)
}

func (j *DigestJob) archiveDigest(ctx context.Context, todo *domain.TodoResponse) error {
	csvData, err := RenderDigestCSV(todo)
	if err != nil {
		return err
	}
	workbook, err := RenderDigestWorkbook(todo)
	if err != nil {
		return err
	}

	var errs []error
	if _, err := j.archive.Save(ctx, ArchiveKey(todo.Date, "csv"), "text/csv", bytes.NewReader(csvData)); err != nil {
		errs = append(errs, err)
	}
	if _, err := j.archive.Save(ctx, ArchiveKey(todo.Date, "xlsx"),
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", bytes.NewReader(workbook)); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// RegisterDigestJob schedules job under DigestJobName
func RegisterDigestJob(scheduler *Scheduler, job *DigestJob, cronExpr string) error {
	return scheduler.AddJob(DigestJobName, cronExpr, job.Run)
}
