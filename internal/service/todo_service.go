package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/outreach-crm/outreach-api/internal/cadence"
	"github.com/outreach-crm/outreach-api/internal/domain"
	"github.com/outreach-crm/outreach-api/internal/mapper"
	"github.com/outreach-crm/outreach-api/internal/metrics"
	"github.com/outreach-crm/outreach-api/internal/repository"
	"go.uber.org/zap"
)

// TodoService builds the daily outreach to-do list from stored assignments and history
type TodoService struct {
	assignmentRepo *repository.AssignmentRepository
	outreachRepo   *repository.OutreachRepository
	metrics        *metrics.Metrics
	clock          Clock
	location       *time.Location
	logger         *zap.Logger
}

func NewTodoService(
	assignmentRepo *repository.AssignmentRepository,
	outreachRepo *repository.OutreachRepository,
	m *metrics.Metrics,
	clock Clock,
	location *time.Location,
	logger *zap.Logger,
) *TodoService {
	return &TodoService{
		assignmentRepo: assignmentRepo,
		outreachRepo:   outreachRepo,
		metrics:        m,
		clock:          clock,
		location:       location,
		logger:         logger,
	}
}

// Today returns the current calendar date in the configured timezone
func (s *TodoService) Today() time.Time {
	return today(s.clock, s.location)
}

// todoContact gathers one contact's prospect assignments
type todoContact struct {
	contact       *domain.Contact
	cadenceDays   int
	opportunities []domain.Opportunity
}

// GetTodo computes who is due on the given date. Only prospect opportunities count.
// A contact assigned to several prospects appears once, on the shortest cadence.
// Nothing is computed when the inputs cannot be loaded in full.
func (s *TodoService) GetTodo(ctx context.Context, day time.Time) (*domain.TodoResponse, error) {
	day = cadence.DateOf(day)

	assignments, err := s.assignmentRepo.ListProspectAssignments(ctx)
	if err != nil {
		s.metrics.RecordTodoFailure()
		s.logger.Error("failed to load prospect assignments", zap.Error(err))
		return nil, fmt.Errorf("failed to load prospect assignments: %w", err)
	}

	contacts, order := groupByContact(assignments)

	latest, err := s.outreachRepo.LatestByContacts(ctx, order)
	if err != nil {
		s.metrics.RecordTodoFailure()
		s.logger.Error("failed to load latest outreach", zap.Error(err))
		return nil, fmt.Errorf("failed to load latest outreach: %w", err)
	}

	inputs := make([]cadence.Input, 0, len(order))
	for _, id := range order {
		tc := contacts[id]
		in := cadence.Input{
			ContactID:   id,
			CadenceDays: tc.cadenceDays,
		}
		if tc.contact.HealthSystem != nil {
			in.AccountName = tc.contact.HealthSystem.Name
		}
		if last, ok := latest[id]; ok {
			in.LastOutreach = &cadence.Outreach{Date: last.ContactDate, Method: string(last.ContactMethod)}
		}
		inputs = append(inputs, in)
	}

	result := cadence.Compute(day, inputs)

	resp := &domain.TodoResponse{
		Date:               mapper.FormatDate(result.Today),
		IsBusinessDay:      result.IsBusinessDayToday,
		NextBusinessDay:    mapper.FormatDate(result.NextBusinessDay),
		DueToday:           make([]domain.TodoItemDTO, 0, len(result.DueToday)),
		DueNextBusinessDay: make([]domain.TodoItemDTO, 0, len(result.DueNextBusinessDay)),
	}

	for _, status := range result.DueToday {
		tc := contacts[status.ContactID]
		resp.DueToday = append(resp.DueToday, mapper.ToTodoItemDTO(status, tc.contact, tc.opportunities))
		if status.IsRollover {
			resp.RolloverCount++
		}
	}
	for _, status := range result.DueNextBusinessDay {
		tc := contacts[status.ContactID]
		resp.DueNextBusinessDay = append(resp.DueNextBusinessDay, mapper.ToTodoItemDTO(status, tc.contact, tc.opportunities))
	}

	s.metrics.RecordTodo(len(resp.DueToday), resp.RolloverCount, len(resp.DueNextBusinessDay))
	s.logger.Debug("to-do list computed",
		zap.String("date", resp.Date),
		zap.Int("contacts", len(inputs)),
		zap.Int("due_today", len(resp.DueToday)),
		zap.Int("rollovers", resp.RolloverCount),
	)

	return resp, nil
}

// GetTodoForToday computes the to-do list for the current date
func (s *TodoService) GetTodoForToday(ctx context.Context) (*domain.TodoResponse, error) {
	return s.GetTodo(ctx, s.Today())
}

// groupByContact folds assignments into one entry per contact, keeping first-seen order
func groupByContact(assignments []domain.ContactOpportunity) (map[uuid.UUID]*todoContact, []uuid.UUID) {
	contacts := make(map[uuid.UUID]*todoContact)
	order := make([]uuid.UUID, 0)

	for i := range assignments {
		a := &assignments[i]
		if a.Contact == nil {
			continue
		}

		days := cadence.NormalizeCadence(a.CadenceDays)
		tc, ok := contacts[a.ContactID]
		if !ok {
			tc = &todoContact{contact: a.Contact, cadenceDays: days}
			contacts[a.ContactID] = tc
			order = append(order, a.ContactID)
		} else if days < tc.cadenceDays {
			tc.cadenceDays = days
		}

		if a.Opportunity != nil {
			tc.opportunities = append(tc.opportunities, *a.Opportunity)
		}
	}

	for _, tc := range contacts {
		sort.SliceStable(tc.opportunities, func(i, j int) bool {
			return strings.ToLower(tc.opportunities[i].Product) < strings.ToLower(tc.opportunities[j].Product)
		})
	}

	return contacts, order
}
