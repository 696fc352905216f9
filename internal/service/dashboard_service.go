package service

import (
	"context"
	"fmt"

	"github.com/outreach-crm/outreach-api/internal/domain"
	"github.com/outreach-crm/outreach-api/internal/repository"
	"go.uber.org/zap"
)

type DashboardService struct {
	healthSystemRepo *repository.HealthSystemRepository
	opportunityRepo  *repository.OpportunityRepository
	contactRepo      *repository.ContactRepository
	outreachRepo     *repository.OutreachRepository
	todoService      *TodoService
	logger           *zap.Logger
}

func NewDashboardService(
	healthSystemRepo *repository.HealthSystemRepository,
	opportunityRepo *repository.OpportunityRepository,
	contactRepo *repository.ContactRepository,
	outreachRepo *repository.OutreachRepository,
	todoService *TodoService,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		healthSystemRepo: healthSystemRepo,
		opportunityRepo:  opportunityRepo,
		contactRepo:      contactRepo,
		outreachRepo:     outreachRepo,
		todoService:      todoService,
		logger:           logger,
	}
}

// GetDashboard summarizes accounts, pipeline, this week's outreach (Monday through today)
// and today's to-do counts
func (s *DashboardService) GetDashboard(ctx context.Context) (*domain.DashboardDTO, error) {
	healthSystems, err := s.healthSystemRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count health systems: %w", err)
	}

	contacts, err := s.contactRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count contacts: %w", err)
	}

	opportunities, err := s.opportunityRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count opportunities: %w", err)
	}

	day := s.todoService.Today()
	weekStart := day.AddDate(0, 0, -((int(day.Weekday()) + 6) % 7))

	byMethod, err := s.outreachRepo.CountByMethodSince(ctx, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to count outreach: %w", err)
	}
	outreachThisWeek, err := s.outreachRepo.CountSince(ctx, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to count outreach: %w", err)
	}

	todo, err := s.todoService.GetTodo(ctx, day)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardDTO{
		HealthSystems:    healthSystems,
		Contacts:         contacts,
		Opportunities:    opportunities,
		OutreachThisWeek: outreachThisWeek,
		OutreachByMethod: byMethod,
		DueToday:         len(todo.DueToday),
		Rollovers:        todo.RolloverCount,
		DueNextDay:       len(todo.DueNextBusinessDay),
	}, nil
}
