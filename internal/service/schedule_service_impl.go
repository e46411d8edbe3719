package service

import (
	"context"
	"fmt"
	"time"

	"github.com/evanharte/crewplan/internal/domain"
	"github.com/evanharte/crewplan/internal/markup"
	"github.com/evanharte/crewplan/internal/repository"
	"github.com/evanharte/crewplan/internal/scheduler"
	"github.com/rs/zerolog"
)

// ScheduleOptions tune the schedule service. The zero value is usable.
type ScheduleOptions struct {
	MaxIterations int
	LinkBaseURL   string
	Logger        *zerolog.Logger
}

type scheduleService struct {
	plans    repository.PlanRepo
	members  repository.TeamMemberRepo
	projects repository.ProjectRepo
	cache    *markup.Cache
	opts     ScheduleOptions
}

func NewScheduleService(
	plans repository.PlanRepo,
	members repository.TeamMemberRepo,
	projects repository.ProjectRepo,
	opts ScheduleOptions,
) ScheduleService {
	return &scheduleService{
		plans:    plans,
		members:  members,
		projects: projects,
		cache:    markup.NewCache(),
		opts:     opts,
	}
}

func (s *scheduleService) Run(ctx context.Context, planID string) (*ScheduleResult, error) {
	plan, members, projects, err := s.loadPlanData(ctx, planID)
	if err != nil {
		return nil, err
	}

	result := scheduler.Calculate(scheduler.Input{
		Projects:    projects,
		TeamMembers: members,
		Excludes:    plan.Excludes,
	}, scheduler.Options{
		MaxIterations: s.opts.MaxIterations,
		Logger:        s.opts.Logger,
	})

	capacity := scheduler.CapacityForPlan(plan, members, projects, result.Assignments)

	return &ScheduleResult{
		Plan:        plan,
		TeamMembers: members,
		Projects:    projects,
		Schedule:    result,
		Capacity:    capacity,
	}, nil
}

func (s *scheduleService) Timeline(ctx context.Context, planID string, view markup.ViewType) (markup.Chart, error) {
	res, err := s.Run(ctx, planID)
	if err != nil {
		return markup.Chart{}, err
	}
	return s.cache.Generate(markup.Input{
		Assignments: res.Schedule.Assignments,
		TeamMembers: res.TeamMembers,
		Projects:    res.Projects,
		Plan:        res.Plan,
		View:        view,
		LinkBaseURL: s.opts.LinkBaseURL,
		Today:       time.Now(),
	}), nil
}

func (s *scheduleService) loadPlanData(ctx context.Context, planID string) (*domain.Plan, []*domain.TeamMember, []*domain.Project, error) {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading plan: %w", err)
	}
	members, err := s.members.ListByPlan(ctx, planID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading team members: %w", err)
	}
	projects, err := s.projects.ListByPlan(ctx, planID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading projects: %w", err)
	}
	return plan, members, projects, nil
}
