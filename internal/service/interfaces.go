package service

import (
	"context"

	"github.com/evanharte/crewplan/internal/domain"
	"github.com/evanharte/crewplan/internal/markup"
	"github.com/evanharte/crewplan/internal/scheduler"
)

type PlanService interface {
	Create(ctx context.Context, p *domain.Plan) error
	GetByID(ctx context.Context, id string) (*domain.Plan, error)
	List(ctx context.Context) ([]*domain.Plan, error)
	Update(ctx context.Context, p *domain.Plan) error
	Delete(ctx context.Context, id string) error
}

type TeamMemberService interface {
	Create(ctx context.Context, m *domain.TeamMember) error
	GetByID(ctx context.Context, id string) (*domain.TeamMember, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.TeamMember, error)
	Update(ctx context.Context, m *domain.TeamMember) error
	Delete(ctx context.Context, id string) error
}

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	ListByPlan(ctx context.Context, planID string) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

// ScheduleResult bundles one scheduling run with the plan data it was
// computed from and the derived capacity report.
type ScheduleResult struct {
	Plan        *domain.Plan
	TeamMembers []*domain.TeamMember
	Projects    []*domain.Project
	Schedule    scheduler.Result
	Capacity    scheduler.CapacityReport
}

type ScheduleService interface {
	Run(ctx context.Context, planID string) (*ScheduleResult, error)
	Timeline(ctx context.Context, planID string, view markup.ViewType) (markup.Chart, error)
}

// ImportResult holds the outcome of a plan import.
type ImportResult struct {
	Plan         *domain.Plan
	MemberCount  int
	ProjectCount int
}

type ImportService interface {
	ImportPlan(ctx context.Context, filePath string) (*ImportResult, error)
	ExportPlan(ctx context.Context, planID string, filePath string) error
}
