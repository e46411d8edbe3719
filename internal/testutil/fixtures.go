package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/evanharte/crewplan/internal/domain"
	"github.com/google/uuid"
)

var testShortIDCounter atomic.Int64

// Plan options
type PlanOption func(*domain.Plan)

func WithPlanDates(start, end time.Time) PlanOption {
	return func(p *domain.Plan) {
		p.StartDate = start
		p.EndDate = end
	}
}

func WithExcludes(excludes ...string) PlanOption {
	return func(p *domain.Plan) {
		p.Excludes = excludes
	}
}

func NewTestPlan(name string, opts ...PlanOption) *domain.Plan {
	now := time.Now().UTC()
	p := &domain.Plan{
		ID:        uuid.New().String(),
		Name:      name,
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Excludes:  []string{"weekends"},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// TeamMember options
type MemberOption func(*domain.TeamMember)

func WithWeeklyHours(h float64) MemberOption {
	return func(m *domain.TeamMember) {
		m.WeeklyHours = h
	}
}

func NewTestMember(planID, name string, opts ...MemberOption) *domain.TeamMember {
	now := time.Now().UTC()
	m := &domain.TeamMember{
		ID:          uuid.New().String(),
		PlanID:      planID,
		Name:        name,
		WeeklyHours: domain.DefaultWeeklyHours,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Project options
type ProjectOption func(*domain.Project)

func WithEstimatedHours(h float64) ProjectOption {
	return func(p *domain.Project) {
		p.EstimatedHours = h
	}
}

func WithPriority(n int) ProjectOption {
	return func(p *domain.Project) {
		p.Priority = n
	}
}

func WithStartAfter(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartAfter = &d
	}
}

func WithEndBefore(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.EndBefore = &d
	}
}

func WithShortID(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ShortID = id
	}
}

func WithPercentComplete(pct float64) ProjectOption {
	return func(p *domain.Project) {
		p.PercentComplete = pct
	}
}

func WithAllocation(memberID string, pct float64) ProjectOption {
	return func(p *domain.Project) {
		p.Allocations = append(p.Allocations, domain.Allocation{
			TeamMemberID: memberID,
			Percentage:   pct,
		})
	}
}

func WithAllocationStart(memberID string, pct float64, start time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.Allocations = append(p.Allocations, domain.Allocation{
			TeamMemberID: memberID,
			Percentage:   pct,
			StartDate:    &start,
		})
	}
}

func defaultShortID(name string) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	n := testShortIDCounter.Add(1)
	return fmt.Sprintf("%s%02d", string(letters), n)
}

func NewTestProject(planID, name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:             uuid.New().String(),
		PlanID:         planID,
		ShortID:        defaultShortID(name),
		Name:           name,
		EstimatedHours: 40,
		Priority:       1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
