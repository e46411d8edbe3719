package scheduler

import (
	"math"
	"testing"
	"time"

	"github.com/evanharte/crewplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlan(start, end time.Time, excludes ...string) *domain.Plan {
	return &domain.Plan{
		ID:        "plan1",
		Name:      "Q1",
		StartDate: start,
		EndDate:   end,
		Excludes:  excludes,
	}
}

func TestCapacityForPlan_SingleMemberSingleProject(t *testing.T) {
	// Two calendar weeks minus weekends is 10 working days: 80h capacity
	// for a 40h/week member, of which one 40h project assigns half.
	plan := testPlan(date(2024, time.January, 1), date(2024, time.January, 14), "weekends")
	m := member("m1", 40)
	p := project("p1", 40, 1, date(2024, time.January, 1), alloc("m1", 100))
	assignments := []Assignment{{
		ProjectID:    "p1",
		TeamMemberID: "m1",
		StartDate:    date(2024, time.January, 1),
		WeeksNeeded:  1,
		Percentage:   100,
	}}

	got := CapacityForPlan(plan, []*domain.TeamMember{m}, []*domain.Project{p}, assignments)

	assert.Equal(t, 10, got.WorkingDays)
	assert.Equal(t, 80.0, got.CapacityHours)
	assert.Equal(t, 40.0, got.AssignedHours)
	assert.Equal(t, 50.0, got.Percentage)

	require.Len(t, got.Members, 1)
	assert.Equal(t, 50.0, got.Members[0].Percentage)
	assert.Equal(t, 50.0, got.Stats.Mean)
	assert.Equal(t, 0.0, got.Stats.StdDev)
}

func TestCapacityForPlan_SharedProjectSplitsAssignedHours(t *testing.T) {
	plan := testPlan(date(2024, time.January, 1), date(2024, time.January, 14), "weekends")
	m1, m2 := member("m1", 40), member("m2", 40)
	p := project("p1", 80, 1, date(2024, time.January, 1), alloc("m1", 100), alloc("m2", 100))
	assignments := []Assignment{
		{ProjectID: "p1", TeamMemberID: "m1", StartDate: date(2024, time.January, 1), WeeksNeeded: 1, Percentage: 100},
		{ProjectID: "p1", TeamMemberID: "m2", StartDate: date(2024, time.January, 1), WeeksNeeded: 1, Percentage: 100},
	}

	got := CapacityForPlan(plan, []*domain.TeamMember{m1, m2}, []*domain.Project{p}, assignments)

	// Combined weekly hours 80 -> 5 required days -> each member carries
	// 8h/day x 5d = 40h.
	assert.Equal(t, 80.0, got.AssignedHours)
	assert.Equal(t, 160.0, got.CapacityHours)
	assert.Equal(t, 50.0, got.Percentage)
}

func TestCapacityForPlan_AssignmentOutsideWindowIgnored(t *testing.T) {
	plan := testPlan(date(2024, time.January, 1), date(2024, time.January, 14), "weekends")
	m := member("m1", 40)
	p := project("p1", 40, 1, date(2024, time.March, 1), alloc("m1", 100))
	assignments := []Assignment{{
		ProjectID:    "p1",
		TeamMemberID: "m1",
		StartDate:    date(2024, time.March, 4),
		WeeksNeeded:  1,
		Percentage:   100,
	}}

	got := CapacityForPlan(plan, []*domain.TeamMember{m}, []*domain.Project{p}, assignments)
	assert.Equal(t, 0.0, got.AssignedHours)
	assert.Equal(t, 0.0, got.Percentage)
}

func TestCapacityForPlan_ZeroCapacityGuards(t *testing.T) {
	plan := testPlan(date(2024, time.January, 1), date(2024, time.January, 14), "weekends")

	got := CapacityForPlan(plan, nil, nil, nil)
	assert.Equal(t, 0.0, got.Percentage)
	assert.False(t, math.IsNaN(got.Percentage))
	assert.Empty(t, got.Members)
}

func TestCapacityForPlan_ExclusionsShrinkCapacity(t *testing.T) {
	plan := testPlan(date(2024, time.January, 1), date(2024, time.January, 14),
		"weekends", "2024-01-03")
	m := member("m1", 40)

	got := CapacityForPlan(plan, []*domain.TeamMember{m}, nil, nil)
	assert.Equal(t, 9, got.WorkingDays)
	assert.Equal(t, 72.0, got.CapacityHours)
}

func TestCapacityForPlan_MemberStats(t *testing.T) {
	plan := testPlan(date(2024, time.January, 1), date(2024, time.January, 14), "weekends")
	busy, idle := member("busy", 40), member("idle", 40)
	p := project("p1", 80, 1, date(2024, time.January, 1), alloc("busy", 100))
	assignments := []Assignment{{
		ProjectID:    "p1",
		TeamMemberID: "busy",
		StartDate:    date(2024, time.January, 1),
		WeeksNeeded:  2,
		Percentage:   100,
	}}

	got := CapacityForPlan(plan, []*domain.TeamMember{busy, idle}, []*domain.Project{p}, assignments)

	require.Len(t, got.Members, 2)
	assert.Equal(t, 100.0, got.Members[0].Percentage)
	assert.Equal(t, 0.0, got.Members[1].Percentage)
	assert.Equal(t, 50.0, got.Stats.Mean)
	assert.Equal(t, 0.0, got.Stats.Min)
	assert.Equal(t, 100.0, got.Stats.Max)
	assert.Greater(t, got.Stats.StdDev, 0.0)
}
