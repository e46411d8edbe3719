package scheduler

import (
	"math"
	"testing"
	"time"

	"github.com/evanharte/crewplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func member(id string, weeklyHours float64) *domain.TeamMember {
	return &domain.TeamMember{ID: id, Name: "Member " + id, WeeklyHours: weeklyHours}
}

func project(id string, hours float64, priority int, startAfter time.Time, allocs ...domain.Allocation) *domain.Project {
	p := &domain.Project{
		ID:             id,
		Name:           "Project " + id,
		EstimatedHours: hours,
		Priority:       priority,
		Allocations:    allocs,
	}
	if !startAfter.IsZero() {
		p.StartAfter = &startAfter
	}
	return p
}

func alloc(memberID string, pct float64) domain.Allocation {
	return domain.Allocation{TeamMemberID: memberID, Percentage: pct}
}

var testOpts = Options{Now: date(2024, time.January, 1)}

func TestCalculate_EmptyInput(t *testing.T) {
	m := member("m1", 40)
	p := project("p1", 40, 1, date(2024, time.January, 1), alloc("m1", 100))

	got := Calculate(Input{Projects: nil, TeamMembers: []*domain.TeamMember{m}}, testOpts)
	assert.Empty(t, got.Assignments)
	assert.Empty(t, got.ScheduledProjects)
	assert.Zero(t, got.Utilization)

	got = Calculate(Input{Projects: []*domain.Project{p}, TeamMembers: nil}, testOpts)
	assert.Empty(t, got.Assignments)
	assert.Empty(t, got.ScheduledProjects)
}

func TestCalculate_EndToEnd(t *testing.T) {
	// One member at 40h/week, one 40h project starting Monday 2024-01-01:
	// a single 100% assignment, one week needed, window [Jan 1, Jan 8).
	m := member("m1", 40)
	p := project("p1", 40, 1, date(2024, time.January, 1), alloc("m1", 100))

	got := Calculate(Input{
		Projects:    []*domain.Project{p},
		TeamMembers: []*domain.TeamMember{m},
		Excludes:    []string{"weekends"},
	}, testOpts)

	require.Len(t, got.Assignments, 1)
	a := got.Assignments[0]
	assert.Equal(t, "p1", a.ProjectID)
	assert.Equal(t, "m1", a.TeamMemberID)
	assert.Equal(t, date(2024, time.January, 1), a.StartDate)
	assert.Equal(t, 1.0, a.WeeksNeeded)
	assert.Equal(t, 100.0, a.Percentage)

	require.Len(t, got.ScheduledProjects, 1)
	sp := got.ScheduledProjects[0]
	assert.Equal(t, date(2024, time.January, 1), sp.StartDate)
	assert.Equal(t, date(2024, time.January, 8), sp.EndDate)

	assert.Equal(t, 100.0, got.Utilization.Percentage)
	assert.Empty(t, got.Warnings)
}

func TestCalculate_Idempotent(t *testing.T) {
	m1, m2 := member("m1", 40), member("m2", 30)
	projects := []*domain.Project{
		project("p1", 80, 1, date(2024, time.January, 1), alloc("m1", 100)),
		project("p2", 40, 2, date(2024, time.January, 1), alloc("m1", 50), alloc("m2", 50)),
		project("p3", 20, 2, time.Time{}, alloc("m2", 100)),
	}
	in := Input{
		Projects:    projects,
		TeamMembers: []*domain.TeamMember{m1, m2},
		Excludes:    []string{"weekends"},
	}

	first := Calculate(in, testOpts)
	second := Calculate(in, testOpts)

	require.Equal(t, first.Assignments, second.Assignments)
	require.Equal(t, first.ScheduledProjects, second.ScheduledProjects)
	require.Equal(t, first.Utilization, second.Utilization)
	require.Equal(t, first.Warnings, second.Warnings)
}

func TestCalculate_PriorityPrecedence(t *testing.T) {
	// Two projects both need the same member at 100% for overlapping
	// periods. The higher-priority project wins the earlier slot and the
	// assignments never overlap.
	m := member("m1", 40)
	a := project("pa", 40, 1, date(2024, time.January, 1), alloc("m1", 100))
	b := project("pb", 40, 2, date(2024, time.January, 1), alloc("m1", 100))

	got := Calculate(Input{
		Projects:    []*domain.Project{b, a}, // input order must not matter
		TeamMembers: []*domain.TeamMember{m},
		Excludes:    []string{"weekends"},
	}, testOpts)

	require.Len(t, got.Assignments, 2)
	byID := assignmentsByProject(got.Assignments)
	aa, ba := byID["pa"], byID["pb"]

	assert.True(t, !aa.StartDate.After(ba.StartDate), "higher priority starts at or before lower")
	aEnd := aa.EndDate(nil)
	assert.False(t, ba.StartDate.Before(aEnd), "assignments must not overlap")
	assert.Equal(t, date(2024, time.January, 8), ba.StartDate)
}

func TestCalculate_OverallocationPushesLowerPriorityLater(t *testing.T) {
	m := member("m1", 40)
	a := project("pa", 40, 1, date(2024, time.January, 1), alloc("m1", 100))
	b := project("pb", 40, 2, date(2024, time.January, 1), alloc("m1", 100))

	got := Calculate(Input{
		Projects:    []*domain.Project{a, b},
		TeamMembers: []*domain.TeamMember{m},
		Excludes:    []string{"weekends"},
	}, testOpts)

	byID := assignmentsByProject(got.Assignments)
	require.Contains(t, byID, "pa")
	require.Contains(t, byID, "pb")
	// pb resolves strictly after pa's last occupied day, not at the same date.
	assert.True(t, byID["pb"].StartDate.After(date(2024, time.January, 5)))
	assert.NotEqual(t, byID["pa"].StartDate, byID["pb"].StartDate)
}

func TestCalculate_EqualPrioritySharesCapacity(t *testing.T) {
	// Two half-time projects with equal priority fit on the same member
	// concurrently: 50 + 50 stays within the 100% workload bound.
	m := member("m1", 40)
	a := project("pa", 20, 1, date(2024, time.January, 1), alloc("m1", 50))
	b := project("pb", 20, 1, date(2024, time.January, 1), alloc("m1", 50))

	got := Calculate(Input{
		Projects:    []*domain.Project{a, b},
		TeamMembers: []*domain.TeamMember{m},
		Excludes:    []string{"weekends"},
	}, testOpts)

	require.Len(t, got.Assignments, 2)
	byID := assignmentsByProject(got.Assignments)
	assert.Equal(t, byID["pa"].StartDate, byID["pb"].StartDate)
}

func TestCalculate_WorkloadBoundRejectsOversharing(t *testing.T) {
	// 60 + 60 exceeds 100%, so the second project is pushed past the first
	// even though priorities are equal.
	m := member("m1", 40)
	a := project("pa", 24, 1, date(2024, time.January, 1), alloc("m1", 60))
	b := project("pb", 24, 1, date(2024, time.January, 1), alloc("m1", 60))

	got := Calculate(Input{
		Projects:    []*domain.Project{a, b},
		TeamMembers: []*domain.TeamMember{m},
		Excludes:    []string{"weekends"},
	}, testOpts)

	require.Len(t, got.Assignments, 2)
	byID := assignmentsByProject(got.Assignments)
	aEnd := byID["pa"].EndDate(nil)
	assert.False(t, byID["pb"].StartDate.Before(aEnd))
}

func TestCalculate_FallbackAfterIterationCap(t *testing.T) {
	// The first project occupies the member at 60% far beyond the scan
	// horizon; an equal-priority 60% project can never fit and falls back
	// to the plan base date with a warning.
	m := member("m1", 40)
	a := project("pa", 2400, 1, date(2024, time.January, 1), alloc("m1", 60))
	b := project("pb", 24, 1, date(2024, time.January, 1), alloc("m1", 60))

	got := Calculate(Input{
		Projects:    []*domain.Project{a, b},
		TeamMembers: []*domain.TeamMember{m},
		Excludes:    []string{"weekends"},
	}, testOpts)

	require.Len(t, got.Assignments, 2)
	assert.True(t, got.HasWarning(WarnPlacementFallback, "pb"))
	byID := assignmentsByProject(got.Assignments)
	assert.Equal(t, date(2024, time.January, 1), byID["pb"].StartDate)
}

func TestCalculate_NoFallbackWhenScheduleFits(t *testing.T) {
	m := member("m1", 40)
	p := project("p1", 40, 1, date(2024, time.January, 1), alloc("m1", 100))

	got := Calculate(Input{
		Projects:    []*domain.Project{p},
		TeamMembers: []*domain.TeamMember{m},
		Excludes:    []string{"weekends"},
	}, testOpts)

	assert.False(t, got.HasWarning(WarnPlacementFallback, "p1"))
}

func TestCalculate_UnknownMemberSkippedGracefully(t *testing.T) {
	m := member("m1", 40)
	valid := project("p1", 40, 1, date(2024, time.January, 1), alloc("m1", 100))
	dangling := project("p2", 40, 2, date(2024, time.January, 1), alloc("ghost", 100))

	got := Calculate(Input{
		Projects:    []*domain.Project{valid, dangling},
		TeamMembers: []*domain.TeamMember{m},
		Excludes:    []string{"weekends"},
	}, testOpts)

	require.Len(t, got.Assignments, 1)
	assert.Equal(t, "p1", got.Assignments[0].ProjectID)
	require.Len(t, got.ScheduledProjects, 1)
	assert.Equal(t, "p1", got.ScheduledProjects[0].Project.ID)
	assert.True(t, got.HasWarning(WarnNoValidAllocations, "p2"))
}

func TestCalculate_SkipsUnschedulableProjects(t *testing.T) {
	m := member("m1", 40)
	noAllocs := project("p1", 40, 1, date(2024, time.January, 1))
	noHours := project("p2", 0, 1, date(2024, time.January, 1), alloc("m1", 100))

	got := Calculate(Input{
		Projects:    []*domain.Project{noAllocs, noHours},
		TeamMembers: []*domain.TeamMember{m},
	}, testOpts)

	assert.Empty(t, got.Assignments)
	assert.True(t, got.HasWarning(WarnNoAllocations, "p1"))
	assert.True(t, got.HasWarning(WarnZeroEstimate, "p2"))
}

func TestCalculate_UtilizationAlwaysFinite(t *testing.T) {
	m := member("m1", 40)
	a := project("pa", 40, 1, date(2024, time.January, 1), alloc("m1", 100))
	b := project("pb", 40, 2, date(2024, time.January, 1), alloc("m1", 100))

	got := Calculate(Input{
		Projects:    []*domain.Project{a, b},
		TeamMembers: []*domain.TeamMember{m},
		Excludes:    []string{"weekends"},
	}, testOpts)

	u := got.Utilization.Percentage
	assert.False(t, math.IsNaN(u))
	assert.False(t, math.IsInf(u, 0))
	assert.GreaterOrEqual(t, u, 0.0)
}

func TestCalculate_AllocationStartOverridePullsLater(t *testing.T) {
	m := member("m1", 40)
	override := date(2024, time.February, 5)
	p := project("p1", 40, 1, date(2024, time.January, 1),
		domain.Allocation{TeamMemberID: "m1", Percentage: 100, StartDate: &override})

	got := Calculate(Input{
		Projects:    []*domain.Project{p},
		TeamMembers: []*domain.TeamMember{m},
		Excludes:    []string{"weekends"},
	}, testOpts)

	require.Len(t, got.Assignments, 1)
	assert.Equal(t, override, got.Assignments[0].StartDate)
}

func TestCalculate_EpochOverrideIgnored(t *testing.T) {
	m := member("m1", 40)
	epoch := time.Unix(0, 0)
	p := project("p1", 40, 1, date(2024, time.January, 1),
		domain.Allocation{TeamMemberID: "m1", Percentage: 100, StartDate: &epoch})

	got := Calculate(Input{
		Projects:    []*domain.Project{p},
		TeamMembers: []*domain.TeamMember{m},
		Excludes:    []string{"weekends"},
	}, testOpts)

	require.Len(t, got.Assignments, 1)
	assert.Equal(t, date(2024, time.January, 1), got.Assignments[0].StartDate)
}

func TestCalculate_StartSnapsToWorkingDay(t *testing.T) {
	// startAfter on a Saturday snaps forward to Monday.
	m := member("m1", 40)
	p := project("p1", 40, 1, date(2024, time.January, 6), alloc("m1", 100))

	got := Calculate(Input{
		Projects:    []*domain.Project{p},
		TeamMembers: []*domain.TeamMember{m},
		Excludes:    []string{"weekends"},
	}, testOpts)

	require.Len(t, got.Assignments, 1)
	assert.Equal(t, date(2024, time.January, 8), got.Assignments[0].StartDate)
}

func assignmentsByProject(assignments []Assignment) map[string]Assignment {
	byID := make(map[string]Assignment, len(assignments))
	for _, a := range assignments {
		byID[a.ProjectID] = a
	}
	return byID
}
