package formatter

import (
	"testing"
	"time"

	"github.com/evanharte/crewplan/internal/domain"
	"github.com/evanharte/crewplan/internal/scheduler"
	"github.com/stretchr/testify/assert"
)

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "40h", FormatHours(40))
	assert.Equal(t, "6.4h", FormatHours(6.4))
	assert.Equal(t, "0h", FormatHours(0))
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable(
		[]string{"NAME", "HOURS"},
		[][]string{{"Ada", "40h"}, {"Grace Hopper", "32h"}},
	)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Grace Hopper")

	// Data rows line up: both HOURS cells start at the same column.
	assert.Contains(t, out, "Ada           40h")
	assert.Contains(t, out, "Grace Hopper  32h")
}

func TestFormatPlanList(t *testing.T) {
	plans := []*domain.Plan{{
		ID:        "abcdef12-3456",
		Name:      "Q1 Roadmap",
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		Excludes:  []string{"weekends"},
	}}

	out := FormatPlanList(plans)
	assert.Contains(t, out, "Q1 Roadmap")
	assert.Contains(t, out, "2024-01-01")
	assert.Contains(t, out, "weekends")
}

func TestFormatSchedule_WithWarnings(t *testing.T) {
	p := &domain.Project{ID: "p1", Name: "Gateway"}
	members := map[string]*domain.TeamMember{"m1": {ID: "m1", Name: "Ada"}}
	result := scheduler.Result{
		ScheduledProjects: []scheduler.ScheduledProject{{
			Project:   p,
			StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
			Assignments: []scheduler.Assignment{{
				ProjectID: "p1", TeamMemberID: "m1", Percentage: 100,
			}},
		}},
		Utilization: scheduler.ResourceUtilization{
			AllocatedHours: 40, AvailableHours: 40, Percentage: 100,
		},
		Warnings: []scheduler.Warning{{
			Code: scheduler.WarnZeroEstimate, ProjectID: "p2",
			Message: "project Billing has no estimate",
		}},
	}

	out := FormatSchedule(result, members)
	assert.Contains(t, out, "Gateway")
	assert.Contains(t, out, "Ada 100%")
	assert.Contains(t, out, "1 warning(s)")
	assert.Contains(t, out, "project Billing has no estimate")
}

func TestFormatSchedule_Empty(t *testing.T) {
	out := FormatSchedule(scheduler.Result{}, nil)
	assert.Contains(t, out, "Nothing to schedule")
}

func TestFormatCapacity(t *testing.T) {
	report := scheduler.CapacityReport{
		WorkingDays:   65,
		CapacityHours: 520,
		AssignedHours: 480,
		Percentage:    92,
		Members: []scheduler.MemberUtilization{{
			TeamMemberID: "m1", Name: "Ada",
			AssignedHours: 480, CapacityHours: 520, Percentage: 92,
		}},
		Stats: scheduler.UtilizationStats{Mean: 92, Min: 92, Max: 92},
	}

	out := FormatCapacity(report)
	assert.Contains(t, out, "65 working days")
	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "92%")
}
