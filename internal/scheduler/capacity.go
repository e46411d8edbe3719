package scheduler

import (
	"math"

	"github.com/evanharte/crewplan/internal/calendar"
	"github.com/evanharte/crewplan/internal/domain"
	"gonum.org/v1/gonum/stat"
)

// MemberUtilization is one team member's share of the plan-level capacity
// report.
type MemberUtilization struct {
	TeamMemberID  string
	Name          string
	AssignedHours float64
	CapacityHours float64
	Percentage    float64
}

// UtilizationStats summarizes the distribution of per-member utilization
// percentages.
type UtilizationStats struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// CapacityReport aggregates plan-wide capacity against assigned hours over
// the plan window, working-day aware.
type CapacityReport struct {
	WorkingDays   int
	CapacityHours float64
	AssignedHours float64
	Percentage    float64
	Members       []MemberUtilization
	Stats         UtilizationStats
}

// CapacityForPlan computes the plan-level capacity report. Capacity counts
// working days in [plan start, plan end] under the plan's exclusion rules;
// assigned hours re-derive each project's required days from the combined
// weekly hours of all its assignments, and credit each member their share.
// Assignments starting outside the plan window are ignored.
func CapacityForPlan(
	plan *domain.Plan,
	members []*domain.TeamMember,
	projects []*domain.Project,
	assignments []Assignment,
) CapacityReport {
	rules := calendar.ParseExcludes(plan.Excludes)
	workingDays := calendar.CountWorkingDays(plan.StartDate, plan.EndDate, rules)

	memberByID := make(map[string]*domain.TeamMember, len(members))
	for _, m := range members {
		memberByID[m.ID] = m
	}
	projectByID := make(map[string]*domain.Project, len(projects))
	for _, p := range projects {
		projectByID[p.ID] = p
	}
	byProject := make(map[string][]Assignment)
	for _, a := range assignments {
		byProject[a.ProjectID] = append(byProject[a.ProjectID], a)
	}

	planStart := calendar.Normalize(plan.StartDate)
	planEnd := calendar.Normalize(plan.EndDate)

	capacityByMember := make(map[string]float64, len(members))
	assignedByMember := make(map[string]float64, len(members))
	capacity := 0.0
	for _, m := range members {
		c := m.DailyHours() * float64(workingDays)
		capacityByMember[m.ID] = c
		capacity += c
	}

	assigned := 0.0
	for _, a := range assignments {
		if a.StartDate.Before(planStart) || a.StartDate.After(planEnd) {
			continue
		}
		m, ok := memberByID[a.TeamMemberID]
		if !ok {
			continue
		}
		p, ok := projectByID[a.ProjectID]
		if !ok {
			continue
		}
		days := requiredDays(p, byProject[a.ProjectID], memberByID)
		if days == 0 {
			continue
		}
		share := m.DailyHours() * a.Percentage / 100 * float64(days)
		assignedByMember[a.TeamMemberID] += share
		assigned += share
	}

	report := CapacityReport{
		WorkingDays:   workingDays,
		CapacityHours: round1(capacity),
		AssignedHours: round1(assigned),
	}
	if capacity > 0 {
		report.Percentage = math.Round(assigned / capacity * 100)
	}

	pcts := make([]float64, 0, len(members))
	for _, m := range members {
		mu := MemberUtilization{
			TeamMemberID:  m.ID,
			Name:          m.Name,
			AssignedHours: round1(assignedByMember[m.ID]),
			CapacityHours: round1(capacityByMember[m.ID]),
		}
		if capacityByMember[m.ID] > 0 {
			mu.Percentage = math.Round(assignedByMember[m.ID] / capacityByMember[m.ID] * 100)
		}
		report.Members = append(report.Members, mu)
		pcts = append(pcts, mu.Percentage)
	}
	report.Stats = summarize(pcts)

	return report
}

// requiredDays re-derives a project's duration in working days from the
// combined weekly hours of all assignments sharing the project.
func requiredDays(p *domain.Project, assignments []Assignment, members map[string]*domain.TeamMember) int {
	combinedWeekly := 0.0
	for _, a := range assignments {
		m, ok := members[a.TeamMemberID]
		if !ok {
			continue
		}
		combinedWeekly += m.WeeklyHours * a.Percentage / 100
	}
	if combinedWeekly <= 0 {
		return 0
	}
	return int(math.Ceil(p.EstimatedHours / (combinedWeekly / 5)))
}

func summarize(pcts []float64) UtilizationStats {
	if len(pcts) == 0 {
		return UtilizationStats{}
	}
	s := UtilizationStats{
		Mean: stat.Mean(pcts, nil),
		Min:  pcts[0],
		Max:  pcts[0],
	}
	if len(pcts) > 1 {
		s.StdDev = stat.StdDev(pcts, nil)
	}
	for _, p := range pcts[1:] {
		if p < s.Min {
			s.Min = p
		}
		if p > s.Max {
			s.Max = p
		}
	}
	s.Mean = round1(s.Mean)
	s.StdDev = round1(s.StdDev)
	return s
}
