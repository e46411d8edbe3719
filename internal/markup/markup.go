// Package markup renders computed assignments into a line-oriented Gantt
// chart description. The format is parsed by an external renderer and must
// stay syntactically stable; recomputation from identical inputs is
// byte-identical.
package markup

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/evanharte/crewplan/internal/calendar"
	"github.com/evanharte/crewplan/internal/domain"
	"github.com/evanharte/crewplan/internal/scheduler"
)

// ViewType selects how chart sections are grouped.
type ViewType string

const (
	ViewByMember  ViewType = "member"
	ViewByProject ViewType = "project"
)

const taskDateLayout = "2006/01/02"

// Fixed charts for the two guard conditions. Renderers show these verbatim
// instead of a partial or empty chart.
const (
	noDataChart = "gantt\n\tdateFormat YYYY/MM/DD\n\ttitle No data to display\n\tsection Empty\n\tNo projects or team members : 1970/01/01, 1d\n"
	errorChart  = "gantt\n\tdateFormat YYYY/MM/DD\n\ttitle Error: invalid plan dates\n\tsection Error\n\tCheck plan start and end dates : 1970/01/01, 1d\n"
)

// SkipReason explains why one assignment was left out of the chart. Skipped
// assignments never abort the render.
type SkipReason struct {
	ProjectID    string
	TeamMemberID string
	Reason       string
}

// Chart is the rendered output plus the enumerable set of skipped
// assignments.
type Chart struct {
	Text    string
	Skipped []SkipReason
}

// Input carries everything one render needs. LinkBaseURL, when set,
// prefixes the per-project click directives in the footer.
type Input struct {
	Assignments []scheduler.Assignment
	TeamMembers []*domain.TeamMember
	Projects    []*domain.Project
	Plan        *domain.Plan
	View        ViewType
	LinkBaseURL string
	Today       time.Time
}

// Generate renders the chart. Empty inputs produce the fixed no-data chart;
// a plan with invalid dates produces the fixed error chart.
func Generate(in Input) Chart {
	if len(in.Assignments) == 0 || len(in.TeamMembers) == 0 || len(in.Projects) == 0 {
		return Chart{Text: noDataChart}
	}
	if in.Plan == nil || !in.Plan.HasValidDates() {
		return Chart{Text: errorChart}
	}

	g := &generator{
		in:          in,
		memberByID:  make(map[string]*domain.TeamMember, len(in.TeamMembers)),
		projectByID: make(map[string]*domain.Project, len(in.Projects)),
		byProject:   make(map[string][]scheduler.Assignment),
	}
	for _, m := range in.TeamMembers {
		g.memberByID[m.ID] = m
	}
	for _, p := range in.Projects {
		g.projectByID[p.ID] = p
	}
	for _, a := range in.Assignments {
		g.byProject[a.ProjectID] = append(g.byProject[a.ProjectID], a)
	}
	if g.in.Today.IsZero() {
		g.in.Today = time.Now()
	}

	var b strings.Builder
	g.writeHeader(&b)
	if in.View == ViewByProject {
		g.writeProjectSections(&b)
	} else {
		g.writeMemberSections(&b)
	}
	g.writeFooter(&b)

	return Chart{Text: b.String(), Skipped: g.skipped}
}

type generator struct {
	in          Input
	memberByID  map[string]*domain.TeamMember
	projectByID map[string]*domain.Project
	byProject   map[string][]scheduler.Assignment
	skipped     []SkipReason
}

func (g *generator) writeHeader(b *strings.Builder) {
	excludes := "weekends"
	if len(g.in.Plan.Excludes) > 0 {
		excludes = strings.Join(g.in.Plan.Excludes, ",")
	}
	b.WriteString("gantt\n")
	fmt.Fprintf(b, "\tdateFormat YYYY/MM/DD\n")
	fmt.Fprintf(b, "\ttitle %s\n", escapeName(g.in.Plan.Name))
	fmt.Fprintf(b, "\taxisFormat %%m/%%d\n")
	fmt.Fprintf(b, "\ttickInterval 1week\n")
	fmt.Fprintf(b, "\texcludes %s\n", excludes)
	fmt.Fprintf(b, "\tStart : milestone, start, %s, 0d\n",
		g.in.Plan.StartDate.Format(taskDateLayout))
}

func (g *generator) writeFooter(b *strings.Builder) {
	fmt.Fprintf(b, "\tEnd : milestone, end, %s, 0d\n",
		g.in.Plan.EndDate.Format(taskDateLayout))
	for _, p := range g.in.Projects {
		fmt.Fprintf(b, "\tclick %s href \"%s/projects/%s\"\n",
			p.DisplayID(), strings.TrimSuffix(g.in.LinkBaseURL, "/"), p.DisplayID())
	}
}

// writeMemberSections emits one section per team member, with one task line
// per assignment involving that member.
func (g *generator) writeMemberSections(b *strings.Builder) {
	for _, m := range g.in.TeamMembers {
		fmt.Fprintf(b, "\tsection %s\n", escapeName(m.Name))
		wrote := false
		for _, a := range g.in.Assignments {
			if a.TeamMemberID != m.ID {
				continue
			}
			if g.writeTask(b, a, true) {
				wrote = true
			}
		}
		if !wrote {
			g.writePlaceholder(b)
		}
	}
}

// writeProjectSections emits one section per project, with one task line per
// assignment belonging to it.
func (g *generator) writeProjectSections(b *strings.Builder) {
	for _, p := range g.in.Projects {
		fmt.Fprintf(b, "\tsection %s\n", escapeName(p.Name))
		wrote := false
		for _, a := range g.byProject[p.ID] {
			if g.writeTask(b, a, false) {
				wrote = true
			}
		}
		if !wrote {
			g.writePlaceholder(b)
		}
	}
}

// writePlaceholder keeps every section renderable even without assignments.
func (g *generator) writePlaceholder(b *strings.Builder) {
	fmt.Fprintf(b, "\tNo assignments : %s, 1d\n",
		calendar.Normalize(g.in.Today).Format(taskDateLayout))
}

// writeTask renders one assignment line, or records a skip reason and
// renders nothing. Reports whether a line was written.
func (g *generator) writeTask(b *strings.Builder, a scheduler.Assignment, labelByProject bool) bool {
	line, skip := g.renderTask(a, labelByProject)
	if skip != nil {
		g.skipped = append(g.skipped, *skip)
		return false
	}
	b.WriteString(line)
	return true
}

// renderTask resolves one assignment into a task line. It returns an
// explicit skip reason instead of failing the render for malformed data:
// null/epoch start dates and dangling references are per-assignment
// problems.
func (g *generator) renderTask(a scheduler.Assignment, labelByProject bool) (string, *SkipReason) {
	if a.StartDate.IsZero() || a.StartDate.Year() <= 1970 {
		return "", &SkipReason{ProjectID: a.ProjectID, TeamMemberID: a.TeamMemberID,
			Reason: "missing or epoch start date"}
	}
	p, ok := g.projectByID[a.ProjectID]
	if !ok {
		return "", &SkipReason{ProjectID: a.ProjectID, TeamMemberID: a.TeamMemberID,
			Reason: "unknown project"}
	}
	m, ok := g.memberByID[a.TeamMemberID]
	if !ok {
		return "", &SkipReason{ProjectID: a.ProjectID, TeamMemberID: a.TeamMemberID,
			Reason: "unknown team member"}
	}

	days := g.taskDays(p)
	if days == 0 {
		return "", &SkipReason{ProjectID: a.ProjectID, TeamMemberID: a.TeamMemberID,
			Reason: "zero combined capacity"}
	}

	// Rendering aligns to weekdays only; custom exclusions are handled by
	// the chart's own excludes directive.
	start := calendar.NextWeekday(a.StartDate)
	end := calendar.AddWorkingDays(start, days, nil)

	label := escapeName(m.Name)
	if labelByProject {
		label = escapeName(p.Name)
	}
	if a.Percentage < 100 {
		label = fmt.Sprintf("%s (%g%%)", label, a.Percentage)
	}

	var tags strings.Builder
	switch {
	case p.PercentComplete >= 100:
		tags.WriteString("done, ")
	case p.PercentComplete > 0:
		tags.WriteString("active, ")
	}
	if g.isCritical(p, end) {
		tags.WriteString("crit, ")
	}

	return fmt.Sprintf("\t%s :%s%s, %s, %dd\n",
		label, tags.String(), p.DisplayID(), start.Format(taskDateLayout), days), nil
}

// taskDays derives the rendered duration from the combined weekly hours of
// every assignment sharing the project.
func (g *generator) taskDays(p *domain.Project) int {
	combinedWeekly := 0.0
	for _, a := range g.byProject[p.ID] {
		m, ok := g.memberByID[a.TeamMemberID]
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

// isCritical flags tasks whose computed end exceeds the project deadline or
// the plan window.
func (g *generator) isCritical(p *domain.Project, end time.Time) bool {
	if p.EndBefore != nil && !p.EndBefore.IsZero() && end.After(calendar.Normalize(*p.EndBefore)) {
		return true
	}
	return end.After(calendar.Normalize(g.in.Plan.EndDate))
}

// escapeName strips characters with meaning in the chart grammar.
func escapeName(name string) string {
	name = strings.ReplaceAll(name, ":", " ")
	return strings.ReplaceAll(name, "#", " ")
}
