package formatter

import (
	"fmt"
	"strings"

	"github.com/evanharte/crewplan/internal/domain"
)

// FormatProjectList renders a styled project list inside a bordered box.
func FormatProjectList(projects []*domain.Project, membersByID map[string]*domain.TeamMember) string {
	headers := []string{"ID", "NAME", "PRI", "EST", "DONE", "TEAM"}
	rows := make([][]string, 0, len(projects))

	for _, p := range projects {
		id := p.ShortID
		if strings.TrimSpace(id) == "" {
			id = TruncID(p.ID)
		}

		rows = append(rows, []string{
			id,
			Bold(p.Name),
			fmt.Sprintf("%d", p.Priority),
			FormatHours(p.EstimatedHours),
			fmt.Sprintf("%.0f%%", p.PercentComplete),
			allocationSummary(p.Allocations, membersByID),
		})
	}

	return RenderBox("Projects", RenderTable(headers, rows))
}

// FormatProjectInspect renders a project detail card with its allocations.
func FormatProjectInspect(p *domain.Project, membersByID map[string]*domain.TeamMember) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s [%s] %s\n", Bold(p.Name), p.DisplayID(), TruncID(p.ID)))
	b.WriteString(fmt.Sprintf("%s  %s estimated, priority %d, %.0f%% complete\n",
		Dim("Effort"), FormatHours(p.EstimatedHours), p.Priority, p.PercentComplete))
	if p.StartAfter != nil {
		b.WriteString(fmt.Sprintf("%s  not before %s\n", Dim("Start"), ShortDate(*p.StartAfter)))
	}
	if p.EndBefore != nil {
		b.WriteString(fmt.Sprintf("%s  due %s\n", Dim("Due"), ShortDate(*p.EndBefore)))
	}

	if len(p.Allocations) == 0 {
		b.WriteString(Dim("No allocations") + "\n")
	} else {
		b.WriteString("\n")
		headers := []string{"MEMBER", "PCT", "FROM"}
		rows := make([][]string, 0, len(p.Allocations))
		for _, a := range p.Allocations {
			from := Dim("--")
			if a.HasStartOverride() {
				from = ShortDate(*a.StartDate)
			}
			rows = append(rows, []string{
				memberName(a.TeamMemberID, membersByID),
				fmt.Sprintf("%.0f%%", a.Percentage),
				from,
			})
		}
		b.WriteString(RenderTable(headers, rows))
	}

	return RenderBox("Project", strings.TrimRight(b.String(), "\n"))
}

func allocationSummary(allocs []domain.Allocation, membersByID map[string]*domain.TeamMember) string {
	if len(allocs) == 0 {
		return Dim("--")
	}
	parts := make([]string, 0, len(allocs))
	for _, a := range allocs {
		parts = append(parts, fmt.Sprintf("%s %.0f%%", memberName(a.TeamMemberID, membersByID), a.Percentage))
	}
	return strings.Join(parts, ", ")
}

func memberName(id string, membersByID map[string]*domain.TeamMember) string {
	if m, ok := membersByID[id]; ok {
		return m.Name
	}
	if len(id) > 8 {
		id = id[:8]
	}
	return id
}
