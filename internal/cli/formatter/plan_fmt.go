package formatter

import (
	"fmt"
	"strings"

	"github.com/evanharte/crewplan/internal/domain"
)

// FormatPlanList renders a styled plan list inside a bordered box.
func FormatPlanList(plans []*domain.Plan) string {
	headers := []string{"ID", "NAME", "START", "END", "EXCLUDES"}
	rows := make([][]string, 0, len(plans))

	for _, p := range plans {
		excludes := Dim("--")
		if len(p.Excludes) > 0 {
			excludes = strings.Join(p.Excludes, ", ")
		}
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(p.Name),
			ShortDate(p.StartDate),
			ShortDate(p.EndDate),
			excludes,
		})
	}

	return RenderBox("Plans", RenderTable(headers, rows))
}

// FormatPlanInspect renders a plan detail card.
func FormatPlanInspect(plan *domain.Plan, memberCount, projectCount int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s %s\n", Bold(plan.Name), TruncID(plan.ID)))
	b.WriteString(fmt.Sprintf("%s  %s → %s\n", Dim("Window"), HumanDate(plan.StartDate), HumanDate(plan.EndDate)))
	if len(plan.Excludes) > 0 {
		b.WriteString(fmt.Sprintf("%s  %s\n", Dim("Excludes"), strings.Join(plan.Excludes, ", ")))
	}
	b.WriteString(fmt.Sprintf("%s  %d members, %d projects\n", Dim("Contents"), memberCount, projectCount))

	return RenderBox("Plan", strings.TrimRight(b.String(), "\n"))
}
