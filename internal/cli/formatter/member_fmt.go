package formatter

import (
	"github.com/evanharte/crewplan/internal/domain"
)

// FormatMemberList renders the plan's team members as a table.
func FormatMemberList(members []*domain.TeamMember) string {
	headers := []string{"ID", "NAME", "WEEKLY", "DAILY"}
	rows := make([][]string, 0, len(members))

	for _, m := range members {
		rows = append(rows, []string{
			TruncID(m.ID),
			Bold(m.Name),
			FormatHours(m.WeeklyHours),
			FormatHours(m.DailyHours()),
		})
	}

	return RenderBox("Team", RenderTable(headers, rows))
}
