package formatter

import (
	"fmt"
	"strings"

	"github.com/evanharte/crewplan/internal/domain"
	"github.com/evanharte/crewplan/internal/scheduler"
)

// FormatSchedule renders the outcome of one scheduling run: the computed
// project windows, overall utilization and any data-quality warnings.
func FormatSchedule(result scheduler.Result, membersByID map[string]*domain.TeamMember) string {
	var b strings.Builder

	if len(result.ScheduledProjects) == 0 {
		b.WriteString(Dim("Nothing to schedule.") + "\n")
	} else {
		headers := []string{"PROJECT", "START", "END", "TEAM"}
		rows := make([][]string, 0, len(result.ScheduledProjects))
		for _, sp := range result.ScheduledProjects {
			team := make([]string, 0, len(sp.Assignments))
			for _, a := range sp.Assignments {
				team = append(team, fmt.Sprintf("%s %.0f%%", memberName(a.TeamMemberID, membersByID), a.Percentage))
			}
			rows = append(rows, []string{
				Bold(sp.Project.Name),
				ShortDate(sp.StartDate),
				ShortDate(sp.EndDate),
				strings.Join(team, ", "),
			})
		}
		b.WriteString(RenderTable(headers, rows))

		util := result.Utilization
		b.WriteString(fmt.Sprintf("\n%s  %s of %s  %s\n",
			Dim("Utilization"),
			FormatHours(util.AllocatedHours),
			FormatHours(util.AvailableHours),
			UtilizationPill(util.Percentage)))
	}

	if len(result.Warnings) > 0 {
		b.WriteString("\n" + StyleYellow.Render(fmt.Sprintf("%d warning(s):", len(result.Warnings))) + "\n")
		for _, w := range result.Warnings {
			b.WriteString(fmt.Sprintf("  %s %s\n", StyleYellow.Render("▲"), w.Message))
		}
	}

	return RenderBox("Schedule", strings.TrimRight(b.String(), "\n"))
}

// FormatCapacity renders the plan-level capacity report.
func FormatCapacity(report scheduler.CapacityReport) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %d working days, %s capacity, %s assigned  %s\n\n",
		Dim("Plan"),
		report.WorkingDays,
		FormatHours(report.CapacityHours),
		FormatHours(report.AssignedHours),
		UtilizationPill(report.Percentage)))

	headers := []string{"MEMBER", "ASSIGNED", "CAPACITY", "UTIL"}
	rows := make([][]string, 0, len(report.Members))
	for _, m := range report.Members {
		rows = append(rows, []string{
			Bold(m.Name),
			FormatHours(m.AssignedHours),
			FormatHours(m.CapacityHours),
			UtilizationPill(m.Percentage),
		})
	}
	b.WriteString(RenderTable(headers, rows))

	b.WriteString(fmt.Sprintf("\n%s  mean %.1f%%, stddev %.1f%%, min %.1f%%, max %.1f%%\n",
		Dim("Spread"),
		report.Stats.Mean, report.Stats.StdDev, report.Stats.Min, report.Stats.Max))

	return RenderBox("Capacity", strings.TrimRight(b.String(), "\n"))
}
