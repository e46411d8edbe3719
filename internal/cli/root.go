package cli

import (
	"github.com/evanharte/crewplan/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Plans    service.PlanService
	Members  service.TeamMemberService
	Projects service.ProjectService
	Schedule service.ScheduleService
	Import   service.ImportService
}

// NewRootCmd creates the top-level "crewplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "crewplan",
		Short: "Team allocation planner and timeline generator",
	}

	root.AddCommand(
		newPlanCmd(app),
		newMemberCmd(app),
		newProjectCmd(app),
		newScheduleCmd(app),
		newCapacityCmd(app),
		newTimelineCmd(app),
		newImportCmd(app),
		newExportCmd(app),
	)

	return root
}
