package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/evanharte/crewplan/internal/cli/formatter"
	"github.com/evanharte/crewplan/internal/markup"
	"github.com/spf13/cobra"
)

func newScheduleCmd(app *App) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Compute the schedule for a plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			res, err := app.Schedule.Run(ctx, planID)
			if err != nil {
				return err
			}
			members, err := membersByID(ctx, app, planID)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatSchedule(res.Schedule, members))
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan name or ID")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

func newCapacityCmd(app *App) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "capacity",
		Short: "Show the plan's capacity report",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			res, err := app.Schedule.Run(ctx, planID)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatCapacity(res.Capacity))
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan name or ID")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

func newTimelineCmd(app *App) *cobra.Command {
	var plan, view, out string

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Render the plan as Gantt chart markup",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}

			var viewType markup.ViewType
			switch view {
			case "member":
				viewType = markup.ViewByMember
			case "project":
				viewType = markup.ViewByProject
			default:
				return fmt.Errorf("unknown view %q (expected member or project)", view)
			}

			chart, err := app.Schedule.Timeline(ctx, planID, viewType)
			if err != nil {
				return err
			}

			if out != "" {
				if err := os.WriteFile(out, []byte(chart.Text), 0644); err != nil {
					return fmt.Errorf("writing timeline file: %w", err)
				}
				fmt.Printf("Wrote timeline to %s\n", out)
			} else {
				fmt.Print(chart.Text)
			}

			for _, skip := range chart.Skipped {
				fmt.Fprintf(os.Stderr, "skipped %s: %s\n", skip.ProjectID, skip.Reason)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan name or ID")
	cmd.Flags().StringVar(&view, "view", "member", "Group rows by member or project")
	cmd.Flags().StringVar(&out, "out", "", "Write markup to a file instead of stdout")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}
