package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/evanharte/crewplan/internal/cli/formatter"
	"github.com/evanharte/crewplan/internal/domain"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage plans",
	}

	cmd.AddCommand(
		newPlanAddCmd(app),
		newPlanListCmd(app),
		newPlanInspectCmd(app),
		newPlanUpdateCmd(app),
		newPlanRemoveCmd(app),
	)

	return cmd
}

func newPlanAddCmd(app *App) *cobra.Command {
	var name string
	var start, end time.Time
	var excludes []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Plan{
				Name:      name,
				StartDate: start,
				EndDate:   end,
				Excludes:  excludes,
			}
			if err := app.Plans.Create(context.Background(), p); err != nil {
				return err
			}
			fmt.Printf("Created plan %s (%s)\n", p.Name, p.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Plan name")
	dateVar(cmd.Flags(), &start, "start", "Plan start date (YYYY-MM-DD)")
	dateVar(cmd.Flags(), &end, "end", "Plan end date (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&excludes, "exclude", nil, "Exclusion rule (weekends, a weekday name, or a date); repeatable")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newPlanListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := app.Plans.List(context.Background())
			if err != nil {
				return err
			}
			if len(plans) == 0 {
				fmt.Println("No plans found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatPlanList(plans))
			return nil
		},
	}
}

func newPlanInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <plan>",
		Short: "Show plan details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			plan, err := app.Plans.GetByID(ctx, planID)
			if err != nil {
				return err
			}
			members, err := app.Members.ListByPlan(ctx, planID)
			if err != nil {
				return err
			}
			projects, err := app.Projects.ListByPlan(ctx, planID)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatPlanInspect(plan, len(members), len(projects)))
			return nil
		},
	}
}

func newPlanUpdateCmd(app *App) *cobra.Command {
	var name string
	var start, end time.Time
	var excludes []string

	cmd := &cobra.Command{
		Use:   "update <plan>",
		Short: "Update a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			plan, err := app.Plans.GetByID(ctx, planID)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				plan.Name = name
			}
			if cmd.Flags().Changed("start") {
				plan.StartDate = start
			}
			if cmd.Flags().Changed("end") {
				plan.EndDate = end
			}
			if cmd.Flags().Changed("exclude") {
				plan.Excludes = excludes
			}

			if err := app.Plans.Update(ctx, plan); err != nil {
				return err
			}
			fmt.Printf("Updated plan %s\n", plan.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Plan name")
	dateVar(cmd.Flags(), &start, "start", "Plan start date (YYYY-MM-DD)")
	dateVar(cmd.Flags(), &end, "end", "Plan end date (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&excludes, "exclude", nil, "Replace exclusion rules; repeatable")

	return cmd
}

func newPlanRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <plan>",
		Short: "Delete a plan and everything in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Plans.Delete(ctx, planID); err != nil {
				return err
			}
			fmt.Println("Plan removed.")
			return nil
		},
	}
}
