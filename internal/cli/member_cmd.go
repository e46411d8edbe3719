package cli

import (
	"context"
	"fmt"

	"github.com/evanharte/crewplan/internal/cli/formatter"
	"github.com/evanharte/crewplan/internal/domain"
	"github.com/spf13/cobra"
)

func newMemberCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage team members",
	}

	cmd.AddCommand(
		newMemberAddCmd(app),
		newMemberListCmd(app),
		newMemberUpdateCmd(app),
		newMemberRemoveCmd(app),
	)

	return cmd
}

func newMemberAddCmd(app *App) *cobra.Command {
	var plan, name string
	var hours float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a team member to a plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			m := &domain.TeamMember{
				PlanID:      planID,
				Name:        name,
				WeeklyHours: hours,
			}
			if err := app.Members.Create(ctx, m); err != nil {
				return err
			}
			fmt.Printf("Added %s (%s/week)\n", m.Name, formatter.FormatHours(m.WeeklyHours))
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan name or ID")
	cmd.Flags().StringVar(&name, "name", "", "Member name")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Weekly hours (default 40)")
	_ = cmd.MarkFlagRequired("plan")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newMemberListCmd(app *App) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a plan's team members",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			members, err := app.Members.ListByPlan(ctx, planID)
			if err != nil {
				return err
			}
			if len(members) == 0 {
				fmt.Println("No team members found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatMemberList(members))
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan name or ID")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

func newMemberUpdateCmd(app *App) *cobra.Command {
	var plan, name string
	var hours float64

	cmd := &cobra.Command{
		Use:   "update <member>",
		Short: "Update a team member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			memberID, err := resolveMemberID(ctx, app, planID, args[0])
			if err != nil {
				return err
			}
			m, err := app.Members.GetByID(ctx, memberID)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				m.Name = name
			}
			if cmd.Flags().Changed("hours") {
				m.WeeklyHours = hours
			}

			if err := app.Members.Update(ctx, m); err != nil {
				return err
			}
			fmt.Printf("Updated %s\n", m.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan name or ID")
	cmd.Flags().StringVar(&name, "name", "", "Member name")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Weekly hours")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

func newMemberRemoveCmd(app *App) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "remove <member>",
		Short: "Remove a team member and their allocations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			memberID, err := resolveMemberID(ctx, app, planID, args[0])
			if err != nil {
				return err
			}
			if err := app.Members.Delete(ctx, memberID); err != nil {
				return err
			}
			fmt.Println("Team member removed.")
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan name or ID")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}
