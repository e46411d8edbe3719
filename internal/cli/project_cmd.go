package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/evanharte/crewplan/internal/cli/formatter"
	"github.com/evanharte/crewplan/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectInspectCmd(app),
		newProjectUpdateCmd(app),
		newProjectRemoveCmd(app),
	)

	return cmd
}

// parseAllocationSpec parses "member=pct" or "member=pct@YYYY-MM-DD", where
// member is a name, ID or ID prefix resolved against the plan's team.
func parseAllocationSpec(ctx context.Context, app *App, planID, spec string) (domain.Allocation, error) {
	name, rest, found := strings.Cut(spec, "=")
	if !found {
		return domain.Allocation{}, fmt.Errorf("invalid allocation %q (expected member=pct or member=pct@date)", spec)
	}

	pctStr, dateStr, hasDate := strings.Cut(rest, "@")
	pct, err := strconv.ParseFloat(pctStr, 64)
	if err != nil {
		return domain.Allocation{}, fmt.Errorf("invalid allocation percentage %q: %w", pctStr, err)
	}

	memberID, err := resolveMemberID(ctx, app, planID, strings.TrimSpace(name))
	if err != nil {
		return domain.Allocation{}, err
	}

	a := domain.Allocation{TeamMemberID: memberID, Percentage: pct}
	if hasDate {
		start, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return domain.Allocation{}, fmt.Errorf("invalid allocation start date %q (expected YYYY-MM-DD)", dateStr)
		}
		a.StartDate = &start
	}
	return a, nil
}

func parseAllocationSpecs(ctx context.Context, app *App, planID string, specs []string) ([]domain.Allocation, error) {
	allocs := make([]domain.Allocation, 0, len(specs))
	for _, spec := range specs {
		a, err := parseAllocationSpec(ctx, app, planID, spec)
		if err != nil {
			return nil, err
		}
		allocs = append(allocs, a)
	}
	return allocs, nil
}

func newProjectAddCmd(app *App) *cobra.Command {
	var plan, name, shortID string
	var hours, done float64
	var priority int
	var startAfter, endBefore time.Time
	var allocSpecs []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a project in a plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}

			p := &domain.Project{
				PlanID:          planID,
				ShortID:         strings.ToUpper(shortID),
				Name:            name,
				EstimatedHours:  hours,
				Priority:        priority,
				PercentComplete: done,
			}
			if cmd.Flags().Changed("after") {
				p.StartAfter = &startAfter
			}
			if cmd.Flags().Changed("due") {
				p.EndBefore = &endBefore
			}
			if p.Allocations, err = parseAllocationSpecs(ctx, app, planID, allocSpecs); err != nil {
				return err
			}

			if err := app.Projects.Create(ctx, p); err != nil {
				return err
			}
			fmt.Printf("Created project %s [%s]\n", p.Name, p.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan name or ID")
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&shortID, "id", "", "Short ID (3-6 uppercase letters + 2-4 digits, e.g. GWY01)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Estimated hours of work")
	cmd.Flags().IntVar(&priority, "priority", 99, "Priority (lower schedules first)")
	cmd.Flags().Float64Var(&done, "done", 0, "Percent complete")
	dateVar(cmd.Flags(), &startAfter, "after", "Earliest start date (YYYY-MM-DD)")
	dateVar(cmd.Flags(), &endBefore, "due", "Deadline (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&allocSpecs, "allocate", nil, "Allocation as member=pct or member=pct@date; repeatable")
	_ = cmd.MarkFlagRequired("plan")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a plan's projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			projects, err := app.Projects.ListByPlan(ctx, planID)
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Println("No projects found.")
				return nil
			}
			members, err := membersByID(ctx, app, planID)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatProjectList(projects, members))
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan name or ID")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

func newProjectInspectCmd(app *App) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "inspect <project>",
		Short: "Show project details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			projectID, err := resolveProjectID(ctx, app, planID, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, projectID)
			if err != nil {
				return err
			}
			members, err := membersByID(ctx, app, planID)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatProjectInspect(p, members))
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan name or ID")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var plan, name, shortID string
	var hours, done float64
	var priority int
	var startAfter, endBefore time.Time
	var allocSpecs []string

	cmd := &cobra.Command{
		Use:   "update <project>",
		Short: "Update a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			projectID, err := resolveProjectID(ctx, app, planID, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, projectID)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				p.Name = name
			}
			if cmd.Flags().Changed("id") {
				p.ShortID = strings.ToUpper(shortID)
			}
			if cmd.Flags().Changed("hours") {
				p.EstimatedHours = hours
			}
			if cmd.Flags().Changed("priority") {
				p.Priority = priority
			}
			if cmd.Flags().Changed("done") {
				p.PercentComplete = done
			}
			if cmd.Flags().Changed("after") {
				p.StartAfter = &startAfter
			}
			if cmd.Flags().Changed("due") {
				p.EndBefore = &endBefore
			}
			if cmd.Flags().Changed("allocate") {
				if p.Allocations, err = parseAllocationSpecs(ctx, app, planID, allocSpecs); err != nil {
					return err
				}
			}

			if err := app.Projects.Update(ctx, p); err != nil {
				return err
			}
			fmt.Printf("Updated project %s\n", p.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan name or ID")
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&shortID, "id", "", "Short ID")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Estimated hours of work")
	cmd.Flags().IntVar(&priority, "priority", 0, "Priority (lower schedules first)")
	cmd.Flags().Float64Var(&done, "done", 0, "Percent complete")
	dateVar(cmd.Flags(), &startAfter, "after", "Earliest start date (YYYY-MM-DD)")
	dateVar(cmd.Flags(), &endBefore, "due", "Deadline (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&allocSpecs, "allocate", nil, "Replace allocations; repeatable")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "remove <project>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, plan)
			if err != nil {
				return err
			}
			projectID, err := resolveProjectID(ctx, app, planID, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Delete(ctx, projectID); err != nil {
				return err
			}
			fmt.Println("Project removed.")
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan name or ID")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

func membersByID(ctx context.Context, app *App, planID string) (map[string]*domain.TeamMember, error) {
	members, err := app.Members.ListByPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.TeamMember, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}
	return byID, nil
}
