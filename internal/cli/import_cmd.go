package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a plan from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportPlan(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Imported plan %s (%s): %d members, %d projects\n",
				result.Plan.Name, result.Plan.ID[:8], result.MemberCount, result.ProjectCount)
			return nil
		},
	}
}

func newExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export <plan>",
		Short: "Export a plan to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Import.ExportPlan(ctx, planID, out); err != nil {
				return err
			}
			fmt.Printf("Exported plan to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output file path")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}
