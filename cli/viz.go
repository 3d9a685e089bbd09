// ABOUTME: Visualization CLI commands
// ABOUTME: Handles viz dashboard and graph generation commands
package cli

import (
	"fmt"
	"os"

	"github.com/drylogics/marketingos/hub"
	"github.com/drylogics/marketingos/viz"
	"github.com/spf13/cobra"
)

func (a *app) vizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "viz",
		Short: "Visualize the integration map",
	}
	cmd.AddCommand(a.vizGraphCmd(), a.vizDashboardCmd())
	return cmd
}

// vizGraphCmd generates the integration map as DOT.
func (a *app) vizGraphCmd() *cobra.Command {
	var output, category string
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Generate a GraphViz DOT map of integrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			generator := viz.NewGraphGenerator(a.data.Hub.Integrations)
			dot, err := generator.GenerateIntegrationGraph(cmd.Context(), category)
			if err != nil {
				return err
			}

			if output != "" {
				return os.WriteFile(output, []byte(dot), 0644)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), dot)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVarP(&category, "category", "c", hub.CategoryAll, "Only graph this category")
	return cmd
}

func (a *app) vizDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the connection health dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats := viz.GenerateDashboardStats(a.data.Hub.Integrations)
			_, _ = fmt.Fprint(cmd.OutOrStdout(), viz.RenderDashboard(stats))
			if summary := a.data.Hub.HealthSummary; summary != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", summary)
			}
			return nil
		},
	}
}
