// ABOUTME: Connection hub CLI commands
// ABOUTME: Lists integrations, shows one and exports its sync log as CSV
package cli

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/drylogics/marketingos/hub"
	"github.com/drylogics/marketingos/models"
	"github.com/spf13/cobra"
)

func (a *app) integrationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "integrations",
		Aliases: []string{"int"},
		Short:   "Inspect connection hub integrations",
	}
	cmd.AddCommand(
		a.integrationsListCmd(),
		a.integrationsShowCmd(),
		a.integrationsExportLogsCmd(),
	)
	return cmd
}

func (a *app) integrationsListCmd() *cobra.Command {
	var query, category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List integrations matching a search and category",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(hub.CategoryFilters(), category) {
				return fmt.Errorf("unknown category %q (valid: %s)", category, strings.Join(hub.CategoryFilters(), ", "))
			}
			items := hub.Filter(a.data.Hub.Integrations, query, category)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tSTATUS\tLAST SYNC")
			_, _ = fmt.Fprintln(w, "--\t----\t--------\t------\t---------")
			for _, it := range items {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					it.ID, it.Name, it.Category, it.Status.Badge(), orDash(it.LastSync))
			}
			_ = w.Flush()

			if len(items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No integrations match.")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "Case-insensitive name search")
	cmd.Flags().StringVarP(&category, "category", "c", hub.CategoryAll, "Category filter")
	return cmd
}

func (a *app) integrationsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one integration with its settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			it, err := hub.NewDirectory(a.data.Hub, nil).Get(args[0])
			if err != nil {
				return err
			}
			printIntegration(cmd.OutOrStdout(), it)
			return nil
		},
	}
}

func printIntegration(out io.Writer, it models.Integration) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Name:\t%s\n", it.Name)
	_, _ = fmt.Fprintf(w, "Category:\t%s\n", it.Category.Label())
	_, _ = fmt.Fprintf(w, "Status:\t%s\n", it.Status.Badge())
	_, _ = fmt.Fprintf(w, "Connected as:\t%s\n", orDash(it.ConnectedAs))
	_, _ = fmt.Fprintf(w, "Last sync:\t%s\n", orDash(it.LastSync))
	_, _ = fmt.Fprintf(w, "Latency:\t%s\n", orDash(it.Latency))
	_, _ = fmt.Fprintf(w, "Throughput:\t%s\n", orDash(it.Throughput))
	_, _ = fmt.Fprintf(w, "Errors:\t%s\n", orDash(it.Errors))
	_, _ = fmt.Fprintf(w, "Sync direction:\t%s\n", it.Settings.SyncDirection)
	_, _ = fmt.Fprintf(w, "Conflicts:\t%s\n", it.Settings.ConflictResolution)
	_ = w.Flush()

	if len(it.Logs) == 0 {
		return
	}
	_, _ = fmt.Fprintln(out, "\nRecent syncs:")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, l := range it.Logs {
		_, _ = fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\n", l.Timestamp, l.Direction, l.Action, l.Volume, l.Outcome)
	}
	_ = w.Flush()
}

func (a *app) integrationsExportLogsCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export-logs <id>",
		Short: "Export an integration's sync log as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			it, err := hub.NewDirectory(a.data.Hub, nil).Get(args[0])
			if err != nil {
				return err
			}

			if output == "" {
				return hub.ExportLogs(cmd.OutOrStdout(), it)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			if err := hub.ExportLogs(f, it); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d log entries to %s\n", len(it.Logs), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	return cmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
