// ABOUTME: Config CLI commands
// ABOUTME: Writes a default config file and prints the effective settings
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/drylogics/marketingos/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the mos config file",
	}
	cmd.AddCommand(a.configInitCmd(), a.configShowCmd())
	return cmd
}

func (a *app) configInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(a.configPath); err == nil && !force {
				return fmt.Errorf("config file %s already exists (use --force to overwrite)", a.configPath)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to check config file: %w", err)
			}

			if err := config.Default().Save(a.configPath); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", a.configPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func (a *app) configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective config after file and environment overrides",
		RunE: func(cmd *cobra.Command, args []string) error {
			shown := *a.cfg
			if shown.Demo.Password != "" {
				shown.Demo.Password = "********"
			}
			data, err := yaml.Marshal(&shown)
			if err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", a.configPath, data)
			return nil
		},
	}
}
