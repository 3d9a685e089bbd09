// ABOUTME: Root of the mos command tree
// ABOUTME: Loads config once and runs the TUI when no subcommand is given
package cli

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/drylogics/marketingos/config"
	"github.com/drylogics/marketingos/logging"
	"github.com/drylogics/marketingos/seed"
	"github.com/spf13/cobra"
)

// app is the state shared by every subcommand.
type app struct {
	version    string
	configPath string
	logLevel   string

	cfg  *config.Config
	data *seed.Data
}

// Execute runs the mos command tree against os.Args.
func Execute(version string) error {
	return NewRoot(version).Execute()
}

func NewRoot(version string) *cobra.Command {
	a := &app{version: version}

	root := &cobra.Command{
		Use:          "mos",
		Short:        "Marketing OS campaign setup and connection hub",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd, "")
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", config.Path(), "Config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")

	root.AddCommand(
		a.tuiCmd(),
		a.webCmd(),
		a.mcpCmd(),
		a.integrationsCmd(),
		a.vizCmd(),
		a.loginCmd(),
		a.configCmd(),
	)
	return root
}

func (a *app) load() error {
	cfg, err := config.LoadFile(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	data, err := seed.Load()
	if err != nil {
		return fmt.Errorf("failed to load seed data: %w", err)
	}

	a.cfg = cfg
	a.data = data
	return nil
}

// stderrLogger is the logger of every command that does not own the screen.
func (a *app) stderrLogger(cmd *cobra.Command) *log.Logger {
	logger, err := logging.New(cmd.ErrOrStderr(), a.cfg.LogLevel)
	if err != nil {
		return logging.Discard()
	}
	return logger
}
