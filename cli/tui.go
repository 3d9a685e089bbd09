// ABOUTME: Terminal UI subcommand
// ABOUTME: Runs the bubbletea program with logs redirected to the XDG state file
package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/drylogics/marketingos/logging"
	"github.com/drylogics/marketingos/models"
	"github.com/drylogics/marketingos/tui"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
)

func (a *app) tuiCmd() *cobra.Command {
	var variant string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal UI (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd, variant)
		},
	}
	cmd.Flags().StringVar(&variant, "variant", "", "Entry point: workspace or auth (default from config)")
	return cmd
}

func (a *app) runTUI(cmd *cobra.Command, variant string) error {
	if variant == "" {
		variant = a.cfg.Variant
	}
	v, err := models.ParseVariant(variant)
	if err != nil {
		return err
	}

	logger, closer, err := logging.OpenFile(logging.Path(), a.cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	clock := clockwork.NewRealClock()
	m, notifier := tui.NewModel(tui.Options{
		Variant:       v,
		Data:          a.data,
		Clock:         clock,
		Delays:        a.cfg.Delays.Campaign(),
		RedirectDelay: a.cfg.Delays.Redirect,
		Authenticator: a.cfg.Authenticator(clock),
		Logger:        logger,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	notifier.Bind(p)

	logger.Info("starting tui", "variant", v)
	final, err := p.Run()
	if fm, ok := final.(tui.Model); ok {
		fm.Close()
	} else {
		m.Close()
	}
	if err != nil {
		return fmt.Errorf("failed to run tui: %w", err)
	}
	return nil
}
