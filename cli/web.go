// ABOUTME: Web console subcommand
// ABOUTME: Serves the read-only web UI and JSON API until interrupted
package cli

import (
	"os/signal"
	"syscall"

	"github.com/drylogics/marketingos/web"
	"github.com/spf13/cobra"
)

func (a *app) webCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the web console",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.WebAddr
			}
			logger := a.stderrLogger(cmd)

			// POST /api/login checks the demo account even when the
			// TUI is configured to use a login endpoint.
			login := *a.cfg
			login.LoginEndpoint = ""

			server, err := web.NewServer(a.data, login.Authenticator(nil), logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return server.Start(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}
