// ABOUTME: Login CLI command
// ABOUTME: Prompts for credentials and checks them against the configured authenticator
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/drylogics/marketingos/auth"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (a *app) loginCmd() *cobra.Command {
	var email, endpoint string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with the demo account or a login endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			in := bufio.NewReader(cmd.InOrStdin())

			// Prompt for email
			if email == "" {
				_, _ = fmt.Fprint(out, "Email: ")
				line, err := readLine(in)
				if err != nil {
					return fmt.Errorf("failed to read email: %w", err)
				}
				email = line
			}

			// Prompt for password (hidden on a terminal)
			_, _ = fmt.Fprint(out, "Password: ")
			password, err := readPassword(cmd, in)
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}

			creds := auth.Credentials{Email: strings.TrimSpace(email), Password: password}
			if errs := auth.Validate(creds); !errs.Empty() {
				for _, msg := range []string{errs.Email, errs.Password} {
					if msg != "" {
						_, _ = fmt.Fprintf(out, "✗ %s\n", msg)
					}
				}
				return errors.New("invalid credentials format")
			}

			cfg := *a.cfg
			if endpoint != "" {
				cfg.LoginEndpoint = endpoint
			}
			logger := a.stderrLogger(cmd)
			logger.Debug("signing in", "email", creds.Email, "endpoint", cfg.LoginEndpoint)

			res, err := cfg.Authenticator(nil).Authenticate(cmd.Context(), creds)
			if err != nil {
				if errors.Is(err, auth.ErrInvalidCredentials) {
					_, _ = fmt.Fprintf(out, "✗ %s\n", err)
				}
				return fmt.Errorf("login failed: %w", err)
			}

			_, _ = fmt.Fprintln(out, "✓ Login successful!")
			_, _ = fmt.Fprintf(out, "Token: %s\n", res.Token)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email (prompted when empty)")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Login endpoint URL (default from config)")
	return cmd
}

func readPassword(cmd *cobra.Command, in *bufio.Reader) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(cmd.OutOrStdout()) // New line after hidden input
		return string(b), err
	}
	return readLine(in)
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
