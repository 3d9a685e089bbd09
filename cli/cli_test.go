// ABOUTME: Tests for the mos command tree
// ABOUTME: Runs subcommands in-process with buffered stdio and a temp config path
package cli

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/drylogics/marketingos/auth"
	"github.com/drylogics/marketingos/seed"
	"github.com/drylogics/marketingos/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	out string
	err error
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	t.Setenv("MOS_DELAY_LOGIN", "1ms")

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	return runWithConfig(t, configPath, stdin, args...)
}

func runWithConfig(t *testing.T, configPath, stdin string, args ...string) result {
	t.Helper()
	root := NewRoot("test")

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", configPath}, args...))

	err := root.Execute()
	return result{out: out.String(), err: err}
}

func TestIntegrationsList(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{"all", nil, []string{"Salesforce", "Segment", "Adobe DAM", "Meta Ads", "Workfront"}, nil},
		{"query and category", []string{"--query", "sales", "--category", "CRM"}, []string{"salesforce"}, []string{"Segment"}},
		{"short flags", []string{"-q", "META"}, []string{"Meta Ads"}, []string{"Workfront"}},
		{"no match", []string{"-q", "zzz"}, []string{"No integrations match."}, []string{"Salesforce"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, "", append([]string{"integrations", "list"}, tt.args...)...)
			require.NoError(t, res.err)
			assert.Contains(t, res.out, "LAST SYNC")
			for _, s := range tt.want {
				assert.Contains(t, res.out, s)
			}
			for _, s := range tt.notWant {
				assert.NotContains(t, res.out, s)
			}
		})
	}
}

func TestIntegrationsListUnknownCategory(t *testing.T) {
	res := run(t, "", "integrations", "list", "--category", "Print")
	assert.ErrorContains(t, res.err, `unknown category "Print"`)
}

func TestIntegrationsShow(t *testing.T) {
	res := run(t, "", "integrations", "show", "segment")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "Segment")
	assert.Contains(t, res.out, "Recent syncs:")
	assert.Contains(t, res.out, "Audiences from Segment")

	res = run(t, "", "integrations", "show", "nope")
	assert.Error(t, res.err)
}

func TestIntegrationsExportLogs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.csv")
	res := run(t, "", "integrations", "export-logs", "meta", "--output", path)
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "Wrote 2 log entries")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "timestamp,direction,action,volume,outcome", lines[0])
	assert.Contains(t, lines[1], "Campaign updates to Meta")
}

func TestVizGraph(t *testing.T) {
	res := run(t, "", "viz", "graph", "--category", "CRM")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "digraph")
	assert.Contains(t, res.out, "salesforce")
	assert.NotContains(t, res.out, "workfront")

	path := filepath.Join(t.TempDir(), "hub.dot")
	res = run(t, "", "viz", "graph", "-o", path)
	require.NoError(t, res.err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "workfront")
}

func TestVizDashboard(t *testing.T) {
	res := run(t, "", "viz", "dashboard")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "CONNECTION HEALTH")
	assert.Contains(t, res.out, "NEEDS ATTENTION")
	assert.Contains(t, res.out, seed.MustLoad().Hub.HealthSummary)
}

func TestLogin(t *testing.T) {
	t.Run("demo account", func(t *testing.T) {
		res := run(t, "password123\n", "login", "--email", "demo@example.com")
		require.NoError(t, res.err)
		assert.Contains(t, res.out, "Login successful")
		assert.Contains(t, res.out, "Token: ")
	})

	t.Run("prompts for email", func(t *testing.T) {
		res := run(t, "demo@example.com\npassword123\n", "login")
		require.NoError(t, res.err)
		assert.Contains(t, res.out, "Email: ")
		assert.Contains(t, res.out, "Login successful")
	})

	t.Run("wrong password", func(t *testing.T) {
		res := run(t, "wrong-pass\n", "login", "-e", "demo@example.com")
		assert.ErrorIs(t, res.err, auth.ErrInvalidCredentials)
		assert.Contains(t, res.out, "Invalid email or password")
	})

	t.Run("validation", func(t *testing.T) {
		res := run(t, "123", "login", "-e", "nope")
		assert.EqualError(t, res.err, "invalid credentials format")
		assert.Contains(t, res.out, "Invalid email format")
		assert.Contains(t, res.out, "Password must be at least 6 characters")
	})
}

func TestLoginAgainstWebServer(t *testing.T) {
	s, err := web.NewServer(seed.MustLoad(), &auth.StaticAuthenticator{Email: "team@example.com", Password: "secret-pass"}, nil)
	require.NoError(t, err)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	res := run(t, "secret-pass\n", "login", "-e", "team@example.com", "--endpoint", srv.URL+"/api/login")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "Login successful")

	res = run(t, "password123\n", "login", "-e", "demo@example.com", "--endpoint", srv.URL+"/api/login")
	assert.ErrorIs(t, res.err, auth.ErrInvalidCredentials)
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mos", "config.yaml")

	res := runWithConfig(t, path, "", "config", "init")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "Wrote "+path)
	require.FileExists(t, path)

	res = runWithConfig(t, path, "", "config", "init")
	assert.ErrorContains(t, res.err, "already exists")

	res = runWithConfig(t, path, "", "config", "init", "--force")
	require.NoError(t, res.err)

	t.Setenv("MOS_WEB_ADDR", "0.0.0.0:9999")
	res = runWithConfig(t, path, "", "config", "show")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "0.0.0.0:9999")
	assert.Contains(t, res.out, "demo@example.com")
	assert.NotContains(t, res.out, "password123")
}

func TestBadLogLevel(t *testing.T) {
	res := run(t, "", "--log-level", "loud", "viz", "dashboard")
	assert.Error(t, res.err)
}
