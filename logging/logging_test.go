package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "integration", "segment")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "segment")
	assert.Contains(t, out, "mos")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud")
	assert.ErrorContains(t, err, "failed to parse log level")
}

func TestOpenFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "mos.log")

	logger, closer, err := OpenFile(path, "info")
	require.NoError(t, err)
	logger.Info("campaign submitted for planning", "approver", "Sarah Chen")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "campaign submitted for planning")
	assert.Contains(t, string(data), "approver=\"Sarah Chen\"")
}
