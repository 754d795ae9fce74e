package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	l, err := Open(path, "debug")
	require.NoError(t, err)
	assert.Equal(t, path, l.Path())

	l.Error("search error", "op", "search", "status", 500)
	require.NoError(t, l.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(raw)
	assert.Contains(t, out, "searchui started")
	assert.Contains(t, out, "search error")
	assert.Contains(t, out, "status=500")
	assert.Contains(t, out, "searchui shutting down")
}

func TestOpenRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l, err := Open(path, "error")
	require.NoError(t, err)
	l.Debug("hidden")
	l.Error("shown")
	require.NoError(t, l.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hidden")
	assert.Contains(t, string(raw), "shown")
}

func TestOpenInvalidLevel(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "app.log"), "loud")
	assert.Error(t, err)
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Info("nothing")
	assert.Empty(t, l.Path())
	assert.NoError(t, l.Close())
}

func TestDefaultPathIsDated(t *testing.T) {
	p, err := defaultPath(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Skip("no user cache dir:", err)
	}
	assert.Equal(t, "searchui-2024-03-09.log", filepath.Base(p))
}
