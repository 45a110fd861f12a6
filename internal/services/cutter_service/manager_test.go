package cutter_service

import (
	"testing"

	"github.com/iwtcode/graphtecAdapter/internal/config"
	"github.com/iwtcode/graphtecAdapter/internal/middleware/logging"

	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *CutterManager {
	t.Helper()
	logger := logging.NewLogger(&logging.Config{Enabled: false, Level: "ERROR"}, "TEST")
	cfg := &config.AppConfig{}
	cfg.Cutter.Segments = 16
	cfg.Cutter.StatusTimeoutMs = 500
	return NewCutterManager(nil, cfg, logger)
}

func TestTokenExclusivity(t *testing.T) {
	m := newTestManager(t)

	require.True(t, m.TryAcquire("upload:job-1"))
	require.False(t, m.TryAcquire("status"), "интерфейс занят передачей")
	require.False(t, m.TryAcquire("polling"))
	require.Equal(t, "upload:job-1", m.Owner())

	m.Release("upload:job-1")
	require.Empty(t, m.Owner())
	require.True(t, m.TryAcquire("status"))
}

func TestTokenReleaseIgnoresForeignOwner(t *testing.T) {
	m := newTestManager(t)

	require.True(t, m.TryAcquire("upload:job-1"))
	// Чужой Release не должен отнимать токен у передачи.
	m.Release("status")
	require.Equal(t, "upload:job-1", m.Owner())

	m.Release("upload:job-1")
	require.Empty(t, m.Owner())
}

func TestTokenReleaseIsIdempotent(t *testing.T) {
	m := newTestManager(t)

	require.True(t, m.TryAcquire("status"))
	m.Release("status")
	m.Release("status")
	require.True(t, m.TryAcquire("polling"))
}

func TestLastStateDefaultsToUnknown(t *testing.T) {
	m := newTestManager(t)
	last := m.LastState()
	require.Equal(t, "unknown", last.State.String())
	require.Nil(t, last.Device)
}
