package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func installObserved(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	install(core, "nievex-test")
	t.Cleanup(func() {
		S = nil
		global = zap.NewNop()
	})
	return logs
}

func TestHelpersReportTheirCaller(t *testing.T) {
	logs := installObserved(t)

	InfoObj("from helper", "k", 1)
	DebugObj("from helper", "k", 2)

	entries := logs.All()
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, "logger_test.go", filepath.Base(e.Caller.File))
		assert.Equal(t, "nievex-test", e.ContextMap()["app"])
	}
}

func TestGlobalAdapterReportsItsCaller(t *testing.T) {
	logs := installObserved(t)

	var log Logger = Global{}
	log.WarnObj("from adapter", "k", map[string]any{"a": 1})
	log.InfoObj("from adapter", "k", nil)

	entries := logs.All()
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, "logger_test.go", filepath.Base(e.Caller.File))
	}
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
}

func TestHelpersAreSafeBeforeInit(t *testing.T) {
	S = nil
	assert.NotPanics(t, func() {
		InfoObj("dropped", "k", 1)
		Global{}.ErrorObj("dropped", "k", 1)
	})
	assert.NoError(t, Close())
}
