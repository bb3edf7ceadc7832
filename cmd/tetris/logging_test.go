package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setLogFlags(t *testing.T, level, file string) {
	t.Helper()
	oldLevel, oldFile := flagLogLevel, flagLogFile
	flagLogLevel, flagLogFile = level, file
	t.Cleanup(func() {
		flagLogLevel, flagLogFile = oldLevel, oldFile
	})
}

func TestNewLoggerWritesToFallback(t *testing.T) {
	setLogFlags(t, "warn", "")

	var buf bytes.Buffer
	logger, closeFn, err := newLogger(&buf)
	require.NoError(t, err)
	defer closeFn()

	assert.Equal(t, log.WarnLevel, logger.GetLevel())
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "tetris")
}

func TestNewLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tetris.log")
	setLogFlags(t, "debug", path)

	var buf bytes.Buffer
	logger, closeFn, err := newLogger(&buf)
	require.NoError(t, err)
	logger.Debug("run finished", "lines", 4)
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "run finished"))
	assert.Empty(t, buf.String())
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	setLogFlags(t, "loud", "")

	_, _, err := newLogger(&bytes.Buffer{})
	assert.Error(t, err)
}
