package logger

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestLoggerWritesCategoryAndMessage(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf)

	l.Info("booking", "seat taken")

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "[BOOKING ]")
	assert.Contains(t, out, "seat taken")
	assert.Contains(t, out, "logger_test.go")
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf)
	l.SetLevel(WARN)

	l.Debug("store", "hidden")
	l.Info("store", "hidden")
	l.Warn("store", "shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestLoggerJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	l, err := New(path)
	require.NoError(t, err)
	l.out = &bytes.Buffer{}

	l.LogSecurity("DELETE_DENIED", "event 101")
	l.Close()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var last LogEntry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		require.NoError(t, json.Unmarshal(sc.Bytes(), &last))
	}
	assert.Equal(t, "WARN", last.Level)
	assert.Equal(t, "SECURITY", last.Category)
	assert.Equal(t, "[DELETE_DENIED] event 101", last.Message)
}
