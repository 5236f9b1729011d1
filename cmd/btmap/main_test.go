package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// syncBuffer records whether zap flushed it.
type syncBuffer struct {
	bytes.Buffer
	synced bool
}

func (s *syncBuffer) Sync() error {
	s.synced = true
	return nil
}

func session(lines ...string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func TestRunServesSessionAndFlushesLogs(t *testing.T) {
	var out bytes.Buffer
	errOut := &syncBuffer{}

	code := run([]string{"-log-level", "info", "-seed", "5", "-check", "-no-color"},
		session("SET apple red", "GET apple", "EXIT"), &out, errOut)

	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "Added ")
	assert.Contains(t, out.String(), "red\n")
	assert.Contains(t, errOut.String(), "seeded tree")
	assert.True(t, errOut.synced, "logger should be synced before run returns")
}

func TestRunEndsOnEOF(t *testing.T) {
	var out bytes.Buffer
	errOut := &syncBuffer{}

	code := run(nil, session("SET k v"), &out, errOut)

	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "OK\n")
	assert.True(t, errOut.synced)
}

func TestRunRejectsUnknownFlag(t *testing.T) {
	var out bytes.Buffer
	errOut := &syncBuffer{}

	code := run([]string{"-bogus"}, session("EXIT"), &out, errOut)

	assert.Equal(t, 2, code)
	assert.Contains(t, errOut.String(), "flag provided but not defined")
}

func TestNewLoggerFallsBackToWarn(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger("chatty", "json", &buf)

	log.Info("hidden")
	log.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"service":"btmap"`)
}
