package logger_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashdeck/internal/logger"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
}

func newBufferLogger(buf *bytes.Buffer, level logger.Level) *logger.Logger {
	return logger.New(
		logger.WithOutput(buf),
		logger.WithLevel(level),
		logger.WithColors(false),
		logger.WithClock(fixedClock),
	)
}

func TestLookupLevel(t *testing.T) {
	tests := []struct {
		in    string
		want  logger.Level
		valid bool
	}{
		{"debug", logger.DEBUG, true},
		{"INFO", logger.INFO, true},
		{"warning", logger.WARN, true},
		{" Error ", logger.ERROR, true},
		{"verbose", logger.INFO, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := logger.LookupLevel(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.valid, ok)
		})
	}
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf, logger.WARN)

	log.Debug("hidden")
	log.Info("hidden too")
	log.Warn("shown %d", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN ")
	assert.Contains(t, out, "shown 1")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestLogger_PrefixAndSortedFields(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf, logger.DEBUG).
		WithPrefix("session").
		WithFields(map[string]any{"deck": "html", "cursor": 3})

	log.Info("card loaded")

	line := buf.String()
	require.True(t, strings.HasPrefix(line, "2024-03-01 12:30:00.000 INFO  [session] "))
	assert.True(t, strings.HasSuffix(line, "card loaded cursor=3 deck=html\n"), line)
}

func TestLogger_WithFieldDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := newBufferLogger(&buf, logger.DEBUG)
	_ = parent.WithField("request_id", "abc")

	parent.Info("plain")
	assert.NotContains(t, buf.String(), "request_id")
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf, logger.DEBUG)
	ctx := logger.NewContext(context.Background(), log)

	assert.Same(t, log, logger.FromContext(ctx))
	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))
}
