package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestLogger_WritesFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info").Named("players")

	log.Info(context.Background(), "list served", String("team", "Lions"), Int("total", 12))
	log.Error(context.Background(), "store failed", Error(errors.New("boom")))

	out := buf.String()
	assert.Contains(t, out, "msg=\"list served\"")
	assert.Contains(t, out, "component=players")
	assert.Contains(t, out, "team=Lions")
	assert.Contains(t, out, "total=12")
	assert.Contains(t, out, "error=boom")
}

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn")

	log.Debug(context.Background(), "hidden")
	log.Info(context.Background(), "hidden too")
	assert.Empty(t, buf.String())

	log.Warn(context.Background(), "shown")
	assert.Contains(t, buf.String(), "shown")
}
