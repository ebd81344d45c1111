package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMavenHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewMavenHandler(&buf, nil))

	logger.Info("rule applied", "rule_id", "ruleA", "count", 3)

	out := buf.String()
	assert.Contains(t, out, "[INFO]")
	assert.Contains(t, out, "rule applied")
	assert.Contains(t, out, "rule_id=ruleA")
	assert.Contains(t, out, "count=3")
	assert.NotContains(t, out, "\033[", "no colors when writer is not a terminal")
}

func TestMavenHandler_SystemBracket(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewMavenHandler(&buf, nil)).With("system", "dedupe")

	logger.Warn("pattern rejected")

	out := buf.String()
	assert.Contains(t, out, "[WARN] [dedupe]")
	assert.NotContains(t, out, "system=dedupe")
}

func TestMavenHandler_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	handler := NewMavenHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})

	require.False(t, handler.Enabled(context.Background(), slog.LevelDebug))
	require.False(t, handler.Enabled(context.Background(), slog.LevelInfo))
	require.True(t, handler.Enabled(context.Background(), slog.LevelError))
}
