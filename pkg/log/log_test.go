package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLog(t *testing.T) {
	old := Default()
	defer SetDefault(old)
	defer SetLevel(slog.LevelInfo)

	var buf bytes.Buffer
	SetDefault(NewSLogger(&buf))
	SetLevel(slog.LevelInfo)

	Debug("hidden")
	Info("shown", "list", "todo")
	Error("failed", "err", "boom")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "msg=shown list=todo")
	require.Contains(t, out, "level=ERROR")
	require.Contains(t, out, "source=log/log_test.go:")

	require.True(t, IsOutput(slog.LevelWarn))
	require.False(t, IsOutput(slog.LevelDebug))
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	require.Error(t, err)
}
