package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestOptions_Level(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts Options
		want slog.Level
	}{
		{"default is warn", Options{}, slog.LevelWarn},
		{"quiet is error", Options{Quiet: true}, slog.LevelError},
		{"verbose is debug", Options{Verbose: true}, slog.LevelDebug},
		{"verbose wins over quiet", Options{Quiet: true, Verbose: true}, slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.opts.Level(); got != tt.want {
				t.Errorf("Level() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("filters below level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := New(&buf, Options{})
		logger.Info("hidden")
		logger.Warn("shown", "path", "addresses.pdf")

		out := buf.String()
		if strings.Contains(out, "hidden") {
			t.Errorf("info message logged at warn level: %q", out)
		}
		if !strings.Contains(out, "shown") || !strings.Contains(out, "path=addresses.pdf") {
			t.Errorf("warn message missing: %q", out)
		}
	})

	t.Run("no color codes for non-terminal writers", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		New(&buf, Options{Verbose: true}).Debug("plain")
		if strings.Contains(buf.String(), "\x1b[") {
			t.Errorf("output contains ANSI escapes: %q", buf.String())
		}
	})

	t.Run("verbose enables debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		h := NewTerminalHandler(&buf, Options{Verbose: true})
		if !h.Enabled(context.Background(), slog.LevelDebug) {
			t.Error("debug should be enabled in verbose mode")
		}
	})
}

func TestIsTerminal(t *testing.T) {
	t.Parallel()

	if IsTerminal(&bytes.Buffer{}) {
		t.Error("IsTerminal(bytes.Buffer) = true, want false")
	}
}
