// Package logging builds the slog handler used by the CLI.
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Options controls handler construction.
type Options struct {
	Quiet   bool // errors only
	Verbose bool // debug and above; wins over Quiet
}

// Level returns the minimum level for the given verbosity flags.
func (o Options) Level() slog.Level {
	switch {
	case o.Verbose:
		return slog.LevelDebug
	case o.Quiet:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// NewTerminalHandler returns a tint handler writing to w. Colors are enabled
// only when w is a terminal.
func NewTerminalHandler(w io.Writer, opts Options) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      opts.Level(),
		TimeFormat: time.TimeOnly,
		NoColor:    !IsTerminal(w),
	})
}

// New returns a logger backed by NewTerminalHandler.
func New(w io.Writer, opts Options) *slog.Logger {
	return slog.New(NewTerminalHandler(w, opts))
}

// IsTerminal reports whether w is a terminal (including Cygwin/MSYS ptys).
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
