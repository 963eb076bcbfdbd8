package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-mailmerge/internal/logging"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ErrUnknownCommand is returned for an unrecognized subcommand.
var ErrUnknownCommand = errors.New("unknown command")

func main() {
	// GOMAXPROCS logging goes through the same handler the run will use.
	verbose := slices.Contains(os.Args[1:], "-v") || slices.Contains(os.Args[1:], "--verbose")
	logger := logging.New(os.Stderr, logging.Options{Verbose: verbose})
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logger.Debug(fmt.Sprintf(format, args...))
	}))

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches args (including the program name) and returns the
// process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	switch args[1] {
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "mailmerge %s\n", Version)
		return ExitSuccess
	case "help", "--help":
		return runHelp(args[2:], env)
	case "doctor":
		return runDoctorCmd(args[2:], env)
	}

	if err := runMerge(ctx, args[1:], env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		code := exitCodeFor(err)
		if errors.Is(err, ErrNoInput) || errors.Is(err, ErrNoSender) || errors.Is(err, ErrInvalidFlag) {
			fmt.Fprintln(env.Stderr)
			printMergeUsage(env.Stderr)
		}
		return code
	}
	return ExitSuccess
}

// commands lists the subcommand names. Any other first argument is the
// address list.
var commands = []string{"version", "help", "doctor"}

// isCommand reports whether s names a subcommand.
func isCommand(s string) bool {
	return slices.Contains(commands, s)
}
