package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mailmerge <input> -s <sender> [flags]")
	fmt.Fprintln(w, "       mailmerge <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a JSON address list onto envelope-sized PDF pages.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  doctor     Check the system for PDF rendering")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mailmerge --help' for all flags.")
}

// printMergeUsage prints usage for a mail merge run.
func printMergeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mailmerge <input> -s <sender> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    JSON array of addresses, a file path, or - for stdin")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -s, --sender <json|path>  Sender address (JSON object, file path, or -)")
	fmt.Fprintln(w, "  -o, --output <path>       Output PDF (default addresses.pdf)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -w, --width <mm>          Page width in mm (default 162)")
	fmt.Fprintln(w, "  -h, --height <mm>         Page height in mm (default 114)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "  -e, --engine <name>       Engine: rod (default), chromedp")
	fmt.Fprintln(w, "  -t, --timeout <d>         Rendering timeout (default 30s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <s>           Style name, CSS file, or inline CSS")
	fmt.Fprintln(w, "      --template <s>        Template name or HTML file")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom styles/ and templates/ directory")
	fmt.Fprintln(w, "      --no-style            Disable CSS styling")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Debug:")
	fmt.Fprintln(w, "      --html                Also write the rendered HTML")
	fmt.Fprintln(w, "      --html-only           Write the rendered HTML only")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w, "      --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MAILMERGE_CONFIG, MAILMERGE_SENDER, MAILMERGE_OUTPUT, MAILMERGE_WIDTH,")
	fmt.Fprintln(w, "  MAILMERGE_HEIGHT, MAILMERGE_ENGINE, MAILMERGE_TIMEOUT, MAILMERGE_STYLE,")
	fmt.Fprintln(w, "  MAILMERGE_ASSET_PATH, ROD_BROWSER_BIN, ROD_NO_SANDBOX")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		fmt.Fprintln(env.Stdout)
		printMergeUsage(env.Stdout)
		return ExitSuccess
	}

	if !isCommand(args[0]) {
		fmt.Fprintf(env.Stderr, "error: %v: %s\n", ErrUnknownCommand, args[0])
		printUsage(env.Stderr)
		return exitCodeFor(ErrUnknownCommand)
	}

	switch args[0] {
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: mailmerge doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check Chrome, sandbox and temp directory setup.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mailmerge version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mailmerge help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	}
	return ExitSuccess
}
