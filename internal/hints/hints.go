// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-mailmerge/internal/fileutil"
)

// IsInContainer reports whether the process runs inside Docker.
// A variable so tests can override detection.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ciVars are environment variables set by common CI providers.
var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// InCI reports whether a known CI environment variable is set.
func InCI() bool {
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// ForBrowserConnect returns hints for browser launch and connection errors.
func ForBrowserConnect() string {
	var hints []string

	if (InCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use a custom Chrome")
	}
	hints = append(hints, "run 'mailmerge doctor' to diagnose")

	return formatHints(hints)
}

// ForTimeout returns a hint about raising the timeout for long address lists.
func ForTimeout() string {
	return format("for long address lists, raise --timeout (e.g. --timeout 2m)")
}

// ForConfigNotFound suggests --config or a config file in the user config
// directory, picking the first searched path under go-mailmerge/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, "go-mailmerge") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForOutputPath returns hints for output write errors.
func ForOutputPath() string {
	return format("check the output directory exists and is writable")
}

// ForAssetNotFound lists the available built-in names.
func ForAssetNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForDecode reminds the user of the expected address shape.
func ForDecode() string {
	return format(`each address needs "address_1", "city", "post_code" and "country"`)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
