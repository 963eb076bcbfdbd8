package main

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-mailmerge/internal/config"
)

// envPrefix prefixes every environment variable the CLI reads.
const envPrefix = "MAILMERGE_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // MAILMERGE_CONFIG: config file name or path
	Sender     string        // MAILMERGE_SENDER: sender JSON or file path
	Output     string        // MAILMERGE_OUTPUT: output PDF path
	Width      int           // MAILMERGE_WIDTH: page width in mm
	Height     int           // MAILMERGE_HEIGHT: page height in mm
	Engine     string        // MAILMERGE_ENGINE: rod or chromedp
	Timeout    time.Duration // MAILMERGE_TIMEOUT: rendering timeout
	Style      string        // MAILMERGE_STYLE: CSS style name or path
	AssetPath  string        // MAILMERGE_ASSET_PATH: custom asset directory
}

// knownEnvVars lists valid MAILMERGE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MAILMERGE_CONFIG":     true,
	"MAILMERGE_SENDER":     true,
	"MAILMERGE_OUTPUT":     true,
	"MAILMERGE_WIDTH":      true,
	"MAILMERGE_HEIGHT":     true,
	"MAILMERGE_ENGINE":     true,
	"MAILMERGE_TIMEOUT":    true,
	"MAILMERGE_STYLE":      true,
	"MAILMERGE_ASSET_PATH": true,
	"MAILMERGE_CONTAINER":  true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable numeric or duration values are logged and ignored.
func loadEnvConfig(getenv func(string) string, logger *slog.Logger) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("MAILMERGE_CONFIG"),
		Sender:     getenv("MAILMERGE_SENDER"),
		Output:     getenv("MAILMERGE_OUTPUT"),
		Engine:     getenv("MAILMERGE_ENGINE"),
		Style:      getenv("MAILMERGE_STYLE"),
		AssetPath:  getenv("MAILMERGE_ASSET_PATH"),
	}

	cfg.Width = envInt(getenv, "MAILMERGE_WIDTH", logger)
	cfg.Height = envInt(getenv, "MAILMERGE_HEIGHT", logger)

	if timeout := getenv("MAILMERGE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		} else {
			logger.Warn("ignoring invalid environment variable", "name", "MAILMERGE_TIMEOUT", "value", timeout)
		}
	}

	return cfg
}

func envInt(getenv func(string) string, name string, logger *slog.Logger) int {
	raw := getenv(name)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		logger.Warn("ignoring invalid environment variable", "name", name, "value", raw)
		return 0
	}
	return n
}

// warnUnknownEnvVars logs warnings for unrecognized MAILMERGE_* variables.
// Helps catch typos like MAILMERGE_WIDHT.
func warnUnknownEnvVars(environ []string, logger *slog.Logger) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			logger.Warn("unknown environment variable (typo?)", "name", name)
		}
	}
}

// applyEnvConfig overlays environment values onto the file config.
// CLI flags are applied afterwards by applyFlags, giving
// CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Output != "" {
		cfg.Output = env.Output
	}
	if env.Width != 0 {
		cfg.Page.Width = env.Width
	}
	if env.Height != 0 {
		cfg.Page.Height = env.Height
	}
	if env.Engine != "" {
		cfg.Engine = env.Engine
	}
	if env.Style != "" {
		cfg.Style = env.Style
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
}
