package mailmerge

import (
	"log/slog"
	"time"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout       time.Duration
	engine        string
	templateInput string
	styleInput    string
	noStyle       bool
	assetPath     string
	resolvedStyle string
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mailmerge: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithEngine selects the rendering engine: EngineRod (default) or EngineChromedp.
func WithEngine(name string) Option {
	return func(c *Converter) {
		c.cfg.engine = name
	}
}

// WithTemplate sets the page template as a name, a file path, or inline
// template text (anything containing "{{").
func WithTemplate(nameOrPath string) Option {
	return func(c *Converter) {
		c.cfg.templateInput = nameOrPath
	}
}

// WithStyle sets the CSS style as a name, a file path, or inline CSS.
func WithStyle(input string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = input
		c.cfg.noStyle = false
	}
}

// WithoutStyle renders with page geometry rules only.
func WithoutStyle() Option {
	return func(c *Converter) {
		c.cfg.styleInput = ""
		c.cfg.noStyle = true
	}
}

// WithAssetPath loads styles and templates from dir first, falling back to
// the built-in assets.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = dir
	}
}

// WithAssetLoader sets a custom asset loader. It takes precedence over WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.customLoader = loader
	}
}

// WithLogger sets the logger used for stage timings and engine events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// withPDFConverter replaces the rendering engine.
func withPDFConverter(pc pdfConverter) Option {
	return func(c *Converter) {
		c.pdfConverter = pc
	}
}
