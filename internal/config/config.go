package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-mailmerge/internal/fileutil"
	"github.com/alnah/go-mailmerge/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// configDirName is the per-user directory searched for named configs.
const configDirName = "go-mailmerge"

// Field length limits.
const (
	MaxAddressLineLength = 200  // Name, street lines, city
	MaxPostCodeLength    = 20   // "SW1A 1AA", "12345-6789"
	MaxPathLength        = 4096 // Output and asset paths
	MaxAssetNameLength   = 64   // Style and template names
)

// Page dimension bounds in millimeters.
const (
	MinDimensionMM = 10
	MaxDimensionMM = 1000
)

// Engines accepted in the engine field.
var Engines = []string{"rod", "chromedp"}

// Config holds defaults for mail merge runs. Zero values mean "not set".
type Config struct {
	Sender   *AddressConfig `yaml:"sender"`
	Output   string         `yaml:"output"`
	Page     PageConfig     `yaml:"page"`
	Engine   string         `yaml:"engine"`  // "rod" or "chromedp"
	Timeout  string         `yaml:"timeout"` // Go duration, e.g. "45s"
	Style    string         `yaml:"style"`   // Name, path, or inline CSS
	NoStyle  bool           `yaml:"noStyle"`
	Template string         `yaml:"template"` // Name or path
	Assets   AssetsConfig   `yaml:"assets"`
}

// AddressConfig is a postal address in YAML, using the same keys as the
// JSON input.
type AddressConfig struct {
	Name     string `yaml:"name"`
	Address1 string `yaml:"address_1"`
	Address2 string `yaml:"address_2"`
	City     string `yaml:"city"`
	State    string `yaml:"state"`
	PostCode string `yaml:"post_code"`
	Country  string `yaml:"country"`
}

// PageConfig defines the page size in millimeters.
type PageConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if c.Sender != nil {
		if err := c.Sender.Validate(); err != nil {
			return err
		}
	}

	if err := validateFieldLength("output", c.Output, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("template", c.Template, MaxPathLength); err != nil {
		return err
	}

	if err := validateDimension("page.width", c.Page.Width); err != nil {
		return err
	}
	if err := validateDimension("page.height", c.Page.Height); err != nil {
		return err
	}

	if c.Engine != "" && !contains(Engines, strings.ToLower(c.Engine)) {
		return fmt.Errorf("%w: engine %q (must be one of %s)", ErrInvalidValue, c.Engine, strings.Join(Engines, ", "))
	}

	if c.Timeout != "" {
		if _, err := c.TimeoutDuration(); err != nil {
			return err
		}
	}

	return nil
}

// TimeoutDuration parses Timeout. Returns 0 when unset.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: timeout %q: %v", ErrInvalidValue, c.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: timeout %q must be positive", ErrInvalidValue, c.Timeout)
	}
	return d, nil
}

// Validate checks that required address fields are present and bounded.
func (a *AddressConfig) Validate() error {
	required := []struct{ field, value string }{
		{"sender.address_1", a.Address1},
		{"sender.city", a.City},
		{"sender.post_code", a.PostCode},
		{"sender.country", a.Country},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidValue, r.field)
		}
	}

	fields := []struct {
		name, value string
		max         int
	}{
		{"sender.name", a.Name, MaxAddressLineLength},
		{"sender.address_1", a.Address1, MaxAddressLineLength},
		{"sender.address_2", a.Address2, MaxAddressLineLength},
		{"sender.city", a.City, MaxAddressLineLength},
		{"sender.state", a.State, MaxAddressLineLength},
		{"sender.post_code", a.PostCode, MaxPostCodeLength},
		{"sender.country", a.Country, MaxAddressLineLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateDimension accepts 0 (unset) or a value within bounds.
func validateDimension(fieldName string, mm int) error {
	if mm == 0 {
		return nil
	}
	if mm < MinDimensionMM || mm > MaxDimensionMM {
		return fmt.Errorf("%w: %s %dmm (must be between %d and %d)",
			ErrInvalidValue, fieldName, mm, MinDimensionMM, MaxDimensionMM)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// DefaultConfig returns an empty configuration; every field falls back to
// the built-in defaults.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := yamlutil.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths lists the locations tried for a config name, in order:
// current directory, then the user config directory, .yaml before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, configDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing path from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
