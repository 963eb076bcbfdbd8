package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	mailmerge "github.com/alnah/go-mailmerge"
	"github.com/alnah/go-mailmerge/internal/config"
	"github.com/alnah/go-mailmerge/internal/fileutil"
	"github.com/alnah/go-mailmerge/internal/hints"
	"github.com/alnah/go-mailmerge/internal/logging"
)

// ErrInvalidTimeout is returned for unparsable or non-positive timeouts.
var ErrInvalidTimeout = errors.New("invalid timeout")

// defaultTimeout applies when neither flag, env, nor config sets one.
const defaultTimeout = 30 * time.Second

// runMerge renders the address list given in args to a PDF.
func runMerge(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseMergeFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if flags.help {
		printMergeUsage(env.Stdout)
		return nil
	}

	logger := logging.New(env.Stderr, logging.Options{
		Quiet:   flags.common.quiet,
		Verbose: flags.common.verbose,
	})
	start := env.Now()

	// Resolve configuration: CLI > env > config file > defaults
	envCfg := loadEnvConfig(env.Getenv, logger)
	warnUnknownEnvVars(env.Environ(), logger)

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	applyFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := resolveTimeoutWithEnv(flags.timeout, envCfg.Timeout, cfg.Timeout)
	if err != nil {
		return err
	}

	// Resolve inputs
	if len(positional) == 0 {
		return ErrNoInput
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: %v", ErrTooManyArgs, positional[1:])
	}
	inputArg := positional[0]

	senderArg := flags.sender
	if senderArg == "" {
		senderArg = envCfg.Sender
	}
	if inputArg == stdinArg && senderArg == stdinArg {
		return ErrBothStdin
	}

	sender, err := loadSender(senderArg, cfg.Sender, env.Stdin)
	if err != nil {
		return withDecodeHint(err)
	}
	addresses, err := loadAddresses(inputArg, env.Stdin)
	if err != nil {
		return withDecodeHint(err)
	}

	job := buildJob(sender, addresses, cfg, flags)
	if err := job.Validate(); err != nil {
		return err
	}
	logger.Debug("loaded input",
		"recipients", len(addresses),
		"page", job.PageSize().String(),
		"output", job.Output)

	// Convert
	conv, err := env.NewConverter(converterOptions(cfg, flags, timeout, logger)...)
	if err != nil {
		return withAssetHint(err)
	}
	defer func() {
		if cerr := conv.Close(); cerr != nil {
			logger.Warn("closing browser", "error", cerr)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := conv.Convert(ctx, job)
	if err != nil {
		return withEngineHint(err)
	}

	written, err := mailmerge.WriteResult(job, result, flags.outputMode.html)
	if err != nil {
		return fmt.Errorf("%w%s", err, hints.ForOutputPath())
	}

	if !flags.common.quiet {
		for _, path := range written {
			fmt.Fprintf(env.Stdout, "Created %s\n", path)
		}
	}
	logger.Debug("done", "elapsed", env.Now().Sub(start))
	return nil
}

// loadConfig loads the config named by the flag, falling back to
// MAILMERGE_CONFIG. No name means built-in defaults.
func loadConfig(flagValue, envValue string) (*config.Config, error) {
	name := flagValue
	if name == "" {
		name = envValue
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// applyFlags merges explicitly set CLI flags into config. CLI values
// override config and environment values.
func applyFlags(flags *mergeFlags, cfg *config.Config) {
	if flags.changed("output") {
		cfg.Output = flags.output
	}
	if flags.changed("width") {
		cfg.Page.Width = flags.page.width
	}
	if flags.changed("height") {
		cfg.Page.Height = flags.page.height
	}
	if flags.engine != "" {
		cfg.Engine = flags.engine
	}
	if flags.assets.style != "" {
		cfg.Style = flags.assets.style
	}
	if flags.assets.noStyle {
		cfg.NoStyle = true
	}
	if flags.assets.template != "" {
		cfg.Template = flags.assets.template
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}
}

// buildJob assembles the render job, filling unset values with defaults.
func buildJob(sender mailmerge.Address, addresses []mailmerge.Address, cfg *config.Config, flags *mergeFlags) *mailmerge.Job {
	job := mailmerge.NewJob(sender, addresses)
	if cfg.Output != "" {
		job.Output = cfg.Output
	}
	if cfg.Page.Width != 0 {
		job.Width = cfg.Page.Width
	}
	if cfg.Page.Height != 0 {
		job.Height = cfg.Page.Height
	}
	// An explicit flag is taken as given so Validate rejects 0.
	if flags.changed("width") {
		job.Width = flags.page.width
	}
	if flags.changed("height") {
		job.Height = flags.page.height
	}
	job.HTMLOnly = flags.outputMode.htmlOnly
	return job
}

// converterOptions maps resolved settings to library options.
func converterOptions(cfg *config.Config, flags *mergeFlags, timeout time.Duration, logger *slog.Logger) []mailmerge.Option {
	opts := []mailmerge.Option{
		mailmerge.WithTimeout(timeout),
		mailmerge.WithLogger(logger),
	}
	if cfg.Engine != "" {
		opts = append(opts, mailmerge.WithEngine(cfg.Engine))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, mailmerge.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.Template != "" {
		opts = append(opts, mailmerge.WithTemplate(cfg.Template))
	}
	switch {
	case cfg.NoStyle:
		opts = append(opts, mailmerge.WithoutStyle())
	case cfg.Style != "":
		opts = append(opts, mailmerge.WithStyle(cfg.Style))
	}
	return opts
}

// resolveTimeoutWithEnv picks the timeout: flag > env > config > default.
// An explicit but invalid flag or config value is an error.
func resolveTimeoutWithEnv(flagValue string, envValue time.Duration, configValue string) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w %q: %v", ErrInvalidTimeout, flagValue, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w %q: must be positive", ErrInvalidTimeout, flagValue)
		}
		return d, nil
	}

	if envValue > 0 {
		return envValue, nil
	}

	if configValue != "" {
		d, err := time.ParseDuration(configValue)
		if err != nil || d <= 0 {
			return 0, fmt.Errorf("%w %q in config", ErrInvalidTimeout, configValue)
		}
		return d, nil
	}

	return defaultTimeout, nil
}

func withDecodeHint(err error) error {
	if errors.Is(err, mailmerge.ErrDecode) {
		return fmt.Errorf("%w%s", err, hints.ForDecode())
	}
	return err
}

func withAssetHint(err error) error {
	switch {
	case errors.Is(err, mailmerge.ErrStyleNotFound):
		return fmt.Errorf("%w%s", err, hints.ForAssetNotFound(mailmerge.BuiltinStyles()))
	case errors.Is(err, mailmerge.ErrTemplateNotFound):
		return fmt.Errorf("%w%s", err, hints.ForAssetNotFound(mailmerge.BuiltinTemplates()))
	}
	return err
}

func withEngineHint(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w%s", err, hints.ForTimeout())
	case errors.Is(err, mailmerge.ErrBrowserConnect):
		return fmt.Errorf("%w%s", err, hints.ForBrowserConnect())
	}
	return err
}
