package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	mailmerge "github.com/alnah/go-mailmerge"
)

// ErrInvalidFlag wraps pflag parse failures so they map to ExitUsage.
var ErrInvalidFlag = errors.New("invalid flag")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pageFlags holds page geometry flags in millimeters.
type pageFlags struct {
	width  int
	height int
}

// assetFlags holds asset-related flags (CSS, templates, custom asset path).
type assetFlags struct {
	style     string // Name, path, or inline CSS
	template  string // Name or path
	assetPath string // Override asset directory
	noStyle   bool   // Page geometry only
}

// outputFlags holds output mode flags for debugging.
type outputFlags struct {
	html     bool // Output HTML alongside PDF
	htmlOnly bool // Output HTML only, skip PDF
}

// mergeFlags holds all flags for a mail merge run.
type mergeFlags struct {
	common     commonFlags
	sender     string
	output     string
	timeout    string
	engine     string
	page       pageFlags
	assets     assetFlags
	outputMode outputFlags
	help       bool

	// changed reports whether a flag was set on the command line.
	changed func(name string) bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addPageFlags adds page size flags. -h is height, so --help has no shorthand.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.IntVarP(&f.width, "width", "w", mailmerge.DefaultWidthMM, "page width in mm")
	fs.IntVarP(&f.height, "height", "h", mailmerge.DefaultHeightMM, "page height in mm")
}

// addAssetFlags adds asset flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name, file path, or inline CSS")
	fs.StringVar(&f.template, "template", "", "page template name or file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.noStyle, "no-style", false, "disable CSS styling")
}

// addOutputFlags adds output mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.html, "html", false, "also write the rendered HTML")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "write the rendered HTML only, skip PDF")
}

// parseMergeFlags parses args (without the program name) and returns the
// flags and positional arguments.
func parseMergeFlags(args []string, stderr io.Writer) (*mergeFlags, []string, error) {
	fs := flag.NewFlagSet("mailmerge", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {}

	f := &mergeFlags{}
	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.sender, "sender", "s", "", "sender address: JSON object, file path, or -")
	fs.StringVarP(&f.output, "output", "o", mailmerge.DefaultOutput, "output PDF path")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "rendering timeout (e.g. 30s, 2m)")
	fs.StringVarP(&f.engine, "engine", "e", "", "rendering engine: rod, chromedp")
	addPageFlags(fs, &f.page)
	addAssetFlags(fs, &f.assets)
	addOutputFlags(fs, &f.outputMode)
	fs.BoolVar(&f.help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFlag, err)
	}

	f.changed = fs.Changed
	return f, fs.Args(), nil
}
