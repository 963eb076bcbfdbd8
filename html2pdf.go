package mailmerge

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-mailmerge/internal/fileutil"
	"github.com/alnah/go-mailmerge/internal/process"
)

// Rendering engine names.
const (
	EngineRod      = "rod"
	EngineChromedp = "chromedp"
)

// Engines lists the supported rendering engines.
var Engines = []string{EngineRod, EngineChromedp}

// pdfConverter abstracts HTML to PDF conversion to allow different backends.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// pdfRenderer abstracts PDF rendering from an HTML file to enable testing without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error)
}

// Compile-time interface checks
var (
	_ pdfConverter = (*rodConverter)(nil)
	_ pdfRenderer  = (*rodRenderer)(nil)
)

// pdfOptions holds options for PDF generation.
type pdfOptions struct {
	Page PageSize
}

// browserSettings configures how Chrome is located and launched.
type browserSettings struct {
	Bin       string // empty = engine default lookup
	NoSandbox bool
}

// browserSettingsFromEnv reads ROD_BROWSER_BIN and the sandbox switches.
// A pinned binary usually means a container image, so it disables the
// sandbox as well.
func browserSettingsFromEnv() browserSettings {
	bin := os.Getenv("ROD_BROWSER_BIN")
	return browserSettings{
		Bin: bin,
		NoSandbox: os.Getenv("ROD_NO_SANDBOX") == "1" ||
			strings.EqualFold(os.Getenv("CI"), "true") ||
			bin != "",
	}
}

// validateEngine accepts "" (default engine) or a name from Engines.
func validateEngine(engine string) error {
	switch strings.ToLower(engine) {
	case "", EngineRod, EngineChromedp:
		return nil
	default:
		return fmt.Errorf("%w: %q (supported: %s)", ErrUnknownEngine, engine, strings.Join(Engines, ", "))
	}
}

// newPDFConverter returns the converter for the named engine.
func newPDFConverter(engine string, timeout time.Duration) (pdfConverter, error) {
	if err := validateEngine(engine); err != nil {
		return nil, err
	}
	settings := browserSettingsFromEnv()
	if strings.ToLower(engine) == EngineChromedp {
		return newChromedpConverter(timeout, settings), nil
	}
	return newRodConverter(timeout, settings), nil
}

// rodRenderer implements pdfRenderer using go-rod.
// Rod downloads Chromium on first run if no browser is found.
type rodRenderer struct {
	settings browserSettings
	timeout  time.Duration
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// newRodRenderer creates a rodRenderer with the given timeout.
func newRodRenderer(timeout time.Duration, settings browserSettings) *rodRenderer {
	return &rodRenderer{timeout: timeout, settings: settings}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()
	if r.settings.Bin != "" {
		l = l.Bin(r.settings.Bin)
	}
	if r.settings.NoSandbox {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		r.killLauncher()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.browser = browser
	return nil
}

// Close releases browser resources and reaps the Chrome process tree.
func (r *rodRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	r.killLauncher()
	return err
}

func (r *rodRenderer) killLauncher() {
	if r.launcher == nil {
		return
	}
	process.KillProcessGroup(r.launcher.PID())
	r.launcher.Kill()
	r.launcher = nil
}

// RenderFromFile opens a local HTML file in headless Chrome and renders it to PDF.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	// Context deadline wins over the configured timeout.
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	page = page.Context(ctx).Timeout(timeout)

	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	reader, err := page.PDF(buildPrintOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// buildPrintOptions maps the page size onto Chrome's print parameters.
// The size is already landscape, so Chrome's own Landscape flag stays off
// (it would swap width and height again).
func buildPrintOptions(opts *pdfOptions) *proto.PagePrintToPDF {
	page := PageSize{WidthMM: DefaultWidthMM, HeightMM: DefaultHeightMM}
	if opts != nil && opts.Page.WidthMM > 0 && opts.Page.HeightMM > 0 {
		page = opts.Page
	}
	page = page.Landscape()

	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(page.WidthInches()),
		PaperHeight:     floatPtr(page.HeightInches()),
		MarginTop:       floatPtr(0),
		MarginBottom:    floatPtr(0),
		MarginLeft:      floatPtr(0),
		MarginRight:     floatPtr(0),
		PrintBackground: true,
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

// rodConverter converts HTML to PDF using headless Chrome via go-rod.
type rodConverter struct {
	renderer pdfRenderer
	closer   io.Closer
}

// newRodConverter creates a rodConverter with the production renderer.
func newRodConverter(timeout time.Duration, settings browserSettings) *rodConverter {
	r := newRodRenderer(timeout, settings)
	return &rodConverter{renderer: r, closer: r}
}

// ToPDF writes the HTML to a temp file and renders it through the browser.
func (c *rodConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.renderer.RenderFromFile(ctx, tmpPath, opts)
}

// Close releases browser resources.
func (c *rodConverter) Close() error {
	if c.closer != nil {
		return c.closer.Close()
	}
	return nil
}
