package mailmerge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alnah/go-mailmerge/internal/fileutil"
)

// Converter orchestrates address rendering: template, style and engine.
// Create with NewConverter(), use Convert() per job, and Close() when done.
type Converter struct {
	cfg          converterConfig
	assetLoader  AssetLoader
	customLoader AssetLoader
	renderer     *Renderer
	pdfConverter pdfConverter
	logger       *slog.Logger
}

// Result holds the output of a conversion.
type Result struct {
	HTML []byte
	PDF  []byte // nil when Job.HTMLOnly is set
}

// NewConverter creates a Converter with the built-in template and style.
// Returns error if asset loading, template parsing, or engine selection fails.
// The browser itself starts lazily on the first PDF conversion.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:    converterConfig{timeout: defaultTimeout, engine: EngineRod},
		logger: slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := validateEngine(c.cfg.engine); err != nil {
		return nil, err
	}

	switch {
	case c.customLoader != nil:
		c.assetLoader = c.customLoader
	default:
		loader, err := NewAssetLoader(c.cfg.assetPath)
		if err != nil {
			return nil, err
		}
		c.assetLoader = loader
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	tmpl, err := c.resolveTemplate()
	if err != nil {
		return nil, err
	}
	c.renderer, err = NewRenderer(tmpl)
	if err != nil {
		return nil, err
	}

	if c.pdfConverter == nil {
		c.pdfConverter, err = newPDFConverter(c.cfg.engine, c.cfg.timeout)
		if err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Convert renders job to HTML and, unless job.HTMLOnly is set, to PDF.
// The context is used for cancellation and timeout.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, job *Job) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if job == nil {
		return nil, ErrNoAddresses
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	htmlContent, err := c.renderer.Render(ctx, job, c.cfg.resolvedStyle)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("rendered HTML",
		"recipients", len(job.Addresses),
		"bytes", len(htmlContent),
		"elapsed", time.Since(start))

	res := &Result{HTML: []byte(htmlContent)}
	if job.HTMLOnly {
		return res, nil
	}

	page := job.PageSize()
	start = time.Now()
	pdfBytes, err := c.pdfConverter.ToPDF(ctx, htmlContent, &pdfOptions{Page: page})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			return nil, fmt.Errorf("converting to PDF: %w: %w", ctxErr, err)
		}
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	c.logger.Debug("generated PDF",
		"engine", c.cfg.engine,
		"page", page.String(),
		"bytes", len(pdfBytes),
		"elapsed", time.Since(start))

	res.PDF = pdfBytes
	return res, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS content.
func (c *Converter) resolveStyle() error {
	if c.cfg.noStyle {
		c.cfg.resolvedStyle = ""
		return nil
	}

	input := c.cfg.styleInput
	if input == "" {
		input = DefaultStyle
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrStyleNotFound, input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	// CSS content? (contains {)
	if fileutil.IsCSS(input) {
		c.cfg.resolvedStyle = input
		return nil
	}

	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, err)
	}
	c.cfg.resolvedStyle = css
	return nil
}

// resolveTemplate resolves the template input (name, path, or template text).
func (c *Converter) resolveTemplate() (string, error) {
	input := c.cfg.templateInput
	if input == "" {
		input = DefaultTemplate
	}

	if strings.Contains(input, "{{") {
		return input, nil
	}

	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("%w: %q: %v", ErrTemplateNotFound, input, err)
		}
		return string(content), nil
	}

	tmpl, err := c.assetLoader.LoadTemplate(input)
	if err != nil {
		return "", fmt.Errorf("loading template %q: %w", input, err)
	}
	return tmpl, nil
}

// WritePDF atomically writes data to path. The previous file, if any, is
// left untouched on failure.
func WritePDF(path string, data []byte) error {
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("%w %q: %v", ErrWritePDF, path, err)
	}
	return nil
}

// WriteHTML atomically writes the rendered HTML to path.
func WriteHTML(path string, data []byte) error {
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("%w %q: %v", ErrWriteHTML, path, err)
	}
	return nil
}

// HTMLPath returns the debug HTML path for a PDF output path.
func HTMLPath(pdfPath string) string {
	return fileutil.ReplaceExt(pdfPath, ".html")
}

// WriteResult writes res.PDF to job.Output and, when html is true or the job
// is HTML-only, the HTML next to it. Returns the paths written.
func WriteResult(job *Job, res *Result, html bool) ([]string, error) {
	var written []string
	if html || job.HTMLOnly {
		htmlPath := HTMLPath(job.Output)
		if err := WriteHTML(htmlPath, res.HTML); err != nil {
			return written, err
		}
		written = append(written, htmlPath)
	}
	if !job.HTMLOnly {
		if err := WritePDF(job.Output, res.PDF); err != nil {
			return written, err
		}
		written = append(written, job.Output)
	}
	return written, nil
}
