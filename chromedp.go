package mailmerge

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

var _ pdfConverter = (*chromedpConverter)(nil)

// chromedpConverter converts HTML to PDF through the Chrome DevTools
// Protocol using chromedp. The HTML is injected into about:blank, so no
// temp file is written.
type chromedpConverter struct {
	settings browserSettings
	timeout  time.Duration

	mu          sync.Mutex
	profileDir  string
	allocCancel context.CancelFunc
	browserCtx  context.Context
	cancel      context.CancelFunc
}

// newChromedpConverter creates a chromedpConverter. Chrome starts on first use.
func newChromedpConverter(timeout time.Duration, settings browserSettings) *chromedpConverter {
	return &chromedpConverter{timeout: timeout, settings: settings}
}

// allocatorOptions returns Chrome flags for headless printing in minimal
// environments.
func (c *chromedpConverter) allocatorOptions(profileDir string) []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserDataDir(profileDir),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if c.settings.Bin != "" {
		opts = append(opts, chromedp.ExecPath(c.settings.Bin))
	}
	if c.settings.NoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}
	return opts
}

// ensureBrowser starts Chrome with a throwaway profile directory. The
// launch is bounded by ctx and the converter timeout; the browser itself
// outlives ctx.
func (c *chromedpConverter) ensureBrowser(ctx context.Context) (context.Context, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.browserCtx != nil {
		return c.browserCtx, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBrowserConnect, err)
	}

	profileDir, err := os.MkdirTemp("", "mailmerge-chrome-*")
	if err != nil {
		return nil, fmt.Errorf("%w: creating profile dir: %v", ErrBrowserConnect, err)
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), c.allocatorOptions(profileDir)...)
	browserCtx, cancel := chromedp.NewContext(allocCtx)
	cleanup := func() {
		cancel()
		allocCancel()
		_ = os.RemoveAll(profileDir)
	}

	launchCtx, launchCancel := context.WithTimeout(ctx, c.timeout)
	defer launchCancel()
	stop := context.AfterFunc(launchCtx, cancel)

	// An empty Run launches the browser.
	if err := chromedp.Run(browserCtx); err != nil {
		stop()
		cleanup()
		if lerr := launchCtx.Err(); lerr != nil {
			return nil, fmt.Errorf("%w: %w", ErrBrowserConnect, lerr)
		}
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	if !stop() {
		// The launch deadline fired after Chrome came up; its context is gone.
		cleanup()
		return nil, fmt.Errorf("%w: %w", ErrBrowserConnect, launchCtx.Err())
	}

	c.profileDir = profileDir
	c.allocCancel = allocCancel
	c.browserCtx = browserCtx
	c.cancel = cancel
	return browserCtx, nil
}

// ToPDF renders htmlContent in a new tab and prints it.
func (c *chromedpConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browserCtx, err := c.ensureBrowser(ctx)
	if err != nil {
		return nil, err
	}

	tabCtx, cancelTab := chromedp.NewContext(browserCtx)
	defer cancelTab()
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, timeout)
	defer cancelTimeout()

	if err := chromedp.Run(tabCtx, loadHTMLActions(htmlContent)...); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	var pdfBuf []byte
	err = chromedp.Run(tabCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		pdfBuf, _, err = printParams(opts).Do(ctx)
		return err
	}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	return pdfBuf, nil
}

// loadHTMLActions replaces the blank document with htmlContent.
func loadHTMLActions(htmlContent string) []chromedp.Action {
	return []chromedp.Action{
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frame, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frame.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}
}

// printParams mirrors buildPrintOptions for the chromedp protocol types.
func printParams(opts *pdfOptions) *page.PrintToPDFParams {
	p := buildPrintOptions(opts)
	return page.PrintToPDF().
		WithPrintBackground(p.PrintBackground).
		WithPaperWidth(*p.PaperWidth).
		WithPaperHeight(*p.PaperHeight).
		WithMarginTop(0).
		WithMarginBottom(0).
		WithMarginLeft(0).
		WithMarginRight(0)
}

// Close shuts Chrome down and removes the profile directory.
func (c *chromedpConverter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if c.allocCancel != nil {
		c.allocCancel()
		c.allocCancel = nil
	}
	c.browserCtx = nil

	if c.profileDir == "" {
		return nil
	}
	err := os.RemoveAll(c.profileDir)
	c.profileDir = ""
	return err
}
