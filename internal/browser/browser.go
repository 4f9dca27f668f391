// Package browser renders detail pages in a headless Chrome.
package browser

import (
	"context"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const desktopUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Renderer returns the HTML of a page after client-side rendering.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
	Close() error
}

// Options configures the Chrome renderer.
type Options struct {
	// ExecPath overrides Chrome discovery.
	ExecPath string
	// Timeout bounds a single navigation, including the settle delay.
	Timeout time.Duration
	// Settle is how long to wait after navigation for scripts to fill the page.
	Settle time.Duration
}

// Chrome is a Renderer backed by one headless browser; each Render opens
// its own tab.
type Chrome struct {
	opts          Options
	browserCtx    context.Context
	cancelAlloc   context.CancelFunc
	cancelBrowser context.CancelFunc
	closeOnce     sync.Once
}

// NewChrome launches a headless browser.
func NewChrome(ctx context.Context, opts Options) (*Chrome, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = 12 * time.Second
	}
	if opts.Settle < 0 {
		opts.Settle = 0
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(desktopUA),
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("blink-settings", "imagesEnabled=false"),
	)
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	// Start the browser now so launch failures surface here.
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, eris.Wrap(err, "browser: launch chrome")
	}

	zap.L().Info("browser: chrome started", zap.Duration("timeout", opts.Timeout))
	return &Chrome{
		opts:          opts,
		browserCtx:    browserCtx,
		cancelAlloc:   cancelAlloc,
		cancelBrowser: cancelBrowser,
	}, nil
}

// Render navigates a fresh tab to url, waits for the settle delay and
// returns the document HTML.
func (c *Chrome) Render(ctx context.Context, url string) (string, error) {
	tabCtx, cancelTab := chromedp.NewContext(c.browserCtx)
	defer cancelTab()
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, c.opts.Timeout+c.opts.Settle)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(c.opts.Settle),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", eris.Wrapf(err, "browser: render %s", url)
	}
	return html, nil
}

// Close shuts the browser down.
func (c *Chrome) Close() error {
	c.closeOnce.Do(func() {
		c.cancelBrowser()
		c.cancelAlloc()
	})
	return nil
}
