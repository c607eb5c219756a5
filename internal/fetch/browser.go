// Package fetch - browser.go renders the index page in a headless browser when the
// report list is built client-side.
package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/jonathan/customs-fts/internal/logger"
)

// BrowserTimeout bounds a whole headless render.
const BrowserTimeout = 45 * time.Second

// ShouldUseBrowser returns true if the fetched HTML lacks the report list container,
// indicating the list is rendered by JavaScript.
func ShouldUseBrowser(html, selector string) bool {
	return !HasElement(html, selector)
}

// browserAllocatorOptions returns the exec allocator flags for a render.
func browserAllocatorOptions(verifyCert bool) []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if !verifyCert {
		opts = append(opts, chromedp.Flag("ignore-certificate-errors", true))
	}
	return opts
}

// WithBrowser renders url in a headless browser, waits for selector, and returns the HTML.
// Requires Chrome/Chromium to be installed on the system.
func WithBrowser(ctx context.Context, url, selector string, timeout time.Duration, verifyCert bool) (string, error) {
	logger.Debug(ctx, "Starting headless browser", "url", url)

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, browserAllocatorOptions(verifyCert)...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.WaitReady(selector, chromedp.ByQuery),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	logger.Debug(ctx, "Rendered HTML", "bytes", len(html))
	return html, nil
}
