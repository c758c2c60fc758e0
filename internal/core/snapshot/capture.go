package snapshot

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/yosssi/gohtml"

	"github.com/seckatie/launchwatch/internal/core"
)

// DefaultWaitSelector matches a launch card once the lazy list has loaded.
const DefaultWaitSelector = "#past-launches .past-launches--card"

// Options controls how a running dashboard is captured.
//
// The dashboard loads its launch list after the first paint, so capture goes
// through a real Chrome/Chromium (via the DevTools protocol) and waits for
// the cards to appear before taking the HTML.
type Options struct {
	// ChromePath optionally overrides the Chrome/Chromium executable path.
	ChromePath string
	// Headless controls whether Chrome runs without a visible window.
	Headless bool
	// Timeout is the deadline for navigation, rendering and capture.
	// If <= 0, core.DefaultSnapshotTimeout is used.
	Timeout time.Duration
	// WaitSelector is waited for before capture. Empty uses
	// DefaultWaitSelector; "-" disables waiting.
	WaitSelector string
}

// Result is the captured dashboard.
type Result struct {
	FinalURL string
	Title    string
	HTML     string
	// LaunchCards is the number of past launch cards found in HTML.
	LaunchCards int
}

// withDefaults fills in the timeout and wait selector.
func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = core.DefaultSnapshotTimeout
	}
	o.WaitSelector = strings.TrimSpace(o.WaitSelector)
	if o.WaitSelector == "" {
		o.WaitSelector = DefaultWaitSelector
	}
	return o
}

// allocatorOptions builds the Chrome launch flags for opts.
func allocatorOptions(opts Options) []chromedp.ExecAllocatorOption {
	out := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	out = append(out,
		chromedp.NoDefaultBrowserCheck,
		chromedp.NoFirstRun,
	)
	if opts.ChromePath != "" {
		out = append(out, chromedp.ExecPath(opts.ChromePath))
	}
	if opts.Headless {
		out = append(out, chromedp.Headless)
	} else {
		out = append(out, chromedp.Flag("headless", false))
	}
	return out
}

// Capture loads the dashboard at url in Chrome and returns the rendered HTML.
func Capture(ctx context.Context, url string, opts Options) (Result, error) {
	opts = opts.withDefaults()
	log.Printf("Capturing dashboard %s (timeout %v)", url, opts.Timeout)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocatorOptions(opts)...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, opts.Timeout)
	defer cancelRun()

	var html, title, finalURL string

	navigateAndSettle := func(ctx context.Context) error {
		if err := page.SetLifecycleEventsEnabled(true).Do(ctx); err != nil {
			return err
		}

		idle := make(chan struct{}, 1)
		chromedp.ListenTarget(ctx, func(ev interface{}) {
			if e, ok := ev.(*page.EventLifecycleEvent); ok && e.Name == "networkIdle" {
				select {
				case idle <- struct{}{}:
				default:
				}
			}
		})

		if err := chromedp.Navigate(url).Do(ctx); err != nil {
			return err
		}

		select {
		case <-idle:
		case <-ctx.Done():
			return ctx.Err()
		}
		return nil
	}

	actions := []chromedp.Action{
		chromedp.ActionFunc(navigateAndSettle),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}
	if opts.WaitSelector != "-" {
		actions = append(actions, chromedp.WaitVisible(opts.WaitSelector, chromedp.ByQuery))
	}
	actions = append(actions,
		chromedp.Sleep(core.DefaultNetworkIdleDelay),
		chromedp.Location(&finalURL),
		chromedp.Title(&title),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)

	if err := chromedp.Run(runCtx, actions...); err != nil {
		return Result{}, fmt.Errorf("failed to capture %s: %w", url, err)
	}

	return newResult(finalURL, title, html), nil
}

// newResult falls back to the <title> element when Chrome reported no title
// and counts the rendered launch cards.
func newResult(finalURL, title, html string) Result {
	res := Result{FinalURL: finalURL, Title: title, HTML: html}
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		if strings.TrimSpace(res.Title) == "" {
			res.Title = strings.TrimSpace(doc.Find("title").First().Text())
		}
		res.LaunchCards = doc.Find(".past-launches--card").Length()
	}
	return res
}

// WriteFile captures the dashboard, inlines its assets, formats the HTML and
// writes it to path.
func WriteFile(ctx context.Context, url, path string, opts Options) (Result, error) {
	res, err := Capture(ctx, url, opts)
	if err != nil {
		return Result{}, err
	}

	html, err := InlineAssets(ctx, res.HTML, DefaultInlineOptions(res.FinalURL))
	if err != nil {
		log.Printf("Warning: failed to inline assets for %s: %v (using captured HTML)", url, err)
		html = res.HTML
	}
	res.HTML = gohtml.Format(html)

	if err := os.WriteFile(path, []byte(res.HTML), 0o644); err != nil {
		return Result{}, fmt.Errorf("failed to write snapshot: %w", err)
	}
	log.Printf("Wrote snapshot of %s with %d launch card(s) to %s", res.FinalURL, res.LaunchCards, path)
	return res, nil
}
