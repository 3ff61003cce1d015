package render

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// A4 paper dimensions in inches, as the DevTools protocol expects.
const (
	paperWidthA4  = 8.27
	paperHeightA4 = 11.69
)

const (
	viewportWidth  = 1920
	viewportHeight = 1080
)

// ChromeRenderer rasterizes HTML documents to PDF through a headless Chrome
// instance driven over the DevTools protocol. Each render launches its own
// browser and tears it down on every exit path, so no OS processes outlive
// the request.
type ChromeRenderer struct {
	timeout time.Duration
	log     *zap.Logger
}

// NewChromeRenderer creates a renderer with the given per-render timeout.
// The timeout bounds the whole browser session, including the wait for
// network activity to go idle; without it a stalled resource fetch would
// block forever.
func NewChromeRenderer(timeout time.Duration, log *zap.Logger) *ChromeRenderer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ChromeRenderer{timeout: timeout, log: log}
}

// isNetworkIdle reports whether a DevTools event is the networkIdle page
// lifecycle event, the signal that the document and its subresources
// (stylesheets, fonts) have finished loading.
func isNetworkIdle(ev interface{}) bool {
	e, ok := ev.(*page.EventLifecycleEvent)
	return ok && e.Name == "networkIdle"
}

// RenderHTML loads the document into a fresh headless tab, waits for network
// activity to go idle so external stylesheets are applied, and captures the
// page as an A4 PDF with background graphics enabled.
func (r *ChromeRenderer) RenderHTML(ctx context.Context, html string) ([]byte, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.Flag("disable-setuid-sandbox", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	var pdf []byte
	err := chromedp.Run(tabCtx,
		chromedp.EmulateViewport(viewportWidth, viewportHeight),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			if err := page.SetLifecycleEventsEnabled(true).Do(ctx); err != nil {
				return err
			}

			// The listener must be registered before the content is set,
			// otherwise the networkIdle event can fire before anyone is
			// watching for it.
			idle := make(chan struct{})
			var once sync.Once
			lctx, cancelListen := context.WithCancel(ctx)
			defer cancelListen()
			chromedp.ListenTarget(lctx, func(ev interface{}) {
				if isNetworkIdle(ev) {
					once.Do(func() { close(idle) })
				}
			})

			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			if err := page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx); err != nil {
				return err
			}

			select {
			case <-idle:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidthA4).
				WithPaperHeight(paperHeightA4).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		r.log.Error("headless render failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return nil, fmt.Errorf("headless render failed: %w", err)
	}

	r.log.Info("headless render complete",
		zap.Int("pdf_bytes", len(pdf)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return pdf, nil
}
