package expander

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/videograph/walker/internal/urlutil"
	"github.com/videograph/walker/internal/vertex"
)

// RenderExpander wraps a PageScrapeExpander and falls back to driving
// headless Chromium when the plain HTTP fetch doesn't yield any related
// ids — YouTube increasingly requires JS execution before ytInitialData
// (or its successor) is populated.
type RenderExpander struct {
	inner       *PageScrapeExpander
	allocCtx    context.Context
	allocCancel context.CancelFunc
	log         *zap.SugaredLogger
}

// NewRenderExpander builds a RenderExpander backed by a single shared
// headless Chromium allocator, reused across Expand calls.
func NewRenderExpander(inner *PageScrapeExpander, log *zap.SugaredLogger) *RenderExpander {
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), chromedp.DefaultExecAllocatorOptions[:]...)
	return &RenderExpander{inner: inner, allocCtx: allocCtx, allocCancel: allocCancel, log: log}
}

// Close releases the headless Chromium allocator.
func (e *RenderExpander) Close() {
	e.allocCancel()
}

// Expand tries the plain page scrape first; if it returns no related ids
// at all (but didn't hard-fail), it renders the page with Chromium and
// re-runs extraction against the rendered HTML.
func (e *RenderExpander) Expand(ctx context.Context, id string) (*vertex.Vertex, Outcome, error) {
	v, outcome, err := e.inner.Expand(ctx, id)
	if err != nil {
		return v, outcome, err
	}
	if len(v.RelatedIDs) > 0 {
		return v, outcome, nil
	}

	e.log.Debugw("no related ids from plain fetch, falling back to render", "id", id)
	rendered, err := e.renderPage(ctx, id)
	if err != nil {
		// Render failing doesn't make the original result worse; keep it.
		e.log.Debugw("render fallback failed", "id", id, "err", err)
		return v, outcome, nil
	}

	related := e.inner.extractRelated(rendered, id)
	if len(related) > 0 {
		v.RelatedIDs = vertex.ClampRelatedIDs(related)
	}
	return v, outcome, nil
}

// renderPage navigates to the watch page and returns the rendered HTML.
func (e *RenderExpander) renderPage(ctx context.Context, id string) (string, error) {
	taskCtx, cancel := chromedp.NewContext(e.allocCtx)
	defer cancel()

	taskCtx, timeoutCancel := context.WithTimeout(taskCtx, 20*time.Second)
	defer timeoutCancel()

	var html string
	err := chromedp.Run(taskCtx,
		chromedp.Navigate(urlutil.CanonicalURL(id)),
		chromedp.Sleep(2*time.Second), // let related-video data populate client-side
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", id, err)
	}
	return html, nil
}
