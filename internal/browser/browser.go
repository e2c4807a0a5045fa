package browser

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

const (
	// DefaultUserAgent is sent on every navigation. The listing site serves
	// degraded markup to unrecognized agents.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	defaultViewportWidth  = 1280
	defaultViewportHeight = 900
)

// Options configures the shared exec allocator.
type Options struct {
	Headless  bool
	UserAgent string
	Width     int
	Height    int
}

func (o Options) withDefaults() Options {
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}
	if o.Width <= 0 {
		o.Width = defaultViewportWidth
	}
	if o.Height <= 0 {
		o.Height = defaultViewportHeight
	}
	return o
}

// NewAllocator creates the exec allocator all sessions of a run share.
func NewAllocator(ctx context.Context, opts Options) (context.Context, context.CancelFunc) {
	opts = opts.withDefaults()
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(opts.Width, opts.Height),
		chromedp.UserAgent(opts.UserAgent),
	)
	return chromedp.NewExecAllocator(ctx, allocOpts...)
}

// Session is one browser tab.
type Session struct {
	ctx         context.Context
	cancel      context.CancelFunc
	bodyFetches sync.WaitGroup
}

// NewSession opens a tab on the given allocator context.
func NewSession(allocCtx context.Context) *Session {
	ctx, cancel := chromedp.NewContext(allocCtx)
	return &Session{ctx: ctx, cancel: cancel}
}

// Close tears the tab down.
func (s *Session) Close() {
	s.cancel()
}

// CaptureJSONResponses registers a CDP listener that hands the body of every
// JSON-bearing network response observed on this tab to sink. It must be
// called before navigation so responses delivered during page load are seen.
// Bodies are fetched once loading finishes; fetch failures are silently
// dropped (the DOM walk remains the authoritative group list).
func (s *Session) CaptureJSONResponses(sink func(body []byte)) {
	var mu sync.Mutex
	pending := make(map[network.RequestID]bool)

	chromedp.ListenTarget(s.ctx, func(ev interface{}) {
		switch e := ev.(type) {
		case *network.EventResponseReceived:
			if !strings.Contains(strings.ToLower(e.Response.MimeType), "json") {
				return
			}
			mu.Lock()
			pending[e.RequestID] = true
			mu.Unlock()
		case *network.EventLoadingFinished:
			mu.Lock()
			ok := pending[e.RequestID]
			delete(pending, e.RequestID)
			mu.Unlock()
			if !ok {
				return
			}
			// The body must be pulled outside the listener goroutine.
			s.bodyFetches.Add(1)
			go func(id network.RequestID) {
				defer s.bodyFetches.Done()
				c := chromedp.FromContext(s.ctx)
				body, err := network.GetResponseBody(id).Do(cdp.WithExecutor(s.ctx, c.Target))
				if err != nil {
					return
				}
				sink(body)
			}(e.RequestID)
		}
	})
}

// WaitForResponseBodies blocks until every body fetch started by the capture
// listener has been handed to the sink. Call it after navigation settles and
// before reading what the sink collected.
func (s *Session) WaitForResponseBodies() {
	s.bodyFetches.Wait()
}

// PageLoad tunes how a navigation settles before the DOM is read.
type PageLoad struct {
	Timeout          time.Duration
	ScrollIterations int
	ScrollStep       int
	ScrollPause      time.Duration
	Settle           time.Duration
}

// DefaultPageLoad matches the reference deployment: up to 20 scroll steps of
// 800px with a 400ms pause, then a 1.5s settle.
func DefaultPageLoad(timeout time.Duration) PageLoad {
	return PageLoad{
		Timeout:          timeout,
		ScrollIterations: 20,
		ScrollStep:       800,
		ScrollPause:      400 * time.Millisecond,
		Settle:           1500 * time.Millisecond,
	}
}

// RenderedHTML navigates to url, scrolls until the document height stops
// growing to defeat lazy rendering, and returns the rendered markup.
func (s *Session) RenderedHTML(url string, load PageLoad) (string, error) {
	ctx := s.ctx
	if load.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, load.Timeout)
		defer cancel()
	}

	var html string
	tasks := chromedp.Tasks{
		network.Enable(),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			return scrollToBottom(ctx, load)
		}),
		chromedp.Sleep(load.Settle),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	}
	if err := chromedp.Run(ctx, tasks); err != nil {
		return "", fmt.Errorf("rendering %s: %w", url, err)
	}
	return html, nil
}

func scrollToBottom(ctx context.Context, load PageLoad) error {
	previous := -1
	for i := 0; i < load.ScrollIterations; i++ {
		script := fmt.Sprintf("window.scrollBy(0, %d)", load.ScrollStep)
		if err := chromedp.Evaluate(script, nil).Do(ctx); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(load.ScrollPause):
		}

		var height int
		if err := chromedp.Evaluate("document.body.scrollHeight", &height).Do(ctx); err != nil {
			return err
		}
		if height == previous {
			break
		}
		previous = height
	}
	return nil
}
