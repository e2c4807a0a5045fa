package detail

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"

	"github.com/radiantjxn/groups-catalog/internal/browser"
	"github.com/radiantjxn/groups-catalog/internal/group"
	"github.com/radiantjxn/groups-catalog/internal/logger"
)

const (
	defaultSettle = 1500 * time.Millisecond
	maxRetries    = 2
)

var (
	aboutPattern  = regexp.MustCompile(`(?i)about`)
	eventsPattern = regexp.MustCompile(`(?i)upcoming|schedule|event`)
)

// Enricher fetches about/events text for records, reusing one browser tab
// across all detail pages of a run.
type Enricher struct {
	sess *browser.Session
	load browser.PageLoad
	log  *logger.Logger
}

// New creates an enricher on an existing session. timeout bounds each
// individual page fetch.
func New(sess *browser.Session, timeout time.Duration, log *logger.Logger) *Enricher {
	if log == nil {
		log = logger.New(logger.LevelInfo, io.Discard)
	}
	return &Enricher{
		sess: sess,
		// Detail pages are short; no scroll pass, just a settle delay.
		load: browser.PageLoad{Timeout: timeout, Settle: defaultSettle},
		log:  log,
	}
}

// Enrich fills in AboutText and EventsText for one record. Any failure is
// logged and leaves both fields empty; it never propagates.
func (e *Enricher) Enrich(rec *group.RawRecord) {
	html, err := e.fetch(rec.URL)
	if err != nil {
		e.log.Warn("detail fetch failed", logger.Fields{"group": rec.ID, "url": rec.URL})
		return
	}

	about, events, err := parseDetail(strings.NewReader(html))
	if err != nil {
		e.log.Warn("detail parse failed", logger.Fields{"group": rec.ID})
		return
	}

	rec.AboutText = about
	rec.EventsText = events
}

func (e *Enricher) fetch(url string) (string, error) {
	var html string
	op := func() error {
		rendered, err := e.sess.RenderedHTML(url, e.load)
		if err != nil {
			return err
		}
		html = rendered
		return nil
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries)
	if err := backoff.Retry(op, policy); err != nil {
		return "", fmt.Errorf("fetching detail page %s: %w", url, err)
	}
	return html, nil
}

// parseDetail extracts the About and events text blocks from detail-page
// markup. For each matching heading the text of all following siblings up to
// the next h2-h4 is concatenated; the first heading that yields content wins.
func parseDetail(r io.Reader) (about, events string, err error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", "", fmt.Errorf("parsing detail HTML: %w", err)
	}

	about = sectionText(doc.Find(`h2, h3, h4, [class*="heading"], [class*="title"]`), aboutPattern)
	if about == "" {
		about = strings.TrimSpace(doc.Find(`[class*="description"], [class*="about"], [class*="detail"] p`).First().Text())
	}

	events = sectionText(doc.Find("h2, h3, h4"), eventsPattern)

	return about, events, nil
}

// sectionText finds the first heading whose text matches pattern and joins
// the text of its following siblings until the next heading of equal or
// higher level.
func sectionText(headings *goquery.Selection, pattern *regexp.Regexp) string {
	var result string
	headings.EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if !pattern.MatchString(strings.TrimSpace(h.Text())) {
			return true
		}

		var parts []string
		h.NextUntil("h2, h3, h4").Each(func(_ int, sibling *goquery.Selection) {
			if text := strings.TrimSpace(sibling.Text()); text != "" {
				parts = append(parts, text)
			}
		})
		if len(parts) == 0 {
			return true
		}

		result = strings.Join(parts, " ")
		return false
	})
	return result
}
