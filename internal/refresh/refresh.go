package refresh

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/radiantjxn/groups-catalog/internal/browser"
	"github.com/radiantjxn/groups-catalog/internal/catalog"
	"github.com/radiantjxn/groups-catalog/internal/detail"
	"github.com/radiantjxn/groups-catalog/internal/extractor"
	"github.com/radiantjxn/groups-catalog/internal/group"
	"github.com/radiantjxn/groups-catalog/internal/logger"
	"github.com/radiantjxn/groups-catalog/internal/overrides"
	"github.com/radiantjxn/groups-catalog/internal/storage"
)

const (
	defaultCooldown      = 15 * time.Minute
	defaultPageTimeout   = 30 * time.Second
	defaultDetailTimeout = 20 * time.Second
)

// ErrRefreshInProgress is returned when a refresh is requested while another
// one is still running.
var ErrRefreshInProgress = errors.New("refresh already in progress")

// RateLimitedError is returned when a refresh is requested before the
// cooldown since the last successful refresh has elapsed.
type RateLimitedError struct {
	NextRefreshAt time.Time
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("refresh rate limited until %s", e.NextRefreshAt.UTC().Format(time.RFC3339))
}

// Config tunes a coordinator.
type Config struct {
	Headless      bool
	PageTimeout   time.Duration
	DetailTimeout time.Duration
	Cooldown      time.Duration
	OverridesPath string
}

func (c Config) withDefaults() Config {
	if c.PageTimeout <= 0 {
		c.PageTimeout = defaultPageTimeout
	}
	if c.DetailTimeout <= 0 {
		c.DetailTimeout = defaultDetailTimeout
	}
	if c.Cooldown <= 0 {
		c.Cooldown = defaultCooldown
	}
	return c
}

// Result summarizes one completed refresh run.
type Result struct {
	GroupCount  int
	LastUpdated time.Time
	Logs        []string
}

// Status reports the coordinator's current state.
type Status struct {
	InProgress    bool
	LastRefreshAt time.Time
	NextRefreshAt time.Time
}

// Coordinator serializes refresh runs: at most one at a time, and no sooner
// than the cooldown after the last success.
type Coordinator struct {
	cfg   Config
	store *storage.Store
	log   *logger.Logger
	now   func() time.Time

	// runner is the full scrape pipeline; swapped out in tests.
	runner func(ctx context.Context, pages []group.SourcePage, log *logger.Logger) (*group.Catalog, error)

	mu          sync.Mutex
	inProgress  bool
	lastSuccess time.Time
}

// New creates a coordinator persisting through store.
func New(cfg Config, store *storage.Store, log *logger.Logger) *Coordinator {
	if log == nil {
		log = logger.New(logger.LevelInfo, io.Discard)
	}
	c := &Coordinator{
		cfg:   cfg.withDefaults(),
		store: store,
		log:   log,
		now:   time.Now,
	}
	c.runner = c.pipeline
	return c
}

// Refresh runs the pipeline against pages, or against the default source
// pages when pages is empty. It returns ErrRefreshInProgress when another run
// holds the slot and a *RateLimitedError inside the cooldown window. The
// result carries the captured log lines even when the run fails.
func (c *Coordinator) Refresh(ctx context.Context, pages []group.SourcePage) (*Result, error) {
	if err := c.begin(); err != nil {
		return nil, err
	}

	if len(pages) == 0 {
		pages = group.DefaultSourcePages()
	}

	capture := logger.NewCapture()
	runLog := c.log.WithCapture(capture)

	cat, err := c.runner(ctx, pages, runLog)
	if err != nil {
		runLog.Error("refresh failed", nil, err)
		c.finish(time.Time{})
		return &Result{Logs: capture.Lines()}, err
	}

	c.finish(cat.LastUpdated)
	return &Result{
		GroupCount:  len(cat.Groups),
		LastUpdated: cat.LastUpdated,
		Logs:        capture.Lines(),
	}, nil
}

// Status returns the current coordinator state. NextRefreshAt is zero until
// the first successful refresh.
func (c *Coordinator) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Status{
		InProgress:    c.inProgress,
		LastRefreshAt: c.lastSuccess,
	}
	if !c.lastSuccess.IsZero() {
		s.NextRefreshAt = c.lastSuccess.Add(c.cfg.Cooldown)
	}
	return s
}

func (c *Coordinator) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inProgress {
		return ErrRefreshInProgress
	}
	if !c.lastSuccess.IsZero() {
		next := c.lastSuccess.Add(c.cfg.Cooldown)
		if c.now().Before(next) {
			return &RateLimitedError{NextRefreshAt: next}
		}
	}
	c.inProgress = true
	return nil
}

// finish releases the run slot. A non-zero successAt records a successful
// completion and starts the cooldown window.
func (c *Coordinator) finish(successAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inProgress = false
	if !successAt.IsZero() {
		c.lastSuccess = successAt
	}
}

// pipeline is one full run: render every source page, enrich each discovered
// group from its detail page, classify, and publish the catalog.
func (c *Coordinator) pipeline(ctx context.Context, pages []group.SourcePage, log *logger.Logger) (*group.Catalog, error) {
	start := c.now()
	metrics := logger.NewMetrics()
	log.Info("refresh started", logger.Fields{"pages": len(pages)})

	allocCtx, cancel := browser.NewAllocator(ctx, browser.Options{Headless: c.cfg.Headless})
	defer cancel()

	ext := extractor.New(browser.DefaultPageLoad(c.cfg.PageTimeout), log)

	var records []group.RawRecord
	failed := 0
	for _, page := range pages {
		pageStart := time.Now()
		recs, err := ext.ExtractPage(allocCtx, page)
		if err != nil {
			failed++
			metrics.IncrCounter("pages_failed")
			log.Error("page extraction failed", logger.Fields{"type": page.Type, "url": page.URL}, err)
			continue
		}
		metrics.RecordTiming("extract_page", time.Since(pageStart))
		metrics.AddCounter("groups_discovered", int64(len(recs)))
		log.Info("page extracted", logger.Fields{"type": page.Type, "groups": len(recs)})
		records = append(records, recs...)
	}
	if failed == len(pages) {
		return nil, fmt.Errorf("all %d source pages failed", len(pages))
	}

	// One tab serves every detail fetch of the run.
	sess := browser.NewSession(allocCtx)
	defer sess.Close()
	enricher := detail.New(sess, c.cfg.DetailTimeout, log)
	for i := range records {
		detailStart := time.Now()
		enricher.Enrich(&records[i])
		metrics.RecordTiming("enrich_detail", time.Since(detailStart))
	}

	ov, err := overrides.Load(c.cfg.OverridesPath)
	if err != nil {
		return nil, err
	}

	cat := catalog.Build(records, ov, pages, c.now())
	if err := c.store.Save(cat); err != nil {
		return nil, err
	}

	counters, _ := metrics.Snapshot()
	log.Info("refresh complete", logger.Fields{
		"groups":       len(cat.Groups),
		"pages_failed": counters["pages_failed"],
		"duration":     c.now().Sub(start).Round(time.Millisecond).String(),
	})
	return cat, nil
}
