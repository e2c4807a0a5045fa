package extractor

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/radiantjxn/groups-catalog/internal/browser"
	"github.com/radiantjxn/groups-catalog/internal/group"
	"github.com/radiantjxn/groups-catalog/internal/logger"
)

// Extractor drives a browser tab against listing pages and produces raw
// group records.
type Extractor struct {
	load browser.PageLoad
	log  *logger.Logger
}

// New creates an extractor using the given page-load tuning.
func New(load browser.PageLoad, log *logger.Logger) *Extractor {
	if log == nil {
		log = logger.New(logger.LevelInfo, io.Discard)
	}
	return &Extractor{load: load, log: log}
}

// ExtractPage opens a fresh tab for one source page, intercepts its API
// traffic, walks the rendered DOM, and returns the merged records. The API
// map only enriches groups the DOM discovered; it never adds membership.
func (e *Extractor) ExtractPage(allocCtx context.Context, page group.SourcePage) ([]group.RawRecord, error) {
	sess := browser.NewSession(allocCtx)
	defer sess.Close()

	apiMap := NewAPIMap()
	sess.CaptureJSONResponses(apiMap.Ingest)

	html, err := sess.RenderedHTML(page.URL, e.load)
	if err != nil {
		return nil, fmt.Errorf("extracting %s page: %w", page.Type, err)
	}
	// Bodies observed during the load may still be in flight; the map must be
	// complete before the merge reads it.
	sess.WaitForResponseBodies()

	cards, err := parseListing(strings.NewReader(html), page.URL)
	if err != nil {
		return nil, fmt.Errorf("extracting %s page: %w", page.Type, err)
	}

	e.log.Debug("listing extracted", logger.Fields{
		"type":        page.Type,
		"dom_groups":  len(cards),
		"api_entries": apiMap.Len(),
	})

	return merge(cards, apiMap, page.Type), nil
}

// merge combines DOM cards with intercepted API attributes. API fields win
// field-by-field when present; records with no resolvable name are dropped.
func merge(cards []domCard, api *APIMap, sourceType group.PageType) []group.RawRecord {
	records := make([]group.RawRecord, 0, len(cards))
	for _, card := range cards {
		rec := group.RawRecord{
			ID:          card.Slug,
			Name:        card.Name,
			Description: card.Description,
			ImageURL:    card.ImageURL,
			URL:         card.URL,
			RawTags:     []string{},
			SourceType:  sourceType,
		}

		if attrs, ok := api.Get(card.URL); ok {
			rec.Name = firstNonEmpty(attrs.Name, card.Name)
			rec.Description = firstNonEmpty(attrs.Description, attrs.PublicDescription, card.Description)
			rec.ImageURL = firstNonEmpty(attrs.HeaderImage.Medium, attrs.HeaderImage.Original, card.ImageURL)
			rec.Schedule = attrs.Schedule
			rec.Location = firstNonEmpty(attrs.Location, attrs.VirtualLocationURL)
			if len(attrs.TagNames) > 0 {
				rec.RawTags = attrs.TagNames
			} else if len(attrs.Tags) > 0 {
				rec.RawTags = attrs.Tags
			}
		}

		if rec.Name == "" {
			continue
		}
		records = append(records, rec)
	}
	return records
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
