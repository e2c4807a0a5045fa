package catalog

import (
	"regexp"
	"strings"
	"time"

	"github.com/radiantjxn/groups-catalog/internal/classify"
	"github.com/radiantjxn/groups-catalog/internal/group"
	"github.com/radiantjxn/groups-catalog/internal/overrides"
)

// Regularity values published in catalog entries.
const (
	RegularityWeekly = "Weekly"
	RegularityVaries = "Varies"
)

// DefaultLocation is published when neither the record nor the text offers one.
const DefaultLocation = "Inquire Within"

var (
	regularityPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(Weekly|Bi-Weekly|Monthly|Daily|Varied|As Needed)\b`),
	}
	typePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(Gather|Grow|Go)\b`),
	}
	locationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:at|@)\s+(.+?)(?:\.|,|$)`),
	}
	seasonPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(Spring|Summer|Fall|Winter)\s*\d{4}\b`),
		regexp.MustCompile(`(?i)\b(Spring|Summer|Fall|Winter)\b`),
	}
)

// Build classifies every record and assembles the catalog artifact. Entry
// order follows record order.
func Build(records []group.RawRecord, ov overrides.Map, pages []group.SourcePage, now time.Time) *group.Catalog {
	entries := make([]group.Entry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, buildEntry(rec, ov[rec.ID]))
	}
	return &group.Catalog{
		LastUpdated: now.UTC(),
		SourcePages: pages,
		Groups:      entries,
	}
}

func buildEntry(rec group.RawRecord, ov overrides.Override) group.Entry {
	tags := strings.Join(rec.RawTags, " ")
	// Category and demographic classify on the listing fields only; the full
	// blob (with about/events/schedule) feeds the schedule and tag facets.
	classText := strings.Join([]string{rec.Name, rec.Description, tags}, " ")
	blob := strings.Join([]string{rec.Name, rec.Description, rec.AboutText, rec.EventsText, rec.Schedule, tags}, " ")

	meeting := classify.ExtractMeetingInfo(blob)

	regularity := ov.Regularity
	if regularity == "" {
		regularity = classify.ExtractTag(blob, regularityPatterns, "")
	}
	if regularity == "" {
		if meeting.Plural {
			regularity = RegularityWeekly
		} else {
			regularity = RegularityVaries
		}
	}

	description := classify.SummarizeAbout(rec.AboutText)
	if description == "" {
		description = rec.Description
	}

	meetingDay := meeting.Day
	if ov.MeetingDay != nil {
		meetingDay = *ov.MeetingDay
	}
	meetingTime := meeting.Time
	if ov.MeetingTime != nil {
		meetingTime = *ov.MeetingTime
	}

	return group.Entry{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: description,
		ImageURL:    rec.ImageURL,
		URL:         rec.URL,
		Category:    firstNonEmpty(ov.Category, classify.Category(classText)),
		Demographic: firstNonEmpty(ov.Demographic, classify.Demographic(classText)),
		Tags: group.Tags{
			Type:        resolveType(ov.Type, rec.SourceType, blob),
			Location:    firstNonEmpty(ov.Location, rec.Location, classify.ExtractTag(blob, locationPatterns, DefaultLocation)),
			Season:      firstNonEmpty(ov.Season, classify.ExtractTag(blob, seasonPatterns, "")),
			Regularity:  regularity,
			MeetingDay:  meetingDay,
			MeetingTime: meetingTime,
		},
	}
}

func resolveType(override string, sourceType group.PageType, blob string) group.PageType {
	if override != "" {
		return group.PageType(override)
	}
	if sourceType != "" {
		return sourceType
	}
	return group.PageType(classify.ExtractTag(blob, typePatterns, string(group.TypeGather)))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
