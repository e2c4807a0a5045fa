package group

import (
	"strings"
	"time"
)

// PageType tags a source page and the groups found on it.
type PageType string

const (
	TypeGather PageType = "Gather"
	TypeGrow   PageType = "Grow"
	TypeGo     PageType = "Go"
)

// SourcePage is one external listing page to extract groups from.
type SourcePage struct {
	Type PageType `json:"type" yaml:"type"`
	URL  string   `json:"url" yaml:"url"`
}

// DefaultSourcePages returns the built-in listing pages processed when a
// refresh request does not supply its own list.
func DefaultSourcePages() []SourcePage {
	return []SourcePage{
		{Type: TypeGather, URL: "https://radiantjxn.churchcenter.com/groups/gather?enrollment=open_signup%2Crequest_to_join&filter=enrollment"},
		{Type: TypeGrow, URL: "https://radiantjxn.churchcenter.com/groups/grow"},
		{Type: TypeGo, URL: "https://radiantjxn.churchcenter.com/groups/go"},
		{Type: TypeGather, URL: "https://radiantjxn.churchcenter.com/groups/team-radiant"},
	}
}

// RawRecord is a group as discovered on a listing page, before classification.
// AboutText and EventsText are filled in by the detail enricher and stay empty
// when the detail fetch fails.
type RawRecord struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	URL         string   `json:"url"`
	RawTags     []string `json:"rawTags"`
	Schedule    string   `json:"schedule"`
	Location    string   `json:"location"`
	SourceType  PageType `json:"sourceType"`
	AboutText   string   `json:"aboutText,omitempty"`
	EventsText  string   `json:"eventsText,omitempty"`
}

// Slug derives a record ID from the last path segment of a group URL.
// Query strings and trailing slashes are ignored.
func Slug(rawURL string) string {
	trimmed := rawURL
	if i := strings.IndexAny(trimmed, "?#"); i >= 0 {
		trimmed = trimmed[:i]
	}
	trimmed = strings.Trim(trimmed, "/")
	if trimmed == "" {
		return ""
	}
	parts := strings.Split(trimmed, "/")
	return parts[len(parts)-1]
}

// Tags holds the faceted metadata attached to a catalog entry.
type Tags struct {
	Type        PageType `json:"type"`
	Location    string   `json:"location"`
	Season      string   `json:"season"`
	Regularity  string   `json:"regularity"`
	MeetingDay  string   `json:"meetingDay"`
	MeetingTime string   `json:"meetingTime"`
}

// Entry is a group after classification and override resolution, as published
// to consumers.
type Entry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	URL         string `json:"url"`
	Category    string `json:"category"`
	Demographic string `json:"demographic"`
	Tags        Tags   `json:"tags"`
}

// Catalog is the artifact written after a successful refresh. It is replaced
// wholesale on every run.
type Catalog struct {
	LastUpdated time.Time    `json:"lastUpdated"`
	SourcePages []SourcePage `json:"sourcePages"`
	Groups      []Entry      `json:"groups"`
}
