package extractor

import (
	"encoding/json"
	"strings"
	"sync"
)

// APIGroup holds the structured attributes the listing site's JSON API
// delivers for one group during page load.
type APIGroup struct {
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	PublicDescription  string   `json:"public_church_center_description"`
	PublicURL          string   `json:"public_church_center_web_url"`
	TagNames           []string `json:"tag_names"`
	Tags               []string `json:"tags"`
	Schedule           string   `json:"schedule"`
	Location           string   `json:"location"`
	VirtualLocationURL string   `json:"virtual_location_url"`
	HeaderImage        struct {
		Medium   string `json:"medium"`
		Original string `json:"original"`
	} `json:"header_image"`
}

// ParseAPIPayload extracts group attributes from one observed response body.
// Only bodies shaped as {data: [...]} contribute; each item's "attributes"
// object is used when present, otherwise the item itself. Items without a
// group URL are ignored, as are items that fail to decode.
func ParseAPIPayload(body []byte) []APIGroup {
	var envelope struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Data) == 0 {
		return nil
	}

	var groups []APIGroup
	for _, raw := range envelope.Data {
		var wrapper struct {
			Attributes json.RawMessage `json:"attributes"`
		}
		target := raw
		if err := json.Unmarshal(raw, &wrapper); err == nil &&
			len(wrapper.Attributes) > 0 && string(wrapper.Attributes) != "null" {
			target = wrapper.Attributes
		}

		var g APIGroup
		if err := json.Unmarshal(target, &g); err != nil {
			continue
		}
		if g.PublicURL == "" || !strings.Contains(g.PublicURL, "/groups/") {
			continue
		}
		groups = append(groups, g)
	}
	return groups
}

// APIMap indexes intercepted API attributes by group URL. Multiple responses
// may deliver the same group during one page load; the last write wins.
type APIMap struct {
	mu     sync.Mutex
	groups map[string]APIGroup
}

// NewAPIMap creates an empty map.
func NewAPIMap() *APIMap {
	return &APIMap{groups: make(map[string]APIGroup)}
}

// Ingest parses one response body and merges its groups into the map.
// Payloads that are not group listings are ignored. Safe for concurrent use,
// the CDP listener delivers bodies from multiple goroutines.
func (m *APIMap) Ingest(body []byte) {
	groups := ParseAPIPayload(body)
	if len(groups) == 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range groups {
		m.groups[g.PublicURL] = g
	}
}

// Get looks up the attributes for an exact group URL.
func (m *APIMap) Get(url string) (APIGroup, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.groups[url]
	return g, ok
}

// Len reports how many distinct group URLs have been observed.
func (m *APIMap) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.groups)
}
