package overrides

import (
	"encoding/json"
	"fmt"
	"os"
)

// Override holds the operator-supplied corrections for one group.
type Override struct {
	Category    string  `json:"category,omitempty"`
	Demographic string  `json:"demographic,omitempty"`
	Type        string  `json:"type,omitempty"`
	Location    string  `json:"location,omitempty"`
	Season      string  `json:"season,omitempty"`
	Regularity  string  `json:"regularity,omitempty"`
	MeetingDay  *string `json:"meetingDay,omitempty"`
	MeetingTime *string `json:"meetingTime,omitempty"`
}

// Map associates group IDs with their overrides.
type Map map[string]Override

// Load reads the override file at path. A missing file is not an error; it
// yields an empty map so runs work without any operator corrections.
func Load(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Map{}, nil
		}
		return nil, fmt.Errorf("reading overrides: %w", err)
	}

	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing overrides: %w", err)
	}
	if m == nil {
		m = Map{}
	}
	return m, nil
}
