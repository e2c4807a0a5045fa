package classify

import (
	"regexp"
	"testing"
)

func TestCategory(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"high school group", "High School hangout every Friday", CategoryStudents},
		{"youth keyword", "Youth worship night", CategoryStudents},
		{"jr high with period", "Jr. High boys", CategoryStudents},
		{"college group", "A community for college and career folks", CategoryYoungAdult},
		{"young adults spelled out", "Young Adult dinner club", CategoryYoungAdult},
		{"twenties", "For anyone in their 20s", CategoryYoungAdult},
		{"students outrank young adult", "College students welcome", CategoryStudents},
		{"plain group", "A weekly gathering for neighbors", CategoryAdult},
		{"empty text", "", CategoryAdult},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Category(tt.text); got != tt.expected {
				t.Errorf("Category(%q) = %q, expected %q", tt.text, got, tt.expected)
			}
		})
	}
}

func TestDemographic(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"women keyword", "Women of the Word study", DemographicWomen},
		{"moms group", "Moms morning out", DemographicWomen},
		{"men keyword", "Men's breakfast on Saturdays", DemographicMen},
		{"iron sharpens", "Iron Sharpens East", DemographicMen},
		{"the forge", "Join The Forge this fall", DemographicMen},
		{"women outrank men", "Women and men study together", DemographicWomen},
		{"no match", "Open to everyone in the neighborhood", DemographicCoEd},
		{"empty text", "", DemographicCoEd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Demographic(tt.text); got != tt.expected {
				t.Errorf("Demographic(%q) = %q, expected %q", tt.text, got, tt.expected)
			}
		})
	}
}

// Both classifiers must return an enumerated value for any input.
func TestClassifiersNeverEmpty(t *testing.T) {
	inputs := []string{"", "   ", "123456", "random text with no keywords", "!!!"}

	validCategories := map[string]bool{CategoryAdult: true, CategoryYoungAdult: true, CategoryStudents: true}
	validDemographics := map[string]bool{DemographicCoEd: true, DemographicWomen: true, DemographicMen: true}

	for _, input := range inputs {
		if got := Category(input); !validCategories[got] {
			t.Errorf("Category(%q) = %q, not an enumerated value", input, got)
		}
		if got := Demographic(input); !validDemographics[got] {
			t.Errorf("Demographic(%q) = %q, not an enumerated value", input, got)
		}
	}
}

func TestExtractMeetingInfo(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected MeetingInfo
	}{
		{
			name:     "plural day with time range",
			text:     "Our group meets Wednesdays at 7-9pm",
			expected: MeetingInfo{Day: "Wednesdays", Time: "7-9pm", Plural: true},
		},
		{
			name:     "singular day no time",
			text:     "We gather on Tuesday evenings",
			expected: MeetingInfo{Day: "Tuesdays", Time: "", Plural: false},
		},
		{
			name:     "lowercase day",
			text:     "every friday at 6:30PM",
			expected: MeetingInfo{Day: "Fridays", Time: "6:30PM", Plural: false},
		},
		{
			name:     "full range with minutes",
			text:     "Saturdays 10:30am - 12:30pm at the annex",
			expected: MeetingInfo{Day: "Saturdays", Time: "10:30am-12:30pm", Plural: true},
		},
		{
			name:     "daily fallback",
			text:     "Prayer happens daily at 9am",
			expected: MeetingInfo{Day: "Daily", Time: "9am", Plural: false},
		},
		{
			name:     "weekday beats daily",
			text:     "Mondays, with daily check-ins",
			expected: MeetingInfo{Day: "Mondays", Time: "", Plural: true},
		},
		{
			name:     "nothing found",
			text:     "A group about nothing in particular",
			expected: MeetingInfo{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractMeetingInfo(tt.text)
			if got != tt.expected {
				t.Errorf("ExtractMeetingInfo(%q) = %+v, expected %+v", tt.text, got, tt.expected)
			}
		})
	}
}

func TestExtractTag(t *testing.T) {
	seasonPatterns := []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(Spring|Summer|Fall|Winter)\s*\d{4}\b`),
		regexp.MustCompile(`(?i)\b(Spring|Summer|Fall|Winter)\b`),
	}

	tests := []struct {
		name     string
		text     string
		fallback string
		expected string
	}{
		{"season with year preferred", "Starts Fall 2026, not this summer", "", "Fall"},
		{"bare season second pattern", "A summer kickball league", "", "summer"},
		{"fallback on no match", "No season here", "none", "none"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractTag(tt.text, seasonPatterns, tt.fallback); got != tt.expected {
				t.Errorf("ExtractTag(%q) = %q, expected %q", tt.text, got, tt.expected)
			}
		})
	}

	t.Run("whole match when no capture group", func(t *testing.T) {
		patterns := []*regexp.Regexp{regexp.MustCompile(`(?i)\bweekly\b`)}
		if got := ExtractTag("meets Weekly", patterns, ""); got != "Weekly" {
			t.Errorf("expected whole match %q, got %q", "Weekly", got)
		}
	})
}

func TestSummarizeAbout(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \n\t ", ""},
		{"first three sentences", " A. B. C. D.", "A. B. C."},
		{"fewer than three", "One sentence only.", "One sentence only."},
		{"collapses whitespace", "We  meet\nweekly. Bring   snacks. All are\twelcome. Extra.", "We meet weekly. Bring snacks. All are welcome."},
		{"no terminator returns whole text", "no punctuation at all", "no punctuation at all"},
		{"mixed terminators", "Really? Yes! Great. More.", "Really? Yes! Great."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SummarizeAbout(tt.input); got != tt.expected {
				t.Errorf("SummarizeAbout(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}
