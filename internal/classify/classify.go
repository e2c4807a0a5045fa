package classify

import (
	"regexp"
	"strings"
)

// Category values published in catalog entries.
const (
	CategoryAdult      = "Adult"
	CategoryYoungAdult = "Young Adult"
	CategoryStudents   = "Students"
)

// Demographic values published in catalog entries.
const (
	DemographicCoEd  = "Co-Ed"
	DemographicWomen = "Women's"
	DemographicMen   = "Men's"
)

// rule pairs a pattern with the facet value it selects.
type rule struct {
	pattern *regexp.Regexp
	value   string
}

var categoryRules = []rule{
	{regexp.MustCompile(`(?i)\b(student|middle\s*school|high\s*school|teen|youth|jr\.?\s*high|sr\.?\s*high)\b`), CategoryStudents},
	{regexp.MustCompile(`(?i)\b(young\s*adult|college|18[\s-]*25|20s|ya\b|young\s*professional|forge)\b`), CategoryYoungAdult},
}

var demographicRules = []rule{
	{regexp.MustCompile(`(?i)\b(women|woman|ladies|moms|mothers|her|she|girls|gals|sisterhood)\b`), DemographicWomen},
	{regexp.MustCompile(`(?i)\b(men|man|guys|dads|fathers|brothers|brotherhood)\b|\biron[-\s]+sharpens?\b|\bthe\s+forge\b|\bwho\s+is\s+your\b`), DemographicMen},
}

// Category classifies the age bracket of a group from its combined text.
// Falls back to Adult when no rule matches.
func Category(text string) string {
	return firstMatch(categoryRules, text, CategoryAdult)
}

// Demographic classifies who a group is for. Falls back to Co-Ed.
func Demographic(text string) string {
	return firstMatch(demographicRules, text, DemographicCoEd)
}

func firstMatch(rules []rule, text, fallback string) string {
	for _, r := range rules {
		if r.pattern.MatchString(text) {
			return r.value
		}
	}
	return fallback
}

var (
	dayPattern = regexp.MustCompile(`(?i)\b(Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)(s?)\b`)
	// Matches "7-9pm", "6:30PM", "10:30am-12:30pm", "9am". In a range the
	// leading component may omit its am/pm marker.
	timePattern  = regexp.MustCompile(`(?i)\b(\d{1,2}(?::\d{2})?\s*(?:am|pm)?\s*[-–]\s*\d{1,2}(?::\d{2})?\s*(?:am|pm)|\d{1,2}(?::\d{2})?\s*(?:am|pm))\b`)
	dailyPattern = regexp.MustCompile(`(?i)\bdaily\b`)
	spacePattern = regexp.MustCompile(`\s+`)
)

// MeetingInfo is the schedule information recovered from free text.
type MeetingInfo struct {
	Day    string
	Time   string
	Plural bool
}

// ExtractMeetingInfo finds the first weekday name and time-of-day token in the
// text. Weekdays are normalized to their plural display form ("Monday" and
// "Mondays" both store as "Mondays"); Plural reports whether the source text
// already used the plural. When no weekday matches but the word "daily"
// appears, Day is "Daily".
func ExtractMeetingInfo(text string) MeetingInfo {
	var info MeetingInfo

	if m := dayPattern.FindStringSubmatch(text); m != nil {
		day := strings.ToUpper(m[1][:1]) + strings.ToLower(m[1][1:])
		info.Day = day + "s"
		info.Plural = strings.EqualFold(m[2], "s")
	} else if dailyPattern.MatchString(text) {
		info.Day = "Daily"
	}

	if m := timePattern.FindStringSubmatch(text); m != nil {
		info.Time = spacePattern.ReplaceAllString(m[1], "")
	}

	return info
}

// ExtractTag tries each pattern in order and returns the first capture group
// (or the whole match when the pattern has no non-empty group) of the first
// pattern that matches. Returns fallback when none match.
func ExtractTag(text string, patterns []*regexp.Regexp, fallback string) string {
	for _, p := range patterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if len(m) > 1 && m[1] != "" {
			return m[1]
		}
		return m[0]
	}
	return fallback
}

var sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]+`)

// SummarizeAbout collapses whitespace in an About section and returns its
// first three sentences. Empty input yields empty output; text without
// sentence terminators is returned whole.
func SummarizeAbout(aboutText string) string {
	cleaned := strings.TrimSpace(spacePattern.ReplaceAllString(aboutText, " "))
	if cleaned == "" {
		return ""
	}

	sentences := sentencePattern.FindAllString(cleaned, -1)
	if sentences == nil {
		return cleaned
	}
	if len(sentences) > 3 {
		sentences = sentences[:3]
	}
	for i, s := range sentences {
		sentences[i] = strings.TrimSpace(s)
	}
	return strings.Join(sentences, " ")
}
