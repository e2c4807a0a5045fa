package extractor

import (
	"os"
	"strings"
	"testing"
)

const listingPageURL = "https://radiantjxn.churchcenter.com/groups/grow"

func loadListingFixture(t *testing.T) []domCard {
	t.Helper()

	data, err := os.ReadFile("../../testdata/fixtures/listing_page.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	cards, err := parseListing(strings.NewReader(string(data)), listingPageURL)
	if err != nil {
		t.Fatalf("parseListing failed: %v", err)
	}
	return cards
}

func TestParseListing(t *testing.T) {
	cards := loadListingFixture(t)

	// 4 distinct detail URLs: the two bare category links are navigation and
	// the duplicate women-of-the-word anchor collapses.
	if len(cards) != 4 {
		t.Fatalf("expected 4 cards, got %d: %+v", len(cards), cards)
	}

	bySlug := make(map[string]domCard)
	for _, c := range cards {
		bySlug[c.Slug] = c
	}

	iron, ok := bySlug["iron-sharpens-east"]
	if !ok {
		t.Fatal("expected iron-sharpens-east card")
	}
	if iron.Name != "Iron Sharpens East" {
		t.Errorf("name = %q", iron.Name)
	}
	if iron.URL != "https://radiantjxn.churchcenter.com/groups/grow/iron-sharpens-east" {
		t.Errorf("relative href not resolved: %q", iron.URL)
	}
	if iron.ImageURL != "https://radiantjxn.churchcenter.com/images/iron-east.jpg" {
		t.Errorf("relative image src not resolved: %q", iron.ImageURL)
	}
	if iron.Description != "Men sharpening men on the east side." {
		t.Errorf("description = %q", iron.Description)
	}

	mystery, ok := bySlug["mystery-group"]
	if !ok {
		t.Fatal("expected mystery-group card (dropping happens at merge, not parse)")
	}
	if mystery.Name != "" {
		t.Errorf("expected empty name for heading-less card, got %q", mystery.Name)
	}
	if mystery.ImageURL != "https://cdn.example.com/mystery.jpg" {
		t.Errorf("absolute image src should pass through: %q", mystery.ImageURL)
	}

	dinner, ok := bySlug["young-adults-dinner"]
	if !ok {
		t.Fatal("expected young-adults-dinner card")
	}
	if !strings.HasSuffix(dinner.URL, "young-adults-dinner?source=home") {
		t.Errorf("query string should survive in URL: %q", dinner.URL)
	}
}

func TestIsGroupDetailURL(t *testing.T) {
	tests := []struct {
		url      string
		expected bool
	}{
		{"https://example.churchcenter.com/groups/grow/iron-sharpens-east", true},
		{"https://example.churchcenter.com/groups/grow", false},
		{"https://example.churchcenter.com/groups/", false},
		{"https://example.churchcenter.com/registrations/signup", false},
		{"https://example.churchcenter.com/groups/go/serve/summer", true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := isGroupDetailURL(tt.url); got != tt.expected {
				t.Errorf("isGroupDetailURL(%q) = %v, expected %v", tt.url, got, tt.expected)
			}
		})
	}
}
