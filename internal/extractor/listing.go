package extractor

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/radiantjxn/groups-catalog/internal/group"
)

// domCard is one group link found in the rendered markup, with the
// best-effort display fields scraped from its surrounding card.
type domCard struct {
	URL         string
	Slug        string
	Name        string
	ImageURL    string
	Description string
}

const cardContainerSelector = `[class*="card"], [class*="group-list"], li, article`

// parseListing walks the rendered listing markup and collects every anchor
// pointing at a group detail page, deduplicated by exact URL. A detail URL
// needs at least two path segments after the listing root (category plus
// slug); bare category links are navigation, not groups.
func parseListing(r io.Reader, pageURL string) ([]domCard, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing listing HTML: %w", err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parsing listing URL %q: %w", pageURL, err)
	}

	seen := make(map[string]bool)
	var cards []domCard

	doc.Find(`a[href*="/groups/"]`).Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		abs := resolveHref(base, href)
		if abs == "" || !isGroupDetailURL(abs) {
			return
		}
		if seen[abs] {
			return
		}
		seen[abs] = true

		card := a.Closest(cardContainerSelector)
		if card.Length() == 0 {
			card = a.Parent()
		}

		heading := card.Find("h2,h3,h4").First()
		if heading.Length() == 0 {
			heading = a.Find("h2,h3,h4").First()
		}
		img := card.Find("img").First()
		if img.Length() == 0 {
			img = a.Find("img").First()
		}

		imageURL := ""
		if src, ok := img.Attr("src"); ok {
			imageURL = resolveHref(base, src)
		}

		cards = append(cards, domCard{
			URL:         abs,
			Slug:        group.Slug(abs),
			Name:        strings.TrimSpace(heading.Text()),
			ImageURL:    imageURL,
			Description: strings.TrimSpace(card.Find("p").First().Text()),
		})
	})

	return cards, nil
}

// resolveHref resolves href against the page URL and strips the fragment.
func resolveHref(base *url.URL, href string) string {
	parsed, err := base.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	parsed.Fragment = ""
	return parsed.String()
}

// isGroupDetailURL reports whether the URL path has at least two segments
// after "/groups/".
func isGroupDetailURL(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	_, after, found := strings.Cut(parsed.Path, "/groups/")
	if !found {
		return false
	}
	segments := 0
	for _, part := range strings.Split(after, "/") {
		if part != "" {
			segments++
		}
	}
	return segments >= 2
}
