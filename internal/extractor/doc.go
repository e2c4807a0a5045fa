// Package extractor turns one listing page into raw group records.
//
// Two sources disagree on every listing page: the rendered DOM and the JSON
// API responses the page fetches while loading. The DOM is authoritative for
// membership (which groups appear on the page); the API responses carry
// structured fields the markup never exposes (raw tag lists, canonical
// schedule and location). The extractor intercepts the API traffic into a
// URL-keyed map, walks the fully rendered DOM for group links, and merges the
// two field-by-field, preferring API values. API entries never add groups.
package extractor
