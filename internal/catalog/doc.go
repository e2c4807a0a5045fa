// Package catalog builds the published catalog from enriched raw records.
//
// Every facet of a catalog entry resolves with the same precedence: manual
// override, then heuristic inference over the record's combined text, then a
// hardcoded default. Building is pure and order-preserving; no network access
// happens here.
package catalog
