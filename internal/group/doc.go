// Package group provides the types shared across the groups catalog pipeline.
//
// The group package defines the source page configuration, the raw records
// produced by the page extractor, and the classified catalog entries that make
// up the published catalog artifact. Raw record IDs are slugs derived from the
// last path segment of the group's URL; the same slug appearing under two
// different source pages yields two separate records by design.
package group
