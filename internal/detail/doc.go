// Package detail enriches raw group records with text from their own pages.
//
// For each group the enricher renders the group's detail page and pulls two
// text blocks: the content under an "About" heading and the content under an
// upcoming/schedule/events heading. Both feed the classifiers with text the
// listing page never shows. Enrichment is strictly best-effort: a failed
// fetch leaves both blocks empty and never fails the run.
package detail
