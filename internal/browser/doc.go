// Package browser wraps the headless Chrome plumbing shared by the page
// extractor and the detail enricher.
//
// A Session is one browser tab created from a shared exec allocator. Listing
// pages get a fresh tab each; detail fetches reuse a single tab for the whole
// run. The package also provides CDP network interception so JSON responses
// observed while a page renders can be collected into the extractor's API map.
package browser
