// Package refresh coordinates full catalog rebuild runs.
//
// A run renders every configured source page in a shared headless browser,
// enriches each discovered group from its detail page, classifies the results,
// and publishes a new catalog. The coordinator admits at most one run at a
// time and enforces a cooldown between successful runs.
package refresh
