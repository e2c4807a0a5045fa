// Package server is the HTTP surface over the refresh pipeline.
//
// POST /api/refresh runs a refresh synchronously and returns the run log.
// GET /api/status, /api/sources, and /api/catalog are read-only views of the
// coordinator state, the configured source pages, and the published artifact.
package server
