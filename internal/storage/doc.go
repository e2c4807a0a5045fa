// Package storage provides JSON-based persistence for the published catalog.
//
// The catalog lives in a single catalog.json under the data directory. Saves
// go through a temp file and an atomic rename so a concurrent reader always
// sees either the previous catalog or the new one, never a partial write.
package storage
