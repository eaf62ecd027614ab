//go:build cgo

package main

import "github.com/dusk-indust/doctree/internal/store"

// openStore returns a KuzuDB-backed store: file-based when dbPath is set,
// in-memory otherwise.
func openStore(dbPath string) (store.Store, error) {
	if dbPath == "" {
		return store.NewKuzuStore()
	}
	return store.NewKuzuFileStore(dbPath)
}
