//go:build !cgo

package main

import "github.com/dusk-indust/doctree/internal/store"

// openStore falls back to the in-memory store when the KuzuDB driver is
// unavailable. dbPath is ignored; nothing persists across runs.
func openStore(_ string) (store.Store, error) {
	return store.NewMemStore(), nil
}
