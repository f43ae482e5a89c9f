// Package persist is the public entry point for saving and loading an
// AddressBook. It exposes the storage backends while keeping their
// implementation internal.
//
// Example:
//
//	book, err := persist.Load("addressbook.jsonl")
//	if err != nil {
//	    return err
//	}
//	rec := types.NewRecord("Olena")
//	if err := rec.AddPhone("0501234567"); err != nil {
//	    return err
//	}
//	book.AddRecord(rec)
//	return persist.Save(book, "addressbook.jsonl")
package persist

import (
	"github.com/mesh-intelligence/addressbook/internal/store"
	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// Backend saves and loads a whole AddressBook at a location.
type Backend = store.Backend

// NewBackend returns the backend for name (types.BackendJSONL or
// types.BackendSQLite).
func NewBackend(name string) (Backend, error) {
	return store.New(name)
}

// Save writes book to location in the default JSONL format. The previous
// content at location survives a failed Save.
func Save(book *types.AddressBook, location string) error {
	return store.JSONL{}.Save(book, location)
}

// Load reads a JSONL address book from location. A missing location yields
// an empty book; malformed content yields an error wrapping
// types.ErrCorruptData.
func Load(location string) (*types.AddressBook, error) {
	return store.JSONL{}.Load(location)
}
