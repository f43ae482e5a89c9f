// Package store persists an AddressBook to durable storage.
//
// Two backends are provided: JSONL (one JSON record per line, written
// atomically through a temp file and rename) and SQLite. Both report a
// missing location as an empty book, unreadable contents as
// types.ErrCorruptData, and filesystem failures as plain wrapped errors so
// callers can tell the three apart.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// Backend saves and loads a whole AddressBook at a location.
type Backend interface {
	// Save writes every record in book to location, replacing any
	// previous content. A failed Save leaves the previous content intact.
	Save(book *types.AddressBook, location string) error

	// Load reads the AddressBook stored at location. A missing location
	// yields an empty book. Contents that do not match the expected shape
	// yield an error wrapping types.ErrCorruptData.
	Load(location string) (*types.AddressBook, error)
}

// New returns the backend registered under name.
// Returns an error wrapping types.ErrBackendUnknown for unrecognized names.
func New(name string) (Backend, error) {
	switch name {
	case types.BackendJSONL:
		return JSONL{}, nil
	case types.BackendSQLite:
		return SQLite{}, nil
	case "":
		return nil, types.ErrBackendEmpty
	default:
		return nil, fmt.Errorf("%q: %w", name, types.ErrBackendUnknown)
	}
}

// ensureDir creates the directory that will hold location.
func ensureDir(location string) error {
	dir := filepath.Dir(location)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}

// corrupt wraps a decoding problem at location as types.ErrCorruptData.
func corrupt(location, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", location, fmt.Sprintf(format, args...), types.ErrCorruptData)
}

// restoreRecord rebuilds a record from stored values, validating every
// phone. An invalid phone is reported as corrupt data.
func restoreRecord(location, name string, phones []string) (*types.Record, error) {
	if name == "" {
		return nil, corrupt(location, "record with empty name")
	}
	r := types.NewRecord(name)
	for _, p := range phones {
		if err := r.AddPhone(p); err != nil {
			return nil, corrupt(location, "record %q: %v", name, err)
		}
	}
	return r, nil
}
