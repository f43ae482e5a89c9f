package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// snapshot is a comparable view of a record.
type snapshot struct {
	Name   string
	Phones []string
}

func snapshotBook(book *types.AddressBook) []snapshot {
	out := make([]snapshot, 0, book.Len())
	for r := range book.All() {
		s := snapshot{Name: string(r.Name()), Phones: make([]string, 0)}
		for _, p := range r.Phones() {
			s.Phones = append(s.Phones, p.String())
		}
		out = append(out, s)
	}
	return out
}

// buildBook creates a book with n records; record i has i%4 phones.
func buildBook(t *testing.T, n int) *types.AddressBook {
	t.Helper()
	book := types.NewAddressBook()
	for i := range n {
		r := types.NewRecord(fmt.Sprintf("Contact %02d", i))
		for j := range i % 4 {
			require.NoError(t, r.AddPhone(fmt.Sprintf("050%03d%04d", i, j)))
		}
		book.AddRecord(r)
	}
	return book
}

func backends() map[string]Backend {
	return map[string]Backend{
		types.BackendJSONL:  JSONL{},
		types.BackendSQLite: SQLite{},
	}
}

func TestNew(t *testing.T) {
	b, err := New(types.BackendJSONL)
	require.NoError(t, err)
	assert.IsType(t, JSONL{}, b)

	b, err = New(types.BackendSQLite)
	require.NoError(t, err)
	assert.IsType(t, SQLite{}, b)

	_, err = New("postgres")
	require.ErrorIs(t, err, types.ErrBackendUnknown)

	_, err = New("")
	require.ErrorIs(t, err, types.ErrBackendEmpty)
}

func TestRoundTrip(t *testing.T) {
	for name, backend := range backends() {
		for _, n := range []int{0, 1, 50} {
			t.Run(fmt.Sprintf("%s/%d records", name, n), func(t *testing.T) {
				path := t.TempDir() + "/book." + name
				book := buildBook(t, n)

				require.NoError(t, backend.Save(book, path))
				loaded, err := backend.Load(path)
				require.NoError(t, err)

				assert.Equal(t, snapshotBook(book), snapshotBook(loaded))
				assert.Equal(t, book.String(), loaded.String())
			})
		}
	}
}

func TestRoundTripKeepsDuplicatePhonesAndOrder(t *testing.T) {
	for name, backend := range backends() {
		t.Run(name, func(t *testing.T) {
			path := t.TempDir() + "/book." + name
			book := types.NewAddressBook()
			for _, n := range []string{"Zoryana", "Andriy", "Mykola"} {
				r := types.NewRecord(n)
				require.NoError(t, r.AddPhone("0931112233"))
				require.NoError(t, r.AddPhone("0671112233"))
				require.NoError(t, r.AddPhone("0931112233"))
				book.AddRecord(r)
			}

			require.NoError(t, backend.Save(book, path))
			loaded, err := backend.Load(path)
			require.NoError(t, err)
			assert.Equal(t, snapshotBook(book), snapshotBook(loaded))
		})
	}
}

func TestSaveOverwritesPreviousContent(t *testing.T) {
	for name, backend := range backends() {
		t.Run(name, func(t *testing.T) {
			path := t.TempDir() + "/book." + name
			require.NoError(t, backend.Save(buildBook(t, 10), path))

			smaller := buildBook(t, 3)
			require.NoError(t, backend.Save(smaller, path))

			loaded, err := backend.Load(path)
			require.NoError(t, err)
			assert.Equal(t, snapshotBook(smaller), snapshotBook(loaded))
		})
	}
}

func TestSaveCreatesParentDirectory(t *testing.T) {
	for name, backend := range backends() {
		t.Run(name, func(t *testing.T) {
			path := t.TempDir() + "/nested/dir/book." + name
			require.NoError(t, backend.Save(buildBook(t, 2), path))

			loaded, err := backend.Load(path)
			require.NoError(t, err)
			assert.Equal(t, 2, loaded.Len())
		})
	}
}

func TestLoadMissingLocationReturnsEmptyBook(t *testing.T) {
	for name, backend := range backends() {
		t.Run(name, func(t *testing.T) {
			book, err := backend.Load(t.TempDir() + "/does-not-exist")
			require.NoError(t, err)
			require.NotNil(t, book)
			assert.Equal(t, 0, book.Len())
		})
	}
}

func TestLoadDirectoryIsIOError(t *testing.T) {
	for name, backend := range backends() {
		t.Run(name, func(t *testing.T) {
			_, err := backend.Load(t.TempDir())
			require.Error(t, err)
			assert.NotErrorIs(t, err, types.ErrCorruptData)
		})
	}
}
