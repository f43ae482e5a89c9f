package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// maxLineSize bounds a single JSONL record.
const maxLineSize = 1 << 20

// recordLine is the on-disk shape of one record. Unknown fields are
// ignored on load so newer files stay readable.
type recordLine struct {
	Name   string   `json:"name"`
	Phones []string `json:"phones"`
}

// JSONL stores an AddressBook as one JSON object per line.
type JSONL struct{}

// Save writes book to location using the temp-file, fsync, rename pattern.
func (JSONL) Save(book *types.AddressBook, location string) error {
	records := make([]json.RawMessage, 0, book.Len())
	for r := range book.All() {
		line := recordLine{Name: string(r.Name()), Phones: make([]string, 0)}
		for _, p := range r.Phones() {
			line.Phones = append(line.Phones, p.String())
		}
		data, err := json.Marshal(line)
		if err != nil {
			return fmt.Errorf("encoding record %q: %w", r.Name(), err)
		}
		records = append(records, data)
	}
	if err := ensureDir(location); err != nil {
		return err
	}
	return writeJSONL(location, records)
}

// Load reads the AddressBook at location. Blank lines are skipped; any
// other line that is not a valid record makes the whole file corrupt.
func (JSONL) Load(location string) (*types.AddressBook, error) {
	book := types.NewAddressBook()

	f, err := os.Open(location)
	if errors.Is(err, os.ErrNotExist) {
		return book, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", location, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		where := fmt.Sprintf("%s:%d", location, lineNo)
		var rec recordLine
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, corrupt(where, "%v", err)
		}
		r, err := restoreRecord(where, rec.Name, rec.Phones)
		if err != nil {
			return nil, err
		}
		book.AddRecord(r)
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, corrupt(fmt.Sprintf("%s:%d", location, lineNo+1), "line exceeds %d bytes", maxLineSize)
		}
		return nil, fmt.Errorf("scanning %s: %w", location, err)
	}
	return book, nil
}

// writeJSONL atomically writes records to path. The temp file lives in the
// same directory so the final rename does not cross filesystems.
func writeJSONL(path string, records []json.RawMessage) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".addressbook-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	fail := func(format string, err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf(format, err)
	}

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			return fail("writing record: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fail("writing newline: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fail("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
