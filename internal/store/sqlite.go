package store

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// sqliteHeader is the magic string at the start of every SQLite database.
var sqliteHeader = []byte("SQLite format 3\x00")

// Schema DDL. Positions keep insertion order for contacts and phones.
const (
	createContacts = `CREATE TABLE IF NOT EXISTS contacts (
    contact_id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    position INTEGER NOT NULL
);`

	createPhones = `CREATE TABLE IF NOT EXISTS phones (
    contact_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    number TEXT NOT NULL,
    PRIMARY KEY (contact_id, position),
    FOREIGN KEY (contact_id) REFERENCES contacts(contact_id) ON DELETE CASCADE
);`

	selectBook = `SELECT c.name, p.number
FROM contacts c
LEFT JOIN phones p ON p.contact_id = c.contact_id
ORDER BY c.position, p.position`
)

// SQLite stores an AddressBook in a SQLite database file.
type SQLite struct{}

// Save replaces every row in the database at location inside a single
// transaction, so a failed Save leaves the previous rows in place.
func (SQLite) Save(book *types.AddressBook, location string) error {
	if err := ensureDir(location); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", location)
	if err != nil {
		return fmt.Errorf("opening %s: %w", location, err)
	}
	defer db.Close()

	for _, ddl := range []string{createContacts, createPhones} {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning save transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM phones"); err != nil {
		return fmt.Errorf("clearing phones: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM contacts"); err != nil {
		return fmt.Errorf("clearing contacts: %w", err)
	}

	contactStmt, err := tx.Prepare("INSERT INTO contacts (contact_id, name, position) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing contact insert: %w", err)
	}
	defer contactStmt.Close()

	phoneStmt, err := tx.Prepare("INSERT INTO phones (contact_id, position, number) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing phone insert: %w", err)
	}
	defer phoneStmt.Close()

	pos := 0
	for r := range book.All() {
		id := newContactID()
		if _, err := contactStmt.Exec(id, string(r.Name()), pos); err != nil {
			return fmt.Errorf("inserting contact %q: %w", r.Name(), err)
		}
		for i, p := range r.Phones() {
			if _, err := phoneStmt.Exec(id, i, p.String()); err != nil {
				return fmt.Errorf("inserting phone for %q: %w", r.Name(), err)
			}
		}
		pos++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save transaction: %w", err)
	}
	return nil
}

// Load reads the AddressBook from the database at location. A missing or
// zero-length file yields an empty book.
func (SQLite) Load(location string) (*types.AddressBook, error) {
	ok, err := checkSQLiteFile(location)
	if err != nil {
		return nil, err
	}
	if !ok {
		return types.NewAddressBook(), nil
	}

	db, err := sql.Open("sqlite", location)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", location, err)
	}
	defer db.Close()

	rows, err := db.Query(selectBook)
	if err != nil {
		return nil, corrupt(location, "querying contacts: %v", err)
	}
	defer rows.Close()

	var (
		names  []string
		phones = make(map[string][]string)
	)
	for rows.Next() {
		var name string
		var number sql.NullString
		if err := rows.Scan(&name, &number); err != nil {
			return nil, corrupt(location, "scanning contact: %v", err)
		}
		if _, seen := phones[name]; !seen {
			names = append(names, name)
			phones[name] = nil
		}
		if number.Valid {
			phones[name] = append(phones[name], number.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, corrupt(location, "reading contacts: %v", err)
	}

	book := types.NewAddressBook()
	for _, name := range names {
		r, err := restoreRecord(location, name, phones[name])
		if err != nil {
			return nil, err
		}
		book.AddRecord(r)
	}
	return book, nil
}

// checkSQLiteFile reports whether location holds data to load. It returns
// false for a missing or empty file, and ErrCorruptData when the file does
// not start with the SQLite header.
func checkSQLiteFile(location string) (bool, error) {
	f, err := os.Open(location)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("opening %s: %w", location, err)
	}
	defer f.Close()

	header := make([]byte, len(sqliteHeader))
	n, err := io.ReadFull(f, header)
	switch {
	case n == 0 && errors.Is(err, io.EOF):
		return false, nil
	case errors.Is(err, io.ErrUnexpectedEOF):
		return false, corrupt(location, "truncated database header")
	case err != nil:
		return false, fmt.Errorf("reading %s: %w", location, err)
	}
	if !bytes.Equal(header, sqliteHeader) {
		return false, corrupt(location, "not a SQLite database")
	}
	return true, nil
}

// newContactID generates a UUID v7 string for a contact row.
func newContactID() string {
	return uuid.Must(uuid.NewV7()).String()
}
