package cli

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// load reads the address book from the configured data file.
func (a *app) load() (*types.AddressBook, error) {
	book, err := a.store.Load(a.config.DataFile)
	if err != nil {
		return nil, systemErr(fmt.Errorf("load address book: %w", err))
	}
	a.logger.Debug("address book loaded",
		zap.String("data_file", a.config.DataFile),
		zap.Int("records", book.Len()),
	)
	return book, nil
}

// save writes the address book to the configured data file.
func (a *app) save(book *types.AddressBook) error {
	if err := a.store.Save(book, a.config.DataFile); err != nil {
		return systemErr(fmt.Errorf("save address book: %w", err))
	}
	a.logger.Debug("address book saved",
		zap.String("data_file", a.config.DataFile),
		zap.Int("records", book.Len()),
	)
	return nil
}

// mutate loads the book, applies fn, and saves the result if fn succeeds.
func (a *app) mutate(fn func(book *types.AddressBook) error) error {
	book, err := a.load()
	if err != nil {
		return err
	}
	if err := fn(book); err != nil {
		return err
	}
	return a.save(book)
}

// addContact creates a record for name with phones and stores it,
// replacing any record with the same name. Nothing is stored if any phone
// is invalid.
func addContact(book *types.AddressBook, name string, phones ...string) (*types.Record, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, types.ErrInvalidName
	}
	r := types.NewRecord(name)
	for _, p := range phones {
		if err := r.AddPhone(strings.TrimSpace(p)); err != nil {
			return nil, err
		}
	}
	book.AddRecord(r)
	return r, nil
}

// findRecord looks up name and reports absence as ErrNotFound.
func findRecord(book *types.AddressBook, name string) (*types.Record, error) {
	r, ok := book.Find(strings.TrimSpace(name))
	if !ok {
		return nil, fmt.Errorf("record %q: %w", name, types.ErrNotFound)
	}
	return r, nil
}

// addPhone appends phone to the existing record for name.
func addPhone(book *types.AddressBook, name, phone string) (*types.Record, error) {
	r, err := findRecord(book, name)
	if err != nil {
		return nil, err
	}
	if err := r.AddPhone(strings.TrimSpace(phone)); err != nil {
		return nil, err
	}
	return r, nil
}

// editPhone replaces oldPhone with newPhone on the record for name.
func editPhone(book *types.AddressBook, name, oldPhone, newPhone string) (*types.Record, error) {
	r, err := findRecord(book, name)
	if err != nil {
		return nil, err
	}
	if err := r.EditPhone(strings.TrimSpace(oldPhone), strings.TrimSpace(newPhone)); err != nil {
		return nil, err
	}
	return r, nil
}

// removePhone removes phone from the record for name. Phone arguments are
// trimmed the same way addContact trims them.
func removePhone(book *types.AddressBook, name, phone string) (*types.Record, error) {
	r, err := findRecord(book, name)
	if err != nil {
		return nil, err
	}
	if err := r.RemovePhone(strings.TrimSpace(phone)); err != nil {
		return nil, err
	}
	return r, nil
}

// generateContact adds a random contact from gen to book.
func generateContact(book *types.AddressBook, gen contactGenerator) (*types.Record, error) {
	name, phone, err := gen.Generate()
	if err != nil {
		return nil, err
	}
	return addContact(book, name, phone)
}

// contactGenerator is satisfied by *fake.Generator.
type contactGenerator interface {
	Generate() (name, phone string, err error)
}

// deleteContact removes the record for name.
func deleteContact(book *types.AddressBook, name string) error {
	return book.Delete(strings.TrimSpace(name))
}
