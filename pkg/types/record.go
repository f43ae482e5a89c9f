package types

import (
	"fmt"
	"slices"
	"strings"
)

// Name identifies a contact and is the key of a Record in an AddressBook.
type Name string

// Record is one contact: a name and an ordered list of phone numbers.
// Duplicate numbers are allowed.
type Record struct {
	name   Name
	phones []Phone
}

// NewRecord creates a record with the given name and no phones.
func NewRecord(name string) *Record {
	return &Record{name: Name(name)}
}

// Name returns the record's key.
func (r *Record) Name() Name {
	return r.name
}

// Phones returns a copy of the record's phone numbers in insertion order.
func (r *Record) Phones() []Phone {
	return slices.Clone(r.phones)
}

// AddPhone validates raw and appends it to the record.
// Returns an error wrapping ErrInvalidPhone and leaves the record unchanged
// if raw is not a valid phone number.
func (r *Record) AddPhone(raw string) error {
	p, err := NewPhone(raw)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone removes the first phone equal to raw.
// raw is matched as-is, without validation.
// Returns an error wrapping ErrNotFound if no phone matches.
func (r *Record) RemovePhone(raw string) error {
	i := r.indexOf(raw)
	if i < 0 {
		return fmt.Errorf("phone %q: %w", raw, ErrNotFound)
	}
	r.phones = slices.Delete(r.phones, i, i+1)
	return nil
}

// EditPhone replaces the first phone equal to oldRaw with newRaw, keeping
// its position. Returns an error wrapping ErrNotFound if oldRaw is absent,
// or ErrInvalidPhone if newRaw is not valid; in both cases the record is
// unchanged.
func (r *Record) EditPhone(oldRaw, newRaw string) error {
	i := r.indexOf(oldRaw)
	if i < 0 {
		return fmt.Errorf("phone %q: %w", oldRaw, ErrNotFound)
	}
	p, err := NewPhone(newRaw)
	if err != nil {
		return err
	}
	r.phones[i] = p
	return nil
}

// FindPhone returns the first phone equal to raw. The boolean is false if
// there is no match.
func (r *Record) FindPhone(raw string) (Phone, bool) {
	i := r.indexOf(raw)
	if i < 0 {
		return Phone{}, false
	}
	return r.phones[i], true
}

func (r *Record) indexOf(raw string) int {
	return slices.IndexFunc(r.phones, func(p Phone) bool {
		return p.value == raw
	})
}

// String renders the record as "Contact name: <name>, phones: <p1>,<p2>".
func (r *Record) String() string {
	numbers := make([]string, len(r.phones))
	for i, p := range r.phones {
		numbers[i] = p.value
	}
	return fmt.Sprintf("Contact name: %s, phones: %s", r.name, strings.Join(numbers, ","))
}
