package types

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// AddressBook is a keyed store of Records. It holds at most one Record per
// Name and remembers the order in which names were first added.
type AddressBook struct {
	records map[Name]*Record
	order   []Name
}

// NewAddressBook returns an empty address book.
func NewAddressBook() *AddressBook {
	return &AddressBook{records: make(map[Name]*Record)}
}

// AddRecord stores r under its name. A record already stored under the
// same name is replaced wholesale, keeping its position; phones are not
// merged.
func (b *AddressBook) AddRecord(r *Record) {
	if _, ok := b.records[r.name]; !ok {
		b.order = append(b.order, r.name)
	}
	b.records[r.name] = r
}

// Find returns the record stored under name. The boolean is false if
// there is none.
func (b *AddressBook) Find(name string) (*Record, bool) {
	r, ok := b.records[Name(name)]
	return r, ok
}

// Delete removes the record stored under name.
// Returns an error wrapping ErrNotFound if there is none.
func (b *AddressBook) Delete(name string) error {
	key := Name(name)
	if _, ok := b.records[key]; !ok {
		return fmt.Errorf("record %q: %w", name, ErrNotFound)
	}
	delete(b.records, key)
	b.order = slices.DeleteFunc(b.order, func(n Name) bool { return n == key })
	return nil
}

// All yields every record in insertion order. Each iteration reads the
// book's current contents.
func (b *AddressBook) All() iter.Seq[*Record] {
	return func(yield func(*Record) bool) {
		for _, name := range b.order {
			if !yield(b.records[name]) {
				return
			}
		}
	}
}

// Records returns the records in insertion order as a new slice.
func (b *AddressBook) Records() []*Record {
	return slices.Collect(b.All())
}

// Len returns the number of records.
func (b *AddressBook) Len() int {
	return len(b.order)
}

// String renders every record on its own line, in insertion order.
func (b *AddressBook) String() string {
	lines := make([]string, 0, len(b.order))
	for r := range b.All() {
		lines = append(lines, r.String())
	}
	return strings.Join(lines, "\n")
}
