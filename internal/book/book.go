// Package book implements the contact directory: records keyed by contact name.
package book

import (
	"errors"
	"fmt"

	"github.com/smileynet/phonebook/internal/contact"
)

// ErrContactNotFound indicates a direct lookup or delete of a name the book does not hold.
var ErrContactNotFound = errors.New("book: contact not found")

// NoMatch is the display text for a FindByPhone soft miss.
const NoMatch = "No contact found with this phone number"

// Status is the result indicator of a successful or recoverable directory mutation.
type Status string

const (
	StatusAdded   Status = "Contact added"
	StatusExists  Status = "User already exists"
	StatusDeleted Status = "Contact deleted"
)

// Book maps contact names to records. Iteration follows insertion order.
// Not safe for concurrent use.
type Book struct {
	records map[string]*contact.Record
	order   []string
}

// New creates an empty book.
func New() *Book {
	return &Book{records: make(map[string]*contact.Record)}
}

// AddRecord stores r under its name. If the name is taken the book is left
// untouched and StatusExists is returned.
func (b *Book) AddRecord(r *contact.Record) Status {
	if r == nil {
		panic("book: AddRecord called with nil record")
	}
	name := r.Name()
	if _, ok := b.records[name]; ok {
		return StatusExists
	}
	b.records[name] = r
	b.order = append(b.order, name)
	return StatusAdded
}

// Find returns the record stored under name.
func (b *Book) Find(name string) (*contact.Record, error) {
	r, ok := b.records[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrContactNotFound, name)
	}
	return r, nil
}

// FindByPhone returns the name of the first record holding number.
// A miss returns ("", false), not an error.
func (b *Book) FindByPhone(number string) (string, bool) {
	for _, name := range b.order {
		if _, ok := b.records[name].FindPhone(number); ok {
			return name, true
		}
	}
	return "", false
}

// Delete removes the record stored under name.
func (b *Book) Delete(name string) (Status, error) {
	if _, ok := b.records[name]; !ok {
		return "", fmt.Errorf("%w: %q", ErrContactNotFound, name)
	}
	delete(b.records, name)
	for i, n := range b.order {
		if n == name {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return StatusDeleted, nil
}

// Len returns the number of records.
func (b *Book) Len() int {
	return len(b.order)
}

// Names returns contact names in insertion order.
func (b *Book) Names() []string {
	return append([]string(nil), b.order...)
}

// Records returns the records in insertion order. The records themselves are
// shared with the book; the slice is not.
func (b *Book) Records() []*contact.Record {
	out := make([]*contact.Record, len(b.order))
	for i, name := range b.order {
		out[i] = b.records[name]
	}
	return out
}
