// Package dashboard implements a two-pane TUI for browsing a contact book:
// names on the left, the selected record on the right.
package dashboard

import (
	"github.com/smileynet/phonebook/internal/book"
	"github.com/smileynet/phonebook/internal/contact"
)

// Mode represents the current dashboard input mode.
type Mode int

const (
	ModeBrowse Mode = iota // Moving through the contact list.
	ModeSearch             // Typing a phone number to look up.
)

// Focus represents which pane has keyboard focus.
type Focus int

const (
	PaneLeft  Focus = iota // Contact list has focus.
	PaneRight              // Record detail has focus.
)

// Directory is the view of the book the dashboard needs. *book.Book satisfies it.
// All calls happen on the Bubble Tea update goroutine.
type Directory interface {
	Records() []*contact.Record
	FindByPhone(number string) (string, bool)
	Delete(name string) (book.Status, error)
}

var _ Directory = (*book.Book)(nil)
