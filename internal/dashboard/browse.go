package dashboard

import (
	"fmt"
	"strings"

	"github.com/smileynet/phonebook/internal/contact"
)

// CursorMarker is the prefix shown on the selected contact row.
const CursorMarker = "▸ "

// browseState holds the contact list snapshot and cursor for the left pane.
type browseState struct {
	records []*contact.Record
	cursor  int
}

// load takes a fresh snapshot from dir, keeping the cursor in range.
func (bs browseState) load(dir Directory) browseState {
	bs.records = dir.Records()
	if bs.cursor >= len(bs.records) {
		bs.cursor = len(bs.records) - 1
	}
	if bs.cursor < 0 {
		bs.cursor = 0
	}
	return bs
}

// move shifts the cursor by delta, wrapping at both ends.
func (bs browseState) move(delta int) browseState {
	n := len(bs.records)
	if n == 0 {
		return bs
	}
	bs.cursor = ((bs.cursor+delta)%n + n) % n
	return bs
}

// selectName moves the cursor to the named contact. Returns false if absent.
func (bs browseState) selectName(name string) (browseState, bool) {
	for i, r := range bs.records {
		if r.Name() == name {
			bs.cursor = i
			return bs, true
		}
	}
	return bs, false
}

// Selected returns the record under the cursor, or nil when the list is empty.
func (bs browseState) Selected() *contact.Record {
	if bs.cursor < 0 || bs.cursor >= len(bs.records) {
		return nil
	}
	return bs.records[bs.cursor]
}

// View renders the contact list.
func (bs browseState) View() string {
	if len(bs.records) == 0 {
		return mutedText.Render("No contacts")
	}

	var b strings.Builder
	for i, r := range bs.records {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i == bs.cursor {
			b.WriteString(CursorMarker)
		} else {
			b.WriteString("  ")
		}
		b.WriteString(r.Name())
		b.WriteString(" ")
		b.WriteString(countBadge.Render(fmt.Sprintf("(%d)", r.Len())))
	}
	return b.String()
}

// detailView renders one record for the right pane.
func detailView(r *contact.Record) string {
	if r == nil {
		return mutedText.Render("Select a contact")
	}

	var b strings.Builder
	b.WriteString(titleText.Render(r.Name()))
	b.WriteString("\n")
	phones := r.Phones()
	if len(phones) == 0 {
		b.WriteString("\n")
		b.WriteString(mutedText.Render("No phones"))
		return b.String()
	}
	for _, p := range phones {
		b.WriteString("\n  • ")
		b.WriteString(p.String())
	}
	return b.String()
}
