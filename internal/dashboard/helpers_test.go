package dashboard

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/phonebook/internal/book"
	"github.com/smileynet/phonebook/internal/contact"
)

// stripANSI removes ANSI escape sequences from a string.
func stripANSI(s string) string {
	var out []byte
	i := 0
	for i < len(s) {
		if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && (s[j] < 'A' || s[j] > 'Z') && (s[j] < 'a' || s[j] > 'z') {
				j++
			}
			if j < len(s) {
				j++
			}
			i = j
		} else {
			out = append(out, s[i])
			i++
		}
	}
	return string(out)
}

// containsPlainText checks if s contains sub after stripping ANSI escapes.
func containsPlainText(s, sub string) bool {
	return strings.Contains(stripANSI(s), sub)
}

// sampleBook returns John (two phones), Jane (one phone) and Bob (no phones).
func sampleBook(t *testing.T) *book.Book {
	t.Helper()
	b := book.New()
	add := func(name string, phones ...string) {
		r := contact.NewRecord(name)
		for _, p := range phones {
			if err := r.AddPhone(p); err != nil {
				t.Fatal(err)
			}
		}
		b.AddRecord(r)
	}
	add("John", "1234567890", "5555555555")
	add("Jane", "9876543210")
	add("Bob")
	return b
}

func newSizedModel(t *testing.T, dir Directory, w, h int) Model {
	t.Helper()
	m := NewModel(dir)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return updated.(Model)
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// press feeds keys to the model in order and returns the result.
func press(m Model, keys ...tea.KeyMsg) Model {
	for _, k := range keys {
		updated, _ := m.Update(k)
		m = updated.(Model)
	}
	return m
}

// typeText feeds s to the model one rune at a time.
func typeText(m Model, s string) Model {
	for _, r := range s {
		m = press(m, runeKey(r))
	}
	return m
}
