package dashboard

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"

	"github.com/smileynet/phonebook/internal/book"
	"github.com/smileynet/phonebook/internal/contact"
)

// failingDirectory wraps a book but refuses every delete.
type failingDirectory struct {
	*book.Book
}

func (failingDirectory) Delete(name string) (book.Status, error) {
	return "", errors.New("delete refused")
}

func TestNewModel_Defaults(t *testing.T) {
	m := NewModel(sampleBook(t))
	if m.mode != ModeBrowse {
		t.Errorf("mode = %d, want ModeBrowse (%d)", m.mode, ModeBrowse)
	}
	if m.focus != PaneLeft {
		t.Errorf("focus = %d, want PaneLeft (%d)", m.focus, PaneLeft)
	}
	if got := m.browse.Selected(); got == nil || got.Name() != "John" {
		t.Errorf("initial selection = %v, want John", got)
	}
}

func TestModel_InitializingView(t *testing.T) {
	m := NewModel(sampleBook(t))
	if m.View() != "Initializing..." {
		t.Errorf("View() before sizing = %q", m.View())
	}
}

func TestModel_TabTogglesFocus(t *testing.T) {
	m := newSizedModel(t, sampleBook(t), 90, 30)

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != PaneRight {
		t.Errorf("after first Tab: focus = %d, want PaneRight (%d)", m.focus, PaneRight)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != PaneLeft {
		t.Errorf("after second Tab: focus = %d, want PaneLeft (%d)", m.focus, PaneLeft)
	}
}

func TestModel_QuitKeys(t *testing.T) {
	for _, k := range []tea.KeyMsg{runeKey('q'), {Type: tea.KeyCtrlC}} {
		t.Run(k.String(), func(t *testing.T) {
			m := newSizedModel(t, sampleBook(t), 90, 30)

			_, cmd := m.Update(k)
			if cmd == nil {
				t.Fatal("expected a quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Errorf("command produced %T, want tea.QuitMsg", cmd())
			}
		})
	}
}

func TestModel_CursorMovesAndWraps(t *testing.T) {
	m := newSizedModel(t, sampleBook(t), 90, 30)

	tests := []struct {
		key  tea.KeyMsg
		want string
	}{
		{runeKey('j'), "Jane"},
		{tea.KeyMsg{Type: tea.KeyDown}, "Bob"},
		{runeKey('j'), "John"},
		{runeKey('k'), "Bob"},
		{tea.KeyMsg{Type: tea.KeyUp}, "Jane"},
	}
	for i, tt := range tests {
		m = press(m, tt.key)
		if got := m.browse.Selected().Name(); got != tt.want {
			t.Fatalf("step %d (%s): selected = %q, want %q", i, tt.key, got, tt.want)
		}
	}
}

func TestModel_View_ShowsListAndDetail(t *testing.T) {
	m := newSizedModel(t, sampleBook(t), 100, 30)

	view := m.View()

	for _, want := range []string{CursorMarker + "John", "Jane", "Bob", "(2)", "1234567890", "5555555555", "find by phone"} {
		if !containsPlainText(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_View_ContactWithoutPhones(t *testing.T) {
	m := newSizedModel(t, sampleBook(t), 100, 30)
	m = press(m, runeKey('j'), runeKey('j'))

	if !containsPlainText(m.View(), "No phones") {
		t.Error("detail for Bob should say No phones")
	}
}

func TestModel_View_EmptyBook(t *testing.T) {
	m := newSizedModel(t, book.New(), 100, 30)

	view := m.View()
	if !containsPlainText(view, "No contacts") {
		t.Error("empty list should say No contacts")
	}
	if !containsPlainText(view, "Select a contact") {
		t.Error("empty detail should prompt for a selection")
	}

	// Delete on an empty list is a no-op.
	m = press(m, runeKey('x'))
	if m.status != "" {
		t.Errorf("status = %q, want empty", m.status)
	}
}

func TestModel_SearchFindsContact(t *testing.T) {
	// Given the dashboard with John selected
	m := newSizedModel(t, sampleBook(t), 100, 30)

	// When searching for Jane's phone
	m = press(m, runeKey('/'))
	if m.mode != ModeSearch {
		t.Fatalf("mode = %d, want ModeSearch", m.mode)
	}
	m = typeText(m, "9876543210")
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})

	// Then Jane is selected and the status reports the match
	if m.mode != ModeBrowse {
		t.Errorf("mode = %d, want ModeBrowse after enter", m.mode)
	}
	if got := m.browse.Selected().Name(); got != "Jane" {
		t.Errorf("selected = %q, want Jane", got)
	}
	if m.status != "Jane has 9876543210" {
		t.Errorf("status = %q", m.status)
	}
}

func TestModel_SearchNoMatch(t *testing.T) {
	m := newSizedModel(t, sampleBook(t), 100, 30)

	m = press(m, runeKey('/'))
	m = typeText(m, "7418529635")
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.status != book.NoMatch {
		t.Errorf("status = %q, want %q", m.status, book.NoMatch)
	}
	if got := m.browse.Selected().Name(); got != "John" {
		t.Errorf("selection should not move on a miss, got %q", got)
	}
	if !containsPlainText(m.View(), book.NoMatch) {
		t.Error("view should show the no-match text")
	}
}

func TestModel_SearchEscCancels(t *testing.T) {
	m := newSizedModel(t, sampleBook(t), 100, 30)

	m = press(m, runeKey('/'))
	m = typeText(m, "123")
	if !containsPlainText(m.View(), "phone: 123") {
		t.Errorf("search prompt should show typed digits:\n%s", stripANSI(m.View()))
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.mode != ModeBrowse {
		t.Errorf("mode = %d, want ModeBrowse", m.mode)
	}
	if m.search.Value() != "" {
		t.Errorf("search value = %q, want cleared", m.search.Value())
	}
	if m.status != "" {
		t.Errorf("status = %q, want empty after cancel", m.status)
	}
}

func TestModel_SearchSwallowsBrowseKeys(t *testing.T) {
	m := newSizedModel(t, sampleBook(t), 100, 30)

	m = press(m, runeKey('/'))
	_, cmd := m.Update(runeKey('q'))
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Error("q while searching should not quit")
		}
	}
}

func TestModel_DeleteSelected(t *testing.T) {
	b := sampleBook(t)
	m := newSizedModel(t, b, 100, 30)

	m = press(m, runeKey('x'))

	if _, err := b.Find("John"); !errors.Is(err, book.ErrContactNotFound) {
		t.Errorf("John should be deleted from the book, Find error = %v", err)
	}
	if m.status != "Contact deleted: John" {
		t.Errorf("status = %q", m.status)
	}
	if got := m.browse.Selected().Name(); got != "Jane" {
		t.Errorf("selected after delete = %q, want Jane", got)
	}
}

func TestModel_DeleteLastRowClampsCursor(t *testing.T) {
	b := sampleBook(t)
	m := newSizedModel(t, b, 100, 30)

	m = press(m, runeKey('k'), runeKey('x'))

	if got := m.browse.Selected().Name(); got != "Jane" {
		t.Errorf("selected after deleting last row = %q, want Jane", got)
	}
}

func TestModel_DeleteFailureShowsError(t *testing.T) {
	m := newSizedModel(t, failingDirectory{sampleBook(t)}, 100, 30)

	m = press(m, runeKey('x'))

	if !m.failed || m.status != "delete refused" {
		t.Errorf("status = %q failed = %v, want refused error", m.status, m.failed)
	}
	if len(m.browse.records) != 3 {
		t.Errorf("records = %d, want 3", len(m.browse.records))
	}
}

func TestModel_HelpBarReflectsMode(t *testing.T) {
	m := newSizedModel(t, sampleBook(t), 120, 30)
	if !containsPlainText(m.View(), "delete") {
		t.Error("browse help should mention delete")
	}

	m = press(m, runeKey('/'))
	if !containsPlainText(m.View(), "cancel") {
		t.Error("search help should mention cancel")
	}
}

// TestModel_Teatest_DeleteAndQuit drives the model through a real program.
func TestModel_Teatest_DeleteAndQuit(t *testing.T) {
	b := sampleBook(t)
	tm := teatest.NewTestModel(t, NewModel(b), teatest.WithInitialTermSize(90, 24))

	tm.Send(runeKey('j'))
	tm.Send(runeKey('x'))
	tm.Send(runeKey('q'))

	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	final := tm.FinalModel(t).(Model)
	if final.status != "Contact deleted: Jane" {
		t.Errorf("status = %q, want Jane deleted", final.status)
	}
	names := b.Names()
	if len(names) != 2 || names[0] != "John" || names[1] != "Bob" {
		t.Errorf("book names = %v, want [John Bob]", names)
	}
}

func TestDetailView(t *testing.T) {
	r := contact.NewRecord("John")
	if err := r.AddPhone("1234567890"); err != nil {
		t.Fatal(err)
	}

	got := stripANSI(detailView(r))
	if !containsPlainText(got, "John") || !containsPlainText(got, "• 1234567890") {
		t.Errorf("detailView() = %q", got)
	}
}
