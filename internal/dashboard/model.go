package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/phonebook/internal/book"
	"github.com/smileynet/phonebook/internal/contact"
)

// helpBarHeight is the number of lines reserved for the help bar at the bottom.
const helpBarHeight = 1

// statusBarHeight is the line above the help bar used for results and the search prompt.
const statusBarHeight = 1

// borderChrome is the number of lines consumed by top + bottom borders.
const borderChrome = 2

// Model is the root Bubble Tea model for the dashboard TUI.
type Model struct {
	dir    Directory
	mode   Mode
	focus  Focus
	width  int
	height int
	browse browseState
	search textinput.Model
	status string
	failed bool
	help   help.Model
}

// NewModel creates a dashboard Model over dir in browse mode with left-pane focus.
func NewModel(dir Directory) Model {
	ti := textinput.New()
	ti.Prompt = "phone: "
	ti.Placeholder = "10 digits"
	ti.CharLimit = contact.PhoneDigits

	return Model{
		dir:    dir,
		mode:   ModeBrowse,
		focus:  PaneLeft,
		browse: browseState{}.load(dir),
		search: ti,
		help:   help.New(),
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages with mode-based routing.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.mode == ModeSearch {
			return m.handleSearchKey(msg)
		}
		return m.handleKey(msg)
	}

	if m.mode == ModeSearch {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes browse mode keys.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		if m.focus == PaneLeft {
			m.focus = PaneRight
		} else {
			m.focus = PaneLeft
		}
	case "up", "k":
		m.browse = m.browse.move(-1)
	case "down", "j":
		m.browse = m.browse.move(1)
	case "/":
		m.mode = ModeSearch
		m.search.Reset()
		return m, m.search.Focus()
	case "x":
		m.deleteSelected()
	}
	return m, nil
}

// handleSearchKey processes keys while the phone prompt is open.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.closeSearch()
		return m, nil
	case "enter":
		number := strings.TrimSpace(m.search.Value())
		m.closeSearch()
		m.findByPhone(number)
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *Model) closeSearch() {
	m.mode = ModeBrowse
	m.search.Blur()
	m.search.Reset()
}

func (m *Model) findByPhone(number string) {
	name, ok := m.dir.FindByPhone(number)
	if !ok {
		m.setStatus(book.NoMatch, false)
		return
	}
	m.browse = m.browse.load(m.dir)
	m.browse, _ = m.browse.selectName(name)
	m.setStatus(fmt.Sprintf("%s has %s", name, number), false)
}

func (m *Model) deleteSelected() {
	r := m.browse.Selected()
	if r == nil {
		return
	}
	status, err := m.dir.Delete(r.Name())
	if err != nil {
		m.setStatus(err.Error(), true)
	} else {
		m.setStatus(fmt.Sprintf("%s: %s", status, r.Name()), false)
	}
	m.browse = m.browse.load(m.dir)
}

func (m *Model) setStatus(text string, failed bool) {
	m.status = text
	m.failed = failed
}

// contentHeight returns the usable height for pane content,
// accounting for border chrome, the status line and the help bar.
func (m Model) contentHeight() int {
	h := m.height - borderChrome - statusBarHeight - helpBarHeight
	if h < 1 {
		return 1
	}
	return h
}

// View renders the two-pane layout with status line and help bar.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	leftWidth, rightWidth := PaneWidths(m.width)
	contentHeight := m.contentHeight()

	var leftStyle, rightStyle lipgloss.Style
	if m.focus == PaneLeft {
		leftStyle = FocusedBorder()
		rightStyle = UnfocusedBorder()
	} else {
		leftStyle = UnfocusedBorder()
		rightStyle = FocusedBorder()
	}

	leftStyle = leftStyle.
		Width(leftWidth - borderChrome).
		Height(contentHeight)
	rightStyle = rightStyle.
		Width(rightWidth - borderChrome).
		Height(contentHeight)

	leftPane := leftStyle.Render(m.browse.View())
	rightPane := rightStyle.Render(detailView(m.browse.Selected()))
	panes := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
	helpView := m.help.View(HelpBindings(m.mode))

	return lipgloss.JoinVertical(lipgloss.Left, panes, m.statusView(), helpView)
}

func (m Model) statusView() string {
	if m.mode == ModeSearch {
		return m.search.View()
	}
	if m.failed {
		return errorText.Render(m.status)
	}
	return m.status
}
