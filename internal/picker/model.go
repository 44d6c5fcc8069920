package picker

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// debounceInterval is the delay after the last keystroke before a fetch.
const debounceInterval = 100 * time.Millisecond

// pickerState represents the picker's state machine.
type pickerState int

const (
	stateIdle      pickerState = iota // Before the first fetch
	stateLoading                      // Fetch in progress
	stateLoaded                       // Items loaded (len > 0)
	stateEmpty                        // Fetch succeeded with 0 items
	stateError                        // Fetch failed
	stateCancelled                    // User cancelled (Esc / Ctrl+C)
)

// fetchDoneMsg is sent when an async Provider.Fetch completes.
type fetchDoneMsg struct {
	requestID uint64
	items     []Item
	err       error
}

// debounceMsg fires after the debounce timer expires.
type debounceMsg struct {
	id uint64
}

// initMsg triggers the first fetch through Update so state mutations are
// visible to the Bubble Tea runtime.
type initMsg struct{}

// Model is the Bubble Tea model for the icon picker.
type Model struct {
	state     pickerState
	items     []Item
	selection int // Index into items; -1 when empty
	query     string
	err       error

	requestID uint64 // Monotonic counter for stale detection
	provider  Provider

	width  int
	height int

	// result holds the selected icon id after Enter.
	result string

	// cancelFetch cancels the in-flight Provider.Fetch context.
	cancelFetch context.CancelFunc

	// debounceID tracks the latest debounce timer; only a matching
	// debounceMsg triggers a fetch.
	debounceID uint64
}

// NewModel creates a picker Model backed by provider.
func NewModel(provider Provider) Model {
	return Model{
		state:     stateIdle,
		selection: -1,
		provider:  provider,
	}
}

// Result returns the selected icon id, or "" if cancelled.
func (m Model) Result() string {
	return m.result
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return initMsg{} }
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case fetchDoneMsg:
		return m.handleFetchDone(msg)

	case debounceMsg:
		return m.handleDebounce(msg)

	case initMsg:
		cmd := m.startFetch()
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.state = stateCancelled
		m.cancelInflight()
		return m, tea.Quit

	case tea.KeyEnter:
		if m.selection >= 0 && m.selection < len(m.items) {
			m.result = m.items[m.selection].ID
		}
		m.cancelInflight()
		return m, tea.Quit

	case tea.KeyUp:
		if m.state != stateLoading && m.selection > 0 {
			m.selection--
		}
		return m, nil

	case tea.KeyDown:
		if m.state != stateLoading && m.selection < len(m.items)-1 {
			m.selection++
		}
		return m, nil

	case tea.KeyBackspace:
		if len(m.query) > 0 {
			m.query = m.query[:len(m.query)-1]
			cmd := m.startDebounce()
			return m, cmd
		}
		return m, nil

	case tea.KeyRunes, tea.KeySpace:
		m.query += string(msg.Runes)
		cmd := m.startDebounce()
		return m, cmd
	}

	return m, nil
}

func (m Model) handleFetchDone(msg fetchDoneMsg) (tea.Model, tea.Cmd) {
	// Discard stale responses.
	if msg.requestID != m.requestID {
		return m, nil
	}

	if msg.err != nil {
		m.state = stateError
		m.err = msg.err
		m.items = nil
		m.selection = -1
		return m, nil
	}

	m.items = msg.items
	if len(m.items) == 0 {
		m.state = stateEmpty
		m.selection = -1
	} else {
		m.state = stateLoaded
		m.clampSelection()
	}

	return m, nil
}

func (m Model) handleDebounce(msg debounceMsg) (tea.Model, tea.Cmd) {
	if msg.id != m.debounceID {
		return m, nil // Stale debounce timer
	}
	cmd := m.startFetch()
	return m, cmd
}

// startDebounce increments the debounce counter and schedules a tick.
func (m *Model) startDebounce() tea.Cmd {
	m.debounceID++
	id := m.debounceID
	return tea.Tick(debounceInterval, func(time.Time) tea.Msg {
		return debounceMsg{id: id}
	})
}

// startFetch cancels any in-flight fetch, increments requestID, and
// returns a tea.Cmd that calls the provider.
func (m *Model) startFetch() tea.Cmd {
	m.cancelInflight()
	m.requestID++
	m.state = stateLoading

	reqID := m.requestID
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelFetch = cancel

	req := Request{
		RequestID: reqID,
		Query:     m.query,
		Limit:     m.listHeight(),
	}

	p := m.provider
	return func() tea.Msg {
		resp, err := p.Fetch(ctx, req)
		if err != nil {
			return fetchDoneMsg{requestID: reqID, err: err}
		}
		return fetchDoneMsg{requestID: reqID, items: resp.Items}
	}
}

func (m *Model) cancelInflight() {
	if m.cancelFetch != nil {
		m.cancelFetch()
		m.cancelFetch = nil
	}
}

func (m *Model) clampSelection() {
	if len(m.items) == 0 {
		m.selection = -1
		return
	}
	if m.selection < 0 {
		m.selection = 0
	}
	if m.selection >= len(m.items) {
		m.selection = len(m.items) - 1
	}
}

// listHeight returns the number of visible list rows.
func (m Model) listHeight() int {
	// 1 row for the query line, 1 for status
	const chrome = 2
	h := m.height - chrome
	if h < 1 {
		h = 20 // Sensible default before first WindowSizeMsg
	}
	return h
}

// --- View rendering ---

var (
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	scoreStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	queryStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.viewContent())
	b.WriteRune('\n')
	b.WriteString(queryStyle.Render("> ") + m.query)
	return b.String()
}

func (m Model) viewContent() string {
	switch m.state {
	case stateIdle, stateLoading:
		return dimStyle.Render("Searching...")

	case stateEmpty:
		return dimStyle.Render("No matching icons")

	case stateError:
		msg := "Error"
		if m.err != nil {
			msg = fmt.Sprintf("Error: %s", m.err)
		}
		return errorStyle.Render(msg)

	case stateCancelled:
		return dimStyle.Render("Cancelled")

	case stateLoaded:
		return m.viewList()

	default:
		return ""
	}
}

func (m Model) viewList() string {
	var b strings.Builder
	maxItems := m.listHeight()
	for i, item := range m.items {
		if i >= maxItems {
			break
		}
		display := item.ID
		if m.width > 4 {
			display = Truncate(StripANSI(display), m.width-4)
		}

		if i == m.selection {
			b.WriteString(selectedStyle.Render("> " + display))
		} else {
			b.WriteString(normalStyle.Render("  " + display))
		}
		if item.Score != 0 {
			b.WriteString(scoreStyle.Render(fmt.Sprintf("  (%.2f)", item.Score)))
		}
		if i < len(m.items)-1 && i < maxItems-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}
