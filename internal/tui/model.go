package tui

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"searchui/internal/domain"
	"searchui/internal/session"
	"searchui/internal/upload"
)

// Options tunes the root model.
type Options struct {
	Logger *log.Logger
	// ResultLimit caps rendered cards; 0 shows every result.
	ResultLimit int
	// BaseURL is only displayed in the header.
	BaseURL string
}

type focusArea int

const (
	focusSearch focusArea = iota
	focusUpload
)

// Model is the Bubble Tea model for the search screen. It is the only owner
// of application state; every backend call runs as a tea.Cmd and reports
// back through Update.
type Model struct {
	backend domain.Backend
	logger  *log.Logger
	keys    keyMap
	help    help.Model

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	upload   uploadPanel
	focus    focusArea

	state     session.State
	lastQuery string
	cursor    int
	limit     int
	baseURL   string

	// notice is the blocking alert text; while set, all other input is ignored.
	notice string
	// cancel aborts the in-flight search, if any.
	cancel context.CancelFunc

	width  int
	height int
	ready  bool
}

// New creates a new TUI model instance.
func New(backend domain.Backend, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Search anything..."
	ti.Focus()
	ti.CharLimit = 0

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	limit := opts.ResultLimit
	if limit < 0 {
		limit = 0
	}
	return Model{
		backend:  backend,
		logger:   logger.WithPrefix("tui"),
		keys:     defaultKeyMap(),
		help:     help.New(),
		input:    ti,
		viewport: viewport.New(0, 0),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		upload:   newUploadPanel(),
		limit:    limit,
		baseURL:  opts.BaseURL,
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and backend events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case searchDoneMsg:
		return m.handleSearchDone(msg), nil

	case uploadDoneMsg:
		return m.handleUploadDone(msg), nil

	case spinner.TickMsg:
		if !m.state.Loading() && !m.upload.control.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	if m.focus == focusUpload {
		m.upload.input, cmd = m.upload.input.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.cancelInflight()
		return m, tea.Quit
	}
	if m.notice != "" {
		if key.Matches(msg, m.keys.Dismiss) {
			m.notice = ""
		}
		return m, nil
	}
	if key.Matches(msg, m.keys.Upload) {
		return m.toggleUpload()
	}
	if m.focus == focusUpload {
		return m.handleUploadKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submitSearch()
	case key.Matches(msg, m.keys.Down):
		if n := m.visibleCount(); n > 0 {
			m.cursor = (m.cursor + 1) % n
			m.refreshResults()
		}
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if n := m.visibleCount(); n > 0 {
			m.cursor = (m.cursor - 1 + n) % n
			m.refreshResults()
		}
		return m, nil
	case key.Matches(msg, m.keys.PageUp, m.keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitSearch validates the query before entering Loading. The query is
// sent as typed; the client lower-cases it.
func (m Model) submitSearch() (tea.Model, tea.Cmd) {
	query := m.input.Value()
	next, gen, ok := m.state.Submit(query)
	if !ok {
		return m, nil
	}
	m.cancelInflight()
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.state = next
	m.lastQuery = query
	m.cursor = 0
	m.logger.Debug("search submitted", "gen", gen, "query", query)
	m.refreshResults()
	return m, tea.Batch(searchCmd(ctx, m.backend, gen, query), m.spinner.Tick)
}

func (m Model) handleSearchDone(msg searchDoneMsg) Model {
	var applied bool
	if msg.err != nil {
		m.state, applied = m.state.Fail(msg.gen)
	} else {
		m.state, applied = m.state.Resolve(msg.gen, msg.results)
	}
	if !applied {
		m.logger.Debug("discarding stale search response", "gen", msg.gen, "current", m.state.Generation())
		return m
	}
	if msg.err != nil {
		m.logger.Error("search failed", "gen", msg.gen, "query", msg.query, "err", msg.err)
	} else {
		m.logger.Info("search complete", "gen", msg.gen, "results", len(msg.results))
	}
	m.cancelInflight()
	m.cursor = 0
	m.viewport.GotoTop()
	m.refreshResults()
	return m
}

func (m Model) toggleUpload() (tea.Model, tea.Cmd) {
	if m.upload.control.Busy() {
		return m, nil
	}
	if m.upload.open {
		m.closeUpload()
		return m, nil
	}
	m.upload.open = true
	m.focus = focusUpload
	m.input.Blur()
	cmd := m.upload.input.Focus()
	m.layout()
	return m, cmd
}

func (m *Model) closeUpload() {
	m.upload.open = false
	m.upload.input.Blur()
	m.focus = focusSearch
	m.input.Focus()
	m.layout()
}

func (m Model) handleUploadKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		if !m.upload.control.Busy() {
			m.closeUpload()
		}
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		path := m.upload.input.Value()
		cmd, notice := m.upload.submit(context.Background(), m.backend)
		if notice != "" {
			m.logger.Warn("upload rejected", "path", path)
			m.notice = notice
			return m, nil
		}
		if cmd == nil {
			return m, nil
		}
		m.logger.Info("upload started", "path", path)
		return m, tea.Batch(cmd, m.spinner.Tick)
	}
	if m.upload.control.Busy() {
		return m, nil
	}
	var cmd tea.Cmd
	m.upload.input, cmd = m.upload.input.Update(msg)
	return m, cmd
}

func (m Model) handleUploadDone(msg uploadDoneMsg) Model {
	m.upload.finish()
	if msg.err != nil {
		m.logger.Error("upload failed", "path", msg.path, "err", msg.err)
		m.notice = upload.FailureNotice(msg.err)
	} else {
		m.logger.Info("upload complete", "path", msg.path, "message", msg.resp.Message)
		m.notice = upload.SuccessNotice(msg.resp)
	}
	m.closeUpload()
	return m
}

func (m *Model) cancelInflight() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func (m Model) visibleCount() int {
	n := len(m.state.Results())
	if m.limit > 0 && m.limit < n {
		return m.limit
	}
	return n
}

func (m *Model) layout() {
	if !m.ready {
		return
	}
	chrome := lipgloss.Height(m.headerView()) + lipgloss.Height(m.searchBarView()) + lipgloss.Height(m.helpView())
	if m.upload.open {
		chrome += lipgloss.Height(m.upload.view(m.spinner.View(), m.width))
	}
	m.viewport.Width = max(20, m.width)
	m.viewport.Height = max(3, m.height-chrome)
	m.refreshResults()
}

// refreshResults re-renders the card stack and scrolls the selected card into view.
func (m *Model) refreshResults() {
	results := m.state.Results()
	if len(results) == 0 {
		m.viewport.SetContent(renderEmpty(m.state.Attempted()))
		return
	}
	cards := resultCards(results, m.lastQuery, m.cursor, m.limit, m.viewport.Width)
	content := lipgloss.JoinVertical(lipgloss.Left, cards...)
	m.viewport.SetContent(content)

	top := 0
	for i := 0; i < m.cursor && i < len(cards); i++ {
		top += lipgloss.Height(cards[i])
	}
	if m.cursor >= len(cards) {
		return
	}
	bottom := top + lipgloss.Height(cards[m.cursor])
	switch {
	case top < m.viewport.YOffset:
		m.viewport.SetYOffset(top)
	case bottom > m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(bottom - m.viewport.Height)
	}
}

// View renders the TUI layout. A pending notice replaces the whole screen.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.notice != "" {
		return renderAlert(m.notice, m.width, m.height)
	}
	sections := []string{m.headerView(), m.searchBarView()}
	if m.upload.open {
		sections = append(sections, m.upload.view(m.spinner.View(), m.width))
	}
	sections = append(sections, m.bodyView(), m.helpView())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) headerView() string {
	header := headerStyle.Render("Search Engine")
	if m.baseURL != "" {
		header += "  " + lipgloss.NewStyle().Foreground(muted).Render(m.baseURL)
	}
	if m.upload.control.Busy() && !m.upload.open {
		header += "  " + renderLoading(m.spinner.View(), "uploading")
	}
	status := ""
	if m.state.Phase() == session.Success {
		status = statusStyle.Render(fmt.Sprintf("%d results for %q", len(m.state.Results()), m.lastQuery))
	}
	return header + "\n" + status
}

func (m Model) searchBarView() string {
	return renderSearchBar(m.input.View(), m.width)
}

func (m Model) bodyView() string {
	switch m.state.Phase() {
	case session.Loading:
		return renderLoading(m.spinner.View(), "Searching...")
	case session.Error:
		return renderErrorBanner(m.state.Message(), m.width)
	default:
		return m.viewport.View()
	}
}

func (m Model) helpView() string {
	if m.focus == focusUpload {
		return m.help.ShortHelpView(m.keys.uploadHelp())
	}
	return m.help.ShortHelpView(m.keys.searchHelp())
}

// State returns the current session state (for testing).
func (m Model) State() session.State { return m.state }

// Notice returns the pending blocking alert, empty when none (for testing).
func (m Model) Notice() string { return m.notice }

// Cursor returns the selected card index (for testing).
func (m Model) Cursor() int { return m.cursor }
