// Package tui holds the terminal front-ends: a huh form for one-shot
// requests and a bubbletea chat that drives a session.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/uiforge/internal/patch"
	"github.com/felixgeelhaar/uiforge/internal/session"
	"github.com/felixgeelhaar/uiforge/internal/synth"
)

// Tab selects what the main pane shows
type Tab int

const (
	TabPreview Tab = iota
	TabCode
	TabDiff
)

var tabNames = []string{"preview", "code", "diff"}

func (t Tab) String() string { return tabNames[t] }

// chrome is the number of lines around the viewport: header, tabs, status,
// input and help.
const chrome = 7

type keyMap struct {
	Quit    key.Binding
	Submit  key.Binding
	NextTab key.Binding
}

var keys = keyMap{
	Quit:    key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
	NextTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch view")),
}

// Styles contains lipgloss styles for the chat
type Styles struct {
	Title     lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style
	Help      lipgloss.Style
}

// DefaultStyles returns the default lipgloss styles
func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		Tab:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("230")).Bold(true).Padding(0, 1),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("86")),
		Error:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// submitResultMsg carries the outcome of one session step back to Update.
type submitResultMsg struct {
	version  *session.Version
	previous *session.Version
	err      error
}

// ChatModel is the bubbletea model behind 'uiforge chat'.
type ChatModel struct {
	ctx     context.Context
	session *session.Session

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	styles   Styles

	tab    Tab
	diff   string
	status string
	failed bool
	busy   bool

	width    int
	height   int
	ready    bool
	quitting bool
}

// NewChatModel creates a chat bound to s
func NewChatModel(ctx context.Context, s *session.Session) ChatModel {
	ti := textinput.New()
	ti.Placeholder = "Describe the UI, or /regen <instruction>, /undo"
	ti.CharLimit = synth.DefaultMaxMessageLength
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	st := DefaultStyles()
	sp.Style = st.Status

	return ChatModel{
		ctx:      ctx,
		session:  s,
		input:    ti,
		viewport: viewport.New(0, 0),
		spinner:  sp,
		styles:   st,
		status:   "Describe the UI you want to build.",
	}
}

// Init implements tea.Model
func (m ChatModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chrome, 1)
		m.input.Width = max(msg.Width-4, 10)
		m.ready = true
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.NextTab):
			m.tab = (m.tab + 1) % Tab(len(tabNames))
			m.refresh()
			return m, nil
		case key.Matches(msg, keys.Submit):
			return m.submit()
		}

	case submitResultMsg:
		m.busy = false
		if msg.err != nil {
			m.failed = true
			m.status = firstLine(msg.err.Error())
			return m, nil
		}
		m.failed = false
		m.diff = codeDiff(msg.previous, msg.version)
		m.status = statusFor(msg.version)
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var inputCmd, vpCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(inputCmd, vpCmd)
}

// submit interprets the input line and starts a step in the background.
func (m ChatModel) submit() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		return m, nil
	}
	m.input.Reset()

	previous := m.session.Current()

	switch {
	case line == "/undo":
		return m.undo(previous)
	case strings.HasPrefix(line, "/regen "):
		return m.start(synth.ModeRegenerate, strings.TrimSpace(strings.TrimPrefix(line, "/regen ")), previous)
	case strings.HasPrefix(line, "/"):
		m.failed = true
		m.status = "unknown command " + strings.Fields(line)[0]
		return m, nil
	case previous == nil:
		return m.start(synth.ModeInitial, line, nil)
	default:
		return m.start(synth.ModeModify, line, previous)
	}
}

func (m ChatModel) start(mode synth.Mode, message string, previous *session.Version) (tea.Model, tea.Cmd) {
	m.busy = true
	m.failed = false
	m.status = "Planning (" + string(mode) + ")..."

	ctx, s := m.ctx, m.session
	run := func() tea.Msg {
		v, err := s.Submit(ctx, mode, message)
		return submitResultMsg{version: v, previous: previous, err: err}
	}
	return m, tea.Batch(m.spinner.Tick, run)
}

// undo moves the session back to the version created before the current one.
func (m ChatModel) undo(current *session.Version) (tea.Model, tea.Cmd) {
	if current == nil {
		m.failed = true
		m.status = "nothing to undo"
		return m, nil
	}

	versions := m.session.Versions()
	for i, v := range versions {
		if v.ID != current.ID {
			continue
		}
		if i == 0 {
			m.failed = true
			m.status = "already at the first version"
			return m, nil
		}
		target, err := m.session.Rollback(versions[i-1].ID)
		if err != nil {
			m.failed = true
			m.status = firstLine(err.Error())
			return m, nil
		}
		m.failed = false
		m.diff = codeDiff(current, target)
		m.status = "Rolled back to: " + target.Plan.Summary
		m.refresh()
		return m, nil
	}
	return m, nil
}

func (m *ChatModel) refresh() {
	m.viewport.SetContent(m.content())
}

func codeDiff(from, to *session.Version) string {
	if to == nil {
		return ""
	}
	old := ""
	if from != nil {
		old = from.Code
	}
	return patch.Unified(patch.CodeFile, old, to.Code)
}

func statusFor(v *session.Version) string {
	if v.Explanation != "" {
		return firstLine(v.Explanation)
	}
	return v.Plan.Summary
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
