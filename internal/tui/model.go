// Package tui implements a terminal UI over the task list.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/taskline/internal/query"
	"github.com/twiced-technology-gmbh/taskline/internal/task"
	"github.com/twiced-technology-gmbh/taskline/internal/tasklist"
)

// view represents the current screen state.
type view int

const (
	viewList view = iota
	viewConfirmDelete
	viewConfirmClearAll
)

const (
	listChrome   = 3 // header + blank line + status bar
	errorChrome  = 1 // extra line when a message is displayed
	tickInterval = 30 * time.Second
)

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Delete  key.Binding
	Clear   key.Binding
	Reload  key.Binding
	Quit    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("k", "up")),
	Down:    key.NewBinding(key.WithKeys("j", "down")),
	Toggle:  key.NewBinding(key.WithKeys("x", " ", "enter")),
	Delete:  key.NewBinding(key.WithKeys("d")),
	Clear:   key.NewBinding(key.WithKeys("D", "C")),
	Reload:  key.NewBinding(key.WithKeys("r")),
	Quit:    key.NewBinding(key.WithKeys("q", "esc")),
	Confirm: key.NewBinding(key.WithKeys("y", "Y")),
	Cancel:  key.NewBinding(key.WithKeys("n", "N", "q", "esc")),
}

// Opener rebuilds the task list from its backing file.
type Opener func() *tasklist.List

// Model is the top-level bubbletea model.
type Model struct {
	open   Opener
	list   *tasklist.List
	tasks  []*task.Task
	cursor int
	offset int
	view   view
	width  int
	height int
	notice string
	err    error
	now    func() time.Time
}

// New creates a Model and loads the list once through open.
func New(open Opener) *Model {
	m := &Model{open: open, now: time.Now}
	m.reload()
	return m
}

// SetNow overrides the clock used to flag overdue deadlines (for testing).
func (m *Model) SetNow(fn func() time.Time) {
	m.now = fn
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureVisible()
		return m, nil
	case ReloadMsg:
		m.reload()
		return m, nil
	case TickMsg:
		return m, tickCmd()
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.view {
	case viewConfirmDelete:
		return m.viewDeleteConfirm()
	case viewConfirmClearAll:
		return m.viewClearAllConfirm()
	default:
		return m.viewList()
	}
}

// Cursor returns the zero-based position of the selected row.
func (m *Model) Cursor() int { return m.cursor }

// Tasks returns the tasks currently displayed.
func (m *Model) Tasks() []*task.Task { return m.tasks }

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.view {
	case viewConfirmDelete:
		return m.handleDeleteKey(msg)
	case viewConfirmClearAll:
		return m.handleClearAllKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.ensureVisible()
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
			m.ensureVisible()
		}
	case key.Matches(msg, keys.Toggle):
		m.toggle()
	case key.Matches(msg, keys.Delete):
		if len(m.tasks) > 0 {
			m.view = viewConfirmDelete
		}
	case key.Matches(msg, keys.Clear):
		if len(m.tasks) > 0 {
			m.view = viewConfirmClearAll
		}
	case key.Matches(msg, keys.Reload):
		m.reload()
	}
	return m, nil
}

func (m *Model) handleDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Confirm):
		m.apply(m.list.Delete(m.cursor + 1))
		m.view = viewList
	case key.Matches(msg, keys.Cancel):
		m.view = viewList
	}
	return m, nil
}

func (m *Model) handleClearAllKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Confirm):
		m.list.DeleteAll()
		m.apply(tasklist.MsgCleared, nil)
		m.view = viewList
	case key.Matches(msg, keys.Cancel):
		m.view = viewList
	}
	return m, nil
}

func (m *Model) toggle() {
	t := m.selected()
	if t == nil {
		return
	}
	if t.Done {
		m.apply(m.list.MarkUndone(m.cursor + 1))
	} else {
		m.apply(m.list.MarkDone(m.cursor + 1))
	}
}

// apply records the outcome of a list operation and refreshes the rows.
func (m *Model) apply(reply string, err error) {
	m.err = err
	m.notice = ""
	if err == nil {
		// Keep only the first line of multi-line confirmations.
		m.notice, _, _ = strings.Cut(reply, "\n")
	}
	m.tasks = m.list.Tasks()
	m.clampCursor()
}

func (m *Model) reload() {
	m.list = m.open()
	m.tasks = m.list.Tasks()
	m.clampCursor()
}

func (m *Model) selected() *task.Task {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return nil
	}
	return m.tasks[m.cursor]
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureVisible()
}

func (m *Model) visibleRows() int {
	rows := m.height - listChrome
	if m.err != nil || m.notice != "" {
		rows -= errorChrome
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *Model) ensureVisible() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// overdue reports whether t is an unfinished deadline whose time has passed.
func (m *Model) overdue(t *task.Task) bool {
	return query.IsOverdue(t, m.now())
}

// --- Messages ---

// ReloadMsg is sent by the file watcher to trigger a refresh from disk.
type ReloadMsg struct{}

// TickMsg is sent periodically so overdue highlighting follows the clock.
type TickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg { return TickMsg{} })
}

// --- Styles ---

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("226")).
			Bold(true)

	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true)
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
)

// --- View rendering ---

func (m *Model) viewList() string {
	header := headerStyle.Width(m.width).Render(truncate(tasklist.MsgListHeader, m.width))

	var rows []string
	if len(m.tasks) == 0 {
		rows = append(rows, dimStyle.Render("  "+tasklist.MsgEmptyList))
	}
	end := m.offset + m.visibleRows()
	if end > len(m.tasks) {
		end = len(m.tasks)
	}
	for i := m.offset; i < end; i++ {
		rows = append(rows, m.renderRow(i))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		strings.Join(rows, "\n"),
		"",
		m.renderStatusBar(),
	)
}

func (m *Model) renderRow(i int) string {
	t := m.tasks[i]
	line := truncate(fmt.Sprintf("%d.%s", i+1, t), m.width-2)

	switch {
	case t.Done:
		line = doneStyle.Render(line)
	case m.overdue(t):
		line = overdueStyle.Render(line)
	}

	if i == m.cursor {
		return cursorStyle.Render("> ") + line
	}
	return "  " + line
}

func (m *Model) renderStatusBar() string {
	status := fmt.Sprintf(" %d tasks | x:toggle d:del D:clear-all r:reload q:quit", len(m.tasks))
	status = statusBarStyle.Render(truncate(status, m.width))

	switch {
	case m.err != nil:
		return errorStyle.Render(truncate("Error: "+m.err.Error(), m.width)) + "\n" + status
	case m.notice != "":
		return noticeStyle.Render(truncate(m.notice, m.width)) + "\n" + status
	}
	return status
}

func (m *Model) viewDeleteConfirm() string {
	t := m.selected()
	if t == nil {
		return m.viewList()
	}
	content := errorStyle.Render("Delete task?") + "\n\n" +
		fmt.Sprintf("  %d.%s", m.cursor+1, t) + "\n\n" +
		dimStyle.Render("y:yes  n:no")

	return dialogStyle.Render(content)
}

func (m *Model) viewClearAllConfirm() string {
	content := errorStyle.Render("Delete ALL tasks?") + "\n\n" +
		fmt.Sprintf("  %d tasks will be removed.", len(m.tasks)) + "\n\n" +
		dimStyle.Render("y:yes  n:no")

	return dialogStyle.Render(content)
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 { //nolint:mnd // minimum length for truncation
		maxLen = 4
	}
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	target := maxLen - 3 //nolint:mnd // room for "..."
	if target > len(runes) {
		target = len(runes)
	}
	for target > 0 && lipgloss.Width(string(runes[:target])) > maxLen-3 {
		target--
	}
	return string(runes[:target]) + "..."
}
