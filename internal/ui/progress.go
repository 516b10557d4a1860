package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"setlint/internal/driver"
)

// maxRows ограничивает список файлов на экране; остальные сворачиваются
// в счётчик.
const maxRows = 12

type progressModel struct {
	title    string
	events   <-chan driver.Event
	spinner  spinner.Model
	prog     progress.Model
	items    []fileItem
	index    map[string]int
	width    int
	done     bool
	finished int
}

type fileItem struct {
	path  string
	state fileState
}

// fileState - что показывать в строке файла.
type fileState uint8

const (
	stateQueued fileState = iota
	stateLoading
	stateParsing
	stateLinting
	stateDone
	stateCached
	stateError
)

// weight - доля файла в общей полосе прогресса.
var states = [...]struct {
	label    string
	color    string
	weight   float64
	finished bool
}{
	stateQueued:  {"queued", "7", 0, false},
	stateLoading: {"loading", "6", 0.05, false},
	stateParsing: {"parsing", "6", 0.3, false},
	stateLinting: {"linting", "6", 0.7, false},
	stateDone:    {"done", "2", 1, true},
	stateCached:  {"cached", "2", 1, true},
	stateError:   {"error", "1", 1, true},
}

func (s fileState) String() string { return states[s].label }
func (s fileState) finished() bool { return states[s].finished }
func (s fileState) active() bool   { return s >= stateLoading && s <= stateLinting }

func (s fileState) style() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(states[s].color))
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders check progress
// for files until events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]fileItem, 0, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items = append(items, fileItem{path: file})
		index[file] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = max(msg.Width-4, 10)
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s (%d/%d)", m.title, m.finished, len(m.items))
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	nameWidth := max(m.width-12-4, 20)
	rows := m.visibleRows()
	for _, item := range rows {
		status := item.state.style().Render(fmt.Sprintf("%12s", item.state))
		fmt.Fprintf(&b, "  %s %s\n", status, truncate(item.path, nameWidth))
	}
	if hidden := len(m.items) - len(rows); hidden > 0 {
		fmt.Fprintf(&b, "  %12s … %d more\n", "", hidden)
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

// visibleRows отдаёт сначала активные файлы, затем ошибочные, затем прочие.
func (m *progressModel) visibleRows() []fileItem {
	if len(m.items) <= maxRows {
		return m.items
	}
	rows := make([]fileItem, 0, maxRows)
	for _, pass := range []func(fileItem) bool{
		func(it fileItem) bool { return it.state.active() },
		func(it fileItem) bool { return it.state == stateError },
		func(it fileItem) bool { return it.state == stateQueued },
	} {
		for _, it := range m.items {
			if len(rows) == maxRows {
				return rows
			}
			if pass(it) {
				rows = append(rows, it)
			}
		}
	}
	return rows
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	idx, ok := m.index[ev.File]
	if !ok {
		return nil
	}
	next, ok := stateOf(ev.Stage, ev.Status)
	if !ok {
		return nil
	}
	item := &m.items[idx]
	if next.finished() && !item.state.finished() {
		m.finished++
	}
	item.state = next

	total := 0.0
	for _, it := range m.items {
		total += states[it.state].weight
	}
	return m.prog.SetPercent(total / float64(len(m.items)))
}

// stateOf maps a driver event onto a row state; false means the event does
// not change the row.
func stateOf(stage driver.Stage, status driver.Status) (fileState, bool) {
	switch status {
	case driver.StatusQueued:
		return stateQueued, true
	case driver.StatusError:
		return stateError, true
	case driver.StatusDone:
		if stage == driver.StageCache {
			return stateCached, true
		}
		return stateDone, true
	case driver.StatusWorking:
		switch stage {
		case driver.StageLoad:
			return stateLoading, true
		case driver.StageParse:
			return stateParsing, true
		case driver.StageLint:
			return stateLinting, true
		}
	}
	return stateQueued, false
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
