// Package ui renders the progress of a directory check with Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"lcc/internal/driver"
)

// maxRows caps the file list; finished files scroll out first.
const maxRows = 12

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	workingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	idleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type fileItem struct {
	path    string
	stage   driver.Stage
	status  driver.Status
	elapsed time.Duration
}

func (it fileItem) finished() bool {
	return it.status == driver.StatusDone || it.status == driver.StatusError
}

// fraction is the share of the file's work already done.
func (it fileItem) fraction() float64 {
	if it.finished() {
		return 1
	}
	if it.status == driver.StatusQueued {
		return 0
	}
	return progressFromStage(it.stage)
}

func (it fileItem) label() string {
	switch it.status {
	case driver.StatusDone:
		return "ok"
	case driver.StatusError:
		return "failed"
	case driver.StatusWorking:
		return stageLabel(it.stage)
	}
	return "queued"
}

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	items   []fileItem
	index   map[string]int
	width   int
	done    bool
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a model showing per-file progress of a directory
// check. It quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = workingStyle

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 76

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		items:   make([]fileItem, len(files)),
		index:   make(map[string]int, len(files)),
		width:   80,
	}
	for i, file := range files {
		m.items[i] = fileItem{path: file, stage: driver.StageLoad, status: driver.StatusQueued}
		m.index[file] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.Event(msg)), m.next())
	case doneMsg:
		m.done = true
		return m, tea.Quit
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
			m.bar.Width = max(msg.Width-4, 10)
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

// next waits for one driver event.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) apply(ev driver.Event) tea.Cmd {
	idx, ok := m.index[ev.File]
	if !ok {
		return nil
	}
	it := &m.items[idx]
	it.stage, it.status = ev.Stage, ev.Status
	if it.finished() {
		it.elapsed = ev.Elapsed
	}
	return m.bar.SetPercent(m.percent())
}

func (m *progressModel) percent() float64 {
	if len(m.items) == 0 {
		return 1
	}
	var sum float64
	for _, it := range m.items {
		sum += it.fraction()
	}
	return sum / float64(len(m.items))
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	var b strings.Builder
	if m.done {
		b.WriteString(titleStyle.Render(fmt.Sprintf("done: %s, %s", m.title, m.tally())))
	} else {
		b.WriteString(m.spinner.View() + " " + titleStyle.Render(m.title))
	}
	b.WriteString("\n\n")

	nameWidth := max(m.width-24, 20)
	rows := m.visibleRows()
	for _, i := range rows {
		it := m.items[i]
		label := fmt.Sprintf("%10s", it.label())
		line := "  " + statusStyle(it).Render(label) + " " + truncate(it.path, nameWidth)
		if it.finished() && it.elapsed > 0 {
			line += idleStyle.Render(fmt.Sprintf("  %.1fms", float64(it.elapsed)/float64(time.Millisecond)))
		}
		b.WriteString(line + "\n")
	}
	if hidden := len(m.items) - len(rows); hidden > 0 {
		b.WriteString(idleStyle.Render(fmt.Sprintf("  ... %d more", hidden)) + "\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}

// visibleRows: сначала незавершённые и упавшие, затем успешные, не больше maxRows
func (m *progressModel) visibleRows() []int {
	if len(m.items) <= maxRows {
		rows := make([]int, len(m.items))
		for i := range rows {
			rows[i] = i
		}
		return rows
	}
	rows := make([]int, 0, maxRows)
	for pass := 0; pass < 2 && len(rows) < maxRows; pass++ {
		for i, it := range m.items {
			ok := it.status == driver.StatusDone
			if (pass == 0) == ok {
				continue
			}
			rows = append(rows, i)
			if len(rows) == maxRows {
				break
			}
		}
	}
	return rows
}

func progressFromStage(stage driver.Stage) float64 {
	switch stage {
	case driver.StageLoad:
		return 0.1
	case driver.StageScan:
		return 0.4
	case driver.StageValidate:
		return 0.7
	}
	return 0
}

func stageLabel(stage driver.Stage) string {
	switch stage {
	case driver.StageLoad:
		return "loading"
	case driver.StageScan:
		return "scanning"
	case driver.StageValidate:
		return "validating"
	}
	return string(stage)
}

func statusStyle(it fileItem) lipgloss.Style {
	switch it.status {
	case driver.StatusDone:
		return okStyle
	case driver.StatusError:
		return failedStyle
	case driver.StatusWorking:
		return workingStyle
	}
	return idleStyle
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}

// tally: "3 files, 1 failed"
func (m *progressModel) tally() string {
	failed := 0
	for _, it := range m.items {
		if it.status == driver.StatusError {
			failed++
		}
	}
	return fmt.Sprintf("%d files, %d failed", len(m.items), failed)
}
