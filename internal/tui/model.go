package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"downsize/internal/resizer"
)

type Model struct {
	updates    <-chan resizer.ProgressUpdate
	title      string
	started    time.Time
	width      int
	total      int
	processed  int
	resized    int
	skipped    int
	failed     int
	bytesSaved int64
	quitting   bool
}

type doneMsg struct{}

type updateMsg resizer.ProgressUpdate

func NewModel(title string, updates <-chan resizer.ProgressUpdate) Model {
	return Model{updates: updates, title: title, started: time.Now()}
}

func (m Model) Init() tea.Cmd {
	return listenForUpdates(m.updates)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case updateMsg:
		m.total += msg.TotalDelta
		if msg.Result == nil {
			return m, listenForUpdates(m.updates)
		}

		res := *msg.Result
		m.processed++
		switch res.Status {
		case resizer.StatusResized:
			m.resized++
			if !res.DryRun {
				m.bytesSaved += res.BytesBefore - res.BytesAfter
			}
		case resizer.StatusSkipped:
			m.skipped++
		default:
			m.failed++
		}
		return m, tea.Batch(tea.Println(RenderLine(res)), listenForUpdates(m.updates))
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	barWidth := 40
	if m.width > 0 {
		barWidth = int(math.Min(60, float64(m.width-10)))
		if barWidth < 20 {
			barWidth = 20
		}
	}

	ratio := 0.0
	if m.total > 0 {
		ratio = float64(m.processed) / float64(m.total)
		if ratio > 1 {
			ratio = 1
		}
	}

	bar := renderBar(barWidth, ratio)
	elapsed := time.Since(m.started).Round(time.Millisecond)

	lines := []string{
		titleStyle.Render(m.title),
		labelStyle.Render(fmt.Sprintf("Files: %d/%d", m.processed, m.total)) +
			dimStyle.Render(fmt.Sprintf("  resized:%d skipped:%d errors:%d", m.resized, m.skipped, m.failed)),
		labelStyle.Render(fmt.Sprintf("Bytes saved: %d", m.bytesSaved)),
		dimStyle.Render(fmt.Sprintf("Elapsed: %s", elapsed)),
		barStyle.Render(bar),
	}

	return strings.Join(lines, "\n")
}

// RenderLine styles a result's status line by outcome.
func RenderLine(res resizer.Result) string {
	switch res.Status {
	case resizer.StatusResized:
		return resizedStyle.Render(res.Line())
	case resizer.StatusSkipped:
		return skippedStyle.Render(res.Line())
	default:
		return failedStyle.Render(res.Line())
	}
}

func listenForUpdates(updates <-chan resizer.ProgressUpdate) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-updates
		if !ok {
			return doneMsg{}
		}
		return updateMsg(update)
	}
}

func renderBar(width int, ratio float64) string {
	filled := int(math.Round(ratio * float64(width)))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	resizedStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	skippedStyle = lipgloss.NewStyle().Foreground(ColorDim)
	failedStyle  = lipgloss.NewStyle().Foreground(ColorWarn)
)
