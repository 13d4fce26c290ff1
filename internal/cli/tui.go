package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/logsheet/pkg/workout"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// WorkoutListModel - Interactive workout selection
// =============================================================================

// WorkoutListModel is the bubbletea model for picking a stored workout.
type WorkoutListModel struct {
	Workouts []workout.Summary
	Cursor   int
	Selected *workout.Summary
	Height   int
	Offset   int

	now time.Time
}

// NewWorkoutListModel creates a list model over summaries.
func NewWorkoutListModel(list []workout.Summary) WorkoutListModel {
	return WorkoutListModel{Workouts: list, Height: 15, now: time.Now()}
}

func (m WorkoutListModel) Init() tea.Cmd {
	return nil
}

func (m WorkoutListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				m.Offset = min(m.Offset, m.Cursor)
			}
		case "down", "j":
			if m.Cursor < len(m.Workouts)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Workouts) == 0 {
				return m, tea.Quit
			}
			sel := m.Workouts[m.Cursor]
			m.Selected = &sel
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m WorkoutListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Workout"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Workouts))
	b.WriteString(workoutTable(m.Workouts[m.Offset:end], m.Cursor-m.Offset, m.now))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Workouts))))

	return b.String()
}

// =============================================================================
// PreviewModel - Scrollable sheet preview
// =============================================================================

// PreviewModel pages through a rendered text sheet.
type PreviewModel struct {
	Title  string
	Lines  []string
	Offset int
	Height int
}

// NewPreviewModel splits a rendered sheet into lines.
func NewPreviewModel(title, sheet string) PreviewModel {
	return PreviewModel{
		Title:  title,
		Lines:  strings.Split(strings.TrimRight(sheet, "\n"), "\n"),
		Height: 20,
	}
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) maxOffset() int {
	return max(len(m.Lines)-m.Height, 0)
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.Offset--
		case "down", "j":
			m.Offset++
		case "pgup", "b":
			m.Offset -= m.Height
		case "pgdown", "f", " ":
			m.Offset += m.Height
		case "home", "g":
			m.Offset = 0
		case "end", "G":
			m.Offset = m.maxOffset()
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-4, 3)
	}
	m.Offset = min(max(m.Offset, 0), m.maxOffset())
	return m, nil
}

func (m PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Lines))
	for _, line := range m.Lines[m.Offset:end] {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	pos := fmt.Sprintf("lines %d-%d of %d", m.Offset+1, end, len(m.Lines))
	b.WriteString(listDimStyle.Render(pos + "  ↑/↓ scroll  space page  q quit"))
	return b.String()
}
