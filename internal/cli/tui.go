package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/geodraw/pkg/diagram"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// DiagramListModel - Interactive diagram selection
// =============================================================================

// DiagramListModel is the bubbletea model for choosing one diagram of a
// batch.
type DiagramListModel struct {
	Docs     []diagram.Document
	Cursor   int
	Selected *diagram.Document
	Height   int
	Offset   int
}

// NewDiagramListModel creates a list over docs.
func NewDiagramListModel(docs []diagram.Document) DiagramListModel {
	return DiagramListModel{Docs: docs, Height: 15}
}

func (m DiagramListModel) Init() tea.Cmd {
	return nil
}

func (m DiagramListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Docs)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			doc := m.Docs[m.Cursor]
			m.Selected = &doc
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m DiagramListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Diagram"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Docs))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		d := m.Docs[i]
		rows = append(rows, []string{cursor, d.Name, string(d.Family), strconv.Itoa(pointCount(d)), diagramTitle(d)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Name", "Family", "Points", "Title").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Docs))))
	return b.String()
}

// pickDiagram runs the picker. ok is false when the user quit without
// choosing.
func pickDiagram(docs []diagram.Document) (doc diagram.Document, ok bool, err error) {
	final, err := tea.NewProgram(NewDiagramListModel(docs)).Run()
	if err != nil {
		return diagram.Document{}, false, err
	}
	m, isList := final.(DiagramListModel)
	if !isList || m.Selected == nil {
		return diagram.Document{}, false, nil
	}
	return *m.Selected, true, nil
}

// =============================================================================
// Helpers
// =============================================================================

func pointCount(d diagram.Document) int {
	switch {
	case d.Triangle != nil:
		return len(d.Triangle.Points)
	case d.Transformation != nil:
		return len(d.Transformation.PreImage.Vertices)
	}
	return 0
}

func diagramTitle(d diagram.Document) string {
	switch {
	case d.Triangle != nil && d.Triangle.Title != "":
		return d.Triangle.Title
	case d.Transformation != nil && d.Transformation.Title != "":
		return d.Transformation.Title
	}
	return "—"
}
