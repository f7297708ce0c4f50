package internal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// ColumnView is the read-only projection of one column.
type ColumnView struct {
	Column Column
	Title  string
	Tasks  []string
	Active bool
}

// BoardView is everything the renderer gets to see. Selected is -1 when no
// row is addressable (edit mode, or an empty active column).
type BoardView struct {
	Columns  []ColumnView
	Mode     Mode
	Selected int
	EditText string
}

const (
	selectedMarker = "-> "
	rowIndent      = "   "
	editCursor     = "▏"
)

type renderStyles struct {
	column       lipgloss.Style
	activeColumn lipgloss.Style
	title        lipgloss.Style
	activeTitle  lipgloss.Style
	selected     lipgloss.Style
	input        lipgloss.Style
	status       lipgloss.Style
}

func defaultRenderStyles() renderStyles {
	cyan := lipgloss.Color("6")
	return renderStyles{
		column:       lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
		activeColumn: lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(cyan).Foreground(cyan).Padding(0, 1),
		title:        lipgloss.NewStyle().Bold(true),
		activeTitle:  lipgloss.NewStyle().Bold(true).Foreground(cyan),
		selected:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		input:        lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
		status:       lipgloss.NewStyle().Faint(true),
	}
}

// boardRenderer draws a BoardView. It has no knowledge of how tasks move.
type boardRenderer struct {
	width  int
	height int
	styles renderStyles
}

func newBoardRenderer() boardRenderer {
	return boardRenderer{
		width:  120,
		height: 30,
		styles: defaultRenderStyles(),
	}
}

func (r *boardRenderer) setSize(width, height int) {
	if width > 0 {
		r.width = width
	}
	if height > 0 {
		r.height = height
	}
}

// Render lays the columns out side by side above the input box.
func (r boardRenderer) Render(v BoardView) string {
	columnCount := max(1, len(v.Columns))
	// border (2) + padding (2) per column
	innerWidth := max(12, r.width/columnCount-4)
	// input box (3) + help line (1) + column border (2) + title (1)
	rows := max(1, r.height-7)

	columns := make([]string, 0, len(v.Columns))
	for _, column := range v.Columns {
		columns = append(columns, r.renderColumn(column, v, innerWidth, rows))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, columns...)

	return lipgloss.JoinVertical(lipgloss.Left, body, r.renderInput(v))
}

func (r boardRenderer) renderColumn(column ColumnView, v BoardView, width, rows int) string {
	selected := -1
	if column.Active {
		selected = v.Selected
	}

	titleStyle := r.styles.title
	boxStyle := r.styles.column
	if column.Active {
		titleStyle = r.styles.activeTitle
		boxStyle = r.styles.activeColumn
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render(truncate(fmt.Sprintf("%s (%d)", column.Title, len(column.Tasks)), width)))

	offset := 0
	if selected >= rows {
		offset = selected - rows + 1
	}
	end := min(len(column.Tasks), offset+rows)
	for i := offset; i < end; i++ {
		s.WriteString("\n")
		if i == selected {
			line := selectedMarker + truncate(column.Tasks[i], width-len(selectedMarker))
			s.WriteString(r.styles.selected.Render(line))
			continue
		}
		s.WriteString(rowIndent + truncate(column.Tasks[i], width-len(rowIndent)))
	}

	return boxStyle.Width(width + 2).Height(rows + 1).Render(s.String())
}

func (r boardRenderer) renderInput(v BoardView) string {
	width := max(12, r.width-4)
	var line string
	if v.Mode == ModeEdit {
		line = "New task: " + v.EditText + editCursor
		line = truncateLeft(line, width)
	} else {
		total := 0
		for _, column := range v.Columns {
			total += len(column.Tasks)
		}
		line = r.styles.status.Render(fmt.Sprintf("%s • %d tasks", v.Mode, total))
	}
	return r.styles.input.Width(width + 2).Render(line)
}

func truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(text, width, "…")
}

// truncateLeft keeps the tail of text so the edit cursor stays visible.
func truncateLeft(text string, width int) string {
	if runewidth.StringWidth(text) <= width {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && runewidth.StringWidth(string(runes))+1 > width {
		runes = runes[1:]
	}
	return "…" + string(runes)
}
