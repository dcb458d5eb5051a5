package format

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// UI color constants
const (
	ColorPrimary = "#00D9FF"
	ColorMuted   = "#6272A4"
	ColorError   = "#FF5555"
	ColorWarning = "#FFB86C"
	ColorSuccess = "#50FA7B"
	ColorHeader  = "#626262"
)

var (
	TitleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimary)).Bold(true)
	MutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMuted))
	IDStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning))
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Bold(true)

	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHeader)).PaddingRight(2)
	cellStyle   = lipgloss.NewStyle().PaddingRight(2)
)

// Grid renders rows under headers as a borderless table. Columns listed in
// numeric are right-aligned.
func Grid(headers []string, rows [][]string, numeric ...int) string {
	right := make(map[int]bool, len(numeric))
	for _, col := range numeric {
		right[col] = true
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := cellStyle
			if row == table.HeaderRow {
				style = headerStyle
			}
			if right[col] {
				style = style.Align(lipgloss.Right)
			}
			return style
		})
	return t.Render()
}

// KeyValue renders label/value pairs as two aligned columns
func KeyValue(pairs [][2]string) string {
	if len(pairs) == 0 {
		return ""
	}
	labels := make([]string, len(pairs))
	values := make([]string, len(pairs))
	for i, p := range pairs {
		labels[i] = MutedStyle.Render(p[0])
		values[i] = p[1]
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		cellStyle.Render(lipgloss.JoinVertical(lipgloss.Left, labels...)),
		lipgloss.JoinVertical(lipgloss.Left, values...),
	)
}
