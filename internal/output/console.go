package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// ConsoleFormatter draws reports as aligned tables.
type ConsoleFormatter struct {
	titleStyle  lipgloss.Style
	headerStyle lipgloss.Style
	footerStyle lipgloss.Style
	limit       int
}

// NewConsoleFormatter returns a formatter that prints at most limit rows
// per table. Zero means no limit.
func NewConsoleFormatter(limit int) *ConsoleFormatter {
	return &ConsoleFormatter{
		titleStyle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		headerStyle: lipgloss.NewStyle().Bold(true),
		footerStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		limit:       limit,
	}
}

func (f *ConsoleFormatter) Format(w io.Writer, r Report) error {
	for i, t := range r.Tables() {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := f.writeTable(w, t); err != nil {
			return err
		}
	}
	return nil
}

func (f *ConsoleFormatter) writeTable(w io.Writer, t Table) error {
	var b strings.Builder
	if t.Title != "" {
		b.WriteString(f.titleStyle.Render(t.Title))
		b.WriteByte('\n')
	}

	rows := t.Rows
	if f.limit > 0 && len(rows) > f.limit {
		rows = rows[:f.limit]
	}

	if len(t.Headers) > 0 {
		b.WriteString(f.grid(t.Headers, rows))
		b.WriteByte('\n')
	}

	footer := t.Footer
	if hidden := len(t.Rows) - len(rows); hidden > 0 {
		more := fmt.Sprintf("%d more not shown", hidden)
		if footer == "" {
			footer = more
		} else {
			footer += ", " + more
		}
	}
	if footer != "" {
		b.WriteString(f.footerStyle.Render(footer))
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// grid lays the rows out as borderless columns two spaces apart.
func (f *ConsoleFormatter) grid(headers []string, rows [][]string) string {
	last := len(headers) - 1
	grid := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		Wrap(false).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle()
			if row == table.HeaderRow {
				style = f.headerStyle
			}
			if col < last {
				style = style.PaddingRight(2)
			}
			return style
		})

	lines := strings.Split(strings.TrimRight(grid.String(), "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}
