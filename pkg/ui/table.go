package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Align positions a cell inside its column
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

// TableColumn describes one column of a listing.
// Width is the minimum width; MaxWidth, when set, truncates longer cells.
// Style, when set, colors the padded cell (e.g. FormatStatus).
type TableColumn struct {
	Header   string
	Width    int
	MaxWidth int
	Align    Align
	Style    func(string) string
}

// Table collects rows and renders them as aligned plain-text columns
type Table struct {
	Columns []TableColumn
	Rows    [][]string
}

// NewTable creates a table with the given columns
func NewTable(columns []TableColumn) *Table {
	return &Table{Columns: columns}
}

// AddRow appends a row. Missing cells render empty, extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.Columns))
	for i := range row {
		if i < len(cells) {
			row[i] = t.clip(i, cells[i])
		}
	}
	t.Rows = append(t.Rows, row)
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

func (t *Table) clip(col int, cell string) string {
	cell = strings.ReplaceAll(cell, "\n", " ")
	if limit := t.Columns[col].MaxWidth; limit > 0 {
		return Truncate(cell, limit)
	}
	return cell
}

func (t *Table) widths() []int {
	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		widths[i] = max(col.Width, lipgloss.Width(col.Header))
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}
	return widths
}

// Render returns the header, a rule and the rows with alternating shading.
// The last column is not padded so lines carry no trailing blanks.
func (t *Table) Render() string {
	if len(t.Columns) == 0 {
		return ""
	}
	widths := t.widths()
	last := len(t.Columns) - 1

	var b strings.Builder
	header := make([]string, len(t.Columns))
	rule := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = pad(col.Header, widths[i], AlignLeft, i == last)
		rule[i] = strings.Repeat("─", widths[i])
	}
	b.WriteString(StyleTableHeader.Render(strings.Join(header, "  ")) + "\n")
	b.WriteString(StyleTableBorder.Render(strings.Join(rule, "  ")) + "\n")

	for n, row := range t.Rows {
		rowStyle := StyleTableRow
		if n%2 == 1 {
			rowStyle = StyleTableRowAlt
		}
		parts := make([]string, len(row))
		for i, cell := range row {
			col := t.Columns[i]
			cell = pad(cell, widths[i], col.Align, i == last && col.Align == AlignLeft)
			if col.Style != nil {
				parts[i] = col.Style(cell)
			} else {
				parts[i] = rowStyle.Render(cell)
			}
		}
		b.WriteString(strings.Join(parts, "  ") + "\n")
	}
	return b.String()
}

// pad fills s to width; trim skips the trailing fill of a left-aligned cell
func pad(s string, width int, align Align, trim bool) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", gap) + s
	case AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
	default:
		if trim {
			return s
		}
		return s + strings.Repeat(" ", gap)
	}
}

// RenderList renders items as an indented bulleted list, skipping blanks
func RenderList(items []string) string {
	var b strings.Builder
	for _, item := range items {
		if item = strings.TrimSpace(item); item == "" {
			continue
		}
		b.WriteString(StyleInfo.Render("  • ") + item + "\n")
	}
	return b.String()
}

// Truncate shortens s to at most maxLen runes, marking the cut with "..."
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// RenderKeyValue renders "key: value" with an accented key
func RenderKeyValue(key, value string) string {
	return fmt.Sprintf("%s: %s", StyleAccent.Render(key), value)
}
