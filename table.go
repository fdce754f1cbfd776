package treedoc

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// renderTable lays out a qualifying mapping as a table with the keys as the
// header row and the values as the sole data row.
func renderTable(m *Mapping, format TableFormat) string {
	header := m.Keys()
	row := make([]string, len(header))
	for i, key := range header {
		row[i] = scalarText(m.vals[key])
	}
	if format == TableSimple {
		return renderSimpleTable(header, row)
	}
	return renderGitHubTable(header, row)
}

// renderGitHubTable emits a GitHub-flavored Markdown table. Columns are
// padded to a common display width (minimum 3, the width of the separator
// dashes) and pipe characters in cells are escaped.
func renderGitHubTable(header, row []string) string {
	cols := make([]string, len(header))
	cells := make([]string, len(row))
	for i := range header {
		cols[i] = escapePipes(header[i])
		cells[i] = escapePipes(row[i])
	}

	widths := make([]int, len(cols))
	for i := range cols {
		widths[i] = runewidth.StringWidth(cols[i])
		if w := runewidth.StringWidth(cells[i]); w > widths[i] {
			widths[i] = w
		}
		if widths[i] < 3 {
			widths[i] = 3
		}
	}

	var b strings.Builder
	writeGitHubRow(&b, cols, widths)
	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	b.WriteString("| " + strings.Join(sep, " | ") + " |\n")
	writeGitHubRow(&b, cells, widths)
	return b.String()
}

func writeGitHubRow(b *strings.Builder, cells []string, widths []int) {
	padded := make([]string, len(widths))
	for i, w := range widths {
		padded[i] = padCell(cells[i], w)
	}
	b.WriteString("| " + strings.Join(padded, " | ") + " |\n")
}

// renderSimpleTable emits a borderless two-space-separated layout with a
// dashed rule under the header.
func renderSimpleTable(header, row []string) string {
	widths := make([]int, len(header))
	for i := range header {
		widths[i] = runewidth.StringWidth(header[i])
		if w := runewidth.StringWidth(row[i]); w > widths[i] {
			widths[i] = w
		}
	}

	var b strings.Builder
	writeSimpleRow(&b, header, widths)
	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	b.WriteString(strings.Join(sep, "  ") + "\n")
	writeSimpleRow(&b, row, widths)
	return b.String()
}

func writeSimpleRow(b *strings.Builder, cells []string, widths []int) {
	padded := make([]string, len(widths))
	for i, w := range widths {
		padded[i] = padCell(cells[i], w)
	}
	b.WriteString(strings.TrimRight(strings.Join(padded, "  "), " ") + "\n")
}

func padCell(s string, width int) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	return s + strings.Repeat(" ", pad)
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
