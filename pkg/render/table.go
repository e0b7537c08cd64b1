package render

import (
	"strings"
	"unicode/utf8"
)

// writeTable emits a GitHub-flavoured Markdown table with every column padded
// to its widest cell.
func writeTable(b *strings.Builder, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = utf8.RuneCountInString(header)
	}
	escaped := make([][]string, len(rows))
	for r, row := range rows {
		escaped[r] = make([]string, len(headers))
		for i := range headers {
			cell := ""
			if i < len(row) {
				cell = escapeCell(row[i])
			}
			escaped[r][i] = cell
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	writeRow(b, headers, widths)
	b.WriteString("|")
	for _, width := range widths {
		b.WriteString(strings.Repeat("-", width+2))
		b.WriteString("|")
	}
	b.WriteString("\n")
	for _, row := range escaped {
		writeRow(b, row, widths)
	}
}

func writeRow(b *strings.Builder, cells []string, widths []int) {
	b.WriteString("|")
	for i, cell := range cells {
		b.WriteString(" ")
		b.WriteString(cell)
		b.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}

func escapeCell(cell string) string {
	cell = strings.ReplaceAll(cell, "\r\n", " ")
	cell = strings.ReplaceAll(cell, "\n", " ")
	return strings.ReplaceAll(cell, "|", `\|`)
}
