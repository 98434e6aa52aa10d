package semdoc

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// DumpTextWidth is the display width at which [Doc.Dump] truncates text.
const DumpTextWidth = 48

// Dump writes the tag stream as a table, one entry per row, with block
// nesting shown by indentation. It is meant for debugging generated
// documents.
//
//	#  TAG            TEXT
//	-  -------------  -------------
//	0  start Section
//	1    Text         "Description"
//	2  end Section
func (d *Doc) Dump(w io.Writer) error {
	header := []string{"#", "TAG", "TEXT"}
	var rows [][]string
	depth := 0
	i := 0
	for tag, text := range d.All() {
		if tag.Kind == TagBlockEnd && depth > 0 {
			depth--
		}
		cell := ""
		if tag.Kind == TagStyle {
			cell = formatCell(strconv.Quote(text), DumpTextWidth)
		}
		rows = append(rows, []string{strconv.Itoa(i), strings.Repeat("  ", depth) + tag.String(), cell})
		if tag.Kind == TagBlockStart {
			depth++
		}
		i++
	}

	widths := computeWidths(header, rows)
	if err := writeDumpRow(w, header, widths); err != nil {
		return err
	}
	sep := make([]string, len(widths))
	for i, width := range widths {
		sep[i] = strings.Repeat("-", width)
	}
	if err := writeDumpRow(w, sep, widths); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writeDumpRow(w, row, widths); err != nil {
			return err
		}
	}
	return nil
}

func computeWidths(header []string, rows [][]string) []int {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// The index column is right aligned, the rest left aligned; the last
// column is never padded.
func writeDumpRow(w io.Writer, cells []string, widths []int) error {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		switch {
		case i == len(cells)-1:
			padded[i] = cell
		case i == 0:
			padded[i] = alignCell(cell, widths[i], true)
		default:
			padded[i] = alignCell(cell, widths[i], false)
		}
	}
	_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(padded, "  "), " "))
	return err
}

func formatCell(s string, width int) string {
	if width > 0 && runewidth.StringWidth(s) > width {
		if width <= 3 {
			return runewidth.Truncate(s, width, "")
		}
		return runewidth.Truncate(s, width, "...")
	}
	return s
}

func alignCell(s string, width int, right bool) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", pad) + s
	}
	return s + strings.Repeat(" ", pad)
}
