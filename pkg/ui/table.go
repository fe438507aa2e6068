package ui

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Align is the alignment of a table column
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// PrintTable writes rows as columns. With tabs the cells are separated by
// a single tab; otherwise columns are padded to their widest cell and
// separated by a space. The last column is never padded. align may be
// shorter than a row; missing columns align left.
func PrintTable(w io.Writer, rows [][]string, align []Align, tabs bool) error {
	if tabs {
		for _, row := range rows {
			if _, err := io.WriteString(w, strings.Join(row, "\t")+"\n"); err != nil {
				return err
			}
		}
		return nil
	}

	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	var b strings.Builder
	for _, row := range rows {
		b.Reset()
		for i, cell := range row {
			if i > 0 {
				b.WriteByte(' ')
			}
			if i == len(row)-1 {
				b.WriteString(cell)
				break
			}
			if i < len(align) && align[i] == AlignRight {
				b.WriteString(runewidth.FillLeft(cell, widths[i]))
			} else {
				b.WriteString(runewidth.FillRight(cell, widths[i]))
			}
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}
