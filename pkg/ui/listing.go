package ui

import (
	"io"
	"strconv"
	"time"

	"github.com/arthur-debert/hamstercage/pkg/engine"
	"github.com/arthur-debert/hamstercage/pkg/manifest"
)

// unknownDate is shown when the target has no modification time
const unknownDate = "?"

var listAlign = []Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight}

// PrintList writes list rows. The short form is one target path per line.
// The long form shows status, mode, owner, group, size, date, tag and name.
func PrintList(w io.Writer, rows []engine.ListRow, long, tabs bool, now time.Time) error {
	if !long {
		for _, row := range rows {
			if _, err := io.WriteString(w, row.Path+"\n"); err != nil {
				return err
			}
		}
		return nil
	}

	table := make([][]string, 0, len(rows))
	for _, row := range rows {
		table = append(table, longRow(row, now))
	}
	return PrintTable(w, table, listAlign, tabs)
}

func longRow(row engine.ListRow, now time.Time) []string {
	typ := byte(TypeFile)
	name := row.Path
	switch v := row.Entry.(type) {
	case *manifest.Directory:
		typ = TypeDirectory
		name += "/"
	case *manifest.Symlink:
		typ = TypeSymlink
		name += " -> " + v.LinkTarget
	}

	date := unknownDate
	if row.ModTime != nil {
		date = ShortDate(*row.ModTime, now)
	}

	return []string{
		row.Status,
		ModeString(typ, row.Mode),
		row.Owner,
		row.Group,
		strconv.FormatInt(row.Size, 10),
		date,
		row.Tag,
		name,
	}
}
