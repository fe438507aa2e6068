// Package textdiff produces unified diffs between two labelled texts.
package textdiff

import (
	"strings"
	"time"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultContext is the number of unchanged lines shown around a change
const DefaultContext = 3

// MissingLabel is shown in place of a timestamp for a side that does not exist
const MissingLabel = "missing"

// Side is one input of a diff
type Side struct {
	Label   string
	Content []byte
	ModTime time.Time
}

// Timestamp formats t the way diff headers show it
func Timestamp(t time.Time) string {
	return t.Format("2006-01-02T15:04:05.000000")
}

// Unified returns the unified diff from -> to as lines, each ending in a
// newline. No output means the contents are equal.
func Unified(from, to Side) ([]string, error) {
	diff := difflib.UnifiedDiff{
		A:        inputLines(from.Content),
		B:        inputLines(to.Content),
		FromFile: from.Label,
		FromDate: Timestamp(from.ModTime),
		ToFile:   to.Label,
		ToDate:   Timestamp(to.ModTime),
		Context:  DefaultContext,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}
	return splitLines(text), nil
}

// NoNewline marks a last line that has no newline, as diff(1) does
const NoNewline = "\\ No newline at end of file\n"

// splitLines splits s after each newline
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// inputLines splits content for comparison. A last line without a newline
// carries the NoNewline marker, so it never equals the same text with one.
func inputLines(content []byte) []string {
	lines := splitLines(string(content))
	if n := len(lines); n > 0 && !strings.HasSuffix(lines[n-1], "\n") {
		lines[n-1] += "\n" + NoNewline
	}
	return lines
}

// Header renders the header line of a side that has no counterpart:
// prefix is "---" or "+++", and modTime nil marks the side as missing.
func Header(prefix, label string, modTime *time.Time) string {
	date := MissingLabel
	if modTime != nil {
		date = Timestamp(*modTime)
	}
	return prefix + " " + label + "\t" + date + "\n"
}
