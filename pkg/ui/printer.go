package ui

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/hamstercage/pkg/errors"
)

// Printer writes user facing output to one writer
type Printer struct {
	w      io.Writer
	styles Styles
}

// NewPrinter creates a printer for w. FormatAuto styles only terminals.
func NewPrinter(w io.Writer, format Format) *Printer {
	return &Printer{w: w, styles: NewStyles(w, format)}
}

// Writer returns the underlying writer
func (p *Printer) Writer() io.Writer {
	return p.w
}

// Error prints "Error: <message>". Coded errors show their message
// without the code prefix.
func (p *Printer) Error(err error) {
	fmt.Fprintln(p.w, p.styles.Error.Render("Error:")+" "+ErrorMessage(err))
}

// Warning prints "Warning: <message>"
func (p *Printer) Warning(msg string) {
	fmt.Fprintln(p.w, p.styles.Warning.Render("Warning:")+" "+msg)
}

// Println prints a plain line
func (p *Printer) Println(a ...interface{}) {
	fmt.Fprintln(p.w, a...)
}

// DiffLines prints unified diff lines, colored by their prefix
func (p *Printer) DiffLines(lines []string) {
	for _, line := range lines {
		io.WriteString(p.w, p.diffLine(line))
	}
}

func (p *Printer) diffLine(line string) string {
	body := strings.TrimSuffix(line, "\n")
	var styled string
	switch {
	case strings.HasPrefix(body, "---"), strings.HasPrefix(body, "+++"):
		styled = p.styles.Header.Render(body)
	case strings.HasPrefix(body, "@@"):
		styled = p.styles.Hunk.Render(body)
	case strings.HasPrefix(body, "+"):
		styled = p.styles.Added.Render(body)
	case strings.HasPrefix(body, "-"):
		styled = p.styles.Removed.Render(body)
	default:
		styled = body
	}
	return styled + "\n"
}

// DiffWriter returns a writer that colors each complete diff line written
// to it. Call Flush on the result to emit a trailing partial line.
func (p *Printer) DiffWriter() *DiffWriter {
	return &DiffWriter{p: p}
}

// DiffWriter colors unified diff output line by line
type DiffWriter struct {
	p       *Printer
	pending []byte
}

func (d *DiffWriter) Write(b []byte) (int, error) {
	d.pending = append(d.pending, b...)
	for {
		i := bytes.IndexByte(d.pending, '\n')
		if i < 0 {
			return len(b), nil
		}
		line := string(d.pending[:i+1])
		d.pending = d.pending[i+1:]
		if _, err := io.WriteString(d.p.w, d.p.diffLine(line)); err != nil {
			return len(b), err
		}
	}
}

// Flush writes out a final line that had no newline
func (d *DiffWriter) Flush() error {
	if len(d.pending) == 0 {
		return nil
	}
	line := string(d.pending)
	d.pending = nil
	_, err := io.WriteString(d.p.w, d.p.diffLine(line))
	return err
}

// ErrorMessage returns the message of err without the [CODE] prefix coded
// errors carry in Error()
func ErrorMessage(err error) string {
	var hcErr *errors.HamstercageError
	if stderrors.As(err, &hcErr) {
		if hcErr.Wrapped != nil {
			return fmt.Sprintf("%s: %s", hcErr.Message, ErrorMessage(hcErr.Wrapped))
		}
		return hcErr.Message
	}
	return err.Error()
}
