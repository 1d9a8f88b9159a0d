package codegen

import (
	"fmt"
	"strings"

	"cogentcore.org/core/base/indent"
)

// DefaultIndentWidth is the number of spaces per depth level.
const DefaultIndentWidth = 4

// Writer accumulates generated lines at a current indentation depth.
type Writer struct {
	sb    strings.Builder
	width int
	depth int
	lines int
}

func newWriter(width int) *Writer {
	return &Writer{width: width}
}

// Depth returns the current indentation depth.
func (w *Writer) Depth() int { return w.depth }

// Line writes one indented line followed by a newline.
func (w *Writer) Line(format string, args ...any) {
	w.sb.WriteString(indent.Spaces(w.depth, w.width))
	fmt.Fprintf(&w.sb, format, args...)
	w.sb.WriteByte('\n')
	w.lines++
}

// raw writes s without indentation and without counting it as a statement.
func (w *Writer) raw(s string) {
	w.sb.WriteString(s)
}

func (w *Writer) String() string { return w.sb.String() }
