// Package trace holds the line records produced by a dissection and the
// sinks that receive them.
package trace

import (
	"fmt"
	"io"
	"strings"
)

// IndentWidth is the number of spaces per nesting level.
const IndentWidth = 2

// Line is one record of a structural trace.
type Line struct {
	Depth int
	// Label is the construct name; empty for continuation lines.
	Label string
	Text  string
	// Continuation marks lines that list code points of the construct
	// printed just before them.
	Continuation bool
}

// String renders the line with its indentation.
func (l Line) String() string {
	return strings.Repeat(" ", l.Depth*IndentWidth) + l.Text
}

// Sink receives lines in print order.
type Sink interface {
	Emit(Line) error
}

// Collector accumulates lines in memory.
type Collector struct {
	Lines []Line
}

// Emit appends l.
func (c *Collector) Emit(l Line) error {
	c.Lines = append(c.Lines, l)
	return nil
}

// Writer streams rendered lines to an io.Writer as they are produced.
type Writer struct {
	w io.Writer
}

// NewWriter returns a sink writing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Emit writes l followed by a newline.
func (s *Writer) Emit(l Line) error {
	_, err := fmt.Fprintln(s.w, l.String())
	return err
}

// ConsistencyError reports a violated graph invariant. It is fatal for the
// dissection that hit it.
type ConsistencyError struct {
	Depth     int
	Construct string
	Reason    string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("inconsistent graph at depth %d (%s): %s", e.Depth, e.Construct, e.Reason)
}
