package trace

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLineString(t *testing.T) {
	require.Equal(t, "Accept. Accept match", Line{Text: "Accept. Accept match"}.String())
	require.Equal(t, "    abc", Line{Depth: 2, Text: "abc", Continuation: true}.String())
}

func TestSinks(t *testing.T) {
	lines := []Line{
		{Depth: 0, Label: "Slice", Text: "Slice. Sequence (length=2):"},
		{Depth: 1, Text: "ab", Continuation: true},
	}

	var c Collector
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, l := range lines {
		require.NoError(t, c.Emit(l))
		require.NoError(t, w.Emit(l))
	}
	require.Equal(t, lines, c.Lines)
	require.Equal(t, "Slice. Sequence (length=2):\n  ab\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriterPropagatesErrors(t *testing.T) {
	err := NewWriter(failingWriter{}).Emit(Line{Text: "x"})
	require.EqualError(t, err, "disk full")
}

func TestConsistencyError(t *testing.T) {
	err := &ConsistencyError{Depth: 3, Construct: "Range", Reason: "operand must continue at the accept node"}
	require.Equal(t, "inconsistent graph at depth 3 (Range): operand must continue at the accept node", err.Error())
}
