package dissect

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KromDaniel/patterndissect/internal/catalog"
	"github.com/KromDaniel/patterndissect/internal/compiler"
	"github.com/KromDaniel/patterndissect/internal/trace"
	"github.com/KromDaniel/patterndissect/pkg/node"
)

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"default", Options{}, false},
		{"terse", Options{Verbosity: "terse"}, false},
		{"verbose", Options{Verbosity: "verbose"}, false},
		{"unknown", Options{Verbosity: "chatty"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				require.Error(t, err)
				_, err = New(tt.opts)
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestDissectSource(t *testing.T) {
	d, err := New(Options{Verbosity: "terse"})
	require.NoError(t, err)
	require.Equal(t, catalog.Terse, d.Verbosity())

	out, err := d.DissectSource("^abc$", 0)
	require.NoError(t, err)
	require.Equal(t, "^abc$", out.Pattern)
	require.Equal(t, "^abc$\n"+
		"Begin. \\A or default ^\n"+
		"Slice. Sequence (length=3):\n"+
		"  abc\n"+
		"Dollar. \\Z or default $\n"+
		"Accept. Accept match\n", out.String())

	var buf bytes.Buffer
	n, err := out.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), n)
	require.Equal(t, out.String(), buf.String())
}

func TestDissectLiteralFlag(t *testing.T) {
	d, err := New(Options{Verbosity: "terse"})
	require.NoError(t, err)

	out, err := d.DissectSource("a+(b", node.Literal)
	require.NoError(t, err)
	require.Equal(t, "BnM. Boyer-Moore (BMP only version) (length=4)", out.Lines[0].Text)
	require.Equal(t, "a+(b", out.Lines[1].Text)
}

func TestDissectCompileError(t *testing.T) {
	d, err := New(Options{})
	require.NoError(t, err)

	_, err = d.DissectSource("[a", 0)
	var cerr *compiler.Error
	require.True(t, errors.As(err, &cerr))
	require.Equal(t, "Unclosed character class", cerr.Msg)

	_, err = d.DissectRE2("a[")
	require.ErrorAs(t, err, &cerr)
}

func TestDissectRE2(t *testing.T) {
	d, err := New(Options{Verbosity: "terse"})
	require.NoError(t, err)

	out, err := d.DissectRE2(`^a\z`)
	require.NoError(t, err)
	var texts []string
	for _, l := range out.Lines {
		texts = append(texts, l.Text)
	}
	require.Equal(t, []string{
		`Begin. \A or default ^`,
		"Single. Match code point: U+0061 LATIN SMALL LETTER A",
		`End. \z`,
		"Accept. Accept match",
	}, texts)
}

func TestDissectConsistencyError(t *testing.T) {
	accept := &node.Accept{}
	op := &node.Single{CodePoint: 'a'}
	op.SetNext(op)
	comp := &node.Complement{Operand: op}
	comp.SetNext(accept)
	p := &node.Pattern{Source: "[^a]", Root: comp, Accept: accept}

	d, err := New(Options{})
	require.NoError(t, err)
	_, err = d.Dissect(p)
	var cerr *trace.ConsistencyError
	require.ErrorAs(t, err, &cerr)
	require.Contains(t, err.Error(), `"[^a]"`)
}

func TestDissectDeterministic(t *testing.T) {
	d, err := New(Options{})
	require.NoError(t, err)
	p, err := compiler.Compile(`(?i)(\w+)@([a-z0-9.-]+|\[[^\]]*\])(?!x)`, 0)
	require.NoError(t, err)

	first, err := d.Dissect(p)
	require.NoError(t, err)
	second, err := d.Dissect(p)
	require.NoError(t, err)
	require.Equal(t, first.String(), second.String())
}

func TestStream(t *testing.T) {
	d, err := New(Options{Verbosity: "verbose"})
	require.NoError(t, err)
	p, err := compiler.Compile("x|yz", 0)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, d.Stream(&buf, p))
	out, err := d.Dissect(p)
	require.NoError(t, err)
	require.Equal(t, out.String()+"\n", buf.String())
	require.True(t, strings.HasPrefix(buf.String(), "x|yz\n"))

	require.Error(t, d.Stream(&buf, nil))
	_, err = d.Dissect(nil)
	require.Error(t, err)
}
