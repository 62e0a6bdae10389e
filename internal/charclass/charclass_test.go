package charclass

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/KromDaniel/patterndissect/internal/catalog"
	"github.com/KromDaniel/patterndissect/internal/trace"
	"github.com/KromDaniel/patterndissect/pkg/node"
)

func TestPrintable(t *testing.T) {
	tests := []struct {
		name    string
		r       rune
		inClass bool
		want    bool
	}{
		{"letter", 'a', false, true},
		{"digit", '7', false, true},
		{"symbol", '€', false, true},
		{"space", ' ', false, false},
		{"newline", '\n', true, false},
		{"nbsp", 0x00A0, true, false},
		{"soft hyphen", 0x00AD, true, false},
		{"line separator", 0x2028, false, false},
		{"private use", 0xE000, true, false},
		{"unassigned", 0x0378, true, false},
		{"combining mark in sequence", 0x0301, false, false},
		{"combining mark in class", 0x0301, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Printable(tt.r, tt.inClass))
		})
	}
}

func TestGlyphs(t *testing.T) {
	require.Equal(t, `a\u{0020}b\u{000A}`, Glyphs([]rune("a b\n"), false))
	require.Equal(t, `e\u{0301}`, Glyphs([]rune("e\u0301"), false))
	require.Equal(t, "e\u0301", Glyphs([]rune("e\u0301"), true))
}

func TestCodePointListRoundTrip(t *testing.T) {
	runes := []rune("a\u00e9\U0001F600")
	s := CodePointList(runes)
	require.Equal(t, "[U+0061][U+00E9][U+1F600]", s)

	back, err := ParseCodePointList(s)
	require.NoError(t, err)
	require.Equal(t, runes, back)

	_, err = ParseCodePointList("[U+ZZ]")
	require.Error(t, err)
	_, err = ParseCodePointList("U+0061")
	require.Error(t, err)
}

// The printed code points of a bitmap leaf re-encode to the same bitmap.
func TestBitmapRoundTrip(t *testing.T) {
	bitmaps := [][256]bool{
		{},
		EncodeBitmap([]rune("abcxyz")),
		EncodeBitmap([]rune{0, 0x7F, 0x80, 0xFF, '\t', ' '}),
	}
	var all [256]bool
	for i := range all {
		all[i] = i%3 == 0
	}
	bitmaps = append(bitmaps, all)

	for i, bits := range bitmaps {
		var c trace.Collector
		r := NewRenderer(catalog.New(catalog.Verbose), &c, nil)
		require.NoError(t, r.Render(&node.BitClass{Bits: bits}, 0, true))
		require.Len(t, c.Lines, 3, "bitmap %d", i)

		printed, err := ParseCodePointList(c.Lines[2].Text)
		require.NoError(t, err)
		require.Equal(t, bits, EncodeBitmap(printed), "bitmap %d", i)
		require.Equal(t, DecodeBitmap(bits), printed)
	}
}

func TestCodePointsByVerbosity(t *testing.T) {
	runes := []rune("a\tb")

	var terse trace.Collector
	require.NoError(t, NewRenderer(catalog.New(catalog.Terse), &terse, nil).CodePoints(1, runes, false))
	require.Equal(t, []string{`    a\u{0009}b`}, lines(&terse))

	var verbose trace.Collector
	require.NoError(t, NewRenderer(catalog.New(catalog.Verbose), &verbose, nil).CodePoints(1, runes, false))
	require.Equal(t, []string{`    a\u{0009}b`, "    [U+0061][U+0009][U+0062]"}, lines(&verbose))
	for _, l := range verbose.Lines {
		require.True(t, l.Continuation)
		require.Equal(t, 2, l.Depth)
	}
}

func TestName(t *testing.T) {
	require.Equal(t, "LATIN SMALL LETTER E WITH ACUTE", Name(0x00E9))
	require.Equal(t, `\u{0378}`, Name(0x0378))
}

func lines(c *trace.Collector) []string {
	out := make([]string, len(c.Lines))
	for i, l := range c.Lines {
		out[i] = l.String()
	}
	return out
}

func TestRenderTree(t *testing.T) {
	accept := &node.Accept{}
	leaf := func(cp node.CharProperty) node.CharProperty {
		cp.SetNext(accept)
		return cp
	}

	diff := &node.Difference{
		Left:  leaf(&node.Category{Name: "L"}),
		Right: leaf(&node.Union{Left: leaf(&node.Ctype{Class: node.ClassUpper}), Right: leaf(&node.Single{CodePoint: 'x'})}),
	}
	diff.SetNext(accept)

	var c trace.Collector
	r := NewRenderer(catalog.New(catalog.Terse), &c, accept)
	require.NoError(t, r.Render(diff, 1, true))

	want := []string{
		"  Difference. A \u2216 B:",
		`    Category. \p{L}`,
		"    Union. A \u222a B:",
		"      Ctype. POSIX (US-ASCII): UPPER",
		"      Single. Match code point: U+0078 LATIN SMALL LETTER X",
	}
	if d := cmp.Diff(want, lines(&c)); d != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", d)
	}
}

func TestRenderLeaves(t *testing.T) {
	tests := []struct {
		cp   node.CharProperty
		want string
	}{
		{&node.Range{Lower: 'a', Upper: 'f', Fold: true}, "Range. U+0061 \u2264 codePoint \u2264 U+0066 (?i)"},
		{&node.SingleI{Lower: 'k', Upper: 'K'}, "SingleI. Caseless ASCII match: U+006B / U+004B"},
		{&node.SingleU{Lower: 'ß'}, "SingleU. Caseless match. Lowercase code point: U+00DF LATIN SMALL LETTER SHARP S"},
		{&node.Single{CodePoint: 0x1F600}, "SingleS. Match code point: U+1F600 GRINNING FACE"},
		{&node.Dot{Mode: node.DotModeAll}, "All. (?s:.)"},
	}
	for _, tt := range tests {
		t.Run(tt.cp.Kind().String(), func(t *testing.T) {
			var c trace.Collector
			require.NoError(t, NewRenderer(catalog.New(catalog.Terse), &c, nil).Render(tt.cp, 0, true))
			require.Equal(t, []string{tt.want}, lines(&c))
		})
	}
}

func TestRenderConsistency(t *testing.T) {
	accept := &node.Accept{}

	t.Run("operand successor", func(t *testing.T) {
		op := &node.Single{CodePoint: 'a'}
		op.SetNext(&node.Accept{})
		comp := &node.Complement{Operand: op}

		var c trace.Collector
		err := NewRenderer(catalog.New(catalog.Terse), &c, accept).Render(comp, 0, true)
		var cerr *trace.ConsistencyError
		require.True(t, errors.As(err, &cerr))
		require.Equal(t, 1, cerr.Depth)
		require.True(t, strings.Contains(cerr.Error(), "accept node"))
	})

	t.Run("missing operand", func(t *testing.T) {
		var c trace.Collector
		err := NewRenderer(catalog.New(catalog.Terse), &c, accept).Render(&node.Intersection{}, 2, true)
		var cerr *trace.ConsistencyError
		require.ErrorAs(t, err, &cerr)
		require.Equal(t, "Intersection", cerr.Construct)
		require.Equal(t, 2, cerr.Depth)
	})
}
