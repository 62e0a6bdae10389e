package walker

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/KromDaniel/patterndissect/internal/catalog"
	"github.com/KromDaniel/patterndissect/internal/compiler"
	"github.com/KromDaniel/patterndissect/internal/trace"
	"github.com/KromDaniel/patterndissect/pkg/node"
)

func walk(t *testing.T, p *node.Pattern, v catalog.Verbosity) []string {
	t.Helper()
	var c trace.Collector
	w := New(catalog.New(v), &c, p.Accept, nil)
	require.NoError(t, w.Walk(p.Root, 0))
	out := make([]string, len(c.Lines))
	for i, l := range c.Lines {
		out[i] = l.String()
	}
	return out
}

func compile(t *testing.T, src string) *node.Pattern {
	t.Helper()
	p, err := compiler.Compile(src, 0)
	require.NoError(t, err)
	return p
}

func TestWalkScenarios(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{
			name:    "literal sequence",
			pattern: "abc",
			want: []string{
				"Slice. Sequence (length=3):",
				"  abc",
				"Accept. Accept match",
			},
		},
		{
			name:    "anchored",
			pattern: "^abc$",
			want: []string{
				`Begin. \A or default ^`,
				"Slice. Sequence (length=3):",
				"  abc",
				`Dollar. \Z or default $`,
				"Accept. Accept match",
			},
		},
		{
			name:    "negated class",
			pattern: "[^0-9]",
			want: []string{
				"Start. Start unanchored match (minLength=1)",
				"Complement. A\u0304:",
				"  Range. U+0030 \u2264 codePoint \u2264 U+0039",
				"Accept. Accept match",
			},
		},
		{
			name:    "alternation",
			pattern: "(a|b)",
			want: []string{
				"Start. Start unanchored match (minLength=1)",
				"GroupHead. ( local=0",
				"Branch. 2 alternatives (in printed order):",
				"  Single. Match code point: U+0061 LATIN SMALL LETTER A",
				"  ---",
				"  Single. Match code point: U+0062 LATIN SMALL LETTER B",
				"  ---",
				"  BranchConn.",
				"  GroupTail. ) group=1, local=0",
				"  Accept. Accept match",
			},
		},
		{
			name:    "bounded repetition",
			pattern: "a{2,3}",
			want: []string{
				"Start. Start unanchored match (minLength=2)",
				"Curly. {2,3} greedy:",
				"  Single. Match code point: U+0061 LATIN SMALL LETTER A",
				"  Accept. Accept match",
				"Accept. Accept match",
			},
		},
		{
			name:    "loop",
			pattern: "(a+b)*",
			want: []string{
				"Start. Start unanchored match (minLength=0)",
				"Loop. {0,inf} greedy loop (count=1, begin=0):",
				"  GroupHead. ( local=0",
				"  Curly. {1,inf} greedy:",
				"    Single. Match code point: U+0061 LATIN SMALL LETTER A",
				"    Accept. Accept match",
				"  Single. Match code point: U+0062 LATIN SMALL LETTER B",
				"  GroupTail. ) group=1, local=0",
				"Accept. Accept match",
			},
		},
		{
			name:    "bitmap",
			pattern: "[ca]",
			want: []string{
				"Start. Start unanchored match (minLength=1)",
				"BitClass. Match any of these 2 character(s):",
				"  ac",
				"Accept. Accept match",
			},
		},
		{
			name:    "lookbehind",
			pattern: "(?<!ab)c",
			want: []string{
				"Start. Start unanchored match (minLength=1)",
				"NotBehind. (?<!X) [-2, -2]:",
				"  Slice. Sequence (length=2):",
				"    ab",
				"  Accept. Accept match",
				"Single. Match code point: U+0063 LATIN SMALL LETTER C",
				"Accept. Accept match",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := walk(t, compile(t, tt.pattern), catalog.Terse)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("lines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWalkVerboseListsCodePoints(t *testing.T) {
	got := walk(t, compile(t, "abc"), catalog.Verbose)
	require.Equal(t, []string{
		"Slice. Match the following sequence of BMP characters (length=3):",
		"  abc",
		"  [U+0061][U+0062][U+0063]",
		"Accept. Accept match",
	}, got)
}

func TestWalkDeterministic(t *testing.T) {
	p := compile(t, `(?<name>x|yz)+?[a-f&&[^c]]\k<name>(?=q)`)
	first := walk(t, p, catalog.Verbose)
	second := walk(t, p, catalog.Verbose)
	require.Equal(t, first, second)
}

func TestWalkConnectorOnce(t *testing.T) {
	for _, k := range []int{1, 2, 5, 12} {
		alts := make([]string, k)
		for i := range alts {
			alts[i] = strings.Repeat("x", i+1)
		}
		got := walk(t, compile(t, "(?:"+strings.Join(alts, "|")+")"), catalog.Terse)

		conns, seps := 0, 0
		for _, l := range got {
			switch strings.TrimSpace(l) {
			case "BranchConn.":
				conns++
			case Separator:
				seps++
			}
		}
		if k == 1 {
			// a single alternative is not an alternation
			require.Zero(t, conns)
			continue
		}
		require.Equal(t, 1, conns, "k=%d", k)
		require.Equal(t, k, seps, "k=%d", k)
	}
}

func TestWalkLoopCycleTerminates(t *testing.T) {
	accept := &node.Accept{}
	body := &node.Single{CodePoint: 'x'}
	loop := &node.Loop{Body: body, Min: 0, Max: 1000}
	body.SetNext(loop)
	loop.SetNext(accept)
	prolog := &node.Prolog{Loop: loop}
	prolog.SetNext(accept)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	var c trace.Collector
	w := New(catalog.New(catalog.Terse), &c, accept, logger)
	require.NoError(t, w.Walk(prolog, 0))

	var got []string
	for _, l := range c.Lines {
		got = append(got, l.String())
	}
	require.Equal(t, []string{
		"Loop. {0,1000} greedy loop (count=0, begin=0):",
		"  Single. Match code point: U+0078 LATIN SMALL LETTER X",
		"Accept. Accept match",
	}, got)
	require.Less(t, w.steps, 10)
	require.Contains(t, buf.String(), "Loop body returned to its header.")
}

func TestWalkDepthMonotonic(t *testing.T) {
	var c trace.Collector
	p := compile(t, `^a\bb$`)
	require.NoError(t, New(catalog.New(catalog.Terse), &c, p.Accept, nil).Walk(p.Root, 3))
	for _, l := range c.Lines {
		if !l.Continuation {
			require.Equal(t, 3, l.Depth, l.Text)
		}
	}
}

func TestWalkOpaque(t *testing.T) {
	accept := &node.Accept{}
	opaque := &node.Opaque{Name: "LineEnding"}
	opaque.SetNext(accept)

	var c trace.Collector
	require.NoError(t, New(catalog.New(catalog.Verbose), &c, accept, nil).Walk(opaque, 0))
	require.Len(t, c.Lines, 2)
	require.Equal(t, "DEBUG node: LineEnding", c.Lines[0].Text)
	require.Equal(t, "Accept. Accept match", c.Lines[1].Text)
}

func TestWalkConsistencyErrors(t *testing.T) {
	accept := &node.Accept{}
	stray := &node.Accept{}

	t.Run("operand not at accept", func(t *testing.T) {
		r := &node.Range{Lower: '0', Upper: '9'}
		r.SetNext(stray)
		comp := &node.Complement{Operand: r}
		comp.SetNext(accept)

		var c trace.Collector
		err := New(catalog.New(catalog.Terse), &c, accept, nil).Walk(comp, 0)
		var cerr *trace.ConsistencyError
		require.True(t, errors.As(err, &cerr))
		require.Equal(t, 1, cerr.Depth)
		require.Equal(t, "Range", cerr.Construct)
	})

	t.Run("missing connector", func(t *testing.T) {
		b := &node.Branch{Atoms: []node.Node{accept}}
		var c trace.Collector
		err := New(catalog.New(catalog.Terse), &c, accept, nil).Walk(b, 0)
		var cerr *trace.ConsistencyError
		require.ErrorAs(t, err, &cerr)
		require.Equal(t, "Branch", cerr.Construct)
	})

	t.Run("cycle without loop header", func(t *testing.T) {
		a := &node.Single{CodePoint: 'a'}
		b := &node.Single{CodePoint: 'b'}
		a.SetNext(b)
		b.SetNext(a)
		var c trace.Collector
		err := New(catalog.New(catalog.Terse), &c, accept, nil).Walk(a, 0)
		var cerr *trace.ConsistencyError
		require.ErrorAs(t, err, &cerr)
		require.Contains(t, cerr.Reason, "cycle")
	})

	t.Run("nil root", func(t *testing.T) {
		var c trace.Collector
		err := New(catalog.New(catalog.Terse), &c, accept, nil).Walk(nil, 0)
		require.Error(t, err)
	})
}

func TestBound(t *testing.T) {
	require.Equal(t, "7", bound(7))
	require.Equal(t, "inf", bound(node.Unbounded))
}
