package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KromDaniel/patterndissect/pkg/node"
)

func TestEveryPrintedKindHasTemplates(t *testing.T) {
	compound := map[node.Kind][]Key{
		node.KindDollar:     {DollarKey(node.KindDollar, true), DollarKey(node.KindDollar, false)},
		node.KindUnixDollar: {DollarKey(node.KindUnixDollar, true), DollarKey(node.KindUnixDollar, false)},
		node.KindBound:      {BoundKey(node.BoundBoth), BoundKey(node.BoundNone)},
		node.KindGroupCurly: {CaptureKey(node.KindGroupCurly, true), CaptureKey(node.KindGroupCurly, false)},
		node.KindGroupTail:  {CaptureKey(node.KindGroupTail, true), CaptureKey(node.KindGroupTail, false)},
		node.KindRange:      {RangeKey(false), RangeKey(true)},
	}
	// never printed through the catalog
	silent := map[node.Kind]bool{node.KindProlog: true, node.KindOpaque: true}

	for _, k := range node.Kinds() {
		if silent[k] {
			require.False(t, Has(KindKey(k)), k.String())
			continue
		}
		keys, ok := compound[k]
		if !ok {
			keys = []Key{KindKey(k)}
		}
		for _, key := range keys {
			require.True(t, Has(key), "missing template %q", key)
		}
	}
}

func TestTemplatesAgreeOnArguments(t *testing.T) {
	verbs := func(s string) int {
		return strings.Count(s, "%") - 2*strings.Count(s, "%%")
	}
	for key, e := range templates {
		require.Equal(t, verbs(e.terse), verbs(e.verbose), "template %q", key)
		require.True(t, strings.HasPrefix(e.terse, "%s"), "template %q must start with the label", key)
		require.True(t, strings.HasPrefix(e.verbose, "%s"), "template %q must start with the label", key)
	}
}

func TestFormat(t *testing.T) {
	terse := New(Terse)
	verbose := New(Verbose)

	require.Equal(t, "Range. U+0030 \u2264 codePoint \u2264 U+0039", terse.Format(RangeKey(false), "Range", '0', '9'))
	require.Equal(t,
		"Range (character range). Match any character within the range from code point U+0030 to code point U+0039 (both ends inclusive)",
		verbose.Format(RangeKey(false), "Range", '0', '9'))
	require.Equal(t, "Curly. {2,inf} lazy:", terse.Format("Curly", "Curly", 2, "inf", node.Lazy))
	require.Equal(t, `Dollar. (?m:$)`, terse.Format(DollarKey(node.KindDollar, true), "Dollar"))
	require.Equal(t, "Branch. Attempt the following 3 alternatives in printed order:", verbose.Format("Branch", "Branch", 3))
}

func TestFormatMissingKey(t *testing.T) {
	c := New(Terse)
	require.Equal(t, "DEBUG node: Prolog", c.Format(KindKey(node.KindProlog), "Prolog"))
	_, ok := c.Lookup("nope")
	require.False(t, ok)
}

func TestParseVerbosity(t *testing.T) {
	tests := []struct {
		in      string
		want    Verbosity
		wantErr bool
	}{
		{"terse", Terse, false},
		{"SIMPLE", Terse, false},
		{"verbose", Verbose, false},
		{"explanatory", Verbose, false},
		{"", Verbose, false},
		{"loud", Verbose, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVerbosity(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Equal(t, got, New(got).Verbosity())
		})
	}
	require.Equal(t, "terse", Terse.String())
	require.Equal(t, "verbose", Verbose.String())
}
