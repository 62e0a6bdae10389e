package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/KromDaniel/patterndissect/pkg/dissect"
	"github.com/KromDaniel/patterndissect/pkg/node"
)

func TestLoadSamples(t *testing.T) {
	f, err := Load("testdata/samples.hcl", nil)
	require.NoError(t, err)
	require.Equal(t, "terse", f.Verbosity)
	require.Len(t, f.Patterns, 36)

	byName := make(map[string]Pattern, len(f.Patterns))
	for _, p := range f.Patterns {
		byName[p.Name] = p
	}

	want := map[string]Pattern{
		"anchor_default":    {Name: "anchor_default", Source: "^abc$", Dialect: DialectJava},
		"anchor_unix_lines": {Name: "anchor_unix_lines", Source: "^abc$", Flags: node.UnixLines, Dialect: DialectJava},
		"anchor_text":       {Name: "anchor_text", Source: `\Aabc\Z`, Dialect: DialectJava},
		"sequence_literal":  {Name: "sequence_literal", Source: "a+(b", Flags: node.Literal, Dialect: DialectJava},
		"re2_lines":         {Name: "re2_lines", Source: `(?m)^[[:alpha:]]+\z`, Dialect: DialectRE2},
	}
	for name, w := range want {
		if d := cmp.Diff(w, byName[name]); d != "" {
			t.Errorf("pattern %s mismatch (-want +got):\n%s", name, d)
		}
	}
}

// Every sample compiles and dissects.
func TestSamplesDissect(t *testing.T) {
	f, err := Load("testdata/samples.hcl", nil)
	require.NoError(t, err)
	d, err := dissect.New(dissect.Options{Verbosity: f.Verbosity})
	require.NoError(t, err)

	for _, p := range f.Patterns {
		t.Run(p.Name, func(t *testing.T) {
			var out *dissect.Dissection
			if p.Dialect == DialectRE2 {
				out, err = d.DissectRE2(p.Source)
			} else {
				out, err = d.DissectSource(p.Source, p.Flags)
			}
			require.NoError(t, err)
			require.NotEmpty(t, out.Lines)
			require.Equal(t, "Accept. Accept match", out.Lines[len(out.Lines)-1].Text)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"syntax", `pattern "a" {`, "failed to parse"},
		{"missing source", `pattern "a" {}`, "failed to decode"},
		{"undefined flag variable", "pattern \"a\" {\nsource = \"x\"\nflags = [flag.bogus]\n}", "failed to decode"},
		{"unknown flag name", "pattern \"a\" {\nsource = \"x\"\nflags = [\"bogus\"]\n}", `unknown flag "bogus"`},
		{"duplicate", "pattern \"a\" { source = \"x\" }\npattern \"a\" { source = \"y\" }", `duplicate pattern "a"`},
		{"verbosity", `verbosity = "chatty"`, "verbosity"},
		{"dialect", "pattern \"a\" {\nsource = \"x\"\ndialect = \"pcre\"\n}", `unknown dialect "pcre"`},
		{"re2 flags", "pattern \"a\" {\nsource = \"x\"\ndialect = \"re2\"\nflags = [flag.multiline]\n}", "re2 dialect"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "batch.hcl", nil)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseFlags(t *testing.T) {
	f, err := ParseFlags([]string{"multiline", "case_insensitive", "dotall"})
	require.NoError(t, err)
	require.Equal(t, node.Multiline|node.CaseInsensitive|node.DotAll, f)

	f, err = ParseFlags(nil)
	require.NoError(t, err)
	require.Zero(t, f)
}

func TestParseDialect(t *testing.T) {
	for in, want := range map[string]Dialect{"": DialectJava, "Java": DialectJava, "re2": DialectRE2} {
		got, err := ParseDialect(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := ParseDialect("posix")
	require.Error(t, err)
}

func TestEvalContext(t *testing.T) {
	ctx := EvalContext()
	flags := ctx.Variables["flag"].AsValueMap()
	require.Len(t, flags, len(node.FlagNames()))
	require.Equal(t, "unicode-case", flags["unicode_case"].AsString())
	require.Equal(t, "verbose", ctx.Variables["verbosity"].GetAttr("verbose").AsString())
}
