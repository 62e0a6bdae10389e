// Package config loads batch files that list patterns to dissect.
//
// A batch file is HCL:
//
//	verbosity = verbosity.terse
//
//	pattern "anchors" {
//	  source  = "^abc$"
//	  flags   = [flag.multiline]
//	  dialect = "java"
//	}
//
// The evaluation context exposes every compile flag under flag.* (dashes
// become underscores) and both verbosities under verbosity.*.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/KromDaniel/patterndissect/internal/catalog"
	"github.com/KromDaniel/patterndissect/pkg/node"
)

// Dialect selects the front-end that compiles a pattern source.
type Dialect string

const (
	DialectJava Dialect = "java"
	DialectRE2  Dialect = "re2"
)

// ParseDialect accepts "java", "re2" or empty (java).
func ParseDialect(s string) (Dialect, error) {
	switch Dialect(strings.ToLower(strings.TrimSpace(s))) {
	case "", DialectJava:
		return DialectJava, nil
	case DialectRE2:
		return DialectRE2, nil
	}
	return "", fmt.Errorf("unknown dialect %q (want java or re2)", s)
}

// Pattern is one pattern entry of a batch file.
type Pattern struct {
	Name    string
	Source  string
	Flags   node.Flags
	Dialect Dialect
}

// File is a decoded batch file.
type File struct {
	// Verbosity is empty when the file does not set one.
	Verbosity string
	Patterns  []Pattern
}

type hclFile struct {
	Verbosity *string       `hcl:"verbosity,optional"`
	Patterns  []*hclPattern `hcl:"pattern,block"`
}

type hclPattern struct {
	Name    string   `hcl:"name,label"`
	Source  string   `hcl:"source"`
	Flags   []string `hcl:"flags,optional"`
	Dialect *string  `hcl:"dialect,optional"`
}

// EvalContext returns the variables visible to batch file expressions.
func EvalContext() *hcl.EvalContext {
	flags := make(map[string]cty.Value)
	for _, name := range node.FlagNames() {
		flags[strings.ReplaceAll(name, "-", "_")] = cty.StringVal(name)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"flag": cty.ObjectVal(flags),
			"verbosity": cty.ObjectVal(map[string]cty.Value{
				catalog.Terse.String():   cty.StringVal(catalog.Terse.String()),
				catalog.Verbose.String(): cty.StringVal(catalog.Verbose.String()),
			}),
		},
	}
}

// Load reads and decodes the batch file at path.
func Load(path string, logger *slog.Logger) (*File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	return Parse(src, path, logger)
}

// Parse decodes batch file source; filename is used in diagnostics.
func Parse(src []byte, filename string, logger *slog.Logger) (*File, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger.Debug("Decoding batch file.", "path", filename)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var raw hclFile
	diags = gohcl.DecodeBody(file.Body, EvalContext(), &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	out := &File{}
	if raw.Verbosity != nil {
		if _, err := catalog.ParseVerbosity(*raw.Verbosity); err != nil {
			return nil, fmt.Errorf("%s: verbosity: %w", filename, err)
		}
		out.Verbosity = *raw.Verbosity
	}

	seen := make(map[string]bool, len(raw.Patterns))
	for _, rp := range raw.Patterns {
		if seen[rp.Name] {
			return nil, fmt.Errorf("%s: duplicate pattern %q", filename, rp.Name)
		}
		seen[rp.Name] = true

		p, err := decodePattern(rp)
		if err != nil {
			return nil, fmt.Errorf("%s: pattern %q: %w", filename, rp.Name, err)
		}
		out.Patterns = append(out.Patterns, p)
	}

	logger.Debug("Successfully decoded batch file.", "path", filename, "patterns_found", len(out.Patterns))
	return out, nil
}

func decodePattern(rp *hclPattern) (Pattern, error) {
	p := Pattern{Name: rp.Name, Source: rp.Source, Dialect: DialectJava}
	flags, err := ParseFlags(rp.Flags)
	if err != nil {
		return Pattern{}, err
	}
	p.Flags = flags
	if rp.Dialect != nil {
		d, err := ParseDialect(*rp.Dialect)
		if err != nil {
			return Pattern{}, err
		}
		p.Dialect = d
	}
	if p.Dialect == DialectRE2 && p.Flags != 0 {
		return Pattern{}, fmt.Errorf("flags are not supported by the re2 dialect, use inline (?flags)")
	}
	return p, nil
}

// ParseFlags combines flag names as printed by node.Flags.String.
// Underscores are accepted in place of dashes.
func ParseFlags(names []string) (node.Flags, error) {
	var flags node.Flags
	for _, name := range names {
		f, ok := node.ParseFlag(strings.ReplaceAll(name, "_", "-"))
		if !ok {
			return 0, fmt.Errorf("unknown flag %q (want one of %s)", name, strings.Join(node.FlagNames(), ", "))
		}
		flags |= f
	}
	return flags, nil
}
