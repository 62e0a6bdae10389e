// Package compiler turns pattern source text into the node graph that the
// walker prints. Two front-ends share one lowering step: a parser for the
// backtracking dialect (possessive quantifiers, lookbehind, class
// intersection) and an adapter over regexp/syntax for RE2 patterns.
package compiler

import (
	"fmt"
	"log/slog"

	"github.com/KromDaniel/patterndissect/pkg/node"
)

// Error is a syntax error in a pattern.
type Error struct {
	Msg     string
	Pattern string
	// Index is the code point offset of the error, or -1 when unknown.
	Index int
}

func (e *Error) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s in pattern %q", e.Msg, e.Pattern)
	}
	return fmt.Sprintf("%s near index %d in pattern %q", e.Msg, e.Index, e.Pattern)
}

// Compiler compiles patterns. The zero value is not usable; use New.
type Compiler struct {
	logger *Logger
}

// New returns a compiler that reports lowering decisions to logger at
// debug level. A nil logger discards them.
func New(logger *slog.Logger) *Compiler {
	return &Compiler{logger: NewLogger(logger)}
}

// Compile parses src in the backtracking dialect under flags.
func (c *Compiler) Compile(src string, flags node.Flags) (*node.Pattern, error) {
	c.logger.Section("Parsing")
	c.logger.Log("pattern %q, flags %s", src, flags)

	accept := &node.Accept{}
	p := newParser(src, flags, accept)
	t, err := p.parse()
	if err != nil {
		return nil, err
	}
	return build(t, src, flags, p.groups, p.names, accept, c.logger), nil
}

// CompileRE2 parses src with RE2 syntax and Perl flags.
func (c *Compiler) CompileRE2(src string) (*node.Pattern, error) {
	c.logger.Section("Parsing")
	c.logger.Log("RE2 pattern %q", src)

	accept := &node.Accept{}
	a := newRE2Adapter(accept)
	t, err := a.parse(src)
	if err != nil {
		return nil, err
	}
	return build(t, src, a.flags, a.groups, a.names, accept, c.logger), nil
}

// Compile is New(nil).Compile(src, flags).
func Compile(src string, flags node.Flags) (*node.Pattern, error) {
	return New(nil).Compile(src, flags)
}

// CompileRE2 is New(nil).CompileRE2(src).
func CompileRE2(src string) (*node.Pattern, error) {
	return New(nil).CompileRE2(src)
}
