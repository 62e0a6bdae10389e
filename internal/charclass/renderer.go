package charclass

import (
	"fmt"

	"github.com/KromDaniel/patterndissect/internal/catalog"
	"github.com/KromDaniel/patterndissect/internal/trace"
	"github.com/KromDaniel/patterndissect/pkg/node"
)

// Renderer prints character-class nodes into a sink.
type Renderer struct {
	cat    *catalog.Catalog
	sink   trace.Sink
	accept node.Node
}

// NewRenderer returns a renderer that validates operand successors
// against accept.
func NewRenderer(cat *catalog.Catalog, sink trace.Sink, accept node.Node) *Renderer {
	return &Renderer{cat: cat, sink: sink, accept: accept}
}

// Render prints cp at depth and, for combinators, its operands one level
// deeper. outer is set for a property on the primary path of the graph;
// every other property is a combinator operand and must have the
// pattern's accept node as its successor.
func (r *Renderer) Render(cp node.CharProperty, depth int, outer bool) error {
	if err := r.render(cp, depth); err != nil {
		return err
	}
	if !outer {
		return r.checkUnusedNext(cp, depth)
	}
	return nil
}

func (r *Renderer) render(cp node.CharProperty, depth int) error {
	label := cp.Kind().String()

	switch n := cp.(type) {
	case *node.Complement, *node.Union, *node.Intersection, *node.Difference:
		if err := r.line(depth, label, r.cat.Format(catalog.KindKey(cp.Kind()), label)); err != nil {
			return err
		}
		for _, op := range node.Operands(cp) {
			if op == nil {
				return &trace.ConsistencyError{Depth: depth, Construct: label, Reason: "combinator operand missing"}
			}
			if err := r.Render(op, depth+1, false); err != nil {
				return err
			}
		}
		return nil

	case *node.Range:
		return r.line(depth, label, r.cat.Format(catalog.RangeKey(n.Fold), label, n.Lower, n.Upper))

	case *node.Ctype:
		return r.line(depth, label, r.cat.Format(catalog.KindKey(n.Kind()), label, n.Class))

	case *node.Category:
		return r.line(depth, label, r.cat.Format(catalog.KindKey(n.Kind()), label, n.Name))

	case *node.BitClass:
		codePoints := DecodeBitmap(n.Bits)
		if err := r.line(depth, label, r.cat.Format(catalog.KindKey(n.Kind()), label, len(codePoints))); err != nil {
			return err
		}
		return r.CodePoints(depth, codePoints, true)

	case *node.Single:
		return r.line(depth, label, r.cat.Format(catalog.KindKey(n.Kind()), label, n.CodePoint, Name(n.CodePoint)))

	case *node.SingleU:
		return r.line(depth, label, r.cat.Format(catalog.KindKey(n.Kind()), label, n.Lower, Name(n.Lower)))

	case *node.SingleI:
		return r.line(depth, label, r.cat.Format(catalog.KindKey(n.Kind()), label, n.Lower, n.Upper))

	case *node.Dot:
		return r.line(depth, label, r.cat.Format(catalog.KindKey(n.Kind()), label))
	}

	return r.line(depth, label, fmt.Sprintf("DEBUG charProp: %T", cp))
}

// CodePoints prints the continuation lines listing runes one level below
// depth: the glyph line, then in verbose mode the U+XXXX list.
func (r *Renderer) CodePoints(depth int, runes []rune, inClass bool) error {
	if err := r.sink.Emit(trace.Line{Depth: depth + 1, Text: Glyphs(runes, inClass), Continuation: true}); err != nil {
		return err
	}
	if r.cat.Verbosity() == catalog.Verbose {
		return r.sink.Emit(trace.Line{Depth: depth + 1, Text: CodePointList(runes), Continuation: true})
	}
	return nil
}

// checkUnusedNext enforces that an operand's successor is the accept node.
func (r *Renderer) checkUnusedNext(cp node.CharProperty, depth int) error {
	if r.accept == nil || cp.Next() != r.accept {
		return &trace.ConsistencyError{
			Depth:     depth,
			Construct: cp.Kind().String(),
			Reason:    "character class operand must continue at the accept node",
		}
	}
	return nil
}

func (r *Renderer) line(depth int, label, text string) error {
	return r.sink.Emit(trace.Line{Depth: depth, Label: label, Text: text})
}
