package compiler

import (
	"errors"
	"regexp/syntax"
	"unicode"

	"github.com/KromDaniel/patterndissect/pkg/node"
)

// re2Adapter maps a regexp/syntax tree onto terms.
type re2Adapter struct {
	accept *node.Accept
	flags  node.Flags
	groups int
	names  map[string]int
}

func newRE2Adapter(accept *node.Accept) *re2Adapter {
	return &re2Adapter{accept: accept, names: make(map[string]int)}
}

func (a *re2Adapter) parse(src string) (*term, error) {
	re, err := syntax.Parse(src, syntax.Perl)
	if err != nil {
		var se *syntax.Error
		if errors.As(err, &se) {
			return nil, &Error{Msg: se.Code.String() + ": " + se.Expr, Pattern: src, Index: -1}
		}
		return nil, &Error{Msg: err.Error(), Pattern: src, Index: -1}
	}
	a.groups = re.MaxCap()
	return a.term(re), nil
}

func (a *re2Adapter) term(re *syntax.Regexp) *term {
	switch re.Op {
	case syntax.OpNoMatch:
		return &term{op: opOpaque, name: "NoMatch"}
	case syntax.OpEmptyMatch:
		return &term{op: opEmpty}

	case syntax.OpLiteral:
		fold := node.FoldNone
		if re.Flags&syntax.FoldCase != 0 {
			fold = node.FoldUnicode
		}
		return &term{op: opLiteral, runes: append([]rune(nil), re.Rune...), fold: fold}

	case syntax.OpCharClass:
		return &term{op: opClass, class: a.class(re.Rune)}
	case syntax.OpAnyCharNotNL:
		return &term{op: opClass, class: a.link(&node.Dot{Mode: node.DotModeUnix})}
	case syntax.OpAnyChar:
		return &term{op: opClass, class: a.link(&node.Dot{Mode: node.DotModeAll})}

	case syntax.OpBeginLine:
		return &term{op: opCaret, unix: true}
	case syntax.OpEndLine:
		return &term{op: opDollar, unix: true, multiline: true}
	case syntax.OpBeginText:
		return &term{op: opBegin}
	case syntax.OpEndText:
		return &term{op: opEnd}
	case syntax.OpWordBoundary:
		return &term{op: opBound, bound: node.BoundBoth}
	case syntax.OpNoWordBoundary:
		return &term{op: opBound, bound: node.BoundNone}

	case syntax.OpCapture:
		if re.Name != "" {
			a.names[re.Name] = re.Cap
		}
		return &term{op: opGroup, capture: true, group: re.Cap, name: re.Name, subs: []*term{a.term(re.Sub[0])}}

	case syntax.OpStar, syntax.OpPlus, syntax.OpQuest, syntax.OpRepeat:
		t := &term{op: opRepeat, subs: []*term{a.term(re.Sub[0])}, quant: node.Greedy}
		if re.Flags&syntax.NonGreedy != 0 {
			t.quant = node.Lazy
		}
		switch re.Op {
		case syntax.OpStar:
			t.min, t.max = 0, node.Unbounded
		case syntax.OpPlus:
			t.min, t.max = 1, node.Unbounded
		case syntax.OpQuest:
			t.min, t.max = 0, 1
		default:
			t.min, t.max = re.Min, re.Max
			if re.Max < 0 {
				t.max = node.Unbounded
			}
		}
		return t

	case syntax.OpConcat:
		t := &term{op: opConcat}
		for _, sub := range re.Sub {
			t.subs = append(t.subs, a.term(sub))
		}
		return t
	case syntax.OpAlternate:
		t := &term{op: opAlternate}
		for _, sub := range re.Sub {
			t.subs = append(t.subs, a.term(sub))
		}
		return t
	}
	return &term{op: opOpaque, name: re.Op.String()}
}

// class builds a class from regexp/syntax range pairs. A class that covers
// both ends of the code point space is built as the complement of its gaps,
// which is how a negated class was written.
func (a *re2Adapter) class(pairs []rune) node.CharProperty {
	if n := len(pairs); n > 0 && pairs[0] == 0 && pairs[n-1] == unicode.MaxRune {
		if gaps := invert(pairs); len(gaps) > 0 {
			return a.link(&node.Complement{Operand: a.union(gaps)})
		}
	}
	return a.union(pairs)
}

func (a *re2Adapter) union(pairs []rune) node.CharProperty {
	var (
		cp   node.CharProperty
		bits *node.BitClass
	)
	add := func(item node.CharProperty) {
		if cp == nil {
			cp = item
			return
		}
		cp = a.link(&node.Union{Left: cp, Right: item})
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		lo, hi := pairs[i], pairs[i+1]
		switch {
		case lo == hi && lo < 0x100:
			if bits == nil {
				bits = &node.BitClass{}
				a.link(bits)
				add(bits)
			}
			bits.Add(lo, false)
		case lo == hi:
			add(a.link(&node.Single{CodePoint: lo}))
		default:
			add(a.link(&node.Range{Lower: lo, Upper: hi}))
		}
	}
	if cp == nil {
		// empty class
		cp = a.link(&node.BitClass{})
	}
	return cp
}

// invert returns the gaps between sorted range pairs within [0, MaxRune].
func invert(pairs []rune) []rune {
	var gaps []rune
	next := rune(0)
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i] > next {
			gaps = append(gaps, next, pairs[i]-1)
		}
		next = pairs[i+1] + 1
	}
	if next <= unicode.MaxRune {
		gaps = append(gaps, next, unicode.MaxRune)
	}
	return gaps
}

func (a *re2Adapter) link(cp node.CharProperty) node.CharProperty {
	cp.SetNext(a.accept)
	return cp
}
