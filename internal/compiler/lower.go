package compiler

import (
	"unicode"

	"github.com/KromDaniel/patterndissect/pkg/node"
)

// bnmThreshold is the shortest whole-pattern literal searched with
// Boyer-Moore instead of a plain slice.
const bnmThreshold = 4

// lowerer builds the node graph for a parsed term. Nodes are created in
// source order so group and loop local indices follow the pattern text.
type lowerer struct {
	accept *node.Accept
	locals int
	log    *Logger
}

// chain is a lowered fragment: entry node and the node whose successor
// continues the fragment. Both are nil for a fragment that matches the
// empty string without any node.
type chain struct {
	head node.Node
	tail node.Node
}

func (c chain) empty() bool { return c.head == nil }

// link appends next to c and returns the combined chain.
func (c chain) link(next chain) chain {
	if c.empty() {
		return next
	}
	if next.empty() {
		return c
	}
	c.tail.SetNext(next.head)
	return chain{head: c.head, tail: next.tail}
}

// close terminates c at end and returns the entry node.
func (c chain) close(end node.Node) node.Node {
	if c.empty() {
		return end
	}
	c.tail.SetNext(end)
	return c.head
}

func single(n node.Node) chain {
	return chain{head: n, tail: n}
}

func (l *lowerer) lower(t *term) chain {
	switch t.op {
	case opEmpty:
		return chain{}

	case opLiteral:
		return single(literalNode(t.runes, t.fold))

	case opClass:
		return single(t.class)

	case opBegin:
		return single(&node.Begin{})
	case opEnd:
		return single(&node.End{})
	case opCaret:
		return single(&node.Caret{Unix: t.unix})
	case opDollar:
		return single(&node.Dollar{Unix: t.unix, Multiline: t.multiline})
	case opLastMatch:
		return single(&node.LastMatch{})
	case opBound:
		return single(&node.Bound{Type: t.bound})

	case opConcat:
		var c chain
		for _, sub := range t.subs {
			c = c.link(l.lower(sub))
		}
		return c

	case opAlternate:
		conn := &node.BranchConn{}
		branch := &node.Branch{Conn: conn}
		branch.SetNext(l.accept)
		for _, sub := range t.subs {
			branch.Atoms = append(branch.Atoms, l.lower(sub).close(conn))
		}
		return chain{head: branch, tail: conn}

	case opGroup:
		head, tail := l.group(t)
		return chain{head: head, tail: tail}

	case opIndependent:
		curly := &node.Curly{
			Atom: l.lower(t.sub()).close(l.accept),
			Min:  1,
			Max:  1,
			Type: node.Independent,
		}
		return single(curly)

	case opRepeat:
		return l.repeat(t)

	case opLook:
		cond := l.lower(t.sub()).close(l.accept)
		if t.behind {
			w := study(t.sub())
			return single(&node.Lookbehind{Cond: cond, RMin: w.min, RMax: w.max, Negative: t.negative})
		}
		return single(&node.Lookahead{Cond: cond, Negative: t.negative})

	case opBackRef:
		return single(&node.BackRef{GroupSlot: 2 * t.group, Name: t.name, Fold: t.refFold})

	case opOpaque:
		return single(&node.Opaque{Name: t.name})
	}
	return chain{}
}

// group lowers a group to its GroupHead ... GroupTail chain.
func (l *lowerer) group(t *term) (*node.GroupHead, *node.GroupTail) {
	local := l.locals
	l.locals++
	head := &node.GroupHead{LocalIndex: local}
	tail := &node.GroupTail{LocalIndex: local}
	if t.capture {
		tail.GroupSlot = 2 * t.group
	}
	head.SetNext(l.lower(t.sub()).close(tail))
	return head, tail
}

func (l *lowerer) repeat(t *term) chain {
	sub := t.sub()
	if sub.op != opGroup || t.quant == node.Possessive {
		l.log.Log("repetition {%d,%d} %s: Curly", t.min, t.max, t.quant)
		curly := &node.Curly{
			Atom: l.lower(sub).close(l.accept),
			Min:  t.min,
			Max:  t.max,
			Type: t.quant,
		}
		return single(curly)
	}

	if deterministic(sub.sub()) {
		l.log.Log("group repetition {%d,%d} %s: fixed-width body, GroupCurly", t.min, t.max, t.quant)
		head, tail := l.group(sub)
		tail.SetNext(l.accept)
		gc := &node.GroupCurly{
			Atom:       head.Next(),
			Min:        t.min,
			Max:        t.max,
			Type:       t.quant,
			LocalIndex: tail.LocalIndex,
			GroupSlot:  tail.GroupSlot,
			Capture:    sub.capture,
		}
		return single(gc)
	}

	l.log.Log("group repetition {%d,%d} %s: variable-width body, Loop", t.min, t.max, t.quant)
	head, tail := l.group(sub)
	loop := &node.Loop{
		Body:       head,
		Min:        t.min,
		Max:        t.max,
		CountIndex: l.locals,
		BeginIndex: head.LocalIndex,
		Lazy:       t.quant == node.Lazy,
	}
	l.locals++
	tail.SetNext(loop)
	prolog := &node.Prolog{Loop: loop}
	prolog.SetNext(l.accept)
	return chain{head: prolog, tail: loop}
}

// literalNode picks the literal variant for runes under fold.
func literalNode(runes []rune, fold node.Fold) node.Node {
	if len(runes) == 1 {
		return singleNode(runes[0], fold)
	}
	buf := make([]rune, len(runes))
	switch fold {
	case node.FoldASCII:
		for i, r := range runes {
			buf[i] = asciiLower(r)
		}
	case node.FoldUnicode:
		for i, r := range runes {
			buf[i] = simpleFold(r)
		}
	default:
		copy(buf, runes)
	}
	return &node.Slice{Buffer: buf, Fold: fold}
}

func singleNode(r rune, fold node.Fold) node.CharProperty {
	switch fold {
	case node.FoldASCII:
		if isASCIILetter(r) {
			return &node.SingleI{Lower: asciiLower(r), Upper: asciiUpper(r)}
		}
	case node.FoldUnicode:
		if unicode.ToUpper(r) != r || unicode.ToLower(r) != r {
			return &node.SingleU{Lower: simpleFold(r)}
		}
	}
	return &node.Single{CodePoint: r}
}

// simpleFold maps r to the lower case of its upper case, which merges
// letters with several lower case forms such as the Greek sigma.
func simpleFold(r rune) rune {
	return unicode.ToLower(unicode.ToUpper(r))
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func asciiLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + 'a' - 'A'
	}
	return r
}

func asciiUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}

// build lowers the whole pattern and picks its root: a short literal is
// its own root, a long literal becomes a Boyer-Moore search, a pattern
// anchored at Begin is rooted there, anything else gets a Start node.
func build(t *term, source string, flags node.Flags, groups int, names map[string]int, accept *node.Accept, log *Logger) *node.Pattern {
	log.Section("Lowering")
	l := &lowerer{accept: accept, log: log}
	matchRoot := l.lower(t).close(accept)

	p := &node.Pattern{
		Source:     source,
		Flags:      flags,
		Accept:     accept,
		GroupCount: groups,
		GroupNames: names,
	}

	switch r := matchRoot.(type) {
	case *node.Slice:
		if r.Fold == node.FoldNone && len(r.Buffer) >= bnmThreshold {
			bnm := &node.BnM{Buffer: r.Buffer, LengthInChars: node.UTF16Len(r.Buffer)}
			bnm.SetNext(r.Next())
			log.Log("literal of %d code points: Boyer-Moore root", len(r.Buffer))
			p.Root = bnm
			return p
		}
		if r.Fold == node.FoldNone {
			p.Root = r
			return p
		}
	case *node.Begin:
		log.Log("anchored at Begin")
		p.Root = r
		return p
	}

	start := &node.Start{
		MinLength:     study(t).min,
		Supplementary: node.HasSupplementary([]rune(source)),
	}
	start.SetNext(matchRoot)
	log.Log("unanchored: Start with minimum length %d", start.MinLength)
	p.Root = start
	return p
}
