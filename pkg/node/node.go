// Package node defines the compiled-pattern graph consumed by the dissector.
//
// A compiled pattern is a directed graph of typed nodes: every node has a
// primary successor (Next) and some variants embed sub-graphs through
// auxiliary fields (loop bodies, quantified atoms, alternation branches,
// lookaround conditions, character-class operands). The graph may share
// successors and contain cycles. The set of variants is closed; nodes are
// created by the companion compiler or by an adapter and are never mutated
// once a Pattern has been handed to the dissector.
package node

import "math"

// ModelVersion is bumped whenever a variant or a payload field changes.
const ModelVersion = 1

// Unbounded is the maximum repetition count of an open-ended quantifier.
const Unbounded = math.MaxInt32

// Node is a vertex of a compiled pattern graph.
type Node interface {
	Kind() Kind
	// Next returns the node executed after this one on the primary path,
	// or nil for a terminal node.
	Next() Node
	// SetNext links the primary successor. It is only used while a graph
	// is being built.
	SetNext(Node)

	sealed()
}

// link holds the primary successor shared by every variant.
type link struct {
	next Node
}

func (l *link) Next() Node { return l.next }

func (l *link) SetNext(n Node) { l.next = n }

func (*link) sealed() {}

// Accept is the unique terminal node of a pattern.
type Accept struct{ link }

func (*Accept) Kind() Kind { return KindAccept }

// Start begins an unanchored match attempt at every input position.
type Start struct {
	link
	MinLength     int
	Supplementary bool
}

func (n *Start) Kind() Kind {
	if n.Supplementary {
		return KindStartS
	}
	return KindStart
}

// Begin matches the beginning of input (\A, default ^).
type Begin struct{ link }

func (*Begin) Kind() Kind { return KindBegin }

// End matches the very end of input (\z).
type End struct{ link }

func (*End) Kind() Kind { return KindEnd }

// Caret matches the beginning of a line in multiline mode.
type Caret struct {
	link
	Unix bool
}

func (n *Caret) Kind() Kind {
	if n.Unix {
		return KindUnixCaret
	}
	return KindCaret
}

// Dollar matches before a line terminator or at the end of input.
type Dollar struct {
	link
	Unix      bool
	Multiline bool
}

func (n *Dollar) Kind() Kind {
	if n.Unix {
		return KindUnixDollar
	}
	return KindDollar
}

// LastMatch matches at the end of the previous match (\G).
type LastMatch struct{ link }

func (*LastMatch) Kind() Kind { return KindLastMatch }

// BoundType selects word boundary or non-boundary.
type BoundType uint8

const (
	BoundBoth BoundType = iota // \b
	BoundNone                  // \B
)

// Bound is a word boundary assertion.
type Bound struct {
	link
	Type BoundType
}

func (*Bound) Kind() Kind { return KindBound }

// Slice matches a literal code point sequence.
type Slice struct {
	link
	Buffer []rune
	Fold   Fold
}

func (n *Slice) Kind() Kind {
	switch n.Fold {
	case FoldASCII:
		return KindSliceI
	case FoldUnicode:
		return KindSliceU
	}
	if HasSupplementary(n.Buffer) {
		return KindSliceS
	}
	return KindSlice
}

// BnM is a literal sequence searched with the Boyer-Moore algorithm. It
// replaces the Start node of a pattern that is a single long literal.
type BnM struct {
	link
	Buffer []rune
	// LengthInChars is the UTF-16 length of Buffer; it differs from
	// len(Buffer) only when the buffer holds supplementary code points.
	LengthInChars int
}

func (n *BnM) Kind() Kind {
	if HasSupplementary(n.Buffer) {
		return KindBnMS
	}
	return KindBnM
}

// Quantifier is the matching discipline of a repetition.
type Quantifier uint8

const (
	Greedy Quantifier = iota
	Lazy
	Possessive
	Independent
)

func (q Quantifier) String() string {
	switch q {
	case Greedy:
		return "greedy"
	case Lazy:
		return "lazy"
	case Possessive:
		return "possessive"
	case Independent:
		return "independent"
	}
	return "unknown"
}

// Curly repeats a single atom. The atom sub-graph ends at the pattern's
// accept node.
type Curly struct {
	link
	Atom Node
	Min  int
	Max  int
	Type Quantifier
}

func (*Curly) Kind() Kind { return KindCurly }

// GroupCurly repeats a group whose body has a fixed width.
type GroupCurly struct {
	link
	Atom       Node
	Min        int
	Max        int
	Type       Quantifier
	LocalIndex int
	GroupSlot  int
	Capture    bool
}

func (*GroupCurly) Kind() Kind { return KindGroupCurly }

// Group returns the capturing group number the node records.
func (n *GroupCurly) Group() int { return n.GroupSlot / 2 }

// GroupHead saves the start position of a group.
type GroupHead struct {
	link
	LocalIndex int
}

func (*GroupHead) Kind() Kind { return KindGroupHead }

// GroupTail records the end of a group. GroupSlot is twice the group
// number, zero for a non-capturing group.
type GroupTail struct {
	link
	LocalIndex int
	GroupSlot  int
}

func (*GroupTail) Kind() Kind { return KindGroupTail }

// Group returns the capturing group number, zero if the group does not capture.
func (n *GroupTail) Group() int { return n.GroupSlot / 2 }

// Prolog wraps a Loop. Its own successor is never followed at match time.
type Prolog struct {
	link
	Loop *Loop
}

func (*Prolog) Kind() Kind { return KindProlog }

// Loop repeats a non-deterministic group. Body enters the group and the
// group's tail links back to the Loop itself.
type Loop struct {
	link
	Body       Node
	Min        int
	Max        int
	CountIndex int
	BeginIndex int
	Lazy       bool
}

func (n *Loop) Kind() Kind {
	if n.Lazy {
		return KindLazyLoop
	}
	return KindLoop
}

// Branch tries each atom in order; every atom continues at Conn.
type Branch struct {
	link
	Atoms []Node
	Conn  *BranchConn
}

func (*Branch) Kind() Kind { return KindBranch }

// BranchConn is the shared connector every alternative converges on.
type BranchConn struct{ link }

func (*BranchConn) Kind() Kind { return KindBranchConn }

// Lookahead is a zero-width assertion on the input ahead.
type Lookahead struct {
	link
	Cond     Node
	Negative bool
}

func (n *Lookahead) Kind() Kind {
	if n.Negative {
		return KindNeg
	}
	return KindPos
}

// Lookbehind is a zero-width assertion on the input behind. RMin and RMax
// bound the length of text the condition can match.
type Lookbehind struct {
	link
	Cond     Node
	RMin     int
	RMax     int
	Negative bool
}

func (n *Lookbehind) Kind() Kind {
	if n.Negative {
		return KindNotBehind
	}
	return KindBehind
}

// BackRef matches the text previously captured by a group.
type BackRef struct {
	link
	GroupSlot int
	Name      string
	Fold      bool
}

func (n *BackRef) Kind() Kind {
	if n.Fold {
		return KindCIBackRef
	}
	return KindBackRef
}

// Group returns the referenced capturing group number.
func (n *BackRef) Group() int { return n.GroupSlot / 2 }

// Opaque stands in for a host-engine construct that has no variant here.
type Opaque struct {
	link
	Name string
}

func (*Opaque) Kind() Kind { return KindOpaque }

// HasSupplementary reports whether any code point lies above the BMP.
func HasSupplementary(runes []rune) bool {
	for _, r := range runes {
		if r > 0xFFFF {
			return true
		}
	}
	return false
}

// UTF16Len returns the number of UTF-16 code units needed for runes.
func UTF16Len(runes []rune) int {
	n := 0
	for _, r := range runes {
		if r > 0xFFFF {
			n += 2
		} else {
			n++
		}
	}
	return n
}
