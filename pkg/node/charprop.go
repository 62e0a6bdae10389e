package node

// CharProperty is a node that matches exactly one code point. Top-level
// properties sit on the primary path; operands of a combinator form a
// separate tree and their successor is always the pattern's accept node.
type CharProperty interface {
	Node
	charProperty()
}

type charProp struct{ link }

func (*charProp) charProperty() {}

// Fold is the case folding applied to a literal.
type Fold uint8

const (
	FoldNone    Fold = iota
	FoldASCII        // (?i)
	FoldUnicode      // (?iu)
)

// Single matches one code point.
type Single struct {
	charProp
	CodePoint rune
}

func (n *Single) Kind() Kind {
	if n.CodePoint > 0xFFFF {
		return KindSingleS
	}
	return KindSingle
}

// SingleI matches an ASCII letter in either case.
type SingleI struct {
	charProp
	Lower rune
	Upper rune
}

func (*SingleI) Kind() Kind { return KindSingleI }

// SingleU matches a code point with simple Unicode case folding. Lower is
// the folded form of both the pattern and subject characters.
type SingleU struct {
	charProp
	Lower rune
}

func (*SingleU) Kind() Kind { return KindSingleU }

// BitClass matches Latin-1 code points selected by a bitmap.
type BitClass struct {
	charProp
	Bits [256]bool
}

func (*BitClass) Kind() Kind { return KindBitClass }

// Add sets the bit for r, and for its other case when fold is set. Code
// points outside Latin-1 are ignored.
func (n *BitClass) Add(r rune, fold bool) {
	if r < 0 || r > 0xFF {
		return
	}
	n.Bits[r] = true
	if fold {
		switch {
		case r >= 'a' && r <= 'z':
			n.Bits[r-'a'+'A'] = true
		case r >= 'A' && r <= 'Z':
			n.Bits[r-'A'+'a'] = true
		}
	}
}

// Ctype matches a POSIX character class restricted to US-ASCII.
type Ctype struct {
	charProp
	Class POSIXClass
}

func (*Ctype) Kind() Kind { return KindCtype }

// Category matches a Unicode general category, script or binary property.
type Category struct {
	charProp
	Name string
}

func (*Category) Kind() Kind { return KindCategory }

// Range matches code points between Lower and Upper inclusive.
type Range struct {
	charProp
	Lower rune
	Upper rune
	Fold  bool
}

func (*Range) Kind() Kind { return KindRange }

// DotMode selects which line terminators '.' refuses.
type DotMode uint8

const (
	DotModeDefault DotMode = iota // every line terminator
	DotModeUnix                   // only '\n'
	DotModeAll                    // none
)

// Dot matches any code point except, depending on Mode, line terminators.
type Dot struct {
	charProp
	Mode DotMode
}

func (n *Dot) Kind() Kind {
	switch n.Mode {
	case DotModeUnix:
		return KindUnixDot
	case DotModeAll:
		return KindAll
	}
	return KindDot
}

// Complement matches any code point its operand does not.
type Complement struct {
	charProp
	Operand CharProperty
}

func (*Complement) Kind() Kind { return KindComplement }

// Union matches code points matched by either operand.
type Union struct {
	charProp
	Left, Right CharProperty
}

func (*Union) Kind() Kind { return KindUnion }

// Intersection matches code points matched by both operands.
type Intersection struct {
	charProp
	Left, Right CharProperty
}

func (*Intersection) Kind() Kind { return KindIntersection }

// Difference matches code points matched by Left but not by Right.
type Difference struct {
	charProp
	Left, Right CharProperty
}

func (*Difference) Kind() Kind { return KindDifference }

// Operands returns the operands of a combinator in print order, or nil for
// a leaf property.
func Operands(cp CharProperty) []CharProperty {
	switch n := cp.(type) {
	case *Complement:
		return []CharProperty{n.Operand}
	case *Union:
		return []CharProperty{n.Left, n.Right}
	case *Intersection:
		return []CharProperty{n.Left, n.Right}
	case *Difference:
		return []CharProperty{n.Left, n.Right}
	}
	return nil
}
