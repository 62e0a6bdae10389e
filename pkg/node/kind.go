package node

import "strconv"

// Kind identifies the variant of a compiled node.
type Kind uint8

const (
	// KindInvalid is the zero Kind and never names a real node.
	KindInvalid Kind = iota

	KindStart
	KindStartS
	KindBegin
	KindEnd
	KindCaret
	KindUnixCaret
	KindDollar
	KindUnixDollar
	KindLastMatch
	KindBound

	KindSingle
	KindSingleS
	KindSingleI
	KindSingleU
	KindSlice
	KindSliceS
	KindSliceI
	KindSliceU
	KindBnM
	KindBnMS

	KindBitClass
	KindCtype
	KindCategory
	KindRange
	KindDot
	KindUnixDot
	KindAll
	KindComplement
	KindUnion
	KindIntersection
	KindDifference

	KindCurly
	KindGroupCurly
	KindGroupHead
	KindGroupTail
	KindProlog
	KindLoop
	KindLazyLoop
	KindBranch
	KindBranchConn
	KindPos
	KindNeg
	KindBehind
	KindNotBehind
	KindBackRef
	KindCIBackRef
	KindAccept

	// KindOpaque marks a host construct that has no equivalent in this model.
	KindOpaque

	kindCount
)

var kindNames = [kindCount]string{
	KindInvalid:      "Invalid",
	KindStart:        "Start",
	KindStartS:       "StartS",
	KindBegin:        "Begin",
	KindEnd:          "End",
	KindCaret:        "Caret",
	KindUnixCaret:    "UnixCaret",
	KindDollar:       "Dollar",
	KindUnixDollar:   "UnixDollar",
	KindLastMatch:    "LastMatch",
	KindBound:        "Bound",
	KindSingle:       "Single",
	KindSingleS:      "SingleS",
	KindSingleI:      "SingleI",
	KindSingleU:      "SingleU",
	KindSlice:        "Slice",
	KindSliceS:       "SliceS",
	KindSliceI:       "SliceI",
	KindSliceU:       "SliceU",
	KindBnM:          "BnM",
	KindBnMS:         "BnMS",
	KindBitClass:     "BitClass",
	KindCtype:        "Ctype",
	KindCategory:     "Category",
	KindRange:        "Range",
	KindDot:          "Dot",
	KindUnixDot:      "UnixDot",
	KindAll:          "All",
	KindComplement:   "Complement",
	KindUnion:        "Union",
	KindIntersection: "Intersection",
	KindDifference:   "Difference",
	KindCurly:        "Curly",
	KindGroupCurly:   "GroupCurly",
	KindGroupHead:    "GroupHead",
	KindGroupTail:    "GroupTail",
	KindProlog:       "Prolog",
	KindLoop:         "Loop",
	KindLazyLoop:     "LazyLoop",
	KindBranch:       "Branch",
	KindBranchConn:   "BranchConn",
	KindPos:          "Pos",
	KindNeg:          "Neg",
	KindBehind:       "Behind",
	KindNotBehind:    "NotBehind",
	KindBackRef:      "BackRef",
	KindCIBackRef:    "CIBackRef",
	KindAccept:       "Accept",
	KindOpaque:       "Opaque",
}

// String returns the label printed for nodes of this kind.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Valid reports whether k names a member of the closed kind set.
func (k Kind) Valid() bool {
	return k > KindInvalid && k < kindCount
}

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount-1)
	for k := KindInvalid + 1; k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}
