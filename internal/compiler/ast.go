package compiler

import "github.com/KromDaniel/patterndissect/pkg/node"

// op is the operator of a parsed term.
type op uint8

const (
	opEmpty op = iota
	opLiteral
	opClass
	opBegin
	opEnd
	opCaret
	opDollar
	opLastMatch
	opBound
	opConcat
	opAlternate
	opGroup
	opRepeat
	opIndependent
	opLook
	opBackRef
	opOpaque
)

// term is the parsed form of a pattern, shared by every front-end. It is
// lowered to a node graph by lowerer.
type term struct {
	op op

	runes []rune    // opLiteral
	fold  node.Fold // opLiteral

	class node.CharProperty // opClass

	unix      bool // opCaret, opDollar
	multiline bool // opDollar

	bound node.BoundType // opBound

	subs []*term

	min, max int             // opRepeat
	quant    node.Quantifier // opRepeat

	capture bool   // opGroup
	group   int    // opGroup, opBackRef
	name    string // opGroup, opBackRef, opOpaque

	behind   bool // opLook
	negative bool // opLook
	refFold  bool // opBackRef
}

func (t *term) sub() *term {
	if len(t.subs) == 0 {
		return &term{op: opEmpty}
	}
	return t.subs[0]
}
