package compiler

import "github.com/KromDaniel/patterndissect/pkg/node"

// width is the number of code points a term can match.
type width struct {
	min int
	max int
	// bounded is false when max cannot be determined.
	bounded bool
}

// study computes the width of t. Backreferences and open-ended repetitions
// make the maximum unbounded.
func study(t *term) width {
	switch t.op {
	case opLiteral:
		n := len(t.runes)
		return width{min: n, max: n, bounded: true}
	case opClass:
		return width{min: 1, max: 1, bounded: true}
	case opConcat:
		w := width{bounded: true}
		for _, sub := range t.subs {
			sw := study(sub)
			w.min = addClamp(w.min, sw.min)
			w.max = addClamp(w.max, sw.max)
			w.bounded = w.bounded && sw.bounded
		}
		return w
	case opAlternate:
		w := width{bounded: true}
		for i, sub := range t.subs {
			sw := study(sub)
			if i == 0 || sw.min < w.min {
				w.min = sw.min
			}
			if sw.max > w.max {
				w.max = sw.max
			}
			w.bounded = w.bounded && sw.bounded
		}
		return w
	case opGroup, opIndependent:
		return study(t.sub())
	case opRepeat:
		sw := study(t.sub())
		w := width{min: mulClamp(sw.min, t.min), bounded: sw.bounded && t.max != node.Unbounded}
		if w.bounded {
			w.max = mulClamp(sw.max, t.max)
		}
		return w
	case opBackRef:
		return width{bounded: false}
	case opOpaque:
		return width{bounded: false}
	}
	// anchors, lookaround, empty
	return width{bounded: true}
}

// deterministic reports whether a group body always matches the same
// number of code points and never chooses between alternatives, which
// lets a repetition of it skip the loop machinery.
func deterministic(t *term) bool {
	w := study(t)
	return w.bounded && w.min == w.max && !contains(t, opBackRef) && !contains(t, opAlternate)
}

func contains(t *term, o op) bool {
	if t.op == o {
		return true
	}
	for _, sub := range t.subs {
		if contains(sub, o) {
			return true
		}
	}
	return false
}

func addClamp(a, b int) int {
	if a > node.Unbounded-b {
		return node.Unbounded
	}
	return a + b
}

func mulClamp(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	if a > node.Unbounded/b {
		return node.Unbounded
	}
	return a * b
}
