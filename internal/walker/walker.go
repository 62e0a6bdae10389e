// Package walker traverses a compiled pattern graph and prints one line per
// construct in the order a reader expects: nested structure first, then
// the continuation, alternatives left to right.
//
// The graph is cyclic and shares nodes, so the traversal is iterative with
// an explicit stack. Every unit of pending work carries the loop header
// and the alternation connector it was reached through; a node that
// re-enters one of them closes the cycle instead of being expanded again.
package walker

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/KromDaniel/patterndissect/internal/catalog"
	"github.com/KromDaniel/patterndissect/internal/charclass"
	"github.com/KromDaniel/patterndissect/internal/trace"
	"github.com/KromDaniel/patterndissect/pkg/node"
)

// Separator is printed where an alternative reaches its connector.
const Separator = "---"

// work is one pending visit.
type work struct {
	depth int
	node  node.Node
	// loop is the loop header whose body this visit belongs to.
	loop node.Node
	// conn is the connector closing the alternative this visit belongs to.
	conn *node.BranchConn
}

// Walker prints the structure of one graph. A Walker is not safe for
// concurrent use; create one per dissection.
type Walker struct {
	cat    *catalog.Catalog
	sink   trace.Sink
	logger *slog.Logger
	accept node.Node
	chars  *charclass.Renderer

	stack []work
	steps int
	limit int
}

// New returns a walker for a graph whose accept node is accept. A nil
// logger discards debug output.
func New(cat *catalog.Catalog, sink trace.Sink, accept *node.Accept, logger *slog.Logger) *Walker {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	var acceptNode node.Node
	if accept != nil {
		acceptNode = accept
	}
	return &Walker{
		cat:    cat,
		sink:   sink,
		logger: logger,
		accept: acceptNode,
		chars:  charclass.NewRenderer(cat, sink, acceptNode),
	}
}

// Walk prints every construct reachable from root, starting at depth.
func (w *Walker) Walk(root node.Node, depth int) error {
	if root == nil {
		return &trace.ConsistencyError{Depth: depth, Construct: "root", Reason: "pattern has no root node"}
	}
	w.stack = w.stack[:0]
	w.steps = 0
	w.limit = stepLimit(root)

	w.push(work{depth: depth, node: root})
	for len(w.stack) > 0 {
		u := w.pop()

		w.steps++
		if w.steps > w.limit {
			return &trace.ConsistencyError{
				Depth:     u.depth,
				Construct: u.node.Kind().String(),
				Reason:    fmt.Sprintf("traversal exceeded %d steps; the graph has a cycle that does not pass through a loop header", w.limit),
			}
		}

		// The successor goes on the stack before anything the node nests,
		// so it is printed after the nested structure.
		if next := u.node.Next(); next != nil && w.followsNext(u) {
			w.push(work{depth: u.depth, node: next, loop: u.loop, conn: u.conn})
		}

		if err := w.visit(u); err != nil {
			return err
		}
	}

	w.logger.Debug("Walk complete.", "steps", w.steps)
	return nil
}

// followsNext reports whether the primary successor of u is part of the
// printed structure.
func (w *Walker) followsNext(u work) bool {
	switch n := u.node.(type) {
	case *node.Branch, *node.Prolog:
		// compilation artifacts; the connector and the loop carry the continuation
		return false
	case *node.Loop:
		return u.loop != node.Node(n)
	case *node.BranchConn:
		return n != u.conn
	case *node.GroupTail:
		return u.loop == nil || n.Next() != u.loop
	}
	return true
}

func (w *Walker) visit(u work) error {
	depth := u.depth
	label := u.node.Kind().String()
	key := catalog.KindKey(u.node.Kind())

	switch n := u.node.(type) {
	case *node.Start:
		return w.line(depth, label, w.cat.Format(key, label, n.MinLength))

	case *node.Begin, *node.End, *node.LastMatch, *node.Caret, *node.Accept:
		return w.line(depth, label, w.cat.Format(key, label))

	case *node.Dollar:
		return w.line(depth, label, w.cat.Format(catalog.DollarKey(n.Kind(), n.Multiline), label))

	case *node.Bound:
		return w.line(depth, label, w.cat.Format(catalog.BoundKey(n.Type), label))

	case *node.Slice:
		if err := w.line(depth, label, w.cat.Format(key, label, len(n.Buffer))); err != nil {
			return err
		}
		return w.chars.CodePoints(depth, n.Buffer, false)

	case *node.BnM:
		var text string
		if n.Kind() == node.KindBnMS {
			text = w.cat.Format(key, label, len(n.Buffer), n.LengthInChars)
		} else {
			text = w.cat.Format(key, label, len(n.Buffer))
		}
		if err := w.line(depth, label, text); err != nil {
			return err
		}
		return w.chars.CodePoints(depth, n.Buffer, false)

	case *node.Branch:
		return w.visitBranch(u, n)

	case *node.BranchConn:
		if n == u.conn {
			// Scheduled once by the Branch itself; the alternative just ends here.
			w.logger.Debug("Alternative reached its connector.", "depth", depth)
			return w.sink.Emit(trace.Line{Depth: depth, Text: Separator})
		}
		return w.line(depth, label, w.cat.Format(key, label))

	case *node.Lookahead:
		if n.Cond == nil {
			return w.inconsistent(depth, label, "lookahead has no condition")
		}
		if err := w.line(depth, label, w.cat.Format(key, label)); err != nil {
			return err
		}
		w.push(work{depth: depth + 1, node: n.Cond})
		return nil

	case *node.Lookbehind:
		if n.Cond == nil {
			return w.inconsistent(depth, label, "lookbehind has no condition")
		}
		if err := w.line(depth, label, w.cat.Format(key, label, -n.RMax, -n.RMin)); err != nil {
			return err
		}
		w.push(work{depth: depth + 1, node: n.Cond})
		return nil

	case *node.Curly:
		if n.Atom == nil {
			return w.inconsistent(depth, label, "quantifier has no atom")
		}
		if err := w.line(depth, label, w.cat.Format(key, label, n.Min, bound(n.Max), n.Type)); err != nil {
			return err
		}
		w.push(work{depth: depth + 1, node: n.Atom, loop: u.loop, conn: u.conn})
		return nil

	case *node.GroupCurly:
		if n.Atom == nil {
			return w.inconsistent(depth, label, "quantified group has no body")
		}
		if n.GroupSlot < 0 || n.LocalIndex < 0 {
			return w.inconsistent(depth, label, "negative group index")
		}
		var text string
		if n.Capture {
			text = w.cat.Format(catalog.CaptureKey(n.Kind(), true), label, n.Min, bound(n.Max), n.Type, n.Group(), n.LocalIndex)
		} else {
			text = w.cat.Format(catalog.CaptureKey(n.Kind(), false), label, n.Min, bound(n.Max), n.Type, n.LocalIndex)
		}
		if err := w.line(depth, label, text); err != nil {
			return err
		}
		w.push(work{depth: depth + 1, node: n.Atom, loop: u.loop, conn: u.conn})
		return nil

	case *node.Prolog:
		if n.Loop == nil {
			return w.inconsistent(depth, label, "loop wrapper has no loop")
		}
		// The header takes the wrapper's place at the same depth.
		w.push(work{depth: depth, node: n.Loop, loop: u.loop, conn: u.conn})
		return nil

	case *node.Loop:
		if u.loop == node.Node(n) {
			w.logger.Debug("Loop body returned to its header.", "depth", depth, "kind", label)
			return nil
		}
		if n.Body == nil {
			return w.inconsistent(depth, label, "loop has no body")
		}
		if err := w.line(depth, label, w.cat.Format(key, label, n.Min, bound(n.Max), n.CountIndex, n.BeginIndex)); err != nil {
			return err
		}
		w.push(work{depth: depth + 1, node: n.Body, loop: n, conn: u.conn})
		return nil

	case *node.GroupHead:
		if n.LocalIndex < 0 {
			return w.inconsistent(depth, label, "negative local index")
		}
		return w.line(depth, label, w.cat.Format(key, label, n.LocalIndex))

	case *node.GroupTail:
		if n.GroupSlot < 0 || n.LocalIndex < 0 {
			return w.inconsistent(depth, label, "negative group index")
		}
		if n.GroupSlot > 0 {
			return w.line(depth, label, w.cat.Format(catalog.CaptureKey(n.Kind(), true), label, n.Group(), n.LocalIndex))
		}
		return w.line(depth, label, w.cat.Format(catalog.CaptureKey(n.Kind(), false), label, n.LocalIndex))

	case *node.BackRef:
		if n.GroupSlot < 0 {
			return w.inconsistent(depth, label, "negative group index")
		}
		return w.line(depth, label, w.cat.Format(key, label, n.Group()))

	case node.CharProperty:
		return w.chars.Render(n, depth, true)

	case *node.Opaque:
		w.logger.Warn("Unrecognized construct in graph.", "name", n.Name, "depth", depth)
		return w.line(depth, label, catalog.Diagnostic(n.Name))
	}

	w.logger.Warn("Unrecognized node kind.", "kind", label, "depth", depth)
	return w.line(depth, label, catalog.Diagnostic(fmt.Sprintf("%s (%T)", label, u.node)))
}

func (w *Walker) visitBranch(u work, n *node.Branch) error {
	depth := u.depth
	label := n.Kind().String()
	if n.Conn == nil {
		return w.inconsistent(depth, label, "alternation has no connector")
	}
	if err := w.line(depth, label, w.cat.Format(catalog.KindKey(n.Kind()), label, len(n.Atoms))); err != nil {
		return err
	}

	// Connector first so it pops after every alternative.
	w.push(work{depth: depth + 1, node: n.Conn, loop: u.loop, conn: u.conn})
	for i := len(n.Atoms) - 1; i >= 0; i-- {
		atom := n.Atoms[i]
		if atom == nil {
			// empty alternative
			atom = n.Conn
		}
		w.push(work{depth: depth + 1, node: atom, loop: u.loop, conn: n.Conn})
	}
	return nil
}

func (w *Walker) push(u work) {
	w.stack = append(w.stack, u)
}

func (w *Walker) pop() work {
	u := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]
	return u
}

func (w *Walker) line(depth int, label, text string) error {
	return w.sink.Emit(trace.Line{Depth: depth, Label: label, Text: text})
}

func (w *Walker) inconsistent(depth int, construct, reason string) error {
	return &trace.ConsistencyError{Depth: depth, Construct: construct, Reason: reason}
}

// bound renders a repetition bound, "inf" when unbounded.
func bound(n int) string {
	if n >= node.Unbounded {
		return "inf"
	}
	return strconv.Itoa(n)
}

// stepLimit bounds the number of visits a well-formed graph can need:
// every node is expanded once and every edge is followed at most once.
func stepLimit(root node.Node) int {
	nodes := node.Reachable(root)
	edges := 0
	for _, n := range nodes {
		edges += len(node.Edges(n))
		if b, ok := n.(*node.Branch); ok {
			// empty alternatives are pushed as the connector
			edges += len(b.Atoms)
		}
	}
	return 2*(len(nodes)+edges) + 1
}
