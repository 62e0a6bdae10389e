package node

// Edges returns every node n refers to: the primary successor first, then
// auxiliary references in print order. Nil references are skipped.
func Edges(n Node) []Node {
	var out []Node
	add := func(m Node) {
		if m != nil {
			out = append(out, m)
		}
	}

	add(n.Next())
	switch v := n.(type) {
	case *Curly:
		add(v.Atom)
	case *GroupCurly:
		add(v.Atom)
	case *Prolog:
		if v.Loop != nil {
			add(v.Loop)
		}
	case *Loop:
		add(v.Body)
	case *Branch:
		for _, a := range v.Atoms {
			add(a)
		}
		if v.Conn != nil {
			add(v.Conn)
		}
	case *Lookahead:
		add(v.Cond)
	case *Lookbehind:
		add(v.Cond)
	case CharProperty:
		for _, op := range Operands(v) {
			add(op)
		}
	}
	return out
}

// Reachable returns every node reachable from root, each exactly once, in
// depth-first preorder following Edges order.
func Reachable(root Node) []Node {
	if root == nil {
		return nil
	}
	seen := make(map[Node]bool)
	var order []Node
	stack := []Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[n] {
			continue
		}
		seen[n] = true
		order = append(order, n)
		edges := Edges(n)
		for i := len(edges) - 1; i >= 0; i-- {
			if !seen[edges[i]] {
				stack = append(stack, edges[i])
			}
		}
	}
	return order
}
