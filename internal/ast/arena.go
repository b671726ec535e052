package ast

// Arena owns every Node allocated during one parse call. Backtracking
// abandons partially-built subtrees without freeing them individually;
// Release drops the arena's references to all of them in one step so the
// garbage collector can reclaim whatever the caller didn't keep reachable
// via the final tree or the linearised stream (spec.md §9, "manual free on
// failure paths").
type Arena struct {
	nodes []*Node
}

// New returns an empty arena sized for a parse of roughly sizeHint bytes of
// input. sizeHint is a hint, not a guarantee; the slice still grows as needed.
func New(sizeHint int) *Arena {
	return &Arena{nodes: make([]*Node, 0, sizeHint/2+4)}
}

// NewLeaf allocates and registers a childless node.
func (a *Arena) NewLeaf(item Item) *Node {
	n := &Node{Item: item}
	a.nodes = append(a.nodes, n)
	return n
}

// NewOperator allocates and registers an operator node with the given
// children (either may be nil per spec.md §3's prefix/infix invariants).
func (a *Arena) NewOperator(item Item, left, right *Node, grouped bool) *Node {
	n := &Node{Item: item, Left: left, Right: right, Grouped: grouped}
	a.nodes = append(a.nodes, n)
	return n
}

// Release drops the arena's ownership of every node it allocated. Safe to
// call exactly once per arena, on both the success and error paths.
func (a *Arena) Release() {
	a.nodes = nil
}

// Len reports how many nodes the arena has allocated so far. Exposed for
// telemetry (SPEC_FULL.md §7's ambient logging), not for production logic.
func (a *Arena) Len() int {
	return len(a.nodes)
}
