package search

// NodeID is a stable handle to a node stored in a Tree.
type NodeID int

// RootID is the handle of the root node of every Tree.
const RootID NodeID = 0

type childKey struct {
	parent NodeID
	cell   int
}

// Tree is an append-only arena of grid nodes. Each child is reachable from
// exactly one (parent, cell) key; nodes are never removed or reparented.
type Tree struct {
	nodes    []*GridNode
	depth    []int
	parent   []NodeID
	children map[childKey]NodeID
}

// NewTree creates a tree holding only root.
func NewTree(root *GridNode) *Tree {
	return &Tree{
		nodes:    []*GridNode{root},
		depth:    []int{0},
		parent:   []NodeID{-1},
		children: make(map[childKey]NodeID),
	}
}

// Node returns the node addressed by id.
func (t *Tree) Node(id NodeID) *GridNode {
	return t.nodes[id]
}

// Root returns the root node.
func (t *Tree) Root() *GridNode {
	return t.nodes[RootID]
}

// Depth returns the number of zooms between the root and id.
func (t *Tree) Depth(id NodeID) int {
	return t.depth[id]
}

// Parent returns the parent of id; ok is false for the root.
func (t *Tree) Parent(id NodeID) (NodeID, bool) {
	p := t.parent[id]
	return p, p >= 0
}

// Len returns the number of nodes created so far.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Child returns the child refining cell of id, if it was ever created.
func (t *Tree) Child(id NodeID, cell int) (NodeID, bool) {
	c, ok := t.children[childKey{parent: id, cell: cell}]
	return c, ok
}

// ZoomInto returns the child refining cell of id, creating it on first use.
func (t *Tree) ZoomInto(id NodeID, cell int) NodeID {
	if c, ok := t.Child(id, cell); ok {
		return c
	}
	child := t.nodes[id].Zoom(cell)
	c := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, child)
	t.depth = append(t.depth, t.depth[id]+1)
	t.parent = append(t.parent, id)
	t.children[childKey{parent: id, cell: cell}] = c
	return c
}

// Walk calls fn for every node in creation order; parents precede children.
func (t *Tree) Walk(fn func(id NodeID, node *GridNode)) {
	for i, n := range t.nodes {
		fn(NodeID(i), n)
	}
}
