package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_ZoomInto_CreatesOnceAndReuses(t *testing.T) {
	// GIVEN a tree with only a root
	tree := NewTree(newTestNode())
	require.Equal(t, 1, tree.Len())
	_, ok := tree.Child(RootID, 1)
	require.False(t, ok)

	// WHEN the same cell is zoomed twice
	first := tree.ZoomInto(RootID, 1)
	second := tree.ZoomInto(RootID, 1)

	// THEN exactly one child exists and both calls return its handle
	assert.Equal(t, first, second)
	assert.Equal(t, 2, tree.Len())
	got, ok := tree.Child(RootID, 1)
	assert.True(t, ok)
	assert.Equal(t, first, got)

	lo, hi := tree.Node(first).Bounds()
	assert.Equal(t, 0.25, lo)
	assert.Equal(t, 0.5, hi)
}

func TestTree_DepthAndParent(t *testing.T) {
	tree := NewTree(newTestNode())
	child := tree.ZoomInto(RootID, 2)
	grandchild := tree.ZoomInto(child, 0)
	sibling := tree.ZoomInto(RootID, 3)

	assert.Equal(t, 0, tree.Depth(RootID))
	assert.Equal(t, 1, tree.Depth(child))
	assert.Equal(t, 2, tree.Depth(grandchild))
	assert.Equal(t, 1, tree.Depth(sibling))

	_, ok := tree.Parent(RootID)
	assert.False(t, ok)
	p, ok := tree.Parent(grandchild)
	assert.True(t, ok)
	assert.Equal(t, child, p)

	// children are keyed per parent: cell 0 of the root is still absent
	_, ok = tree.Child(RootID, 0)
	assert.False(t, ok)
}

func TestTree_Walk_ParentsBeforeChildren(t *testing.T) {
	tree := NewTree(newTestNode())
	child := tree.ZoomInto(RootID, 2)
	tree.ZoomInto(child, 1)

	var visited []NodeID
	tree.Walk(func(id NodeID, node *GridNode) {
		if p, ok := tree.Parent(id); ok {
			assert.Contains(t, visited, p, "parent of %d visited first", id)
		}
		assert.Same(t, tree.Node(id), node)
		visited = append(visited, id)
	})
	assert.Equal(t, []NodeID{0, 1, 2}, visited)
}
