package tree

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cell struct {
	Node[*cell]
	name string
}

func newCell(name string) *cell {
	c := &cell{name: name}
	c.Bind(c)
	return c
}

func split(c *cell) (*cell, *cell) {
	l, r := newCell(c.name+"0"), newCell(c.name+"1")
	c.SetChildren(&l.Node, &r.Node)
	return l, r
}

func names(seq func(func(*cell) bool)) []string {
	var out []string
	for c := range seq {
		out = append(out, c.name)
	}
	return out
}

func TestSingleNode(t *testing.T) {
	root := newCell("r")
	assert.True(t, root.IsLeaf())
	assert.True(t, root.IsRoot())
	assert.False(t, root.HasChildren())
	assert.False(t, root.IsLeftChild())
	assert.False(t, root.IsRightChild())
	assert.Equal(t, 1, root.NumLeaves())
	assert.Same(t, &root.Node, root.First())
	assert.Same(t, &root.Node, root.Last())
	assert.Nil(t, root.Next())
	assert.Equal(t, []string{"r"}, names(root.Leaves()))
	assert.Same(t, root, root.Item())
}

func TestSetChildren(t *testing.T) {
	root := newCell("r")
	l, r := split(root)

	assert.True(t, root.HasChildren())
	assert.False(t, root.IsLeaf())
	assert.Same(t, &root.Node, l.Parent())
	assert.Same(t, &root.Node, r.Parent())
	assert.True(t, l.IsLeftChild())
	assert.False(t, l.IsRightChild())
	assert.True(t, r.IsRightChild())
	assert.Equal(t, 1, l.Depth())
	assert.Equal(t, 2, root.NumLeaves())
}

func TestSetChildrenContractViolations(t *testing.T) {
	root := newCell("r")
	split(root)
	assert.Panics(t, func() { split(root) }, "second SetChildren")

	other := newCell("o")
	assert.Panics(t, func() { other.SetChildren(nil, &newCell("x").Node) })

	attached := root.Left()
	assert.Panics(t, func() { other.SetChildren(attached, &newCell("y").Node) })
}

// Builds
//
//	     r
//	   /   \
//	  r0    r1
//	 /  \   / \
//	r00 r01 r10 r11
//	    / \
//	 r010 r011
func buildTree(t *testing.T) *cell {
	t.Helper()
	root := newCell("r")
	l, r := split(root)
	_, l1 := split(l)
	split(l1)
	split(r)
	return root
}

func TestLeafTraversal(t *testing.T) {
	root := buildTree(t)
	assert.Equal(t, 5, root.NumLeaves())
	assert.Equal(t, "r00", root.First().Item().name)
	assert.Equal(t, "r11", root.Last().Item().name)

	var visited []string
	for n := root.First(); n != nil; n = n.Next() {
		visited = append(visited, n.Item().name)
	}
	assert.Equal(t, []string{"r00", "r010", "r011", "r10", "r11"}, visited)
	assert.Equal(t, visited, names(root.Leaves()))
}

func TestSubtreeLeavesStopAtSubtree(t *testing.T) {
	root := buildTree(t)
	left := root.Left().Item()
	assert.Equal(t, []string{"r00", "r010", "r011"}, names(left.Leaves()))
	assert.Equal(t, 3, left.NumLeaves())

	deep := left.Right().Left().Item()
	assert.Equal(t, 3, deep.Depth())
	assert.Equal(t, []string{"r010"}, names(deep.Leaves()))
}

func TestLeavesEarlyBreak(t *testing.T) {
	root := buildTree(t)
	var got []string
	for c := range root.Leaves() {
		got = append(got, c.name)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"r00", "r010"}, got)
}

func TestLeafCountIsAdditive(t *testing.T) {
	root := buildTree(t)
	var check func(n *Node[*cell])
	check = func(n *Node[*cell]) {
		if n.IsLeaf() {
			assert.Equal(t, 1, n.NumLeaves())
			return
		}
		assert.Equal(t, n.Left().NumLeaves()+n.Right().NumLeaves(), n.NumLeaves())
		check(n.Left())
		check(n.Right())
	}
	check(&root.Node)
}

func TestWriteDot(t *testing.T) {
	a := buildTree(t)
	b := newCell("s")
	var buf bytes.Buffer
	err := WriteDot(&buf, []*Node[*cell]{&a.Node, &b.Node}, func(c *cell) string { return c.name })
	require.NoError(t, err)

	out := buf.String()
	t.Logf("DOT output:\n%s", out)
	assert.True(t, strings.HasPrefix(out, "strict digraph {"))
	assert.True(t, strings.HasSuffix(out, "}\n"))
	// 9 nodes in the first tree, 1 in the second.
	assert.Equal(t, 10, strings.Count(out, "[label="))
	assert.Equal(t, 8, strings.Count(out, "->"))
	assert.Equal(t, 6, strings.Count(out, "shape=box"))
	lines := strings.Split(out, "\n")
	assert.True(t, slices.ContainsFunc(lines, func(l string) bool {
		return strings.Contains(l, `label="s"`)
	}))
}
