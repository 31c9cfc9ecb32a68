// Package tree provides the binary refinement tree shared by bisected
// edges and elements. A node is embedded in the value it describes and bound
// to it with Bind, so walking the tree hands back the enclosing values.
package tree

import "iter"

// Node is a binary tree node carrying a payload of type T. A node has either
// zero or two children. The parent pointer is a non-owning back reference.
type Node[T any] struct {
	item   T
	parent *Node[T]
	left   *Node[T]
	right  *Node[T]
}

// Bind attaches the payload returned by Item. Values embedding a Node bind
// themselves on construction.
func (n *Node[T]) Bind(item T) {
	n.item = item
}

// Item returns the payload bound to n.
func (n *Node[T]) Item() T {
	return n.item
}

// Parent returns the parent of n, or nil for a root.
func (n *Node[T]) Parent() *Node[T] { return n.parent }

// Left returns the first child of n, or nil for a leaf.
func (n *Node[T]) Left() *Node[T] { return n.left }

// Right returns the second child of n, or nil for a leaf.
func (n *Node[T]) Right() *Node[T] { return n.right }

// SetChildren installs the two children of a leaf. It panics if either child
// is nil, if n already has children or if a child is already attached to a
// parent.
func (n *Node[T]) SetChildren(left, right *Node[T]) {
	if left == nil || right == nil {
		panic("tree: SetChildren called with a nil child")
	}
	if n.HasChildren() {
		panic("tree: SetChildren called on a node that already has children")
	}
	if left.parent != nil || right.parent != nil {
		panic("tree: child is already attached to a parent")
	}
	if left == right || left == n || right == n {
		panic("tree: SetChildren called with aliased nodes")
	}
	left.parent = n
	right.parent = n
	n.left = left
	n.right = right
}

// HasChildren reports whether n has been split.
func (n *Node[T]) HasChildren() bool {
	return n.left != nil
}

// IsLeaf reports whether n has no children.
func (n *Node[T]) IsLeaf() bool {
	return n.left == nil
}

// IsRoot reports whether n has no parent.
func (n *Node[T]) IsRoot() bool {
	return n.parent == nil
}

// IsLeftChild reports whether n is the first child of its parent.
func (n *Node[T]) IsLeftChild() bool {
	return n.parent != nil && n.parent.left == n
}

// IsRightChild reports whether n is the second child of its parent.
func (n *Node[T]) IsRightChild() bool {
	return n.parent != nil && n.parent.right == n
}

// First returns the leftmost leaf of the subtree rooted at n.
func (n *Node[T]) First() *Node[T] {
	cur := n
	for cur.left != nil {
		cur = cur.left
	}
	return cur
}

// Last returns the rightmost leaf of the subtree rooted at n.
func (n *Node[T]) Last() *Node[T] {
	cur := n
	for cur.right != nil {
		cur = cur.right
	}
	return cur
}

// Next returns the leaf following n in left-to-right order over the whole tree
// containing n, or nil when n is the last leaf of that tree.
func (n *Node[T]) Next() *Node[T] {
	cur := n
	for cur.parent != nil {
		if cur.IsLeftChild() {
			return cur.parent.right.First()
		}
		cur = cur.parent
	}
	return nil
}

// NumLeaves counts the leaves of the subtree rooted at n. A leaf counts as one.
func (n *Node[T]) NumLeaves() int {
	if n.left == nil {
		return 1
	}
	return n.left.NumLeaves() + n.right.NumLeaves()
}

// Depth is the number of ancestors of n.
func (n *Node[T]) Depth() int {
	d := 0
	for p := n.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// Leaves yields the payloads of the leaves under n from left to right.
func (n *Node[T]) Leaves() iter.Seq[T] {
	return func(yield func(T) bool) {
		last := n.Last()
		for leaf := n.First(); leaf != nil; leaf = leaf.Next() {
			if !yield(leaf.item) || leaf == last {
				return
			}
		}
	}
}
