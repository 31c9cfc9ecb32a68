package tree

import (
	"bufio"
	"fmt"
	"io"
)

type nodeids[T any] struct {
	idTable map[*Node[T]]int
	max     int
}

func (ids *nodeids[T]) alloc(n *Node[T]) int {
	if id, ok := ids.idTable[n]; ok {
		return id
	}
	ids.max++
	ids.idTable[n] = ids.max
	return ids.max
}

// WriteDot outputs a forest of refinement trees in Graphviz DOT format (for
// debugging purposes). Leaves are drawn as boxes, inner nodes as circles.
func WriteDot[T any](w io.Writer, roots []*Node[T], label func(T) string) error {
	bw := bufio.NewWriter(w)
	ids := &nodeids[T]{idTable: make(map[*Node[T]]int)}
	fmt.Fprintln(bw, "strict digraph {")
	fmt.Fprintln(bw, "\tnode [fontname=Arial,fontsize=12];")
	var walk func(n *Node[T])
	walk = func(n *Node[T]) {
		id := ids.alloc(n)
		shape := "circle"
		if n.IsLeaf() {
			shape = "box"
		}
		fmt.Fprintf(bw, "\t\"%d\" [label=%q,shape=%s];\n", id, label(n.item), shape)
		if n.IsLeaf() {
			return
		}
		fmt.Fprintf(bw, "\t\"%d\" -> \"%d\";\n", id, ids.alloc(n.left))
		fmt.Fprintf(bw, "\t\"%d\" -> \"%d\";\n", id, ids.alloc(n.right))
		walk(n.left)
		walk(n.right)
	}
	for _, r := range roots {
		walk(r)
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}
