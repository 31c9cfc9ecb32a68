/*
Package rivara implements an incremental simplicial mesh of triangles or
tetrahedra refined by longest-edge (Rivara) bisection.

Elements and edges keep their refinement history as binary trees. Only the
leaves of the element trees form the current mesh. Refining an element bisects
its longest edge and then bisects every neighbouring leaf that is left with a
hanging node, so the mesh is conforming again once Mesh.Refine returns.

A Mesh is not safe for concurrent use.
*/
package rivara

import "errors"

// ErrInvariant is wrapped by every error returned from Mesh.Check.
var ErrInvariant = errors.New("rivara: mesh invariant violated")

// must panics with msg if cond is false. It guards caller contract
// violations, which are never recovered.
func must(cond bool, msg string) {
	if !cond {
		panic("rivara: " + msg)
	}
}
