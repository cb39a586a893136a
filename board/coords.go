package board

import "fmt"

// Board geometry:
// - Vertices are lattice points in axial coordinates (q, r), s = -q-r implied.
// - Every cell is a unit triangle with three vertex corners.
// - A down triangle anchored at v spans v, v+(1,0), v+(0,1);
//   an up triangle anchored at v spans v, v+(1,0), v+(1,-1).
//
// Screen layout (terminal cells):
// - Vertex (q, r) sits at x = 4q+2r, y = 2r.
// - Triangles sit one row below (down) or above (up) their anchor, two columns right.

// Vertex is a lattice point in axial coordinates.
type Vertex struct {
	Q int
	R int
}

// Add returns the component-wise sum.
func (v Vertex) Add(o Vertex) Vertex {
	return Vertex{Q: v.Q + o.Q, R: v.R + o.R}
}

// Distance returns the hex distance from the origin.
func (v Vertex) Distance() int {
	return (abs(v.Q) + abs(v.R) + abs(v.Q+v.R)) / 2
}

// Kind distinguishes the two triangle orientations.
type Kind uint8

const (
	Down Kind = iota
	Up
)

// Triangle is a board cell.
type Triangle struct {
	Anchor Vertex
	Kind   Kind
}

// Corners returns the three vertices of the triangle.
func (t Triangle) Corners() [3]Vertex {
	v := t.Anchor
	if t.Kind == Down {
		return [3]Vertex{v, v.Add(Vertex{1, 0}), v.Add(Vertex{0, 1})}
	}
	return [3]Vertex{v, v.Add(Vertex{1, 0}), v.Add(Vertex{1, -1})}
}

// vertexPixel converts a vertex to unshifted screen coordinates.
func vertexPixel(v Vertex) (int, int) {
	return 4*v.Q + 2*v.R, 2 * v.R
}

// trianglePixel converts a triangle to unshifted screen coordinates.
func trianglePixel(t Triangle) (int, int) {
	x, y := vertexPixel(t.Anchor)
	if t.Kind == Down {
		return x + 2, y + 1
	}
	return x + 2, y - 1
}

// posToLabel converts a position to a row letter and 1-based column, e.g. "c4".
func posToLabel(row, col int) string {
	return fmt.Sprintf("%c%d", 'a'+rune(row), col+1)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
