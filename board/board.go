// Package board implements the hexagonal game board: a patch of a triangular
// lattice whose cells take two-colored pieces and whose interior vertices
// complete hexagons when all six surrounding faces match.
package board

import (
	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"

	"hexsolo/types"
)

// Cell is a read-only view of one board position for rendering.
type Cell struct {
	Position int
	Kind     Kind
	X, Y     int
	Label    string
	Occupied bool
	Piece    types.Piece
	Faces    [3]types.Color // color shown to each corner
}

// Center is a read-only view of a vertex where hexagons can form.
type Center struct {
	Vertex int
	X, Y   int
	Formed bool
	Color  types.Color
}

type cell struct {
	occupied bool
	piece    types.Piece
	faces    [3]types.Color
}

type placement struct {
	pos    int
	formed int
}

// Board is the hex board. It is not safe for concurrent use; the match
// goroutine is its only writer.
type Board struct {
	radius int

	tris    []Triangle
	corners [][3]int // vertex ids of each triangle
	labels  []string
	pixels  [][2]int

	vertices []Vertex
	vpixels  [][2]int
	around   [][]int // triangles touching each vertex
	isCenter []bool

	cells  []cell
	formed []types.Hexagon
	last   *placement // single-slot undo

	width, height int
	rng           *rand.Rand
}

// New creates an empty board with the given side length.
func New(radius int, rng *rand.Rand) *Board {
	if radius < 1 {
		radius = 1
	}
	b := &Board{radius: radius, rng: rng}
	b.build()
	return b
}

func (b *Board) build() {
	inside := func(v Vertex) bool { return v.Distance() <= b.radius }

	vertexID := make(map[Vertex]int)
	for r := -b.radius; r <= b.radius; r++ {
		for q := -b.radius; q <= b.radius; q++ {
			v := Vertex{q, r}
			if inside(v) {
				vertexID[v] = len(b.vertices)
				b.vertices = append(b.vertices, v)
			}
		}
	}

	for _, v := range b.vertices {
		for _, k := range []Kind{Down, Up} {
			t := Triangle{Anchor: v, Kind: k}
			c := t.Corners()
			if inside(c[0]) && inside(c[1]) && inside(c[2]) {
				b.tris = append(b.tris, t)
			}
		}
	}
	// Reading order: top to bottom, left to right.
	slices.SortFunc(b.tris, func(a, c Triangle) int {
		ax, ay := trianglePixel(a)
		cx, cy := trianglePixel(c)
		if ay != cy {
			return ay - cy
		}
		return ax - cx
	})

	minX, minY := 0, 0
	for _, v := range b.vertices {
		x, y := vertexPixel(v)
		minX, minY = min(minX, x), min(minY, y)
	}
	for _, t := range b.tris {
		x, y := trianglePixel(t)
		minX, minY = min(minX, x), min(minY, y)
	}

	b.around = make([][]int, len(b.vertices))
	row, col, lastY := -1, 0, 0
	for i, t := range b.tris {
		var ids [3]int
		for j, v := range t.Corners() {
			ids[j] = vertexID[v]
			b.around[ids[j]] = append(b.around[ids[j]], i)
		}
		b.corners = append(b.corners, ids)

		x, y := trianglePixel(t)
		x, y = x-minX, y-minY
		b.pixels = append(b.pixels, [2]int{x, y})
		if row == -1 || y != lastY {
			row++
			col = 0
			lastY = y
		}
		b.labels = append(b.labels, posToLabel(row, col))
		col++
		b.width, b.height = max(b.width, x+2), max(b.height, y+1)
	}

	b.isCenter = make([]bool, len(b.vertices))
	for i, v := range b.vertices {
		b.isCenter[i] = len(b.around[i]) == 6
		x, y := vertexPixel(v)
		b.vpixels = append(b.vpixels, [2]int{x - minX, y - minY})
	}
	b.cells = make([]cell, len(b.tris))
}

// Size returns the number of positions.
func (b *Board) Size() int {
	return len(b.tris)
}

// Radius returns the side length of the board.
func (b *Board) Radius() int {
	return b.radius
}

// Dimensions returns the screen width and height of the board layout.
func (b *Board) Dimensions() (int, int) {
	return b.width, b.height
}

// Label returns the display name of a position.
func (b *Board) Label(pos int) string {
	if !b.valid(pos) {
		return "?"
	}
	return b.labels[pos]
}

// Pixel returns the screen coordinates of a position relative to the board origin.
func (b *Board) Pixel(pos int) (int, int, bool) {
	if !b.valid(pos) {
		return 0, 0, false
	}
	return b.pixels[pos][0], b.pixels[pos][1], true
}

// PositionAt maps screen coordinates relative to the board origin to a position.
// Each cell is two columns wide.
func (b *Board) PositionAt(x, y int) (int, bool) {
	for i, p := range b.pixels {
		if p[1] == y && (x == p[0] || x == p[0]+1) {
			return i, true
		}
	}
	return -1, false
}

// Place puts piece on pos and returns the hexagons the placement completed.
// The board picks the orientation forming the most hexagons. Placing on an
// occupied or unknown position is a no-op returning nil.
func (b *Board) Place(pos int, piece types.Piece) []types.Hexagon {
	if !b.valid(pos) || b.cells[pos].occupied || piece.IsZero() {
		b.last = nil
		return nil
	}
	faces, _ := b.evaluate(pos, piece)
	b.cells[pos] = cell{occupied: true, piece: piece, faces: faces}

	var formed []types.Hexagon
	for k, v := range b.corners[pos] {
		if b.formsAt(v, pos, faces[k]) {
			formed = append(formed, types.Hexagon{Center: v, Color: faces[k]})
		}
	}
	b.formed = append(b.formed, formed...)
	b.last = &placement{pos: pos, formed: len(formed)}
	return formed
}

// Back undoes the last successful Place. Only one level of undo is kept.
func (b *Board) Back() {
	if b.last == nil {
		return
	}
	b.cells[b.last.pos] = cell{}
	b.formed = b.formed[:len(b.formed)-b.last.formed]
	b.last = nil
}

// AvailablePositions returns every empty position in ascending order.
func (b *Board) AvailablePositions() []int {
	var out []int
	for i, c := range b.cells {
		if !c.occupied {
			out = append(out, i)
		}
	}
	return out
}

// HexagonPositions returns every empty position where piece would form at
// least one hexagon, with the count it would form. The board is not mutated.
func (b *Board) HexagonPositions(piece types.Piece) []types.Candidate {
	var out []types.Candidate
	for _, pos := range b.AvailablePositions() {
		if _, n := b.evaluate(pos, piece); n > 0 {
			out = append(out, types.Candidate{Position: pos, Count: n})
		}
	}
	return out
}

// RandomPosition picks a random position, only among empty ones when
// excludeOccupied is set. It returns -1 if there is none.
func (b *Board) RandomPosition(excludeOccupied bool) int {
	var candidates []int
	if excludeOccupied {
		candidates = b.AvailablePositions()
	} else {
		for i := range b.cells {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return -1
	}
	return candidates[b.rng.Intn(len(candidates))]
}

// Occupied returns the number of pieces on the board.
func (b *Board) Occupied() int {
	n := 0
	for _, c := range b.cells {
		if c.occupied {
			n++
		}
	}
	return n
}

// Hexagons returns the formations completed so far.
func (b *Board) Hexagons() []types.Hexagon {
	return slices.Clone(b.formed)
}

// Cells returns a snapshot of every position.
func (b *Board) Cells() []Cell {
	out := make([]Cell, len(b.cells))
	for i, c := range b.cells {
		out[i] = Cell{
			Position: i,
			Kind:     b.tris[i].Kind,
			X:        b.pixels[i][0],
			Y:        b.pixels[i][1],
			Label:    b.labels[i],
			Occupied: c.occupied,
			Piece:    c.piece,
			Faces:    c.faces,
		}
	}
	return out
}

// Centers returns a snapshot of every vertex where a hexagon can form.
func (b *Board) Centers() []Center {
	formed := make(map[int]types.Color)
	for _, h := range b.formed {
		formed[h.Center] = h.Color
	}
	var out []Center
	for i, ok := range b.isCenter {
		if !ok {
			continue
		}
		color, done := formed[i]
		out = append(out, Center{
			Vertex: i,
			X:      b.vpixels[i][0],
			Y:      b.vpixels[i][1],
			Formed: done,
			Color:  color,
		})
	}
	return out
}

// evaluate returns the best orientation of piece on pos and the hexagons it would form.
func (b *Board) evaluate(pos int, piece types.Piece) ([3]types.Color, int) {
	var best [3]types.Color
	bestCount := -1
	for solo := 0; solo < 3; solo++ {
		for _, c := range []types.Color{piece.A, piece.B} {
			other := piece.B
			if c == piece.B {
				other = piece.A
			}
			var faces [3]types.Color
			for k := range faces {
				faces[k] = other
			}
			faces[solo] = c

			n := 0
			for k, v := range b.corners[pos] {
				if b.formsAt(v, pos, faces[k]) {
					n++
				}
			}
			if n > bestCount {
				best, bestCount = faces, n
			}
		}
	}
	return best, bestCount
}

// formsAt reports whether vertex v would be a completed hexagon of color once
// pos shows color to it, given the rest of the board as it is.
func (b *Board) formsAt(v, pos int, color types.Color) bool {
	if !b.isCenter[v] {
		return false
	}
	for _, t := range b.around[v] {
		if t == pos {
			continue
		}
		c := b.cells[t]
		if !c.occupied || c.faces[b.cornerIndex(t, v)] != color {
			return false
		}
	}
	return true
}

func (b *Board) cornerIndex(t, v int) int {
	for k, id := range b.corners[t] {
		if id == v {
			return k
		}
	}
	return -1
}

func (b *Board) valid(pos int) bool {
	return pos >= 0 && pos < len(b.cells)
}
