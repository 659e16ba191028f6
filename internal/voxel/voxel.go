// Package voxel defines the integer coordinate type shared by every stage of
// the pore-network pipeline and the adjacency predicates (face/edge/vertex
// neighbours, 26-neighbourhood) that the distance transform and router build
// on.
package voxel

// Point is an ordered triple of non-negative integer coordinates identifying
// a voxel in a dense 3D grid.
type Point struct {
	X, Y, Z int
}

// Offsets26 lists the 26 neighbour offsets of a voxel, Chebyshev distance 1,
// excluding the zero offset. Order is fixed so that flood fills and the IFT
// main loop are deterministic.
var Offsets26 = buildOffsets26()

func buildOffsets26() [26]Point {
	var offsets [26]Point
	i := 0
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				offsets[i] = Point{dx, dy, dz}
				i++
			}
		}
	}
	return offsets
}

// Add returns p+o.
func (p Point) Add(o Point) Point {
	return Point{p.X + o.X, p.Y + o.Y, p.Z + o.Z}
}

// Sub returns p-o.
func (p Point) Sub(o Point) Point {
	return Point{p.X - o.X, p.Y - o.Y, p.Z - o.Z}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// ChebyshevDistance returns max(|dx|,|dy|,|dz|) between p and q.
func (p Point) ChebyshevDistance(q Point) int {
	return maxInt(maxInt(absInt(p.X-q.X), absInt(p.Y-q.Y)), absInt(p.Z-q.Z))
}

// ManhattanDistance returns |dx|+|dy|+|dz| between p and q.
func (p Point) ManhattanDistance(q Point) int {
	return absInt(p.X-q.X) + absInt(p.Y-q.Y) + absInt(p.Z-q.Z)
}

// IsNeighbour26 reports whether q is one of p's 26 neighbours.
func (p Point) IsNeighbour26(q Point) bool {
	return p != q && p.ChebyshevDistance(q) == 1
}

// IsFaceNeighbour reports whether q shares a face with p (Manhattan distance 1).
func (p Point) IsFaceNeighbour(q Point) bool {
	return p.ManhattanDistance(q) == 1
}

// IsEdgeNeighbour reports whether q shares an edge with p (a 26-neighbour at
// Manhattan distance 2).
func (p Point) IsEdgeNeighbour(q Point) bool {
	return p.ChebyshevDistance(q) == 1 && p.ManhattanDistance(q) == 2
}

// IsVertexNeighbour reports whether q shares only a corner with p (a
// 26-neighbour at Manhattan distance 3).
func (p Point) IsVertexNeighbour(q Point) bool {
	return p.ChebyshevDistance(q) == 1 && p.ManhattanDistance(q) == 3
}

// SquaredDistance returns the squared Euclidean distance between p and q.
func (p Point) SquaredDistance(q Point) int {
	dx, dy, dz := p.X-q.X, p.Y-q.Y, p.Z-q.Z
	return dx*dx + dy*dy + dz*dz
}

// InBounds reports whether p lies within a grid of the given extents.
func (p Point) InBounds(nx, ny, nz int) bool {
	return p.X >= 0 && p.X < nx && p.Y >= 0 && p.Y < ny && p.Z >= 0 && p.Z < nz
}

// Neighbours26 appends to dst every 26-neighbour of p that lies within the
// nx×ny×nz grid, and returns the extended slice.
func (p Point) Neighbours26(nx, ny, nz int, dst []Point) []Point {
	for _, off := range Offsets26 {
		q := p.Add(off)
		if q.InBounds(nx, ny, nz) {
			dst = append(dst, q)
		}
	}
	return dst
}

// LexLess reports whether p sorts before q in row-major, then-slice order:
// z, then y, then x (x fastest). This is the grid's canonical sweep order.
func (p Point) LexLess(q Point) bool {
	if p.Z != q.Z {
		return p.Z < q.Z
	}
	if p.Y != q.Y {
		return p.Y < q.Y
	}
	return p.X < q.X
}
