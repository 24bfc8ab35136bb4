// Package geom holds the float32 geometry shared by layout, zone discovery and
// candidate resolution.
//
// The coordinate space has the origin in the top left corner with the axes
// extending right and down.
package geom

// Point is a position in screen space.
type Point struct {
	X, Y float32
}

// Vector is a translation, e.g. the scroll offset of a container.
type Vector struct {
	X, Y float32
}

// Add returns v+w.
func (v Vector) Add(w Vector) Vector {
	return Vector{X: v.X + w.X, Y: v.Y + w.Y}
}

// IsZero reports whether v translates nothing.
func (v Vector) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Rect is an axis-aligned box. It contains the points (x, y) where
// X <= x < X+Width and Y <= y < Y+Height.
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// Right returns the exclusive right edge.
func (r Rect) Right() float32 { return r.X + r.Width }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() float32 { return r.Y + r.Height }

// Empty reports whether r covers no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Area returns Width*Height, or 0 for empty rectangles.
func (r Rect) Area() float32 {
	if r.Empty() {
		return 0
	}
	return r.Width * r.Height
}

// Intersection returns the overlap of r and s. Disjoint rectangles yield the
// zero Rect.
func (r Rect) Intersection(s Rect) Rect {
	x0 := max(r.X, s.X)
	y0 := max(r.Y, s.Y)
	x1 := min(r.Right(), s.Right())
	y1 := min(r.Bottom(), s.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Intersects reports whether r and s overlap with a non-zero area.
func (r Rect) Intersects(s Rect) bool {
	return !r.Intersection(s).Empty()
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Add offsets r by v.
func (r Rect) Add(v Vector) Rect {
	r.X += v.X
	r.Y += v.Y
	return r
}

// Sub offsets r by -v.
func (r Rect) Sub(v Vector) Rect {
	r.X -= v.X
	r.Y -= v.Y
	return r
}

// Filter is a predicate on (corrected) bounds.
type Filter func(Rect) bool

// Intersecting returns a Filter accepting bounds that overlap r.
func Intersecting(r Rect) Filter {
	return func(b Rect) bool { return b.Intersects(r) }
}

// ContainingPoint returns a Filter accepting bounds that contain p.
func ContainingPoint(p Point) Filter {
	return func(b Rect) bool { return b.Contains(p) }
}
