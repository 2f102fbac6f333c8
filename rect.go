package bezier

import (
	"math"
)

// Rect is an axis-aligned box with X0 <= X1 and Y0 <= Y1. Boxes may be
// degenerate: the box of a horizontal line has zero height.
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

// NewRectFromPoints returns the smallest box containing p0 and p1.
func NewRectFromPoints(p0, p1 Point) Rect {
	return Rect{
		X0: min(p0.X, p1.X),
		Y0: min(p0.Y, p1.Y),
		X1: max(p0.X, p1.X),
		Y1: max(p0.Y, p1.Y),
	}
}

// Diagonal returns the length of the box's diagonal.
func (r Rect) Diagonal() float64 {
	return math.Hypot(r.X1-r.X0, r.Y1-r.Y0)
}

// Contains reports whether pt lies in r, edges included.
func (r Rect) Contains(pt Point) bool {
	return r.X0 <= pt.X && pt.X <= r.X1 &&
		r.Y0 <= pt.Y && pt.Y <= r.Y1
}

// Overlaps reports whether r and o overlap once both are grown by eps on
// every side. Boxes that only touch do not overlap, so eps must be positive
// for touching curves to be found.
func (r Rect) Overlaps(o Rect, eps float64) bool {
	return r.X0-eps < o.X1+eps && o.X0-eps < r.X1+eps &&
		r.Y0-eps < o.Y1+eps && o.Y0-eps < r.Y1+eps
}

// Union returns the smallest box containing r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		X0: min(r.X0, o.X0),
		Y0: min(r.Y0, o.Y0),
		X1: max(r.X1, o.X1),
		Y1: max(r.Y1, o.Y1),
	}
}

// UnionPoint returns the smallest box containing r and pt.
func (r Rect) UnionPoint(pt Point) Rect {
	return r.Union(Rect{pt.X, pt.Y, pt.X, pt.Y})
}

// Inflate grows r by dx on the left and right and by dy at the top and
// bottom.
func (r Rect) Inflate(dx, dy float64) Rect {
	return Rect{r.X0 - dx, r.Y0 - dy, r.X1 + dx, r.Y1 + dy}
}
