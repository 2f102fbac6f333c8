package bezier

import (
	"iter"
)

// Flatness returns the largest distance from an interior control point to the
// chord between the curve's end points. Distances are measured to the chord
// segment, so collinear control points that overshoot an end point still
// count as a deviation. Lines have a flatness of 0.
func (b Bez) Flatness() float64 {
	chord := Line{b.Start(), b.End()}
	var d float64
	for _, pt := range b.pts[1 : len(b.pts)-1] {
		d = max(d, pt.Distance(chord.Eval(chord.project(pt))))
	}
	return d
}

// IsFlat reports whether the curve deviates from its chord by at most tol, so
// that it may be treated as a line segment.
func (b Bez) IsFlat(tol float64) bool {
	return b.Flatness() <= tol
}

// IsLinear reports whether the curve traces a straight segment to within tol.
// A linear curve need not be a degree-elevated line: its parametrization can
// still be non-uniform.
func (b Bez) IsLinear(tol float64) bool {
	return b.IsFlat(tol)
}

// isStraight reports whether the curve is flat to within tol and moves along
// its chord in one direction only, so that it traces the chord exactly once.
func (b Bez) isStraight(tol float64) bool {
	if !b.IsFlat(tol) {
		return false
	}
	if len(b.pts) < 3 {
		return true
	}
	d := b.End().Sub(b.Start())
	h := b.Hodograph()
	c := make([]float64, len(h.pts))
	for i, v := range h.pts {
		c[i] = Vec2(v).Dot(d)
	}
	for _, t := range bernsteinRoots(c) {
		if t > rootEpsilon && t < 1-rootEpsilon {
			return false
		}
	}
	return true
}

// chord returns the line between the curve's end points.
func (b Bez) chord() Line {
	return Line{b.Start(), b.End()}
}

// FlatPoint is a vertex of a curve's polyline approximation.
type FlatPoint struct {
	T     float64
	Point Point
}

const maxFlattenDepth = 32

// Flatten approximates the curve by a polyline whose segments deviate from
// the curve by at most tol. It yields the vertices in order, starting at t = 0
// and ending at t = 1.
func (b Bez) Flatten(tol float64) iter.Seq[FlatPoint] {
	type piece struct {
		c      Bez
		t0, t1 float64
		depth  int
	}
	return func(yield func(FlatPoint) bool) {
		if !yield(FlatPoint{0, b.Start()}) {
			return
		}
		stack := []piece{{b, 0, 1, 0}}
		for len(stack) > 0 {
			p := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if p.depth >= maxFlattenDepth || p.c.IsFlat(tol) {
				if !yield(FlatPoint{p.t1, p.c.End()}) {
					return
				}
				continue
			}
			l, r := p.c.Subdivide()
			tm := 0.5 * (p.t0 + p.t1)
			stack = append(stack,
				piece{r, tm, p.t1, p.depth + 1},
				piece{l, p.t0, tm, p.depth + 1})
		}
	}
}
