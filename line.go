package bezier

import (
	"math"
)

// Line represents a line segment. It is the degree 1 case of [Bez].
type Line struct {
	// The line's start point.
	P0 Point
	// The line's end point.
	P1 Point
}

// LineIntersection is a crossing of a line with a curve.
type LineIntersection struct {
	// The parameter on the line, in the range 0..1.
	LineT float64
	// The parameter on the curve. This value is nominally in the range 0..1,
	// although it may slightly exceed that range at the curve's ends.
	SegmentT float64
}

// crossingParams returns the parameters u on l and v on o at which the two
// lines, extended to infinity, cross. It reports false when the lines are
// parallel to within a relative angle of eps, or when either is degenerate.
func (l Line) crossingParams(o Line, eps float64) (u, v float64, ok bool) {
	d1 := l.P1.Sub(l.P0)
	d2 := o.P1.Sub(o.P0)
	n := d1.Hypot() * d2.Hypot()
	den := d1.Cross(d2)
	if n == 0 || math.Abs(den) <= eps*n {
		return 0, 0, false
	}
	r := o.P0.Sub(l.P0)
	return r.Cross(d2) / den, r.Cross(d1) / den, true
}

// closestParams returns the parameters in [0, 1] of the closest points of
// the segments l and o, along with their distance. The segments are assumed
// not to cross.
func (l Line) closestParams(o Line) (u, v, dist float64) {
	dist = math.Inf(1)
	try := func(uu, vv float64) {
		if d := l.Eval(uu).Distance(o.Eval(vv)); d < dist {
			u, v, dist = uu, vv, d
		}
	}
	try(0, o.project(l.P0))
	try(1, o.project(l.P1))
	try(l.project(o.P0), 0)
	try(l.project(o.P1), 1)
	return u, v, dist
}

// project returns the parameter of the point on the segment closest to pt.
func (l Line) project(pt Point) float64 {
	d := l.P1.Sub(l.P0)
	dSquared := d.Dot(d)
	if dSquared == 0 {
		return 0
	}
	return min(max(d.Dot(pt.Sub(l.P0))/dSquared, 0), 1)
}

func (l Line) BoundingBox() Rect {
	return NewRectFromPoints(l.P0, l.P1)
}

func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

func (l Line) Deriv(t float64) Vec2 {
	return l.P1.Sub(l.P0)
}

func (l Line) ControlPoints() []Point {
	return []Point{l.P0, l.P1}
}

// Bez returns the line as a [Bez].
func (l Line) Bez() Bez {
	return Bez{pts: l.ControlPoints()}
}

func (l Line) Transform(aff Affine) Line {
	return Line{
		P0: l.P0.Transform(aff),
		P1: l.P1.Transform(aff),
	}
}

func (l Line) Start() Point { return l.P0 }
func (l Line) End() Point   { return l.P1 }

func (l Line) Subsegment(start, end float64) Line {
	return Line{l.Eval(start), l.Eval(end)}
}

func (l Line) Subdivide() (Line, Line) {
	return l.Subsegment(0.0, 0.5), l.Subsegment(0.5, 1.0)
}

// IntersectLine intersects l, as the curve, with the line o.
func (l Line) IntersectLine(o Line) ([3]LineIntersection, int) {
	const epsilon = 1e-9
	t, u, ok := l.crossingParams(o, epsilon)
	if !ok {
		// Lines are parallel or coincident.
		return [3]LineIntersection{}, 0
	}
	if t >= -epsilon && t <= 1+epsilon && u >= 0.0 && u <= 1.0 {
		return [3]LineIntersection{{u, t}}, 1
	}
	return [3]LineIntersection{}, 0
}

// lineCrossings intersects a quadratic or cubic curve with a line. The
// signed distances of the control points from the line are the Bernstein
// coefficients of the curve's distance from it, whose roots are solved for in
// closed form.
func lineCrossings(pts []Point, ln Line) ([3]LineIntersection, int) {
	const epsilon = 1e-9
	d := ln.P1.Sub(ln.P0)
	dist := make([]float64, len(pts))
	for i, pt := range pts {
		dist[i] = d.Cross(pt.Sub(ln.P0))
	}
	c := bernsteinToPower(dist)
	var ts []float64
	switch len(c) {
	case 3:
		roots, n := SolveQuadratic(c[0], c[1], c[2])
		ts = roots[:n]
	case 4:
		roots, n := SolveCubic(c[0], c[1], c[2], c[3])
		ts = roots[:n]
	default:
		panic("lineCrossings called with unsupported degree")
	}

	b := Bez{pts: pts}
	invLen2 := 1 / d.Hypot2()
	var out [3]LineIntersection
	var n int
	for _, t := range ts {
		if t < -epsilon || t > 1+epsilon {
			continue
		}
		u := b.Eval(t).Sub(ln.P0).Dot(d) * invLen2
		if u >= 0 && u <= 1 {
			out[n] = LineIntersection{LineT: u, SegmentT: t}
			n++
		}
	}
	return out, n
}
