package bezier

// QuadBez is a quadratic Bézier segment. Its methods agree with those of the
// equivalent [Bez].
type QuadBez struct {
	P0 Point
	P1 Point
	P2 Point
}

func quadFromBez(b Bez) QuadBez {
	return QuadBez{b.pts[0], b.pts[1], b.pts[2]}
}

func (q QuadBez) ControlPoints() []Point {
	return []Point{q.P0, q.P1, q.P2}
}

// Bez returns the segment as a [Bez].
func (q QuadBez) Bez() Bez {
	return Bez{pts: q.ControlPoints()}
}

func (q QuadBez) Start() Point { return q.P0 }
func (q QuadBez) End() Point   { return q.P2 }

func (q QuadBez) Eval(t float64) Point {
	return lerpPoint(lerpPoint(q.P0, q.P1, t), lerpPoint(q.P1, q.P2, t), t)
}

func (q QuadBez) Deriv(t float64) Vec2 {
	return Vec2(q.Differentiate().Eval(t))
}

// Differentiate returns the hodograph as a line whose end points are
// interpreted as vectors.
func (q QuadBez) Differentiate() Line {
	h := q.Bez().Hodograph()
	return Line{h.pts[0], h.pts[1]}
}

// Raise returns the cubic that traces the same curve with the same
// parametrization.
func (q QuadBez) Raise() CubicBez {
	return cubicFromBez(q.Bez().Elevate())
}

func (q QuadBez) Subdivide() (QuadBez, QuadBez) {
	l, r := q.Bez().Subdivide()
	return quadFromBez(l), quadFromBez(r)
}

func (q QuadBez) Subsegment(t0, t1 float64) QuadBez {
	return quadFromBez(q.Bez().Subsegment(t0, t1))
}

// BoundingBox returns the tight bounding box of the segment.
func (q QuadBez) BoundingBox() Rect {
	return q.Bez().BoundingBox()
}

func (q QuadBez) Transform(aff Affine) QuadBez {
	return quadFromBez(q.Bez().Transform(aff))
}

// IntersectLine finds the crossings of the segment with a line in
// closed form.
func (q QuadBez) IntersectLine(ln Line) ([3]LineIntersection, int) {
	return lineCrossings(q.ControlPoints(), ln)
}
