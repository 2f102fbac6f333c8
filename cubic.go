package bezier

// CubicBez is a cubic Bézier segment. Its methods agree with those of the
// equivalent [Bez].
type CubicBez struct {
	P0 Point
	P1 Point
	P2 Point
	P3 Point
}

func cubicFromBez(b Bez) CubicBez {
	return CubicBez{b.pts[0], b.pts[1], b.pts[2], b.pts[3]}
}

func (c CubicBez) ControlPoints() []Point {
	return []Point{c.P0, c.P1, c.P2, c.P3}
}

// Bez returns the segment as a [Bez].
func (c CubicBez) Bez() Bez {
	return Bez{pts: c.ControlPoints()}
}

func (c CubicBez) Start() Point { return c.P0 }
func (c CubicBez) End() Point   { return c.P3 }

func (c CubicBez) Eval(t float64) Point {
	return c.Bez().Eval(t)
}

func (c CubicBez) Deriv(t float64) Vec2 {
	return Vec2(c.Differentiate().Eval(t))
}

// Differentiate returns the hodograph as a quadratic whose control points are
// interpreted as vectors.
func (c CubicBez) Differentiate() QuadBez {
	return quadFromBez(c.Bez().Hodograph())
}

func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	l, r := c.Bez().Subdivide()
	return cubicFromBez(l), cubicFromBez(r)
}

func (c CubicBez) Subsegment(t0, t1 float64) CubicBez {
	return cubicFromBez(c.Bez().Subsegment(t0, t1))
}

// BoundingBox returns the tight bounding box of the segment.
func (c CubicBez) BoundingBox() Rect {
	return c.Bez().BoundingBox()
}

func (c CubicBez) Transform(aff Affine) CubicBez {
	return cubicFromBez(c.Bez().Transform(aff))
}

// IntersectLine finds the crossings of the segment with a line in
// closed form.
func (c CubicBez) IntersectLine(ln Line) ([3]LineIntersection, int) {
	return lineCrossings(c.ControlPoints(), ln)
}
