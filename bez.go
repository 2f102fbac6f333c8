package bezier

import (
	"fmt"
	"slices"
)

// maxInlineDegree is the highest degree that is evaluated without allocating.
const maxInlineDegree = 15

// Bez is a Bézier curve of arbitrary degree, defined by two or more control
// points over the parameter domain [0, 1].
//
// A Bez is immutable and may be shared freely between goroutines. The zero
// value has no control points and is not a valid curve.
type Bez struct {
	pts []Point
}

// NewBez returns a curve with a copy of the given control points.
//
// It returns an error wrapping [ErrDegenerateCurve] if there are fewer than
// two points, if a point is not finite, or if all points coincide.
func NewBez(pts ...Point) (Bez, error) {
	if err := validateControlPoints(pts); err != nil {
		return Bez{}, err
	}
	return Bez{pts: slices.Clone(pts)}, nil
}

// AdoptBez is like [NewBez] but takes ownership of pts instead of copying
// them. The caller must not modify pts afterwards.
func AdoptBez(pts []Point) (Bez, error) {
	if err := validateControlPoints(pts); err != nil {
		return Bez{}, err
	}
	return Bez{pts: pts}, nil
}

// MustBez is like [NewBez] but panics on invalid input. It is meant for
// curves known at compile time.
func MustBez(pts ...Point) Bez {
	b, err := NewBez(pts...)
	if err != nil {
		panic(err)
	}
	return b
}

func validateControlPoints(pts []Point) error {
	if len(pts) < 2 {
		return fmt.Errorf("%w: need at least 2 control points, got %d", ErrDegenerateCurve, len(pts))
	}
	for i, pt := range pts {
		if !pt.IsFinite() {
			return fmt.Errorf("%w: control point %d is %s", ErrDegenerateCurve, i, pt)
		}
	}
	if !slices.ContainsFunc(pts[1:], func(pt Point) bool { return pt != pts[0] }) {
		return fmt.Errorf("%w: all control points are %s", ErrDegenerateCurve, pts[0])
	}
	return nil
}

// Degree returns the degree of the curve, one less than the number of control
// points.
func (b Bez) Degree() int {
	return len(b.pts) - 1
}

// ControlPoints returns the control points. The slice must not be modified.
func (b Bez) ControlPoints() []Point {
	return b.pts
}

func (b Bez) Start() Point {
	return b.pts[0]
}

func (b Bez) End() Point {
	return b.pts[len(b.pts)-1]
}

func (b Bez) String() string {
	return fmt.Sprintf("Bez%v", b.pts)
}

// lerpPoint interpolates in a form that returns a and b exactly at t = 0 and
// t = 1.
func lerpPoint(a, b Point, t float64) Point {
	mt := 1 - t
	return Point{
		X: mt*a.X + t*b.X,
		Y: mt*a.Y + t*b.Y,
	}
}

// scratch copies pts into buf if it fits, or into a new slice otherwise.
func scratch(buf []Point, pts []Point) []Point {
	if len(pts) <= cap(buf) {
		buf = buf[:len(pts)]
	} else {
		buf = make([]Point, len(pts))
	}
	copy(buf, pts)
	return buf
}

func deCasteljau(w []Point, t float64) Point {
	for k := len(w) - 1; k > 0; k-- {
		for i := range k {
			w[i] = lerpPoint(w[i], w[i+1], t)
		}
	}
	return w[0]
}

// Eval evaluates the curve at t using de Casteljau's algorithm. Values of t
// outside [0, 1] extrapolate the curve.
func (b Bez) Eval(t float64) Point {
	var buf [maxInlineDegree + 1]Point
	return deCasteljau(scratch(buf[:0], b.pts), t)
}

// Deriv evaluates the first derivative of the curve at t.
func (b Bez) Deriv(t float64) Vec2 {
	n := len(b.pts) - 1
	if n < 1 {
		return Vec2{}
	}
	var buf [maxInlineDegree + 1]Point
	w := scratch(buf[:0], b.pts[:n])
	for i := range w {
		w[i] = Point(b.pts[i+1].Sub(b.pts[i]).Mul(float64(n)))
	}
	return Vec2(deCasteljau(w, t))
}

// Hodograph returns the derivative curve, whose control points are to be
// interpreted as vectors. The hodograph of a line is a single point.
func (b Bez) Hodograph() Bez {
	n := len(b.pts) - 1
	out := make([]Point, n)
	for i := range out {
		out[i] = Point(b.pts[i+1].Sub(b.pts[i]).Mul(float64(n)))
	}
	return Bez{pts: out}
}

// Split splits the curve at t into two curves covering [0, t] and [t, 1].
// The outer end points are reproduced exactly, and so is the shared point
// of both halves.
func (b Bez) Split(t float64) (Bez, Bez) {
	n := len(b.pts)
	var buf [maxInlineDegree + 1]Point
	w := scratch(buf[:0], b.pts)
	left := make([]Point, n)
	right := make([]Point, n)
	left[0] = w[0]
	right[n-1] = w[n-1]
	for k := 1; k < n; k++ {
		for i := range n - k {
			w[i] = lerpPoint(w[i], w[i+1], t)
		}
		left[k] = w[0]
		right[n-1-k] = w[n-1-k]
	}
	return Bez{pts: left}, Bez{pts: right}
}

// Subdivide splits the curve into halves.
func (b Bez) Subdivide() (Bez, Bez) {
	return b.Split(0.5)
}

// Subsegment returns the part of the curve between t0 and t1, reparametrized
// to [0, 1]. If t0 > t1, the returned curve runs backwards.
func (b Bez) Subsegment(t0, t1 float64) Bez {
	if t0 > t1 {
		return b.Subsegment(t1, t0).Reverse()
	}
	_, r := b.Split(t0)
	if t0 == 1 {
		return r
	}
	l, _ := r.Split((t1 - t0) / (1 - t0))
	return l
}

// Reverse returns the curve with its direction reversed, so that Eval(t) of
// the result is Eval(1-t) of b.
func (b Bez) Reverse() Bez {
	out := slices.Clone(b.pts)
	slices.Reverse(out)
	return Bez{pts: out}
}

// ControlBox returns the bounding box of the control points. Because a Bézier
// curve lies in the convex hull of its control points, the box encloses the
// curve.
func (b Bez) ControlBox() Rect {
	r := Rect{b.pts[0].X, b.pts[0].Y, b.pts[0].X, b.pts[0].Y}
	for _, pt := range b.pts[1:] {
		r = r.UnionPoint(pt)
	}
	return r
}

// Extrema returns the parameters in the open interval (0, 1) at which the
// curve has a horizontal or vertical tangent, in increasing order.
func (b Bez) Extrema() []float64 {
	if len(b.pts) < 3 {
		return nil
	}
	h := b.Hodograph()
	xs := make([]float64, len(h.pts))
	ys := make([]float64, len(h.pts))
	for i, pt := range h.pts {
		xs[i] = pt.X
		ys[i] = pt.Y
	}
	var out []float64
	for _, t := range append(bernsteinRoots(xs), bernsteinRoots(ys)...) {
		if t > 0 && t < 1 {
			out = append(out, t)
		}
	}
	slices.Sort(out)
	return slices.CompactFunc(out, func(a, b float64) bool {
		return b-a <= rootEpsilon
	})
}

// BoundingBox returns the smallest axis-aligned rectangle that encloses the
// curve over [0, 1].
func (b Bez) BoundingBox() Rect {
	bbox := NewRectFromPoints(b.Start(), b.End())
	for _, t := range b.Extrema() {
		bbox = bbox.UnionPoint(b.Eval(t))
	}
	return bbox
}

// Transform applies an affine transformation to the control points. Bézier
// curves are affinely invariant, so parameters are preserved.
func (b Bez) Transform(aff Affine) Bez {
	out := make([]Point, len(b.pts))
	for i, pt := range b.pts {
		out[i] = pt.Transform(aff)
	}
	return Bez{pts: out}
}

// Translate moves the curve by v.
func (b Bez) Translate(v Vec2) Bez {
	return b.Transform(Translate(v))
}
