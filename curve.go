package bezier

// ParametricCurve describes a curve parametrized by a scalar.
type ParametricCurve interface {
	// Eval evaluates the curve at parameter t. Generally, t is in the range
	// [0, 1], but values slightly outside of it extrapolate the curve.
	Eval(t float64) Point
	Start() Point
	End() Point
}

// Curve is a polynomial curve in Bernstein form that can take part in
// intersection queries.
//
// [Bez], [Line], [QuadBez] and [CubicBez] implement Curve. Implementations
// must be immutable: queries share them between goroutines.
type Curve interface {
	ParametricCurve
	// Deriv evaluates the first derivative with respect to t.
	Deriv(t float64) Vec2
	// ControlPoints returns the control points in order. The first and last
	// control points are the curve's end points. Callers must not modify the
	// returned slice.
	ControlPoints() []Point
}

var (
	_ Curve = Bez{}
	_ Curve = Line{}
	_ Curve = QuadBez{}
	_ Curve = CubicBez{}
)
