package bezier

import (
	"math"
)

// Affine is a 2D affine map. A point (x, y) is mapped to
//
//	(A·x + C·y + E, B·x + D·y + F)
//
// Intersections are invariant under affine maps: the parameters of the
// intersections of two transformed curves are those of the original curves.
// Distances, and with them tolerances, are not. See [Affine.Scaling].
type Affine struct {
	A, B, C, D, E, F float64
}

// Identity maps every point onto itself.
var Identity = Affine{A: 1, D: 1}

// Scale returns a map that scales x by sx and y by sy.
func Scale(sx, sy float64) Affine {
	return Affine{A: sx, D: sy}
}

// Translate returns a map that moves every point by v.
func Translate(v Vec2) Affine {
	return Affine{A: 1, D: 1, E: v.X, F: v.Y}
}

// Rotate returns a map that rotates by th radians around the origin. Positive
// angles turn the positive x axis towards the positive y axis.
func Rotate(th float64) Affine {
	sin, cos := math.Sincos(th)
	return Affine{A: cos, B: sin, C: -sin, D: cos}
}

// Mul returns the composition of aff and o that applies o first.
func (aff Affine) Mul(o Affine) Affine {
	return Affine{
		A: aff.A*o.A + aff.C*o.B,
		B: aff.B*o.A + aff.D*o.B,
		C: aff.A*o.C + aff.C*o.D,
		D: aff.B*o.C + aff.D*o.D,
		E: aff.A*o.E + aff.C*o.F + aff.E,
		F: aff.B*o.E + aff.D*o.F + aff.F,
	}
}

func (aff Affine) ThenRotate(th float64) Affine { return Rotate(th).Mul(aff) }

func (aff Affine) ThenScale(sx, sy float64) Affine { return Scale(sx, sy).Mul(aff) }

func (aff Affine) ThenTranslate(v Vec2) Affine {
	aff.E += v.X
	aff.F += v.Y
	return aff
}

// Scaling returns the factor by which aff scales all distances. It reports
// false if aff is not a similarity, that is if it stretches some directions
// more than others, or if it collapses the plane.
//
// A query on curves mapped by a similarity with factor k finds the same
// intersections as the query on the original curves when its tolerances are
// multiplied by k.
func (aff Affine) Scaling() (float64, bool) {
	// The columns of the linear part of a similarity are orthogonal and of
	// equal length.
	c0, c1 := Vec(aff.A, aff.B), Vec(aff.C, aff.D)
	k0, k1 := c0.Hypot(), c1.Hypot()
	if k0 == 0 || math.IsInf(k0, 0) || math.IsNaN(k0) {
		return 0, false
	}
	const eps = 1e-12
	if math.Abs(k0-k1) > eps*k0 || math.Abs(c0.Dot(c1)) > eps*k0*k1 {
		return 0, false
	}
	return k0, true
}
