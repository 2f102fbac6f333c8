package bezier

import (
	"math"
	"slices"
)

// SolveQuadratic finds real roots of a quadratic equation.
//
// Returns values of x for which c0 + c1 x + c2 x² = 0.0
//
// If the equation is nearly linear, it will return the root ignoring the
// quadratic term; the other root might be out of representable range. In the
// degenerate case where all coefficients are zero, so that all values of x
// satisfy the equation, a single 0.0 is returned.
func SolveQuadratic(c0, c1, c2 float64) ([2]float64, int) {
	sc0 := c0 / c2
	sc1 := c1 / c2
	if math.IsInf(sc0, 0) || math.IsInf(sc1, 0) {
		// c2 is zero or very small, treat as linear eqn
		root := -c0 / c1
		if !math.IsInf(root, 0) {
			return [2]float64{root}, 1
		} else if c0 == 0.0 && c1 == 0.0 {
			return [2]float64{0}, 1
		} else {
			return [2]float64{}, 0
		}
	}
	arg := sc1*sc1 - 4.0*sc0
	var root1 float64
	if math.IsInf(arg, 0) {
		// sc1 * sc1 overflowed. Find one root using sc1 x + x² = 0, the other
		// as sc0 / root1.
		root1 = -sc1
	} else {
		if arg < 0.0 {
			return [2]float64{}, 0
		} else if arg == 0.0 {
			return [2]float64{-0.5 * sc1}, 1
		}
		// See https://math.stackexchange.com/questions/866331
		root1 = -0.5 * (sc1 + math.Copysign(math.Sqrt(arg), sc1))
	}
	root2 := sc0 / root1
	if math.IsInf(root2, 0) {
		return [2]float64{root1}, 1
	}
	if root2 > root1 {
		return [2]float64{root1, root2}, 2
	}
	return [2]float64{root2, root1}, 2
}

// SolveCubic finds real roots of cubic equations.
//
// Returns values of x for which c0 + c1 x + c2 x² + c3 x³ = 0.0. When c3 is
// zero or nearly so, the quadratic equation is solved instead.
//
// See: https://momentsingraphics.de/CubicRoots.html, which is in turn based on
// Jim Blinn's "How to Solve a Cubic Equation".
func SolveCubic(c0, c1, c2, c3 float64) ([3]float64, int) {
	c3Recip := 1.0 / c3
	scaledC2 := c2 * (1.0 / 3.0 * c3Recip)
	scaledC1 := c1 * (1.0 / 3.0 * c3Recip)
	scaledC0 := c0 * c3Recip
	if math.IsInf(scaledC0, 0) || math.IsInf(scaledC1, 0) || math.IsInf(scaledC2, 0) {
		roots, n := SolveQuadratic(c0, c1, c2)
		return [3]float64{roots[0], roots[1]}, n
	}
	c0, c1, c2 = scaledC0, scaledC1, scaledC2
	// (d0, d1, d2) is "Delta" in the article.
	d0 := math.FMA(-c2, c2, c1)
	d1 := math.FMA(-c1, c2, c0)
	d2 := c2*c0 - c1*c1
	// Discriminant
	d := 4.0*d0*d2 - d1*d1
	de := math.FMA(-2.0*c2, d0, d1)
	switch {
	case d < 0.0:
		sq := math.Sqrt(-0.25 * d)
		r := -0.5 * de
		t1 := math.Cbrt(r+sq) + math.Cbrt(r-sq)
		return [3]float64{t1 - c2}, 1
	case d == 0.0:
		t1 := math.Copysign(math.Sqrt(-d0), de)
		return [3]float64{t1 - c2, -2.0*t1 - c2}, 2
	default:
		th := math.Atan2(math.Sqrt(d), -de) * (1.0 / 3.0)
		thSin, thCos := math.Sincos(th)
		r0 := thCos
		ss3 := thSin * math.Sqrt(3.0)
		r1 := 0.5 * (-thCos + ss3)
		r2 := 0.5 * (-thCos - ss3)
		t := 2.0 * math.Sqrt(-d0)
		return [3]float64{
			math.FMA(t, r0, -c2),
			math.FMA(t, r1, -c2),
			math.FMA(t, r2, -c2),
		}, 3
	}
}

// SolveITP solves an arbitrary function for a zero-crossing.
//
// This uses the [ITP method], as described in the paper [An Enhancement of the
// Bisection Method Average Performance Preserving Minmax Optimality].
//
// The values of ya and yb are given as arguments rather than computed from f,
// as they are usually already known. It is assumed that ya < 0.0 and yb > 0.0,
// otherwise unexpected results may occur.
//
// The value of epsilon must be larger than 2**-63 * (b - a). k2 is hardwired
// to 2. n0 trades bisection against the secant step: 0 never needs more
// iterations than bisection, 1 lets the secant method engage more often for
// smooth functions. A k1 of 0.2 / (b - a) matches the paper.
//
// [ITP method]: https://en.wikipedia.org/wiki/ITP_Method
// [An Enhancement of the Bisection Method Average Performance Preserving Minmax Optimality]: https://dl.acm.org/doi/10.1145/3423597
func SolveITP(
	f func(float64) float64,
	a float64,
	b float64,
	epsilon float64,
	n0 int,
	k1 float64,
	ya float64,
	yb float64,
) float64 {
	n1_2 := int(max(math.Ceil(math.Log2((b-a)/epsilon))-1.0, 0.0))
	nmax := n0 + n1_2
	scaledEpsilon := epsilon * float64(uint64(1)<<nmax)
	for b-a > 2.0*epsilon {
		x1_2 := 0.5 * (a + b)
		r := scaledEpsilon - 0.5*(b-a)
		xf := (yb*a - ya*b) / (yb - ya)
		sigma := x1_2 - xf
		delta := k1 * ((b - a) * (b - a))
		var xt float64
		if delta <= math.Abs(x1_2-xf) {
			xt = xf + math.Copysign(delta, sigma)
		} else {
			xt = x1_2
		}
		var xitp float64
		if math.Abs(xt-x1_2) <= r {
			xitp = xt
		} else {
			xitp = x1_2 - math.Copysign(r, sigma)
		}
		yitp := f(xitp)
		if yitp > 0.0 {
			b = xitp
			yb = yitp
		} else if yitp < 0.0 {
			a = xitp
			ya = yitp
		} else {
			return xitp
		}
		scaledEpsilon *= 0.5
	}
	return 0.5 * (a + b)
}

// Binomial coefficient, returning zero for values outside of the domain.
func choose(n, k int) uint64 {
	if k < 0 || k > n {
		return 0
	}
	p := uint64(1)
	bound := n - k
	for i := 1; i <= bound; i++ {
		p *= uint64(n)
		p /= uint64(i)
		n -= 1
	}
	return p
}

// bernsteinEval evaluates the scalar Bernstein polynomial with coefficients c
// at t, using de Casteljau.
func bernsteinEval(c []float64, t float64) float64 {
	var buf [maxInlineDegree + 1]float64
	var w []float64
	if len(c) <= len(buf) {
		w = buf[:len(c)]
	} else {
		w = make([]float64, len(c))
	}
	copy(w, c)
	mt := 1 - t
	for k := len(w) - 1; k > 0; k-- {
		for i := range k {
			w[i] = mt*w[i] + t*w[i+1]
		}
	}
	return w[0]
}

// bernsteinToPower converts Bernstein coefficients to monomial coefficients,
// lowest order first.
func bernsteinToPower(c []float64) []float64 {
	n := len(c) - 1
	out := make([]float64, n+1)
	for k := 0; k <= n; k++ {
		var sum float64
		for i := 0; i <= k; i++ {
			term := float64(choose(k, i)) * c[i]
			if (k-i)%2 == 1 {
				term = -term
			}
			sum += term
		}
		out[k] = float64(choose(n, k)) * sum
	}
	return out
}

const rootEpsilon = 1e-12

// bernsteinRoots returns the roots in [0, 1] of the scalar Bernstein
// polynomial with coefficients c, in increasing order. A polynomial that is
// identically zero has no isolated roots and reports none.
func bernsteinRoots(c []float64) []float64 {
	if len(c) < 2 || !slices.ContainsFunc(c, func(v float64) bool { return v != 0 }) {
		return nil
	}

	var raw []float64
	switch p := bernsteinToPower(c); len(p) - 1 {
	case 1:
		roots, n := SolveQuadratic(p[0], p[1], 0)
		raw = roots[:n]
	case 2:
		roots, n := SolveQuadratic(p[0], p[1], p[2])
		raw = roots[:n]
	case 3:
		roots, n := SolveCubic(p[0], p[1], p[2], p[3])
		raw = roots[:n]
	default:
		raw = bracketRoots(c)
	}

	out := make([]float64, 0, len(raw))
	for _, t := range raw {
		if math.IsNaN(t) || t < -rootEpsilon || t > 1+rootEpsilon {
			continue
		}
		out = append(out, min(max(t, 0), 1))
	}
	slices.Sort(out)
	return slices.CompactFunc(out, func(a, b float64) bool {
		return b-a <= rootEpsilon
	})
}

// bracketRoots samples a higher-degree polynomial on a uniform grid and
// refines every sign change with [SolveITP]. Roots of even multiplicity that
// fall between samples are missed.
func bracketRoots(c []float64) []float64 {
	f := func(t float64) float64 { return bernsteinEval(c, t) }
	steps := 8 * (len(c) - 1)
	var out []float64
	t0 := 0.0
	y0 := f(t0)
	if y0 == 0 {
		out = append(out, t0)
	}
	for i := 1; i <= steps; i++ {
		t1 := float64(i) / float64(steps)
		y1 := f(t1)
		switch {
		case y1 == 0:
			out = append(out, t1)
		case y0 < 0 && y1 > 0:
			out = append(out, SolveITP(f, t0, t1, rootEpsilon, 1, 0.2/(t1-t0), y0, y1))
		case y0 > 0 && y1 < 0:
			g := func(t float64) float64 { return -f(t) }
			out = append(out, SolveITP(g, t0, t1, rootEpsilon, 1, 0.2/(t1-t0), -y0, -y1))
		}
		t0, y0 = t1, y1
	}
	return out
}
