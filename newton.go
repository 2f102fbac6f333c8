package bezier

import (
	"math"
)

// Newton iterates that leave [-newtonDomain, newtonDomain] have diverged.
const newtonDomain = 4

type newtonState int

const (
	// The residual is within Options.Tolerance.
	newtonConverged newtonState = iota
	// Refinement stopped, but the curves do not meet at the estimate.
	newtonMissed
	// The iterates left the parameter domain.
	newtonDiverged
	// Refinement ran out of iterations while still making progress.
	newtonExhausted
)

type newtonResult struct {
	candidate
	state newtonState
}

// newton solves a(s) = b(t) with Newton's method, starting at (s, t). It
// returns the iterate with the smallest residual. A run that uses up
// Options.MaxNewtonIterations without converging is exhausted if its best
// iterate lies in the parameter domain and improves on the starting
// estimate, and missed otherwise.
//
// When the Jacobian becomes singular, which happens where the curves are
// tangent, iteration stops and the best iterate so far is kept if it is
// close enough. Such results are marked as singular.
func (q *query) newton(a, b Bez, s, t float64) newtonResult {
	best := candidate{s: s, t: t, residual: math.Inf(1)}
	first := math.Inf(1)
	settle := func(singular bool) newtonResult {
		best.singular = singular
		if best.residual <= q.opts.Tolerance {
			return newtonResult{best, newtonConverged}
		}
		return newtonResult{best, newtonMissed}
	}

	for i := range q.opts.MaxNewtonIterations {
		f := a.Eval(s).Sub(b.Eval(t))
		r := f.Hypot()
		if i == 0 {
			first = r
		}
		if r < best.residual {
			best = candidate{s: s, t: t, residual: r}
		}
		da, db := a.Deriv(s), b.Deriv(t)
		if r == 0 {
			return settle(q.isSingular(da, db))
		}
		if q.isSingular(da, db) {
			return settle(true)
		}

		det := da.Cross(db)
		ds := -f.Cross(db) / det
		dt := da.Cross(f) / det
		s += ds
		t += dt
		if math.IsNaN(s) || math.IsNaN(t) || math.Abs(s) > newtonDomain || math.Abs(t) > newtonDomain {
			return newtonResult{best, newtonDiverged}
		}
		if math.Hypot(ds, dt) <= q.opts.NewtonTolerance {
			if r := residual(a, b, s, t); r < best.residual {
				best = candidate{s: s, t: t, residual: r}
			}
			return settle(q.isSingular(a.Deriv(best.s), b.Deriv(best.t)))
		}
	}

	// The last step is not measured inside the loop.
	if r := residual(a, b, s, t); r < best.residual {
		best = candidate{s: s, t: t, residual: r}
	}
	if best.residual <= q.opts.Tolerance {
		return settle(q.isSingular(a.Deriv(best.s), b.Deriv(best.t)))
	}
	inDomain := best.s >= 0 && best.s <= 1 && best.t >= 0 && best.t <= 1
	if inDomain && best.residual < first {
		return newtonResult{best, newtonExhausted}
	}
	return newtonResult{best, newtonMissed}
}

// isSingular reports whether the Jacobian [da, -db] is singular relative to
// the lengths of its columns.
func (q *query) isSingular(da, db Vec2) bool {
	return da.sinAngle(db) < q.opts.SingularTolerance
}
