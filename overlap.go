package bezier

import (
	"math"
	"slices"
)

// A run of at least this many tangent roots that the curves connect is
// reported as an overlap.
const minOverlapRun = 3

// coincidence checks whether the reduced curves share an arc. The arc runs
// between the outermost points at which an end point of one curve lies on the
// other. Curves of the same degree share it if their sub-curves over it have
// the same control points. Straight curves share it if they share its
// midpoint, whatever their degrees and parametrizations.
func (q *query) coincidence() (Overlap, bool) {
	a, b := q.ra, q.rb
	tol := q.opts.Tolerance
	eps := q.opts.DedupTolerance
	straight := a.isStraight(q.opts.FlatTolerance) && b.isStraight(q.opts.FlatTolerance)
	if !straight && a.Degree() != b.Degree() {
		return Overlap{}, false
	}
	locate := Bez.Locate
	if straight {
		locate = Bez.locateOnLine
	}

	type params struct{ s, t float64 }
	var ps []params
	for _, s := range [...]float64{0, 1} {
		if t, ok := locate(b, a.Eval(s), tol); ok {
			ps = append(ps, params{s, t})
		}
	}
	for _, t := range [...]float64{0, 1} {
		if s, ok := locate(a, b.Eval(t), tol); ok {
			ps = append(ps, params{s, t})
		}
	}
	slices.SortFunc(ps, func(x, y params) int {
		if c := cmpFloat(x.s, y.s); c != 0 {
			return c
		}
		return cmpFloat(x.t, y.t)
	})
	ps = slices.CompactFunc(ps, func(x, y params) bool {
		return math.Abs(x.s-y.s) <= eps && math.Abs(x.t-y.t) <= eps
	})
	if len(ps) < 2 {
		return Overlap{}, false
	}

	first, last := ps[0], ps[len(ps)-1]
	if math.Abs(last.s-first.s) <= eps || math.Abs(last.t-first.t) <= eps {
		return Overlap{}, false
	}
	ov := Overlap{S0: first.s, S1: last.s, T0: first.t, T1: last.t}
	if straight {
		tm, ok := b.locateOnLine(a.Eval(0.5*(first.s+last.s)), tol)
		return ov, ok && within(tm, first.t, last.t, eps)
	}
	sa := a.Subsegment(first.s, last.s)
	sb := b.Subsegment(first.t, last.t)
	for i, pt := range sa.pts {
		if pt.Distance(sb.pts[i]) > tol {
			return Overlap{}, false
		}
	}
	return ov, true
}

// collapseRuns replaces runs of consecutive tangent or end point roots
// between which the curves coincide by overlaps. The roots must be sorted by
// S.
func (q *query) collapseRuns(roots []Intersection) ([]Intersection, []Overlap) {
	keep := make([]Intersection, 0, len(roots))
	var overlaps []Overlap
	for i := 0; i < len(roots); {
		j := i
		for j+1 < len(roots) && q.coincideBetween(roots[j], roots[j+1]) {
			j++
		}
		if j-i+1 >= minOverlapRun {
			overlaps = append(overlaps, Overlap{
				S0: roots[i].S,
				S1: roots[j].S,
				T0: roots[i].T,
				T1: roots[j].T,
			})
		} else {
			keep = append(keep, roots[i:j+1]...)
		}
		i = j + 1
	}
	return keep, overlaps
}

// coincideBetween reports whether two roots are joined by a shared arc. The
// point of the first curve halfway between them in S is located on the second
// curve, which must pass it between the roots' T with a parallel tangent.
func (q *query) coincideBetween(x, y Intersection) bool {
	if x.Kind == Crossing || y.Kind == Crossing {
		return false
	}
	s := 0.5 * (x.S + y.S)
	t, ok := q.b.Locate(q.a.Eval(s), q.opts.Tolerance)
	if !ok || !within(t, x.T, y.T, q.opts.DedupTolerance) {
		return false
	}
	return q.a.Deriv(s).sinAngle(q.b.Deriv(t)) < math.Sqrt(q.opts.SingularTolerance)
}

// uncovered removes the roots that lie on one of the overlaps. Roots on a
// shared arc are tangent or end point roots within the overlap's parameter
// ranges. Crossings within those ranges are kept: they are places where one
// curve passes the shared arc a second time.
func (q *query) uncovered(roots []Intersection, overlaps []Overlap) []Intersection {
	eps := q.opts.DedupTolerance
	return slices.DeleteFunc(roots, func(x Intersection) bool {
		if x.Kind == Crossing {
			return false
		}
		return slices.ContainsFunc(overlaps, func(o Overlap) bool {
			return within(x.S, o.S0, o.S1, eps) && within(x.T, o.T0, o.T1, eps)
		})
	})
}

// within reports whether x lies between e0 and e1, in either order, with a
// margin of eps.
func within(x, e0, e1, eps float64) bool {
	return x >= min(e0, e1)-eps && x <= max(e0, e1)+eps
}
