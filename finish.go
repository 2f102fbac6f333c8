package bezier

import (
	"math"
	"slices"
)

// Parameters this close to 0 or 1 are snapped to the end point if that keeps
// the residual within tolerance.
const snapRadius = 1e-9

// finish turns the raw candidates of a search into the sorted, deduplicated
// and classified intersections.
func (q *query) finish(raw []candidate) []Intersection {
	cs := make([]candidate, 0, len(raw))
	for _, c := range raw {
		if c, ok := q.normalize(c); ok {
			cs = append(cs, c)
		}
	}
	cs = q.dedup(cs)

	out := make([]Intersection, 0, len(cs))
	for _, c := range cs {
		c = q.reparam(c)
		c = q.polish(c)
		out = append(out, q.intersection(c))
	}
	sortIntersections(out)
	return out
}

// finishUnresolved prepares the candidates for which Newton's method ran out
// of iterations. They are reported as they are, apart from clamping to the
// parameter domain and merging duplicates.
func (q *query) finishUnresolved(raw []candidate) []Intersection {
	cs := make([]candidate, 0, len(raw))
	for _, c := range raw {
		c.s, c.t = clamp01(c.s), clamp01(c.t)
		c.residual = residual(q.ra, q.rb, c.s, c.t)
		cs = append(cs, c)
	}
	cs = q.dedup(cs)
	out := make([]Intersection, 0, len(cs))
	for _, c := range cs {
		out = append(out, q.intersection(c))
	}
	sortIntersections(out)
	return out
}

// normalize clamps a candidate to the parameter domain and snaps parameters
// that are almost at an end point onto it. It reports false if the clamped
// candidate is no longer within tolerance.
func (q *query) normalize(c candidate) (candidate, bool) {
	tol := q.opts.Tolerance
	c.s, c.t = clamp01(c.s), clamp01(c.t)
	for _, e := range [...]float64{0, 1} {
		if c.s != e && math.Abs(c.s-e) <= snapRadius && residual(q.ra, q.rb, e, c.t) <= tol {
			c.s = e
		}
		if c.t != e && math.Abs(c.t-e) <= snapRadius && residual(q.ra, q.rb, c.s, e) <= tol {
			c.t = e
		}
	}
	c.residual = residual(q.ra, q.rb, c.s, c.t)
	return c, c.residual <= tol
}

func compareCandidates(x, y candidate) int {
	if c := cmpFloat(x.s, y.s); c != 0 {
		return c
	}
	if c := cmpFloat(x.t, y.t); c != 0 {
		return c
	}
	if c := cmpFloat(x.residual, y.residual); c != 0 {
		return c
	}
	switch {
	case x.singular == y.singular:
		return 0
	case y.singular:
		return -1
	default:
		return 1
	}
}

// dedup sorts the candidates and merges those that lie within
// Options.DedupTolerance of each other in both parameters. Of a group of
// merged candidates, the one with the smallest residual is kept; it is
// singular if any of the group was.
func (q *query) dedup(cs []candidate) []candidate {
	slices.SortFunc(cs, compareCandidates)
	eps := q.opts.DedupTolerance
	var out []candidate
outer:
	for _, c := range cs {
		for i, k := range out {
			if math.Abs(k.s-c.s) <= eps && math.Abs(k.t-c.t) <= eps {
				singular := k.singular || c.singular
				if c.residual < k.residual {
					out[i] = c
				}
				out[i].singular = singular
				continue outer
			}
		}
		out = append(out, c)
	}
	return out
}

// reparam re-derives the parameters of a root on curves that are straight
// but not uniformly parametrized. Newton's method converges slowly there and
// may stop short of the exact parameter.
func (q *query) reparam(c candidate) candidate {
	pt := q.ra.Eval(c.s).Midpoint(q.rb.Eval(c.t))
	s, t := c.s, c.t
	if q.ra.Degree() > 1 && q.ra.IsLinear(q.opts.FlatTolerance) {
		s = q.ra.reparamOnLine(pt, s)
	}
	if q.rb.Degree() > 1 && q.rb.IsLinear(q.opts.FlatTolerance) {
		t = q.rb.reparamOnLine(pt, t)
	}
	if s == c.s && t == c.t {
		return c
	}
	s, t = clamp01(s), clamp01(t)
	if r := residual(q.ra, q.rb, s, t); r <= c.residual {
		c.s, c.t, c.residual = s, t, r
	}
	return c
}

// polish refines a root found on the reduced curves on the caller's curves,
// and measures its residual there. Parameters that are exactly at an end
// point stay there.
func (q *query) polish(c candidate) candidate {
	c.residual = residual(q.a, q.b, c.s, c.t)
	if q.a.Degree() == q.ra.Degree() && q.b.Degree() == q.rb.Degree() {
		return c
	}
	n := q.newton(q.a, q.b, c.s, c.t)
	if n.state != newtonConverged {
		return c
	}
	s, t := clamp01(n.s), clamp01(n.t)
	if c.s == 0 || c.s == 1 {
		s = c.s
	}
	if c.t == 0 || c.t == 1 {
		t = c.t
	}
	eps := q.opts.DedupTolerance
	if math.Abs(s-c.s) > eps || math.Abs(t-c.t) > eps {
		return c
	}
	if r := residual(q.a, q.b, s, t); r < c.residual {
		c.s, c.t, c.residual = s, t, r
	}
	return c
}

// intersection classifies a candidate and computes its point on the caller's
// curves.
func (q *query) intersection(c candidate) Intersection {
	pa, pb := q.a.Eval(c.s), q.b.Eval(c.t)
	return Intersection{
		S:        c.s,
		T:        c.t,
		Point:    pa.Midpoint(pb),
		Kind:     q.classify(c),
		Residual: pa.Distance(pb),
	}
}

func (q *query) classify(c candidate) IntersectionKind {
	atEnd := func(x float64) bool { return x == 0 || x == 1 }
	switch {
	case atEnd(c.s) && atEnd(c.t):
		return Endpoint
	case c.singular:
		return Tangent
	case q.a.Deriv(c.s).sinAngle(q.b.Deriv(c.t)) < math.Sqrt(q.opts.SingularTolerance):
		return Tangent
	default:
		return Crossing
	}
}
