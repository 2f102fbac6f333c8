package bezier

import (
	"context"
	"math"
)

// SelfIntersections finds the points at which c crosses or touches itself.
// For every intersection, S < T are the two parameters of the point on c.
//
// The curve is split at its extrema into pieces that are monotone in x and
// y, which cannot intersect themselves, and the pieces are intersected
// pairwise. The roots that adjacent pieces share at their common end point
// are not reported. Shared arcs, which only occur in curves that retrace
// themselves, are ignored.
//
// If an intersection query between two pieces does not finish with
// [StatusOK], the intersections found so far are returned along with the
// error of its [Result].
func SelfIntersections(c Curve, tolerance float64) ([]Intersection, error) {
	opts := DefaultOptions(tolerance)
	if err := opts.validate(); err != nil {
		return nil, err
	}
	b, err := asBez(c)
	if err != nil {
		return nil, err
	}

	bounds := append(append([]float64{0}, b.Extrema()...), 1)
	pieces := make([]span, 0, len(bounds)-1)
	for i := range len(bounds) - 1 {
		t0, t1 := bounds[i], bounds[i+1]
		if t1-t0 <= opts.WidthTolerance {
			continue
		}
		pieces = append(pieces, span{b.Subsegment(t0, t1), t0, t1})
	}

	var (
		cs       []candidate
		firstErr error
	)
	for i, pa := range pieces {
		for j := i + 1; j < len(pieces); j++ {
			pb := pieces[j]
			res := newQuery(context.Background(), pa.c, pb.c, opts).run()
			if err := res.Err(); err != nil && firstErr == nil {
				firstErr = err
			}
			for _, r := range res.Intersections {
				if j == i+1 && r.S == 1 && r.T == 0 {
					continue
				}
				cs = append(cs, candidate{
					s:        pa.at(r.S),
					t:        pb.at(r.T),
					residual: r.Residual,
					singular: r.Kind == Tangent,
				})
			}
		}
	}

	q := newQuery(context.Background(), b, b, opts)
	cs = q.dedup(cs)
	out := make([]Intersection, 0, len(cs))
	for _, c := range cs {
		out = append(out, q.selfIntersection(c))
	}
	sortIntersections(out)
	return out, firstErr
}

func (q *query) selfIntersection(c candidate) Intersection {
	p0, p1 := q.a.Eval(c.s), q.a.Eval(c.t)
	kind := Crossing
	switch {
	case c.s == 0 && c.t == 1:
		kind = Endpoint
	case c.singular:
		kind = Tangent
	case q.a.Deriv(c.s).sinAngle(q.a.Deriv(c.t)) < math.Sqrt(q.opts.SingularTolerance):
		kind = Tangent
	}
	return Intersection{
		S:        c.s,
		T:        c.t,
		Point:    p0.Midpoint(p1),
		Kind:     kind,
		Residual: p0.Distance(p1),
	}
}
