package bezier

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"slices"
)

var (
	// ErrDegenerateCurve is returned for curves with fewer than two control
	// points, non-finite control points, or no extent at all.
	ErrDegenerateCurve = errors.New("degenerate curve")
	// ErrInvalidTolerance is returned for tolerances that are negative, zero
	// where a positive value is required, or not finite.
	ErrInvalidTolerance = errors.New("invalid tolerance")
	// ErrNotReducible is returned when reducing the degree of a line.
	ErrNotReducible = errors.New("curve degree cannot be reduced")

	// The following errors are never returned directly by [Intersect]. They
	// are the values of [Result.Err] for the corresponding [Status].

	ErrMaxDepthExceeded = errors.New("subdivision exceeded maximum depth")
	ErrNotConverged     = errors.New("newton refinement did not converge")
	ErrAborted          = errors.New("intersection search aborted")
)

// Status describes how completely an intersection query was resolved.
type Status int

const (
	// StatusOK means that every candidate was resolved.
	StatusOK Status = iota
	// StatusMaxDepthExceeded means that the subdivision search reached
	// [Options.MaxDepth] for at least one pair of sub-curves. Roots found there
	// are still reported if Newton refinement succeeded.
	StatusMaxDepthExceeded
	// StatusNotConverged means that Newton refinement ran out of iterations
	// for at least one candidate. The best estimates are in
	// [Result.Unresolved].
	StatusNotConverged
	// StatusAborted means that the context was done or [Options.MaxPairs] was
	// exhausted before the search finished. Only roots that were fully
	// resolved before that point are reported.
	StatusAborted
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusMaxDepthExceeded:
		return "max-depth-exceeded"
	case StatusNotConverged:
		return "not-converged"
	case StatusAborted:
		return "aborted"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// IntersectionKind classifies an intersection point.
type IntersectionKind int

const (
	// Crossing is a transversal intersection.
	Crossing IntersectionKind = iota
	// Tangent is an intersection at which both curves have parallel tangents,
	// or at which a curve has a vanishing derivative.
	Tangent
	// Endpoint is an intersection at an end point of both curves.
	Endpoint
)

func (k IntersectionKind) String() string {
	switch k {
	case Crossing:
		return "crossing"
	case Tangent:
		return "tangent"
	case Endpoint:
		return "endpoint"
	default:
		return fmt.Sprintf("IntersectionKind(%d)", int(k))
	}
}

// Intersection is a point shared by two curves.
type Intersection struct {
	// The parameter on the first curve.
	S float64
	// The parameter on the second curve.
	T float64
	// The midpoint of the two curves' points at S and T.
	Point Point
	Kind  IntersectionKind
	// The distance between the first curve at S and the second curve at T.
	Residual float64
}

// Overlap is a range over which two curves trace the same arc. S0 < S1; T0
// and T1 are the matching parameters on the second curve and run backwards if
// the curves have opposite directions.
type Overlap struct {
	S0, S1 float64
	T0, T1 float64
}

// Result is the outcome of an intersection query.
type Result struct {
	// Intersection points, sorted by S, then T.
	Intersections []Intersection
	// Shared arcs. Intersection points inside an overlap are not reported
	// separately.
	Overlaps []Overlap
	// Best estimates of candidates for which Newton refinement did not
	// converge. They are not guaranteed to satisfy the tolerance.
	Unresolved []Intersection
	Status     Status
	// The number of sub-curve pairs that the search examined.
	Pairs int
}

// Err returns nil for [StatusOK] and an error matching one of
// [ErrMaxDepthExceeded], [ErrNotConverged] or [ErrAborted] otherwise.
func (r Result) Err() error {
	switch r.Status {
	case StatusOK:
		return nil
	case StatusMaxDepthExceeded:
		return ErrMaxDepthExceeded
	case StatusNotConverged:
		return fmt.Errorf("%w: %d unresolved candidates", ErrNotConverged, len(r.Unresolved))
	case StatusAborted:
		return fmt.Errorf("%w after %d pairs", ErrAborted, r.Pairs)
	default:
		return fmt.Errorf("unknown status %d", int(r.Status))
	}
}

// Options configures [IntersectOpt]. Fields left at their zero value use the
// documented default.
type Options struct {
	// The largest allowed distance between the two curves at a reported
	// intersection. Must be positive.
	Tolerance float64
	// The absolute amount by which bounding boxes are grown before testing
	// them for overlap. Defaults to Tolerance.
	BoxTolerance float64
	// The flatness below which a sub-curve is treated as a line segment.
	// Defaults to 1e-7.
	FlatTolerance float64
	// The parameter interval width below which subdivision stops and Newton
	// refinement starts from the interval midpoints. Defaults to 2⁻⁴⁰.
	WidthTolerance float64
	// The length of a Newton step below which refinement stops. Defaults to
	// 1e-12.
	NewtonTolerance float64
	// The sine of the angle between the tangents below which the Jacobian is
	// considered singular. Defaults to 1e-7.
	SingularTolerance float64
	// The parameter distance below which two roots are merged. Defaults to
	// 1e-6.
	DedupTolerance float64
	// The maximum subdivision depth. Defaults to 50.
	MaxDepth int
	// The maximum number of Newton iterations per candidate. Defaults to 50.
	MaxNewtonIterations int
	// The maximum number of sub-curve pairs to examine before aborting.
	// Defaults to 1<<20.
	MaxPairs int
	// The number of goroutines that examine sub-curve pairs. Values of 0 and
	// 1 search sequentially. The result does not depend on the number of
	// workers unless the search is aborted.
	Workers int
	// Receives debug records about the search. When nil, a discard logger is
	// used.
	Logger *slog.Logger
}

const (
	defaultFlatTolerance     = 1e-7
	defaultNewtonTolerance   = 1e-12
	defaultSingularTolerance = 1e-7
	defaultDedupTolerance    = 1e-6
	defaultMaxDepth          = 50
	defaultMaxNewton         = 50
	defaultMaxPairs          = 1 << 20
)

var defaultWidthTolerance = math.Ldexp(1, -40)

// DefaultOptions returns the options that [Intersect] uses for the given
// tolerance.
func DefaultOptions(tolerance float64) Options {
	return Options{Tolerance: tolerance}.fillDefaults()
}

func (o Options) fillDefaults() Options {
	def := func(v *float64, d float64) {
		if *v == 0 {
			*v = d
		}
	}
	def(&o.BoxTolerance, o.Tolerance)
	def(&o.FlatTolerance, defaultFlatTolerance)
	def(&o.WidthTolerance, defaultWidthTolerance)
	def(&o.NewtonTolerance, defaultNewtonTolerance)
	def(&o.SingularTolerance, defaultSingularTolerance)
	def(&o.DedupTolerance, defaultDedupTolerance)
	if o.MaxDepth == 0 {
		o.MaxDepth = defaultMaxDepth
	}
	if o.MaxNewtonIterations == 0 {
		o.MaxNewtonIterations = defaultMaxNewton
	}
	if o.MaxPairs == 0 {
		o.MaxPairs = defaultMaxPairs
	}
	if o.Workers == 0 {
		o.Workers = 1
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

func (o Options) validate() error {
	if !(o.Tolerance > 0) || math.IsInf(o.Tolerance, 0) {
		return fmt.Errorf("%w: tolerance %g must be positive and finite", ErrInvalidTolerance, o.Tolerance)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"box tolerance", o.BoxTolerance},
		{"flat tolerance", o.FlatTolerance},
		{"width tolerance", o.WidthTolerance},
		{"newton tolerance", o.NewtonTolerance},
		{"singular tolerance", o.SingularTolerance},
		{"dedup tolerance", o.DedupTolerance},
	} {
		if f.v < 0 || math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s %g", ErrInvalidTolerance, f.name, f.v)
		}
	}
	if o.MaxDepth < 0 || o.MaxNewtonIterations < 0 || o.MaxPairs < 0 || o.Workers < 0 {
		return fmt.Errorf("%w: negative limit", ErrInvalidTolerance)
	}
	return nil
}

// Intersect finds the intersections of a and b, with [DefaultOptions] for the
// given tolerance.
func Intersect(a, b Curve, tolerance float64) (Result, error) {
	return IntersectOpt(context.Background(), a, b, Options{Tolerance: tolerance})
}

// IntersectOpt finds the intersections of a and b.
//
// The returned error is non-nil only for invalid curves or options. Numerical
// trouble is reported through [Result.Status] instead, together with whatever
// could be resolved.
func IntersectOpt(ctx context.Context, a, b Curve, opts Options) (Result, error) {
	opts = opts.fillDefaults()
	if err := opts.validate(); err != nil {
		return Result{}, err
	}
	ba, err := asBez(a)
	if err != nil {
		return Result{}, fmt.Errorf("first curve: %w", err)
	}
	bb, err := asBez(b)
	if err != nil {
		return Result{}, fmt.Errorf("second curve: %w", err)
	}
	return newQuery(ctx, ba, bb, opts).run(), nil
}

func asBez(c Curve) (Bez, error) {
	if b, ok := c.(Bez); ok {
		if err := validateControlPoints(b.pts); err != nil {
			return Bez{}, err
		}
		return b, nil
	}
	return NewBez(c.ControlPoints()...)
}

// query holds the state of a single intersection query. Everything but the
// search statistics is read-only once the search starts.
type query struct {
	ctx  context.Context
	opts Options
	log  *slog.Logger

	// The caller's curves.
	a, b Bez
	// The curves with their degree reduced as far as possible without
	// changing them.
	ra, rb Bez
}

func newQuery(ctx context.Context, a, b Bez, opts Options) *query {
	reduceTol := opts.Tolerance * 1e-3
	return &query{
		ctx:  ctx,
		opts: opts,
		log:  opts.Logger,
		a:    a,
		b:    b,
		ra:   a.Reduce(reduceTol),
		rb:   b.Reduce(reduceTol),
	}
}

func (q *query) run() Result {
	var overlaps []Overlap
	if ov, ok := q.coincidence(); ok {
		q.log.Debug("curves overlap",
			"s0", ov.S0, "s1", ov.S1, "t0", ov.T0, "t1", ov.T1)
		overlaps = append(overlaps, ov)
	}

	sr := q.search()
	roots := q.uncovered(q.finish(sr.roots), overlaps)
	roots, runs := q.collapseRuns(roots)
	if len(runs) > 0 {
		overlaps = append(overlaps, runs...)
		roots = q.uncovered(roots, runs)
		slices.SortFunc(overlaps, func(x, y Overlap) int {
			return cmpFloat(x.S0, y.S0)
		})
	}
	unresolved := q.uncovered(q.finishUnresolved(sr.unresolved), overlaps)

	res := Result{
		Intersections: roots,
		Overlaps:      overlaps,
		Unresolved:    unresolved,
		Pairs:         sr.pairs,
	}
	switch {
	case sr.aborted:
		res.Status = StatusAborted
	case sr.maxDepth:
		res.Status = StatusMaxDepthExceeded
	case len(unresolved) > 0:
		res.Status = StatusNotConverged
	}
	q.log.Debug("intersection search finished",
		"pairs", sr.pairs,
		"candidates", len(sr.roots),
		"roots", len(roots),
		"overlaps", len(overlaps),
		"status", res.Status)
	return res
}

// residual returns the distance between a at s and b at t.
func residual(a, b Bez, s, t float64) float64 {
	return a.Eval(s).Distance(b.Eval(t))
}

func clamp01(x float64) float64 {
	return min(max(x, 0), 1)
}

func sortIntersections(roots []Intersection) {
	slices.SortFunc(roots, func(x, y Intersection) int {
		if c := cmpFloat(x.S, y.S); c != 0 {
			return c
		}
		return cmpFloat(x.T, y.T)
	})
}

func cmpFloat(x, y float64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}
