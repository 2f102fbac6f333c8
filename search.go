package bezier

import (
	"golang.org/x/sync/errgroup"
)

const (
	// Chord crossings this far outside a chord, in units of the chord's
	// length, are still refined with Newton's method.
	chordSlack = 0.5
	// The relative cross product below which chords count as parallel.
	parallelEpsilon = 1e-12
	// How often the sequential search polls its context.
	pollInterval = 64
)

// span is a sub-curve of one of the query's curves, covering [t0, t1] of it.
type span struct {
	c      Bez
	t0, t1 float64
}

func (sp span) at(u float64) float64 {
	return sp.t0 + u*(sp.t1-sp.t0)
}

// param maps a point on the sub-curve's chord, at chord parameter u, to a
// parameter of the whole curve. Flat sub-curves of higher degree need not
// move along their chords uniformly, so u is corrected first.
func (sp span) param(pt Point, u float64) float64 {
	if sp.c.Degree() > 1 {
		u = sp.c.reparamOnLine(pt, u)
	}
	return sp.at(u)
}

func (sp span) mid() float64 {
	return 0.5 * (sp.t0 + sp.t1)
}

func (sp span) width() float64 {
	return sp.t1 - sp.t0
}

func (sp span) halves() (span, span) {
	l, r := sp.c.Subdivide()
	m := sp.mid()
	return span{l, sp.t0, m}, span{r, m, sp.t1}
}

type candidatePair struct {
	a, b  span
	depth int
}

// candidate is a root estimate on the reduced curves.
type candidate struct {
	s, t     float64
	residual float64
	singular bool
}

// pairOutcome is the result of examining one candidate pair. It depends on
// nothing but the pair and the query's read-only state.
type pairOutcome struct {
	children []candidatePair

	root          candidate
	hasRoot       bool
	unresolved    candidate
	hasUnresolved bool
	maxDepth      bool
}

type searchResult struct {
	roots      []candidate
	unresolved []candidate
	pairs      int
	maxDepth   bool
	aborted    bool
}

func (sr *searchResult) add(out pairOutcome) {
	if out.hasRoot {
		sr.roots = append(sr.roots, out.root)
	}
	if out.hasUnresolved {
		sr.unresolved = append(sr.unresolved, out.unresolved)
	}
	sr.maxDepth = sr.maxDepth || out.maxDepth
}

func (q *query) initialPair() candidatePair {
	return candidatePair{
		a: span{q.ra, 0, 1},
		b: span{q.rb, 0, 1},
	}
}

func (q *query) search() searchResult {
	if q.opts.Workers > 1 {
		return q.searchParallel()
	}
	return q.searchSequential()
}

// searchSequential runs a depth-first search with an explicit stack.
func (q *query) searchSequential() searchResult {
	var sr searchResult
	stack := []candidatePair{q.initialPair()}
	for len(stack) > 0 {
		if sr.pairs >= q.opts.MaxPairs {
			q.log.Debug("intersection search exceeded pair budget", "pairs", sr.pairs)
			sr.aborted = true
			break
		}
		if sr.pairs%pollInterval == 0 {
			if err := q.ctx.Err(); err != nil {
				q.log.Debug("intersection search canceled", "pairs", sr.pairs, "err", err)
				sr.aborted = true
				break
			}
		}
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		sr.pairs++
		out := q.examine(p)
		sr.add(out)
		for i := len(out.children) - 1; i >= 0; i-- {
			stack = append(stack, out.children[i])
		}
	}
	return sr
}

// searchParallel examines the search tree one level at a time, spreading the
// pairs of a level over Options.Workers goroutines. Outcomes are merged in
// the order in which the sequential search would produce them, up to the
// final sort of the candidates.
func (q *query) searchParallel() searchResult {
	var sr searchResult
	frontier := []candidatePair{q.initialPair()}
	for len(frontier) > 0 {
		if sr.pairs+len(frontier) > q.opts.MaxPairs {
			q.log.Debug("intersection search exceeded pair budget", "pairs", sr.pairs)
			sr.aborted = true
			break
		}
		outs := make([]pairOutcome, len(frontier))
		g, ctx := errgroup.WithContext(q.ctx)
		g.SetLimit(q.opts.Workers)
		for i, p := range frontier {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				outs[i] = q.examine(p)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			q.log.Debug("intersection search canceled", "pairs", sr.pairs, "err", err)
			sr.aborted = true
			break
		}

		sr.pairs += len(frontier)
		var next []candidatePair
		for _, out := range outs {
			sr.add(out)
			next = append(next, out.children...)
		}
		frontier = next
	}
	return sr
}

// examine advances a candidate pair by one step of the search: it rejects
// the pair, resolves it to a root, or splits it.
func (q *query) examine(p candidatePair) pairOutcome {
	if !p.a.c.ControlBox().Overlaps(p.b.c.ControlBox(), q.opts.BoxTolerance) {
		return pairOutcome{}
	}

	fa, fb := p.a.c.Flatness(), p.b.c.Flatness()
	switch {
	case fa <= q.opts.FlatTolerance && fb <= q.opts.FlatTolerance:
		return q.resolveFlat(p, fa, fb)
	case p.a.width() <= q.opts.WidthTolerance && p.b.width() <= q.opts.WidthTolerance:
		return q.resolveAt(p.a.mid(), p.b.mid())
	case p.depth >= q.opts.MaxDepth:
		q.log.Debug("subdivision reached maximum depth",
			"depth", p.depth, "s", p.a.mid(), "t", p.b.mid())
		out := q.resolveAt(p.a.mid(), p.b.mid())
		out.maxDepth = true
		return out
	}

	al, ar := p.a.halves()
	bl, br := p.b.halves()
	d := p.depth + 1
	return pairOutcome{children: []candidatePair{
		{al, bl, d},
		{al, br, d},
		{ar, bl, d},
		{ar, br, d},
	}}
}

// resolveFlat handles a pair of sub-curves that are both close enough to
// their chords to be treated as line segments.
func (q *query) resolveFlat(p candidatePair, fa, fb float64) pairOutcome {
	ca, cb := p.a.c.chord(), p.b.c.chord()
	u, v, ok := ca.crossingParams(cb, parallelEpsilon)
	if !ok || u < -chordSlack || u > 1+chordSlack || v < -chordSlack || v > 1+chordSlack {
		// Parallel or far apart. The segments may still touch or overlap
		// within tolerance.
		var dist float64
		u, v, dist = ca.closestParams(cb)
		if dist > fa+fb+q.opts.BoxTolerance {
			return pairOutcome{}
		}
	}
	return q.resolveAt(p.a.param(ca.Eval(u), u), p.b.param(cb.Eval(v), v))
}

// resolveAt refines the estimate (s, t) with Newton's method.
func (q *query) resolveAt(s, t float64) pairOutcome {
	n := q.newton(q.ra, q.rb, s, t)
	switch n.state {
	case newtonConverged:
		return pairOutcome{root: n.candidate, hasRoot: true}
	case newtonExhausted:
		q.log.Debug("newton refinement did not converge",
			"s", n.s, "t", n.t, "residual", n.residual)
		return pairOutcome{unresolved: n.candidate, hasUnresolved: true}
	default:
		return pairOutcome{}
	}
}
