package bezier

import (
	"math"
)

const (
	locateFlatness  = 1e-7
	locateMaxDepth  = 40
	locateMaxSteps  = 32
	locateStepLimit = 1e-15
)

// Locate finds a parameter t in [0, 1] at which the curve passes within tol
// of p. If the curve passes near p more than once, the closest approach wins.
//
// Curves that are straight but non-uniformly parametrized are handled
// exactly, by solving for the parameter along the line.
func (b Bez) Locate(p Point, tol float64) (float64, bool) {
	if len(b.pts) > 2 && b.Flatness() <= 1e-3*tol {
		if t, ok := b.locateOnLine(p, tol); ok {
			return t, true
		}
	}

	type piece struct {
		c      Bez
		t0, t1 float64
		depth  int
	}
	bestT, bestDist := 0.0, math.Inf(1)
	stack := []piece{{b, 0, 1, 0}}
	for len(stack) > 0 {
		pc := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !pc.c.ControlBox().Inflate(tol, tol).Contains(p) {
			continue
		}
		if pc.depth < locateMaxDepth && !pc.c.IsFlat(locateFlatness) {
			l, r := pc.c.Subdivide()
			tm := 0.5 * (pc.t0 + pc.t1)
			stack = append(stack, piece{r, tm, pc.t1, pc.depth + 1}, piece{l, pc.t0, tm, pc.depth + 1})
			continue
		}
		u := pc.c.chord().project(p)
		t := b.refineLocation(p, pc.t0+u*(pc.t1-pc.t0))
		if d := b.Eval(t).Distance(p); d < bestDist {
			bestT, bestDist = t, d
		}
	}
	if bestDist > tol {
		return 0, false
	}
	return bestT, true
}

// refineLocation runs Gauss-Newton steps on |B(t) - p|², keeping t in [0, 1].
func (b Bez) refineLocation(p Point, t float64) float64 {
	for range locateMaxSteps {
		f := b.Eval(t).Sub(p)
		d := b.Deriv(t)
		den := d.Hypot2()
		if den == 0 {
			break
		}
		step := f.Dot(d) / den
		t = min(max(t-step, 0), 1)
		if math.Abs(step) <= locateStepLimit {
			break
		}
	}
	return t
}

// lineParams returns the parameters at which a curve with collinear control
// points passes the projection of p onto its chord. The parameters are roots
// of the Bernstein polynomial of the control points projected onto the chord,
// which is exact even for non-uniform parametrizations.
func (b Bez) lineParams(p Point) []float64 {
	start := b.Start()
	d := b.End().Sub(start)
	dd := d.Hypot2()
	if dd == 0 {
		return nil
	}
	target := p.Sub(start).Dot(d) / dd
	c := make([]float64, len(b.pts))
	for i, pt := range b.pts {
		c[i] = pt.Sub(start).Dot(d)/dd - target
	}
	return bernsteinRoots(c)
}

func (b Bez) locateOnLine(p Point, tol float64) (float64, bool) {
	bestT, bestDist := 0.0, math.Inf(1)
	for _, t := range b.lineParams(p) {
		if dist := b.Eval(t).Distance(p); dist < bestDist {
			bestT, bestDist = t, dist
		}
	}
	if bestDist > tol {
		return 0, false
	}
	return bestT, true
}

// reparamOnLine re-derives the parameter of p on a straight curve, preferring
// the root closest to the estimate t.
func (b Bez) reparamOnLine(p Point, t float64) float64 {
	best := t
	bestDelta := math.Inf(1)
	for _, r := range b.lineParams(p) {
		if delta := math.Abs(r - t); delta < bestDelta {
			best, bestDelta = r, delta
		}
	}
	return best
}
