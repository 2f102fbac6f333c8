package bezier

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Elevate returns the same curve expressed with one more control point.
func (b Bez) Elevate() Bez {
	n := len(b.pts) - 1
	out := make([]Point, n+2)
	out[0] = b.pts[0]
	out[n+1] = b.pts[n]
	for i := 1; i <= n; i++ {
		a := float64(i) / float64(n+1)
		out[i] = Point{
			X: a*b.pts[i-1].X + (1-a)*b.pts[i].X,
			Y: a*b.pts[i-1].Y + (1-a)*b.pts[i].Y,
		}
	}
	return Bez{pts: out}
}

// elevateTo elevates b until it has the given degree. It returns b unchanged
// if its degree is already at least degree.
func (b Bez) elevateTo(degree int) Bez {
	for b.Degree() < degree {
		b = b.Elevate()
	}
	return b
}

// elevationMatrix returns the (n+1)×n matrix that maps the control points of
// a curve of degree n-1 to those of its elevation to degree n.
func elevationMatrix(n int) *mat.Dense {
	e := mat.NewDense(n+1, n, nil)
	for i := 0; i <= n; i++ {
		a := float64(i) / float64(n)
		if i > 0 {
			e.Set(i, i-1, a)
		}
		if i < n {
			e.Set(i, i, 1-a)
		}
	}
	return e
}

// ReduceDegree returns the curve of one lower degree whose elevation best
// matches b in the least-squares sense, together with the largest distance
// between a control point of that elevation and the corresponding control
// point of b. A distance of (nearly) zero means b is a degree-elevated curve
// and the reduction is exact, parametrization included.
//
// The end points of the reduced curve are those of b.
func (b Bez) ReduceDegree() (Bez, float64, error) {
	n := b.Degree()
	if n < 2 {
		return Bez{}, 0, fmt.Errorf("reducing degree %d curve: %w", n, ErrNotReducible)
	}

	p := mat.NewDense(n+1, 2, nil)
	for i, pt := range b.pts {
		p.Set(i, 0, pt.X)
		p.Set(i, 1, pt.Y)
	}
	var q mat.Dense
	if err := q.Solve(elevationMatrix(n), p); err != nil {
		return Bez{}, 0, fmt.Errorf("reducing degree %d curve: %w", n, err)
	}

	out := make([]Point, n)
	for i := range out {
		out[i] = Pt(q.At(i, 0), q.At(i, 1))
	}
	out[0] = b.pts[0]
	out[n-1] = b.pts[n]
	reduced := Bez{pts: out}

	var dist float64
	for i, pt := range reduced.Elevate().pts {
		dist = max(dist, pt.Distance(b.pts[i]))
	}
	return reduced, dist, nil
}

// Reduce repeatedly reduces the degree of b for as long as the reduction is
// exact to within tol, and returns the lowest degree curve found. Curves that
// are not degree-elevated are returned unchanged.
func (b Bez) Reduce(tol float64) Bez {
	for b.Degree() > 1 {
		r, dist, err := b.ReduceDegree()
		if err != nil || dist > tol {
			break
		}
		b = r
	}
	return b
}
