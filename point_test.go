package bezier

import (
	"math"
	"testing"
)

func TestPointArithmetic(t *testing.T) {
	diff(t, Pt(0, 0).Translate(Vec(-10, 0)), Pt(-10, 0))
	diff(t, Pt(1, 2).Midpoint(Pt(3, 4)), Pt(2, 3))
	diff(t, Pt(0, 0).Lerp(Pt(4, 8), 0.25), Pt(1, 2))
}

func TestPointDistance(t *testing.T) {
	p1 := Pt(0, 10)
	p2 := Pt(0, 5)
	if d := p1.Distance(p2); d != 5 {
		t.Errorf("got distance %v, want 5", d)
	}

	p3 := Pt(-11, 1)
	p4 := Pt(-7, -2)
	if d := p3.Distance(p4); d != 5 {
		t.Errorf("got distance %v, want 5", d)
	}
	if d := p3.Sub(p4).Hypot2(); d != 25 {
		t.Errorf("got squared distance %v, want 25", d)
	}
}

func TestPointIsFinite(t *testing.T) {
	if !Pt(1, -2).IsFinite() {
		t.Error("(1, -2) should be finite")
	}
	for _, pt := range []Point{Pt(math.Inf(1), 0), Pt(0, math.Inf(-1)), Pt(math.NaN(), 0), Pt(0, math.NaN())} {
		if pt.IsFinite() {
			t.Errorf("%s shouldn't be finite", pt)
		}
	}
}

func TestSinAngle(t *testing.T) {
	if got := Vec(1, 0).sinAngle(Vec(0, 3)); got != 1 {
		t.Errorf("got %v, want 1", got)
	}
	if got := Vec(1, 1).sinAngle(Vec(-2, -2)); got != 0 {
		t.Errorf("got %v, want 0", got)
	}
	if got := Vec(0, 0).sinAngle(Vec(1, 0)); got != 0 {
		t.Errorf("got %v, want 0 for zero vector", got)
	}
}
