package sdfx

import (
	"math"
	"testing"

	"github.com/planar-kit/planar/pkg/kernel"
)

func TestCircleBoundingBox(t *testing.T) {
	k := New()
	c := k.Circle(40)
	min, max := c.BoundingBox()

	const tol = 0.01
	expectMin := [2]float64{-20, -20}
	expectMax := [2]float64{20, 20}

	for i := 0; i < 2; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected %f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected %f", i, max[i], expectMax[i])
		}
	}
}

func TestSquareBoundingBox(t *testing.T) {
	k := New()
	s := k.Square(25)
	min, max := s.BoundingBox()

	// Square profiles are min-corner-origin.
	const tol = 0.01
	expectMin := [2]float64{0, 0}
	expectMax := [2]float64{25, 25}

	for i := 0; i < 2; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected %f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected %f", i, max[i], expectMax[i])
		}
	}
}

func TestEvaluateSign(t *testing.T) {
	k := New()
	c := k.Circle(10)

	if d := c.Evaluate(0, 0); d >= 0 {
		t.Errorf("center of circle should be inside (negative), got %f", d)
	}
	if d := c.Evaluate(10, 10); d <= 0 {
		t.Errorf("point outside circle should be positive, got %f", d)
	}

	s := k.Square(10)
	if d := s.Evaluate(5, 5); d >= 0 {
		t.Errorf("center of square should be inside (negative), got %f", d)
	}
	if d := s.Evaluate(-5, -5); d <= 0 {
		t.Errorf("point outside square should be positive, got %f", d)
	}
}

func TestTranslate(t *testing.T) {
	k := New()
	s := k.Square(10)
	translated := k.Translate(s, 100, 200)

	min, max := translated.BoundingBox()

	const tol = 0.5
	expectMin := [2]float64{100, 200}
	expectMax := [2]float64{110, 210}

	for i := 0; i < 2; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected ~%f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected ~%f", i, max[i], expectMax[i])
		}
	}
}

func TestRotate(t *testing.T) {
	k := New()
	// A 45-degree rotated square of side 10 spans side*sqrt(2) on each axis.
	s := k.Rotate(k.Square(10), 45)
	min, max := s.BoundingBox()

	const tol = 1.0
	want := 10 * math.Sqrt2
	if extent := max[0] - min[0]; math.Abs(extent-want) > tol {
		t.Errorf("rotated X extent = %f, expected ~%f", extent, want)
	}
	if extent := max[1] - min[1]; math.Abs(extent-want) > tol {
		t.Errorf("rotated Y extent = %f, expected ~%f", extent, want)
	}
}

func TestEstimateAreaCircle(t *testing.T) {
	k := New()
	c := k.Circle(40)

	got, err := kernel.EstimateArea(c, kernel.DefaultAreaCells)
	if err != nil {
		t.Fatalf("EstimateArea: %v", err)
	}
	want := math.Pi * 20 * 20
	if rel := math.Abs(got-want) / want; rel > 0.01 {
		t.Errorf("estimated circle area = %f, want ~%f (relative error %f)", got, want, rel)
	}
}

func TestEstimateAreaSquare(t *testing.T) {
	k := New()
	s := k.Square(25)

	got, err := kernel.EstimateArea(s, kernel.DefaultAreaCells)
	if err != nil {
		t.Fatalf("EstimateArea: %v", err)
	}
	want := 625.0
	if rel := math.Abs(got-want) / want; rel > 0.01 {
		t.Errorf("estimated square area = %f, want ~%f (relative error %f)", got, want, rel)
	}
}

func TestBooleanAreas(t *testing.T) {
	k := New()

	// Two disjoint squares: union area is the sum.
	a := k.Square(10)
	b := k.Translate(k.Square(10), 20, 0)
	u := k.Union(a, b)

	got, err := kernel.EstimateArea(u, kernel.DefaultAreaCells)
	if err != nil {
		t.Fatalf("EstimateArea(union): %v", err)
	}
	if rel := math.Abs(got-200) / 200; rel > 0.02 {
		t.Errorf("union area = %f, want ~200", got)
	}

	// Square minus centered circle.
	s := k.Square(20)
	hole := k.Translate(k.Circle(10), 10, 10)
	diff := k.Difference(s, hole)

	got, err = kernel.EstimateArea(diff, kernel.DefaultAreaCells)
	if err != nil {
		t.Fatalf("EstimateArea(difference): %v", err)
	}
	want := 400 - math.Pi*25
	if rel := math.Abs(got-want) / want; rel > 0.02 {
		t.Errorf("difference area = %f, want ~%f", got, want)
	}

	// Overlapping squares: intersection is the overlap.
	c := k.Translate(k.Square(10), 5, 0)
	inter := k.Intersection(a, c)

	got, err = kernel.EstimateArea(inter, kernel.DefaultAreaCells)
	if err != nil {
		t.Fatalf("EstimateArea(intersection): %v", err)
	}
	if rel := math.Abs(got-50) / 50; rel > 0.05 {
		t.Errorf("intersection area = %f, want ~50", got)
	}
}

func TestEstimateAreaArgs(t *testing.T) {
	k := New()
	c := k.Circle(10)

	if _, err := kernel.EstimateArea(c, 0); err == nil {
		t.Error("expected error for zero cells")
	}
	if _, err := kernel.EstimateArea(nil, 100); err == nil {
		t.Error("expected error for nil profile")
	}
}
