package geometry

import (
	"math"
	"testing"
)

func TestCircleBounds(t *testing.T) {
	c := Circle(Point{X: 1, Y: 2}, 0.5, 1, Hole{})
	b := c.Bounds()
	want := Box{MinX: 0.5, MaxX: 1.5, MinY: 1.5, MaxY: 2.5}
	if b != want {
		t.Errorf("got %+v, want %+v", b, want)
	}
}

func TestArcBoundsIncludesThickness(t *testing.T) {
	a := Arc(Point{}, 10, 0, math.Pi, 2, 1)
	b := a.Bounds()
	if b.MaxX != 11 || b.MinX != -11 {
		t.Errorf("arc bounds should extend by radius+thickness/2: got %+v", b)
	}
}

func TestThermalBoundsUsesOuterDiameter(t *testing.T) {
	th := Thermal(Point{X: 5, Y: 5}, 4, 2, 0.5, 0)
	b := th.Bounds()
	want := Box{MinX: 3, MaxX: 7, MinY: 3, MaxY: 7}
	if b != want {
		t.Errorf("got %+v, want %+v", b, want)
	}
}

func TestTriangleBoundsContainsVertices(t *testing.T) {
	tri := Triangle(Point{0, 0}, Point{4, 0}, Point{0, 3}, 1, Hole{})
	b := tri.Bounds()
	if b.MinX != 0 || b.MaxX != 4 || b.MinY != 0 || b.MaxY != 3 {
		t.Errorf("unexpected triangle bounds: %+v", b)
	}
}

func TestRotateAroundPivot(t *testing.T) {
	c := Circle(Point{X: 1, Y: 0}, 0.1, 1, Hole{})
	rotated := c.Rotate(Point{}, math.Pi/2)
	if math.Abs(rotated.Center.X) > 1e-9 || math.Abs(rotated.Center.Y-1) > 1e-9 {
		t.Errorf("expected (0,1), got %+v", rotated.Center)
	}
}

func TestOffsetTranslatesAllVertices(t *testing.T) {
	tri := Triangle(Point{0, 0}, Point{1, 0}, Point{0, 1}, 1, Hole{})
	moved := tri.Offset(5, -2)
	if moved.V0 != (Point{5, -2}) || moved.V1 != (Point{6, -2}) || moved.V2 != (Point{5, -1}) {
		t.Errorf("unexpected offset result: %+v", moved)
	}
}

func TestScaleAppliesToRadiusAndHole(t *testing.T) {
	c := Circle(Point{X: 2, Y: 2}, 1, 1, Hole{Center: Point{2, 2}, Radius: 0.25})
	scaled := c.Scale(2)
	if scaled.Radius != 2 || scaled.CHole.Radius != 0.5 {
		t.Errorf("unexpected scale result: radius=%v holeRadius=%v", scaled.Radius, scaled.CHole.Radius)
	}
}

func TestBoundsOfEmptyDefaultsToZero(t *testing.T) {
	b := BoundsOf(nil)
	if b != (Box{}) {
		t.Errorf("empty primitive list should produce zero box, got %+v", b)
	}
}

func TestBoundsOfUnionsAllPrimitives(t *testing.T) {
	prims := []Primitive{
		Circle(Point{X: -5, Y: 0}, 1, 1, Hole{}),
		Circle(Point{X: 5, Y: 0}, 1, 1, Hole{}),
	}
	b := BoundsOf(prims)
	if b.MinX != -6 || b.MaxX != 6 {
		t.Errorf("unexpected union bounds: %+v", b)
	}
}

func TestCirclePolygonHas36Points(t *testing.T) {
	poly := CirclePolygon(Point{}, 1)
	if len(poly) != 36 {
		t.Fatalf("expected 36-gon, got %d points", len(poly))
	}
	for _, p := range poly {
		r := math.Hypot(p.X, p.Y)
		if math.Abs(r-1) > 1e-9 {
			t.Errorf("point %+v not on unit circle (r=%v)", p, r)
		}
	}
}

func TestArcPolygonStepCount(t *testing.T) {
	// A 90-degree sweep should produce ceil(90/10)=9 segments, 10 points.
	poly := ArcPolygon(Point{}, 1, 0, math.Pi/2)
	if len(poly) != 10 {
		t.Errorf("expected 10 points for a 90deg sweep, got %d", len(poly))
	}
}

func TestThermalShapeHasFourContours(t *testing.T) {
	sh := ThermalShape(Point{}, 4, 2, 0.3, 0)
	if len(sh.Contours) != 4 {
		t.Fatalf("expected outer+inner-hole+2 gap contours, got %d", len(sh.Contours))
	}
	if len(sh.Contours[0]) != 36 {
		t.Errorf("outer contour should be a 36-gon, got %d points", len(sh.Contours[0]))
	}
}
