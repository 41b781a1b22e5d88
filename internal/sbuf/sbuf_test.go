package sbuf

import (
	"testing"

	"github.com/gerberforge/engine/internal/geometry"
)

func TestTransposeDispatchesByKind(t *testing.T) {
	prims := []geometry.Primitive{
		geometry.Triangle(geometry.Point{}, geometry.Point{X: 1}, geometry.Point{Y: 1}, 1, geometry.Hole{}),
		geometry.Circle(geometry.Point{X: 2, Y: 2}, 1, 1, geometry.Hole{}),
		geometry.Arc(geometry.Point{}, 1, 0, 1, 0.1, 1),
		geometry.Thermal(geometry.Point{}, 2, 1, 0.2, 0),
	}
	s := Transpose(prims)
	if s.Triangles.Count() != 1 {
		t.Errorf("expected 1 triangle, got %d", s.Triangles.Count())
	}
	if s.Circles.Count() != 1 {
		t.Errorf("expected 1 circle, got %d", s.Circles.Count())
	}
	if s.Arcs.Count() != 1 {
		t.Errorf("expected 1 arc, got %d", s.Arcs.Count())
	}
	if s.Thermals.Count() != 1 {
		t.Errorf("expected 1 thermal, got %d", s.Thermals.Count())
	}
}

func TestTransposeTriangleVertexLayout(t *testing.T) {
	tri := geometry.Triangle(geometry.Point{X: 0, Y: 0}, geometry.Point{X: 1, Y: 0}, geometry.Point{X: 0, Y: 1}, 1, geometry.Hole{Center: geometry.Point{X: 0.5, Y: 0.5}, Radius: 0.1})
	s := Transpose([]geometry.Primitive{tri})
	if len(s.Triangles.Vertices) != 6 {
		t.Fatalf("expected 6 floats (3 verts x2), got %d", len(s.Triangles.Vertices))
	}
	if len(s.Triangles.Indices) != 3 || s.Triangles.Indices[0] != 0 || s.Triangles.Indices[2] != 2 {
		t.Errorf("unexpected sequential indices: %v", s.Triangles.Indices)
	}
	for i := 0; i < 3; i++ {
		if s.Triangles.HoleRadii[i] != float32(0.1) {
			t.Errorf("expected hole radius 0.1 replicated per vertex, got %v", s.Triangles.HoleRadii[i])
		}
	}
}

func TestTransposeEmptyDefaultsBoundsToZero(t *testing.T) {
	s := Transpose(nil)
	if s.Bounds != (geometry.Box{}) {
		t.Errorf("expected zero box for an empty sublayer, got %+v", s.Bounds)
	}
}

func TestTransposeIndexBaseAdvancesAcrossTriangles(t *testing.T) {
	tri := func() geometry.Primitive {
		return geometry.Triangle(geometry.Point{}, geometry.Point{X: 1}, geometry.Point{Y: 1}, 1, geometry.Hole{})
	}
	s := Transpose([]geometry.Primitive{tri(), tri()})
	if s.Triangles.Indices[3] != 3 || s.Triangles.Indices[5] != 5 {
		t.Errorf("expected second triangle's indices to continue from 3, got %v", s.Triangles.Indices)
	}
}
