package odbpp

import (
	"math"
	"testing"

	"github.com/gerberforge/engine/internal/geometry"
)

func closeEnough(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestParsePadFlashesSymbolAtPositionWithPositivePolarity(t *testing.T) {
	symbols := map[int]Symbol{0: {Kind: SymbolRound, Diameter: 1.0}}
	prims, errs := ParseFeatures("P 10 20 0 0 0 $0 0\n", symbols)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(prims) != 1 {
		t.Fatalf("got %d primitives, want 1", len(prims))
	}
	p := prims[0]
	if !closeEnough(p.Center.X, 10, 1e-9) || !closeEnough(p.Center.Y, 20, 1e-9) {
		t.Errorf("center = %+v, want (10, 20)", p.Center)
	}
	if p.Exposure != 1 {
		t.Errorf("exposure = %d, want 1 for polarity 0", p.Exposure)
	}
}

func TestParsePadNonZeroPolarityIsNegativeExposure(t *testing.T) {
	symbols := map[int]Symbol{0: {Kind: SymbolRound, Diameter: 1.0}}
	prims, _ := ParseFeatures("P 0 0 0 0 0 $0 1\n", symbols)
	if prims[0].Exposure != 0 {
		t.Errorf("exposure = %d, want 0 for a non-zero polarity field", prims[0].Exposure)
	}
}

func TestParsePadUndefinedSymbolIsSoftError(t *testing.T) {
	_, errs := ParseFeatures("P 0 0 0 0 0 $9 0\n", map[int]Symbol{})
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1 for an undefined symbol reference", len(errs))
	}
}

func TestParsePadMirrorXFlipsSymbolBeforeTranslation(t *testing.T) {
	symbols := map[int]Symbol{0: {Kind: SymbolRectangle, Width: 2, Height: 1}}
	prims, errs := ParseFeatures("P 100 0 0 1 0 $0 0\n", symbols)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	b := geometry.BoundsOf(prims)
	// A symmetric rectangle mirrored about its own center and then
	// translated still spans the same bounds as the unmirrored case.
	if !closeEnough(b.MinX, 99, 1e-9) || !closeEnough(b.MaxX, 101, 1e-9) {
		t.Errorf("bounds = %+v, want an X span of [99, 101]", b)
	}
}

func TestParseLineEmitsCapsuleBetweenEndpoints(t *testing.T) {
	prims, errs := ParseFeatures("L 0 0 10 0 1 $0 0\n", nil)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(prims) != 4 {
		t.Fatalf("got %d primitives, want 2 end caps + 2 rectangle triangles", len(prims))
	}
	b := geometry.BoundsOf(prims)
	if !closeEnough(b.MinX, -0.5, 1e-9) || !closeEnough(b.MaxX, 10.5, 1e-9) {
		t.Errorf("bounds = %+v, want an X span of [-0.5, 10.5]", b)
	}
}

func TestParseLineDegenerateEmitsOnlyCaps(t *testing.T) {
	prims, _ := ParseFeatures("L 5 5 5 5 1 $0 0\n", nil)
	if len(prims) != 2 {
		t.Errorf("got %d primitives, want 2 (no rectangle for a zero-length line)", len(prims))
	}
}

func TestParseArcBuildsGeometryArc(t *testing.T) {
	prims, errs := ParseFeatures("A 0 0 5 0 90 0.2 0\n", nil)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(prims) != 1 || prims[0].Kind != geometry.KindArc {
		t.Fatalf("got %+v, want a single Arc primitive", prims)
	}
	if !closeEnough(prims[0].EndAngle-prims[0].StartAngle, math.Pi/2, 1e-9) {
		t.Errorf("sweep = %v, want pi/2", prims[0].EndAngle-prims[0].StartAngle)
	}
}

func TestParseSurfaceFanTriangulatesFromFirstVertex(t *testing.T) {
	src := "S 0 0 10 0 10 10 0 10 0\n"
	prims, errs := ParseFeatures(src, nil)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(prims) != 2 {
		t.Fatalf("got %d triangles, want 2 for a 4-vertex fan", len(prims))
	}
	var area float64
	for _, p := range prims {
		area += triangleArea(p)
	}
	if !closeEnough(area, 100, 1e-9) {
		t.Errorf("area = %v, want 100 for a 10x10 square", area)
	}
}

func triangleArea(p geometry.Primitive) float64 {
	a, b, c := p.V0, p.V1, p.V2
	return math.Abs((b.X-a.X)*(c.Y-a.Y)-(c.X-a.X)*(b.Y-a.Y)) / 2
}

func TestParseSurfaceTooFewVerticesIsSoftError(t *testing.T) {
	_, errs := ParseFeatures("S 0 0 1 1 0\n", nil)
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1 for a 2-vertex surface", len(errs))
	}
}

func TestParseFeaturesUnknownRecordTypeIsSoftError(t *testing.T) {
	_, errs := ParseFeatures("Z nonsense\n", nil)
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1 for an unrecognized record type", len(errs))
	}
}
