package gerber_test

import (
	"math"
	"testing"

	"github.com/gerberforge/engine/internal/boolops"
	"github.com/gerberforge/engine/internal/gerber"
	"github.com/gerberforge/engine/internal/geometry"
)

func parse(t *testing.T, src string) *gerber.Result {
	t.Helper()
	res := gerber.Parse(src, boolops.EarClipper{})
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected parse errors: %v", res.Errors)
	}
	return res
}

func flatten(sublayers [][]geometry.Primitive) []geometry.Primitive {
	var out []geometry.Primitive
	for _, s := range sublayers {
		out = append(out, s...)
	}
	return out
}

func closeEnough(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// Scenario 1: a single circular flash at the origin.
func TestEndToEndSingleCircularFlash(t *testing.T) {
	const src = `%FSLAX24Y24*%%MOMM*%%ADD10C,0.5*%D10*X0Y0D03*M02*`
	res := parse(t, src)

	if len(res.Sublayers) != 1 {
		t.Fatalf("got %d sublayers, want 1", len(res.Sublayers))
	}
	prims := res.Sublayers[0]
	if len(prims) != 1 {
		t.Fatalf("got %d primitives, want 1", len(prims))
	}
	p := prims[0]
	if p.Kind != geometry.KindCircle {
		t.Fatalf("kind = %v, want Circle", p.Kind)
	}
	if p.Center != (geometry.Point{}) || !closeEnough(p.Radius, 0.25, 1e-9) {
		t.Errorf("got center=%+v radius=%v, want center=(0,0) radius=0.25", p.Center, p.Radius)
	}
	if p.Exposure != 1 {
		t.Errorf("exposure = %d, want 1", p.Exposure)
	}
	if p.CHole.Radius != 0 {
		t.Errorf("hole radius = %v, want 0", p.CHole.Radius)
	}

	b := geometry.BoundsOf(prims)
	want := geometry.Box{MinX: -0.25, MaxX: 0.25, MinY: -0.25, MaxY: 0.25}
	if b != want {
		t.Errorf("bounds = %+v, want %+v", b, want)
	}
}

// Scenario 2: a linear stroke between two flashes.
func TestEndToEndLinearStroke(t *testing.T) {
	const src = `%FSLAX24Y24*%%MOMM*%%ADD10C,0.2*%D10*X0Y0D02*X50000Y0D01*M02*`
	res := parse(t, src)

	if len(res.Sublayers) != 1 {
		t.Fatalf("got %d sublayers, want 1", len(res.Sublayers))
	}
	prims := res.Sublayers[0]
	if len(prims) != 4 {
		t.Fatalf("got %d primitives, want 2 flashes + 2 rectangle triangles", len(prims))
	}
	if prims[0].Kind != geometry.KindCircle || prims[0].Center != (geometry.Point{}) {
		t.Errorf("first primitive = %+v, want a circle flash at the origin", prims[0])
	}
	last := prims[len(prims)-1]
	if last.Kind != geometry.KindCircle || !closeEnough(last.Center.X, 5, 1e-9) {
		t.Errorf("last primitive = %+v, want a circle flash at (5,0)", last)
	}

	b := geometry.BoundsOf(prims)
	want := geometry.Box{MinX: -0.1, MaxX: 5.1, MinY: -0.1, MaxY: 0.1}
	if !closeEnough(b.MinX, want.MinX, 1e-9) || !closeEnough(b.MaxX, want.MaxX, 1e-9) ||
		!closeEnough(b.MinY, want.MinY, 1e-9) || !closeEnough(b.MaxY, want.MaxY, 1e-9) {
		t.Errorf("bounds = %+v, want %+v", b, want)
	}
}

// Scenario 3: a polarity flip mid-file must split the output into
// alternating positive/negative sublayers keyed by the *old* polarity.
func TestEndToEndPolarityFlipSplitsSublayers(t *testing.T) {
	const src = `%FSLAX24Y24*%%MOMM*%%ADD10C,1*%D10*` +
		`X0Y0D03*` +
		`%LPC*%X200000Y0D03*` +
		`%LPD*%X400000Y0D03*M02*`
	res := parse(t, src)

	if len(res.Sublayers) != 3 {
		t.Fatalf("got %d sublayers, want 3", len(res.Sublayers))
	}
	for i, want := range []float64{0, 20, 40} {
		prims := res.Sublayers[i]
		if len(prims) != 1 {
			t.Fatalf("sublayer %d has %d primitives, want 1", i, len(prims))
		}
		if !closeEnough(prims[0].Center.X, want, 1e-9) {
			t.Errorf("sublayer %d center.X = %v, want %v", i, prims[0].Center.X, want)
		}
	}
}

// Scenario 4: step-and-repeat replicates a single flash across a grid,
// and a bare "%SR*%" resets back to the (1,1,0,0) identity grid.
func TestEndToEndStepAndRepeatGrid(t *testing.T) {
	const src = `%FSLAX24Y24*%%MOMM*%%ADD10C,1*%%SRX2Y2I5J5*%D10*X0Y0D03*%SR*%M02*`
	res := parse(t, src)

	if len(res.Sublayers) != 1 {
		t.Fatalf("got %d sublayers, want 1", len(res.Sublayers))
	}
	prims := res.Sublayers[0]
	if len(prims) != 4 {
		t.Fatalf("got %d primitives, want 4 (a 2x2 grid)", len(prims))
	}
	seen := map[[2]float64]bool{}
	for _, p := range prims {
		seen[[2]float64{p.Center.X, p.Center.Y}] = true
	}
	for _, want := range [][2]float64{{0, 0}, {5, 0}, {0, 5}, {5, 5}} {
		if !seen[want] {
			t.Errorf("missing flash at %v", want)
		}
	}
}

// Scenario 5: a region with a hole triangulates to a simple polygon of
// outer_len + hole_len + 2 vertices, which ear-clips to exactly that
// many minus 2 triangles, and preserves the outer-minus-hole area.
func TestEndToEndRegionWithHole(t *testing.T) {
	const src = `%FSLAX24Y24*%%MOMM*%` +
		`G36*` +
		`X0Y0D02*X1000000Y0D01*X1000000Y1000000D01*X0Y1000000D01*X0Y0D01*` +
		`X300000Y700000D02*X700000Y700000D01*X700000Y300000D01*X300000Y300000D01*X300000Y700000D01*` +
		`G37*M02*`
	res := parse(t, src)

	if len(res.Sublayers) != 1 {
		t.Fatalf("got %d sublayers, want 1", len(res.Sublayers))
	}
	prims := res.Sublayers[0]
	if len(prims) != 8 {
		t.Fatalf("got %d triangles, want 8", len(prims))
	}
	for _, p := range prims {
		if p.Kind != geometry.KindTriangle {
			t.Fatalf("primitive kind = %v, want Triangle", p.Kind)
		}
		if p.Exposure != 1 {
			t.Errorf("region triangle exposure = %d, want 1 (regions are always positive)", p.Exposure)
		}
	}

	var area float64
	for _, p := range prims {
		area += triangleArea(p)
	}
	const wantArea = 100*100 - 40*40 // 100mm outer square minus a 40mm hole
	if !closeEnough(area, wantArea, 1e-6) {
		t.Errorf("triangulated area = %v, want %v", area, wantArea)
	}
}

func triangleArea(p geometry.Primitive) float64 {
	a, b, c := p.V0, p.V1, p.V2
	return math.Abs((b.X-a.X)*(c.Y-a.Y)-(c.X-a.X)*(b.Y-a.Y)) / 2
}

// Scenario 6: a macro aperture evaluates its parametric expressions at
// instantiation time and places the result relative to the flash point.
func TestEndToEndMacroApertureWithExpressions(t *testing.T) {
	const src = `%FSLAX24Y24*%%MOMM*%` +
		`%AMMYCIRC*1,1,$1,$2,$3*%` +
		`%ADD11MYCIRC,0.6X0.1X0.2*%` +
		`D11*X0Y0D03*M02*`
	res := parse(t, src)

	if len(res.Sublayers) != 1 {
		t.Fatalf("got %d sublayers, want 1", len(res.Sublayers))
	}
	prims := res.Sublayers[0]
	if len(prims) != 1 {
		t.Fatalf("got %d primitives, want 1", len(prims))
	}
	p := prims[0]
	if p.Kind != geometry.KindCircle {
		t.Fatalf("kind = %v, want Circle", p.Kind)
	}
	if !closeEnough(p.Center.X, 0.1, 1e-9) || !closeEnough(p.Center.Y, 0.2, 1e-9) {
		t.Errorf("center = %+v, want (0.1, 0.2)", p.Center)
	}
	if !closeEnough(p.Radius, 0.3, 1e-9) {
		t.Errorf("radius = %v, want 0.3", p.Radius)
	}
}

// A degenerate (zero-length) linear stroke emits no rectangle, only the
// two end flashes, per §8's boundary-behavior rule.
func TestDegenerateLineEmitsOnlyFlashes(t *testing.T) {
	const src = `%FSLAX24Y24*%%MOMM*%%ADD10C,0.3*%D10*X0Y0D02*X0Y0D01*M02*`
	res := parse(t, src)

	prims := flatten(res.Sublayers)
	if len(prims) != 2 {
		t.Fatalf("got %d primitives, want 2 (no rectangle for a zero-length stroke)", len(prims))
	}
	for _, p := range prims {
		if p.Kind != geometry.KindCircle {
			t.Errorf("primitive kind = %v, want Circle", p.Kind)
		}
	}
}

// An aperture block reserves its code, buffers its body, and replays it
// against an origin-centered local position when flashed later.
func TestEndToEndApertureBlockFlash(t *testing.T) {
	const src = `%FSLAX24Y24*%%MOMM*%` +
		`%ADD10C,0.4*%` +
		`%ABD20*%D10*X0Y0D03*X50000Y0D03*%AB*%` +
		`D20*X100000Y100000D03*M02*`
	res := parse(t, src)

	prims := flatten(res.Sublayers)
	if len(prims) != 2 {
		t.Fatalf("got %d primitives, want 2 (the block's two flashes)", len(prims))
	}
	b := geometry.BoundsOf(prims)
	// The block's two circles sit at local (0,0) and (5,0); flashed at
	// (10,10) they should appear translated by that offset.
	if !closeEnough(b.MinX, 9.8, 1e-6) || !closeEnough(b.MaxX, 15.2, 1e-6) {
		t.Errorf("bounds = %+v, want an X span of [9.8, 15.2]", b)
	}
}

// MM and inch units round-trip to the same millimeter geometry for
// equivalent raw coordinates, per §8.
func TestUnitRoundTripMMAndInchAgree(t *testing.T) {
	mm := parse(t, `%FSLAX24Y24*%%MOMM*%%ADD10C,1*%D10*X100000Y0D03*M02*`)
	in := parse(t, `%FSLAX24Y24*%%MOIN*%%ADD10C,1*%D10*X3937Y0D03*M02*`)

	mmX := flatten(mm.Sublayers)[0].Center.X
	inX := flatten(in.Sublayers)[0].Center.X
	if !closeEnough(mmX, inX, 1e-3) {
		t.Errorf("mm flash at x=%v, inch flash at x=%v, want them within tolerance", mmX, inX)
	}
}
