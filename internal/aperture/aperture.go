// Package aperture holds named, reusable shapes — apertures — built from
// the four primitive kinds in package geometry, plus the table that maps
// Gerber aperture codes (D10, D11, …) to them.
package aperture

import (
	"math"

	"github.com/gerberforge/engine/internal/geometry"
)

// Aperture is a stroke/flash shape expressed in local, origin-centered
// coordinates, per §3.
type Aperture struct {
	BoundingRadius float64
	Primitives     []geometry.Primitive
	HasNegative    bool
}

// New computes BoundingRadius and HasNegative from prims and wraps them
// into an Aperture. Used both for the C/R/O/P builtin shapes and for
// macro-instantiated and block apertures, so the farthest-point and
// negative-exposure scans live in one place.
func New(prims []geometry.Primitive) Aperture {
	a := Aperture{Primitives: prims}
	for _, p := range prims {
		if p.IsNegative() {
			a.HasNegative = true
		}
		if r := farthestPoint(p); r > a.BoundingRadius {
			a.BoundingRadius = r
		}
	}
	return a
}

// farthestPoint returns the greatest distance from the origin reached by
// any point of p, used to size an aperture's or block's bounding radius
// per §4.3/§4.4.
func farthestPoint(p geometry.Primitive) float64 {
	switch p.Kind {
	case geometry.KindTriangle:
		return math.Max(hypot(p.V0), math.Max(hypot(p.V1), hypot(p.V2)))
	case geometry.KindCircle:
		return hypot(p.Center) + p.Radius
	case geometry.KindArc:
		return hypot(p.Center) + p.Radius + p.Thickness/2
	case geometry.KindThermal:
		return hypot(p.Center) + p.OuterDiameter/2
	default:
		return 0
	}
}

func hypot(pt geometry.Point) float64 { return math.Hypot(pt.X, pt.Y) }
