package boolops

import "github.com/gerberforge/engine/internal/geometry"

// ToShape approximates a primitive as a polygon-with-holes for the
// boolean-operations pipeline, per §4.7's "polygon approximations"
// table. Triangle and Circle are the only kinds a macro can mark
// negative, but Arc and Thermal are handled too for completeness.
func ToShape(p geometry.Primitive) geometry.Shape {
	switch p.Kind {
	case geometry.KindTriangle:
		outer := geometry.Contour{p.V0, p.V1, p.V2}
		if p.TriHole.HasHole() {
			return geometry.Shape{Contours: []geometry.Contour{
				outer, geometry.ReversedCirclePolygon(p.TriHole.Center, p.TriHole.Radius),
			}}
		}
		return geometry.Shape{Contours: []geometry.Contour{outer}}
	case geometry.KindCircle:
		outer := geometry.CirclePolygon(p.Center, p.Radius)
		if p.CHole.HasHole() {
			return geometry.Shape{Contours: []geometry.Contour{
				outer, geometry.ReversedCirclePolygon(p.CHole.Center, p.CHole.Radius),
			}}
		}
		return geometry.Shape{Contours: []geometry.Contour{outer}}
	case geometry.KindArc:
		// A stroked arc's polygon approximation is its swept annulus
		// boundary, here taken as the outer edge only — arcs never
		// carry holes and are not emitted with exposure 0 in practice.
		outer := geometry.ArcPolygon(p.Center, p.Radius+p.Thickness/2, p.StartAngle, p.EndAngle-p.StartAngle)
		return geometry.Shape{Contours: []geometry.Contour{outer}}
	case geometry.KindThermal:
		return geometry.ThermalShape(p.Center, p.OuterDiameter, p.InnerDiameter, p.GapThickness, p.Rotation)
	default:
		return geometry.Shape{}
	}
}
