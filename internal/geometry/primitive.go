// Package geometry defines the closed set of vectorized output shapes
// produced by the Gerber/ODB++ executors — Triangle, Circle, Arc, and
// Thermal — plus the affine operations (rotate, offset, scale) and
// polygon-approximation helpers shared by every producer.
//
// All coordinates are millimeters, all angles radians, after the source
// format/unit conversion has already been applied by the caller.
package geometry

import "math"

// Kind discriminates the Primitive tagged union.
type Kind int

const (
	KindTriangle Kind = iota
	KindCircle
	KindArc
	KindThermal
)

// Point is a 2-D coordinate in millimeters.
type Point struct {
	X, Y float64
}

// Hole describes an optional circular cutout carried on Triangle and
// Circle primitives (aperture hole-diameter parameter).
type Hole struct {
	Center Point
	Radius float64
}

// HasHole reports whether h represents an actual hole (radius > 0).
func (h Hole) HasHole() bool {
	return h.Radius > 0
}

// Primitive is the tagged variant over the four output shapes. Only the
// fields relevant to Kind are meaningful; Primitive is intentionally a
// flat struct (not an interface) so SoA transposition in package sbuf
// can read fields directly without type switches at every vertex.
type Primitive struct {
	Kind Kind

	// Triangle
	V0, V1, V2 Point
	TriHole    Hole

	// Circle
	Center Point
	Radius float64
	CHole  Hole

	// Arc
	StartAngle, EndAngle float64 // radians
	Thickness            float64

	// Thermal
	OuterDiameter float64
	InnerDiameter float64
	GapThickness  float64
	Rotation      float64 // radians

	// Exposure: 1 = positive (adds), 0 = negative (subtracts/clears).
	Exposure int
}

// Triangle constructs a positive or negative triangle primitive.
func Triangle(v0, v1, v2 Point, exposure int, hole Hole) Primitive {
	return Primitive{Kind: KindTriangle, V0: v0, V1: v1, V2: v2, TriHole: hole, Exposure: exposure}
}

// Circle constructs a circle primitive.
func Circle(center Point, radius float64, exposure int, hole Hole) Primitive {
	return Primitive{Kind: KindCircle, Center: center, Radius: radius, CHole: hole, Exposure: exposure}
}

// Arc constructs an arc-stroke primitive. Angles are radians.
func Arc(center Point, radius, startAngle, endAngle, thickness float64, exposure int) Primitive {
	return Primitive{
		Kind: KindArc, Center: center, Radius: radius,
		StartAngle: startAngle, EndAngle: endAngle, Thickness: thickness, Exposure: exposure,
	}
}

// Thermal constructs a thermal-relief primitive. Exposure is always 1
// per §3 of the spec — thermals are never used as holes.
func Thermal(center Point, outerDiameter, innerDiameter, gapThickness, rotation float64) Primitive {
	return Primitive{
		Kind: KindThermal, Center: center,
		OuterDiameter: outerDiameter, InnerDiameter: innerDiameter,
		GapThickness: gapThickness, Rotation: rotation, Exposure: 1,
	}
}

// IsNegative reports whether p subtracts from accumulated geometry.
func (p Primitive) IsNegative() bool {
	return p.Exposure == 0
}

// Rotate returns p rotated by theta radians around pivot.
func (p Primitive) Rotate(pivot Point, theta float64) Primitive {
	sin, cos := math.Sincos(theta)
	rot := func(pt Point) Point {
		dx, dy := pt.X-pivot.X, pt.Y-pivot.Y
		return Point{
			X: pivot.X + dx*cos - dy*sin,
			Y: pivot.Y + dx*sin + dy*cos,
		}
	}
	out := p
	switch p.Kind {
	case KindTriangle:
		out.V0, out.V1, out.V2 = rot(p.V0), rot(p.V1), rot(p.V2)
		if out.TriHole.HasHole() {
			out.TriHole.Center = rot(p.TriHole.Center)
		}
	case KindCircle:
		out.Center = rot(p.Center)
		if out.CHole.HasHole() {
			out.CHole.Center = rot(p.CHole.Center)
		}
	case KindArc:
		out.Center = rot(p.Center)
		out.StartAngle += theta
		out.EndAngle += theta
	case KindThermal:
		out.Center = rot(p.Center)
		out.Rotation += theta
	}
	return out
}

// Offset returns p translated by (dx, dy).
func (p Primitive) Offset(dx, dy float64) Primitive {
	move := func(pt Point) Point { return Point{X: pt.X + dx, Y: pt.Y + dy} }
	out := p
	switch p.Kind {
	case KindTriangle:
		out.V0, out.V1, out.V2 = move(p.V0), move(p.V1), move(p.V2)
		if out.TriHole.HasHole() {
			out.TriHole.Center = move(p.TriHole.Center)
		}
	case KindCircle:
		out.Center = move(p.Center)
		if out.CHole.HasHole() {
			out.CHole.Center = move(p.CHole.Center)
		}
	case KindArc, KindThermal:
		out.Center = move(p.Center)
	}
	return out
}

// Scale returns p scaled uniformly around the origin by factor s.
func (p Primitive) Scale(s float64) Primitive {
	mul := func(pt Point) Point { return Point{X: pt.X * s, Y: pt.Y * s} }
	out := p
	switch p.Kind {
	case KindTriangle:
		out.V0, out.V1, out.V2 = mul(p.V0), mul(p.V1), mul(p.V2)
		out.TriHole.Center = mul(p.TriHole.Center)
		out.TriHole.Radius = p.TriHole.Radius * s
	case KindCircle:
		out.Center = mul(p.Center)
		out.Radius = p.Radius * s
		out.CHole.Center = mul(p.CHole.Center)
		out.CHole.Radius = p.CHole.Radius * s
	case KindArc:
		out.Center = mul(p.Center)
		out.Radius = p.Radius * s
		out.Thickness = p.Thickness * s
	case KindThermal:
		out.Center = mul(p.Center)
		out.OuterDiameter = p.OuterDiameter * s
		out.InnerDiameter = p.InnerDiameter * s
		out.GapThickness = p.GapThickness * s
	}
	return out
}

// Bounds returns the axis-aligned bounding box of p, per §8's definition:
// triangle vertices; center ± radius for circles; center ± (radius +
// thickness/2) for arcs; center ± outer_diameter/2 for thermals.
func (p Primitive) Bounds() Box {
	switch p.Kind {
	case KindTriangle:
		b := EmptyBox()
		b.Include(p.V0)
		b.Include(p.V1)
		b.Include(p.V2)
		return b
	case KindCircle:
		return Box{
			MinX: p.Center.X - p.Radius, MaxX: p.Center.X + p.Radius,
			MinY: p.Center.Y - p.Radius, MaxY: p.Center.Y + p.Radius,
		}
	case KindArc:
		r := p.Radius + p.Thickness/2
		return Box{
			MinX: p.Center.X - r, MaxX: p.Center.X + r,
			MinY: p.Center.Y - r, MaxY: p.Center.Y + r,
		}
	case KindThermal:
		r := p.OuterDiameter / 2
		return Box{
			MinX: p.Center.X - r, MaxX: p.Center.X + r,
			MinY: p.Center.Y - r, MaxY: p.Center.Y + r,
		}
	default:
		return EmptyBox()
	}
}
