// Package sbuf transposes primitive lists into struct-of-arrays buffers
// ready for GPU upload, per §4.9. Coordinates enter as float64 and leave
// as float32 — the double-to-single conversion happens here, per §9's
// numerical-precision note.
package sbuf

import "github.com/gerberforge/engine/internal/geometry"

// Triangles is the SoA buffer for triangle primitives: an interleaved
// vertex array, a sequential index array (no de-duplication — that is
// the triangulator's responsibility upstream), and a per-vertex hole
// center/radius so the fragment shader can discard inside the hole disk.
type Triangles struct {
	Vertices    []float32 // x0,y0, x1,y1, x2,y2, ...
	Indices     []uint32
	HoleCenters []float32 // per vertex: hx,hy
	HoleRadii   []float32 // per vertex
	Exposure    []float32 // per vertex, 0 or 1
}

// Count returns the number of triangles in t.
func (t Triangles) Count() int { return len(t.Indices) / 3 }

// Circles is the SoA buffer for circle primitives, one entry per
// instanced draw.
type Circles struct {
	Centers     []float32 // per instance: cx,cy
	Radii       []float32
	HoleCenters []float32
	HoleRadii   []float32
	Exposure    []float32
}

func (c Circles) Count() int { return len(c.Radii) }

// Arcs is the SoA buffer for arc-stroke primitives.
type Arcs struct {
	Centers     []float32
	Radii       []float32
	StartAngles []float32
	SweepAngles []float32
	Thicknesses []float32
	Exposure    []float32
}

func (a Arcs) Count() int { return len(a.Radii) }

// Thermals is the SoA buffer for thermal-relief primitives.
type Thermals struct {
	Centers        []float32
	OuterDiameters []float32
	InnerDiameters []float32
	GapThickness   []float32
	Rotations      []float32
}

func (th Thermals) Count() int { return len(th.OuterDiameters) }

// Sublayer holds the four SoA buffers for one polarity-homogeneous
// primitive list, plus the combined bounding box over all of it. An
// empty sublayer's Bounds defaults to the zero Box per §4.9.
type Sublayer struct {
	Triangles Triangles
	Circles   Circles
	Arcs      Arcs
	Thermals  Thermals
	Bounds    geometry.Box
}

// Transpose converts a flat primitive list into a Sublayer, dispatching
// each primitive into its kind's SoA buffer.
func Transpose(prims []geometry.Primitive) Sublayer {
	s := Sublayer{Bounds: geometry.BoundsOf(prims)}
	for _, p := range prims {
		switch p.Kind {
		case geometry.KindTriangle:
			appendTriangle(&s.Triangles, p)
		case geometry.KindCircle:
			appendCircle(&s.Circles, p)
		case geometry.KindArc:
			appendArc(&s.Arcs, p)
		case geometry.KindThermal:
			appendThermal(&s.Thermals, p)
		}
	}
	return s
}

func f32(v float64) float32 { return float32(v) }

func appendTriangle(t *Triangles, p geometry.Primitive) {
	base := uint32(len(t.Indices))
	verts := [3]geometry.Point{p.V0, p.V1, p.V2}
	exposure := f32(float64(p.Exposure))
	hcx, hcy, hr := f32(p.TriHole.Center.X), f32(p.TriHole.Center.Y), f32(p.TriHole.Radius)
	for i, v := range verts {
		t.Vertices = append(t.Vertices, f32(v.X), f32(v.Y))
		t.Indices = append(t.Indices, base+uint32(i))
		t.HoleCenters = append(t.HoleCenters, hcx, hcy)
		t.HoleRadii = append(t.HoleRadii, hr)
		t.Exposure = append(t.Exposure, exposure)
	}
}

func appendCircle(c *Circles, p geometry.Primitive) {
	c.Centers = append(c.Centers, f32(p.Center.X), f32(p.Center.Y))
	c.Radii = append(c.Radii, f32(p.Radius))
	c.HoleCenters = append(c.HoleCenters, f32(p.CHole.Center.X), f32(p.CHole.Center.Y))
	c.HoleRadii = append(c.HoleRadii, f32(p.CHole.Radius))
	c.Exposure = append(c.Exposure, f32(float64(p.Exposure)))
}

func appendArc(a *Arcs, p geometry.Primitive) {
	a.Centers = append(a.Centers, f32(p.Center.X), f32(p.Center.Y))
	a.Radii = append(a.Radii, f32(p.Radius))
	a.StartAngles = append(a.StartAngles, f32(p.StartAngle))
	a.SweepAngles = append(a.SweepAngles, f32(p.EndAngle-p.StartAngle))
	a.Thicknesses = append(a.Thicknesses, f32(p.Thickness))
	a.Exposure = append(a.Exposure, f32(float64(p.Exposure)))
}

func appendThermal(th *Thermals, p geometry.Primitive) {
	th.Centers = append(th.Centers, f32(p.Center.X), f32(p.Center.Y))
	th.OuterDiameters = append(th.OuterDiameters, f32(p.OuterDiameter))
	th.InnerDiameters = append(th.InnerDiameters, f32(p.InnerDiameter))
	th.GapThickness = append(th.GapThickness, f32(p.GapThickness))
	th.Rotations = append(th.Rotations, f32(p.Rotation))
}
