package gerber

import (
	"math"

	"github.com/gerberforge/engine/internal/aperture"
	"github.com/gerberforge/engine/internal/boolops"
	"github.com/gerberforge/engine/internal/geometry"
)

// flash emits ap at logical position pos, replicated across the current
// step-and-repeat grid, per §4.6's "Flash" rule. Primitives with a
// negative-exposure aperture go through the boolean-operations pipeline;
// otherwise they are cloned and translated directly.
func (p *Parser) flash(ap aperture.Aperture, pos geometry.Point) {
	sr := p.state.StepRepeat
	for sy := 0; sy < sr.Y; sy++ {
		for sx := 0; sx < sr.X; sx++ {
			offset := geometry.Point{X: float64(sx) * sr.I, Y: float64(sy) * sr.J}
			at := geometry.Point{X: pos.X + offset.X, Y: pos.Y + offset.Y}
			if ap.HasNegative {
				p.flashViaBooleanOps(ap, at)
			} else {
				p.flashByCloning(ap, at)
			}
		}
	}
}

func (p *Parser) flashByCloning(ap aperture.Aperture, at geometry.Point) {
	scale := p.state.LayerScale
	for _, prim := range ap.Primitives {
		placed := prim.Scale(scale).Offset(at.X, at.Y)
		p.splitter.Append(placed)
	}
}

func (p *Parser) flashViaBooleanOps(ap aperture.Aperture, at geometry.Point) {
	scale := p.state.LayerScale
	contribs := make([]boolops.Contribution, 0, len(ap.Primitives))
	for _, prim := range ap.Primitives {
		placed := prim.Scale(scale).Offset(at.X, at.Y)
		contribs = append(contribs, boolops.Contribution{
			Shape:    boolops.ToShape(placed),
			Exposure: placed.Exposure,
		})
	}
	shape, ok := boolops.Accumulate(contribs)
	if !ok {
		return // accumulator emptied: this flash contributes nothing
	}
	prims, err := p.tri.Triangulate(shape)
	if err != nil {
		p.errs = append(p.errs, err)
		return
	}
	p.splitter.Append(prims...)
}

// strokeLinear emits the aperture-width rectangle between from and to
// plus a flash at each end, per §4.6's "Linear interpolation" rule. A
// degenerate (zero-length) stroke emits no rectangle but still flashes
// both ends, per §8.
func (p *Parser) strokeLinear(ap aperture.Aperture, from, to geometry.Point) {
	p.flash(ap, from)
	width := 2 * ap.BoundingRadius * p.state.LayerScale
	if from != to {
		a, b := rectangleAround(from, to, width)
		p.splitter.Append(a, b)
	}
	p.flash(ap, to)
}

// rectangleAround builds the two triangles of a width-wide rectangle
// running from p1 to p2.
func rectangleAround(p1, p2 geometry.Point, width float64) (geometry.Primitive, geometry.Primitive) {
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	length := hypot(dx, dy)
	nx, ny := -dy/length*width/2, dx/length*width/2
	a := geometry.Point{X: p1.X + nx, Y: p1.Y + ny}
	b := geometry.Point{X: p1.X - nx, Y: p1.Y - ny}
	c := geometry.Point{X: p2.X - nx, Y: p2.Y - ny}
	d := geometry.Point{X: p2.X + nx, Y: p2.Y + ny}
	return geometry.Triangle(a, b, c, 1, geometry.Hole{}), geometry.Triangle(c, d, a, 1, geometry.Hole{})
}

func hypot(dx, dy float64) float64 {
	return math.Hypot(dx, dy)
}

// strokeArc emits a flash at each end plus an Arc primitive spanning the
// computed center, radius, and angles, per §4.6's "Arc interpolation"
// rule.
func (p *Parser) strokeArc(ap aperture.Aperture, from, to geometry.Point) {
	p.flash(ap, from)

	clockwise := p.state.Interpolation == InterpClockwiseArc
	center, startAngle, sweep := resolveArcCenter(from, to, p.state.I, p.state.J, p.state.Quadrant, clockwise)
	radius := hypot(from.X-center.X, from.Y-center.Y)
	thickness := 2 * ap.BoundingRadius * p.state.LayerScale
	p.splitter.Append(geometry.Arc(center, radius, startAngle, startAngle+sweep, thickness, 1))

	p.flash(ap, to)
}
