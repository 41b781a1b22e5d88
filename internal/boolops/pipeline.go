// Package boolops implements the boolean-operation and triangulation
// pipeline that turns a sequence of (shape, exposure) polygon
// contributions into a flat Triangle primitive list, per §4.7. Union and
// difference are delegated to github.com/akavel/polyclip-go; no suitable
// constrained-triangulation-with-holes library was found in the
// ecosystem survey, so triangulation is a stdlib ear-clipper behind
// geometry.Triangulator (see DESIGN.md for the justification).
package boolops

import (
	"github.com/akavel/polyclip-go"

	"github.com/gerberforge/engine/internal/geometry"
)

// Contribution is one (shape, exposure) pair in the pipeline's input
// sequence, per §4.7.
type Contribution struct {
	Shape    geometry.Shape
	Exposure int
}

// Accumulate finds the first positive shape as the accumulator, then
// unions in every later positive shape and differences out every
// negative one, using the non-zero fill rule. It reports ok=false if no
// positive shape exists or the accumulator becomes empty along the way.
func Accumulate(contributions []Contribution) (result geometry.Shape, ok bool) {
	var acc polyclip.Polygon
	started := false
	for _, c := range contributions {
		poly := toPolyclip(c.Shape)
		if !started {
			if c.Exposure == 0 {
				continue // skip leading negative shapes: nothing to subtract from yet
			}
			acc = poly
			started = true
			continue
		}
		if c.Exposure != 0 {
			acc = acc.Construct(polyclip.UNION, poly)
		} else {
			acc = acc.Construct(polyclip.DIFFERENCE, poly)
		}
		if len(acc) == 0 {
			return geometry.Shape{}, false
		}
	}
	if !started || len(acc) == 0 {
		return geometry.Shape{}, false
	}
	return fromPolyclip(acc), true
}

func toPolyclip(shape geometry.Shape) polyclip.Polygon {
	poly := make(polyclip.Polygon, 0, len(shape.Contours))
	for _, c := range shape.Contours {
		pc := make(polyclip.Contour, 0, len(c))
		for _, p := range c {
			pc = append(pc, polyclip.Point{X: p.X, Y: p.Y})
		}
		poly = append(poly, pc)
	}
	return poly
}

func fromPolyclip(poly polyclip.Polygon) geometry.Shape {
	shape := geometry.Shape{Contours: make([]geometry.Contour, 0, len(poly))}
	for _, pc := range poly {
		c := make(geometry.Contour, 0, len(pc))
		for _, p := range pc {
			c = append(c, geometry.Point{X: p.X, Y: p.Y})
		}
		shape.Contours = append(shape.Contours, c)
	}
	return shape
}
