package geometry

import "math"

// Contour is an ordered, closed sequence of points: the first contour of
// a Shape is the outer boundary (CCW), later contours are holes (CW).
type Contour []Point

// Shape is a polygon with holes, ready for the boolean-operations
// pipeline or for triangulation.
type Shape struct {
	Contours []Contour
}

const degToRad = math.Pi / 180

// CirclePolygon approximates a circle as a 36-gon (10-degree steps), per
// §4.7. Winding is CCW.
func CirclePolygon(center Point, radius float64) Contour {
	const steps = 36
	c := make(Contour, 0, steps)
	for i := 0; i < steps; i++ {
		theta := float64(i) * 10 * degToRad
		sin, cos := math.Sincos(theta)
		c = append(c, Point{X: center.X + radius*cos, Y: center.Y + radius*sin})
	}
	return c
}

// ReversedCirclePolygon is CirclePolygon wound CW, used for the thermal
// inner-hole contour per §4.7.
func ReversedCirclePolygon(center Point, radius float64) Contour {
	c := CirclePolygon(center, radius)
	return reverse(c)
}

func reverse(c Contour) Contour {
	out := make(Contour, len(c))
	for i, p := range c {
		out[len(c)-1-i] = p
	}
	return out
}

// ArcPolygon approximates an arc sweep as ceil(sweep/10deg) line
// segments, per §4.7. sweep and the angles are in radians.
func ArcPolygon(center Point, radius, startAngle, sweep float64) Contour {
	sweepDeg := math.Abs(sweep) / degToRad
	steps := int(math.Ceil(sweepDeg / 10))
	if steps < 1 {
		steps = 1
	}
	c := make(Contour, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := startAngle + sweep*float64(i)/float64(steps)
		sin, cos := math.Sincos(t)
		c = append(c, Point{X: center.X + radius*cos, Y: center.Y + radius*sin})
	}
	return c
}

// ThermalShape builds the polygon-with-holes approximation of a thermal
// primitive for the boolean-ops pipeline per §4.7: the outer circle as a
// 36-gon, the inner circle as a reversed 36-gon hole, and two orthogonal
// gap rectangles as holes, everything rotated by the thermal's rotation.
func ThermalShape(center Point, outerDiameter, innerDiameter, gapThickness, rotation float64) Shape {
	outerR := outerDiameter / 2
	innerR := innerDiameter / 2

	outer := CirclePolygon(center, outerR)
	innerHole := ReversedCirclePolygon(center, innerR)

	gapLen := outerR * 2
	gapA := gapRectangle(center, gapLen, gapThickness, rotation)
	gapB := gapRectangle(center, gapLen, gapThickness, rotation+math.Pi/2)

	return Shape{Contours: []Contour{outer, innerHole, reverse(gapA), reverse(gapB)}}
}

// gapRectangle builds a CCW rectangle of length x thickness centered on
// center, rotated by theta — one arm of the thermal's insulating cross.
func gapRectangle(center Point, length, thickness, theta float64) Contour {
	hl, ht := length/2, thickness/2
	corners := []Point{
		{X: -hl, Y: -ht}, {X: hl, Y: -ht}, {X: hl, Y: ht}, {X: -hl, Y: ht},
	}
	sin, cos := math.Sincos(theta)
	out := make(Contour, len(corners))
	for i, p := range corners {
		out[i] = Point{
			X: center.X + p.X*cos - p.Y*sin,
			Y: center.Y + p.X*sin + p.Y*cos,
		}
	}
	return out
}
