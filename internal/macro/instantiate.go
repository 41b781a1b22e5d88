package macro

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gerberforge/engine/internal/expr"
	"github.com/gerberforge/engine/internal/geometry"
)

// Instantiate executes m's statements against the given positional
// parameters (p1..pn map to $1..$n) and returns the emitted primitives.
// A per-statement evaluation failure is a soft error: that one primitive
// is skipped and instantiation continues, matching §7's "division by
// zero in a macro expression cancels that primitive but not surrounding
// ones". tri triangulates CodeOutline bodies (§4.2); it may be nil if no
// statement in m uses code 4.
func Instantiate(m *Macro, params []float64, tri geometry.Triangulator) ([]geometry.Primitive, []error) {
	vars := make(expr.Vars, len(params)+len(m.Statements))
	for i, p := range params {
		vars["$"+strconv.Itoa(i+1)] = p
	}

	var out []geometry.Primitive
	var errs []error

	eval := func(e string) (float64, error) { return expr.Eval(e, vars) }

	for _, st := range m.Statements {
		switch st.Kind {
		case StatementAssign:
			v, err := eval(st.Expr)
			if err != nil {
				errs = append(errs, fmt.Errorf("macro %s: assign %s: %w", m.Name, st.VarName, err))
				continue
			}
			vars[st.VarName] = v
		case StatementPrimitive:
			prims, err := instantiatePrimitive(st, eval, tri)
			if err != nil {
				errs = append(errs, fmt.Errorf("macro %s: code %d: %w", m.Name, st.Code, err))
				continue
			}
			out = append(out, prims...)
		}
	}
	return out, errs
}

type evalFunc func(string) (float64, error)

func instantiatePrimitive(st Statement, eval evalFunc, tri geometry.Triangulator) ([]geometry.Primitive, error) {
	if st.Code == CodeComment {
		return nil, nil // comment body is free text, never evaluated
	}

	args, err := evalArgs(st.Args, eval)
	if err != nil {
		return nil, err
	}

	switch st.Code {
	case CodeCircle:
		return instantiateCircle(args)
	case CodeOutline:
		return instantiateOutline(st.Args, eval, tri)
	case CodeRegularPoly:
		return instantiateRegularPolygon(args)
	case CodeThermal:
		return instantiateThermal(args)
	case CodeVectorLine:
		return instantiateVectorLine(args)
	case CodeCenterLineBox:
		return instantiateCenterLineBox(args)
	default:
		return nil, nil // unknown macro primitive code: soft-skip
	}
}

func evalArgs(raw []string, eval evalFunc) ([]float64, error) {
	out := make([]float64, len(raw))
	for i, a := range raw {
		v, err := eval(a)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func exposureOf(v float64) int {
	if v == 0 {
		return 0
	}
	return 1
}

func instantiateCircle(args []float64) ([]geometry.Primitive, error) {
	if len(args) < 4 {
		return nil, fmt.Errorf("circle primitive needs >= 4 args, got %d", len(args))
	}
	exposure := exposureOf(args[0])
	diameter, cx, cy := args[1], args[2], args[3]
	p := geometry.Circle(geometry.Point{X: cx, Y: cy}, diameter/2, exposure, geometry.Hole{})
	if len(args) > 4 {
		p = p.Rotate(geometry.Point{}, args[4]*degToRad)
	}
	return []geometry.Primitive{p}, nil
}

func instantiateOutline(rawArgs []string, eval evalFunc, tri geometry.Triangulator) ([]geometry.Primitive, error) {
	if len(rawArgs) < 2 {
		return nil, fmt.Errorf("outline primitive needs >= 2 args, got %d", len(rawArgs))
	}
	exposureVal, err := eval(rawArgs[0])
	if err != nil {
		return nil, err
	}
	vertexCount, err := eval(rawArgs[1])
	if err != nil {
		return nil, err
	}
	n := int(vertexCount)
	needed := 2 + n*2
	if len(rawArgs) < needed {
		return nil, fmt.Errorf("outline declares %d vertices but only %d args supplied", n, len(rawArgs)-2)
	}
	contour := make(geometry.Contour, n)
	for i := 0; i < n; i++ {
		x, err := eval(rawArgs[2+i*2])
		if err != nil {
			return nil, err
		}
		y, err := eval(rawArgs[2+i*2+1])
		if err != nil {
			return nil, err
		}
		contour[i] = geometry.Point{X: x, Y: y}
	}
	var rotation float64
	if len(rawArgs) > needed {
		rotation, err = eval(rawArgs[needed])
		if err != nil {
			return nil, err
		}
	}
	if rotation != 0 {
		contour = rotateContour(contour, rotation*degToRad)
	}
	if tri == nil {
		return nil, fmt.Errorf("outline primitive requires a triangulator")
	}
	prims, err := tri.Triangulate(geometry.Shape{Contours: []geometry.Contour{contour}})
	if err != nil {
		return nil, err
	}
	exposure := exposureOf(exposureVal)
	for i := range prims {
		prims[i].Exposure = exposure
	}
	return prims, nil
}

func instantiateRegularPolygon(args []float64) ([]geometry.Primitive, error) {
	if len(args) < 4 {
		return nil, fmt.Errorf("polygon primitive needs >= 4 args, got %d", len(args))
	}
	exposure := exposureOf(args[0])
	n := int(args[1])
	cx, cy, diameter := args[2], args[3], 0.0
	if len(args) > 4 {
		diameter = args[4]
	}
	var rotation float64
	if len(args) > 5 {
		rotation = args[5] * degToRad
	}
	center := geometry.Point{X: cx, Y: cy}
	radius := diameter / 2
	pts := make([]geometry.Point, n)
	for i := 0; i < n; i++ {
		theta := rotation + float64(i)*2*math.Pi/float64(n)
		sin, cos := math.Sincos(theta)
		pts[i] = geometry.Point{X: center.X + radius*cos, Y: center.Y + radius*sin}
	}
	out := make([]geometry.Primitive, 0, n)
	for i := 0; i < n; i++ {
		next := (i + 1) % n
		out = append(out, geometry.Triangle(center, pts[i], pts[next], exposure, geometry.Hole{}))
	}
	return out, nil
}

func instantiateThermal(args []float64) ([]geometry.Primitive, error) {
	if len(args) < 5 {
		return nil, fmt.Errorf("thermal primitive needs >= 5 args, got %d", len(args))
	}
	cx, cy, outerD, innerD, gap := args[0], args[1], args[2], args[3], args[4]
	var rotation float64
	if len(args) > 5 {
		rotation = args[5] * degToRad
	}
	return []geometry.Primitive{geometry.Thermal(geometry.Point{X: cx, Y: cy}, outerD, innerD, gap, rotation)}, nil
}

func instantiateVectorLine(args []float64) ([]geometry.Primitive, error) {
	if len(args) < 5 {
		return nil, fmt.Errorf("vector line primitive needs >= 5 args, got %d", len(args))
	}
	exposure := exposureOf(args[0])
	width, x1, y1, x2, y2 := args[1], args[2], args[3], args[4], 0.0
	if len(args) > 5 {
		y2 = args[5]
	}
	var rotation float64
	if len(args) > 6 {
		rotation = args[6] * degToRad
	}
	p1 := geometry.Point{X: x1, Y: y1}
	p2 := geometry.Point{X: x2, Y: y2}
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	length := math.Hypot(dx, dy)
	tris := boxBetween(p1, p2, width, exposure)
	if length == 0 {
		return nil, nil // degenerate line: emits nothing per spec's degenerate-line rule
	}
	if rotation != 0 {
		for i := range tris {
			tris[i] = tris[i].Rotate(geometry.Point{}, rotation)
		}
	}
	return tris, nil
}

func instantiateCenterLineBox(args []float64) ([]geometry.Primitive, error) {
	if len(args) < 5 {
		return nil, fmt.Errorf("center-line box primitive needs >= 5 args, got %d", len(args))
	}
	exposure := exposureOf(args[0])
	width, height, cx, cy := args[1], args[2], args[3], args[4]
	var rotation float64
	if len(args) > 5 {
		rotation = args[5] * degToRad
	}
	center := geometry.Point{X: cx, Y: cy}
	hw, hh := width/2, height/2
	corners := []geometry.Point{
		{X: center.X - hw, Y: center.Y - hh},
		{X: center.X + hw, Y: center.Y - hh},
		{X: center.X + hw, Y: center.Y + hh},
		{X: center.X - hw, Y: center.Y + hh},
	}
	tris := []geometry.Primitive{
		geometry.Triangle(corners[0], corners[1], corners[2], exposure, geometry.Hole{}),
		geometry.Triangle(corners[2], corners[3], corners[0], exposure, geometry.Hole{}),
	}
	if rotation != 0 {
		for i := range tris {
			tris[i] = tris[i].Rotate(center, rotation)
		}
	}
	return tris, nil
}

// boxBetween builds the two triangles of a width-wide rectangle running
// from p1 to p2, oriented along the segment. Package gerber's stroke
// executor builds the same shape with its own rectangleAround.
func boxBetween(p1, p2 geometry.Point, width float64, exposure int) []geometry.Primitive {
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return nil
	}
	nx, ny := -dy/length*width/2, dx/length*width/2
	a := geometry.Point{X: p1.X + nx, Y: p1.Y + ny}
	b := geometry.Point{X: p1.X - nx, Y: p1.Y - ny}
	c := geometry.Point{X: p2.X - nx, Y: p2.Y - ny}
	d := geometry.Point{X: p2.X + nx, Y: p2.Y + ny}
	return []geometry.Primitive{
		geometry.Triangle(a, b, c, exposure, geometry.Hole{}),
		geometry.Triangle(c, d, a, exposure, geometry.Hole{}),
	}
}

func rotateContour(c geometry.Contour, theta float64) geometry.Contour {
	sin, cos := math.Sincos(theta)
	out := make(geometry.Contour, len(c))
	for i, p := range c {
		out[i] = geometry.Point{X: p.X*cos - p.Y*sin, Y: p.X*sin + p.Y*cos}
	}
	return out
}

const degToRad = math.Pi / 180
