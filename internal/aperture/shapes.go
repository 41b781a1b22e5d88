package aperture

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gerberforge/engine/internal/geometry"
	"github.com/gerberforge/engine/internal/macro"
)

// Circle builds the primitive list for a %ADD…C aperture: diameter with
// an optional hole, per §4.3.
func Circle(diameter, holeDiameter float64) []geometry.Primitive {
	return []geometry.Primitive{
		geometry.Circle(geometry.Point{}, diameter/2, 1, holeOf(holeDiameter)),
	}
}

// Rectangle builds the primitive list for a %ADD…R aperture: rendered as
// two triangles per §4.3. The hole, if any, is carried on both
// triangles, since each triangle is drawn and clipped against its own
// hole only.
func Rectangle(width, height, holeDiameter float64) []geometry.Primitive {
	hw, hh := width/2, height/2
	hole := holeOf(holeDiameter)
	a := geometry.Point{X: -hw, Y: -hh}
	b := geometry.Point{X: hw, Y: -hh}
	c := geometry.Point{X: hw, Y: hh}
	d := geometry.Point{X: -hw, Y: hh}
	return []geometry.Primitive{
		geometry.Triangle(a, b, c, 1, hole),
		geometry.Triangle(c, d, a, 1, hole),
	}
}

// Obround builds the primitive list for a %ADD…O aperture: two end
// circles joined by a middle rectangle oriented along the longer axis,
// per §4.3.
func Obround(width, height, holeDiameter float64) []geometry.Primitive {
	hole := holeOf(holeDiameter)
	if width >= height {
		r := height / 2
		reach := width/2 - r
		prims := []geometry.Primitive{
			geometry.Circle(geometry.Point{X: -reach, Y: 0}, r, 1, hole),
			geometry.Circle(geometry.Point{X: reach, Y: 0}, r, 1, geometry.Hole{}),
		}
		return append(prims, Rectangle(width-height, height, 0)...)
	}
	r := width / 2
	reach := height/2 - r
	prims := []geometry.Primitive{
		geometry.Circle(geometry.Point{X: 0, Y: -reach}, r, 1, hole),
		geometry.Circle(geometry.Point{X: 0, Y: reach}, r, 1, geometry.Hole{}),
	}
	return append(prims, Rectangle(width, height-width, 0)...)
}

// RegularPolygon builds the primitive list for a %ADD…P aperture:
// fan-triangulated from center, per §4.3.
func RegularPolygon(diameter float64, verts int, rotationDeg, holeDiameter float64) []geometry.Primitive {
	if verts < 3 {
		verts = 3
	}
	hole := holeOf(holeDiameter)
	radius := diameter / 2
	rot := rotationDeg * degToRad
	pts := make([]geometry.Point, verts)
	for i := 0; i < verts; i++ {
		theta := rot + float64(i)*2*math.Pi/float64(verts)
		sin, cos := math.Sincos(theta)
		pts[i] = geometry.Point{X: radius * cos, Y: radius * sin}
	}
	center := geometry.Point{}
	out := make([]geometry.Primitive, verts)
	for i := 0; i < verts; i++ {
		next := (i + 1) % verts
		h := geometry.Hole{}
		if i == 0 {
			h = hole
		}
		out[i] = geometry.Triangle(center, pts[i], pts[next], 1, h)
	}
	return out
}

func holeOf(diameter float64) geometry.Hole {
	if diameter <= 0 {
		return geometry.Hole{}
	}
	return geometry.Hole{Radius: diameter / 2}
}

const degToRad = math.Pi / 180

// Definition is a fully-parsed %ADD body: either a builtin C/R/O/P shape
// or a reference to a named macro with evaluated parameters.
type Definition struct {
	Code         string
	BuiltinShape byte // 'C', 'R', 'O', 'P', or 0 for a macro reference
	MacroName    string
	Params       []float64
}

// ParseAdd parses the body of a %ADD command (everything after "%ADD" and
// before the trailing "*%"), e.g. "10C,0.5" or "11RECT,2X3" per §4.3.
// unitMultiplier (MM=1.0, IN=25.4) scales every builtin-shape dimension
// and every macro parameter; a P aperture's vertex count and rotation
// are not dimensions and are left unscaled.
func ParseAdd(body string, unitMultiplier float64) (Definition, error) {
	comma := strings.IndexByte(body, ',')
	var head, rest string
	if comma < 0 {
		head, rest = body, ""
	} else {
		head, rest = body[:comma], body[comma+1:]
	}

	i := 0
	for i < len(head) && head[i] >= '0' && head[i] <= '9' {
		i++
	}
	if i == 0 {
		return Definition{}, fmt.Errorf("aperture definition %q has no code digits", body)
	}
	code := "D" + head[:i]
	shape := head[i:]

	rawParams := splitParams(rest)
	params := make([]float64, 0, len(rawParams))
	for i, p := range rawParams {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Definition{}, fmt.Errorf("aperture %s: bad parameter %q: %w", code, p, err)
		}
		if shape == "P" && (i == 1 || i == 2) {
			params = append(params, v)
			continue
		}
		params = append(params, v*unitMultiplier)
	}

	switch shape {
	case "C", "R", "O", "P":
		return Definition{Code: code, BuiltinShape: shape[0], Params: params}, nil
	default:
		return Definition{Code: code, MacroName: shape, Params: params}, nil
	}
}

func splitParams(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "X")
}

// Build realizes a Definition into an Aperture. tri and the owning table's
// macro registry are needed for macro references and outline primitives.
func Build(def Definition, macros map[string]*macro.Macro, tri geometry.Triangulator) (Aperture, error) {
	switch def.BuiltinShape {
	case 'C':
		return New(Circle(arg(def.Params, 0), arg(def.Params, 1))), nil
	case 'R':
		return New(Rectangle(arg(def.Params, 0), arg(def.Params, 1), arg(def.Params, 2))), nil
	case 'O':
		return New(Obround(arg(def.Params, 0), arg(def.Params, 1), arg(def.Params, 2))), nil
	case 'P':
		return New(RegularPolygon(arg(def.Params, 0), int(arg(def.Params, 1)), arg(def.Params, 2), arg(def.Params, 3))), nil
	default:
		m, ok := macros[def.MacroName]
		if !ok {
			return Aperture{}, fmt.Errorf("aperture %s: undefined macro %q", def.Code, def.MacroName)
		}
		prims, errs := macro.Instantiate(m, def.Params, tri)
		if len(errs) > 0 && len(prims) == 0 {
			return Aperture{}, fmt.Errorf("aperture %s: macro %q produced no primitives: %v", def.Code, def.MacroName, errs[0])
		}
		return New(prims), nil
	}
}

func arg(params []float64, i int) float64 {
	if i < 0 || i >= len(params) {
		return 0
	}
	return params[i]
}
