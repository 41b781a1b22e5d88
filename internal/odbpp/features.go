package odbpp

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gerberforge/engine/internal/geometry"
)

const degToRad = math.Pi / 180

// ParseFeatures parses a features file into a flat primitive list,
// resolving each record's symbol reference against symbols. Malformed
// records are soft errors per §7: skipped, accumulated, parsing
// continues. Polarity "0" maps to exposure 1 (add); anything else maps
// to exposure 0 (subtract), matching the companion symbols/features
// format's documented convention.
func ParseFeatures(text string, symbols map[int]Symbol) ([]geometry.Primitive, []error) {
	var prims []geometry.Primitive
	var errs []error

	for lineNo, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		var recordPrims []geometry.Primitive
		var err error
		switch fields[0] {
		case "P":
			recordPrims, err = parsePad(fields[1:], symbols)
		case "L":
			recordPrims, err = parseLine(fields[1:])
		case "A":
			recordPrims, err = parseArc(fields[1:])
		case "S":
			recordPrims, err = parseSurface(fields[1:])
		default:
			err = fmt.Errorf("unrecognized record type %q", fields[0])
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("features line %d: %w", lineNo+1, err))
			continue
		}
		prims = append(prims, recordPrims...)
	}
	return prims, errs
}

func exposureOf(polarity string) int {
	if polarity == "0" {
		return 1
	}
	return 0
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("field %d (%q): %w", i, f, err)
		}
		out[i] = v
	}
	return out, nil
}

// parsePad handles "P x y rot mx my $k polarity": a symbol flashed at
// (x, y) with rotation rot (degrees) and optional per-axis mirroring.
func parsePad(fields []string, symbols map[int]Symbol) ([]geometry.Primitive, error) {
	if len(fields) != 7 {
		return nil, fmt.Errorf("pad record wants 7 fields (x y rot mx my symbol polarity), got %d", len(fields))
	}
	nums, err := parseFloats(fields[:5])
	if err != nil {
		return nil, err
	}
	x, y, rot, mx, my := nums[0], nums[1], nums[2], nums[3], nums[4]

	symIdx, err := strconv.Atoi(strings.TrimPrefix(fields[5], "$"))
	if err != nil {
		return nil, fmt.Errorf("bad symbol reference %q: %w", fields[5], err)
	}
	sym, ok := symbols[symIdx]
	if !ok {
		return nil, fmt.Errorf("pad references undefined symbol $%d", symIdx)
	}
	exposure := exposureOf(fields[6])

	base := sym.Primitives()
	out := make([]geometry.Primitive, 0, len(base))
	for _, p := range base {
		p = mirror(p, mx != 0, my != 0)
		p = p.Rotate(geometry.Point{}, rot*degToRad)
		p = p.Offset(x, y)
		p.Exposure = exposure
		out = append(out, p)
	}
	return out, nil
}

// parseLine handles "L x1 y1 x2 y2 width $k polarity": a capsule stroke
// between the two endpoints. The symbol field is not looked up; this
// engine always renders a round cap, matching the common real-world
// default for undecorated line records.
func parseLine(fields []string) ([]geometry.Primitive, error) {
	if len(fields) != 7 {
		return nil, fmt.Errorf("line record wants 7 fields (x1 y1 x2 y2 width symbol polarity), got %d", len(fields))
	}
	nums, err := parseFloats(fields[:5])
	if err != nil {
		return nil, err
	}
	x1, y1, x2, y2, width := nums[0], nums[1], nums[2], nums[3], nums[4]
	exposure := exposureOf(fields[6])

	from := geometry.Point{X: x1, Y: y1}
	to := geometry.Point{X: x2, Y: y2}
	radius := width / 2

	prims := []geometry.Primitive{
		geometry.Circle(from, radius, exposure, geometry.Hole{}),
		geometry.Circle(to, radius, exposure, geometry.Hole{}),
	}
	if from != to {
		a, b := capsuleRectangle(from, to, width)
		a.Exposure, b.Exposure = exposure, exposure
		prims = append(prims, a, b)
	}
	return prims, nil
}

// capsuleRectangle builds the two triangles of a width-wide rectangle
// running from p1 to p2, the same construction package gerber's stroke
// executor uses for a linear interpolation move.
func capsuleRectangle(p1, p2 geometry.Point, width float64) (geometry.Primitive, geometry.Primitive) {
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	length := math.Hypot(dx, dy)
	nx, ny := -dy/length*width/2, dx/length*width/2
	a := geometry.Point{X: p1.X + nx, Y: p1.Y + ny}
	b := geometry.Point{X: p1.X - nx, Y: p1.Y - ny}
	c := geometry.Point{X: p2.X - nx, Y: p2.Y - ny}
	d := geometry.Point{X: p2.X + nx, Y: p2.Y + ny}
	return geometry.Triangle(a, b, c, 1, geometry.Hole{}), geometry.Triangle(c, d, a, 1, geometry.Hole{})
}

// parseArc handles "A cx cy r startDeg sweepDeg width polarity".
func parseArc(fields []string) ([]geometry.Primitive, error) {
	if len(fields) != 7 {
		return nil, fmt.Errorf("arc record wants 7 fields (cx cy r startDeg sweepDeg width polarity), got %d", len(fields))
	}
	nums, err := parseFloats(fields[:6])
	if err != nil {
		return nil, err
	}
	cx, cy, r, startDeg, sweepDeg, width := nums[0], nums[1], nums[2], nums[3], nums[4], nums[5]
	exposure := exposureOf(fields[6])

	start := startDeg * degToRad
	end := start + sweepDeg*degToRad
	return []geometry.Primitive{
		geometry.Arc(geometry.Point{X: cx, Y: cy}, r, start, end, width, exposure),
	}, nil
}

// parseSurface handles "S v1x v1y v2x v2y … vNx vNy polarity": an
// arbitrary simple polygon, fan-triangulated from its first vertex.
func parseSurface(fields []string) ([]geometry.Primitive, error) {
	if len(fields) < 7 || (len(fields)-1)%2 != 0 {
		return nil, fmt.Errorf("surface record needs an even number of coordinate fields plus a trailing polarity, got %d fields", len(fields))
	}
	polarity := fields[len(fields)-1]
	coordFields := fields[:len(fields)-1]
	n := len(coordFields) / 2
	if n < 3 {
		return nil, fmt.Errorf("surface record needs at least 3 vertices, got %d", n)
	}
	coords, err := parseFloats(coordFields)
	if err != nil {
		return nil, err
	}
	verts := make([]geometry.Point, n)
	for i := 0; i < n; i++ {
		verts[i] = geometry.Point{X: coords[i*2], Y: coords[i*2+1]}
	}
	exposure := exposureOf(polarity)

	prims := make([]geometry.Primitive, 0, n-2)
	for i := 1; i < n-1; i++ {
		prims = append(prims, geometry.Triangle(verts[0], verts[i], verts[i+1], exposure, geometry.Hole{}))
	}
	return prims, nil
}

// mirror reflects p about the axes selected by mx/my before any
// rotation or translation is applied, matching the order a pad record's
// mx/my flags are meant to act in: flip the footprint, then place it.
func mirror(p geometry.Primitive, mx, my bool) geometry.Primitive {
	if !mx && !my {
		return p
	}
	flip := func(pt geometry.Point) geometry.Point {
		if mx {
			pt.X = -pt.X
		}
		if my {
			pt.Y = -pt.Y
		}
		return pt
	}
	out := p
	switch p.Kind {
	case geometry.KindTriangle:
		out.V0, out.V1, out.V2 = flip(p.V0), flip(p.V1), flip(p.V2)
		if out.TriHole.HasHole() {
			out.TriHole.Center = flip(p.TriHole.Center)
		}
	case geometry.KindCircle:
		out.Center = flip(p.Center)
		if out.CHole.HasHole() {
			out.CHole.Center = flip(p.CHole.Center)
		}
	case geometry.KindArc:
		out.Center = flip(p.Center)
		if mx != my {
			out.StartAngle, out.EndAngle = math.Pi-p.EndAngle, math.Pi-p.StartAngle
		}
	case geometry.KindThermal:
		out.Center = flip(p.Center)
	}
	return out
}
