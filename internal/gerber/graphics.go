package gerber

import (
	"fmt"
	"strings"

	"github.com/gerberforge/engine/internal/aperture"
	"github.com/gerberforge/engine/internal/geometry"
)

// handleGraphic dispatches one trimmed, '*'-stripped graphic command
// line, per §4.6. M00/M01/M02 are ignored and parsing continues with
// the next command; a bare "*" (no content) never reaches here since
// tokenize drops empty bodies; G54 is accepted as a no-op, per §4.12.
func (p *Parser) handleGraphic(body string) {
	switch body {
	case "M00", "M01", "M02", "G54":
		return
	}
	if strings.HasPrefix(body, "G04") {
		return // comment
	}

	cmd := parseGraphicCommand(body)

	if cmd.HasG {
		p.applyGCode(cmd.G)
	}

	x, y := p.state.X, p.state.Y
	coordPresent := cmd.HasX || cmd.HasY
	if cmd.HasX {
		x = p.resolveCoord(cmd.X, p.state.X, true)
	}
	if cmd.HasY {
		y = p.resolveCoord(cmd.Y, p.state.Y, false)
	}
	if cmd.HasI {
		p.state.I = p.convertOffset(cmd.I, true)
	}
	if cmd.HasJ {
		p.state.J = p.convertOffset(cmd.J, false)
	}

	switch {
	case cmd.HasD:
		p.applyDCode(cmd.D, x, y)
	case coordPresent && p.penDown:
		p.applyDCode(1, x, y)
	default:
		if coordPresent {
			p.state.X, p.state.Y = x, y
		}
	}
}

func (p *Parser) applyGCode(g int) {
	switch g {
	case 1:
		p.state.Interpolation = InterpLinear
	case 10:
		p.state.Interpolation = InterpLinearX10
	case 11:
		p.state.Interpolation = InterpLinearX01
	case 12:
		p.state.Interpolation = InterpLinearX001
	case 2:
		p.state.Interpolation = InterpClockwiseArc
	case 3:
		p.state.Interpolation = InterpCounterClockwiseArc
	case 36:
		p.state.BeginRegion()
	case 37:
		prims, err := p.state.EndRegion(p.tri)
		if err != nil {
			p.errs = append(p.errs, err)
		}
		p.splitter.Append(prims...)
	case 70:
		p.state.UnitMultiplier = 25.4
	case 71:
		p.state.UnitMultiplier = 1.0
	case 74:
		p.state.Quadrant = QuadrantSingle
	case 75:
		p.state.Quadrant = QuadrantMulti
	case 90:
		p.state.CoordMode = CoordAbsolute
	case 91:
		p.state.CoordMode = CoordIncremental
	default:
		// unknown or no-op G code (e.g. G04 is handled earlier): soft-skip
	}
}

func (p *Parser) applyDCode(d int, x, y float64) {
	switch {
	case d == 1:
		p.penDown = true
		if p.state.RegionMode {
			p.state.AppendRegionPoint(geometry.Point{X: x, Y: y})
		} else if ap, ok := p.currentAperture(); ok {
			from := geometry.Point{X: p.state.X, Y: p.state.Y}
			to := geometry.Point{X: x, Y: y}
			if p.state.Interpolation.isArc() {
				p.strokeArc(ap, from, to)
			} else {
				p.strokeLinear(ap, from, to)
			}
		}
		p.state.X, p.state.Y = x, y
	case d == 2:
		p.penDown = false
		if p.state.RegionMode {
			p.state.StartRegionHole()
		}
		p.state.X, p.state.Y = x, y
	case d == 3:
		if ap, ok := p.currentAperture(); ok {
			p.flash(ap, geometry.Point{X: x, Y: y})
		}
		p.state.X, p.state.Y = x, y
	case d >= 10:
		p.state.CurrentAperture = fmt.Sprintf("D%d", d)
	}
}

func (p *Parser) currentAperture() (aperture.Aperture, bool) {
	if p.state.CurrentAperture == "" {
		return aperture.Aperture{}, false
	}
	ap, ok := p.state.Apertures.Lookup(p.state.CurrentAperture)
	if !ok {
		p.errs = append(p.errs, fmt.Errorf("undefined aperture %s", p.state.CurrentAperture))
	}
	return ap, ok
}

// convertCoord converts a raw format-spec integer field to millimeters:
// decimal division, unit multiplier, scale, layer_scale, then mirror
// negation, per §4.6.
func (p *Parser) convertCoord(raw float64, isX bool) float64 {
	var v float64
	sx, sy := p.state.MirrorMode.signs()
	if isX {
		v = p.state.ConvertX(raw) * sx
	} else {
		v = p.state.ConvertY(raw) * sy
	}
	return v
}

// resolveCoord applies convertCoord and then, in incremental mode, adds
// the prior position.
func (p *Parser) resolveCoord(raw, prior float64, isX bool) float64 {
	v := p.convertCoord(raw, isX)
	if p.state.CoordMode == CoordIncremental {
		return prior + v
	}
	return v
}

// convertOffset converts an I/J arc-center offset — always a relative
// value regardless of coordinate mode.
func (p *Parser) convertOffset(raw float64, isX bool) float64 {
	return p.convertCoord(raw, isX)
}
