// Package gerber implements the RS-274X command parser, state machine,
// and geometry executor: the pipeline from source text to a
// polarity-segmented primitive list, per §3 and §4.5–§4.8.
package gerber

import (
	"github.com/gerberforge/engine/internal/aperture"
	"github.com/gerberforge/engine/internal/geometry"
)

// InterpolationMode selects the linear/arc drawing mode and, for linear
// moves, the G10/G11/G12 scale factor. Kept as a small enum per §9's
// "string-typed modal flags are anti-patterns" design note.
type InterpolationMode int

const (
	InterpLinear InterpolationMode = iota
	InterpLinearX10
	InterpLinearX01
	InterpLinearX001
	InterpClockwiseArc
	InterpCounterClockwiseArc
)

// scaleFactor returns the G10/G11/G12 multiplier implied by m; arc modes
// carry no linear scale.
func (m InterpolationMode) scaleFactor() float64 {
	switch m {
	case InterpLinearX10:
		return 10
	case InterpLinearX01:
		return 0.1
	case InterpLinearX001:
		return 0.01
	default:
		return 1
	}
}

func (m InterpolationMode) isArc() bool {
	return m == InterpClockwiseArc || m == InterpCounterClockwiseArc
}

// QuadrantMode selects single- or multi-quadrant arc center resolution.
type QuadrantMode int

const (
	QuadrantSingle QuadrantMode = iota
	QuadrantMulti
)

// CoordinateMode selects absolute or incremental coordinate input.
type CoordinateMode int

const (
	CoordAbsolute CoordinateMode = iota
	CoordIncremental
)

// Mirror encodes the %LM axis-mirroring mode.
type Mirror int

const (
	MirrorNone Mirror = iota
	MirrorX
	MirrorY
	MirrorXY
)

func (m Mirror) signs() (sx, sy float64) {
	switch m {
	case MirrorX:
		return -1, 1
	case MirrorY:
		return 1, -1
	case MirrorXY:
		return -1, -1
	default:
		return 1, 1
	}
}

// StepRepeat is the %SR grid: sr_x/sr_y copies spaced sr_i/sr_j apart.
type StepRepeat struct {
	X, Y int
	I, J float64
}

// DefaultStepRepeat is the (1,1,0,0) no-op grid, per §3.
func DefaultStepRepeat() StepRepeat { return StepRepeat{X: 1, Y: 1} }

// FormatSpec is the %FS integer/decimal digit-count pair, cached with
// its power-of-ten divisors.
type FormatSpec struct {
	XInt, XDec int
	YInt, YDec int
}

func (f FormatSpec) xDivisor() float64 { return pow10(f.XDec) }
func (f FormatSpec) yDivisor() float64 { return pow10(f.YDec) }

func pow10(n int) float64 {
	v := 1.0
	for i := 0; i < n; i++ {
		v *= 10
	}
	return v
}

// State is the full modal parser state, per §3.
type State struct {
	X, Y float64 // current position, mm
	I, J float64 // last arc center offsets, mm

	CurrentAperture string

	Interpolation InterpolationMode
	Quadrant      QuadrantMode
	CoordMode     CoordinateMode

	RegionMode     bool
	RegionContours []geometry.Contour

	UnitMultiplier float64 // 1.0 mm, 25.4 in

	Polarity Polarity

	Format FormatSpec

	StepRepeat StepRepeat

	MirrorMode     Mirror
	LayerRotation  float64 // radians
	LayerScale     float64

	InBlock          bool
	PendingBlockCode string
	BlockBuffer      []string

	Apertures *aperture.Table

	ImagePolarity Polarity // %IF, stored per §9's open question, never applied
}

// Polarity is the dark/clear exposure state, per the GLOSSARY.
type Polarity int

const (
	PolarityPositive Polarity = iota
	PolarityNegative
)

// NewState returns the initial modal state for a fresh parse: millimeter
// units, absolute coordinates, positive polarity, identity layer
// transform, and a (1,1,0,0) step-and-repeat grid.
func NewState() *State {
	return &State{
		Interpolation:  InterpLinear,
		Quadrant:       QuadrantSingle,
		CoordMode:      CoordAbsolute,
		UnitMultiplier: 1.0,
		Polarity:       PolarityPositive,
		ImagePolarity:  PolarityPositive,
		StepRepeat:     DefaultStepRepeat(),
		LayerScale:     1.0,
		Apertures:      aperture.NewTable(),
	}
}
