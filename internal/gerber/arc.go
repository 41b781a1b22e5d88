package gerber

import (
	"math"

	"github.com/gerberforge/engine/internal/geometry"
)

const arcTolerance = 1e-3

// resolveArcCenter computes the arc center, start angle, and sweep angle
// (both radians, sweep signed by direction) for an arc move from start
// to end with offset (i,j), per §4.6.
//
// In multi-quadrant mode the center is simply start+(i,j). In
// single-quadrant mode i/j arrive as non-negative magnitudes and the
// real center is the one of the four sign combinations for which the
// start and end radii agree and the requested-direction sweep is at
// most π/2+ε; ties are broken by the first combination tried in a fixed
// order. If no candidate matches within tolerance, the sweep is clamped
// to exactly π/2 per §8's boundary-behavior rule.
func resolveArcCenter(start, end geometry.Point, i, j float64, quadrant QuadrantMode, clockwise bool) (center geometry.Point, startAngle, sweep float64) {
	if quadrant == QuadrantMulti {
		center = geometry.Point{X: start.X + i, Y: start.Y + j}
		return center, angleAt(start, center), signedSweep(start, end, center, clockwise)
	}

	signs := [4][2]float64{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	bestCenter := geometry.Point{X: start.X + i, Y: start.Y + j}
	bestSweep := math.Copysign(math.Pi/2, sweepSign(clockwise))
	found := false

	for _, sgn := range signs {
		c := geometry.Point{X: start.X + sgn[0]*i, Y: start.Y + sgn[1]*j}
		rStart := math.Hypot(start.X-c.X, start.Y-c.Y)
		rEnd := math.Hypot(end.X-c.X, end.Y-c.Y)
		if math.Abs(rStart-rEnd) > arcTolerance {
			continue
		}
		sw := signedSweep(start, end, c, clockwise)
		if math.Abs(sw) <= math.Pi/2+1e-6 {
			bestCenter = c
			bestSweep = sw
			found = true
			break
		}
	}

	if !found {
		// No candidate satisfied both constraints: clamp to the
		// canonical 90-degree single-quadrant sweep, per §8.
		bestSweep = math.Copysign(math.Pi/2, sweepSign(clockwise))
	}
	return bestCenter, angleAt(start, bestCenter), bestSweep
}

func sweepSign(clockwise bool) float64 {
	if clockwise {
		return -1
	}
	return 1
}

func angleAt(p, center geometry.Point) float64 {
	return math.Atan2(p.Y-center.Y, p.X-center.X)
}

// signedSweep returns the signed angular distance from start to end
// around center, following direction: negative (clockwise) sweeps are
// normalized into (-2π, 0], positive (CCW) into [0, 2π).
func signedSweep(start, end, center geometry.Point, clockwise bool) float64 {
	a0 := angleAt(start, center)
	a1 := angleAt(end, center)
	delta := a1 - a0
	if clockwise {
		for delta > 0 {
			delta -= 2 * math.Pi
		}
	} else {
		for delta < 0 {
			delta += 2 * math.Pi
		}
	}
	return delta
}
