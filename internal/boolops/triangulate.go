package boolops

import (
	"errors"

	"github.com/gerberforge/engine/internal/geometry"
)

// EarClipper implements geometry.Triangulator with a stdlib ear-clipping
// algorithm: holes are first stitched into the outer boundary with
// bridge edges (the standard "slit" technique), then the resulting
// simple polygon is ear-clipped. It does not handle self-intersecting
// input or holes that touch the outer boundary.
type EarClipper struct{}

// Triangulate implements geometry.Triangulator.
func (EarClipper) Triangulate(shape geometry.Shape) ([]geometry.Primitive, error) {
	if len(shape.Contours) == 0 {
		return nil, nil
	}
	simple := shape.Contours[0]
	for _, hole := range shape.Contours[1:] {
		if len(hole) < 3 {
			continue
		}
		simple = mergeHole(simple, hole)
	}
	return earClip(simple)
}

// mergeHole splices hole into outer via a bridge from the hole's
// rightmost vertex to the nearest visible point on outer, per the
// standard hole-to-simple-polygon slitting technique.
func mergeHole(outer, hole geometry.Contour) geometry.Contour {
	mIdx := rightmostIndex(hole)
	m := hole[mIdx]

	bridge, found := nearestVisibleEdge(outer, m)
	if !found {
		// Degenerate input (e.g. a hole outside the outer boundary):
		// fall back to appending the hole as a disconnected loop so
		// triangulation still produces triangles instead of failing.
		return append(append(geometry.Contour{}, outer...), hole...)
	}

	reordered := make(geometry.Contour, 0, len(hole))
	reordered = append(reordered, hole[mIdx:]...)
	reordered = append(reordered, hole[:mIdx+1]...)

	merged := make(geometry.Contour, 0, len(outer)+len(reordered)+2)
	merged = append(merged, outer[:bridge+1]...)
	merged = append(merged, reordered...)
	merged = append(merged, outer[bridge:]...)
	return merged
}

func rightmostIndex(c geometry.Contour) int {
	best := 0
	for i, p := range c {
		if p.X > c[best].X {
			best = i
		}
	}
	return best
}

// nearestVisibleEdge returns the index of the outer-contour vertex that
// ends the edge closest to a rightward ray cast from m, using the
// larger-X endpoint of that edge as the bridge point per the standard
// technique for guaranteeing a non-crossing bridge in the common case.
func nearestVisibleEdge(outer geometry.Contour, m geometry.Point) (int, bool) {
	bestDist := posInfF
	bestIdx := -1
	n := len(outer)
	for i := 0; i < n; i++ {
		a := outer[i]
		b := outer[(i+1)%n]
		if (a.Y > m.Y) == (b.Y > m.Y) {
			continue // edge does not straddle m's horizontal line
		}
		t := (m.Y - a.Y) / (b.Y - a.Y)
		x := a.X + t*(b.X-a.X)
		if x < m.X {
			continue // intersection is to the left, not on the rightward ray
		}
		dist := x - m.X
		if dist < bestDist {
			bestDist = dist
			if a.X > b.X {
				bestIdx = i
			} else {
				bestIdx = (i + 1) % n
			}
		}
	}
	return bestIdx, bestIdx >= 0
}

const posInfF = 1e308

// earClip triangulates a simple (possibly non-convex, no self-crossing)
// polygon by repeatedly clipping convex ears, the textbook O(n^2)
// algorithm.
func earClip(poly geometry.Contour) ([]geometry.Primitive, error) {
	n := len(poly)
	if n < 3 {
		return nil, nil
	}
	if signedArea(poly) < 0 {
		poly = reverseContour(poly)
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	var out []geometry.Primitive
	guard := 0
	for len(idx) > 3 {
		guard++
		if guard > n*n+8 {
			return out, errors.New("ear clipping failed to converge: input likely self-intersecting")
		}
		clipped := false
		for i := 0; i < len(idx); i++ {
			prev := idx[(i-1+len(idx))%len(idx)]
			cur := idx[i]
			next := idx[(i+1)%len(idx)]
			a, b, c := poly[prev], poly[cur], poly[next]
			if !isConvex(a, b, c) {
				continue
			}
			if anyPointInside(poly, idx, prev, cur, next, a, b, c) {
				continue
			}
			out = append(out, geometry.Triangle(a, b, c, 1, geometry.Hole{}))
			idx = append(idx[:i], idx[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			return out, errors.New("ear clipping found no convex ear: input likely self-intersecting")
		}
	}
	if len(idx) == 3 {
		out = append(out, geometry.Triangle(poly[idx[0]], poly[idx[1]], poly[idx[2]], 1, geometry.Hole{}))
	}
	return out, nil
}

func signedArea(c geometry.Contour) float64 {
	var sum float64
	n := len(c)
	for i := 0; i < n; i++ {
		a, b := c[i], c[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

func reverseContour(c geometry.Contour) geometry.Contour {
	out := make(geometry.Contour, len(c))
	for i, p := range c {
		out[len(c)-1-i] = p
	}
	return out
}

func cross(a, b, c geometry.Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func isConvex(a, b, c geometry.Point) bool {
	return cross(a, b, c) > 0
}

func pointInTriangle(p, a, b, c geometry.Point) bool {
	d1 := cross(a, b, p)
	d2 := cross(b, c, p)
	d3 := cross(c, a, p)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func anyPointInside(poly geometry.Contour, idx []int, prev, cur, next int, a, b, c geometry.Point) bool {
	for _, j := range idx {
		if j == prev || j == cur || j == next {
			continue
		}
		if q := poly[j]; q == a || q == b || q == c {
			continue
		}
		if pointInTriangle(poly[j], a, b, c) {
			return true
		}
	}
	return false
}
