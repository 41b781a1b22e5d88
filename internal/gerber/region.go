package gerber

import "github.com/gerberforge/engine/internal/geometry"

// BeginRegion clears and starts a fresh region accumulation, per G36.
func (s *State) BeginRegion() {
	s.RegionMode = true
	s.RegionContours = []geometry.Contour{{}}
}

// AppendRegionPoint appends p to the current (last) contour, per D01
// inside region mode.
func (s *State) AppendRegionPoint(p geometry.Point) {
	last := len(s.RegionContours) - 1
	s.RegionContours[last] = append(s.RegionContours[last], p)
}

// StartRegionHole begins a new contour if the current one is non-empty,
// per D02 inside region mode — "enabling holes".
func (s *State) StartRegionHole() {
	last := len(s.RegionContours) - 1
	if len(s.RegionContours[last]) > 0 {
		s.RegionContours = append(s.RegionContours, geometry.Contour{})
	}
}

// EndRegion triangulates the accumulated region contours via tri and
// clears region state, per G37. Contours with fewer than 3 points are
// dropped (soft error) rather than aborting the whole region. Regions
// are always positive (exposure 1).
func (s *State) EndRegion(tri geometry.Triangulator) ([]geometry.Primitive, error) {
	contours := make([]geometry.Contour, 0, len(s.RegionContours))
	for _, c := range s.RegionContours {
		if len(c) >= 3 {
			contours = append(contours, c)
		}
	}
	s.RegionMode = false
	s.RegionContours = nil
	if len(contours) == 0 {
		return nil, nil
	}
	return tri.Triangulate(geometry.Shape{Contours: contours})
}
