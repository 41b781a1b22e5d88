package gerber

import "github.com/gerberforge/engine/internal/geometry"

// PolaritySplitter accumulates the primitive list currently being
// emitted and flushes it into the polarity-ordered sublayer table on
// each polarity transition or end-of-parse, per §4.8.
type PolaritySplitter struct {
	current        []geometry.Primitive
	positiveLayers [][]geometry.Primitive
	negativeLayers [][]geometry.Primitive
}

// Append adds prims to the accumulating list for the currently active
// polarity.
func (p *PolaritySplitter) Append(prims ...geometry.Primitive) {
	p.current = append(p.current, prims...)
}

// Flush pushes the accumulated primitives into the sublayer for
// oldPolarity (the polarity in effect before the transition) and resets
// the accumulator, per §4.8's "per the old polarity" rule. A flush with
// an empty accumulator is a no-op — it does not insert an empty
// sublayer.
func (p *PolaritySplitter) Flush(oldPolarity Polarity) {
	if len(p.current) == 0 {
		return
	}
	switch oldPolarity {
	case PolarityPositive:
		p.positiveLayers = append(p.positiveLayers, p.current)
	case PolarityNegative:
		p.negativeLayers = append(p.negativeLayers, p.current)
	}
	p.current = nil
}

// Sublayers returns the final interleaved sublayer list: for k = 0 ..
// max(|pos|,|neg|)-1, positive_layers[k] then negative_layers[k] when
// present, per §4.8. Index parity in the result encodes polarity.
func (p *PolaritySplitter) Sublayers() [][]geometry.Primitive {
	n := len(p.positiveLayers)
	if len(p.negativeLayers) > n {
		n = len(p.negativeLayers)
	}
	out := make([][]geometry.Primitive, 0, 2*n)
	for k := 0; k < n; k++ {
		if k < len(p.positiveLayers) {
			out = append(out, p.positiveLayers[k])
		}
		if k < len(p.negativeLayers) {
			out = append(out, p.negativeLayers[k])
		}
	}
	return out
}
