package gerber

import (
	"testing"

	"github.com/gerberforge/engine/internal/geometry"
)

func primAt(x, y float64) geometry.Primitive {
	return geometry.Circle(geometry.Point{X: x, Y: y}, 1, 1, geometry.Hole{})
}

func TestPolaritySplitterFlushOnEmptyAccumulatorIsNoOp(t *testing.T) {
	var s PolaritySplitter
	s.Flush(PolarityPositive)
	if got := s.Sublayers(); len(got) != 0 {
		t.Errorf("got %d sublayers, want 0", len(got))
	}
}

func TestPolaritySplitterInterleavesByOldPolarity(t *testing.T) {
	var s PolaritySplitter
	s.Append(primAt(0, 0))
	s.Flush(PolarityPositive)
	s.Append(primAt(1, 0))
	s.Flush(PolarityNegative)
	s.Append(primAt(2, 0))
	s.Flush(PolarityPositive)

	out := s.Sublayers()
	if len(out) != 3 {
		t.Fatalf("got %d sublayers, want 3", len(out))
	}
	if out[0][0].Center.X != 0 || out[1][0].Center.X != 1 || out[2][0].Center.X != 2 {
		t.Errorf("sublayer order does not preserve emission order: %+v", out)
	}
}

func TestPolaritySplitterMorePositiveThanNegativeLayers(t *testing.T) {
	var s PolaritySplitter
	s.Append(primAt(0, 0))
	s.Flush(PolarityPositive)
	s.Append(primAt(1, 0))
	s.Flush(PolarityPositive)

	out := s.Sublayers()
	if len(out) != 2 {
		t.Fatalf("got %d sublayers, want 2", len(out))
	}
}
