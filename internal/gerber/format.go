package gerber

import (
	"fmt"
	"strconv"
)

// ParseFormatSpec parses a %FS body, e.g. "LAX24Y24" (leading-zero
// omission, absolute, X format 2 integer + 4 decimal digits, Y the
// same). Only the X/Y digit-count suffixes are meaningful here — the
// leading-zero and absolute/incremental letters are accepted but not
// separately modeled, matching real-world Gerber's near-universal use
// of LA.
func ParseFormatSpec(body string) (FormatSpec, error) {
	xi := indexByte(body, 'X')
	yi := indexByte(body, 'Y')
	if xi < 0 || yi < 0 || yi < xi {
		return FormatSpec{}, fmt.Errorf("malformed format spec %q", body)
	}
	xDigits := body[xi+1 : yi]
	yDigits := body[yi+1:]
	if len(xDigits) != 2 || len(yDigits) != 2 {
		return FormatSpec{}, fmt.Errorf("malformed format spec %q: expected 2-digit int/dec pairs", body)
	}
	xInt, err := strconv.Atoi(xDigits[:1])
	if err != nil {
		return FormatSpec{}, err
	}
	xDec, err := strconv.Atoi(xDigits[1:])
	if err != nil {
		return FormatSpec{}, err
	}
	yInt, err := strconv.Atoi(yDigits[:1])
	if err != nil {
		return FormatSpec{}, err
	}
	yDec, err := strconv.Atoi(yDigits[1:])
	if err != nil {
		return FormatSpec{}, err
	}
	return FormatSpec{XInt: xInt, XDec: xDec, YInt: yInt, YDec: yDec}, nil
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

// ConvertX converts a raw integer coordinate token (as parsed from an
// "X<digits>" field) into millimeters, per §4.6: decimal division, unit
// multiplier, scale, layer_scale, then mirror negation (applied by the
// caller once both X and Y are known).
func (s *State) ConvertX(raw float64) float64 {
	return raw / s.Format.xDivisor() * s.UnitMultiplier * s.Interpolation.scaleFactor() * s.LayerScale
}

// ConvertY mirrors ConvertX for the Y axis.
func (s *State) ConvertY(raw float64) float64 {
	return raw / s.Format.yDivisor() * s.UnitMultiplier * s.Interpolation.scaleFactor() * s.LayerScale
}
