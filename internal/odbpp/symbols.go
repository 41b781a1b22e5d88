// Package odbpp reads an ODB++ companion symbols/features pair and
// feeds the same primitive pipeline package gerber uses, per §4.11:
// pad flashes, lines, arcs, and fan-triangulated surfaces all land in
// the same geometry.Primitive / sbuf.Sublayer shapes Gerber output does.
package odbpp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gerberforge/engine/internal/aperture"
	"github.com/gerberforge/engine/internal/geometry"
)

// SymbolKind discriminates the handful of pad shapes a symbols file can
// declare.
type SymbolKind int

const (
	SymbolRound SymbolKind = iota
	SymbolSquare
	SymbolRectangle
	SymbolOval
	SymbolPolygon
)

// Symbol is one decoded "$k <code><params>" line: a named, reusable pad
// shape referenced by index from feature records.
type Symbol struct {
	Kind     SymbolKind
	Diameter float64 // round, polygon circumscribed diameter
	Side     float64 // square
	Width    float64 // rectangle, oval
	Height   float64 // rectangle, oval
	Sides    int      // polygon
}

// Primitives realizes sym as origin-centered geometry, mirroring the
// aperture package's builtin shape builders (symbols and apertures are
// the same kind of thing: a named, reusable local-coordinate shape).
func (sym Symbol) Primitives() []geometry.Primitive {
	switch sym.Kind {
	case SymbolRound:
		return aperture.Circle(sym.Diameter, 0)
	case SymbolSquare:
		return aperture.Rectangle(sym.Side, sym.Side, 0)
	case SymbolRectangle:
		return aperture.Rectangle(sym.Width, sym.Height, 0)
	case SymbolOval:
		return aperture.Obround(sym.Width, sym.Height, 0)
	case SymbolPolygon:
		return aperture.RegularPolygon(sym.Diameter, sym.Sides, 0, 0)
	default:
		return nil
	}
}

// ParseSymbols reads a companion symbols file: one "$<index> <code>…"
// declaration per line. Malformed lines are soft errors, per §7 — they
// are skipped and accumulated, not fatal.
//
// Recognized codes: "r<D>" round (diameter D), "s<S>" square (side S),
// "r<W>x<H>" rectangle, "o<W>x<H>" oval, "p<N>x<D>" regular polygon (N
// sides, circumscribed diameter D). The round/rectangle ambiguity on
// the shared "r" prefix is resolved by the presence of the "x"
// separator.
func ParseSymbols(text string) (map[int]Symbol, []error) {
	symbols := make(map[int]Symbol)
	var errs []error

	for lineNo, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sym, index, err := parseSymbolLine(line)
		if err != nil {
			errs = append(errs, fmt.Errorf("symbols line %d: %w", lineNo+1, err))
			continue
		}
		symbols[index] = sym
	}
	return symbols, errs
}

func parseSymbolLine(line string) (Symbol, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return Symbol{}, 0, fmt.Errorf("expected \"$<index> <code>\", got %q", line)
	}
	indexField, code := fields[0], fields[1]
	if !strings.HasPrefix(indexField, "$") {
		return Symbol{}, 0, fmt.Errorf("symbol index %q missing \"$\" prefix", indexField)
	}
	index, err := strconv.Atoi(indexField[1:])
	if err != nil {
		return Symbol{}, 0, fmt.Errorf("bad symbol index %q: %w", indexField, err)
	}
	if code == "" {
		return Symbol{}, 0, fmt.Errorf("empty symbol code")
	}

	letter, rest := code[0], code[1:]
	switch letter {
	case 's':
		side, err := strconv.ParseFloat(rest, 64)
		if err != nil {
			return Symbol{}, 0, fmt.Errorf("square symbol %q: %w", code, err)
		}
		return Symbol{Kind: SymbolSquare, Side: side}, index, nil
	case 'r':
		if !strings.Contains(rest, "x") {
			d, err := strconv.ParseFloat(rest, 64)
			if err != nil {
				return Symbol{}, 0, fmt.Errorf("round symbol %q: %w", code, err)
			}
			return Symbol{Kind: SymbolRound, Diameter: d}, index, nil
		}
		w, h, err := splitXY(rest)
		if err != nil {
			return Symbol{}, 0, fmt.Errorf("rectangle symbol %q: %w", code, err)
		}
		return Symbol{Kind: SymbolRectangle, Width: w, Height: h}, index, nil
	case 'o':
		w, h, err := splitXY(rest)
		if err != nil {
			return Symbol{}, 0, fmt.Errorf("oval symbol %q: %w", code, err)
		}
		return Symbol{Kind: SymbolOval, Width: w, Height: h}, index, nil
	case 'p':
		parts := strings.SplitN(rest, "x", 2)
		if len(parts) != 2 {
			return Symbol{}, 0, fmt.Errorf("polygon symbol %q missing \"x\" separator", code)
		}
		sides, err := strconv.Atoi(parts[0])
		if err != nil {
			return Symbol{}, 0, fmt.Errorf("polygon symbol %q: bad side count: %w", code, err)
		}
		d, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return Symbol{}, 0, fmt.Errorf("polygon symbol %q: bad diameter: %w", code, err)
		}
		return Symbol{Kind: SymbolPolygon, Sides: sides, Diameter: d}, index, nil
	default:
		return Symbol{}, 0, fmt.Errorf("unrecognized symbol code %q", code)
	}
}

func splitXY(s string) (float64, float64, error) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("missing \"x\" separator in %q", s)
	}
	w, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad width: %w", err)
	}
	h, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad height: %w", err)
	}
	return w, h, nil
}
