package odbpp

import "testing"

func TestParseSymbolsRoundAndSquare(t *testing.T) {
	symbols, errs := ParseSymbols("$0 r0.5\n$1 s0.3\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if symbols[0].Kind != SymbolRound || symbols[0].Diameter != 0.5 {
		t.Errorf("symbol 0 = %+v, want round diameter 0.5", symbols[0])
	}
	if symbols[1].Kind != SymbolSquare || symbols[1].Side != 0.3 {
		t.Errorf("symbol 1 = %+v, want square side 0.3", symbols[1])
	}
}

func TestParseSymbolsRectangleAndOval(t *testing.T) {
	symbols, errs := ParseSymbols("$0 r0.6x0.4\n$1 o0.6x0.4\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if symbols[0].Kind != SymbolRectangle || symbols[0].Width != 0.6 || symbols[0].Height != 0.4 {
		t.Errorf("symbol 0 = %+v, want rectangle 0.6x0.4", symbols[0])
	}
	if symbols[1].Kind != SymbolOval || symbols[1].Width != 0.6 || symbols[1].Height != 0.4 {
		t.Errorf("symbol 1 = %+v, want oval 0.6x0.4", symbols[1])
	}
}

func TestParseSymbolsPolygon(t *testing.T) {
	symbols, errs := ParseSymbols("$0 p6x1.2\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if symbols[0].Kind != SymbolPolygon || symbols[0].Sides != 6 || symbols[0].Diameter != 1.2 {
		t.Errorf("symbol 0 = %+v, want hexagon diameter 1.2", symbols[0])
	}
}

func TestParseSymbolsBlankAndCommentLinesIgnored(t *testing.T) {
	symbols, errs := ParseSymbols("\n# a comment\n$0 r0.5\n   \n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(symbols) != 1 {
		t.Fatalf("got %d symbols, want 1", len(symbols))
	}
}

func TestParseSymbolsMalformedLineIsSoftError(t *testing.T) {
	symbols, errs := ParseSymbols("$0 r0.5\nnonsense\n$1 s0.2\n")
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	if len(symbols) != 2 {
		t.Errorf("got %d symbols, want the two well-formed lines to still parse", len(symbols))
	}
}

func TestParseSymbolsUnknownCodeIsSoftError(t *testing.T) {
	_, errs := ParseSymbols("$0 z1.0\n")
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1 for an unrecognized shape code", len(errs))
	}
}

func TestSymbolPrimitivesRoundMatchesApertureCircle(t *testing.T) {
	sym := Symbol{Kind: SymbolRound, Diameter: 1.0}
	prims := sym.Primitives()
	if len(prims) != 1 {
		t.Fatalf("got %d primitives, want 1", len(prims))
	}
	if prims[0].Radius != 0.5 {
		t.Errorf("radius = %v, want 0.5", prims[0].Radius)
	}
}
