package gerber

import (
	"strconv"
	"strings"

	"github.com/gerberforge/engine/internal/geometry"
	"github.com/gerberforge/engine/internal/macro"
)

// Result is the outcome of parsing one Gerber source file: the final
// polarity-ordered sublayer list plus any soft errors encountered along
// the way (malformed constructs that were skipped rather than aborting
// the parse, per §7).
type Result struct {
	Sublayers [][]geometry.Primitive
	Errors    []error
}

// Parser drives the command dispatcher and graphics executor over one
// Gerber source file.
type Parser struct {
	state    *State
	tri      geometry.Triangulator
	splitter PolaritySplitter
	errs     []error

	penDown bool
}

// NewParser returns a parser ready to consume Gerber source text. tri
// triangulates regions, outline macro primitives, and negative-aperture
// flashes.
func NewParser(tri geometry.Triangulator) *Parser {
	return &Parser{state: NewState(), tri: tri}
}

// Parse runs text through the command dispatcher to completion and
// returns the resulting sublayers.
func Parse(text string, tri geometry.Triangulator) *Result {
	p := NewParser(tri)
	p.Run(text)
	return p.finish()
}

// Run tokenizes and dispatches every command in text. It may be called
// on a fresh Parser for a top-level file, or on a sub-parser replaying a
// block aperture's buffered commands (§4.4).
func (p *Parser) Run(text string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	for _, tok := range tokenize(text) {
		p.dispatch(tok)
	}
}

func (p *Parser) finish() *Result {
	p.splitter.Flush(p.state.Polarity)
	return &Result{Sublayers: p.splitter.Sublayers(), Errors: p.errs}
}

type token struct {
	extended bool
	body     string // content between % % (extended) or before * (graphic)
}

// tokenize splits source text into extended (%...%) and graphic (...*)
// command tokens, per §4.5. Extended blocks may contain embedded '*'
// separators (e.g. a macro body's statement list) and are passed
// through whole; the embedded splitting happens in handleExtended.
func tokenize(text string) []token {
	var toks []token
	i, n := 0, len(text)
	for i < n {
		c := text[i]
		if c == '\n' || c == ' ' || c == '\t' {
			i++
			continue
		}
		if c == '%' {
			j := strings.IndexByte(text[i+1:], '%')
			if j < 0 {
				break // unterminated extended command: stop, per soft-error policy
			}
			body := strings.ReplaceAll(text[i+1:i+1+j], "\n", "")
			// The body's own closing '*' sits inside the % delimiters
			// (e.g. "%FSLAX24Y24*%"); strip exactly one trailing
			// terminator so single-statement handlers see a clean body.
			body = strings.TrimSuffix(body, "*")
			toks = append(toks, token{extended: true, body: body})
			i = i + 1 + j + 1
			continue
		}
		j := strings.IndexByte(text[i:], '*')
		if j < 0 {
			break
		}
		body := strings.TrimSpace(strings.ReplaceAll(text[i:i+j], "\n", ""))
		if body != "" {
			toks = append(toks, token{body: body})
		}
		i = i + j + 1
	}
	return toks
}

func (p *Parser) raw(tok token) string {
	if tok.extended {
		return "%" + tok.body + "%"
	}
	return tok.body + "*"
}

func (p *Parser) dispatch(tok token) {
	if p.state.InBlock && !(tok.extended && isBlockEnd(tok.body)) {
		// Everything inside a block, including a nested %AB...%, is
		// buffered verbatim rather than re-entered, per §4.4.
		p.state.BlockBuffer = append(p.state.BlockBuffer, p.raw(tok))
		return
	}
	if tok.extended {
		p.handleExtended(tok.body)
	} else {
		p.handleGraphic(tok.body)
	}
}

func isBlockEnd(body string) bool {
	return body == "AB"
}

func (p *Parser) handleExtended(body string) {
	if len(body) < 2 {
		return
	}
	switch body[:2] {
	case "AM":
		p.handleMacro(body[2:])
	case "AD":
		// "%ADD10C,0.5*%" carries a 3-letter "ADD" prefix; only the
		// 2-letter "AD" is needed to route here.
		if err := p.state.Apertures.Define(body[3:], p.state.UnitMultiplier, p.tri); err != nil {
			p.errs = append(p.errs, err)
		}
	case "MO":
		p.handleUnits(body[2:])
	case "FS":
		fs, err := ParseFormatSpec(body[2:])
		if err != nil {
			p.errs = append(p.errs, err)
			return
		}
		p.state.Format = fs
	case "LP":
		p.handlePolarityChange(body[2:])
	case "SR":
		p.state.StepRepeat = ParseStepRepeat(body[2:])
	case "IF":
		p.handleImagePolarity(body[2:])
	case "AB":
		p.handleBlock(body[2:])
	case "LM":
		p.handleMirror(body[2:])
	case "LR":
		p.handleLayerRotation(body[2:])
	case "LS":
		p.handleLayerScale(body[2:])
	case "TF", "TA", "TO", "TD":
		// Attribute commands soft-skip without warning, per §4.12.
	default:
		// Unknown extended command: soft-skip per §4.5.
	}
}

func (p *Parser) handleMacro(nameAndBody string) {
	parts := strings.Split(nameAndBody, "*")
	if len(parts) == 0 {
		return
	}
	name := parts[0]
	var lines []string
	for _, ln := range parts[1:] {
		if ln != "" {
			lines = append(lines, ln)
		}
	}
	p.state.Apertures.DefineMacro(name, macro.Compile(name, lines))
}

func (p *Parser) handleUnits(code string) {
	switch code {
	case "MM":
		p.state.UnitMultiplier = 1.0
	case "IN":
		p.state.UnitMultiplier = 25.4
	}
}

func (p *Parser) handlePolarityChange(code string) {
	old := p.state.Polarity
	p.splitter.Flush(old)
	switch code {
	case "D":
		p.state.Polarity = PolarityPositive
	case "C":
		p.state.Polarity = PolarityNegative
	}
}

func (p *Parser) handleImagePolarity(code string) {
	switch code {
	case "P":
		p.state.ImagePolarity = PolarityPositive
	case "N":
		p.state.ImagePolarity = PolarityNegative
	}
}

func (p *Parser) handleMirror(code string) {
	switch code {
	case "N":
		p.state.MirrorMode = MirrorNone
	case "X":
		p.state.MirrorMode = MirrorX
	case "Y":
		p.state.MirrorMode = MirrorY
	case "XY":
		p.state.MirrorMode = MirrorXY
	}
}

func (p *Parser) handleLayerRotation(code string) {
	deg, err := parseFloatSoft(code)
	if err != nil {
		return
	}
	p.state.LayerRotation = deg * degToRadGerber
}

func (p *Parser) handleLayerScale(code string) {
	v, err := parseFloatSoft(code)
	if err != nil {
		return
	}
	p.state.LayerScale = v
}

const degToRadGerber = 3.141592653589793 / 180

func parseFloatSoft(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
