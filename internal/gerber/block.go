package gerber

import (
	"strings"

	"github.com/gerberforge/engine/internal/aperture"
	"github.com/gerberforge/engine/internal/geometry"
)

// handleBlock dispatches %AB...% bodies (with the "AB" prefix already
// stripped): a non-empty code begins buffering under that reserved
// aperture code, per §4.4; an empty code ends the current block and
// builds its aperture.
func (p *Parser) handleBlock(code string) {
	if code == "" {
		p.endBlock()
		return
	}
	p.state.InBlock = true
	p.state.PendingBlockCode = code
	p.state.BlockBuffer = nil
}

// endBlock replays the buffered commands against a temporary parser
// state — position reset to origin, a local aperture table seeded from
// the global one — and registers the resulting primitive list as a new
// aperture at the block's reserved code, per §4.4.
func (p *Parser) endBlock() {
	sub := NewParser(p.tri)
	sub.state.Apertures = p.state.Apertures.Clone()
	sub.state.UnitMultiplier = p.state.UnitMultiplier
	sub.state.Format = p.state.Format

	sub.Run(strings.Join(p.state.BlockBuffer, ""))
	result := sub.finish()
	p.errs = append(p.errs, result.Errors...)

	prims := flattenSublayers(result.Sublayers)
	p.state.Apertures.DefineBlock(p.state.PendingBlockCode, aperture.New(prims))

	p.state.InBlock = false
	p.state.PendingBlockCode = ""
	p.state.BlockBuffer = nil
}

func flattenSublayers(sublayers [][]geometry.Primitive) []geometry.Primitive {
	var out []geometry.Primitive
	for _, s := range sublayers {
		out = append(out, s...)
	}
	return out
}
