package aperture

import (
	"fmt"

	"github.com/gerberforge/engine/internal/geometry"
	"github.com/gerberforge/engine/internal/macro"
)

// Table is the set of apertures and macros live for the duration of a
// parse, per §3's "apertures and macros live for the duration of a
// parse" lifecycle note.
type Table struct {
	apertures map[string]Aperture
	macros    map[string]*macro.Macro
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		apertures: make(map[string]Aperture),
		macros:    make(map[string]*macro.Macro),
	}
}

// DefineMacro registers a compiled macro under name. Macro names are
// unique within a parse per §3; a redefinition silently replaces the
// prior one, consistent with the parser's soft-error discipline.
func (t *Table) DefineMacro(name string, m *macro.Macro) {
	t.macros[name] = m
}

// Macro looks up a previously registered macro by name.
func (t *Table) Macro(name string) (*macro.Macro, bool) {
	m, ok := t.macros[name]
	return m, ok
}

// Define parses and builds an aperture from a %ADD body and registers it
// under its code, per §4.3.
func (t *Table) Define(body string, unitMultiplier float64, tri geometry.Triangulator) error {
	def, err := ParseAdd(body, unitMultiplier)
	if err != nil {
		return err
	}
	ap, err := Build(def, t.macros, tri)
	if err != nil {
		return err
	}
	t.apertures[def.Code] = ap
	return nil
}

// DefineBlock registers a pre-built block aperture (§4.4) under code.
func (t *Table) DefineBlock(code string, ap Aperture) {
	t.apertures[code] = ap
}

// Lookup returns the aperture registered under code.
func (t *Table) Lookup(code string) (Aperture, bool) {
	ap, ok := t.apertures[code]
	return ap, ok
}

// Clone returns a new Table seeded from t's apertures and macros, used to
// build the local aperture table a block definition executes against
// per §4.4.
func (t *Table) Clone() *Table {
	clone := NewTable()
	for k, v := range t.apertures {
		clone.apertures[k] = v
	}
	for k, v := range t.macros {
		clone.macros[k] = v
	}
	return clone
}

// Has reports whether code is already registered. Define does not
// consult it: redefining a code replaces the earlier aperture.
func (t *Table) Has(code string) bool {
	_, ok := t.apertures[code]
	return ok
}

func (t *Table) String() string {
	return fmt.Sprintf("Table{apertures=%d, macros=%d}", len(t.apertures), len(t.macros))
}
