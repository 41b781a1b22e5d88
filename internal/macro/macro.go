// Package macro compiles and instantiates Gerber aperture macros: an
// ordered list of textual statements (variable assignments or primitive
// emissions) preserved verbatim until a concrete parameter list is
// supplied at instantiation time.
package macro

import (
	"strconv"
	"strings"
)

// StatementKind discriminates a macro statement.
type StatementKind int

const (
	StatementAssign StatementKind = iota
	StatementPrimitive
)

// Statement is one line of a macro body, preserved verbatim.
type Statement struct {
	Kind StatementKind

	// StatementAssign
	VarName string // e.g. "$1"
	Expr    string // right-hand side, unevaluated

	// StatementPrimitive
	Code int
	Args []string // each arg is an unevaluated expression
}

// Primitive emission codes, per §4.2.
const (
	CodeComment       = 0
	CodeCircle        = 1
	CodeOutline       = 4
	CodeRegularPoly   = 5
	CodeThermal       = 7
	CodeVectorLine    = 20
	CodeCenterLineBox = 21
)

// Macro is a compiled-but-uninstantiated aperture macro template.
type Macro struct {
	Name        string
	Statements  []Statement
	HasNegative bool
}

// Compile parses the raw body lines of a %AM...%  block (already split
// on '*' by the caller; empty parts are skipped here, and code-0 comment
// statements are kept and ignored at instantiation) into a Macro. Malformed statements are skipped per the
// parser's soft-error policy — Compile never fails outright.
func Compile(name string, lines []string) *Macro {
	m := &Macro{Name: name}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "$") {
			eq := strings.Index(line, "=")
			if eq < 0 {
				continue
			}
			m.Statements = append(m.Statements, Statement{
				Kind:    StatementAssign,
				VarName: strings.TrimSpace(line[:eq]),
				Expr:    strings.TrimSpace(line[eq+1:]),
			})
			continue
		}
		parts := strings.Split(line, ",")
		code, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			continue
		}
		args := make([]string, 0, len(parts)-1)
		for _, a := range parts[1:] {
			args = append(args, strings.TrimSpace(a))
		}
		m.Statements = append(m.Statements, Statement{Kind: StatementPrimitive, Code: code, Args: args})
		if code != CodeComment && exposureIsZero(code, args) {
			m.HasNegative = true
		}
	}
	return m
}

// exposureIsZero scans the leading exposure literal of a primitive
// statement without needing variable bindings — it only recognizes a
// bare "0" literal, matching §3's "precomputed by scanning the exposure
// literal" wording. An exposure expression that evaluates to 0 is not
// flagged here; aperture.New picks it up from the instantiated
// primitives' exposure.
func exposureIsZero(code int, args []string) bool {
	if code == CodeThermal || len(args) == 0 {
		return false // thermal statements carry no exposure argument
	}
	return strings.TrimSpace(args[0]) == "0"
}
