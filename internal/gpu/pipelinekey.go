//go:build !headless

package gpu

import "github.com/gerberforge/engine/internal/geometry"

// ProgramKey identifies one compiled-and-linked shader program variant.
// One program per primitive kind keeps vertex layouts and uniforms
// simple, and the cache below avoids relinking a program on every
// layer's render pass.
type ProgramKey struct {
	Kind geometry.Kind
}

// programCache lazily builds and caches one program per ProgramKey,
// the same getOrCreate-over-a-struct-key shape used elsewhere in this
// codebase's GPU-backend lineage for pipeline-variant caching.
type programCache struct {
	programs map[ProgramKey]*program
}

func newProgramCache() *programCache {
	return &programCache{programs: make(map[ProgramKey]*program)}
}

func (c *programCache) getOrCreate(key ProgramKey) (*program, error) {
	if p, ok := c.programs[key]; ok {
		return p, nil
	}
	p, err := c.createVariant(key)
	if err != nil {
		return nil, err
	}
	c.programs[key] = p
	return p, nil
}

func (c *programCache) createVariant(key ProgramKey) (*program, error) {
	switch key.Kind {
	case geometry.KindTriangle:
		return linkProgram(triangleVertexShader, triangleFragmentShader)
	case geometry.KindCircle:
		return linkProgram(circleVertexShader, circleFragmentShader)
	case geometry.KindArc:
		return linkProgram(arcVertexShader, arcFragmentShader)
	case geometry.KindThermal:
		return linkProgram(thermalVertexShader, thermalFragmentShader)
	default:
		return nil, &Error{Operation: "compile", Details: "unknown primitive kind"}
	}
}

func (c *programCache) close() {
	for key, p := range c.programs {
		p.close()
		delete(c.programs, key)
	}
}
