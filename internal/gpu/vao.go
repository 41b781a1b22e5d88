//go:build !headless

package gpu

import (
	"github.com/gerberforge/engine/internal/geometry"
	"github.com/gerberforge/engine/internal/sbuf"
	"github.com/go-gl/gl/v3.3-core/gl"
)

// bufferKey names one layer's GPU-resident buffer for one primitive
// kind. Re-uploading a layer reuses the same VAO/VBO pair instead of
// allocating new GL objects every render pass.
type bufferKey struct {
	layerID int
	kind    geometry.Kind
}

// glBuffers is one kind's uploaded geometry: a VAO describing the
// vertex layout, a VBO (or two, for instanced kinds: a shared quad base
// plus a per-instance attribute buffer), and an optional index buffer
// for the triangle kind.
type glBuffers struct {
	vao, vbo, instanceVBO, ebo uint32
	indexCount                 int32
	instanceCount              int32
}

func newGLBuffers() *glBuffers {
	b := &glBuffers{}
	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.GenBuffers(1, &b.instanceVBO)
	gl.GenBuffers(1, &b.ebo)
	return b
}

func (b *glBuffers) close() {
	gl.DeleteVertexArrays(1, &b.vao)
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteBuffers(1, &b.instanceVBO)
	gl.DeleteBuffers(1, &b.ebo)
}

// vaoCache owns one glBuffers per (layer, kind) pair in use.
type vaoCache struct {
	entries map[bufferKey]*glBuffers
}

func newVAOCache() *vaoCache {
	return &vaoCache{entries: make(map[bufferKey]*glBuffers)}
}

func (c *vaoCache) getOrCreate(key bufferKey) *glBuffers {
	b, ok := c.entries[key]
	if !ok {
		b = newGLBuffers()
		c.entries[key] = b
	}
	return b
}

// removeLayer drops and frees every buffer belonging to id, called from
// RemoveLayer so a removed layer leaves no GL objects behind.
func (c *vaoCache) removeLayer(id int) {
	for key, b := range c.entries {
		if key.layerID == id {
			b.close()
			delete(c.entries, key)
		}
	}
}

func (c *vaoCache) close() {
	for key, b := range c.entries {
		b.close()
		delete(c.entries, key)
	}
}

// quadMesh is the shared unit quad ([-1,1] in both axes) that every
// instanced kind's vertex shader scales per-instance, and that the
// composite pass stretches over the whole viewport.
type quadMesh struct {
	vao, vbo uint32
}

var compositeQuadVerts = [16]float32{
	// pos.x, pos.y, uv.x, uv.y
	-1, -1, 0, 0,
	1, -1, 1, 0,
	1, 1, 1, 1,
	-1, 1, 0, 1,
}

var unitQuadVerts = [8]float32{
	-1, -1,
	1, -1,
	1, 1,
	-1, 1,
}

var quadIndices = [6]uint32{0, 1, 2, 2, 3, 0}

func newQuadMesh(verts []float32, stride int32, attribSizes []int32) *quadMesh {
	q := &quadMesh{}
	gl.GenVertexArrays(1, &q.vao)
	gl.GenBuffers(1, &q.vbo)
	gl.BindVertexArray(q.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, q.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)

	var offset int32
	for i, size := range attribSizes {
		gl.VertexAttribPointerWithOffset(uint32(i), size, gl.FLOAT, false, stride*4, uintptr(offset*4))
		gl.EnableVertexAttribArray(uint32(i))
		offset += size
	}
	gl.BindVertexArray(0)
	return q
}

func (q *quadMesh) close() {
	gl.DeleteVertexArrays(1, &q.vao)
	gl.DeleteBuffers(1, &q.vbo)
}

// uploadTriangles builds the interleaved vertex/index layout used by
// the triangle program directly from sbuf's SoA arrays.
func uploadTriangles(b *glBuffers, t sbuf.Triangles) {
	n := t.Count() * 3
	interleaved := make([]float32, 0, n*5)
	for i := 0; i < n; i++ {
		interleaved = append(interleaved,
			t.Vertices[i*2], t.Vertices[i*2+1],
			t.HoleCenters[i*2], t.HoleCenters[i*2+1],
			t.HoleRadii[i], t.Exposure[i],
		)
	}
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(interleaved)*4, gl.Ptr(interleaved), gl.DYNAMIC_DRAW)

	const stride = 6 * 4
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 2*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 1, gl.FLOAT, false, stride, 4*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(3, 1, gl.FLOAT, false, stride, 5*4)
	gl.EnableVertexAttribArray(3)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(t.Indices)*4, gl.Ptr(t.Indices), gl.DYNAMIC_DRAW)
	b.indexCount = int32(len(t.Indices))
	gl.BindVertexArray(0)
}

// bindInstanced wires the shared unit quad as attribute 0 (divisor 0)
// and a freshly uploaded per-instance buffer starting at attribute 1
// (divisor 1), per attribSizes.
func bindInstanced(b *glBuffers, interleaved []float32, attribSizes []int32) {
	gl.BindVertexArray(b.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, sharedUnitQuad.vbo)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribDivisor(0, 0)

	gl.BindBuffer(gl.ARRAY_BUFFER, b.instanceVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(interleaved)*4, gl.Ptr(interleaved), gl.DYNAMIC_DRAW)

	var stride int32
	for _, s := range attribSizes {
		stride += s
	}
	var offset int32
	for i, size := range attribSizes {
		loc := uint32(i + 1)
		gl.VertexAttribPointerWithOffset(loc, size, gl.FLOAT, false, stride*4, uintptr(offset*4))
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribDivisor(loc, 1)
		offset += size
	}
	gl.BindVertexArray(0)
}

func uploadCircles(b *glBuffers, c sbuf.Circles) {
	n := c.Count()
	interleaved := make([]float32, 0, n*7)
	for i := 0; i < n; i++ {
		interleaved = append(interleaved,
			c.Centers[i*2], c.Centers[i*2+1], c.Radii[i],
			c.HoleCenters[i*2], c.HoleCenters[i*2+1], c.HoleRadii[i],
			c.Exposure[i],
		)
	}
	bindInstanced(b, interleaved, []int32{2, 1, 2, 1, 1})
	b.instanceCount = int32(n)
}

func uploadArcs(b *glBuffers, a sbuf.Arcs) {
	n := a.Count()
	interleaved := make([]float32, 0, n*7)
	for i := 0; i < n; i++ {
		interleaved = append(interleaved,
			a.Centers[i*2], a.Centers[i*2+1], a.Radii[i],
			a.StartAngles[i], a.SweepAngles[i], a.Thicknesses[i],
			a.Exposure[i],
		)
	}
	bindInstanced(b, interleaved, []int32{2, 1, 1, 1, 1, 1})
	b.instanceCount = int32(n)
}

func uploadThermals(b *glBuffers, th sbuf.Thermals) {
	n := th.Count()
	interleaved := make([]float32, 0, n*6)
	for i := 0; i < n; i++ {
		interleaved = append(interleaved,
			th.Centers[i*2], th.Centers[i*2+1],
			th.OuterDiameters[i], th.InnerDiameters[i],
			th.GapThickness[i], th.Rotations[i],
		)
	}
	bindInstanced(b, interleaved, []int32{2, 1, 1, 1, 1})
	b.instanceCount = int32(n)
}

// sharedUnitQuad backs every instanced draw's base geometry; it is
// created once by New and never re-uploaded.
var sharedUnitQuad *quadMesh

// compositeQuad backs the final textured full-viewport blit.
var compositeQuad *quadMesh
