package spine

import "math/bits"

// VertexLayout describes the interleaved float layout of generated vertices:
//
//	x, y, r, g, b, a, u, v            (8 floats)
//	x, y, r, g, b, a, u, v, dr, dg, db (11 floats, TwoColorTint)
//
// The layout is fixed when a Generator is constructed.
type VertexLayout struct {
	TwoColorTint bool
}

// Stride returns the number of floats per vertex.
func (l VertexLayout) Stride() int {
	if l.TwoColorTint {
		return 11
	}
	return 8
}

// MeshBuffer holds one frame's interleaved vertices and batch-local indices.
// It grows by doubling and never shrinks.
type MeshBuffer struct {
	Vertices []float32
	Indices  []uint32
}

// Reset empties the buffer, keeping its capacity.
func (b *MeshBuffer) Reset() {
	b.Vertices = b.Vertices[:0]
	b.Indices = b.Indices[:0]
}

// reserve ensures room for extra more floats and indices, preserving the
// written data.
func (b *MeshBuffer) reserve(floats, indices int) {
	if need := len(b.Vertices) + floats; need > cap(b.Vertices) {
		grown := make([]float32, len(b.Vertices), growCap(cap(b.Vertices), need))
		copy(grown, b.Vertices)
		b.Vertices = grown
	}
	if need := len(b.Indices) + indices; need > cap(b.Indices) {
		grown := make([]uint32, len(b.Indices), growCap(cap(b.Indices), need))
		copy(grown, b.Indices)
		b.Indices = grown
	}
}

// growCap returns the next capacity: double the current one, or the next
// power of two above need if doubling is not enough.
func growCap(cur, need int) int {
	c := cur * 2
	if c < need {
		c = nextPowerOfTwo(need)
	}
	return c
}

// nextPowerOfTwo returns the smallest power of two >= n (minimum 1).
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// MeshBuffers is a ping-pong pair of mesh buffers. Each frame writes into the
// buffer selected by frame parity, so the renderer can still read the
// previous frame's buffer while the next one is generated.
type MeshBuffers struct {
	buffers [2]MeshBuffer
	frame   uint64
}

// Current returns the buffer for the current frame.
func (m *MeshBuffers) Current() *MeshBuffer {
	return &m.buffers[m.frame&1]
}

// Previous returns the buffer written by the previous frame.
func (m *MeshBuffers) Previous() *MeshBuffer {
	return &m.buffers[(m.frame+1)&1]
}

// Next advances to the other buffer, resets it and returns it.
func (m *MeshBuffers) Next() *MeshBuffer {
	m.frame++
	b := m.Current()
	b.Reset()
	return b
}

// Frame returns the number of times Next has been called.
func (m *MeshBuffers) Frame() uint64 {
	return m.frame
}
