package spine

import "fmt"

// batchKey is the material identity of a batch. Slots can share a draw call
// only when both fields match.
type batchKey struct {
	page  *AtlasPage
	blend BlendMode
}

// RenderBatch is one draw call: a contiguous span of a MeshBuffer sharing a
// texture page and blend mode. Indices are local to the batch's vertices.
type RenderBatch struct {
	Page  *AtlasPage
	Blend BlendMode

	VertexStart, VertexCount int // in vertices
	IndexStart, IndexCount   int
}

func (b *RenderBatch) key() batchKey {
	return batchKey{page: b.Page, blend: b.Blend}
}

// Vertices returns the batch's interleaved vertex floats within buf.
func (b *RenderBatch) Vertices(buf *MeshBuffer, layout VertexLayout) []float32 {
	s := layout.Stride()
	return buf.Vertices[b.VertexStart*s : (b.VertexStart+b.VertexCount)*s]
}

// Indices returns the batch's indices within buf.
func (b *RenderBatch) Indices(buf *MeshBuffer) []uint32 {
	return buf.Indices[b.IndexStart : b.IndexStart+b.IndexCount]
}

// BatchBuilder accumulates geometry into batches in submission order.
// Non-adjacent runs of the same material are never merged.
type BatchBuilder struct {
	layout      VertexLayout
	maxVertices int

	buf     *MeshBuffer
	batches []RenderBatch
	cur     RenderBatch
	open    bool
}

// NewBatchBuilder creates a builder for layout. maxBatchVertices caps the
// vertices of one batch (for 16-bit index hardware, use 65535); 0 means
// unlimited. The builder writes into its own buffer until Reset hands it
// another.
func NewBatchBuilder(layout VertexLayout, maxBatchVertices int) *BatchBuilder {
	return &BatchBuilder{layout: layout, maxVertices: maxBatchVertices, buf: &MeshBuffer{}}
}

// Reset discards all batches and starts writing into buf. A nil buf keeps
// writing into the current buffer after emptying it.
func (b *BatchBuilder) Reset(buf *MeshBuffer) {
	if buf == nil {
		buf = b.buf
		buf.Reset()
	}
	b.buf = buf
	b.batches = b.batches[:0]
	b.open = false
}

// Buffer returns the buffer the builder writes into.
func (b *BatchBuilder) Buffer() *MeshBuffer { return b.buf }

// Begin flushes the open batch and opens a new one for the material.
func (b *BatchBuilder) Begin(page *AtlasPage, blend BlendMode) {
	b.Flush()
	b.cur = RenderBatch{
		Page:        page,
		Blend:       blend,
		VertexStart: len(b.buf.Vertices) / b.layout.Stride(),
		IndexStart:  len(b.buf.Indices),
	}
	b.open = true
}

// Append copies vertices (interleaved per the layout) and indices into the
// open batch, offsetting indices by the batch's running vertex count. It
// fails with ErrMaterialChanged if no batch is open or the material differs,
// and with ErrBatchCapacity if the batch would exceed its vertex cap.
func (b *BatchBuilder) Append(page *AtlasPage, blend BlendMode, vertices []float32, indices []uint32) error {
	if !b.open || b.cur.key() != (batchKey{page, blend}) {
		return fmt.Errorf("spine: append %s to batch %s: %w", blend, b.cur.Blend, ErrMaterialChanged)
	}
	nv := len(vertices) / b.layout.Stride()
	if b.maxVertices > 0 && b.cur.VertexCount+nv > b.maxVertices {
		return fmt.Errorf("spine: append %d vertices to batch of %d (max %d): %w",
			nv, b.cur.VertexCount, b.maxVertices, ErrBatchCapacity)
	}

	b.buf.reserve(len(vertices), len(indices))
	b.buf.Vertices = append(b.buf.Vertices, vertices...)
	base := uint32(b.cur.VertexCount)
	for _, i := range indices {
		b.buf.Indices = append(b.buf.Indices, base+i)
	}
	b.cur.VertexCount += nv
	b.cur.IndexCount += len(indices)
	return nil
}

// Add appends geometry, first flushing the open batch when the material
// changes or the vertex cap would be exceeded.
func (b *BatchBuilder) Add(page *AtlasPage, blend BlendMode, vertices []float32, indices []uint32) error {
	nv := len(vertices) / b.layout.Stride()
	if b.maxVertices > 0 && nv > b.maxVertices {
		return fmt.Errorf("spine: %d vertices (max %d): %w", nv, b.maxVertices, ErrBatchCapacity)
	}
	if !b.open || b.cur.key() != (batchKey{page, blend}) ||
		(b.maxVertices > 0 && b.cur.VertexCount+nv > b.maxVertices) {
		b.Begin(page, blend)
	}
	return b.Append(page, blend, vertices, indices)
}

// Flush closes the open batch. Empty batches are dropped.
func (b *BatchBuilder) Flush() {
	if !b.open {
		return
	}
	b.open = false
	if b.cur.IndexCount == 0 {
		return
	}
	b.batches = append(b.batches, b.cur)
}

// Batches returns the flushed batches in emission order. The returned slice
// is reused after Reset.
func (b *BatchBuilder) Batches() []RenderBatch {
	return b.batches
}
