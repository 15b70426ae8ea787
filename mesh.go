package spine

import "fmt"

// MeshShape is the geometry shared between a mesh and its linked meshes.
// Linked meshes hold the same *MeshShape, so edits made upstream stay in sync.
type MeshShape struct {
	VertexData

	// RegionUVs are per-vertex texture coordinates normalized to the
	// region's untrimmed, unrotated rect.
	RegionUVs  []float64
	Triangles  []uint32
	HullLength int
	Edges      []int

	// Width and Height are the nonessential authored size.
	Width, Height float64
}

// VertexCount returns the number of vertices in the mesh.
func (s *MeshShape) VertexCount() int {
	return s.WorldVerticesLength >> 1
}

// MeshAttachment is a textured triangle mesh, rigid or weighted.
type MeshAttachment struct {
	VertexAttachment
	Path     string
	Color    Color
	Sequence *Sequence

	shape      *MeshShape
	parentMesh *MeshAttachment
	region     *TextureRegion
	uvs        []float64
	dirty      bool
}

// Kind returns AttachmentMesh.
func (m *MeshAttachment) Kind() AttachmentKind { return AttachmentMesh }

// Shape returns the (possibly shared) geometry.
func (m *MeshAttachment) Shape() *MeshShape { return m.shape }

// Triangles returns the mesh's triangle indices.
func (m *MeshAttachment) Triangles() []uint32 { return m.shape.Triangles }

// Region returns the current texture region, or nil.
func (m *MeshAttachment) Region() *TextureRegion { return m.region }

// SetRegion binds a texture region. UVs are recomputed before the next use.
func (m *MeshAttachment) SetRegion(region *TextureRegion) {
	m.region = region
	m.dirty = true
}

// ParentMesh returns the mesh whose geometry this linked mesh shares, or nil.
func (m *MeshAttachment) ParentMesh() *MeshAttachment { return m.parentMesh }

// SetParentMesh makes m a linked mesh sharing parent's geometry by
// reference. Only the region, path, color, name and sequence stay distinct.
func (m *MeshAttachment) SetParentMesh(parent *MeshAttachment) {
	m.parentMesh = parent
	if parent == nil {
		return
	}
	m.shape = parent.shape
	m.VertexData = &parent.shape.VertexData
	m.dirty = true
}

func (m *MeshAttachment) setSequenceRegion(region *TextureRegion) {
	if m.region == region {
		return
	}
	m.region = region
	m.UpdateRegion()
}

// UVs returns the page-space texture coordinates, recomputing them first if
// the region changed.
func (m *MeshAttachment) UVs() []float64 {
	if m.dirty || len(m.uvs) != len(m.shape.RegionUVs) {
		m.UpdateRegion()
	}
	return m.uvs
}

// UpdateRegion maps RegionUVs into page texture coordinates, honouring
// rotation and trim. With no region the UVs are copied unchanged.
func (m *MeshAttachment) UpdateRegion() {
	m.dirty = false
	regionUVs := m.shape.RegionUVs
	n := len(regionUVs)
	if cap(m.uvs) < n {
		m.uvs = make([]float64, n)
	}
	m.uvs = m.uvs[:n]
	uvs := m.uvs

	reg := m.region
	if reg == nil {
		copy(uvs, regionUVs)
		return
	}

	u, v := reg.U, reg.V
	var width, height float64
	page := reg.Page
	if page == nil || page.Width == 0 || page.Height == 0 || reg.OriginalWidth == 0 || reg.OriginalHeight == 0 {
		width = reg.U2 - u
		height = reg.V2 - v
		for i := 0; i < n; i += 2 {
			uvs[i] = u + regionUVs[i]*width
			uvs[i+1] = v + regionUVs[i+1]*height
		}
		return
	}

	tw, th := float64(page.Width), float64(page.Height)
	ow, oh := float64(reg.OriginalWidth), float64(reg.OriginalHeight)
	rw, rh := float64(reg.Width), float64(reg.Height)

	switch reg.Degrees {
	case 90:
		u -= (oh - reg.OffsetY - rh) / tw
		v -= (ow - reg.OffsetX - rw) / th
		width = oh / tw
		height = ow / th
		for i := 0; i < n; i += 2 {
			uvs[i] = u + regionUVs[i+1]*width
			uvs[i+1] = v + (1-regionUVs[i])*height
		}
		return
	case 180:
		u -= (ow - reg.OffsetX - rw) / tw
		v -= reg.OffsetY / th
		width = ow / tw
		height = oh / th
		for i := 0; i < n; i += 2 {
			uvs[i] = u + (1-regionUVs[i])*width
			uvs[i+1] = v + (1-regionUVs[i+1])*height
		}
		return
	case 270:
		u -= reg.OffsetY / tw
		v -= reg.OffsetX / th
		width = oh / tw
		height = ow / th
		for i := 0; i < n; i += 2 {
			uvs[i] = u + (1-regionUVs[i+1])*width
			uvs[i+1] = v + regionUVs[i]*height
		}
		return
	}

	u -= reg.OffsetX / tw
	v -= (oh - reg.OffsetY - rh) / th
	width = ow / tw
	height = oh / th
	for i := 0; i < n; i += 2 {
		uvs[i] = u + regionUVs[i]*width
		uvs[i+1] = v + regionUVs[i+1]*height
	}
}

// prepare applies the sequence and validates the region before vertex
// computation.
func (m *MeshAttachment) prepare(slot *Slot) error {
	if m.Sequence != nil {
		m.Sequence.Apply(slot, m)
	}
	if m.region == nil {
		return fmt.Errorf("spine: mesh attachment %q: %w", m.name, ErrNoRegion)
	}
	return nil
}
