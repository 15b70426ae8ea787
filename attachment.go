package spine

// AttachmentKind identifies an attachment variant.
type AttachmentKind uint8

const (
	AttachmentRegion      AttachmentKind = iota // textured quad
	AttachmentMesh                              // textured triangle mesh, rigid or weighted
	AttachmentClipping                          // clip polygon, never drawn
	AttachmentBoundingBox                       // hit polygon, never drawn
)

// String returns the kind's name.
func (k AttachmentKind) String() string {
	switch k {
	case AttachmentRegion:
		return "region"
	case AttachmentMesh:
		return "mesh"
	case AttachmentClipping:
		return "clipping"
	case AttachmentBoundingBox:
		return "boundingbox"
	default:
		return "unknown"
	}
}

// Attachment is a shape template bound to a slot. The set of implementations
// is closed: *RegionAttachment, *MeshAttachment, *ClippingAttachment and
// *BoundingBoxAttachment. Attachments are immutable templates shared across
// skeleton instances except for their cached region data.
type Attachment interface {
	Name() string
	Kind() AttachmentKind
	attachment()
}

// VertexData is the local vertex layout of a vertex attachment.
//
// Rigid layout: Bones is nil and Vertices holds x,y pairs in the slot bone's
// space. Weighted layout: Bones holds, per vertex, the influence count
// followed by that many skeleton bone indices; Vertices holds x,y,weight
// triples for every influence.
type VertexData struct {
	Bones               []int
	Vertices            []float64
	WorldVerticesLength int
}

// Weighted reports whether the vertices are bound to multiple bones.
func (d *VertexData) Weighted() bool {
	return d.Bones != nil
}

// VertexAttachment is embedded by every attachment whose shape is a vertex
// list. The VertexData pointer may be shared with a parent mesh.
type VertexAttachment struct {
	ID   int
	name string
	*VertexData

	// TimelineAttachment is the attachment whose deform timelines apply to
	// this one. Defaults to the attachment itself.
	TimelineAttachment Attachment
}

// Name returns the attachment name.
func (v *VertexAttachment) Name() string { return v.name }

func (v *VertexAttachment) attachment() {}

// ComputeWorldVertices transforms count floats of local vertices, starting at
// float index start, into world space. Results are written to out at offset,
// advancing by stride floats per vertex.
func (v *VertexAttachment) ComputeWorldVertices(slot *Slot, start, count int, out []float64, offset, stride int) {
	end := offset + (count>>1)*stride
	deform := slot.Deform
	vertices := v.Vertices

	if v.Bones == nil {
		if len(deform) > 0 {
			vertices = deform
		}
		bone := slot.Bone
		a, b, c, d, x, y := bone.A, bone.B, bone.C, bone.D, bone.WorldX, bone.WorldY
		for vi, w := start, offset; w < end; vi, w = vi+2, w+stride {
			vx, vy := vertices[vi], vertices[vi+1]
			out[w] = vx*a + vy*b + x
			out[w+1] = vx*c + vy*d + y
		}
		return
	}

	bonesIdx := v.Bones
	vi, skip := 0, 0
	for i := 0; i < start; i += 2 {
		n := bonesIdx[vi]
		vi += n + 1
		skip += n
	}

	sk := slot.Skeleton()
	if sk == nil {
		panic("spine: weighted attachment " + v.name + " used on a slot without a skeleton")
	}
	bones := sk.Bones

	bi := skip * 3
	fi := skip << 1
	for w := offset; w < end; w += stride {
		var wx, wy float64
		n := bonesIdx[vi]
		vi++
		n += vi
		for ; vi < n; vi, bi = vi+1, bi+3 {
			bone := bones[bonesIdx[vi]]
			vx, vy, weight := vertices[bi], vertices[bi+1], vertices[bi+2]
			if len(deform) > 0 {
				vx += deform[fi]
				vy += deform[fi+1]
				fi += 2
			}
			wx += (vx*bone.A + vy*bone.B + bone.WorldX) * weight
			wy += (vx*bone.C + vy*bone.D + bone.WorldY) * weight
		}
		out[w] = wx
		out[w+1] = wy
	}
}

// vertexAttachmentOf returns the embedded VertexAttachment, or nil for
// region attachments and nil attachments.
func vertexAttachmentOf(a Attachment) *VertexAttachment {
	switch t := a.(type) {
	case *MeshAttachment:
		return &t.VertexAttachment
	case *ClippingAttachment:
		return &t.VertexAttachment
	case *BoundingBoxAttachment:
		return &t.VertexAttachment
	}
	return nil
}

// ClippingAttachment is a polygon that clips the geometry of every slot after
// it in draw order, up to and including EndSlot.
type ClippingAttachment struct {
	VertexAttachment
	// EndSlot is the last slot clipped. nil clips until the end of the draw
	// order.
	EndSlot *SlotData
	// Color is used only by debug drawing.
	Color Color
}

// Kind returns AttachmentClipping.
func (c *ClippingAttachment) Kind() AttachmentKind { return AttachmentClipping }

// BoundingBoxAttachment is a polygon used for hit detection. It is never
// drawn.
type BoundingBoxAttachment struct {
	VertexAttachment
	Color Color
}

// Kind returns AttachmentBoundingBox.
func (b *BoundingBoxAttachment) Kind() AttachmentKind { return AttachmentBoundingBox }
