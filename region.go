package spine

import "fmt"

// Corner order of the four region vertices and their UVs.
const (
	cornerBL = 0 // bottom-left
	cornerUL = 2 // upper-left
	cornerUR = 4 // upper-right
	cornerBR = 6 // bottom-right
)

// QuadTriangles is the fixed index pattern for a region's four vertices.
var QuadTriangles = [6]uint32{0, 1, 2, 2, 3, 0}

// RegionAttachment is a textured quad centered on (X, Y) in bone space.
//
// Geometry is cached: local corner offsets and UVs are recomputed by
// UpdateRegion, which every geometry setter schedules. Mutate geometry only
// through the setters.
type RegionAttachment struct {
	name string
	Path string

	x, y           float64
	rotation       float64
	scaleX, scaleY float64
	width, height  float64

	Color    Color
	Sequence *Sequence

	region  *TextureRegion
	offsets [8]float64
	uvs     [8]float64
	dirty   bool
}

// Name returns the attachment name.
func (r *RegionAttachment) Name() string { return r.name }

// Kind returns AttachmentRegion.
func (r *RegionAttachment) Kind() AttachmentKind { return AttachmentRegion }

func (r *RegionAttachment) attachment() {}

// X returns the local x offset from the bone.
func (r *RegionAttachment) X() float64 { return r.x }

// Y returns the local y offset from the bone.
func (r *RegionAttachment) Y() float64 { return r.y }

// Rotation returns the local rotation in degrees.
func (r *RegionAttachment) Rotation() float64 { return r.rotation }

// ScaleX returns the local x scale.
func (r *RegionAttachment) ScaleX() float64 { return r.scaleX }

// ScaleY returns the local y scale.
func (r *RegionAttachment) ScaleY() float64 { return r.scaleY }

// Width returns the authored width.
func (r *RegionAttachment) Width() float64 { return r.width }

// Height returns the authored height.
func (r *RegionAttachment) Height() float64 { return r.height }

// Region returns the current texture region, or nil.
func (r *RegionAttachment) Region() *TextureRegion { return r.region }

// SetPosition sets the local offset from the bone.
func (r *RegionAttachment) SetPosition(x, y float64) {
	r.x, r.y = x, y
	r.dirty = true
}

// SetRotation sets the local rotation in degrees.
func (r *RegionAttachment) SetRotation(deg float64) {
	r.rotation = deg
	r.dirty = true
}

// SetScale sets the local scale.
func (r *RegionAttachment) SetScale(sx, sy float64) {
	r.scaleX, r.scaleY = sx, sy
	r.dirty = true
}

// SetSize sets the authored width and height.
func (r *RegionAttachment) SetSize(w, h float64) {
	r.width, r.height = w, h
	r.dirty = true
}

// SetRegion binds a texture region.
func (r *RegionAttachment) SetRegion(region *TextureRegion) {
	r.region = region
	r.dirty = true
}

// setSequenceRegion swaps the region for a sequence frame, refreshing the
// cache immediately so UVs are never a frame stale.
func (r *RegionAttachment) setSequenceRegion(region *TextureRegion) {
	if r.region == region {
		return
	}
	r.region = region
	r.UpdateRegion()
}

// UpdateRegion recomputes the cached corner offsets and UVs. With no region
// the offsets are zero and UVs span the unit square.
func (r *RegionAttachment) UpdateRegion() {
	r.dirty = false
	reg := r.region
	if reg == nil {
		r.offsets = [8]float64{}
		r.uvs = [8]float64{0, 1, 0, 0, 1, 0, 1, 1}
		return
	}

	ow, oh := float64(reg.OriginalWidth), float64(reg.OriginalHeight)
	if ow == 0 {
		ow = r.width
	}
	if oh == 0 {
		oh = r.height
	}
	var regionScaleX, regionScaleY float64
	if ow != 0 {
		regionScaleX = r.width / ow * r.scaleX
	}
	if oh != 0 {
		regionScaleY = r.height / oh * r.scaleY
	}
	rw, rh := float64(reg.Width), float64(reg.Height)
	if rw == 0 && rh == 0 {
		rw, rh = ow, oh
	}

	localX := -r.width/2*r.scaleX + reg.OffsetX*regionScaleX
	localY := -r.height/2*r.scaleY + reg.OffsetY*regionScaleY
	localX2 := localX + rw*regionScaleX
	localY2 := localY + rh*regionScaleY

	sin, cos := sinCosDeg(r.rotation)
	x, y := r.x, r.y
	localXCos := localX*cos + x
	localXSin := localX * sin
	localYCos := localY*cos + y
	localYSin := localY * sin
	localX2Cos := localX2*cos + x
	localX2Sin := localX2 * sin
	localY2Cos := localY2*cos + y
	localY2Sin := localY2 * sin

	o := &r.offsets
	o[cornerBL] = localXCos - localYSin
	o[cornerBL+1] = localYCos + localXSin
	o[cornerUL] = localXCos - localY2Sin
	o[cornerUL+1] = localY2Cos + localXSin
	o[cornerUR] = localX2Cos - localY2Sin
	o[cornerUR+1] = localY2Cos + localX2Sin
	o[cornerBR] = localX2Cos - localYSin
	o[cornerBR+1] = localYCos + localX2Sin

	uv := &r.uvs
	if reg.Degrees == 90 {
		uv[cornerBL], uv[cornerBL+1] = reg.U2, reg.V2
		uv[cornerUL], uv[cornerUL+1] = reg.U, reg.V2
		uv[cornerUR], uv[cornerUR+1] = reg.U, reg.V
		uv[cornerBR], uv[cornerBR+1] = reg.U2, reg.V
	} else {
		uv[cornerBL], uv[cornerBL+1] = reg.U, reg.V2
		uv[cornerUL], uv[cornerUL+1] = reg.U, reg.V
		uv[cornerUR], uv[cornerUR+1] = reg.U2, reg.V
		uv[cornerBR], uv[cornerBR+1] = reg.U2, reg.V2
	}
}

// Offsets returns the cached local corner offsets (BL, UL, UR, BR),
// recomputing them first if geometry changed.
func (r *RegionAttachment) Offsets() [8]float64 {
	if r.dirty {
		r.UpdateRegion()
	}
	return r.offsets
}

// UVs returns the cached corner UVs in the same order as Offsets.
func (r *RegionAttachment) UVs() [8]float64 {
	if r.dirty {
		r.UpdateRegion()
	}
	return r.uvs
}

// ComputeWorldVertices writes the four corners in world space, BL, UL, UR, BR,
// to out starting at offset and advancing by stride floats per vertex.
// A bound sequence is applied first. Returns an error wrapping ErrNoRegion
// when no region is bound.
func (r *RegionAttachment) ComputeWorldVertices(slot *Slot, out []float64, offset, stride int) error {
	if r.Sequence != nil {
		r.Sequence.Apply(slot, r)
	}
	if r.region == nil {
		return fmt.Errorf("spine: region attachment %q: %w", r.name, ErrNoRegion)
	}
	if r.dirty {
		r.UpdateRegion()
	}

	bone := slot.Bone
	x, y := bone.WorldX, bone.WorldY
	a, b, c, d := bone.A, bone.B, bone.C, bone.D
	o := &r.offsets
	for i := 0; i < 8; i += 2 {
		ox, oy := o[i], o[i+1]
		out[offset] = ox*a + oy*b + x
		out[offset+1] = ox*c + oy*d + y
		offset += stride
	}
	return nil
}
