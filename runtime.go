package spine

import "fmt"

// Runtime owns state that would otherwise be process-wide: attachment and
// sequence ID counters and a cache of named skeleton data. Create one per
// application (or per test) and pass it to attachment constructors.
type Runtime struct {
	nextAttachmentID int
	nextSequenceID   int
	skeletons        map[string]*SkeletonData
	closed           bool
}

// NewRuntime creates an empty runtime context.
func NewRuntime() *Runtime {
	return &Runtime{skeletons: make(map[string]*SkeletonData)}
}

func (rt *Runtime) attachmentID() int {
	id := rt.nextAttachmentID
	rt.nextAttachmentID++
	return id
}

// NewRegionAttachment creates a region attachment with unit scale, white
// color, and the given region.
func (rt *Runtime) NewRegionAttachment(name string, region *TextureRegion) *RegionAttachment {
	r := &RegionAttachment{
		name:   name,
		Path:   name,
		scaleX: 1,
		scaleY: 1,
		Color:  ColorWhite,
		region: region,
		dirty:  true,
	}
	if region != nil {
		r.width = float64(region.OriginalWidth)
		r.height = float64(region.OriginalHeight)
	}
	return r
}

// NewMeshAttachment creates a mesh owning shape.
func (rt *Runtime) NewMeshAttachment(name string, region *TextureRegion, shape *MeshShape) *MeshAttachment {
	if shape.WorldVerticesLength == 0 {
		shape.WorldVerticesLength = len(shape.RegionUVs)
	}
	m := &MeshAttachment{
		VertexAttachment: VertexAttachment{
			ID:         rt.attachmentID(),
			name:       name,
			VertexData: &shape.VertexData,
		},
		Path:   name,
		Color:  ColorWhite,
		shape:  shape,
		region: region,
		dirty:  true,
	}
	m.TimelineAttachment = m
	return m
}

// NewLinkedMesh creates a mesh sharing parent's geometry. With
// inheritTimelines, deform timelines keyed on parent also drive the new mesh.
func (rt *Runtime) NewLinkedMesh(name string, region *TextureRegion, parent *MeshAttachment, inheritTimelines bool) *MeshAttachment {
	m := &MeshAttachment{
		VertexAttachment: VertexAttachment{
			ID:   rt.attachmentID(),
			name: name,
		},
		Path:   name,
		Color:  parent.Color,
		region: region,
	}
	m.SetParentMesh(parent)
	if inheritTimelines {
		m.TimelineAttachment = parent.TimelineAttachment
	} else {
		m.TimelineAttachment = m
	}
	return m
}

// NewClippingAttachment creates a rigid clip polygon from x,y pairs in the
// slot bone's space. end may be nil to clip to the end of the draw order.
func (rt *Runtime) NewClippingAttachment(name string, vertices []float64, end *SlotData) *ClippingAttachment {
	c := &ClippingAttachment{
		VertexAttachment: VertexAttachment{
			ID:   rt.attachmentID(),
			name: name,
			VertexData: &VertexData{
				Vertices:            vertices,
				WorldVerticesLength: len(vertices),
			},
		},
		EndSlot: end,
		Color:   Color{0.2275, 0.2275, 0.8078, 1},
	}
	c.TimelineAttachment = c
	return c
}

// NewBoundingBoxAttachment creates a rigid polygon from x,y pairs.
func (rt *Runtime) NewBoundingBoxAttachment(name string, vertices []float64) *BoundingBoxAttachment {
	b := &BoundingBoxAttachment{
		VertexAttachment: VertexAttachment{
			ID:   rt.attachmentID(),
			name: name,
			VertexData: &VertexData{
				Vertices:            vertices,
				WorldVerticesLength: len(vertices),
			},
		},
		Color: Color{0.38, 0.94, 0, 1},
	}
	b.TimelineAttachment = b
	return b
}

// NewSequence creates a sequence over regions with a unique ID.
func (rt *Runtime) NewSequence(regions ...*TextureRegion) *Sequence {
	id := rt.nextSequenceID
	rt.nextSequenceID++
	return &Sequence{ID: id, Regions: regions}
}

// Register caches data under name, replacing any previous entry.
func (rt *Runtime) Register(name string, data *SkeletonData) error {
	if rt.closed {
		return fmt.Errorf("spine: register %q: runtime closed", name)
	}
	rt.skeletons[name] = data
	return nil
}

// Lookup returns the cached data for name, or nil.
func (rt *Runtime) Lookup(name string) *SkeletonData {
	return rt.skeletons[name]
}

// Close drops every cached skeleton. The runtime rejects new registrations
// afterwards; attachments already created stay valid.
func (rt *Runtime) Close() {
	for k := range rt.skeletons {
		delete(rt.skeletons, k)
	}
	rt.closed = true
}
