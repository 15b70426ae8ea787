package spine

// BoneData is the setup-pose template for a bone. Shared read-only across
// every Skeleton built from the same SkeletonData.
type BoneData struct {
	Index  int
	Name   string
	Parent *BoneData
	Length float64

	// Setup-pose local transform. Rotation and shear are in degrees.
	X, Y           float64
	Rotation       float64
	ScaleX, ScaleY float64
	ShearX, ShearY float64
}

// NewBoneData creates bone data with unit scale.
func NewBoneData(index int, name string, parent *BoneData) *BoneData {
	return &BoneData{Index: index, Name: name, Parent: parent, ScaleX: 1, ScaleY: 1}
}

// Bone is a per-instance node in a skeleton's transform hierarchy.
//
// The world matrix uses Spine's convention:
//
//	worldX = A*x + B*y + WorldX
//	worldY = C*x + D*y + WorldY
//
// World fields are normally written by an external animation system; the
// generator only reads them.
type Bone struct {
	Data     *BoneData
	Skeleton *Skeleton
	Parent   *Bone
	children []*Bone

	// Local transform (degrees for rotation and shear).
	X, Y           float64
	Rotation       float64
	ScaleX, ScaleY float64
	ShearX, ShearY float64

	// World transform.
	A, B, C, D     float64
	WorldX, WorldY float64

	// Active is false for bones excluded by the current skin. Slots on
	// inactive bones draw nothing.
	Active bool
}

// NewBone creates a bone in its setup pose with an identity world transform.
// skeleton and parent may be nil for standalone bones.
func NewBone(data *BoneData, skeleton *Skeleton, parent *Bone) *Bone {
	b := &Bone{
		Data:     data,
		Skeleton: skeleton,
		Parent:   parent,
		A:        1,
		D:        1,
		Active:   true,
	}
	if parent != nil {
		parent.children = append(parent.children, b)
	}
	b.SetToSetupPose()
	return b
}

// SetToSetupPose copies the local transform from the bone data.
func (b *Bone) SetToSetupPose() {
	d := b.Data
	b.X = d.X
	b.Y = d.Y
	b.Rotation = d.Rotation
	b.ScaleX = d.ScaleX
	b.ScaleY = d.ScaleY
	b.ShearX = d.ShearX
	b.ShearY = d.ShearY
}

// Children returns the bone's direct children. The returned slice MUST NOT be
// mutated.
func (b *Bone) Children() []*Bone {
	return b.children
}

// UpdateWorldTransform recomputes the world transform of this bone and all of
// its descendants from their local transforms.
func (b *Bone) UpdateWorldTransform() {
	updateBoneTree(b)
}

// SetWorldTransform sets the world matrix directly, as an external poser
// would.
func (b *Bone) SetWorldTransform(a, bb, c, d, worldX, worldY float64) {
	b.A, b.B, b.C, b.D = a, bb, c, d
	b.WorldX, b.WorldY = worldX, worldY
}
