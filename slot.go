package spine

// SlotData is the setup-pose template for a slot.
type SlotData struct {
	Index    int
	Name     string
	BoneData *BoneData

	Color Color
	// DarkColor enables two-color tinting when non-nil. Alpha is ignored.
	DarkColor      *Color
	AttachmentName string
	BlendMode      BlendMode
}

// NewSlotData creates slot data with a white setup color.
func NewSlotData(index int, name string, bone *BoneData) *SlotData {
	return &SlotData{Index: index, Name: name, BoneData: bone, Color: ColorWhite}
}

// Slot binds a bone to a swappable attachment plus tint and blend state.
type Slot struct {
	Data *SlotData
	Bone *Bone

	Color Color
	// DarkColor is the optional two-color tint. nil means no dark tint.
	DarkColor *Color

	// SequenceIndex selects the sequence frame for the current attachment.
	// -1 uses the sequence's setup index.
	SequenceIndex int

	// Deform holds per-vertex offsets (weighted) or replacement positions
	// (rigid) for vertex attachments. Empty means no deform.
	Deform []float64

	attachment Attachment
}

// NewSlot creates a slot in its setup color. The attachment is resolved by
// Skeleton.SetSlotsToSetupPose.
func NewSlot(data *SlotData, bone *Bone) *Slot {
	s := &Slot{Data: data, Bone: bone, SequenceIndex: -1}
	s.setupColors()
	return s
}

// Skeleton returns the skeleton the slot's bone belongs to.
func (s *Slot) Skeleton() *Skeleton {
	return s.Bone.Skeleton
}

// BlendMode returns the slot's blend mode.
func (s *Slot) BlendMode() BlendMode {
	return s.Data.BlendMode
}

// Attachment returns the current attachment, or nil.
func (s *Slot) Attachment() Attachment {
	return s.attachment
}

// SetAttachment swaps the slot's attachment. The sequence index is reset, and
// the deform is cleared unless both attachments share a timeline attachment.
func (s *Slot) SetAttachment(a Attachment) {
	if s.attachment == a {
		return
	}
	prev := vertexAttachmentOf(s.attachment)
	next := vertexAttachmentOf(a)
	if prev == nil || next == nil || prev.TimelineAttachment != next.TimelineAttachment {
		s.Deform = s.Deform[:0]
	}
	s.attachment = a
	s.SequenceIndex = -1
}

// SetToSetupPose restores the setup colors and the setup attachment.
func (s *Slot) SetToSetupPose() {
	s.setupColors()
	if s.Data.AttachmentName == "" {
		s.SetAttachment(nil)
		return
	}
	s.attachment = nil
	if sk := s.Skeleton(); sk != nil {
		s.SetAttachment(sk.GetAttachment(s.Data.Index, s.Data.AttachmentName))
	}
}

func (s *Slot) setupColors() {
	s.Color = s.Data.Color
	if s.Data.DarkColor != nil {
		dc := *s.Data.DarkColor
		s.DarkColor = &dc
	} else {
		s.DarkColor = nil
	}
}
