package spine

import "fmt"

// SkeletonData is the immutable template shared by skeleton instances.
// Bones must be ordered parents first.
type SkeletonData struct {
	Name        string
	Bones       []*BoneData
	Slots       []*SlotData
	DefaultSkin *Skin
	Skins       []*Skin
}

// FindBone returns the bone data with the given name, or nil.
func (d *SkeletonData) FindBone(name string) *BoneData {
	for _, b := range d.Bones {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// FindSlot returns the slot data with the given name, or nil.
func (d *SkeletonData) FindSlot(name string) *SlotData {
	for _, s := range d.Slots {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// FindSkin returns the skin with the given name, or nil.
func (d *SkeletonData) FindSkin(name string) *Skin {
	if d.DefaultSkin != nil && d.DefaultSkin.Name == name {
		return d.DefaultSkin
	}
	for _, s := range d.Skins {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// PoseListener observes skeleton pose updates.
type PoseListener interface {
	PoseUpdated(s *Skeleton)
}

// PoseListenerFunc adapts a function to PoseListener.
type PoseListenerFunc func(s *Skeleton)

// PoseUpdated calls f(s).
func (f PoseListenerFunc) PoseUpdated(s *Skeleton) { f(s) }

// Skeleton is a posed instance of SkeletonData. All fields are exclusively
// owned by this instance; attachments are shared templates.
type Skeleton struct {
	Data      *SkeletonData
	Bones     []*Bone
	Slots     []*Slot
	DrawOrder []*Slot
	Skin      *Skin

	Color          Color
	X, Y           float64
	ScaleX, ScaleY float64

	listeners []PoseListener
}

// NewSkeleton instantiates bones and slots from data and applies the setup
// pose. World transforms are computed once so the skeleton is drawable
// immediately.
func NewSkeleton(data *SkeletonData) *Skeleton {
	s := &Skeleton{
		Data:   data,
		Color:  ColorWhite,
		ScaleX: 1,
		ScaleY: 1,
	}

	s.Bones = make([]*Bone, len(data.Bones))
	for i, bd := range data.Bones {
		var parent *Bone
		if bd.Parent != nil {
			parent = s.Bones[bd.Parent.Index]
		}
		s.Bones[i] = NewBone(bd, s, parent)
	}

	s.Slots = make([]*Slot, len(data.Slots))
	s.DrawOrder = make([]*Slot, len(data.Slots))
	for i, sd := range data.Slots {
		slot := NewSlot(sd, s.Bones[sd.BoneData.Index])
		s.Slots[i] = slot
		s.DrawOrder[i] = slot
	}

	s.SetSlotsToSetupPose()
	s.updateWorld()
	return s
}

// RootBone returns the first bone, or nil for an empty skeleton.
func (s *Skeleton) RootBone() *Bone {
	if len(s.Bones) == 0 {
		return nil
	}
	return s.Bones[0]
}

// FindBone returns the bone with the given name, or nil.
func (s *Skeleton) FindBone(name string) *Bone {
	for _, b := range s.Bones {
		if b.Data.Name == name {
			return b
		}
	}
	return nil
}

// FindSlot returns the slot with the given name, or nil.
func (s *Skeleton) FindSlot(name string) *Slot {
	for _, sl := range s.Slots {
		if sl.Data.Name == name {
			return sl
		}
	}
	return nil
}

// UpdateWorldTransform recomputes every bone's world transform from its local
// transform, then notifies pose listeners in registration order.
func (s *Skeleton) UpdateWorldTransform() {
	s.updateWorld()
	for _, l := range s.listeners {
		l.PoseUpdated(s)
	}
}

func (s *Skeleton) updateWorld() {
	for _, b := range s.Bones {
		updateWorldTransform(b)
	}
}

// AddPoseListener registers l to be notified after each UpdateWorldTransform.
func (s *Skeleton) AddPoseListener(l PoseListener) {
	s.listeners = append(s.listeners, l)
}

// RemovePoseListener unregisters l. No-op if l was never added.
func (s *Skeleton) RemovePoseListener(l PoseListener) {
	for i, x := range s.listeners {
		if x == l {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}

// SetToSetupPose resets bones, slots and draw order to the setup pose.
func (s *Skeleton) SetToSetupPose() {
	s.SetBonesToSetupPose()
	s.SetSlotsToSetupPose()
}

// SetBonesToSetupPose resets every bone's local transform.
func (s *Skeleton) SetBonesToSetupPose() {
	for _, b := range s.Bones {
		b.SetToSetupPose()
	}
}

// SetSlotsToSetupPose restores the setup draw order, colors and attachments.
func (s *Skeleton) SetSlotsToSetupPose() {
	copy(s.DrawOrder, s.Slots)
	for _, slot := range s.Slots {
		slot.SetToSetupPose()
	}
}

// SetSkin changes the active skin. Slots showing an attachment from the old
// skin get the new skin's attachment of the same name; with no old skin, each
// slot's setup attachment is taken from the new skin.
func (s *Skeleton) SetSkin(skin *Skin) {
	if s.Skin == skin {
		return
	}
	if skin != nil {
		if s.Skin != nil {
			skin.attachAll(s, s.Skin)
		} else {
			for _, slot := range s.Slots {
				if name := slot.Data.AttachmentName; name != "" {
					if a := skin.Attachment(slot.Data.Index, name); a != nil {
						slot.SetAttachment(a)
					}
				}
			}
		}
	}
	s.Skin = skin
}

// GetAttachment looks up an attachment in the active skin, then the default
// skin. Returns nil when neither has it.
func (s *Skeleton) GetAttachment(slotIndex int, name string) Attachment {
	if s.Skin != nil {
		if a := s.Skin.Attachment(slotIndex, name); a != nil {
			return a
		}
	}
	if s.Data.DefaultSkin != nil {
		return s.Data.DefaultSkin.Attachment(slotIndex, name)
	}
	return nil
}

// SetAttachment sets the named slot's attachment by name. An empty
// attachment name clears the slot.
func (s *Skeleton) SetAttachment(slotName, attachmentName string) error {
	slot := s.FindSlot(slotName)
	if slot == nil {
		return fmt.Errorf("spine: set attachment %q: %w: %q", attachmentName, ErrUnknownSlot, slotName)
	}
	if attachmentName == "" {
		slot.SetAttachment(nil)
		return nil
	}
	a := s.GetAttachment(slot.Data.Index, attachmentName)
	if a == nil {
		return fmt.Errorf("spine: slot %q: %w: %q", slotName, ErrUnknownAttachment, attachmentName)
	}
	slot.SetAttachment(a)
	return nil
}
