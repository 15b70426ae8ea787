package spine

import "sort"

type skinKey struct {
	slot int
	name string
}

// SkinEntry is one (slot, name) → attachment mapping in a Skin.
type SkinEntry struct {
	SlotIndex  int
	Name       string
	Attachment Attachment
}

// Skin maps attachment names per slot to attachment templates.
type Skin struct {
	Name        string
	attachments map[skinKey]Attachment
}

// NewSkin creates an empty skin.
func NewSkin(name string) *Skin {
	return &Skin{Name: name, attachments: make(map[skinKey]Attachment)}
}

// SetAttachment adds or replaces the attachment for the slot and name.
func (s *Skin) SetAttachment(slotIndex int, name string, a Attachment) {
	s.attachments[skinKey{slotIndex, name}] = a
}

// Attachment returns the attachment for the slot and name, or nil.
func (s *Skin) Attachment(slotIndex int, name string) Attachment {
	return s.attachments[skinKey{slotIndex, name}]
}

// RemoveAttachment deletes the attachment for the slot and name.
func (s *Skin) RemoveAttachment(slotIndex int, name string) {
	delete(s.attachments, skinKey{slotIndex, name})
}

// Entries returns all mappings ordered by slot index, then name.
func (s *Skin) Entries() []SkinEntry {
	out := make([]SkinEntry, 0, len(s.attachments))
	for k, a := range s.attachments {
		out = append(out, SkinEntry{SlotIndex: k.slot, Name: k.name, Attachment: a})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SlotIndex != out[j].SlotIndex {
			return out[i].SlotIndex < out[j].SlotIndex
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// attachAll swaps in this skin's attachments for every slot currently showing
// an attachment from old under the same name.
func (s *Skin) attachAll(sk *Skeleton, old *Skin) {
	for k, a := range old.attachments {
		slot := sk.Slots[k.slot]
		if slot.attachment != a {
			continue
		}
		if na := s.Attachment(k.slot, k.name); na != nil {
			slot.SetAttachment(na)
		}
	}
}
