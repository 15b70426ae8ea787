package spine

import (
	"strconv"
	"strings"
)

// sequenced is implemented by attachments whose region can be driven by a
// Sequence.
type sequenced interface {
	Attachment
	setSequenceRegion(r *TextureRegion)
}

// Sequence swaps an attachment's texture region frame by frame.
type Sequence struct {
	ID      int
	Regions []*TextureRegion

	// Start is the number of the first frame, used by Path.
	Start int
	// Digits is the zero-padded width of frame numbers, used by Path.
	Digits int
	// SetupIndex is the frame shown when the slot's SequenceIndex is -1.
	SetupIndex int
}

// Apply resolves the slot's frame and binds its region to a. When the region
// changes, a's cached UVs and offsets are recomputed before returning.
func (s *Sequence) Apply(slot *Slot, a Attachment) {
	if len(s.Regions) == 0 {
		return
	}
	index := slot.SequenceIndex
	if index == -1 {
		index = s.SetupIndex
	}
	if index >= len(s.Regions) {
		index = len(s.Regions) - 1
	}
	if index < 0 {
		index = 0
	}
	if t, ok := a.(sequenced); ok {
		t.setSequenceRegion(s.Regions[index])
	}
}

// Path returns the region name for frame index: basePath followed by the
// zero-padded frame number.
func (s *Sequence) Path(basePath string, index int) string {
	frame := strconv.Itoa(s.Start + index)
	var sb strings.Builder
	sb.WriteString(basePath)
	for i := s.Digits - len(frame); i > 0; i-- {
		sb.WriteByte('0')
	}
	sb.WriteString(frame)
	return sb.String()
}

// Resolve fills Regions from atlas using Path for each frame. Missing frames
// leave nil entries.
func (s *Sequence) Resolve(atlas *Atlas, basePath string) {
	for i := range s.Regions {
		s.Regions[i] = atlas.Region(s.Path(basePath, i))
	}
}
