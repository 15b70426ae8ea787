package spine

import "testing"

func TestSequencePath(t *testing.T) {
	s := &Sequence{Start: 1, Digits: 3}
	tests := []struct {
		index int
		want  string
	}{
		{0, "walk/001"},
		{8, "walk/009"},
		{9, "walk/010"},
		{998, "walk/999"},
		{999, "walk/1000"},
	}
	for _, tt := range tests {
		if got := s.Path("walk/", tt.index); got != tt.want {
			t.Errorf("Path(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}

	if got := (&Sequence{}).Path("fx", 4); got != "fx4" {
		t.Errorf("unpadded Path = %q, want %q", got, "fx4")
	}
}

func TestSequenceApplySelectsFrame(t *testing.T) {
	rt := NewRuntime()
	page := testPage("p")
	frames := make([]*TextureRegion, 3)
	for i := range frames {
		frames[i] = &TextureRegion{
			Page: page, U: float64(i) * 0.25, V: 0, U2: float64(i)*0.25 + 0.25, V2: 0.25,
			Width: 10, Height: 10, OriginalWidth: 10, OriginalHeight: 10,
		}
	}
	seq := rt.NewSequence(frames...)
	seq.SetupIndex = 1

	sk := newTestSkeleton("a")
	slot := sk.Slots[0]
	att := rt.NewRegionAttachment("fx", frames[0])
	att.Sequence = seq
	att.SetSize(10, 10)
	slot.SetAttachment(att)

	var out [8]float64
	if err := att.ComputeWorldVertices(slot, out[:], 0, 2); err != nil {
		t.Fatal(err)
	}
	if att.Region() != frames[1] {
		t.Errorf("SequenceIndex -1 should show the setup frame")
	}
	uvs := att.UVs()
	assertNear(t, "setup u", uvs[0], 0.25)

	slot.SequenceIndex = 0
	att.ComputeWorldVertices(slot, out[:], 0, 2)
	if att.Region() != frames[0] {
		t.Error("SequenceIndex 0 should show frame 0")
	}

	slot.SequenceIndex = 10
	att.ComputeWorldVertices(slot, out[:], 0, 2)
	if att.Region() != frames[2] {
		t.Error("out of range index should clamp to the last frame")
	}
	uvs = att.UVs()
	assertNear(t, "clamped u", uvs[0], 0.5)
}

func TestSequenceIDsAreUnique(t *testing.T) {
	rt := NewRuntime()
	a, b := rt.NewSequence(), rt.NewSequence()
	if a.ID == b.ID {
		t.Errorf("sequence IDs should differ, both %d", a.ID)
	}
}

func TestSequenceApplyEmpty(t *testing.T) {
	rt := NewRuntime()
	sk := newTestSkeleton("a")
	region := testRegion(testPage("p"), 4, 4)
	att := rt.NewRegionAttachment("x", region)
	(&Sequence{}).Apply(sk.Slots[0], att)
	if att.Region() != region {
		t.Error("empty sequence should leave the region alone")
	}
}

func TestSequenceResolve(t *testing.T) {
	page := testPage("p")
	atlas := NewAtlas(page)
	atlas.AddRegion(RegionSpec{Name: "run0", Width: 8, Height: 8})
	atlas.AddRegion(RegionSpec{Name: "run1", X: 8, Width: 8, Height: 8})

	seq := &Sequence{Regions: make([]*TextureRegion, 3)}
	seq.Resolve(atlas, "run")
	if seq.Regions[0] != atlas.Region("run0") || seq.Regions[1] != atlas.Region("run1") {
		t.Error("Resolve should look up frames by path")
	}
	if seq.Regions[2] != nil {
		t.Error("missing frame should stay nil")
	}
}
