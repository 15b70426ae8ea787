package spine

import (
	"errors"
	"math"
	"testing"
)

// clipFixture builds slots "clip", "a", "b" on an identity root bone with a
// square clip from -10 to 10 on "clip" ending at "a".
func clipFixture(t *testing.T, polygon []float64) (*Skeleton, *ClippingAttachment) {
	t.Helper()
	rt := NewRuntime()
	sk := newTestSkeleton("clip", "a", "b")
	if polygon == nil {
		polygon = []float64{-10, -10, 10, -10, 10, 10, -10, 10}
	}
	clip := rt.NewClippingAttachment("clip", polygon, sk.Data.Slots[1])
	sk.Slots[0].SetAttachment(clip)
	return sk, clip
}

func trianglesArea(verts []float64, tris []uint32) float64 {
	var sum float64
	for i := 0; i+2 < len(tris); i += 3 {
		a, b, c := int(tris[i])*2, int(tris[i+1])*2, int(tris[i+2])*2
		sum += math.Abs(cross(verts[a], verts[a+1], verts[b], verts[b+1], verts[c], verts[c+1])) / 2
	}
	return sum
}

func TestClipperStartSquare(t *testing.T) {
	sk, clip := clipFixture(t, nil)
	var c Clipper
	if c.IsClipping() {
		t.Fatal("new clipper should be idle")
	}
	if n := c.ClipStart(sk.Slots[0], clip); n != 1 {
		t.Errorf("ClipStart = %d polygons, want 1 for a square", n)
	}
	if !c.IsClipping() {
		t.Error("clipper should be clipping after ClipStart")
	}
}

func TestClipperClockwisePolygonIsReoriented(t *testing.T) {
	sk, clip := clipFixture(t, []float64{-10, -10, -10, 10, 10, 10, 10, -10})
	var c Clipper
	c.ClipStart(sk.Slots[0], clip)
	for _, p := range c.Polygons() {
		if polygonArea(p) <= 0 {
			t.Errorf("polygon %v is not counter-clockwise", p)
		}
	}
}

func TestClipperInsidePassesThroughUnchanged(t *testing.T) {
	sk, clip := clipFixture(t, nil)
	var c Clipper
	c.ClipStart(sk.Slots[0], clip)

	verts := []float64{0, 0, 5, 0, 5, 5, 0, 5}
	uvs := []float64{0, 1, 1, 1, 1, 0, 0, 0}
	tris := []uint32{0, 1, 2, 2, 3, 0}
	c.ClipTriangles(verts, tris, uvs)

	if len(c.ClippedVertices()) != len(verts) || len(c.ClippedTriangles()) != len(tris) {
		t.Fatalf("got %d verts / %d indices, want %d / %d",
			len(c.ClippedVertices()), len(c.ClippedTriangles()), len(verts), len(tris))
	}
	for i := range verts {
		if c.ClippedVertices()[i] != verts[i] || c.ClippedUVs()[i] != uvs[i] {
			t.Errorf("vertex float %d changed", i)
		}
	}
	for i := range tris {
		if c.ClippedTriangles()[i] != tris[i] {
			t.Errorf("index %d = %d, want %d", i, c.ClippedTriangles()[i], tris[i])
		}
	}
}

func TestClipperOutsideProducesNothing(t *testing.T) {
	sk, clip := clipFixture(t, nil)
	var c Clipper
	c.ClipStart(sk.Slots[0], clip)

	c.ClipTriangles([]float64{20, 20, 30, 20, 20, 30}, []uint32{0, 1, 2}, []float64{0, 0, 1, 0, 0, 1})
	if len(c.ClippedVertices()) != 0 || len(c.ClippedTriangles()) != 0 {
		t.Errorf("outside triangle produced %d verts", len(c.ClippedVertices()))
	}
}

func TestClipperPartialTriangle(t *testing.T) {
	sk, clip := clipFixture(t, nil)
	var c Clipper
	c.ClipStart(sk.Slots[0], clip)

	verts := []float64{0, 0, 20, 0, 0, 20}
	uvs := []float64{0, 0, 1, 0, 0, 1}
	c.ClipTriangles(verts, []uint32{0, 1, 2}, uvs)

	cv, cu := c.ClippedVertices(), c.ClippedUVs()
	if got := trianglesArea(cv, c.ClippedTriangles()); math.Abs(got-100) > 1e-6 {
		t.Errorf("clipped area = %v, want 100", got)
	}
	for i := 0; i < len(cv); i += 2 {
		x, y := cv[i], cv[i+1]
		if x < -1e-9 || x > 10+1e-9 || y < -1e-9 || y > 10+1e-9 {
			t.Errorf("vertex (%v, %v) outside the clip square", x, y)
		}
		// UVs are linear in position for this triangle: uv = xy / 20.
		if math.Abs(cu[i]-x/20) > 1e-9 || math.Abs(cu[i+1]-y/20) > 1e-9 {
			t.Errorf("uv at (%v, %v) = (%v, %v), want (%v, %v)", x, y, cu[i], cu[i+1], x/20, y/20)
		}
	}
	for _, idx := range c.ClippedTriangles() {
		if int(idx) >= len(cv)/2 {
			t.Fatalf("index %d out of range", idx)
		}
	}
}

func TestClipperConcavePolygon(t *testing.T) {
	// L shape with area 300.
	sk, clip := clipFixture(t, []float64{0, 0, 20, 0, 20, 10, 10, 10, 10, 20, 0, 20})
	var c Clipper
	if n := c.ClipStart(sk.Slots[0], clip); n < 2 {
		t.Fatalf("ClipStart = %d polygons, want >= 2 for a concave shape", n)
	}
	for _, p := range c.Polygons() {
		for i := 0; i < len(p); i += 2 {
			n := len(p)
			if cross(p[i], p[i+1], p[(i+2)%n], p[(i+3)%n], p[(i+4)%n], p[(i+5)%n]) < -1e-9 {
				t.Errorf("polygon %v is not convex", p)
			}
		}
	}

	verts := []float64{-5, -5, 30, -5, 30, 30, -5, 30}
	uvs := []float64{0, 0, 1, 0, 1, 1, 0, 1}
	c.ClipTriangles(verts, []uint32{0, 1, 2, 2, 3, 0}, uvs)
	if got := trianglesArea(c.ClippedVertices(), c.ClippedTriangles()); math.Abs(got-300) > 1e-6 {
		t.Errorf("clipped area = %v, want 300", got)
	}
}

func TestClipperDegeneratePolygonHidesEverything(t *testing.T) {
	sk, clip := clipFixture(t, []float64{0, 0, 10, 0})
	var c Clipper
	if n := c.ClipStart(sk.Slots[0], clip); n != 0 {
		t.Errorf("ClipStart = %d, want 0 polygons", n)
	}
	c.ClipTriangles([]float64{0, 0, 5, 0, 0, 5}, []uint32{0, 1, 2}, []float64{0, 0, 1, 0, 0, 1})
	if len(c.ClippedTriangles()) != 0 {
		t.Error("degenerate clip should hide clipped geometry")
	}
}

func TestClipperNestedStartIgnored(t *testing.T) {
	sk, clip := clipFixture(t, nil)
	rt := NewRuntime()
	other := rt.NewClippingAttachment("other", []float64{0, 0, 1, 0, 1, 1}, nil)

	var c Clipper
	c.ClipStart(sk.Slots[0], clip)
	if n := c.ClipStart(sk.Slots[1], other); n != 0 {
		t.Errorf("nested ClipStart = %d, want 0", n)
	}
	// The original clip still ends at "a".
	c.ClipEndWithSlot(sk.Slots[1])
	if c.IsClipping() {
		t.Error("clip should end at its end slot")
	}
}

func TestClipperEndWithSlot(t *testing.T) {
	sk, clip := clipFixture(t, nil)
	var c Clipper
	c.ClipStart(sk.Slots[0], clip)

	c.ClipEndWithSlot(sk.Slots[0])
	if !c.IsClipping() {
		t.Fatal("clip slot itself should not end clipping")
	}
	c.ClipEndWithSlot(sk.Slots[1])
	if c.IsClipping() {
		t.Error("end slot should end clipping")
	}
	if len(c.Polygons()) != 0 {
		t.Error("polygons should be cleared")
	}
}

func TestClipperNilEndSlotClipsToEnd(t *testing.T) {
	rt := NewRuntime()
	sk := newTestSkeleton("clip", "a")
	clip := rt.NewClippingAttachment("clip", []float64{-1, -1, 1, -1, 1, 1}, nil)

	var c Clipper
	c.ClipStart(sk.Slots[0], clip)
	for _, s := range sk.Slots {
		c.ClipEndWithSlot(s)
	}
	if !c.IsClipping() {
		t.Fatal("a clip without end slot runs to the end of the draw order")
	}
	c.ClipEnd()
	if c.IsClipping() {
		t.Error("ClipEnd should reset to idle")
	}
}

func TestClipperBeginSlotDetectsSkippedEnd(t *testing.T) {
	sk := newTestSkeleton("a", "b")
	var c Clipper
	if err := c.BeginSlot(sk.Slots[0]); err != nil {
		t.Fatalf("first BeginSlot: %v", err)
	}
	err := c.BeginSlot(sk.Slots[1])
	if !errors.Is(err, ErrClipEndSkipped) {
		t.Fatalf("err = %v, want ErrClipEndSkipped", err)
	}

	c.ClipEndWithSlot(sk.Slots[1])
	if err := c.BeginSlot(sk.Slots[0]); err != nil {
		t.Errorf("BeginSlot after ClipEndWithSlot: %v", err)
	}
}

func TestClipperReuseAfterEnd(t *testing.T) {
	sk, clip := clipFixture(t, nil)
	var c Clipper
	for i := 0; i < 2; i++ {
		if n := c.ClipStart(sk.Slots[0], clip); n != 1 {
			t.Fatalf("pass %d: ClipStart = %d, want 1", i, n)
		}
		c.ClipTriangles([]float64{0, 0, 5, 0, 0, 5}, []uint32{0, 1, 2}, []float64{0, 0, 1, 0, 0, 1})
		if len(c.ClippedTriangles()) != 3 {
			t.Errorf("pass %d: %d indices, want 3", i, len(c.ClippedTriangles()))
		}
		c.ClipEnd()
	}
}
