package spine

import (
	"image"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestBlendModeEbitenBlend(t *testing.T) {
	if BlendNormal.EbitenBlend() != ebiten.BlendSourceOver {
		t.Error("normal should map to source-over")
	}
	if BlendAdditive.EbitenBlend() != ebiten.BlendLighter {
		t.Error("additive should map to lighter")
	}
	if BlendMultiply.EbitenBlend().BlendFactorSourceRGB != ebiten.BlendFactorDestinationColor {
		t.Error("multiply should scale the source by the destination color")
	}
	if BlendScreen.EbitenBlend().BlendFactorDestinationRGB != ebiten.BlendFactorOneMinusSourceColor {
		t.Error("screen should scale the destination by one minus the source color")
	}
}

func TestBlendModeString(t *testing.T) {
	tests := []struct {
		mode BlendMode
		want string
	}{
		{BlendNormal, "normal"},
		{BlendAdditive, "additive"},
		{BlendMultiply, "multiply"},
		{BlendScreen, "screen"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("BlendMode(%d).String() = %q, want %q", uint8(tt.mode), got, tt.want)
		}
	}
}

func TestAppendEbitenVertices(t *testing.T) {
	src := []float32{
		10, 20, 1, 0.5, 0.25, 0.75, 0.5, 0.25,
		-10, 0, 1, 1, 1, 1, 1, 1,
	}
	view := YUpView(100, 200)
	page := image.Rect(32, 64, 32+128, 64+256)

	got := appendEbitenVertices(nil, src, VertexLayout{}, view, page)
	if len(got) != 2 {
		t.Fatalf("vertices = %d, want 2", len(got))
	}
	v := got[0]
	assertVertexNear(t, "DstX", v.DstX, 110)
	assertVertexNear(t, "DstY", v.DstY, 180)
	assertVertexNear(t, "SrcX", v.SrcX, 32+64)
	assertVertexNear(t, "SrcY", v.SrcY, 64+64)
	assertVertexNear(t, "ColorG", v.ColorG, 0.5)
	assertVertexNear(t, "ColorA", v.ColorA, 0.75)
	if v.Custom0 != 0 || v.Custom1 != 0 || v.Custom2 != 0 {
		t.Error("single-color layout should leave custom attributes zero")
	}

	w := got[1]
	assertVertexNear(t, "DstX", w.DstX, 90)
	assertVertexNear(t, "DstY", w.DstY, 200)
	assertVertexNear(t, "SrcX", w.SrcX, 160)
	assertVertexNear(t, "SrcY", w.SrcY, 320)
}

func TestAppendEbitenVerticesTwoColor(t *testing.T) {
	src := []float32{0, 0, 1, 1, 1, 1, 0, 0, 0.1, 0.2, 0.3}
	got := appendEbitenVertices(nil, src, VertexLayout{TwoColorTint: true}, identityTransform, image.Rect(0, 0, 64, 64))
	if len(got) != 1 {
		t.Fatalf("vertices = %d, want 1", len(got))
	}
	assertVertexNear(t, "Custom0", got[0].Custom0, 0.1)
	assertVertexNear(t, "Custom1", got[0].Custom1, 0.2)
	assertVertexNear(t, "Custom2", got[0].Custom2, 0.3)
}

func TestAppendEbitenVerticesReusesDst(t *testing.T) {
	src := []float32{0, 0, 1, 1, 1, 1, 0, 0}
	dst := make([]ebiten.Vertex, 0, 8)
	got := appendEbitenVertices(dst, src, VertexLayout{}, identityTransform, image.Rect(0, 0, 1, 1))
	if &got[0] != &dst[:1][0] {
		t.Error("appendEbitenVertices should append into dst's backing array")
	}
}

func TestRendererViewDefaults(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	if r.View() != identityTransform {
		t.Errorf("zero view = %v, want identity", r.View())
	}
	r.SetView(YUpView(10, 20))
	if r.View() != YUpView(10, 20) {
		t.Errorf("View = %v, want YUpView(10, 20)", r.View())
	}
	r.SetView([6]float64{})
	if r.View() != identityTransform {
		t.Error("SetView with the zero matrix should reset to identity")
	}
}

func TestRendererViewUsesCamera(t *testing.T) {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	r := NewRenderer(RendererConfig{View: YUpView(1, 2), Camera: cam})
	if r.View() != cam.ViewMatrix() {
		t.Error("View should come from the camera when one is set")
	}
}

func TestRendererDrawSkipsHeadlessPages(t *testing.T) {
	f := newGenFixture("a")
	f.attachRegion("a")
	frame := generate(t, NewGenerator(GeneratorConfig{}), f.sk)

	r := NewRenderer(RendererConfig{})
	if calls := r.Draw(nil, frame); calls != 0 {
		t.Errorf("draw calls = %d, want 0 for a page without image", calls)
	}
}

func TestRendererShaderCompiledLazily(t *testing.T) {
	f := newGenFixture("a")
	f.attachRegion("a")
	frame := generate(t, NewGenerator(GeneratorConfig{TwoColorTint: true}), f.sk)

	r := NewRenderer(RendererConfig{})
	r.Draw(nil, frame)
	if r.shader != nil {
		t.Error("no batch was drawn, so the tint shader should not be compiled")
	}
	if other := NewRenderer(RendererConfig{}); other.shader != nil {
		t.Error("each renderer should own its shader")
	}
}

func TestRendererDrawCulledByCamera(t *testing.T) {
	f := newGenFixture("a")
	f.attachRegion("a").SetPosition(5000, 5000)
	frame := generate(t, NewGenerator(GeneratorConfig{}), f.sk)

	r := NewRenderer(RendererConfig{Camera: NewCamera(Rect{Width: 800, Height: 600})})
	if calls := r.Draw(nil, frame); calls != 0 {
		t.Errorf("draw calls = %d, want 0 for a culled frame", calls)
	}
}

func TestSnapshotView(t *testing.T) {
	bounds := Rect{X: -50, Y: -20, Width: 100, Height: 40}
	m := snapshotView(bounds, 4)

	// Top-left of the bounds (min x, max y) lands at (padding, padding).
	x, y := transformPoint(m, -50, 20)
	assertNear(t, "top-left x", x, 4)
	assertNear(t, "top-left y", y, 4)

	x, y = transformPoint(m, 50, -20)
	assertNear(t, "bottom-right x", x, 104)
	assertNear(t, "bottom-right y", y, 44)
}

func TestSnapshotEmptyFrame(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	img, view := r.Snapshot(&Frame{Buffer: &MeshBuffer{}}, 2)
	if img != nil {
		t.Error("empty frame should not allocate a snapshot")
	}
	if view != identityTransform {
		t.Errorf("view = %v, want identity", view)
	}
	r.ReleaseSnapshot(nil)
}

func TestPoolKey(t *testing.T) {
	if poolKey(64, 32) == poolKey(32, 64) {
		t.Error("pool keys should distinguish width and height")
	}
	if poolKey(256, 256) != uint64(256)<<32|256 {
		t.Error("unexpected pool key layout")
	}
}
