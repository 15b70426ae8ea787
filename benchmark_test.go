package spine

import (
	"fmt"
	"image"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// setupBenchSkeleton creates a skeleton with n bones in a chain, one region
// slot per bone. Every fourth slot uses a second page when interleave is set.
func setupBenchSkeleton(n int, interleave bool) *Skeleton {
	rt := NewRuntime()
	pageA := &AtlasPage{Name: "a", Width: 512, Height: 512}
	pageB := &AtlasPage{Name: "b", Width: 512, Height: 512}
	regionA := &TextureRegion{Page: pageA, U2: 0.0625, V2: 0.0625, Width: 32, Height: 32, OriginalWidth: 32, OriginalHeight: 32}
	regionB := &TextureRegion{Page: pageB, U2: 0.0625, V2: 0.0625, Width: 32, Height: 32, OriginalWidth: 32, OriginalHeight: 32}

	data := &SkeletonData{Name: "bench"}
	var parent *BoneData
	for i := 0; i < n; i++ {
		bd := NewBoneData(i, fmt.Sprintf("bone%d", i), parent)
		if parent != nil {
			bd.X, bd.Rotation = 4, 3
		}
		data.Bones = append(data.Bones, bd)
		data.Slots = append(data.Slots, NewSlotData(i, fmt.Sprintf("slot%d", i), bd))
		parent = bd
	}
	sk := NewSkeleton(data)
	for i, s := range sk.Slots {
		region := regionA
		if interleave && i%4 == 3 {
			region = regionB
		}
		s.SetAttachment(rt.NewRegionAttachment(s.Data.Name, region))
	}
	return sk
}

// setupBenchMeshSkeleton creates a skeleton with n weighted grid meshes of
// 8×8 cells bound to two bones.
func setupBenchMeshSkeleton(n int) *Skeleton {
	rt := NewRuntime()
	page := &AtlasPage{Name: "a", Width: 256, Height: 256}
	region := &TextureRegion{Page: page, U2: 1, V2: 1, Width: 256, Height: 256, OriginalWidth: 256, OriginalHeight: 256}

	root := NewBoneData(0, "root", nil)
	tip := NewBoneData(1, "tip", root)
	tip.X, tip.Rotation = 50, 20
	data := &SkeletonData{Bones: []*BoneData{root, tip}}
	for i := 0; i < n; i++ {
		data.Slots = append(data.Slots, NewSlotData(i, fmt.Sprintf("mesh%d", i), root))
	}
	sk := NewSkeleton(data)

	const cells = 8
	var bones, uvs []float64
	for y := 0; y <= cells; y++ {
		for x := 0; x <= cells; x++ {
			w := float64(x) / cells
			bones = append(bones, 2,
				0, float64(x*10), float64(y*10), 1-w,
				1, float64(x*10-50), float64(y*10), w)
			uvs = append(uvs, float64(x)/cells, 1-float64(y)/cells)
		}
	}
	var tris []uint32
	for y := 0; y < cells; y++ {
		for x := 0; x < cells; x++ {
			i := uint32(y*(cells+1) + x)
			tris = append(tris, i, i+1, i+cells+2, i+cells+2, i+cells+1, i)
		}
	}
	for _, s := range sk.Slots {
		shape := &MeshShape{
			VertexData: weightedVertexData(bones),
			RegionUVs:  uvs,
			Triangles:  tris,
		}
		s.SetAttachment(rt.NewMeshAttachment(s.Data.Name, region, shape))
	}
	return sk
}

// weightedVertexData splits a flat [count, bone, x, y, weight, ...] list into
// the Bones/Vertices layout.
func weightedVertexData(flat []float64) VertexData {
	var d VertexData
	for i := 0; i < len(flat); {
		count := int(flat[i])
		d.Bones = append(d.Bones, count)
		i++
		for j := 0; j < count; j++ {
			d.Bones = append(d.Bones, int(flat[i]))
			d.Vertices = append(d.Vertices, flat[i+1], flat[i+2], flat[i+3])
			i += 4
		}
	}
	return d
}

func benchGenerate(b *testing.B, sk *Skeleton, cfg GeneratorConfig) {
	b.Helper()
	g := NewGenerator(cfg)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := g.Generate(sk); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGenerate_1000Regions(b *testing.B) {
	benchGenerate(b, setupBenchSkeleton(1000, false), GeneratorConfig{})
}

func BenchmarkGenerate_1000Regions_Interleaved(b *testing.B) {
	benchGenerate(b, setupBenchSkeleton(1000, true), GeneratorConfig{})
}

func BenchmarkGenerate_1000Regions_TwoColor(b *testing.B) {
	benchGenerate(b, setupBenchSkeleton(1000, false), GeneratorConfig{TwoColorTint: true, PremultipliedAlpha: true})
}

func BenchmarkGenerate_1000Regions_Capped(b *testing.B) {
	benchGenerate(b, setupBenchSkeleton(1000, false), GeneratorConfig{MaxBatchVertices: 256})
}

func BenchmarkGenerate_100WeightedMeshes(b *testing.B) {
	benchGenerate(b, setupBenchMeshSkeleton(100), GeneratorConfig{})
}

func BenchmarkGenerate_Clipped(b *testing.B) {
	sk := setupBenchSkeleton(100, false)
	rt := NewRuntime()
	clip := rt.NewClippingAttachment("clip",
		[]float64{-40, -40, 40, -40, 60, 0, 40, 40, -40, 40, -20, 0}, nil)
	sk.Slots[0].SetAttachment(clip)
	benchGenerate(b, sk, GeneratorConfig{})
}

func BenchmarkUpdateWorldTransform_1000Bones(b *testing.B) {
	sk := setupBenchSkeleton(1000, false)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sk.RootBone().Rotation = float64(i % 360)
		sk.UpdateWorldTransform()
	}
}

func BenchmarkAppendEbitenVertices_1000Regions(b *testing.B) {
	g := NewGenerator(GeneratorConfig{})
	frame, err := g.Generate(setupBenchSkeleton(1000, false))
	if err != nil {
		b.Fatal(err)
	}
	view := YUpView(400, 300)
	page := image.Rect(0, 0, 512, 512)
	var dst []ebiten.Vertex
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dst = appendEbitenVertices(dst[:0], frame.Buffer.Vertices, frame.Layout, view, page)
	}
}

func BenchmarkClipTriangles(b *testing.B) {
	sk := newTestSkeleton("clip")
	rt := NewRuntime()
	clip := rt.NewClippingAttachment("clip", []float64{0, 0, 20, 0, 20, 10, 10, 10, 10, 20, 0, 20}, nil)
	var c Clipper
	c.ClipStart(sk.Slots[0], clip)
	verts := []float64{-5, -5, 30, -5, 30, 30, -5, 30}
	uvs := []float64{0, 1, 1, 1, 1, 0, 0, 0}
	tris := []uint32{0, 1, 2, 2, 3, 0}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.ClipTriangles(verts, tris, uvs)
	}
}
