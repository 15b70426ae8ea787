package spine

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"
)

// GeneratorConfig configures a Generator. The zero value produces straight
// alpha vertices without dark tint and unbounded batches.
type GeneratorConfig struct {
	// TwoColorTint adds dark RGB to every vertex (stride 11 instead of 8).
	TwoColorTint bool
	// PremultipliedAlpha multiplies vertex RGB by the vertex alpha.
	PremultipliedAlpha bool
	// AdditiveAlphaZero packs alpha 0 for additive slots. See ColorOptions.
	AdditiveAlphaZero bool
	// MaxBatchVertices caps the vertex count of one batch. 0 means unlimited.
	MaxBatchVertices int
	// SkipMissingRegions logs and skips slots whose attachment has no
	// texture region instead of failing the frame.
	SkipMissingRegions bool
	// Debug prints per-frame stats to stderr.
	Debug bool
}

// FrameStats summarizes one Generate call.
type FrameStats struct {
	Slots        int
	DrawnSlots   int
	ClippedSlots int
	Vertices     int
	Indices      int
	Batches      int
}

// Frame is the output of one Generate call. Batches index into Buffer. Both
// stay valid until the generator writes the same parity again two frames
// later.
type Frame struct {
	// Number counts the generator's frames, starting at 1.
	Number  uint64
	Batches []RenderBatch
	Buffer  *MeshBuffer
	Layout  VertexLayout
	// PremultipliedAlpha reports whether vertex colors are premultiplied.
	PremultipliedAlpha bool
	Stats              FrameStats
}

// Generator turns a posed skeleton into render batches. A Generator is not
// safe for concurrent use; use one per goroutine.
type Generator struct {
	cfg       GeneratorConfig
	layout    VertexLayout
	colorOpts ColorOptions

	clipper Clipper
	builder *BatchBuilder
	buffers MeshBuffers
	frames  [2]Frame

	world  []float64
	packed []float32
	stats  debugStats
}

// NewGenerator creates a generator. The vertex layout is fixed for the
// generator's lifetime.
func NewGenerator(cfg GeneratorConfig) *Generator {
	layout := VertexLayout{TwoColorTint: cfg.TwoColorTint}
	return &Generator{
		cfg:    cfg,
		layout: layout,
		colorOpts: ColorOptions{
			PremultipliedAlpha: cfg.PremultipliedAlpha,
			AdditiveAlphaZero:  cfg.AdditiveAlphaZero,
		},
		builder: NewBatchBuilder(layout, cfg.MaxBatchVertices),
	}
}

// Layout returns the generator's vertex layout.
func (g *Generator) Layout() VertexLayout { return g.layout }

// Clipper returns the generator's clipper.
func (g *Generator) Clipper() *Clipper { return &g.clipper }

// Buffers returns the generator's ping-pong mesh buffers.
func (g *Generator) Buffers() *MeshBuffers { return &g.buffers }

// Generate walks the skeleton's draw order and builds the frame's batches.
// The skeleton's world transforms must already be current. The returned
// Frame is owned by the generator; frames alternate between two slots, so
// the previous frame can still be drawn while the next one is built.
func (g *Generator) Generate(sk *Skeleton) (*Frame, error) {
	var start time.Time
	if g.cfg.Debug {
		start = time.Now()
	}

	buf := g.buffers.Next()
	g.builder.Reset(buf)
	stats := FrameStats{Slots: len(sk.DrawOrder)}

	for _, slot := range sk.DrawOrder {
		if err := g.clipper.BeginSlot(slot); err != nil {
			g.clipper.ClipEnd()
			return nil, err
		}
		err := g.drawSlot(slot, &stats)
		g.clipper.ClipEndWithSlot(slot)
		if err == nil {
			continue
		}
		if g.cfg.SkipMissingRegions && errors.Is(err, ErrNoRegion) {
			log.Printf("spine: skipping slot %q: %v", slot.Data.Name, err)
			continue
		}
		g.clipper.ClipEnd()
		return nil, fmt.Errorf("spine: slot %q: %w", slot.Data.Name, err)
	}
	g.clipper.ClipEnd()
	g.builder.Flush()

	batches := g.builder.Batches()
	stats.Vertices = len(buf.Vertices) / g.layout.Stride()
	stats.Indices = len(buf.Indices)
	stats.Batches = len(batches)

	frame := &g.frames[g.buffers.Frame()&1]
	*frame = Frame{
		Number:             g.buffers.Frame(),
		Batches:            append(frame.Batches[:0], batches...),
		Buffer:             buf,
		Layout:             g.layout,
		PremultipliedAlpha: g.cfg.PremultipliedAlpha,
		Stats:              stats,
	}

	if g.cfg.Debug {
		g.stats.generateTime = time.Since(start)
		g.stats.frame = g.buffers.Frame()
		g.stats.FrameStats = stats
		g.debugLog(g.stats)
	}
	return frame, nil
}

// drawSlot emits the geometry of one slot. Slots that contribute nothing
// return nil.
func (g *Generator) drawSlot(slot *Slot, stats *FrameStats) error {
	att := slot.Attachment()
	if att == nil || !slot.Bone.Active {
		return nil
	}

	var color Color
	switch a := att.(type) {
	case *ClippingAttachment:
		g.clipper.ClipStart(slot, a)
		return nil
	case *RegionAttachment:
		color = a.Color
	case *MeshAttachment:
		color = a.Color
	default:
		// Bounding boxes and unknown kinds are never drawn.
		return nil
	}

	skelA := 1.0
	if sk := slot.Skeleton(); sk != nil {
		skelA = sk.Color.A
	}
	if skelA*slot.Color.A*color.A == 0 {
		return nil
	}

	var (
		page  *AtlasPage
		world []float64
		uvs   []float64
		tris  []uint32
	)
	switch a := att.(type) {
	case *RegionAttachment:
		world = g.worldScratch(8)
		if err := a.ComputeWorldVertices(slot, world, 0, 2); err != nil {
			return err
		}
		quadUVs := a.UVs()
		uvs = quadUVs[:]
		tris = QuadTriangles[:]
		page = a.Region().Page
	case *MeshAttachment:
		if err := a.prepare(slot); err != nil {
			return err
		}
		n := a.WorldVerticesLength
		world = g.worldScratch(n)
		a.ComputeWorldVertices(slot, 0, n, world, 0, 2)
		uvs = a.UVs()
		tris = a.Triangles()
		page = a.Region().Page
	}

	if g.clipper.IsClipping() {
		g.clipper.ClipTriangles(world, tris, uvs)
		world = g.clipper.ClippedVertices()
		uvs = g.clipper.ClippedUVs()
		tris = g.clipper.ClippedTriangles()
		stats.ClippedSlots++
		if len(tris) == 0 {
			return nil
		}
	}

	light, dark := slotColors(slot, color, g.colorOpts)
	g.packed = packVertices(g.packed[:0], g.layout, world, uvs, light, dark)
	if err := g.builder.Add(page, slot.BlendMode(), g.packed, tris); err != nil {
		return err
	}
	stats.DrawnSlots++
	return nil
}

func (g *Generator) worldScratch(n int) []float64 {
	if cap(g.world) < n {
		g.world = make([]float64, nextPowerOfTwo(n))
	}
	return g.world[:n]
}

// packVertices appends interleaved vertices for positions xy and uvs (both
// pairs) to dst.
func packVertices(dst []float32, layout VertexLayout, xy, uvs []float64, light, dark VertexColor) []float32 {
	for i := 0; i+1 < len(xy); i += 2 {
		dst = append(dst,
			float32(xy[i]), float32(xy[i+1]),
			light.R, light.G, light.B, light.A,
			float32(uvs[i]), float32(uvs[i+1]),
		)
		if layout.TwoColorTint {
			dst = append(dst, dark.R, dark.G, dark.B)
		}
	}
	return dst
}

// Bounds returns the axis-aligned bounds of every generated vertex. ok is
// false for an empty frame.
func (f *Frame) Bounds() (r Rect, ok bool) {
	stride := f.Layout.Stride()
	v := f.Buffer.Vertices
	if len(v) < stride {
		return Rect{}, false
	}
	minX, minY := float64(v[0]), float64(v[1])
	maxX, maxY := minX, minY
	for i := stride; i+1 < len(v); i += stride {
		x, y := float64(v[i]), float64(v[i+1])
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}
