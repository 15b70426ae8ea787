package spine

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// texturePool manages reusable offscreen images keyed by power-of-two
// dimensions. After warmup, Acquire/Release are zero-alloc.
type texturePool struct {
	buckets map[uint64][]*ebiten.Image
}

// poolKey packs power-of-two width and height into a single uint64.
func poolKey(w, h int) uint64 {
	return uint64(w)<<32 | uint64(h)
}

// Acquire returns a cleared offscreen image with at least (w, h) pixels.
// Dimensions are rounded up to the next power of two.
func (p *texturePool) Acquire(w, h int) *ebiten.Image {
	pw := nextPowerOfTwo(w)
	ph := nextPowerOfTwo(h)
	key := poolKey(pw, ph)

	if p.buckets != nil {
		if stack := p.buckets[key]; len(stack) > 0 {
			img := stack[len(stack)-1]
			p.buckets[key] = stack[:len(stack)-1]
			img.Clear()
			return img
		}
	}

	return ebiten.NewImageWithOptions(
		image.Rect(0, 0, pw, ph),
		&ebiten.NewImageOptions{Unmanaged: true},
	)
}

// Release returns an image to the pool. It is cleared on the next Acquire.
func (p *texturePool) Release(img *ebiten.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	key := poolKey(b.Dx(), b.Dy())

	if p.buckets == nil {
		p.buckets = make(map[uint64][]*ebiten.Image)
	}
	p.buckets[key] = append(p.buckets[key], img)
}

// snapshotView maps skeleton space inside bounds (y up) onto an image of the
// bounds' size plus padding on every side (y down).
func snapshotView(bounds Rect, padding float64) [6]float64 {
	return [6]float64{1, 0, 0, -1, padding - bounds.X, padding + bounds.Y + bounds.Height}
}

// Snapshot draws frame into a pooled offscreen image sized to the frame's
// bounds plus padding pixels on each side. The returned view maps skeleton
// space to the image. Return the image with ReleaseSnapshot when done. An
// empty frame returns a nil image.
func (r *Renderer) Snapshot(frame *Frame, padding int) (img *ebiten.Image, view [6]float64) {
	bounds, ok := frame.Bounds()
	if !ok {
		return nil, identityTransform
	}
	w := int(math.Ceil(bounds.Width)) + 2*padding
	h := int(math.Ceil(bounds.Height)) + 2*padding
	img = r.pool.Acquire(w, h)
	view = snapshotView(bounds, float64(padding))

	r.drawBatches(img, frame, view)
	return img, view
}

// ReleaseSnapshot returns an image from Snapshot to the pool.
func (r *Renderer) ReleaseSnapshot(img *ebiten.Image) {
	r.pool.Release(img)
}
