package spine

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera produces the view matrix a Renderer uses to place skeleton space
// (y up) on screen (y down).
type Camera struct {
	// X and Y are the skeleton-space position the camera centers on.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Rotation is the camera rotation in degrees, counter-clockwise.
	Rotation float64
	// Viewport is the screen-space rectangle the camera renders into.
	Viewport Rect

	followTarget  *Bone
	followOffsetX float64
	followOffsetY float64
	followLerp    float64

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	prev          [4]float64
	dirty         bool

	scrollTween *scrollAnim
}

// NewCamera creates a Camera centered on the skeleton origin.
func NewCamera(viewport Rect) *Camera {
	return &Camera{
		Zoom:     1.0,
		Viewport: viewport,
		dirty:    true,
	}
}

// Follow makes the camera track a bone's world position with the given
// offset and lerp factor. A lerp of 1.0 snaps immediately.
func (c *Camera) Follow(bone *Bone, offsetX, offsetY, lerp float64) {
	c.followTarget = bone
	c.followOffsetX = offsetX
	c.followOffsetY = offsetY
	c.followLerp = lerp
}

// Unfollow stops tracking the current bone.
func (c *Camera) Unfollow() {
	c.followTarget = nil
}

// ScrollTo animates the camera to the given position over duration seconds.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (c *Camera) Scrolling() bool {
	return c.scrollTween != nil
}

// Update advances follow and scroll animation by dt seconds.
func (c *Camera) Update(dt float32) {
	if c.followTarget != nil {
		targetX := c.followTarget.WorldX + c.followOffsetX
		targetY := c.followTarget.WorldY + c.followOffsetY
		c.X += (targetX - c.X) * c.followLerp
		c.Y += (targetY - c.Y) * c.followLerp
	}

	if c.scrollTween != nil {
		if !c.scrollTween.doneX {
			val, done := c.scrollTween.tweenX.Update(dt)
			c.X = float64(val)
			c.scrollTween.doneX = done
		}
		if !c.scrollTween.doneY {
			val, done := c.scrollTween.tweenY.Update(dt)
			c.Y = float64(val)
			c.scrollTween.doneY = done
		}
		if c.scrollTween.doneX && c.scrollTween.doneY {
			c.scrollTween = nil
		}
	}
}

// ViewMatrix returns the skeleton-to-screen matrix:
//
//	Translate(cx, cy) * Scale(zoom, -zoom) * Rotate(-rotation) * Translate(-X, -Y)
//
// where cx, cy is the viewport center.
func (c *Camera) ViewMatrix() [6]float64 {
	state := [4]float64{c.X, c.Y, c.Zoom, c.Rotation}
	if !c.dirty && state == c.prev {
		return c.viewMatrix
	}
	c.dirty = false
	c.prev = state

	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2
	sin, cos := sinCosDeg(c.Rotation)
	z := c.Zoom

	c.viewMatrix = [6]float64{
		z * cos, z * sin,
		z * sin, -z * cos,
		cx - z*(cos*c.X+sin*c.Y),
		cy - z*(sin*c.X-cos*c.Y),
	}
	c.invViewMatrix = invertAffine(c.viewMatrix)
	return c.viewMatrix
}

// WorldToScreen converts skeleton coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return transformPoint(c.ViewMatrix(), wx, wy)
}

// ScreenToWorld converts screen coordinates to skeleton coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	c.ViewMatrix()
	return transformPoint(c.invViewMatrix, sx, sy)
}

// VisibleBounds returns the axis-aligned bounds of the visible area in
// skeleton space.
func (c *Camera) VisibleBounds() Rect {
	c.ViewMatrix()
	inv := c.invViewMatrix

	vx := c.Viewport.X
	vy := c.Viewport.Y
	vr := vx + c.Viewport.Width
	vb := vy + c.Viewport.Height

	x0, y0 := transformPoint(inv, vx, vy)
	x1, y1 := transformPoint(inv, vr, vy)
	x2, y2 := transformPoint(inv, vr, vb)
	x3, y3 := transformPoint(inv, vx, vb)

	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// MarkDirty forces a recomputation of the view matrix.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

// Culls reports whether a frame lies entirely outside the visible area.
// Empty frames are always culled.
func (c *Camera) Culls(frame *Frame) bool {
	b, ok := frame.Bounds()
	if !ok {
		return true
	}
	return !b.Intersects(c.VisibleBounds())
}
