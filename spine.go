package spine

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication happens in the color compositor when the vertex layout
// asks for it.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Mul returns the per-channel product of c and o.
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B, c.A * o.A}
}

// BlendMode selects the compositing operation for a slot. Blend mode is part
// of a batch's material identity.
type BlendMode uint8

const (
	BlendNormal   BlendMode = iota // source-over (standard alpha blending)
	BlendAdditive                  // additive / lighter
	BlendMultiply                  // multiply (source * destination; only darkens)
	BlendScreen                    // screen (1 - (1-src)*(1-dst); only brightens)
)

// String returns the lowercase name used by Spine skeleton data.
func (b BlendMode) String() string {
	switch b {
	case BlendNormal:
		return "normal"
	case BlendAdditive:
		return "additive"
	case BlendMultiply:
		return "multiply"
	case BlendScreen:
		return "screen"
	default:
		return "unknown"
	}
}

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
// All factors assume premultiplied source colors.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendNormal:
		return ebiten.BlendSourceOver
	case BlendAdditive:
		return ebiten.BlendLighter
	case BlendMultiply:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendScreen:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	default:
		return ebiten.BlendSourceOver
	}
}

// Errors returned by geometry generation. Callers distinguish them with
// errors.Is; the wrapping error names the offending slot or attachment.
var (
	// ErrNoRegion is returned when a region or mesh attachment has no
	// texture region at vertex computation time.
	ErrNoRegion = errors.New("attachment has no texture region")
	// ErrClipEndSkipped is returned when a slot starts without the previous
	// slot having passed through ClipEndWithSlot.
	ErrClipEndSkipped = errors.New("clip end hook skipped for slot")
	// ErrMaterialChanged is returned when geometry is appended to an open
	// batch whose page or blend mode differs.
	ErrMaterialChanged = errors.New("batch material changed without flush")
	// ErrBatchCapacity is returned when a single slot needs more vertices
	// than a fixed-size batch can ever hold.
	ErrBatchCapacity = errors.New("slot exceeds batch capacity")
	// ErrUnknownSlot is returned when a slot name is not in the skeleton.
	ErrUnknownSlot = errors.New("slot not found")
	// ErrUnknownAttachment is returned when an attachment name is not in
	// the active or default skin.
	ErrUnknownAttachment = errors.New("attachment not found")
)

// Rect is an axis-aligned rectangle. X, Y is the minimum corner.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}
