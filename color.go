package spine

// VertexColor is a compact RGBA color as packed into vertices.
type VertexColor struct {
	R, G, B, A float32
}

// ColorOptions controls how slot colors are packed into vertices.
type ColorOptions struct {
	// PremultipliedAlpha multiplies RGB (light and dark) by the final alpha.
	PremultipliedAlpha bool
	// AdditiveAlphaZero writes alpha 0 into the packed color of additive
	// slots. Some renderers use this to get additive blending out of a
	// premultiplied source-over blend function. Off by default.
	AdditiveAlphaZero bool
}

// CompositeColor combines the skeleton, slot and attachment tints into the
// per-vertex light color, and the slot's dark tint into the dark color.
// A nil dark tint yields black, keeping the vertex stride uniform.
func CompositeColor(skeleton, slot, attachment Color, dark *Color, blend BlendMode, opts ColorOptions) (light, darkOut VertexColor) {
	c := skeleton.Mul(slot).Mul(attachment)
	r, g, b, a := c.R, c.G, c.B, c.A

	if opts.PremultipliedAlpha {
		r *= a
		g *= a
		b *= a
	}

	if dark != nil {
		dr, dg, db := dark.R, dark.G, dark.B
		if opts.PremultipliedAlpha {
			dr *= a
			dg *= a
			db *= a
		}
		darkOut = VertexColor{float32(dr), float32(dg), float32(db), 1}
	} else {
		darkOut = VertexColor{0, 0, 0, 1}
	}

	packedA := a
	if opts.AdditiveAlphaZero && blend == BlendAdditive {
		packedA = 0
	}
	light = VertexColor{float32(r), float32(g), float32(b), float32(packedA)}
	return light, darkOut
}

// slotColors returns the packed colors for an attachment on slot.
func slotColors(slot *Slot, attachmentColor Color, opts ColorOptions) (light, dark VertexColor) {
	skel := ColorWhite
	if sk := slot.Skeleton(); sk != nil {
		skel = sk.Color
	}
	return CompositeColor(skel, slot.Color, attachmentColor, slot.DarkColor, slot.BlendMode(), opts)
}
