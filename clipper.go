package spine

import "fmt"

// Clipper is the clipping state machine driven by the draw-order walk.
//
// It is Idle until ClipStart sees a ClippingAttachment, then Clipping until
// ClipEndWithSlot reaches the attachment's end slot or ClipEnd is called.
// Every slot must pass through ClipEndWithSlot, drawn or not.
type Clipper struct {
	triangulator Triangulator

	clip     *ClippingAttachment
	polygon  []float64
	polygons [][]float64
	openSlot *Slot

	clippedVertices  []float64
	clippedUVs       []float64
	clippedTriangles []uint32

	scratchA, scratchB []float64
}

// IsClipping reports whether a clip polygon is active.
func (c *Clipper) IsClipping() bool {
	return c.clip != nil
}

// Polygons returns the active convex clip polygons in world space as
// counter-clockwise x,y pairs. The returned slices MUST NOT be mutated.
func (c *Clipper) Polygons() [][]float64 {
	return c.polygons
}

// BeginSlot records that slot is being processed. It returns an error
// wrapping ErrClipEndSkipped when the previous slot never reached
// ClipEndWithSlot; slot is recorded either way.
func (c *Clipper) BeginSlot(slot *Slot) error {
	prev := c.openSlot
	c.openSlot = slot
	if prev != nil {
		return fmt.Errorf("spine: slot %q: %w", prev.Data.Name, ErrClipEndSkipped)
	}
	return nil
}

// ClipStart activates clip for the slots that follow and returns the number
// of convex polygons the clip shape was decomposed into. It is a no-op
// returning 0 while another clip is active.
func (c *Clipper) ClipStart(slot *Slot, clip *ClippingAttachment) int {
	if c.clip != nil {
		return 0
	}
	c.clip = clip

	n := clip.WorldVerticesLength
	if cap(c.polygon) < n {
		c.polygon = make([]float64, n)
	}
	c.polygon = c.polygon[:n]
	clip.ComputeWorldVertices(slot, 0, n, c.polygon, 0, 2)
	makeCounterClockwise(c.polygon)

	tris := c.triangulator.Triangulate(c.polygon)
	c.polygons = c.triangulator.Decompose(c.polygon, tris)
	return len(c.polygons)
}

// ClipEndWithSlot ends clipping when slot is the active clip's end slot and
// closes the slot's bookkeeping.
func (c *Clipper) ClipEndWithSlot(slot *Slot) {
	if c.openSlot == slot {
		c.openSlot = nil
	}
	if c.clip != nil && c.clip.EndSlot == slot.Data {
		c.ClipEnd()
	}
}

// ClipEnd returns the clipper to Idle unconditionally.
func (c *Clipper) ClipEnd() {
	c.openSlot = nil
	if c.clip == nil {
		return
	}
	c.clip = nil
	c.polygons = nil
	c.polygon = c.polygon[:0]
	c.clippedVertices = c.clippedVertices[:0]
	c.clippedUVs = c.clippedUVs[:0]
	c.clippedTriangles = c.clippedTriangles[:0]
}

// ClippedVertices returns x,y pairs from the last ClipTriangles call.
func (c *Clipper) ClippedVertices() []float64 { return c.clippedVertices }

// ClippedUVs returns u,v pairs matching ClippedVertices.
func (c *Clipper) ClippedUVs() []float64 { return c.clippedUVs }

// ClippedTriangles returns indices into ClippedVertices.
func (c *Clipper) ClippedTriangles() []uint32 { return c.clippedTriangles }

// ClipTriangles intersects a triangle list with the active clip polygons.
// vertices and uvs hold x,y and u,v pairs. Results replace the clipper's
// output buffers. A mesh entirely inside one convex polygon is copied through
// unchanged; triangles entirely outside produce nothing.
func (c *Clipper) ClipTriangles(vertices []float64, triangles []uint32, uvs []float64) {
	c.clippedVertices = c.clippedVertices[:0]
	c.clippedUVs = c.clippedUVs[:0]
	c.clippedTriangles = c.clippedTriangles[:0]

	for _, poly := range c.polygons {
		if containsAll(poly, vertices) {
			c.clippedVertices = append(c.clippedVertices, vertices...)
			c.clippedUVs = append(c.clippedUVs, uvs...)
			c.clippedTriangles = append(c.clippedTriangles, triangles...)
			return
		}
	}

outer:
	for t := 0; t+2 < len(triangles); t += 3 {
		i1, i2, i3 := int(triangles[t])<<1, int(triangles[t+1])<<1, int(triangles[t+2])<<1
		x1, y1 := vertices[i1], vertices[i1+1]
		x2, y2 := vertices[i2], vertices[i2+1]
		x3, y3 := vertices[i3], vertices[i3+1]
		u1, v1 := uvs[i1], uvs[i1+1]
		u2, v2 := uvs[i2], uvs[i2+1]
		u3, v3 := uvs[i3], uvs[i3+1]

		for _, poly := range c.polygons {
			out, clipped := c.clipTriangle(x1, y1, x2, y2, x3, y3, poly)
			if !clipped {
				base := uint32(len(c.clippedVertices) / 2)
				c.clippedVertices = append(c.clippedVertices, x1, y1, x2, y2, x3, y3)
				c.clippedUVs = append(c.clippedUVs, u1, v1, u2, v2, u3, v3)
				c.clippedTriangles = append(c.clippedTriangles, base, base+1, base+2)
				continue outer
			}
			if len(out) < 6 {
				continue
			}

			d0 := y2 - y3
			d1 := x3 - x2
			d2 := x1 - x3
			d4 := y3 - y1
			denom := d0*d2 + d1*(y1-y3)
			if denom > -1e-12 && denom < 1e-12 {
				continue outer
			}
			d := 1 / denom

			base := uint32(len(c.clippedVertices) / 2)
			for i := 0; i < len(out); i += 2 {
				x, y := out[i], out[i+1]
				c0 := x - x3
				c1 := y - y3
				a := (d0*c0 + d1*c1) * d
				b := (d4*c0 + d2*c1) * d
				cc := 1 - a - b
				c.clippedVertices = append(c.clippedVertices, x, y)
				c.clippedUVs = append(c.clippedUVs, u1*a+u2*b+u3*cc, v1*a+v2*b+v3*cc)
			}
			k := uint32(len(out) / 2)
			for i := uint32(1); i+1 < k; i++ {
				c.clippedTriangles = append(c.clippedTriangles, base, base+i, base+i+1)
			}
		}
	}
}

// clipTriangle clips a triangle against one counter-clockwise convex polygon
// (Sutherland-Hodgman). Returns the clipped polygon as x,y pairs and whether
// any edge cut the triangle. An empty result with clipped set means the
// triangle is fully outside. The returned slice is reused by the next call.
func (c *Clipper) clipTriangle(x1, y1, x2, y2, x3, y3 float64, poly []float64) ([]float64, bool) {
	input := append(c.scratchA[:0], x1, y1, x2, y2, x3, y3)
	output := c.scratchB[:0]
	clipped := false

	n := len(poly)
	for e := 0; e < n; e += 2 {
		ex, ey := poly[e], poly[e+1]
		ex2, ey2 := poly[(e+2)%n], poly[(e+3)%n]
		output = output[:0]

		m := len(input)
		for i := 0; i < m; i += 2 {
			px, py := input[i], input[i+1]
			qx, qy := input[(i+2)%m], input[(i+3)%m]
			sp := cross(ex, ey, ex2, ey2, px, py)
			sq := cross(ex, ey, ex2, ey2, qx, qy)
			pIn, qIn := sp >= 0, sq >= 0

			if pIn && qIn {
				output = append(output, qx, qy)
				continue
			}
			clipped = true
			if pIn || qIn {
				t := sp / (sp - sq)
				output = append(output, px+(qx-px)*t, py+(qy-py)*t)
				if qIn {
					output = append(output, qx, qy)
				}
			}
		}

		input, output = output, input
		if len(input) == 0 {
			break
		}
	}

	c.scratchA, c.scratchB = input, output
	return input, clipped
}

// containsAll reports whether every x,y pair in verts lies inside or on the
// counter-clockwise convex polygon poly.
func containsAll(poly, verts []float64) bool {
	if len(verts) == 0 {
		return false
	}
	n := len(poly)
	if n < 6 {
		return false
	}
	for i := 0; i < len(verts); i += 2 {
		x, y := verts[i], verts[i+1]
		for e := 0; e < n; e += 2 {
			if cross(poly[e], poly[e+1], poly[(e+2)%n], poly[(e+3)%n], x, y) < 0 {
				return false
			}
		}
	}
	return true
}
