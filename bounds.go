package spine

import "math"

// SkeletonBounds collects the world-space polygons of a skeleton's bounding
// box attachments for hit testing. Bounding boxes are never drawn; this is
// the only consumer of them.
type SkeletonBounds struct {
	boxes    []*BoundingBoxAttachment
	polygons [][]float64
	pool     [][]float64

	MinX, MinY, MaxX, MaxY float64
}

// Update recomputes the polygons from the skeleton's current pose. Slots on
// inactive bones are ignored. With updateAABB the axis-aligned bounds of all
// polygons are recomputed too.
func (sb *SkeletonBounds) Update(sk *Skeleton, updateAABB bool) {
	for _, p := range sb.polygons {
		sb.pool = append(sb.pool, p[:0])
	}
	sb.boxes = sb.boxes[:0]
	sb.polygons = sb.polygons[:0]

	for _, slot := range sk.Slots {
		if !slot.Bone.Active {
			continue
		}
		box, ok := slot.Attachment().(*BoundingBoxAttachment)
		if !ok {
			continue
		}
		n := box.WorldVerticesLength
		var poly []float64
		if last := len(sb.pool) - 1; last >= 0 {
			poly = sb.pool[last]
			sb.pool = sb.pool[:last]
		}
		if cap(poly) < n {
			poly = make([]float64, n)
		}
		poly = poly[:n]
		box.ComputeWorldVertices(slot, 0, n, poly, 0, 2)
		sb.boxes = append(sb.boxes, box)
		sb.polygons = append(sb.polygons, poly)
	}

	if updateAABB {
		sb.computeAABB()
	} else {
		sb.MinX, sb.MinY = math.MinInt32, math.MinInt32
		sb.MaxX, sb.MaxY = math.MaxInt32, math.MaxInt32
	}
}

func (sb *SkeletonBounds) computeAABB() {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, poly := range sb.polygons {
		for i := 0; i+1 < len(poly); i += 2 {
			minX = math.Min(minX, poly[i])
			maxX = math.Max(maxX, poly[i])
			minY = math.Min(minY, poly[i+1])
			maxY = math.Max(maxY, poly[i+1])
		}
	}
	if len(sb.polygons) == 0 {
		minX, minY, maxX, maxY = 0, 0, 0, 0
	}
	sb.MinX, sb.MinY, sb.MaxX, sb.MaxY = minX, minY, maxX, maxY
}

// AABB returns the axis-aligned bounds computed by the last Update.
func (sb *SkeletonBounds) AABB() Rect {
	return Rect{X: sb.MinX, Y: sb.MinY, Width: sb.MaxX - sb.MinX, Height: sb.MaxY - sb.MinY}
}

// AABBContainsPoint reports whether (x, y) is inside the AABB.
func (sb *SkeletonBounds) AABBContainsPoint(x, y float64) bool {
	return x >= sb.MinX && x <= sb.MaxX && y >= sb.MinY && y <= sb.MaxY
}

// Boxes returns the bounding boxes found by the last Update.
func (sb *SkeletonBounds) Boxes() []*BoundingBoxAttachment { return sb.boxes }

// Polygon returns the world polygon of box, or nil.
func (sb *SkeletonBounds) Polygon(box *BoundingBoxAttachment) []float64 {
	for i, b := range sb.boxes {
		if b == box {
			return sb.polygons[i]
		}
	}
	return nil
}

// ContainsPoint returns the first bounding box containing (x, y), or nil.
func (sb *SkeletonBounds) ContainsPoint(x, y float64) *BoundingBoxAttachment {
	for i, poly := range sb.polygons {
		if polygonContains(poly, x, y) {
			return sb.boxes[i]
		}
	}
	return nil
}

// IntersectsSegment returns the first bounding box crossed by the segment
// (x1, y1)-(x2, y2), or nil.
func (sb *SkeletonBounds) IntersectsSegment(x1, y1, x2, y2 float64) *BoundingBoxAttachment {
	for i, poly := range sb.polygons {
		if polygonIntersectsSegment(poly, x1, y1, x2, y2) {
			return sb.boxes[i]
		}
	}
	return nil
}

// HitTest converts a screen point through the camera and returns the
// bounding box under it, or nil.
func (sb *SkeletonBounds) HitTest(cam *Camera, sx, sy float64) *BoundingBoxAttachment {
	wx, wy := cam.ScreenToWorld(sx, sy)
	if !sb.AABBContainsPoint(wx, wy) {
		return nil
	}
	return sb.ContainsPoint(wx, wy)
}

// polygonContains is an even-odd test, so concave polygons work.
func polygonContains(poly []float64, x, y float64) bool {
	n := len(poly)
	if n < 6 {
		return false
	}
	inside := false
	prev := n - 2
	for i := 0; i < n; i += 2 {
		yi, yp := poly[i+1], poly[prev+1]
		if (yi < y && yp >= y) || (yp < y && yi >= y) {
			xi := poly[i]
			if xi+(y-yi)/(yp-yi)*(poly[prev]-xi) < x {
				inside = !inside
			}
		}
		prev = i
	}
	return inside
}

func polygonIntersectsSegment(poly []float64, x1, y1, x2, y2 float64) bool {
	n := len(poly)
	if n < 4 {
		return false
	}
	width12, height12 := x1-x2, y1-y2
	det1 := x1*y2 - y1*x2
	x3, y3 := poly[n-2], poly[n-1]
	for i := 0; i+1 < n; i += 2 {
		x4, y4 := poly[i], poly[i+1]
		det2 := x3*y4 - y3*x4
		width34, height34 := x3-x4, y3-y4
		det3 := width12*height34 - height12*width34
		if det3 != 0 {
			x := (det1*width34 - width12*det2) / det3
			if ((x >= x3 && x <= x4) || (x >= x4 && x <= x3)) && ((x >= x1 && x <= x2) || (x >= x2 && x <= x1)) {
				y := (det1*height34 - height12*det2) / det3
				if ((y >= y3 && y <= y4) || (y >= y4 && y <= y3)) && ((y >= y1 && y <= y2) || (y >= y2 && y <= y1)) {
					return true
				}
			}
		}
		x3, y3 = x4, y4
	}
	return false
}
