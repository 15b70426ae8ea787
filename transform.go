package spine

import "math"

// Affine matrices used by the renderer adapter follow the layout
//
//	[a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
//
// Bone world transforms use Spine's own naming instead (see Bone).

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

const degRad = math.Pi / 180

// sinCosDeg returns the sine and cosine of an angle given in degrees.
func sinCosDeg(deg float64) (float64, float64) {
	return math.Sincos(deg * degRad)
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// YUpView returns a view matrix mapping skeleton space (y up) to screen space
// (y down) with the skeleton origin placed at (originX, originY) on screen.
func YUpView(originX, originY float64) [6]float64 {
	return [6]float64{1, 0, 0, -1, originX, originY}
}

// updateWorldTransform recomputes a bone's world matrix from its local
// transform and its parent's world matrix. Root bones take the skeleton's
// position and scale. Only the "normal" inherit mode is supported.
func updateWorldTransform(b *Bone) {
	rotationY := b.Rotation + 90 + b.ShearY
	sinX, cosX := sinCosDeg(b.Rotation + b.ShearX)
	sinY, cosY := sinCosDeg(rotationY)
	la := cosX * b.ScaleX
	lb := cosY * b.ScaleY
	lc := sinX * b.ScaleX
	ld := sinY * b.ScaleY

	p := b.Parent
	if p == nil {
		sx, sy := 1.0, 1.0
		var ox, oy float64
		if s := b.Skeleton; s != nil {
			sx, sy = s.ScaleX, s.ScaleY
			ox, oy = s.X, s.Y
		}
		b.A = la * sx
		b.B = lb * sx
		b.C = lc * sy
		b.D = ld * sy
		b.WorldX = b.X*sx + ox
		b.WorldY = b.Y*sy + oy
		return
	}

	b.WorldX = p.A*b.X + p.B*b.Y + p.WorldX
	b.WorldY = p.C*b.X + p.D*b.Y + p.WorldY
	b.A = p.A*la + p.B*lc
	b.B = p.A*lb + p.B*ld
	b.C = p.C*la + p.D*lc
	b.D = p.C*lb + p.D*ld
}

// updateBoneTree recomputes b and every descendant, parents first.
func updateBoneTree(b *Bone) {
	updateWorldTransform(b)
	for _, child := range b.children {
		updateBoneTree(child)
	}
}

// --- Coordinate conversion ---

// LocalToWorld converts a point in the bone's local space to world space.
func (b *Bone) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return lx*b.A + ly*b.B + b.WorldX, lx*b.C + ly*b.D + b.WorldY
}

// WorldToLocal converts a world-space point to the bone's local space.
// Returns (0, 0) offsets from the bone origin if the matrix is singular.
func (b *Bone) WorldToLocal(wx, wy float64) (lx, ly float64) {
	det := b.A*b.D - b.B*b.C
	if det > -1e-12 && det < 1e-12 {
		return 0, 0
	}
	x := wx - b.WorldX
	y := wy - b.WorldY
	return (x*b.D - y*b.B) / det, (y*b.A - x*b.C) / det
}

// WorldRotationX returns the world rotation of the bone's X axis in degrees.
func (b *Bone) WorldRotationX() float64 {
	return math.Atan2(b.C, b.A) / degRad
}

// WorldScaleX returns the length of the bone's world X axis.
func (b *Bone) WorldScaleX() float64 {
	return math.Sqrt(b.A*b.A + b.C*b.C)
}

// WorldScaleY returns the length of the bone's world Y axis.
func (b *Bone) WorldScaleY() float64 {
	return math.Sqrt(b.B*b.B + b.D*b.D)
}
