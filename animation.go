package spine

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// PoseTween animates up to 4 float64 pose fields simultaneously. Create one
// via the constructors (TweenBoneRotation, TweenBonePosition, TweenBoneScale,
// TweenSlotColor) and call Update(dt) each frame. Bone tweens refresh the
// bone's subtree world transforms after writing; slot tweens only write the
// color. A bone tween stops as soon as its bone turns inactive.
//
// This is not a timeline system: there is no mixing and no global manager.
type PoseTween struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	bone   *Bone
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values to the
// target fields.
func (t *PoseTween) Update(dt float32) {
	if t.Done {
		return
	}

	if t.bone != nil && !t.bone.Active {
		t.Done = true
		return
	}

	allDone := true
	for i := 0; i < t.count; i++ {
		val, finished := t.tweens[i].Update(dt)
		*t.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	t.Done = allDone

	if t.bone != nil {
		t.bone.UpdateWorldTransform()
	}
}

// Reset rewinds every tween to its start value without writing it.
func (t *PoseTween) Reset() {
	for i := 0; i < t.count; i++ {
		t.tweens[i].Reset()
	}
	t.Done = false
}

// TweenBoneRotation animates bone.Rotation (degrees) to the target value.
func TweenBoneRotation(bone *Bone, to float64, duration float32, fn ease.TweenFunc) *PoseTween {
	t := &PoseTween{count: 1, bone: bone}
	t.tweens[0] = gween.New(float32(bone.Rotation), float32(to), duration, fn)
	t.fields[0] = &bone.Rotation
	return t
}

// TweenBonePosition animates bone.X and bone.Y, in the parent's space.
func TweenBonePosition(bone *Bone, toX, toY float64, duration float32, fn ease.TweenFunc) *PoseTween {
	t := &PoseTween{count: 2, bone: bone}
	t.tweens[0] = gween.New(float32(bone.X), float32(toX), duration, fn)
	t.tweens[1] = gween.New(float32(bone.Y), float32(toY), duration, fn)
	t.fields[0] = &bone.X
	t.fields[1] = &bone.Y
	return t
}

// TweenBoneScale animates bone.ScaleX and bone.ScaleY.
func TweenBoneScale(bone *Bone, toSX, toSY float64, duration float32, fn ease.TweenFunc) *PoseTween {
	t := &PoseTween{count: 2, bone: bone}
	t.tweens[0] = gween.New(float32(bone.ScaleX), float32(toSX), duration, fn)
	t.tweens[1] = gween.New(float32(bone.ScaleY), float32(toSY), duration, fn)
	t.fields[0] = &bone.ScaleX
	t.fields[1] = &bone.ScaleY
	return t
}

// TweenSlotColor animates all four components of slot.Color.
func TweenSlotColor(slot *Slot, to Color, duration float32, fn ease.TweenFunc) *PoseTween {
	t := &PoseTween{count: 4}
	t.tweens[0] = gween.New(float32(slot.Color.R), float32(to.R), duration, fn)
	t.tweens[1] = gween.New(float32(slot.Color.G), float32(to.G), duration, fn)
	t.tweens[2] = gween.New(float32(slot.Color.B), float32(to.B), duration, fn)
	t.tweens[3] = gween.New(float32(slot.Color.A), float32(to.A), duration, fn)
	t.fields[0] = &slot.Color.R
	t.fields[1] = &slot.Color.G
	t.fields[2] = &slot.Color.B
	t.fields[3] = &slot.Color.A
	return t
}
