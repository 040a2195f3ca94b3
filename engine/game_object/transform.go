package game_object

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Transform is a decomposed object-to-world transform.
type Transform struct {
	// Position is the world-space translation.
	Position mgl32.Vec3

	// Rotation is the orientation as a unit quaternion.
	Rotation mgl32.Quat

	// Scale is the scale factor along each local axis.
	Scale mgl32.Vec3
}

// NewTransform returns a Transform at the given position with identity rotation and unit scale.
func NewTransform(position mgl32.Vec3) Transform {
	return Transform{
		Position: position,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// WorldMatrix composes translation * rotation * scale.
//
// Returns:
//   - mgl32.Mat4: the object-to-world matrix
func (t Transform) WorldMatrix() mgl32.Mat4 {
	translate := mgl32.Translate3D(t.Position[0], t.Position[1], t.Position[2])
	scale := mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2])
	return translate.Mul4(t.Rotation.Normalize().Mat4()).Mul4(scale)
}

// NormalMatrix returns the inverse transpose of the world matrix's upper 3x3,
// widened back to 4x4 for GPU-friendly layout.
//
// Returns:
//   - mgl32.Mat4: the normal matrix
func (t Transform) NormalMatrix() mgl32.Mat4 {
	return t.WorldMatrix().Mat3().Inv().Transpose().Mat4()
}
