package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// BoundingBox is an axis-aligned box described by its minimum and maximum corners.
type BoundingBox struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// EmptyBoundingBox returns an inverted box that any Extend call will overwrite.
// An empty box reports false from Valid.
//
// Returns:
//   - BoundingBox: the empty box
func EmptyBoundingBox() BoundingBox {
	inf := float32(math.Inf(1))
	return BoundingBox{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

// NewBoundingBox builds a box from two arbitrary corners, ordering each axis.
//
// Parameters:
//   - a, b: opposite corners of the box
//
// Returns:
//   - BoundingBox: the box spanning both corners
func NewBoundingBox(a, b mgl32.Vec3) BoundingBox {
	bb := EmptyBoundingBox()
	bb.ExtendPoint(a)
	bb.ExtendPoint(b)
	return bb
}

// Valid reports whether Min <= Max on every axis.
func (bb BoundingBox) Valid() bool {
	return bb.Min[0] <= bb.Max[0] && bb.Min[1] <= bb.Max[1] && bb.Min[2] <= bb.Max[2]
}

// Center returns the midpoint of the box.
func (bb BoundingBox) Center() mgl32.Vec3 {
	return bb.Min.Add(bb.Max).Mul(0.5)
}

// Extent returns the half-size of the box on each axis.
func (bb BoundingBox) Extent() mgl32.Vec3 {
	return bb.Max.Sub(bb.Min).Mul(0.5)
}

// ExtendPoint grows the box to contain the point.
func (bb *BoundingBox) ExtendPoint(p mgl32.Vec3) {
	for axis := 0; axis < 3; axis++ {
		if p[axis] < bb.Min[axis] {
			bb.Min[axis] = p[axis]
		}
		if p[axis] > bb.Max[axis] {
			bb.Max[axis] = p[axis]
		}
	}
}

// Extend grows the box to contain another box. Invalid boxes are ignored.
func (bb *BoundingBox) Extend(other BoundingBox) {
	if !other.Valid() {
		return
	}
	bb.ExtendPoint(other.Min)
	bb.ExtendPoint(other.Max)
}

// Corners returns the eight corners of the box.
func (bb BoundingBox) Corners() [8]mgl32.Vec3 {
	return [8]mgl32.Vec3{
		{bb.Min[0], bb.Min[1], bb.Min[2]},
		{bb.Max[0], bb.Min[1], bb.Min[2]},
		{bb.Min[0], bb.Max[1], bb.Min[2]},
		{bb.Max[0], bb.Max[1], bb.Min[2]},
		{bb.Min[0], bb.Min[1], bb.Max[2]},
		{bb.Max[0], bb.Min[1], bb.Max[2]},
		{bb.Min[0], bb.Max[1], bb.Max[2]},
		{bb.Max[0], bb.Max[1], bb.Max[2]},
	}
}

// Transform returns the axis-aligned box enclosing this box after it has been
// transformed by m. All eight corners are transformed, so rotations produce a
// conservative (possibly larger) result.
//
// Parameters:
//   - m: the affine transform to apply (typically an object's world matrix)
//
// Returns:
//   - BoundingBox: the transformed box, or an empty box if this box is invalid
func (bb BoundingBox) Transform(m mgl32.Mat4) BoundingBox {
	out := EmptyBoundingBox()
	if !bb.Valid() {
		return out
	}
	for _, c := range bb.Corners() {
		out.ExtendPoint(mgl32.TransformCoordinate(c, m))
	}
	return out
}

// Overlaps reports whether two boxes share any volume (touching counts).
func (bb BoundingBox) Overlaps(other BoundingBox) bool {
	for axis := 0; axis < 3; axis++ {
		if bb.Max[axis] < other.Min[axis] || other.Max[axis] < bb.Min[axis] {
			return false
		}
	}
	return true
}
