package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestBoundingBoxTransformTranslate(t *testing.T) {
	bb := boxAround(mgl32.Vec3{}, 1)
	out := bb.Transform(mgl32.Translate3D(5, 0, 0))

	assert.True(t, out.Min.ApproxEqualThreshold(mgl32.Vec3{4, -1, -1}, 1e-5))
	assert.True(t, out.Max.ApproxEqualThreshold(mgl32.Vec3{6, 1, 1}, 1e-5))
}

func TestBoundingBoxTransformRotateIsConservative(t *testing.T) {
	bb := boxAround(mgl32.Vec3{}, 1)
	out := bb.Transform(mgl32.HomogRotate3DY(mgl32.DegToRad(45)))

	// A unit cube rotated 45 degrees about Y spans sqrt(2) on X and Z.
	assert.InDelta(t, 1.41421, out.Max.X(), 1e-4)
	assert.InDelta(t, 1.41421, out.Max.Z(), 1e-4)
	assert.InDelta(t, 1.0, out.Max.Y(), 1e-5)
}

func TestBoundingBoxEmptyAndExtend(t *testing.T) {
	bb := EmptyBoundingBox()
	assert.False(t, bb.Valid())
	assert.False(t, bb.Transform(mgl32.Ident4()).Valid())

	bb.Extend(EmptyBoundingBox())
	assert.False(t, bb.Valid(), "extending by an empty box keeps it empty")

	bb.Extend(NewBoundingBox(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{-1, 0, 1}))
	bb.ExtendPoint(mgl32.Vec3{4, 0, 0})
	assert.True(t, bb.Valid())
	assert.Equal(t, mgl32.Vec3{-1, 0, 0}, bb.Min)
	assert.Equal(t, mgl32.Vec3{4, 2, 3}, bb.Max)
	assert.Equal(t, mgl32.Vec3{1.5, 1, 1.5}, bb.Center())
}

func TestBoundingBoxOverlaps(t *testing.T) {
	a := boxAround(mgl32.Vec3{}, 1)
	assert.True(t, a.Overlaps(boxAround(mgl32.Vec3{1.5, 0, 0}, 1)))
	assert.True(t, a.Overlaps(boxAround(mgl32.Vec3{2, 0, 0}, 1)), "touching counts")
	assert.False(t, a.Overlaps(boxAround(mgl32.Vec3{3, 0, 0}, 1)))
}
