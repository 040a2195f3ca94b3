package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testViewProj looks down -Z from the origin with a 90 degree square frustum,
// so at depth d the side planes sit at x = +/-d and y = +/-d.
func testViewProj() mgl32.Mat4 {
	proj := mgl32.Perspective(mgl32.DegToRad(90), 1, 0.1, 100)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	return proj.Mul4(view)
}

func boxAround(c mgl32.Vec3, half float32) BoundingBox {
	h := mgl32.Vec3{half, half, half}
	return BoundingBox{Min: c.Sub(h), Max: c.Add(h)}
}

func TestExtractFrustumPlanesetNormalized(t *testing.T) {
	f := ExtractFrustumPlaneset(testViewProj())
	for i, p := range f.Planes {
		assert.InDelta(t, 1.0, p.Normal.Len(), 1e-5, "plane %d normal", i)
	}

	// Near plane faces down -Z and sits at z = -0.1.
	near := f.Planes[FrustumNear]
	assert.InDelta(t, -1.0, near.Normal.Z(), 1e-4)
	assert.InDelta(t, 0.0, near.SignedDistance(mgl32.Vec3{0, 0, -0.1}), 1e-3)
}

func TestIntersectsAABB(t *testing.T) {
	f := ExtractFrustumPlaneset(testViewProj())

	tests := []struct {
		name string
		box  BoundingBox
		want bool
	}{
		{"fully inside", boxAround(mgl32.Vec3{0, 0, -10}, 1), true},
		{"behind camera", boxAround(mgl32.Vec3{0, 0, 10}, 1), false},
		{"beyond far plane", boxAround(mgl32.Vec3{0, 0, -200}, 1), false},
		{"far left", boxAround(mgl32.Vec3{-50, 0, -10}, 1), false},
		{"far above", boxAround(mgl32.Vec3{0, 50, -10}, 1), false},
		{"straddles left plane", boxAround(mgl32.Vec3{-10, 0, -10}, 1), true},
		{"straddles top plane", boxAround(mgl32.Vec3{0, 10, -10}, 1), true},
		{"straddles near plane", boxAround(mgl32.Vec3{0, 0, 0}, 0.5), true},
		{"straddles far plane", boxAround(mgl32.Vec3{0, 0, -100}, 2), true},
		{"encloses frustum", boxAround(mgl32.Vec3{0, 0, 0}, 500), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.IntersectsAABB(tt.box))
		})
	}
}

func TestIntersectsSphere(t *testing.T) {
	f := ExtractFrustumPlaneset(testViewProj())

	assert.True(t, f.IntersectsSphere(mgl32.Vec3{0, 0, -10}, 1))
	assert.True(t, f.IntersectsSphere(mgl32.Vec3{0, 0, 2}, 3), "sphere reaching past the near plane")
	assert.False(t, f.IntersectsSphere(mgl32.Vec3{0, 0, 20}, 3))
	assert.False(t, f.IntersectsSphere(mgl32.Vec3{-40, 0, -10}, 5))
}

func TestContainsPoint(t *testing.T) {
	f := ExtractFrustumPlaneset(testViewProj())
	require.True(t, f.ContainsPoint(mgl32.Vec3{0, 0, -1}))
	require.False(t, f.ContainsPoint(mgl32.Vec3{0, 0, 1}))
}
