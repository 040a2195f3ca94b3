package common

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Plane represents a plane in 3D space using the equation: ax + by + cz + d = 0
// where (a, b, c) is the normal and d is the distance from origin.
type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

// SignedDistance returns the signed distance from the plane to a point.
// Positive values lie on the side the normal points towards.
//
// Parameters:
//   - p: the point to test
//
// Returns:
//   - float32: the signed distance
func (p Plane) SignedDistance(point mgl32.Vec3) float32 {
	return p.Normal.Dot(point) + p.Distance
}

// FrustumPlaneset represents the six planes of a view frustum for culling.
// Planes are oriented so that positive half-space is inside the frustum.
// A FrustumPlaneset is a pure value derived from a view-projection transform.
type FrustumPlaneset struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumPlane indices for clarity
const (
	FrustumLeft   = 0
	FrustumRight  = 1
	FrustumBottom = 2
	FrustumTop    = 3
	FrustumNear   = 4
	FrustumFar    = 5
)

// ExtractFrustumPlaneset extracts frustum planes from a view-projection matrix.
// The matrix should be the combined Projection * View matrix as produced by mgl32.
// Uses the Gribb/Hartmann method for plane extraction. The near plane assumes an
// OpenGL style clip space (-w <= z <= w), which is what mgl32.Perspective and
// mgl32.Ortho produce.
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - viewProj: the view-projection matrix
//
// Returns:
//   - FrustumPlaneset: the extracted frustum with normalized planes
func ExtractFrustumPlaneset(viewProj mgl32.Mat4) FrustumPlaneset {
	var f FrustumPlaneset

	r0 := viewProj.Row(0)
	r1 := viewProj.Row(1)
	r2 := viewProj.Row(2)
	r3 := viewProj.Row(3)

	f.Planes[FrustumLeft] = planeFromVec4(r3.Add(r0))
	f.Planes[FrustumRight] = planeFromVec4(r3.Sub(r0))
	f.Planes[FrustumBottom] = planeFromVec4(r3.Add(r1))
	f.Planes[FrustumTop] = planeFromVec4(r3.Sub(r1))
	f.Planes[FrustumNear] = planeFromVec4(r3.Add(r2))
	f.Planes[FrustumFar] = planeFromVec4(r3.Sub(r2))

	return f
}

// planeFromVec4 builds a normalized plane from the (a, b, c, d) coefficients.
func planeFromVec4(v mgl32.Vec4) Plane {
	p := Plane{
		Normal:   mgl32.Vec3{v[0], v[1], v[2]},
		Distance: v[3],
	}
	if length := p.Normal.Len(); length > 0 {
		invLen := 1.0 / length
		p.Normal = p.Normal.Mul(invLen)
		p.Distance *= invLen
	}
	return p
}

// IntersectsAABB reports whether the box is not fully outside any of the six planes.
// A box straddling a plane is kept, so the test never produces a false negative.
// For every plane only the corner furthest along the plane normal (the p-vertex) is tested.
//
// Parameters:
//   - bb: the world-space axis-aligned bounding box
//
// Returns:
//   - bool: true if the box is at least partially inside the frustum
func (f FrustumPlaneset) IntersectsAABB(bb BoundingBox) bool {
	for i := range f.Planes {
		p := &f.Planes[i]
		var pv mgl32.Vec3
		for axis := 0; axis < 3; axis++ {
			if p.Normal[axis] >= 0 {
				pv[axis] = bb.Max[axis]
			} else {
				pv[axis] = bb.Min[axis]
			}
		}
		if p.SignedDistance(pv) < 0 {
			return false
		}
	}
	return true
}

// IntersectsSphere reports whether a sphere is not fully outside any of the six planes.
//
// Parameters:
//   - center: the sphere center in world space
//   - radius: the sphere radius
//
// Returns:
//   - bool: true if the sphere is at least partially inside the frustum
func (f FrustumPlaneset) IntersectsSphere(center mgl32.Vec3, radius float32) bool {
	for i := range f.Planes {
		if f.Planes[i].SignedDistance(center) < -radius {
			return false
		}
	}
	return true
}

// ContainsPoint reports whether the point lies inside or on all six planes.
func (f FrustumPlaneset) ContainsPoint(point mgl32.Vec3) bool {
	for i := range f.Planes {
		if f.Planes[i].SignedDistance(point) < 0 {
			return false
		}
	}
	return true
}
