package light

import (
	"math"

	"github.com/Carmen-Shannon/oxy-frames/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Variant is the type-specific payload of a Light. The set of implementations is
// closed: *Directional, *Spot and *Point.
type Variant interface {
	// Type returns the discriminant for this payload.
	Type() LightType

	// ShadowViewCount returns how many shadow views the payload expands into.
	ShadowViewCount() int

	// IntersectsView reports whether the light's area of influence can touch the view.
	// Directional lights always do.
	IntersectsView(view common.FrustumPlaneset) bool

	applyDefaults()
}

// Directional is the payload of a directional light.
type Directional struct {
	// Direction is the direction the light travels in (normalized on use).
	Direction mgl32.Vec3

	// ShadowHalfExtent is the half-size of the orthographic shadow box in world units.
	ShadowHalfExtent float32

	// ShadowNear and ShadowFar bound the orthographic shadow box along Direction.
	ShadowNear, ShadowFar float32
}

// Spot is the payload of a spot light.
type Spot struct {
	// Position is the world-space apex of the cone.
	Position mgl32.Vec3

	// Direction is the cone axis (normalized on use).
	Direction mgl32.Vec3

	// Range is the attenuation cutoff, also used as the shadow far plane.
	Range float32

	// InnerConeDeg and OuterConeDeg are cone half-angles in degrees.
	InnerConeDeg, OuterConeDeg float32

	// ShadowNear is the near plane of the shadow projection.
	ShadowNear float32
}

// Point is the payload of a point light. It expands into PointLightCubeFaceCount shadow views.
type Point struct {
	// Position is the world-space light origin.
	Position mgl32.Vec3

	// Range is the attenuation cutoff, also the far plane of every cube face.
	Range float32

	// ShadowNear is the near plane of every cube face.
	ShadowNear float32
}

var (
	_ Variant = &Directional{}
	_ Variant = &Spot{}
	_ Variant = &Point{}
)

func (d *Directional) Type() LightType      { return LightTypeDirectional }
func (d *Directional) ShadowViewCount() int { return 1 }

func (d *Directional) IntersectsView(common.FrustumPlaneset) bool {
	return true
}

func (d *Directional) applyDefaults() {
	if d.Direction.LenSqr() == 0 {
		d.Direction = mgl32.Vec3{0, -1, 0}
	}
	d.ShadowHalfExtent = common.Coalesce(d.ShadowHalfExtent, DefaultShadowHalfExtent)
	d.ShadowNear = common.Coalesce(d.ShadowNear, DefaultShadowNear)
	d.ShadowFar = common.Coalesce(d.ShadowFar, DefaultShadowFar)
}

// ViewProjection returns the orthographic light-space transform of a shadow box
// centered on focus (usually the main camera position).
//
// Parameters:
//   - focus: the world-space point the shadow box is centered on
//
// Returns:
//   - mgl32.Mat4: projection * view for the directional shadow map
func (d *Directional) ViewProjection(focus mgl32.Vec3) mgl32.Mat4 {
	dir := d.Direction.Normalize()
	dist := (d.ShadowNear + d.ShadowFar) * 0.5
	eye := focus.Sub(dir.Mul(dist))
	view := mgl32.LookAtV(eye, focus, upFor(dir))
	h := d.ShadowHalfExtent
	proj := mgl32.Ortho(-h, h, -h, h, d.ShadowNear, d.ShadowFar)
	return proj.Mul4(view)
}

func (s *Spot) Type() LightType      { return LightTypeSpot }
func (s *Spot) ShadowViewCount() int { return 1 }

// IntersectsView tests the spot's bounding sphere (apex, range) against the view.
func (s *Spot) IntersectsView(view common.FrustumPlaneset) bool {
	return view.IntersectsSphere(s.Position, s.Range)
}

func (s *Spot) applyDefaults() {
	if s.Direction.LenSqr() == 0 {
		s.Direction = mgl32.Vec3{0, -1, 0}
	}
	s.Range = common.Coalesce(s.Range, DefaultLightRange)
	s.InnerConeDeg = common.Coalesce(s.InnerConeDeg, DefaultSpotInnerConeDeg)
	s.OuterConeDeg = common.Coalesce(s.OuterConeDeg, DefaultSpotOuterConeDeg)
	s.ShadowNear = common.Coalesce(s.ShadowNear, DefaultShadowNear)
}

// ViewProjection returns the perspective transform covering the outer cone.
//
// Returns:
//   - mgl32.Mat4: projection * view for the spot shadow map
func (s *Spot) ViewProjection() mgl32.Mat4 {
	dir := s.Direction.Normalize()
	view := mgl32.LookAtV(s.Position, s.Position.Add(dir), upFor(dir))
	fov := mgl32.DegToRad(common.Clamp(2*s.OuterConeDeg, 1, 179))
	proj := mgl32.Perspective(fov, 1, s.ShadowNear, s.Range)
	return proj.Mul4(view)
}

// InnerCos returns cos(inner half-angle), the form consumed by shading.
func (s *Spot) InnerCos() float32 {
	return float32(math.Cos(float64(mgl32.DegToRad(s.InnerConeDeg))))
}

// OuterCos returns cos(outer half-angle), the form consumed by shading.
func (s *Spot) OuterCos() float32 {
	return float32(math.Cos(float64(mgl32.DegToRad(s.OuterConeDeg))))
}

func (p *Point) Type() LightType      { return LightTypePoint }
func (p *Point) ShadowViewCount() int { return PointLightCubeFaceCount }

// IntersectsView tests the light's range sphere against the view.
func (p *Point) IntersectsView(view common.FrustumPlaneset) bool {
	return view.IntersectsSphere(p.Position, p.Range)
}

func (p *Point) applyDefaults() {
	p.Range = common.Coalesce(p.Range, DefaultLightRange)
	p.ShadowNear = common.Coalesce(p.ShadowNear, DefaultShadowNear)
}

// FaceViewProjections returns one 90 degree perspective transform per cube face,
// in CubeFaces order (+X, -X, +Y, -Y, +Z, -Z).
//
// Returns:
//   - [PointLightCubeFaceCount]mgl32.Mat4: projection * view per face
func (p *Point) FaceViewProjections() [PointLightCubeFaceCount]mgl32.Mat4 {
	var out [PointLightCubeFaceCount]mgl32.Mat4
	proj := mgl32.Perspective(mgl32.DegToRad(90), 1, p.ShadowNear, p.Range)
	for i, face := range CubeFaces {
		view := mgl32.LookAtV(p.Position, p.Position.Add(face.Forward), face.Up)
		out[i] = proj.Mul4(view)
	}
	return out
}

// upFor picks an up vector that is not parallel to dir.
func upFor(dir mgl32.Vec3) mgl32.Vec3 {
	if abs32(dir.Y()) > 0.99 {
		return mgl32.Vec3{0, 0, 1}
	}
	return mgl32.Vec3{0, 1, 0}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
