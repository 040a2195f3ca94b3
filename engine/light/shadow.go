package light

import "github.com/go-gl/mathgl/mgl32"

// DefaultShadowHalfExtent is the default orthographic half-extent (in world units)
// used for the directional light shadow frustum. Controls how much of the scene
// around the camera center is captured in the shadow map.
const DefaultShadowHalfExtent float32 = 40.0

// DefaultShadowNear is the default near plane for every shadow projection.
const DefaultShadowNear float32 = 0.1

// DefaultShadowFar is the default far plane for the directional light's
// orthographic shadow projection.
const DefaultShadowFar float32 = 200.0

// DefaultLightRange is the attenuation range assigned to spot and point lights
// created without one.
const DefaultLightRange float32 = 10.0

// Default spot cone half-angles in degrees.
const (
	DefaultSpotInnerConeDeg float32 = 25.0
	DefaultSpotOuterConeDeg float32 = 35.0
)

// PointLightCubeFaceCount is the number of shadow views a point light expands into.
const PointLightCubeFaceCount = 6

// CubeFace is the look direction and up vector of one point light shadow face.
type CubeFace struct {
	Forward mgl32.Vec3
	Up      mgl32.Vec3
}

// CubeFaces lists the faces in cube map order: +X, -X, +Y, -Y, +Z, -Z.
var CubeFaces = [PointLightCubeFaceCount]CubeFace{
	{Forward: mgl32.Vec3{1, 0, 0}, Up: mgl32.Vec3{0, -1, 0}},
	{Forward: mgl32.Vec3{-1, 0, 0}, Up: mgl32.Vec3{0, -1, 0}},
	{Forward: mgl32.Vec3{0, 1, 0}, Up: mgl32.Vec3{0, 0, 1}},
	{Forward: mgl32.Vec3{0, -1, 0}, Up: mgl32.Vec3{0, 0, -1}},
	{Forward: mgl32.Vec3{0, 0, 1}, Up: mgl32.Vec3{0, -1, 0}},
	{Forward: mgl32.Vec3{0, 0, -1}, Up: mgl32.Vec3{0, -1, 0}},
}
