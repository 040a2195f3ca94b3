package scene

import (
	"github.com/Carmen-Shannon/oxy-frames/common"
	"github.com/Carmen-Shannon/oxy-frames/engine/light"
	"github.com/Carmen-Shannon/oxy-frames/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// PostProcessParameters carries tone-mapping settings from frame to frame.
type PostProcessParameters struct {
	Exposure float32
	Gamma    float32
}

// SceneParameters carries scene-wide shading settings and debug draw toggles from
// frame to frame.
type SceneParameters struct {
	AmbientColor    mgl32.Vec3
	DrawLightBounds bool
	DrawLightMeshes bool
}

// MeshRenderCommand draws one mesh in the main view.
type MeshRenderCommand struct {
	MeshID   model.MeshID
	World    mgl32.Mat4
	Normal   mgl32.Mat4
	Material model.MaterialID
}

// ShadowMeshRenderCommand draws one mesh into a shadow map.
type ShadowMeshRenderCommand struct {
	MeshID        model.MeshID
	World         mgl32.Mat4
	WorldViewProj mgl32.Mat4
}

// LightRenderCommand draws the debug mesh of a light.
type LightRenderCommand struct {
	LightID light.LightID
	Type    light.LightType
	Color   mgl32.Vec3
	World   mgl32.Mat4
}

// LightBoundsRenderCommand draws the range sphere of a spot or point light.
type LightBoundsRenderCommand struct {
	LightID light.LightID
	World   mgl32.Mat4
}

// FrameStats are per-frame counters filled by Update.
type FrameStats struct {
	ObjectCount        int
	VisibleObjectCount int
	VisibleMeshCount   int
	ShadowViewCount    int
	ShadowCommandCount int
}

// SceneView is the main-view half of a frame slot. It is overwritten in place by
// the Update stage and read by the Render stage once the slot is handed over.
type SceneView struct {
	View              mgl32.Mat4
	ViewInverse       mgl32.Mat4
	Projection        mgl32.Mat4
	ProjectionInverse mgl32.Mat4
	ViewProjection    mgl32.Mat4
	Frustum           common.FrustumPlaneset

	CameraPosition      mgl32.Vec3
	CameraYaw           float32
	CameraPitch         float32
	MainViewCameraIndex int

	PostProcess PostProcessParameters
	Scene       SceneParameters

	Lighting light.LightingData

	MeshRenderCommands        []MeshRenderCommand
	LightRenderCommands       []LightRenderCommand
	LightBoundsRenderCommands []LightBoundsRenderCommand

	Stats FrameStats
}

// reset truncates every command list, keeping capacity.
func (v *SceneView) reset() {
	v.MeshRenderCommands = v.MeshRenderCommands[:0]
	v.LightRenderCommands = v.LightRenderCommands[:0]
	v.LightBoundsRenderCommands = v.LightBoundsRenderCommands[:0]
	v.Lighting.Reset()
	v.Stats = FrameStats{}
}

// ShadowView is one shadow map's camera and its draw list.
type ShadowView struct {
	LightID                  light.LightID
	ViewProjection           mgl32.Mat4
	Frustum                  common.FrustumPlaneset
	VisibleObjectCount       int
	ShadowMeshRenderCommands []ShadowMeshRenderCommand
}

func (v *ShadowView) reset(id light.LightID, viewProj mgl32.Mat4) {
	v.LightID = id
	v.ViewProjection = viewProj
	v.Frustum = common.ExtractFrustumPlaneset(viewProj)
	v.VisibleObjectCount = 0
	v.ShadowMeshRenderCommands = v.ShadowMeshRenderCommands[:0]
}

// LinearDepth is what a point light's shadow pass needs to store linear distance.
type LinearDepth struct {
	Range    float32
	Position mgl32.Vec3
}

// PointShadowView holds the six cube faces of a point light, in light.CubeFaces order.
type PointShadowView struct {
	LightID     light.LightID
	Faces       [light.PointLightCubeFaceCount]ShadowView
	LinearDepth LinearDepth
}

// SceneShadowView is the shadow half of a frame slot.
type SceneShadowView struct {
	HasDirectional bool
	Directional    ShadowView
	Spots          []ShadowView
	Points         []PointShadowView
}

// ActiveSpotCount returns the number of spot shadow views this frame.
func (s *SceneShadowView) ActiveSpotCount() int {
	return len(s.Spots)
}

// ActivePointCount returns the number of point shadow views this frame.
func (s *SceneShadowView) ActivePointCount() int {
	return len(s.Points)
}

// ViewCount returns the number of individual shadow maps this frame.
func (s *SceneShadowView) ViewCount() int {
	n := len(s.Spots) + len(s.Points)*light.PointLightCubeFaceCount
	if s.HasDirectional {
		n++
	}
	return n
}

// resize sets the spot and point view counts, reusing element storage from earlier
// frames. Pointers into Spots and Points stay valid until the next resize.
func (s *SceneShadowView) resize(spots, points int) {
	s.HasDirectional = false
	s.Spots = resizeReuse(s.Spots, spots)
	s.Points = resizeReuse(s.Points, points)
}

func resizeReuse[T any](v []T, n int) []T {
	if n <= cap(v) {
		return v[:n]
	}
	grown := make([]T, n)
	copy(grown, v[:cap(v)])
	return grown
}

// FrameData is everything the Render stage reads for one slot.
type FrameData struct {
	Slot    int
	Frame   uint64
	View    *SceneView
	Shadows *SceneShadowView
}
