package light

import (
	"github.com/go-gl/mathgl/mgl32"
)

// DirectionalLightData is the shading-facing record of the directional light.
type DirectionalLightData struct {
	Color          mgl32.Vec3
	Intensity      float32
	Direction      mgl32.Vec3
	CastsShadows   bool
	ViewProjection mgl32.Mat4 // valid only when CastsShadows
}

// SpotLightData is the shading-facing record of one spot light.
type SpotLightData struct {
	ID             LightID
	Color          mgl32.Vec3
	Intensity      float32
	Position       mgl32.Vec3
	Range          float32
	Direction      mgl32.Vec3
	InnerCos       float32 // cos(inner half-angle)
	OuterCos       float32 // cos(outer half-angle)
	ViewProjection mgl32.Mat4
}

// PointLightData is the shading-facing record of one point light.
type PointLightData struct {
	ID        LightID
	Color     mgl32.Vec3
	Intensity float32
	Position  mgl32.Vec3
	Range     float32
}

// LightingData is the per-frame lighting block consumed by shading.
// Shadow casters are stored apart from non-casters so shading can index the
// caster arrays with the same index used for their shadow maps.
type LightingData struct {
	HasDirectional bool
	Directional    DirectionalLightData

	SpotCasters  []SpotLightData
	Spots        []SpotLightData
	PointCasters []PointLightData
	Points       []PointLightData
}

// Reset empties the block while keeping slice capacity for reuse next frame.
func (d *LightingData) Reset() {
	d.HasDirectional = false
	d.Directional = DirectionalLightData{}
	d.SpotCasters = d.SpotCasters[:0]
	d.Spots = d.Spots[:0]
	d.PointCasters = d.PointCasters[:0]
	d.Points = d.Points[:0]
}

// NumSpotLights returns the total spot light count (casters and non-casters).
func (d *LightingData) NumSpotLights() int {
	return len(d.SpotCasters) + len(d.Spots)
}

// NumPointLights returns the total point light count (casters and non-casters).
func (d *LightingData) NumPointLights() int {
	return len(d.PointCasters) + len(d.Points)
}

// NewSpotLightData builds the shading record for a spot light.
//
// Parameters:
//   - l: the light (must carry a *Spot payload)
//   - s: the light's spot payload
//
// Returns:
//   - SpotLightData: the populated record including its shadow transform
func NewSpotLightData(l Light, s *Spot) SpotLightData {
	return SpotLightData{
		ID:             l.ID(),
		Color:          l.Color(),
		Intensity:      l.Intensity(),
		Position:       s.Position,
		Range:          s.Range,
		Direction:      s.Direction.Normalize(),
		InnerCos:       s.InnerCos(),
		OuterCos:       s.OuterCos(),
		ViewProjection: s.ViewProjection(),
	}
}

// NewPointLightData builds the shading record for a point light.
func NewPointLightData(l Light, p *Point) PointLightData {
	return PointLightData{
		ID:        l.ID(),
		Color:     l.Color(),
		Intensity: l.Intensity(),
		Position:  p.Position,
		Range:     p.Range,
	}
}
