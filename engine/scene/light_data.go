package scene

import (
	"github.com/Carmen-Shannon/oxy-frames/common"
	"github.com/Carmen-Shannon/oxy-frames/engine/light"
	"github.com/go-gl/mathgl/mgl32"
)

// lightMeshScale is the uniform scale of the debug mesh drawn at a light's position.
const lightMeshScale = 0.25

// ActiveAndCulledLightIndices selects the lights that produce shadow views this frame:
// enabled shadow casters, in input order. Only the first such directional light is
// kept. With viewCulling set, spot and point lights whose range sphere misses the
// main view are dropped as well.
//
// Parameters:
//   - dst: destination slice, reused (truncated) by the call
//   - lights: the scene's lights in registration order
//   - view: the main view frustum
//   - viewCulling: whether to apply the main-view pre-cull
//
// Returns:
//   - []int: ascending indices into lights
func ActiveAndCulledLightIndices(dst []int, lights []light.Light, view common.FrustumPlaneset, viewCulling bool) []int {
	dst = dst[:0]
	hasDirectional := false
	for i, l := range lights {
		if l == nil || !l.ShadowCaster() {
			continue
		}
		if l.Type() == light.LightTypeDirectional {
			if hasDirectional {
				continue
			}
			hasDirectional = true
		}
		if viewCulling && !l.Variant().IntersectsView(view) {
			continue
		}
		dst = append(dst, i)
	}
	return dst
}

// directionalShadowTransform returns the orthographic shadow transform of d centered
// on focus. A positive halfExtent overrides the light's own box size.
func directionalShadowTransform(d *light.Directional, focus mgl32.Vec3, halfExtent float32) mgl32.Mat4 {
	if halfExtent > 0 && halfExtent != d.ShadowHalfExtent {
		sized := *d
		sized.ShadowHalfExtent = halfExtent
		return sized.ViewProjection(focus)
	}
	return d.ViewProjection(focus)
}

// GatherSceneLightData fills the lighting block consumed by shading. Spot and point
// lights listed in active go to the caster arrays in the same order their shadow
// views are assembled in; the remaining enabled lights go to the plain arrays.
// The scene's directional light is the active one if any, else the first enabled one.
//
// Parameters:
//   - dst: the block to fill; it is reset first
//   - lights: the scene's lights in registration order
//   - active: the result of ActiveAndCulledLightIndices for the same lights
//   - focus: the point the directional shadow box is centered on
//   - shadowHalfExtent: directional shadow box override, or 0 to use the light's own
func GatherSceneLightData(dst *light.LightingData, lights []light.Light, active []int, focus mgl32.Vec3, shadowHalfExtent float32) {
	dst.Reset()
	next := 0
	for i, l := range lights {
		isActive := next < len(active) && active[next] == i
		if isActive {
			next++
		}
		if l == nil || !l.Enabled() {
			continue
		}

		switch v := l.Variant().(type) {
		case *light.Directional:
			// a shadow-casting directional light replaces a plain one found earlier
			if dst.HasDirectional && (dst.Directional.CastsShadows || !isActive) {
				continue
			}
			dst.HasDirectional = true
			dst.Directional = light.DirectionalLightData{
				Color:        l.Color(),
				Intensity:    l.Intensity(),
				Direction:    v.Direction.Normalize(),
				CastsShadows: isActive,
			}
			if isActive {
				dst.Directional.ViewProjection = directionalShadowTransform(v, focus, shadowHalfExtent)
			}
		case *light.Spot:
			if isActive {
				dst.SpotCasters = append(dst.SpotCasters, light.NewSpotLightData(l, v))
			} else {
				dst.Spots = append(dst.Spots, light.NewSpotLightData(l, v))
			}
		case *light.Point:
			if isActive {
				dst.PointCasters = append(dst.PointCasters, light.NewPointLightData(l, v))
			} else {
				dst.Points = append(dst.Points, light.NewPointLightData(l, v))
			}
		}
	}
}

// PrepareLightMeshRenderParams emits the debug draw commands for lights: a small mesh
// at every enabled positional light when DrawLightMeshes is set, and a range sphere
// when DrawLightBounds is set. Directional lights have no position and emit nothing.
//
// Parameters:
//   - view: the view whose SceneParameters select what to draw and which receives the commands
//   - lights: the scene's lights
func PrepareLightMeshRenderParams(view *SceneView, lights []light.Light) {
	params := view.Scene
	if !params.DrawLightMeshes && !params.DrawLightBounds {
		return
	}
	for _, l := range lights {
		if l == nil || !l.Enabled() {
			continue
		}

		var pos mgl32.Vec3
		var rng float32
		switch v := l.Variant().(type) {
		case *light.Spot:
			pos, rng = v.Position, v.Range
		case *light.Point:
			pos, rng = v.Position, v.Range
		default:
			continue
		}
		translate := mgl32.Translate3D(pos.X(), pos.Y(), pos.Z())

		if params.DrawLightMeshes {
			view.LightRenderCommands = append(view.LightRenderCommands, LightRenderCommand{
				LightID: l.ID(),
				Type:    l.Type(),
				Color:   l.Color(),
				World:   translate.Mul4(mgl32.Scale3D(lightMeshScale, lightMeshScale, lightMeshScale)),
			})
		}
		if params.DrawLightBounds {
			view.LightBoundsRenderCommands = append(view.LightBoundsRenderCommands, LightBoundsRenderCommand{
				LightID: l.ID(),
				World:   translate.Mul4(mgl32.Scale3D(rng, rng, rng)),
			})
		}
	}
}
