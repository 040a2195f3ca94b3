package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-frames/common"
	"github.com/Carmen-Shannon/oxy-frames/engine/light"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveAndCulledLightIndices(t *testing.T) {
	lights := []light.Light{
		light.NewLight(&light.Directional{}, light.WithCastsShadows(true)),
		light.NewLight(&light.Directional{}, light.WithCastsShadows(true)), // second directional ignored
		light.NewLight(&light.Spot{}, light.WithCastsShadows(false)),
		light.NewLight(&light.Spot{}, light.WithCastsShadows(true), light.WithEnabled(false)),
		light.NewLight(&light.Point{}, light.WithCastsShadows(true)),
		nil,
	}
	got := ActiveAndCulledLightIndices(make([]int, 3), lights, common.FrustumPlaneset{}, false)
	assert.Equal(t, []int{0, 4}, got)
}

func TestGatherSceneLightDataSplitsCasters(t *testing.T) {
	lights := []light.Light{
		light.NewLight(&light.Directional{Direction: mgl32.Vec3{0, -2, 0}}),
		light.NewLight(&light.Directional{Direction: mgl32.Vec3{1, -1, 0}}, light.WithCastsShadows(true)),
		light.NewLight(&light.Spot{Position: mgl32.Vec3{1, 2, 3}}, light.WithCastsShadows(true)),
		light.NewLight(&light.Spot{}),
		light.NewLight(&light.Point{}, light.WithEnabled(false)),
		light.NewLight(&light.Point{Range: 4}),
	}
	for i, l := range lights {
		l.SetID(light.LightID(i + 1))
	}
	active := ActiveAndCulledLightIndices(nil, lights, common.FrustumPlaneset{}, false)
	require.Equal(t, []int{1, 2}, active)

	var data light.LightingData
	GatherSceneLightData(&data, lights, active, mgl32.Vec3{}, 0)

	assert.True(t, data.HasDirectional)
	assert.True(t, data.Directional.CastsShadows, "the shadow-casting directional wins")
	assert.True(t, data.Directional.Direction.ApproxEqual(mgl32.Vec3{1, -1, 0}.Normalize()))
	require.Len(t, data.SpotCasters, 1)
	assert.Equal(t, light.LightID(3), data.SpotCasters[0].ID)
	assert.Len(t, data.Spots, 1)
	assert.Equal(t, 2, data.NumSpotLights())
	assert.Empty(t, data.PointCasters)
	require.Len(t, data.Points, 1)
	assert.Equal(t, float32(4), data.Points[0].Range)

	GatherSceneLightData(&data, nil, nil, mgl32.Vec3{}, 0)
	assert.False(t, data.HasDirectional, "gathering resets the block")
	assert.Equal(t, 0, data.NumPointLights())
}

func TestDirectionalShadowHalfExtentOverride(t *testing.T) {
	d := &light.Directional{}
	light.NewLight(d)
	assert.Equal(t, d.ViewProjection(mgl32.Vec3{}), directionalShadowTransform(d, mgl32.Vec3{}, 0))

	wide := directionalShadowTransform(d, mgl32.Vec3{}, 100)
	f := common.ExtractFrustumPlaneset(wide)
	assert.True(t, f.ContainsPoint(mgl32.Vec3{90, 0, 0}))
	assert.Equal(t, light.DefaultShadowHalfExtent, d.ShadowHalfExtent, "the light itself is untouched")
}

func TestPrepareLightMeshRenderParams(t *testing.T) {
	lights := []light.Light{
		light.NewLight(&light.Directional{}),
		light.NewLight(&light.Spot{Position: mgl32.Vec3{1, 0, 0}, Range: 3}),
		light.NewLight(&light.Point{Position: mgl32.Vec3{0, 2, 0}, Range: 5}, light.WithColor(1, 0, 0)),
		light.NewLight(&light.Point{}, light.WithEnabled(false)),
	}

	var view SceneView
	PrepareLightMeshRenderParams(&view, lights)
	assert.Empty(t, view.LightRenderCommands)
	assert.Empty(t, view.LightBoundsRenderCommands)

	view.Scene = SceneParameters{DrawLightMeshes: true, DrawLightBounds: true}
	PrepareLightMeshRenderParams(&view, lights)
	require.Len(t, view.LightRenderCommands, 2)
	require.Len(t, view.LightBoundsRenderCommands, 2)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, view.LightRenderCommands[1].Color)

	bounds := view.LightBoundsRenderCommands[1].World
	assert.Equal(t, mgl32.Translate3D(0, 2, 0).Mul4(mgl32.Scale3D(5, 5, 5)), bounds)
}
