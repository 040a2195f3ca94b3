package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-frames/common"
	"github.com/Carmen-Shannon/oxy-frames/engine/camera"
	"github.com/Carmen-Shannon/oxy-frames/engine/game_object"
	"github.com/Carmen-Shannon/oxy-frames/engine/light"
	"github.com/Carmen-Shannon/oxy-frames/engine/model"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldIssuesMonotonicIDs(t *testing.T) {
	w := NewWorld()
	assert.NotEqual(t, uuid.Nil, w.SessionID())

	m1 := w.AddModel(model.NewModel())
	m2 := w.AddModel(model.NewModel())
	assert.Equal(t, model.ModelID(1), m1)
	assert.Equal(t, model.ModelID(2), m2)

	mesh := w.AddMesh(model.Mesh{ID: 77, Name: "quad"})
	got, ok := w.Mesh(mesh)
	require.True(t, ok)
	assert.Equal(t, mesh, got.ID, "the world assigns mesh IDs")

	c := camera.NewCamera()
	assert.Equal(t, camera.CameraID(1), w.AddCamera(c))
	assert.Equal(t, camera.CameraID(1), c.ID())

	l1 := w.AddLight(light.NewLight(&light.Point{}))
	l2 := w.AddLight(light.NewLight(&light.Spot{}))
	assert.True(t, w.RemoveLight(l1))
	assert.False(t, w.RemoveLight(l1))
	l3 := w.AddLight(light.NewLight(&light.Point{}))
	assert.Greater(t, l3, l2, "light IDs are never reused")

	lights := w.AppendLights(nil)
	require.Len(t, lights, 2)
	assert.Equal(t, l2, lights[0].ID())
	assert.Equal(t, l3, lights[1].ID())
}

func TestWorldRemoveGameObjectInvalidatesHandle(t *testing.T) {
	w := NewWorld()
	th := w.AddTransform(game_object.NewTransform(mgl32.Vec3{1, 2, 3}))
	h := w.AddGameObject(game_object.NewGameObject(game_object.WithTransform(th)))

	obj, ok := w.GameObject(h)
	require.True(t, ok)
	assert.Equal(t, uint64(1), obj.ID)
	assert.Equal(t, 1, w.ObjectCount())

	assert.True(t, w.RemoveGameObject(h))
	_, ok = w.GameObject(h)
	assert.False(t, ok)
	_, ok = w.Transform(th)
	assert.False(t, ok, "the object's transform is released with it")
	assert.False(t, w.RemoveGameObject(h))

	h2 := w.AddGameObject(game_object.NewGameObject())
	assert.NotEqual(t, h, h2)
	obj, _ = w.GameObject(h2)
	assert.Equal(t, uint64(2), obj.ID)
	assert.Equal(t, []common.Handle{h2}, w.AppendGameObjects(nil))
}

func TestWorldNilResourcesPanic(t *testing.T) {
	w := NewWorld()
	assert.Panics(t, func() { w.AddModel(nil) })
	assert.Panics(t, func() { w.AddLight(nil) })
	assert.Panics(t, func() { w.AddCamera(nil) })
}
