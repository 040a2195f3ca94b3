package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-frames/common"
	"github.com/Carmen-Shannon/oxy-frames/engine/game_object"
	"github.com/Carmen-Shannon/oxy-frames/engine/logging"
	"github.com/Carmen-Shannon/oxy-frames/engine/model"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitBox() common.BoundingBox {
	return common.NewBoundingBox(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})
}

func TestBuildBoundingBoxesTransformsToWorld(t *testing.T) {
	w := NewWorld()
	a := w.AddMesh(model.Mesh{LocalBounds: unitBox()})
	b := w.AddMesh(model.Mesh{LocalBounds: common.NewBoundingBox(mgl32.Vec3{2, 0, 0}, mgl32.Vec3{3, 1, 1})})
	mid := w.AddModel(model.NewModel(model.WithMeshes(a, b)))
	h := addObject(w, mid, mgl32.Vec3{10, 0, 0})

	bbh := NewBoundingBoxHierarchy(logging.NewNopLogger())
	objects := []common.Handle{h}
	bbh.BuildGameObjectBoundingBoxes(objects, w)
	bbh.BuildMeshBoundingBoxes(objects, w)

	require.Len(t, bbh.GameObjectBoundingBoxes, 1)
	assert.Equal(t, common.NewBoundingBox(mgl32.Vec3{9, -1, -1}, mgl32.Vec3{13, 1, 1}), bbh.GameObjectBoundingBoxes[0])
	assert.Equal(t, []common.Handle{h}, bbh.GameObjectBoundingBoxOwners)

	require.Len(t, bbh.MeshBoundingBoxes, 2)
	assert.Equal(t, []common.Handle{h, h}, bbh.MeshBoundingBoxOwners)
	assert.Equal(t, []model.MeshID{a, b}, bbh.MeshBoundingBoxMeshIDs)
	assert.GreaterOrEqual(t, len(bbh.MeshBoundingBoxes), len(bbh.GameObjectBoundingBoxes))
	assert.Equal(t, mgl32.Translate3D(10, 0, 0), bbh.MeshWorldMatrix(0))

	bbh.Clear()
	assert.Empty(t, bbh.GameObjectBoundingBoxes)
	assert.Empty(t, bbh.GameObjectBoundingBoxOwners)
	assert.Empty(t, bbh.MeshBoundingBoxes)
	assert.Empty(t, bbh.MeshBoundingBoxOwners)
	assert.Empty(t, bbh.MeshBoundingBoxMeshIDs)
}

func TestBuildBoundingBoxesMaterialOverride(t *testing.T) {
	w := NewWorld()
	base := w.AddMaterial(model.Material{Name: "base"})
	over := w.AddMaterial(model.Material{Name: "override"})
	mesh := w.AddMesh(model.Mesh{LocalBounds: unitBox(), DefaultMaterial: base})
	plain := w.AddModel(model.NewModel(model.WithMeshes(mesh)))
	tinted := w.AddModel(model.NewModel(model.WithMeshes(mesh), model.WithMaterialOverride(mesh, over)))

	bbh := NewBoundingBoxHierarchy(nil)
	bbh.BuildMeshBoundingBoxes([]common.Handle{addObject(w, plain, mgl32.Vec3{}), addObject(w, tinted, mgl32.Vec3{})}, w)
	require.Len(t, bbh.MeshBoundingBoxes, 2)
	assert.Equal(t, base, bbh.MeshMaterial(0))
	assert.Equal(t, over, bbh.MeshMaterial(1))
}

func TestBuildBoundingBoxesMissingData(t *testing.T) {
	w := NewWorld()
	declared := common.NewBoundingBox(mgl32.Vec3{-2, -2, -2}, mgl32.Vec3{2, 2, 2})

	pending := w.AddModel(model.NewModel(model.WithName("pending"), model.WithBounds(declared)))
	empty := w.AddModel(model.NewModel(model.WithName("empty")))
	broken := w.AddModel(model.NewModel(model.WithName("broken"), model.WithMeshes(model.MeshID(999))))

	withBounds := addObject(w, pending, mgl32.Vec3{1, 0, 0})
	noBounds := addObject(w, empty, mgl32.Vec3{})
	missingMesh := addObject(w, broken, mgl32.Vec3{})
	unknownModel := addObject(w, model.ModelID(42), mgl32.Vec3{})
	disabled := addObject(w, pending, mgl32.Vec3{}, game_object.WithEnabled(false))
	stale := addObject(w, pending, mgl32.Vec3{})
	require.True(t, w.RemoveGameObject(stale))
	noModel := w.AddGameObject(game_object.NewGameObject())

	objects := []common.Handle{withBounds, noBounds, missingMesh, unknownModel, disabled, stale, noModel}
	rec := logging.NewRecordingLogger()
	bbh := NewBoundingBoxHierarchy(rec)

	assert.NotPanics(t, func() {
		bbh.BuildGameObjectBoundingBoxes(objects, w)
		bbh.BuildMeshBoundingBoxes(objects, w)
	})

	require.Len(t, bbh.GameObjectBoundingBoxes, 1, "only the model with declared bounds yields an object box")
	assert.Equal(t, withBounds, bbh.GameObjectBoundingBoxOwners[0])
	assert.Equal(t, declared.Transform(mgl32.Translate3D(1, 0, 0)), bbh.GameObjectBoundingBoxes[0])
	assert.Empty(t, bbh.MeshBoundingBoxes, "unloaded models and unknown meshes contribute no mesh boxes")
	assert.Len(t, bbh.MeshBoundingBoxOwners, len(bbh.MeshBoundingBoxes))

	warnings := rec.Entries("WARN")
	assert.NotEmpty(t, warnings)
	debug := rec.Entries("DEBUG")
	assert.NotEmpty(t, debug, "unloaded models are reported at debug level")
}
