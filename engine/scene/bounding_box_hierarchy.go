package scene

import (
	"github.com/Carmen-Shannon/oxy-frames/common"
	"github.com/Carmen-Shannon/oxy-frames/engine/game_object"
	"github.com/Carmen-Shannon/oxy-frames/engine/logging"
	"github.com/Carmen-Shannon/oxy-frames/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// BoundingBoxHierarchy holds the world-space boxes rebuilt every frame for culling.
//
// The object set has one box per enabled object with a model; the mesh set has one
// box per mesh of every loaded model. Each set keeps a parallel owner array so a
// culled index maps straight back to the object (and, for meshes, the mesh ID).
type BoundingBoxHierarchy struct {
	GameObjectBoundingBoxes     []common.BoundingBox
	GameObjectBoundingBoxOwners []common.Handle

	MeshBoundingBoxes      []common.BoundingBox
	MeshBoundingBoxOwners  []common.Handle
	MeshBoundingBoxMeshIDs []model.MeshID

	// per-mesh draw data, parallel to MeshBoundingBoxes
	meshWorlds    []mgl32.Mat4
	meshNormals   []mgl32.Mat4
	meshMaterials []model.MaterialID

	logger logging.Logger
}

// NewBoundingBoxHierarchy creates an empty hierarchy.
//
// Parameters:
//   - logger: receives missing-resource warnings (nil uses a no-op logger)
//
// Returns:
//   - *BoundingBoxHierarchy: the new hierarchy
func NewBoundingBoxHierarchy(logger logging.Logger) *BoundingBoxHierarchy {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &BoundingBoxHierarchy{logger: logger}
}

// Clear truncates every array, keeping capacity.
func (b *BoundingBoxHierarchy) Clear() {
	b.GameObjectBoundingBoxes = b.GameObjectBoundingBoxes[:0]
	b.GameObjectBoundingBoxOwners = b.GameObjectBoundingBoxOwners[:0]
	b.MeshBoundingBoxes = b.MeshBoundingBoxes[:0]
	b.MeshBoundingBoxOwners = b.MeshBoundingBoxOwners[:0]
	b.MeshBoundingBoxMeshIDs = b.MeshBoundingBoxMeshIDs[:0]
	b.meshWorlds = b.meshWorlds[:0]
	b.meshNormals = b.meshNormals[:0]
	b.meshMaterials = b.meshMaterials[:0]
}

// resolve returns the object, its world transform and its model, or ok=false when
// the object is disabled, modelless or references something missing.
func (b *BoundingBoxHierarchy) resolve(h common.Handle, w *World) (*game_object.GameObject, *game_object.Transform, model.Model, bool) {
	obj, ok := w.GameObject(h)
	if !ok {
		b.logger.Warnf("stale game object handle %d", h.Index())
		return nil, nil, nil, false
	}
	if !obj.Enabled || !obj.HasModel() {
		return nil, nil, nil, false
	}
	t, ok := w.Transform(obj.Transform)
	if !ok {
		b.logger.Warnf("game object %d has no transform", obj.ID)
		return nil, nil, nil, false
	}
	m, ok := w.Model(obj.Model)
	if !ok {
		b.logger.Warnf("game object %d references unknown model %d", obj.ID, obj.Model)
		return nil, nil, nil, false
	}
	return obj, t, m, true
}

// BuildGameObjectBoundingBoxes appends one world-space box per enabled object.
// The box is the union of the model's mesh boxes under the object's world matrix,
// or the model's declared bounds while its meshes are not loaded. Objects with
// neither are skipped with a warning.
//
// Parameters:
//   - objects: the candidate object handles
//   - w: the world resolving handles and IDs
func (b *BoundingBoxHierarchy) BuildGameObjectBoundingBoxes(objects []common.Handle, w *World) {
	for _, h := range objects {
		obj, t, m, ok := b.resolve(h, w)
		if !ok {
			continue
		}
		worldMat := t.WorldMatrix()

		bb := common.EmptyBoundingBox()
		for _, id := range m.Meshes() {
			mesh, ok := w.Mesh(id)
			if !ok {
				continue
			}
			bb.Extend(mesh.LocalBounds.Transform(worldMat))
		}
		if !bb.Valid() {
			declared, ok := m.Bounds()
			if !ok {
				b.logger.Warnf("model %s (%s) has no meshes or bounds, skipping object %d", m.Name(), m.AssetID(), obj.ID)
				continue
			}
			bb = declared.Transform(worldMat)
		}

		b.GameObjectBoundingBoxes = append(b.GameObjectBoundingBoxes, bb)
		b.GameObjectBoundingBoxOwners = append(b.GameObjectBoundingBoxOwners, h)
	}
}

// BuildMeshBoundingBoxes appends one world-space box per mesh of every enabled object
// whose model is loaded. Unloaded models contribute nothing; unknown meshes are
// skipped with a warning.
//
// Parameters:
//   - objects: the candidate object handles
//   - w: the world resolving handles and IDs
func (b *BoundingBoxHierarchy) BuildMeshBoundingBoxes(objects []common.Handle, w *World) {
	for _, h := range objects {
		obj, t, m, ok := b.resolve(h, w)
		if !ok {
			continue
		}
		if !m.Loaded() {
			b.logger.Debugf("model %s (%s) not loaded yet", m.Name(), m.AssetID())
			continue
		}
		worldMat := t.WorldMatrix()
		normalMat := t.NormalMatrix()

		for _, id := range m.Meshes() {
			mesh, ok := w.Mesh(id)
			if !ok {
				b.logger.Warnf("model %s references unknown mesh %d on object %d", m.Name(), id, obj.ID)
				continue
			}
			mat := mesh.DefaultMaterial
			if override, ok := m.MaterialOverride(id); ok {
				mat = override
			}

			b.MeshBoundingBoxes = append(b.MeshBoundingBoxes, mesh.LocalBounds.Transform(worldMat))
			b.MeshBoundingBoxOwners = append(b.MeshBoundingBoxOwners, h)
			b.MeshBoundingBoxMeshIDs = append(b.MeshBoundingBoxMeshIDs, id)
			b.meshWorlds = append(b.meshWorlds, worldMat)
			b.meshNormals = append(b.meshNormals, normalMat)
			b.meshMaterials = append(b.meshMaterials, mat)
		}
	}
}

// MeshWorldMatrix returns the world matrix of mesh box i.
func (b *BoundingBoxHierarchy) MeshWorldMatrix(i int) mgl32.Mat4 {
	return b.meshWorlds[i]
}

// MeshMaterial returns the resolved material of mesh box i.
func (b *BoundingBoxHierarchy) MeshMaterial(i int) model.MaterialID {
	return b.meshMaterials[i]
}
