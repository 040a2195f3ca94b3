package scene

import (
	"github.com/Carmen-Shannon/oxy-frames/common"
	"github.com/Carmen-Shannon/oxy-frames/engine/camera"
	"github.com/Carmen-Shannon/oxy-frames/engine/game_object"
	"github.com/Carmen-Shannon/oxy-frames/engine/light"
	"github.com/Carmen-Shannon/oxy-frames/engine/model"
	"github.com/google/uuid"
)

// World owns every scene resource: game objects and transforms in generation-checked
// arenas, and models, meshes, materials, lights and cameras keyed by IDs issued from
// monotonic counters. IDs are never reused within a session.
//
// A World is not safe for concurrent use. Populate it before the engine runs, then
// mutate it only from the Update stage (for example from an update callback).
type World struct {
	sessionID uuid.UUID

	objects    *common.Arena[game_object.GameObject]
	transforms *common.Arena[game_object.Transform]

	models    map[model.ModelID]model.Model
	meshes    map[model.MeshID]model.Mesh
	materials map[model.MaterialID]model.Material

	lights     map[light.LightID]light.Light
	lightOrder []light.LightID

	cameras []camera.Camera

	nextObjectID   uint64
	nextModelID    model.ModelID
	nextMeshID     model.MeshID
	nextMaterialID model.MaterialID
	nextLightID    light.LightID
	nextCameraID   camera.CameraID
}

// NewWorld creates an empty World with a fresh session ID.
//
// Returns:
//   - *World: the new world
func NewWorld() *World {
	return &World{
		sessionID:      uuid.New(),
		objects:        common.NewArena[game_object.GameObject](64),
		transforms:     common.NewArena[game_object.Transform](64),
		models:         make(map[model.ModelID]model.Model),
		meshes:         make(map[model.MeshID]model.Mesh),
		materials:      make(map[model.MaterialID]model.Material),
		lights:         make(map[light.LightID]light.Light),
		nextObjectID:   1,
		nextModelID:    1,
		nextMeshID:     1,
		nextMaterialID: 1,
		nextLightID:    1,
		nextCameraID:   1,
	}
}

// SessionID identifies this world instance in logs.
func (w *World) SessionID() uuid.UUID {
	return w.sessionID
}

// AddTransform stores a transform and returns its handle.
//
// Parameters:
//   - t: the transform
//
// Returns:
//   - common.Handle: the handle to reference the transform from a GameObject
func (w *World) AddTransform(t game_object.Transform) common.Handle {
	return w.transforms.Acquire(t)
}

// Transform resolves a transform handle. The pointer may be mutated in place and is
// valid until the transform arena grows.
func (w *World) Transform(h common.Handle) (*game_object.Transform, bool) {
	return w.transforms.Get(h)
}

// AddModel registers a model and assigns it the next model ID.
//
// Parameters:
//   - m: the model (must not be nil)
//
// Returns:
//   - model.ModelID: the assigned ID
func (w *World) AddModel(m model.Model) model.ModelID {
	if m == nil {
		panic("scene: AddModel requires a non-nil Model")
	}
	id := w.nextModelID
	w.nextModelID++
	m.SetID(id)
	w.models[id] = m
	return id
}

// Model looks up a model by ID.
func (w *World) Model(id model.ModelID) (model.Model, bool) {
	m, ok := w.models[id]
	return m, ok
}

// AddMesh registers a mesh descriptor and assigns it the next mesh ID.
//
// Parameters:
//   - mesh: the mesh descriptor; its ID field is overwritten
//
// Returns:
//   - model.MeshID: the assigned ID
func (w *World) AddMesh(mesh model.Mesh) model.MeshID {
	mesh.ID = w.nextMeshID
	w.nextMeshID++
	w.meshes[mesh.ID] = mesh
	return mesh.ID
}

// Mesh looks up a mesh descriptor by ID.
func (w *World) Mesh(id model.MeshID) (model.Mesh, bool) {
	m, ok := w.meshes[id]
	return m, ok
}

// AddMaterial registers a material and assigns it the next material ID.
func (w *World) AddMaterial(mat model.Material) model.MaterialID {
	mat.ID = w.nextMaterialID
	w.nextMaterialID++
	w.materials[mat.ID] = mat
	return mat.ID
}

// Material looks up a material by ID.
func (w *World) Material(id model.MaterialID) (model.Material, bool) {
	m, ok := w.materials[id]
	return m, ok
}

// AddGameObject stores an object, assigns it the next object ID and returns its handle.
//
// Parameters:
//   - obj: the object; its ID field is overwritten
//
// Returns:
//   - common.Handle: the handle of the stored object
func (w *World) AddGameObject(obj game_object.GameObject) common.Handle {
	obj.ID = w.nextObjectID
	w.nextObjectID++
	return w.objects.Acquire(obj)
}

// GameObject resolves an object handle. Stale handles resolve to false.
func (w *World) GameObject(h common.Handle) (*game_object.GameObject, bool) {
	return w.objects.Get(h)
}

// RemoveGameObject releases the object and its transform.
//
// Returns:
//   - bool: false if the handle was already stale
func (w *World) RemoveGameObject(h common.Handle) bool {
	obj, ok := w.objects.Get(h)
	if !ok {
		return false
	}
	w.transforms.Release(obj.Transform)
	return w.objects.Release(h)
}

// AppendGameObjects appends the handle of every live object to dst in arena order.
func (w *World) AppendGameObjects(dst []common.Handle) []common.Handle {
	w.objects.Each(func(h common.Handle, _ *game_object.GameObject) {
		dst = append(dst, h)
	})
	return dst
}

// ObjectCount returns the number of live objects.
func (w *World) ObjectCount() int {
	return w.objects.Len()
}

// AddLight registers a light and assigns it the next light ID. Lights keep their
// registration order, which is the order shadow views are assembled in.
//
// Parameters:
//   - l: the light (must not be nil)
//
// Returns:
//   - light.LightID: the assigned ID
func (w *World) AddLight(l light.Light) light.LightID {
	if l == nil {
		panic("scene: AddLight requires a non-nil Light")
	}
	id := w.nextLightID
	w.nextLightID++
	l.SetID(id)
	w.lights[id] = l
	w.lightOrder = append(w.lightOrder, id)
	return id
}

// Light looks up a light by ID.
func (w *World) Light(id light.LightID) (light.Light, bool) {
	l, ok := w.lights[id]
	return l, ok
}

// RemoveLight unregisters a light. Objects still referencing it resolve to missing.
func (w *World) RemoveLight(id light.LightID) bool {
	if _, ok := w.lights[id]; !ok {
		return false
	}
	delete(w.lights, id)
	for i, lid := range w.lightOrder {
		if lid == id {
			w.lightOrder = append(w.lightOrder[:i], w.lightOrder[i+1:]...)
			break
		}
	}
	return true
}

// AppendLights appends every registered light to dst in registration order.
func (w *World) AppendLights(dst []light.Light) []light.Light {
	for _, id := range w.lightOrder {
		dst = append(dst, w.lights[id])
	}
	return dst
}

// AddCamera registers a camera and assigns it the next camera ID.
//
// Parameters:
//   - c: the camera (must not be nil)
//
// Returns:
//   - camera.CameraID: the assigned ID
func (w *World) AddCamera(c camera.Camera) camera.CameraID {
	if c == nil {
		panic("scene: AddCamera requires a non-nil Camera")
	}
	id := w.nextCameraID
	w.nextCameraID++
	c.SetID(id)
	w.cameras = append(w.cameras, c)
	return id
}

// Cameras returns the registered cameras in registration order.
func (w *World) Cameras() []camera.Camera {
	return w.cameras
}
