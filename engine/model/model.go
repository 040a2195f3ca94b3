package model

import (
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-frames/common"
	"github.com/google/uuid"
)

// model is the implementation of the Model interface.
type model struct {
	mu *sync.RWMutex

	id        ModelID
	assetID   uuid.UUID
	name      string
	meshes    []MeshID
	loaded    bool
	bounds    common.BoundingBox
	hasBounds bool
	materials map[MeshID]MaterialID
}

// Model defines the interface for a loaded (or loading) 3D model.
// A Model references its meshes by ID; the meshes themselves are registered with the scene.
// Loading is expected to complete asynchronously: until SetMeshes is called the model
// reports Loaded() == false and contributes no mesh-level bounding boxes, though it may
// still declare a conservative Bounds for object-level culling.
//
// All methods are safe for concurrent use so that a loader goroutine can publish meshes
// while the Update stage reads them.
type Model interface {
	// ID returns the scene-issued identifier.
	//
	// Returns:
	//   - ModelID: the model ID, or 0 if the model has not been added to a scene
	ID() ModelID

	// SetID assigns the scene-issued identifier. Called by the scene on registration.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id ModelID)

	// AssetID returns the UUID that correlates this model with its loader request.
	// Missing-resource warnings include it so a stalled load can be traced.
	//
	// Returns:
	//   - uuid.UUID: the asset identifier
	AssetID() uuid.UUID

	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Loaded reports whether the mesh list has been published.
	//
	// Returns:
	//   - bool: true once SetMeshes has been called
	Loaded() bool

	// Meshes returns a copy of the mesh IDs owned by this model.
	// Returns nil while the model is still loading.
	//
	// Returns:
	//   - []MeshID: the mesh IDs in draw order
	Meshes() []MeshID

	// SetMeshes publishes the mesh list and marks the model as loaded.
	//
	// Parameters:
	//   - meshes: the mesh IDs in draw order
	SetMeshes(meshes []MeshID)

	// Bounds returns the conservative model-space bound declared for this model.
	// Used for object-level culling while meshes are still loading.
	//
	// Returns:
	//   - common.BoundingBox: the declared bound
	//   - bool: false if no bound was declared
	Bounds() (common.BoundingBox, bool)

	// SetBounds declares a conservative model-space bound.
	//
	// Parameters:
	//   - bb: the bound
	SetBounds(bb common.BoundingBox)

	// MaterialOverride returns the material assigned to a mesh on this model, if any.
	//
	// Parameters:
	//   - mesh: the mesh to query
	//
	// Returns:
	//   - MaterialID: the overriding material
	//   - bool: false if the mesh uses its default material
	MaterialOverride(mesh MeshID) (MaterialID, bool)

	// SetMaterialOverride assigns a material to one of this model's meshes.
	//
	// Parameters:
	//   - mesh: the mesh to override
	//   - mat: the material to use
	SetMaterialOverride(mesh MeshID, mat MaterialID)
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
// A random AssetID is generated unless WithAssetID is supplied.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{
		mu:        &sync.RWMutex{},
		assetID:   uuid.New(),
		materials: make(map[MeshID]MaterialID),
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *model) ID() ModelID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.id
}

func (m *model) SetID(id ModelID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.id = id
}

func (m *model) AssetID() uuid.UUID {
	return m.assetID
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Loaded() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loaded
}

func (m *model) Meshes() []MeshID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.loaded {
		return nil
	}
	return slices.Clone(m.meshes)
}

func (m *model) SetMeshes(meshes []MeshID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.meshes = slices.Clone(meshes)
	m.loaded = true
}

func (m *model) Bounds() (common.BoundingBox, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bounds, m.hasBounds
}

func (m *model) SetBounds(bb common.BoundingBox) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bounds = bb
	m.hasBounds = bb.Valid()
}

func (m *model) MaterialOverride(mesh MeshID) (MaterialID, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mat, ok := m.materials[mesh]
	return mat, ok
}

func (m *model) SetMaterialOverride(mesh MeshID, mat MaterialID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.materials[mesh] = mat
}
