package model

import (
	"github.com/Carmen-Shannon/oxy-frames/common"
	"github.com/google/uuid"
)

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithAssetID sets the UUID used to correlate the model with its loader request.
//
// Parameters:
//   - id: the asset UUID
//
// Returns:
//   - ModelBuilderOption: a function that applies the asset ID option to a model
func WithAssetID(id uuid.UUID) ModelBuilderOption {
	return func(m *model) {
		m.assetID = id
	}
}

// WithMeshes publishes the mesh list at construction time, marking the model as loaded.
// Omit this option for models that are loaded asynchronously.
//
// Parameters:
//   - meshes: the mesh IDs in draw order
//
// Returns:
//   - ModelBuilderOption: a function that applies the meshes option to a model
func WithMeshes(meshes ...MeshID) ModelBuilderOption {
	return func(m *model) {
		m.meshes = append([]MeshID(nil), meshes...)
		m.loaded = true
	}
}

// WithBounds declares a conservative model-space bound, used for object-level
// culling while meshes are still loading.
//
// Parameters:
//   - bb: the bound
//
// Returns:
//   - ModelBuilderOption: a function that applies the bounds option to a model
func WithBounds(bb common.BoundingBox) ModelBuilderOption {
	return func(m *model) {
		m.bounds = bb
		m.hasBounds = bb.Valid()
	}
}

// WithMaterialOverride assigns a material to one of the model's meshes.
func WithMaterialOverride(mesh MeshID, mat MaterialID) ModelBuilderOption {
	return func(m *model) {
		m.materials[mesh] = mat
	}
}
