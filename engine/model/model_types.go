package model

import (
	"github.com/Carmen-Shannon/oxy-frames/common"
	"github.com/go-gl/mathgl/mgl32"
)

// ModelID identifies a Model registered with a scene. IDs are issued by the scene's
// monotonic counter and are never reused within a session.
type ModelID uint32

// MeshID identifies a single mesh. Render commands and culling results refer to meshes by ID.
type MeshID uint32

// MaterialID identifies a material. The zero value is the scene's default material.
type MaterialID uint32

// InvalidMeshID is never issued by a scene.
const InvalidMeshID MeshID = 0

// Mesh describes one drawable piece of geometry in model space.
// The vertex and index data live with the GPU collaborator; the core only needs bounds.
type Mesh struct {
	// ID is the identifier issued by the scene.
	ID MeshID

	// Name is an optional debug name.
	Name string

	// LocalBounds is the model-space bounding box of the mesh vertices.
	LocalBounds common.BoundingBox

	// DefaultMaterial is used when the owning model does not override the material.
	DefaultMaterial MaterialID
}

// Material holds the shading parameters referenced by render commands.
type Material struct {
	// ID is the identifier issued by the scene.
	ID MaterialID

	// Name is an optional debug name.
	Name string

	// Albedo is the base color.
	Albedo mgl32.Vec3

	// Roughness in [0, 1].
	Roughness float32

	// Metalness in [0, 1].
	Metalness float32

	// Emissive is the emitted color, used by light meshes.
	Emissive mgl32.Vec3
}
