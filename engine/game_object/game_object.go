package game_object

import (
	"github.com/Carmen-Shannon/oxy-frames/common"
	"github.com/Carmen-Shannon/oxy-frames/engine/light"
	"github.com/Carmen-Shannon/oxy-frames/engine/model"
)

// GameObject is a scene entity stored by value in the scene's object arena.
// It refers to its transform by arena handle and to its model by ID, so growing
// either arena never leaves an object pointing at freed memory.
type GameObject struct {
	// ID is the scene-issued identifier, unique for the session.
	ID uint64

	// Enabled objects take part in bounding box generation and culling.
	Enabled bool

	// Transform is the handle of this object's Transform in the scene's transform arena.
	Transform common.Handle

	// Model is the ID of the model drawn for this object. Zero means no model.
	Model model.ModelID

	// Light optionally attaches a light whose position follows this object's transform.
	// Zero means no attached light.
	Light light.LightID
}

// NewGameObject creates a GameObject configured with the given options.
// Objects are enabled by default.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object, ready to be added to a scene
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := GameObject{
		Enabled: true,
	}
	for _, option := range options {
		option(&obj)
	}
	return obj
}

// HasModel reports whether a model is assigned.
func (g GameObject) HasModel() bool {
	return g.Model != 0
}
