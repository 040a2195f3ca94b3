package game_object

import (
	"github.com/Carmen-Shannon/oxy-frames/common"
	"github.com/Carmen-Shannon/oxy-frames/engine/light"
	"github.com/Carmen-Shannon/oxy-frames/engine/model"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*GameObject)

// WithEnabled sets whether the GameObject takes part in culling and rendering.
//
// Parameters:
//   - enabled: true to render the object, false to skip it
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *GameObject) {
		obj.Enabled = enabled
	}
}

// WithModel assigns the model drawn for this object.
//
// Parameters:
//   - id: the scene-issued model ID
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the model
func WithModel(id model.ModelID) GameObjectBuilderOption {
	return func(obj *GameObject) {
		obj.Model = id
	}
}

// WithLight attaches a light that follows the object's position.
//
// Parameters:
//   - id: the scene-issued light ID
//
// Returns:
//   - GameObjectBuilderOption: functional option to attach the light
func WithLight(id light.LightID) GameObjectBuilderOption {
	return func(obj *GameObject) {
		obj.Light = id
	}
}

// WithTransform sets the handle of the object's transform in the scene's transform arena.
//
// Parameters:
//   - h: the handle returned by World.AddTransform
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the transform
func WithTransform(h common.Handle) GameObjectBuilderOption {
	return func(obj *GameObject) {
		obj.Transform = h
	}
}
