package light

import (
	"github.com/go-gl/mathgl/mgl32"
)

// LightID identifies a light registered with a scene. IDs come from the scene's
// monotonic counter and are never reused within a session.
type LightID uint32

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional represents a light with no position, only direction.
	// Used for large distant sources like the sun or moon. Affects all fragments
	// uniformly with no distance attenuation.
	LightTypeDirectional LightType = iota

	// LightTypePoint represents a light that emits in all directions from a position.
	// Used for bare bulbs, lanterns, candle flames, and particle-emitted lights.
	// Attenuates with distance up to a configurable range.
	LightTypePoint

	// LightTypeSpot represents a light that emits in a cone from a position along a direction.
	// Used for flashlights, desk lamps, and wall sconces. Attenuates with both
	// distance and angle from the cone axis, controlled by inner and outer cone angles.
	LightTypeSpot
)

// String returns a short name for logging.
func (t LightType) String() string {
	switch t {
	case LightTypeDirectional:
		return "directional"
	case LightTypePoint:
		return "point"
	case LightTypeSpot:
		return "spot"
	default:
		return "unknown"
	}
}

// lightImpl is the implementation of the Light interface.
// The type-specific fields live in exactly one payload selected by variant.
type lightImpl struct {
	id           LightID
	variant      Variant
	color        mgl32.Vec3
	intensity    float32
	enabled      bool
	castsShadows bool
}

// Light defines the interface for a light source in the scene.
//
// A Light is a tagged variant: Type() is the discriminant and Variant() returns the
// payload (*Directional, *Spot or *Point) which declares only the fields its kind needs.
// Code that branches on the light kind should type-switch on Variant().
//
// Lights are owned by the scene and read by the Update stage when gathering the
// lighting block and assembling shadow views.
type Light interface {
	// ID returns the scene-issued identifier.
	//
	// Returns:
	//   - LightID: the light ID, or 0 before the light is added to a scene
	ID() LightID

	// SetID assigns the scene-issued identifier. Called by the scene on registration.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id LightID)

	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type (directional, point, or spot)
	Type() LightType

	// Variant returns the type-specific payload. The returned pointer may be mutated
	// in place to move or aim the light.
	//
	// Returns:
	//   - Variant: one of *Directional, *Spot or *Point
	Variant() Variant

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - mgl32.Vec3: color as (r, g, b)
	Color() mgl32.Vec3

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Enabled returns whether this light is active for rendering.
	// Disabled lights contribute nothing to lighting data or shadow views.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// CastsShadows returns whether this light is eligible for shadow map generation.
	// Shadow-casting lights have their depth pass rendered each frame, which is
	// expensive. Most distant lights should have this disabled.
	//
	// Returns:
	//   - bool: true if the light casts shadows
	CastsShadows() bool

	// ShadowCaster reports whether the light is both enabled and casting shadows.
	// Only shadow casters produce shadow views and culling work items.
	//
	// Returns:
	//   - bool: true if the light contributes shadow views
	ShadowCaster() bool

	// SetColor sets the RGB color of the light.
	//
	// Parameters:
	//   - r, g, b: color components
	SetColor(r, g, b float32)

	// SetIntensity sets the scalar intensity multiplier.
	//
	// Parameters:
	//   - intensity: the intensity value
	SetIntensity(intensity float32)

	// SetEnabled enables or disables the light for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetCastsShadows sets whether the light is eligible for shadow mapping.
	//
	// Parameters:
	//   - castsShadows: true to enable shadow casting
	SetCastsShadows(castsShadows bool)

	// SetPosition moves a positional light. It is a no-op for directional lights.
	//
	// Parameters:
	//   - p: the new world-space position
	SetPosition(p mgl32.Vec3)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light with the given payload, sensible defaults and any
// provided options applied. The payload's zero fields are filled with defaults
// (range, cone angles, shadow planes) so callers only set what they care about.
//
// NewLight panics if variant is nil.
//
// Parameters:
//   - variant: the type-specific payload (*Directional, *Spot or *Point)
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(variant Variant, opts ...LightBuilderOption) Light {
	if variant == nil {
		panic("light: NewLight requires a non-nil Variant")
	}
	variant.applyDefaults()
	l := &lightImpl{
		variant:      variant,
		color:        mgl32.Vec3{1, 1, 1},
		intensity:    1.0,
		enabled:      true,
		castsShadows: false,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) ID() LightID {
	return l.id
}

func (l *lightImpl) SetID(id LightID) {
	l.id = id
}

func (l *lightImpl) Type() LightType {
	return l.variant.Type()
}

func (l *lightImpl) Variant() Variant {
	return l.variant
}

func (l *lightImpl) Color() mgl32.Vec3 {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) CastsShadows() bool {
	return l.castsShadows
}

func (l *lightImpl) ShadowCaster() bool {
	return l.enabled && l.castsShadows
}

func (l *lightImpl) SetColor(r, g, b float32) {
	l.color = mgl32.Vec3{r, g, b}
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}

func (l *lightImpl) SetCastsShadows(castsShadows bool) {
	l.castsShadows = castsShadows
}

func (l *lightImpl) SetPosition(p mgl32.Vec3) {
	switch v := l.variant.(type) {
	case *Spot:
		v.Position = p
	case *Point:
		v.Position = p
	}
}
