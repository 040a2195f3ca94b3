package camera

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraID identifies a camera registered with a scene.
type CameraID uint32

type cameraImpl struct {
	mu *sync.Mutex

	id   CameraID
	name string

	position mgl32.Vec3
	yaw      float32 // radians, 0 looks down -Z, positive turns towards -X
	pitch    float32 // radians, positive looks up
	up       mgl32.Vec3

	fov    float32
	aspect float32
	near   float32
	far    float32

	controller Controller
}

// Camera defines the interface for a perspective camera.
// The camera holds its pose (position, yaw, pitch) and projection settings and
// derives view and projection matrices on demand. Matrices follow mgl32 conventions
// (column-major, OpenGL clip space).
type Camera interface {
	// ID returns the scene-issued identifier.
	//
	// Returns:
	//   - CameraID: the camera ID, or 0 before registration
	ID() CameraID

	// SetID assigns the scene-issued identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id CameraID)

	// Name returns the debug name of the camera.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// SetPosition moves the camera.
	//
	// Parameters:
	//   - p: the new world-space position
	SetPosition(p mgl32.Vec3)

	// Yaw returns the heading in radians.
	//
	// Returns:
	//   - float32: yaw in radians
	Yaw() float32

	// Pitch returns the elevation in radians.
	//
	// Returns:
	//   - float32: pitch in radians
	Pitch() float32

	// SetOrientation sets yaw and pitch. Pitch is clamped just short of straight up/down.
	//
	// Parameters:
	//   - yaw: heading in radians
	//   - pitch: elevation in radians
	SetOrientation(yaw, pitch float32)

	// Forward returns the unit look direction derived from yaw and pitch.
	//
	// Returns:
	//   - mgl32.Vec3: the look direction
	Forward() mgl32.Vec3

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// SetAspect sets the aspect ratio. Non-positive values are ignored.
	//
	// Parameters:
	//   - aspect: width / height
	SetAspect(aspect float32)

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// ViewMatrix returns the world-to-view transform.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the view-to-clip transform.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// Controller returns the attached controller, or nil.
	//
	// Returns:
	//   - Controller: the controller driving this camera
	Controller() Controller

	// SetController attaches a controller; pass nil to detach.
	//
	// Parameters:
	//   - c: the controller
	SetController(c Controller)
}

var _ Camera = &cameraImpl{}

// maxPitch keeps LookAt away from the degenerate straight up/down case.
const maxPitch = 1.55

// NewCamera creates a new Camera with sensible defaults and any provided options applied.
// Defaults: position (0, 0, 5), looking down -Z, 60 degree fov, 16:9, near 0.1, far 1000.
//
// Parameters:
//   - options: variadic list of CameraBuilderOption functions
//
// Returns:
//   - Camera: the new camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:       &sync.Mutex{},
		position: mgl32.Vec3{0, 0, 5},
		up:       mgl32.Vec3{0, 1, 0},
		fov:      mgl32.DegToRad(60),
		aspect:   16.0 / 9.0,
		near:     0.1,
		far:      1000,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *cameraImpl) ID() CameraID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.id
}

func (c *cameraImpl) SetID(id CameraID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.id = id
}

func (c *cameraImpl) Name() string {
	return c.name
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) SetPosition(p mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = p
}

func (c *cameraImpl) Yaw() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.yaw
}

func (c *cameraImpl) Pitch() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pitch
}

func (c *cameraImpl) SetOrientation(yaw, pitch float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.yaw = yaw
	c.pitch = mgl32.Clamp(pitch, -maxPitch, maxPitch)
}

func (c *cameraImpl) Forward() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.forward()
}

// forward must be called with mu held.
func (c *cameraImpl) forward() mgl32.Vec3 {
	rot := mgl32.AnglesToQuat(c.yaw, c.pitch, 0, mgl32.YXZ)
	return rot.Rotate(mgl32.Vec3{0, 0, -1}).Normalize()
}

func (c *cameraImpl) Fov() float32 {
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
}

func (c *cameraImpl) Near() float32 {
	return c.near
}

func (c *cameraImpl) Far() float32 {
	return c.far
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return mgl32.LookAtV(c.position, c.position.Add(c.forward()), c.up)
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return mgl32.Perspective(c.fov, c.aspect, c.near, c.far)
}

func (c *cameraImpl) Controller() Controller {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) SetController(ctrl Controller) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
}
