package camera

import (
	"github.com/Carmen-Shannon/oxy-frames/common"
	"github.com/Carmen-Shannon/oxy-frames/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// Controller moves a camera from per-iteration input. It is driven by the Update
// stage only, so implementations do not need to be safe for concurrent use.
type Controller interface {
	// Update applies one iteration of input to the camera.
	//
	// Parameters:
	//   - cam: the camera to move
	//   - q: the input snapshot for this iteration
	//   - dt: elapsed seconds since the previous iteration
	Update(cam Camera, q input.Query, dt float32)

	// MoveSpeed returns the translation speed in world units per second.
	//
	// Returns:
	//   - float32: the move speed
	MoveSpeed() float32

	// TurnSpeed returns the rotation speed in radians per second.
	//
	// Returns:
	//   - float32: the turn speed
	TurnSpeed() float32
}

// flyController is a free-flight controller: W/S move along the look direction,
// A/D strafe, Q/E turn, Space rises. Holding shift doubles the move speed.
type flyController struct {
	moveSpeed float32
	turnSpeed float32
}

var _ Controller = &flyController{}

// NewFlyController creates a free-flight Controller with the given options.
// Defaults: 5 units per second, 1.5 radians per second.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the new controller
func NewFlyController(options ...ControllerBuilderOption) Controller {
	fc := &flyController{
		moveSpeed: 5,
		turnSpeed: 1.5,
	}
	for _, opt := range options {
		opt(fc)
	}
	return fc
}

func (fc *flyController) MoveSpeed() float32 {
	return fc.moveSpeed
}

func (fc *flyController) TurnSpeed() float32 {
	return fc.turnSpeed
}

func (fc *flyController) Update(cam Camera, q input.Query, dt float32) {
	if cam == nil || q == nil || dt <= 0 {
		return
	}

	yaw, pitch := cam.Yaw(), cam.Pitch()
	if q.IsKeyDown(common.KeyQ) {
		yaw += fc.turnSpeed * dt
	}
	if q.IsKeyDown(common.KeyE) {
		yaw -= fc.turnSpeed * dt
	}
	cam.SetOrientation(yaw, pitch)

	forward := cam.Forward()
	right := forward.Cross(mgl32.Vec3{0, 1, 0})
	if right.LenSqr() > 0 {
		right = right.Normalize()
	}

	var move mgl32.Vec3
	if q.IsKeyDown(common.KeyW) {
		move = move.Add(forward)
	}
	if q.IsKeyDown(common.KeyS) {
		move = move.Sub(forward)
	}
	if q.IsKeyDown(common.KeyD) {
		move = move.Add(right)
	}
	if q.IsKeyDown(common.KeyA) {
		move = move.Sub(right)
	}
	if q.IsKeyDown(common.KeySpace) {
		move = move.Add(mgl32.Vec3{0, 1, 0})
	}
	if move.LenSqr() == 0 {
		return
	}

	speed := fc.moveSpeed
	if q.IsShiftDown() {
		speed *= 2
	}
	cam.SetPosition(cam.Position().Add(move.Normalize().Mul(speed * dt)))
}
