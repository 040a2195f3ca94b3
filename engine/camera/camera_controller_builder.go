package camera

// ControllerBuilderOption is a functional option for configuring a Controller.
type ControllerBuilderOption func(*flyController)

// WithMoveSpeed sets the translation speed in world units per second.
//
// Parameters:
//   - speed: units per second (ignored if <= 0)
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithMoveSpeed(speed float32) ControllerBuilderOption {
	return func(fc *flyController) {
		if speed > 0 {
			fc.moveSpeed = speed
		}
	}
}

// WithTurnSpeed sets the rotation speed in radians per second.
//
// Parameters:
//   - speed: radians per second (ignored if <= 0)
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithTurnSpeed(speed float32) ControllerBuilderOption {
	return func(fc *flyController) {
		if speed > 0 {
			fc.turnSpeed = speed
		}
	}
}
