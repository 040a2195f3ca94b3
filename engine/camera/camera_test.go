package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-frames/common"
	"github.com/Carmen-Shannon/oxy-frames/engine/input"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestCameraForwardFollowsYawPitch(t *testing.T) {
	c := NewCamera()
	assert.True(t, c.Forward().ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 1e-5))

	c.SetOrientation(math.Pi/2, 0)
	assert.True(t, c.Forward().ApproxEqualThreshold(mgl32.Vec3{-1, 0, 0}, 1e-5))

	c.SetOrientation(0, 10)
	assert.InDelta(t, maxPitch, c.Pitch(), 1e-6, "pitch is clamped")
}

func TestCameraViewProjectionSeesForward(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 0), WithAspect(1))
	f := common.ExtractFrustumPlaneset(c.ProjectionMatrix().Mul4(c.ViewMatrix()))
	assert.True(t, f.ContainsPoint(mgl32.Vec3{0, 0, -10}))
	assert.False(t, f.ContainsPoint(mgl32.Vec3{0, 0, 10}))

	c.SetAspect(-1)
	assert.Equal(t, float32(1), c.Aspect(), "non-positive aspect ignored")
}

func TestFlyControllerMoves(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 0))
	fc := NewFlyController(WithMoveSpeed(2))

	fc.Update(c, input.NewState([]uint32{common.KeyW}, nil), 1)
	assert.True(t, c.Position().ApproxEqualThreshold(mgl32.Vec3{0, 0, -2}, 1e-5))

	fc.Update(c, input.NewState([]uint32{common.KeyW, common.KeyLeftShift}, nil), 0.5)
	assert.True(t, c.Position().ApproxEqualThreshold(mgl32.Vec3{0, 0, -4}, 1e-5), "shift doubles speed")

	fc.Update(c, input.NewState([]uint32{common.KeyQ}, nil), 1)
	assert.InDelta(t, fc.TurnSpeed(), c.Yaw(), 1e-6)

	before := c.Position()
	fc.Update(c, input.NewState(nil, nil), 1)
	assert.Equal(t, before, c.Position())
}
