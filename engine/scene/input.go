package scene

import (
	"github.com/Carmen-Shannon/oxy-frames/common"
	"github.com/Carmen-Shannon/oxy-frames/engine/input"
)

// handleInput applies the scene's key bindings:
//
//	C          next camera
//	Shift+C    previous camera
//	Ctrl+C     log the active camera's pose
//	L          toggle light bounds
//	M          toggle light meshes
//
// and then lets the active camera's controller fly it.
func (s *scene) handleInput(view *SceneView, q input.Query, dt float32) {
	if q.IsKeyTriggered(common.KeyC) {
		switch {
		case q.IsCtrlDown():
			s.logCameraInfo()
		case q.IsShiftDown():
			s.SetMainCameraIndex(s.mainCamera - 1)
		default:
			s.SetMainCameraIndex(s.mainCamera + 1)
		}
		view.MainViewCameraIndex = s.MainCameraIndex()
	}
	if q.IsKeyTriggered(common.KeyL) {
		view.Scene.DrawLightBounds = !view.Scene.DrawLightBounds
	}
	if q.IsKeyTriggered(common.KeyM) {
		view.Scene.DrawLightMeshes = !view.Scene.DrawLightMeshes
	}

	if cam := s.ActiveCamera(); cam != nil {
		if ctrl := cam.Controller(); ctrl != nil {
			ctrl.Update(cam, q, dt)
		}
	}
}

func (s *scene) logCameraInfo() {
	cam := s.ActiveCamera()
	if cam == nil {
		s.logger.Infof("no active camera")
		return
	}
	p := cam.Position()
	s.logger.Infof("camera %d %q: position (%.3f, %.3f, %.3f) yaw %.3f pitch %.3f",
		s.MainCameraIndex(), cam.Name(), p.X(), p.Y(), p.Z(), cam.Yaw(), cam.Pitch())
}
