package scene

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-frames/common"
	"github.com/Carmen-Shannon/oxy-frames/engine/camera"
	"github.com/Carmen-Shannon/oxy-frames/engine/culling"
	"github.com/Carmen-Shannon/oxy-frames/engine/input"
	"github.com/Carmen-Shannon/oxy-frames/engine/light"
	"github.com/Carmen-Shannon/oxy-frames/engine/logging"
	"github.com/Carmen-Shannon/oxy-frames/engine/profiler"
)

const (
	// DefaultFramesInFlight is the number of frame slots when none is configured.
	DefaultFramesInFlight = 2
	// MaxFramesInFlight is the largest supported number of frame slots.
	MaxFramesInFlight = 4
)

// UpdateCallback runs once per Update iteration, after input handling and before
// bounding boxes are built. It is the place to mutate the World while the engine runs.
type UpdateCallback func(s Scene, dt float32)

// scene is the implementation of the Scene interface.
type scene struct {
	name   string
	world  *World
	logger logging.Logger
	prof   *profiler.Profiler

	framesInFlight int
	views          []SceneView
	shadows        []SceneShadowView
	frameData      []FrameData
	frameCounter   uint64

	mainCamera     int
	warnedNoCamera bool

	bbh *BoundingBoxHierarchy

	// coarse contexts test object boxes, fine contexts test mesh boxes
	mainCoarse   culling.FrustumCullWorkerContext
	mainFine     culling.FrustumCullWorkerContext
	shadowCoarse culling.FrustumCullWorkerContext
	shadowFine   culling.FrustumCullWorkerContext

	// shadowViewLookup maps a shadow frustum index to the view its results belong to.
	// Rebuilt every frame; entries point into the current slot's SceneShadowView.
	shadowViewLookup map[int]*ShadowView

	multiThreadedCulling bool
	lightViewCulling     bool
	shadowHalfExtent     float32
	updateCallback       UpdateCallback

	// computePool runs the multi-threaded culling passes. Workers persist across
	// frames and the pool is stopped by Close.
	computePool    worker.DynamicWorkerPool
	computeWorkers int
	closeOnce      sync.Once

	// scratch reused every frame
	objects      []common.Handle
	lights       []light.Light
	activeLights []int
}

// Scene defines the interface of the per-frame scene update.
//
// A Scene owns N frame slots. Update fills slot i (the Update stage's counter mod N)
// from the World; the Render stage then reads FrameData(i). The engine's gates make
// sure the two stages never touch the same slot at once, so a Scene needs no locking
// of its own. Every method except FrameData must be called from the Update stage.
type Scene interface {
	// Name returns the scene's name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// World returns the resources the scene draws.
	//
	// Returns:
	//   - *World: the world
	World() *World

	// FramesInFlight returns the number of frame slots.
	//
	// Returns:
	//   - int: the slot count N
	FramesInFlight() int

	// ActiveCamera returns the camera the main view is rendered from, or nil if the
	// world has no cameras.
	//
	// Returns:
	//   - camera.Camera: the active camera
	ActiveCamera() camera.Camera

	// MainCameraIndex returns the index of the active camera in World().Cameras().
	//
	// Returns:
	//   - int: the camera index
	MainCameraIndex() int

	// SetMainCameraIndex selects the active camera. The index wraps around.
	//
	// Parameters:
	//   - index: index into World().Cameras()
	SetMainCameraIndex(index int)

	// BoundingBoxHierarchy returns the boxes built by the latest Update.
	//
	// Returns:
	//   - *BoundingBoxHierarchy: the hierarchy
	BoundingBoxHierarchy() *BoundingBoxHierarchy

	// Update fills frame slot `slot`. Parameters carried between frames are copied
	// from prevSlot first, then input is applied, the bounding box hierarchy rebuilt,
	// lights gathered, the main and shadow views culled and their commands emitted.
	// It panics if either slot is out of range.
	//
	// Parameters:
	//   - slot: the slot to fill
	//   - prevSlot: the slot filled by the previous Update
	//   - dt: elapsed seconds since the previous Update
	//   - q: the input snapshot for this iteration (nil means no input)
	Update(slot, prevSlot int, dt float32, q input.Query)

	// FrameData returns the data the Render stage consumes for a slot.
	// It panics if slot is out of range.
	//
	// Parameters:
	//   - slot: the slot to read
	//
	// Returns:
	//   - *FrameData: the slot's frame data
	FrameData(slot int) *FrameData

	// Resize updates every camera's aspect ratio for a new window size.
	// Non-positive sizes (a minimized window) are ignored.
	//
	// Parameters:
	//   - width: framebuffer width in pixels
	//   - height: framebuffer height in pixels
	Resize(width, height int)

	// Close stops the culling worker pool. It is safe to call more than once.
	Close()
}

var _ Scene = &scene{}

// NewScene creates a new Scene drawing the given world.
// The world is required and NewScene panics if it is nil.
//
// Parameters:
//   - name: the name of the scene
//   - w: the world to draw (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, w *World, options ...SceneBuilderOption) Scene {
	if w == nil {
		panic("scene: NewScene requires a non-nil World")
	}

	s := &scene{
		name:                 name,
		world:                w,
		framesInFlight:       DefaultFramesInFlight,
		computeWorkers:       max(runtime.NumCPU()-1, 1),
		multiThreadedCulling: true,
		shadowViewLookup:     make(map[int]*ShadowView),
	}

	for _, option := range options {
		option(s)
	}

	if s.logger == nil {
		s.logger = logging.NewDefaultLogger("scene")
	}
	if n := common.Clamp(s.framesInFlight, 1, MaxFramesInFlight); n != s.framesInFlight {
		s.logger.Warnf("frames in flight %d out of range, using %d", s.framesInFlight, n)
		s.framesInFlight = n
	}

	s.views = make([]SceneView, s.framesInFlight)
	s.shadows = make([]SceneShadowView, s.framesInFlight)
	s.frameData = make([]FrameData, s.framesInFlight)
	for i := range s.frameData {
		s.frameData[i] = FrameData{Slot: i, View: &s.views[i], Shadows: &s.shadows[i]}
		s.views[i].PostProcess = PostProcessParameters{Exposure: 1, Gamma: 2.2}
	}

	s.bbh = NewBoundingBoxHierarchy(s.logger)
	cullLogger := culling.WithLogger(s.logger)
	s.mainCoarse = culling.NewFrustumCullWorkerContext(cullLogger, culling.WithInitialCapacity(1))
	s.mainFine = culling.NewFrustumCullWorkerContext(cullLogger, culling.WithInitialCapacity(1))
	s.shadowCoarse = culling.NewFrustumCullWorkerContext(cullLogger)
	s.shadowFine = culling.NewFrustumCullWorkerContext(cullLogger)

	// Initialize the compute pool after options so WithCullWorkers can override the default.
	s.computePool = worker.NewDynamicWorkerPool(s.computeWorkers, 256, 1*time.Second)

	s.logger.Debugf("scene %q created for world %s with %d frame slots", s.name, w.SessionID(), s.framesInFlight)
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) World() *World {
	return s.world
}

func (s *scene) FramesInFlight() int {
	return s.framesInFlight
}

func (s *scene) ActiveCamera() camera.Camera {
	cams := s.world.Cameras()
	if len(cams) == 0 {
		return nil
	}
	return cams[common.Wrap(s.mainCamera, len(cams))]
}

func (s *scene) MainCameraIndex() int {
	return common.Wrap(s.mainCamera, len(s.world.Cameras()))
}

func (s *scene) SetMainCameraIndex(index int) {
	s.mainCamera = common.Wrap(index, len(s.world.Cameras()))
}

func (s *scene) BoundingBoxHierarchy() *BoundingBoxHierarchy {
	return s.bbh
}

func (s *scene) checkSlot(slot int) {
	if slot < 0 || slot >= s.framesInFlight {
		panic(fmt.Sprintf("scene: frame slot %d out of range [0, %d)", slot, s.framesInFlight))
	}
}

func (s *scene) FrameData(slot int) *FrameData {
	s.checkSlot(slot)
	return &s.frameData[slot]
}

func (s *scene) Update(slot, prevSlot int, dt float32, q input.Query) {
	s.checkSlot(slot)
	s.checkSlot(prevSlot)

	s.prof.BeginScope("update")
	defer s.prof.EndScope("update")

	view := &s.views[slot]
	shadows := &s.shadows[slot]
	s.preUpdate(view, &s.views[prevSlot])

	if q != nil {
		s.handleInput(view, q, dt)
	}
	if s.updateCallback != nil {
		s.updateCallback(s, dt)
	}

	s.objects = s.world.AppendGameObjects(s.objects[:0])
	s.syncAttachedLights()

	cam := s.ActiveCamera()
	if cam == nil {
		if !s.warnedNoCamera {
			s.logger.Warnf("scene %q has no camera, frames will be empty", s.name)
			s.warnedNoCamera = true
		}
		shadows.resize(0, 0)
		s.finishFrame(slot, view, shadows)
		return
	}
	s.updateCameraMatrices(view, cam)

	s.prof.BeginScope("bbh")
	s.bbh.Clear()
	s.bbh.BuildGameObjectBoundingBoxes(s.objects, s.world)
	s.bbh.BuildMeshBoundingBoxes(s.objects, s.world)
	s.prof.EndScope("bbh")

	s.lights = s.world.AppendLights(s.lights[:0])
	s.activeLights = ActiveAndCulledLightIndices(s.activeLights, s.lights, view.Frustum, s.lightViewCulling)
	GatherSceneLightData(&view.Lighting, s.lights, s.activeLights, view.CameraPosition, s.shadowHalfExtent)

	s.prof.BeginScope("cull")
	s.cull(view, shadows)
	s.prof.EndScope("cull")

	PrepareLightMeshRenderParams(view, s.lights)
	s.finishFrame(slot, view, shadows)
}

// preUpdate resets the slot and carries the frame-to-frame parameters forward.
func (s *scene) preUpdate(view, prev *SceneView) {
	view.reset()
	if view != prev {
		view.PostProcess = prev.PostProcess
		view.Scene = prev.Scene
	}
	view.MainViewCameraIndex = s.MainCameraIndex()
}

// syncAttachedLights moves lights attached to objects onto their object's position.
func (s *scene) syncAttachedLights() {
	for _, h := range s.objects {
		obj, ok := s.world.GameObject(h)
		if !ok || obj.Light == 0 || !obj.Enabled {
			continue
		}
		l, ok := s.world.Light(obj.Light)
		if !ok {
			s.logger.Warnf("game object %d references unknown light %d", obj.ID, obj.Light)
			continue
		}
		if t, ok := s.world.Transform(obj.Transform); ok {
			l.SetPosition(t.Position)
		}
	}
}

func (s *scene) updateCameraMatrices(view *SceneView, cam camera.Camera) {
	v := cam.ViewMatrix()
	p := cam.ProjectionMatrix()
	view.View = v
	view.ViewInverse = v.Inv()
	view.Projection = p
	view.ProjectionInverse = p.Inv()
	view.ViewProjection = p.Mul4(v)
	view.Frustum = common.ExtractFrustumPlaneset(view.ViewProjection)
	view.CameraPosition = cam.Position()
	view.CameraYaw = cam.Yaw()
	view.CameraPitch = cam.Pitch()
}

func (s *scene) finishFrame(slot int, view *SceneView, shadows *SceneShadowView) {
	view.Stats.ObjectCount = s.world.ObjectCount()
	view.Stats.VisibleMeshCount = len(view.MeshRenderCommands)
	view.Stats.ShadowViewCount = shadows.ViewCount()

	s.prof.SetCount("objects", view.Stats.ObjectCount)
	s.prof.SetCount("visible objects", view.Stats.VisibleObjectCount)
	s.prof.SetCount("visible meshes", view.Stats.VisibleMeshCount)
	s.prof.SetCount("shadow commands", view.Stats.ShadowCommandCount)

	s.frameCounter++
	s.frameData[slot].Frame = s.frameCounter
}

func (s *scene) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	aspect := float32(width) / float32(height)
	for _, c := range s.world.Cameras() {
		c.SetAspect(aspect)
	}
}

func (s *scene) Close() {
	s.closeOnce.Do(func() {
		s.computePool.Stop()
		s.logger.Debugf("scene %q closed", s.name)
	})
}
