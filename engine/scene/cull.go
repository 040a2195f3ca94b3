package scene

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-frames/engine/culling"
	"github.com/Carmen-Shannon/oxy-frames/engine/light"
)

// cull submits the main view and every shadow view to the coarse (object box) and
// fine (mesh box) contexts, processes all four, and routes the results. Coarse and
// fine passes run independently: coarse results only feed the visible object counts.
func (s *scene) cull(view *SceneView, shadows *SceneShadowView) {
	s.mainCoarse.ClearWorkItems()
	s.mainFine.ClearWorkItems()
	s.shadowCoarse.ClearWorkItems()
	s.shadowFine.ClearWorkItems()
	clear(s.shadowViewLookup)

	bbh := s.bbh
	mainObjects := s.mainCoarse.AddWorkerItem(view.Frustum, bbh.GameObjectBoundingBoxes, bbh.GameObjectBoundingBoxOwners)
	mainMeshes := s.mainFine.AddWorkerItem(view.Frustum, bbh.MeshBoundingBoxes, bbh.MeshBoundingBoxOwners)
	s.assembleShadowViews(view, shadows)

	for _, ctx := range []culling.FrustumCullWorkerContext{s.mainCoarse, s.mainFine, s.shadowCoarse, s.shadowFine} {
		s.process(ctx)
	}

	view.Stats.VisibleObjectCount = len(s.mainCoarse.Result(mainObjects))
	for _, i := range s.mainFine.Result(mainMeshes) {
		view.MeshRenderCommands = append(view.MeshRenderCommands, MeshRenderCommand{
			MeshID:   bbh.MeshBoundingBoxMeshIDs[i],
			World:    bbh.meshWorlds[i],
			Normal:   bbh.meshNormals[i],
			Material: bbh.meshMaterials[i],
		})
	}

	for idx := range s.shadowFine.NumWorkItems() {
		sv := s.shadowViewFor(idx)
		sv.VisibleObjectCount = len(s.shadowCoarse.Result(idx))
		for _, i := range s.shadowFine.Result(idx) {
			world := bbh.meshWorlds[i]
			sv.ShadowMeshRenderCommands = append(sv.ShadowMeshRenderCommands, ShadowMeshRenderCommand{
				MeshID:        bbh.MeshBoundingBoxMeshIDs[i],
				World:         world,
				WorldViewProj: sv.ViewProjection.Mul4(world),
			})
		}
		view.Stats.ShadowCommandCount += len(sv.ShadowMeshRenderCommands)
	}
}

func (s *scene) process(ctx culling.FrustumCullWorkerContext) {
	if s.multiThreadedCulling {
		ctx.ProcessWorkItemsMultiThreaded(s.computeWorkers, s.computePool)
		return
	}
	ctx.ProcessWorkItemsSingleThreaded()
}

// assembleShadowViews lays out the slot's shadow views for the active lights and
// submits one work item per view: one for the directional light, one per spot light
// and one per cube face of every point light.
func (s *scene) assembleShadowViews(view *SceneView, shadows *SceneShadowView) {
	spots, points := 0, 0
	for _, i := range s.activeLights {
		switch s.lights[i].Type() {
		case light.LightTypeSpot:
			spots++
		case light.LightTypePoint:
			points++
		}
	}
	// Sized up front so the lookup's pointers stay valid while views are submitted.
	shadows.resize(spots, points)

	spot, point := 0, 0
	for _, i := range s.activeLights {
		l := s.lights[i]
		switch v := l.Variant().(type) {
		case *light.Directional:
			shadows.HasDirectional = true
			shadows.Directional.reset(l.ID(), directionalShadowTransform(v, view.CameraPosition, s.shadowHalfExtent))
			s.submitShadowView(&shadows.Directional)
		case *light.Spot:
			sv := &shadows.Spots[spot]
			spot++
			sv.reset(l.ID(), v.ViewProjection())
			s.submitShadowView(sv)
		case *light.Point:
			pv := &shadows.Points[point]
			point++
			pv.LightID = l.ID()
			pv.LinearDepth = LinearDepth{Range: v.Range, Position: v.Position}
			faces := v.FaceViewProjections()
			for f := range faces {
				pv.Faces[f].reset(l.ID(), faces[f])
				s.submitShadowView(&pv.Faces[f])
			}
		}
	}
}

// submitShadowView adds the view to both shadow contexts and records where its
// results go. Both contexts receive items in lockstep, so they share one index.
func (s *scene) submitShadowView(sv *ShadowView) {
	bbh := s.bbh
	objects := s.shadowCoarse.AddWorkerItem(sv.Frustum, bbh.GameObjectBoundingBoxes, bbh.GameObjectBoundingBoxOwners)
	meshes := s.shadowFine.AddWorkerItem(sv.Frustum, bbh.MeshBoundingBoxes, bbh.MeshBoundingBoxOwners)
	if objects != meshes {
		panic(fmt.Sprintf("scene: shadow frustum indices diverged (%d objects, %d meshes)", objects, meshes))
	}
	s.shadowViewLookup[meshes] = sv
}

func (s *scene) shadowViewFor(frustumIndex int) *ShadowView {
	sv, ok := s.shadowViewLookup[frustumIndex]
	if !ok {
		panic(fmt.Sprintf("scene: no shadow view registered for frustum index %d", frustumIndex))
	}
	return sv
}
