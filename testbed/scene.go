package testbed

import (
	"github.com/fpicone/lumina/engine/config"
	"github.com/fpicone/lumina/engine/core"
	"github.com/fpicone/lumina/engine/math"
	"github.com/fpicone/lumina/engine/renderer/components"
	"github.com/fpicone/lumina/engine/renderer/metadata"
	"github.com/fpicone/lumina/engine/systems"
)

/**
 * @brief A small scene exercising the batcher end to end: a grid of textured
 * cubes that merge, a plane with a colour material that tracks unbatched, and
 * an opted-out renderable.
 */
type Scene struct {
	batchSystem *systems.BatchSystem

	objects     []*components.SceneObject
	renderables []*components.RenderData

	spinner *components.SceneObject
}

func NewScene(cfg *config.Config) (*Scene, error) {
	bs, err := systems.NewBatchSystem(&systems.BatchSystemConfig{
		MaxBatchCount: cfg.Batching.MaxBatchCount,
		VertexLimit:   cfg.Batching.VertexLimit,
		IndexLimit:    cfg.Batching.IndexLimit,
	})
	if err != nil {
		return nil, err
	}
	return &Scene{batchSystem: bs}, nil
}

func (s *Scene) BatchSystem() *systems.BatchSystem {
	return s.batchSystem
}

// Setup builds the scene and routes every renderable through the batcher.
func (s *Scene) Setup() error {
	textured := metadata.NewMaterial("crate", metadata.ShaderTypeTexture)
	textured.DiffuseMapName = "crate_diffuse"
	flat := metadata.NewMaterial("flat_grey", metadata.ShaderTypeColour)

	cubeMesh := systems.GenerateCubeMesh(1, 1, 1, 1, 1, "crate_cube")

	// A 4x4 grid of textured crates; these all merge.
	for x := 0; x < 4; x++ {
		for z := 0; z < 4; z++ {
			obj := components.NewSceneObject("crate")
			obj.Transform.SetPosition(math.NewVec3(float32(x)*2.0, 0, float32(z)*2.0))
			rd := components.NewRenderData(obj, cubeMesh, metadata.NewRenderPass(textured))
			s.addToScene(obj, rd)
		}
	}

	// A ground plane with a colour material: tracked but rendered on its own.
	ground := components.NewSceneObject("ground")
	groundMesh := systems.GeneratePlaneMesh(16, 16, 2, 2, 4, 4, "ground_plane")
	groundRD := components.NewRenderData(ground, groundMesh, metadata.NewRenderPass(flat))
	s.addToScene(ground, groundRD)

	// An explicitly opted-out crate.
	loner := components.NewSceneObject("loner")
	loner.Transform.SetPosition(math.NewVec3(-4, 0, 0))
	lonerRD := components.NewRenderData(loner, cubeMesh, metadata.NewRenderPass(textured))
	lonerRD.SetBatching(false)
	s.addToScene(loner, lonerRD)

	// One crate keeps spinning each frame to exercise dirty regeneration.
	s.spinner = s.objects[0]

	for _, rd := range s.renderables {
		result, err := s.batchSystem.Add(rd)
		if err != nil {
			return err
		}
		core.LogDebug("scene: added renderable '%s' to batcher (result=%d)", rd.Name, result)
	}
	return nil
}

func (s *Scene) addToScene(obj *components.SceneObject, rd *components.RenderData) {
	s.objects = append(s.objects, obj)
	s.renderables = append(s.renderables, rd)
}

// Frame mutates the scene and drives the batcher once.
func (s *Scene) Frame(frame int) {
	// Spin one crate. Its recorded matrix goes stale, so the batch holding it
	// must regenerate.
	if s.spinner != nil && s.spinner.Transform != nil {
		s.spinner.Transform.Rotate(math.NewQuatFromAxisAngle(math.NewVec3Up(), math.DegToRad(1.5), false))
		for _, rd := range s.renderables {
			if rd.Owner == s.spinner {
				rd.SetDirty(true)
				if b := rd.Batch(); b != nil {
					b.MarkDirty()
				}
			}
		}
	}

	// Halfway through, retire a crate and let eviction reclaim its geometry.
	if frame == 300 {
		s.objects[5].Enabled = false
		core.LogInfo("scene: disabled object '%s'", s.objects[5].Name)
	}

	s.batchSystem.Update()
}

func (s *Scene) Shutdown() error {
	for _, rd := range s.renderables {
		rd.Destroy()
	}
	return s.batchSystem.Shutdown()
}
