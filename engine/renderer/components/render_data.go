package components

import (
	"github.com/google/uuid"

	"github.com/fpicone/lumina/engine/core"
	"github.com/fpicone/lumina/engine/math"
	"github.com/fpicone/lumina/engine/renderer/metadata"
)

/**
 * @brief The capability a batch exposes to its members. Renderables keep an
 * opaque handle to the batch that merged them; they never own the batch.
 */
type BatchHandle interface {
	BatchID() uint32
	// MarkDirty flags the batch stale, e.g. after this member's transform
	// changed.
	MarkDirty()
}

/**
 * @brief Everything needed to draw one renderable: its mesh, its render
 * passes and its owning scene object. Also carries the batching bookkeeping
 * flags: whether the renderable is eligible for batching, which batch it is
 * assigned to, and whether its recorded transform has gone stale.
 */
type RenderData struct {
	ID      uint32
	Name    string
	Mesh    *metadata.Mesh
	Passes  []*metadata.RenderPass
	Owner   *SceneObject
	Enabled bool

	batching bool
	batch    BatchHandle
	dirty    bool
}

func NewRenderData(owner *SceneObject, mesh *metadata.Mesh, passes ...*metadata.RenderPass) *RenderData {
	rd := &RenderData{
		Name:     uuid.New().String(),
		Mesh:     mesh,
		Passes:   passes,
		Owner:    owner,
		Enabled:  true,
		batching: true,
	}
	rd.ID = core.IdentifierAcquireNewID(rd)
	return rd
}

// Destroy releases the id slot held by this renderable.
func (rd *RenderData) Destroy() {
	if err := core.IdentifierReleaseID(rd.ID); err != nil {
		core.LogWarn(err.Error())
	}
}

func (rd *RenderData) PassCount() int {
	return len(rd.Passes)
}

func (rd *RenderData) Pass(index int) *metadata.RenderPass {
	return rd.Passes[index]
}

// Batching reports whether this renderable is eligible for batching.
func (rd *RenderData) Batching() bool {
	return rd.batching
}

func (rd *RenderData) SetBatching(batching bool) {
	rd.batching = batching
}

// Batch returns the handle of the batch this renderable is assigned to, or
// nil when unassigned.
func (rd *RenderData) Batch() BatchHandle {
	return rd.batch
}

func (rd *RenderData) AssignBatch(handle BatchHandle) {
	rd.batch = handle
}

func (rd *RenderData) ClearBatch() {
	rd.batch = nil
}

// Dirty reports whether the renderable changed since its transform was last
// recorded by a batch.
func (rd *RenderData) Dirty() bool {
	return rd.dirty
}

func (rd *RenderData) SetDirty(dirty bool) {
	rd.dirty = dirty
}

// ModelMatrix resolves the current model transform of the owning object,
// identity if the renderable is unowned or the owner has no transform.
func (rd *RenderData) ModelMatrix() math.Mat4 {
	if rd.Owner == nil {
		return math.NewMat4Identity()
	}
	return rd.Owner.ModelMatrix()
}

// Clone deep-copies the render state of this renderable for use as a
// standalone template. Passes are copied so later mutation of the original
// cannot leak into the clone; materials are shared system resources and keep
// pointing at the same instances. The clone holds no batch assignment.
func (rd *RenderData) Clone() *RenderData {
	clone := &RenderData{
		Name:     rd.Name,
		Mesh:     rd.Mesh,
		Owner:    rd.Owner,
		Enabled:  rd.Enabled,
		batching: true,
	}
	clone.Passes = make([]*metadata.RenderPass, len(rd.Passes))
	for i, pass := range rd.Passes {
		p := *pass
		clone.Passes[i] = &p
	}
	clone.ID = core.IdentifierAcquireNewID(clone)
	return clone
}
