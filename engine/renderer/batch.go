package renderer

import (
	"github.com/google/uuid"

	"github.com/fpicone/lumina/engine/core"
	"github.com/fpicone/lumina/engine/math"
	"github.com/fpicone/lumina/engine/renderer/components"
	"github.com/fpicone/lumina/engine/renderer/metadata"
)

/** @brief The outcome of offering a renderable to a batch. */
type AddResult int

const (
	/** @brief The renderable was folded into the combined buffers. */
	AddMerged AddResult = iota
	/** @brief The renderable is tracked by the batch but rendered individually. */
	AddUnbatched
	/** @brief The batch is full; the caller must place the renderable elsewhere. */
	AddRejected
)

/**
 * @brief A batch merges the geometry of several independently transformed
 * renderables into one combined mesh so they can be drawn with a single call.
 * Each merged vertex carries a matrix index selecting the matrix of the
 * renderable it came from out of the batch's matrix palette.
 *
 * A batch is exclusively owned and driven by one frame-update pass; it is not
 * safe for concurrent use.
 */
type Batch struct {
	id uint32

	vertexLimit int
	indexLimit  int

	drawCount   int
	vertexCount int
	indexCount  int
	indexOffset uint32

	vertices      []math.Vec3
	normals       []math.Vec3
	texCoords     []math.Vec2
	matrixIndices []float32
	indices       []uint32

	matrices       []math.Mat4
	matrixIndexMap map[*components.RenderData]int

	// Tracking set in insertion order. Holds merged members as well as
	// members assigned here but rendered individually.
	members   []*components.RenderData
	memberSet map[*components.RenderData]struct{}

	mesh     *metadata.Mesh
	meshInit bool

	// Render-state template cloned from the first merged renderable. Owned
	// exclusively by the batch.
	prototype *components.RenderData

	notBatched bool
	dirty      bool

	// Pool-owner notification invoked when the batch empties out.
	release func(*Batch)
}

// NewBatch creates a batch with fixed capacity ceilings. release is invoked
// when the batch becomes empty of members and should return the instance to
// its free pool; it may be nil.
func NewBatch(vertexLimit, indexLimit int, release func(*Batch)) *Batch {
	b := &Batch{
		vertexLimit:    vertexLimit,
		indexLimit:     indexLimit,
		vertices:       make([]math.Vec3, 0, vertexLimit),
		normals:        make([]math.Vec3, 0, vertexLimit),
		texCoords:      make([]math.Vec2, 0, vertexLimit),
		matrixIndices:  make([]float32, 0, vertexLimit),
		indices:        make([]uint32, 0, indexLimit),
		matrixIndexMap: make(map[*components.RenderData]int),
		memberSet:      make(map[*components.RenderData]struct{}),
		release:        release,
	}
	b.id = core.IdentifierAcquireNewID(b)
	return b
}

// BatchID implements components.BatchHandle.
func (b *Batch) BatchID() uint32 {
	return b.id
}

func (b *Batch) VertexLimit() int { return b.vertexLimit }
func (b *Batch) IndexLimit() int  { return b.indexLimit }

// DrawCount returns the number of renderables currently merged into the
// combined mesh.
func (b *Batch) DrawCount() int { return b.drawCount }

func (b *Batch) VertexCount() int { return b.vertexCount }
func (b *Batch) IndexCount() int  { return b.indexCount }

// MemberCount returns the size of the tracking set, merged or not.
func (b *Batch) MemberCount() int { return len(b.members) }

// NotBatched reports whether at least one tracked member renders individually.
func (b *Batch) NotBatched() bool { return b.notBatched }

// Dirty reports whether the batch was externally marked stale.
func (b *Batch) Dirty() bool { return b.dirty }

// MarkDirty flags the merged buffers stale; the next SetupMesh regenerates.
func (b *Batch) MarkDirty() { b.dirty = true }

// Mesh returns the merged mesh, valid after SetupMesh reported active.
func (b *Batch) Mesh() *metadata.Mesh { return b.mesh }

// Prototype returns the owned render-state template for the merged draw, nil
// until the first renderable has been merged.
func (b *Batch) Prototype() *components.RenderData { return b.prototype }

// Matrices returns the matrix palette, one matrix per merged renderable.
func (b *Batch) Matrices() []math.Mat4 { return b.matrices }

// MatrixIndexOf returns the draw-slot of a merged member.
func (b *Batch) MatrixIndexOf(rd *components.RenderData) (int, bool) {
	slot, ok := b.matrixIndexMap[rd]
	return slot, ok
}

// Contains reports whether the renderable is tracked by this batch.
func (b *Batch) Contains(rd *components.RenderData) bool {
	_, ok := b.memberSet[rd]
	return ok
}

// Members returns the tracked renderables in insertion order.
func (b *Batch) Members() []*components.RenderData {
	out := make([]*components.RenderData, len(b.members))
	copy(out, b.members)
	return out
}

/**
 * @brief Offers a renderable to this batch. Three outcomes are possible:
 * merged into the combined buffers, accepted into the tracking set but
 * rendered individually, or rejected because the capacity ceiling would be
 * exceeded while the batch already holds merged geometry. Rejection is a
 * routine outcome; the caller places the renderable in another batch.
 */
func (b *Batch) Add(rd *components.RenderData) AddResult {
	renderMesh := rd.Mesh

	// Resolve the current model transform and mark the renderable
	// synchronized against it before any eligibility decision.
	modelMatrix := rd.ModelMatrix()
	rd.SetDirty(false)

	// Opted out of batching: track it, render it on its own.
	if !rd.Batching() {
		b.track(rd)
		b.notBatched = true
		return AddUnbatched
	}

	// Only the plain texture technique merges. Anything else is tracked and
	// rendered in the normal way.
	if !mergeable(rd) {
		b.track(rd)
		b.notBatched = true
		return AddUnbatched
	}

	// Capacity check before any buffer mutation, so a rejected renderable
	// leaves the batch untouched.
	numIndices := len(renderMesh.Indices)
	numVertices := len(renderMesh.Vertices)
	if numIndices == 0 ||
		b.indexCount+numIndices > b.indexLimit ||
		b.vertexCount+numVertices > b.vertexLimit {
		if b.drawCount > 0 {
			return AddRejected
		}
		// A lone oversized renderable cannot be split. Keep it here and
		// render it alone.
		rd.SetBatching(false)
		b.track(rd)
		b.notBatched = true
		return AddUnbatched
	}

	// The first merged renderable donates the render-state template used to
	// issue the combined draw.
	if b.drawCount == 0 && b.prototype == nil {
		b.prototype = rd.Clone()
	}

	b.matrixIndexMap[rd] = b.drawCount
	b.matrices = append(b.matrices, modelMatrix)
	b.track(rd)
	b.updateMesh(renderMesh)
	return AddMerged
}

// track inserts the renderable into the tracking set and points its batch
// handle here. Re-adding an existing member is a no-op.
func (b *Batch) track(rd *components.RenderData) {
	if _, ok := b.memberSet[rd]; ok {
		return
	}
	b.memberSet[rd] = struct{}{}
	b.members = append(b.members, rd)
	rd.AssignBatch(b)
}

// mergeable reports whether every render pass of the renderable uses the
// plain texture technique, the only one the combined draw can express.
func mergeable(rd *components.RenderData) bool {
	for i := 0; i < rd.PassCount(); i++ {
		mat := rd.Pass(i).Material
		if mat == nil || mat.Shader != metadata.ShaderTypeTexture {
			return false
		}
	}
	return true
}

/**
 * @brief Appends one renderable's mesh into the shared buffers: positions,
 * texture coordinates and the per-vertex matrix index tag, then the indices
 * shifted by the running offset so they keep addressing the right vertices.
 * Normal-free meshes contribute zero normals so the buffers stay parallel.
 */
func (b *Batch) updateMesh(renderMesh *metadata.Mesh) {
	texCoords := renderMesh.Vec2Attribute(metadata.AttributeTexcoord)

	for i := range renderMesh.Vertices {
		b.vertices = append(b.vertices, renderMesh.Vertices[i])
		b.matrixIndices = append(b.matrixIndices, float32(b.drawCount))
		if i < len(texCoords) {
			b.texCoords = append(b.texCoords, texCoords[i])
		} else {
			b.texCoords = append(b.texCoords, math.Vec2{})
		}
	}

	if renderMesh.HasNormals() {
		b.normals = append(b.normals, renderMesh.Normals...)
	} else {
		b.normals = append(b.normals, make([]math.Vec3, len(renderMesh.Vertices))...)
	}

	b.indexCount += len(renderMesh.Indices)
	for _, index := range renderMesh.Indices {
		b.indices = append(b.indices, index+b.indexOffset)
	}

	b.vertexCount += len(renderMesh.Vertices)
	b.indexOffset += uint32(len(renderMesh.Vertices))
	b.drawCount++
	b.meshInit = false
}

/**
 * @brief Per-frame refresh. Evicts disabled members, regenerates the merged
 * buffers when the batch went stale, and lazily rebuilds the renderer-facing
 * mesh. Returns false when the batch emptied out and was returned to its
 * pool; the caller must stop using it.
 */
func (b *Batch) SetupMesh(batchDirty bool) bool {
	updateVBO := b.evictDisabled()

	// Batch is empty, hand it back to the pool.
	if len(b.members) == 0 {
		b.resetBatch()
		return false
	}

	if batchDirty || b.dirty || updateVBO {
		b.regenerateMeshData()
	}
	b.dirty = false

	if !b.meshInit {
		b.initMesh()
	}
	return true
}

// evictDisabled drops members that are disabled, or whose owning object is
// disabled, from the tracking set. Returns true if anything was evicted,
// which forces a buffer rebuild since merged geometry cannot be removed in
// place.
func (b *Batch) evictDisabled() bool {
	evicted := false
	kept := b.members[:0]
	for _, rd := range b.members {
		if !rd.Enabled || (rd.Owner != nil && !rd.Owner.Enabled) {
			rd.SetBatching(false)
			rd.ClearBatch()
			delete(b.memberSet, rd)
			delete(b.matrixIndexMap, rd)
			evicted = true
			continue
		}
		kept = append(kept, rd)
	}
	b.members = kept
	return evicted
}

/**
 * @brief Full rebuild of the merged buffers from the surviving tracking set.
 * This is the only path that sheds geometry of evicted members. Members that
 * are no longer eligible to merge keep their tracking slot but contribute no
 * geometry.
 */
func (b *Batch) regenerateMeshData() {
	b.clearData()
	for _, rd := range b.members {
		if !rd.Batching() || !mergeable(rd) || len(rd.Mesh.Indices) == 0 {
			b.notBatched = true
			continue
		}
		b.matrixIndexMap[rd] = b.drawCount
		b.matrices = append(b.matrices, rd.ModelMatrix())
		b.updateMesh(rd.Mesh)
	}
	core.LogDebug("batch %d regenerated: %d merged draws, %d vertices, %d indices",
		b.id, b.drawCount, b.vertexCount, b.indexCount)
}

// clearData zeroes every buffer and counter. The tracking set survives; use
// resetBatch or Destroy to drop membership.
func (b *Batch) clearData() {
	b.vertexCount = 0
	b.indexCount = 0
	b.indexOffset = 0
	b.drawCount = 0
	b.matrixIndexMap = make(map[*components.RenderData]int)
	b.matrixIndices = b.matrixIndices[:0]
	b.matrices = b.matrices[:0]
	b.texCoords = b.texCoords[:0]
	b.vertices = b.vertices[:0]
	b.normals = b.normals[:0]
	b.indices = b.indices[:0]
	b.meshInit = false
	b.dirty = false
	b.notBatched = false
}

// initMesh synthesizes the renderer-facing mesh from the merged buffers and
// attaches it to the prototype render state. Buffer contents are copied so a
// consumer holding the mesh never observes a mid-frame rebuild.
func (b *Batch) initMesh() {
	b.meshInit = true
	if b.mesh == nil {
		b.mesh = metadata.NewMesh(uuid.New().String())
	}

	b.mesh.SetVertices(append([]math.Vec3(nil), b.vertices...))
	b.mesh.SetNormals(append([]math.Vec3(nil), b.normals...))
	b.mesh.SetVec2Attribute(metadata.AttributeTexcoord, append([]math.Vec2(nil), b.texCoords...))
	b.mesh.SetIndices(append([]uint32(nil), b.indices...))
	b.mesh.SetFloatAttribute(metadata.AttributeMatrixIndex, append([]float32(nil), b.matrixIndices...))

	if b.prototype != nil {
		b.prototype.Mesh = b.mesh
	}
}

// resetBatch clears the batch back to its freshly constructed state and
// notifies the pool owner that the instance is free for reuse.
func (b *Batch) resetBatch() {
	b.clearData()
	b.detachMembers()
	b.destroyPrototype()
	core.LogDebug("batch %d emptied, returning to pool", b.id)
	if b.release != nil {
		b.release(b)
	}
}

/**
 * @brief Teardown at shutdown: clears buffers, detaches members and destroys
 * the owned prototype without notifying the pool owner.
 */
func (b *Batch) Destroy() {
	b.clearData()
	b.detachMembers()
	b.destroyPrototype()
	if err := core.IdentifierReleaseID(b.id); err != nil {
		core.LogWarn(err.Error())
	}
}

// detachMembers drops the tracking set. Members are externally owned; the
// batch only clears their back-reference.
func (b *Batch) detachMembers() {
	for _, rd := range b.members {
		rd.ClearBatch()
	}
	b.members = nil
	b.memberSet = make(map[*components.RenderData]struct{})
}

func (b *Batch) destroyPrototype() {
	if b.prototype != nil {
		b.prototype.Destroy()
		b.prototype = nil
	}
}
