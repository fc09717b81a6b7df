package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fpicone/lumina/engine/math"
	"github.com/fpicone/lumina/engine/renderer"
	"github.com/fpicone/lumina/engine/renderer/components"
	"github.com/fpicone/lumina/engine/renderer/metadata"
)

func smallConfig() *BatchSystemConfig {
	return &BatchSystemConfig{
		MaxBatchCount: 4,
		VertexLimit:   6,
		IndexLimit:    10,
	}
}

func renderable(vertexCount, indexCount int) *components.RenderData {
	positions := make([]math.Vec3, vertexCount)
	texCoords := make([]math.Vec2, vertexCount)
	for i := 0; i < vertexCount; i++ {
		positions[i] = math.NewVec3(float32(i), 0, 0)
		texCoords[i] = math.NewVec2(float32(i), 0)
	}
	indices := make([]uint32, indexCount)
	for i := 0; i < indexCount; i++ {
		indices[i] = uint32(i % vertexCount)
	}

	mesh := metadata.NewMesh("mesh")
	mesh.SetVertices(positions)
	mesh.SetIndices(indices)
	mesh.SetVec2Attribute(metadata.AttributeTexcoord, texCoords)

	obj := components.NewSceneObject("obj")
	material := metadata.NewMaterial("mat", metadata.ShaderTypeTexture)
	return components.NewRenderData(obj, mesh, metadata.NewRenderPass(material))
}

func TestNewBatchSystemValidatesConfig(t *testing.T) {
	_, err := NewBatchSystem(&BatchSystemConfig{MaxBatchCount: 0, VertexLimit: 1, IndexLimit: 1})
	assert.Error(t, err)

	_, err = NewBatchSystem(&BatchSystemConfig{MaxBatchCount: 1, VertexLimit: 0, IndexLimit: 1})
	assert.Error(t, err)

	bs, err := NewBatchSystem(smallConfig())
	require.NoError(t, err)
	assert.Equal(t, 0, bs.ActiveCount())
}

func TestAddRoutesOverflowToFreshBatch(t *testing.T) {
	bs, err := NewBatchSystem(smallConfig())
	require.NoError(t, err)
	defer bs.Shutdown()

	a := renderable(4, 6)
	result, err := bs.Add(a)
	require.NoError(t, err)
	assert.Equal(t, renderer.AddMerged, result)
	assert.Equal(t, 1, bs.ActiveCount())

	// The first batch rejects B on capacity; the system places it in a new
	// one.
	b := renderable(4, 6)
	result, err = bs.Add(b)
	require.NoError(t, err)
	assert.Equal(t, renderer.AddMerged, result)
	assert.Equal(t, 2, bs.ActiveCount())
	assert.NotEqual(t, a.Batch().BatchID(), b.Batch().BatchID())
}

func TestAddAlreadyAssigned(t *testing.T) {
	bs, err := NewBatchSystem(smallConfig())
	require.NoError(t, err)
	defer bs.Shutdown()

	a := renderable(4, 6)
	_, err = bs.Add(a)
	require.NoError(t, err)

	_, err = bs.Add(a)
	assert.Error(t, err)
}

func TestAddPoolExhausted(t *testing.T) {
	bs, err := NewBatchSystem(&BatchSystemConfig{MaxBatchCount: 1, VertexLimit: 6, IndexLimit: 10})
	require.NoError(t, err)
	defer bs.Shutdown()

	_, err = bs.Add(renderable(4, 6))
	require.NoError(t, err)

	result, err := bs.Add(renderable(4, 6))
	assert.Error(t, err)
	assert.Equal(t, renderer.AddRejected, result)
}

func TestUpdateReleasesEmptyBatches(t *testing.T) {
	bs, err := NewBatchSystem(smallConfig())
	require.NoError(t, err)
	defer bs.Shutdown()

	a := renderable(4, 6)
	_, err = bs.Add(a)
	require.NoError(t, err)
	bs.Update()
	assert.Equal(t, 1, bs.ActiveCount())

	a.Enabled = false
	bs.Update()
	assert.Equal(t, 0, bs.ActiveCount())
	assert.Equal(t, 1, bs.FreeCount())

	// The pooled batch is reused before anything new is allocated.
	b := renderable(4, 6)
	_, err = bs.Add(b)
	require.NoError(t, err)
	assert.Equal(t, 1, bs.ActiveCount())
	assert.Equal(t, 0, bs.FreeCount())
}

func TestUpdateIsStableWithoutChanges(t *testing.T) {
	bs, err := NewBatchSystem(smallConfig())
	require.NoError(t, err)
	defer bs.Shutdown()

	_, err = bs.Add(renderable(4, 6))
	require.NoError(t, err)

	bs.Update()
	bs.Update()
	bs.Update()
	assert.Equal(t, 1, bs.ActiveCount())
	require.Len(t, bs.Batches(), 1)
	assert.Equal(t, 1, bs.Batches()[0].DrawCount())
}

func TestMarkAllDirtyRegenerates(t *testing.T) {
	bs, err := NewBatchSystem(smallConfig())
	require.NoError(t, err)
	defer bs.Shutdown()

	a := renderable(4, 6)
	_, err = bs.Add(a)
	require.NoError(t, err)
	bs.Update()

	a.Owner.Transform.SetPosition(math.NewVec3(2, 0, 0))
	bs.MarkAllDirty()
	bs.Update()

	matrices := bs.Batches()[0].Matrices()
	require.Len(t, matrices, 1)
	assert.InDelta(t, 2.0, matrices[0].Data[12], 1e-6)
}

func TestOptOutStillTracked(t *testing.T) {
	bs, err := NewBatchSystem(smallConfig())
	require.NoError(t, err)
	defer bs.Shutdown()

	loner := renderable(4, 6)
	loner.SetBatching(false)
	result, err := bs.Add(loner)
	require.NoError(t, err)
	assert.Equal(t, renderer.AddUnbatched, result)
	require.Equal(t, 1, bs.ActiveCount())
	assert.Equal(t, 0, bs.Batches()[0].DrawCount())
	assert.True(t, bs.Batches()[0].Contains(loner))
}

func TestShutdownDestroysEverything(t *testing.T) {
	bs, err := NewBatchSystem(smallConfig())
	require.NoError(t, err)

	_, err = bs.Add(renderable(4, 6))
	require.NoError(t, err)

	require.NoError(t, bs.Shutdown())
	assert.Equal(t, 0, bs.ActiveCount())
	assert.Equal(t, 0, bs.FreeCount())
}
