package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fpicone/lumina/engine/math"
	"github.com/fpicone/lumina/engine/renderer/metadata"
)

func TestRenderDataDefaults(t *testing.T) {
	obj := NewSceneObject("obj")
	mesh := metadata.NewMesh("mesh")
	rd := NewRenderData(obj, mesh, metadata.NewRenderPass(metadata.NewMaterial("m", metadata.ShaderTypeTexture)))
	defer rd.Destroy()

	assert.True(t, rd.Enabled)
	assert.True(t, rd.Batching())
	assert.Nil(t, rd.Batch())
	assert.False(t, rd.Dirty())
	assert.Equal(t, 1, rd.PassCount())
	assert.NotEmpty(t, rd.Name)
}

func TestRenderDataModelMatrix(t *testing.T) {
	obj := NewSceneObject("obj")
	obj.Transform.SetPosition(math.NewVec3(1, 2, 3))
	rd := NewRenderData(obj, metadata.NewMesh("mesh"))
	defer rd.Destroy()

	m := rd.ModelMatrix()
	assert.InDelta(t, 1.0, m.Data[12], 1e-6)
	assert.InDelta(t, 2.0, m.Data[13], 1e-6)
	assert.InDelta(t, 3.0, m.Data[14], 1e-6)

	// No owner, or an owner without transform, resolves to identity.
	orphan := NewRenderData(nil, metadata.NewMesh("mesh"))
	defer orphan.Destroy()
	assert.True(t, orphan.ModelMatrix().Compare(math.NewMat4Identity(), math.K_FLOAT_EPSILON))
}

func TestRenderDataClone(t *testing.T) {
	obj := NewSceneObject("obj")
	pass := metadata.NewRenderPass(metadata.NewMaterial("m", metadata.ShaderTypeTexture))
	rd := NewRenderData(obj, metadata.NewMesh("mesh"), pass)
	defer rd.Destroy()
	rd.SetBatching(false)

	clone := rd.Clone()
	defer clone.Destroy()

	require.NotSame(t, rd, clone)
	assert.NotEqual(t, rd.ID, clone.ID)
	// Clones are always batch-eligible templates.
	assert.True(t, clone.Batching())
	assert.Nil(t, clone.Batch())

	// Pass state is copied, materials are shared.
	require.NotSame(t, rd.Pass(0), clone.Pass(0))
	assert.Same(t, rd.Pass(0).Material, clone.Pass(0).Material)
	rd.Pass(0).CullMode = metadata.FaceCullModeFrontAndBack
	assert.Equal(t, metadata.FaceCullModeBack, clone.Pass(0).CullMode)
}
