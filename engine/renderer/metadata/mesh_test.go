package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fpicone/lumina/engine/math"
)

func TestMeshGenerationBumpsOnWrite(t *testing.T) {
	mesh := NewMesh("m")
	start := mesh.Generation

	mesh.SetVertices([]math.Vec3{math.NewVec3(0, 0, 0)})
	mesh.SetIndices([]uint32{0})
	mesh.SetVec2Attribute(AttributeTexcoord, []math.Vec2{math.NewVec2(0, 0)})
	mesh.SetFloatAttribute(AttributeMatrixIndex, []float32{0})

	assert.Equal(t, start+4, mesh.Generation)
}

func TestMeshAttributes(t *testing.T) {
	mesh := NewMesh("m")
	assert.Nil(t, mesh.Vec2Attribute(AttributeTexcoord))
	assert.Nil(t, mesh.FloatAttribute(AttributeMatrixIndex))
	assert.False(t, mesh.HasNormals())

	uvs := []math.Vec2{math.NewVec2(0.5, 0.5)}
	mesh.SetVec2Attribute(AttributeTexcoord, uvs)
	assert.Equal(t, uvs, mesh.Vec2Attribute(AttributeTexcoord))

	weights := []float32{1, 2, 3}
	mesh.SetFloatAttribute(AttributeMatrixIndex, weights)
	assert.Equal(t, weights, mesh.FloatAttribute(AttributeMatrixIndex))

	mesh.SetNormals([]math.Vec3{math.NewVec3(0, 1, 0)})
	assert.True(t, mesh.HasNormals())
}
