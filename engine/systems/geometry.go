package systems

import (
	"github.com/fpicone/lumina/engine/core"
	"github.com/fpicone/lumina/engine/math"
	"github.com/fpicone/lumina/engine/renderer/metadata"
)

/**
 * @brief Generates a segmented plane mesh on the xy plane. Each segment gets
 * its own four vertices; deduplication can always be layered on later.
 *
 * @param width The overall width of the plane. Must be non-zero.
 * @param height The overall height of the plane. Must be non-zero.
 * @param xSegmentCount The number of segments along the x-axis. Must be non-zero.
 * @param ySegmentCount The number of segments along the y-axis. Must be non-zero.
 * @param tileX The number of times the texture tiles across the x-axis. Must be non-zero.
 * @param tileY The number of times the texture tiles across the y-axis. Must be non-zero.
 * @param name The name of the generated mesh.
 * @return A mesh ready to be offered to a batch.
 */
func GeneratePlaneMesh(width, height float32, xSegmentCount, ySegmentCount uint32, tileX, tileY float32, name string) *metadata.Mesh {
	if width == 0 {
		core.LogWarn("Width must be nonzero. Defaulting to one.")
		width = 1.0
	}
	if height == 0 {
		core.LogWarn("Height must be nonzero. Defaulting to one.")
		height = 1.0
	}
	if xSegmentCount < 1 {
		core.LogWarn("xSegmentCount must be a positive number. Defaulting to one.")
		xSegmentCount = 1
	}
	if ySegmentCount < 1 {
		core.LogWarn("ySegmentCount must be a positive number. Defaulting to one.")
		ySegmentCount = 1
	}
	if tileX == 0 {
		core.LogWarn("tileX must be nonzero. Defaulting to one.")
		tileX = 1.0
	}
	if tileY == 0 {
		core.LogWarn("tileY must be nonzero. Defaulting to one.")
		tileY = 1.0
	}

	vertexCount := xSegmentCount * ySegmentCount * 4 // 4 verts per segment
	indexCount := xSegmentCount * ySegmentCount * 6  // 6 indices per segment
	positions := make([]math.Vec3, vertexCount)
	texCoords := make([]math.Vec2, vertexCount)
	indices := make([]uint32, indexCount)

	segWidth := width / float32(xSegmentCount)
	segHeight := height / float32(ySegmentCount)
	halfWidth := width * 0.5
	halfHeight := height * 0.5
	for y := uint32(0); y < ySegmentCount; y++ {
		for x := uint32(0); x < xSegmentCount; x++ {
			minX := (float32(x) * segWidth) - halfWidth
			minY := (float32(y) * segHeight) - halfHeight
			maxX := minX + segWidth
			maxY := minY + segHeight
			minUVX := (float32(x) / float32(xSegmentCount)) * tileX
			minUVY := (float32(y) / float32(ySegmentCount)) * tileY
			maxUVX := (float32(x+1) / float32(xSegmentCount)) * tileX
			maxUVY := (float32(y+1) / float32(ySegmentCount)) * tileY

			vOffset := ((y * xSegmentCount) + x) * 4
			positions[vOffset+0] = math.NewVec3(minX, minY, 0)
			positions[vOffset+1] = math.NewVec3(maxX, maxY, 0)
			positions[vOffset+2] = math.NewVec3(minX, maxY, 0)
			positions[vOffset+3] = math.NewVec3(maxX, minY, 0)
			texCoords[vOffset+0] = math.NewVec2(minUVX, minUVY)
			texCoords[vOffset+1] = math.NewVec2(maxUVX, maxUVY)
			texCoords[vOffset+2] = math.NewVec2(minUVX, maxUVY)
			texCoords[vOffset+3] = math.NewVec2(maxUVX, minUVY)

			iOffset := ((y * xSegmentCount) + x) * 6
			indices[iOffset+0] = vOffset + 0
			indices[iOffset+1] = vOffset + 1
			indices[iOffset+2] = vOffset + 2
			indices[iOffset+3] = vOffset + 0
			indices[iOffset+4] = vOffset + 3
			indices[iOffset+5] = vOffset + 1
		}
	}

	if len(name) == 0 {
		name = "plane"
	}

	mesh := metadata.NewMesh(name)
	mesh.SetVertices(positions)
	mesh.SetIndices(indices)
	mesh.SetVec2Attribute(metadata.AttributeTexcoord, texCoords)

	normals := make([]math.Vec3, vertexCount)
	math.GeometryGenerateNormals(positions, indices, normals)
	mesh.SetNormals(normals)

	return mesh
}

/**
 * @brief Generates a cube mesh centered on the origin: 4 vertices and 6
 * indices per side.
 */
func GenerateCubeMesh(width, height, depth, tileX, tileY float32, name string) *metadata.Mesh {
	if width == 0 {
		core.LogWarn("Width must be nonzero. Defaulting to one.")
		width = 1.0
	}
	if height == 0 {
		core.LogWarn("Height must be nonzero. Defaulting to one.")
		height = 1.0
	}
	if depth == 0 {
		core.LogWarn("Depth must be nonzero. Defaulting to one.")
		depth = 1
	}
	if tileX == 0 {
		core.LogWarn("tileX must be nonzero. Defaulting to one.")
		tileX = 1.0
	}
	if tileY == 0 {
		core.LogWarn("tileY must be nonzero. Defaulting to one.")
		tileY = 1.0
	}

	halfWidth := width * 0.5
	halfHeight := height * 0.5
	halfDepth := depth * 0.5
	minX := -halfWidth
	minY := -halfHeight
	minZ := -halfDepth
	maxX := halfWidth
	maxY := halfHeight
	maxZ := halfDepth
	minUVX := float32(0.0)
	minUVY := float32(0.0)
	maxUVX := tileX
	maxUVY := tileY

	positions := make([]math.Vec3, 4*6)
	texCoords := make([]math.Vec2, 4*6)
	normals := make([]math.Vec3, 4*6)
	indices := make([]uint32, 6*6)

	// Front face
	positions[(0*4)+0] = math.NewVec3(minX, minY, maxZ)
	positions[(0*4)+1] = math.NewVec3(maxX, maxY, maxZ)
	positions[(0*4)+2] = math.NewVec3(minX, maxY, maxZ)
	positions[(0*4)+3] = math.NewVec3(maxX, minY, maxZ)
	setFaceAttributes(texCoords, normals, 0, minUVX, minUVY, maxUVX, maxUVY, math.NewVec3(0.0, 0.0, 1.0))

	// Back face
	positions[(1*4)+0] = math.NewVec3(maxX, minY, minZ)
	positions[(1*4)+1] = math.NewVec3(minX, maxY, minZ)
	positions[(1*4)+2] = math.NewVec3(maxX, maxY, minZ)
	positions[(1*4)+3] = math.NewVec3(minX, minY, minZ)
	setFaceAttributes(texCoords, normals, 1, minUVX, minUVY, maxUVX, maxUVY, math.NewVec3(0.0, 0.0, -1.0))

	// Left face
	positions[(2*4)+0] = math.NewVec3(minX, minY, minZ)
	positions[(2*4)+1] = math.NewVec3(minX, maxY, maxZ)
	positions[(2*4)+2] = math.NewVec3(minX, maxY, minZ)
	positions[(2*4)+3] = math.NewVec3(minX, minY, maxZ)
	setFaceAttributes(texCoords, normals, 2, minUVX, minUVY, maxUVX, maxUVY, math.NewVec3(-1.0, 0.0, 0.0))

	// Right face
	positions[(3*4)+0] = math.NewVec3(maxX, minY, maxZ)
	positions[(3*4)+1] = math.NewVec3(maxX, maxY, minZ)
	positions[(3*4)+2] = math.NewVec3(maxX, maxY, maxZ)
	positions[(3*4)+3] = math.NewVec3(maxX, minY, minZ)
	setFaceAttributes(texCoords, normals, 3, minUVX, minUVY, maxUVX, maxUVY, math.NewVec3(1.0, 0.0, 0.0))

	// Bottom face
	positions[(4*4)+0] = math.NewVec3(maxX, minY, maxZ)
	positions[(4*4)+1] = math.NewVec3(minX, minY, minZ)
	positions[(4*4)+2] = math.NewVec3(maxX, minY, minZ)
	positions[(4*4)+3] = math.NewVec3(minX, minY, maxZ)
	setFaceAttributes(texCoords, normals, 4, minUVX, minUVY, maxUVX, maxUVY, math.NewVec3(0.0, -1.0, 0.0))

	// Top face
	positions[(5*4)+0] = math.NewVec3(minX, maxY, maxZ)
	positions[(5*4)+1] = math.NewVec3(maxX, maxY, minZ)
	positions[(5*4)+2] = math.NewVec3(minX, maxY, minZ)
	positions[(5*4)+3] = math.NewVec3(maxX, maxY, maxZ)
	setFaceAttributes(texCoords, normals, 5, minUVX, minUVY, maxUVX, maxUVY, math.NewVec3(0.0, 1.0, 0.0))

	for i := 0; i < 6; i++ {
		vOffset := i * 4
		iOffset := i * 6
		indices[iOffset+0] = uint32(vOffset + 0)
		indices[iOffset+1] = uint32(vOffset + 1)
		indices[iOffset+2] = uint32(vOffset + 2)
		indices[iOffset+3] = uint32(vOffset + 0)
		indices[iOffset+4] = uint32(vOffset + 3)
		indices[iOffset+5] = uint32(vOffset + 1)
	}

	if len(name) == 0 {
		name = "cube"
	}

	mesh := metadata.NewMesh(name)
	mesh.SetVertices(positions)
	mesh.SetNormals(normals)
	mesh.SetIndices(indices)
	mesh.SetVec2Attribute(metadata.AttributeTexcoord, texCoords)

	return mesh
}

func setFaceAttributes(texCoords []math.Vec2, normals []math.Vec3, face int, minUVX, minUVY, maxUVX, maxUVY float32, normal math.Vec3) {
	offset := face * 4
	texCoords[offset+0] = math.NewVec2(minUVX, minUVY)
	texCoords[offset+1] = math.NewVec2(maxUVX, maxUVY)
	texCoords[offset+2] = math.NewVec2(minUVX, maxUVY)
	texCoords[offset+3] = math.NewVec2(maxUVX, minUVY)
	for i := 0; i < 4; i++ {
		normals[offset+i] = normal
	}
}
