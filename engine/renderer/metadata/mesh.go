package metadata

import (
	"github.com/fpicone/lumina/engine/math"
)

/** @brief The attribute name under which texture coordinates are stored. */
const AttributeTexcoord string = "a_texcoord"

/** @brief The attribute name under which per-vertex matrix indices are stored. */
const AttributeMatrixIndex string = "a_matrix_index"

/**
 * @brief A mesh holds raw geometry buffers: positions, optional normals,
 * indices and arbitrarily named per-vertex attributes. Vertex positions and
 * every named attribute run parallel to each other; normals may be absent.
 */
type Mesh struct {
	UniqueID   uint32
	Name       string
	Generation uint8

	Vertices []math.Vec3
	Normals  []math.Vec3
	Indices  []uint32

	vec2Attributes  map[string][]math.Vec2
	floatAttributes map[string][]float32
}

func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:            name,
		vec2Attributes:  make(map[string][]math.Vec2),
		floatAttributes: make(map[string][]float32),
	}
}

func (m *Mesh) SetVertices(vertices []math.Vec3) {
	m.Vertices = vertices
	m.Generation++
}

func (m *Mesh) SetNormals(normals []math.Vec3) {
	m.Normals = normals
	m.Generation++
}

func (m *Mesh) SetIndices(indices []uint32) {
	m.Indices = indices
	m.Generation++
}

// SetVec2Attribute stores a named 2-component per-vertex attribute.
func (m *Mesh) SetVec2Attribute(name string, values []math.Vec2) {
	if m.vec2Attributes == nil {
		m.vec2Attributes = make(map[string][]math.Vec2)
	}
	m.vec2Attributes[name] = values
	m.Generation++
}

// Vec2Attribute returns the named 2-component attribute, or nil if absent.
func (m *Mesh) Vec2Attribute(name string) []math.Vec2 {
	return m.vec2Attributes[name]
}

// SetFloatAttribute stores a named scalar per-vertex attribute.
func (m *Mesh) SetFloatAttribute(name string, values []float32) {
	if m.floatAttributes == nil {
		m.floatAttributes = make(map[string][]float32)
	}
	m.floatAttributes[name] = values
	m.Generation++
}

// FloatAttribute returns the named scalar attribute, or nil if absent.
func (m *Mesh) FloatAttribute(name string) []float32 {
	return m.floatAttributes[name]
}

// HasNormals indicates whether this mesh supplies per-vertex normals.
func (m *Mesh) HasNormals() bool {
	return len(m.Normals) > 0
}
