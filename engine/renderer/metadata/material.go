package metadata

import "github.com/fpicone/lumina/engine/math"

/** @brief The name of the default material. */
const DefaultMaterialName string = "default"

/** @brief Identifies the shading technique a material is rendered with. */
type ShaderType int

const (
	/** @brief Plain textured shading. The only technique eligible for batching. */
	ShaderTypeTexture ShaderType = iota
	/** @brief Flat colour shading. */
	ShaderTypeColour
	/** @brief Lightmapped shading. */
	ShaderTypeLightmap
	/** @brief An application-provided technique. */
	ShaderTypeCustom
)

/**
 * @brief A material, which represents various properties
 * of a surface in the world such as texture, colour and
 * shininess.
 */
type Material struct {
	/** @brief The material id. */
	ID uint32
	/** @brief The material generation. Incremented every time the material is changed. */
	Generation uint32
	/** @brief The material name. */
	Name string
	/** @brief The shading technique used by this material. */
	Shader ShaderType
	/** @brief The diffuse colour. */
	DiffuseColour math.Vec4
	/** @brief The diffuse map name. */
	DiffuseMapName string
	/** @brief The material shininess, determines how concentrated the specular lighting is. */
	Shininess float32
}

func NewMaterial(name string, shader ShaderType) *Material {
	return &Material{
		Name:          name,
		Shader:        shader,
		DiffuseColour: math.Vec4{X: 1, Y: 1, Z: 1, W: 1},
	}
}
