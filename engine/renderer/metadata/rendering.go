package metadata

/** @brief Determines face culling mode during rendering. */
type FaceCullMode int

const (
	/** @brief No faces are culled. */
	FaceCullModeNone FaceCullMode = 0x0
	/** @brief Only front faces are culled. */
	FaceCullModeFront FaceCullMode = 0x1
	/** @brief Only back faces are culled. */
	FaceCullModeBack FaceCullMode = 0x2
	/** @brief Both front and back faces are culled. */
	FaceCullModeFrontAndBack FaceCullMode = 0x3
)

/**
 * @brief A single rendering pass over a renderable: the material (and with it
 * the shading technique) plus fixed-function state used for the pass.
 */
type RenderPass struct {
	/** @brief The material applied during this pass. */
	Material *Material
	/** @brief The face culling mode for this pass. */
	CullMode FaceCullMode
}

func NewRenderPass(material *Material) *RenderPass {
	return &RenderPass{
		Material: material,
		CullMode: FaceCullModeBack,
	}
}
