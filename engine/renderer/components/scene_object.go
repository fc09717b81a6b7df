package components

import (
	"github.com/fpicone/lumina/engine/math"
)

/**
 * @brief An object in the scene graph that renderables attach to. It owns the
 * transform used when the renderable is drawn; the transform may be nil, in
 * which case the identity matrix applies.
 */
type SceneObject struct {
	Name      string
	Enabled   bool
	Transform *math.Transform
}

func NewSceneObject(name string) *SceneObject {
	return &SceneObject{
		Name:      name,
		Enabled:   true,
		Transform: math.TransformCreate(),
	}
}

// ModelMatrix resolves the world matrix of this object, or identity when the
// object carries no transform.
func (so *SceneObject) ModelMatrix() math.Mat4 {
	if so == nil || so.Transform == nil {
		return math.NewMat4Identity()
	}
	return so.Transform.GetWorld()
}
