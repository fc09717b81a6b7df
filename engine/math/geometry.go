package math

// GeometryGenerateNormals computes face normals for the given triangle list
// and writes them into the out slice, which must be len(positions) long.
// NOTE: This just generates face normals. Smoothing out should be done in a
// separate pass if desired.
func GeometryGenerateNormals(positions []Vec3, indices []uint32, out []Vec3) {
	for i := 0; i+2 < len(indices); i += 3 {
		i0 := indices[i+0]
		i1 := indices[i+1]
		i2 := indices[i+2]

		edge1 := positions[i1].Sub(positions[i0])
		edge2 := positions[i2].Sub(positions[i0])

		c := edge1.Cross(edge2)
		normal := c.Normalized()

		out[i0] = normal
		out[i1] = normal
		out[i2] = normal
	}
}
