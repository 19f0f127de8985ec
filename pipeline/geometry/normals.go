package geometry

import (
	"github.com/hoshiryu/remesh/pipeline/math"
)

// GenerateNormals fills the mesh's normal array with face normals computed
// from triangle winding. Existing normals are discarded.
func GenerateNormals(mesh *Mesh) {
	mesh.Normals = make([]math.Vec3, len(mesh.Vertices))

	for _, tri := range mesh.Triangles {
		i0 := tri[0]
		i1 := tri[1]
		i2 := tri[2]

		edge1 := mesh.Vertices[i1].Sub(mesh.Vertices[i0])
		edge2 := mesh.Vertices[i2].Sub(mesh.Vertices[i0])

		c := edge1.Cross(edge2)
		if c.LengthSquared() == 0 {
			// Degenerate triangle, leave the zero normal in place.
			continue
		}
		normal := c.Normalized()

		// NOTE: This just generates a face normal. Smoothing out should be done in a separate pass if desired.
		mesh.Normals[i0] = normal
		mesh.Normals[i1] = normal
		mesh.Normals[i2] = normal
	}
}

// HasNormals reports whether the mesh carries an index-aligned normal array.
func (m *Mesh) HasNormals() bool {
	return len(m.Vertices) > 0 && len(m.Normals) == len(m.Vertices)
}
