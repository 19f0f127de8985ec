package geometry

import (
	"errors"
	"fmt"

	"github.com/hoshiryu/remesh/pipeline/math"
)

// InvalidIndex marks an index slot that has not been assigned yet.
const InvalidIndex uint32 = 0xFFFFFFFF

var (
	ErrNormalCountMismatch = errors.New("vertex and normal counts differ")
	ErrIndexOutOfRange     = errors.New("triangle index out of range")
)

// Triangle holds the three vertex indices of one face.
type Triangle [3]uint32

/**
 * @brief An indexed triangle mesh. Vertices and Normals are index-aligned;
 * every triangle index refers into Vertices.
 */
type Mesh struct {
	Name      string
	Vertices  []math.Vec3
	Normals   []math.Vec3
	Triangles []Triangle
}

/**
 * @brief Maps every original vertex index to the index of its canonical
 * representative: the first-seen vertex holding the exact same position.
 * A vertex is its own representative iff no earlier vertex shares its position.
 */
type DuplicateMap []uint32

/**
 * @brief Maps every original vertex index to the position of its
 * representative inside the compacted vertex array.
 */
type VertexRemap []uint32

// Validate fails fast on a mesh violating the index-alignment contract.
// A zero-vertex mesh with no triangles is valid.
func (m *Mesh) Validate() error {
	if len(m.Normals) != len(m.Vertices) {
		return fmt.Errorf("%w: %d vertices, %d normals", ErrNormalCountMismatch, len(m.Vertices), len(m.Normals))
	}
	numVerts := uint32(len(m.Vertices))
	for i, tri := range m.Triangles {
		for j := 0; j < 3; j++ {
			if tri[j] >= numVerts {
				return fmt.Errorf("%w: triangle %d corner %d refers to vertex %d of %d", ErrIndexOutOfRange, i, j, tri[j], numVerts)
			}
		}
	}
	return nil
}

// Extents computes the axis-aligned bounds of the mesh vertices.
func (m *Mesh) Extents() math.Extents3D {
	if len(m.Vertices) == 0 {
		return math.Extents3D{}
	}
	ext := math.Extents3D{Min: m.Vertices[0], Max: m.Vertices[0]}
	for _, v := range m.Vertices[1:] {
		if v.X < ext.Min.X {
			ext.Min.X = v.X
		}
		if v.Y < ext.Min.Y {
			ext.Min.Y = v.Y
		}
		if v.Z < ext.Min.Z {
			ext.Min.Z = v.Z
		}
		if v.X > ext.Max.X {
			ext.Max.X = v.X
		}
		if v.Y > ext.Max.Y {
			ext.Max.Y = v.Y
		}
		if v.Z > ext.Max.Z {
			ext.Max.Z = v.Z
		}
	}
	return ext
}
