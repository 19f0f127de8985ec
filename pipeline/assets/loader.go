package assets

import (
	"github.com/hoshiryu/remesh/pipeline/geometry"
)

// Loader reads a mesh file into memory and writes one back out.
type Loader interface {
	Load(path string) (*geometry.Mesh, error)
	Save(path string, mesh *geometry.Mesh) error
}
