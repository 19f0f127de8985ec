/*
Sample meshes for trying the pipeline out. Both generators emit
per-face/per-segment vertices, so the samples arrive full of exact
duplicates for the compactor to weld.
*/
package testbed

import (
	"os"
	"path/filepath"

	"github.com/hoshiryu/remesh/pipeline/assets/loaders"
	"github.com/hoshiryu/remesh/pipeline/core"
	"github.com/hoshiryu/remesh/pipeline/geometry"
)

// WriteSamples generates the sample meshes into dir as OBJ files.
func WriteSamples(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	samples := []*geometry.Mesh{
		geometry.GenerateCube(1.0, 1.0, 1.0, "cube"),
		geometry.GeneratePlane(4.0, 4.0, 8, 8, "plane"),
	}

	loader := &loaders.ObjLoader{}
	for _, mesh := range samples {
		path := filepath.Join(dir, mesh.Name+".obj")
		if err := loader.Save(path, mesh); err != nil {
			return err
		}
		core.LogInfo("sample mesh %s written to %s (%d vertices, %d triangles)",
			mesh.Name, path, len(mesh.Vertices), len(mesh.Triangles))
	}
	return nil
}
