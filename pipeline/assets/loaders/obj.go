package loaders

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hoshiryu/remesh/pipeline/core"
	"github.com/hoshiryu/remesh/pipeline/geometry"
	"github.com/hoshiryu/remesh/pipeline/math"
)

// ObjLoader reads and writes Wavefront OBJ files, restricted to the
// v/vn/f statements that describe an indexed triangle mesh. Faces with
// more than three corners are fan-triangulated.
type ObjLoader struct{}

func (ol *ObjLoader) Load(path string) (*geometry.Mesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	mesh := &geometry.Mesh{
		Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
	}
	var normals []math.Vec3

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%s:%d: bad vertex: %w", path, lineNo, err)
			}
			mesh.Vertices = append(mesh.Vertices, v)
		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%s:%d: bad normal: %w", path, lineNo, err)
			}
			normals = append(normals, n)
		case "f":
			corners := fields[1:]
			if len(corners) < 3 {
				return nil, fmt.Errorf("%s:%d: face with %d corners", path, lineNo, len(corners))
			}
			indices := make([]uint32, len(corners))
			for i, corner := range corners {
				idx, err := parseFaceCorner(corner, len(mesh.Vertices))
				if err != nil {
					return nil, fmt.Errorf("%s:%d: bad face: %w", path, lineNo, err)
				}
				indices[i] = idx
			}
			for i := 2; i < len(indices); i++ {
				mesh.Triangles = append(mesh.Triangles, geometry.Triangle{indices[0], indices[i-1], indices[i]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// OBJ normals are referenced per face corner; they only line up with the
	// vertex array when the file writes one normal per vertex in order.
	// Anything else gets freshly generated face normals.
	if len(normals) == len(mesh.Vertices) {
		mesh.Normals = normals
	} else {
		if len(normals) > 0 {
			core.LogDebug("obj_loader: %s has %d normals for %d vertices, regenerating", path, len(normals), len(mesh.Vertices))
		}
		geometry.GenerateNormals(mesh)
	}

	if err := mesh.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return mesh, nil
}

func (ol *ObjLoader) Save(path string, mesh *geometry.Mesh) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	fmt.Fprintf(w, "# %s\n", mesh.Name)
	for _, v := range mesh.Vertices {
		fmt.Fprintf(w, "v %g %g %g\n", v.X, v.Y, v.Z)
	}
	for _, n := range mesh.Normals {
		fmt.Fprintf(w, "vn %g %g %g\n", n.X, n.Y, n.Z)
	}
	for _, tri := range mesh.Triangles {
		fmt.Fprintf(w, "f %d//%d %d//%d %d//%d\n",
			tri[0]+1, tri[0]+1, tri[1]+1, tri[1]+1, tri[2]+1, tri[2]+1)
	}
	return w.Flush()
}

func parseVec3(fields []string) (math.Vec3, error) {
	if len(fields) < 3 {
		return math.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	var out [3]float32
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return math.Vec3{}, err
		}
		out[i] = float32(f)
	}
	return math.NewVec3(out[0], out[1], out[2]), nil
}

// parseFaceCorner resolves one "v", "v/vt", "v//vn" or "v/vt/vn" face corner
// to a zero-based vertex index. Negative indices count back from the current
// end of the vertex list, per the OBJ format.
func parseFaceCorner(corner string, numVerts int) (uint32, error) {
	vertField := corner
	if slash := strings.IndexByte(corner, '/'); slash != -1 {
		vertField = corner[:slash]
	}
	idx, err := strconv.Atoi(vertField)
	if err != nil {
		return 0, err
	}
	if idx < 0 {
		idx = numVerts + idx + 1
	}
	if idx < 1 || idx > numVerts {
		return 0, fmt.Errorf("vertex index %s out of range (have %d vertices)", vertField, numVerts)
	}
	return uint32(idx - 1), nil
}
