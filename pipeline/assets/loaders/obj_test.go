package loaders

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hoshiryu/remesh/pipeline/geometry"
	"github.com/hoshiryu/remesh/pipeline/math"
)

func writeTempObj(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mesh.obj")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp obj: %v", err)
	}
	return path
}

func TestObjLoaderLoad(t *testing.T) {
	content := `# a triangle
v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
vn 0 0 1
vn 0 0 1
f 1//1 2//2 3//3
`
	loader := &ObjLoader{}
	mesh, err := loader.Load(writeTempObj(t, content))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(mesh.Vertices) != 3 {
		t.Errorf("vertex count: expected 3, got %d", len(mesh.Vertices))
	}
	if len(mesh.Normals) != 3 {
		t.Errorf("normal count: expected 3, got %d", len(mesh.Normals))
	}
	if len(mesh.Triangles) != 1 {
		t.Fatalf("triangle count: expected 1, got %d", len(mesh.Triangles))
	}
	if mesh.Triangles[0] != (geometry.Triangle{0, 1, 2}) {
		t.Errorf("triangle: expected (0,1,2), got %v", mesh.Triangles[0])
	}
	if mesh.Vertices[1] != math.NewVec3(1, 0, 0) {
		t.Errorf("vertex 1: expected (1,0,0), got %v", mesh.Vertices[1])
	}
	if mesh.Name != "mesh" {
		t.Errorf("name: expected mesh, got %s", mesh.Name)
	}
}

func TestObjLoaderFaceForms(t *testing.T) {
	testCases := []struct {
		name string
		face string
	}{
		{"plain", "f 1 2 3"},
		{"with texcoord", "f 1/1 2/2 3/3"},
		{"with normal", "f 1//1 2//2 3//3"},
		{"full", "f 1/1/1 2/2/2 3/3/3"},
		{"negative", "f -3 -2 -1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			content := "v 0 0 0\nv 1 0 0\nv 0 1 0\n" + tc.face + "\n"
			mesh, err := (&ObjLoader{}).Load(writeTempObj(t, content))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if mesh.Triangles[0] != (geometry.Triangle{0, 1, 2}) {
				t.Errorf("triangle: expected (0,1,2), got %v", mesh.Triangles[0])
			}
		})
	}
}

func TestObjLoaderQuadTriangulation(t *testing.T) {
	content := `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`
	mesh, err := (&ObjLoader{}).Load(writeTempObj(t, content))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(mesh.Triangles) != 2 {
		t.Fatalf("triangle count: expected 2, got %d", len(mesh.Triangles))
	}
	if mesh.Triangles[0] != (geometry.Triangle{0, 1, 2}) {
		t.Errorf("first triangle: expected (0,1,2), got %v", mesh.Triangles[0])
	}
	if mesh.Triangles[1] != (geometry.Triangle{0, 2, 3}) {
		t.Errorf("second triangle: expected (0,2,3), got %v", mesh.Triangles[1])
	}
}

func TestObjLoaderGeneratesMissingNormals(t *testing.T) {
	content := `v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`
	mesh, err := (&ObjLoader{}).Load(writeTempObj(t, content))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(mesh.Normals) != len(mesh.Vertices) {
		t.Fatalf("normals not generated: %d normals for %d vertices", len(mesh.Normals), len(mesh.Vertices))
	}
	expected := math.NewVec3(0, 0, 1)
	if !mesh.Normals[0].Compare(expected, math.K_FLOAT_EPSILON) {
		t.Errorf("generated normal: expected %v, got %v", expected, mesh.Normals[0])
	}
}

func TestObjLoaderErrors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{"bad vertex", "v 1 nope 3\n"},
		{"short vertex", "v 1 2\n"},
		{"face index out of range", "v 0 0 0\nf 1 2 3\n"},
		{"face with two corners", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
		{"unparsable face corner", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf a b c\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := (&ObjLoader{}).Load(writeTempObj(t, tc.content)); err == nil {
				t.Errorf("expected an error for %q", tc.content)
			}
		})
	}

	if _, err := (&ObjLoader{}).Load(filepath.Join(t.TempDir(), "missing.obj")); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}

func TestObjLoaderRoundTrip(t *testing.T) {
	original := geometry.GenerateCube(1, 1, 1, "cube")

	path := filepath.Join(t.TempDir(), "cube.obj")
	loader := &ObjLoader{}
	if err := loader.Save(path, original); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(loaded.Vertices) != len(original.Vertices) {
		t.Fatalf("vertex count: expected %d, got %d", len(original.Vertices), len(loaded.Vertices))
	}
	for i := range original.Vertices {
		if loaded.Vertices[i] != original.Vertices[i] {
			t.Errorf("vertex %d: expected %v, got %v", i, original.Vertices[i], loaded.Vertices[i])
		}
		if loaded.Normals[i] != original.Normals[i] {
			t.Errorf("normal %d: expected %v, got %v", i, original.Normals[i], loaded.Normals[i])
		}
	}
	for i := range original.Triangles {
		if loaded.Triangles[i] != original.Triangles[i] {
			t.Errorf("triangle %d: expected %v, got %v", i, original.Triangles[i], loaded.Triangles[i])
		}
	}
}
