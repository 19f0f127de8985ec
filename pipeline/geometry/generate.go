package geometry

import (
	"github.com/hoshiryu/remesh/pipeline/core"
	"github.com/hoshiryu/remesh/pipeline/math"
)

// GeneratePlane builds a segmented plane in the XY plane. Every segment
// carries its own four corner vertices, so neighbouring segments duplicate
// their shared seam positions until the mesh is compacted.
func GeneratePlane(width, height float32, xSegmentCount, ySegmentCount uint32, name string) *Mesh {
	if width == 0 {
		core.LogWarn("Width must be nonzero. Defaulting to one.")
		width = 1.0
	}
	if height == 0 {
		core.LogWarn("Height must be nonzero. Defaulting to one.")
		height = 1.0
	}
	if xSegmentCount < 1 {
		core.LogWarn("xSegmentCount must be a positive number. Defaulting to one.")
		xSegmentCount = 1
	}
	if ySegmentCount < 1 {
		core.LogWarn("ySegmentCount must be a positive number. Defaulting to one.")
		ySegmentCount = 1
	}

	mesh := &Mesh{
		Name:      name,
		Vertices:  make([]math.Vec3, xSegmentCount*ySegmentCount*4), // 4 verts per segment
		Normals:   make([]math.Vec3, xSegmentCount*ySegmentCount*4),
		Triangles: make([]Triangle, xSegmentCount*ySegmentCount*2), // 2 triangles per segment
	}

	seg_width := width / float32(xSegmentCount)
	seg_height := height / float32(ySegmentCount)
	half_width := width * 0.5
	half_height := height * 0.5
	for y := uint32(0); y < ySegmentCount; y++ {
		for x := uint32(0); x < xSegmentCount; x++ {
			// Generate vertices
			min_x := (float32(x) * seg_width) - half_width
			min_y := (float32(y) * seg_height) - half_height
			max_x := min_x + seg_width
			max_y := min_y + seg_height

			v_offset := ((y * xSegmentCount) + x) * 4
			mesh.Vertices[v_offset+0] = math.NewVec3(min_x, min_y, 0.0)
			mesh.Vertices[v_offset+1] = math.NewVec3(max_x, max_y, 0.0)
			mesh.Vertices[v_offset+2] = math.NewVec3(min_x, max_y, 0.0)
			mesh.Vertices[v_offset+3] = math.NewVec3(max_x, min_y, 0.0)

			normal := math.NewVec3(0.0, 0.0, 1.0)
			mesh.Normals[v_offset+0] = normal
			mesh.Normals[v_offset+1] = normal
			mesh.Normals[v_offset+2] = normal
			mesh.Normals[v_offset+3] = normal

			// Generate indices
			t_offset := ((y * xSegmentCount) + x) * 2
			mesh.Triangles[t_offset+0] = Triangle{v_offset + 0, v_offset + 1, v_offset + 2}
			mesh.Triangles[t_offset+1] = Triangle{v_offset + 0, v_offset + 3, v_offset + 1}
		}
	}

	return mesh
}

// GenerateCube builds an axis-aligned cube centered on the origin. Each of
// the six faces carries its own four vertices with a face normal, so every
// corner position exists three times until the mesh is compacted.
func GenerateCube(width, height, depth float32, name string) *Mesh {
	if width == 0 {
		core.LogWarn("Width must be nonzero. Defaulting to one.")
		width = 1.0
	}
	if height == 0 {
		core.LogWarn("Height must be nonzero. Defaulting to one.")
		height = 1.0
	}
	if depth == 0 {
		core.LogWarn("Depth must be nonzero. Defaulting to one.")
		depth = 1
	}

	mesh := &Mesh{
		Name:      name,
		Vertices:  make([]math.Vec3, 4*6), // 4 verts per side, 6 sides
		Normals:   make([]math.Vec3, 4*6),
		Triangles: make([]Triangle, 2*6), // 2 triangles per side, 6 sides
	}

	half_width := width * 0.5
	half_height := height * 0.5
	half_depth := depth * 0.5
	min_x := -half_width
	min_y := -half_height
	min_z := -half_depth
	max_x := half_width
	max_y := half_height
	max_z := half_depth

	// Front face
	mesh.Vertices[(0*4)+0] = math.NewVec3(min_x, min_y, max_z)
	mesh.Vertices[(0*4)+1] = math.NewVec3(max_x, max_y, max_z)
	mesh.Vertices[(0*4)+2] = math.NewVec3(min_x, max_y, max_z)
	mesh.Vertices[(0*4)+3] = math.NewVec3(max_x, min_y, max_z)
	for i := 0; i < 4; i++ {
		mesh.Normals[(0*4)+i] = math.NewVec3(0.0, 0.0, 1.0)
	}

	// Back face
	mesh.Vertices[(1*4)+0] = math.NewVec3(max_x, min_y, min_z)
	mesh.Vertices[(1*4)+1] = math.NewVec3(min_x, max_y, min_z)
	mesh.Vertices[(1*4)+2] = math.NewVec3(max_x, max_y, min_z)
	mesh.Vertices[(1*4)+3] = math.NewVec3(min_x, min_y, min_z)
	for i := 0; i < 4; i++ {
		mesh.Normals[(1*4)+i] = math.NewVec3(0.0, 0.0, -1.0)
	}

	// Left
	mesh.Vertices[(2*4)+0] = math.NewVec3(min_x, min_y, min_z)
	mesh.Vertices[(2*4)+1] = math.NewVec3(min_x, max_y, max_z)
	mesh.Vertices[(2*4)+2] = math.NewVec3(min_x, max_y, min_z)
	mesh.Vertices[(2*4)+3] = math.NewVec3(min_x, min_y, max_z)
	for i := 0; i < 4; i++ {
		mesh.Normals[(2*4)+i] = math.NewVec3(-1.0, 0.0, 0.0)
	}

	// Right face
	mesh.Vertices[(3*4)+0] = math.NewVec3(max_x, min_y, max_z)
	mesh.Vertices[(3*4)+1] = math.NewVec3(max_x, max_y, min_z)
	mesh.Vertices[(3*4)+2] = math.NewVec3(max_x, max_y, max_z)
	mesh.Vertices[(3*4)+3] = math.NewVec3(max_x, min_y, min_z)
	for i := 0; i < 4; i++ {
		mesh.Normals[(3*4)+i] = math.NewVec3(1.0, 0.0, 0.0)
	}

	// Bottom face
	mesh.Vertices[(4*4)+0] = math.NewVec3(max_x, min_y, max_z)
	mesh.Vertices[(4*4)+1] = math.NewVec3(min_x, min_y, min_z)
	mesh.Vertices[(4*4)+2] = math.NewVec3(max_x, min_y, min_z)
	mesh.Vertices[(4*4)+3] = math.NewVec3(min_x, min_y, max_z)
	for i := 0; i < 4; i++ {
		mesh.Normals[(4*4)+i] = math.NewVec3(0.0, -1.0, 0.0)
	}

	// Top face
	mesh.Vertices[(5*4)+0] = math.NewVec3(min_x, max_y, max_z)
	mesh.Vertices[(5*4)+1] = math.NewVec3(max_x, max_y, min_z)
	mesh.Vertices[(5*4)+2] = math.NewVec3(min_x, max_y, min_z)
	mesh.Vertices[(5*4)+3] = math.NewVec3(max_x, max_y, max_z)
	for i := 0; i < 4; i++ {
		mesh.Normals[(5*4)+i] = math.NewVec3(0.0, 1.0, 0.0)
	}

	for side := uint32(0); side < 6; side++ {
		v_offset := side * 4
		mesh.Triangles[(side*2)+0] = Triangle{v_offset + 0, v_offset + 1, v_offset + 2}
		mesh.Triangles[(side*2)+1] = Triangle{v_offset + 0, v_offset + 3, v_offset + 1}
	}

	return mesh
}
