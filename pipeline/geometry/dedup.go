package geometry

import (
	"sort"

	"github.com/hoshiryu/remesh/pipeline/core"
	"github.com/hoshiryu/remesh/pipeline/math"
	"github.com/hoshiryu/remesh/pipeline/systems"
)

// Below this many elements the fan-out overhead is not worth paying and
// parallel phases run inline.
const parallelThreshold = 4096

/**
 * @brief Compacts triangle meshes by welding vertices that hold the exact
 * same position. Data-parallel phases run on the supplied job system; a nil
 * job system executes everything on the calling goroutine.
 *
 * A Compactor holds no per-mesh state and may be shared, but a single Mesh
 * must not be touched by anyone else for the duration of a call.
 */
type Compactor struct {
	jobs *systems.JobSystem
}

func NewCompactor(jobs *systems.JobSystem) *Compactor {
	return &Compactor{jobs: jobs}
}

// vertexRef pairs a vertex position with the index it had in the original
// mesh, so the sort can be undone when filling the duplicate map.
type vertexRef struct {
	position math.Vec3
	index    uint32
}

func (c *Compactor) parallelFor(total int, fn func(start, end int)) {
	if c.jobs == nil || total < parallelThreshold {
		fn(0, total)
		return
	}
	c.jobs.ParallelFor(total, fn)
}

/**
 * @brief Finds vertices sharing exactly equal positions. The mesh is not
 * modified. Returns whether any duplicates exist and the duplicate map
 * described on DuplicateMap. An empty mesh yields (false, empty map).
 */
func (c *Compactor) DetectDuplicates(mesh *Mesh) (bool, DuplicateMap, error) {
	if err := mesh.Validate(); err != nil {
		core.LogError(err.Error())
		return false, nil, err
	}

	numVerts := len(mesh.Vertices)
	duplicatesMap := make(DuplicateMap, numVerts)
	if numVerts == 0 {
		return false, duplicatesMap, nil
	}

	refs := make([]vertexRef, numVerts)
	c.parallelFor(numVerts, func(start, end int) {
		for i := start; i < end; i++ {
			refs[i] = vertexRef{position: mesh.Vertices[i], index: uint32(i)}
		}
	})

	// Exact lexicographic order on (x, y, z) with the original index as
	// tiebreak, so runs of equal positions come out ordered by index no
	// matter what the sort does with equal elements.
	sort.Slice(refs, func(a, b int) bool {
		pa := refs[a].position
		pb := refs[b].position
		if pa == pb {
			return refs[a].index < refs[b].index
		}
		return pa.Less(pb)
	})

	// Equal positions are now contiguous, sorted by index, so comparing each
	// element against the previous one finds every duplicate. Copying the
	// entry already assigned to the previous element (not its raw index)
	// chains runs of three or more duplicates back to the first-seen vertex.
	hasDuplicates := false
	duplicatesMap[refs[0].index] = refs[0].index
	for i := 1; i < numVerts; i++ {
		if refs[i].position == refs[i-1].position {
			duplicatesMap[refs[i].index] = duplicatesMap[refs[i-1].index]
			hasDuplicates = true
		} else {
			duplicatesMap[refs[i].index] = refs[i].index
		}
	}

	return hasDuplicates, duplicatesMap, nil
}

/**
 * @brief Rewrites the mesh in place to reference only unique vertices.
 * Vertex and normal arrays are replaced with compacted copies keeping the
 * relative order of first occurrences; triangle indices are rewritten to
 * the compacted positions. Returns the original-to-compacted vertex remap.
 */
func (c *Compactor) RemoveDuplicates(mesh *Mesh) (VertexRemap, error) {
	hasDuplicates, duplicatesMap, err := c.DetectDuplicates(mesh)
	if err != nil {
		return nil, err
	}

	numVerts := len(mesh.Vertices)

	newIndices := make([]uint32, numVerts)
	c.parallelFor(numVerts, func(start, end int) {
		for i := start; i < end; i++ {
			newIndices[i] = InvalidIndex
		}
	})

	// First occurrences keep their relative order, so this scan is
	// sequential by construction.
	uniqueVertices := make([]math.Vec3, 0, numVerts)
	uniqueNormals := make([]math.Vec3, 0, numVerts)
	for i := 0; i < numVerts; i++ {
		if duplicatesMap[i] == uint32(i) {
			newIndices[i] = uint32(len(uniqueVertices))
			uniqueVertices = append(uniqueVertices, mesh.Vertices[i])
			uniqueNormals = append(uniqueNormals, mesh.Normals[i])
		}
	}

	c.parallelFor(len(mesh.Triangles), func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < 3; j++ {
				oldIdx := mesh.Triangles[i][j]
				mesh.Triangles[i][j] = newIndices[duplicatesMap[oldIdx]]
			}
		}
	})

	vertexMap := make(VertexRemap, numVerts)
	c.parallelFor(numVerts, func(start, end int) {
		for i := start; i < end; i++ {
			vertexMap[i] = newIndices[duplicatesMap[i]]
		}
	})

	mesh.Vertices = uniqueVertices
	mesh.Normals = uniqueNormals

	if hasDuplicates {
		core.LogDebug("remove_duplicates: removed %d vertices, orig/now %d/%d", numVerts-len(uniqueVertices), numVerts, len(uniqueVertices))
	}

	return vertexMap, nil
}
