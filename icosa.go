// Package icosa holds the geometry and animation state for rendering a
// rotating regular icosahedron. GPU side rendering lives in [glrender] and
// shader programs in [glbuild].
package icosa

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

const (
	// Phi is the golden ratio (1+√5)/2. Icosahedron vertices are the cyclic permutations of (±1, ±Phi, 0).
	Phi = 1.6180339887498948482045868343656381177203091798057628621354486227
	// VertexCount is the number of vertices of an icosahedron.
	VertexCount = 12
	// FaceCount is the number of triangular faces of an icosahedron.
	FaceCount = 20
	// IndexCount is the length of the index buffer, three indices per face.
	IndexCount = 3 * FaceCount
)

// NormalStyle selects how per-vertex normals are derived from vertex positions.
type NormalStyle uint8

const (
	// NormalsUnit uses normalized vertex positions as normals. This is the
	// true per-vertex normal of a regular polyhedron centered at the origin.
	NormalsUnit NormalStyle = iota
	// NormalsRaw reuses vertex positions verbatim as normals.
	// All icosahedron vertices are equidistant from the origin so after
	// fragment normalization the shading is the same as [NormalsUnit].
	NormalsRaw
)

func (ns NormalStyle) String() string {
	switch ns {
	case NormalsUnit:
		return "unit"
	case NormalsRaw:
		return "raw"
	}
	return fmt.Sprintf("NormalStyle(%d)", uint8(ns))
}

var icosahedronVertices = [VertexCount]ms3.Vec{
	{X: -1, Y: Phi}, {X: 1, Y: Phi}, {X: -1, Y: -Phi}, {X: 1, Y: -Phi},
	{Y: -1, Z: Phi}, {Y: 1, Z: Phi}, {Y: -1, Z: -Phi}, {Y: 1, Z: -Phi},
	{X: Phi, Z: -1}, {X: Phi, Z: 1}, {X: -Phi, Z: -1}, {X: -Phi, Z: 1},
}

// Faces wound counter-clockwise when viewed from outside the solid.
var icosahedronIndices = [IndexCount]uint16{
	0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
	1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
	3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
	4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
}

// Mesh is an indexed triangle mesh with one normal per vertex.
// A Mesh is not modified after creation; accessors return copies.
type Mesh struct {
	vertices []ms3.Vec
	normals  []ms3.Vec
	indices  []uint16
}

// NewIcosahedron returns the regular icosahedron of edge length 2 centered at the origin.
func NewIcosahedron(style NormalStyle) Mesh {
	m := Mesh{
		vertices: make([]ms3.Vec, VertexCount),
		normals:  make([]ms3.Vec, VertexCount),
		indices:  make([]uint16, IndexCount),
	}
	copy(m.vertices, icosahedronVertices[:])
	copy(m.indices, icosahedronIndices[:])
	for i, v := range m.vertices {
		if style == NormalsRaw {
			m.normals[i] = v
		} else {
			m.normals[i] = ms3.Unit(v)
		}
	}
	return m
}

// NewMesh creates a mesh from caller provided data. The data is copied
// and validated with [Mesh.Validate].
func NewMesh(vertices, normals []ms3.Vec, indices []uint16) (Mesh, error) {
	m := Mesh{
		vertices: append([]ms3.Vec(nil), vertices...),
		normals:  append([]ms3.Vec(nil), normals...),
		indices:  append([]uint16(nil), indices...),
	}
	if err := m.Validate(); err != nil {
		return Mesh{}, err
	}
	return m, nil
}

var errEmptyMesh = errors.New("empty mesh")

// Validate checks the buffer invariants: normals parallel to vertices,
// whole triangles and every index within vertex range.
func (m Mesh) Validate() error {
	switch {
	case len(m.vertices) == 0 || len(m.indices) == 0:
		return errEmptyMesh
	case len(m.normals) != len(m.vertices):
		return fmt.Errorf("normal count %d does not match vertex count %d", len(m.normals), len(m.vertices))
	case len(m.indices)%3 != 0:
		return fmt.Errorf("index count %d not a multiple of 3", len(m.indices))
	case len(m.vertices) > 1<<16:
		return fmt.Errorf("vertex count %d overflows 16 bit indices", len(m.vertices))
	}
	for i, idx := range m.indices {
		if int(idx) >= len(m.vertices) {
			return fmt.Errorf("index %d at position %d out of range [0,%d)", idx, i, len(m.vertices))
		}
	}
	return nil
}

// NumVertices returns the amount of vertices in the mesh.
func (m Mesh) NumVertices() int { return len(m.vertices) }

// NumIndices returns the length of the index buffer.
func (m Mesh) NumIndices() int { return len(m.indices) }

// Vertex returns the i'th vertex position and normal.
func (m Mesh) Vertex(i int) (pos, normal ms3.Vec) {
	return m.vertices[i], m.normals[i]
}

// PositionData returns vertex positions flattened as xyz triples, ready for upload.
func (m Mesh) PositionData() []float32 {
	return flatten(m.vertices)
}

// NormalData returns vertex normals flattened as xyz triples, ready for upload.
func (m Mesh) NormalData() []float32 {
	return flatten(m.normals)
}

// IndexData returns a copy of the index buffer.
func (m Mesh) IndexData() []uint16 {
	return append([]uint16(nil), m.indices...)
}

// Triangles appends the mesh's faces to dst and returns the result.
func (m Mesh) Triangles(dst []ms3.Triangle) []ms3.Triangle {
	for i := 0; i+2 < len(m.indices); i += 3 {
		dst = append(dst, ms3.Triangle{
			m.vertices[m.indices[i]],
			m.vertices[m.indices[i+1]],
			m.vertices[m.indices[i+2]],
		})
	}
	return dst
}

// Circumradius returns the largest distance of a vertex to the origin.
func (m Mesh) Circumradius() float32 {
	var r float32
	for _, v := range m.vertices {
		r = math32.Max(r, ms3.Norm(v))
	}
	return r
}

func flatten(vecs []ms3.Vec) []float32 {
	flat := make([]float32, 0, 3*len(vecs))
	for _, v := range vecs {
		flat = append(flat, v.X, v.Y, v.Z)
	}
	return flat
}
