package icosa

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIcosahedronBuffers(t *testing.T) {
	m := NewIcosahedron(NormalsUnit)
	require.NoError(t, m.Validate())
	assert.Equal(t, VertexCount, m.NumVertices())
	assert.Equal(t, IndexCount, m.NumIndices())
	assert.Len(t, m.PositionData(), 3*VertexCount)
	assert.Len(t, m.NormalData(), 3*VertexCount)
	idx := m.IndexData()
	require.Len(t, idx, 60)
	for i, v := range idx {
		assert.Less(t, int(v), VertexCount, "index position %d", i)
	}
}

func TestIcosahedronRegular(t *testing.T) {
	const tol = 1e-5
	m := NewIcosahedron(NormalsUnit)
	wantR := math32.Sqrt(1 + Phi*Phi)
	for i := 0; i < m.NumVertices(); i++ {
		pos, _ := m.Vertex(i)
		assert.InDelta(t, wantR, ms3.Norm(pos), tol, "vertex %d", i)
	}
	assert.InDelta(t, wantR, m.Circumradius(), tol)
	// Every edge of the icosahedron has length 2.
	for i, tri := range m.Triangles(nil) {
		for j := range 3 {
			edge := ms3.Norm(ms3.Sub(tri[j], tri[(j+1)%3]))
			assert.InDelta(t, 2, edge, tol, "face %d edge %d", i, j)
		}
	}
}

func TestIcosahedronWinding(t *testing.T) {
	// Back-face culling discards clockwise faces so all faces must point outward.
	m := NewIcosahedron(NormalsUnit)
	tris := m.Triangles(nil)
	require.Len(t, tris, FaceCount)
	for i, tri := range tris {
		n := ms3.Cross(ms3.Sub(tri[1], tri[0]), ms3.Sub(tri[2], tri[0]))
		centroid := ms3.Scale(1./3, ms3.Add(tri[0], ms3.Add(tri[1], tri[2])))
		assert.Greater(t, ms3.Dot(n, centroid), float32(0), "face %d wound clockwise", i)
	}
}

func TestIcosahedronNormals(t *testing.T) {
	const tol = 1e-6
	unit := NewIcosahedron(NormalsUnit)
	raw := NewIcosahedron(NormalsRaw)
	for i := 0; i < VertexCount; i++ {
		pos, n := unit.Vertex(i)
		assert.InDelta(t, 1, ms3.Norm(n), tol)
		rawPos, rawN := raw.Vertex(i)
		assert.Equal(t, pos, rawPos)
		assert.Equal(t, rawPos, rawN)
		// Both styles point the same way.
		assert.InDelta(t, 1, ms3.Dot(n, ms3.Unit(rawN)), tol)
	}
	assert.Equal(t, raw.PositionData(), raw.NormalData())
	assert.Equal(t, "unit", NormalsUnit.String())
	assert.Equal(t, "raw", NormalsRaw.String())
}

func TestMeshImmutable(t *testing.T) {
	m := NewIcosahedron(NormalsUnit)
	idx := m.IndexData()
	idx[0] = 100
	pos := m.PositionData()
	pos[0] = 100
	require.NoError(t, m.Validate())
	p, _ := m.Vertex(0)
	assert.Equal(t, float32(-1), p.X)
}

func TestNewMeshValidate(t *testing.T) {
	verts := []ms3.Vec{{}, {X: 1}, {Y: 1}}
	_, err := NewMesh(verts, verts, []uint16{0, 1, 2})
	assert.NoError(t, err)

	_, err = NewMesh(nil, nil, nil)
	assert.ErrorIs(t, err, errEmptyMesh)

	_, err = NewMesh(verts, verts[:2], []uint16{0, 1, 2})
	assert.Error(t, err)

	_, err = NewMesh(verts, verts, []uint16{0, 1})
	assert.Error(t, err)

	_, err = NewMesh(verts, verts, []uint16{0, 1, 3})
	assert.ErrorContains(t, err, "out of range")
}
