// Package mesh builds the small procedural meshes the demo draws: the
// wireframe cube and sphere the sharks ride on, their solid counterparts,
// and the crossed planes a laser beam is made of.
package mesh

import "github.com/go-gl/mathgl/mgl32"

// Mesh is an indexed triangle list. Normals and TexCoords are either empty or
// have one entry per position.
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	TexCoords []mgl32.Vec2
	Indices   []uint16
}

// NumVertices returns the number of positions.
func (m *Mesh) NumVertices() int {
	return len(m.Positions)
}

// NumTriangles returns the number of index triples.
func (m *Mesh) NumTriangles() int {
	return len(m.Indices) / 3
}

// LineMesh is a set of vertices joined by straight edges.
type LineMesh struct {
	Positions []mgl32.Vec3
	Edges     [][2]uint16
}

// Indices flattens the edge list into GL_LINES order.
func (l *LineMesh) Indices() []uint16 {
	out := make([]uint16, 0, len(l.Edges)*2)
	for _, e := range l.Edges {
		out = append(out, e[0], e[1])
	}
	return out
}

// Deindex expands an indexed mesh so every triangle owns its three vertices.
func Deindex(m *Mesh) *Mesh {
	out := &Mesh{
		Positions: make([]mgl32.Vec3, 0, len(m.Indices)),
		Indices:   make([]uint16, len(m.Indices)),
	}
	if len(m.Normals) > 0 {
		out.Normals = make([]mgl32.Vec3, 0, len(m.Indices))
	}
	if len(m.TexCoords) > 0 {
		out.TexCoords = make([]mgl32.Vec2, 0, len(m.Indices))
	}
	for i, ndx := range m.Indices {
		out.Positions = append(out.Positions, m.Positions[ndx])
		if out.Normals != nil {
			out.Normals = append(out.Normals, m.Normals[ndx])
		}
		if out.TexCoords != nil {
			out.TexCoords = append(out.TexCoords, m.TexCoords[ndx])
		}
		out.Indices[i] = uint16(i)
	}
	return out
}

// FlattenNormals gives the three vertices of each triangle the normalized
// average of their normals. The mesh must be deindexed.
func FlattenNormals(m *Mesh) *Mesh {
	out := &Mesh{
		Positions: m.Positions,
		TexCoords: m.TexCoords,
		Indices:   m.Indices,
		Normals:   make([]mgl32.Vec3, len(m.Normals)),
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		n := m.Normals[a].Add(m.Normals[b]).Add(m.Normals[c])
		if n.Len() > 0 {
			n = n.Normalize()
		}
		out.Normals[a], out.Normals[b], out.Normals[c] = n, n, n
	}
	return out
}
