package mesh

import "github.com/go-gl/mathgl/mgl32"

// cubeFaceCorners lists, per face, the four corners in winding order:
// right, left, top, bottom, front, back.
var cubeFaceCorners = [6][4]uint16{
	{3, 7, 5, 1},
	{6, 2, 0, 4},
	{6, 7, 3, 2},
	{0, 1, 5, 4},
	{7, 6, 4, 5},
	{2, 3, 1, 0},
}

var cubeFaceNormals = [6]mgl32.Vec3{
	{1, 0, 0},
	{-1, 0, 0},
	{0, 1, 0},
	{0, -1, 0},
	{0, 0, 1},
	{0, 0, -1},
}

var cubeFaceUVs = [4]mgl32.Vec2{{1, 0}, {0, 0}, {0, 1}, {1, 1}}

func cubeCorners(size float32) []mgl32.Vec3 {
	k := size / 2
	return []mgl32.Vec3{
		{-k, -k, -k},
		{+k, -k, -k},
		{-k, +k, -k},
		{+k, +k, -k},
		{-k, -k, +k},
		{+k, -k, +k},
		{-k, +k, +k},
		{+k, +k, +k},
	}
}

// LineCube returns the 8 corners of an axis aligned cube of the given edge
// size and one edge per side of each of its 6 faces.
func LineCube(size float32) *LineMesh {
	l := &LineMesh{
		Positions: cubeCorners(size),
		Edges:     make([][2]uint16, 0, 24),
	}
	for _, face := range cubeFaceCorners {
		for k := range face {
			l.Edges = append(l.Edges, [2]uint16{face[k], face[(k+1)%4]})
		}
	}
	return l
}

// Cube returns a solid cube with 4 vertices per face so each face keeps its
// own normal.
func Cube(size float32) *Mesh {
	corners := cubeCorners(size)
	m := &Mesh{
		Positions: make([]mgl32.Vec3, 0, 24),
		Normals:   make([]mgl32.Vec3, 0, 24),
		TexCoords: make([]mgl32.Vec2, 0, 24),
		Indices:   make([]uint16, 0, 36),
	}
	for f, face := range cubeFaceCorners {
		for v, corner := range face {
			m.Positions = append(m.Positions, corners[corner])
			m.Normals = append(m.Normals, cubeFaceNormals[f])
			m.TexCoords = append(m.TexCoords, cubeFaceUVs[v])
		}
		offset := uint16(4 * f)
		m.Indices = append(m.Indices,
			offset+0, offset+1, offset+2,
			offset+0, offset+2, offset+3)
	}
	return m
}
