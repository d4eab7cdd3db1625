package meshpipe

import "slices"

// Face is a polygon given as an ordered list of 0-based vertex indices.
type Face []int

func (f Face) Copy() Face {
	return slices.Clone(f)
}

// InRange reports whether every index of f addresses one of n vertices.
func (f Face) InRange(n int) bool {
	for _, idx := range f {
		if idx < 0 || idx >= n {
			return false
		}
	}
	return true
}

// Triangles fans the polygon into triangles around its first vertex.
func (f Face) Triangles() []Face {
	if len(f) < 3 {
		return nil
	}
	tris := make([]Face, 0, len(f)-2)
	for i := 1; i < len(f)-1; i++ {
		tris = append(tris, Face{f[0], f[i], f[i+1]})
	}
	return tris
}
