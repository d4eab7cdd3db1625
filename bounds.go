package meshpipe

// Bounds is the axis-aligned bounding box of a set of vertices.
type Bounds struct {
	Min Vector3
	Max Vector3
}

// Size returns the extent along each axis.
func (b Bounds) Size() Vector3 {
	return b.Max.Sub(b.Min)
}

func (b Bounds) Center() Vector3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Bounds calculates the bounding box of the mesh. An empty mesh has a zero box.
func (m *Mesh) Bounds() Bounds {
	if len(m.Vertices) == 0 {
		return Bounds{}
	}

	b := Bounds{Min: m.Vertices[0], Max: m.Vertices[0]}
	for _, v := range m.Vertices[1:] {
		b.Min = Vector3{min(b.Min.X, v.X), min(b.Min.Y, v.Y), min(b.Min.Z, v.Z)}
		b.Max = Vector3{max(b.Max.X, v.X), max(b.Max.Y, v.Y), max(b.Max.Z, v.Z)}
	}
	return b
}

// Centering returns the translation that moves the center of the mesh's
// bounding box to the origin.
func Centering(m *Mesh) Translate {
	return Translate{Delta: m.Bounds().Center().Negate()}
}
