package meshpipe

import (
	"context"
	"fmt"
	"iter"
	"slices"

	"golang.org/x/sync/errgroup"
)

// Mesh is an ordered vertex list plus faces that index into it. Operators
// only ever replace vertex coordinates; faces and the source text layout are
// shared read-only between a mesh and everything transformed from it.
type Mesh struct {
	Format   Format
	Vertices []Vector3
	Faces    []Face

	// layout is the line structure of the text the mesh was decoded from.
	// Nil for meshes built in code; those are written in canonical form.
	layout []record
}

func NewMesh(format Format, vertices []Vector3, faces []Face) *Mesh {
	return &Mesh{
		Format:   format,
		Vertices: vertices,
		Faces:    faces,
	}
}

// Validate checks that every face has at least three corners and that every
// index addresses an existing vertex.
func (m *Mesh) Validate() error {
	for i, f := range m.Faces {
		if len(f) < 3 {
			return &ParseError{Format: m.Format, Msg: fmt.Sprintf("face %d has %d vertices, need at least 3", i, len(f))}
		}
		if !f.InRange(len(m.Vertices)) {
			return &ParseError{Format: m.Format, Msg: fmt.Sprintf("face %d references a vertex outside [0, %d)", i, len(m.Vertices))}
		}
	}
	return nil
}

// All iterates over the vertices in order.
func (m *Mesh) All() iter.Seq2[int, Vector3] {
	return func(yield func(int, Vector3) bool) {
		for i, v := range m.Vertices {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Copy duplicates the vertex and face data. The layout is immutable and shared.
func (m *Mesh) Copy() *Mesh {
	faces := make([]Face, len(m.Faces))
	for i, f := range m.Faces {
		faces[i] = f.Copy()
	}
	return &Mesh{
		Format:   m.Format,
		Vertices: slices.Clone(m.Vertices),
		Faces:    faces,
		layout:   m.layout,
	}
}

func (m *Mesh) withVertices(vertices []Vector3) *Mesh {
	return &Mesh{
		Format:   m.Format,
		Vertices: vertices,
		Faces:    m.Faces,
		layout:   m.layout,
	}
}

// Map applies t to every vertex in order and returns the new mesh.
func (m *Mesh) Map(t Transformer) *Mesh {
	out := make([]Vector3, len(m.Vertices))
	for i, v := range MapSeq(m.All(), t) {
		out[i] = v
	}
	return m.withVertices(out)
}

// Transform applies t to every vertex, splitting the work over up to workers
// goroutines. Each worker owns a contiguous block of output slots. A vertex
// that comes out NaN or infinite aborts the whole transform.
func (m *Mesh) Transform(ctx context.Context, t Transformer, workers int) (*Mesh, error) {
	n := len(m.Vertices)
	if workers <= 1 || n < 2*workers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out := m.Map(t)
		if err := checkFinite(out.Vertices, 0, n); err != nil {
			return nil, err
		}
		return out, nil
	}

	out := make([]Vector3, n)
	chunk := (n + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				out[i] = t.Transform(m.Vertices[i])
			}
			return checkFinite(out, start, end)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return m.withVertices(out), nil
}

func checkFinite(vs []Vector3, start, end int) error {
	for i := start; i < end; i++ {
		if !vs[i].IsFinite() {
			return fmt.Errorf("vertex %d became %v: %w", i, vs[i], ErrDegenerate)
		}
	}
	return nil
}
