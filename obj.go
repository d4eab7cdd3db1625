package meshpipe

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// decodeOBJ reads "v" lines as vertices and "f" lines as faces. Every other
// line (normals, texture coordinates, groups, comments) is kept verbatim.
func decodeOBJ(data []byte) (*Mesh, error) {
	m := &Mesh{Format: OBJ}
	lines := splitLines(data)
	m.layout = make([]record, 0, len(lines))

	type pendingFace struct {
		line  int
		token string
		face  Face
	}
	var faces []pendingFace

	for _, ln := range lines {
		fields := strings.Fields(ln.text)
		if len(fields) == 0 {
			m.layout = append(m.layout, passthrough(ln.text, ln.eol))
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, &ParseError{Format: OBJ, Line: ln.num, Token: ln.text, Msg: "vertex needs x, y and z"}
			}
			var c [3]float64
			for i := range c {
				f, err := parseCoord(OBJ, ln.num, fields[i+1])
				if err != nil {
					return nil, err
				}
				c[i] = f
			}
			m.layout = append(m.layout, vertexRecord(ln.text, ln.eol, len(m.Vertices), fields, [3]int{1, 2, 3}))
			m.Vertices = append(m.Vertices, Vector3{c[0], c[1], c[2]})

		case "f":
			if len(fields) < 4 {
				return nil, &ParseError{Format: OBJ, Line: ln.num, Token: ln.text, Msg: "face needs at least 3 vertices"}
			}
			face := make(Face, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				idx, err := objIndex(tok, len(m.Vertices))
				if err != nil {
					return nil, &ParseError{Format: OBJ, Line: ln.num, Token: tok, Msg: err.Error()}
				}
				face = append(face, idx)
			}
			faces = append(faces, pendingFace{line: ln.num, token: ln.text, face: face})
			m.layout = append(m.layout, passthrough(ln.text, ln.eol))

		default:
			m.layout = append(m.layout, passthrough(ln.text, ln.eol))
		}
	}

	// Positive indices may point forward, so ranges are checked once every
	// vertex is known.
	m.Faces = make([]Face, len(faces))
	for i, pf := range faces {
		if !pf.face.InRange(len(m.Vertices)) {
			return nil, &ParseError{Format: OBJ, Line: pf.line, Token: pf.token, Msg: fmt.Sprintf("face index out of range (%d vertices)", len(m.Vertices))}
		}
		m.Faces[i] = pf.face
	}
	return m, nil
}

// objIndex resolves the vertex part of a face token ("7", "7/2", "7//3",
// "-1/2/3") to a 0-based index. Negative indices count back from the
// vertices read so far.
func objIndex(tok string, seen int) (int, error) {
	vert, _, _ := strings.Cut(tok, "/")
	idx, err := strconv.Atoi(vert)
	if err != nil {
		return 0, fmt.Errorf("face index is not an integer")
	}
	switch {
	case idx > 0:
		return idx - 1, nil
	case idx < 0:
		if seen+idx < 0 {
			return 0, fmt.Errorf("relative face index reaches before the first vertex")
		}
		return seen + idx, nil
	}
	return 0, fmt.Errorf("face index 0 is not valid, indices start at 1")
}

func encodeOBJ(w *bufio.Writer, m *Mesh) error {
	for _, v := range m.Vertices {
		if _, err := fmt.Fprintf(w, "v %s %s %s\n", formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z)); err != nil {
			return err
		}
	}
	for _, f := range m.Faces {
		if _, err := w.WriteString("f"); err != nil {
			return err
		}
		for _, idx := range f {
			if _, err := fmt.Fprintf(w, " %d", idx+1); err != nil {
				return err
			}
		}
		if _, err := w.WriteString("\n"); err != nil {
			return err
		}
	}
	return nil
}
