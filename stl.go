package meshpipe

import (
	"bufio"
	"fmt"
	"strings"
)

// decodeSTL reads ASCII STL. Each "outer loop" becomes a face over its own
// vertices; facet normals are checked to be numeric and passed through.
func decodeSTL(data []byte) (*Mesh, error) {
	m := &Mesh{Format: STL}
	lines := splitLines(data)
	m.layout = make([]record, 0, len(lines))

	var (
		inSolid   bool
		inFacet   bool
		loop      Face
		inLoop    bool
		lastLine  int
		seenSolid bool
	)

	perr := func(line int, tok, msg string) error {
		return &ParseError{Format: STL, Line: line, Token: tok, Msg: msg}
	}

	for _, ln := range lines {
		lastLine = ln.num
		fields := strings.Fields(ln.text)
		if len(fields) == 0 {
			m.layout = append(m.layout, passthrough(ln.text, ln.eol))
			continue
		}

		switch strings.ToLower(fields[0]) {
		case "solid":
			if inSolid {
				return nil, perr(ln.num, ln.text, "solid inside solid")
			}
			inSolid, seenSolid = true, true

		case "endsolid":
			if !inSolid || inFacet {
				return nil, perr(ln.num, ln.text, "unexpected endsolid")
			}
			inSolid = false

		case "facet":
			if !inSolid || inFacet {
				return nil, perr(ln.num, ln.text, "facet outside solid")
			}
			if len(fields) != 5 || strings.ToLower(fields[1]) != "normal" {
				return nil, perr(ln.num, ln.text, "want \"facet normal nx ny nz\"")
			}
			for _, tok := range fields[2:] {
				if _, err := parseCoord(STL, ln.num, tok); err != nil {
					return nil, err
				}
			}
			inFacet = true

		case "outer":
			if !inFacet || inLoop {
				return nil, perr(ln.num, ln.text, "loop outside facet")
			}
			inLoop, loop = true, make(Face, 0, 3)

		case "vertex":
			if !inLoop {
				return nil, perr(ln.num, ln.text, "vertex outside loop")
			}
			if len(fields) != 4 {
				return nil, perr(ln.num, ln.text, "vertex needs x, y and z")
			}
			var c [3]float64
			for i := range c {
				f, err := parseCoord(STL, ln.num, fields[i+1])
				if err != nil {
					return nil, err
				}
				c[i] = f
			}
			loop = append(loop, len(m.Vertices))
			m.layout = append(m.layout, vertexRecord(ln.text, ln.eol, len(m.Vertices), fields, [3]int{1, 2, 3}))
			m.Vertices = append(m.Vertices, Vector3{c[0], c[1], c[2]})
			continue

		case "endloop":
			if !inLoop {
				return nil, perr(ln.num, ln.text, "unexpected endloop")
			}
			if len(loop) < 3 {
				return nil, perr(ln.num, ln.text, fmt.Sprintf("loop has %d vertices, need at least 3", len(loop)))
			}
			m.Faces = append(m.Faces, loop)
			inLoop, loop = false, nil

		case "endfacet":
			if !inFacet || inLoop {
				return nil, perr(ln.num, ln.text, "unexpected endfacet")
			}
			inFacet = false

		default:
			return nil, perr(ln.num, fields[0], "unknown keyword")
		}
		m.layout = append(m.layout, passthrough(ln.text, ln.eol))
	}

	switch {
	case !seenSolid:
		return nil, perr(0, "", "missing solid header (binary STL is not supported)")
	case inLoop || inFacet:
		return nil, perr(lastLine, "", "unexpected end of file inside facet")
	case inSolid:
		return nil, perr(lastLine, "", "missing endsolid")
	}
	return m, nil
}

// encodeSTL writes canonical ASCII STL. Polygons are fanned into triangles
// and normals are left as zero for readers to compute.
func encodeSTL(w *bufio.Writer, m *Mesh) error {
	if _, err := w.WriteString("solid meshpipe\n"); err != nil {
		return err
	}
	for _, f := range m.Faces {
		for _, tri := range f.Triangles() {
			if _, err := w.WriteString("  facet normal 0 0 0\n    outer loop\n"); err != nil {
				return err
			}
			for _, idx := range tri {
				v := m.Vertices[idx]
				if _, err := fmt.Fprintf(w, "      vertex %s %s %s\n", formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z)); err != nil {
					return err
				}
			}
			if _, err := w.WriteString("    endloop\n  endfacet\n"); err != nil {
				return err
			}
		}
	}
	_, err := w.WriteString("endsolid meshpipe\n")
	return err
}
