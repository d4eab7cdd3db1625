package meshpipe

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

type plyProperty struct {
	name string
	list bool
}

type plyElement struct {
	name       string
	count      int
	properties []plyProperty
}

func (e *plyElement) index(name string) int {
	for i, p := range e.properties {
		if p.name == name {
			return i
		}
	}
	return -1
}

// decodePLY reads ASCII PLY. The header and every element other than vertex
// and face are passed through; vertex rows must carry scalar x, y and z.
func decodePLY(data []byte) (*Mesh, error) {
	m := &Mesh{Format: PLY}
	lines := splitLines(data)
	m.layout = make([]record, 0, len(lines))

	perr := func(line int, tok, msg string) error {
		return &ParseError{Format: PLY, Line: line, Token: tok, Msg: msg}
	}

	// 1. Parse the header
	var (
		elements []*plyElement
		current  *plyElement
		pos      int
		ended    bool
	)
	for pos < len(lines) && !ended {
		ln := lines[pos]
		pos++
		m.layout = append(m.layout, passthrough(ln.text, ln.eol))

		parts := strings.Fields(ln.text)
		if len(parts) == 0 {
			continue
		}
		if ln.num == 1 && parts[0] != "ply" {
			return nil, perr(ln.num, parts[0], "missing ply magic")
		}

		switch parts[0] {
		case "format":
			if len(parts) != 3 || parts[1] != "ascii" {
				return nil, perr(ln.num, ln.text, "only \"format ascii 1.0\" is supported")
			}
		case "element":
			if len(parts) != 3 {
				return nil, perr(ln.num, ln.text, "want \"element <name> <count>\"")
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, perr(ln.num, parts[2], "element count is not a non-negative integer")
			}
			current = &plyElement{name: parts[1], count: count}
			elements = append(elements, current)
		case "property":
			if current == nil {
				return nil, perr(ln.num, ln.text, "property before any element")
			}
			if len(parts) >= 5 && parts[1] == "list" {
				current.properties = append(current.properties, plyProperty{name: parts[4], list: true})
			} else if len(parts) == 3 {
				current.properties = append(current.properties, plyProperty{name: parts[2]})
			} else {
				return nil, perr(ln.num, ln.text, "malformed property")
			}
		case "end_header":
			ended = true
		}
	}
	if !ended {
		return nil, perr(0, "", "missing end_header")
	}

	// 2. Read element rows in header order
	for _, el := range elements {
		switch el.name {
		case "vertex":
			coords := [3]int{el.index("x"), el.index("y"), el.index("z")}
			for _, c := range coords {
				if c < 0 {
					return nil, perr(0, "", "vertex element needs x, y and z properties")
				}
			}
			for _, p := range el.properties {
				if p.list {
					return nil, perr(0, p.name, "list properties on vertices are not supported")
				}
			}
			m.Vertices = make([]Vector3, 0, el.count)
			for i := 0; i < el.count; i++ {
				if pos >= len(lines) {
					return nil, perr(0, "", "unexpected end of file while reading vertices")
				}
				ln := lines[pos]
				pos++
				fields := strings.Fields(ln.text)
				if len(fields) != len(el.properties) {
					return nil, perr(ln.num, ln.text, fmt.Sprintf("vertex has %d values, header declares %d", len(fields), len(el.properties)))
				}
				var c [3]float64
				for axis, at := range coords {
					f, err := parseCoord(PLY, ln.num, fields[at])
					if err != nil {
						return nil, err
					}
					c[axis] = f
				}
				m.layout = append(m.layout, vertexRecord(ln.text, ln.eol, len(m.Vertices), fields, coords))
				m.Vertices = append(m.Vertices, Vector3{c[0], c[1], c[2]})
			}

		case "face":
			list := el.index("vertex_indices")
			if list < 0 {
				list = el.index("vertex_index")
			}
			if list != 0 {
				return nil, perr(0, "", "face element must start with a vertex_indices list")
			}
			m.Faces = make([]Face, 0, el.count)
			for i := 0; i < el.count; i++ {
				if pos >= len(lines) {
					return nil, perr(0, "", "unexpected end of file while reading faces")
				}
				ln := lines[pos]
				pos++
				face, err := plyFace(ln, len(m.Vertices))
				if err != nil {
					return nil, err
				}
				m.Faces = append(m.Faces, face)
				m.layout = append(m.layout, passthrough(ln.text, ln.eol))
			}

		default:
			for i := 0; i < el.count; i++ {
				if pos >= len(lines) {
					return nil, perr(0, el.name, "unexpected end of file while reading element")
				}
				m.layout = append(m.layout, passthrough(lines[pos].text, lines[pos].eol))
				pos++
			}
		}
	}

	// Trailing blank lines are harmless, anything else is not.
	for ; pos < len(lines); pos++ {
		if strings.TrimSpace(lines[pos].text) != "" {
			return nil, perr(lines[pos].num, lines[pos].text, "data after the last element")
		}
		m.layout = append(m.layout, passthrough(lines[pos].text, lines[pos].eol))
	}
	return m, nil
}

func plyFace(ln textLine, vertices int) (Face, error) {
	parts := strings.Fields(ln.text)
	if len(parts) == 0 {
		return nil, &ParseError{Format: PLY, Line: ln.num, Msg: "empty face row"}
	}
	n, err := strconv.Atoi(parts[0])
	if err != nil || n < 3 {
		return nil, &ParseError{Format: PLY, Line: ln.num, Token: parts[0], Msg: "face needs a vertex count of at least 3"}
	}
	if len(parts) < n+1 {
		return nil, &ParseError{Format: PLY, Line: ln.num, Token: ln.text, Msg: fmt.Sprintf("face declares %d vertices but lists %d", n, len(parts)-1)}
	}

	face := make(Face, n)
	for j := 0; j < n; j++ {
		idx, err := strconv.Atoi(parts[j+1])
		if err != nil {
			return nil, &ParseError{Format: PLY, Line: ln.num, Token: parts[j+1], Msg: "face index is not an integer"}
		}
		if idx < 0 || idx >= vertices {
			return nil, &ParseError{Format: PLY, Line: ln.num, Token: parts[j+1], Msg: fmt.Sprintf("face index out of range (%d vertices)", vertices)}
		}
		face[j] = idx
	}
	return face, nil
}

func encodePLY(w *bufio.Writer, m *Mesh) error {
	header := []string{
		"ply",
		"format ascii 1.0",
		"comment Generated by meshpipe",
		fmt.Sprintf("element vertex %d", len(m.Vertices)),
		"property double x",
		"property double y",
		"property double z",
		fmt.Sprintf("element face %d", len(m.Faces)),
		"property list uchar int vertex_indices",
		"end_header",
	}
	for _, h := range header {
		if _, err := fmt.Fprintln(w, h); err != nil {
			return err
		}
	}

	for _, v := range m.Vertices {
		if _, err := fmt.Fprintf(w, "%s %s %s\n", formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z)); err != nil {
			return err
		}
	}
	for _, f := range m.Faces {
		if _, err := fmt.Fprintf(w, "%d", len(f)); err != nil {
			return err
		}
		for _, idx := range f {
			if _, err := fmt.Fprintf(w, " %d", idx); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
