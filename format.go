package meshpipe

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Format names a mesh text format.
type Format string

const (
	FormatAuto Format = ""
	OBJ        Format = "obj"
	STL        Format = "stl"
	PLY        Format = "ply"
)

var formats = []Format{OBJ, STL, PLY}

// ParseFormat accepts "auto" (or empty) and the format names, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "auto", FormatAuto:
		return FormatAuto, nil
	case OBJ, STL, PLY:
		return f, nil
	}
	return FormatAuto, paramErr("format", s, fmt.Errorf("want auto, obj, stl or ply"))
}

// Detect guesses the format from the first non-blank line: "solid" starts an
// STL file, "ply" a PLY file and anything else is read as OBJ.
func Detect(data []byte) Format {
	for len(data) > 0 {
		line := data
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			line, data = data[:i], data[i+1:]
		} else {
			data = nil
		}
		fields := strings.Fields(string(line))
		if len(fields) == 0 {
			continue
		}
		switch strings.ToLower(fields[0]) {
		case "solid":
			return STL
		case "ply":
			return PLY
		}
		return OBJ
	}
	return OBJ
}

// Decode reads the whole of r and parses it as format f, detecting the format
// when f is FormatAuto.
func Decode(r io.Reader, f Format) (*Mesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading mesh: %w", err)
	}
	return DecodeBytes(data, f)
}

func DecodeBytes(data []byte, f Format) (*Mesh, error) {
	if f == FormatAuto {
		f = Detect(data)
	}

	var (
		m   *Mesh
		err error
	)
	switch f {
	case OBJ:
		m, err = decodeOBJ(data)
	case STL:
		m, err = decodeSTL(data)
	case PLY:
		m, err = decodePLY(data)
	default:
		return nil, paramErr("format", string(f), fmt.Errorf("want one of %v", formats))
	}
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Encode writes m in its own format. A decoded mesh is written with its
// source line layout, only vertex coordinates change.
func Encode(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)
	var err error
	if m.layout != nil {
		err = encodeLayout(bw, m)
	} else {
		switch m.Format {
		case OBJ, FormatAuto:
			err = encodeOBJ(bw, m)
		case STL:
			err = encodeSTL(bw, m)
		case PLY:
			err = encodePLY(bw, m)
		default:
			err = paramErr("format", string(m.Format), fmt.Errorf("want one of %v", formats))
		}
	}
	if err != nil {
		return err
	}
	return bw.Flush()
}

// EncodeBytes renders m completely in memory, so nothing is written anywhere
// unless the whole mesh encodes.
func EncodeBytes(m *Mesh) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// record is one line of decoded text. Vertex lines remember where their
// coordinates sit so they can be rewritten in place.
type record struct {
	text   string
	eol    string
	vertex int
	indent string
	fields []string
	coords [3]int
}

func passthrough(text, eol string) record {
	return record{text: text, eol: eol, vertex: -1}
}

func vertexRecord(text, eol string, vertex int, fields []string, coords [3]int) record {
	return record{
		text:   text,
		eol:    eol,
		vertex: vertex,
		indent: text[:len(text)-len(strings.TrimLeft(text, " \t"))],
		fields: fields,
		coords: coords,
	}
}

func encodeLayout(w *bufio.Writer, m *Mesh) error {
	for _, rec := range m.layout {
		if rec.vertex < 0 {
			if _, err := w.WriteString(rec.text + rec.eol); err != nil {
				return err
			}
			continue
		}
		if rec.vertex >= len(m.Vertices) {
			return fmt.Errorf("layout references vertex %d of %d", rec.vertex, len(m.Vertices))
		}

		v := m.Vertices[rec.vertex]
		fields := make([]string, len(rec.fields))
		copy(fields, rec.fields)
		fields[rec.coords[0]] = formatFloat(v.X)
		fields[rec.coords[1]] = formatFloat(v.Y)
		fields[rec.coords[2]] = formatFloat(v.Z)
		if _, err := w.WriteString(rec.indent + strings.Join(fields, " ") + rec.eol); err != nil {
			return err
		}
	}
	return nil
}

type textLine struct {
	num  int
	text string
	eol  string
}

// splitLines breaks data into numbered lines, keeping each line ending.
func splitLines(data []byte) []textLine {
	lines := make([]textLine, 0, bytes.Count(data, []byte{'\n'})+1)
	num := 0
	for len(data) > 0 {
		num++
		var raw []byte
		eol := ""
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			raw, data = data[:i], data[i+1:]
			eol = "\n"
		} else {
			raw, data = data, nil
		}
		if n := len(raw); n > 0 && raw[n-1] == '\r' {
			raw = raw[:n-1]
			eol = "\r" + eol
		}
		lines = append(lines, textLine{num: num, text: string(raw), eol: eol})
	}
	return lines
}

// parseCoord parses a finite floating point field.
func parseCoord(format Format, line int, tok string) (float64, error) {
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, &ParseError{Format: format, Line: line, Token: tok, Msg: "not a number"}
	}
	if !isFinite(f) {
		return 0, &ParseError{Format: format, Line: line, Token: tok, Msg: "coordinate must be finite"}
	}
	return f, nil
}

// formatFloat prints the shortest decimal that reads back as f, switching to
// exponent form for very large or very small magnitudes.
func formatFloat(f float64) string {
	if a := math.Abs(f); a != 0 && (a < 1e-6 || a >= 1e21) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
