package meshpipe

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseFloat parses a finite number given for the named parameter.
func ParseFloat(param, s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, paramErr(param, s, fmt.Errorf("not a number"))
	}
	if !isFinite(f) {
		return 0, paramErr(param, s, fmt.Errorf("must be finite"))
	}
	return f, nil
}

// ParseVector3 parses comma separated coordinates such as "1,-2.5,0".
func ParseVector3(param, s string) (Vector3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Vector3{}, paramErr(param, s, fmt.Errorf("want three comma separated numbers"))
	}
	var c [3]float64
	for i, p := range parts {
		f, err := ParseFloat(param, p)
		if err != nil {
			return Vector3{}, paramErr(param, s, fmt.Errorf("component %d %q is not a finite number", i+1, p))
		}
		c[i] = f
	}
	return Vector3{c[0], c[1], c[2]}, nil
}

// ParseScale accepts either one uniform factor or three per-axis factors.
func ParseScale(s string) (Scale, error) {
	if !strings.Contains(s, ",") {
		f, err := ParseFloat("scale factor", s)
		if err != nil {
			return Scale{}, err
		}
		return UniformScale(f), nil
	}
	v, err := ParseVector3("scale factors", s)
	if err != nil {
		return Scale{}, err
	}
	return Scale{Factors: v}, nil
}

// ParseAxis accepts x, y or z as shorthands for the unit axes, or a vector.
func ParseAxis(s string) (Vector3, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return Vector3{1, 0, 0}, nil
	case "y":
		return Vector3{0, 1, 0}, nil
	case "z":
		return Vector3{0, 0, 1}, nil
	}
	return ParseVector3("axis", s)
}

// ParseControlLine parses "<x,y,z> <dx,dy,dz>": a point on the line and its
// direction, separated by whitespace. A zero direction is rejected here.
func ParseControlLine(s string) (ControlLine, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return ControlLine{}, paramErr("control line", s, fmt.Errorf("want \"<x,y,z> <dx,dy,dz>\""))
	}
	point, err := ParseVector3("control line point", fields[0])
	if err != nil {
		return ControlLine{}, err
	}
	dir, err := ParseVector3("control line direction", fields[1])
	if err != nil {
		return ControlLine{}, err
	}
	if _, err := dir.Normalize(); err != nil {
		return ControlLine{}, paramErr("control line direction", fields[1], err)
	}
	return ControlLine{Point: point, Direction: dir}, nil
}

func formatVector(v Vector3) string {
	return formatFloat(v.X) + "," + formatFloat(v.Y) + "," + formatFloat(v.Z)
}
