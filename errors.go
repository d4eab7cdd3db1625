package meshpipe

import (
	"errors"
	"fmt"
)

var (
	// ErrParse is the root of every malformed-mesh error.
	ErrParse = errors.New("parse error")
	// ErrInvalidParameter is the root of every bad operator or CLI parameter.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrDegenerate marks geometry with no defined result, such as
	// normalizing a zero-length vector.
	ErrDegenerate = errors.New("degenerate geometry")
)

// ParseError describes malformed mesh input. Line is 1-based; zero means the
// error is not tied to a line (for example a truncated file).
type ParseError struct {
	Format Format
	Line   int
	Token  string
	Msg    string
}

func (e *ParseError) Error() string {
	where := string(e.Format)
	if where == "" {
		where = "mesh"
	}
	if e.Line > 0 {
		where = fmt.Sprintf("%s line %d", where, e.Line)
	}
	if e.Token != "" {
		return fmt.Sprintf("%s: %s: %q", where, e.Msg, e.Token)
	}
	return fmt.Sprintf("%s: %s", where, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// ParamError reports a rejected operator parameter. Err carries the cause,
// for example ErrDegenerate or a strconv error.
type ParamError struct {
	Param string
	Value string
	Err   error
}

func (e *ParamError) Error() string {
	msg := fmt.Sprintf("invalid %s", e.Param)
	if e.Value != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Value)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ParamError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidParameter}
	}
	return []error{ErrInvalidParameter, e.Err}
}

func paramErr(param, value string, err error) error {
	return &ParamError{Param: param, Value: value, Err: err}
}
