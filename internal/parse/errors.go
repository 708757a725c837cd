// Package parse holds the error model shared by puzzle file parsers.
package parse

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Error kinds. Use errors.Is against a returned *Error to classify it.
var (
	ErrNoRows              = errors.New("no rows")
	ErrUnevenRows          = errors.New("uneven rows")
	ErrUnexpectedCharacter = errors.New("unexpected character")
	ErrMissingField        = errors.New("missing field")
	ErrInvalidNumber       = errors.New("invalid number")
	ErrInvalidValue        = errors.New("invalid value")
	ErrDuplicate           = errors.New("already defined")
	ErrUnexpectedEOF       = errors.New("unexpected end of input")
	ErrMissingSection      = errors.New("missing section")
	ErrUnknownCommand      = errors.New("unknown command")
	ErrOutOfBounds         = errors.New("out of bounds")
)

// Error is a parse failure tagged with its 1-based position.
// Line or Column is 0 when it does not apply.
type Error struct {
	Line   int
	Column int
	Kind   error
	Detail string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	switch {
	case e.Line > 0 && e.Column > 0:
		fmt.Fprintf(&b, "line %d, column %d: ", e.Line, e.Column)
	case e.Line > 0:
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	b.WriteString(e.Kind.Error())
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Is matches the error kind.
func (e *Error) Is(target error) bool { return target == e.Kind }

// Unwrap exposes the underlying cause, such as a *strconv.NumError.
func (e *Error) Unwrap() error { return e.Err }

// At builds an Error at a line.
func At(line int, kind error, detail string) *Error {
	return &Error{Line: line, Kind: kind, Detail: detail}
}

// AtColumn builds an Error at a line and column.
func AtColumn(line, column int, kind error, detail string) *Error {
	return &Error{Line: line, Column: column, Kind: kind, Detail: detail}
}

// Line is one input line with its 1-based number.
type Line struct {
	Number int
	Text   string
}

// Lines splits text into numbered lines, tolerating CRLF endings.
// A trailing newline does not produce an empty last line.
func Lines(text string) []Line {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	raw := strings.Split(text, "\n")
	lines := make([]Line, len(raw))
	for i, s := range raw {
		lines[i] = Line{Number: i + 1, Text: s}
	}
	return lines
}

// Fields reads space-separated fields from one line.
type Fields struct {
	line   Line
	fields []string
	next   int
}

// NewFields splits line on whitespace.
func NewFields(line Line) *Fields {
	return &Fields{line: line, fields: strings.Fields(line.Text)}
}

// String returns the next field, or an ErrMissingField error naming what.
func (f *Fields) String(what string) (string, error) {
	if f.next >= len(f.fields) {
		return "", At(f.line.Number, ErrMissingField, what)
	}
	s := f.fields[f.next]
	f.next++
	return s, nil
}

// Int returns the next field as an integer.
func (f *Fields) Int(what string) (int, error) {
	s, err := f.String(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, &Error{Line: f.line.Number, Kind: ErrInvalidNumber, Detail: what, Err: err}
	}
	return v, nil
}

// Int32 returns the next field as an integer that fits in 32 bits. Values out
// of range are ErrInvalidNumber wrapping strconv.ErrRange.
func (f *Fields) Int32(what string) (int32, error) {
	s, err := f.String(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, &Error{Line: f.line.Number, Kind: ErrInvalidNumber, Detail: what, Err: err}
	}
	return int32(v), nil
}
