package core

import "fmt"

// Kind classifies a ParseError by its recovery scope.
type Kind string

const (
	// KindDocument marks errors that invalidate the whole parse, such as
	// a missing header line.
	KindDocument Kind = "document"

	// KindRowShape marks data lines whose field count does not match the
	// header; the line is skipped and parsing continues.
	KindRowShape Kind = "row_shape"

	// KindValidation marks findings from the structural checks: missing
	// required columns, duplicate keys, failed type coercions.
	KindValidation Kind = "validation"
)

// ParseError describes one problem found while parsing or validating a
// document. Errors are immutable values collected in document order,
// then validator order; they are reported, never thrown.
//
// Line is the 1-based logical-line number the problem was found at
// (validation rows count the header as line 1, so row n reports line
// n+1). Positional errors set Col to a 1-based field index; errors
// scoped to a named column set Column instead.
type ParseError struct {
	Kind    Kind
	Line    int
	Col     int
	Column  string
	Message string
}

// Error renders the location prefix followed by the message.
func (e ParseError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("line %d, column %q: %s", e.Line, e.Column, e.Message)
	}
	if e.Col > 0 {
		return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Col, e.Message)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}
