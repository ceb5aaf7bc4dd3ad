// Package wire defines the encoder interface implemented by the textual
// wire formats (see wire/jsonwire and wire/yamlwire).
package wire

import (
	omnitree "github.com/reoring/omnitree"
)

// Encoder receives a well-formed sequence of containers and named scalars.
//
// name is a snake_case token. It is empty only for a container without an
// enclosing field (the root) and for anonymous list elements. A container
// opened with a name inside a list is written as a one-key object holding it,
// e.g. [{"entity_field": {...}}]; a scalar inside a list is written bare.
//
// Every End must match the innermost open Start. A mismatched or unmatched
// End returns an error matching omnitree.ErrStructuralMismatch. After the
// first error an Encoder keeps returning it.
type Encoder interface {
	ObjectStart(name string) error
	ObjectEnd() error
	ListStart(name string) error
	ListEnd() error
	StringField(name, value string) error
	NumericField(name string, value omnitree.Number) error
	BooleanField(name string, value bool) error
}

// DefaultIndentSize is the number of spaces per nesting level in pretty mode.
const DefaultIndentSize = 2

// Options configures an encoder at construction time.
type Options struct {
	// PrettyPrint enables newlines and indentation.
	PrettyPrint bool
	// IndentSize is the number of spaces per nesting level. Values <= 0 mean
	// DefaultIndentSize.
	IndentSize int
}

// Indent returns the effective indent size.
func (o Options) Indent() int {
	if o.IndentSize <= 0 {
		return DefaultIndentSize
	}
	return o.IndentSize
}
