package schema

import (
	omnitree "github.com/reoring/omnitree"
)

// Primitive is one of Boolean, Numeric, String, Password1Way, Password2Way,
// UUID or Blob.
type Primitive interface {
	Node
	primitive()
}

// NumberKind selects the numeric representation of a Numeric primitive.
type NumberKind uint8

const (
	Integer NumberKind = iota
	Float
)

func (k NumberKind) String() string {
	if k == Float {
		return "float"
	}
	return "integer"
}

// NumericBound is an inclusive or exclusive limit on a numeric value.
type NumericBound struct {
	Value     omnitree.Number
	Inclusive bool
}

// NumericConstraints holds optional lower and upper bounds.
type NumericConstraints struct {
	Min *NumericBound
	Max *NumericBound
}

// Empty reports whether no bound is set.
func (c NumericConstraints) Empty() bool { return c.Min == nil && c.Max == nil }

// StringConstraints holds optional length limits and a pattern.
// MinLength <= MaxLength when both are set; this is not checked.
type StringConstraints struct {
	MinLength *int
	MaxLength *int
	Regex     *string
}

// Empty reports whether no constraint is set.
func (c StringConstraints) Empty() bool {
	return c.MinLength == nil && c.MaxLength == nil && c.Regex == nil
}

type Boolean struct{}

type Numeric struct {
	Kind        NumberKind
	Constraints NumericConstraints
}

type String struct {
	Constraints StringConstraints
}

// Password1Way is a string that can be hashed but never recovered.
type Password1Way struct {
	Constraints StringConstraints
}

// Password2Way is a string that can be encrypted and decrypted.
type Password2Way struct {
	Constraints StringConstraints
}

type UUID struct{}

// Blob holds binary data.
type Blob struct{}

func (*Boolean) node()      {}
func (*Numeric) node()      {}
func (*String) node()       {}
func (*Password1Way) node() {}
func (*Password2Way) node() {}
func (*UUID) node()         {}
func (*Blob) node()         {}

func (*Boolean) primitive()      {}
func (*Numeric) primitive()      {}
func (*String) primitive()       {}
func (*Password1Way) primitive() {}
func (*Password2Way) primitive() {}
func (*UUID) primitive()         {}
func (*Blob) primitive()         {}

// TypeName returns the wire discriminator of a primitive
// ("boolean", "integer", "float", "string", "password_1_way",
// "password_2_way", "uuid", "blob").
func TypeName(p Primitive) string {
	switch t := p.(type) {
	case *Boolean:
		return "boolean"
	case *Numeric:
		return t.Kind.String()
	case *String:
		return "string"
	case *Password1Way:
		return "password_1_way"
	case *Password2Way:
		return "password_2_way"
	case *UUID:
		return "uuid"
	case *Blob:
		return "blob"
	}
	return ""
}
