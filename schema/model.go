package schema

// Node is implemented by every schema node kind. The set of kinds is closed:
// the unexported marker keeps implementations inside this package, and Walk
// switches over all of them.
type Node interface {
	node()
}

// Named is implemented by the nodes that carry a user-defined name
// (everything except primitives).
type Named interface {
	Node
	NodeName() string
}

// Package owns its aliases, enumerations, and entities.
type Package struct {
	Name         string
	Aliases      []*Alias
	Enumerations []*Enumeration
	Entities     []*Entity
}

// Alias gives a reusable name to a constrained primitive.
type Alias struct {
	Name      string
	Primitive Primitive
}

// Enumeration is a named list of string values. Duplicates are not rejected.
type Enumeration struct {
	Name   string
	Values []string
}

// Entity is a named, ordered list of fields.
type Entity struct {
	Name   string
	Fields []Field
}

func (*Package) node()     {}
func (*Alias) node()       {}
func (*Enumeration) node() {}
func (*Entity) node()      {}

func (p *Package) NodeName() string     { return p.Name }
func (a *Alias) NodeName() string       { return a.Name }
func (e *Enumeration) NodeName() string { return e.Name }
func (e *Entity) NodeName() string      { return e.Name }

// Field is one of PrimitiveField, AliasField, EnumerationField or
// EntityField.
type Field interface {
	Named
	field()
}

// PrimitiveField has an inline primitive type.
type PrimitiveField struct {
	Name      string
	Primitive Primitive
}

// AliasField refers to an alias defined in the same package. The alias is
// not owned by the field.
type AliasField struct {
	Name  string
	Alias *Alias
}

// EnumerationField refers to an enumeration defined in the same package.
type EnumerationField struct {
	Name        string
	Enumeration *Enumeration
}

// EntityField refers to an entity defined in the same package. The
// reference may point back to an enclosing entity.
type EntityField struct {
	Name   string
	Entity *Entity
}

func (*PrimitiveField) node()   {}
func (*AliasField) node()       {}
func (*EnumerationField) node() {}
func (*EntityField) node()      {}

func (*PrimitiveField) field()   {}
func (*AliasField) field()       {}
func (*EnumerationField) field() {}
func (*EntityField) field()      {}

func (f *PrimitiveField) NodeName() string   { return f.Name }
func (f *AliasField) NodeName() string       { return f.Name }
func (f *EnumerationField) NodeName() string { return f.Name }
func (f *EntityField) NodeName() string      { return f.Name }
