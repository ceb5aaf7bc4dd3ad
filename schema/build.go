package schema

import (
	omnitree "github.com/reoring/omnitree"
)

// NewPackage creates an empty package. The name must be non-empty; this is
// the caller's responsibility.
func NewPackage(name string) *Package {
	return &Package{Name: name}
}

// AddAlias appends an alias and returns it so fields can refer to it.
func (p *Package) AddAlias(name string, prim Primitive) *Alias {
	a := &Alias{Name: name, Primitive: prim}
	p.Aliases = append(p.Aliases, a)
	return a
}

// AddEnumeration appends an enumeration and returns it.
func (p *Package) AddEnumeration(name string, values ...string) *Enumeration {
	e := &Enumeration{Name: name, Values: values}
	p.Enumerations = append(p.Enumerations, e)
	return e
}

// AddEntity appends an entity without fields and returns it.
func (p *Package) AddEntity(name string) *Entity {
	e := &Entity{Name: name}
	p.Entities = append(p.Entities, e)
	return e
}

// Alias looks up an alias by name.
func (p *Package) Alias(name string) (*Alias, bool) {
	for _, a := range p.Aliases {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// Enumeration looks up an enumeration by name.
func (p *Package) Enumeration(name string) (*Enumeration, bool) {
	for _, e := range p.Enumerations {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// Entity looks up an entity by name.
func (p *Package) Entity(name string) (*Entity, bool) {
	for _, e := range p.Entities {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// AddPrimitiveField appends a field with an inline primitive type.
func (e *Entity) AddPrimitiveField(name string, prim Primitive) *Entity {
	e.Fields = append(e.Fields, &PrimitiveField{Name: name, Primitive: prim})
	return e
}

// AddAliasField appends a field typed by an alias.
func (e *Entity) AddAliasField(name string, a *Alias) *Entity {
	e.Fields = append(e.Fields, &AliasField{Name: name, Alias: a})
	return e
}

// AddEnumerationField appends a field typed by an enumeration.
func (e *Entity) AddEnumerationField(name string, en *Enumeration) *Entity {
	e.Fields = append(e.Fields, &EnumerationField{Name: name, Enumeration: en})
	return e
}

// AddEntityField appends a field typed by another (or the same) entity.
func (e *Entity) AddEntityField(name string, target *Entity) *Entity {
	e.Fields = append(e.Fields, &EntityField{Name: name, Entity: target})
	return e
}

// ---- primitive constructors ----

func NewBoolean() *Boolean           { return &Boolean{} }
func NewInteger() *Numeric           { return &Numeric{Kind: Integer} }
func NewFloat() *Numeric             { return &Numeric{Kind: Float} }
func NewString() *String             { return &String{} }
func NewPassword1Way() *Password1Way { return &Password1Way{} }
func NewPassword2Way() *Password2Way { return &Password2Way{} }
func NewUUID() *UUID                 { return &UUID{} }
func NewBlob() *Blob                 { return &Blob{} }

// Min sets the lower bound.
func (n *Numeric) Min(v omnitree.Number, inclusive bool) *Numeric {
	n.Constraints.Min = &NumericBound{Value: v, Inclusive: inclusive}
	return n
}

// Max sets the upper bound.
func (n *Numeric) Max(v omnitree.Number, inclusive bool) *Numeric {
	n.Constraints.Max = &NumericBound{Value: v, Inclusive: inclusive}
	return n
}

func (s *String) MinLength(n int) *String   { s.Constraints.MinLength = &n; return s }
func (s *String) MaxLength(n int) *String   { s.Constraints.MaxLength = &n; return s }
func (s *String) Regex(expr string) *String { s.Constraints.Regex = &expr; return s }

func (s *Password1Way) MinLength(n int) *Password1Way   { s.Constraints.MinLength = &n; return s }
func (s *Password1Way) MaxLength(n int) *Password1Way   { s.Constraints.MaxLength = &n; return s }
func (s *Password1Way) Regex(expr string) *Password1Way { s.Constraints.Regex = &expr; return s }

func (s *Password2Way) MinLength(n int) *Password2Way   { s.Constraints.MinLength = &n; return s }
func (s *Password2Way) MaxLength(n int) *Password2Way   { s.Constraints.MaxLength = &n; return s }
func (s *Password2Way) Regex(expr string) *Password2Way { s.Constraints.Regex = &expr; return s }

// StringConstraintsOf returns the string constraints of String and Password
// primitives.
func StringConstraintsOf(p Primitive) (StringConstraints, bool) {
	switch t := p.(type) {
	case *String:
		return t.Constraints, true
	case *Password1Way:
		return t.Constraints, true
	case *Password2Way:
		return t.Constraints, true
	}
	return StringConstraints{}, false
}
