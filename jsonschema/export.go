package jsonschema

import (
	"errors"

	"github.com/reoring/omnitree/schema"
)

// Export projects a package into a JSON Schema document. Aliases,
// enumerations and entities become entries of $defs; reference fields become
// $ref pointers to those entries. Every entity field is listed as required.
//
// Each definition is visited once. Referenced nodes are never descended
// into, so export cost stays linear in the definition size.
func Export(pkg *schema.Package) (*Schema, error) {
	if pkg == nil {
		return nil, errors.New("jsonschema: nil package")
	}
	x := &exporter{defs: map[string]*Schema{}}
	for _, a := range pkg.Aliases {
		schema.Walk(a, x, nil)
	}
	for _, e := range pkg.Enumerations {
		schema.Walk(e, x, nil)
	}
	for _, e := range pkg.Entities {
		x.VisitEntity(e)
		for _, f := range e.Fields {
			x.field(f)
		}
	}
	doc := &Schema{Dialect: Draft, Title: pkg.Name}
	if len(x.defs) > 0 {
		doc.Defs = x.defs
	}
	return doc, nil
}

// DefRef returns the $ref pointer of a $defs entry.
func DefRef(name string) string { return "#/$defs/" + name }

var _ schema.Visitor = (*exporter)(nil)

// exporter fills $defs from one definition at a time.
type exporter struct {
	defs   map[string]*Schema
	entity *Schema // entity def receiving properties
	target *Schema // def or property receiving the next primitive
}

func (x *exporter) field(f schema.Field) {
	switch t := f.(type) {
	case *schema.PrimitiveField:
		schema.Walk(t, x, nil)
	case *schema.AliasField:
		x.VisitAliasField(t)
	case *schema.EnumerationField:
		x.VisitEnumerationField(t)
	case *schema.EntityField:
		x.VisitEntityField(t)
	}
}

func (x *exporter) VisitPackage(*schema.Package) bool { return true }

func (x *exporter) VisitAlias(a *schema.Alias) bool {
	x.target = &Schema{}
	x.defs[a.Name] = x.target
	return true
}

func (x *exporter) VisitEnumeration(e *schema.Enumeration) bool {
	x.defs[e.Name] = &Schema{Type: "string", Enum: append([]string{}, e.Values...)}
	return true
}

func (x *exporter) VisitEntity(e *schema.Entity) bool {
	x.entity = &Schema{Type: "object", Properties: map[string]*Schema{}, AdditionalProperties: false}
	x.defs[e.Name] = x.entity
	return true
}

func (x *exporter) property(name string, s *Schema) {
	x.entity.Properties[name] = s
	x.entity.Required = append(x.entity.Required, name)
}

func (x *exporter) VisitPrimitiveField(f *schema.PrimitiveField) bool {
	x.target = &Schema{}
	x.property(f.Name, x.target)
	return true
}

func (x *exporter) VisitAliasField(f *schema.AliasField) bool {
	if f.Alias != nil {
		x.property(f.Name, &Schema{Ref: DefRef(f.Alias.Name)})
	}
	return true
}

func (x *exporter) VisitEnumerationField(f *schema.EnumerationField) bool {
	if f.Enumeration != nil {
		x.property(f.Name, &Schema{Ref: DefRef(f.Enumeration.Name)})
	}
	return true
}

func (x *exporter) VisitEntityField(f *schema.EntityField) bool {
	if f.Entity != nil {
		x.property(f.Name, &Schema{Ref: DefRef(f.Entity.Name)})
	}
	return true
}

func (x *exporter) VisitBoolean(*schema.Boolean) bool {
	return x.primitive(func(s *Schema) { s.Type = "boolean" })
}

func (x *exporter) VisitNumeric(n *schema.Numeric) bool {
	return x.primitive(func(s *Schema) {
		s.Type = "integer"
		if n.Kind == schema.Float {
			s.Type = "number"
		}
		if b := n.Constraints.Min; b != nil {
			if b.Inclusive {
				s.Minimum = b.Value.Value()
			} else {
				s.ExclusiveMinimum = b.Value.Value()
			}
		}
		if b := n.Constraints.Max; b != nil {
			if b.Inclusive {
				s.Maximum = b.Value.Value()
			} else {
				s.ExclusiveMaximum = b.Value.Value()
			}
		}
	})
}

func (x *exporter) VisitString(p *schema.String) bool {
	return x.primitive(func(s *Schema) { applyString(s, p.Constraints) })
}

func (x *exporter) VisitPassword1Way(p *schema.Password1Way) bool {
	return x.primitive(func(s *Schema) {
		applyString(s, p.Constraints)
		s.Format = "password"
		s.WriteOnly = true
	})
}

func (x *exporter) VisitPassword2Way(p *schema.Password2Way) bool {
	return x.primitive(func(s *Schema) {
		applyString(s, p.Constraints)
		s.Format = "password"
	})
}

func (x *exporter) VisitUUID(*schema.UUID) bool {
	return x.primitive(func(s *Schema) {
		s.Type = "string"
		s.Format = "uuid"
	})
}

func (x *exporter) VisitBlob(*schema.Blob) bool {
	return x.primitive(func(s *Schema) {
		s.Type = "string"
		s.ContentEncoding = "base64"
	})
}

func (x *exporter) primitive(apply func(*Schema)) bool {
	if x.target == nil {
		return true
	}
	apply(x.target)
	x.target = nil
	return true
}

func applyString(s *Schema, c schema.StringConstraints) {
	s.Type = "string"
	if c.MinLength != nil {
		n := *c.MinLength
		s.MinLength = &n
	}
	if c.MaxLength != nil {
		n := *c.MaxLength
		s.MaxLength = &n
	}
	if c.Regex != nil {
		s.Pattern = *c.Regex
	}
}
