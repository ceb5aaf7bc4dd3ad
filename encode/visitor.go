package encode

import (
	omnitree "github.com/reoring/omnitree"
	"github.com/reoring/omnitree/schema"
	"github.com/reoring/omnitree/wire"
)

// Visitor translates a schema traversal into wire.Encoder calls. It
// implements both schema.Visitor and schema.Bracketed.
//
// Visit methods return true unless the wire encoder failed; the first encoder
// error is kept in Err and stops the traversal.
type Visitor struct {
	enc wire.Encoder
	err error
}

var (
	_ schema.Visitor   = (*Visitor)(nil)
	_ schema.Bracketed = (*Visitor)(nil)
)

// NewVisitor returns a Visitor writing to enc.
func NewVisitor(enc wire.Encoder) *Visitor { return &Visitor{enc: enc} }

// Err returns the first wire encoder error.
func (v *Visitor) Err() error { return v.err }

func (v *Visitor) do(err error) bool {
	if err != nil && v.err == nil {
		v.err = err
	}
	return v.err == nil
}

// ---- schema.Bracketed ----

func (v *Visitor) ObjectStart(name string) { v.do(v.enc.ObjectStart(name)) }
func (v *Visitor) ObjectEnd()              { v.do(v.enc.ObjectEnd()) }
func (v *Visitor) ListStart(name string)   { v.do(v.enc.ListStart(name)) }
func (v *Visitor) ListEnd()                { v.do(v.enc.ListEnd()) }

// ---- schema.Visitor ----

func (v *Visitor) name(n string) bool { return v.do(v.enc.StringField("name", n)) }

func (v *Visitor) VisitPackage(p *schema.Package) bool { return v.name(p.Name) }
func (v *Visitor) VisitAlias(a *schema.Alias) bool     { return v.name(a.Name) }
func (v *Visitor) VisitEntity(e *schema.Entity) bool   { return v.name(e.Name) }

func (v *Visitor) VisitEnumeration(e *schema.Enumeration) bool {
	if !v.name(e.Name) {
		return false
	}
	if len(e.Values) == 0 {
		return true
	}
	if !v.do(v.enc.ListStart("values")) {
		return false
	}
	for _, val := range e.Values {
		if !v.do(v.enc.StringField("value", val)) {
			return false
		}
	}
	return v.do(v.enc.ListEnd())
}

func (v *Visitor) VisitPrimitiveField(f *schema.PrimitiveField) bool { return v.name(f.Name) }
func (v *Visitor) VisitAliasField(f *schema.AliasField) bool         { return v.name(f.Name) }
func (v *Visitor) VisitEnumerationField(f *schema.EnumerationField) bool {
	return v.name(f.Name)
}
func (v *Visitor) VisitEntityField(f *schema.EntityField) bool { return v.name(f.Name) }

func (v *Visitor) VisitBoolean(p *schema.Boolean) bool { return v.typeOnly(p) }
func (v *Visitor) VisitUUID(p *schema.UUID) bool       { return v.typeOnly(p) }
func (v *Visitor) VisitBlob(p *schema.Blob) bool       { return v.typeOnly(p) }

func (v *Visitor) VisitNumeric(p *schema.Numeric) bool {
	if !v.typeOnly(p) {
		return false
	}
	return v.numericConstraints(p.Constraints)
}

func (v *Visitor) VisitString(p *schema.String) bool {
	return v.typeOnly(p) && v.stringConstraints(p.Constraints)
}

func (v *Visitor) VisitPassword1Way(p *schema.Password1Way) bool {
	return v.typeOnly(p) && v.stringConstraints(p.Constraints)
}

func (v *Visitor) VisitPassword2Way(p *schema.Password2Way) bool {
	return v.typeOnly(p) && v.stringConstraints(p.Constraints)
}

func (v *Visitor) typeOnly(p schema.Primitive) bool {
	return v.do(v.enc.StringField("type", schema.TypeName(p)))
}

func (v *Visitor) numericConstraints(c schema.NumericConstraints) bool {
	if c.Empty() {
		return true
	}
	if !v.do(v.enc.ObjectStart("constraints")) {
		return false
	}
	if c.Min != nil && !v.bound("min_bound", *c.Min) {
		return false
	}
	if c.Max != nil && !v.bound("max_bound", *c.Max) {
		return false
	}
	return v.do(v.enc.ObjectEnd())
}

func (v *Visitor) bound(name string, b schema.NumericBound) bool {
	return v.do(v.enc.ObjectStart(name)) &&
		v.do(v.enc.NumericField("value", b.Value)) &&
		v.do(v.enc.BooleanField("inclusive", b.Inclusive)) &&
		v.do(v.enc.ObjectEnd())
}

func (v *Visitor) stringConstraints(c schema.StringConstraints) bool {
	if c.Empty() {
		return true
	}
	if !v.do(v.enc.ObjectStart("constraints")) {
		return false
	}
	if c.MinLength != nil && !v.do(v.enc.NumericField("min_length", omnitree.Int(int64(*c.MinLength)))) {
		return false
	}
	if c.MaxLength != nil && !v.do(v.enc.NumericField("max_length", omnitree.Int(int64(*c.MaxLength)))) {
		return false
	}
	if c.Regex != nil && !v.do(v.enc.StringField("regex", *c.Regex)) {
		return false
	}
	return v.do(v.enc.ObjectEnd())
}
