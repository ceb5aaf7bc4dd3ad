package loader

import (
	"math"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	omnitree "github.com/reoring/omnitree"
	"github.com/reoring/omnitree/i18n"
	"github.com/reoring/omnitree/schema"
)

// MapPackage builds a package from its DTO. Aliases, enumerations and
// entities are declared first so entity fields may refer to entities defined
// later in the document, including their own entity. All problems found are
// returned together as omnitree.Issues.
func MapPackage(dto YAMLPackage) (*schema.Package, error) {
	m := &mapper{}
	root := omnitree.Root()
	if strings.TrimSpace(dto.Package) == "" {
		m.add(root.Field("package"), omnitree.CodeRequired)
	}
	pkg := schema.NewPackage(dto.Package)

	seen := map[string]bool{}
	for i, a := range dto.Aliases {
		at := root.Field("aliases").Index(i)
		if !m.name(at, a.Name, seen) {
			continue
		}
		prim := m.primitive(at, a.YAMLPrimitive)
		if prim == nil {
			continue
		}
		pkg.AddAlias(a.Name, prim)
	}

	seen = map[string]bool{}
	for i, e := range dto.Enumerations {
		if m.name(root.Field("enumerations").Index(i), e.Name, seen) {
			pkg.AddEnumeration(e.Name, e.Values...)
		}
	}

	seen = map[string]bool{}
	entities := make([]*schema.Entity, len(dto.Entities))
	for i, e := range dto.Entities {
		if m.name(root.Field("entities").Index(i), e.Name, seen) {
			entities[i] = pkg.AddEntity(e.Name)
		}
	}

	for i, e := range dto.Entities {
		if entities[i] == nil {
			continue
		}
		at := root.Field("entities").Index(i)
		fieldNames := map[string]bool{}
		for k, f := range e.Fields {
			fat := at.Field("fields").Index(k)
			if !m.name(fat, f.Name, fieldNames) {
				continue
			}
			m.field(pkg, entities[i], fat, f)
		}
	}

	if len(m.issues) > 0 {
		return nil, m.issues
	}
	return pkg, nil
}

type mapper struct {
	issues omnitree.Issues
}

// add records an issue; kv are message data pairs such as "ref", "address".
func (m *mapper) add(at omnitree.PathRef, code string, kv ...string) {
	data := map[string]string{}
	params := make([]any, 0, len(kv))
	for i := 0; i+1 < len(kv); i += 2 {
		data[kv[i]] = kv[i+1]
		params = append(params, kv[i], kv[i+1])
	}
	m.issues = omnitree.AppendIssues(m.issues, at.Issue(code, i18n.T(code, data), params...))
}

// name checks that a name is present and unique within seen.
func (m *mapper) name(at omnitree.PathRef, name string, seen map[string]bool) bool {
	if strings.TrimSpace(name) == "" {
		m.add(at.Field("name"), omnitree.CodeRequired)
		return false
	}
	if seen[name] {
		m.add(at.Field("name"), omnitree.CodeDuplicateName, "name", name)
		return false
	}
	seen[name] = true
	return true
}

func (m *mapper) field(pkg *schema.Package, ent *schema.Entity, at omnitree.PathRef, f YAMLField) {
	kinds := 0
	for _, s := range []string{f.Type, f.Alias, f.Enumeration, f.Entity} {
		if s != "" {
			kinds++
		}
	}
	switch {
	case kinds == 0:
		m.add(at.Field("type"), omnitree.CodeRequired)
		return
	case kinds > 1:
		// type, alias, enumeration and entity are exclusive
		m.add(at, omnitree.CodeInvalidType)
		return
	case f.Type == "" && f.hasConstraints():
		m.add(at, omnitree.CodeInvalidBound)
		return
	}

	switch {
	case f.Type != "":
		if prim := m.primitive(at, f.YAMLPrimitive); prim != nil {
			ent.AddPrimitiveField(f.Name, prim)
		}
	case f.Alias != "":
		a, ok := pkg.Alias(f.Alias)
		if !ok {
			m.add(at.Field("alias"), omnitree.CodeUnknownReference, "ref", f.Alias)
			return
		}
		ent.AddAliasField(f.Name, a)
	case f.Enumeration != "":
		e, ok := pkg.Enumeration(f.Enumeration)
		if !ok {
			m.add(at.Field("enumeration"), omnitree.CodeUnknownReference, "ref", f.Enumeration)
			return
		}
		ent.AddEnumerationField(f.Name, e)
	default:
		e, ok := pkg.Entity(f.Entity)
		if !ok {
			m.add(at.Field("entity"), omnitree.CodeUnknownReference, "ref", f.Entity)
			return
		}
		ent.AddEntityField(f.Name, e)
	}
}

// primitive maps a type name and its constraints. It returns nil after
// recording an issue.
func (m *mapper) primitive(at omnitree.PathRef, p YAMLPrimitive) schema.Primitive {
	before := len(m.issues)
	var prim schema.Primitive
	switch p.Type {
	case "":
		m.add(at.Field("type"), omnitree.CodeRequired)
		return nil
	case "boolean":
		prim = schema.NewBoolean()
	case "uuid":
		prim = schema.NewUUID()
	case "blob":
		prim = schema.NewBlob()
	case "integer", "float":
		n := schema.NewInteger()
		if p.Type == "float" {
			n = schema.NewFloat()
		}
		m.numeric(at, n, p)
		prim = n
	case "string", "password_1_way", "password_2_way":
		c := m.stringConstraints(at, p)
		switch p.Type {
		case "string":
			prim = &schema.String{Constraints: c}
		case "password_1_way":
			prim = &schema.Password1Way{Constraints: c}
		default:
			prim = &schema.Password2Way{Constraints: c}
		}
	default:
		m.add(at.Field("type"), omnitree.CodeInvalidType, "type", p.Type)
		return nil
	}

	if _, isNum := prim.(*schema.Numeric); !isNum && (p.Min != nil || p.Max != nil) {
		m.add(at.Field("min"), omnitree.CodeInvalidBound)
	}
	if _, isStr := schema.StringConstraintsOf(prim); !isStr && (p.MinLength != nil || p.MaxLength != nil || p.Regex != nil) {
		m.add(at.Field("min_length"), omnitree.CodeInvalidBound)
	}
	if len(m.issues) > before {
		return nil
	}
	return prim
}

func (m *mapper) numeric(at omnitree.PathRef, n *schema.Numeric, p YAMLPrimitive) {
	if p.Min != nil {
		if b, ok := m.bound(at.Field("min"), n.Kind, p.Min); ok {
			n.Constraints.Min = &b
		}
	}
	if p.Max != nil {
		if b, ok := m.bound(at.Field("max"), n.Kind, p.Max); ok {
			n.Constraints.Max = &b
		}
	}
	lo, hi := n.Constraints.Min, n.Constraints.Max
	if lo == nil || hi == nil {
		return
	}
	l, h := lo.Value.Float64(), hi.Value.Float64()
	if l > h || (l == h && !(lo.Inclusive && hi.Inclusive)) {
		m.add(at, omnitree.CodeInvalidBound)
	}
}

func (m *mapper) bound(at omnitree.PathRef, kind schema.NumberKind, b *YAMLBound) (schema.NumericBound, bool) {
	out := schema.NumericBound{Inclusive: true}
	if b.Inclusive != nil {
		out.Inclusive = *b.Inclusive
	}
	v := b.Value
	if v == nil || v.Kind != yaml.ScalarNode {
		m.add(at.Field("value"), omnitree.CodeRequired)
		return out, false
	}
	switch v.ShortTag() {
	case "!!int":
		var i int64
		if err := v.Decode(&i); err != nil {
			m.add(at.Field("value"), omnitree.CodeInvalidBound)
			return out, false
		}
		out.Value = omnitree.Int(i)
		if kind == schema.Float {
			out.Value = omnitree.Float(float64(i))
		}
	case "!!float":
		if kind == schema.Integer {
			m.add(at.Field("value"), omnitree.CodeInvalidBound)
			return out, false
		}
		var f float64
		if err := v.Decode(&f); err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			m.add(at.Field("value"), omnitree.CodeInvalidBound)
			return out, false
		}
		out.Value = omnitree.Float(f)
	default:
		m.add(at.Field("value"), omnitree.CodeInvalidBound)
		return out, false
	}
	return out, true
}

func (m *mapper) stringConstraints(at omnitree.PathRef, p YAMLPrimitive) schema.StringConstraints {
	var c schema.StringConstraints
	if p.MinLength != nil {
		if *p.MinLength < 0 {
			m.add(at.Field("min_length"), omnitree.CodeInvalidBound)
		}
		c.MinLength = p.MinLength
	}
	if p.MaxLength != nil {
		if *p.MaxLength < 0 {
			m.add(at.Field("max_length"), omnitree.CodeInvalidBound)
		}
		c.MaxLength = p.MaxLength
	}
	if c.MinLength != nil && c.MaxLength != nil && *c.MinLength > *c.MaxLength {
		m.add(at.Field("max_length"), omnitree.CodeInvalidBound)
	}
	if p.Regex != nil {
		if _, err := regexp.Compile(*p.Regex); err != nil {
			m.add(at.Field("regex"), omnitree.CodeInvalidBound)
		}
		c.Regex = p.Regex
	}
	return c
}
