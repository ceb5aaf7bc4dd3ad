package schema_test

import (
	"reflect"
	"strings"
	"testing"

	omnitree "github.com/reoring/omnitree"
	"github.com/reoring/omnitree/schema"
)

// recorder logs every visit and bracket notification as a short token.
type recorder struct {
	events []string
	stopAt string // stop when visiting a named node with this name
}

func (r *recorder) visit(kind, name string) bool {
	r.events = append(r.events, kind+":"+name)
	return r.stopAt == "" || name != r.stopAt
}

func (r *recorder) ObjectStart(name string) { r.events = append(r.events, "{"+name) }
func (r *recorder) ObjectEnd()              { r.events = append(r.events, "}") }
func (r *recorder) ListStart(name string)   { r.events = append(r.events, "["+name) }
func (r *recorder) ListEnd()                { r.events = append(r.events, "]") }

func (r *recorder) VisitPackage(n *schema.Package) bool { return r.visit("package", n.Name) }
func (r *recorder) VisitAlias(n *schema.Alias) bool     { return r.visit("alias", n.Name) }
func (r *recorder) VisitEnumeration(n *schema.Enumeration) bool {
	return r.visit("enumeration", n.Name)
}
func (r *recorder) VisitEntity(n *schema.Entity) bool { return r.visit("entity", n.Name) }
func (r *recorder) VisitPrimitiveField(n *schema.PrimitiveField) bool {
	return r.visit("primitive_field", n.Name)
}
func (r *recorder) VisitAliasField(n *schema.AliasField) bool {
	return r.visit("alias_field", n.Name)
}
func (r *recorder) VisitEnumerationField(n *schema.EnumerationField) bool {
	return r.visit("enumeration_field", n.Name)
}
func (r *recorder) VisitEntityField(n *schema.EntityField) bool {
	return r.visit("entity_field", n.Name)
}
func (r *recorder) VisitBoolean(*schema.Boolean) bool { return r.visit("boolean", "") }
func (r *recorder) VisitNumeric(n *schema.Numeric) bool {
	return r.visit("numeric", n.Kind.String())
}
func (r *recorder) VisitString(*schema.String) bool             { return r.visit("string", "") }
func (r *recorder) VisitPassword1Way(*schema.Password1Way) bool { return r.visit("password1", "") }
func (r *recorder) VisitPassword2Way(*schema.Password2Way) bool { return r.visit("password2", "") }
func (r *recorder) VisitUUID(*schema.UUID) bool                 { return r.visit("uuid", "") }
func (r *recorder) VisitBlob(*schema.Blob) bool                 { return r.visit("blob", "") }

func goldenPackage() *schema.Package {
	pkg := schema.NewPackage("test_package")
	pkg.AddEntity("entity1").AddPrimitiveField("primitive_field", schema.NewString())
	pkg.AddEntity("entity2")
	pkg.AddEntity("entity3")
	return pkg
}

func assertBalanced(t *testing.T, events []string) {
	t.Helper()
	var stack []byte
	for _, ev := range events {
		switch ev[0] {
		case '{', '[':
			stack = append(stack, ev[0])
		case '}', ']':
			want := byte('{')
			if ev[0] == ']' {
				want = '['
			}
			if len(stack) == 0 || stack[len(stack)-1] != want {
				t.Fatalf("unbalanced close %q in %v", ev, events)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) != 0 {
		t.Fatalf("unclosed brackets %q in %v", stack, events)
	}
}

func TestWalk_GoldenOrder(t *testing.T) {
	r := &recorder{}
	if !schema.Walk(goldenPackage(), r, r) {
		t.Fatalf("expected complete traversal")
	}
	want := []string{
		"{package", "package:test_package",
		"[entities",
		"{entity", "entity:entity1",
		"[fields", "{primitive_field", "primitive_field:primitive_field", "string:", "}", "]",
		"}",
		"{entity", "entity:entity2", "}",
		"{entity", "entity:entity3", "}",
		"]",
		"}",
	}
	if !reflect.DeepEqual(r.events, want) {
		t.Fatalf("events mismatch\n got=%v\nwant=%v", r.events, want)
	}
}

func TestWalk_ChildListOrderAndEmptyListsOmitted(t *testing.T) {
	pkg := schema.NewPackage("p")
	e := pkg.AddEntity("e")
	pkg.AddAlias("a", schema.NewBoolean())
	pkg.AddEnumeration("en")
	_ = e

	r := &recorder{}
	schema.Walk(pkg, r, r)
	got := strings.Join(r.events, " ")
	want := "{package package:p [aliases {alias alias:a boolean: } ] [enumerations {enumeration enumeration:en } ] [entities {entity entity:e } ] }"
	if got != want {
		t.Fatalf("events mismatch\n got=%s\nwant=%s", got, want)
	}
}

func TestWalk_ReferenceFieldsDescendIntoTargets(t *testing.T) {
	pkg := schema.NewPackage("p")
	id := pkg.AddAlias("id", schema.NewInteger().Min(omnitree.Int(1), true))
	st := pkg.AddEnumeration("status", "on", "off")
	addr := pkg.AddEntity("address").AddPrimitiveField("zip", schema.NewString())
	user := pkg.AddEntity("user").
		AddAliasField("id", id).
		AddEnumerationField("status", st).
		AddEntityField("home", addr)

	r := &recorder{}
	if !schema.Walk(user, r, r) {
		t.Fatalf("expected complete traversal")
	}
	got := strings.Join(r.events, " ")
	want := "{entity entity:user [fields " +
		"{alias_field alias_field:id {alias alias:id numeric:integer } } " +
		"{enumeration_field enumeration_field:status {enumeration enumeration:status } } " +
		"{entity_field entity_field:home {entity entity:address [fields {primitive_field primitive_field:zip string: } ] } } " +
		"] }"
	if got != want {
		t.Fatalf("events mismatch\n got=%s\nwant=%s", got, want)
	}
}

func TestWalk_AbortKeepsBracketsBalanced(t *testing.T) {
	r := &recorder{stopAt: "entity2"}
	if schema.Walk(goldenPackage(), r, r) {
		t.Fatalf("expected aborted traversal")
	}
	assertBalanced(t, r.events)
	for _, ev := range r.events {
		if ev == "entity:entity3" {
			t.Fatalf("entity3 visited after abort: %v", r.events)
		}
	}
	// the aborted entity's object is still closed, then the list and package
	n := len(r.events)
	tail := r.events[n-4:]
	if !reflect.DeepEqual(tail, []string{"entity:entity2", "}", "]", "}"}) {
		t.Fatalf("unexpected tail %v", tail)
	}
}

func TestWalk_AbortAtEveryNodeStaysBalanced(t *testing.T) {
	pkg := schema.NewPackage("p")
	a := pkg.AddAlias("a", schema.NewString().MinLength(1))
	en := pkg.AddEnumeration("en", "x")
	inner := pkg.AddEntity("inner").AddPrimitiveField("f0", schema.NewBlob())
	pkg.AddEntity("outer").
		AddAliasField("f1", a).
		AddEnumerationField("f2", en).
		AddEntityField("f3", inner).
		AddPrimitiveField("f4", schema.NewPassword2Way())

	for _, name := range []string{"p", "a", "en", "inner", "f0", "outer", "f1", "f2", "f3", "f4"} {
		t.Run(name, func(t *testing.T) {
			r := &recorder{stopAt: name}
			if schema.Walk(pkg, r, r) {
				t.Fatalf("expected abort at %s", name)
			}
			assertBalanced(t, r.events)
		})
	}
}

func TestWalk_SelfReferenceTerminates(t *testing.T) {
	pkg := schema.NewPackage("p")
	node := pkg.AddEntity("node")
	node.AddPrimitiveField("value", schema.NewInteger()).AddEntityField("parent", node)

	r := &recorder{}
	if !schema.Walk(pkg, r, r) {
		t.Fatalf("expected complete traversal")
	}
	assertBalanced(t, r.events)
	got := strings.Join(r.events, " ")
	want := "{package package:p [entities {entity entity:node [fields " +
		"{primitive_field primitive_field:value numeric:integer } " +
		"{entity_field entity_field:parent {entity entity:node } } " +
		"] } ] }"
	if got != want {
		t.Fatalf("events mismatch\n got=%s\nwant=%s", got, want)
	}
}

func TestWalk_NilBracketedAndPrimitiveRoot(t *testing.T) {
	r := &recorder{}
	if !schema.Walk(goldenPackage(), r, nil) {
		t.Fatalf("expected complete traversal")
	}
	for _, ev := range r.events {
		if strings.ContainsAny(ev[:1], "{}[]") {
			t.Fatalf("bracket emitted without a Bracketed visitor: %v", r.events)
		}
	}

	r = &recorder{}
	schema.Walk(schema.NewPassword1Way(), r, r)
	if !reflect.DeepEqual(r.events, []string{"password1:"}) {
		t.Fatalf("primitive root should only be visited, got %v", r.events)
	}
}

func TestStopWhen_NameIs(t *testing.T) {
	r := &recorder{}
	v := schema.StopWhen(r, schema.NameIs("entity3"))
	if schema.Walk(goldenPackage(), v, r) {
		t.Fatalf("expected abort")
	}
	assertBalanced(t, r.events)
	for _, ev := range r.events {
		if ev == "entity:entity3" {
			t.Fatalf("stopped node must not reach the wrapped visitor")
		}
	}
}

type countingVisitor struct {
	schema.BaseVisitor
	entities int
}

func (c *countingVisitor) VisitEntity(*schema.Entity) bool { c.entities++; return true }

func TestBaseVisitor_Embedding(t *testing.T) {
	c := &countingVisitor{}
	if !schema.Walk(goldenPackage(), c, nil) {
		t.Fatalf("expected complete traversal")
	}
	if c.entities != 3 {
		t.Fatalf("entities=%d, want 3", c.entities)
	}
}
