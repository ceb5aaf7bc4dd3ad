package schema

// Walk traverses n depth-first, calling v for every node and, when b is not
// nil, notifying b around every object-producing node and every non-empty
// child list.
//
// Children are visited in declaration order: a package's aliases, then
// enumerations, then entities; an entity's fields; a field's primitive or
// referenced node; an alias's primitive. Primitives and enumerations are
// leaves.
//
// Walk returns false as soon as a Visit method returns false. No further node
// is visited, but every bracket already opened is closed in LIFO order before
// Walk returns, so b always sees a balanced sequence.
//
// An entity reached through an EntityField while that entity is already being
// traversed (a self or mutual reference) is visited without descending into
// its fields.
//
// The tree must not be mutated while Walk runs.
func Walk(n Node, v Visitor, b Bracketed) bool {
	w := &walker{v: v, b: b}
	return w.walk(n)
}

type walker struct {
	v Visitor
	b Bracketed
	// entities whose fields are currently being walked
	open []*Entity
}

func (w *walker) objectStart(name string) {
	if w.b != nil {
		w.b.ObjectStart(name)
	}
}

func (w *walker) objectEnd() {
	if w.b != nil {
		w.b.ObjectEnd()
	}
}

func (w *walker) listStart(name string) {
	if w.b != nil {
		w.b.ListStart(name)
	}
}

func (w *walker) listEnd() {
	if w.b != nil {
		w.b.ListEnd()
	}
}

func (w *walker) isOpen(e *Entity) bool {
	for _, o := range w.open {
		if o == e {
			return true
		}
	}
	return false
}

func (w *walker) walk(n Node) bool {
	switch t := n.(type) {
	case *Package:
		w.objectStart("package")
		defer w.objectEnd()
		if !w.v.VisitPackage(t) {
			return false
		}
		if !walkList(w, "aliases", t.Aliases) {
			return false
		}
		if !walkList(w, "enumerations", t.Enumerations) {
			return false
		}
		return walkList(w, "entities", t.Entities)

	case *Alias:
		w.objectStart("alias")
		defer w.objectEnd()
		if !w.v.VisitAlias(t) {
			return false
		}
		return w.walk(t.Primitive)

	case *Enumeration:
		w.objectStart("enumeration")
		defer w.objectEnd()
		return w.v.VisitEnumeration(t)

	case *Entity:
		w.objectStart("entity")
		defer w.objectEnd()
		if !w.v.VisitEntity(t) {
			return false
		}
		if w.isOpen(t) {
			return true
		}
		w.open = append(w.open, t)
		defer func() { w.open = w.open[:len(w.open)-1] }()
		return walkList(w, "fields", t.Fields)

	case *PrimitiveField:
		w.objectStart("primitive_field")
		defer w.objectEnd()
		if !w.v.VisitPrimitiveField(t) {
			return false
		}
		return w.walk(t.Primitive)

	case *AliasField:
		w.objectStart("alias_field")
		defer w.objectEnd()
		if !w.v.VisitAliasField(t) {
			return false
		}
		if t.Alias == nil {
			return true
		}
		return w.walk(t.Alias)

	case *EnumerationField:
		w.objectStart("enumeration_field")
		defer w.objectEnd()
		if !w.v.VisitEnumerationField(t) {
			return false
		}
		if t.Enumeration == nil {
			return true
		}
		return w.walk(t.Enumeration)

	case *EntityField:
		w.objectStart("entity_field")
		defer w.objectEnd()
		if !w.v.VisitEntityField(t) {
			return false
		}
		if t.Entity == nil {
			return true
		}
		return w.walk(t.Entity)

	case *Boolean:
		return w.v.VisitBoolean(t)
	case *Numeric:
		return w.v.VisitNumeric(t)
	case *String:
		return w.v.VisitString(t)
	case *Password1Way:
		return w.v.VisitPassword1Way(t)
	case *Password2Way:
		return w.v.VisitPassword2Way(t)
	case *UUID:
		return w.v.VisitUUID(t)
	case *Blob:
		return w.v.VisitBlob(t)
	}
	// nil node: nothing to visit
	return true
}

func walkList[T Node](w *walker, name string, items []T) bool {
	if len(items) == 0 {
		return true
	}
	w.listStart(name)
	defer w.listEnd()
	for _, it := range items {
		if !w.walk(it) {
			return false
		}
	}
	return true
}
