package schema

// StopWhen wraps v so that the traversal stops at the first node for which
// stop returns true. The matching node is not passed to v.
func StopWhen(v Visitor, stop func(Node) bool) Visitor {
	if stop == nil {
		return v
	}
	return &stopVisitor{next: v, stop: stop}
}

// NameIs returns a predicate matching named nodes (packages, aliases,
// enumerations, entities, fields) with the given name.
func NameIs(name string) func(Node) bool {
	return func(n Node) bool {
		nn, ok := n.(Named)
		return ok && nn.NodeName() == name
	}
}

type stopVisitor struct {
	next Visitor
	stop func(Node) bool
}

func (s *stopVisitor) VisitPackage(n *Package) bool {
	return !s.stop(n) && s.next.VisitPackage(n)
}
func (s *stopVisitor) VisitAlias(n *Alias) bool {
	return !s.stop(n) && s.next.VisitAlias(n)
}
func (s *stopVisitor) VisitEnumeration(n *Enumeration) bool {
	return !s.stop(n) && s.next.VisitEnumeration(n)
}
func (s *stopVisitor) VisitEntity(n *Entity) bool {
	return !s.stop(n) && s.next.VisitEntity(n)
}
func (s *stopVisitor) VisitPrimitiveField(n *PrimitiveField) bool {
	return !s.stop(n) && s.next.VisitPrimitiveField(n)
}
func (s *stopVisitor) VisitAliasField(n *AliasField) bool {
	return !s.stop(n) && s.next.VisitAliasField(n)
}
func (s *stopVisitor) VisitEnumerationField(n *EnumerationField) bool {
	return !s.stop(n) && s.next.VisitEnumerationField(n)
}
func (s *stopVisitor) VisitEntityField(n *EntityField) bool {
	return !s.stop(n) && s.next.VisitEntityField(n)
}
func (s *stopVisitor) VisitBoolean(n *Boolean) bool {
	return !s.stop(n) && s.next.VisitBoolean(n)
}
func (s *stopVisitor) VisitNumeric(n *Numeric) bool {
	return !s.stop(n) && s.next.VisitNumeric(n)
}
func (s *stopVisitor) VisitString(n *String) bool {
	return !s.stop(n) && s.next.VisitString(n)
}
func (s *stopVisitor) VisitPassword1Way(n *Password1Way) bool {
	return !s.stop(n) && s.next.VisitPassword1Way(n)
}
func (s *stopVisitor) VisitPassword2Way(n *Password2Way) bool {
	return !s.stop(n) && s.next.VisitPassword2Way(n)
}
func (s *stopVisitor) VisitUUID(n *UUID) bool {
	return !s.stop(n) && s.next.VisitUUID(n)
}
func (s *stopVisitor) VisitBlob(n *Blob) bool {
	return !s.stop(n) && s.next.VisitBlob(n)
}
