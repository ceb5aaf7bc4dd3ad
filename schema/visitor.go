package schema

// Visitor receives one call per visited node. Every method returns true to
// continue the traversal and false to stop it.
type Visitor interface {
	VisitPackage(*Package) bool
	VisitAlias(*Alias) bool
	VisitEnumeration(*Enumeration) bool
	VisitEntity(*Entity) bool

	// Fields
	VisitPrimitiveField(*PrimitiveField) bool
	VisitAliasField(*AliasField) bool
	VisitEnumerationField(*EnumerationField) bool
	VisitEntityField(*EntityField) bool

	// Primitives
	VisitBoolean(*Boolean) bool
	VisitNumeric(*Numeric) bool
	VisitString(*String) bool
	VisitPassword1Way(*Password1Way) bool
	VisitPassword2Way(*Password2Way) bool
	VisitUUID(*UUID) bool
	VisitBlob(*Blob) bool
}

// Bracketed receives structural notifications around every object-producing
// node and every non-empty child list. Names are fixed snake_case tokens
// such as "package", "entities" or "primitive_field".
type Bracketed interface {
	ObjectStart(name string)
	ObjectEnd()
	ListStart(name string)
	ListEnd()
}

// BaseVisitor continues on every node. Embed it to override only some
// methods.
type BaseVisitor struct{}

func (BaseVisitor) VisitPackage(*Package) bool                   { return true }
func (BaseVisitor) VisitAlias(*Alias) bool                       { return true }
func (BaseVisitor) VisitEnumeration(*Enumeration) bool           { return true }
func (BaseVisitor) VisitEntity(*Entity) bool                     { return true }
func (BaseVisitor) VisitPrimitiveField(*PrimitiveField) bool     { return true }
func (BaseVisitor) VisitAliasField(*AliasField) bool             { return true }
func (BaseVisitor) VisitEnumerationField(*EnumerationField) bool { return true }
func (BaseVisitor) VisitEntityField(*EntityField) bool           { return true }
func (BaseVisitor) VisitBoolean(*Boolean) bool                   { return true }
func (BaseVisitor) VisitNumeric(*Numeric) bool                   { return true }
func (BaseVisitor) VisitString(*String) bool                     { return true }
func (BaseVisitor) VisitPassword1Way(*Password1Way) bool         { return true }
func (BaseVisitor) VisitPassword2Way(*Password2Way) bool         { return true }
func (BaseVisitor) VisitUUID(*UUID) bool                         { return true }
func (BaseVisitor) VisitBlob(*Blob) bool                         { return true }
