// Package schema defines the omnitree schema model and its traversal.
//
// A schema tree is built once with the builder methods (NewPackage,
// AddEntity, AddPrimitiveField, ...) and then treated as read-only. Walk
// drives a Visitor over the tree and, optionally, a Bracketed visitor that
// receives object/list open and close notifications:
//
//	pkg := schema.NewPackage("shop")
//	status := pkg.AddEnumeration("status", "active", "disabled")
//	pkg.AddEntity("customer").
//		AddPrimitiveField("id", schema.NewUUID()).
//		AddEnumerationField("status", status)
//
//	complete := schema.Walk(pkg, v, b)
//
// The node-kind set is closed; Walk handles every kind with one type switch.
package schema
