// Package omnitree provides:
//
// - An in-memory schema description model (packages, aliases, enumerations,
// entities, fields, constrained primitives) under schema/
// - A double-dispatch traversal (Walk) driving a Visitor and an optional
// Bracketed visitor
// - Wire-format encoders under wire/ (JSON with a nesting state machine, YAML)
// - A schema encoder binding the two under encode/
//
// Design policy:
// - Keep shared value types and the error model in the root package; keep the
// model, wire formats, and encoders in their own packages.
// - Place the CLI under cmd/omnitree and support code under internal/.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	pkg := schema.NewPackage("shop")
//	customer := pkg.AddEntity("customer")
//	customer.AddPrimitiveField("id", schema.NewUUID())
//
//	enc := encode.NewJSON(os.Stdout, wire.Options{PrettyPrint: true})
//	complete, err := enc.Encode(pkg)
package omnitree
