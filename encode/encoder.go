// Package encode serializes schema trees through a wire.Encoder.
//
//	enc := encode.NewJSON(w, wire.Options{PrettyPrint: true})
//	complete, err := enc.Encode(pkg)
//	if err != nil { ... }      // writer or structural failure
//	if !complete { ... }       // a visitor stopped the traversal; output is balanced but truncated
package encode

import (
	"fmt"
	"io"

	omnitree "github.com/reoring/omnitree"
	"github.com/reoring/omnitree/schema"
	"github.com/reoring/omnitree/wire"
	"github.com/reoring/omnitree/wire/jsonwire"
	"github.com/reoring/omnitree/wire/yamlwire"
)

// Option configures a SchemaEncoder.
type Option func(*SchemaEncoder)

// WithStop stops the traversal at the first node for which stop returns
// true. Output stays bracket-balanced and Encode reports it as incomplete.
func WithStop(stop func(schema.Node) bool) Option {
	return func(e *SchemaEncoder) { e.stop = stop }
}

// WithMaxNodes aborts the traversal once more than n nodes have been visited
// in one Encode or EncodeList call. Entity fields repeat their target entity,
// so output can grow exponentially with the definition; the budget bounds it.
// The aborted call returns an error matching omnitree.ErrLimitExceeded.
func WithMaxNodes(n int) Option {
	return func(e *SchemaEncoder) { e.maxNodes = n }
}

// SchemaEncoder encodes schema nodes with a wire.Encoder. Like the wire
// encoder it owns, it must not be shared between goroutines.
type SchemaEncoder struct {
	wire     wire.Encoder
	visitor  *Visitor
	stop     func(schema.Node) bool
	maxNodes int
	nodes    int
}

// New returns a SchemaEncoder over an existing wire encoder.
func New(enc wire.Encoder, opts ...Option) *SchemaEncoder {
	e := &SchemaEncoder{wire: enc, visitor: NewVisitor(enc)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewJSON returns a SchemaEncoder writing JSON to w.
func NewJSON(w io.Writer, wo wire.Options, opts ...Option) *SchemaEncoder {
	return New(jsonwire.New(w, wo), opts...)
}

// NewYAML returns a SchemaEncoder writing YAML to w.
func NewYAML(w io.Writer, wo wire.Options, opts ...Option) *SchemaEncoder {
	return New(yamlwire.New(w, wo), opts...)
}

// Encode writes n wrapped in an anonymous root object, e.g.
// {"package": {...}}.
//
// complete is false when the traversal was stopped before every node was
// visited. err reports wire encoder or writer failures; the output is not
// usable when err is non-nil.
func (e *SchemaEncoder) Encode(n schema.Node) (complete bool, err error) {
	e.nodes = 0
	if err := e.wire.ObjectStart(""); err != nil {
		return false, err
	}
	complete = e.walk(n)
	if err := e.wire.ObjectEnd(); err != nil {
		return false, err
	}
	return e.result(complete)
}

// EncodeList writes the nodes as an anonymous root list of root objects.
// Encoding stops at the first incomplete node; the list is still closed.
func (e *SchemaEncoder) EncodeList(nodes ...schema.Node) (complete bool, err error) {
	e.nodes = 0
	if err := e.wire.ListStart(""); err != nil {
		return false, err
	}
	complete = true
	for _, n := range nodes {
		if err := e.wire.ObjectStart(""); err != nil {
			return false, err
		}
		complete = e.walk(n)
		if err := e.wire.ObjectEnd(); err != nil {
			return false, err
		}
		if !complete {
			break
		}
	}
	if err := e.wire.ListEnd(); err != nil {
		return false, err
	}
	return e.result(complete)
}

// Written returns the bytes written so far when the wire encoder tracks them,
// and 0 otherwise.
func (e *SchemaEncoder) Written() int64 {
	if c, ok := e.wire.(interface{ Written() int64 }); ok {
		return c.Written()
	}
	return 0
}

func (e *SchemaEncoder) result(complete bool) (bool, error) {
	if err := e.visitor.Err(); err != nil {
		return false, err
	}
	if e.overBudget() {
		return false, fmt.Errorf("%w: more than %d nodes", omnitree.ErrLimitExceeded, e.maxNodes)
	}
	return complete, nil
}

func (e *SchemaEncoder) overBudget() bool { return e.maxNodes > 0 && e.nodes > e.maxNodes }

func (e *SchemaEncoder) walk(n schema.Node) bool {
	var v schema.Visitor = e.visitor
	if e.stop != nil || e.maxNodes > 0 {
		v = schema.StopWhen(v, e.halt)
	}
	return schema.Walk(n, v, e.visitor)
}

func (e *SchemaEncoder) halt(n schema.Node) bool {
	if e.maxNodes > 0 {
		e.nodes++
		if e.overBudget() {
			return true
		}
	}
	return e.stop != nil && e.stop(n)
}
