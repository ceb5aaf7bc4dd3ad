// Package yamlwire implements wire.Encoder for YAML on top of gopkg.in/yaml.v3.
//
// The encoder builds a yaml.Node tree while containers are open and writes
// one YAML document each time a root container is closed. Pretty mode uses
// block style with the configured indent; compact mode uses flow style.
//
// As in JSON, a named container inside a sequence is wrapped in a one-key
// mapping so its name survives.
package yamlwire

import (
	"fmt"
	"io"
	"math"
	"strings"

	"gopkg.in/yaml.v3"

	omnitree "github.com/reoring/omnitree"
	"github.com/reoring/omnitree/internal/sink"
	"github.com/reoring/omnitree/wire"
)

// Encoder writes YAML documents to an io.Writer. It is not safe for
// concurrent use.
type Encoder struct {
	out    *sink.Writer
	flow   bool
	indent int
	stack  []*yaml.Node
	root   *yaml.Node
	docs   int
	err    error
}

var _ wire.Encoder = (*Encoder)(nil)

// New returns an Encoder writing to w.
func New(w io.Writer, opts wire.Options) *Encoder {
	return &Encoder{
		out:    sink.New(w),
		flow:   !opts.PrettyPrint,
		indent: opts.Indent(),
	}
}

// Err returns the first error encountered, if any.
func (e *Encoder) Err() error { return e.err }

// Written returns the number of bytes handed to the underlying writer.
func (e *Encoder) Written() int64 { return e.out.Written() }

func (e *Encoder) ObjectStart(name string) error {
	return e.open(name, yaml.MappingNode, "!!map")
}

func (e *Encoder) ObjectEnd() error { return e.close("ObjectEnd", yaml.MappingNode) }

func (e *Encoder) ListStart(name string) error {
	return e.open(name, yaml.SequenceNode, "!!seq")
}

func (e *Encoder) ListEnd() error { return e.close("ListEnd", yaml.SequenceNode) }

func (e *Encoder) StringField(name, value string) error {
	return e.scalar(name, "!!str", value)
}

func (e *Encoder) NumericField(name string, value omnitree.Number) error {
	if value.Kind != omnitree.FloatNumber {
		return e.scalar(name, "!!int", value.String())
	}
	if math.IsNaN(value.Float) || math.IsInf(value.Float, 0) {
		return e.fail(fmt.Errorf("yamlwire: unsupported value %v", value.Float))
	}
	s := value.String()
	// keep integral floats resolvable as floats without an explicit tag
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return e.scalar(name, "!!float", s)
}

func (e *Encoder) BooleanField(name string, value bool) error {
	v := "false"
	if value {
		v = "true"
	}
	return e.scalar(name, "!!bool", v)
}

func (e *Encoder) open(name string, kind yaml.Kind, tag string) error {
	if e.err != nil {
		return e.err
	}
	n := e.container(kind, tag)
	if name != "" && e.inSequence() {
		w := e.container(yaml.MappingNode, "!!map")
		w.Content = []*yaml.Node{{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}, n}
		e.attach("", w)
	} else {
		e.attach(name, n)
	}
	e.stack = append(e.stack, n)
	return nil
}

func (e *Encoder) container(kind yaml.Kind, tag string) *yaml.Node {
	n := &yaml.Node{Kind: kind, Tag: tag}
	if e.flow {
		n.Style = yaml.FlowStyle
	}
	return n
}

func (e *Encoder) inSequence() bool {
	return len(e.stack) > 0 && e.stack[len(e.stack)-1].Kind == yaml.SequenceNode
}

func (e *Encoder) close(op string, kind yaml.Kind) error {
	if e.err != nil {
		return e.err
	}
	n := len(e.stack)
	if n == 0 {
		return e.fail(&omnitree.StructuralError{Op: op})
	}
	top := e.stack[n-1]
	if top.Kind != kind {
		return e.fail(&omnitree.StructuralError{Op: op, Top: describe(top)})
	}
	e.stack = e.stack[:n-1]
	if len(e.stack) == 0 {
		return e.emit(e.root)
	}
	return nil
}

func (e *Encoder) scalar(name, tag, value string) error {
	if e.err != nil {
		return e.err
	}
	n := &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
	if len(e.stack) == 0 {
		return e.emit(n)
	}
	e.attach(name, n)
	return nil
}

func (e *Encoder) attach(name string, n *yaml.Node) {
	if len(e.stack) == 0 {
		e.root = n
		return
	}
	parent := e.stack[len(e.stack)-1]
	if parent.Kind == yaml.MappingNode {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}
		parent.Content = append(parent.Content, key, n)
		return
	}
	parent.Content = append(parent.Content, n)
}

func (e *Encoder) emit(doc *yaml.Node) error {
	if e.docs > 0 {
		_ = e.out.WriteString("---\n")
	}
	e.docs++
	enc := yaml.NewEncoder(e.out)
	enc.SetIndent(e.indent)
	if err := enc.Encode(doc); err != nil {
		return e.fail(err)
	}
	if err := enc.Close(); err != nil {
		return e.fail(err)
	}
	e.root = nil
	return e.fail(e.out.Flush())
}

func (e *Encoder) fail(err error) error {
	if err != nil && e.err == nil {
		e.err = err
	}
	return e.err
}

func describe(n *yaml.Node) string {
	switch {
	case n.Kind == yaml.MappingNode && len(n.Content) == 0:
		return "empty object"
	case n.Kind == yaml.MappingNode:
		return "object"
	case len(n.Content) == 0:
		return "empty list"
	default:
		return "list"
	}
}
