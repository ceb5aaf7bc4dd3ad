// Package jsonwire implements wire.Encoder for JSON.
//
// The encoder keeps one nesting state per open container. The state says
// whether the container is still empty, which decides whether the next token
// is prefixed by a comma and whether the indentation grows:
//
//	top of stack     next token is written as
//	objectStart      "\n" indent+1 "name": value
//	objectElement    ",\n" indent "name": value
//	listStart        "\n" indent+1 value
//	listElement      ",\n" indent value
//	(empty)          value
//
// Compact mode uses the same comma logic without newlines or indentation.
//
// A named container opened inside a list keeps its name by being wrapped in a
// one-key object: ListStart("fields"), ObjectStart("primitive_field") yields
// "fields": [{"primitive_field": {...}}]. The wrapper closes with its
// container. Scalars inside lists stay bare.
package jsonwire

import (
	"bytes"
	"io"
	"strings"

	j "github.com/goccy/go-json"

	omnitree "github.com/reoring/omnitree"
	"github.com/reoring/omnitree/internal/sink"
	"github.com/reoring/omnitree/wire"
)

type state uint8

const (
	objectStart state = iota
	objectElement
	listStart
	listElement
)

func (s state) String() string {
	switch s {
	case objectStart:
		return "empty object"
	case objectElement:
		return "object"
	case listStart:
		return "empty list"
	default:
		return "list"
	}
}

// Encoder writes JSON to an io.Writer. It is not safe for concurrent use and
// must not be shared between traversals.
type Encoder struct {
	out    *sink.Writer
	pretty bool
	step   int
	level  int
	stack  []state
	wraps  []int // stack indexes of wrapper objects
	err    error
}

var _ wire.Encoder = (*Encoder)(nil)

// New returns an Encoder writing to w. Output is buffered and flushed when
// the root container is closed.
func New(w io.Writer, opts wire.Options) *Encoder {
	return &Encoder{
		out:    sink.New(w),
		pretty: opts.PrettyPrint,
		step:   opts.Indent(),
	}
}

// Depth returns the number of open containers.
func (e *Encoder) Depth() int { return len(e.stack) }

// Err returns the first error encountered, if any.
func (e *Encoder) Err() error { return e.err }

// Written returns the number of bytes handed to the underlying writer.
func (e *Encoder) Written() int64 { return e.out.Written() }

// Flush writes buffered output to the underlying writer.
func (e *Encoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	return e.fail(e.out.Flush())
}

func (e *Encoder) ObjectStart(name string) error {
	if err := e.wrap(name); err != nil {
		return err
	}
	if err := e.writeNameValue(name, "{"); err != nil {
		return err
	}
	e.stack = append(e.stack, objectStart)
	return nil
}

func (e *Encoder) ObjectEnd() error {
	return e.end("ObjectEnd", objectStart, objectElement, "}")
}

func (e *Encoder) ListStart(name string) error {
	if err := e.wrap(name); err != nil {
		return err
	}
	if err := e.writeNameValue(name, "["); err != nil {
		return err
	}
	e.stack = append(e.stack, listStart)
	return nil
}

func (e *Encoder) ListEnd() error {
	return e.end("ListEnd", listStart, listElement, "]")
}

func (e *Encoder) StringField(name, value string) error {
	b, err := j.MarshalWithOption(value, j.DisableHTMLEscape())
	if err != nil {
		return e.fail(err)
	}
	return e.scalar(name, string(b))
}

func (e *Encoder) NumericField(name string, value omnitree.Number) error {
	b, err := j.Marshal(value.Value())
	if err != nil {
		return e.fail(err)
	}
	// integral floats keep a fraction so they decode as floats
	if value.Kind == omnitree.FloatNumber && !bytes.ContainsAny(b, ".eE") {
		b = append(b, ".0"...)
	}
	return e.scalar(name, string(b))
}

func (e *Encoder) BooleanField(name string, value bool) error {
	if value {
		return e.scalar(name, "true")
	}
	return e.scalar(name, "false")
}

func (e *Encoder) scalar(name, value string) error {
	if err := e.writeNameValue(name, value); err != nil {
		return err
	}
	e.elementEncoded()
	if len(e.stack) == 0 {
		return e.Flush()
	}
	return nil
}

func (e *Encoder) end(op string, start, element state, closing string) error {
	if e.err != nil {
		return e.err
	}
	n := len(e.stack)
	if n == 0 {
		return e.fail(&omnitree.StructuralError{Op: op})
	}
	switch top := e.stack[n-1]; top {
	case start:
		e.write(closing)
	case element:
		e.newline()
		e.level--
		e.indent()
		e.write(closing)
	default:
		return e.fail(&omnitree.StructuralError{Op: op, Top: top.String()})
	}
	e.stack = e.stack[:n-1]
	e.elementEncoded()
	if k := len(e.wraps); k > 0 && e.wraps[k-1] == len(e.stack)-1 {
		e.wraps = e.wraps[:k-1]
		return e.end(op, objectStart, objectElement, "}")
	}
	if len(e.stack) == 0 {
		return e.Flush()
	}
	return e.fail(e.out.Err())
}

// wrap opens the one-key wrapper object for a named container in a list.
func (e *Encoder) wrap(name string) error {
	if name == "" || !e.inList() {
		return nil
	}
	if err := e.writeNameValue("", "{"); err != nil {
		return err
	}
	e.stack = append(e.stack, objectStart)
	e.wraps = append(e.wraps, len(e.stack)-1)
	return nil
}

func (e *Encoder) inList() bool {
	n := len(e.stack)
	return n > 0 && (e.stack[n-1] == listStart || e.stack[n-1] == listElement)
}

// elementEncoded marks the innermost container as non-empty.
func (e *Encoder) elementEncoded() {
	n := len(e.stack)
	if n == 0 {
		return
	}
	switch e.stack[n-1] {
	case objectStart:
		e.stack[n-1] = objectElement
	case listStart:
		e.stack[n-1] = listElement
	}
}

func (e *Encoder) writeNameValue(name, value string) error {
	if e.err != nil {
		return e.err
	}
	n := len(e.stack)
	if n == 0 {
		e.write(value)
		return e.fail(e.out.Err())
	}
	switch e.stack[n-1] {
	case objectStart:
		e.newline()
		e.level++
		e.indent()
		if err := e.writeName(name); err != nil {
			return err
		}
	case objectElement:
		e.write(",")
		e.newline()
		e.indent()
		if err := e.writeName(name); err != nil {
			return err
		}
	case listStart:
		e.newline()
		e.level++
		e.indent()
	case listElement:
		e.write(",")
		e.newline()
		e.indent()
	}
	e.write(value)
	return e.fail(e.out.Err())
}

func (e *Encoder) writeName(name string) error {
	b, err := j.MarshalWithOption(name, j.DisableHTMLEscape())
	if err != nil {
		return e.fail(err)
	}
	e.write(string(b))
	if e.pretty {
		e.write(": ")
	} else {
		e.write(":")
	}
	return nil
}

func (e *Encoder) newline() {
	if e.pretty {
		e.write("\n")
	}
}

func (e *Encoder) indent() {
	if e.pretty && e.level > 0 {
		e.write(strings.Repeat(" ", e.level*e.step))
	}
}

// write ignores the result: sink errors are sticky and checked once per
// encoder call.
func (e *Encoder) write(s string) { _ = e.out.WriteString(s) }

func (e *Encoder) fail(err error) error {
	if err != nil && e.err == nil {
		e.err = err
	}
	return e.err
}
