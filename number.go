package omnitree

import (
	"strconv"
)

// NumberKind tells which variant a Number holds.
type NumberKind uint8

const (
	IntNumber NumberKind = iota
	FloatNumber
)

// Number is a tagged numeric value used for numeric bounds.
// The zero value is the integer 0.
type Number struct {
	Kind  NumberKind
	Int   int64
	Float float64
}

// Int returns an integer Number.
func Int(v int64) Number { return Number{Kind: IntNumber, Int: v} }

// Float returns a floating-point Number.
func Float(v float64) Number { return Number{Kind: FloatNumber, Float: v} }

// Value returns the held value as int64 or float64.
func (n Number) Value() any {
	if n.Kind == FloatNumber {
		return n.Float
	}
	return n.Int
}

// Float64 converts the number to float64.
func (n Number) Float64() float64 {
	if n.Kind == FloatNumber {
		return n.Float
	}
	return float64(n.Int)
}

func (n Number) String() string {
	if n.Kind == FloatNumber {
		return strconv.FormatFloat(n.Float, 'g', -1, 64)
	}
	return strconv.FormatInt(n.Int, 10)
}
