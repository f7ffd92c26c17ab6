// Package runtime holds the values produced by evaluation and the scope that
// binds them to names.
package runtime

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindInteger Kind = iota
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

// IntegerValue is an arbitrary-precision integer.
type IntegerValue struct {
	Val *big.Int
}

func (v IntegerValue) Kind() Kind { return KindInteger }

// FloatValue is an IEEE-754 double, the result of every division.
type FloatValue struct {
	Val float64
}

func (v FloatValue) Kind() Kind { return KindFloat }

func NewInteger(v int64) IntegerValue {
	return IntegerValue{Val: big.NewInt(v)}
}

func NewFloat(v float64) FloatValue {
	return FloatValue{Val: v}
}

// IntegerFrom copies v so later mutation of the source does not leak in.
func IntegerFrom(v *big.Int) IntegerValue {
	return IntegerValue{Val: new(big.Int).Set(v)}
}

// ToFloat converts a numeric value to float64.
func ToFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case IntegerValue:
		f, _ := new(big.Float).SetInt(n.Val).Float64()
		return f, true
	case FloatValue:
		return n.Val, true
	default:
		return 0, false
	}
}

// IsZero reports whether v is numerically zero.
func IsZero(v Value) bool {
	switch n := v.(type) {
	case IntegerValue:
		return n.Val.Sign() == 0
	case FloatValue:
		return n.Val == 0
	default:
		return false
	}
}

// Format renders v the way results are printed: integers in decimal, floats
// in shortest round-trip form with a mandatory fractional part or exponent.
func Format(v Value) string {
	switch n := v.(type) {
	case IntegerValue:
		if n.Val == nil {
			return "0"
		}
		return n.Val.String()
	case FloatValue:
		return formatFloat(n.Val)
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("<%v>", v)
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, _ := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return sci
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
