package interpreter

import (
	"fmt"
	"math"
	"math/big"

	"github.com/amazingcoderpro/simple-interpreter/pkg/ast"
	"github.com/amazingcoderpro/simple-interpreter/pkg/errs"
	"github.com/amazingcoderpro/simple-interpreter/pkg/runtime"
)

// divisionPrecision is the mantissa width used for the exact quotient before
// it is rounded to float64.
const divisionPrecision = 256

func applyBinary(op ast.Operator, left, right runtime.Value) (runtime.Value, error) {
	if op == ast.OpDiv {
		return divide(left, right)
	}
	li, lInt := left.(runtime.IntegerValue)
	ri, rInt := right.(runtime.IntegerValue)
	if lInt && rInt {
		out := new(big.Int)
		switch op {
		case ast.OpAdd:
			out.Add(li.Val, ri.Val)
		case ast.OpSub:
			out.Sub(li.Val, ri.Val)
		case ast.OpMul:
			out.Mul(li.Val, ri.Val)
		default:
			return nil, fmt.Errorf("unsupported binary operator %q", op)
		}
		return runtime.IntegerValue{Val: out}, nil
	}

	lf, rf, err := floatOperands(op, left, right)
	if err != nil {
		return nil, err
	}
	switch op {
	case ast.OpAdd:
		return runtime.NewFloat(lf + rf), nil
	case ast.OpSub:
		return runtime.NewFloat(lf - rf), nil
	case ast.OpMul:
		return runtime.NewFloat(lf * rf), nil
	default:
		return nil, fmt.Errorf("unsupported binary operator %q", op)
	}
}

// divide is true division: the result is always a float.
func divide(left, right runtime.Value) (runtime.Value, error) {
	if runtime.IsZero(right) {
		return nil, errs.ArithmeticError.New("division by zero")
	}
	li, lInt := left.(runtime.IntegerValue)
	ri, rInt := right.(runtime.IntegerValue)
	if lInt && rInt {
		num := new(big.Float).SetPrec(divisionPrecision).SetInt(li.Val)
		den := new(big.Float).SetPrec(divisionPrecision).SetInt(ri.Val)
		q, _ := new(big.Float).SetPrec(divisionPrecision).Quo(num, den).Float64()
		if math.IsInf(q, 0) {
			return nil, errs.ArithmeticError.New("integer division result too large for a float")
		}
		return runtime.NewFloat(q), nil
	}
	lf, rf, err := floatOperands(ast.OpDiv, left, right)
	if err != nil {
		return nil, err
	}
	return runtime.NewFloat(lf / rf), nil
}

// floatOperands converts both operands for mixed arithmetic. An integer
// outside the float64 range is an error rather than an infinity.
func floatOperands(op ast.Operator, left, right runtime.Value) (float64, float64, error) {
	lf, err := toFloat(op, left)
	if err != nil {
		return 0, 0, err
	}
	rf, err := toFloat(op, right)
	if err != nil {
		return 0, 0, err
	}
	return lf, rf, nil
}

func toFloat(op ast.Operator, v runtime.Value) (float64, error) {
	f, ok := runtime.ToFloat(v)
	if !ok {
		return 0, fmt.Errorf("unsupported operand %v for %q", v, op)
	}
	if _, isInt := v.(runtime.IntegerValue); isInt && math.IsInf(f, 0) {
		return 0, errs.ArithmeticError.New("integer too large to convert to float")
	}
	return f, nil
}

func applyUnary(op ast.Operator, operand runtime.Value) (runtime.Value, error) {
	switch v := operand.(type) {
	case runtime.IntegerValue:
		switch op {
		case ast.OpAdd:
			return v, nil
		case ast.OpSub:
			return runtime.IntegerValue{Val: new(big.Int).Neg(v.Val)}, nil
		}
	case runtime.FloatValue:
		switch op {
		case ast.OpAdd:
			return v, nil
		case ast.OpSub:
			return runtime.NewFloat(-v.Val), nil
		}
	default:
		return nil, fmt.Errorf("unsupported operand %v for unary %q", operand, op)
	}
	return nil, fmt.Errorf("unsupported unary operator %q", op)
}
