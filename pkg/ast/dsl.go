package ast

import (
	"fmt"
	"math/big"
)

// Builders for fixtures and tests. They panic on malformed input.

func Num(value int64) *NumberLiteral {
	return &NumberLiteral{Value: big.NewInt(value)}
}

func NumBig(value *big.Int) *NumberLiteral {
	return NewNumberLiteral(value)
}

func Var(name string) *Variable {
	return NewVariable(name)
}

func Bin(op string, left, right Node) *BinaryOp {
	node, err := NewBinaryOp(left, Operator(op), right)
	if err != nil {
		panic(err)
	}
	return node
}

func Un(op string, operand Node) *UnaryOp {
	node, err := NewUnaryOp(Operator(op), operand)
	if err != nil {
		panic(err)
	}
	return node
}

func Neg(operand Node) *UnaryOp { return Un("-", operand) }

func Pos(operand Node) *UnaryOp { return Un("+", operand) }

func Assign(name string, value Node) *Assignment {
	node, err := NewAssignment(Var(name), value)
	if err != nil {
		panic(fmt.Sprintf("ast.Assign: %v", err))
	}
	return node
}

func Nop() *NoOp { return &NoOp{} }

func Block(statements ...Node) *StatementBlock {
	return NewStatementBlock(statements)
}
