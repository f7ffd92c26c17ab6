package ast

import "fmt"

// Visitor handles every node variant. Implementations should assert
// conformance with a blank assignment, e.g. `var _ ast.Visitor[T] = (*x)(nil)`.
type Visitor[T any] interface {
	VisitBinaryOp(*BinaryOp) (T, error)
	VisitUnaryOp(*UnaryOp) (T, error)
	VisitNumberLiteral(*NumberLiteral) (T, error)
	VisitVariable(*Variable) (T, error)
	VisitAssignment(*Assignment) (T, error)
	VisitNoOp(*NoOp) (T, error)
	VisitStatementBlock(*StatementBlock) (T, error)
}

// Visit dispatches node to the matching Visitor method.
func Visit[T any](node Node, v Visitor[T]) (T, error) {
	switch n := node.(type) {
	case *BinaryOp:
		return v.VisitBinaryOp(n)
	case *UnaryOp:
		return v.VisitUnaryOp(n)
	case *NumberLiteral:
		return v.VisitNumberLiteral(n)
	case *Variable:
		return v.VisitVariable(n)
	case *Assignment:
		return v.VisitAssignment(n)
	case *NoOp:
		return v.VisitNoOp(n)
	case *StatementBlock:
		return v.VisitStatementBlock(n)
	default:
		var zero T
		return zero, fmt.Errorf("ast: unsupported node %T", node)
	}
}
