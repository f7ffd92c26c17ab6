// Package ast defines the abstract syntax tree for spi programs.
//
// The node set is closed: Node carries an unexported marker method, so only
// the variants declared here satisfy it. Consumers dispatch through Visit and
// the Visitor interface, which has one method per variant; adding a variant
// therefore fails compilation of every consumer until it is handled.
package ast

import (
	"fmt"
	"math/big"
)

// NodeType names a node variant; it is the JSON discriminator.
type NodeType string

const (
	NodeBinaryOp       NodeType = "BinaryOp"
	NodeUnaryOp        NodeType = "UnaryOp"
	NodeNumberLiteral  NodeType = "NumberLiteral"
	NodeVariable       NodeType = "Variable"
	NodeAssignment     NodeType = "Assignment"
	NodeNoOp           NodeType = "NoOp"
	NodeStatementBlock NodeType = "StatementBlock"
)

// Node is any element of the tree.
type Node interface {
	NodeType() NodeType
	isNode()
}

// Operator is an arithmetic operator symbol.
type Operator string

const (
	OpAdd Operator = "+"
	OpSub Operator = "-"
	OpMul Operator = "*"
	OpDiv Operator = "/"
)

// Binary reports whether o may appear in a BinaryOp.
func (o Operator) Binary() bool {
	switch o {
	case OpAdd, OpSub, OpMul, OpDiv:
		return true
	}
	return false
}

// Unary reports whether o may appear in a UnaryOp.
func (o Operator) Unary() bool {
	return o == OpAdd || o == OpSub
}

// BinaryOp applies one of the four arithmetic operators to two operands.
type BinaryOp struct {
	Left     Node     `json:"left"`
	Operator Operator `json:"operator"`
	Right    Node     `json:"right"`
}

// NewBinaryOp builds a binary node, rejecting operators outside + - * /.
func NewBinaryOp(left Node, op Operator, right Node) (*BinaryOp, error) {
	if !op.Binary() {
		return nil, fmt.Errorf("ast: invalid binary operator %q", op)
	}
	if left == nil || right == nil {
		return nil, fmt.Errorf("ast: binary operator %q requires two operands", op)
	}
	return &BinaryOp{Left: left, Operator: op, Right: right}, nil
}

// UnaryOp applies + or - to a single operand.
type UnaryOp struct {
	Operator Operator `json:"operator"`
	Operand  Node     `json:"operand"`
}

// NewUnaryOp builds a unary node, rejecting operators other than + and -.
func NewUnaryOp(op Operator, operand Node) (*UnaryOp, error) {
	if !op.Unary() {
		return nil, fmt.Errorf("ast: invalid unary operator %q", op)
	}
	if operand == nil {
		return nil, fmt.Errorf("ast: unary operator %q requires an operand", op)
	}
	return &UnaryOp{Operator: op, Operand: operand}, nil
}

// NumberLiteral is an integer literal of any size.
type NumberLiteral struct {
	Value *big.Int `json:"value"`
}

func NewNumberLiteral(value *big.Int) *NumberLiteral {
	return &NumberLiteral{Value: new(big.Int).Set(value)}
}

// Variable is a reference to a named binding.
type Variable struct {
	Name string `json:"name"`
}

func NewVariable(name string) *Variable {
	return &Variable{Name: name}
}

// Assignment binds the value of an expression to a plain variable.
type Assignment struct {
	Target *Variable `json:"target"`
	Value  Node      `json:"value"`
}

func NewAssignment(target *Variable, value Node) (*Assignment, error) {
	if target == nil {
		return nil, fmt.Errorf("ast: assignment requires a target variable")
	}
	if value == nil {
		return nil, fmt.Errorf("ast: assignment to %q requires a value", target.Name)
	}
	return &Assignment{Target: target, Value: value}, nil
}

// NoOp is the empty statement.
type NoOp struct{}

// StatementBlock is a program: statements run in order.
type StatementBlock struct {
	Statements []Node `json:"statements"`
}

func NewStatementBlock(statements []Node) *StatementBlock {
	return &StatementBlock{Statements: statements}
}

func (*BinaryOp) NodeType() NodeType       { return NodeBinaryOp }
func (*UnaryOp) NodeType() NodeType        { return NodeUnaryOp }
func (*NumberLiteral) NodeType() NodeType  { return NodeNumberLiteral }
func (*Variable) NodeType() NodeType       { return NodeVariable }
func (*Assignment) NodeType() NodeType     { return NodeAssignment }
func (*NoOp) NodeType() NodeType           { return NodeNoOp }
func (*StatementBlock) NodeType() NodeType { return NodeStatementBlock }

func (*BinaryOp) isNode()       {}
func (*UnaryOp) isNode()        {}
func (*NumberLiteral) isNode()  {}
func (*Variable) isNode()       {}
func (*Assignment) isNode()     {}
func (*NoOp) isNode()           {}
func (*StatementBlock) isNode() {}
