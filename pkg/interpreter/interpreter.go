package interpreter

import (
	"github.com/amazingcoderpro/simple-interpreter/pkg/ast"
	"github.com/amazingcoderpro/simple-interpreter/pkg/errs"
	"github.com/amazingcoderpro/simple-interpreter/pkg/parser"
	"github.com/amazingcoderpro/simple-interpreter/pkg/runtime"
)

// Interpreter walks ASTs against a single scope.
type Interpreter struct {
	scope *runtime.Scope
}

var _ ast.Visitor[runtime.Value] = (*Interpreter)(nil)

// New returns an interpreter bound to scope. A nil scope starts a fresh one.
func New(scope *runtime.Scope) *Interpreter {
	if scope == nil {
		scope = runtime.NewScope()
	}
	return &Interpreter{scope: scope}
}

// Scope returns the scope the interpreter writes to.
func (i *Interpreter) Scope() *runtime.Scope {
	return i.scope
}

// Interpret executes node for its effect on the scope.
func (i *Interpreter) Interpret(node ast.Node) error {
	_, err := ast.Visit[runtime.Value](node, i)
	return err
}

// Evaluate computes the value of an expression node. Statements evaluate to nil.
func (i *Interpreter) Evaluate(node ast.Node) (runtime.Value, error) {
	return ast.Visit[runtime.Value](node, i)
}

// Run parses src and executes it against a fresh scope.
func Run(src string, opts ...parser.Option) (*runtime.Scope, error) {
	program, err := parser.ParseProgram(src, opts...)
	if err != nil {
		return nil, err
	}
	interp := New(nil)
	if err := interp.Interpret(program); err != nil {
		return nil, err
	}
	return interp.Scope(), nil
}

func (i *Interpreter) VisitBinaryOp(n *ast.BinaryOp) (runtime.Value, error) {
	left, err := i.Evaluate(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.Evaluate(n.Right)
	if err != nil {
		return nil, err
	}
	return applyBinary(n.Operator, left, right)
}

func (i *Interpreter) VisitUnaryOp(n *ast.UnaryOp) (runtime.Value, error) {
	operand, err := i.Evaluate(n.Operand)
	if err != nil {
		return nil, err
	}
	return applyUnary(n.Operator, operand)
}

func (i *Interpreter) VisitNumberLiteral(n *ast.NumberLiteral) (runtime.Value, error) {
	return runtime.IntegerFrom(n.Value), nil
}

func (i *Interpreter) VisitVariable(n *ast.Variable) (runtime.Value, error) {
	value, ok := i.scope.Lookup(n.Name)
	if !ok {
		return nil, errs.NameError.Errorf("name '%s' is not defined", n.Name).For(n.Name)
	}
	return value, nil
}

func (i *Interpreter) VisitAssignment(n *ast.Assignment) (runtime.Value, error) {
	value, err := i.Evaluate(n.Value)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, errs.Unknown.Errorf("assignment to '%s' produced no value", n.Target.Name).For(n.Target.Name)
	}
	i.scope.Define(n.Target.Name, value)
	return nil, nil
}

func (i *Interpreter) VisitNoOp(*ast.NoOp) (runtime.Value, error) {
	return nil, nil
}

func (i *Interpreter) VisitStatementBlock(n *ast.StatementBlock) (runtime.Value, error) {
	for _, stmt := range n.Statements {
		if err := i.Interpret(stmt); err != nil {
			return nil, err
		}
	}
	return nil, nil
}
