package typechecker

import (
	"github.com/amazingcoderpro/simple-interpreter/pkg/ast"
	"github.com/amazingcoderpro/simple-interpreter/pkg/errs"
)

// Diagnostic is a problem found by the checker.
type Diagnostic struct {
	Kind    errs.Kind
	Name    string
	Message string
}

func (d Diagnostic) Error() string { return d.Message }

// Err converts the diagnostic into a pipeline error of the same kind.
func (d Diagnostic) Err() error {
	return d.Kind.New(d.Message).For(d.Name)
}

// Checker infers variable types and detects reads of undefined names.
type Checker struct {
	table    *SymbolTable
	diags    []Diagnostic
	reported map[string]struct{}
}

var _ ast.Visitor[*BuiltinTypeSymbol] = (*Checker)(nil)

func New() *Checker {
	return &Checker{}
}

// Check walks program in evaluation order. Each undefined name is reported
// once, at its first use.
func (c *Checker) Check(program *ast.StatementBlock) (*SymbolTable, []Diagnostic) {
	return c.CheckIn(NewSymbolTable(), program)
}

// CheckIn is Check against a table that may already hold variables, such as
// the names bound by earlier programs in the same session. The table is
// updated in place.
func (c *Checker) CheckIn(table *SymbolTable, program *ast.StatementBlock) (*SymbolTable, []Diagnostic) {
	if table == nil {
		table = NewSymbolTable()
	}
	c.table = table
	c.diags = nil
	c.reported = make(map[string]struct{})
	if program != nil {
		if _, err := ast.Visit[*BuiltinTypeSymbol](program, c); err != nil {
			c.diags = append(c.diags, Diagnostic{Kind: errs.Unknown, Message: err.Error()})
		}
	}
	return c.table, c.diags
}

// Check runs a fresh Checker over program.
func Check(program *ast.StatementBlock) (*SymbolTable, []Diagnostic) {
	return New().Check(program)
}

func (c *Checker) VisitBinaryOp(n *ast.BinaryOp) (*BuiltinTypeSymbol, error) {
	left, err := ast.Visit[*BuiltinTypeSymbol](n.Left, c)
	if err != nil {
		return nil, err
	}
	right, err := ast.Visit[*BuiltinTypeSymbol](n.Right, c)
	if err != nil {
		return nil, err
	}
	switch {
	case n.Operator == ast.OpDiv:
		return Float, nil
	case left == nil || right == nil:
		return nil, nil
	case left == Float || right == Float:
		return Float, nil
	default:
		return Integer, nil
	}
}

func (c *Checker) VisitUnaryOp(n *ast.UnaryOp) (*BuiltinTypeSymbol, error) {
	return ast.Visit[*BuiltinTypeSymbol](n.Operand, c)
}

func (c *Checker) VisitNumberLiteral(*ast.NumberLiteral) (*BuiltinTypeSymbol, error) {
	return Integer, nil
}

func (c *Checker) VisitVariable(n *ast.Variable) (*BuiltinTypeSymbol, error) {
	if v, ok := c.table.LookupVar(n.Name); ok {
		return v.Type, nil
	}
	if _, seen := c.reported[n.Name]; !seen {
		c.reported[n.Name] = struct{}{}
		c.diags = append(c.diags, Diagnostic{
			Kind:    errs.NameError,
			Name:    n.Name,
			Message: "name '" + n.Name + "' is used before assignment",
		})
	}
	return nil, nil
}

func (c *Checker) VisitAssignment(n *ast.Assignment) (*BuiltinTypeSymbol, error) {
	typ, err := ast.Visit[*BuiltinTypeSymbol](n.Value, c)
	if err != nil {
		return nil, err
	}
	c.table.Define(&VarSymbol{Name: n.Target.Name, Type: typ})
	return nil, nil
}

func (c *Checker) VisitNoOp(*ast.NoOp) (*BuiltinTypeSymbol, error) {
	return nil, nil
}

func (c *Checker) VisitStatementBlock(n *ast.StatementBlock) (*BuiltinTypeSymbol, error) {
	for _, stmt := range n.Statements {
		if _, err := ast.Visit[*BuiltinTypeSymbol](stmt, c); err != nil {
			return nil, err
		}
	}
	return nil, nil
}
