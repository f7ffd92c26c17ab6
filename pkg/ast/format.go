package ast

import "strings"

// Format renders node as spi source. Binary and unary expressions are fully
// parenthesised, so parsing the result yields the same tree.
func Format(node Node) string {
	out, err := Visit[string](node, formatter{})
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return out
}

type formatter struct{}

var _ Visitor[string] = formatter{}

func (f formatter) VisitBinaryOp(n *BinaryOp) (string, error) {
	return "(" + Format(n.Left) + " " + string(n.Operator) + " " + Format(n.Right) + ")", nil
}

func (f formatter) VisitUnaryOp(n *UnaryOp) (string, error) {
	return "(" + string(n.Operator) + Format(n.Operand) + ")", nil
}

func (f formatter) VisitNumberLiteral(n *NumberLiteral) (string, error) {
	if n.Value == nil {
		return "0", nil
	}
	return n.Value.String(), nil
}

func (f formatter) VisitVariable(n *Variable) (string, error) {
	return n.Name, nil
}

func (f formatter) VisitAssignment(n *Assignment) (string, error) {
	return n.Target.Name + " = " + Format(n.Value), nil
}

func (f formatter) VisitNoOp(*NoOp) (string, error) {
	return "", nil
}

func (f formatter) VisitStatementBlock(n *StatementBlock) (string, error) {
	lines := make([]string, 0, len(n.Statements))
	for _, stmt := range n.Statements {
		if line := Format(stmt); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), nil
}

func (n *BinaryOp) String() string       { return Format(n) }
func (n *UnaryOp) String() string        { return Format(n) }
func (n *NumberLiteral) String() string  { return Format(n) }
func (n *Variable) String() string       { return Format(n) }
func (n *Assignment) String() string     { return Format(n) }
func (n *StatementBlock) String() string { return Format(n) }
