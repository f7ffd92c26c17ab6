// Package parser builds spi ASTs with a recursive-descent parser.
//
// Grammar, loosest binding first:
//
//	program              := statement_block
//	statement_block      := statement (statement)*
//	statement            := assignment_statement | empty
//	assignment_statement := variable ASSIGN expr
//	expr                 := term ((PLUS | MINUS) term)*
//	term                 := factor ((MUL | DIV) factor)*
//	factor               := (PLUS | MINUS) factor | INTEGER | LPAREN expr RPAREN | variable
//	variable             := IDENTIFIER
//
// A further statement is parsed only while the lookahead is an IDENTIFIER.
// Between statements any run of STATEMENT_SEPARATOR tokens is consumed unless
// the parser runs with WithLegacySeparators, in which case a separator is left
// in place and rejected as a trailing token. Separators before the first
// statement do not leave an empty statement behind.
package parser

import (
	"github.com/amazingcoderpro/simple-interpreter/pkg/ast"
	"github.com/amazingcoderpro/simple-interpreter/pkg/errs"
	"github.com/amazingcoderpro/simple-interpreter/pkg/lexer"
	"github.com/amazingcoderpro/simple-interpreter/pkg/token"
)

// TokenSource yields tokens one at a time. *lexer.Lexer satisfies it.
type TokenSource interface {
	Advance() (token.Token, error)
}

// Option configures a Parser.
type Option func(*Parser)

// WithLegacySeparators disables consumption of STATEMENT_SEPARATOR tokens.
func WithLegacySeparators() Option {
	return func(p *Parser) { p.legacySeparators = true }
}

// Parser turns a token stream into an AST using one token of lookahead.
type Parser struct {
	src TokenSource
	cur token.Token

	legacySeparators bool
}

// New primes the parser with the first token of src.
func New(src TokenSource, opts ...Option) (*Parser, error) {
	p := &Parser{src: src}
	for _, opt := range opts {
		opt(p)
	}
	tok, err := src.Advance()
	if err != nil {
		return nil, err
	}
	p.cur = tok
	return p, nil
}

// ParseProgram tokenizes and parses a complete program.
func ParseProgram(src string, opts ...Option) (*ast.StatementBlock, error) {
	p, err := New(lexer.New(src), opts...)
	if err != nil {
		return nil, err
	}
	return p.Parse()
}

// ParseExpression parses src as a single expression.
func ParseExpression(src string) (ast.Node, error) {
	p, err := New(lexer.New(src))
	if err != nil {
		return nil, err
	}
	return p.ParseExpression()
}

// Parse consumes the whole token stream and returns the program. On error no
// tree is returned.
func (p *Parser) Parse() (*ast.StatementBlock, error) {
	block, err := p.statementBlock()
	if err != nil {
		return nil, err
	}
	if err := p.expectEnd(); err != nil {
		return nil, err
	}
	return block, nil
}

// ParseExpression consumes the token stream as one expression.
func (p *Parser) ParseExpression() (ast.Node, error) {
	node, err := p.expr()
	if err != nil {
		return nil, err
	}
	if err := p.expectEnd(); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *Parser) expectEnd() error {
	if p.cur.Kind != token.END_OF_INPUT {
		return errs.SyntaxError.Errorf("unexpected %s, expected end of input", describe(p.cur)).At(p.cur)
	}
	return nil
}

// eat consumes the current token if it has the expected kind.
func (p *Parser) eat(kind token.Kind) (token.Token, error) {
	tok := p.cur
	if tok.Kind != kind {
		return token.Token{}, errs.SyntaxError.Errorf("expected %s, found %s", kind, describe(tok)).At(tok)
	}
	next, err := p.src.Advance()
	if err != nil {
		return token.Token{}, err
	}
	p.cur = next
	return tok, nil
}

func (p *Parser) statementBlock() (*ast.StatementBlock, error) {
	first, err := p.statement()
	if err != nil {
		return nil, err
	}
	statements := []ast.Node{first}
	for {
		if !p.legacySeparators {
			if err := p.skipSeparators(); err != nil {
				return nil, err
			}
		}
		if p.cur.Kind != token.IDENTIFIER {
			break
		}
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		// leading separators leave an empty first statement behind
		if _, empty := statements[0].(*ast.NoOp); empty && len(statements) == 1 {
			statements = statements[:0]
		}
		statements = append(statements, stmt)
	}
	return ast.NewStatementBlock(statements), nil
}

func (p *Parser) skipSeparators() error {
	for p.cur.Kind == token.STATEMENT_SEPARATOR {
		if _, err := p.eat(token.STATEMENT_SEPARATOR); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) statement() (ast.Node, error) {
	if p.cur.Kind == token.IDENTIFIER {
		return p.assignmentStatement()
	}
	return &ast.NoOp{}, nil
}

func (p *Parser) assignmentStatement() (ast.Node, error) {
	target, err := p.variable()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.expr()
	if err != nil {
		return nil, err
	}
	assign, err := ast.NewAssignment(target, value)
	if err != nil {
		return nil, err
	}
	return assign, nil
}

func (p *Parser) expr() (ast.Node, error) {
	node, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == token.PLUS || p.cur.Kind == token.MINUS {
		op, err := p.eat(p.cur.Kind)
		if err != nil {
			return nil, err
		}
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		if node, err = ast.NewBinaryOp(node, operatorFor(op.Kind), right); err != nil {
			return nil, err
		}
	}
	return node, nil
}

func (p *Parser) term() (ast.Node, error) {
	node, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == token.MUL || p.cur.Kind == token.DIV {
		op, err := p.eat(p.cur.Kind)
		if err != nil {
			return nil, err
		}
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		if node, err = ast.NewBinaryOp(node, operatorFor(op.Kind), right); err != nil {
			return nil, err
		}
	}
	return node, nil
}

func (p *Parser) factor() (ast.Node, error) {
	switch p.cur.Kind {
	case token.PLUS, token.MINUS:
		op, err := p.eat(p.cur.Kind)
		if err != nil {
			return nil, err
		}
		operand, err := p.factor()
		if err != nil {
			return nil, err
		}
		unary, err := ast.NewUnaryOp(operatorFor(op.Kind), operand)
		if err != nil {
			return nil, err
		}
		return unary, nil
	case token.INTEGER:
		tok, err := p.eat(token.INTEGER)
		if err != nil {
			return nil, err
		}
		value, ok := tok.Integer()
		if !ok {
			return nil, errs.SyntaxError.Errorf("integer token %q carries no value", tok.Lexeme).At(tok)
		}
		return ast.NewNumberLiteral(value), nil
	case token.LPAREN:
		if _, err := p.eat(token.LPAREN); err != nil {
			return nil, err
		}
		node, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.eat(token.RPAREN); err != nil {
			return nil, err
		}
		return node, nil
	default:
		v, err := p.variable()
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

func (p *Parser) variable() (*ast.Variable, error) {
	tok, err := p.eat(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	name, _ := tok.Name()
	return ast.NewVariable(name), nil
}

func operatorFor(kind token.Kind) ast.Operator {
	switch kind {
	case token.PLUS:
		return ast.OpAdd
	case token.MINUS:
		return ast.OpSub
	case token.MUL:
		return ast.OpMul
	case token.DIV:
		return ast.OpDiv
	default:
		return ast.Operator(kind.String())
	}
}

func describe(tok token.Token) string {
	if tok.Lexeme == "" {
		return tok.Kind.String()
	}
	return tok.Kind.String() + " " + `"` + tok.Lexeme + `"`
}
