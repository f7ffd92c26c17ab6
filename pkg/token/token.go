// Package token defines the lexical tokens produced by the spi lexer.
package token

import (
	"fmt"
	"math/big"
)

// Kind identifies the lexical category of a token.
type Kind int

const (
	ILLEGAL Kind = iota

	INTEGER
	PLUS
	MINUS
	MUL
	DIV
	LPAREN
	RPAREN
	IDENTIFIER
	ASSIGN
	STATEMENT_SEPARATOR
	END_OF_INPUT
)

var kindNames = [...]string{
	ILLEGAL:             "ILLEGAL",
	INTEGER:             "INTEGER",
	PLUS:                "PLUS",
	MINUS:               "MINUS",
	MUL:                 "MUL",
	DIV:                 "DIV",
	LPAREN:              "LPAREN",
	RPAREN:              "RPAREN",
	IDENTIFIER:          "IDENTIFIER",
	ASSIGN:              "ASSIGN",
	STATEMENT_SEPARATOR: "STATEMENT_SEPARATOR",
	END_OF_INPUT:        "END_OF_INPUT",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText renders the kind by name so token dumps stay readable.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Position is a location in source text. Line and Column are 1-based.
type Position struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical unit.
//
// Value holds a *big.Int for INTEGER tokens, the name for IDENTIFIER tokens,
// and nil for every other kind.
type Token struct {
	Kind   Kind     `json:"kind"`
	Lexeme string   `json:"lexeme"`
	Value  any      `json:"value,omitempty"`
	Pos    Position `json:"pos"`
}

// Integer returns the parsed value of an INTEGER token.
func (t Token) Integer() (*big.Int, bool) {
	if t.Kind != INTEGER {
		return nil, false
	}
	v, ok := t.Value.(*big.Int)
	return v, ok && v != nil
}

// Name returns the identifier text of an IDENTIFIER token.
func (t Token) Name() (string, bool) {
	if t.Kind != IDENTIFIER {
		return "", false
	}
	s, ok := t.Value.(string)
	return s, ok
}

func (t Token) String() string {
	switch v := t.Value.(type) {
	case *big.Int:
		return fmt.Sprintf("Token(%s, %s)", t.Kind, v.String())
	case string:
		return fmt.Sprintf("Token(%s, %q)", t.Kind, v)
	default:
		if t.Lexeme != "" {
			return fmt.Sprintf("Token(%s, %q)", t.Kind, t.Lexeme)
		}
		return fmt.Sprintf("Token(%s)", t.Kind)
	}
}
