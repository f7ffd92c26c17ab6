// Package lexer turns spi source text into a pull-based stream of tokens.
//
// The lexer is single pass and never backtracks. Whitespace, newlines
// included, separates tokens and is otherwise discarded; the two-character
// escape `\n` is the only explicit statement separator.
package lexer

import (
	"math/big"
	"unicode"
	"unicode/utf8"

	"github.com/amazingcoderpro/simple-interpreter/pkg/errs"
	"github.com/amazingcoderpro/simple-interpreter/pkg/token"
)

const eof = -1

var singles = map[rune]token.Kind{
	'+': token.PLUS,
	'-': token.MINUS,
	'*': token.MUL,
	'/': token.DIV,
	'(': token.LPAREN,
	')': token.RPAREN,
	'=': token.ASSIGN,
}

// Lexer holds the cursor state for one source text.
type Lexer struct {
	src string

	// pos is the byte offset of ch; width is its encoded length.
	pos   int
	width int
	line  int
	col   int

	ch rune // current character; eof past the end
}

// New creates a lexer positioned at the start of src.
func New(src string) *Lexer {
	l := &Lexer{src: src, line: 1, col: 1}
	l.load()
	return l
}

func (l *Lexer) load() {
	if l.pos >= len(l.src) {
		l.ch, l.width = eof, 0
		return
	}
	l.ch, l.width = utf8.DecodeRuneInString(l.src[l.pos:])
}

func (l *Lexer) advance() {
	if l.ch == eof {
		return
	}
	if l.ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos += l.width
	l.load()
}

func (l *Lexer) peek() rune {
	next := l.pos + l.width
	if next >= len(l.src) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(l.src[next:])
	return r
}

func (l *Lexer) position() token.Position {
	return token.Position{Offset: l.pos, Line: l.line, Column: l.col}
}

func (l *Lexer) skipWhitespace() {
	for l.ch != eof && unicode.IsSpace(l.ch) {
		l.advance()
	}
}

// Advance returns the next token. Once the input is exhausted every call
// returns END_OF_INPUT.
func (l *Lexer) Advance() (token.Token, error) {
	l.skipWhitespace()
	pos := l.position()

	switch {
	case l.ch == eof:
		return token.Token{Kind: token.END_OF_INPUT, Pos: pos}, nil
	case isDigit(l.ch):
		return l.integer(pos), nil
	case unicode.IsLetter(l.ch):
		return l.identifier(pos)
	case l.ch == '\\' && l.peek() == 'n':
		l.advance()
		l.advance()
		return token.Token{Kind: token.STATEMENT_SEPARATOR, Lexeme: `\n`, Pos: pos}, nil
	}

	if kind, ok := singles[l.ch]; ok {
		lexeme := string(l.ch)
		l.advance()
		return token.Token{Kind: kind, Lexeme: lexeme, Pos: pos}, nil
	}

	bad := token.Token{Kind: token.ILLEGAL, Lexeme: string(l.ch), Pos: pos}
	return token.Token{}, errs.LexicalError.New("invalid syntax").At(bad)
}

func (l *Lexer) integer(pos token.Position) token.Token {
	start := l.pos
	for isDigit(l.ch) {
		l.advance()
	}
	lexeme := l.src[start:l.pos]
	value, _ := new(big.Int).SetString(lexeme, 10)
	return token.Token{Kind: token.INTEGER, Lexeme: lexeme, Value: value, Pos: pos}
}

func (l *Lexer) identifier(pos token.Position) (token.Token, error) {
	start := l.pos
	for l.ch != eof && (unicode.IsLetter(l.ch) || unicode.IsDigit(l.ch)) {
		l.advance()
	}
	name := l.src[start:l.pos]
	tok := token.Token{Kind: token.IDENTIFIER, Lexeme: name, Value: name, Pos: pos}
	if IsReserved(name) {
		return token.Token{}, errs.LexicalError.Errorf("reserved word %q used as identifier", name).At(tok).For(name)
	}
	return tok, nil
}

// Tokenize drains src up to and including the first END_OF_INPUT token.
func Tokenize(src string) ([]token.Token, error) {
	l := New(src)
	var out []token.Token
	for {
		tok, err := l.Advance()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
		if tok.Kind == token.END_OF_INPUT {
			return out, nil
		}
	}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
