// Package errs defines the error taxonomy shared by every stage of the spi
// pipeline. All errors are terminal for the call that produced them.
package errs

import (
	stderrors "errors"
	"fmt"

	"github.com/pkg/errors"

	"github.com/amazingcoderpro/simple-interpreter/pkg/token"
)

// Kind classifies a pipeline failure.
type Kind uint

const (
	Unknown Kind = iota
	LexicalError
	SyntaxError
	NameError
	ArithmeticError
)

func (k Kind) String() string {
	switch k {
	case LexicalError:
		return "LexicalError"
	case SyntaxError:
		return "SyntaxError"
	case NameError:
		return "NameError"
	case ArithmeticError:
		return "ArithmeticError"
	default:
		return "Error"
	}
}

// Error carries the kind of failure and, where available, the offending token
// or identifier.
type Error struct {
	Kind  Kind
	Token *token.Token
	Name  string
	Pos   token.Position

	cause error
}

func (e *Error) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("%s at %s", e.cause.Error(), e.Pos)
	}
	return e.cause.Error()
}

// Message returns the error text without position information.
func (e *Error) Message() string {
	return e.cause.Error()
}

func (e *Error) Unwrap() error { return e.cause }

// Format prints the stack captured at construction with %+v.
func (e *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprintf(s, "%s: %+v", e.Kind, e.cause)
			return
		}
		fallthrough
	case 's':
		fmt.Fprint(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

// At records the token the error was detected on.
func (e *Error) At(tok token.Token) *Error {
	e.Token = &tok
	e.Pos = tok.Pos
	return e
}

// For records the identifier the error concerns.
func (e *Error) For(name string) *Error {
	e.Name = name
	return e
}

func (k Kind) New(msg string) *Error {
	return &Error{Kind: k, cause: errors.New(msg)}
}

func (k Kind) Errorf(format string, args ...interface{}) *Error {
	return &Error{Kind: k, cause: errors.Errorf(format, args...)}
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
