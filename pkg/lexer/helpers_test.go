package lexer_test

import (
	"errors"

	"github.com/amazingcoderpro/simple-interpreter/pkg/errs"
)

func asError(err error, target **errs.Error) bool {
	return errors.As(err, target)
}
