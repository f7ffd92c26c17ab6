package parser

import (
	"errors"
	"math/big"

	"github.com/google/go-cmp/cmp"

	"github.com/amazingcoderpro/simple-interpreter/pkg/errs"
)

// treeOpts compares integer literals by value.
var treeOpts = cmp.Options{
	cmp.Comparer(func(a, b *big.Int) bool {
		if a == nil || b == nil {
			return a == b
		}
		return a.Cmp(b) == 0
	}),
}

func asError(err error, target **errs.Error) bool {
	return errors.As(err, target)
}
