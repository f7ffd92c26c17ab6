// Package interpreter evaluates spi ASTs by walking them depth first. An
// Interpreter owns exactly one runtime.Scope; assignments write to it and
// variable references read from it. Evaluation is synchronous and stops at the
// first error, leaving the scope as it was before the failing statement.
package interpreter
