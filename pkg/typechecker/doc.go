// Package typechecker is an optional static pass over spi programs. It builds a
// symbol table of every assigned variable with its inferred type and reports
// names that are read before any assignment. The interpreter never runs it
// implicitly; callers opt in before evaluation.
package typechecker
