package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/amazingcoderpro/simple-interpreter/pkg/ast"
	"github.com/amazingcoderpro/simple-interpreter/pkg/driver"
	"github.com/amazingcoderpro/simple-interpreter/pkg/lexer"
	"github.com/amazingcoderpro/simple-interpreter/pkg/parser"
)

// readSource returns the program named by args: a single path, or "-" for
// standard input.
func readSource(e *env, cmd string, args []string) (string, string, error) {
	if len(args) != 1 {
		return "", "", fmt.Errorf("spi %s: expected exactly one file, got %d arguments", cmd, len(args))
	}
	name := args[0]
	if name == "-" {
		data, err := io.ReadAll(e.stdin)
		if err != nil {
			return "", "", fmt.Errorf("spi %s: read stdin: %w", cmd, err)
		}
		return "<stdin>", string(data), nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", "", fmt.Errorf("spi %s: %w", cmd, err)
	}
	return name, string(data), nil
}

func parserOptions(cfg *driver.Config) []parser.Option {
	if cfg.LegacySeparators {
		return []parser.Option{parser.WithLegacySeparators()}
	}
	return nil
}

func runFile(e *env, args []string) int {
	name, src, err := readSource(e, "run", args)
	if err != nil {
		return reportError(e.stderr, err)
	}
	session, err := driver.NewSession(e.cfg, driver.WithLogger(e.log))
	if err != nil {
		return reportError(e.stderr, err)
	}
	if err := session.Exec(name, src); err != nil {
		return reportError(e.stderr, err)
	}
	e.log.Debug("run complete", zap.String("file", name), zap.Int("bindings", session.Scope().Len()))
	if err := driver.WriteScope(e.stdout, session.Scope(), e.cfg.Output); err != nil {
		return reportError(e.stderr, err)
	}
	return 0
}

func runCheck(e *env, args []string) int {
	name, src, err := readSource(e, "check", args)
	if err != nil {
		return reportError(e.stderr, err)
	}
	session, err := driver.NewSession(e.cfg, driver.WithLogger(e.log))
	if err != nil {
		return reportError(e.stderr, err)
	}
	table, diags, err := session.Check(name, src)
	if err != nil {
		return reportError(e.stderr, err)
	}
	if len(diags) > 0 {
		for _, d := range diags {
			fmt.Fprintln(e.stderr, describeError(d.Err()))
		}
		return 1
	}
	for _, v := range table.Vars() {
		fmt.Fprintln(e.stdout, v)
	}
	return 0
}

func runTokens(e *env, args []string) int {
	_, src, err := readSource(e, "tokens", args)
	if err != nil {
		return reportError(e.stderr, err)
	}
	return printTokens(e.stdout, e.stderr, src)
}

func printTokens(stdout, stderr io.Writer, src string) int {
	toks, err := lexer.Tokenize(src)
	for _, tok := range toks {
		fmt.Fprintln(stdout, tok)
	}
	if err != nil {
		return reportError(stderr, err)
	}
	return 0
}

func runAST(e *env, args []string) int {
	_, src, err := readSource(e, "ast", args)
	if err != nil {
		return reportError(e.stderr, err)
	}
	return printAST(e.stdout, e.stderr, src, e.cfg)
}

func printAST(stdout, stderr io.Writer, src string, cfg *driver.Config) int {
	tree, err := parser.ParseProgram(src, parserOptions(cfg)...)
	if err != nil {
		return reportError(stderr, err)
	}
	if cfg.Output == driver.FormatJSON {
		data, err := json.MarshalIndent(tree, "", "  ")
		if err != nil {
			return reportError(stderr, err)
		}
		fmt.Fprintln(stdout, string(data))
		return 0
	}
	if text := ast.Format(tree); text != "" {
		fmt.Fprintln(stdout, text)
	}
	return 0
}
