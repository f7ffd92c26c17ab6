package main

import (
	"fmt"
	"io"
)

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  spi [flags] <file.spi>")
	fmt.Fprintln(w, "  spi [flags] run <file.spi|->")
	fmt.Fprintln(w, "  spi [flags] check <file.spi|->")
	fmt.Fprintln(w, "  spi [flags] tokens <file.spi|->")
	fmt.Fprintln(w, "  spi [flags] ast <file.spi|->")
	fmt.Fprintln(w, "  spi [flags] repl")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <path>       configuration file (default: nearest spi.yml)")
	fmt.Fprintln(w, "  -f, --format <fmt>        scope output format: text, json or yaml")
	fmt.Fprintln(w, "      --check               type-check before evaluating")
	fmt.Fprintln(w, "      --legacy-separators   reject escaped separators between statements")
	fmt.Fprintln(w, "      --verbose             debug logging")
	fmt.Fprintln(w, "  -V, --version             print version and quit")
	fmt.Fprintln(w, "  -h, --help                print this message and quit")
}

func printReplHelp(w io.Writer) {
	fmt.Fprintln(w, "Enter statements such as `a = 1 + 2`; separate statements with \\n.")
	fmt.Fprintln(w, "A bare expression is evaluated and printed.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  :scope            show every binding")
	fmt.Fprintln(w, "  :reset            restore the scope to its state after the prelude")
	fmt.Fprintln(w, "  :del <name>       remove a binding")
	fmt.Fprintln(w, "  :load <file>      run a file into the scope")
	fmt.Fprintln(w, "  :tokens <src>     show the tokens of src")
	fmt.Fprintln(w, "  :ast <src>        show the parsed tree of src")
	fmt.Fprintln(w, "  :eval <expr>      evaluate an expression")
	fmt.Fprintln(w, "  :help             show this message")
	fmt.Fprintln(w, "  :quit             leave the REPL")
}
