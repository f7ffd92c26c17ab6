package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/peterh/liner"
	"go.uber.org/zap"

	"github.com/amazingcoderpro/simple-interpreter/pkg/driver"
	"github.com/amazingcoderpro/simple-interpreter/pkg/errs"
	"github.com/amazingcoderpro/simple-interpreter/pkg/runtime"
)

const (
	replPrompt         = "spi> "
	replSourceName     = "<repl>"
	defaultHistoryFile = ".spi_history"
)

type repl struct {
	session *driver.Session
	cfg     *driver.Config
	out     io.Writer
	log     *zap.Logger
	errc    *color.Color
	valc    *color.Color
}

func newRepl(session *driver.Session, cfg *driver.Config, out io.Writer, colorize bool, log *zap.Logger) *repl {
	r := &repl{
		session: session,
		cfg:     cfg,
		out:     out,
		log:     log,
		errc:    color.New(color.FgRed, color.Bold),
		valc:    color.New(color.FgCyan),
	}
	if colorize {
		r.errc.EnableColor()
		r.valc.EnableColor()
	} else {
		r.errc.DisableColor()
		r.valc.DisableColor()
	}
	return r
}

func runRepl(e *env, args []string) int {
	if len(args) != 0 {
		return reportError(e.stderr, fmt.Errorf("spi repl: unexpected arguments %v", args))
	}
	session, err := driver.NewSession(e.cfg, driver.WithLogger(e.log))
	if err != nil {
		return reportError(e.stderr, err)
	}
	r := newRepl(session, e.cfg, e.stdout, isTerminal(os.Stdout), e.log)

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	history := historyPath(e.cfg)
	if f, err := os.Open(history); err == nil {
		if _, err := line.ReadHistory(f); err != nil {
			e.log.Debug("history not loaded", zap.String("path", history), zap.Error(err))
		}
		f.Close()
	}
	defer func() {
		f, err := os.Create(history)
		if err != nil {
			e.log.Debug("history not saved", zap.String("path", history), zap.Error(err))
			return
		}
		defer f.Close()
		if _, err := line.WriteHistory(f); err != nil {
			e.log.Debug("history not saved", zap.String("path", history), zap.Error(err))
		}
	}()

	fmt.Fprintf(e.stdout, "%s (type :help for commands)\n", cliToolVersion)
	for {
		input, err := line.Prompt(replPrompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return reportError(e.stderr, err)
			}
			fmt.Fprintln(e.stdout)
			return 0
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		line.AppendHistory(input)
		if quit := r.handle(input); quit {
			return 0
		}
	}
}

// handle processes one line of input and reports whether the REPL should exit.
func (r *repl) handle(input string) bool {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, ":") {
		r.exec(input)
		return false
	}
	cmd, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case ":quit", ":q", ":exit":
		return true
	case ":help", ":h":
		printReplHelp(r.out)
	case ":scope":
		r.printScope()
	case ":reset":
		r.session.Reset()
	case ":del":
		if arg == "" {
			r.printError(fmt.Errorf(":del needs a name"))
			break
		}
		if !r.session.Unset(arg) {
			r.printError(errs.NameError.Errorf("name '%s' is not defined", arg).For(arg))
		}
	case ":load":
		if arg == "" {
			r.printError(fmt.Errorf(":load needs a file"))
			break
		}
		if err := r.session.ExecFile(arg); err != nil {
			r.printError(err)
		}
	case ":tokens":
		printTokens(r.out, r.out, arg)
	case ":ast":
		printAST(r.out, r.out, arg, r.cfg)
	case ":eval":
		r.eval(arg)
	default:
		r.printError(fmt.Errorf("unknown command %s (try :help)", cmd))
	}
	return false
}

// exec runs input as a program and echoes the bindings it made. Input that is
// not a program but is a valid expression is evaluated instead.
func (r *repl) exec(input string) {
	prog, err := r.session.Loader().Parse(replSourceName, input)
	if err != nil {
		if errs.Is(err, errs.SyntaxError) {
			v, evalErr := r.session.Eval(input)
			if evalErr == nil {
				r.printValue(v)
				return
			}
			if !errs.Is(evalErr, errs.SyntaxError) {
				r.printError(evalErr)
				return
			}
		}
		r.printError(err)
		return
	}
	if err := r.session.Run(prog); err != nil {
		r.printError(err)
		return
	}
	for _, name := range prog.Targets() {
		if v, ok := r.session.Scope().Lookup(name); ok {
			fmt.Fprintf(r.out, "%s = %s\n", name, r.valc.Sprint(runtime.Format(v)))
		}
	}
}

func (r *repl) eval(expr string) {
	v, err := r.session.Eval(expr)
	if err != nil {
		r.printError(err)
		return
	}
	r.printValue(v)
}

func (r *repl) printValue(v runtime.Value) {
	fmt.Fprintln(r.out, r.valc.Sprint(runtime.Format(v)))
}

func (r *repl) printError(err error) {
	fmt.Fprintln(r.out, r.errc.Sprint(describeError(err)))
}

func (r *repl) printScope() {
	scope := r.session.Scope()
	if scope.Len() == 0 {
		fmt.Fprintln(r.out, "(empty scope)")
		return
	}
	table := tablewriter.NewWriter(r.out)
	table.SetHeader([]string{"Name", "Type", "Value"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	scope.Each(func(name string, value runtime.Value) {
		table.Append([]string{name, value.Kind().String(), runtime.Format(value)})
	})
	table.Render()
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func historyPath(cfg *driver.Config) string {
	path := cfg.HistoryFile
	if path == "" {
		path = filepath.Join("~", defaultHistoryFile)
	}
	if rest, ok := strings.CutPrefix(path, "~"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
		return filepath.Join(os.TempDir(), defaultHistoryFile)
	}
	return path
}
