package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/amazingcoderpro/simple-interpreter/pkg/driver"
	"github.com/amazingcoderpro/simple-interpreter/pkg/errs"
)

const cliToolVersion = "spi 0.1.0"

type options struct {
	configPath  string
	format      string
	check       bool
	legacy      bool
	verbose     bool
	showVersion bool
	showHelp    bool
}

// env is everything a subcommand needs.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	cfg    *driver.Config
	log    *zap.Logger
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, rest, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		printUsage(stderr)
		return 1
	}
	if opts.showHelp {
		printUsage(stdout)
		return 0
	}
	if opts.showVersion {
		fmt.Fprintln(stdout, cliToolVersion)
		return 0
	}

	cfg, err := resolveConfig(opts)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	logger, err := newLogger(cfg, opts.verbose, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer logger.Sync()

	e := &env{stdin: stdin, stdout: stdout, stderr: stderr, cfg: cfg, log: logger}
	if len(rest) == 0 {
		return runRepl(e, nil)
	}
	switch rest[0] {
	case "run":
		return runFile(e, rest[1:])
	case "check":
		return runCheck(e, rest[1:])
	case "tokens":
		return runTokens(e, rest[1:])
	case "ast":
		return runAST(e, rest[1:])
	case "repl":
		return runRepl(e, rest[1:])
	case "help":
		printUsage(stdout)
		return 0
	case "version":
		fmt.Fprintln(stdout, cliToolVersion)
		return 0
	default:
		return runFile(e, rest)
	}
}

func parseArgs(args []string, stderr io.Writer) (*options, []string, error) {
	opts := &options{}
	fs := flag.NewFlagSet("spi", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr) }
	fs.StringVarP(&opts.configPath, "config", "c", "", "Path to spi.yml (default: nearest spi.yml above the working directory)")
	fs.StringVarP(&opts.format, "format", "f", "", "Output format for the final scope: text, json or yaml")
	fs.BoolVar(&opts.check, "check", false, "Type-check programs before evaluating them")
	fs.BoolVar(&opts.legacy, "legacy-separators", false, "Reject escaped statement separators between statements")
	fs.BoolVar(&opts.verbose, "verbose", false, "Log debug information to stderr")
	fs.BoolVarP(&opts.showVersion, "version", "V", false, "Print version information and quit")
	fs.BoolVarP(&opts.showHelp, "help", "h", false, "Print usage information and quit")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if fs.Changed("format") {
		if _, err := driver.ParseFormat(opts.format); err != nil {
			return nil, nil, err
		}
	}
	return opts, fs.Args(), nil
}

// resolveConfig loads the configuration file and applies flag overrides.
func resolveConfig(opts *options) (*driver.Config, error) {
	cfg := driver.DefaultConfig()
	path := opts.configPath
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		found, err := driver.FindConfig(wd)
		switch {
		case err == nil:
			path = found
		case !errors.Is(err, driver.ErrConfigNotFound):
			return nil, err
		}
	}
	if path != "" {
		loaded, err := driver.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if opts.format != "" {
		cfg.Output, _ = driver.ParseFormat(opts.format)
	}
	if opts.check {
		cfg.Check = true
	}
	if opts.legacy {
		cfg.LegacySeparators = true
	}
	return cfg, nil
}

func newLogger(cfg *driver.Config, verbose bool, w io.Writer) (*zap.Logger, error) {
	lvl, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	al := zap.NewAtomicLevel()
	al.SetLevel(lvl)
	if verbose {
		al.SetLevel(zap.DebugLevel)
	}
	ec := zap.NewDevelopmentEncoderConfig()
	return zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(zapcore.AddSync(w)), al)), nil
}

// describeError renders err as `[Kind] message`.
func describeError(err error) string {
	return fmt.Sprintf("[%s] %s", errs.KindOf(err), err)
}

func reportError(w io.Writer, err error) int {
	fmt.Fprintln(w, describeError(err))
	return 1
}
