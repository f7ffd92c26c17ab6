package driver

import (
	"go.uber.org/zap"

	"github.com/amazingcoderpro/simple-interpreter/pkg/errs"
	"github.com/amazingcoderpro/simple-interpreter/pkg/interpreter"
	"github.com/amazingcoderpro/simple-interpreter/pkg/parser"
	"github.com/amazingcoderpro/simple-interpreter/pkg/runtime"
	"github.com/amazingcoderpro/simple-interpreter/pkg/typechecker"
)

// Session evaluates programs into one persistent scope. It is not safe for
// concurrent use.
type Session struct {
	cfg     *Config
	loader  *Loader
	interp  *interpreter.Interpreter
	log     *zap.Logger
	prelude *runtime.Scope
}

// SessionOption customises a Session.
type SessionOption func(*Session)

// WithLogger attaches a logger. Sessions log nothing by default.
func WithLogger(logger *zap.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.log = logger
		}
	}
}

// NewSession builds a session from cfg and evaluates its prelude files.
func NewSession(cfg *Config, opts ...SessionOption) (*Session, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	s := &Session{cfg: cfg, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	var popts []parser.Option
	if cfg.LegacySeparators {
		popts = append(popts, parser.WithLegacySeparators())
	}
	loader, err := NewLoader(cfg.CacheSize, s.log.Named("loader"), popts...)
	if err != nil {
		return nil, err
	}
	s.loader = loader
	s.interp = interpreter.New(runtime.NewScope())
	if err := s.runPrelude(); err != nil {
		return nil, err
	}
	s.prelude = s.Scope().Clone()
	return s, nil
}

// Config returns the session's configuration.
func (s *Session) Config() *Config { return s.cfg }

// Loader returns the session's source loader.
func (s *Session) Loader() *Loader { return s.loader }

// Scope returns the persistent scope.
func (s *Session) Scope() *runtime.Scope { return s.interp.Scope() }

// Exec parses and runs src. Statements that completed before a failure keep
// their bindings.
func (s *Session) Exec(name, src string) error {
	prog, err := s.loader.Parse(name, src)
	if err != nil {
		return err
	}
	return s.Run(prog)
}

// ExecFile loads and runs the file at path.
func (s *Session) ExecFile(path string) error {
	prog, err := s.loader.Load(path)
	if err != nil {
		return err
	}
	return s.Run(prog)
}

// Eval evaluates a single expression against the scope without binding it.
func (s *Session) Eval(expr string) (runtime.Value, error) {
	node, err := parser.ParseExpression(expr)
	if err != nil {
		return nil, err
	}
	return s.interp.Evaluate(node)
}

// Check type-checks src against the names already bound in the session.
// Parse failures are returned as the error; problems found by the checker are
// returned as diagnostics.
func (s *Session) Check(name, src string) (*typechecker.SymbolTable, []typechecker.Diagnostic, error) {
	prog, err := s.loader.Parse(name, src)
	if err != nil {
		return nil, nil, err
	}
	table, diags := s.check(prog)
	return table, diags, nil
}

// Unset removes name from the scope and reports whether it was bound.
func (s *Session) Unset(name string) bool {
	return s.Scope().Delete(name)
}

// Reset restores the scope to the bindings the prelude produced when the
// session was created. Prelude files are not read again.
func (s *Session) Reset() {
	scope := s.Scope()
	scope.Reset()
	s.prelude.Each(scope.Define)
	s.log.Debug("scope reset", zap.Int("bindings", scope.Len()))
}

func (s *Session) runPrelude() error {
	for _, path := range s.cfg.Prelude {
		if err := s.ExecFile(path); err != nil {
			return err
		}
		s.log.Debug("prelude loaded", zap.String("path", path))
	}
	return nil
}

// Run evaluates an already parsed program, checking it first when the
// configuration asks for it.
func (s *Session) Run(prog *Program) error {
	if s.cfg.Check {
		if _, diags := s.check(prog); len(diags) > 0 {
			for _, d := range diags {
				s.log.Debug("check failed", zap.String("name", prog.Name), zap.String("diagnostic", d.Message))
			}
			return diags[0].Err()
		}
	}
	if err := s.interp.Interpret(prog.Tree); err != nil {
		s.log.Debug("evaluation failed", zap.String("name", prog.Name),
			zap.Stringer("kind", errs.KindOf(err)), zap.Error(err))
		return err
	}
	s.log.Debug("evaluated", zap.String("name", prog.Name), zap.Int("bindings", s.Scope().Len()))
	return nil
}

func (s *Session) check(prog *Program) (*typechecker.SymbolTable, []typechecker.Diagnostic) {
	table := typechecker.NewSymbolTable()
	s.Scope().Each(func(name string, value runtime.Value) {
		table.Define(&typechecker.VarSymbol{Name: name, Type: staticType(value)})
	})
	return typechecker.New().CheckIn(table, prog.Tree)
}

func staticType(v runtime.Value) *typechecker.BuiltinTypeSymbol {
	switch v.Kind() {
	case runtime.KindFloat:
		return typechecker.Float
	default:
		return typechecker.Integer
	}
}
