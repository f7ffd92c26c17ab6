package driver

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"

	"github.com/amazingcoderpro/simple-interpreter/pkg/ast"
	"github.com/amazingcoderpro/simple-interpreter/pkg/parser"
)

// Program is a parsed source unit.
type Program struct {
	Name   string
	Path   string
	Source string
	Hash   uint64
	Tree   *ast.StatementBlock
}

// Targets lists the names assigned by the program, in first-assignment order.
func (p *Program) Targets() []string {
	if p == nil || p.Tree == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var names []string
	for _, stmt := range p.Tree.Statements {
		assign, ok := stmt.(*ast.Assignment)
		if !ok {
			continue
		}
		if _, dup := seen[assign.Target.Name]; dup {
			continue
		}
		seen[assign.Target.Name] = struct{}{}
		names = append(names, assign.Target.Name)
	}
	return names
}

// Loader reads and parses spi sources. Parsed trees are cached by the hash of
// their source text, so re-running an unchanged file skips the parser. Trees
// are never mutated after parsing and may be shared between programs.
type Loader struct {
	cache *lru.Cache
	opts  []parser.Option
	log   *zap.Logger
}

// NewLoader constructs a loader with an LRU of the given size. A size of zero
// selects the default.
func NewLoader(size int, logger *zap.Logger, opts ...parser.Option) (*Loader, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{cache: cache, opts: opts, log: logger}, nil
}

// Load reads and parses the file at path.
func (l *Loader) Load(path string) (*Program, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("loader: resolve %s: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", path, err)
	}
	prog, err := l.Parse(path, string(data))
	if err != nil {
		return nil, err
	}
	prog.Path = abs
	return prog, nil
}

// Parse parses src, consulting the cache first. Syntax and lexical errors are
// returned unwrapped.
func (l *Loader) Parse(name, src string) (*Program, error) {
	hash := xxhash.Sum64String(src)
	if cached, ok := l.cache.Get(hash); ok {
		if tree, ok := cached.(*ast.StatementBlock); ok {
			l.log.Debug("parse cache hit", zap.String("name", name), zap.Uint64("hash", hash))
			return &Program{Name: name, Source: src, Hash: hash, Tree: tree}, nil
		}
	}
	tree, err := parser.ParseProgram(src, l.opts...)
	if err != nil {
		l.log.Debug("parse failed", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	l.cache.Add(hash, tree)
	l.log.Debug("parse cache miss", zap.String("name", name), zap.Uint64("hash", hash),
		zap.Int("statements", len(tree.Statements)))
	return &Program{Name: name, Source: src, Hash: hash, Tree: tree}, nil
}

// Cached reports how many parsed trees the loader holds.
func (l *Loader) Cached() int {
	return l.cache.Len()
}

// Purge drops every cached tree.
func (l *Loader) Purge() {
	l.cache.Purge()
}
