package typechecker

import (
	"strings"

	"github.com/elliotchance/orderedmap/v2"
)

// Symbol is a named entry in a SymbolTable.
type Symbol interface {
	SymbolName() string
	String() string
}

// BuiltinTypeSymbol names one of the language's value types.
type BuiltinTypeSymbol struct {
	Name string
}

func (s *BuiltinTypeSymbol) SymbolName() string { return s.Name }
func (s *BuiltinTypeSymbol) String() string     { return s.Name }

var (
	Integer = &BuiltinTypeSymbol{Name: "INTEGER"}
	Float   = &BuiltinTypeSymbol{Name: "FLOAT"}
)

// VarSymbol is a variable together with its inferred type. Type is nil when
// the value depends on an undefined name.
type VarSymbol struct {
	Name string
	Type *BuiltinTypeSymbol
}

func (s *VarSymbol) SymbolName() string { return s.Name }

func (s *VarSymbol) String() string {
	typ := "?"
	if s.Type != nil {
		typ = s.Type.Name
	}
	return "<" + s.Name + ":" + typ + ">"
}

// SymbolTable holds type symbols and variable symbols in separate
// namespaces, each in definition order, so a variable may share a type's name.
// The builtin types are always present.
type SymbolTable struct {
	types *orderedmap.OrderedMap[string, *BuiltinTypeSymbol]
	vars  *orderedmap.OrderedMap[string, *VarSymbol]
}

func NewSymbolTable() *SymbolTable {
	t := &SymbolTable{
		types: orderedmap.NewOrderedMap[string, *BuiltinTypeSymbol](),
		vars:  orderedmap.NewOrderedMap[string, *VarSymbol](),
	}
	t.Define(Integer)
	t.Define(Float)
	return t
}

// Define inserts or replaces sym in its namespace.
func (t *SymbolTable) Define(sym Symbol) Symbol {
	switch s := sym.(type) {
	case *BuiltinTypeSymbol:
		t.types.Set(s.Name, s)
	case *VarSymbol:
		t.vars.Set(s.Name, s)
	}
	return sym
}

// Lookup resolves name, preferring a variable over a type of the same name.
func (t *SymbolTable) Lookup(name string) (Symbol, bool) {
	if v, ok := t.vars.Get(name); ok {
		return v, true
	}
	if typ, ok := t.types.Get(name); ok {
		return typ, true
	}
	return nil, false
}

// LookupVar returns the variable symbol for name, ignoring type names.
func (t *SymbolTable) LookupVar(name string) (*VarSymbol, bool) {
	return t.vars.Get(name)
}

// LookupType returns the type symbol for name.
func (t *SymbolTable) LookupType(name string) (*BuiltinTypeSymbol, bool) {
	return t.types.Get(name)
}

// Symbols returns the types and then the variables, each in definition order.
func (t *SymbolTable) Symbols() []Symbol {
	out := make([]Symbol, 0, t.types.Len()+t.vars.Len())
	for el := t.types.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	for el := t.vars.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}

// Vars returns the variable symbols in definition order.
func (t *SymbolTable) Vars() []*VarSymbol {
	out := make([]*VarSymbol, 0, t.vars.Len())
	for el := t.vars.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}

func (t *SymbolTable) String() string {
	parts := make([]string, 0, t.types.Len()+t.vars.Len())
	for _, sym := range t.Symbols() {
		parts = append(parts, sym.String())
	}
	return "Symbols: [" + strings.Join(parts, ", ") + "]"
}
