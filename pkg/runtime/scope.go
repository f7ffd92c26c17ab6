package runtime

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
)

// Scope maps variable names to values for one evaluation session. Names keep
// the order of their first definition. A Scope is not safe for concurrent use.
type Scope struct {
	values *orderedmap.OrderedMap[string, Value]
}

func NewScope() *Scope {
	return &Scope{values: orderedmap.NewOrderedMap[string, Value]()}
}

// Define inserts or overwrites a binding.
func (s *Scope) Define(name string, value Value) {
	s.values.Set(name, value)
}

// Lookup returns the binding for name, if any.
func (s *Scope) Lookup(name string) (Value, bool) {
	return s.values.Get(name)
}

func (s *Scope) Has(name string) bool {
	_, ok := s.values.Get(name)
	return ok
}

func (s *Scope) Delete(name string) bool {
	return s.values.Delete(name)
}

func (s *Scope) Len() int {
	return s.values.Len()
}

// Names returns the bound names in definition order.
func (s *Scope) Names() []string {
	names := make([]string, 0, s.values.Len())
	for el := s.values.Front(); el != nil; el = el.Next() {
		names = append(names, el.Key)
	}
	return names
}

// Each visits bindings in definition order.
func (s *Scope) Each(fn func(name string, value Value)) {
	for el := s.values.Front(); el != nil; el = el.Next() {
		fn(el.Key, el.Value)
	}
}

// Clone returns an independent scope with the same bindings in the same order.
func (s *Scope) Clone() *Scope {
	clone := NewScope()
	s.Each(clone.Define)
	return clone
}

// Reset removes every binding.
func (s *Scope) Reset() {
	s.values = orderedmap.NewOrderedMap[string, Value]()
}

// String renders the scope as `{'a': 1, 'b': 2.5}`.
func (s *Scope) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	s.Each(func(name string, value Value) {
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString("'" + name + "': " + Format(value))
	})
	b.WriteByte('}')
	return b.String()
}

// MarshalJSON encodes the scope as an object in definition order. Non-finite
// floats are encoded as strings.
func (s *Scope) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	var err error
	s.Each(func(name string, value Value) {
		if err != nil {
			return
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		var key []byte
		if key, err = json.Marshal(name); err != nil {
			return
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(jsonNumber(value))
	})
	if err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func jsonNumber(v Value) string {
	text := Format(v)
	if strings.ContainsAny(text, "in") {
		return strconv.Quote(text)
	}
	return text
}
