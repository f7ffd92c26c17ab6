package lexer

import "sort"

// reserved holds the names that may never be used as identifiers. The set is
// fixed for the language and never mutated after package initialisation.
var reserved = func() map[string]struct{} {
	words := []string{
		"and", "as", "assert", "break", "class", "continue", "def", "del",
		"elif", "else", "except", "false", "finally", "for", "from", "global",
		"if", "import", "in", "is", "lambda", "none", "nonlocal", "not", "or",
		"pass", "print", "raise", "return", "true", "try", "while", "with",
		"yield",
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}()

// IsReserved reports whether name is a reserved word.
func IsReserved(name string) bool {
	_, ok := reserved[name]
	return ok
}

// ReservedWords returns the reserved words in sorted order.
func ReservedWords() []string {
	out := make([]string, 0, len(reserved))
	for w := range reserved {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
