// Package env assembles the binding set consumed by template
// rendering: computed host facts, variables-file entries, and
// command-line flags, in that precedence order.
package env

import "fmt"

// Kind discriminates the value types a binding can hold
type Kind int

const (
	// KindString is a plain string binding
	KindString Kind = iota
	// KindBool is a boolean binding
	KindBool
)

// Value is a tagged string-or-boolean binding value
type Value struct {
	Kind Kind
	Str  string
	Bool bool
}

// String creates a string-kinded value
func String(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// Bool creates a boolean-kinded value
func Bool(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// Interface returns the underlying Go value
func (v Value) Interface() interface{} {
	if v.Kind == KindBool {
		return v.Bool
	}
	return v.Str
}

// GoString renders the value for logging
func (v Value) GoString() string {
	if v.Kind == KindBool {
		return fmt.Sprintf("%t", v.Bool)
	}
	return fmt.Sprintf("%q", v.Str)
}

// Env is the binding set: variable name to tagged value. It is built
// once per run and must be treated as read-only afterwards; the
// traversal shares it across all concurrent render operations without
// locking.
type Env map[string]Value

// Bindings exports the set as the map the template engine consumes
func (e Env) Bindings() map[string]interface{} {
	out := make(map[string]interface{}, len(e))
	for k, v := range e {
		out[k] = v.Interface()
	}
	return out
}
