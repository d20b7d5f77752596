package interp

import "github.com/shantanunp/grizzly/internal/value"

// Frame is a function call's flat local-variable environment. There
// is no lexical closure over enclosing frames (§3 Environments): name
// resolution for an identifier not in the current Frame falls through
// to the module namespace and then to built-ins, never to another
// Frame.
type Frame struct {
	vars map[string]value.Value
}

// NewFrame creates an empty Frame.
func NewFrame() *Frame {
	return &Frame{vars: make(map[string]value.Value)}
}

// Get returns the value bound to name in this Frame.
func (f *Frame) Get(name string) (value.Value, bool) {
	v, ok := f.vars[name]
	return v, ok
}

// Set binds name to v in this Frame, overwriting any prior binding.
func (f *Frame) Set(name string, v value.Value) {
	f.vars[name] = v
}
