package errcause

import (
	"slices"

	"github.com/jmgilman/go/errcause/internal/stack"
)

// Property names resolved by every error and hidden view.
const (
	keyName       = "name"
	keyMessage    = "message"
	keyStack      = "stack"
	keyCause      = "cause"
	keyCauseChain = "causeChain"
)

// Base is the concrete error value produced by the constructors.
//
// Custom error types embed Base by value and are selected with
// BaseClassProp:
//
//	type HTTPError struct {
//	    errcause.Base
//	    Status int
//	}
//
// A Base is not safe for concurrent mutation. Once construction and wrapping
// have finished it may be read from any goroutine.
type Base struct {
	name    string
	message string
	stack   string
	frames  stack.Trace

	keys   []string
	fields map[string]any

	// raw is the unhidden cause returned by Unwrap.
	raw error
}

// forwarded is a field read from the cause at access time.
type forwarded struct {
	from fieldSource
	key  string
}

func (b *Base) base() *Base {
	return b
}

// Error returns "name: message", followed by ": " and the cause's text when a
// cause is attached.
func (b *Base) Error() string {
	s := joinNameMessage(b.name, b.message)
	if b.raw != nil {
		s += ": " + b.raw.Error()
	}
	return s
}

// Name returns the error name.
func (b *Base) Name() string {
	return b.name
}

// Message returns the error message.
func (b *Base) Message() string {
	return b.message
}

// Stack returns the rendered stack trace.
func (b *Base) Stack() string {
	return b.stack
}

// Frames returns a copy of the frames captured at construction.
func (b *Base) Frames() []Frame {
	return slices.Clone(b.frames)
}

func (b *Base) Get(key string) any {
	switch key {
	case keyName:
		return b.name
	case keyMessage:
		return b.message
	case keyStack:
		return b.stack
	}
	v, ok := b.fields[key]
	if !ok {
		return nil
	}
	if f, ok := v.(forwarded); ok {
		return f.from.Get(f.key)
	}
	return v
}

func (b *Base) Has(key string) bool {
	switch key {
	case keyName, keyMessage, keyStack:
		return true
	}
	_, ok := b.fields[key]
	return ok
}

func (b *Base) Keys() []string {
	return slices.Clone(b.keys)
}

func (b *Base) Fields() map[string]any {
	out := make(map[string]any, len(b.keys))
	for _, k := range b.keys {
		out[k] = b.Get(k)
	}
	return out
}

// SetField defines or overwrites an own enumerable field. It is meant for
// InitError implementations publishing fields of a custom error type.
//
// The keys name, message and stack replace the built-in values when given a
// string and are ignored otherwise; they never become enumerable.
func (b *Base) SetField(key string, value any) {
	switch key {
	case keyName, keyMessage, keyStack:
		if s, ok := value.(string); ok {
			b.setBuiltin(key, s)
		}
		return
	}
	b.define(key, value)
}

func (b *Base) Cause() *View {
	if v, ok := b.Get(keyCause).(*View); ok {
		return v
	}
	return nil
}

func (b *Base) CauseChain() []*View {
	chain, _ := causeChainOf(b)
	return chain
}

// Unwrap returns the original cause, so errors.Is and errors.As see its
// concrete type.
func (b *Base) Unwrap() error {
	return b.raw
}

func (b *Base) setBuiltin(key, value string) {
	switch key {
	case keyName:
		b.name = value
	case keyMessage:
		b.message = value
	case keyStack:
		b.stack = value
	}
}

func (b *Base) define(key string, value any) {
	if b.fields == nil {
		b.fields = make(map[string]any)
	}
	if _, ok := b.fields[key]; !ok {
		b.keys = append(b.keys, key)
	}
	b.fields[key] = value
}

func joinNameMessage(name, message string) string {
	switch {
	case name == "":
		return message
	case message == "":
		return name
	}
	return name + ": " + message
}
