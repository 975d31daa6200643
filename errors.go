package errcause

import "github.com/jmgilman/go/errcause/internal/stack"

// Error is a named error carrying a stack trace, arbitrary diagnostic fields
// and, once wrapped around another failure, a hidden view of its cause.
//
// Error is implemented by *Base and by any struct type that embeds Base by
// value. Values are built by New, NewAbove, Construct or the Wrap helpers.
type Error interface {
	error

	// Name returns the error name, e.g. "NotFoundError".
	Name() string

	// Message returns the human-readable message.
	Message() string

	// Stack returns the rendered stack trace, including one "caused by"
	// block per attached cause.
	Stack() string

	// Frames returns the frames captured when this error was constructed.
	Frames() []Frame

	// Get reads a property. It resolves name, message, stack, own fields,
	// cause, causeChain and fields forwarded from the cause.
	// Returns nil if the property does not exist.
	Get(key string) any

	// Has reports whether key is an own property of the error.
	Has(key string) bool

	// Keys returns the own enumerable keys in definition order.
	// name, message and stack are not enumerable.
	Keys() []string

	// Fields returns a snapshot of every enumerable key and its value.
	Fields() map[string]any

	// Cause returns the hidden view of the cause, or nil.
	Cause() *View

	// CauseChain returns the hidden views of every ancestor cause, nearest
	// first. Returns nil if the error has no well-formed cause chain.
	CauseChain() []*View

	// Unwrap returns the original, unhidden cause for errors.Is and errors.As.
	Unwrap() error

	base() *Base
}

// Frame is a single call site of a captured stack trace.
type Frame = stack.Frame
