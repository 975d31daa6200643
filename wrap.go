package errcause

import "slices"

// TextFunc derives a name or message from the cause being wrapped.
type TextFunc func(cause error) string

// Wrapper wraps causes with a fixed name, message and property sources.
// The zero name or message means "use the cause's own".
//
// A Wrapper is immutable and safe for concurrent use; each call to Wrap
// builds a new error.
type Wrapper struct {
	name    TextFunc
	message TextFunc
	sources []PropSource
}

// NewWrapper returns a Wrapper with a literal name and message. An empty
// name or message defaults to the cause's.
//
// Example:
//
//	var wrapQuery = errcause.NewWrapper("QueryError", "query failed").Wrap
//
//	rows, err := db.QueryContext(ctx, q)
//	if err != nil {
//	    return wrapQuery(err)
//	}
func NewWrapper(name, message string, sources ...PropSource) *Wrapper {
	return DeriveWrapper(literal(name), literal(message), sources...)
}

// DeriveWrapper returns a Wrapper whose name and message are computed from
// the cause. A nil function defaults to the cause's name or message.
func DeriveWrapper(name, message TextFunc, sources ...PropSource) *Wrapper {
	return &Wrapper{
		name:    name,
		message: message,
		sources: slices.Clone(sources),
	}
}

// Wrap returns a new error carrying cause. It returns nil if cause is nil.
// The stack trace starts at the caller of Wrap.
func (w *Wrapper) Wrap(cause error) Error {
	return w.wrap(1, cause)
}

// wrap builds the wrapping error with a trace starting skip frames above the
// caller of wrap.
func (w *Wrapper) wrap(skip int, cause error) Error {
	if isNil(cause) {
		return nil
	}

	name := nameOf(cause)
	if w.name != nil {
		name = w.name(cause)
	}
	message := messageOf(cause)
	if w.message != nil {
		message = w.message(cause)
	}

	bags := make([]Props, 0, len(w.sources))
	for _, src := range w.sources {
		if src != nil {
			bags = append(bags, src.propsFor(cause))
		}
	}

	e, err := construct(skip+1, nil, name, message, bags)
	if err != nil {
		panic(err)
	}
	return AttachCause(e, cause)
}

func literal(s string) TextFunc {
	if s == "" {
		return nil
	}
	return func(error) string { return s }
}

// Wrap returns a new error named name with the given message whose cause is
// cause. An empty name or message defaults to the cause's. Property sources
// are merged as in New; PropsFunc sources are computed from the cause.
//
// Fields of the cause that the new error does not define are forwarded, so
// explicitly given properties take precedence.
//
// Returns nil if cause is nil.
//
// Example:
//
//	if err := repo.Save(ctx, user); err != nil {
//	    return errcause.Wrap(err, "SaveError", "saving user failed", errcause.Props{
//	        "userID": user.ID,
//	    })
//	}
func Wrap(cause error, name, message string, sources ...PropSource) Error {
	return NewWrapper(name, message, sources...).wrap(1, cause)
}

// WrapFunc is like Wrap with the name and message derived from the cause.
// A nil function defaults to the cause's name or message.
func WrapFunc(cause error, name, message TextFunc, sources ...PropSource) Error {
	return DeriveWrapper(name, message, sources...).wrap(1, cause)
}

// WrapFailure calls fn and returns its result unchanged on success. On
// failure it returns the zero value and fn's error wrapped as by Wrap.
func WrapFailure[T any](fn func() (T, error), name, message string, sources ...PropSource) (T, error) {
	v, err := fn()
	if err == nil {
		return v, nil
	}
	var zero T
	if wrapped := NewWrapper(name, message, sources...).wrap(1, err); wrapped != nil {
		return zero, wrapped
	}
	return zero, err
}

// WrapFailureWith is WrapFailure using a prepared Wrapper.
func WrapFailureWith[T any](fn func() (T, error), w *Wrapper) (T, error) {
	v, err := fn()
	if err == nil {
		return v, nil
	}
	var zero T
	if wrapped := w.wrap(1, err); wrapped != nil {
		return zero, wrapped
	}
	return zero, err
}

// Result is the settled outcome of an asynchronous operation.
type Result[T any] struct {
	Value T
	Err   error
}

// Async runs fn on a new goroutine and returns a channel that receives its
// result once and is then closed.
func Async[T any](fn func() (T, error)) <-chan Result[T] {
	out := make(chan Result[T], 1)
	go func() {
		defer close(out)
		v, err := fn()
		out <- Result[T]{Value: v, Err: err}
	}()
	return out
}

// WrapRejection returns a channel that settles like in, except that a failed
// result carries its error wrapped as by Wrap. Successful results pass
// through untouched. The returned channel is buffered, receives at most one
// result and is closed once in settles or is closed.
//
// The stack of a wrapped error starts in the goroutine that forwards the
// result, as there is no synchronous caller to attribute it to.
func WrapRejection[T any](in <-chan Result[T], name, message string, sources ...PropSource) <-chan Result[T] {
	return WrapRejectionWith(in, NewWrapper(name, message, sources...))
}

// WrapRejectionWith is WrapRejection using a prepared Wrapper.
func WrapRejectionWith[T any](in <-chan Result[T], w *Wrapper) <-chan Result[T] {
	out := make(chan Result[T], 1)
	go func() {
		defer close(out)
		r, ok := <-in
		if !ok {
			return
		}
		if r.Err != nil {
			if wrapped := w.wrap(0, r.Err); wrapped != nil {
				r.Err = wrapped
			}
		}
		out <- r
	}()
	return out
}
