package errcause

import (
	"fmt"

	"github.com/jmgilman/go/errcause/internal/stack"
)

// New creates an error with the given name, message and merged properties.
// The stack trace starts at the caller of New.
//
// Bags are merged left to right; later values win. A bag may select a custom
// error type with BaseClassProp or a Factory with FactoryFunctionProp.
// New panics with ErrSelectorConflict or ErrInvalidSelector if the selectors
// are misused; use Construct to get those as errors instead.
//
// Example:
//
//	err := errcause.New("NotFoundError", "user not found", errcause.Props{
//	    "userID": id,
//	})
func New(name, message string, bags ...Props) Error {
	e, err := construct(1, nil, name, message, bags)
	if err != nil {
		panic(err)
	}
	return e
}

// NewAbove is like New, but removes from the stack trace every frame up to
// and including the most recent call of the function above. Helpers built on
// top of the constructors use it to keep their own frames out of the trace.
//
// If above is nil or not on the stack, the trace starts at the caller of
// NewAbove. NewAbove panics on the same conditions as New, and with
// ErrInvalidStartingPoint if above is not a function.
//
// Example:
//
//	func notFound(id string) errcause.Error {
//	    return errcause.NewAbove(notFound, "NotFoundError", "missing "+id)
//	}
func NewAbove(above any, name, message string, bags ...Props) Error {
	e, err := construct(1, above, name, message, bags)
	if err != nil {
		panic(err)
	}
	return e
}

// Construct is NewAbove returning configuration problems as errors.
// Panics raised by a custom type's InitError or by a Factory are not
// recovered.
func Construct(above any, name, message string, bags ...Props) (Error, error) {
	return construct(1, above, name, message, bags)
}

// construct builds an error whose trace starts skip frames above the caller
// of construct, further trimmed above the function above when it is on the
// stack.
func construct(skip int, above any, name, message string, bags []Props) (Error, error) {
	if above != nil {
		if _, ok := stack.FuncName(above); !ok {
			return nil, fmt.Errorf("%w: got %T", ErrInvalidStartingPoint, above)
		}
	}

	merged := merge(bags)
	strat, err := selectStrategy(merged)
	if err != nil {
		return nil, err
	}

	props := merged.props()
	e, err := strat.build(name, message, props)
	if err != nil {
		return nil, err
	}

	b := e.base()
	b.name = name

	frames := stack.Capture(skip + 1)
	if above != nil {
		frames, _ = frames.Above(above)
	}
	b.frames = frames
	b.stack = frames.Render(joinNameMessage(b.name, b.message))

	for _, k := range merged.keys {
		b.SetField(k, merged.values[k])
	}
	return e, nil
}
