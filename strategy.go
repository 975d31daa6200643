package errcause

import (
	stderrors "errors"
	"fmt"
	"reflect"
)

var (
	// ErrSelectorConflict is returned when a merged property bag carries both
	// BaseClassProp and FactoryFunctionProp.
	ErrSelectorConflict = stderrors.New("errcause: both BaseClassProp and FactoryFunctionProp are set")

	// ErrInvalidSelector is returned when a selector value cannot produce an
	// error value.
	ErrInvalidSelector = stderrors.New("errcause: invalid error type selector")

	// ErrInvalidStartingPoint is returned when the stack starting point is not
	// a function.
	ErrInvalidStartingPoint = stderrors.New("errcause: starting point is not a function")
)

// Factory produces the error value for a name, message and merged
// properties. Its message is kept; its name is overwritten afterwards.
type Factory func(name, message string, props Props) Error

// Initializer is implemented by custom error types selected with
// BaseClassProp. InitError runs on a freshly allocated value whose message is
// already set, like a constructor body.
type Initializer interface {
	InitError(name, message string, props Props)
}

var errorType = reflect.TypeFor[Error]()

// strategy instantiates the error value. It is chosen once per construction:
// defaultStrategy, classStrategy or factoryStrategy.
type strategy interface {
	build(name, message string, props Props) (Error, error)
}

type defaultStrategy struct{}

func (defaultStrategy) build(_, message string, _ Props) (Error, error) {
	return &Base{message: message}, nil
}

type classStrategy struct {
	typ reflect.Type
}

func (s classStrategy) build(name, message string, props Props) (Error, error) {
	e := reflect.New(s.typ.Elem()).Interface().(Error)
	b := baseOf(e)
	if b == nil {
		return nil, fmt.Errorf("%w: %s must embed errcause.Base by value", ErrInvalidSelector, s.typ)
	}
	b.message = message
	if init, ok := e.(Initializer); ok {
		init.InitError(name, message, props)
	}
	return e, nil
}

type factoryStrategy struct {
	fn Factory
}

func (s factoryStrategy) build(name, message string, props Props) (Error, error) {
	e := s.fn(name, message, props)
	if baseOf(e) == nil {
		return nil, fmt.Errorf("%w: factory returned %T without a Base", ErrInvalidSelector, e)
	}
	return e, nil
}

// selectStrategy picks the construction strategy from the merged selectors.
func selectStrategy(m *mergedProps) (strategy, error) {
	switch {
	case m.hasClass && m.hasFactory:
		return nil, ErrSelectorConflict
	case m.hasClass:
		typ, ok := m.class.(reflect.Type)
		if !ok {
			typ = reflect.TypeOf(m.class)
		}
		if typ == nil || typ.Kind() != reflect.Pointer ||
			typ.Elem().Kind() != reflect.Struct || !typ.Implements(errorType) {
			return nil, fmt.Errorf("%w: BaseClassProp must be a pointer to a struct embedding errcause.Base, got %T",
				ErrInvalidSelector, m.class)
		}
		return classStrategy{typ: typ}, nil
	case m.hasFactory:
		switch fn := m.factory.(type) {
		case Factory:
			if fn != nil {
				return factoryStrategy{fn: fn}, nil
			}
		case func(string, string, Props) Error:
			if fn != nil {
				return factoryStrategy{fn: fn}, nil
			}
		}
		return nil, fmt.Errorf("%w: FactoryFunctionProp must be an errcause.Factory, got %T",
			ErrInvalidSelector, m.factory)
	}
	return defaultStrategy{}, nil
}

// baseOf returns the Base behind e, or nil if e is nil or a nil pointer.
func baseOf(e Error) *Base {
	if e == nil {
		return nil
	}
	if v := reflect.ValueOf(e); v.Kind() == reflect.Pointer && v.IsNil() {
		return nil
	}
	return e.base()
}
