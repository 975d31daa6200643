package errcause

import (
	"cmp"
	"fmt"
	"slices"
)

// Props is a bag of extra diagnostic properties merged onto an error.
//
// String keys name fields on the constructed error. The two selector keys,
// BaseClassProp and FactoryFunctionProp, choose how the error value is
// instantiated and never appear as fields. Any other key is converted to its
// fmt.Sprint form.
type Props map[any]any

// Selector is an identity token used as a Props key to pick a construction
// strategy. Only the values BaseClassProp and FactoryFunctionProp exist.
type Selector struct {
	name string
}

func (s *Selector) String() string {
	return "errcause." + s.name
}

var (
	// BaseClassProp selects the type to instantiate. Its value is a typed nil
	// pointer (or reflect.Type) of a struct that embeds Base by value:
	//
	//	errcause.Props{errcause.BaseClassProp: (*HTTPError)(nil)}
	BaseClassProp = &Selector{name: "BaseClass"}

	// FactoryFunctionProp selects a Factory that produces the error value.
	FactoryFunctionProp = &Selector{name: "FactoryFunction"}
)

// PropSource supplies a property bag for an error that wraps cause.
// It is implemented by Props, which ignores the cause, and by PropsFunc.
type PropSource interface {
	propsFor(cause error) Props
}

func (p Props) propsFor(error) Props {
	return p
}

// PropsFunc derives a property bag from the cause being wrapped.
type PropsFunc func(cause error) Props

func (f PropsFunc) propsFor(cause error) Props {
	if f == nil {
		return nil
	}
	return f(cause)
}

// mergedProps is the result of merging property bags in order.
type mergedProps struct {
	keys   []string
	values map[string]any

	class      any
	hasClass   bool
	factory    any
	hasFactory bool
}

// merge combines bags left to right. Later values overwrite earlier ones for
// the same key; fields keep the position of their first appearance.
func merge(bags []Props) *mergedProps {
	m := &mergedProps{values: make(map[string]any)}
	for _, bag := range bags {
		for _, k := range sortedKeys(bag) {
			v := bag[k]
			switch k {
			case BaseClassProp:
				m.class, m.hasClass = v, true
			case FactoryFunctionProp:
				m.factory, m.hasFactory = v, true
			default:
				m.set(keyString(k), v)
			}
		}
	}
	return m
}

func (m *mergedProps) set(key string, v any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// props returns the merged fields without the selector keys.
func (m *mergedProps) props() Props {
	out := make(Props, len(m.keys))
	for _, k := range m.keys {
		out[k] = m.values[k]
	}
	return out
}

func keyString(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}

// sortedKeys orders a bag's keys by their string form. On a tie a string key
// sorts after a non-string one so the string key wins the merge.
func sortedKeys(bag Props) []any {
	keys := make([]any, 0, len(bag))
	for k := range bag {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b any) int {
		if c := cmp.Compare(keyString(a), keyString(b)); c != 0 {
			return c
		}
		_, as := a.(string)
		_, bs := b.(string)
		switch {
		case as == bs:
			return 0
		case as:
			return 1
		default:
			return -1
		}
	})
	return keys
}
