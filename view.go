package errcause

import (
	"slices"
)

// View is a read-only view over an error that hides the error's own cause
// and causeChain properties from Keys, Has and Fields, while still
// forwarding Get and Cause to them. name, message and stack are always
// listed first, so any copy of Fields captures them.
//
// A View is what wrappers store as their cause; it keeps serialized and
// logged output finite for chains of any depth. It deliberately does not
// expose the underlying error or unwrap to it: use Unwrap on the wrapping
// error to reach the original value for errors.Is and errors.As.
type View struct {
	err error
}

// hide returns the hidden view of err. It never copies or mutates err.
func hide(err error) *View {
	return &View{err: err}
}

// Error returns the underlying error's text.
func (v *View) Error() string {
	return v.err.Error()
}

// Name returns the underlying error's name.
func (v *View) Name() string {
	return nameOf(v.err)
}

// Message returns the underlying error's message.
func (v *View) Message() string {
	return messageOf(v.err)
}

// Stack returns the underlying error's stack text, or "" if it has none.
func (v *View) Stack() string {
	s, _ := stackOf(v.err)
	return s
}

// Cause returns the underlying error's cause. The cause is hidden from
// enumeration but stays reachable by direct access.
func (v *View) Cause() *View {
	switch e := v.err.(type) {
	case Error:
		return e.Cause()
	case *View:
		return e.Cause()
	}
	return nil
}

// Get reads a property of the underlying error, including cause and
// causeChain.
func (v *View) Get(key string) any {
	switch key {
	case keyName:
		return v.Name()
	case keyMessage:
		return v.Message()
	case keyStack:
		if s, ok := stackOf(v.err); ok {
			return s
		}
		return nil
	}
	if e, ok := v.err.(Error); ok {
		return e.Get(key)
	}
	return nil
}

// Has reports whether key is visible on the view.
func (v *View) Has(key string) bool {
	switch key {
	case keyName, keyMessage, keyStack:
		return true
	case keyCause, keyCauseChain:
		return false
	}
	if e, ok := v.err.(Error); ok {
		return e.Has(key)
	}
	return false
}

// Keys returns name, message and stack (when present) followed by the
// underlying error's enumerable keys without cause and causeChain.
func (v *View) Keys() []string {
	keys := []string{keyName, keyMessage}
	if _, ok := stackOf(v.err); ok {
		keys = append(keys, keyStack)
	}
	e, ok := v.err.(Error)
	if !ok {
		return keys
	}
	return append(keys, slices.DeleteFunc(e.Keys(), isHiddenKey)...)
}

// Fields returns a snapshot of every visible key and its value.
func (v *View) Fields() map[string]any {
	keys := v.Keys()
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		out[k] = v.Get(k)
	}
	return out
}

func isHiddenKey(key string) bool {
	switch key {
	case keyCause, keyCauseChain, keyName, keyMessage, keyStack:
		return true
	}
	return false
}
