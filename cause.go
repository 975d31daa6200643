package errcause

import (
	"reflect"

	pkgerrors "github.com/pkg/errors"

	"github.com/jmgilman/go/errcause/internal/stack"
)

// defaultName is the name reported for errors that do not have one.
const defaultName = "Error"

// fieldSource is anything whose properties can be forwarded to a wrapper.
type fieldSource interface {
	Get(key string) any
	Has(key string) bool
	Keys() []string
}

// stackTracer is implemented by errors created with github.com/pkg/errors.
type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// AttachCause records cause as the cause of target and returns target.
//
// target is modified in place; cause is never modified:
//   - cause is set to a hidden view of cause.
//   - causeChain is set to that view followed by the cause's own chain, if it
//     has a well-formed one.
//   - every enumerable key of cause that target does not already have is
//     forwarded to cause, read at access time.
//   - the cause's stack (or "name: message") is appended to target's stack
//     under a "caused by" line.
//   - Unwrap on target returns cause.
//
// A nil target or cause, or a cause that is target itself, leaves target
// unchanged. AttachCause must not be called concurrently on the same target.
func AttachCause(target Error, cause error) Error {
	b := baseOf(target)
	if b == nil || isNil(cause) {
		return target
	}
	if ce, ok := cause.(Error); ok && baseOf(ce) == b {
		return target
	}

	scrubbed := hide(cause)
	chain := []*View{scrubbed}
	if ce, ok := cause.(Error); ok {
		if prior, ok := causeChainOf(ce); ok {
			chain = append(chain, prior...)
		}
	}

	b.define(keyCause, scrubbed)
	b.define(keyCauseChain, chain)
	b.raw = cause

	if src, ok := cause.(fieldSource); ok {
		for _, k := range src.Keys() {
			if !b.Has(k) {
				b.define(k, forwarded{from: src, key: k})
			}
		}
	}

	if s, ok := stackOf(cause); ok {
		b.stack += "\n  caused by " + s
	} else {
		b.stack += "\n  caused by " + nameOf(cause) + ": " + messageOf(cause)
	}
	return target
}

// causeChainOf returns e's own cause chain if it is well formed: e has own
// cause and causeChain properties, the cause is a non-nil error and the chain
// is a []*View or []error without nil elements.
func causeChainOf(e fieldSource) ([]*View, bool) {
	if !e.Has(keyCauseChain) || !e.Has(keyCause) {
		return nil, false
	}
	if c, ok := e.Get(keyCause).(error); !ok || isNil(c) {
		return nil, false
	}

	switch chain := e.Get(keyCauseChain).(type) {
	case []*View:
		for _, v := range chain {
			if v == nil {
				return nil, false
			}
		}
		out := make([]*View, len(chain))
		copy(out, chain)
		return out, true
	case []error:
		out := make([]*View, 0, len(chain))
		for _, err := range chain {
			if isNil(err) {
				return nil, false
			}
			if v, ok := err.(*View); ok {
				out = append(out, v)
			} else {
				out = append(out, hide(err))
			}
		}
		return out, true
	}
	return nil, false
}

// nameOf returns the name of any error: its Name method if it has one,
// otherwise "Error".
func nameOf(err error) string {
	if n, ok := err.(interface{ Name() string }); ok {
		return n.Name()
	}
	return defaultName
}

// messageOf returns the message of any error: its Message method if it has
// one, otherwise its Error text.
func messageOf(err error) string {
	if m, ok := err.(interface{ Message() string }); ok {
		return m.Message()
	}
	return err.Error()
}

// stackOf returns the stack text of any error. Besides errcause values it
// understands errors carrying a github.com/pkg/errors stack trace.
func stackOf(err error) (string, bool) {
	switch e := err.(type) {
	case Error:
		return e.Stack(), true
	case *View:
		return stackOf(e.err)
	case stackTracer:
		st := e.StackTrace()
		pcs := make([]uintptr, len(st))
		for i, f := range st {
			pcs[i] = uintptr(f)
		}
		return stack.FromPCs(pcs).Render(joinNameMessage(nameOf(err), messageOf(err))), true
	case interface{ Stack() string }:
		s := e.Stack()
		return s, s != ""
	}
	return "", false
}

func isNil(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
