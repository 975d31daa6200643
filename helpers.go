package errcause

import (
	stderrors "errors"
)

// As finds the first errcause Error in err's chain.
//
// Example:
//
//	if e, ok := errcause.As(err); ok {
//	    log.Printf("%s failed: %v", e.Name(), e.Fields())
//	}
func As(err error) (Error, bool) {
	var e Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// ChainOf returns the cause chain of the outermost Error in err's chain.
// Returns nil if there is none.
func ChainOf(err error) []*View {
	if e, ok := As(err); ok {
		return e.CauseChain()
	}
	return nil
}

// StackOf returns the stack text of any error. Errors without a stack are
// rendered as "name: message".
func StackOf(err error) string {
	if err == nil {
		return ""
	}
	if s, ok := stackOf(err); ok {
		return s
	}
	return joinNameMessage(nameOf(err), messageOf(err))
}
