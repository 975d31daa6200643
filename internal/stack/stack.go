// Package stack captures and renders call stacks for errcause errors.
//
// Frames are resolved with runtime.CallersFrames so inlined calls are
// reported as their own frames.
package stack

import (
	"reflect"
	"runtime"
	"strconv"
	"strings"
)

// MaxDepth bounds the number of frames recorded by Capture.
const MaxDepth = 64

// Frame is a single call site.
type Frame struct {
	Function string // fully-qualified function name
	File     string
	Line     int
}

// Trace is a list of frames, most recent call first.
type Trace []Frame

// Capture records the stack of the calling goroutine.
// skip 0 starts the trace at the caller of Capture.
func Capture(skip int) Trace {
	pcs := make([]uintptr, MaxDepth)
	// +2 skips runtime.Callers and Capture.
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return nil
	}
	return FromPCs(pcs[:n])
}

// FromPCs resolves program counters as returned by runtime.Callers.
func FromPCs(pcs []uintptr) Trace {
	if len(pcs) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pcs)
	out := make(Trace, 0, len(pcs))
	for {
		fr, more := frames.Next()
		if fr.Function != "" || fr.File != "" {
			out = append(out, Frame{
				Function: fr.Function,
				File:     fr.File,
				Line:     fr.Line,
			})
		}
		if !more {
			break
		}
	}
	return out
}

// FuncName returns the normalized name of a function value.
// It reports false if fn is not a non-nil function.
func FuncName(fn any) (string, bool) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return "", false
	}
	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return "", false
	}
	return normalize(f.Name()), true
}

// Above returns the frames above the most recent call of fn, excluding that
// call. It reports false and returns t unchanged when fn is not on the stack.
func (t Trace) Above(fn any) (Trace, bool) {
	name, ok := FuncName(fn)
	if !ok {
		return t, false
	}
	for i, fr := range t {
		if normalize(fr.Function) == name {
			return t[i+1:], true
		}
	}
	return t, false
}

// Render formats the trace below a header line:
//
//	Header: message
//	    at pkg.Func (/path/file.go:12)
func (t Trace) Render(header string) string {
	var b strings.Builder
	b.WriteString(header)
	for _, fr := range t {
		b.WriteString("\n    at ")
		b.WriteString(fr.Function)
		b.WriteString(" (")
		b.WriteString(fr.File)
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(fr.Line))
		b.WriteByte(')')
	}
	return b.String()
}

// normalize strips the method-value suffix and generic type arguments so
// names from FuncForPC and CallersFrames compare equal.
func normalize(name string) string {
	name = strings.TrimSuffix(name, "-fm")
	return strings.ReplaceAll(name, "[...]", "")
}
