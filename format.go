package errcause

import (
	"fmt"
	"io"
)

// Format implements fmt.Formatter.
//
//	%s, %v  Error()
//	%+v     the stack trace with its "caused by" blocks
//	%q      quoted Error()
func (b *Base) Format(s fmt.State, verb rune) {
	format(s, verb, b.Error(), b.stack)
}

// Format implements fmt.Formatter like Base.Format. A view over an error
// without a stack prints Error() for %+v.
func (v *View) Format(s fmt.State, verb rune) {
	format(s, verb, v.Error(), v.Stack())
}

func format(s fmt.State, verb rune, text, stack string) {
	switch verb {
	case 'v':
		if s.Flag('+') && stack != "" {
			_, _ = io.WriteString(s, stack)
			return
		}
		_, _ = io.WriteString(s, text)
	case 's':
		_, _ = io.WriteString(s, text)
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", text)
	}
}
