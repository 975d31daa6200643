package errcause_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/jmgilman/go/errcause"
)

func TestFormat(t *testing.T) {
	err := errcause.Wrap(errcause.New("C", "inner"), "W", "outer")

	tests := []struct {
		name   string
		format string
		want   string
	}{
		{name: "v", format: "%v", want: "W: outer: C: inner"},
		{name: "s", format: "%s", want: "W: outer: C: inner"},
		{name: "q", format: "%q", want: `"W: outer: C: inner"`},
		{name: "plus v", format: "%+v", want: err.Stack()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fmt.Sprintf(tt.format, err))
		})
	}
}

func TestFormat_View(t *testing.T) {
	cause := errcause.New("C", "inner")
	view := errcause.Wrap(cause, "W", "outer").Cause()

	assert.Equal(t, "C: inner", fmt.Sprintf("%v", view))
	assert.Equal(t, cause.Stack(), fmt.Sprintf("%+v", view))

	foreign := errcause.Wrap(stderrors.New("boom"), "W", "outer").Cause()
	assert.Equal(t, "boom", fmt.Sprintf("%+v", foreign))
}

func TestFormat_Wrapped(t *testing.T) {
	err := errcause.New("E", "m")

	assert.Equal(t, "context: E: m", fmt.Errorf("context: %w", err).Error())
	assert.Equal(t, "context: E: m", pkgerrors.Wrap(err, "context").Error())
}
