package errcause_test

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/errcause"
)

func TestAttachCause(t *testing.T) {
	cause := createCause()
	target := errcause.New("WrappedError678", "This is my wrapper message")

	got := errcause.AttachCause(target, cause)

	require.Same(t, target, got)
	require.Equal(t, "OriginalError123", got.Cause().Name())
	require.Len(t, got.CauseChain(), 1)
	require.Same(t, got.Cause(), got.CauseChain()[0])
	require.Equal(t, cause, got.Unwrap())
	require.True(t, stderrors.Is(got, cause))
	require.Equal(t, []string{"cause", "causeChain", "bar", "foo"}, got.Keys())
}

func TestAttachCause_NilInputs(t *testing.T) {
	target := errcause.New("W", "m")
	stack := target.Stack()

	require.Same(t, target, errcause.AttachCause(target, nil))
	require.Equal(t, stack, target.Stack())
	require.Empty(t, target.Keys())

	var typedNil *errcause.Base
	require.Same(t, target, errcause.AttachCause(target, typedNil))
	require.Empty(t, target.Keys())

	require.Nil(t, errcause.AttachCause(nil, target))
}

func TestAttachCause_Self(t *testing.T) {
	target := errcause.New("W", "m")

	errcause.AttachCause(target, target)

	require.Nil(t, target.Cause())
	require.Nil(t, target.Unwrap())
}

func TestAttachCause_ChainAccumulation(t *testing.T) {
	a := errcause.New("A", "first", errcause.Props{"a": 1})
	b := errcause.Wrap(a, "B", "second", errcause.Props{"b": 2})
	c := errcause.Wrap(b, "C", "third")

	chain := c.CauseChain()
	require.Len(t, chain, 2)

	require.Equal(t, "B", chain[0].Name())
	require.Equal(t, "second", chain[0].Message())
	require.Equal(t, b.Stack(), chain[0].Stack())
	require.Equal(t, 2, chain[0].Get("b"))

	require.Equal(t, "A", chain[1].Name())
	require.Equal(t, "first", chain[1].Message())
	require.Equal(t, a.Stack(), chain[1].Stack())
	require.Equal(t, []string{"name", "message", "stack", "a"}, chain[1].Keys())

	require.Same(t, c.Cause(), chain[0])
	require.Same(t, b.CauseChain()[0], chain[1])
}

func TestAttachCause_DeepChain(t *testing.T) {
	const depth = 6

	err := errcause.New("Level0", "root")
	for i := 1; i < depth; i++ {
		err = errcause.Wrap(err, fmt.Sprintf("Level%d", i), fmt.Sprintf("level %d", i))
	}

	chain := err.CauseChain()
	require.Len(t, chain, depth-1)
	for i, v := range chain {
		require.Equal(t, fmt.Sprintf("Level%d", depth-2-i), v.Name())
	}

	stack := err.Stack()
	require.Equal(t, depth-1, strings.Count(stack, "\n  caused by "))
	last := 0
	for i := depth - 2; i >= 0; i-- {
		idx := strings.Index(stack, fmt.Sprintf("caused by Level%d: ", i))
		require.Greater(t, idx, last, "caused by blocks must run nearest to farthest")
		last = idx
	}
}

func TestAttachCause_MalformedChain(t *testing.T) {
	tests := []struct {
		name  string
		props errcause.Props
	}{
		{
			name:  "chain of wrong type",
			props: errcause.Props{"causeChain": "garbage", "cause": stderrors.New("x")},
		},
		{
			name:  "chain with nil element",
			props: errcause.Props{"causeChain": []error{stderrors.New("x"), nil}, "cause": stderrors.New("x")},
		},
		{
			name:  "chain without cause",
			props: errcause.Props{"causeChain": []error{stderrors.New("x")}},
		},
		{
			name:  "cause that is not an error",
			props: errcause.Props{"causeChain": []error{stderrors.New("x")}, "cause": "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cause := errcause.New("C", "m", tt.props)
			err := errcause.Wrap(cause, "W", "m")

			require.Len(t, err.CauseChain(), 1)
			require.Equal(t, "C", err.CauseChain()[0].Name())
		})
	}
}

func TestAttachCause_ErrorSliceChain(t *testing.T) {
	first := stderrors.New("first")
	cause := errcause.New("C", "m", errcause.Props{
		"cause":      first,
		"causeChain": []error{first, stderrors.New("second")},
	})

	err := errcause.Wrap(cause, "W", "m")

	chain := err.CauseChain()
	require.Len(t, chain, 3)
	require.Equal(t, "C", chain[0].Name())
	require.Equal(t, "first", chain[1].Message())
	require.Equal(t, "second", chain[2].Message())
}

func TestAttachCause_FieldFlowThrough(t *testing.T) {
	err := errcause.Wrap(createCause(), "WrappedError678", "This is my wrapper message")

	require.Equal(t, "original foo value", err.Get("foo"))
	require.Equal(t, "original bar value", err.Get("bar"))
	require.True(t, err.Has("foo"))
}

func TestAttachCause_ExplicitFieldsTakePrecedence(t *testing.T) {
	err := errcause.Wrap(createCause(), "WrappedError678", "This is my wrapper message",
		errcause.Props{"foo": "new foo value"})

	require.Equal(t, "new foo value", err.Get("foo"))
	require.Equal(t, "original bar value", err.Get("bar"))
	require.Equal(t, []string{"foo", "cause", "causeChain", "bar"}, err.Keys())
	require.Equal(t, "original foo value", err.Cause().Get("foo"))
}

func TestAttachCause_ForwardingIsLive(t *testing.T) {
	cause := createCause()
	err := errcause.Wrap(cause, "W", "m")

	cause.(*errcause.Base).SetField("bar", "updated bar value")

	require.Equal(t, "updated bar value", err.Get("bar"))
	require.Equal(t, "updated bar value", err.Fields()["bar"])
}

func TestAttachCause_ForwardsThroughLevels(t *testing.T) {
	root := createCause()
	middle := errcause.Wrap(root, "M", "m")
	err := errcause.Wrap(middle, "W", "m")

	require.Equal(t, "original foo value", err.Get("foo"))
	require.Equal(t, []string{"cause", "causeChain", "bar", "foo"}, err.Keys())
}

func TestAttachCause_DoesNotMutateCause(t *testing.T) {
	root := createCause()
	middle := errcause.Wrap(root, "SecondError456", "Another message in the middle")

	keys := middle.Keys()
	stack := middle.Stack()
	chain := middle.CauseChain()

	_ = errcause.Wrap(middle, "WrappedError678", "This is my wrapper message", errcause.Props{"extra": true})

	require.Equal(t, keys, middle.Keys())
	require.Equal(t, stack, middle.Stack())
	require.Equal(t, chain, middle.CauseChain())
	require.True(t, middle.Has("cause"))
	require.True(t, middle.Has("causeChain"))
	require.False(t, middle.Has("extra"))
}

func TestAttachCause_StackSplicing(t *testing.T) {
	cause := createCause()
	err := errcause.Wrap(cause, "W", "m")

	require.True(t, strings.HasPrefix(err.Stack(), "W: m\n    at "))
	require.True(t, strings.HasSuffix(err.Stack(), "\n  caused by "+cause.Stack()))
}

func TestAttachCause_StackSplicingWithoutStack(t *testing.T) {
	err := errcause.Wrap(stderrors.New("boom"), "W", "m")

	require.True(t, strings.HasSuffix(err.Stack(), "\n  caused by Error: boom"))
}

func TestAttachCause_StackSplicingPkgErrors(t *testing.T) {
	cause := pkgerrors.New("boom")
	err := errcause.Wrap(cause, "W", "m")

	require.Contains(t, err.Stack(), "\n  caused by Error: boom\n    at ")
	require.Contains(t, err.Stack(), ".TestAttachCause_StackSplicingPkgErrors (")
}

func TestAttachCause_ErrorText(t *testing.T) {
	root := errcause.New("C", "m")
	err := errcause.Wrap(errcause.Wrap(root, "B", "mid"), "W", "m2")

	require.Equal(t, "W: m2: B: mid: C: m", err.Error())
}

func TestAttachCause_UnwrapReachesConcreteType(t *testing.T) {
	root := errcause.New("BadGateway", "upstream failed", errcause.Props{
		errcause.BaseClassProp: (*httpError)(nil),
		"status":               502,
	})
	err := errcause.Wrap(errcause.Wrap(root, "B", "m"), "W", "m")

	var he *httpError
	require.True(t, stderrors.As(err, &he))
	require.Equal(t, 502, he.Status)
	require.Same(t, he, root)
}

func TestAttachCause_PkgErrorsWrappedCause(t *testing.T) {
	root := createCause()
	cause := pkgerrors.Wrap(root, "loading config")

	err := errcause.Wrap(cause, "StartupError", "")

	require.Equal(t, "loading config: OriginalError123: This is the cause of all your problems", err.Message())
	require.True(t, stderrors.Is(err, root))
	require.Len(t, err.CauseChain(), 1)
}
