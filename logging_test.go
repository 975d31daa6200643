package errcause_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/errcause"
)

func newLoggedError() errcause.Error {
	cause := errcause.New("C", "inner", errcause.Props{"foo": "original"})
	return errcause.Wrap(cause, "W", "outer", errcause.Props{"requestID": "abc"})
}

func TestLogValue_Slog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	logger.Error("request failed", "err", newLoggedError())

	var line struct {
		Msg string         `json:"msg"`
		Err map[string]any `json:"err"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))

	assert.Equal(t, "request failed", line.Msg)
	assert.Equal(t, "W", line.Err["name"])
	assert.Equal(t, "outer", line.Err["message"])
	assert.Equal(t, "abc", line.Err["requestID"])
	assert.Equal(t, "original", line.Err["foo"])
	assert.NotContains(t, line.Err, "stack")
	assert.NotContains(t, line.Err, "causeChain")

	cause, ok := line.Err["cause"].(map[string]any)
	require.True(t, ok, "cause should be logged as a group")
	assert.Equal(t, "C", cause["name"])
	assert.Equal(t, "inner", cause["message"])
	assert.Equal(t, "original", cause["foo"])
	assert.NotContains(t, cause, "stack")
}

func TestLogValue_Attributes(t *testing.T) {
	v := errcause.New("E", "m", errcause.Props{"n": 1}).(slog.LogValuer).LogValue()

	require.Equal(t, slog.KindGroup, v.Kind())

	attrs := v.Group()
	require.Len(t, attrs, 3)
	assert.Equal(t, "name", attrs[0].Key)
	assert.Equal(t, "E", attrs[0].Value.String())
	assert.Equal(t, "message", attrs[1].Key)
	assert.Equal(t, "n", attrs[2].Key)
}

func TestMarshalLog_Funcr(t *testing.T) {
	var out string
	logger := funcr.NewJSON(func(obj string) { out = obj }, funcr.Options{})

	logger.Info("request failed", "err", newLoggedError())

	var line struct {
		Err map[string]any `json:"err"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &line), out)

	assert.Equal(t, "W", line.Err["name"])
	assert.Equal(t, "original", line.Err["foo"])
	assert.NotContains(t, line.Err, "stack")

	cause, ok := line.Err["cause"].(map[string]any)
	require.True(t, ok, out)
	assert.Equal(t, "C", cause["name"])
	assert.Equal(t, "original", cause["foo"])
}
