package errcause

import (
	"log/slog"

	"github.com/go-logr/logr"
)

var (
	_ slog.LogValuer = (*Base)(nil)
	_ slog.LogValuer = (*View)(nil)
	_ logr.Marshaler = (*Base)(nil)
	_ logr.Marshaler = (*View)(nil)
)

// LogValue renders the error as a group of name, message and its enumerable
// fields. The cause is logged as a nested group of its hidden view;
// causeChain and stack are left out to keep log lines readable.
//
// Example:
//
//	logger.Error("request failed", "err", err)
func (b *Base) LogValue() slog.Value {
	return logValue(b.name, b.message, b.keys, b.Get)
}

// LogValue renders the view as a group of name, message and its visible
// fields.
func (v *View) LogValue() slog.Value {
	return logValue(v.Name(), v.Message(), v.Keys(), v.Get)
}

// MarshalLog implements logr.Marshaler with the same content as LogValue.
func (b *Base) MarshalLog() any {
	return logMap(b.name, b.message, b.keys, b.Get)
}

// MarshalLog implements logr.Marshaler with the same content as LogValue.
func (v *View) MarshalLog() any {
	return logMap(v.Name(), v.Message(), v.Keys(), v.Get)
}

func logValue(name, message string, keys []string, get func(string) any) slog.Value {
	attrs := make([]slog.Attr, 0, len(keys)+2)
	attrs = append(attrs, slog.String(keyName, name), slog.String(keyMessage, message))
	for _, k := range keys {
		if skipInLog(k) {
			continue
		}
		attrs = append(attrs, slog.Any(k, get(k)))
	}
	return slog.GroupValue(attrs...)
}

func logMap(name, message string, keys []string, get func(string) any) map[string]any {
	m := make(map[string]any, len(keys)+2)
	m[keyName] = name
	m[keyMessage] = message
	for _, k := range keys {
		if skipInLog(k) {
			continue
		}
		m[k] = get(k)
	}
	return m
}

func skipInLog(key string) bool {
	switch key {
	case keyName, keyMessage, keyStack, keyCauseChain:
		return true
	}
	return false
}
