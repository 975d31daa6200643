package errcause

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes the error as an object holding name, message, stack
// and every enumerable field in key order.
//
// The cause is encoded through its hidden view and causeChain as a list of
// views, so the output is finite for chains of any depth.
//
// Example:
//
//	data, _ := json.Marshal(errcause.New("NotFoundError", "user not found", errcause.Props{"userID": 7}))
//	// {"name":"NotFoundError","message":"user not found","stack":"...","userID":7}
func (b *Base) MarshalJSON() ([]byte, error) {
	keys := make([]string, 0, len(b.keys)+3)
	keys = append(keys, keyName, keyMessage, keyStack)
	keys = append(keys, b.keys...)
	return marshalObject(keys, b.Get)
}

// MarshalJSON encodes the visible keys of the view in order. cause and
// causeChain of the underlying error are never included.
func (v *View) MarshalJSON() ([]byte, error) {
	return marshalObject(v.Keys(), v.Get)
}

func marshalObject(keys []string, get func(string) any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal key %q: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := json.Marshal(get(k))
		if err != nil {
			return nil, fmt.Errorf("failed to marshal field %q: %w", k, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
