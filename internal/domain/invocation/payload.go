// Where: cli/internal/domain/invocation/payload.go
// What: Invocation payload value and JSON/raw resolution.
// Why: Distinguish "no payload" from a JSON null and enumerate object keys like JavaScript.
package invocation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/iancoleman/orderedmap"

	"github.com/poruru-code/sls-cli/internal/domain/inspect"
)

// Payload is either absent or carries a decoded value.
type Payload struct {
	value   any
	present bool
}

// NoPayload is the absent payload.
var NoPayload = Payload{}

// NewPayload wraps a value. A nil value is a present JSON null.
func NewPayload(value any) Payload {
	return Payload{value: value, present: true}
}

// IsSet reports whether the payload is present.
func (p Payload) IsSet() bool {
	return p.present
}

// Value returns the decoded value, or nil when absent.
func (p Payload) Value() any {
	return p.value
}

// JSON encodes the payload for the wire. Absent payloads encode to nil.
func (p Payload) JSON() ([]byte, error) {
	if !p.present {
		return nil, nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p.value); err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// String renders the payload as a literal for log lines.
func (p Payload) String() string {
	if !p.present {
		return "undefined"
	}
	return inspect.Format(p.value)
}

// ParseData turns user-provided text into a payload: JSON text decodes to
// its value, anything else is kept verbatim as a string.
func ParseData(text string) Payload {
	raw := []byte(text)
	if !json.Valid(raw) {
		return NewPayload(text)
	}
	value, err := decodeJSON(raw)
	if err != nil {
		return NewPayload(text)
	}
	return NewPayload(value)
}

func decodeJSON(raw []byte) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty json")
	}
	switch trimmed[0] {
	case '{':
		m := orderedmap.New()
		m.SetEscapeHTML(false)
		if err := json.Unmarshal(trimmed, m); err != nil {
			return nil, err
		}
		applyObjectKeyOrder(m)
		return m, nil
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		out := make([]any, 0, len(items))
		for _, item := range items {
			value, err := decodeJSON(item)
			if err != nil {
				return nil, err
			}
			out = append(out, value)
		}
		return out, nil
	}
	var value any
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return nil, err
	}
	return value, nil
}

// applyObjectKeyOrder reorders keys the way JavaScript objects enumerate
// them: array-index keys ascending, then the remaining keys in source order.
// Nested objects and arrays are reordered too.
func applyObjectKeyOrder(m *orderedmap.OrderedMap) {
	m.SortKeys(func(keys []string) {
		sort.SliceStable(keys, func(i, j int) bool {
			a, aIndex := arrayIndex(keys[i])
			b, bIndex := arrayIndex(keys[j])
			if aIndex && bIndex {
				return a < b
			}
			return aIndex && !bIndex
		})
	})
	for _, key := range m.Keys() {
		value, _ := m.Get(key)
		m.Set(key, reorderNested(value))
	}
}

func reorderNested(value any) any {
	switch typed := value.(type) {
	case orderedmap.OrderedMap:
		applyObjectKeyOrder(&typed)
		return typed
	case *orderedmap.OrderedMap:
		applyObjectKeyOrder(typed)
	case []any:
		for i := range typed {
			typed[i] = reorderNested(typed[i])
		}
	}
	return value
}

// arrayIndex reports whether key is a canonical array index (0 to 2^32-2).
func arrayIndex(key string) (uint64, bool) {
	n, err := strconv.ParseUint(key, 10, 32)
	if err != nil || n == 1<<32-1 || strconv.FormatUint(n, 10) != key {
		return 0, false
	}
	return n, true
}
