package halgo

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var jsonNull = []byte("null")

// decodeMembers reads the members of a JSON object in document order,
// leaving each value raw. A JSON null is an empty object.
func decodeMembers(data []byte) (*orderedmap.OrderedMap[string, json.RawMessage], error) {
	members := orderedmap.New[string, json.RawMessage]()
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		return members, nil
	}
	if err := members.UnmarshalJSON(data); err != nil {
		return nil, errors.Wrap(err, "expected a JSON object")
	}
	return members, nil
}

// keysOf lists the keys of m in insertion order. m may be nil.
func keysOf[V any](m *orderedmap.OrderedMap[string, V]) []string {
	if m == nil {
		return []string{}
	}
	keys := make([]string, 0, m.Len())
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// marshalMembers writes m as a JSON object in insertion order. A nil map is
// an empty object.
func marshalMembers[V any](m *orderedmap.OrderedMap[string, V]) ([]byte, error) {
	if m == nil || m.Len() == 0 {
		return []byte("{}"), nil
	}
	return m.MarshalJSON()
}
