package document

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/bisegni/replay/pkg/keypath"
)

// OrderedMap is a top-level view of a Document that preserves column
// order when marshalled. It is a slice of KeyVal pairs to keep it
// simple and lightweight for this use case.
type KeyVal struct {
	Key string
	Val any
}

type OrderedMap []KeyVal

// Ordered arranges the top level of a document in the order the
// compiled header paths first mention each root key. Keys the headers
// do not cover are appended in sorted order so output stays
// deterministic.
func Ordered(d Document, headers []keypath.Path) OrderedMap {
	om := make(OrderedMap, 0, len(d))
	seen := make(map[string]bool, len(d))

	for _, path := range headers {
		if len(path) == 0 {
			continue
		}
		key := path[0].Key
		if seen[key] {
			continue
		}
		if val, ok := d[key]; ok {
			om = append(om, KeyVal{Key: key, Val: val})
			seen[key] = true
		}
	}

	var rest []string
	for key := range d {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		om = append(om, KeyVal{Key: key, Val: d[key]})
	}

	return om
}

// MarshalJSON implements the json.Marshaler interface.
func (om OrderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range om {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := json.Marshal(kv.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')
		valBytes, err := json.Marshal(kv.Val)
		if err != nil {
			return nil, err
		}
		buf.Write(valBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// String implements fmt.Stringer
func (om OrderedMap) String() string {
	b, _ := om.MarshalJSON()
	return string(b)
}
