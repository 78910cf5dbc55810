package document

import (
	"github.com/bisegni/replay/pkg/keypath"
)

// Document is one row rendered as a nested tree. Interior nodes are
// map[string]any objects or []any sequences, leaves are float64,
// string, or nil — the same shape encoding/json produces, so documents
// marshal directly. The empty Document signals end of data.
type Document map[string]any

// IsEmpty reports whether the document carries no fields.
func (d Document) IsEmpty() bool {
	return len(d) == 0
}

// Set assigns value at path, creating intermediate containers on the
// way down. The kind of the next segment picks the container type: an
// index segment creates a sequence, a name segment creates an object.
// Assigning index k into a shorter sequence pads the gap with nils.
// The root is always an object; an index segment at the root keys the
// map by its decimal text.
func (d Document) Set(path keypath.Path, value any) {
	if len(path) == 0 {
		return
	}
	setInObject(d, path, value)
}

func setInObject(obj map[string]any, path keypath.Path, value any) {
	seg := path[0]
	if len(path) == 1 {
		obj[seg.Key] = value
		return
	}

	if path[1].IsIndex {
		seq, _ := obj[seg.Key].([]any)
		obj[seg.Key] = setInSequence(seq, path[1:], value)
		return
	}

	child, ok := obj[seg.Key].(map[string]any)
	if !ok {
		child = make(map[string]any)
		obj[seg.Key] = child
	}
	setInObject(child, path[1:], value)
}

func setInSequence(seq []any, path keypath.Path, value any) []any {
	seg := path[0]
	for len(seq) <= seg.Index {
		seq = append(seq, nil)
	}

	if len(path) == 1 {
		seq[seg.Index] = value
		return seq
	}

	if path[1].IsIndex {
		child, _ := seq[seg.Index].([]any)
		seq[seg.Index] = setInSequence(child, path[1:], value)
		return seq
	}

	child, ok := seq[seg.Index].(map[string]any)
	if !ok {
		child = make(map[string]any)
		seq[seg.Index] = child
	}
	setInObject(child, path[1:], value)
	return seq
}

// Get resolves path against the tree. The second return reports
// whether the full path was present.
func (d Document) Get(path keypath.Path) (any, bool) {
	var current any = map[string]any(d)
	for _, seg := range path {
		switch node := current.(type) {
		case map[string]any:
			v, ok := node[seg.Key]
			if !ok {
				return nil, false
			}
			current = v
		case []any:
			if !seg.IsIndex || seg.Index >= len(node) {
				return nil, false
			}
			current = node[seg.Index]
		default:
			return nil, false
		}
	}
	return current, true
}
