package replay

import (
	"strconv"

	"github.com/bisegni/replay/pkg/document"
	"github.com/bisegni/replay/pkg/keypath"
)

// Strategy selects how a row is assembled into a document.
type Strategy int

const (
	// StrategyGrouped buckets array-index columns per base path and
	// materializes each array in one pass, gap-filling with nulls.
	// Stable against out-of-order and sparse index columns, so it is
	// the default.
	StrategyGrouped Strategy = iota

	// StrategyPointer applies every compiled path directly as a tree
	// address in column order, last write wins.
	StrategyPointer
)

// typedValue infers the leaf type of a raw field. A field is numeric
// iff ParseFloat consumes it entirely; ParseFloat does not skip
// surrounding whitespace, so " 2.5" stays a string. The empty string
// is never numeric.
func typedValue(raw string) any {
	if raw == "" {
		return raw
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

// buildPointer assigns each column straight into the tree. A short row
// leaves trailing paths unset.
func buildPointer(headers []keypath.Path, row []string) document.Document {
	doc := document.Document{}
	for i := 0; i < len(headers) && i < len(row); i++ {
		doc.Set(headers[i], typedValue(row[i]))
	}
	return doc
}

// buildGrouped applies plain paths directly and buckets array-index
// columns by their base path, then attaches each finished sequence.
// Only paths ending in their first index segment take part in the
// grouping; deeper paths (matrix.0.x) and index-at-root paths fall
// back to pointer-style assignment.
func buildGrouped(headers []keypath.Path, row []string) document.Document {
	type bucket struct {
		base keypath.Path
		raw  map[int]string
		max  int
	}

	doc := document.Document{}
	buckets := make(map[string]*bucket)
	var order []string

	for i := 0; i < len(headers) && i < len(row); i++ {
		path := headers[i]
		at := path.FirstIndex()
		if at <= 0 || at != len(path)-1 {
			doc.Set(path, typedValue(row[i]))
			continue
		}

		base := path.Base()
		key := base.String()
		bk := buckets[key]
		if bk == nil {
			bk = &bucket{base: base, raw: make(map[int]string)}
			buckets[key] = bk
			order = append(order, key)
		}
		idx := path[at].Index
		bk.raw[idx] = row[i]
		if idx > bk.max {
			bk.max = idx
		}
	}

	for _, key := range order {
		bk := buckets[key]
		seq := make([]any, bk.max+1)
		for idx := range seq {
			if raw, ok := bk.raw[idx]; ok {
				seq[idx] = typedValue(raw)
			}
		}
		doc.Set(bk.base, seq)
	}

	return doc
}
