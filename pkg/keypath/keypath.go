package keypath

import (
	"strconv"
	"strings"
)

// Segment is one step of a compiled path: either a field name or a
// numeric index into a sequence. Key always holds the segment text, so
// an index segment can still act as a map key when the container it
// lands in is an object.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// Path addresses a location in a nested document. It is kept as a
// structured value rather than a raw string so the document builder
// never has to re-parse header syntax.
type Path []Segment

// Normalize converts the header path syntax into the canonical
// slash-separated form:
//
//	driver.name  -> /driver/name
//	signal[0]    -> /signal/0
//	signal.0     -> /signal/0
//
// A "]." pair collapses to a single separator, a bare "]" is dropped,
// and "." and "[" each become a separator. Input that already starts
// with "/" is assumed pre-normalized and passed through unchanged.
// Headers double as a compact path language so no schema file is
// needed; whether a segment is an array index is inferred later from
// its text.
func Normalize(raw string) string {
	if strings.HasPrefix(raw, "/") {
		return raw
	}

	var b strings.Builder
	b.Grow(len(raw) + 1)
	b.WriteByte('/')

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == ']':
			if i+1 < len(raw) && raw[i+1] == '.' {
				b.WriteByte('/')
				i++ // consume the dot as well
			}
		case c == '.' || c == '[':
			b.WriteByte('/')
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

// Parse compiles a raw header field into a Path. A segment consisting
// entirely of digits becomes an index segment; everything else is a
// name segment. The result always has at least one segment (an empty
// header field compiles to the single name segment "").
func Parse(raw string) Path {
	norm := strings.TrimPrefix(Normalize(raw), "/")
	parts := strings.Split(norm, "/")

	path := make(Path, 0, len(parts))
	for _, part := range parts {
		if idx, ok := parseIndex(part); ok {
			path = append(path, Segment{Key: part, Index: idx, IsIndex: true})
		} else {
			path = append(path, Segment{Key: part})
		}
	}
	return path
}

func parseIndex(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// String renders the canonical form, e.g. "/driver/name".
func (p Path) String() string {
	var b strings.Builder
	for _, seg := range p {
		b.WriteByte('/')
		b.WriteString(seg.Key)
	}
	return b.String()
}

// FirstIndex returns the position of the first index segment, or -1 if
// the path has none.
func (p Path) FirstIndex() int {
	for i, seg := range p {
		if seg.IsIndex {
			return i
		}
	}
	return -1
}

// Base returns the segments before the first index segment. For a path
// with no index segment it returns the whole path.
func (p Path) Base() Path {
	if at := p.FirstIndex(); at >= 0 {
		return p[:at]
	}
	return p
}
