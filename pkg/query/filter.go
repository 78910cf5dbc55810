package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bisegni/replay/pkg/document"
	"github.com/bisegni/replay/pkg/keypath"
)

// Filter is a single comparison against one path of a document.
type Filter struct {
	Path     keypath.Path
	Operator string
	Value    any
}

// NewFilter builds a filter from a raw header-syntax path, an operator
// (=, !=, >, >=, <, <=, CONTAINS) and a literal value.
func NewFilter(path, operator string, value any) *Filter {
	return &Filter{
		Path:     keypath.Parse(path),
		Operator: strings.ToUpper(operator),
		Value:    value,
	}
}

// Match evaluates the filter against a document. A path that does not
// resolve never matches.
func (f *Filter) Match(doc document.Document) bool {
	val, ok := doc.Get(f.Path)
	if !ok {
		return false
	}

	left, leftNum := val.(float64)
	right, rightNum := f.Value.(float64)
	if leftNum && rightNum {
		switch f.Operator {
		case "=":
			return left == right
		case "!=":
			return left != right
		case ">":
			return left > right
		case ">=":
			return left >= right
		case "<":
			return left < right
		case "<=":
			return left <= right
		}
		return false
	}

	ls, rs := stringify(val), stringify(f.Value)
	switch f.Operator {
	case "=":
		return ls == rs
	case "!=":
		return ls != rs
	case ">":
		return ls > rs
	case ">=":
		return ls >= rs
	case "<":
		return ls < rs
	case "<=":
		return ls <= rs
	case "CONTAINS":
		return strings.Contains(ls, rs)
	}
	return false
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Expression is a boolean expression that can be evaluated against a
// document.
type Expression interface {
	Evaluate(doc document.Document) bool
}

// Condition is a simple filter (leaf node)
type Condition struct {
	Filter *Filter
}

func (c *Condition) Evaluate(doc document.Document) bool {
	return c.Filter.Match(doc)
}

// AndExpression represents Logical AND
type AndExpression struct {
	Left  Expression
	Right Expression
}

func (a *AndExpression) Evaluate(doc document.Document) bool {
	return a.Left.Evaluate(doc) && a.Right.Evaluate(doc)
}

// OrExpression represents Logical OR
type OrExpression struct {
	Left  Expression
	Right Expression
}

func (o *OrExpression) Evaluate(doc document.Document) bool {
	return o.Left.Evaluate(doc) || o.Right.Evaluate(doc)
}
