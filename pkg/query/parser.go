package query

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// AST for Participle Parser

type astExpression struct {
	Or []*astAnd `parser:"@@ ('OR' @@)*"`
}

type astAnd struct {
	And []*astCondition `parser:"@@ ('AND' @@)*"`
}

type astCondition struct {
	Grouped *astExpression `parser:"  '(' @@ ')'"`
	Compare *astCompare    `parser:"| @@"`
}

type astCompare struct {
	Path  string     `parser:"@Path"`
	Op    string     `parser:"@('='|'!='|'>='|'<='|'>'|'<'|'CONTAINS')"`
	Value astLiteral `parser:"@@"`
}

type astLiteral struct {
	Number *float64 `parser:"  @Number"`
	Str    *string  `parser:"| @String"`
	Bare   *string  `parser:"| @Path"`
}

// Lexer definition. Path covers the header path syntax (dotted,
// bracketed, or pre-normalized slash form) so a path lexes as a single
// token.
var (
	filterLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Keyword", Pattern: `(?i)\b(AND|OR|CONTAINS)\b`},
		{Name: "String", Pattern: `'[^']*'|"[^"]*"`},
		{Name: "Number", Pattern: `[-+]?\d*\.?\d+([eE][-+]?\d+)?`},
		{Name: "Path", Pattern: `/?[a-zA-Z_][a-zA-Z0-9_]*([./][a-zA-Z0-9_]+|\[\d+\])*`},
		{Name: "Operator", Pattern: `>=|<=|!=|[=<>]`},
		{Name: "Punct", Pattern: `[()]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	filterParser = participle.MustBuild[astExpression](
		participle.Lexer(filterLexer),
		participle.Unquote("String"),
		participle.CaseInsensitive("Keyword"),
		participle.Elide("Whitespace"),
	)
)

// ParseFilter parses a filter expression such as
//
//	speed > 45 AND driver.name = 'John Doe'
//	signal[0] >= 100 OR (status = active AND speed < 50)
//
// into an evaluable Expression.
func ParseFilter(input string) (Expression, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("empty filter expression")
	}

	ast, err := filterParser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	return ast.toExpression(), nil
}

func (e *astExpression) toExpression() Expression {
	if len(e.Or) == 0 {
		return nil
	}
	expr := e.Or[0].toExpression()
	for i := 1; i < len(e.Or); i++ {
		expr = &OrExpression{
			Left:  expr,
			Right: e.Or[i].toExpression(),
		}
	}
	return expr
}

func (a *astAnd) toExpression() Expression {
	if len(a.And) == 0 {
		return nil
	}
	expr := a.And[0].toExpression()
	for i := 1; i < len(a.And); i++ {
		expr = &AndExpression{
			Left:  expr,
			Right: a.And[i].toExpression(),
		}
	}
	return expr
}

func (c *astCondition) toExpression() Expression {
	if c.Grouped != nil {
		return c.Grouped.toExpression()
	}
	return &Condition{
		Filter: NewFilter(c.Compare.Path, c.Compare.Op, c.Compare.Value.toValue()),
	}
}

func (l *astLiteral) toValue() any {
	if l.Number != nil {
		return *l.Number
	}
	if l.Str != nil {
		return *l.Str
	}
	if l.Bare != nil {
		return *l.Bare
	}
	return nil
}
