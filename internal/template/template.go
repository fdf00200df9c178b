// Package template implements the per-item format expressions used to turn a
// raw answer into a name fragment.
//
// An expression is literal text interleaved with positional markers of the form
// ${N}, where N indexes the values passed to Render. Backslash escapes \$, \\
// and \` produce the literal character. Nothing in an expression is ever
// evaluated as code.
package template

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultExpression is used for items that declare no format.
const DefaultExpression = "${0}"

// SyntaxError reports a malformed expression.
type SyntaxError struct {
	Expression string
	Offset     int
	Message    string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("format %q: offset %d: %s", e.Expression, e.Offset, e.Message)
}

// RangeError reports a marker that has no corresponding value.
type RangeError struct {
	Index int
	Count int
}

// Error implements the error interface.
func (e *RangeError) Error() string {
	return fmt.Sprintf("marker ${%d} has no value (%d supplied)", e.Index, e.Count)
}

// Template is a parsed expression. Literals always has exactly one more
// element than Keys: Literals[0], Keys[0], Literals[1], ... Literals[n].
type Template struct {
	Source   string
	Literals []string
	Keys     []int
}

// Parse compiles an expression. An empty expression yields a template that
// renders to the empty string.
func Parse(expr string) (*Template, error) {
	t := &Template{Source: expr}
	var lit strings.Builder

	for i := 0; i < len(expr); i++ {
		c := expr[i]
		switch {
		case c == '\\':
			if i+1 >= len(expr) {
				return nil, &SyntaxError{Expression: expr, Offset: i, Message: "trailing backslash"}
			}
			next := expr[i+1]
			switch next {
			case '$', '\\', '`':
				lit.WriteByte(next)
				i++
			default:
				// Unknown escapes are kept verbatim.
				lit.WriteByte(c)
			}
		case c == '$' && i+1 < len(expr) && expr[i+1] == '{':
			end := strings.IndexByte(expr[i+2:], '}')
			if end < 0 {
				return nil, &SyntaxError{Expression: expr, Offset: i, Message: "unterminated marker"}
			}
			body := strings.TrimSpace(expr[i+2 : i+2+end])
			key, err := parseKey(body)
			if err != nil {
				return nil, &SyntaxError{Expression: expr, Offset: i, Message: err.Error()}
			}
			t.Literals = append(t.Literals, lit.String())
			t.Keys = append(t.Keys, key)
			lit.Reset()
			i += 2 + end
		default:
			lit.WriteByte(c)
		}
	}

	t.Literals = append(t.Literals, lit.String())
	return t, nil
}

func parseKey(body string) (int, error) {
	if body == "" {
		return 0, fmt.Errorf("empty marker")
	}
	for _, r := range body {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("marker %q is not a positional index", body)
		}
	}
	n, err := strconv.Atoi(body)
	if err != nil {
		return 0, fmt.Errorf("marker %q: %w", body, err)
	}
	return n, nil
}

// MaxIndex returns the highest marker index, or -1 when the template has none.
func (t *Template) MaxIndex() int {
	max := -1
	for _, k := range t.Keys {
		if k > max {
			max = k
		}
	}
	return max
}

// Render substitutes values into the template in order.
func (t *Template) Render(values ...string) (string, error) {
	var sb strings.Builder
	sb.WriteString(t.Literals[0])
	for i, key := range t.Keys {
		if key >= len(values) {
			return "", &RangeError{Index: key, Count: len(values)}
		}
		sb.WriteString(values[key])
		sb.WriteString(t.Literals[i+1])
	}
	return sb.String(), nil
}

// Render parses expr and renders it with a single answer at index 0.
// An empty expression falls back to DefaultExpression.
func Render(expr, answer string) (string, error) {
	if expr == "" {
		expr = DefaultExpression
	}
	t, err := Parse(expr)
	if err != nil {
		return "", err
	}
	return t.Render(answer)
}
