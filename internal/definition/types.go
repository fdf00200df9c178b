// Package definition holds the questionnaire definition: the ordered list of
// items that are asked, their inter-item constraints and their formatting
// rules. It also loads definitions from disk and validates them.
package definition

import "github.com/ariel-frischer/astroname/internal/template"

// Constraint ties an item's inclusion to the answer of an earlier item.
type Constraint struct {
	// ID references another item of the same definition.
	ID string `json:"id" yaml:"id" toml:"id" validate:"required" jsonschema:"required" jsonschema_description:"Id of the item whose answer is checked"`
	// Answers lists the accepted values, compared case-insensitively.
	Answers []string `json:"answers" yaml:"answers" toml:"answers" jsonschema_description:"Accepted answers (case-insensitive)"`
}

// Item is one question of the definition.
type Item struct {
	ID          string       `json:"id" yaml:"id" toml:"id" validate:"required" jsonschema:"required" jsonschema_description:"Stable key used for constraints and answer memory"`
	Prompt      string       `json:"prompt" yaml:"prompt" toml:"prompt" jsonschema_description:"Question shown to the operator"`
	Default     string       `json:"default,omitempty" yaml:"default,omitempty" toml:"default,omitempty" jsonschema_description:"Answer used when no previous answers are available"`
	Order       float64      `json:"order" yaml:"order" toml:"order" jsonschema_description:"Position of the fragment in the final name (ascending)"`
	Format      string       `json:"format,omitempty" yaml:"format,omitempty" toml:"format,omitempty" jsonschema_description:"Fragment template; ${0} is replaced by the answer"`
	Constraints []Constraint `json:"constraints,omitempty" yaml:"constraints,omitempty" toml:"constraints,omitempty" validate:"dive" jsonschema_description:"All must match for the item to be asked"`
}

// FormatExpression returns the item's format, falling back to the bare answer.
func (i Item) FormatExpression() string {
	if i.Format == "" {
		return template.DefaultExpression
	}
	return i.Format
}

// Definition is the ordered list of items. Traversal always follows this order.
type Definition []Item

// IndexOf returns the position of the first item with the given id.
func (d Definition) IndexOf(id string) (int, bool) {
	for i, item := range d {
		if item.ID == id {
			return i, true
		}
	}
	return -1, false
}

// Normalized returns a copy with every implicit format made explicit.
func (d Definition) Normalized() Definition {
	out := make(Definition, len(d))
	copy(out, d)
	for i := range out {
		out[i].Format = out[i].FormatExpression()
	}
	return out
}

// ConstraintCount returns the total number of constraints across all items.
func (d Definition) ConstraintCount() int {
	n := 0
	for _, item := range d {
		n += len(item.Constraints)
	}
	return n
}
