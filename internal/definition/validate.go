package definition

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ariel-frischer/astroname/internal/template"
	"github.com/go-playground/validator/v10"
)

// ValidationError describes a definition problem that prevents a run.
type ValidationError struct {
	// Index is the position of the offending item in the definition.
	Index int
	// ItemID is the id of the offending item (may be empty).
	ItemID string
	// Field is the offending field in snake_case, when known.
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	ref := fmt.Sprintf("item %d", e.Index+1)
	if e.ItemID != "" {
		ref = fmt.Sprintf("item %d (%q)", e.Index+1, e.ItemID)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: field '%s': %s", ref, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", ref, e.Message)
}

// Warning is a non-fatal data-integrity finding.
type Warning struct {
	ItemID  string
	Message string
}

// String returns a human-readable warning.
func (w Warning) String() string {
	if w.ItemID == "" {
		return w.Message
	}
	return fmt.Sprintf("%s: %s", w.ItemID, w.Message)
}

var validate = validator.New()

// Validate checks a definition before any question is asked.
//
// Errors (returned as *ValidationError): missing ids, unparsable formats,
// formats referencing values other than the answer, and constraints that
// reference the item itself or an item placed after it.
//
// Warnings: duplicate ids (constraints and memory resolve to the first one)
// and constraints referencing ids that do not exist.
func Validate(def Definition) ([]Warning, error) {
	var warnings []Warning
	first := make(map[string]int, len(def))

	for i, item := range def {
		if err := validateStruct(i, item); err != nil {
			return warnings, err
		}

		if prev, seen := first[item.ID]; seen {
			warnings = append(warnings, Warning{
				ItemID:  item.ID,
				Message: fmt.Sprintf("duplicate id (item %d repeats item %d; constraints resolve to the first)", i+1, prev+1),
			})
		} else {
			first[item.ID] = i
		}

		if err := validateFormat(i, item); err != nil {
			return warnings, err
		}

		for _, c := range item.Constraints {
			if target, ok := first[c.ID]; ok {
				if target == i {
					return warnings, &ValidationError{
						Index: i, ItemID: item.ID, Field: "constraints",
						Message: "constraint references the item itself",
					}
				}
				continue
			}
			if later, found := def.IndexOf(c.ID); found {
				return warnings, &ValidationError{
					Index: i, ItemID: item.ID, Field: "constraints",
					Message: fmt.Sprintf("constraint references %q, which is asked later (item %d); dependencies must come first", c.ID, later+1),
				}
			}
			warnings = append(warnings, Warning{
				ItemID:  item.ID,
				Message: fmt.Sprintf("could not find constraint id %q", c.ID),
			})
		}
	}

	return warnings, nil
}

func validateStruct(index int, item Item) error {
	if err := validate.Struct(item); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return &ValidationError{
				Index:   index,
				ItemID:  item.ID,
				Field:   fieldPath(fe.Namespace()),
				Message: formatValidationError(fe),
			}
		}
		return &ValidationError{Index: index, ItemID: item.ID, Message: err.Error()}
	}
	return nil
}

func validateFormat(index int, item Item) error {
	tmpl, err := template.Parse(item.FormatExpression())
	if err != nil {
		return &ValidationError{Index: index, ItemID: item.ID, Field: "format", Message: err.Error()}
	}
	if tmpl.MaxIndex() > 0 {
		return &ValidationError{
			Index: index, ItemID: item.ID, Field: "format",
			Message: fmt.Sprintf("only ${0} (the answer) is available, found ${%d}", tmpl.MaxIndex()),
		}
	}
	return nil
}

// fieldPath turns "Item.Constraints[0].ID" into "constraints[0].id".
func fieldPath(namespace string) string {
	if idx := strings.IndexByte(namespace, '.'); idx >= 0 {
		namespace = namespace[idx+1:]
	}
	return strings.ToLower(namespace)
}

func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	default:
		return fmt.Sprintf("failed validation: %s", fe.Tag())
	}
}
