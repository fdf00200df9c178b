// Package constraint decides whether an item is asked in the current run.
package constraint

import (
	"strings"

	"github.com/ariel-frischer/astroname/internal/definition"
	"go.uber.org/zap"
)

// Lookup exposes the answers collected so far in a run.
type Lookup interface {
	// Answer returns the current answer of the first item with the given id.
	// exists is false when no such item is defined; answered is false when the
	// item has not been asked (yet) in this run.
	Answer(id string) (answer string, exists, answered bool)
}

// Evaluator evaluates item constraints against a Lookup.
type Evaluator struct {
	logger *zap.Logger
}

// NewEvaluator creates an Evaluator. Missing references are reported to logger.
func NewEvaluator(logger *zap.Logger) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Evaluator{logger: logger}
}

// Evaluate reports whether item should be included. Items without
// constraints are always included; otherwise every constraint must match.
// All constraints are checked so each broken reference is logged.
func (e *Evaluator) Evaluate(item definition.Item, answers Lookup) bool {
	include := true
	for _, c := range item.Constraints {
		answer, exists, answered := answers.Answer(c.ID)
		switch {
		case !exists:
			// Definition loading already warned about the broken reference.
			e.logger.Debug("could not find constraint id",
				zap.String("item", item.ID), zap.String("constraint", c.ID))
			include = false
		case !answered:
			e.logger.Debug("constraint references an item that was not asked",
				zap.String("item", item.ID), zap.String("constraint", c.ID))
			include = false
		case !Matches(answer, c.Answers):
			include = false
		}
	}
	return include
}

// Matches reports whether answer equals any accepted value, ignoring case.
func Matches(answer string, accepted []string) bool {
	for _, candidate := range accepted {
		if strings.EqualFold(candidate, answer) {
			return true
		}
	}
	return false
}
