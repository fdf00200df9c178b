// Package workflow runs the questionnaire: it walks the definition in order,
// asks every included item, and assembles the collected answers into a name.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/astroname/internal/constraint"
	"github.com/ariel-frischer/astroname/internal/definition"
	"github.com/ariel-frischer/astroname/internal/memory"
	"github.com/ariel-frischer/astroname/internal/prompt"
	"go.uber.org/zap"
)

const (
	// ClearToken typed as the whole answer clears the pre-filled value.
	ClearToken = "-"
	// DefaultSeparator joins the rendered fragments.
	DefaultSeparator = "_"
	// DefaultSpaceReplacement replaces every space inside a fragment.
	DefaultSpaceReplacement = "-"
)

// State is the engine's position in its run loop.
type State int

const (
	StateAwaitingItem State = iota
	StatePrompting
	StateAwaitingAnswer
	StateFinalizing
	StateDone
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateAwaitingItem:
		return "awaiting-item"
	case StatePrompting:
		return "prompting"
	case StateAwaitingAnswer:
		return "awaiting-answer"
	case StateFinalizing:
		return "finalizing"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// ItemState is the run-scoped state of one item, kept apart from the
// immutable definition.
type ItemState struct {
	// Evaluated is set once inclusion has been decided.
	Evaluated bool
	Include   bool
	Answer    string
}

// Config configures an Engine.
type Config struct {
	Definition definition.Definition
	// Memory holds the answers of the previous run.
	Memory memory.Answers
	// UseDefaults pre-fills items with their defaults instead of Memory.
	UseDefaults bool
	// Separator joins fragments (DefaultSeparator when empty).
	Separator string
	// SpaceReplacement replaces spaces in fragments (DefaultSpaceReplacement when empty).
	SpaceReplacement string
	Transport        prompt.Transport
	Logger           *zap.Logger
}

// Result is the outcome of a completed run.
type Result struct {
	// Name is the composed name.
	Name string
	// Fragments are the rendered parts of Name, in output order.
	Fragments []string
	// Memory is the answer memory to persist: the loaded memory updated with
	// the answers of every included item.
	Memory memory.Answers
	// Included lists the ids of included items in traversal order.
	Included []string
}

// Engine is a single-use questionnaire run. It is not safe for concurrent use.
type Engine struct {
	def         definition.Definition
	memory      memory.Answers
	useDefaults bool
	separator   string
	spaces      string
	transport   prompt.Transport
	evaluator   *constraint.Evaluator
	logger      *zap.Logger

	state  State
	cursor int
	items  []ItemState
	first  map[string]int
	result *Result
}

// New creates an engine positioned before the first item.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	mem := cfg.Memory
	if mem == nil {
		mem = memory.Answers{}
	}

	first := make(map[string]int, len(cfg.Definition))
	for i, item := range cfg.Definition {
		if _, seen := first[item.ID]; !seen {
			first[item.ID] = i
		}
	}

	return &Engine{
		def:         cfg.Definition,
		memory:      mem,
		useDefaults: cfg.UseDefaults,
		separator:   valueOr(cfg.Separator, DefaultSeparator),
		spaces:      valueOr(cfg.SpaceReplacement, DefaultSpaceReplacement),
		transport:   cfg.Transport,
		evaluator:   constraint.NewEvaluator(logger),
		logger:      logger,
		state:       StateAwaitingItem,
		cursor:      -1,
		items:       make([]ItemState, len(cfg.Definition)),
		first:       first,
	}
}

// State returns the current state.
func (e *Engine) State() State {
	return e.state
}

// Items returns a copy of the per-item run state, indexed like the definition.
func (e *Engine) Items() []ItemState {
	out := make([]ItemState, len(e.items))
	copy(out, e.items)
	return out
}

// Run drives the engine until it is done. It returns ErrCanceled when the
// transport reports cancellation or ctx is done while waiting for input.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	for e.state != StateDone {
		if err := e.step(ctx); err != nil {
			return nil, err
		}
	}
	return e.result, nil
}

func (e *Engine) step(ctx context.Context) error {
	switch e.state {
	case StateAwaitingItem:
		e.advance()
	case StatePrompting:
		item := e.def[e.cursor]
		p := prompt.Prompt{Question: item.Prompt, Hint: e.items[e.cursor].Answer}
		if err := e.transport.Show(p); err != nil {
			return fmt.Errorf("showing prompt for %q: %w", item.ID, err)
		}
		e.state = StateAwaitingAnswer
	case StateAwaitingAnswer:
		return e.await(ctx)
	case StateFinalizing:
		result, err := e.finalize()
		if err != nil {
			return err
		}
		e.result = result
		e.state = StateDone
	}
	return nil
}

// advance moves to the next item, deciding its inclusion and seeding its answer.
func (e *Engine) advance() {
	e.cursor++
	if e.cursor >= len(e.def) {
		e.state = StateFinalizing
		return
	}

	item := e.def[e.cursor]
	st := &e.items[e.cursor]
	st.Include = e.evaluator.Evaluate(item, lookup{e})
	st.Evaluated = true
	if !st.Include {
		e.logger.Debug("item skipped", zap.String("item", item.ID))
		return
	}

	if e.useDefaults {
		st.Answer = item.Default
	} else {
		st.Answer = e.memory[item.ID]
	}
	e.logger.Debug("item included", zap.String("item", item.ID), zap.String("seed", st.Answer))
	e.state = StatePrompting
}

func (e *Engine) await(ctx context.Context) error {
	line, err := e.transport.NextLine(ctx)
	switch {
	case err == nil:
		e.applyInput(line)
		e.state = StateAwaitingItem
		return nil
	case errors.Is(err, io.EOF):
		// End of input: keep the seeded answer and stop asking.
		e.logger.Debug("input exhausted", zap.String("item", e.def[e.cursor].ID))
		e.state = StateFinalizing
		return nil
	case errors.Is(err, prompt.ErrCanceled), errors.Is(err, context.Canceled):
		return ErrCanceled
	default:
		return fmt.Errorf("reading answer for %q: %w", e.def[e.cursor].ID, err)
	}
}

// applyInput stores a typed line. An empty line keeps the seed, a lone
// ClearToken clears it, anything else replaces it (trimmed).
func (e *Engine) applyInput(line string) {
	if line == "" {
		return
	}
	if line == ClearToken {
		line = ""
	}
	e.items[e.cursor].Answer = strings.TrimSpace(line)
}

// lookup exposes run state to the constraint evaluator. Constraints resolve
// to the first item with a given id; only included items count as answered.
type lookup struct {
	e *Engine
}

func (l lookup) Answer(id string) (string, bool, bool) {
	idx, ok := l.e.first[id]
	if !ok {
		return "", false, false
	}
	st := l.e.items[idx]
	return st.Answer, true, st.Evaluated && st.Include
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
