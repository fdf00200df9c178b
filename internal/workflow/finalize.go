package workflow

import (
	"sort"
	"strings"

	"github.com/ariel-frischer/astroname/internal/template"
	"go.uber.org/zap"
)

// finalize assembles the name from included, non-empty answers in ascending
// Order (ties keep definition order) and builds the memory to persist. The
// loaded memory is carried over so entries for skipped or retired items
// survive.
func (e *Engine) finalize() (*Result, error) {
	order := make([]int, len(e.def))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return e.def[order[a]].Order < e.def[order[b]].Order
	})

	result := &Result{Memory: e.memory.Clone()}
	for i, st := range e.items {
		if st.Include {
			result.Included = append(result.Included, e.def[i].ID)
		}
	}

	for _, idx := range order {
		st := e.items[idx]
		if !st.Include {
			continue
		}
		item := e.def[idx]
		result.Memory[item.ID] = st.Answer
		if st.Answer == "" {
			continue
		}

		expr := item.FormatExpression()
		rendered, err := template.Render(expr, st.Answer)
		if err != nil {
			return nil, NewRenderError(item.ID, expr, err)
		}
		result.Fragments = append(result.Fragments, strings.ReplaceAll(rendered, " ", e.spaces))
	}

	result.Name = strings.Join(result.Fragments, e.separator)
	e.logger.Debug("name assembled",
		zap.String("name", result.Name),
		zap.Int("fragments", len(result.Fragments)),
		zap.Strings("included", result.Included))
	return result, nil
}
