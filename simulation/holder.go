package simulation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/katalvlaran/simpop/period"
	"github.com/katalvlaran/simpop/variable"
)

// Holder stores the committed value arrays of one variable for one
// population, keyed by canonical period key.
type Holder struct {
	variable *Variable
	pop      *Population
	values   map[string][]cty.Value
}

// Variable aliases variable.Variable to keep Holder's surface local.
type Variable = variable.Variable

func newHolder(v *Variable, pop *Population) *Holder {
	return &Holder{variable: v, pop: pop, values: make(map[string][]cty.Value)}
}

// Variable returns the held variable's declaration.
func (h *Holder) Variable() *Variable { return h.variable }

// Get returns the committed array for p, if any. For eternity-defined
// variables the stored value answers regardless of the requested period.
func (h *Holder) Get(p period.Period) ([]cty.Value, bool) {
	key := p.Key()
	if h.variable.DefinitionPeriod == period.UnitEternity {
		key = period.Eternity.Key()
	}
	arr, ok := h.values[key]
	return arr, ok
}

// Periods returns the canonical keys holding committed arrays, sorted by
// period size then lexically; mainly for inspection and tests.
func (h *Holder) Periods() []string {
	keys := make([]string, 0, len(h.values))
	for k := range h.values {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		pa, pb := period.MustParse(a), period.MustParse(b)
		if c := period.Compare(pa, pb); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return keys
}

// SetInput commits values for period p.
//
// The input grain is checked against the variable's definition period:
//
//   - eternity-defined variables accept any period and store once;
//   - an input finer than the definition period fails with
//     *PeriodMismatchError;
//   - an exact single-unit period overwrites the stored array;
//   - a coarser (or multi-unit) period is decomposed onto the definition
//     periods it spans. Periods already holding a value keep it; the
//     remaining ones receive the input value as-is, or — for divisible
//     numeric variables — an equal share of what the coarse total leaves
//     after subtracting the already-known periods.
//
// Committing buffered periods smallest-first therefore makes finer facts
// win over coarser ones.
func (h *Holder) SetInput(p period.Period, values []cty.Value) error {
	if len(values) != h.pop.Count {
		return fmt.Errorf("%w: %s at %s: got %d, population has %d",
			ErrBadArraySize, h.variable.Name, p.Key(), len(values), h.pop.Count)
	}

	def := h.variable.DefinitionPeriod
	if def == period.UnitEternity {
		h.values[period.Eternity.Key()] = slices.Clone(values)
		return nil
	}
	if p.Unit < def {
		return newPeriodMismatch(h.variable.Name, p, def)
	}
	if p.Unit == def && p.Size <= 1 {
		h.values[p.Key()] = slices.Clone(values)
		return nil
	}

	var spans []period.Period
	switch def {
	case period.UnitMonth:
		spans = p.Months()
	case period.UnitYear:
		spans = p.Years()
	}
	if len(spans) == 0 {
		// Eternity (or otherwise undecomposable) input onto a dated variable.
		return newPeriodMismatch(h.variable.Name, p, def)
	}
	h.decompose(spans, values)
	return nil
}

// decompose spreads a coarse input over the definition periods it spans,
// preserving any span that already holds a value.
func (h *Holder) decompose(spans []period.Period, values []cty.Value) {
	var missing []period.Period
	for _, sp := range spans {
		if _, ok := h.values[sp.Key()]; !ok {
			missing = append(missing, sp)
		}
	}
	if len(missing) == 0 {
		return
	}

	if h.variable.Divisible && h.variable.Type == cty.Number {
		shares := make([]cty.Value, len(values))
		for i, v := range values {
			total := numberToFloat(v)
			known := 0.0
			for _, sp := range spans {
				if arr, ok := h.values[sp.Key()]; ok {
					known += numberToFloat(arr[i])
				}
			}
			shares[i] = cty.NumberFloatVal((total - known) / float64(len(missing)))
		}
		for _, sp := range missing {
			h.values[sp.Key()] = slices.Clone(shares)
		}
		return
	}

	for _, sp := range missing {
		h.values[sp.Key()] = slices.Clone(values)
	}
}

// numberToFloat extracts a float64 from a cty number, treating null as 0.
func numberToFloat(v cty.Value) float64 {
	if v.IsNull() {
		return 0
	}
	f, _ := v.AsBigFloat().Float64()
	return f
}
