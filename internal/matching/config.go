package matching

import (
	"errors"
	"fmt"
	"sort"

	"github.com/denisok6893-rgb/property-compare/internal/fields"
)

var (
	ErrUnknownField    = errors.New("unknown field")
	ErrMissingWeight   = errors.New("missing weight")
	ErrMissingFormula  = errors.New("missing formula")
	ErrFormulaMismatch = errors.New("formula does not fit field category")
	ErrInvalidProfile  = errors.New("invalid profile")
)

// Mode selects how points and cost combine into a score.
type Mode string

const (
	// ModeRatio is score = points / cost.
	ModeRatio Mode = "ratio"
	// ModeDifference is score = points − cost, the older additive model.
	ModeDifference Mode = "difference"
)

// Weights defines the coefficient for each scored field. For boolean
// fields the sign is carried by the formula's BoolMap values instead.
type Weights map[string]float64

// CostFields are summed into cost; every other rule adds to points.
var CostFields = []string{"house_price", "sc_gr_annual"}

// DefaultRules returns the formula for every scored field.
func DefaultRules() map[string]Formula {
	return map[string]Formula{
		"house_price":        Linear(),
		"sc_gr_annual":       Linear(),
		"floor_level":        Capped(6),
		"walk_to_station":    Threshold(10),
		"walk_to_park":       Threshold(15),
		"lease_length":       ThresholdCapped(125, 25),
		"energy_effeciency":  Threshold(70),
		"sq_metres":          Linear(),
		"interior":           EnumMap(),
		"view":               EnumMap(),
		"local_gym":          BoolMap(0, -1),
		"local_supermarket":  BoolMap(0, -1),
		"garden_balcony":     BoolMap(1, 0),
		"off_street_parking": BoolMap(1, 0),
	}
}

// DefaultWeights returns the baseline weights. Cost weights are positive so
// that cost reads as a 30-year outlay: price plus 30 years of charges.
func DefaultWeights() Weights {
	return Weights{
		"house_price":  1,
		"sc_gr_annual": 30,

		"floor_level":       2000,
		"walk_to_station":   -1000,
		"walk_to_park":      -1000,
		"lease_length":      1000,
		"energy_effeciency": 1000,
		"sq_metres":         9000,

		"interior": 10000,
		"view":     10000,

		"local_gym":          10000,
		"local_supermarket":  10000,
		"garden_balcony":     10000,
		"off_street_parking": 10000,
	}
}

type rule struct {
	field   string
	formula Formula
	weight  float64
	cost    bool
}

// Model is an immutable scoring configuration. Build one with NewModel;
// the zero value is not usable.
type Model struct {
	mode  Mode
	rules []rule
}

// NewModel validates the tables and freezes them. Every rule needs a weight,
// every weight needs a rule, and each formula must fit its field's category.
func NewModel(mode Mode, rules map[string]Formula, weights Weights) (*Model, error) {
	switch mode {
	case ModeRatio, ModeDifference:
	case "":
		mode = ModeRatio
	default:
		return nil, fmt.Errorf("%w: mode %q", ErrInvalidProfile, mode)
	}

	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	// Registry order keeps sums deterministic across runs.
	order := make(map[string]int)
	for i, n := range fields.Names() {
		order[n] = i
	}
	for _, name := range names {
		if _, ok := order[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
	}
	sort.Slice(names, func(i, j int) bool { return order[names[i]] < order[names[j]] })

	for name := range weights {
		if _, ok := rules[name]; !ok {
			return nil, fmt.Errorf("%w for weighted field %s", ErrMissingFormula, name)
		}
	}

	isCost := make(map[string]bool, len(CostFields))
	for _, c := range CostFields {
		isCost[c] = true
	}

	m := &Model{mode: mode, rules: make([]rule, 0, len(names))}
	for _, name := range names {
		f := rules[name]
		w, ok := weights[name]
		if !ok {
			return nil, fmt.Errorf("%w for %s", ErrMissingWeight, name)
		}
		def := fields.MustLookup(name)
		if !f.accepts(def.Category) {
			return nil, fmt.Errorf("%w: %s is %s, formula is %s", ErrFormulaMismatch, name, def.Category, f.Shape)
		}
		m.rules = append(m.rules, rule{field: name, formula: f, weight: w, cost: isCost[name]})
	}
	return m, nil
}

// MustModel is NewModel for tables fixed at compile time.
func MustModel(mode Mode, rules map[string]Formula, weights Weights) *Model {
	m, err := NewModel(mode, rules, weights)
	if err != nil {
		panic(fmt.Sprintf("matching: %v", err))
	}
	return m
}

// DefaultModel returns the ratio model with default rules and weights.
func DefaultModel() *Model {
	return MustModel(ModeRatio, DefaultRules(), DefaultWeights())
}

// Mode returns the scoring mode.
func (m *Model) Mode() Mode { return m.mode }

// Weights returns a copy of the model's weights.
func (m *Model) Weights() Weights {
	out := make(Weights, len(m.rules))
	for _, r := range m.rules {
		out[r.field] = r.weight
	}
	return out
}

// Fields returns the scored field names in evaluation order.
func (m *Model) Fields() []string {
	out := make([]string, len(m.rules))
	for i, r := range m.rules {
		out[i] = r.field
	}
	return out
}

// Formula returns the formula for field.
func (m *Model) Formula(field string) (Formula, bool) {
	for _, r := range m.rules {
		if r.field == field {
			return r.formula, true
		}
	}
	return Formula{}, false
}

// WithWeights returns a new model with overrides applied on top of the
// current weights. Overrides for fields without a rule are rejected.
func (m *Model) WithWeights(overrides Weights) (*Model, error) {
	w := m.Weights()
	for name, v := range overrides {
		if _, ok := w[name]; !ok {
			if _, known := fields.Lookup(name); !known {
				return nil, fmt.Errorf("%w: %s", ErrUnknownField, name)
			}
			return nil, fmt.Errorf("%w for weighted field %s", ErrMissingFormula, name)
		}
		w[name] = v
	}
	return NewModel(m.mode, m.rulesMap(), w)
}

// WithMode returns a copy of the model using mode.
func (m *Model) WithMode(mode Mode) (*Model, error) {
	return NewModel(mode, m.rulesMap(), m.Weights())
}

func (m *Model) rulesMap() map[string]Formula {
	out := make(map[string]Formula, len(m.rules))
	for _, r := range m.rules {
		out[r.field] = r.formula
	}
	return out
}
