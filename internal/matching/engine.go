package matching

import (
	"math"
	"sort"

	"github.com/denisok6893-rgb/property-compare/internal/domain"
	"github.com/denisok6893-rgb/property-compare/internal/fields"
)

type Engine struct {
	model *Model
}

// NewEngine returns an engine for m, or for the default model when m is nil.
func NewEngine(m *Model) *Engine {
	if m == nil {
		m = DefaultModel()
	}
	return &Engine{model: m}
}

// Model returns the engine's scoring model.
func (e *Engine) Model() *Model { return e.model }

// Score computes cost, points and score for one property. Absent or invalid
// values contribute zero. With a zero cost the ratio score is ±Inf or NaN;
// callers check HasFiniteScore.
func (e *Engine) Score(p domain.Property) domain.PropertyScore {
	var cost, points float64
	for _, r := range e.model.rules {
		impact, _, ok := r.contribution(p)
		if !ok {
			continue
		}
		if r.cost {
			cost += impact
		} else {
			points += impact
		}
	}

	var score float64
	switch e.model.mode {
	case ModeDifference:
		score = points - cost
	default:
		score = points / cost
	}

	return domain.PropertyScore{
		PropertyID:  p.ID,
		Cost:        cost,
		Points:      points,
		Score:       score,
		SqMtrCost:   sqMtrCost(p),
		RentalYield: rentalYield(p),
	}
}

// ScoreAll scores each property independently, keyed by id.
func (e *Engine) ScoreAll(properties []domain.Property) map[int64]domain.PropertyScore {
	out := make(map[int64]domain.PropertyScore, len(properties))
	for _, p := range properties {
		out[p.ID] = e.Score(p)
	}
	return out
}

// Explain returns every scored field's contribution, largest absolute impact
// first. Missing fields are listed last with zero impact.
func (e *Engine) Explain(p domain.Property) []domain.Contribution {
	out := make([]domain.Contribution, 0, len(e.model.rules))
	for _, r := range e.model.rules {
		impact, converted, ok := r.contribution(p)
		out = append(out, domain.Contribution{
			Field:     r.field,
			Cost:      r.cost,
			Converted: converted,
			Weight:    r.weight,
			Impact:    impact,
			Missing:   !ok,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Missing != out[j].Missing {
			return !out[i].Missing
		}
		return math.Abs(out[i].Impact) > math.Abs(out[j].Impact)
	})
	return out
}

func (r rule) contribution(p domain.Property) (impact, converted float64, ok bool) {
	v := p.Value(r.field)
	if !v.Present() || !fields.MustLookup(r.field).Valid(v) {
		return 0, 0, false
	}
	x, ok := r.formula.Convert(v)
	if !ok {
		return 0, 0, false
	}
	return r.formula.Apply(x, r.weight), x, true
}

// validNumber returns the field's value when present and within bounds.
func validNumber(p domain.Property, field string) (float64, bool) {
	v := p.Value(field)
	if v.Kind != domain.KindNumber || !fields.MustLookup(field).Valid(v) {
		return 0, false
	}
	return v.Number, true
}

func sqMtrCost(p domain.Property) *float64 {
	price, ok := validNumber(p, "house_price")
	if !ok {
		return nil
	}
	area, ok := validNumber(p, "sq_metres")
	if !ok || area <= 0 {
		return nil
	}
	v := math.Floor(price / area)
	return &v
}

func rentalYield(p domain.Property) *float64 {
	price, ok := validNumber(p, "house_price")
	if !ok || price <= 0 {
		return nil
	}
	rent, ok := validNumber(p, "est_monthly_rent")
	if !ok {
		return nil
	}
	charge, ok := validNumber(p, "sc_gr_annual")
	if !ok {
		return nil
	}
	v := roundHalfUp((12*rent-charge)/price*10000) / 10000
	return &v
}

// roundHalfUp rounds .5 toward +Inf.
func roundHalfUp(x float64) float64 { return math.Floor(x + 0.5) }
