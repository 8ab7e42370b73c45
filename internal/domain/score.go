package domain

import (
	"encoding/json"
	"math"
)

// PropertyScore is the derived comparison tuple for one property. It is
// recomputed on every pass and never stored.
type PropertyScore struct {
	PropertyID  int64    `json:"property_id"`
	Cost        float64  `json:"cost"`
	Points      float64  `json:"points"`
	Score       float64  `json:"score"`
	SqMtrCost   *float64 `json:"sq_mtr_cost"`
	RentalYield *float64 `json:"rental_yield"`
}

// HasFiniteScore is false when the score came from a zero cost.
func (s PropertyScore) HasFiniteScore() bool {
	return !math.IsNaN(s.Score) && !math.IsInf(s.Score, 0)
}

// MarshalJSON writes a non-finite score as null; encoding/json rejects NaN
// and Inf.
func (s PropertyScore) MarshalJSON() ([]byte, error) {
	type alias PropertyScore
	var score *float64
	if s.HasFiniteScore() {
		v := s.Score
		score = &v
	}
	return json.Marshal(struct {
		alias
		Score *float64 `json:"score"`
	}{alias: alias(s), Score: score})
}

// Contribution is one field's share of a PropertyScore.
type Contribution struct {
	Field     string  `json:"field"`
	Cost      bool    `json:"cost"`
	Converted float64 `json:"converted"`
	Weight    float64 `json:"weight"`
	Impact    float64 `json:"impact"`
	Missing   bool    `json:"missing"`
}
