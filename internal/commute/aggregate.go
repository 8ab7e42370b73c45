// Package commute turns per-destination travel times into comparable
// commute metrics.
package commute

import (
	"math"

	"github.com/denisok6893-rgb/property-compare/internal/domain"
)

// ActiveSlots returns the zero-based indexes of slots with a destination
// address. A nil settings value has no active slots.
func ActiveSlots(settings *domain.CommuteSettings) []int {
	if settings == nil {
		return nil
	}
	var out []int
	for i, addr := range settings.Slots() {
		if addr != nil {
			out = append(out, i)
		}
	}
	return out
}

// Aggregate sums the sample over the active slots. Slots without a travel
// time are skipped and show up as MeasuredSlots < ActiveSlots.
func Aggregate(sample domain.CommuteSample, settings *domain.CommuteSettings) domain.CommuteMetrics {
	active := ActiveSlots(settings)
	times := sample.Slots()

	m := domain.CommuteMetrics{PropertyID: sample.PropertyID, ActiveSlots: len(active)}
	for _, i := range active {
		t := times[i]
		if t == nil || math.IsNaN(*t) || math.IsInf(*t, 0) {
			continue
		}
		m.MeasuredSlots++
		m.TotalSeconds += *t
	}
	m.TotalMinutes = roundHalfUp(m.TotalSeconds / 60)
	if m.ActiveSlots > 0 {
		m.AverageMinutes = roundHalfUp(m.TotalMinutes / float64(m.ActiveSlots))
	}
	return m
}

// AggregateAll aggregates every sample against the same project settings.
// Properties without a sample are absent from the result.
func AggregateAll(samples map[int64]domain.CommuteSample, settings *domain.CommuteSettings) map[int64]domain.CommuteMetrics {
	out := make(map[int64]domain.CommuteMetrics, len(samples))
	for id, s := range samples {
		s.PropertyID = id
		out[id] = Aggregate(s, settings)
	}
	return out
}

func roundHalfUp(x float64) float64 { return math.Floor(x + 0.5) }
