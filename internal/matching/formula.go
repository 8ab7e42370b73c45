package matching

import (
	"fmt"
	"math"

	"github.com/denisok6893-rgb/property-compare/internal/domain"
	"github.com/denisok6893-rgb/property-compare/internal/fields"
)

// Shape selects how a converted value and a weight combine.
type Shape int

const (
	ShapeLinear Shape = iota
	ShapeCapped
	ShapeThreshold
	ShapeEnumMap
	ShapeBoolMap
)

func (s Shape) String() string {
	switch s {
	case ShapeLinear:
		return "linear"
	case ShapeCapped:
		return "capped"
	case ShapeThreshold:
		return "threshold"
	case ShapeEnumMap:
		return "enum"
	case ShapeBoolMap:
		return "bool"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

// Formula describes a field's converter and contribution rule as data.
type Formula struct {
	Shape Shape
	// Base is subtracted before weighting (ShapeThreshold).
	Base float64
	// Cap bounds the converted value from above when HasCap is set.
	Cap    float64
	HasCap bool
	// TrueValue and FalseValue are used by ShapeBoolMap.
	TrueValue  float64
	FalseValue float64
}

// Linear is x·w.
func Linear() Formula { return Formula{Shape: ShapeLinear} }

// Capped is min(x, max)·w.
func Capped(max float64) Formula { return Formula{Shape: ShapeCapped, Cap: max, HasCap: true} }

// Threshold is (x − base)·w.
func Threshold(base float64) Formula { return Formula{Shape: ShapeThreshold, Base: base} }

// ThresholdCapped is min(x − base, max)·w.
func ThresholdCapped(base, max float64) Formula {
	return Formula{Shape: ShapeThreshold, Base: base, Cap: max, HasCap: true}
}

// EnumMap converts a quality level to −2..2, then x·w.
func EnumMap() Formula { return Formula{Shape: ShapeEnumMap} }

// BoolMap converts true/false to the given numbers, then x·w.
func BoolMap(trueVal, falseVal float64) Formula {
	return Formula{Shape: ShapeBoolMap, TrueValue: trueVal, FalseValue: falseVal}
}

// accepts reports whether the formula can read values of category c.
func (f Formula) accepts(c fields.Category) bool {
	switch f.Shape {
	case ShapeLinear, ShapeCapped, ShapeThreshold:
		return c == fields.Number
	case ShapeEnumMap:
		return c == fields.Quality
	case ShapeBoolMap:
		return c == fields.Bool
	}
	return false
}

// Convert turns a raw value into a number. It reports false for values the
// formula cannot read; callers treat those as contributing nothing.
func (f Formula) Convert(v domain.Value) (float64, bool) {
	switch f.Shape {
	case ShapeLinear, ShapeCapped, ShapeThreshold:
		if v.Kind != domain.KindNumber || math.IsNaN(v.Number) || math.IsInf(v.Number, 0) {
			return 0, false
		}
		return v.Number, true
	case ShapeEnumMap:
		if v.Kind != domain.KindQuality {
			return 0, false
		}
		level, ok := v.Quality.Level()
		return float64(level), ok
	case ShapeBoolMap:
		if v.Kind != domain.KindBool {
			return 0, false
		}
		if v.Bool {
			return f.TrueValue, true
		}
		return f.FalseValue, true
	}
	return 0, false
}

// Apply combines a converted value with a weight.
func (f Formula) Apply(x, w float64) float64 {
	switch f.Shape {
	case ShapeCapped:
		return math.Min(x, f.Cap) * w
	case ShapeThreshold:
		x -= f.Base
		if f.HasCap {
			x = math.Min(x, f.Cap)
		}
		return x * w
	default:
		return x * w
	}
}
