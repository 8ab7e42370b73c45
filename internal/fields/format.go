package fields

import (
	"math"
	"strconv"
	"strings"

	"github.com/denisok6893-rgb/property-compare/internal/domain"
)

// Placeholder is shown for values that are not known yet.
const Placeholder = "..."

// Format renders v for display using the field's prefix and suffix.
func (d Def) Format(v domain.Value) string {
	if !v.Present() {
		if d.Category == Bool {
			return "Unknown"
		}
		return Placeholder
	}
	switch v.Kind {
	case domain.KindText:
		return v.Text
	case domain.KindNumber:
		if d.Prefix == "£" {
			return Currency(v.Number)
		}
		s := d.Prefix + strconv.FormatFloat(v.Number, 'f', -1, 64)
		if d.Suffix != "" {
			s += " " + d.Suffix
		}
		return s
	case domain.KindQuality:
		return string(v.Quality)
	case domain.KindBool:
		if v.Bool {
			return "Yes"
		}
		return "No"
	}
	return Placeholder
}

// Currency formats n as whole pounds with thousands separators.
func Currency(n float64) string {
	return "£" + Grouped(n, 0)
}

// Grouped formats n with the given decimals and comma thousands separators.
func Grouped(n float64, decimals int) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return "n/a"
	}
	s := strconv.FormatFloat(n, 'f', decimals, 64)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + frac
}
