// Package fields is the static registry of property fields: their category,
// validity bounds and display formatting.
package fields

import (
	"fmt"
	"strings"

	"github.com/denisok6893-rgb/property-compare/internal/domain"
)

// Category groups fields by the kind of value they hold.
type Category int

const (
	Text Category = iota
	Number
	Quality
	Bool
)

func (c Category) String() string {
	switch c {
	case Text:
		return "text"
	case Number:
		return "number"
	case Quality:
		return "quality"
	case Bool:
		return "bool"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Def describes one field.
type Def struct {
	Name     string
	Category Category
	Min      *float64
	Max      *float64
	Prefix   string
	Suffix   string
	// Message is shown when a value falls outside Min/Max.
	Message string
}

func bound(v float64) *float64 { return &v }

var defs = []Def{
	{Name: "listing_title", Category: Text},
	{Name: "url_link", Category: Text},
	{Name: "agent_website", Category: Text},
	{Name: "agent_email", Category: Text},
	{Name: "agent_phone", Category: Text},
	{Name: "notes", Category: Text},

	{Name: "house_price", Category: Number, Min: bound(0), Prefix: "£"},
	{Name: "floor_level", Category: Number, Min: bound(0)},
	{Name: "walk_to_station", Category: Number, Min: bound(0), Suffix: "mins"},
	{Name: "walk_to_park", Category: Number, Min: bound(0), Suffix: "mins"},
	{Name: "lease_length", Category: Number, Min: bound(0), Suffix: "years"},
	{Name: "energy_effeciency", Category: Number, Min: bound(0), Max: bound(100), Suffix: "0 - 100", Message: "Range is 0 to 100"},
	{Name: "est_monthly_rent", Category: Number, Min: bound(0), Prefix: "£"},
	{Name: "sc_gr_annual", Category: Number, Min: bound(0), Prefix: "£"},
	{Name: "sq_metres", Category: Number, Min: bound(0), Suffix: "sq mtr"},

	{Name: "interior", Category: Quality},
	{Name: "view", Category: Quality},

	{Name: "local_gym", Category: Bool},
	{Name: "local_supermarket", Category: Bool},
	{Name: "garden_balcony", Category: Bool},
	{Name: "off_street_parking", Category: Bool},
}

var byName = func() map[string]Def {
	m := make(map[string]Def, len(defs))
	for _, d := range defs {
		m[d.Name] = d
	}
	return m
}()

// ExemptFields are never required for a listing to count as complete.
var ExemptFields = []string{"agent_website", "agent_email", "agent_phone", "notes"}

// Lookup returns the definition for name.
func Lookup(name string) (Def, bool) {
	d, ok := byName[name]
	return d, ok
}

// MustLookup panics on an unknown name. Use it only for names fixed at
// compile time.
func MustLookup(name string) Def {
	d, ok := byName[name]
	if !ok {
		panic(fmt.Sprintf("fields: unknown field %q", name))
	}
	return d
}

// Names returns every registered field in declaration order.
func Names() []string {
	out := make([]string, len(defs))
	for i, d := range defs {
		out[i] = d.Name
	}
	return out
}

// All returns a copy of every definition in declaration order.
func All() []Def {
	out := make([]Def, len(defs))
	copy(out, defs)
	return out
}

// ByCategory returns the names in category c in declaration order.
func ByCategory(c Category) []string {
	var out []string
	for _, d := range defs {
		if d.Category == c {
			out = append(out, d.Name)
		}
	}
	return out
}

// Validate checks that v is usable for this field. Absent values are valid.
func (d Def) Validate(v domain.Value) error {
	if !v.Present() {
		return nil
	}
	switch d.Category {
	case Text:
		if v.Kind != domain.KindText {
			return fmt.Errorf("%s: expected text", d.Name)
		}
	case Number:
		if v.Kind != domain.KindNumber {
			return fmt.Errorf("%s: expected number", d.Name)
		}
		if (d.Min != nil && v.Number < *d.Min) || (d.Max != nil && v.Number > *d.Max) {
			if d.Message != "" {
				return fmt.Errorf("%s: %s", d.Name, d.Message)
			}
			return fmt.Errorf("%s: %v out of range%s", d.Name, v.Number, d.rangeText())
		}
	case Quality:
		if v.Kind != domain.KindQuality {
			return fmt.Errorf("%s: expected quality level", d.Name)
		}
		if _, ok := v.Quality.Level(); !ok {
			return fmt.Errorf("%s: unknown quality %q", d.Name, v.Quality)
		}
	case Bool:
		if v.Kind != domain.KindBool {
			return fmt.Errorf("%s: expected yes/no", d.Name)
		}
	}
	return nil
}

// Valid is Validate as a predicate.
func (d Def) Valid(v domain.Value) bool { return d.Validate(v) == nil }

func (d Def) rangeText() string {
	switch {
	case d.Min != nil && d.Max != nil:
		return fmt.Sprintf(" [%v, %v]", *d.Min, *d.Max)
	case d.Min != nil:
		return fmt.Sprintf(" (min %v)", *d.Min)
	case d.Max != nil:
		return fmt.Sprintf(" (max %v)", *d.Max)
	}
	return ""
}

// Label turns a snake_case field name into Title Case.
func Label(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool { return r == '_' || r == '-' })
	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
