// Package listing partitions, filters and orders property listings for
// display. Everything here works on copies; inputs are never mutated.
package listing

import (
	"github.com/denisok6893-rgb/property-compare/internal/domain"
	"github.com/denisok6893-rgb/property-compare/internal/fields"
)

// Partition splits listings by completeness, keeping input order.
type Partition struct {
	Completed    []domain.Property
	AwaitingInfo []domain.Property
}

// MissingFields returns the required fields of p that are absent or blank,
// in registry order. Fields named in exempt are never required.
func MissingFields(p domain.Property, exempt []string) []string {
	skip := make(map[string]bool, len(exempt))
	for _, e := range exempt {
		skip[e] = true
	}
	var missing []string
	for _, name := range fields.Names() {
		if skip[name] {
			continue
		}
		if p.Value(name).Blank() {
			missing = append(missing, name)
		}
	}
	return missing
}

// IsComplete reports whether every non-exempt field of p has a value.
func IsComplete(p domain.Property, exempt []string) bool {
	return len(MissingFields(p, exempt)) == 0
}

// Classify puts each listing into exactly one side of the partition.
func Classify(props []domain.Property, exempt []string) Partition {
	var out Partition
	for _, p := range props {
		if IsComplete(p, exempt) {
			out.Completed = append(out.Completed, p)
		} else {
			out.AwaitingInfo = append(out.AwaitingInfo, p)
		}
	}
	return out
}
