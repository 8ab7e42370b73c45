package listing

import (
	"sort"
	"time"

	"github.com/denisok6893-rgb/property-compare/internal/domain"
)

func dayOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// ViewingsOn returns the listings with a viewing on day (in loc), earliest
// viewing first.
func ViewingsOn(props []domain.Property, day time.Time, loc *time.Location) []domain.Property {
	if loc == nil {
		loc = time.Local
	}
	want := dayOf(day, loc)

	var out []domain.Property
	for _, p := range props {
		if p.HasViewing() && dayOf(*p.ViewDate, loc).Equal(want) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ViewDate.Before(*out[j].ViewDate) })
	return out
}

// ViewingDays returns each calendar day (midnight in loc) with at least one
// viewing, ascending.
func ViewingDays(props []domain.Property, loc *time.Location) []time.Time {
	if loc == nil {
		loc = time.Local
	}
	seen := make(map[time.Time]bool)
	var out []time.Time
	for _, p := range props {
		if !p.HasViewing() {
			continue
		}
		d := dayOf(*p.ViewDate, loc)
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
