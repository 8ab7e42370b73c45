package listing

import (
	"math"
	"sort"
	"strings"

	"github.com/denisok6893-rgb/property-compare/internal/domain"
	"github.com/denisok6893-rgb/property-compare/internal/fields"
)

// Inputs are the batch-wide lookups the pipeline reads. Exempt defaults to
// fields.ExemptFields when nil.
type Inputs struct {
	Properties []domain.Property
	Scores     map[int64]domain.PropertyScore
	Commute    map[int64]domain.CommuteMetrics
	Likes      domain.Likes
	Exempt     []string
}

// Arrange runs search, then the category filter, then a stable sort, and
// returns a new slice.
func Arrange(in Inputs, q Query) []domain.Property {
	exempt := in.Exempt
	if exempt == nil {
		exempt = fields.ExemptFields
	}
	needle := strings.ToLower(q.Search)

	out := make([]domain.Property, 0, len(in.Properties))
	for _, p := range in.Properties {
		if needle != "" && !strings.Contains(strings.ToLower(p.Title()), needle) {
			continue
		}
		if !q.Filter.matches(p, in.Likes, exempt) {
			continue
		}
		out = append(out, p)
	}

	sortStable(out, in, q.Sort)
	return out
}

func (f CategoryFilter) matches(p domain.Property, likes domain.Likes, exempt []string) bool {
	switch f.Kind {
	case FilterCompleted:
		return IsComplete(p, exempt)
	case FilterAwaitingInfo:
		return !IsComplete(p, exempt)
	case FilterViewingBooked:
		return p.HasViewing()
	case FilterOfferMade:
		return p.HasOffer()
	case FilterLikedBy:
		return likes.LikedBy(p.ID, f.UserID)
	default:
		return true
	}
}

// Sort tiers, compared before the key itself.
const (
	tierKeyed   = iota
	tierPartial // commute measured on only some active slots
	tierNoKey
)

type sortEntry struct {
	p    domain.Property
	key  float64
	tier int
}

// sortStable orders props in place by key. Listings without a usable key
// (no score, a non-finite score, no £/area, no commute data) go last in
// their original order. Under commuteAnalysis a partially measured listing
// follows every fully measured one.
func sortStable(props []domain.Property, in Inputs, key SortKey) {
	if key == SortRecentlyAdded || key == "" {
		sort.SliceStable(props, func(i, j int) bool {
			return props[i].CreatedAt.After(props[j].CreatedAt)
		})
		return
	}

	desc := key == SortHighestScore || key == SortHighestPoints
	entries := make([]sortEntry, len(props))
	for i, p := range props {
		k, tier := sortValue(p, in, key)
		if math.IsNaN(k) || math.IsInf(k, 0) {
			tier = tierNoKey
		}
		entries[i] = sortEntry{p: p, key: k, tier: tier}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.tier != b.tier {
			return a.tier < b.tier
		}
		if a.tier == tierNoKey {
			return false
		}
		if desc {
			return a.key > b.key
		}
		return a.key < b.key
	})
	for i, e := range entries {
		props[i] = e.p
	}
}

func sortValue(p domain.Property, in Inputs, key SortKey) (float64, int) {
	switch key {
	case SortCommuteAnalysis:
		m, ok := in.Commute[p.ID]
		if !ok || m.MeasuredSlots == 0 {
			return 0, tierNoKey
		}
		if m.MeasuredSlots < m.ActiveSlots {
			return m.TotalMinutes, tierPartial
		}
		return m.TotalMinutes, tierKeyed
	}

	s, ok := in.Scores[p.ID]
	if !ok {
		return 0, tierNoKey
	}
	switch key {
	case SortHighestScore:
		return s.Score, tierKeyed
	case SortLowestCost:
		return s.Cost, tierKeyed
	case SortHighestPoints:
		return s.Points, tierKeyed
	case SortSqrMtrCost:
		if s.SqMtrCost == nil {
			return 0, tierNoKey
		}
		return *s.SqMtrCost, tierKeyed
	}
	return 0, tierNoKey
}

// Likers returns every user who liked at least one of props, in the order
// they are first seen.
func Likers(props []domain.Property, likes domain.Likes) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range props {
		for _, u := range likes[p.ID] {
			if seen[u] {
				continue
			}
			seen[u] = true
			out = append(out, u)
		}
	}
	return out
}

// FilterOptions returns the fixed filters followed by one likedBy filter
// per liker.
func FilterOptions(props []domain.Property, likes domain.Likes) []CategoryFilter {
	out := []CategoryFilter{
		{Kind: FilterAll},
		{Kind: FilterCompleted},
		{Kind: FilterAwaitingInfo},
		{Kind: FilterViewingBooked},
		{Kind: FilterOfferMade},
	}
	for _, u := range Likers(props, likes) {
		out = append(out, LikedBy(u))
	}
	return out
}
