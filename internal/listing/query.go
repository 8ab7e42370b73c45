package listing

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownFilter  = errors.New("unknown filter")
	ErrUnknownSortKey = errors.New("unknown sort key")
)

// FilterKind names one of the closed set of category filters.
type FilterKind int

const (
	FilterAll FilterKind = iota
	FilterCompleted
	FilterAwaitingInfo
	FilterViewingBooked
	FilterOfferMade
	FilterLikedBy
)

const likedByPrefix = "likedBy:"

var filterNames = map[FilterKind]string{
	FilterAll:           "all",
	FilterCompleted:     "completed",
	FilterAwaitingInfo:  "awaitingInfo",
	FilterViewingBooked: "viewingBooked",
	FilterOfferMade:     "offerMade",
}

// CategoryFilter is the single active filter. UserID is only read for
// FilterLikedBy.
type CategoryFilter struct {
	Kind   FilterKind
	UserID string
}

// LikedBy returns the filter for listings liked by userID.
func LikedBy(userID string) CategoryFilter {
	return CategoryFilter{Kind: FilterLikedBy, UserID: userID}
}

func (f CategoryFilter) String() string {
	if f.Kind == FilterLikedBy {
		return likedByPrefix + f.UserID
	}
	if s, ok := filterNames[f.Kind]; ok {
		return s
	}
	return fmt.Sprintf("filter(%d)", int(f.Kind))
}

// ParseFilter reads the form produced by String. The empty string is "all".
// Filter names and the likedBy: prefix match case-insensitively; the user id
// is kept as given.
func ParseFilter(s string) (CategoryFilter, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CategoryFilter{Kind: FilterAll}, nil
	}
	if len(s) >= len(likedByPrefix) && strings.EqualFold(s[:len(likedByPrefix)], likedByPrefix) {
		user := s[len(likedByPrefix):]
		if user == "" {
			return CategoryFilter{}, fmt.Errorf("%w: %q needs a user id", ErrUnknownFilter, s)
		}
		return LikedBy(user), nil
	}
	for kind, name := range filterNames {
		if strings.EqualFold(s, name) {
			return CategoryFilter{Kind: kind}, nil
		}
	}
	return CategoryFilter{}, fmt.Errorf("%w: %q", ErrUnknownFilter, s)
}

// SortKey selects the comparator applied last.
type SortKey string

const (
	SortRecentlyAdded   SortKey = "recentlyAdded"
	SortHighestScore    SortKey = "highestScore"
	SortLowestCost      SortKey = "lowestCost"
	SortHighestPoints   SortKey = "highestPoints"
	SortSqrMtrCost      SortKey = "sqrMtrCost"
	SortCommuteAnalysis SortKey = "commuteAnalysis"
)

// SortKeys lists every key in menu order.
var SortKeys = []SortKey{
	SortRecentlyAdded, SortHighestScore, SortLowestCost,
	SortHighestPoints, SortSqrMtrCost, SortCommuteAnalysis,
}

// ParseSortKey matches s case-insensitively. The empty string is
// recentlyAdded.
func ParseSortKey(s string) (SortKey, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return SortRecentlyAdded, nil
	}
	for _, k := range SortKeys {
		if strings.EqualFold(s, string(k)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSortKey, s)
}

// Query is the user's current search, filter and sort selection.
type Query struct {
	Search string
	Filter CategoryFilter
	Sort   SortKey
}
