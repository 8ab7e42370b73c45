package listing

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denisok6893-rgb/property-compare/internal/domain"
	"github.com/denisok6893-rgb/property-compare/internal/fields"
)

func f(v float64) *float64               { return &v }
func b(v bool) *bool                     { return &v }
func q(v domain.Quality) *domain.Quality { return &v }
func s(v string) *string                 { return &v }

var day0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// complete returns a listing with every required field filled in.
func complete(id int64, title string) domain.Property {
	return domain.Property{
		ID:               id,
		CreatedAt:        day0.Add(time.Duration(id) * time.Hour),
		ListingTitle:     s(title),
		URLLink:          s("https://example.org/" + title),
		HousePrice:       f(300000),
		FloorLevel:       f(1),
		WalkToStation:    f(8),
		WalkToPark:       f(4),
		LeaseLength:      f(125),
		EnergyEfficiency: f(72),
		EstMonthlyRent:   f(1500),
		ScGrAnnual:       f(1800),
		SqMetres:         f(55),
		Interior:         q(domain.QualityOkay),
		View:             q(domain.QualityGood),
		LocalGym:         b(true),
		LocalSupermarket: b(true),
		GardenBalcony:    b(false),
		OffStreetParking: b(false),
	}
}

func ids(props []domain.Property) []int64 {
	out := make([]int64, len(props))
	for i, p := range props {
		out[i] = p.ID
	}
	return out
}

func TestMissingFields(t *testing.T) {
	p := complete(1, "Flat")
	assert.Empty(t, MissingFields(p, fields.ExemptFields))

	p.Notes = nil
	p.AgentPhone = nil
	assert.Empty(t, MissingFields(p, fields.ExemptFields), "exempt fields are never required")

	p.SqMetres = nil
	p.URLLink = s("   ")
	p.GardenBalcony = nil
	assert.Equal(t, []string{"url_link", "sq_metres", "garden_balcony"}, MissingFields(p, fields.ExemptFields))

	blank := complete(3, "Blank interior")
	blank.Interior = q("")
	assert.False(t, IsComplete(blank, fields.ExemptFields))
	assert.Equal(t, []string{"interior"}, MissingFields(blank, fields.ExemptFields))

	// false and zero are values, not gaps.
	house := complete(2, "House")
	house.FloorLevel = f(0)
	assert.True(t, IsComplete(house, fields.ExemptFields))
}

func TestClassify(t *testing.T) {
	a := complete(1, "A")
	bb := complete(2, "B")
	bb.View = nil
	c := complete(3, "C")
	d := domain.Property{ID: 4}

	got := Classify([]domain.Property{a, bb, c, d}, fields.ExemptFields)

	assert.Equal(t, []int64{1, 3}, ids(got.Completed))
	assert.Equal(t, []int64{2, 4}, ids(got.AwaitingInfo))
	assert.Len(t, append(got.Completed, got.AwaitingInfo...), 4)
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    CategoryFilter
		wantErr bool
	}{
		{in: "", want: CategoryFilter{Kind: FilterAll}},
		{in: "all", want: CategoryFilter{Kind: FilterAll}},
		{in: "awaitingInfo", want: CategoryFilter{Kind: FilterAwaitingInfo}},
		{in: "OFFERMADE", want: CategoryFilter{Kind: FilterOfferMade}},
		{in: "likedBy:u-42", want: LikedBy("u-42")},
		{in: "LIKEDBY:Ann", want: LikedBy("Ann")},
		{in: "likedBy:", wantErr: true},
		{in: "favourites", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFilter(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFilter)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			if tt.in != "" && tt.in != "OFFERMADE" && tt.in != "LIKEDBY:Ann" {
				assert.Equal(t, tt.in, got.String())
			}
		})
	}
}

func TestParseSortKey(t *testing.T) {
	k, err := ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortRecentlyAdded, k)

	k, err = ParseSortKey("sqrmtrcost")
	require.NoError(t, err)
	assert.Equal(t, SortSqrMtrCost, k)

	_, err = ParseSortKey("cheapest")
	assert.ErrorIs(t, err, ErrUnknownSortKey)
}

func TestArrange_SearchThenFilter(t *testing.T) {
	props := []domain.Property{
		complete(1, "Two bed flat, Bow"),
		complete(2, "Garden flat, Leyton"),
		complete(3, "Terrace house"),
		{ID: 4, ListingTitle: s("FLAT above shop")},
		{ID: 5},
	}
	props[1].ViewDate = &day0
	likes := domain.Likes{1: {"ann"}, 4: {"ann", "bo"}}
	in := Inputs{Properties: props, Likes: likes}

	got := Arrange(in, Query{Search: "Flat", Filter: CategoryFilter{Kind: FilterAll}, Sort: SortRecentlyAdded})
	assert.ElementsMatch(t, []int64{1, 2, 4}, ids(got))

	// The search string is matched as given, surrounding spaces included.
	got = Arrange(in, Query{Search: "flat a"})
	assert.Equal(t, []int64{4}, ids(got))
	assert.Empty(t, Arrange(in, Query{Search: " flat "}))
	assert.Empty(t, Arrange(in, Query{Search: "   "}))

	got = Arrange(in, Query{Search: "flat", Filter: CategoryFilter{Kind: FilterCompleted}})
	assert.ElementsMatch(t, []int64{1, 2}, ids(got))

	got = Arrange(in, Query{Filter: CategoryFilter{Kind: FilterAwaitingInfo}})
	assert.ElementsMatch(t, []int64{4, 5}, ids(got))

	got = Arrange(in, Query{Filter: CategoryFilter{Kind: FilterViewingBooked}})
	assert.Equal(t, []int64{2}, ids(got))

	got = Arrange(in, Query{Search: "flat", Filter: LikedBy("bo")})
	assert.Equal(t, []int64{4}, ids(got))

	got = Arrange(in, Query{Filter: LikedBy("nobody")})
	assert.Empty(t, got)
}

func TestArrange_OfferMade(t *testing.T) {
	p := complete(1, "A")
	p.Offered = f(295000)
	got := Arrange(Inputs{Properties: []domain.Property{p, complete(2, "B")}}, Query{Filter: CategoryFilter{Kind: FilterOfferMade}})
	assert.Equal(t, []int64{1}, ids(got))
}

func sortFixture() Inputs {
	props := make([]domain.Property, 6)
	for i := range props {
		props[i] = domain.Property{ID: int64(i + 1), CreatedAt: day0}
	}
	props[3].CreatedAt = day0.Add(time.Hour)
	props[5].CreatedAt = day0.Add(2 * time.Hour)

	return Inputs{
		Properties: props,
		Scores: map[int64]domain.PropertyScore{
			1: {PropertyID: 1, Cost: 200, Points: 300, Score: 1.5, SqMtrCost: f(5000)},
			2: {PropertyID: 2, Cost: 100, Points: 300, Score: 3, SqMtrCost: f(4000)},
			3: {PropertyID: 3, Cost: 200, Points: 300, Score: 1.5},
			4: {PropertyID: 4, Cost: 0, Points: 10, Score: math.Inf(1), SqMtrCost: f(4000)},
			5: {PropertyID: 5, Cost: 0, Points: 0, Score: math.NaN()},
		},
		Commute: map[int64]domain.CommuteMetrics{
			1: {PropertyID: 1, ActiveSlots: 2, MeasuredSlots: 2, TotalMinutes: 50},
			3: {PropertyID: 3, ActiveSlots: 2, MeasuredSlots: 1, TotalMinutes: 20},
			4: {PropertyID: 4, ActiveSlots: 2, MeasuredSlots: 2, TotalMinutes: 50},
			6: {PropertyID: 6, ActiveSlots: 2, MeasuredSlots: 0},
		},
	}
}

func TestArrange_SortKeys(t *testing.T) {
	tests := []struct {
		key  SortKey
		want []int64
	}{
		{key: SortRecentlyAdded, want: []int64{6, 4, 1, 2, 3, 5}},
		{key: SortHighestScore, want: []int64{2, 1, 3, 4, 5, 6}},
		{key: SortLowestCost, want: []int64{4, 5, 2, 1, 3, 6}},
		{key: SortHighestPoints, want: []int64{1, 2, 3, 4, 5, 6}},
		{key: SortSqrMtrCost, want: []int64{2, 4, 1, 3, 5, 6}},
		{key: SortCommuteAnalysis, want: []int64{1, 4, 3, 2, 5, 6}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			in := sortFixture()
			got := Arrange(in, Query{Sort: tt.key})
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestArrange_StableForEqualKeys(t *testing.T) {
	props := make([]domain.Property, 8)
	scores := make(map[int64]domain.PropertyScore, len(props))
	commute := make(map[int64]domain.CommuteMetrics, len(props))
	for i := range props {
		id := int64(100 - i)
		props[i] = domain.Property{ID: id, CreatedAt: day0}
		scores[id] = domain.PropertyScore{PropertyID: id, Cost: 1, Points: 2, Score: 2, SqMtrCost: f(10)}
		commute[id] = domain.CommuteMetrics{PropertyID: id, ActiveSlots: 1, MeasuredSlots: 1, TotalMinutes: 5}
	}
	in := Inputs{Properties: props, Scores: scores, Commute: commute}

	for _, key := range SortKeys {
		t.Run(string(key), func(t *testing.T) {
			assert.Equal(t, ids(props), ids(Arrange(in, Query{Sort: key})))
		})
	}
}

func TestArrange_DoesNotMutateInput(t *testing.T) {
	in := sortFixture()
	before := ids(in.Properties)

	_ = Arrange(in, Query{Sort: SortHighestScore})
	_ = Arrange(in, Query{Sort: SortCommuteAnalysis, Search: "x"})

	assert.Equal(t, before, ids(in.Properties))
}

func TestLikersAndFilterOptions(t *testing.T) {
	props := []domain.Property{{ID: 3}, {ID: 1}, {ID: 2}}
	likes := domain.Likes{
		1: {"cat", "ann"},
		3: {"bo", "cat"},
		9: {"zed"},
	}

	assert.Equal(t, []string{"bo", "cat", "ann"}, Likers(props, likes))

	opts := FilterOptions(props, likes)
	require.Len(t, opts, 8)
	assert.Equal(t, CategoryFilter{Kind: FilterAll}, opts[0])
	assert.Equal(t, LikedBy("bo"), opts[5])
	assert.Equal(t, "likedBy:ann", opts[7].String())
}

func TestViewings(t *testing.T) {
	at := func(d, h int) *time.Time {
		v := time.Date(2024, 3, d, h, 0, 0, 0, time.UTC)
		return &v
	}
	props := []domain.Property{
		{ID: 1, ViewDate: at(2, 15)},
		{ID: 2, ViewDate: at(1, 11)},
		{ID: 3},
		{ID: 4, ViewDate: at(2, 10)},
		{ID: 5, ViewDate: &time.Time{}},
	}

	got := ViewingsOn(props, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), time.UTC)
	assert.Equal(t, []int64{4, 1}, ids(got))

	days := ViewingDays(props, time.UTC)
	require.Len(t, days, 2)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), days[0])
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), days[1])
}
