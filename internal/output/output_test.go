package output

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denisok6893-rgb/property-compare/internal/domain"
)

func f(v float64) *float64 { return &v }
func s(v string) *string   { return &v }

func rankFixture() RankReport {
	return RankReport{
		Mode:   "ratio",
		Filter: "all",
		Sort:   "highestScore",
		Total:  3,
		Rows: []RankRow{
			{
				Rank:     1,
				Property: domain.Property{ID: 1, ListingTitle: s("Two bed flat, Bow")},
				Score:    domain.PropertyScore{PropertyID: 1, Cost: 360000, Points: 451000, Score: 451000.0 / 360000, SqMtrCost: f(6666), RentalYield: f(0.0413)},
				Commute:  &domain.CommuteMetrics{PropertyID: 1, ActiveSlots: 3, MeasuredSlots: 2, TotalMinutes: 25},
				LikedBy:  []string{"ann", "bo"},
				Complete: true,
			},
			{
				Rank:     2,
				Property: domain.Property{ID: 9},
				Score:    domain.PropertyScore{PropertyID: 9, Score: math.NaN()},
			},
		},
	}
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "1.2528", FormatScore(domain.PropertyScore{Score: 451000.0 / 360000}, "ratio"))
	assert.Equal(t, "91,000", FormatScore(domain.PropertyScore{Score: 91000}, "difference"))
	assert.Equal(t, "n/a", FormatScore(domain.PropertyScore{Score: math.Inf(1)}, "ratio"))
	assert.Equal(t, "n/a", FormatScore(domain.PropertyScore{Score: math.NaN()}, "difference"))
}

func TestConsoleFormatter_Rank(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewConsoleFormatter(0).Format(&buf, rankFixture()))
	out := buf.String()

	assert.Contains(t, out, "Ranking (sort highestScore, filter all, ratio mode)")
	assert.Contains(t, out, "Two bed flat, Bow")
	assert.Contains(t, out, "1.2528")
	assert.Contains(t, out, "£360,000")
	assert.Contains(t, out, "£6,666")
	assert.Contains(t, out, "4.13%")
	assert.Contains(t, out, "25 mins (partial)")
	assert.Contains(t, out, "ann, bo")
	assert.Contains(t, out, "... *", "incomplete listing without a title")
	assert.Contains(t, out, "n/a")
	assert.Contains(t, out, "2 of 3 listings")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	header, first := lines[1], lines[2]
	assert.Equal(t, strings.Index(header, "Title"), strings.Index(first, "Two bed"), "columns line up")
	assert.Equal(t, strings.Index(header, "Score"), strings.Index(first, "1.2528"))
	for _, l := range lines {
		assert.Equal(t, strings.TrimRight(l, " "), l, "no trailing padding")
	}
}

func TestConsoleFormatter_Limit(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewConsoleFormatter(1).Format(&buf, rankFixture()))

	assert.NotContains(t, buf.String(), "n/a")
	assert.Contains(t, buf.String(), "1 more not shown")
}

func TestJSONFormatter_Rank(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(false).Format(&buf, rankFixture()))

	var got struct {
		Mode string `json:"mode"`
		Rows []struct {
			Rank  int `json:"rank"`
			Score struct {
				Score     *float64 `json:"score"`
				SqMtrCost *float64 `json:"sq_mtr_cost"`
			} `json:"score"`
			LikedBy []string `json:"liked_by"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, "ratio", got.Mode)
	require.Len(t, got.Rows, 2)
	require.NotNil(t, got.Rows[0].Score.Score)
	assert.InDelta(t, 1.25278, *got.Rows[0].Score.Score, 1e-5)
	assert.Equal(t, 6666.0, *got.Rows[0].Score.SqMtrCost)
	assert.Equal(t, []string{"ann", "bo"}, got.Rows[0].LikedBy)
	assert.Nil(t, got.Rows[1].Score.Score, "NaN encodes as null")
}

func TestReports_Tables(t *testing.T) {
	good := domain.QualityGood
	explain := ExplainReport{
		Mode:     "ratio",
		Property: domain.Property{ID: 1, ListingTitle: s("Flat"), SqMetres: f(45), Interior: &good},
		Score:    domain.PropertyScore{Cost: 1, Points: 2, Score: 2},
		Contributions: []domain.Contribution{
			{Field: "sq_metres", Converted: 45, Weight: 9000, Impact: 405000},
			{Field: "interior", Converted: 1, Weight: 10000, Impact: 10000},
			{Field: "walk_to_park", Weight: -1000, Missing: true},
		},
	}
	at := time.Date(2024, 3, 2, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		report Report
		want   []string
	}{
		{
			name:   "explain",
			report: explain,
			want:   []string{"1 Flat", "Sq Metres", "45 sq mtr", "405,000", "Good", "Walk To Park", "score 2.0000"},
		},
		{
			name: "commute",
			report: CommuteReport{
				Destinations: []string{"Liverpool Street"},
				Rows: []CommuteRow{
					{PropertyID: 1, Title: "Flat", Metrics: &domain.CommuteMetrics{ActiveSlots: 1, MeasuredSlots: 1, TotalMinutes: 30, AverageMinutes: 30}},
					{PropertyID: 2, Title: "House"},
				},
			},
			want: []string{"Commute to Liverpool Street", "30 mins", "1/1", "House"},
		},
		{
			name: "completeness",
			report: CompletenessReport{
				Completed:    []CompletenessRow{{PropertyID: 1, Title: "Flat"}},
				AwaitingInfo: []CompletenessRow{{PropertyID: 2, Title: "House", Missing: []string{"sq_metres", "view"}}},
			},
			want: []string{"Completed (1)", "Awaiting info (1)", "Sq Metres, View"},
		},
		{
			name: "viewings",
			report: ViewingsReport{Days: []ViewingDay{{
				Day:      time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
				Viewings: []Viewing{{PropertyID: 3, Title: "Loft", At: at, Offered: f(295000)}},
			}}},
			want: []string{"Saturday 2 March 2024", "10:30", "Loft", "£295,000"},
		},
		{
			name:   "no viewings",
			report: ViewingsReport{},
			want:   []string{"no viewings booked"},
		},
		{
			name: "fields",
			report: FieldsReport{Mode: "ratio", Fields: []FieldRow{
				{Name: "energy_effeciency", Label: "Energy Effeciency", Category: "number", Min: f(0), Max: f(100), Formula: "threshold", Weight: f(1000), Required: true},
				{Name: "notes", Label: "Notes", Category: "text"},
			}},
			want: []string{"Energy Effeciency", "0 to 100", "threshold", "1,000", "yes", "Notes"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewConsoleFormatter(0).Format(&buf, tt.report))
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}

			buf.Reset()
			require.NoError(t, NewJSONFormatter(true).Format(&buf, tt.report))
			assert.True(t, json.Valid(buf.Bytes()))
		})
	}
}

func TestNewFormatter(t *testing.T) {
	c, err := NewFormatter("console", 0)
	require.NoError(t, err)
	assert.IsType(t, &ConsoleFormatter{}, c)

	j, err := NewFormatter("json", 0)
	require.NoError(t, err)
	assert.IsType(t, &JSONFormatter{}, j)

	_, err = NewFormatter("markdown", 0)
	assert.Error(t, err)
}
