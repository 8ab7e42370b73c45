// Package output renders engine results for the terminal or as JSON.
package output

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/denisok6893-rgb/property-compare/internal/domain"
	"github.com/denisok6893-rgb/property-compare/internal/fields"
)

// Table is a titled grid of already formatted cells.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Footer  string
}

// Report is anything the formatters can render. JSON output marshals the
// report itself; console output draws its tables.
type Report interface {
	Tables() []Table
}

// RankRow is one listing in display order.
type RankRow struct {
	Rank     int                    `json:"rank"`
	Property domain.Property        `json:"property"`
	Score    domain.PropertyScore   `json:"score"`
	Commute  *domain.CommuteMetrics `json:"commute,omitempty"`
	LikedBy  []string               `json:"liked_by,omitempty"`
	Complete bool                   `json:"complete"`
}

// RankReport is the ordered listing produced by the rank command.
type RankReport struct {
	Mode   string    `json:"mode"`
	Search string    `json:"search,omitempty"`
	Filter string    `json:"filter"`
	Sort   string    `json:"sort"`
	Total  int       `json:"total"`
	Rows   []RankRow `json:"rows"`
}

func (r RankReport) Tables() []Table {
	t := Table{
		Title:   fmt.Sprintf("Ranking (sort %s, filter %s, %s mode)", r.Sort, r.Filter, r.Mode),
		Headers: []string{"#", "ID", "Title", "Score", "Points", "Cost", "£/m²", "Yield", "Commute", "Liked by"},
	}
	if r.Search != "" {
		t.Title += fmt.Sprintf(" matching %q", r.Search)
	}
	for _, row := range r.Rows {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(row.Rank),
			strconv.FormatInt(row.Property.ID, 10),
			titleOf(row.Property, row.Complete),
			FormatScore(row.Score, r.Mode),
			fields.Grouped(row.Score.Points, 0),
			fields.Currency(row.Score.Cost),
			optionalCurrency(row.Score.SqMtrCost),
			optionalPercent(row.Score.RentalYield),
			commuteCell(row.Commute),
			strings.Join(row.LikedBy, ", "),
		})
	}
	t.Footer = fmt.Sprintf("%d of %d listings", len(r.Rows), r.Total)
	return []Table{t}
}

// ExplainReport breaks one listing's score down by field.
type ExplainReport struct {
	Mode          string                `json:"mode"`
	Property      domain.Property       `json:"property"`
	Score         domain.PropertyScore  `json:"score"`
	Contributions []domain.Contribution `json:"contributions"`
}

func (r ExplainReport) Tables() []Table {
	t := Table{
		Title:   fmt.Sprintf("%d %s", r.Property.ID, r.Property.Title()),
		Headers: []string{"Field", "Value", "Weight", "Impact", "Side"},
	}
	for _, c := range r.Contributions {
		def := fields.MustLookup(c.Field)
		side := "points"
		if c.Cost {
			side = "cost"
		}
		impact := fields.Grouped(c.Impact, 0)
		if c.Missing {
			impact = fields.Placeholder
		}
		t.Rows = append(t.Rows, []string{
			fields.Label(c.Field),
			def.Format(r.Property.Value(c.Field)),
			fields.Grouped(c.Weight, 0),
			impact,
			side,
		})
	}
	t.Footer = fmt.Sprintf("points %s, cost %s, score %s",
		fields.Grouped(r.Score.Points, 0), fields.Currency(r.Score.Cost), FormatScore(r.Score, r.Mode))
	return []Table{t}
}

// CommuteRow pairs a listing with its aggregated commute, if any.
type CommuteRow struct {
	PropertyID int64                  `json:"property_id"`
	Title      string                 `json:"title"`
	Metrics    *domain.CommuteMetrics `json:"metrics"`
}

// CommuteReport lists commute metrics against the project's destinations.
type CommuteReport struct {
	Destinations []string     `json:"destinations"`
	Rows         []CommuteRow `json:"rows"`
}

func (r CommuteReport) Tables() []Table {
	t := Table{
		Title:   "Commute to " + strings.Join(r.Destinations, ", "),
		Headers: []string{"ID", "Title", "Total", "Average", "Measured"},
	}
	if len(r.Destinations) == 0 {
		t.Title = "Commute (no destinations configured)"
	}
	for _, row := range r.Rows {
		total, avg, measured := fields.Placeholder, fields.Placeholder, fields.Placeholder
		if m := row.Metrics; m != nil {
			total = fmt.Sprintf("%s mins", fields.Grouped(m.TotalMinutes, 0))
			avg = fmt.Sprintf("%s mins", fields.Grouped(m.AverageMinutes, 0))
			measured = fmt.Sprintf("%d/%d", m.MeasuredSlots, m.ActiveSlots)
		}
		t.Rows = append(t.Rows, []string{strconv.FormatInt(row.PropertyID, 10), row.Title, total, avg, measured})
	}
	return []Table{t}
}

// CompletenessRow names the required fields a listing is missing.
type CompletenessRow struct {
	PropertyID int64    `json:"property_id"`
	Title      string   `json:"title"`
	Missing    []string `json:"missing,omitempty"`
}

// CompletenessReport is the completed / awaiting info partition.
type CompletenessReport struct {
	Completed    []CompletenessRow `json:"completed"`
	AwaitingInfo []CompletenessRow `json:"awaiting_info"`
}

func (r CompletenessReport) Tables() []Table {
	done := Table{Title: fmt.Sprintf("Completed (%d)", len(r.Completed)), Headers: []string{"ID", "Title"}}
	for _, row := range r.Completed {
		done.Rows = append(done.Rows, []string{strconv.FormatInt(row.PropertyID, 10), row.Title})
	}
	waiting := Table{Title: fmt.Sprintf("Awaiting info (%d)", len(r.AwaitingInfo)), Headers: []string{"ID", "Title", "Missing"}}
	for _, row := range r.AwaitingInfo {
		labels := make([]string, len(row.Missing))
		for i, m := range row.Missing {
			labels[i] = fields.Label(m)
		}
		waiting.Rows = append(waiting.Rows, []string{strconv.FormatInt(row.PropertyID, 10), row.Title, strings.Join(labels, ", ")})
	}
	return []Table{done, waiting}
}

// Viewing is one booked viewing.
type Viewing struct {
	PropertyID int64     `json:"property_id"`
	Title      string    `json:"title"`
	At         time.Time `json:"at"`
	Offered    *float64  `json:"offered,omitempty"`
}

// ViewingDay groups the viewings on one calendar day.
type ViewingDay struct {
	Day      time.Time `json:"day"`
	Viewings []Viewing `json:"viewings"`
}

// ViewingsReport is the viewings calendar.
type ViewingsReport struct {
	Days []ViewingDay `json:"days"`
}

func (r ViewingsReport) Tables() []Table {
	if len(r.Days) == 0 {
		return []Table{{Title: "Viewings", Footer: "no viewings booked"}}
	}
	out := make([]Table, 0, len(r.Days))
	for _, d := range r.Days {
		t := Table{Title: d.Day.Format("Monday 2 January 2006"), Headers: []string{"Time", "ID", "Title", "Offered"}}
		for _, v := range d.Viewings {
			t.Rows = append(t.Rows, []string{
				v.At.Format("15:04"),
				strconv.FormatInt(v.PropertyID, 10),
				v.Title,
				optionalCurrency(v.Offered),
			})
		}
		out = append(out, t)
	}
	return out
}

// FieldRow describes one registry field and how the active model scores it.
type FieldRow struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Category string   `json:"category"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Formula  string   `json:"formula,omitempty"`
	Weight   *float64 `json:"weight,omitempty"`
	Required bool     `json:"required"`
}

// FieldsReport is the field registry joined with the scoring model.
type FieldsReport struct {
	Mode   string     `json:"mode"`
	Fields []FieldRow `json:"fields"`
}

func (r FieldsReport) Tables() []Table {
	t := Table{
		Title:   fmt.Sprintf("Fields (%s mode)", r.Mode),
		Headers: []string{"Field", "Category", "Range", "Formula", "Weight", "Required"},
	}
	for _, f := range r.Fields {
		rng := ""
		switch {
		case f.Min != nil && f.Max != nil:
			rng = fmt.Sprintf("%g to %g", *f.Min, *f.Max)
		case f.Min != nil:
			rng = fmt.Sprintf("≥ %g", *f.Min)
		}
		weight := ""
		if f.Weight != nil {
			weight = fields.Grouped(*f.Weight, 0)
		}
		required := "no"
		if f.Required {
			required = "yes"
		}
		t.Rows = append(t.Rows, []string{f.Label, f.Category, rng, f.Formula, weight, required})
	}
	return []Table{t}
}

// FormatScore prints a ratio score to four places and a difference score as
// a grouped integer. Non-finite scores read "n/a".
func FormatScore(s domain.PropertyScore, mode string) string {
	if !s.HasFiniteScore() {
		return "n/a"
	}
	if mode == "difference" {
		return fields.Grouped(s.Score, 0)
	}
	return strconv.FormatFloat(s.Score, 'f', 4, 64)
}

func titleOf(p domain.Property, complete bool) string {
	title := p.Title()
	if title == "" {
		title = fields.Placeholder
	}
	if !complete {
		title += " *"
	}
	return title
}

func optionalCurrency(v *float64) string {
	if v == nil {
		return fields.Placeholder
	}
	return fields.Currency(*v)
}

func optionalPercent(v *float64) string {
	if v == nil {
		return fields.Placeholder
	}
	return strconv.FormatFloat(*v*100, 'f', 2, 64) + "%"
}

func commuteCell(m *domain.CommuteMetrics) string {
	if m == nil || m.MeasuredSlots == 0 {
		return fields.Placeholder
	}
	s := fmt.Sprintf("%s mins", fields.Grouped(m.TotalMinutes, 0))
	if !m.Complete() {
		s += " (partial)"
	}
	return s
}
