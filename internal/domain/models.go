package domain

import (
	"strings"
	"time"
)

// Quality is the five-level assessment used for interior and view.
type Quality string

const (
	QualityAwful Quality = "Awful"
	QualityBad   Quality = "Bad"
	QualityOkay  Quality = "Okay"
	QualityGood  Quality = "Good"
	QualityGreat Quality = "Great"
)

// QualityLevels lists the scale from worst to best.
var QualityLevels = []Quality{QualityAwful, QualityBad, QualityOkay, QualityGood, QualityGreat}

// Level maps the quality to -2..2. Unknown labels report false.
func (q Quality) Level() (int, bool) {
	for i, l := range QualityLevels {
		if q == l {
			return i - 2, true
		}
	}
	return 0, false
}

// Property is one candidate listing as supplied by the upstream store.
// Every nullable column is a pointer; nil means "not known yet".
type Property struct {
	ID        int64     `json:"id" yaml:"id"`
	ProjectID int64     `json:"project_id" yaml:"project_id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UserID    *string   `json:"user_id,omitempty" yaml:"user_id,omitempty"`

	ListingTitle *string `json:"listing_title" yaml:"listing_title"`
	URLLink      *string `json:"url_link" yaml:"url_link"`
	AgentWebsite *string `json:"agent_website" yaml:"agent_website"`
	AgentEmail   *string `json:"agent_email" yaml:"agent_email"`
	AgentPhone   *string `json:"agent_phone" yaml:"agent_phone"`
	Notes        *string `json:"notes" yaml:"notes"`

	HousePrice       *float64 `json:"house_price" yaml:"house_price"`
	FloorLevel       *float64 `json:"floor_level" yaml:"floor_level"`
	WalkToStation    *float64 `json:"walk_to_station" yaml:"walk_to_station"`
	WalkToPark       *float64 `json:"walk_to_park" yaml:"walk_to_park"`
	LeaseLength      *float64 `json:"lease_length" yaml:"lease_length"`
	EnergyEfficiency *float64 `json:"energy_effeciency" yaml:"energy_effeciency"`
	EstMonthlyRent   *float64 `json:"est_monthly_rent" yaml:"est_monthly_rent"`
	ScGrAnnual       *float64 `json:"sc_gr_annual" yaml:"sc_gr_annual"`
	SqMetres         *float64 `json:"sq_metres" yaml:"sq_metres"`

	Interior *Quality `json:"interior" yaml:"interior"`
	View     *Quality `json:"view" yaml:"view"`

	LocalGym         *bool `json:"local_gym" yaml:"local_gym"`
	LocalSupermarket *bool `json:"local_supermarket" yaml:"local_supermarket"`
	GardenBalcony    *bool `json:"garden_balcony" yaml:"garden_balcony"`
	OffStreetParking *bool `json:"off_street_parking" yaml:"off_street_parking"`

	ViewDate *time.Time `json:"view_date,omitempty" yaml:"view_date,omitempty"`
	Offered  *float64   `json:"offered,omitempty" yaml:"offered,omitempty"`
}

// Title returns the listing title or "" when unknown.
func (p Property) Title() string {
	if p.ListingTitle == nil {
		return ""
	}
	return *p.ListingTitle
}

// ClearBlankQualities sets an empty interior or view label to nil, the way
// a NULL column reads.
func (p *Property) ClearBlankQualities() {
	if p.Interior != nil && strings.TrimSpace(string(*p.Interior)) == "" {
		p.Interior = nil
	}
	if p.View != nil && strings.TrimSpace(string(*p.View)) == "" {
		p.View = nil
	}
}

// HasViewing reports whether a viewing has been booked.
func (p Property) HasViewing() bool { return p.ViewDate != nil && !p.ViewDate.IsZero() }

// HasOffer reports whether an offer amount has been recorded.
func (p Property) HasOffer() bool { return p.Offered != nil }

// Likes maps property id to the ids of users who liked it.
type Likes map[int64][]string

// LikedBy reports whether userID liked the property.
func (l Likes) LikedBy(propertyID int64, userID string) bool {
	for _, u := range l[propertyID] {
		if u == userID {
			return true
		}
	}
	return false
}

// Dataset is everything the engine needs for one project.
type Dataset struct {
	ProjectID       int64            `json:"project_id" yaml:"project_id"`
	Properties      []Property       `json:"properties" yaml:"properties"`
	CommuteSettings *CommuteSettings `json:"commute_settings,omitempty" yaml:"commute_settings,omitempty"`
	CommuteScores   []CommuteSample  `json:"commute_scores,omitempty" yaml:"commute_scores,omitempty"`
	Likes           Likes            `json:"likes,omitempty" yaml:"likes,omitempty"`
}

// CommuteSamplesByProperty indexes commute samples by property id. Later
// samples for the same property replace earlier ones.
func (d *Dataset) CommuteSamplesByProperty() map[int64]CommuteSample {
	out := make(map[int64]CommuteSample, len(d.CommuteScores))
	for _, s := range d.CommuteScores {
		out[s.PropertyID] = s
	}
	return out
}

// Merge appends other into d. The first non-nil commute settings win.
func (d *Dataset) Merge(other *Dataset) {
	if other == nil {
		return
	}
	if d.ProjectID == 0 {
		d.ProjectID = other.ProjectID
	}
	d.Properties = append(d.Properties, other.Properties...)
	d.CommuteScores = append(d.CommuteScores, other.CommuteScores...)
	if d.CommuteSettings == nil {
		d.CommuteSettings = other.CommuteSettings
	}
	if len(other.Likes) > 0 && d.Likes == nil {
		d.Likes = make(Likes, len(other.Likes))
	}
	for id, users := range other.Likes {
		d.Likes[id] = append(d.Likes[id], users...)
	}
}
