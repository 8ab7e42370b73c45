package domain

import "strings"

// Kind tags the variant held by a Value.
type Kind int

const (
	KindAbsent Kind = iota
	KindText
	KindNumber
	KindQuality
	KindBool
)

// Value is one field of a Property looked up by name.
type Value struct {
	Kind    Kind
	Text    string
	Number  float64
	Quality Quality
	Bool    bool
}

// Present reports whether the field holds anything at all.
func (v Value) Present() bool { return v.Kind != KindAbsent }

// Blank reports whether the field is missing or an empty string. An empty
// quality label counts as an empty string.
func (v Value) Blank() bool {
	switch v.Kind {
	case KindAbsent:
		return true
	case KindText:
		return strings.TrimSpace(v.Text) == ""
	case KindQuality:
		return strings.TrimSpace(string(v.Quality)) == ""
	}
	return false
}

func textValue(s *string) Value {
	if s == nil {
		return Value{}
	}
	return Value{Kind: KindText, Text: *s}
}

func numberValue(f *float64) Value {
	if f == nil {
		return Value{}
	}
	return Value{Kind: KindNumber, Number: *f}
}

func qualityValue(q *Quality) Value {
	if q == nil {
		return Value{}
	}
	return Value{Kind: KindQuality, Quality: *q}
}

func boolValue(b *bool) Value {
	if b == nil {
		return Value{}
	}
	return Value{Kind: KindBool, Bool: *b}
}

// Value returns the named field. Unknown names are absent.
func (p Property) Value(field string) Value {
	switch field {
	case "listing_title":
		return textValue(p.ListingTitle)
	case "url_link":
		return textValue(p.URLLink)
	case "agent_website":
		return textValue(p.AgentWebsite)
	case "agent_email":
		return textValue(p.AgentEmail)
	case "agent_phone":
		return textValue(p.AgentPhone)
	case "notes":
		return textValue(p.Notes)
	case "house_price":
		return numberValue(p.HousePrice)
	case "floor_level":
		return numberValue(p.FloorLevel)
	case "walk_to_station":
		return numberValue(p.WalkToStation)
	case "walk_to_park":
		return numberValue(p.WalkToPark)
	case "lease_length":
		return numberValue(p.LeaseLength)
	case "energy_effeciency":
		return numberValue(p.EnergyEfficiency)
	case "est_monthly_rent":
		return numberValue(p.EstMonthlyRent)
	case "sc_gr_annual":
		return numberValue(p.ScGrAnnual)
	case "sq_metres":
		return numberValue(p.SqMetres)
	case "interior":
		return qualityValue(p.Interior)
	case "view":
		return qualityValue(p.View)
	case "local_gym":
		return boolValue(p.LocalGym)
	case "local_supermarket":
		return boolValue(p.LocalSupermarket)
	case "garden_balcony":
		return boolValue(p.GardenBalcony)
	case "off_street_parking":
		return boolValue(p.OffStreetParking)
	}
	return Value{}
}
