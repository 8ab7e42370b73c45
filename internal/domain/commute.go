package domain

// SlotCount is the number of commute destinations a project can configure.
const SlotCount = 8

// CommuteSettings holds the destination addresses configured for a project.
// A nil address disables the slot.
type CommuteSettings struct {
	ProjectID    int64   `json:"project_id" yaml:"project_id"`
	Destination1 *string `json:"destination_1" yaml:"destination_1"`
	Destination2 *string `json:"destination_2" yaml:"destination_2"`
	Destination3 *string `json:"destination_3" yaml:"destination_3"`
	Destination4 *string `json:"destination_4" yaml:"destination_4"`
	Destination5 *string `json:"destination_5" yaml:"destination_5"`
	Destination6 *string `json:"destination_6" yaml:"destination_6"`
	Destination7 *string `json:"destination_7" yaml:"destination_7"`
	Destination8 *string `json:"destination_8" yaml:"destination_8"`
}

// Slots returns the addresses in slot order.
func (c CommuteSettings) Slots() [SlotCount]*string {
	return [SlotCount]*string{
		c.Destination1, c.Destination2, c.Destination3, c.Destination4,
		c.Destination5, c.Destination6, c.Destination7, c.Destination8,
	}
}

// CommuteSample holds travel times in seconds from a property to each slot.
type CommuteSample struct {
	PropertyID   int64    `json:"property_id" yaml:"property_id"`
	Destination1 *float64 `json:"destination_1" yaml:"destination_1"`
	Destination2 *float64 `json:"destination_2" yaml:"destination_2"`
	Destination3 *float64 `json:"destination_3" yaml:"destination_3"`
	Destination4 *float64 `json:"destination_4" yaml:"destination_4"`
	Destination5 *float64 `json:"destination_5" yaml:"destination_5"`
	Destination6 *float64 `json:"destination_6" yaml:"destination_6"`
	Destination7 *float64 `json:"destination_7" yaml:"destination_7"`
	Destination8 *float64 `json:"destination_8" yaml:"destination_8"`
}

// Slots returns the travel times in slot order.
func (s CommuteSample) Slots() [SlotCount]*float64 {
	return [SlotCount]*float64{
		s.Destination1, s.Destination2, s.Destination3, s.Destination4,
		s.Destination5, s.Destination6, s.Destination7, s.Destination8,
	}
}

// CommuteMetrics is the aggregated commute for one property.
type CommuteMetrics struct {
	PropertyID     int64   `json:"property_id"`
	ActiveSlots    int     `json:"active_slots"`
	MeasuredSlots  int     `json:"measured_slots"`
	TotalSeconds   float64 `json:"total_seconds"`
	TotalMinutes   float64 `json:"total_minutes"`
	AverageMinutes float64 `json:"average_minutes"`
}

// Complete reports whether every active slot had a travel time.
func (m CommuteMetrics) Complete() bool {
	return m.ActiveSlots > 0 && m.MeasuredSlots == m.ActiveSlots
}
