package models

import (
	"encoding/json"
	"time"
)

// DateLayout is the calendar date format used on every wire boundary
const DateLayout = "2006-01-02"

// Category is the accommodation standard the traveller prefers
type Category string

const (
	CategoryEconomy  Category = "economy"
	CategoryStandard Category = "standard"
	CategoryLuxury   Category = "luxury"
)

// Categories lists every accepted Category in display order
var Categories = []Category{CategoryEconomy, CategoryStandard, CategoryLuxury}

// BudgetRange is the total trip budget, lodging and activities together
type BudgetRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// TripRequest is a validated travel planning ask. Construct it through
// services.ValidateTripRequest only.
type TripRequest struct {
	Destination string
	CheckIn     time.Time
	CheckOut    time.Time
	Guests      int
	Budget      BudgetRange
	Category    Category
}

// CheckInDate returns the check-in date as YYYY-MM-DD
func (r TripRequest) CheckInDate() string { return r.CheckIn.Format(DateLayout) }

// CheckOutDate returns the check-out date as YYYY-MM-DD
func (r TripRequest) CheckOutDate() string { return r.CheckOut.Format(DateLayout) }

// MarshalJSON renders the request in the same flat shape the extractor produces
func (r TripRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Destination string   `json:"destination"`
		CheckIn     string   `json:"check_in"`
		CheckOut    string   `json:"check_out"`
		Guests      int      `json:"guests"`
		MinBudget   float64  `json:"min_budget"`
		MaxBudget   float64  `json:"max_budget"`
		Category    Category `json:"standard"`
	}{
		Destination: r.Destination,
		CheckIn:     r.CheckInDate(),
		CheckOut:    r.CheckOutDate(),
		Guests:      r.Guests,
		MinBudget:   r.Budget.Min,
		MaxBudget:   r.Budget.Max,
		Category:    r.Category,
	})
}

// DerivedConstraints are computed once per TripRequest and never mutated
type DerivedConstraints struct {
	Nights         int     `json:"nights"`
	NightlyCeiling int     `json:"nightly_ceiling"`
	Ratio          float64 `json:"allocation_ratio"`
}
