package models

// Attraction is one place returned by the attractions lookup. The planner
// passes it through to synthesis untouched.
type Attraction struct {
	PlaceID          string   `json:"place_id,omitempty"`
	Name             string   `json:"name"`
	Address          string   `json:"formatted_address,omitempty"`
	Rating           float32  `json:"rating,omitempty"`
	UserRatingsTotal int      `json:"user_ratings_total,omitempty"`
	PriceLevel       int      `json:"price_level,omitempty"`
	Types            []string `json:"types,omitempty"`
	Latitude         float64  `json:"latitude,omitempty"`
	Longitude        float64  `json:"longitude,omitempty"`
}

// ResearchBundle pairs both research results for one trip. Either side may be
// empty, in which case its error field says why.
type ResearchBundle struct {
	Attractions      []Attraction `json:"attractions"`
	AttractionsError string       `json:"attractions_error,omitempty"`
	Listings         []*Listing   `json:"listings"`
	ListingsError    string       `json:"listings_error,omitempty"`
}

// AttractionsFailed reports whether the attractions task failed
func (b *ResearchBundle) AttractionsFailed() bool { return b.AttractionsError != "" }

// ListingsFailed reports whether the listings task failed
func (b *ResearchBundle) ListingsFailed() bool { return b.ListingsError != "" }
