package models

// Unknown marks a listing field that could not be read from the results page
const Unknown = "unknown"

// Listing is one accommodation candidate scraped from a search results page.
// Optional fields hold Unknown rather than being dropped.
type Listing struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Price    string `json:"price"` // e.g. "$120 night" or "$600 for 5 nights"
	URL      string `json:"url"`
	Location string `json:"location"`
	Area     string `json:"area"`
	Rating   string `json:"rating"`
	Reviews  string `json:"reviews"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Nights   int    `json:"nights"`
}

// ListingQuery parameterizes one listings search
type ListingQuery struct {
	Destination string
	Guests      int
	MaxPrice    int // nightly ceiling
	CheckIn     string
	CheckOut    string
	Limit       int
}

// InsightReport summarizes the listings collected for one trip
type InsightReport struct {
	TotalListings  int            `json:"total_listings"`
	PricedListings int            `json:"priced_listings"`
	AveragePrice   float64        `json:"average_price"`
	MinPrice       float64        `json:"min_price"`
	MaxPrice       float64        `json:"max_price"`
	Cheapest       *Listing       `json:"cheapest,omitempty"`
	TopRated       []*Listing     `json:"top_rated,omitempty"`
	ListingsByArea map[string]int `json:"listings_by_area,omitempty"`
}
