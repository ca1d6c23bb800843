package airbnb

import (
	"fmt"
	"net/url"
	"strings"

	"trip-planner/models"
)

// BuildSearchURL returns the search results URL for q. Parameter order is
// fixed so identical queries always produce identical URLs.
func BuildSearchURL(baseURL string, q models.ListingQuery) string {
	return fmt.Sprintf("%s/s/%s/homes?adults=%d&price_max=%d&check_in=%s&check_out=%s",
		strings.TrimRight(baseURL, "/"),
		url.PathEscape(strings.TrimSpace(q.Destination)),
		q.Guests,
		q.MaxPrice,
		url.QueryEscape(q.CheckIn),
		url.QueryEscape(q.CheckOut),
	)
}
