package storage

import "trip-planner/models"

// ListingSink receives the listings collected for a trip
type ListingSink interface {
	SaveListings(listings []*models.Listing) error
}
