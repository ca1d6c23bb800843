package services

import (
	"sort"

	"trip-planner/models"
	"trip-planner/utils"
)

const topRatedCount = 5

// InsightService summarizes the listings gathered for a trip
type InsightService struct {
	logger *utils.Logger
}

// NewInsightService creates a new InsightService
func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate computes price and rating figures. Listings with an unreadable
// price still count toward the total and area breakdown.
func (s *InsightService) Generate(listings []*models.Listing) *models.InsightReport {
	report := &models.InsightReport{
		ListingsByArea: make(map[string]int),
	}
	if len(listings) == 0 {
		s.logger.Debug("no listings to summarize")
		return report
	}

	var total, cheapest float64
	for _, l := range listings {
		report.TotalListings++
		if l.Area != "" && l.Area != models.Unknown {
			report.ListingsByArea[l.Area]++
		}

		price, ok := NightlyPrice(l)
		if !ok {
			continue
		}
		report.PricedListings++
		total += price
		if report.PricedListings == 1 || price < report.MinPrice {
			report.MinPrice = price
		}
		if price > report.MaxPrice {
			report.MaxPrice = price
		}
		if report.Cheapest == nil || price < cheapest {
			report.Cheapest = l
			cheapest = price
		}
	}
	if report.PricedListings > 0 {
		report.AveragePrice = total / float64(report.PricedListings)
	}

	type ratedListing struct {
		listing *models.Listing
		rating  float64
	}
	var rated []ratedListing
	for _, l := range listings {
		if r, ok := RatingValue(l); ok {
			rated = append(rated, ratedListing{l, r})
		}
	}
	sort.SliceStable(rated, func(i, j int) bool {
		return rated[i].rating > rated[j].rating
	})
	for i := 0; i < len(rated) && i < topRatedCount; i++ {
		report.TopRated = append(report.TopRated, rated[i].listing)
	}

	s.logger.Debug("listing insights computed", "listings", report.TotalListings, "priced", report.PricedListings)
	return report
}
