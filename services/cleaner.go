package services

import (
	"regexp"
	"strconv"
	"strings"

	"trip-planner/models"
)

var (
	priceRegex  = regexp.MustCompile(`\$\s?([\d,]+(?:\.\d{1,2})?)`)
	nightsRegex = regexp.MustCompile(`for\s+(\d+)\s+nights?`)
)

// NightlyPrice reads a per-night amount from listing price text such as
// "$120 night" or "$600 for 5 nights". When the text states a total without a
// night count, the listing's own stay length is used.
func NightlyPrice(l *models.Listing) (float64, bool) {
	if l == nil || l.Price == "" || l.Price == models.Unknown {
		return 0, false
	}
	text := strings.ToLower(l.Price)
	m := priceRegex.FindStringSubmatch(text)
	if len(m) < 2 {
		return 0, false
	}
	val, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil || val <= 0 {
		return 0, false
	}

	if n := nightsRegex.FindStringSubmatch(text); len(n) >= 2 {
		nights, err := strconv.Atoi(n[1])
		if err == nil && nights > 0 {
			return val / float64(nights), true
		}
	}
	if strings.Contains(text, "total") && l.Nights > 0 {
		return val / float64(l.Nights), true
	}
	return val, true
}

// RatingValue parses the listing's rating; ratings outside 0..5 are ignored
func RatingValue(l *models.Listing) (float64, bool) {
	if l == nil || l.Rating == "" || l.Rating == models.Unknown {
		return 0, false
	}
	val, err := strconv.ParseFloat(strings.TrimSpace(l.Rating), 64)
	if err != nil || val < 0 || val > 5 {
		return 0, false
	}
	return val, true
}
