package airbnb

import (
	"net/url"
	"regexp"
	"strings"

	"trip-planner/models"
	"trip-planner/utils"
)

var (
	ratingReviewsRegex = regexp.MustCompile(`^\s*(\d+\.\d+)\s*\((\d+)\)`)
	ratingOnlyRegex    = regexp.MustCompile(`\d+\.\d+`)
	reviewsOnlyRegex   = regexp.MustCompile(`\((\d+)\)`)
)

// rawCard is what the in-page script reports for one result card
type rawCard struct {
	Title      string   `json:"title"`
	Text       string   `json:"text"`
	PriceTexts []string `json:"prices"`
	Href       string   `json:"href"`
	RatingText string   `json:"rating"`
	Err        string   `json:"error"`
}

// field is the outcome of reading one listing attribute: found or unknown
type field struct {
	value string
	ok    bool
}

var unknown = field{}

func found(v string) field {
	v = strings.TrimSpace(v)
	if v == "" {
		return unknown
	}
	return field{value: v, ok: true}
}

func (f field) String() string {
	if !f.ok {
		return models.Unknown
	}
	return f.value
}

func cardLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func extractTitle(c rawCard) field {
	return found(c.Title)
}

// extractSubtitle takes the line right after the title in the flattened card text
func extractSubtitle(c rawCard, title field) field {
	if !title.ok {
		return unknown
	}
	lines := cardLines(c.Text)
	for i, line := range lines {
		if line == title.value && i+1 < len(lines) {
			return found(lines[i+1])
		}
	}
	return unknown
}

// extractPrice keeps the last dollar-bearing span so a struck-through
// original price is skipped in favour of the current one
func extractPrice(c rawCard) field {
	for i := len(c.PriceTexts) - 1; i >= 0; i-- {
		text := c.PriceTexts[i]
		if strings.Contains(text, "$") {
			return found(strings.Join(strings.Fields(text), " "))
		}
	}
	return unknown
}

func extractURL(c rawCard, base *url.URL) field {
	href := strings.TrimSpace(c.Href)
	if href == "" {
		return unknown
	}
	ref, err := url.Parse(href)
	if err != nil {
		return unknown
	}
	if base == nil {
		if !ref.IsAbs() {
			return unknown
		}
		return found(ref.String())
	}
	return found(base.ResolveReference(ref).String())
}

// extractArea reads the first location line ("Apartment in Dubai Marina")
// and keeps what follows the last " in "
func extractArea(c rawCard) field {
	for _, line := range cardLines(c.Text) {
		if idx := strings.LastIndex(line, " in "); idx != -1 {
			return found(line[idx+len(" in "):])
		}
	}
	return unknown
}

func extractRating(c rawCard) (rating, reviews field) {
	text := c.RatingText
	if text == "" {
		return unknown, unknown
	}
	if m := ratingReviewsRegex.FindStringSubmatch(text); m != nil {
		return found(m[1]), found(m[2])
	}
	rating, reviews = unknown, unknown
	if m := ratingOnlyRegex.FindString(text); m != "" {
		rating = found(m)
	}
	if m := reviewsOnlyRegex.FindStringSubmatch(text); m != nil {
		reviews = found(m[1])
	}
	return rating, reviews
}

// buildListing reads every field of c independently. A missing field is
// logged and set to models.Unknown; it never drops the card.
func buildListing(c rawCard, base *url.URL, q models.ListingQuery, nights int, logger *utils.Logger) *models.Listing {
	title := extractTitle(c)
	rating, reviews := extractRating(c)
	fields := []struct {
		name string
		f    field
	}{
		{"title", title},
		{"subtitle", extractSubtitle(c, title)},
		{"price", extractPrice(c)},
		{"url", extractURL(c, base)},
		{"area", extractArea(c)},
		{"rating", rating},
		{"reviews", reviews},
	}
	for _, fl := range fields {
		if !fl.f.ok {
			logger.Debug("listing field unavailable", "field", fl.name, "title", title.String())
		}
	}

	return &models.Listing{
		Title:    fields[0].f.String(),
		Subtitle: fields[1].f.String(),
		Price:    fields[2].f.String(),
		URL:      fields[3].f.String(),
		Location: q.Destination,
		Area:     fields[4].f.String(),
		Rating:   fields[5].f.String(),
		Reviews:  fields[6].f.String(),
		CheckIn:  q.CheckIn,
		CheckOut: q.CheckOut,
		Nights:   nights,
	}
}
