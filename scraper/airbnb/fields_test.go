package airbnb

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"trip-planner/models"
	"trip-planner/utils"
)

func mustBase(t *testing.T) *url.URL {
	t.Helper()
	u, err := url.Parse("https://www.airbnb.com")
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func TestExtractSubtitleTakesLineAfterTitle(t *testing.T) {
	c := rawCard{
		Title: "Apartment in Dubai Marina",
		Text:  "Guest favourite\n\nApartment in Dubai Marina\n  Sea view studio  \n1 bed\n$180 night",
	}
	title := extractTitle(c)

	sub := extractSubtitle(c, title)
	assert.True(t, sub.ok)
	assert.Equal(t, "Sea view studio", sub.value)
}

func TestExtractSubtitleUnknownWhenTitleIsLastLine(t *testing.T) {
	c := rawCard{Title: "Loft", Text: "Loft"}
	assert.False(t, extractSubtitle(c, extractTitle(c)).ok)
	assert.False(t, extractSubtitle(rawCard{Text: "a\nb"}, unknown).ok)
}

func TestExtractPriceKeepsLastDollarSpan(t *testing.T) {
	c := rawCard{PriceTexts: []string{"$250", "$180\nnight", "Total before taxes"}}

	price := extractPrice(c)
	assert.True(t, price.ok)
	assert.Equal(t, "$180 night", price.value)
}

func TestExtractPriceUnknownWithoutDollar(t *testing.T) {
	assert.False(t, extractPrice(rawCard{}).ok)
	assert.False(t, extractPrice(rawCard{PriceTexts: []string{"free"}}).ok)
}

func TestExtractURLResolvesRelativeHref(t *testing.T) {
	base := mustBase(t)

	u := extractURL(rawCard{Href: "/rooms/123?check_in=2025-08-10"}, base)
	assert.Equal(t, "https://www.airbnb.com/rooms/123?check_in=2025-08-10", u.value)

	abs := extractURL(rawCard{Href: "https://www.airbnb.ae/rooms/9"}, base)
	assert.Equal(t, "https://www.airbnb.ae/rooms/9", abs.value)

	assert.False(t, extractURL(rawCard{}, base).ok)
}

func TestExtractArea(t *testing.T) {
	c := rawCard{Text: "Superhost\nApartment in Downtown Dubai\nStudio in the heart of the city"}
	area := extractArea(c)
	assert.Equal(t, "Downtown Dubai", area.value)

	assert.False(t, extractArea(rawCard{Text: "Beach house\n$90"}).ok)
}

func TestExtractRating(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		rating  string
		reviews string
	}{
		{"combined", "4.93 (128)", "4.93", "128"},
		{"rating only", "4.5 out of 5, New", "4.5", models.Unknown},
		{"reviews only", "New (3)", models.Unknown, "3"},
		{"no match", "New", models.Unknown, models.Unknown},
		{"empty", "", models.Unknown, models.Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rating, reviews := extractRating(rawCard{RatingText: tt.text})
			assert.Equal(t, tt.rating, rating.String())
			assert.Equal(t, tt.reviews, reviews.String())
		})
	}
}

func TestBuildListingDegradesMissingFieldsToUnknown(t *testing.T) {
	q := models.ListingQuery{Destination: "Dubai", CheckIn: "2025-08-10", CheckOut: "2025-08-15"}
	c := rawCard{Title: "Villa in Jumeirah", Text: "Villa in Jumeirah"}

	l := buildListing(c, mustBase(t), q, 5, utils.NopLogger())

	assert.Equal(t, "Villa in Jumeirah", l.Title)
	assert.Equal(t, "Jumeirah", l.Area)
	assert.Equal(t, models.Unknown, l.Subtitle)
	assert.Equal(t, models.Unknown, l.Price)
	assert.Equal(t, models.Unknown, l.URL)
	assert.Equal(t, models.Unknown, l.Rating)
	assert.Equal(t, models.Unknown, l.Reviews)
	assert.Equal(t, "Dubai", l.Location)
	assert.Equal(t, "2025-08-10", l.CheckIn)
	assert.Equal(t, "2025-08-15", l.CheckOut)
	assert.Equal(t, 5, l.Nights)
}
