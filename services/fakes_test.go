package services

import (
	"context"
	"sync"
	"time"

	"trip-planner/models"
)

type fakeAttractions struct {
	result []models.Attraction
	err    error
	delay  time.Duration
	panics bool

	mu    sync.Mutex
	calls []string
}

func (f *fakeAttractions) Lookup(ctx context.Context, destination string) ([]models.Attraction, error) {
	f.mu.Lock()
	f.calls = append(f.calls, destination)
	f.mu.Unlock()
	if f.panics {
		panic("places client exploded")
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.result, f.err
}

type fakeListings struct {
	result []*models.Listing
	err    error
	delay  time.Duration

	mu      sync.Mutex
	queries []models.ListingQuery
}

func (f *fakeListings) Search(ctx context.Context, q models.ListingQuery) ([]*models.Listing, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.result, f.err
}

// scriptedGenerator returns canned text and records every prompt it sees
type scriptedGenerator struct {
	reply string
	err   error

	mu    sync.Mutex
	calls []generateCall
}

type generateCall struct {
	instructions string
	content      string
}

func (g *scriptedGenerator) Generate(_ context.Context, instructions, content string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, generateCall{instructions, content})
	return g.reply, g.err
}

type fakeClassifier struct {
	label string
	err   error
	calls int
}

func (c *fakeClassifier) Classify(context.Context, string) (string, error) {
	c.calls++
	return c.label, c.err
}

type fakeExtractor struct {
	raw   map[string]any
	err   error
	calls int
}

func (e *fakeExtractor) Extract(context.Context, string) (map[string]any, error) {
	e.calls++
	return e.raw, e.err
}

func dubaiRequest() (*models.TripRequest, *models.DerivedConstraints) {
	req := &models.TripRequest{
		Destination: "Dubai",
		CheckIn:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:    time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC),
		Guests:      2,
		Budget:      models.BudgetRange{Min: 1000, Max: 3000},
		Category:    models.CategoryStandard,
	}
	return req, &models.DerivedConstraints{Nights: 5, NightlyCeiling: 360, Ratio: 0.6}
}

func sampleListings() []*models.Listing {
	return []*models.Listing{
		{Title: "Marina loft", Subtitle: "Sea view", Price: "$1,500 for 5 nights", URL: "https://www.airbnb.com/rooms/1",
			Area: "Dubai Marina", Rating: "4.91", Reviews: "120", CheckIn: "2025-06-01", CheckOut: "2025-06-06", Nights: 5},
		{Title: "Downtown studio", Subtitle: models.Unknown, Price: "$200 night", URL: "https://www.airbnb.com/rooms/2",
			Area: "Downtown Dubai", Rating: "4.75", Reviews: "33", CheckIn: "2025-06-01", CheckOut: "2025-06-06", Nights: 5},
		{Title: "Creek room", Subtitle: "Old town", Price: models.Unknown, URL: models.Unknown,
			Area: "Dubai Marina", Rating: models.Unknown, Reviews: models.Unknown, CheckIn: "2025-06-01", CheckOut: "2025-06-06", Nights: 5},
	}
}
