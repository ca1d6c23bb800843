package places

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"

	"trip-planner/config"
	"trip-planner/utils"
)

type fakeSearcher struct {
	resp     maps.PlacesSearchResponse
	err      error
	requests []*maps.TextSearchRequest
}

func (f *fakeSearcher) TextSearch(_ context.Context, r *maps.TextSearchRequest) (maps.PlacesSearchResponse, error) {
	f.requests = append(f.requests, r)
	return f.resp, f.err
}

func TestFinder_Lookup(t *testing.T) {
	searcher := &fakeSearcher{resp: maps.PlacesSearchResponse{Results: []maps.PlacesSearchResult{
		{
			PlaceID:          "p1",
			Name:             "Burj Khalifa",
			FormattedAddress: "1 Sheikh Mohammed bin Rashid Blvd, Dubai",
			Rating:           4.7,
			UserRatingsTotal: 150000,
			Types:            []string{"tourist_attraction"},
			Geometry:         maps.AddressGeometry{Location: maps.LatLng{Lat: 25.1972, Lng: 55.2744}},
		},
		{PlaceID: "p2", Name: "Dubai Mall"},
	}}}
	f := newFinder(searcher, config.PlacesConfig{}, utils.NopLogger())

	got, err := f.Lookup(context.Background(), " Dubai ")
	require.NoError(t, err)

	require.Len(t, searcher.requests, 1)
	assert.Equal(t, "Top Tourist Attractions in Dubai", searcher.requests[0].Query)
	require.Len(t, got, 2)
	assert.Equal(t, "Burj Khalifa", got[0].Name)
	assert.Equal(t, "1 Sheikh Mohammed bin Rashid Blvd, Dubai", got[0].Address)
	assert.InDelta(t, 4.7, got[0].Rating, 0.001)
	assert.Equal(t, 150000, got[0].UserRatingsTotal)
	assert.InDelta(t, 25.1972, got[0].Latitude, 0.0001)
	assert.Equal(t, "Dubai Mall", got[1].Name)
}

func TestFinder_EmptyResult(t *testing.T) {
	f := newFinder(&fakeSearcher{}, config.PlacesConfig{}, utils.NopLogger())

	got, err := f.Lookup(context.Background(), "Nowhere")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFinder_Error(t *testing.T) {
	f := newFinder(&fakeSearcher{err: errors.New("REQUEST_DENIED")}, config.PlacesConfig{}, utils.NopLogger())

	_, err := f.Lookup(context.Background(), "Dubai")
	assert.ErrorContains(t, err, "REQUEST_DENIED")
}

func TestFinder_CancelledContext(t *testing.T) {
	searcher := &fakeSearcher{}
	f := newFinder(searcher, config.PlacesConfig{}, utils.NopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Lookup(ctx, "Dubai")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, searcher.requests)
}

func TestNewFinder_RequiresKey(t *testing.T) {
	_, err := NewFinder(config.PlacesConfig{}, utils.NopLogger())
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
