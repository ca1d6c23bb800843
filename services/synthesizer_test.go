package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-planner/models"
)

func TestBuildSynthesisPayload_Order(t *testing.T) {
	req, dc := dubaiRequest()
	bundle := &models.ResearchBundle{
		Attractions: []models.Attraction{{Name: "Burj Khalifa", Rating: 4.7}},
		Listings:    sampleListings()[:1],
	}

	payload, err := BuildSynthesisPayload(req, dc, bundle)
	require.NoError(t, err)

	markers := []string{
		"Destination: Dubai",
		"Guests: 2",
		"Stay: 5 nights (2025-06-01 to 2025-06-06)",
		"Total Trip Budget: $1000-$3000 (accommodation ceiling $360 per night)",
		"Standard: standard",
		"ACTIVITIES RESEARCH:",
		`"name": "Burj Khalifa"`,
		"ACCOMMODATION OPTIONS:",
		`"title": "Marina loft"`,
		"day-by-day cost breakdown",
	}
	last := -1
	for _, m := range markers {
		idx := strings.Index(payload, m)
		require.NotEqual(t, -1, idx, "missing %q", m)
		assert.Greater(t, idx, last, "%q out of order", m)
		last = idx
	}
}

func TestBuildSynthesisPayload_FailedSideIsMarked(t *testing.T) {
	req, dc := dubaiRequest()
	bundle := &models.ResearchBundle{
		Attractions:      []models.Attraction{},
		AttractionsError: "places lookup denied",
		Listings:         sampleListings(),
	}

	payload, err := BuildSynthesisPayload(req, dc, bundle)
	require.NoError(t, err)

	assert.Contains(t, payload, "ACTIVITIES RESEARCH:\nUNAVAILABLE: places lookup denied")
	assert.Contains(t, payload, `"title": "Downtown studio"`)
}

func TestBuildSynthesisPayload_EmptySide(t *testing.T) {
	req, dc := dubaiRequest()
	bundle := &models.ResearchBundle{Attractions: []models.Attraction{}, Listings: []*models.Listing{}}

	payload, err := BuildSynthesisPayload(req, dc, bundle)
	require.NoError(t, err)
	assert.Contains(t, payload, "ACTIVITIES RESEARCH:\nNO RESULTS")
	assert.Contains(t, payload, "ACCOMMODATION OPTIONS:\nNO RESULTS")
}

func TestSynthesize(t *testing.T) {
	gen := &scriptedGenerator{reply: "## Day 1"}
	s := NewSynthesizer(gen)
	req, dc := dubaiRequest()

	plan, err := s.Synthesize(context.Background(), req, dc, &models.ResearchBundle{})
	require.NoError(t, err)
	assert.Equal(t, "## Day 1", plan)
	require.Len(t, gen.calls, 1)
	assert.Equal(t, synthesisInstructions, gen.calls[0].instructions)
	assert.Contains(t, gen.calls[0].content, "Destination: Dubai")
}

func TestSynthesize_GeneratorError(t *testing.T) {
	s := NewSynthesizer(&scriptedGenerator{err: errors.New("rate limited")})
	req, dc := dubaiRequest()

	_, err := s.Synthesize(context.Background(), req, dc, &models.ResearchBundle{})
	assert.ErrorContains(t, err, "rate limited")
}
