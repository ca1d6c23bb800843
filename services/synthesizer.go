package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"trip-planner/models"
)

// TextGenerator is the remote text-generation capability
type TextGenerator interface {
	Generate(ctx context.Context, instructions, content string) (string, error)
}

const synthesisInstructions = `You are a budget optimizer for trip planning.
Create a day-by-day itinerary that combines the researched activities and accommodation options within the given budget.
Give specific costs for every activity and for accommodation on each day.
Finish with a summary of the total estimated cost and confirm whether it fits within the budget range.
If a research section is marked UNAVAILABLE, say so and plan with general knowledge for that part instead of inventing specific listings or places.
Format the answer in Markdown with headers (##), bold text (**text**), bullet points (-) and a cost breakdown table with the columns Day, Activity and Cost.`

// Synthesizer turns research into the final itinerary text
type Synthesizer struct {
	generator TextGenerator
}

// NewSynthesizer creates a synthesizer over a text generator
func NewSynthesizer(generator TextGenerator) *Synthesizer {
	return &Synthesizer{generator: generator}
}

// Synthesize builds the payload for req and asks the generator for the plan
func (s *Synthesizer) Synthesize(ctx context.Context, req *models.TripRequest, dc *models.DerivedConstraints, bundle *models.ResearchBundle) (string, error) {
	payload, err := BuildSynthesisPayload(req, dc, bundle)
	if err != nil {
		return "", err
	}
	plan, err := s.generator.Generate(ctx, synthesisInstructions, payload)
	if err != nil {
		return "", fmt.Errorf("itinerary generation failed: %w", err)
	}
	return plan, nil
}

// BuildSynthesisPayload renders the trip and its research in a fixed order:
// destination, guests, stay, budget, standard, attractions, listings and the
// closing instruction. A failed research side keeps its slot and says why.
func BuildSynthesisPayload(req *models.TripRequest, dc *models.DerivedConstraints, bundle *models.ResearchBundle) (string, error) {
	stay := fmt.Sprintf("%d nights (%s to %s)", dc.Nights, req.CheckInDate(), req.CheckOutDate())
	budget := fmt.Sprintf("$%s-$%s", money(req.Budget.Min), money(req.Budget.Max))

	attractions, err := researchSection(bundle.Attractions, bundle.AttractionsError)
	if err != nil {
		return "", fmt.Errorf("encode attractions: %w", err)
	}
	listings, err := researchSection(bundle.Listings, bundle.ListingsError)
	if err != nil {
		return "", fmt.Errorf("encode listings: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Trip Planning Data for %s (%s):\n", req.Destination, stay)
	fmt.Fprintf(&b, "Destination: %s\n", req.Destination)
	fmt.Fprintf(&b, "Guests: %d\n", req.Guests)
	fmt.Fprintf(&b, "Stay: %s\n", stay)
	fmt.Fprintf(&b, "Total Trip Budget: %s (accommodation ceiling $%d per night)\n", budget, dc.NightlyCeiling)
	fmt.Fprintf(&b, "Standard: %s\n\n", req.Category)
	fmt.Fprintf(&b, "ACTIVITIES RESEARCH:\n%s\n\n", attractions)
	fmt.Fprintf(&b, "ACCOMMODATION OPTIONS:\n%s\n\n", listings)
	fmt.Fprintf(&b, "Please create an optimized itinerary that combines the best activities and accommodation "+
		"within the specified budget of %s. Include a day-by-day cost breakdown and a final total, "+
		"and confirm that the total fits within %s.", budget, budget)
	return b.String(), nil
}

func researchSection[T any](items []T, failure string) (string, error) {
	if failure != "" {
		return "UNAVAILABLE: " + failure, nil
	}
	if len(items) == 0 {
		return "NO RESULTS", nil
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
