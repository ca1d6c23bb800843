package places

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	"trip-planner/config"
	"trip-planner/models"
	"trip-planner/utils"
)

// ErrMissingAPIKey is returned when no Places key is configured
var ErrMissingAPIKey = errors.New("places api key is not configured")

type textSearcher interface {
	TextSearch(ctx context.Context, r *maps.TextSearchRequest) (maps.PlacesSearchResponse, error)
}

// Finder looks up top tourist attractions through the Places text search
type Finder struct {
	client      textSearcher
	rateLimiter *utils.RateLimiter
	logger      *utils.Logger
}

// NewFinder creates a Finder backed by the Google Maps client
func NewFinder(cfg config.PlacesConfig, logger *utils.Logger) (*Finder, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	client, err := maps.NewClient(maps.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create places client: %w", err)
	}
	return newFinder(client, cfg, logger), nil
}

func newFinder(client textSearcher, cfg config.PlacesConfig, logger *utils.Logger) *Finder {
	return &Finder{
		client:      client,
		rateLimiter: utils.NewRateLimiter(cfg.Delay),
		logger:      logger,
	}
}

// AttractionsQuery is the text search sent for a destination
func AttractionsQuery(destination string) string {
	return "Top Tourist Attractions in " + strings.TrimSpace(destination)
}

// Lookup returns the attractions the service ranks for destination. An empty
// result is not an error.
func (f *Finder) Lookup(ctx context.Context, destination string) ([]models.Attraction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := f.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}
	query := AttractionsQuery(destination)
	resp, err := f.client.TextSearch(ctx, &maps.TextSearchRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("places text search failed: %w", err)
	}

	attractions := make([]models.Attraction, 0, len(resp.Results))
	for _, r := range resp.Results {
		attractions = append(attractions, models.Attraction{
			PlaceID:          r.PlaceID,
			Name:             r.Name,
			Address:          r.FormattedAddress,
			Rating:           r.Rating,
			UserRatingsTotal: r.UserRatingsTotal,
			PriceLevel:       r.PriceLevel,
			Types:            r.Types,
			Latitude:         r.Geometry.Location.Lat,
			Longitude:        r.Geometry.Location.Lng,
		})
	}
	f.logger.WithContext(ctx).Info("attractions fetched", "query", query, "results", len(attractions))
	return attractions, nil
}
