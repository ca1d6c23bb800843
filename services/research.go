package services

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"trip-planner/models"
	"trip-planner/utils"
)

// AttractionFinder looks up notable places at a destination
type AttractionFinder interface {
	Lookup(ctx context.Context, destination string) ([]models.Attraction, error)
}

// ListingSearcher collects accommodation listings
type ListingSearcher interface {
	Search(ctx context.Context, q models.ListingQuery) ([]*models.Listing, error)
}

// ResearchCoordinator runs the attractions lookup and the listings search side
// by side and waits for both to settle
type ResearchCoordinator struct {
	attractions        AttractionFinder
	listings           ListingSearcher
	attractionsTimeout time.Duration
	listingsTimeout    time.Duration
	listingsLimit      int
	logger             *utils.Logger
}

// ResearchOptions bounds the research tasks
type ResearchOptions struct {
	AttractionsTimeout time.Duration
	ListingsTimeout    time.Duration
	ListingsLimit      int
}

// NewResearchCoordinator creates a coordinator over the two research sources
func NewResearchCoordinator(attractions AttractionFinder, listings ListingSearcher, opts ResearchOptions, logger *utils.Logger) *ResearchCoordinator {
	return &ResearchCoordinator{
		attractions:        attractions,
		listings:           listings,
		attractionsTimeout: opts.AttractionsTimeout,
		listingsTimeout:    opts.ListingsTimeout,
		listingsLimit:      opts.ListingsLimit,
		logger:             logger,
	}
}

// ListingQueryFor builds the listings search for a validated trip
func ListingQueryFor(req *models.TripRequest, dc *models.DerivedConstraints, limit int) models.ListingQuery {
	return models.ListingQuery{
		Destination: req.Destination,
		Guests:      req.Guests,
		MaxPrice:    dc.NightlyCeiling,
		CheckIn:     req.CheckInDate(),
		CheckOut:    req.CheckOutDate(),
		Limit:       limit,
	}
}

// Research never fails: a task that errors, times out or panics leaves its
// side of the bundle empty with the reason recorded.
func (c *ResearchCoordinator) Research(ctx context.Context, req *models.TripRequest, dc *models.DerivedConstraints) *models.ResearchBundle {
	ctx, span := tracer.Start(ctx, "research")
	defer span.End()
	log := c.logger.WithContext(ctx)

	bundle := &models.ResearchBundle{
		Attractions: []models.Attraction{},
		Listings:    []*models.Listing{},
	}
	query := ListingQueryFor(req, dc, c.listingsLimit)

	// A plain Group rather than WithContext: one task failing must not cancel
	// the other. Tasks record their own failures and always return nil.
	var g errgroup.Group

	g.Go(func() error {
		attractions, err := runTask(ctx, c.attractionsTimeout, func(ctx context.Context) ([]models.Attraction, error) {
			return c.attractions.Lookup(ctx, req.Destination)
		})
		if err != nil {
			log.Warn("attractions research failed", "error", err)
			bundle.AttractionsError = err.Error()
			return nil
		}
		if attractions != nil {
			bundle.Attractions = attractions
		}
		log.Info("attractions research done", "attractions", len(bundle.Attractions))
		return nil
	})

	g.Go(func() error {
		listings, err := runTask(ctx, c.listingsTimeout, func(ctx context.Context) ([]*models.Listing, error) {
			return c.listings.Search(ctx, query)
		})
		if err != nil {
			log.Warn("listings research failed", "error", err)
			bundle.ListingsError = err.Error()
			return nil
		}
		if listings != nil {
			bundle.Listings = listings
		}
		log.Info("listings research done", "listings", len(bundle.Listings))
		return nil
	})

	_ = g.Wait()

	span.SetAttributes(
		attribute.Int("research.attractions", len(bundle.Attractions)),
		attribute.Int("research.listings", len(bundle.Listings)),
	)
	if bundle.AttractionsFailed() && bundle.ListingsFailed() {
		span.SetStatus(codes.Error, "both research tasks failed")
	}
	return bundle
}

// runTask runs fn under its own timeout and turns a panic into an error
func runTask[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (result T, err error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("research task panicked: %v", r)
		}
	}()
	return fn(ctx)
}
