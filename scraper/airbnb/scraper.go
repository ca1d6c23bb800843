package airbnb

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"trip-planner/config"
	"trip-planner/models"
	"trip-planner/utils"
)

// Scraper collects accommodation listings from Airbnb search results
type Scraper struct {
	cfg         config.ScraperConfig
	logger      *utils.Logger
	rateLimiter *utils.RateLimiter
	open        pageOpener
}

// NewScraper creates a Scraper that launches headless Chrome per search
func NewScraper(cfg config.ScraperConfig, logger *utils.Logger) *Scraper {
	return newScraper(cfg, logger, openChromePage(cfg.Headless))
}

func newScraper(cfg config.ScraperConfig, logger *utils.Logger, open pageOpener) *Scraper {
	return &Scraper{
		cfg:         cfg,
		logger:      logger,
		rateLimiter: utils.NewRateLimiter(cfg.PageDelay),
		open:        open,
	}
}

// Search returns at most q.Limit listings (the configured limit when q.Limit
// is not positive) in results-page order. It fails with a *ScrapeError when
// navigation or the first results wait fails, or when nothing could be read.
// Problems after the first batch of listings only end pagination early.
func (s *Scraper) Search(ctx context.Context, q models.ListingQuery) ([]*models.Listing, error) {
	start := time.Now()
	limit := q.Limit
	if limit <= 0 {
		limit = s.cfg.Limit
	}
	searchURL := BuildSearchURL(s.cfg.BaseURL, q)
	log := s.logger.WithContext(ctx).With("destination", q.Destination)
	log.Info("starting listings search", "url", searchURL, "limit", limit)

	base, err := url.Parse(s.cfg.BaseURL)
	if err != nil {
		return nil, stageErr(StageNavigation, fmt.Errorf("invalid base url: %w", err))
	}

	page, err := s.open(ctx)
	if err != nil {
		return nil, stageErr(StageNavigation, err)
	}
	defer page.Close()

	err = utils.RetryWithBackoff(ctx, s.cfg.MaxRetries, time.Second, func(context.Context) error {
		return page.Navigate(searchURL, s.cfg.NavigationTimeout)
	}, log)
	if err != nil {
		return nil, stageErr(StageNavigation, err)
	}

	if err := page.WaitForResults(s.cfg.InitialWaitTimeout); err != nil {
		return nil, stageErr(StageInitialLoad, err)
	}

	listings, err := s.collect(ctx, page, q, limit, base, log)
	if err != nil {
		return nil, err
	}
	log.Info("listings search finished", "listings", len(listings), "duration", time.Since(start).Round(time.Millisecond))
	return listings, nil
}

// collect harvests cards page by page until the limit is reached or the
// results run out
func (s *Scraper) collect(ctx context.Context, page resultsPage, q models.ListingQuery, limit int, base *url.URL, log *utils.Logger) ([]*models.Listing, error) {
	nights := stayNights(q.CheckIn, q.CheckOut)
	listings := make([]*models.Listing, 0, limit)
	seen := utils.NewURLTracker()

	// stop ends collection on a broken session; it is only fatal when
	// nothing was collected
	stop := func(reason string, err error) ([]*models.Listing, error) {
		if len(listings) == 0 {
			return nil, stageErr(StageMidScrape, err)
		}
		log.Warn(reason+", keeping partial results", "listings", len(listings), "error", err)
		return listings, nil
	}

	for pageNum := 1; ; pageNum++ {
		cards, err := page.Cards()
		if err != nil {
			return stop("reading result cards failed", err)
		}
		log.Debug("result cards on page", "page", pageNum, "cards", len(cards))

		added := 0
		for _, c := range cards {
			if len(listings) >= limit {
				break
			}
			if c.Err != "" {
				log.Warn("skipping unreadable card", "page", pageNum, "error", c.Err)
				continue
			}
			l := buildListing(c, base, q, nights, log)
			if l.URL != models.Unknown && !seen.Add(l.URL) {
				log.Debug("skipping duplicate listing", "url", l.URL)
				continue
			}
			listings = append(listings, l)
			added++
		}

		if len(listings) >= limit {
			return listings, nil
		}
		if added == 0 && pageNum > 1 {
			log.Info("page yielded no new listings, stopping", "page", pageNum)
			return listings, nil
		}
		if err := ctx.Err(); err != nil {
			return stop("search context ended", err)
		}

		if err := s.rateLimiter.Wait(ctx); err != nil {
			return stop("search context ended", err)
		}
		more, err := page.NextPage(s.cfg.PageWaitTimeout)
		if err != nil {
			log.Warn("next page activation failed, keeping partial results", "listings", len(listings), "error", err)
			return listings, nil
		}
		if !more {
			log.Info("no more result pages", "page", pageNum)
			return listings, nil
		}
		if err := page.WaitForResults(s.cfg.PageWaitTimeout); err != nil {
			log.Warn("next page did not load, keeping partial results", "listings", len(listings), "error", err)
			return listings, nil
		}
	}
}

func stayNights(checkIn, checkOut string) int {
	in, err := time.Parse(models.DateLayout, checkIn)
	if err != nil {
		return 0
	}
	out, err := time.Parse(models.DateLayout, checkOut)
	if err != nil {
		return 0
	}
	return int(out.Sub(in).Hours() / 24)
}
