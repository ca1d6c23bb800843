package airbnb

import (
	"errors"
	"fmt"
)

// Stage identifies where a fatal extraction failure happened
type Stage string

const (
	StageNavigation  Stage = "navigation"
	StageInitialLoad Stage = "initial-load"
	StageMidScrape   Stage = "mid-scrape"
)

// ErrPageLoadTimeout is returned when the results container does not appear in time
var ErrPageLoadTimeout = errors.New("results container did not load in time")

// ScrapeError is a fatal extraction failure. Callers treat it as zero results.
type ScrapeError struct {
	Stage Stage
	Err   error
}

func (e *ScrapeError) Error() string {
	return fmt.Sprintf("airbnb scrape failed at %s: %v", e.Stage, e.Err)
}

func (e *ScrapeError) Unwrap() error { return e.Err }

func stageErr(stage Stage, err error) error {
	return &ScrapeError{Stage: stage, Err: err}
}
