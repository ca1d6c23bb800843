package services

import (
	"errors"
	"fmt"
	"math"

	"trip-planner/models"
)

// DefaultAllocationRatio is the share of the total budget earmarked for lodging
const DefaultAllocationRatio = 0.6

// ErrDivisionUndefined is returned when the stay has no nights to spread the budget over
var ErrDivisionUndefined = errors.New("nightly budget undefined for a stay without nights")

// ErrCeilingOutOfRange is returned when the nightly ceiling does not fit a
// listings price filter
var ErrCeilingOutOfRange = errors.New("nightly budget out of range")

// Allocate returns floor(maxBudget * ratio / nights). The result must lie in
// 0..math.MaxInt32.
func Allocate(maxBudget float64, nights int, ratio float64) (int, error) {
	if nights <= 0 {
		return 0, fmt.Errorf("%w (nights=%d)", ErrDivisionUndefined, nights)
	}
	ceiling := math.Floor(maxBudget * ratio / float64(nights))
	if math.IsNaN(ceiling) || ceiling < 0 || ceiling > math.MaxInt32 {
		return 0, fmt.Errorf("%w (max_budget=%v, ratio=%v, nights=%d)", ErrCeilingOutOfRange, maxBudget, ratio, nights)
	}
	return int(ceiling), nil
}

// Derive computes the stay length and nightly ceiling for req
func Derive(req *models.TripRequest, ratio float64) (*models.DerivedConstraints, error) {
	nights := int(req.CheckOut.Sub(req.CheckIn).Hours() / 24)
	ceiling, err := Allocate(req.Budget.Max, nights, ratio)
	if err != nil {
		return nil, err
	}
	return &models.DerivedConstraints{
		Nights:         nights,
		NightlyCeiling: ceiling,
		Ratio:          ratio,
	}, nil
}
