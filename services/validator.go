package services

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"trip-planner/models"
)

// ViolationKind names one way a structured trip request can be invalid
type ViolationKind string

const (
	InvalidDateFormat   ViolationKind = "InvalidDateFormat"
	InvalidGuestCount   ViolationKind = "InvalidGuestCount"
	BudgetRangeInverted ViolationKind = "BudgetRangeInverted"
	InvalidCategory     ViolationKind = "InvalidCategory"
	NonPositiveStay     ViolationKind = "NonPositiveStay"
	MissingDestination  ViolationKind = "MissingDestination"
	InvalidBudget       ViolationKind = "InvalidBudget"
	UnparseableRequest  ViolationKind = "UnparseableRequest"
)

// MaxBudgetLimit is the largest budget accepted from an extracted request
const MaxBudgetLimit = 1_000_000_000

// Violation is one problem found in a raw trip request. For
// BudgetRangeInverted, Value holds the minimum and Max the maximum.
type Violation struct {
	Kind  ViolationKind `json:"kind"`
	Field string        `json:"field,omitempty"`
	Value any           `json:"value,omitempty"`
	Max   any           `json:"max,omitempty"`
}

func (v Violation) String() string {
	switch v.Kind {
	case InvalidDateFormat:
		return fmt.Sprintf("%s must be a YYYY-MM-DD date (got %v)", v.Field, v.Value)
	case InvalidGuestCount:
		return fmt.Sprintf("guests must be at least 1 (got %v)", v.Value)
	case BudgetRangeInverted:
		return fmt.Sprintf("min_budget %v cannot exceed max_budget %v", v.Value, v.Max)
	case InvalidCategory:
		return fmt.Sprintf("standard must be one of economy, standard, luxury (got %v)", v.Value)
	case NonPositiveStay:
		return "check-out date must be after check-in date"
	case MissingDestination:
		return "destination is required"
	case InvalidBudget:
		return fmt.Sprintf("%s must be a number between 0 and %d (got %v)", v.Field, MaxBudgetLimit, v.Value)
	case UnparseableRequest:
		return fmt.Sprintf("could not read trip details: %v", v.Value)
	default:
		return string(v.Kind)
	}
}

// ValidationError lists every violation found in a trip request
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.String())
	}
	return "invalid trip request: " + strings.Join(msgs, "; ")
}

// Has reports whether a violation of the given kind was recorded
func (e *ValidationError) Has(kind ViolationKind) bool {
	for _, v := range e.Violations {
		if v.Kind == kind {
			return true
		}
	}
	return false
}

// tripFields is the raw request after type coercion, ready for tag validation
type tripFields struct {
	Destination string  `validate:"required"`
	CheckIn     string  `validate:"datetime=2006-01-02"`
	CheckOut    string  `validate:"datetime=2006-01-02"`
	Guests      int     `validate:"min=1"`
	MinBudget   float64 `validate:"gte=0,ltefield=MaxBudget"`
	MaxBudget   float64 `validate:"gte=0,lte=1000000000"`
	Category    string  `validate:"oneof=economy standard luxury"`
}

var fieldNames = map[string]string{
	"Destination": "destination",
	"CheckIn":     "check_in",
	"CheckOut":    "check_out",
	"Guests":      "guests",
	"MinBudget":   "min_budget",
	"MaxBudget":   "max_budget",
	"Category":    "standard",
}

var tripValidator = validator.New()

// ValidateTripRequest turns the untrusted extractor output into a TripRequest.
// Every rule is checked so the caller sees the full list of problems. The
// stay-length rule is evaluated once both dates parse.
func ValidateTripRequest(raw map[string]any) (*models.TripRequest, error) {
	var violations []Violation
	fields := tripFields{
		Destination: strings.TrimSpace(stringField(raw, "destination")),
		CheckIn:     strings.TrimSpace(stringField(raw, "check_in")),
		CheckOut:    strings.TrimSpace(stringField(raw, "check_out")),
		Category:    strings.ToLower(strings.TrimSpace(stringField(raw, "standard"))),
	}

	guests, ok := intField(raw, "guests")
	if !ok {
		violations = append(violations, Violation{Kind: InvalidGuestCount, Field: "guests", Value: raw["guests"]})
	}
	fields.Guests = guests

	minBudget, minOK := numberField(raw, "min_budget")
	if !minOK {
		violations = append(violations, Violation{Kind: InvalidBudget, Field: "min_budget", Value: raw["min_budget"]})
	}
	maxBudget, maxOK := numberField(raw, "max_budget")
	if !maxOK {
		violations = append(violations, Violation{Kind: InvalidBudget, Field: "max_budget", Value: raw["max_budget"]})
	}
	fields.MinBudget, fields.MaxBudget = minBudget, maxBudget

	if err := tripValidator.Struct(fields); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, fmt.Errorf("validate trip request: %w", err)
		}
		for _, fe := range fieldErrs {
			if v, keep := toViolation(fe, fields, ok, minOK && maxOK); keep {
				violations = append(violations, v)
			}
		}
	}

	checkIn, inErr := time.Parse(models.DateLayout, fields.CheckIn)
	checkOut, outErr := time.Parse(models.DateLayout, fields.CheckOut)
	if inErr == nil && outErr == nil && !checkOut.After(checkIn) {
		violations = append(violations, Violation{Kind: NonPositiveStay})
	}

	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}
	return &models.TripRequest{
		Destination: fields.Destination,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Guests:      fields.Guests,
		Budget:      models.BudgetRange{Min: fields.MinBudget, Max: fields.MaxBudget},
		Category:    models.Category(fields.Category),
	}, nil
}

// toViolation maps a tag failure onto the request vocabulary. Failures on
// fields that already failed coercion are dropped to avoid double reporting.
func toViolation(fe validator.FieldError, f tripFields, guestsOK, budgetsOK bool) (Violation, bool) {
	name := fieldNames[fe.StructField()]
	switch fe.StructField() {
	case "Destination":
		return Violation{Kind: MissingDestination, Field: name}, true
	case "CheckIn", "CheckOut":
		return Violation{Kind: InvalidDateFormat, Field: name, Value: fe.Value()}, true
	case "Guests":
		return Violation{Kind: InvalidGuestCount, Field: name, Value: f.Guests}, guestsOK
	case "Category":
		return Violation{Kind: InvalidCategory, Field: name, Value: fe.Value()}, true
	case "MinBudget", "MaxBudget":
		if !budgetsOK {
			return Violation{}, false
		}
		if fe.Tag() == "ltefield" {
			return Violation{Kind: BudgetRangeInverted, Field: "budget", Value: f.MinBudget, Max: f.MaxBudget}, true
		}
		return Violation{Kind: InvalidBudget, Field: name, Value: fe.Value()}, true
	}
	return Violation{Kind: ViolationKind(fe.Tag()), Field: name, Value: fe.Value()}, true
}

func stringField(raw map[string]any, key string) string {
	switch v := raw[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// intField accepts whole JSON numbers and numeric strings
func intField(raw map[string]any, key string) (int, bool) {
	n, ok := numberField(raw, key)
	if !ok || n != math.Trunc(n) || math.Abs(n) > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}

func numberField(raw map[string]any, key string) (float64, bool) {
	var n float64
	switch v := raw[key].(type) {
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int64:
		n = float64(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(v), "$")), 64)
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
