package services

import (
	"context"
	"fmt"
	"strings"

	"trip-planner/models"
	"trip-planner/utils"
)

// IntentClassifier labels a query as planning or informational
type IntentClassifier interface {
	Classify(ctx context.Context, query string) (string, error)
}

const advisoryInstructions = `Answer the user's question about travel in a helpful and concise way.
Do not assume they want to book anything. If relevant, mention attractions, best times to visit, culture, or travel tips.`

// IntentRouter decides which path a query takes
type IntentRouter struct {
	classifier IntentClassifier
	logger     *utils.Logger
}

// NewIntentRouter creates a router over a classifier
func NewIntentRouter(classifier IntentClassifier, logger *utils.Logger) *IntentRouter {
	return &IntentRouter{classifier: classifier, logger: logger}
}

// Route classifies query. Classifier errors and unexpected labels fall back
// to informational, which never starts any research.
func (r *IntentRouter) Route(ctx context.Context, query string) models.Intent {
	log := r.logger.WithContext(ctx)
	label, err := r.classifier.Classify(ctx, query)
	if err != nil {
		log.Warn("intent classification failed, treating as informational", "error", err)
		return models.IntentInformational
	}
	intent, ok := ParseIntent(label)
	if !ok {
		log.Warn("unexpected intent label, treating as informational", "label", label)
	}
	log.Info("intent classified", "label", label, "intent", intent)
	return intent
}

// ParseIntent normalizes a classifier label. It accepts the short labels and
// the trip_planning/general_info pair the classifier prompt asks for.
func ParseIntent(label string) (models.Intent, bool) {
	l := strings.ToLower(strings.TrimSpace(label))
	l = strings.Trim(l, " \t\n'\"`.!")
	switch l {
	case "planning", "trip_planning":
		return models.IntentPlanning, true
	case "informational", "general_info":
		return models.IntentInformational, true
	default:
		return models.IntentInformational, false
	}
}

// Advisor answers informational queries in one shot
type Advisor struct {
	generator TextGenerator
}

func NewAdvisor(generator TextGenerator) *Advisor {
	return &Advisor{generator: generator}
}

func (a *Advisor) Advise(ctx context.Context, query string) (string, error) {
	answer, err := a.generator.Generate(ctx, advisoryInstructions, query)
	if err != nil {
		return "", fmt.Errorf("advisory generation failed: %w", err)
	}
	return answer, nil
}
