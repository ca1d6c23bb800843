package services

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"trip-planner/models"
	"trip-planner/utils"
)

var tracer = otel.Tracer("trip-planner/services")

// RequestExtractor turns free text into the raw trip fields
type RequestExtractor interface {
	Extract(ctx context.Context, query string) (map[string]any, error)
}

// Planner is the end-to-end pipeline for one inbound query
type Planner struct {
	router      *IntentRouter
	advisor     *Advisor
	extractor   RequestExtractor
	research    *ResearchCoordinator
	synthesizer *Synthesizer
	insights    *InsightService
	ratio       float64
	logger      *utils.Logger
}

// PlannerDeps bundles the collaborators a Planner needs
type PlannerDeps struct {
	Router          *IntentRouter
	Advisor         *Advisor
	Extractor       RequestExtractor
	Research        *ResearchCoordinator
	Synthesizer     *Synthesizer
	Insights        *InsightService
	AllocationRatio float64
}

// NewPlanner creates a planner. A zero ratio means DefaultAllocationRatio.
func NewPlanner(deps PlannerDeps, logger *utils.Logger) *Planner {
	ratio := deps.AllocationRatio
	if ratio <= 0 {
		ratio = DefaultAllocationRatio
	}
	insights := deps.Insights
	if insights == nil {
		insights = NewInsightService(logger)
	}
	return &Planner{
		router:      deps.Router,
		advisor:     deps.Advisor,
		extractor:   deps.Extractor,
		research:    deps.Research,
		synthesizer: deps.Synthesizer,
		insights:    insights,
		ratio:       ratio,
		logger:      logger,
	}
}

// Plan routes query and runs the matching path. Informational queries get a
// direct answer; planning queries are validated before any research starts.
// Invalid requests come back as *ValidationError.
func (p *Planner) Plan(ctx context.Context, query string) (*models.PipelineResult, error) {
	ctx, requestID := utils.EnsureRequestID(ctx)
	ctx, span := tracer.Start(ctx, "plan")
	defer span.End()
	span.SetAttributes(attribute.String("request.id", requestID))
	log := p.logger.WithContext(ctx)

	result := &models.PipelineResult{RequestID: requestID}
	result.Intent = p.router.Route(ctx, query)
	span.SetAttributes(attribute.String("plan.intent", string(result.Intent)))

	if result.Intent != models.IntentPlanning {
		answer, err := p.advisor.Advise(ctx, query)
		if err != nil {
			return nil, p.fail(span, err)
		}
		result.Response = answer
		log.Info("informational query answered")
		return result, nil
	}

	raw, err := p.extractor.Extract(ctx, query)
	if err != nil {
		log.Warn("trip details could not be extracted", "error", err)
		return nil, p.fail(span, &ValidationError{Violations: []Violation{
			{Kind: UnparseableRequest, Value: err.Error()},
		}})
	}

	req, err := ValidateTripRequest(raw)
	if err != nil {
		log.Warn("trip request rejected", "error", err)
		return nil, p.fail(span, err)
	}
	result.Request = req

	dc, err := Derive(req, p.ratio)
	if err != nil {
		return nil, p.fail(span, err)
	}
	result.Constraints = dc
	log.Info("trip request accepted",
		"destination", req.Destination,
		"nights", dc.Nights,
		"nightly_ceiling", dc.NightlyCeiling,
	)

	bundle := p.research.Research(ctx, req, dc)
	result.Research = bundle
	result.Insights = p.insights.Generate(bundle.Listings)

	plan, err := p.synthesizer.Synthesize(ctx, req, dc, bundle)
	if err != nil {
		return nil, p.fail(span, err)
	}
	result.Itinerary = plan
	log.Info("itinerary ready", "attractions", len(bundle.Attractions), "listings", len(bundle.Listings))
	return result, nil
}

func (p *Planner) fail(span trace.Span, err error) error {
	span.RecordError(err)
	var verr *ValidationError
	if errors.As(err, &verr) {
		span.SetStatus(codes.Error, "invalid request")
		return err
	}
	span.SetStatus(codes.Error, err.Error())
	return fmt.Errorf("plan trip: %w", err)
}
