package main

import (
	"fmt"

	"trip-planner/config"
	"trip-planner/llm"
	"trip-planner/places"
	"trip-planner/scraper/airbnb"
	"trip-planner/services"
	"trip-planner/storage"
	"trip-planner/utils"
)

// buildPlanner wires the pipeline from configuration
func buildPlanner(cfg *config.Config, logger *utils.Logger) (*services.Planner, error) {
	client, err := llm.NewClient(cfg.LLM, logger)
	if err != nil {
		return nil, fmt.Errorf("llm: %w", err)
	}
	finder, err := places.NewFinder(cfg.Places, logger)
	if err != nil {
		return nil, fmt.Errorf("places: %w", err)
	}
	scraper := airbnb.NewScraper(cfg.Scraper, logger)

	research := services.NewResearchCoordinator(finder, scraper, services.ResearchOptions{
		AttractionsTimeout: cfg.Research.AttractionsTimeout,
		ListingsTimeout:    cfg.Research.ListingsTimeout,
		ListingsLimit:      cfg.Scraper.Limit,
	}, logger)

	return services.NewPlanner(services.PlannerDeps{
		Router:          services.NewIntentRouter(llm.NewClassifier(client), logger),
		Advisor:         services.NewAdvisor(client),
		Extractor:       llm.NewExtractor(client),
		Research:        research,
		Synthesizer:     services.NewSynthesizer(client),
		Insights:        services.NewInsightService(logger),
		AllocationRatio: cfg.Planner.AllocationRatio,
	}, logger), nil
}

// newListingSink picks the export for collected listings; only CSV files for now
func newListingSink(path string, logger *utils.Logger) storage.ListingSink {
	return storage.NewCSVWriter(path, logger)
}
