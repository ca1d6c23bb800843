package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"trip-planner/config"
	"trip-planner/utils"
)

var (
	configFile string
	logLevel   string

	cfg    *config.Config
	logger *utils.Logger
)

var rootCmd = &cobra.Command{
	Use:   "trip-planner",
	Short: "Plan trips from a single natural language request",
	Long: `trip-planner turns a free-text travel request into a day-by-day itinerary.

It classifies the request, validates the extracted trip details, derives a
nightly lodging budget, researches attractions and Airbnb listings in parallel
and asks a language model to combine them into a plan.`,
	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute runs the root command with signal handling
func Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		loaded.Log.Level = logLevel
	}
	cfg = loaded
	logger = utils.NewLogger(cfg.Log.Level)
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the log level (debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(planCmd)
}
