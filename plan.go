package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"trip-planner/services"
)

var planCmd = &cobra.Command{
	Use:   "plan [query]",
	Short: "Plan a trip from the command line",
	Example: `  trip-planner plan "5 days in Dubai from 2025-06-01 to 2025-06-06 for 2, budget $1000-$3000, standard"
  trip-planner plan --json "What is the best season to visit Lisbon?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlan,
}

func init() {
	planCmd.Flags().Bool("json", false, "print the raw result as JSON")
	planCmd.Flags().String("csv", "", "also export the collected listings to this CSV file")
}

func runPlan(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	csvPath, _ := cmd.Flags().GetString("csv")

	planner, err := buildPlanner(cfg, logger)
	if err != nil {
		return err
	}
	result, err := planner.Plan(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	exported := false
	if csvPath != "" && result.Research != nil {
		if err := newListingSink(csvPath, logger).SaveListings(result.Research.Listings); err != nil {
			logger.Error("listings export failed", "error", err)
		} else {
			exported = true
		}
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	services.PrintPipelineResult(out, result)
	if exported {
		fmt.Fprintln(out, " Listings exported to", csvPath)
	}
	return nil
}
