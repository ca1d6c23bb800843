package main

import (
	"github.com/spf13/cobra"

	"trip-planner/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve the planner over HTTP.

  GET  /health     liveness check
  POST /plan-trip  {"query": "..."} returns the plan or an answer`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	planner, err := buildPlanner(cfg, logger)
	if err != nil {
		return err
	}
	return server.New(cfg.Server, planner, logger).Run(cmd.Context())
}
