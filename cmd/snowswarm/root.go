package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "snowswarm",
	Short: "Multi-agent development planner for ServiceNow",
	Long: `Snowswarm turns a natural-language objective into a coordinated
multi-agent development plan for a ServiceNow instance, then hands the
plan to an AI coding agent for execution.

Core flow:
- Classifies the objective into a task category and complexity tier
- Assembles a bounded team of specialized roles
- Defines the session-scoped coordination contract the team follows
- Records the session and streams the plan to the executing agent

Run 'snowswarm swarm "<objective>"' to start, then
'snowswarm status <session-id>' to follow progress.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(swarmCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
