package main

import (
	"github.com/spf13/cobra"

	"github.com/dbankscard/claude-swarm/internal/patterns"
)

var fanOutCmd = &cobra.Command{
	Use:   "fan-out <task> [task...]",
	Short: "Run independent tasks concurrently",
	Long: `Runs each task as its own Claude Code invocation, bounded by
--max-concurrent. Results print in the order the tasks were given,
regardless of completion order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkClaudeCLI(); err != nil {
			return err
		}
		cfg, err := patternConfig()
		if err != nil {
			return err
		}
		results := patterns.FanOut(cmd.Context(), args, cfg)
		return printJSON(results)
	},
}
