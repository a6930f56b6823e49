package main

import (
	"github.com/spf13/cobra"

	"github.com/dbankscard/claude-swarm/internal/patterns"
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline <stage> [stage...]",
	Short: "Run stages sequentially, feeding each output into the next",
	Long: `Runs the stages one after another. Each stage's prompt carries the
previous stage's output. A failed stage halts the pipeline; the
results of the completed stages are still printed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkClaudeCLI(); err != nil {
			return err
		}
		cfg, err := patternConfig()
		if err != nil {
			return err
		}
		results := patterns.Pipeline(cmd.Context(), args, cfg)
		return printJSON(results)
	},
}
