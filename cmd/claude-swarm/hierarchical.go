package main

import (
	"github.com/spf13/cobra"

	"github.com/dbankscard/claude-swarm/internal/patterns"
)

var flagMaxSubtasks int

var hierarchicalCmd = &cobra.Command{
	Use:   "hierarchical <goal>",
	Short: "Plan a goal into subtasks, run them, then synthesize",
	Long: `A coordinator invocation decomposes the goal into subtasks, the
subtasks run concurrently, and a final invocation synthesizes the
subtask results into one answer. If the plan cannot be parsed the
goal runs as a single task.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkClaudeCLI(); err != nil {
			return err
		}
		cfg, err := patternConfig()
		if err != nil {
			return err
		}
		cfg.MaxSubtasks = flagMaxSubtasks
		result := patterns.Hierarchical(cmd.Context(), args[0], cfg)
		return printJSON(result)
	},
}

func init() {
	hierarchicalCmd.Flags().IntVar(&flagMaxSubtasks, "max-subtasks", 5, "Cap on planned subtasks")
}
