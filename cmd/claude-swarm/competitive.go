package main

import (
	"github.com/spf13/cobra"

	"github.com/dbankscard/claude-swarm/internal/patterns"
)

var flagNumAgents int

var competitiveCmd = &cobra.Command{
	Use:   "competitive <task>",
	Short: "Have several agents attempt a task, then judge the best",
	Long: `Runs the task through N agents with distinct approaches, then a
judge invocation picks the winner. The winner index is 1-based in
the judgment text and -1 in the output when no winner was picked.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkClaudeCLI(); err != nil {
			return err
		}
		cfg, err := patternConfig()
		if err != nil {
			return err
		}
		result := patterns.Competitive(cmd.Context(), args[0], flagNumAgents, cfg)
		return printJSON(result)
	},
}

func init() {
	competitiveCmd.Flags().IntVar(&flagNumAgents, "num-agents", 3, "Number of competing agents")
}
