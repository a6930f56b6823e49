package main

import (
	"github.com/spf13/cobra"

	"github.com/dbankscard/claude-swarm/internal/patterns"
)

var (
	flagMapPrompt    string
	flagReducePrompt string
)

var mapReduceCmd = &cobra.Command{
	Use:   "map-reduce <item> [item...]",
	Short: "Apply a map prompt to each item, then reduce the outputs",
	Long: `Runs the map prompt once per item concurrently ({item} in the map
prompt is replaced with the item), then a single reduce invocation
combines the successful map outputs. Failed items are reported by
index and excluded from the reduce input.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkClaudeCLI(); err != nil {
			return err
		}
		cfg, err := patternConfig()
		if err != nil {
			return err
		}
		result := patterns.MapReduce(cmd.Context(), args, flagMapPrompt, flagReducePrompt, cfg)
		return printJSON(result)
	},
}

func init() {
	mapReduceCmd.Flags().StringVar(&flagMapPrompt, "map", "", "Map prompt; {item} is replaced with each item")
	mapReduceCmd.Flags().StringVar(&flagReducePrompt, "reduce", "", "Reduce prompt applied to the combined map outputs")
	mapReduceCmd.MarkFlagRequired("map")
	mapReduceCmd.MarkFlagRequired("reduce")
}
