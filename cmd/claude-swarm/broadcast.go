package main

import (
	"github.com/spf13/cobra"
)

var broadcastCmd = &cobra.Command{
	Use:   "broadcast <task>",
	Short: "Run the same task on every agent concurrently",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkClaudeCLI(); err != nil {
			return err
		}
		tools, err := resolveTools()
		if err != nil {
			return err
		}
		s, cleanup, err := openSwarm()
		if err != nil {
			return err
		}
		defer cleanup()

		results, err := s.Broadcast(cmd.Context(), args[0], tools)
		if err != nil {
			return err
		}
		if err := s.Save(); err != nil {
			return err
		}
		return printJSON(results)
	},
}
