package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var dispatchCmd = &cobra.Command{
	Use:   "dispatch <agent:task> [agent:task...]",
	Short: "Run different tasks on different agents concurrently",
	Long: `Runs each agent:task assignment concurrently, bounded by
--max-concurrent. All agent names are validated before anything
runs; an unknown name fails the whole dispatch.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkClaudeCLI(); err != nil {
			return err
		}
		assignments := make(map[string]string, len(args))
		for _, arg := range args {
			name, task, ok := strings.Cut(arg, ":")
			if !ok || name == "" || task == "" {
				return fmt.Errorf("malformed assignment %q, want agent:task", arg)
			}
			assignments[name] = task
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

		results, err := s.Dispatch(cmd.Context(), assignments, tools)
		if err != nil {
			return err
		}
		if err := s.Save(); err != nil {
			return err
		}
		return printJSON(results)
	},
}
