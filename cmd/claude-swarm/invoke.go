package main

import (
	"github.com/spf13/cobra"
)

var flagRaw bool

var invokeCmd = &cobra.Command{
	Use:   "invoke <agent> <task>",
	Short: "Invoke one agent with a task",
	Long: `Invokes the named agent with the task. The agent's persona, the
shared context, and its recent memory are folded into the prompt.
The interaction is recorded in the agent's memory and the swarm
history, success or failure.

With --raw the first argument is treated as a bare prompt and runs
without any agent, leaving agent memory untouched.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if flagRaw {
			return cobra.ExactArgs(1)(cmd, args)
		}
		return cobra.ExactArgs(2)(cmd, args)
	},
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

		if flagRaw {
			res := s.Run(cmd.Context(), args[0], tools)
			if err := s.Save(); err != nil {
				return err
			}
			return printJSON(res)
		}

		res, err := s.Invoke(cmd.Context(), args[0], args[1], tools)
		if err != nil {
			return err
		}
		if err := s.Save(); err != nil {
			return err
		}
		return printJSON(res)
	},
}

func init() {
	invokeCmd.Flags().BoolVar(&flagRaw, "raw", false, "Run a bare prompt without an agent")
}
