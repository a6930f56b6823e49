package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	flagAgentRole   string
	flagAgentPrompt string
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Manage the swarm's agent roster",
}

var agentAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a named agent to the swarm",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, cleanup, err := openSwarm()
		if err != nil {
			return err
		}
		defer cleanup()

		if _, err := s.AddAgent(args[0], flagAgentRole, flagAgentPrompt); err != nil {
			return err
		}
		if err := s.Save(); err != nil {
			return err
		}
		color.New(color.FgGreen).Printf("added agent %q\n", args[0])
		return nil
	},
}

var agentRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove an agent from the swarm",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, cleanup, err := openSwarm()
		if err != nil {
			return err
		}
		defer cleanup()

		if !s.RemoveAgent(args[0]) {
			return fmt.Errorf("no agent named %q", args[0])
		}
		if err := s.Save(); err != nil {
			return err
		}
		color.New(color.FgGreen).Printf("removed agent %q\n", args[0])
		return nil
	},
}

var agentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the swarm's agents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, cleanup, err := openSwarm()
		if err != nil {
			return err
		}
		defer cleanup()

		agents := s.Agents()
		if len(agents) == 0 {
			fmt.Println("no agents (add one with 'claude-swarm agent add')")
			return nil
		}
		bold := color.New(color.Bold)
		for _, a := range agents {
			bold.Printf("%s", a.Name)
			if a.Role != "" {
				fmt.Printf("  %s", a.Role)
			}
			fmt.Printf("  (%d memory entries)\n", len(a.Memory))
		}
		return nil
	},
}

func init() {
	agentAddCmd.Flags().StringVar(&flagAgentRole, "role", "", "Short role description, e.g. 'code reviewer'")
	agentAddCmd.Flags().StringVar(&flagAgentPrompt, "system-prompt", "", "System prompt prepended to every task")

	agentCmd.AddCommand(agentAddCmd)
	agentCmd.AddCommand(agentRemoveCmd)
	agentCmd.AddCommand(agentListCmd)
}
