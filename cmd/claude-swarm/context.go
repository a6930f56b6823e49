package main

import (
	"encoding/json"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Manage the shared context visible to every agent",
}

var contextSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a shared context entry",
	Long: `Sets a shared context entry. The value is stored as JSON when it
parses as JSON, otherwise as a plain string.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, cleanup, err := openSwarm()
		if err != nil {
			return err
		}
		defer cleanup()

		key, raw := args[0], args[1]
		var value any = raw
		var parsed any
		if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
			value = parsed
		}

		s.SetContext(key, value)
		if err := s.Save(); err != nil {
			return err
		}
		color.New(color.FgGreen).Printf("set %s\n", key)
		return nil
	},
}

var contextShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the shared context as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, cleanup, err := openSwarm()
		if err != nil {
			return err
		}
		defer cleanup()
		return printJSON(s.Context())
	},
}

var contextClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every shared context entry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, cleanup, err := openSwarm()
		if err != nil {
			return err
		}
		defer cleanup()

		s.ClearContext()
		if err := s.Save(); err != nil {
			return err
		}
		color.New(color.FgGreen).Println("context cleared")
		return nil
	},
}

func init() {
	contextCmd.AddCommand(contextSetCmd)
	contextCmd.AddCommand(contextShowCmd)
	contextCmd.AddCommand(contextClearCmd)
}
