package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dbankscard/claude-swarm/internal/profile"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the available tool profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		bold := color.New(color.Bold)
		for _, name := range registry.Names() {
			if name == profile.All {
				bold.Printf("%-10s", name)
				fmt.Println("(no tool restriction)")
				continue
			}
			tools, _ := registry.Get(name)
			bold.Printf("%-10s", name)
			fmt.Println(strings.Join(tools, ", "))
		}
		return nil
	},
}
