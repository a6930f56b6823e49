package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbankscard/claude-swarm/internal/history"
	"github.com/dbankscard/claude-swarm/internal/swarm"
)

var (
	flagHistoryAgent   string
	flagHistoryLimit   int
	flagHistoryArchive bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent interactions",
	Long: `Shows the swarm's recent interactions from the state file, newest
first. With --archive the uncapped SQLite archive is queried
instead (requires history.enabled in the config).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagHistoryArchive {
			return showArchiveHistory()
		}

		s, cleanup, err := openSwarm()
		if err != nil {
			return err
		}
		defer cleanup()

		recs := s.History()
		// State history is oldest first; show newest first like the archive.
		var out []swarm.Interaction
		for i := len(recs) - 1; i >= 0 && len(out) < flagHistoryLimit; i-- {
			rec := recs[i]
			if flagHistoryAgent != "" && rec.Agent != flagHistoryAgent {
				continue
			}
			out = append(out, rec)
		}
		return printJSON(out)
	},
}

func showArchiveHistory() error {
	if !appCfg.History.Enabled {
		return fmt.Errorf("history archive is disabled; set history.enabled in the config")
	}
	db, err := history.Open(appCfg.History.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	var recs []swarm.Interaction
	if flagHistoryAgent != "" {
		recs, err = db.ByAgent(flagHistoryAgent, flagHistoryLimit)
	} else {
		recs, err = db.Recent(flagHistoryLimit)
	}
	if err != nil {
		return err
	}
	return printJSON(recs)
}

func init() {
	historyCmd.Flags().StringVar(&flagHistoryAgent, "agent", "", "Only show interactions for this agent")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Maximum number of interactions to show")
	historyCmd.Flags().BoolVar(&flagHistoryArchive, "archive", false, "Query the SQLite archive instead of the state file")
}
