package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dbankscard/claude-swarm/internal/claude"
	"github.com/dbankscard/claude-swarm/internal/config"
	"github.com/dbankscard/claude-swarm/internal/history"
	"github.com/dbankscard/claude-swarm/internal/patterns"
	"github.com/dbankscard/claude-swarm/internal/profile"
	"github.com/dbankscard/claude-swarm/internal/swarm"
)

var (
	appCfg   *config.Config
	registry *profile.Registry

	flagCwd           string
	flagStateFile     string
	flagProfile       string
	flagAllowedTools  []string
	flagMaxConcurrent int
	flagTimeout       time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "claude-swarm",
	Short: "Orchestrate swarms of Claude Code agents",
	Long: `claude-swarm coordinates concurrent Claude Code invocations through
named agents, shared context, and persistent swarm state.

Pattern commands run one-shot coordination workflows:
  fan-out, pipeline, hierarchical, competitive, map-reduce

Management commands operate on the persistent swarm:
  agent, context, invoke, dispatch, broadcast`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		appCfg = cfg

		// Config supplies defaults for flags the user did not set.
		if !cmd.Flags().Changed("state-file") && cfg.Defaults.StateFile != "" {
			flagStateFile = cfg.Defaults.StateFile
		}
		if !cmd.Flags().Changed("max-concurrent") && cfg.Defaults.MaxConcurrent > 0 {
			flagMaxConcurrent = cfg.Defaults.MaxConcurrent
		}
		if !cmd.Flags().Changed("timeout") && cfg.Defaults.Timeout > 0 {
			flagTimeout = cfg.Defaults.Timeout
		}

		registry = profile.NewRegistry()
		profilesFile := cfg.Defaults.ProfilesFile
		if profilesFile == "" {
			profilesFile = profile.DefaultProfilesFile
		}
		return registry.LoadFile(profilesFile)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagCwd, "cwd", ".", "Working directory for agent invocations")
	pf.StringVar(&flagStateFile, "state-file", swarm.DefaultStatePath, "Path to the swarm state file")
	pf.StringVar(&flagProfile, "profile", "", "Tool profile (see 'claude-swarm profiles')")
	pf.StringSliceVar(&flagAllowedTools, "allowed-tools", nil, "Tools to allow (e.g. WebSearch,WebFetch); 'all' lifts the restriction")
	pf.IntVar(&flagMaxConcurrent, "max-concurrent", swarm.DefaultMaxConcurrent, "Maximum concurrent invocations")
	pf.DurationVar(&flagTimeout, "timeout", claude.DefaultTimeout, "Per-invocation timeout")

	rootCmd.AddCommand(fanOutCmd)
	rootCmd.AddCommand(pipelineCmd)
	rootCmd.AddCommand(hierarchicalCmd)
	rootCmd.AddCommand(competitiveCmd)
	rootCmd.AddCommand(mapReduceCmd)
	rootCmd.AddCommand(agentCmd)
	rootCmd.AddCommand(contextCmd)
	rootCmd.AddCommand(invokeCmd)
	rootCmd.AddCommand(dispatchCmd)
	rootCmd.AddCommand(broadcastCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// checkClaudeCLI verifies that the configured CLI is available in
// PATH. Returns an error with installation instructions if not found.
func checkClaudeCLI() error {
	if _, err := exec.LookPath(appCfg.Claude.Binary); err != nil {
		return fmt.Errorf("%s CLI not found in PATH\n\n"+
			"claude-swarm drives the Claude Code CLI to run agents.\n\n"+
			"Install it with:\n"+
			"  npm install -g @anthropic-ai/claude-code", appCfg.Claude.Binary)
	}
	return nil
}

// resolveTools combines --profile and --allowed-tools into the
// allow-list for this run.
func resolveTools() (claude.ToolList, error) {
	return registry.Resolve(flagProfile, flagAllowedTools)
}

// newClient builds the CLI client from configuration.
func newClient() *claude.Client {
	return claude.NewClient(appCfg.Claude.Binary, appCfg.Claude.OutputFormat)
}

// patternConfig assembles the shared pattern configuration from flags.
func patternConfig() (patterns.Config, error) {
	tools, err := resolveTools()
	if err != nil {
		return patterns.Config{}, err
	}
	return patterns.Config{
		Dir:           flagCwd,
		Tools:         tools,
		MaxConcurrent: flagMaxConcurrent,
		Timeout:       flagTimeout,
		Client:        newClient(),
	}, nil
}

// openSwarm loads the persistent swarm from the state file. The
// returned cleanup closes the history archive when one is configured.
func openSwarm() (*swarm.Swarm, func(), error) {
	var archive swarm.Archiver
	cleanup := func() {}

	if appCfg.History.Enabled {
		db, err := history.Open(appCfg.History.Path)
		if err != nil {
			// The archive is an audit trail; a broken one should not
			// block the swarm.
			color.New(color.FgYellow).Fprintf(os.Stderr, "warning: history archive unavailable: %v\n", err)
		} else {
			archive = db
			cleanup = func() { db.Close() }
		}
	}

	s := swarm.New(swarm.Config{
		Client:        newClient(),
		State:         swarm.LoadState(flagStateFile),
		MaxConcurrent: flagMaxConcurrent,
		Dir:           flagCwd,
		Timeout:       flagTimeout,
		StatePath:     flagStateFile,
		Archive:       archive,
	})
	return s, cleanup, nil
}

// printJSON writes any value as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
