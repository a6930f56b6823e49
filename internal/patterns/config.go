// Package patterns provides the higher-level coordination algorithms
// built on the invocation client: fan-out, pipeline, hierarchical,
// competitive, and map-reduce. The patterns are stateless functions;
// they hold no roster and mutate no swarm state.
package patterns

import (
	"context"
	"sync"
	"time"

	"github.com/dbankscard/claude-swarm/internal/claude"
)

// DefaultMaxConcurrent bounds parallel invocations inside a pattern
// when the caller does not set a limit.
const DefaultMaxConcurrent = 5

// Config carries the parameters shared by every pattern.
type Config struct {
	// Dir is the working directory for every invocation.
	Dir string
	// Tools is the capability allow-list applied to every invocation.
	Tools claude.ToolList
	// MaxConcurrent caps parallel invocations. Zero means
	// DefaultMaxConcurrent.
	MaxConcurrent int
	// Timeout bounds each individual invocation.
	Timeout time.Duration
	// MaxSubtasks caps how many subtasks the hierarchical planner is
	// asked for. Zero means defaultMaxSubtasks.
	MaxSubtasks int
	// Client runs the invocations. Nil means a fresh CLI client with
	// defaults.
	Client claude.Invoker
}

func (c Config) invoker() claude.Invoker {
	if c.Client != nil {
		return c.Client
	}
	return claude.NewClient("", "")
}

func (c Config) options() claude.Options {
	return claude.Options{Dir: c.Dir, Tools: c.Tools, Timeout: c.Timeout}
}

func (c Config) limit() int {
	if c.MaxConcurrent > 0 {
		return c.MaxConcurrent
	}
	return DefaultMaxConcurrent
}

// runAll invokes every prompt concurrently under a counting semaphore
// and returns results indexed like the input, independent of
// completion order. A failed slot never aborts its siblings.
func runAll(ctx context.Context, inv claude.Invoker, prompts []string, cfg Config) []claude.Result {
	results := make([]claude.Result, len(prompts))
	sem := make(chan struct{}, cfg.limit())
	var wg sync.WaitGroup

	for i, prompt := range prompts {
		wg.Add(1)
		go func(i int, prompt string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				results[i] = claude.Result{Error: "invocation canceled: " + ctx.Err().Error()}
				return
			}
			defer func() { <-sem }()

			results[i] = inv.Invoke(ctx, prompt, cfg.options())
		}(i, prompt)
	}
	wg.Wait()

	return results
}
