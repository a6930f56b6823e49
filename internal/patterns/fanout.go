package patterns

import (
	"context"

	"github.com/dbankscard/claude-swarm/internal/claude"
)

// FanOut runs independent tasks in parallel, one invocation per task,
// bounded by the configured limit. Results come back in the same order
// as the input tasks regardless of completion order; a failure is
// reported in its slot and never cancels the rest of the batch.
func FanOut(ctx context.Context, tasks []string, cfg Config) []claude.Result {
	return runAll(ctx, cfg.invoker(), tasks, cfg)
}
