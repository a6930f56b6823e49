package patterns

import (
	"context"

	"github.com/dbankscard/claude-swarm/internal/claude"
)

// Pipeline runs stages strictly sequentially. Each stage after the
// first receives the previous stage's successful output appended as
// carried-forward context. A failed stage halts the pipeline: the
// partial results collected so far are returned and later stages are
// never invoked, so a failure is never fed forward as context.
func Pipeline(ctx context.Context, stages []string, cfg Config) []claude.Result {
	inv := cfg.invoker()
	results := make([]claude.Result, 0, len(stages))

	var carry string
	var hasCarry bool

	for _, stage := range stages {
		prompt := stage
		if hasCarry {
			prompt = stage + "\n\n## Previous Stage Output\n" + carry
		}

		res := inv.Invoke(ctx, prompt, cfg.options())
		results = append(results, res)

		if !res.Success {
			break
		}
		carry = res.Output
		hasCarry = true
	}

	return results
}
