package patterns

import (
	"context"
	"fmt"
	"strings"

	"github.com/dbankscard/claude-swarm/internal/claude"
)

// itemPlaceholder is substituted into the map prompt per item.
const itemPlaceholder = "{item}"

// MapReduceResult aggregates the map phase and the reduce invocation.
type MapReduceResult struct {
	Items      []string        `json:"items"`
	MapResults []claude.Result `json:"map_results"`
	// Failed lists the indexes of map invocations whose output was
	// excluded from the reduce input.
	Failed []int         `json:"failed,omitempty"`
	Reduce claude.Result `json:"reduce"`
}

// MapReduce fills the map prompt with each item and runs the filled
// prompts with fan-out semantics, then runs one reduce invocation over
// the concatenated successful map outputs. Failed map entries are
// excluded from the reduce input but stay visible in the result. If
// every map invocation fails there is nothing to reduce, so the reduce
// slot carries a failure instead of an empty-input invocation.
func MapReduce(ctx context.Context, items []string, mapPrompt, reducePrompt string, cfg Config) MapReduceResult {
	inv := cfg.invoker()

	prompts := make([]string, len(items))
	for i, item := range items {
		prompts[i] = fillMapPrompt(mapPrompt, item)
	}

	mapResults := runAll(ctx, inv, prompts, cfg)

	var b strings.Builder
	var failed []int
	for i, res := range mapResults {
		if !res.Success {
			failed = append(failed, i)
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "### %s\n%s", items[i], res.Output)
	}

	out := MapReduceResult{Items: items, MapResults: mapResults, Failed: failed}

	if b.Len() == 0 {
		out.Reduce = claude.Result{Error: "all map invocations failed; nothing to reduce"}
		return out
	}

	out.Reduce = inv.Invoke(ctx, fmt.Sprintf("%s\n\n## Map Results\n%s", reducePrompt, b.String()), cfg.options())
	return out
}

// fillMapPrompt substitutes the item into the template. Templates
// without the placeholder get the item appended so the invocation
// still sees it.
func fillMapPrompt(mapPrompt, item string) string {
	if strings.Contains(mapPrompt, itemPlaceholder) {
		return strings.ReplaceAll(mapPrompt, itemPlaceholder, item)
	}
	return mapPrompt + "\n\nItem: " + item
}
