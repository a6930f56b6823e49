package patterns

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dbankscard/claude-swarm/internal/claude"
)

const defaultMaxSubtasks = 5

const planPromptTemplate = `You are a planning coordinator. Break this goal into %d or fewer independent subtasks that can be executed in parallel.

Return ONLY a JSON array of task strings. No explanation, no markdown, just the JSON array.

Goal: %s`

const synthesisPromptTemplate = `You are a synthesis coordinator. Combine these worker results into a cohesive response.

## Original Goal
%s

## Subtask Results
%s

Provide a unified, coherent response that addresses the original goal.`

// HierarchicalResult aggregates the three phases of a hierarchical run.
type HierarchicalResult struct {
	Goal       string          `json:"goal"`
	Plan       []string        `json:"plan"`
	Subresults []claude.Result `json:"subresults"`
	Synthesis  claude.Result   `json:"synthesis"`
}

// Hierarchical decomposes a goal in three ordered phases: a single
// planner invocation produces subtasks, the subtasks run with fan-out
// semantics, and a single synthesizer invocation combines the goal
// with every subresult. Phase boundaries are strict barriers. Failed
// subtasks are passed into synthesis as error entries rather than
// aborting the run.
func Hierarchical(ctx context.Context, goal string, cfg Config) HierarchicalResult {
	inv := cfg.invoker()

	maxSubtasks := cfg.MaxSubtasks
	if maxSubtasks <= 0 {
		maxSubtasks = defaultMaxSubtasks
	}

	planRes := inv.Invoke(ctx, fmt.Sprintf(planPromptTemplate, maxSubtasks, goal), cfg.options())
	subtasks := parseSubtasks(planRes, goal)

	subresults := runAll(ctx, inv, subtasks, cfg)

	var b strings.Builder
	for i, res := range subresults {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if res.Success {
			fmt.Fprintf(&b, "### Subtask %d: %s\n%s", i+1, subtasks[i], res.Output)
		} else {
			fmt.Fprintf(&b, "### Subtask %d: %s\nERROR: %s", i+1, subtasks[i], res.Error)
		}
	}

	synthesis := inv.Invoke(ctx, fmt.Sprintf(synthesisPromptTemplate, goal, b.String()), cfg.options())

	return HierarchicalResult{
		Goal:       goal,
		Plan:       subtasks,
		Subresults: subresults,
		Synthesis:  synthesis,
	}
}

// parseSubtasks extracts the planner's JSON array of task strings.
// Markdown fences are tolerated. When the planner failed or its output
// has no usable structure, the whole goal becomes the single subtask.
func parseSubtasks(planRes claude.Result, goal string) []string {
	if !planRes.Success {
		return []string{goal}
	}

	text := strings.TrimSpace(planRes.Output)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var subtasks []string
	if err := json.Unmarshal([]byte(text), &subtasks); err != nil {
		return []string{goal}
	}

	cleaned := subtasks[:0]
	for _, st := range subtasks {
		if st = strings.TrimSpace(st); st != "" {
			cleaned = append(cleaned, st)
		}
	}
	if len(cleaned) == 0 {
		return []string{goal}
	}
	return cleaned
}
