package patterns

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dbankscard/claude-swarm/internal/claude"
)

// personas rotate across candidates so independent attempts approach
// the task from different angles.
var personas = []string{
	"Focus on code clarity and readability.",
	"Focus on optimal performance and efficiency.",
	"Focus on robustness and edge case handling.",
}

const judgePromptTemplate = `You are a judge evaluating %d solutions to this task:

## Task
%s

## Solutions
%s

Evaluate each solution and select the best one. Explain your reasoning briefly. Your first line must be exactly "Winner: N" where N is the number of the best solution (1-%d).`

var winnerPattern = regexp.MustCompile(`(?i)winner[^0-9]*([0-9]+)`)

// CompetitiveResult aggregates the candidate solutions and the
// judge's decision.
type CompetitiveResult struct {
	Task       string          `json:"task"`
	Candidates []claude.Result `json:"candidates"`
	// Winner indexes into Candidates; -1 when no winner was declared.
	Winner   int           `json:"winner"`
	Judgment claude.Result `json:"judgment"`
}

// Competitive runs n independent invocations of the same task with no
// shared memory between candidates, then a single judge invocation
// that receives every output and declares a winner with justification.
// If all candidates fail, judging is skipped and the result carries a
// failure judgment with Winner set to -1.
func Competitive(ctx context.Context, task string, n int, cfg Config) CompetitiveResult {
	if n <= 0 {
		n = len(personas)
	}
	inv := cfg.invoker()

	prompts := make([]string, n)
	for i := range prompts {
		prompts[i] = fmt.Sprintf("%s\n\nApproach: %s", task, personas[i%len(personas)])
	}

	candidates := runAll(ctx, inv, prompts, cfg)

	anySucceeded := false
	for _, c := range candidates {
		if c.Success {
			anySucceeded = true
			break
		}
	}
	if !anySucceeded {
		return CompetitiveResult{
			Task:       task,
			Candidates: candidates,
			Winner:     -1,
			Judgment:   claude.Result{Error: fmt.Sprintf("all %d candidates failed; judging skipped", n)},
		}
	}

	var b strings.Builder
	for i, c := range candidates {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if c.Success {
			fmt.Fprintf(&b, "### Solution %d\n%s", i+1, c.Output)
		} else {
			fmt.Fprintf(&b, "### Solution %d\nFAILED: %s", i+1, c.Error)
		}
	}

	judgment := inv.Invoke(ctx, fmt.Sprintf(judgePromptTemplate, n, task, b.String(), n), cfg.options())

	return CompetitiveResult{
		Task:       task,
		Candidates: candidates,
		Winner:     parseWinner(judgment, n),
		Judgment:   judgment,
	}
}

// parseWinner extracts the judge's 1-based winner declaration and
// converts it to a candidate index. -1 when the judge failed or did
// not commit to a number in range.
func parseWinner(judgment claude.Result, n int) int {
	if !judgment.Success {
		return -1
	}
	m := winnerPattern.FindStringSubmatch(judgment.Output)
	if m == nil {
		return -1
	}
	num, err := strconv.Atoi(m[1])
	if err != nil || num < 1 || num > n {
		return -1
	}
	return num - 1
}
