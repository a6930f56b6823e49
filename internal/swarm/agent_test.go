package swarm

import (
	"fmt"
	"strings"
	"testing"
)

func TestBuildPromptSectionOrder(t *testing.T) {
	a := &Agent{
		Name:         "reviewer",
		Role:         "code reviewer",
		SystemPrompt: "Be strict about error handling.",
	}
	a.Record("review auth.go", "found two issues")

	shared := map[string]any{
		"repo":   "claude-swarm",
		"branch": "main",
	}

	prompt := a.BuildPrompt("review db.go", shared)

	sections := []string{
		"You are reviewer, a code reviewer.",
		"Be strict about error handling.",
		"## Shared Context",
		"## Your Recent Memory",
		"## Task",
		"review db.go",
	}

	last := -1
	for _, section := range sections {
		idx := strings.Index(prompt, section)
		if idx == -1 {
			t.Fatalf("prompt missing section %q:\n%s", section, prompt)
		}
		if idx < last {
			t.Errorf("section %q out of order in prompt:\n%s", section, prompt)
		}
		last = idx
	}

	// Shared context keys render sorted, one pair per line.
	if !strings.Contains(prompt, "- branch: main") || !strings.Contains(prompt, "- repo: claude-swarm") {
		t.Errorf("shared context pairs not rendered per line:\n%s", prompt)
	}
	if strings.Index(prompt, "- branch:") > strings.Index(prompt, "- repo:") {
		t.Errorf("shared context keys not sorted:\n%s", prompt)
	}
}

func TestBuildPromptOmitsEmptySections(t *testing.T) {
	a := &Agent{Name: "worker", Role: "builder"}

	prompt := a.BuildPrompt("do the task", nil)

	for _, header := range []string{"## Shared Context", "## Your Recent Memory"} {
		if strings.Contains(prompt, header) {
			t.Errorf("prompt contains %q for empty section:\n%s", header, prompt)
		}
	}
	if !strings.HasPrefix(prompt, "You are worker, a builder.") {
		t.Errorf("prompt missing identity line:\n%s", prompt)
	}
	if !strings.HasSuffix(prompt, "## Task\ndo the task") {
		t.Errorf("prompt does not end with the task:\n%s", prompt)
	}
}

func TestBuildPromptWithoutRole(t *testing.T) {
	a := &Agent{Name: "solo"}

	prompt := a.BuildPrompt("task", nil)

	if !strings.HasPrefix(prompt, "You are solo.") {
		t.Errorf("identity line = %q, want role-less form", strings.SplitN(prompt, "\n", 2)[0])
	}
}

func TestBuildPromptRendersStructuredValues(t *testing.T) {
	a := &Agent{Name: "worker", Role: "builder"}
	shared := map[string]any{
		"targets": []any{"api", "cli"},
	}

	prompt := a.BuildPrompt("task", shared)

	if !strings.Contains(prompt, `- targets: ["api","cli"]`) {
		t.Errorf("structured value not rendered as JSON:\n%s", prompt)
	}
}

func TestMemoryEviction(t *testing.T) {
	a := &Agent{Name: "worker", Role: "builder"}

	for i := 1; i <= 7; i++ {
		a.Record(fmt.Sprintf("task %d", i), fmt.Sprintf("response %d", i))
	}

	if len(a.Memory) != MemoryLimit {
		t.Fatalf("memory size = %d, want %d", len(a.Memory), MemoryLimit)
	}

	// The 5 most recent remain, in chronological order.
	for i, m := range a.Memory {
		want := fmt.Sprintf("task %d", i+3)
		if m.Task != want {
			t.Errorf("memory[%d].Task = %q, want %q", i, m.Task, want)
		}
	}
}

func TestMemoryOrderInPrompt(t *testing.T) {
	a := &Agent{Name: "worker", Role: "builder"}
	a.Record("first", "one")
	a.Record("second", "two")

	prompt := a.BuildPrompt("task", nil)

	if strings.Index(prompt, "Task: first") > strings.Index(prompt, "Task: second") {
		t.Errorf("memory not rendered oldest first:\n%s", prompt)
	}
}
