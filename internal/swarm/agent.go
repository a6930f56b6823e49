// Package swarm manages the roster of named agents, their shared
// context, and the orchestration of concurrent CLI invocations
// across them.
package swarm

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// MemoryLimit is the number of most-recent interactions an agent
// carries into its prompts. Older entries are evicted FIFO.
const MemoryLimit = 5

// MemoryEntry is one remembered task/response pair.
type MemoryEntry struct {
	Task      string    `json:"task"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// Agent is a named persona: a role, an optional system prompt, and a
// bounded memory of its recent interactions.
type Agent struct {
	Name         string        `json:"name"`
	Role         string        `json:"role"`
	SystemPrompt string        `json:"system_prompt,omitempty"`
	Memory       []MemoryEntry `json:"memory,omitempty"`
}

// Record appends a task/response pair to memory, evicting the oldest
// entry once the size exceeds MemoryLimit. Eviction is synchronous
// with insertion; there is no separate cleanup pass.
func (a *Agent) Record(task, response string) {
	a.Memory = append(a.Memory, MemoryEntry{
		Task:      task,
		Response:  response,
		Timestamp: time.Now().UTC(),
	})
	if len(a.Memory) > MemoryLimit {
		a.Memory = a.Memory[len(a.Memory)-MemoryLimit:]
	}
}

// BuildPrompt assembles the full prompt for a task. The section order
// is fixed: identity, system prompt, shared context, memory (oldest
// first), then the task itself. Empty sections are omitted entirely,
// headers included. The function is deterministic: shared context keys
// render in sorted order.
func (a *Agent) BuildPrompt(task string, shared map[string]any) string {
	var parts []string

	if a.Role != "" {
		parts = append(parts, fmt.Sprintf("You are %s, a %s.", a.Name, a.Role))
	} else {
		parts = append(parts, fmt.Sprintf("You are %s.", a.Name))
	}

	if a.SystemPrompt != "" {
		parts = append(parts, a.SystemPrompt)
	}

	if len(shared) > 0 {
		keys := make([]string, 0, len(shared))
		for k := range shared {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var b strings.Builder
		b.WriteString("## Shared Context")
		for _, k := range keys {
			b.WriteString(fmt.Sprintf("\n- %s: %s", k, renderValue(shared[k])))
		}
		parts = append(parts, b.String())
	}

	if len(a.Memory) > 0 {
		var b strings.Builder
		b.WriteString("## Your Recent Memory")
		for _, m := range a.Memory {
			b.WriteString(fmt.Sprintf("\nTask: %s\nResponse: %s", m.Task, m.Response))
		}
		parts = append(parts, b.String())
	}

	parts = append(parts, "## Task\n"+task)

	return strings.Join(parts, "\n\n")
}

// renderValue formats a shared-context value for prompt inclusion.
// Strings pass through; anything structured renders as compact JSON.
func renderValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
