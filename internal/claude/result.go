package claude

import "encoding/json"

// Result is the outcome of a single CLI invocation. A Result is either
// a complete success payload or a complete failure payload; it is never
// partially filled and never mutated after creation.
type Result struct {
	// Success reports whether the subprocess ran to completion and
	// produced output.
	Success bool `json:"success"`
	// Output is the result text: the envelope's result field when the
	// CLI emitted structured output, raw stdout otherwise.
	Output string `json:"output,omitempty"`
	// Structured holds the raw JSON envelope when stdout parsed as
	// JSON. Nil for plain-text results.
	Structured json.RawMessage `json:"structured,omitempty"`
	// Error is a human-readable failure description. Empty on success.
	Error string `json:"error,omitempty"`
	// Agent is the name of the agent this invocation ran as, when the
	// orchestrator dispatched it through a persona. Empty for raw
	// prompt runs.
	Agent string `json:"agent,omitempty"`
}
