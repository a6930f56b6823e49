package claude

import "context"

// Invoker defines the interface for running one CLI invocation.
// This abstraction allows mocking subprocess execution in tests.
type Invoker interface {
	// Invoke runs the prompt to completion and returns its result.
	// Invocation failures are reported inside the Result.
	Invoke(ctx context.Context, prompt string, opts Options) Result
}

// Verify Client implements Invoker at compile time.
var _ Invoker = (*Client)(nil)
