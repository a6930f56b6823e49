package swarm

import "fmt"

// DuplicateAgentError is returned when registering an agent under a
// name that is already taken. It is a caller error and is raised
// synchronously, never folded into an invocation result.
type DuplicateAgentError struct {
	Name string
}

func (e *DuplicateAgentError) Error() string {
	return fmt.Sprintf("agent %q already exists", e.Name)
}

// UnknownAgentError is returned when invoking or dispatching to an
// agent name that is not registered.
type UnknownAgentError struct {
	Name string
}

func (e *UnknownAgentError) Error() string {
	return fmt.Sprintf("agent %q not found", e.Name)
}
