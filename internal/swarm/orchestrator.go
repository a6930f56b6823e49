package swarm

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dbankscard/claude-swarm/internal/claude"
)

// DefaultMaxConcurrent bounds how many subprocess invocations run at
// once when the caller does not configure a limit.
const DefaultMaxConcurrent = 5

// Archiver records interactions into long-term storage, beyond the
// capped in-memory log. Implementations must be safe for concurrent
// use.
type Archiver interface {
	Record(rec Interaction) error
}

// Config contains construction options for a Swarm.
type Config struct {
	// Client runs the actual invocations. Required.
	Client claude.Invoker
	// State is the initial swarm state. Nil means empty.
	State *State
	// MaxConcurrent caps concurrently running invocations.
	// Zero means DefaultMaxConcurrent.
	MaxConcurrent int
	// Dir is the working directory passed to every invocation.
	Dir string
	// Timeout bounds each individual invocation.
	Timeout time.Duration
	// StatePath is where Save writes. Empty means DefaultStatePath.
	StatePath string
	// Archive, when set, receives every interaction in addition to the
	// capped log. Archive failures are ignored: the archive is an
	// audit trail, not part of the invocation path.
	Archive Archiver
}

// Swarm orchestrates invocations across registered agents. All state
// mutation happens under one mutex; concurrently completing
// invocations append to memory and history in completion order without
// losing or duplicating entries. Invocations themselves run outside
// the lock, bounded by a counting semaphore.
type Swarm struct {
	mu    sync.Mutex
	state *State

	client    claude.Invoker
	sem       chan struct{}
	dir       string
	timeout   time.Duration
	statePath string
	archive   Archiver
}

// New creates a Swarm from the given config.
func New(cfg Config) *Swarm {
	st := cfg.State
	if st == nil {
		st = NewState()
	}
	limit := cfg.MaxConcurrent
	if limit <= 0 {
		limit = DefaultMaxConcurrent
	}
	statePath := cfg.StatePath
	if statePath == "" {
		statePath = DefaultStatePath
	}

	return &Swarm{
		state:     st,
		client:    cfg.Client,
		sem:       make(chan struct{}, limit),
		dir:       cfg.Dir,
		timeout:   cfg.Timeout,
		statePath: statePath,
		archive:   cfg.Archive,
	}
}

// AddAgent registers a new agent. Registering a name that already
// exists fails with DuplicateAgentError.
func (s *Swarm) AddAgent(name, role, systemPrompt string) (*Agent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.Agents[name]; ok {
		return nil, &DuplicateAgentError{Name: name}
	}

	a := &Agent{Name: name, Role: role, SystemPrompt: systemPrompt}
	s.state.Agents[name] = a
	return a, nil
}

// RemoveAgent deletes an agent. It reports whether the agent existed.
func (s *Swarm) RemoveAgent(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.Agents[name]; !ok {
		return false
	}
	delete(s.state.Agents, name)
	return true
}

// Agents returns the registered agents sorted by name.
func (s *Swarm) Agents() []*Agent {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Agent, 0, len(s.state.Agents))
	for _, a := range s.state.Agents {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// SetContext upserts a key into the shared context visible to every
// agent's prompt assembly.
func (s *Swarm) SetContext(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SharedContext[key] = value
}

// Context returns a copy of the shared context.
func (s *Swarm) Context() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]any, len(s.state.SharedContext))
	for k, v := range s.state.SharedContext {
		out[k] = v
	}
	return out
}

// ClearContext removes all shared context entries.
func (s *Swarm) ClearContext() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SharedContext = make(map[string]any)
}

// History returns a copy of the bounded interaction log.
func (s *Swarm) History() []Interaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Interaction(nil), s.state.History...)
}

// Invoke runs a task as the named agent: builds the layered prompt,
// calls the client under the concurrency limiter, then records the
// interaction in the agent's memory and the global log. An unknown
// name fails synchronously with UnknownAgentError; invocation failures
// come back inside the Result.
func (s *Swarm) Invoke(ctx context.Context, name, task string, tools claude.ToolList) (claude.Result, error) {
	s.mu.Lock()
	agent, ok := s.state.Agents[name]
	if !ok {
		s.mu.Unlock()
		return claude.Result{}, &UnknownAgentError{Name: name}
	}
	prompt := agent.BuildPrompt(task, s.state.SharedContext)
	s.mu.Unlock()

	res := s.call(ctx, prompt, tools)
	res.Agent = name

	response := res.Output
	if !res.Success {
		response = res.Error
	}

	s.mu.Lock()
	// The agent may have been removed while the invocation was in
	// flight; the history entry is still recorded.
	if a, ok := s.state.Agents[name]; ok {
		a.Record(task, response)
	}
	rec := s.appendHistoryLocked(name, task, res)
	s.mu.Unlock()

	s.archiveRecord(rec)

	return res, nil
}

// Run executes a raw prompt with no agent persona. The interaction is
// still logged. Patterns are built on this primitive.
func (s *Swarm) Run(ctx context.Context, prompt string, tools claude.ToolList) claude.Result {
	res := s.call(ctx, prompt, tools)

	s.mu.Lock()
	rec := s.appendHistoryLocked("", prompt, res)
	s.mu.Unlock()

	s.archiveRecord(rec)

	return res
}

// Dispatch runs one invocation per assignment concurrently, bounded by
// the limiter, and returns results keyed like the request. All names
// are validated up front; a failure on one entry never cancels the
// others.
func (s *Swarm) Dispatch(ctx context.Context, assignments map[string]string, tools claude.ToolList) (map[string]claude.Result, error) {
	s.mu.Lock()
	for name := range assignments {
		if _, ok := s.state.Agents[name]; !ok {
			s.mu.Unlock()
			return nil, &UnknownAgentError{Name: name}
		}
	}
	s.mu.Unlock()

	results := make(map[string]claude.Result, len(assignments))
	var rmu sync.Mutex
	var wg sync.WaitGroup

	for name, task := range assignments {
		wg.Add(1)
		go func(name, task string) {
			defer wg.Done()

			res, err := s.Invoke(ctx, name, task, tools)
			if err != nil {
				// Only possible if the agent was removed mid-batch;
				// report it in the result slot rather than dropping it.
				res = claude.Result{Agent: name, Error: err.Error()}
			}

			rmu.Lock()
			results[name] = res
			rmu.Unlock()
		}(name, task)
	}
	wg.Wait()

	return results, nil
}

// Broadcast sends the same task to every registered agent.
func (s *Swarm) Broadcast(ctx context.Context, task string, tools claude.ToolList) (map[string]claude.Result, error) {
	s.mu.Lock()
	assignments := make(map[string]string, len(s.state.Agents))
	for name := range s.state.Agents {
		assignments[name] = task
	}
	s.mu.Unlock()

	return s.Dispatch(ctx, assignments, tools)
}

// Save persists the swarm state to its configured path. Persistence is
// explicit and caller-triggered, never implicit.
func (s *Swarm) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Save(s.statePath)
}

// call runs one invocation under the concurrency limiter. Acquisition
// suspends until a slot frees; a canceled context while waiting yields
// a failure result for this slot only.
func (s *Swarm) call(ctx context.Context, prompt string, tools claude.ToolList) claude.Result {
	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return claude.Result{Error: "invocation canceled: " + ctx.Err().Error()}
	}
	defer func() { <-s.sem }()

	return s.client.Invoke(ctx, prompt, claude.Options{
		Dir:     s.dir,
		Tools:   tools,
		Timeout: s.timeout,
	})
}

// appendHistoryLocked appends an interaction record, evicting the
// oldest entries beyond the cap. Callers must hold s.mu.
func (s *Swarm) appendHistoryLocked(agent, task string, res claude.Result) Interaction {
	rec := Interaction{
		ID:        uuid.New().String(),
		Agent:     agent,
		Task:      task,
		Response:  res.Output,
		Error:     res.Error,
		Success:   res.Success,
		Timestamp: time.Now().UTC(),
	}

	s.state.History = append(s.state.History, rec)
	if len(s.state.History) > HistoryLimit {
		s.state.History = s.state.History[len(s.state.History)-HistoryLimit:]
	}

	return rec
}

// archiveRecord forwards a record to the archive if one is configured.
func (s *Swarm) archiveRecord(rec Interaction) {
	if s.archive == nil {
		return
	}
	_ = s.archive.Record(rec)
}
