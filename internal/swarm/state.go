package swarm

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultStatePath is the well-known state file name, relative to
	// the working directory.
	DefaultStatePath = ".swarm_state.json"
	// HistoryLimit caps the global interaction log. Oldest entries are
	// evicted first.
	HistoryLimit = 100
)

// Interaction is one entry in the global interaction log, recorded for
// every invocation independent of per-agent memory.
type Interaction struct {
	ID        string    `json:"id"`
	Agent     string    `json:"agent,omitempty"`
	Task      string    `json:"task"`
	Response  string    `json:"response,omitempty"`
	Error     string    `json:"error,omitempty"`
	Success   bool      `json:"success"`
	Timestamp time.Time `json:"timestamp"`
}

// State is the serializable aggregate of everything a swarm persists:
// the agent roster, the shared key-value context, and the bounded
// interaction log.
type State struct {
	Agents        map[string]*Agent `json:"agents"`
	SharedContext map[string]any    `json:"shared_context"`
	History       []Interaction     `json:"history"`
}

// NewState returns an empty, valid state.
func NewState() *State {
	return &State{
		Agents:        make(map[string]*Agent),
		SharedContext: make(map[string]any),
	}
}

// LoadState reads a state file. A missing or unreadable file and a
// corrupt document both yield an empty valid state rather than an
// error: a swarm must be usable on first run, and a broken state file
// should never be fatal to startup. Unknown fields are ignored and
// missing fields default empty, so older files stay readable.
func LoadState(path string) *State {
	if path == "" {
		path = DefaultStatePath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return NewState()
	}

	st := &State{}
	if err := json.Unmarshal(data, st); err != nil {
		return NewState()
	}

	if st.Agents == nil {
		st.Agents = make(map[string]*Agent)
	}
	if st.SharedContext == nil {
		st.SharedContext = make(map[string]any)
	}
	// Agent names key the map; backfill the field for records written
	// by hand or by older versions.
	for name, a := range st.Agents {
		if a != nil && a.Name == "" {
			a.Name = name
		}
	}

	return st
}

// Save writes the state to path, truncating the history to its cap.
// The write goes through a temp file and rename so a crash mid-write
// never leaves a corrupt state file behind.
func (s *State) Save(path string) error {
	if path == "" {
		path = DefaultStatePath
	}

	if len(s.History) > HistoryLimit {
		s.History = s.History[len(s.History)-HistoryLimit:]
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".swarm_state-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), path)
}
