package swarm

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoadStateMissingFile(t *testing.T) {
	st := LoadState(filepath.Join(t.TempDir(), "nope.json"))

	if st == nil {
		t.Fatal("LoadState() = nil")
	}
	if len(st.Agents) != 0 || len(st.SharedContext) != 0 || len(st.History) != 0 {
		t.Errorf("LoadState() on missing file not empty: %+v", st)
	}
}

func TestLoadStateCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	st := LoadState(path)

	if st == nil || st.Agents == nil || st.SharedContext == nil {
		t.Fatalf("LoadState() on corrupt file = %+v, want empty valid state", st)
	}
}

func TestLoadStateIgnoresUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	doc := `{
		"agents": {"a": {"name": "a", "role": "tester"}},
		"shared_context": {"k": "v"},
		"future_field": {"whatever": true}
	}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	st := LoadState(path)

	if _, ok := st.Agents["a"]; !ok {
		t.Errorf("agent missing after load: %+v", st.Agents)
	}
	if st.SharedContext["k"] != "v" {
		t.Errorf("shared context missing after load: %+v", st.SharedContext)
	}
}

func TestLoadStateBackfillsAgentNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	doc := `{"agents": {"planner": {"role": "planning coordinator"}}}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	st := LoadState(path)

	if got := st.Agents["planner"].Name; got != "planner" {
		t.Errorf("agent name = %q, want backfilled from map key", got)
	}
}

func TestStateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	st := NewState()
	st.Agents["a"] = &Agent{Name: "a", Role: "tester", SystemPrompt: "be careful"}
	st.Agents["a"].Record("t1", "r1")
	st.SharedContext["release"] = "v2"
	st.History = append(st.History, Interaction{
		ID: "id-1", Agent: "a", Task: "t1", Response: "r1",
		Success: true, Timestamp: time.Now().UTC().Truncate(time.Second),
	})

	if err := st.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got := LoadState(path)

	if !reflect.DeepEqual(got.Agents, st.Agents) {
		t.Errorf("agents differ after round trip:\ngot  %+v\nwant %+v", got.Agents, st.Agents)
	}
	if !reflect.DeepEqual(got.SharedContext, st.SharedContext) {
		t.Errorf("shared context differs after round trip:\ngot  %+v\nwant %+v", got.SharedContext, st.SharedContext)
	}
	if !reflect.DeepEqual(got.History, st.History) {
		t.Errorf("history differs after round trip:\ngot  %+v\nwant %+v", got.History, st.History)
	}
}

func TestSaveTruncatesHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	st := NewState()
	for i := 0; i < 150; i++ {
		st.History = append(st.History, Interaction{
			ID:   fmt.Sprintf("id-%d", i),
			Task: fmt.Sprintf("task %d", i),
		})
	}

	if err := st.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	var onDisk State
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(data, &onDisk); err != nil {
		t.Fatal(err)
	}

	if len(onDisk.History) != HistoryLimit {
		t.Fatalf("persisted history length = %d, want %d", len(onDisk.History), HistoryLimit)
	}
	// Oldest entries evicted first: the 100 most recent survive.
	if onDisk.History[0].ID != "id-50" || onDisk.History[99].ID != "id-149" {
		t.Errorf("persisted history window = [%s, %s], want [id-50, id-149]",
			onDisk.History[0].ID, onDisk.History[99].ID)
	}
}
