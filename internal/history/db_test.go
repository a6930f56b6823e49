package history

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/dbankscard/claude-swarm/internal/swarm"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecordAndRecent(t *testing.T) {
	db := openTestDB(t)

	base := time.Now().UTC().Truncate(time.Millisecond)
	for i := 0; i < 5; i++ {
		rec := swarm.Interaction{
			ID:        fmt.Sprintf("id-%d", i),
			Agent:     "worker",
			Task:      fmt.Sprintf("task %d", i),
			Response:  "done",
			Success:   true,
			Timestamp: base.Add(time.Duration(i) * time.Second),
		}
		if err := db.Record(rec); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	recent, err := db.Recent(3)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Recent(3) returned %d records", len(recent))
	}
	// Newest first.
	if recent[0].ID != "id-4" || recent[2].ID != "id-2" {
		t.Errorf("Recent order = [%s .. %s], want newest first", recent[0].ID, recent[2].ID)
	}
}

func TestByAgent(t *testing.T) {
	db := openTestDB(t)

	now := time.Now().UTC()
	db.Record(swarm.Interaction{ID: "1", Agent: "a", Task: "t", Success: true, Timestamp: now})
	db.Record(swarm.Interaction{ID: "2", Agent: "b", Task: "t", Success: false, Error: "boom", Timestamp: now.Add(time.Second)})
	db.Record(swarm.Interaction{ID: "3", Agent: "a", Task: "t", Success: true, Timestamp: now.Add(2 * time.Second)})

	recs, err := db.ByAgent("a", 10)
	if err != nil {
		t.Fatalf("ByAgent() error = %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("ByAgent(a) returned %d records, want 2", len(recs))
	}
	for _, rec := range recs {
		if rec.Agent != "a" {
			t.Errorf("record %s has agent %q", rec.ID, rec.Agent)
		}
	}
}

func TestRecordRoundTripsFields(t *testing.T) {
	db := openTestDB(t)

	want := swarm.Interaction{
		ID:        "rt-1",
		Agent:     "reviewer",
		Task:      "review the diff",
		Error:     "timed out after 1m0s",
		Success:   false,
		Timestamp: time.Now().UTC().Truncate(time.Millisecond),
	}
	if err := db.Record(want); err != nil {
		t.Fatal(err)
	}

	recs, err := db.Recent(1)
	if err != nil {
		t.Fatal(err)
	}
	got := recs[0]

	if got.ID != want.ID || got.Agent != want.Agent || got.Task != want.Task ||
		got.Error != want.Error || got.Success != want.Success {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
	if !got.Timestamp.Equal(want.Timestamp) {
		t.Errorf("timestamp = %s, want %s", got.Timestamp, want.Timestamp)
	}
}

func TestOpenCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "history.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	if db.Path() != path {
		t.Errorf("Path() = %q, want %q", db.Path(), path)
	}
}
