package store

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleGrid() [][]int {
	return [][]int{
		{0, 1, 0},
		{0, 0, 1},
		{1, 1, 1},
	}
}

func TestSaveAndLoadRun(t *testing.T) {
	s := openTestStore(t)

	discovered := map[string]int{"Glider": 5, "Blinker": 12}
	id, err := s.SaveRun("first run", sampleGrid(), discovered, 40, 100)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if id == 0 {
		t.Fatal("SaveRun returned zero id")
	}

	run, err := s.LoadRun(id)
	if err != nil {
		t.Fatalf("LoadRun: %v", err)
	}
	if run == nil {
		t.Fatal("LoadRun returned nil for existing run")
	}
	if run.Name != "first run" || run.FinalGeneration != 40 || run.SpeedMS != 100 {
		t.Errorf("run fields = %+v", run.RunSummary)
	}
	if diff := cmp.Diff(sampleGrid(), run.StartingGrid); diff != "" {
		t.Errorf("starting grid (-want +got):\n%s", diff)
	}

	// Patterns come back ordered by discovery generation.
	want := []RunPattern{{Name: "Glider", Generation: 5}, {Name: "Blinker", Generation: 12}}
	if diff := cmp.Diff(want, run.Patterns); diff != "" {
		t.Errorf("patterns (-want +got):\n%s", diff)
	}
	if run.CreatedAt.IsZero() {
		t.Error("CreatedAt not recorded")
	}
}

func TestLoadRunMissing(t *testing.T) {
	s := openTestStore(t)
	run, err := s.LoadRun(999)
	if err != nil {
		t.Fatalf("LoadRun: %v", err)
	}
	if run != nil {
		t.Errorf("LoadRun(999) = %+v, want nil", run)
	}
}

func TestListRuns(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.SaveRun("a", sampleGrid(), map[string]int{"Glider": 1}, 10, 100); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SaveRun("b", sampleGrid(), nil, 20, 50); err != nil {
		t.Fatal(err)
	}

	runs, err := s.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("len(runs) = %d, want 2", len(runs))
	}
	// Newest first.
	if runs[0].Name != "b" || runs[1].Name != "a" {
		t.Errorf("order = [%s, %s], want [b, a]", runs[0].Name, runs[1].Name)
	}
	if runs[1].PatternCount != 1 || runs[0].PatternCount != 0 {
		t.Errorf("pattern counts = %d, %d", runs[1].PatternCount, runs[0].PatternCount)
	}
}

func TestDeleteRunCascades(t *testing.T) {
	s := openTestStore(t)

	id, err := s.SaveRun("doomed", sampleGrid(), map[string]int{"Block": 3}, 5, 100)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteRun(id); err != nil {
		t.Fatalf("DeleteRun: %v", err)
	}

	run, err := s.LoadRun(id)
	if err != nil {
		t.Fatal(err)
	}
	if run != nil {
		t.Error("run still present after delete")
	}

	// Deleting again reports not found.
	if err := s.DeleteRun(id); err == nil {
		t.Error("second DeleteRun succeeded, want error")
	}

	// Stats survive run deletion; they are cumulative history.
	stats, err := s.PatternStats()
	if err != nil {
		t.Fatal(err)
	}
	if len(stats) != 1 || stats[0].Name != "Block" {
		t.Errorf("stats after delete = %+v", stats)
	}
}

func TestPatternStatsAccumulate(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.SaveRun("r1", sampleGrid(), map[string]int{"Glider": 2, "Block": 4}, 10, 100); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SaveRun("r2", sampleGrid(), map[string]int{"Glider": 7}, 20, 100); err != nil {
		t.Fatal(err)
	}

	stats, err := s.PatternStats()
	if err != nil {
		t.Fatalf("PatternStats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("len(stats) = %d, want 2", len(stats))
	}
	// Sorted by frequency descending: Glider (2 runs) first.
	if stats[0].Name != "Glider" || stats[0].TimesDiscovered != 2 || stats[0].RunsAppearedIn != 2 {
		t.Errorf("glider stat = %+v", stats[0])
	}
	if stats[1].Name != "Block" || stats[1].TimesDiscovered != 1 {
		t.Errorf("block stat = %+v", stats[1])
	}
	if stats[0].FirstSeenAt.After(stats[0].LastSeenAt) {
		t.Error("first_seen_at is after last_seen_at")
	}
}

func TestReopenPersists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "persist.db")

	s, err := Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	id, err := s.SaveRun("kept", sampleGrid(), map[string]int{"Toad": 8}, 15, 80)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s2, err := Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	run, err := s2.LoadRun(id)
	if err != nil {
		t.Fatal(err)
	}
	if run == nil || run.Name != "kept" {
		t.Errorf("run after reopen = %+v", run)
	}
}
