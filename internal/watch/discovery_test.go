package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeSessionLog(t *testing.T, claudeDir, project, name string, modTime time.Time) string {
	t.Helper()
	dir := filepath.Join(claudeDir, "projects", project)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("{}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestScanSessionsFreshness(t *testing.T) {
	claudeDir := t.TempDir()
	now := time.Now()

	fresh := writeSessionLog(t, claudeDir, "-home-u-proj", "fresh.jsonl", now.Add(-time.Minute))
	writeSessionLog(t, claudeDir, "-home-u-proj", "stale.jsonl", now.Add(-10*time.Minute))
	writeSessionLog(t, claudeDir, "-home-u-proj", "notes.txt", now) // wrong extension

	paths := ScanSessions(claudeDir, 5*time.Minute)
	if len(paths) != 1 || paths[0] != fresh {
		t.Fatalf("ScanSessions = %v, want [%s]", paths, fresh)
	}
}

func TestScanSessionsNestedProjects(t *testing.T) {
	claudeDir := t.TempDir()
	now := time.Now()

	a := writeSessionLog(t, claudeDir, "-proj-b", "s1.jsonl", now)
	b := writeSessionLog(t, claudeDir, "-proj-a", "s2.jsonl", now)

	paths := ScanSessions(claudeDir, 5*time.Minute)
	if len(paths) != 2 {
		t.Fatalf("len = %d, want 2", len(paths))
	}
	// Sorted for deterministic id assignment.
	if paths[0] != b || paths[1] != a {
		t.Errorf("paths = %v, want sorted [%s %s]", paths, b, a)
	}
}

func TestScanSessionsMissingDir(t *testing.T) {
	if paths := ScanSessions(filepath.Join(t.TempDir(), "nope"), time.Minute); len(paths) != 0 {
		t.Errorf("missing dir = %v, want empty", paths)
	}
}

func TestTrackerAssignsStableIDs(t *testing.T) {
	tr := NewTracker()

	added, removed := tr.Update([]string{"/a.jsonl", "/b.jsonl"})
	if len(removed) != 0 {
		t.Fatalf("removed = %v, want empty", removed)
	}
	if len(added) != 2 {
		t.Fatalf("added = %v, want 2 sessions", added)
	}
	if added[0].ID != 1 || added[0].Path != "/a.jsonl" {
		t.Errorf("added[0] = %+v, want id 1 for /a.jsonl", added[0])
	}
	if added[1].ID != 2 || added[1].Path != "/b.jsonl" {
		t.Errorf("added[1] = %+v, want id 2 for /b.jsonl", added[1])
	}

	// No churn on a steady state.
	added, removed = tr.Update([]string{"/a.jsonl", "/b.jsonl"})
	if len(added) != 0 || len(removed) != 0 {
		t.Errorf("steady update changed: added=%v removed=%v", added, removed)
	}
}

func TestTrackerNeverReusesIDs(t *testing.T) {
	tr := NewTracker()

	tr.Update([]string{"/a.jsonl", "/b.jsonl"})

	// /a disappears.
	added, removed := tr.Update([]string{"/b.jsonl"})
	if len(added) != 0 {
		t.Fatalf("added = %v, want empty", added)
	}
	if len(removed) != 1 || removed[0] != 1 {
		t.Fatalf("removed = %v, want [1]", removed)
	}

	// /a reappears with a fresh id, not its old one.
	added, _ = tr.Update([]string{"/a.jsonl", "/b.jsonl"})
	if len(added) != 1 || added[0].ID != 3 {
		t.Fatalf("re-added = %+v, want fresh id 3", added)
	}

	if id, ok := tr.ID("/b.jsonl"); !ok || id != 2 {
		t.Errorf("ID(/b.jsonl) = %d,%v, want 2,true", id, ok)
	}
}

func TestTrackerRemovedSorted(t *testing.T) {
	tr := NewTracker()
	tr.Update([]string{"/a.jsonl", "/b.jsonl", "/c.jsonl"})

	_, removed := tr.Update(nil)
	if len(removed) != 3 {
		t.Fatalf("removed = %v, want 3 ids", removed)
	}
	for i := 1; i < len(removed); i++ {
		if removed[i-1] > removed[i] {
			t.Fatalf("removed not sorted: %v", removed)
		}
	}
}
