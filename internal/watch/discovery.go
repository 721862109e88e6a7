package watch

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ScanSessions walks <claudeDir>/projects for session logs modified within
// the freshness window and returns their paths, sorted for deterministic
// id assignment. A missing directory yields an empty set, not an error:
// the assistant may simply never have run on this machine.
func ScanSessions(claudeDir string, window time.Duration) []string {
	projectsDir := filepath.Join(claudeDir, "projects")
	cutoff := time.Now().Add(-window)

	var paths []string
	_ = filepath.WalkDir(projectsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtree: skip it, the rest of the scan continues.
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".jsonl") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.ModTime().After(cutoff) {
			paths = append(paths, path)
		}
		return nil
	})

	sort.Strings(paths)
	return paths
}

// Session pairs a newly discovered log path with its assigned id.
type Session struct {
	ID   int
	Path string
}

// Tracker assigns stable session ids and diffs each scan against the
// previously known set. Ids increase monotonically and are never reused
// for the life of the process, so a renderer can key on them safely.
type Tracker struct {
	known  map[string]int
	nextID int
}

func NewTracker() *Tracker {
	return &Tracker{
		known:  make(map[string]int),
		nextID: 1,
	}
}

// Update takes the current live-path set and reports sessions that
// appeared since the last call and the ids of sessions that disappeared.
// Disappearance is a hard removal: the path is forgotten entirely, and a
// later reappearance gets a fresh id.
func (t *Tracker) Update(current []string) (added []Session, removed []int) {
	currentSet := make(map[string]bool, len(current))
	for _, path := range current {
		currentSet[path] = true
	}

	for path, id := range t.known {
		if !currentSet[path] {
			removed = append(removed, id)
			delete(t.known, path)
		}
	}
	sort.Ints(removed)

	for _, path := range current {
		if _, ok := t.known[path]; ok {
			continue
		}
		id := t.nextID
		t.nextID++
		t.known[path] = id
		added = append(added, Session{ID: id, Path: path})
	}

	return added, removed
}

// ID looks up the assigned id for a known session path.
func (t *Tracker) ID(path string) (int, bool) {
	id, ok := t.known[path]
	return id, ok
}
