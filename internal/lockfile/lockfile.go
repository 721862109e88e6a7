// Package lockfile implements the filesystem marker that keeps a second
// dashboard instance from starting. The marker holds the owning PID; the
// launcher checks whether that process is still alive before deferring
// to it.
package lockfile

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

// Lock is a held singleton marker. Release must run on every exit path,
// including when terminal restoration fails, so a stale marker never
// blocks future launches.
type Lock struct {
	path string
}

// Acquire writes the current process id to the marker at path.
func Acquire(path string) (*Lock, error) {
	pid := os.Getpid()
	if err := os.WriteFile(path, []byte(strconv.Itoa(pid)), 0644); err != nil {
		return nil, fmt.Errorf("writing pid file %s: %w", path, err)
	}
	return &Lock{path: path}, nil
}

// Release removes the marker. Safe to call more than once.
func (l *Lock) Release() {
	if l == nil {
		return
	}
	_ = os.Remove(l.path)
}

// Held reports whether the marker at path references a live process. A
// missing marker, unparsable contents, or a dead owner all mean the lock
// is free; a crashed previous instance must not block a new one.
func Held(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return false
	}
	alive, err := process.PidExists(int32(pid))
	return err == nil && alive
}
