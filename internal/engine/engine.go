// Package engine owns the single-threaded tick pipeline: session
// discovery, incremental reads, event parsing, and the per-session agent
// records they fold into. All state lives on one goroutine; renderers
// pull read-only snapshots.
package engine

import (
	"log"
	"sort"
	"time"

	"github.com/pixel-agents/dashboard/internal/agent"
	"github.com/pixel-agents/dashboard/internal/config"
	"github.com/pixel-agents/dashboard/internal/watch"
)

type Engine struct {
	cfg     *config.Config
	tracker *watch.Tracker
	reader  *watch.Reader
	agents  map[int]*agent.Agent

	tick        uint64
	forceRescan bool
	selected    int // agent id focused by the UI, 0 when none

	// now is the injected clock; tests replace it for deterministic
	// dormancy and removal behavior.
	now func() time.Time
}

func New(cfg *config.Config) *Engine {
	return &Engine{
		cfg:     cfg,
		tracker: watch.NewTracker(),
		reader:  watch.NewReader(),
		agents:  make(map[int]*agent.Agent),
		now:     time.Now,
	}
}

// Tick advances the pipeline by one iteration: re-run discovery on the
// first tick and every Nth after, then read and fold new events for every
// tracked session, then sweep for dormancy. The caller drives cadence.
func (e *Engine) Tick() {
	now := e.now()
	e.tick++

	scanEvery := uint64(e.cfg.Watch.ScanEveryTicks)
	if scanEvery == 0 {
		scanEvery = 1
	}
	if e.tick == 1 || e.tick%scanEvery == 0 || e.forceRescan {
		e.forceRescan = false
		e.rescan(now)
	}

	for _, a := range e.agents {
		e.consume(a, now)
	}

	for _, a := range e.agents {
		a.CheckDormant(now, e.cfg.Watch.DormantAfter)
	}
}

// ForceRescan makes the next Tick re-run discovery regardless of cadence.
func (e *Engine) ForceRescan() {
	e.forceRescan = true
}

func (e *Engine) rescan(now time.Time) {
	paths := watch.ScanSessions(e.cfg.Watch.ClaudeDir, e.cfg.Watch.FreshnessWindow)
	added, removed := e.tracker.Update(paths)

	for _, s := range added {
		log.Printf("Tracking session %d: %s", s.ID, s.Path)
		a := agent.New(s.ID, s.Path, now)
		a.SetSummaryBudget(e.cfg.Watch.SummaryMaxChars)
		e.agents[s.ID] = a
	}

	// Removal is hard: the record and its read offset go away entirely.
	// Dormancy marking is a separate, tighter signal handled per record.
	for _, id := range removed {
		if a, ok := e.agents[id]; ok {
			log.Printf("Session %d left the live set: %s", id, a.Path)
			e.reader.Forget(a.Path)
			delete(e.agents, id)
		}
		if e.selected == id {
			e.selected = 0
		}
	}
}

func (e *Engine) consume(a *agent.Agent, now time.Time) {
	for _, line := range e.reader.ReadNew(a.Path) {
		rec, ok := watch.ParseLine(line)
		if !ok {
			continue
		}

		for _, ev := range rec.ToolUses() {
			a.AddTool(ev, now)
		}
		for _, id := range rec.ToolResults() {
			a.ResolveTool(id, now)
		}
		if text, ok := rec.Text(); ok {
			a.SetPromptSummary(text)
		}
		if rec.IsTurnEnd() {
			a.EndTurn(now)
		}
	}
}

// Select stores the UI's focus hint. Selecting an unknown id is ignored.
func (e *Engine) Select(id int) {
	if _, ok := e.agents[id]; ok {
		e.selected = id
	}
}

// Deselect clears the focus hint.
func (e *Engine) Deselect() {
	e.selected = 0
}

// Selected returns the focused agent id, 0 when none.
func (e *Engine) Selected() int {
	return e.selected
}

// Snapshots returns read-only copies of every tracked agent record,
// ordered by session id.
func (e *Engine) Snapshots() []agent.Snapshot {
	ids := make([]int, 0, len(e.agents))
	for id := range e.agents {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	snaps := make([]agent.Snapshot, 0, len(ids))
	for _, id := range ids {
		snaps = append(snaps, e.agents[id].Snapshot(id == e.selected))
	}
	return snaps
}

// Count returns the number of tracked sessions.
func (e *Engine) Count() int {
	return len(e.agents)
}
