// Package agent holds the per-session activity model: the mutable record
// that folds the parsed event stream into status, active tools, sub-agents,
// workflow phase, and a captured prompt summary.
package agent

import (
	"encoding/json"
	"time"

	"github.com/pixel-agents/dashboard/internal/watch"
	"github.com/pixel-agents/dashboard/internal/workflow"
)

type Status int

const (
	Waiting Status = iota
	Active
	Dormant
)

var statusNames = map[Status]string{
	Waiting: "waiting",
	Active:  "active",
	Dormant: "dormant",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// SubAgent is an ephemeral child spawned by a delegate-work (Task) tool
// invocation. It lives until its parent invocation resolves or the turn
// ends. LocalID is negative and unique only within the parent agent; it
// exists purely as a stable rendering key.
type SubAgent struct {
	LocalID      int
	ParentToolID string
	Label        string
	ActiveTools  []watch.ToolEvent
}

// CurrentTool returns the display label of the sub-agent's most recent
// active tool, or empty when it has none.
func (s *SubAgent) CurrentTool() string {
	if len(s.ActiveTools) == 0 {
		return ""
	}
	return s.ActiveTools[len(s.ActiveTools)-1].Label
}

// Agent is the live activity record for one session log.
type Agent struct {
	ID            int
	Path          string
	Status        Status
	ActiveTools   []watch.ToolEvent
	SubAgents     []SubAgent
	Phase         *workflow.Phase
	PromptSummary string
	LastActivity  time.Time

	summaryBudget int
	nextSubID     int
}

// DefaultSummaryBudget is the character cap for captured prompt summaries.
const DefaultSummaryBudget = 150

// New creates an agent record for a freshly discovered session. Records
// start Waiting; there is no terminal state, they end by deletion when
// their session leaves the live set.
func New(id int, path string, now time.Time) *Agent {
	return &Agent{
		ID:            id,
		Path:          path,
		Status:        Waiting,
		LastActivity:  now,
		summaryBudget: DefaultSummaryBudget,
		nextSubID:     -1,
	}
}

// SetSummaryBudget overrides the prompt summary character cap.
func (a *Agent) SetSummaryBudget(n int) {
	if n > 0 {
		a.summaryBudget = n
	}
}

// AddTool folds a tool-invocation-start event: it updates the workflow
// phase when the invocation names a stage, spawns a sub-agent for
// delegate-work tools, and appends the invocation to the active set.
// Any stale entry with the same id is replaced; ids are only unique among
// currently open invocations.
func (a *Agent) AddTool(ev watch.ToolEvent, now time.Time) {
	if phase, ok := workflow.Detect(ev); ok {
		a.Phase = &phase
	}

	if ev.Name == "Task" {
		a.SubAgents = append(a.SubAgents, SubAgent{
			LocalID:      a.nextSubID,
			ParentToolID: ev.ID,
			Label:        ev.Label,
		})
		a.nextSubID--
	}

	a.removeTool(ev.ID)
	a.ActiveTools = append(a.ActiveTools, ev)
	a.Status = Active
	a.LastActivity = now
}

// ResolveTool folds a tool-invocation-complete event. Completions for
// already-forgotten invocations are tolerated as no-ops; the turn boundary
// may have discarded them first.
func (a *Agent) ResolveTool(toolID string, now time.Time) {
	a.removeTool(toolID)

	kept := a.SubAgents[:0]
	for _, sub := range a.SubAgents {
		if sub.ParentToolID != toolID {
			kept = append(kept, sub)
		}
	}
	a.SubAgents = kept

	if len(a.ActiveTools) == 0 {
		a.Status = Waiting
	}
	a.LastActivity = now
}

func (a *Agent) removeTool(toolID string) {
	kept := a.ActiveTools[:0]
	for _, t := range a.ActiveTools {
		if t.ID != toolID {
			kept = append(kept, t)
		}
	}
	a.ActiveTools = kept
}

// EndTurn folds a turn boundary. The boundary is authoritative: active
// tools and sub-agents are discarded even when unresolved, and the agent
// goes back to Waiting.
func (a *Agent) EndTurn(now time.Time) {
	a.ActiveTools = nil
	a.SubAgents = nil
	a.Status = Waiting
	a.LastActivity = now
}

// SetPromptSummary captures the first non-empty free-text event of the
// session, truncated to the summary budget. Later text is ignored so the
// displayed summary does not churn mid-conversation.
func (a *Agent) SetPromptSummary(text string) {
	if a.PromptSummary != "" || text == "" {
		return
	}
	runes := []rune(text)
	if len(runes) > a.summaryBudget {
		runes = runes[:a.summaryBudget]
	}
	a.PromptSummary = string(runes)
}

// CheckDormant forces Dormant when no event has been folded within the
// timeout, regardless of any active tools. Dormant does not block later
// transitions: the next tool start re-enters Active.
func (a *Agent) CheckDormant(now time.Time, timeout time.Duration) {
	if a.Status != Dormant && now.Sub(a.LastActivity) >= timeout {
		a.Status = Dormant
	}
}

// CurrentTool returns the display label of the most recent active tool.
func (a *Agent) CurrentTool() string {
	if len(a.ActiveTools) == 0 {
		return ""
	}
	return a.ActiveTools[len(a.ActiveTools)-1].Label
}

// AnyReading reports whether any active tool is an information-gathering
// one. The renderer picks the reading animation over the typing one.
func (a *Agent) AnyReading() bool {
	for _, t := range a.ActiveTools {
		if t.Reading {
			return true
		}
	}
	return false
}
