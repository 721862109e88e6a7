package agent

import (
	"time"

	"github.com/pixel-agents/dashboard/internal/workflow"
)

// Snapshot is the read-only view of an agent record handed to renderers
// and the snapshot server. It copies everything it exposes; mutating a
// snapshot never touches the live record.
type Snapshot struct {
	ID            int           `json:"id"`
	Path          string        `json:"path"`
	Status        Status        `json:"status"`
	ActiveTools   []ToolView    `json:"activeTools,omitempty"`
	SubAgents     []SubView     `json:"subAgents,omitempty"`
	Phase         *PhaseView    `json:"phase,omitempty"`
	PromptSummary string        `json:"promptSummary,omitempty"`
	LastActivity  time.Time     `json:"lastActivity"`
	Selected      bool          `json:"selected"`
}

// ToolView is one active tool invocation, ready for display.
type ToolView struct {
	Label   string `json:"label"`
	Reading bool   `json:"reading"`
}

// SubView is one sub-agent, ready for display.
type SubView struct {
	LocalID     int    `json:"localId"`
	Label       string `json:"label"`
	CurrentTool string `json:"currentTool,omitempty"`
}

// PhaseView is the detected workflow stage, if any.
type PhaseView struct {
	Ordinal int    `json:"ordinal"`
	Label   string `json:"label"`
}

// Snapshot builds the read-only view of this record. selected is the
// focus hint supplied by the UI layer; it is stored alongside state for
// the renderer's convenience.
func (a *Agent) Snapshot(selected bool) Snapshot {
	snap := Snapshot{
		ID:            a.ID,
		Path:          a.Path,
		Status:        a.Status,
		PromptSummary: a.PromptSummary,
		LastActivity:  a.LastActivity,
		Selected:      selected,
	}

	for _, t := range a.ActiveTools {
		snap.ActiveTools = append(snap.ActiveTools, ToolView{Label: t.Label, Reading: t.Reading})
	}
	for i := range a.SubAgents {
		sub := &a.SubAgents[i]
		snap.SubAgents = append(snap.SubAgents, SubView{
			LocalID:     sub.LocalID,
			Label:       sub.Label,
			CurrentTool: sub.CurrentTool(),
		})
	}
	if a.Phase != nil {
		snap.Phase = &PhaseView{Ordinal: int(*a.Phase), Label: a.Phase.String()}
	}
	return snap
}

// PhaseProgress returns the snapshot's workflow completion as a fraction
// of the total stage count, zero when no stage was detected.
func (s Snapshot) PhaseProgress() float64 {
	if s.Phase == nil {
		return 0
	}
	return float64(s.Phase.Ordinal+1) / float64(workflow.Count)
}
