// Package workflow recognizes the eight ordered stages of the structured
// development process from named skill invocations.
package workflow

import "github.com/pixel-agents/dashboard/internal/watch"

// Phase is one stage of the workflow, ordered from Explore to Archive.
// Its integer value is the stage ordinal.
type Phase int

const (
	Explore Phase = iota
	Propose
	Spec
	Design
	Tasks
	Apply
	Verify
	Archive
)

// Count is the number of workflow stages.
const Count = 8

var phaseNames = [Count]string{
	"Explore", "Propose", "Spec", "Design", "Tasks", "Apply", "Verify", "Archive",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= Count {
		return "unknown"
	}
	return phaseNames[p]
}

var phaseBySkill = map[string]Phase{
	"sdd-explore": Explore,
	"sdd-propose": Propose,
	"sdd-spec":    Spec,
	"sdd-design":  Design,
	"sdd-tasks":   Tasks,
	"sdd-apply":   Apply,
	"sdd-verify":  Verify,
	"sdd-archive": Archive,
}

// Detect returns the workflow stage named by a tool invocation, if it is
// a Skill invocation whose skill name is in the fixed vocabulary. The
// detector is stateless; the agent record keeps the last detected stage.
func Detect(ev watch.ToolEvent) (Phase, bool) {
	if ev.Name != "Skill" {
		return 0, false
	}
	return DetectSkill(ev.Skill)
}

// DetectSkill matches a bare skill name against the stage vocabulary.
func DetectSkill(skill string) (Phase, bool) {
	p, ok := phaseBySkill[skill]
	return p, ok
}
