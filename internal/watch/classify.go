package watch

import (
	"encoding/json"
	"fmt"
	"path/filepath"
)

// maxDetailChars bounds the argument-derived detail (command prefix, task
// description) in a tool's display label.
const maxDetailChars = 30

// ToolEvent is one tool invocation extracted from an assistant record,
// carrying the derived display label and read/write category. The Reading
// flag, not the name, drives which animation the renderer selects.
type ToolEvent struct {
	ID      string
	Name    string
	Label   string
	Skill   string // skill name for Skill invocations, empty otherwise
	Reading bool
}

// toolInput holds the argument fields the classifier cares about. Unknown
// fields are ignored.
type toolInput struct {
	FilePath    string `json:"file_path"`
	Command     string `json:"command"`
	Description string `json:"description"`
	Skill       string `json:"skill"`
}

// NewToolEvent classifies a tool_use content block.
func NewToolEvent(block ContentBlock) ToolEvent {
	var input toolInput
	if len(block.Input) > 0 {
		_ = json.Unmarshal(block.Input, &input)
	}
	return ToolEvent{
		ID:      block.ID,
		Name:    block.Name,
		Label:   toolLabel(block.Name, input),
		Skill:   skillName(block.Name, input),
		Reading: readingTool(block.Name),
	}
}

// readingTool reports whether name is an information-gathering tool.
// Everything else counts as writing (mutating or executing).
func readingTool(name string) bool {
	switch name {
	case "Read", "Grep", "Glob", "WebFetch", "WebSearch":
		return true
	}
	return false
}

func skillName(name string, input toolInput) string {
	if name != "Skill" {
		return ""
	}
	return input.Skill
}

// toolLabel builds the short human-readable status string for a tool
// invocation. The table is fixed; unrecognized tools get a generic label.
func toolLabel(name string, input toolInput) string {
	switch name {
	case "Read", "Write", "Edit":
		verb := map[string]string{"Read": "Reading", "Write": "Writing", "Edit": "Editing"}[name]
		base := "unknown"
		if input.FilePath != "" {
			base = filepath.Base(input.FilePath)
		}
		return verb + " " + base
	case "Bash":
		return "Running: " + truncate(input.Command, maxDetailChars)
	case "Grep":
		return "Searching code"
	case "Glob":
		return "Searching files"
	case "WebFetch":
		return "Fetching web content"
	case "WebSearch":
		return "Searching the web"
	case "Task":
		return "Subtask: " + truncate(input.Description, maxDetailChars)
	case "Skill":
		skill := input.Skill
		if skill == "" {
			skill = "unknown"
		}
		return "Skill: " + skill
	case "AskUserQuestion":
		return "Waiting for answer"
	default:
		return fmt.Sprintf("Using %s", name)
	}
}

// truncate limits s to max characters, counting the "..." suffix against
// the budget when truncation happens.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	take := max - 3
	if take < 0 {
		take = 0
	}
	return string(runes[:take]) + "..."
}
