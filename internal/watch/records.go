// Package watch turns a tree of append-only JSONL session logs into a
// stream of typed events: it discovers live log files, tails them
// incrementally, and classifies each line into a record the agent state
// machine can fold.
package watch

import "encoding/json"

// RecordKind is the top-level discriminant of a log entry. The log schema
// belongs to the assistant CLI and gains new entry types over time;
// anything unrecognized lands in KindUnknown and is ignored downstream.
type RecordKind string

const (
	KindAssistant RecordKind = "assistant"
	KindUser      RecordKind = "user"
	KindSystem    RecordKind = "system"
	KindUnknown   RecordKind = "unknown"
)

// turnDurationSubtype marks the system entry written when the assistant
// finishes a turn.
const turnDurationSubtype = "turn_duration"

// Record is one parsed log entry.
type Record struct {
	Kind    RecordKind
	Subtype string  // system entries only
	Message Message // assistant and user entries only
}

// Message carries the content blocks of an assistant or user entry.
type Message struct {
	Content []ContentBlock `json:"content"`
}

// ContentBlock is one element of a message's content array. Block types
// share a struct: only the fields matching the block's Type are set.
type ContentBlock struct {
	Type string `json:"type"`

	// tool_use blocks
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`

	// tool_result blocks
	ToolUseID string `json:"tool_use_id,omitempty"`

	// text blocks
	Text string `json:"text,omitempty"`
}

// IsTurnEnd reports whether this record marks the end of an assistant turn.
func (r Record) IsTurnEnd() bool {
	return r.Kind == KindSystem && r.Subtype == turnDurationSubtype
}
