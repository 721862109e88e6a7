package watch

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ParseLine classifies one line of a session log. It returns false for
// blank lines and for lines that do not decode as a log entry; both are
// expected from an evolving external writer and are dropped silently.
func ParseLine(line []byte) (Record, bool) {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return Record{}, false
	}

	var raw struct {
		Type    string          `json:"type"`
		Subtype string          `json:"subtype"`
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return Record{}, false
	}

	switch raw.Type {
	case "assistant", "user":
		var msg Message
		if len(raw.Message) > 0 {
			if err := json.Unmarshal(raw.Message, &msg); err != nil {
				return Record{}, false
			}
		}
		return Record{Kind: RecordKind(raw.Type), Message: msg}, true
	case "system":
		return Record{Kind: KindSystem, Subtype: raw.Subtype}, true
	default:
		return Record{Kind: KindUnknown}, true
	}
}

// ToolUses extracts the tool invocations started by an assistant record,
// already classified for display. Non-assistant records yield nothing.
func (r Record) ToolUses() []ToolEvent {
	if r.Kind != KindAssistant {
		return nil
	}
	var events []ToolEvent
	for _, block := range r.Message.Content {
		if block.Type != "tool_use" {
			continue
		}
		events = append(events, NewToolEvent(block))
	}
	return events
}

// ToolResults extracts the ids of tool invocations completed by a user
// record. Non-user records yield nothing.
func (r Record) ToolResults() []string {
	if r.Kind != KindUser {
		return nil
	}
	var ids []string
	for _, block := range r.Message.Content {
		if block.Type == "tool_result" {
			ids = append(ids, block.ToolUseID)
		}
	}
	return ids
}

// Text returns the concatenated text blocks of an assistant record, used
// for prompt summaries. Returns false when the record carries no text.
func (r Record) Text() (string, bool) {
	if r.Kind != KindAssistant {
		return "", false
	}
	var b strings.Builder
	found := false
	for _, block := range r.Message.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
			found = true
		}
	}
	return b.String(), found
}
