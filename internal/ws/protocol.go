// Package ws exposes the dashboard's read-only snapshot feed to external
// renderers over WebSocket. The core never depends on it; the tick loop
// pushes snapshots in, clients pull them out.
package ws

import (
	"github.com/pixel-agents/dashboard/internal/agent"
)

type MessageType string

const (
	MsgSnapshot MessageType = "snapshot"
	MsgError    MessageType = "error"
)

type WSMessage struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

type SnapshotPayload struct {
	Agents []agent.Snapshot `json:"agents"`
}
