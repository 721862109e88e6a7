package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pixel-agents/dashboard/internal/agent"
)

func testSnapshots() []agent.Snapshot {
	return []agent.Snapshot{
		{ID: 1, Path: "/s1.jsonl", Status: agent.Active, PromptSummary: "Fix the auth bug"},
		{ID: 2, Path: "/s2.jsonl", Status: agent.Waiting},
	}
}

func TestCheckLocalOrigin(t *testing.T) {
	tests := []struct {
		origin string
		want   bool
	}{
		{"", true}, // non-browser clients send no Origin
		{"http://127.0.0.1:8321", true},
		{"http://localhost:8321", true},
		{"http://localhost", true},
		{"http://[::1]:8321", true},
		{"http://evil.example.com", false},
		{"http://127.0.0.1.example.com", false},
		{"::::not-a-url", false},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/ws", nil)
		req.Host = "127.0.0.1:8321"
		if tt.origin != "" {
			req.Header.Set("Origin", tt.origin)
		}
		if got := checkLocalOrigin(req); got != tt.want {
			t.Errorf("checkLocalOrigin(origin=%q) = %v, want %v", tt.origin, got, tt.want)
		}
	}
}

func TestHandleAgents(t *testing.T) {
	b := NewBroadcaster(time.Millisecond)
	b.Publish(testSnapshots())
	s := NewServer(b)

	mux := http.NewServeMux()
	s.SetupRoutes(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/agents", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var payload SnapshotPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if len(payload.Agents) != 2 || payload.Agents[0].ID != 1 {
		t.Errorf("payload = %+v, want the published snapshots", payload)
	}
	if !strings.Contains(rec.Body.String(), `"status":"active"`) {
		t.Errorf("status should serialize as a string: %s", rec.Body.String())
	}
}

func TestWSClientReceivesSnapshotOnConnect(t *testing.T) {
	b := NewBroadcaster(time.Millisecond)
	b.Publish(testSnapshots())
	s := NewServer(b)

	mux := http.NewServeMux()
	s.SetupRoutes(mux)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	// The initial snapshot arrives without waiting for a broadcast cycle.
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg struct {
		Type    MessageType     `json:"type"`
		Payload SnapshotPayload `json:"payload"`
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read error: %v", err)
	}
	if msg.Type != MsgSnapshot {
		t.Errorf("message type = %q, want %q", msg.Type, MsgSnapshot)
	}
	if len(msg.Payload.Agents) != 2 {
		t.Fatalf("len(Agents) = %d, want 2", len(msg.Payload.Agents))
	}
	if msg.Payload.Agents[0].PromptSummary != "Fix the auth bug" {
		t.Errorf("PromptSummary = %q", msg.Payload.Agents[0].PromptSummary)
	}
}

func TestWSClientReceivesPublishedUpdates(t *testing.T) {
	b := NewBroadcaster(time.Millisecond)
	s := NewServer(b)

	mux := http.NewServeMux()
	s.SetupRoutes(mux)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	// Drain the empty connect snapshot.
	var first struct {
		Type    MessageType     `json:"type"`
		Payload SnapshotPayload `json:"payload"`
	}
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("read error: %v", err)
	}
	if len(first.Payload.Agents) != 0 {
		t.Fatalf("connect snapshot = %+v, want empty", first.Payload.Agents)
	}

	b.Publish(testSnapshots())

	var second struct {
		Type    MessageType     `json:"type"`
		Payload SnapshotPayload `json:"payload"`
	}
	if err := conn.ReadJSON(&second); err != nil {
		t.Fatalf("read error: %v", err)
	}
	if len(second.Payload.Agents) != 2 {
		t.Errorf("broadcast snapshot = %+v, want 2 agents", second.Payload.Agents)
	}
}

func TestPublishThrottlesBroadcasts(t *testing.T) {
	b := NewBroadcaster(50 * time.Millisecond)

	// Many rapid publishes coalesce onto a single pending flush timer.
	for i := 0; i < 10; i++ {
		b.Publish(testSnapshots())
	}

	b.flushMu.Lock()
	pending := b.flushTimer != nil
	b.flushMu.Unlock()
	if !pending {
		t.Fatal("expected a pending flush timer after Publish")
	}

	// After the throttle window the timer has fired and cleared itself.
	time.Sleep(100 * time.Millisecond)
	b.flushMu.Lock()
	pending = b.flushTimer != nil
	b.flushMu.Unlock()
	if pending {
		t.Error("flush timer should clear after firing")
	}
}

func TestRemoveClientIdempotent(t *testing.T) {
	b := NewBroadcaster(time.Millisecond)
	s := NewServer(b)

	mux := http.NewServeMux()
	s.SetupRoutes(mux)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for b.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	conn.Close()
	deadline = time.Now().Add(2 * time.Second)
	for b.ClientCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never removed after close")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
