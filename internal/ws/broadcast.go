package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pixel-agents/dashboard/internal/agent"
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func newClient(conn *websocket.Conn) *client {
	c := &client{
		conn: conn,
		send: make(chan []byte, 64),
	}
	go c.writePump()
	return c
}

func (c *client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

func (c *client) close() {
	close(c.send)
}

// Broadcaster fans the latest snapshot set out to connected clients. The
// tick loop calls Publish every iteration; broadcasts are throttled so a
// fast tick rate does not flood slow clients.
type Broadcaster struct {
	mu      sync.RWMutex
	clients map[*client]bool
	latest  []agent.Snapshot

	throttle   time.Duration
	flushTimer *time.Timer
	flushMu    sync.Mutex
}

func NewBroadcaster(throttle time.Duration) *Broadcaster {
	return &Broadcaster{
		clients:  make(map[*client]bool),
		throttle: throttle,
	}
}

// Publish stores the latest snapshots and schedules a throttled broadcast.
func (b *Broadcaster) Publish(snaps []agent.Snapshot) {
	b.mu.Lock()
	b.latest = snaps
	b.mu.Unlock()

	b.flushMu.Lock()
	defer b.flushMu.Unlock()
	if b.flushTimer == nil {
		b.flushTimer = time.AfterFunc(b.throttle, b.flush)
	}
}

func (b *Broadcaster) flush() {
	b.flushMu.Lock()
	b.flushTimer = nil
	b.flushMu.Unlock()

	b.broadcast(b.snapshotMessage())
}

func (b *Broadcaster) snapshotMessage() WSMessage {
	b.mu.RLock()
	snaps := b.latest
	b.mu.RUnlock()
	return WSMessage{
		Type:    MsgSnapshot,
		Payload: SnapshotPayload{Agents: snaps},
	}
}

// AddClient registers a connection and immediately sends it the current
// snapshot so it does not wait a full throttle interval for state.
func (b *Broadcaster) AddClient(conn *websocket.Conn) *client {
	c := newClient(conn)

	b.mu.Lock()
	b.clients[c] = true
	b.mu.Unlock()

	data, _ := json.Marshal(b.snapshotMessage())
	select {
	case c.send <- data:
	default:
		// Client too slow already, it will get the next broadcast.
	}

	return c
}

func (b *Broadcaster) RemoveClient(c *client) {
	b.mu.Lock()
	if _, ok := b.clients[c]; ok {
		delete(b.clients, c)
		c.close()
	}
	b.mu.Unlock()
}

func (b *Broadcaster) broadcast(msg WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("broadcast marshal error: %v", err)
		return
	}

	b.mu.RLock()
	clients := make([]*client, 0, len(b.clients))
	for c := range b.clients {
		clients = append(clients, c)
	}
	b.mu.RUnlock()

	for _, c := range clients {
		select {
		case c.send <- data:
		default:
			log.Printf("ws client too slow, disconnecting")
			b.RemoveClient(c)
		}
	}
}

func (b *Broadcaster) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}
