package presence

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Hub maintains the presence table for one shared channel and pushes a full
// sync snapshot to every subscriber on a fixed cadence. Track failures are
// not retried and never surface to the announcing client.
type Hub struct {
	mu          sync.RWMutex
	table       map[string][]Payload
	subscribers map[string]chan Message

	interval    time.Duration
	broadcaster Broadcaster
	logger      *zap.Logger
}

func NewHub(interval time.Duration, broadcaster Broadcaster, logger *zap.Logger) *Hub {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Hub{
		table:       make(map[string][]Payload),
		subscribers: make(map[string]chan Message),
		interval:    interval,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Subscribe registers a connection and returns its outbound message stream.
// The subscribed ack is the first frame on the stream.
func (h *Hub) Subscribe(connKey string) <-chan Message {
	ch := make(chan Message, 8)

	h.mu.Lock()
	h.subscribers[connKey] = ch
	h.mu.Unlock()

	ch <- Message{Event: EventSubscribed}
	return ch
}

// Track records a connection's announced payload and fans it out to sibling
// instances. Announcing on an unsubscribed connection is a no-op.
func (h *Hub) Track(ctx context.Context, connKey string, payload Payload) {
	h.mu.Lock()
	if _, ok := h.subscribers[connKey]; !ok {
		h.mu.Unlock()
		return
	}
	h.table[connKey] = append(h.table[connKey], payload)
	h.mu.Unlock()

	if h.broadcaster != nil {
		if err := h.broadcaster.PublishTrack(ctx, connKey, payload); err != nil {
			h.logger.Warn("presence track fan-out failed", zap.Error(err))
		}
	}
}

// Unsubscribe drops a connection and its table entry. Observers learn about
// the departure only through the shrunken sync snapshot; client-side member
// sets are not evicted by this (logout is the only removal there).
func (h *Hub) Unsubscribe(ctx context.Context, connKey string) {
	h.mu.Lock()
	if ch, ok := h.subscribers[connKey]; ok {
		close(ch)
		delete(h.subscribers, connKey)
	}
	delete(h.table, connKey)
	h.mu.Unlock()

	if h.broadcaster != nil {
		if err := h.broadcaster.PublishLeave(ctx, connKey); err != nil {
			h.logger.Warn("presence leave fan-out failed", zap.Error(err))
		}
	}
}

// Snapshot copies the current presence table.
func (h *Hub) Snapshot() State {
	h.mu.RLock()
	defer h.mu.RUnlock()

	state := make(State, len(h.table))
	for key, payloads := range h.table {
		copied := make([]Payload, len(payloads))
		copy(copied, payloads)
		state[key] = copied
	}
	return state
}

// applyRemoteTrack merges a sibling instance's track into the local table.
func (h *Hub) applyRemoteTrack(connKey string, payload Payload) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.table[connKey] = append(h.table[connKey], payload)
}

func (h *Hub) applyRemoteLeave(connKey string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.table, connKey)
}

// Run drives the periodic sync broadcast until ctx is done. Slow subscribers
// miss a cycle rather than block the hub.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.broadcastSync()
		}
	}
}

func (h *Hub) broadcastSync() {
	state := h.Snapshot()
	msg := Message{Event: EventSync, State: state}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subscribers {
		select {
		case ch <- msg:
		default:
		}
	}
}
