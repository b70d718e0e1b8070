package client

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Presence wire frames, mirroring the server's channel contract.
type presenceMember struct {
	UserID string `json:"userid"`
}

type presencePayload struct {
	Member presenceMember `json:"member"`
}

type presenceMessage struct {
	Event   string                       `json:"event"`
	Payload *presencePayload             `json:"payload,omitempty"`
	State   map[string][]presencePayload `json:"state,omitempty"`
}

const (
	presenceEventSubscribed = "subscribed"
	presenceEventTrack      = "track"
	presenceEventSync       = "sync"
)

// Reconciler keeps the store's online-member set loosely in step with the
// shared presence channel. It subscribes once, announces the own identity
// after the subscription ack, and folds every periodic sync into online
// dispatches. Announce failures are dropped; nothing is retried.
type Reconciler struct {
	store  *Store
	userID string
	url    string
	header http.Header
	logger *zap.Logger

	mu   sync.Mutex
	conn *websocket.Conn
}

func NewReconciler(store *Store, userID, wsURL, token string, logger *zap.Logger) *Reconciler {
	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}
	return &Reconciler{store: store, userID: userID, url: wsURL, header: header, logger: logger}
}

// Start dials the presence channel, waits for the subscribed ack, tracks the
// own identity once, and then consumes sync events until the socket closes
// or ctx is done.
func (r *Reconciler) Start(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, r.url, r.header)
	if err != nil {
		return err
	}

	var ack presenceMessage
	if err := conn.ReadJSON(&ack); err != nil {
		conn.Close()
		return err
	}
	if ack.Event != presenceEventSubscribed {
		conn.Close()
		return errors.New("presence channel did not acknowledge subscription")
	}

	// Track only after the ack: an announce before the subscription is
	// confirmed is a no-op on the channel.
	announce := presenceMessage{
		Event:   presenceEventTrack,
		Payload: &presencePayload{Member: presenceMember{UserID: r.userID}},
	}
	if err := conn.WriteJSON(announce); err != nil {
		r.logger.Debug("presence announce dropped", zap.Error(err))
	}

	r.mu.Lock()
	r.conn = conn
	r.mu.Unlock()

	go r.readLoop(ctx, conn)
	return nil
}

func (r *Reconciler) readLoop(ctx context.Context, conn *websocket.Conn) {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		var msg presenceMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if msg.Event != presenceEventSync {
			continue
		}
		var members []OnlineMember
		for _, payloads := range msg.State {
			for _, p := range payloads {
				members = append(members, OnlineMember{ID: p.Member.UserID})
			}
		}
		r.store.DispatchOnline(members)
	}
}

// Stop closes the socket. It does not dispatch offline for anyone; departure
// is signalled at logout only.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conn != nil {
		r.conn.Close()
		r.conn = nil
	}
}

// Logout removes the own identity from the online set and closes the
// channel. This is the sole removal path for the online-member set.
func (r *Reconciler) Logout() {
	r.store.DispatchOffline([]OnlineMember{{ID: r.userID}})
	r.Stop()
}
