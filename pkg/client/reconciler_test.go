package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// presenceTestServer acks the subscription, records the track announce, and
// replays the scripted sync frames.
func presenceTestServer(t *testing.T, syncs []presenceMessage, tracked chan presenceMessage) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		require.NoError(t, conn.WriteJSON(presenceMessage{Event: presenceEventSubscribed}))

		var announce presenceMessage
		require.NoError(t, conn.ReadJSON(&announce))
		if tracked != nil {
			tracked <- announce
		}

		for _, msg := range syncs {
			require.NoError(t, conn.WriteJSON(msg))
		}

		// Hold the socket open until the client hangs up.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestReconcilerTracksAfterAck(t *testing.T) {
	tracked := make(chan presenceMessage, 1)
	srv := presenceTestServer(t, nil, tracked)
	defer srv.Close()

	store := NewStore()
	rec := NewReconciler(store, "u1", wsURL(srv), "token", zap.NewNop())
	require.NoError(t, rec.Start(context.Background()))
	defer rec.Stop()

	announce := <-tracked
	assert.Equal(t, presenceEventTrack, announce.Event)
	require.NotNil(t, announce.Payload)
	assert.Equal(t, "u1", announce.Payload.Member.UserID)
}

func TestSyncAcrossConnectionsYieldsOneEntry(t *testing.T) {
	// The same user announced on two connection keys collapses to one
	// online entry.
	sync := presenceMessage{
		Event: presenceEventSync,
		State: map[string][]presencePayload{
			"conn1": {{Member: presenceMember{UserID: "u1"}}},
			"conn2": {{Member: presenceMember{UserID: "u1"}}},
		},
	}
	srv := presenceTestServer(t, []presenceMessage{sync}, make(chan presenceMessage, 1))
	defer srv.Close()

	store := NewStore()
	rec := NewReconciler(store, "u1", wsURL(srv), "", zap.NewNop())
	require.NoError(t, rec.Start(context.Background()))
	defer rec.Stop()

	assert.Eventually(t, func() bool {
		members := store.OnlineMembers()
		return len(members) == 1 && members[0].ID == "u1"
	}, waitTimeout, pollInterval)
}

func TestStopDoesNotDispatchOffline(t *testing.T) {
	sync := presenceMessage{
		Event: presenceEventSync,
		State: map[string][]presencePayload{
			"conn1": {{Member: presenceMember{UserID: "u1"}}},
			"conn2": {{Member: presenceMember{UserID: "u2"}}},
		},
	}
	srv := presenceTestServer(t, []presenceMessage{sync}, make(chan presenceMessage, 1))
	defer srv.Close()

	store := NewStore()
	rec := NewReconciler(store, "u1", wsURL(srv), "", zap.NewNop())
	require.NoError(t, rec.Start(context.Background()))

	assert.Eventually(t, func() bool {
		return len(store.OnlineMembers()) == 2
	}, waitTimeout, pollInterval)

	// Closing the channel leaves the set intact; only logout removes.
	rec.Stop()
	assert.Len(t, store.OnlineMembers(), 2)

	rec.Logout()
	members := store.OnlineMembers()
	require.Len(t, members, 1)
	assert.Equal(t, "u2", members[0].ID)
}

func TestStartFailsWithoutAck(t *testing.T) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		// Wrong first frame: a sync before the subscription ack.
		_ = conn.WriteJSON(presenceMessage{Event: presenceEventSync})
		conn.Close()
	}))
	defer srv.Close()

	rec := NewReconciler(NewStore(), "u1", wsURL(srv), "", zap.NewNop())
	assert.Error(t, rec.Start(context.Background()))
}
