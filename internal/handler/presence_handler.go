package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"grouple/communityhub/internal/presence"
	"grouple/communityhub/pkg/crypto"
)

type PresenceHandler struct {
	hub    *presence.Hub
	logger *zap.Logger
}

func NewPresenceHandler(hub *presence.Hub, logger *zap.Logger) *PresenceHandler {
	return &PresenceHandler{hub: hub, logger: logger}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin is already policed by the CORS layer; the upgrade itself
	// accepts any origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Connect upgrades to a websocket presence subscription. The first outbound
// frame is the subscribed ack; only after it does a track announce register.
func (h *PresenceHandler) Connect(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// The upgrader has already written its own error response.
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	connKey, err := crypto.GenerateConnectionKey()
	if err != nil {
		h.logger.Error("generate connection key", zap.Error(err))
		conn.Close()
		return
	}

	stream := h.hub.Subscribe(connKey)

	go func() {
		for msg := range stream {
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}
	}()

	// The read loop outlives the HTTP request; publishes on teardown use a
	// fresh context.
	for {
		var msg presence.Message
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}
		if msg.Event == presence.EventTrack && msg.Payload != nil {
			h.hub.Track(context.Background(), connKey, *msg.Payload)
		}
	}

	h.hub.Unsubscribe(context.Background(), connKey)
	conn.Close()
}
