package presence

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"grouple/communityhub/pkg/crypto"
)

type remoteEvent struct {
	Origin  string   `json:"origin"`
	Event   string   `json:"event"` // "track" | "leave"
	ConnKey string   `json:"conn_key"`
	Payload *Payload `json:"payload,omitempty"`
}

type RedisBroadcaster struct {
	client  *redis.Client
	channel string
	origin  string
	logger  *zap.Logger
}

// NewRedisBroadcaster publishes presence events on a Redis pub/sub channel
// and applies events from sibling instances onto the hub. Listen must be
// started before the hub accepts connections.
func NewRedisBroadcaster(client *redis.Client, channel string, logger *zap.Logger) (*RedisBroadcaster, error) {
	origin, err := crypto.GenerateConnectionKey()
	if err != nil {
		return nil, err
	}
	return &RedisBroadcaster{
		client:  client,
		channel: channel,
		origin:  origin,
		logger:  logger,
	}, nil
}

func (b *RedisBroadcaster) PublishTrack(ctx context.Context, connKey string, payload Payload) error {
	return b.publish(ctx, remoteEvent{
		Origin:  b.origin,
		Event:   EventTrack,
		ConnKey: connKey,
		Payload: &payload,
	})
}

func (b *RedisBroadcaster) PublishLeave(ctx context.Context, connKey string) error {
	return b.publish(ctx, remoteEvent{
		Origin:  b.origin,
		Event:   "leave",
		ConnKey: connKey,
	})
}

func (b *RedisBroadcaster) publish(ctx context.Context, event remoteEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, b.channel, data).Err()
}

// Listen consumes sibling events until ctx is done.
func (b *RedisBroadcaster) Listen(ctx context.Context, hub *Hub) {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Channel():
			if !ok {
				return
			}
			var event remoteEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				b.logger.Warn("malformed presence event", zap.Error(err))
				continue
			}
			if event.Origin == b.origin {
				continue
			}
			switch event.Event {
			case EventTrack:
				if event.Payload != nil {
					hub.applyRemoteTrack(event.ConnKey, *event.Payload)
				}
			case "leave":
				hub.applyRemoteLeave(event.ConnKey)
			}
		}
	}
}
