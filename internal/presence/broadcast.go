package presence

import "context"

// Broadcaster fans presence events out to sibling server instances so every
// instance's sync snapshot covers the whole fleet. A single-instance
// deployment runs without one.
type Broadcaster interface {
	PublishTrack(ctx context.Context, connKey string, payload Payload) error
	PublishLeave(ctx context.Context, connKey string) error
}
