package client

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"grouple/communityhub/pkg/envelope"
)

// MutationState is the lifecycle of one mutation target.
type MutationState int

const (
	StateIdle MutationState = iota
	StatePending
	StateSettledSuccess
	StateSettledError
)

// Notifier receives the settlement notification for every mutation, carrying
// the server's message verbatim.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// LogNotifier reports settlements through the logger. UI embedders supply
// their own Notifier to surface toasts instead.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n LogNotifier) Success(message string) {
	n.Logger.Info("mutation succeeded", zap.String("message", message))
}

func (n LogNotifier) Error(message string) {
	n.Logger.Warn("mutation failed", zap.String("message", message))
}

// Mutation describes one optimistic mutation: the provisional value shown
// while the call is in flight, the action call itself, and the cache keys to
// invalidate once the call settles.
type Mutation struct {
	View        any
	Call        func(ctx context.Context) Result
	Invalidates []string
}

// Mutator runs optimistic mutations. Per target it holds at most one
// speculative view; a second Run on the same target overwrites the pending
// view rather than queuing behind it.
type Mutator struct {
	cache    *Cache
	notifier Notifier

	mu     sync.Mutex
	views  map[string]any
	states map[string]MutationState
}

func NewMutator(cache *Cache, notifier Notifier) *Mutator {
	return &Mutator{
		cache:    cache,
		notifier: notifier,
		views:    make(map[string]any),
		states:   make(map[string]MutationState),
	}
}

// Run executes spec against target. The speculative view is applied strictly
// before the call is issued; on settlement the notifier fires with the
// envelope's message and every declared key is invalidated regardless of
// outcome, then the view is cleared. Invalidating on error trades a
// redundant refetch for guaranteed eventual consistency.
func (m *Mutator) Run(ctx context.Context, target string, spec Mutation) Result {
	m.mu.Lock()
	m.views[target] = spec.View
	m.states[target] = StatePending
	m.mu.Unlock()

	res := spec.Call(ctx)

	settled := StateSettledSuccess
	if res.Status == envelope.StatusOK || res.Status == envelope.StatusAlternate {
		m.notifier.Success(res.Message)
	} else {
		settled = StateSettledError
		m.notifier.Error(res.Message)
	}

	for _, key := range spec.Invalidates {
		m.cache.Invalidate(key)
	}

	m.mu.Lock()
	delete(m.views, target)
	m.states[target] = settled
	m.mu.Unlock()

	return res
}

// PendingView reports the speculative value for target while its mutation is
// in flight.
func (m *Mutator) PendingView(target string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.views[target]
	return v, ok
}

func (m *Mutator) State(target string) MutationState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.states[target]
}

// ChannelEditor is the concrete optimistic editor for channels: rename and
// delete both invalidate the owning group's channel list key.
type ChannelEditor struct {
	actions Actions
	mutator *Mutator
	groupID string
}

func NewChannelEditor(actions Actions, mutator *Mutator, groupID string) *ChannelEditor {
	return &ChannelEditor{actions: actions, mutator: mutator, groupID: groupID}
}

// ChannelsKey is the cache key for a group's channel list.
func ChannelsKey(groupID string) string {
	return Key("group-channels", groupID)
}

func (e *ChannelEditor) Rename(ctx context.Context, channelID, name string) Result {
	return e.mutator.Run(ctx, channelID, Mutation{
		View: name,
		Call: func(ctx context.Context) Result {
			return e.actions.UpdateChannel(ctx, channelID, &name, nil)
		},
		Invalidates: []string{ChannelsKey(e.groupID)},
	})
}

func (e *ChannelEditor) Delete(ctx context.Context, channelID string) Result {
	return e.mutator.Run(ctx, channelID, Mutation{
		View: nil,
		Call: func(ctx context.Context) Result {
			return e.actions.DeleteChannel(ctx, channelID)
		},
		Invalidates: []string{ChannelsKey(e.groupID)},
	})
}
