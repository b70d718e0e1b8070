package client

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	waitTimeout  = 2 * time.Second
	pollInterval = 5 * time.Millisecond
)

// fakeActions lets each test script the action surface.
type fakeActions struct {
	mu           sync.Mutex
	searchCalls  []searchCall
	exploreCalls []exploreCall
	postsCalls   []postsCall

	searchFn  func(query string, offset int) Result
	exploreFn func(category string, offset int) Result
	postsFn   func(channelID string, offset int) Result
	updateFn  func(channelID string, name, icon *string) Result
	deleteFn  func(channelID string) Result
}

type searchCall struct {
	Query  string
	Offset int
}

type exploreCall struct {
	Category string
	Offset   int
}

type postsCall struct {
	ChannelID string
	Offset    int
}

func (f *fakeActions) SearchGroups(_ context.Context, query string, offset int) Result {
	f.mu.Lock()
	f.searchCalls = append(f.searchCalls, searchCall{Query: query, Offset: offset})
	fn := f.searchFn
	f.mu.Unlock()
	if fn != nil {
		return fn(query, offset)
	}
	return okResult(`{"status":200,"groups":[]}`)
}

func (f *fakeActions) ExploreGroups(_ context.Context, category string, offset int) Result {
	f.mu.Lock()
	f.exploreCalls = append(f.exploreCalls, exploreCall{Category: category, Offset: offset})
	fn := f.exploreFn
	f.mu.Unlock()
	if fn != nil {
		return fn(category, offset)
	}
	return okResult(`{"status":200,"groups":[]}`)
}

func (f *fakeActions) ChannelPosts(_ context.Context, channelID string, offset int) Result {
	f.mu.Lock()
	f.postsCalls = append(f.postsCalls, postsCall{ChannelID: channelID, Offset: offset})
	fn := f.postsFn
	f.mu.Unlock()
	if fn != nil {
		return fn(channelID, offset)
	}
	return okResult(`{"status":200,"posts":[]}`)
}

func (f *fakeActions) UpdateChannel(_ context.Context, channelID string, name, icon *string) Result {
	if f.updateFn != nil {
		return f.updateFn(channelID, name, icon)
	}
	return okResult(`{"status":200,"message":"Channel updated"}`)
}

func (f *fakeActions) DeleteChannel(_ context.Context, channelID string) Result {
	if f.deleteFn != nil {
		return f.deleteFn(channelID)
	}
	return okResult(`{"status":200,"message":"Channel deleted"}`)
}

func (f *fakeActions) searchCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.searchCalls)
}

func okResult(body string) Result {
	return decodeResult([]byte(body))
}

func TestDecodeResult(t *testing.T) {
	res := decodeResult([]byte(`{"status":207,"message":"redirect","id":"u1","group_id":"g1"}`))
	require.Equal(t, 207, res.Status)
	require.Equal(t, "redirect", res.Message)

	var id string
	require.NoError(t, res.DecodeField("id", &id))
	require.Equal(t, "u1", id)

	require.Nil(t, res.Field("missing"))
	require.Error(t, res.DecodeField("missing", &id))
}

func TestDecodeResultMalformedBody(t *testing.T) {
	res := decodeResult([]byte(`not json`))
	require.Equal(t, 500, res.Status)
	require.NotEmpty(t, res.Message)
}
