package client

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchOnlineDeduplicates(t *testing.T) {
	store := NewStore()

	store.DispatchOnline([]OnlineMember{{ID: "u1"}, {ID: "u2"}, {ID: "u1"}})
	store.DispatchOnline([]OnlineMember{{ID: "u2"}, {ID: "u3"}})

	members := store.OnlineMembers()
	require.Len(t, members, 3)
	assert.Equal(t, []OnlineMember{{ID: "u1"}, {ID: "u2"}, {ID: "u3"}}, members)
}

func TestDispatchOfflineIsOnlyRemovalPath(t *testing.T) {
	store := NewStore()
	store.DispatchOnline([]OnlineMember{{ID: "u1"}, {ID: "u2"}})

	store.DispatchOffline([]OnlineMember{{ID: "u1"}})
	assert.Equal(t, []OnlineMember{{ID: "u2"}}, store.OnlineMembers())

	// Removing an absent id is a no-op.
	store.DispatchOffline([]OnlineMember{{ID: "u9"}})
	assert.Len(t, store.OnlineMembers(), 1)
}

func TestSearchStateReplacedWholesale(t *testing.T) {
	store := NewStore()

	store.DispatchSearch(SearchState{IsSearching: true, DebounceKey: "go"})
	assert.True(t, store.Search().IsSearching)

	store.DispatchSearch(SearchState{
		Status:      200,
		Data:        []GroupSummary{{ID: "g1", Name: "gophers"}},
		DebounceKey: "go",
	})
	got := store.Search()
	assert.False(t, got.IsSearching)
	require.Len(t, got.Data, 1)

	store.ClearSearch()
	assert.Empty(t, store.Search().Data)
	assert.Empty(t, store.Search().DebounceKey)
}

func TestAppendScrollKeepsDuplicates(t *testing.T) {
	store := NewStore()
	page := []json.RawMessage{
		json.RawMessage(`{"id":"g1"}`),
		json.RawMessage(`{"id":"g2"}`),
	}

	store.AppendScroll(page)
	store.AppendScroll(page)

	require.Equal(t, 4, store.ScrollLen())
	items := store.Scroll()
	assert.JSONEq(t, `{"id":"g1"}`, string(items[0]))
	assert.JSONEq(t, `{"id":"g1"}`, string(items[2]))

	store.ClearScroll()
	assert.Zero(t, store.ScrollLen())
}
