package client

import (
	"encoding/json"
	"sync"
)

// OnlineMember is one entry in the who-is-online set.
type OnlineMember struct {
	ID string `json:"id"`
}

// GroupSummary is the group shape carried in search results.
type GroupSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Thumbnail   *string `json:"thumbnail"`
	Description *string `json:"description"`
}

// SearchState is the search slice: data is only ever non-empty while
// DebounceKey holds the committed query it was fetched for.
type SearchState struct {
	IsSearching bool
	Status      int
	Data        []GroupSummary
	DebounceKey string
}

// Store holds the cross-component client state: online members, the current
// search, and the infinite-scroll accumulator. It is constructed per session
// and passed down explicitly. The typed dispatch methods are the only
// mutation paths.
type Store struct {
	mu     sync.RWMutex
	online []OnlineMember
	search SearchState
	scroll []json.RawMessage
}

func NewStore() *Store {
	return &Store{}
}

// DispatchOnline adds each member whose id is not already present. Duplicate
// announcements, within one batch or across syncs, collapse to one entry.
func (s *Store) DispatchOnline(members []OnlineMember) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range members {
		if s.onlineIndex(m.ID) < 0 {
			s.online = append(s.online, m)
		}
	}
}

// DispatchOffline removes the listed ids. This is the only removal path:
// there is no heartbeat or expiry, so a member who drops without an explicit
// logout stays in every observer's set.
func (s *Store) DispatchOffline(members []OnlineMember) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range members {
		if i := s.onlineIndex(m.ID); i >= 0 {
			s.online = append(s.online[:i], s.online[i+1:]...)
		}
	}
}

func (s *Store) onlineIndex(id string) int {
	for i, m := range s.online {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) OnlineMembers() []OnlineMember {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]OnlineMember, len(s.online))
	copy(out, s.online)
	return out
}

// DispatchSearch replaces the search slice wholesale.
func (s *Store) DispatchSearch(state SearchState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = state
}

func (s *Store) ClearSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = SearchState{}
}

func (s *Store) Search() SearchState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.search
	out.Data = make([]GroupSummary, len(s.search.Data))
	copy(out.Data, s.search.Data)
	return out
}

// AppendScroll appends a resolved page to the accumulator. No deduplication:
// fetching the same offset twice appends the same items twice.
func (s *Store) AppendScroll(items []json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scroll = append(s.scroll, items...)
}

func (s *Store) ClearScroll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scroll = nil
}

func (s *Store) Scroll() []json.RawMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]json.RawMessage, len(s.scroll))
	copy(out, s.scroll)
	return out
}

// ScrollLen avoids copying the accumulator when only the offset is needed.
func (s *Store) ScrollLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.scroll)
}
