package client

import (
	"context"
	"sync"
	"time"
)

// DefaultDebounceWindow is the quiescence window between the last keystroke
// and the committed query.
const DefaultDebounceWindow = time.Second

// SearchController turns keystroke input into rate-limited group searches.
// Every SetQuery re-arms the debounce timer; only the raw value standing
// when the window elapses is committed. Committed fetches carry a sequence
// number, and a response resolving after a higher sequence has already been
// applied is discarded, so a slow stale fetch can never overwrite a newer
// result. A committed clear counts as the newest application and wins over
// any fetch still in flight.
type SearchController struct {
	store   *Store
	actions Actions
	window  time.Duration
	ctx     context.Context

	mu      sync.Mutex
	timer   *time.Timer
	seq     uint64
	applied uint64
}

func NewSearchController(ctx context.Context, store *Store, actions Actions, window time.Duration) *SearchController {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	return &SearchController{store: store, actions: actions, window: window, ctx: ctx}
}

// SetQuery records a keystroke. The commit fires only after the window
// passes with no further keystroke.
func (sc *SearchController) SetQuery(query string) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.timer != nil {
		sc.timer.Stop()
	}
	sc.timer = time.AfterFunc(sc.window, func() {
		sc.commit(query)
	})
}

// Close cancels any pending commit.
func (sc *SearchController) Close() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.timer != nil {
		sc.timer.Stop()
	}
}

func (sc *SearchController) commit(query string) {
	if query == "" {
		// A clear fences off any fetch still in flight: bumping the applied
		// sequence past every issued one makes a late resolution stale, so
		// it cannot resurrect results over the cleared state.
		sc.mu.Lock()
		sc.seq++
		sc.applied = sc.seq
		sc.mu.Unlock()
		sc.store.ClearSearch()
		return
	}

	sc.mu.Lock()
	sc.seq++
	seq := sc.seq
	sc.mu.Unlock()

	sc.store.DispatchSearch(SearchState{IsSearching: true, DebounceKey: query})

	res := sc.actions.SearchGroups(sc.ctx, query, 0)

	var groups []GroupSummary
	_ = res.DecodeField("groups", &groups)

	sc.mu.Lock()
	defer sc.mu.Unlock()
	if seq < sc.applied {
		return
	}
	sc.applied = seq
	sc.store.DispatchSearch(SearchState{
		IsSearching: false,
		Status:      res.Status,
		Data:        groups,
		DebounceKey: query,
	})
}
