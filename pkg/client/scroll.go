package client

import (
	"context"

	"grouple/communityhub/pkg/envelope"
)

// ScrollMode selects which paginated source a pager reads.
type ScrollMode string

const (
	// ScrollGroups pages search results; the identifier is the query.
	ScrollGroups ScrollMode = "GROUPS"
	// ScrollExplore pages a category feed; the identifier is the category.
	ScrollExplore ScrollMode = "EXPLORE"
	// ScrollPosts pages a channel's posts; the identifier is the channel id.
	ScrollPosts ScrollMode = "POSTS"
)

// ScrollPager accumulates successive pages into the store. The next offset
// is derived from how much has already been accumulated (base + length),
// which assumes the underlying list is append-only: concurrent inserts or
// deletes shift pages. A double-triggered LoadMore appends the same page
// twice.
type ScrollPager struct {
	store      *Store
	actions    Actions
	mode       ScrollMode
	identifier string
	base       int
}

func NewScrollPager(store *Store, actions Actions, mode ScrollMode, identifier string, base int) *ScrollPager {
	return &ScrollPager{store: store, actions: actions, mode: mode, identifier: identifier, base: base}
}

// LoadMore fetches the next page and appends its items to the accumulator.
func (p *ScrollPager) LoadMore(ctx context.Context) Result {
	offset := p.base + p.store.ScrollLen()

	var res Result
	var field string
	switch p.mode {
	case ScrollPosts:
		res = p.actions.ChannelPosts(ctx, p.identifier, offset)
		field = "posts"
	case ScrollExplore:
		res = p.actions.ExploreGroups(ctx, p.identifier, offset)
		field = "groups"
	default:
		res = p.actions.SearchGroups(ctx, p.identifier, offset)
		field = "groups"
	}

	if res.Status != envelope.StatusOK {
		return res
	}
	items, err := res.List(field)
	if err != nil {
		return res
	}
	p.store.AppendScroll(items)
	return res
}

// Reset clears the accumulator when the browsing context changes, so pages
// from different contexts never interleave.
func (p *ScrollPager) Reset() {
	p.store.ClearScroll()
}
