package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"grouple/communityhub/internal/model"
	"grouple/communityhub/internal/payments"
	"grouple/communityhub/internal/repository"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	users map[string]*model.User // by auth id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (r *fakeUserRepo) Upsert(_ context.Context, user *model.User) error {
	if existing, ok := r.users[user.AuthID]; ok {
		*user = *existing
		return nil
	}
	user.ID = uuid.New()
	stored := *user
	r.users[user.AuthID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByAuthID(_ context.Context, authID string) (*model.User, error) {
	if u, ok := r.users[authID]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByAuthIDWithGroups(ctx context.Context, authID string) (*model.User, error) {
	return r.GetByAuthID(ctx, authID)
}

func (r *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	r.users[user.AuthID] = user
	return nil
}

type fakeGroupRepo struct {
	groups map[uuid.UUID]*model.Group
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{groups: make(map[uuid.UUID]*model.Group)}
}

func (r *fakeGroupRepo) Create(_ context.Context, group *model.Group) error {
	group.ID = uuid.New()
	for i := range group.Channels {
		group.Channels[i].GroupID = group.ID
	}
	for i := range group.Members {
		group.Members[i].GroupID = group.ID
	}
	if group.Affiliate != nil {
		group.Affiliate.ID = uuid.New()
		group.Affiliate.GroupID = group.ID
	}
	r.groups[group.ID] = group
	return nil
}

func (r *fakeGroupRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Group, error) {
	if g, ok := r.groups[id]; ok {
		return g, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeGroupRepo) ListOwnedByUser(_ context.Context, userID uuid.UUID) ([]model.Group, error) {
	var out []model.Group
	for _, g := range r.groups {
		if g.UserID == userID {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (r *fakeGroupRepo) ListMemberships(_ context.Context, userID uuid.UUID) ([]model.Group, error) {
	var out []model.Group
	for _, g := range r.groups {
		if g.UserID == userID {
			continue
		}
		for _, m := range g.Members {
			if m.UserID == userID {
				out = append(out, *g)
			}
		}
	}
	return out, nil
}

func (r *fakeGroupRepo) UpdateField(_ context.Context, id uuid.UUID, field repository.GroupField, content string) error {
	g, ok := r.groups[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	switch field {
	case repository.GroupFieldName:
		g.Name = content
	case repository.GroupFieldIcon:
		g.Icon = content
	case repository.GroupFieldThumbnail:
		g.Thumbnail = &content
	case repository.GroupFieldDescription:
		g.Description = &content
	case repository.GroupFieldJSONDescription:
		g.JSONDescription = &content
	case repository.GroupFieldHTMLDescription:
		g.HTMLDescription = &content
	}
	return nil
}

func (r *fakeGroupRepo) AppendGallery(_ context.Context, id uuid.UUID, mediaID string) error {
	g, ok := r.groups[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	g.Gallery = append(g.Gallery, mediaID)
	return nil
}

func (r *fakeGroupRepo) SearchByName(_ context.Context, query string, limit, offset int) ([]model.Group, error) {
	var out []model.Group
	for _, g := range r.groups {
		out = append(out, *g)
	}
	return page(out, limit, offset), nil
}

func (r *fakeGroupRepo) ListByCategory(_ context.Context, category string, limit, offset int) ([]model.Group, error) {
	var out []model.Group
	for _, g := range r.groups {
		if g.Category == category && g.Description != nil && g.Thumbnail != nil {
			out = append(out, *g)
		}
	}
	return page(out, limit, offset), nil
}

func page(groups []model.Group, limit, offset int) []model.Group {
	if offset >= len(groups) {
		return nil
	}
	end := offset + limit
	if end > len(groups) {
		end = len(groups)
	}
	return groups[offset:end]
}

type fakeMemberRepo struct {
	members []model.Member
}

func (r *fakeMemberRepo) Create(_ context.Context, member *model.Member) error {
	member.ID = uuid.New()
	r.members = append(r.members, *member)
	return nil
}

func (r *fakeMemberRepo) ListByGroupExcluding(_ context.Context, groupID, excludeUserID uuid.UUID) ([]model.Member, error) {
	var out []model.Member
	for _, m := range r.members {
		if m.GroupID == groupID && m.UserID != excludeUserID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMemberRepo) CountByGroup(_ context.Context, groupID uuid.UUID) (int64, error) {
	var n int64
	for _, m := range r.members {
		if m.GroupID == groupID {
			n++
		}
	}
	return n, nil
}

func (r *fakeMemberRepo) Exists(_ context.Context, groupID, userID uuid.UUID) (bool, error) {
	for _, m := range r.members {
		if m.GroupID == groupID && m.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

type fakeChannelRepo struct {
	channels []model.Channel
}

func (r *fakeChannelRepo) Create(_ context.Context, channel *model.Channel) error {
	if channel.ID == uuid.Nil {
		channel.ID = uuid.New()
	}
	r.channels = append(r.channels, *channel)
	return nil
}

func (r *fakeChannelRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Channel, error) {
	for i := range r.channels {
		if r.channels[i].ID == id {
			return &r.channels[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeChannelRepo) ListByGroup(_ context.Context, groupID uuid.UUID) ([]model.Channel, error) {
	var out []model.Channel
	for _, ch := range r.channels {
		if ch.GroupID == groupID {
			out = append(out, ch)
		}
	}
	return out, nil
}

func (r *fakeChannelRepo) UpdateInfo(_ context.Context, id uuid.UUID, name, icon *string) error {
	for i := range r.channels {
		if r.channels[i].ID == id {
			if name != nil {
				r.channels[i].Name = *name
			}
			if icon != nil {
				r.channels[i].Icon = *icon
			}
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeChannelRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i := range r.channels {
		if r.channels[i].ID == id {
			r.channels = append(r.channels[:i], r.channels[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeSubscriptionRepo struct {
	subs map[uuid.UUID]*model.Subscription
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: make(map[uuid.UUID]*model.Subscription)}
}

func (r *fakeSubscriptionRepo) Create(_ context.Context, sub *model.Subscription) error {
	sub.ID = uuid.New()
	stored := *sub
	r.subs[sub.ID] = &stored
	return nil
}

func (r *fakeSubscriptionRepo) ListByGroup(_ context.Context, groupID uuid.UUID) ([]model.Subscription, error) {
	var out []model.Subscription
	for _, s := range r.subs {
		if s.GroupID == groupID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Subscription, error) {
	if s, ok := r.subs[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSubscriptionRepo) Activate(_ context.Context, id uuid.UUID) error {
	target, ok := r.subs[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for _, s := range r.subs {
		if s.GroupID == target.GroupID {
			s.Active = false
		}
	}
	target.Active = true
	return nil
}

func (r *fakeSubscriptionRepo) GetActiveByGroup(_ context.Context, groupID uuid.UUID) (*model.Subscription, error) {
	for _, s := range r.subs {
		if s.GroupID == groupID && s.Active {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeAffiliateRepo struct {
	affiliates map[uuid.UUID]*model.Affiliate
}

func (r *fakeAffiliateRepo) GetByIDWithOwner(_ context.Context, id uuid.UUID) (*model.Affiliate, error) {
	if a, ok := r.affiliates[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeInviteRepo struct {
	invites map[string]*model.InviteCode
}

func newFakeInviteRepo() *fakeInviteRepo {
	return &fakeInviteRepo{invites: make(map[string]*model.InviteCode)}
}

func (r *fakeInviteRepo) Create(_ context.Context, code *model.InviteCode) error {
	code.ID = uuid.New()
	r.invites[code.Code] = code
	return nil
}

func (r *fakeInviteRepo) GetByCode(_ context.Context, code string) (*model.InviteCode, error) {
	if inv, ok := r.invites[code]; ok {
		return inv, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeInviteRepo) Consume(_ context.Context, code string) (*model.InviteCode, error) {
	inv, ok := r.invites[code]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if inv.ExpiresAt != nil && inv.ExpiresAt.Before(time.Now()) {
		return nil, repository.ErrInviteExpired
	}
	if inv.Uses >= inv.MaxUses {
		return nil, repository.ErrInviteExhausted
	}
	inv.Uses++
	return inv, nil
}

func (r *fakeInviteRepo) ListByGroup(_ context.Context, groupID uuid.UUID) ([]model.InviteCode, error) {
	var out []model.InviteCode
	for _, inv := range r.invites {
		if inv.GroupID == groupID {
			out = append(out, *inv)
		}
	}
	return out, nil
}

type fakePostRepo struct {
	posts    map[uuid.UUID]*model.Post
	likes    []model.Like
	comments []model.Comment
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[uuid.UUID]*model.Post)}
}

func (r *fakePostRepo) Create(_ context.Context, post *model.Post) error {
	post.ID = uuid.New()
	post.CreatedAt = time.Now()
	stored := *post
	r.posts[post.ID] = &stored
	return nil
}

func (r *fakePostRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Post, error) {
	if p, ok := r.posts[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePostRepo) ListByChannel(_ context.Context, channelID, viewerID uuid.UUID, limit, offset int) ([]repository.FeedPost, error) {
	var all []repository.FeedPost
	for _, p := range r.posts {
		if p.ChannelID != channelID {
			continue
		}
		fp := repository.FeedPost{Post: *p}
		for _, l := range r.likes {
			if l.PostID == p.ID {
				fp.LikeCount++
				if l.UserID == viewerID {
					fp.Likes = append(fp.Likes, l)
				}
			}
		}
		for _, c := range r.comments {
			if c.PostID == p.ID {
				fp.CommentCount++
			}
		}
		all = append(all, fp)
	}
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *fakePostRepo) AddLike(_ context.Context, like *model.Like) error {
	like.ID = uuid.New()
	r.likes = append(r.likes, *like)
	return nil
}

func (r *fakePostRepo) RemoveLike(_ context.Context, postID, userID uuid.UUID) error {
	for i, l := range r.likes {
		if l.PostID == postID && l.UserID == userID {
			r.likes = append(r.likes[:i], r.likes[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakePostRepo) AddComment(_ context.Context, comment *model.Comment) error {
	comment.ID = uuid.New()
	r.comments = append(r.comments, *comment)
	return nil
}

func (r *fakePostRepo) ListComments(_ context.Context, postID uuid.UUID) ([]model.Comment, error) {
	var out []model.Comment
	for _, c := range r.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeProcessor struct {
	intents      int
	lastAmount   int64
	lastCurrency string
	transfers    []string
	fail         bool
}

func (p *fakeProcessor) CreateIntent(_ context.Context, amount int64, currency string) (*payments.Intent, error) {
	if p.fail {
		return nil, errors.New("processor unavailable")
	}
	p.intents++
	p.lastAmount = amount
	p.lastCurrency = currency
	return &payments.Intent{ID: "pi_test", ClientSecret: "pi_test_secret"}, nil
}

func (p *fakeProcessor) Transfer(_ context.Context, amount int64, currency, destination string) error {
	if p.fail {
		return errors.New("processor unavailable")
	}
	p.lastAmount = amount
	p.lastCurrency = currency
	p.transfers = append(p.transfers, destination)
	return nil
}
