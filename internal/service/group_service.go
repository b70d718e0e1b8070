package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"grouple/communityhub/internal/model"
	"grouple/communityhub/internal/repository"
	"grouple/communityhub/pkg/crypto"
)

// Page sizes mirror what the explore and search surfaces render per fetch.
const (
	SearchPageSize  = 6
	ExplorePageSize = 6
)

// GroupCreated is the sign-post returned after group creation: where to
// redirect the new owner.
type GroupCreated struct {
	GroupID   uuid.UUID `json:"group_id"`
	ChannelID uuid.UUID `json:"channel_id"`
}

// GroupInfo pairs a group with whether the caller owns it.
type GroupInfo struct {
	Group      *model.Group `json:"group"`
	GroupOwner bool         `json:"groupOwner"`
}

// UserGroups splits owned groups from joined ones; both carry the "general"
// channel id used as the landing link.
type UserGroups struct {
	Groups  []model.Group `json:"groups"`
	Members []model.Group `json:"members"`
}

type GroupService interface {
	Create(ctx context.Context, userID uuid.UUID, name, category string) (*GroupCreated, error)
	Info(ctx context.Context, callerID, groupID uuid.UUID) (*GroupInfo, error)
	UserGroups(ctx context.Context, userID uuid.UUID) (*UserGroups, error)
	Channels(ctx context.Context, groupID uuid.UUID) ([]model.Channel, error)
	Members(ctx context.Context, groupID, callerID uuid.UUID) ([]model.Member, error)
	Subscriptions(ctx context.Context, groupID uuid.UUID) ([]model.Subscription, int64, error)
	UpdateSetting(ctx context.Context, groupID uuid.UUID, field repository.GroupField, content string) error
	AppendGallery(ctx context.Context, groupID uuid.UUID, mediaID string) error
	Search(ctx context.Context, query string, paginate int) ([]model.Group, error)
	Explore(ctx context.Context, category string, paginate int) ([]model.Group, error)
	CreateInvite(ctx context.Context, groupID, callerID uuid.UUID, maxUses int, expiresAt *time.Time) (*model.InviteCode, error)
	JoinWithInvite(ctx context.Context, code string, userID uuid.UUID) (*model.Member, error)
	Join(ctx context.Context, groupID, userID uuid.UUID) (*model.Member, error)
	CompletePaidJoin(ctx context.Context, groupID, userID uuid.UUID) (*model.Member, error)
}

type groupService struct {
	groupRepo   repository.GroupRepository
	channelRepo repository.ChannelRepository
	memberRepo  repository.MemberRepository
	subRepo     repository.SubscriptionRepository
	inviteRepo  repository.InviteCodeRepository
}

func NewGroupService(
	groupRepo repository.GroupRepository,
	channelRepo repository.ChannelRepository,
	memberRepo repository.MemberRepository,
	subRepo repository.SubscriptionRepository,
	inviteRepo repository.InviteCodeRepository,
) GroupService {
	return &groupService{
		groupRepo:   groupRepo,
		channelRepo: channelRepo,
		memberRepo:  memberRepo,
		subRepo:     subRepo,
		inviteRepo:  inviteRepo,
	}
}

func (s *groupService) Create(ctx context.Context, userID uuid.UUID, name, category string) (*GroupCreated, error) {
	// Every new group starts with a "general" and an "announcements" channel,
	// an affiliate id, and the owner as its first member.
	general := model.Channel{ID: uuid.New(), Name: "general", Icon: "general"}
	announcements := model.Channel{ID: uuid.New(), Name: "announcements", Icon: "announcement"}

	group := &model.Group{
		Name:      name,
		Category:  category,
		UserID:    userID,
		Channels:  []model.Channel{general, announcements},
		Members:   []model.Member{{UserID: userID}},
		Affiliate: &model.Affiliate{},
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}

	return &GroupCreated{GroupID: group.ID, ChannelID: general.ID}, nil
}

func (s *groupService) Info(ctx context.Context, callerID, groupID uuid.UUID) (*GroupInfo, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("get group info: %w", err)
	}
	return &GroupInfo{Group: group, GroupOwner: group.UserID == callerID}, nil
}

func (s *groupService) UserGroups(ctx context.Context, userID uuid.UUID) (*UserGroups, error) {
	owned, err := s.groupRepo.ListOwnedByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list owned groups: %w", err)
	}
	joined, err := s.groupRepo.ListMemberships(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	if len(owned) == 0 && len(joined) == 0 {
		return nil, ErrGroupsNotFound
	}
	return &UserGroups{Groups: owned, Members: joined}, nil
}

func (s *groupService) Channels(ctx context.Context, groupID uuid.UUID) ([]model.Channel, error) {
	channels, err := s.channelRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list group channels: %w", err)
	}
	return channels, nil
}

func (s *groupService) Members(ctx context.Context, groupID, callerID uuid.UUID) ([]model.Member, error) {
	members, err := s.memberRepo.ListByGroupExcluding(ctx, groupID, callerID)
	if err != nil {
		return nil, fmt.Errorf("list group members: %w", err)
	}
	if len(members) == 0 {
		return nil, ErrNoResults
	}
	return members, nil
}

func (s *groupService) Subscriptions(ctx context.Context, groupID uuid.UUID) ([]model.Subscription, int64, error) {
	subs, err := s.subRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, 0, fmt.Errorf("list subscriptions: %w", err)
	}
	count, err := s.memberRepo.CountByGroup(ctx, groupID)
	if err != nil {
		return nil, 0, fmt.Errorf("count members: %w", err)
	}
	return subs, count, nil
}

func (s *groupService) UpdateSetting(ctx context.Context, groupID uuid.UUID, field repository.GroupField, content string) error {
	if err := s.groupRepo.UpdateField(ctx, groupID, field, content); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		return fmt.Errorf("update group setting: %w", err)
	}
	return nil
}

func (s *groupService) AppendGallery(ctx context.Context, groupID uuid.UUID, mediaID string) error {
	if err := s.groupRepo.AppendGallery(ctx, groupID, mediaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		return fmt.Errorf("append gallery: %w", err)
	}
	return nil
}

func (s *groupService) Search(ctx context.Context, query string, paginate int) ([]model.Group, error) {
	groups, err := s.groupRepo.SearchByName(ctx, query, SearchPageSize, max(0, paginate))
	if err != nil {
		return nil, fmt.Errorf("search groups: %w", err)
	}
	if len(groups) == 0 {
		return nil, ErrNoResults
	}
	return groups, nil
}

func (s *groupService) Explore(ctx context.Context, category string, paginate int) ([]model.Group, error) {
	if strings.TrimSpace(category) == "" {
		return nil, errors.New("category is required")
	}
	groups, err := s.groupRepo.ListByCategory(ctx, category, ExplorePageSize, max(0, paginate))
	if err != nil {
		return nil, fmt.Errorf("explore groups: %w", err)
	}
	if len(groups) == 0 {
		return nil, ErrNoResults
	}
	return groups, nil
}

func (s *groupService) CreateInvite(ctx context.Context, groupID, callerID uuid.UUID, maxUses int, expiresAt *time.Time) (*model.InviteCode, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("load group: %w", err)
	}
	if group.UserID != callerID {
		return nil, ErrNotGroupOwner
	}

	if maxUses <= 0 {
		maxUses = 1
	}
	code, err := crypto.GenerateInviteCode()
	if err != nil {
		return nil, fmt.Errorf("generate invite code: %w", err)
	}

	invite := &model.InviteCode{
		Code:      code,
		GroupID:   groupID,
		MaxUses:   maxUses,
		ExpiresAt: expiresAt,
		CreatedBy: callerID,
	}
	if err := s.inviteRepo.Create(ctx, invite); err != nil {
		return nil, fmt.Errorf("create invite code: %w", err)
	}
	return invite, nil
}

func (s *groupService) JoinWithInvite(ctx context.Context, code string, userID uuid.UUID) (*model.Member, error) {
	invite, err := s.inviteRepo.Consume(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) ||
			errors.Is(err, repository.ErrInviteExhausted) ||
			errors.Is(err, repository.ErrInviteExpired) {
			return nil, ErrInviteInvalid
		}
		return nil, fmt.Errorf("consume invite: %w", err)
	}
	return s.addMember(ctx, invite.GroupID, userID)
}

func (s *groupService) Join(ctx context.Context, groupID, userID uuid.UUID) (*model.Member, error) {
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("load group: %w", err)
	}

	// Paid groups never join through here: the caller is sent to the payment
	// flow, and CompletePaidJoin records the membership once the intent has
	// been confirmed.
	if active, err := s.subRepo.GetActiveByGroup(ctx, groupID); err == nil && active != nil {
		return nil, ErrSubscriptionRequired
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check active subscription: %w", err)
	}

	return s.addMember(ctx, groupID, userID)
}

// CompletePaidJoin records the membership for a priced group after the
// payment intent has been confirmed on the processor's side. Groups without
// an active tier take the plain Join path instead.
func (s *groupService) CompletePaidJoin(ctx context.Context, groupID, userID uuid.UUID) (*model.Member, error) {
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("load group: %w", err)
	}

	if _, err := s.subRepo.GetActiveByGroup(ctx, groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionRequired
		}
		return nil, fmt.Errorf("check active subscription: %w", err)
	}

	return s.addMember(ctx, groupID, userID)
}

func (s *groupService) addMember(ctx context.Context, groupID, userID uuid.UUID) (*model.Member, error) {
	exists, err := s.memberRepo.Exists(ctx, groupID, userID)
	if err != nil {
		return nil, fmt.Errorf("check membership: %w", err)
	}
	if exists {
		return nil, ErrAlreadyMember
	}

	member := &model.Member{UserID: userID, GroupID: groupID}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("create member: %w", err)
	}
	return member, nil
}
