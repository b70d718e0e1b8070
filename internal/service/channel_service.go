package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"grouple/communityhub/internal/model"
	"grouple/communityhub/internal/repository"
)

// RecentPostCount is how many posts ride along with channel info.
const RecentPostCount = 3

// ChannelInfo is a channel plus its most recent posts decorated for the
// viewer (counts and the viewer's own likes).
type ChannelInfo struct {
	Channel *model.Channel        `json:"channel"`
	Posts   []repository.FeedPost `json:"posts"`
}

type ChannelService interface {
	Info(ctx context.Context, channelID, viewerID uuid.UUID) (*ChannelInfo, error)
	Create(ctx context.Context, groupID uuid.UUID, id uuid.UUID, name, icon string) ([]model.Channel, error)
	// Update renames a channel and/or swaps its icon; nil leaves a field alone.
	Update(ctx context.Context, channelID uuid.UUID, name, icon *string) error
	Delete(ctx context.Context, channelID uuid.UUID) error
}

type channelService struct {
	channelRepo repository.ChannelRepository
	postRepo    repository.PostRepository
}

func NewChannelService(channelRepo repository.ChannelRepository, postRepo repository.PostRepository) ChannelService {
	return &channelService{channelRepo: channelRepo, postRepo: postRepo}
}

func (s *channelService) Info(ctx context.Context, channelID, viewerID uuid.UUID) (*ChannelInfo, error) {
	channel, err := s.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, fmt.Errorf("get channel: %w", err)
	}

	posts, err := s.postRepo.ListByChannel(ctx, channelID, viewerID, RecentPostCount, 0)
	if err != nil {
		return nil, fmt.Errorf("load recent posts: %w", err)
	}
	return &ChannelInfo{Channel: channel, Posts: posts}, nil
}

func (s *channelService) Create(ctx context.Context, groupID uuid.UUID, id uuid.UUID, name, icon string) ([]model.Channel, error) {
	channel := &model.Channel{
		ID:      id,
		Name:    name,
		Icon:    icon,
		GroupID: groupID,
	}
	if err := s.channelRepo.Create(ctx, channel); err != nil {
		return nil, fmt.Errorf("create channel: %w", err)
	}

	// Return the full, freshly ordered channel list the way the group
	// sidebar consumes it.
	channels, err := s.channelRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}
	return channels, nil
}

func (s *channelService) Update(ctx context.Context, channelID uuid.UUID, name, icon *string) error {
	if err := s.channelRepo.UpdateInfo(ctx, channelID, name, icon); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrChannelNotFound
		}
		return fmt.Errorf("update channel: %w", err)
	}
	return nil
}

func (s *channelService) Delete(ctx context.Context, channelID uuid.UUID) error {
	if err := s.channelRepo.Delete(ctx, channelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrChannelNotFound
		}
		return fmt.Errorf("delete channel: %w", err)
	}
	return nil
}
