package repository

import (
	"context"

	"github.com/google/uuid"

	"grouple/communityhub/internal/model"
)

// FeedPost is a post decorated with the aggregate counts and the viewer's own
// like rows, the shape channel feeds render from.
type FeedPost struct {
	model.Post
	LikeCount    int64 `json:"like_count"`
	CommentCount int64 `json:"comment_count"`
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	// ListByChannel pages newest-first through a channel's posts. viewerID
	// scopes the preloaded likes to the caller's own.
	ListByChannel(ctx context.Context, channelID, viewerID uuid.UUID, limit, offset int) ([]FeedPost, error)
	AddLike(ctx context.Context, like *model.Like) error
	RemoveLike(ctx context.Context, postID, userID uuid.UUID) error
	AddComment(ctx context.Context, comment *model.Comment) error
	ListComments(ctx context.Context, postID uuid.UUID) ([]model.Comment, error)
}
