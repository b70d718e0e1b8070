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

// PostsPageSize is the channel feed's page size.
const PostsPageSize = 2

type PostService interface {
	// Paginated pages newest-first through a channel's posts at the given
	// offset; callers derive the offset from how much they already hold.
	Paginated(ctx context.Context, channelID, viewerID uuid.UUID, paginate int) ([]repository.FeedPost, error)
	Create(ctx context.Context, post *model.Post) error
	Like(ctx context.Context, postID, userID uuid.UUID) error
	Unlike(ctx context.Context, postID, userID uuid.UUID) error
	Comment(ctx context.Context, postID, userID uuid.UUID, content string) (*model.Comment, error)
	Comments(ctx context.Context, postID uuid.UUID) ([]model.Comment, error)
}

type postService struct {
	postRepo repository.PostRepository
}

func NewPostService(postRepo repository.PostRepository) PostService {
	return &postService{postRepo: postRepo}
}

func (s *postService) Paginated(ctx context.Context, channelID, viewerID uuid.UUID, paginate int) ([]repository.FeedPost, error) {
	posts, err := s.postRepo.ListByChannel(ctx, channelID, viewerID, PostsPageSize, max(0, paginate))
	if err != nil {
		return nil, fmt.Errorf("list paginated posts: %w", err)
	}
	if len(posts) == 0 {
		return nil, ErrNoResults
	}
	return posts, nil
}

func (s *postService) Create(ctx context.Context, post *model.Post) error {
	if err := s.postRepo.Create(ctx, post); err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

func (s *postService) Like(ctx context.Context, postID, userID uuid.UUID) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("load post: %w", err)
	}
	like := &model.Like{PostID: postID, UserID: userID}
	if err := s.postRepo.AddLike(ctx, like); err != nil {
		return fmt.Errorf("add like: %w", err)
	}
	return nil
}

func (s *postService) Unlike(ctx context.Context, postID, userID uuid.UUID) error {
	if err := s.postRepo.RemoveLike(ctx, postID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("remove like: %w", err)
	}
	return nil
}

func (s *postService) Comment(ctx context.Context, postID, userID uuid.UUID, content string) (*model.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("load post: %w", err)
	}
	comment := &model.Comment{PostID: postID, UserID: userID, Content: content}
	if err := s.postRepo.AddComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	return comment, nil
}

func (s *postService) Comments(ctx context.Context, postID uuid.UUID) ([]model.Comment, error) {
	comments, err := s.postRepo.ListComments(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}
