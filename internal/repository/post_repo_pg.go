package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"grouple/communityhub/internal/model"
)

type pgPostRepository struct {
	db *gorm.DB
}

func NewPGPostRepository(db *gorm.DB) PostRepository {
	return &pgPostRepository{db: db}
}

func (r *pgPostRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *pgPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *pgPostRepository) ListByChannel(ctx context.Context, channelID, viewerID uuid.UUID, limit, offset int) ([]FeedPost, error) {
	var posts []FeedPost
	err := r.db.WithContext(ctx).
		Model(&model.Post{}).
		Select("posts.*, " +
			"(SELECT count(*) FROM likes WHERE likes.post_id = posts.id) AS like_count, " +
			"(SELECT count(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) AS comment_count").
		Preload("Channel").
		Preload("Author").
		Preload("Likes", func(db *gorm.DB) *gorm.DB {
			return db.Where("user_id = ?", viewerID)
		}).
		Where("channel_id = ?", channelID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *pgPostRepository) AddLike(ctx context.Context, like *model.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *pgPostRepository) RemoveLike(ctx context.Context, postID, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Delete(&model.Like{}, "post_id = ? AND user_id = ?", postID, userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *pgPostRepository) AddComment(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *pgPostRepository) ListComments(ctx context.Context, postID uuid.UUID) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}
