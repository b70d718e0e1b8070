package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"grouple/communityhub/internal/model"
)

type pgMemberRepository struct {
	db *gorm.DB
}

func NewPGMemberRepository(db *gorm.DB) MemberRepository {
	return &pgMemberRepository{db: db}
}

func (r *pgMemberRepository) Create(ctx context.Context, member *model.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *pgMemberRepository) ListByGroupExcluding(ctx context.Context, groupID, excludeUserID uuid.UUID) ([]model.Member, error) {
	var members []model.Member
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("group_id = ? AND user_id <> ?", groupID, excludeUserID).
		Find(&members).Error
	return members, err
}

func (r *pgMemberRepository) CountByGroup(ctx context.Context, groupID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Member{}).
		Where("group_id = ?", groupID).
		Count(&count).Error
	return count, err
}

func (r *pgMemberRepository) Exists(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Member{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	return count > 0, err
}
