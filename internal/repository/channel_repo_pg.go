package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"grouple/communityhub/internal/model"
)

type pgChannelRepository struct {
	db *gorm.DB
}

func NewPGChannelRepository(db *gorm.DB) ChannelRepository {
	return &pgChannelRepository{db: db}
}

func (r *pgChannelRepository) Create(ctx context.Context, channel *model.Channel) error {
	return r.db.WithContext(ctx).Create(channel).Error
}

func (r *pgChannelRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Channel, error) {
	var channel model.Channel
	if err := r.db.WithContext(ctx).First(&channel, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &channel, nil
}

func (r *pgChannelRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]model.Channel, error) {
	var channels []model.Channel
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("created_at ASC").
		Find(&channels).Error
	return channels, err
}

func (r *pgChannelRepository) UpdateInfo(ctx context.Context, id uuid.UUID, name, icon *string) error {
	updates := map[string]interface{}{}
	if name != nil {
		updates["name"] = *name
	}
	if icon != nil {
		updates["icon"] = *icon
	}
	if len(updates) == 0 {
		return nil
	}

	res := r.db.WithContext(ctx).
		Model(&model.Channel{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *pgChannelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Channel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
