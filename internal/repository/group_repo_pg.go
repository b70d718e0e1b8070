package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"grouple/communityhub/internal/model"
)

type pgGroupRepository struct {
	db *gorm.DB
}

func NewPGGroupRepository(db *gorm.DB) GroupRepository {
	return &pgGroupRepository{db: db}
}

func (r *pgGroupRepository) Create(ctx context.Context, group *model.Group) error {
	// FullSaveAssociations is not needed; gorm cascades the nested creates
	// (channels, affiliate, members) inside one transaction.
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *pgGroupRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Group, error) {
	var group model.Group
	if err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func generalChannel(db *gorm.DB) *gorm.DB {
	return db.Where("name = ?", "general")
}

func (r *pgGroupRepository) ListOwnedByUser(ctx context.Context, userID uuid.UUID) ([]model.Group, error) {
	var groups []model.Group
	err := r.db.WithContext(ctx).
		Preload("Channels", generalChannel).
		Where("user_id = ?", userID).
		Find(&groups).Error
	return groups, err
}

func (r *pgGroupRepository) ListMemberships(ctx context.Context, userID uuid.UUID) ([]model.Group, error) {
	var groups []model.Group
	err := r.db.WithContext(ctx).
		Preload("Channels", generalChannel).
		Joins("JOIN members ON members.group_id = groups.id").
		Where("members.user_id = ? AND groups.user_id <> ?", userID, userID).
		Find(&groups).Error
	return groups, err
}

func (r *pgGroupRepository) UpdateField(ctx context.Context, id uuid.UUID, field GroupField, content string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Group{}).
		Where("id = ?", id).
		Update(string(field), content)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *pgGroupRepository) AppendGallery(ctx context.Context, id uuid.UUID, mediaID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var group model.Group
		if err := tx.First(&group, "id = ?", id).Error; err != nil {
			return err
		}
		group.Gallery = append(group.Gallery, mediaID)
		return tx.Model(&group).Update("gallery", group.Gallery).Error
	})
}

func (r *pgGroupRepository) SearchByName(ctx context.Context, query string, limit, offset int) ([]model.Group, error) {
	var groups []model.Group
	err := r.db.WithContext(ctx).
		Where("name ILIKE ?", "%"+query+"%").
		Limit(limit).
		Offset(offset).
		Find(&groups).Error
	return groups, err
}

func (r *pgGroupRepository) ListByCategory(ctx context.Context, category string, limit, offset int) ([]model.Group, error) {
	var groups []model.Group
	err := r.db.WithContext(ctx).
		Where("category = ? AND description IS NOT NULL AND thumbnail IS NOT NULL", category).
		Limit(limit).
		Offset(offset).
		Find(&groups).Error
	return groups, err
}
