package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"grouple/communityhub/internal/model"
)

type pgSubscriptionRepository struct {
	db *gorm.DB
}

func NewPGSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &pgSubscriptionRepository{db: db}
}

func (r *pgSubscriptionRepository) Create(ctx context.Context, sub *model.Subscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *pgSubscriptionRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]model.Subscription, error) {
	var subs []model.Subscription
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("created_at DESC").
		Find(&subs).Error
	return subs, err
}

func (r *pgSubscriptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Subscription, error) {
	var sub model.Subscription
	if err := r.db.WithContext(ctx).First(&sub, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *pgSubscriptionRepository) Activate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sub model.Subscription
		if err := tx.First(&sub, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Subscription{}).
			Where("group_id = ? AND id <> ?", sub.GroupID, id).
			Update("active", false).Error; err != nil {
			return err
		}
		return tx.Model(&sub).Update("active", true).Error
	})
}

func (r *pgSubscriptionRepository) GetActiveByGroup(ctx context.Context, groupID uuid.UUID) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.WithContext(ctx).
		First(&sub, "group_id = ? AND active", groupID).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

type pgAffiliateRepository struct {
	db *gorm.DB
}

func NewPGAffiliateRepository(db *gorm.DB) AffiliateRepository {
	return &pgAffiliateRepository{db: db}
}

func (r *pgAffiliateRepository) GetByIDWithOwner(ctx context.Context, id uuid.UUID) (*model.Affiliate, error) {
	var affiliate model.Affiliate
	err := r.db.WithContext(ctx).
		Preload("Group.User").
		First(&affiliate, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &affiliate, nil
}
