package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"grouple/communityhub/internal/model"
)

type pgUserRepository struct {
	db *gorm.DB
}

func NewPGUserRepository(db *gorm.DB) UserRepository {
	return &pgUserRepository{db: db}
}

func (r *pgUserRepository) Upsert(ctx context.Context, user *model.User) error {
	// ON CONFLICT (auth_id) DO NOTHING, then read back the surviving row so
	// the caller always sees the canonical internal id.
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "auth_id"}},
			DoNothing: true,
		}).
		Create(user).Error; err != nil {
		return err
	}

	var existing model.User
	if err := r.db.WithContext(ctx).First(&existing, "auth_id = ?", user.AuthID).Error; err != nil {
		return err
	}
	*user = existing
	return nil
}

func (r *pgUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *pgUserRepository) GetByAuthID(ctx context.Context, authID string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "auth_id = ?", authID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *pgUserRepository) GetByAuthIDWithGroups(ctx context.Context, authID string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Groups", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Groups.Channels", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&user, "auth_id = ?", authID).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *pgUserRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}
