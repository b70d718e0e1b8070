package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"grouple/communityhub/internal/model"
)

var (
	ErrInviteExhausted = errors.New("invite code usage exhausted")
	ErrInviteExpired   = errors.New("invite code expired")
)

type pgInviteCodeRepository struct {
	db *gorm.DB
}

func NewPGInviteCodeRepository(db *gorm.DB) InviteCodeRepository {
	return &pgInviteCodeRepository{db: db}
}

func (r *pgInviteCodeRepository) Create(ctx context.Context, code *model.InviteCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *pgInviteCodeRepository) GetByCode(ctx context.Context, code string) (*model.InviteCode, error) {
	var invite model.InviteCode
	if err := r.db.WithContext(ctx).First(&invite, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}

func (r *pgInviteCodeRepository) Consume(ctx context.Context, code string) (*model.InviteCode, error) {
	var invite model.InviteCode
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&invite, "code = ?", code).Error; err != nil {
			return err
		}
		if invite.ExpiresAt != nil && time.Now().After(*invite.ExpiresAt) {
			return ErrInviteExpired
		}
		if invite.Uses >= invite.MaxUses {
			return ErrInviteExhausted
		}
		invite.Uses++
		return tx.Model(&invite).Update("uses", invite.Uses).Error
	})
	if err != nil {
		return nil, err
	}
	return &invite, nil
}

func (r *pgInviteCodeRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]model.InviteCode, error) {
	var codes []model.InviteCode
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("created_at DESC").
		Find(&codes).Error
	return codes, err
}
