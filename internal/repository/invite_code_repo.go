package repository

import (
	"context"

	"github.com/google/uuid"

	"grouple/communityhub/internal/model"
)

type InviteCodeRepository interface {
	Create(ctx context.Context, code *model.InviteCode) error
	GetByCode(ctx context.Context, code string) (*model.InviteCode, error)
	// Consume burns one use, failing when the code is exhausted or expired.
	Consume(ctx context.Context, code string) (*model.InviteCode, error)
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]model.InviteCode, error)
}
