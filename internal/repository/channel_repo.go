package repository

import (
	"context"

	"github.com/google/uuid"

	"grouple/communityhub/internal/model"
)

type ChannelRepository interface {
	Create(ctx context.Context, channel *model.Channel) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Channel, error)
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]model.Channel, error)
	// UpdateInfo changes name and/or icon; nil means leave the field alone.
	UpdateInfo(ctx context.Context, id uuid.UUID, name, icon *string) error
	Delete(ctx context.Context, id uuid.UUID) error
}
